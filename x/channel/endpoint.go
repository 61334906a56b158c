package channel

import (
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	capabilitytypes "github.com/cosmos/cosmos-sdk/x/capability/types"
	clienttypes "github.com/cosmos/ibc-go/v2/modules/core/02-client/types"
	channeltypes "github.com/cosmos/ibc-go/v2/modules/core/04-channel/types"
	host "github.com/cosmos/ibc-go/v2/modules/core/24-host"
)

// Endpoint is the port of a module with the channels it owns. All channels are unordered and use
// the same application version.
type Endpoint struct {
	portID        string
	version       string
	channelKeeper ChannelKeeper
	portKeeper    PortKeeper
	scopedKeeper  ScopedKeeper
}

// NewEndpoint constructor
func NewEndpoint(portID, version string, channelKeeper ChannelKeeper, portKeeper PortKeeper, scopedKeeper ScopedKeeper) Endpoint {
	return Endpoint{
		portID:        portID,
		version:       version,
		channelKeeper: channelKeeper,
		portKeeper:    portKeeper,
		scopedKeeper:  scopedKeeper,
	}
}

// PortID returns the port of the endpoint
func (e Endpoint) PortID() string {
	return e.portID
}

// Version returns the application version
func (e Endpoint) Version() string {
	return e.version
}

// BindPort binds the port and claims its capability unless this was done before
func (e Endpoint) BindPort(ctx sdk.Context) error {
	if _, ok := e.scopedKeeper.GetCapability(ctx, host.PortPath(e.portID)); ok {
		return nil
	}
	portCap := e.portKeeper.BindPort(ctx, e.portID)
	return e.scopedKeeper.ClaimCapability(ctx, portCap, host.PortPath(e.portID))
}

// ValidateHandshake checks ordering and version of a channel handshake
func (e Endpoint) ValidateHandshake(order channeltypes.Order, version string) error {
	if order != channeltypes.UNORDERED {
		return sdkerrors.Wrapf(channeltypes.ErrInvalidChannelOrdering, "expected %s, got %s", channeltypes.UNORDERED, order)
	}
	if version != e.version {
		return sdkerrors.Wrapf(channeltypes.ErrInvalidChannel, "expected %s, got %s", e.version, version)
	}
	return nil
}

// ClaimChannel claims the capability of a new channel
func (e Endpoint) ClaimChannel(ctx sdk.Context, chanCap *capabilitytypes.Capability, channelID string) error {
	return e.scopedKeeper.ClaimCapability(ctx, chanCap, host.ChannelCapabilityPath(e.portID, channelID))
}

// Counterparty returns the remote end of the channel
func (e Endpoint) Counterparty(ctx sdk.Context, channelID string) (channeltypes.Counterparty, bool) {
	ch, found := e.channelKeeper.GetChannel(ctx, e.portID, channelID)
	if !found {
		return channeltypes.Counterparty{}, false
	}
	return ch.Counterparty, true
}

// Send sends the data over the channel with a timeout relative to the block time. It returns the
// sequence of the packet.
func (e Endpoint) Send(ctx sdk.Context, channelID string, data []byte, timeout time.Duration) (uint64, error) {
	ch, found := e.channelKeeper.GetChannel(ctx, e.portID, channelID)
	if !found {
		return 0, sdkerrors.Wrapf(channeltypes.ErrChannelNotFound, "port %s channel %s", e.portID, channelID)
	}
	seq, found := e.channelKeeper.GetNextSequenceSend(ctx, e.portID, channelID)
	if !found {
		return 0, sdkerrors.Wrapf(channeltypes.ErrSequenceSendNotFound, "port %s channel %s", e.portID, channelID)
	}
	chanCap, ok := e.scopedKeeper.GetCapability(ctx, host.ChannelCapabilityPath(e.portID, channelID))
	if !ok {
		return 0, sdkerrors.Wrap(channeltypes.ErrChannelCapabilityNotFound, channelID)
	}
	packet := channeltypes.NewPacket(
		data,
		seq,
		e.portID,
		channelID,
		ch.Counterparty.PortId,
		ch.Counterparty.ChannelId,
		clienttypes.ZeroHeight(),
		uint64(ctx.BlockTime().Add(timeout).UnixNano()),
	)
	if err := e.channelKeeper.SendPacket(ctx, chanCap, packet); err != nil {
		return 0, err
	}
	return seq, nil
}

// IsOpen returns true when the channel of the endpoint completed its handshake
func (e Endpoint) IsOpen(ctx sdk.Context, channelID string) bool {
	ch, found := e.channelKeeper.GetChannel(ctx, e.portID, channelID)
	return found && ch.State == channeltypes.OPEN
}
