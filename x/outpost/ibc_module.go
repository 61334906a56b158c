package outpost

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	capabilitytypes "github.com/cosmos/cosmos-sdk/x/capability/types"
	channeltypes "github.com/cosmos/ibc-go/v2/modules/core/04-channel/types"
	porttypes "github.com/cosmos/ibc-go/v2/modules/core/05-port/types"
	ibcexported "github.com/cosmos/ibc-go/v2/modules/core/exported"

	"github.com/astroport/governance/x/outpost/keeper"
	"github.com/astroport/governance/x/outpost/types"
)

var _ porttypes.IBCModule = IBCHandler{}

// IBCHandler opens the channel to the emissions controller of the hub and relays its answers to the
// keeper. Only the outpost initiates the handshake.
type IBCHandler struct {
	keeper keeper.Keeper
}

// NewIBCHandler constructor
func NewIBCHandler(k keeper.Keeper) IBCHandler {
	return IBCHandler{keeper: k}
}

// OnChanOpenInit accepts a channel to the hub as long as no voting channel is bound
func (i IBCHandler) OnChanOpenInit(
	ctx sdk.Context,
	order channeltypes.Order,
	_ []string,
	portID string,
	channelID string,
	chanCap *capabilitytypes.Capability,
	counterparty channeltypes.Counterparty,
	version string,
) error {
	endpoint := i.keeper.Endpoint()
	if portID != endpoint.PortID() {
		return sdkerrors.Wrapf(types.ErrInvalidChannel, "port %s", portID)
	}
	if err := endpoint.ValidateHandshake(order, version); err != nil {
		return err
	}
	if counterparty.PortId != types.HubPortID {
		return sdkerrors.Wrapf(types.ErrInvalidChannel, "counterparty port %s", counterparty.PortId)
	}
	if ch := i.keeper.GetVotingChannel(ctx); ch != "" {
		return sdkerrors.Wrapf(types.ErrInvalidChannel, "voting channel %s already bound", ch)
	}
	return endpoint.ClaimChannel(ctx, chanCap, channelID)
}

// OnChanOpenTry rejects channels initiated by the other side
func (i IBCHandler) OnChanOpenTry(
	_ sdk.Context,
	_ channeltypes.Order,
	_ []string,
	_, _ string,
	_ *capabilitytypes.Capability,
	_ channeltypes.Counterparty,
	_, _ string,
) error {
	return sdkerrors.Wrap(types.ErrInvalidChannel, "channels must be opened by the outpost")
}

func (i IBCHandler) OnChanOpenAck(_ sdk.Context, _, _ string, counterpartyVersion string) error {
	if counterpartyVersion != i.keeper.Endpoint().Version() {
		return sdkerrors.Wrapf(channeltypes.ErrInvalidChannel, "counterparty version %s", counterpartyVersion)
	}
	return nil
}

func (i IBCHandler) OnChanOpenConfirm(_ sdk.Context, _, _ string) error {
	return sdkerrors.Wrap(types.ErrInvalidChannel, "channels must be opened by the outpost")
}

// OnChanCloseInit prevents users from closing the voting channel
func (i IBCHandler) OnChanCloseInit(_ sdk.Context, _, _ string) error {
	return sdkerrors.Wrap(sdkerrors.ErrInvalidRequest, "user cannot close channel")
}

func (i IBCHandler) OnChanCloseConfirm(ctx sdk.Context, _, channelID string) error {
	keeper.ModuleLogger(ctx).Info("channel closed", "channel", channelID)
	return nil
}

func (i IBCHandler) OnRecvPacket(ctx sdk.Context, packet channeltypes.Packet, _ sdk.AccAddress) ibcexported.Acknowledgement {
	return i.keeper.OnRecvHubPacket(ctx, packet)
}

func (i IBCHandler) OnAcknowledgementPacket(ctx sdk.Context, packet channeltypes.Packet, acknowledgement []byte, _ sdk.AccAddress) error {
	return i.keeper.OnAcknowledgementPacket(ctx, packet, acknowledgement)
}

func (i IBCHandler) OnTimeoutPacket(ctx sdk.Context, packet channeltypes.Packet, _ sdk.AccAddress) error {
	return i.keeper.OnTimeoutPacket(ctx, packet)
}

func (i IBCHandler) NegotiateAppVersion(
	_ sdk.Context,
	order channeltypes.Order,
	_ string,
	_ string,
	_ channeltypes.Counterparty,
	proposedVersion string,
) (string, error) {
	if err := i.keeper.Endpoint().ValidateHandshake(order, proposedVersion); err != nil {
		return "", err
	}
	return proposedVersion, nil
}
