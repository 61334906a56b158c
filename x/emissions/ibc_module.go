package emissions

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	capabilitytypes "github.com/cosmos/cosmos-sdk/x/capability/types"
	channeltypes "github.com/cosmos/ibc-go/v2/modules/core/04-channel/types"
	porttypes "github.com/cosmos/ibc-go/v2/modules/core/05-port/types"
	host "github.com/cosmos/ibc-go/v2/modules/core/24-host"
	ibcexported "github.com/cosmos/ibc-go/v2/modules/core/exported"

	"github.com/astroport/governance/x/emissions/keeper"
	"github.com/astroport/governance/x/emissions/types"
)

var _ porttypes.IBCModule = IBCHandler{}

// IBCHandler accepts the voting channels of the outposts. Channels are always opened by the outposts.
type IBCHandler struct {
	keeper keeper.Keeper
}

// NewIBCHandler constructor
func NewIBCHandler(k keeper.Keeper) IBCHandler {
	return IBCHandler{keeper: k}
}

// OnChanOpenInit rejects channels initiated by the hub
func (i IBCHandler) OnChanOpenInit(
	_ sdk.Context,
	_ channeltypes.Order,
	_ []string,
	_ string,
	_ string,
	_ *capabilitytypes.Capability,
	_ channeltypes.Counterparty,
	_ string,
) error {
	return sdkerrors.Wrap(types.ErrInvalidChannel, "channels must be opened by outposts")
}

// OnChanOpenTry accepts the channel when it is configured as voting channel of the outpost on the
// other end
func (i IBCHandler) OnChanOpenTry(
	ctx sdk.Context,
	order channeltypes.Order,
	_ []string,
	portID, channelID string,
	chanCap *capabilitytypes.Capability,
	counterparty channeltypes.Counterparty,
	version, counterpartyVersion string,
) error {
	endpoint := i.keeper.Endpoint()
	if portID != endpoint.PortID() {
		return sdkerrors.Wrapf(types.ErrInvalidChannel, "port %s", portID)
	}
	if err := endpoint.ValidateHandshake(order, version); err != nil {
		return err
	}
	if counterpartyVersion != endpoint.Version() {
		return sdkerrors.Wrapf(channeltypes.ErrInvalidChannel, "counterparty version %s", counterpartyVersion)
	}
	outpost, found := i.keeper.GetOutpostByChannel(ctx, channelID)
	if !found {
		return sdkerrors.Wrapf(types.ErrInvalidChannel, "%s is not a voting channel", channelID)
	}
	if !isControllerPort(counterparty.PortId, outpost.Params.EmissionsController) {
		return sdkerrors.Wrapf(types.ErrInvalidChannel, "counterparty port %s is not the controller of %s", counterparty.PortId, outpost.Prefix)
	}
	return sdkerrors.Wrapf(endpoint.ClaimChannel(ctx, chanCap, channelID), "%s already bound", host.ChannelCapabilityPath(portID, channelID))
}

// isControllerPort returns true for the outpost module port or the wasm port of the controller contract
func isControllerPort(portID, controller string) bool {
	return portID == types.OutpostPortID || portID == "wasm."+controller
}

func (i IBCHandler) OnChanOpenAck(_ sdk.Context, _, _ string, _ string) error {
	return sdkerrors.Wrap(types.ErrInvalidChannel, "channels must be opened by outposts")
}

func (i IBCHandler) OnChanOpenConfirm(_ sdk.Context, _, _ string) error {
	return nil
}

// OnChanCloseInit prevents the hub from closing voting channels
func (i IBCHandler) OnChanCloseInit(_ sdk.Context, _, _ string) error {
	return sdkerrors.Wrap(sdkerrors.ErrInvalidRequest, "user cannot close channel")
}

func (i IBCHandler) OnChanCloseConfirm(ctx sdk.Context, _, channelID string) error {
	keeper.ModuleLogger(ctx).Info("voting channel closed", "channel", channelID)
	return nil
}

func (i IBCHandler) OnRecvPacket(ctx sdk.Context, packet channeltypes.Packet, _ sdk.AccAddress) ibcexported.Acknowledgement {
	return i.keeper.OnRecvOutpostPacket(ctx, packet)
}

// OnAcknowledgementPacket handles the acks of proposal announcements
func (i IBCHandler) OnAcknowledgementPacket(ctx sdk.Context, packet channeltypes.Packet, acknowledgement []byte, _ sdk.AccAddress) error {
	return i.keeper.OnRegisterProposalAck(ctx, packet, acknowledgement)
}

func (i IBCHandler) OnTimeoutPacket(ctx sdk.Context, packet channeltypes.Packet, _ sdk.AccAddress) error {
	keeper.ModuleLogger(ctx).Error("proposal announcement timed out", "channel", packet.SourceChannel, "sequence", packet.Sequence)
	return nil
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
