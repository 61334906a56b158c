package emissions

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	transfertypes "github.com/cosmos/ibc-go/v2/modules/apps/transfer/types"
	channeltypes "github.com/cosmos/ibc-go/v2/modules/core/04-channel/types"
	porttypes "github.com/cosmos/ibc-go/v2/modules/core/05-port/types"

	"github.com/astroport/governance/x/channel"
	"github.com/astroport/governance/x/emissions/keeper"
	"github.com/astroport/governance/x/emissions/types"
)

var _ porttypes.IBCModule = TransferCallbacks{}

// TransferCallbacks is a decorator of the ICS20 transfer module. It reports the outcome of emissions
// transfers sent by the emissions controller. The memo of these transfers is removed before the
// packet is passed on to the transfer module.
type TransferCallbacks struct {
	porttypes.IBCModule
	keeper keeper.Keeper
}

// NewTransferCallbacks constructor
func NewTransferCallbacks(transfer porttypes.IBCModule, k keeper.Keeper) TransferCallbacks {
	return TransferCallbacks{IBCModule: transfer, keeper: k}
}

func (t TransferCallbacks) OnAcknowledgementPacket(ctx sdk.Context, packet channeltypes.Packet, acknowledgement []byte, relayer sdk.AccAddress) error {
	packet, _, err := channel.StripMemo(packet)
	if err != nil {
		return err
	}
	if err := t.IBCModule.OnAcknowledgementPacket(ctx, packet, acknowledgement, relayer); err != nil {
		return err
	}
	if !isEmissionsTransfer(packet) {
		return nil
	}
	_, ackErr, err := channel.ParseAck(acknowledgement)
	if err != nil {
		return err
	}
	t.handleCallback(ctx, packet, ackErr == "")
	return nil
}

func (t TransferCallbacks) OnTimeoutPacket(ctx sdk.Context, packet channeltypes.Packet, relayer sdk.AccAddress) error {
	packet, _, err := channel.StripMemo(packet)
	if err != nil {
		return err
	}
	if err := t.IBCModule.OnTimeoutPacket(ctx, packet, relayer); err != nil {
		return err
	}
	if isEmissionsTransfer(packet) {
		t.handleCallback(ctx, packet, false)
	}
	return nil
}

// handleCallback never fails the ICS20 callback; the transfer refund must go through
func (t TransferCallbacks) handleCallback(ctx sdk.Context, packet channeltypes.Packet, success bool) {
	if err := t.keeper.HandleTransferCallback(ctx, packet.SourceChannel, packet.Sequence, success); err != nil {
		keeper.ModuleLogger(ctx).Error("emissions transfer callback", "channel", packet.SourceChannel, "sequence", packet.Sequence, "err", err)
	}
}

func isEmissionsTransfer(packet channeltypes.Packet) bool {
	var data transfertypes.FungibleTokenPacketData
	if err := transfertypes.ModuleCdc.UnmarshalJSON(packet.GetData(), &data); err != nil {
		return false
	}
	return data.Sender == types.ModuleAddress().String()
}
