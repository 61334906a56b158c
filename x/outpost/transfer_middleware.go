package outpost

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	transfertypes "github.com/cosmos/ibc-go/v2/modules/apps/transfer/types"
	channeltypes "github.com/cosmos/ibc-go/v2/modules/core/04-channel/types"
	porttypes "github.com/cosmos/ibc-go/v2/modules/core/05-port/types"
	ibcexported "github.com/cosmos/ibc-go/v2/modules/core/exported"

	"github.com/astroport/governance/x/channel"
	emissionstypes "github.com/astroport/governance/x/emissions/types"
	"github.com/astroport/governance/x/outpost/keeper"
	"github.com/astroport/governance/x/outpost/types"
)

var _ porttypes.IBCModule = EmissionsReceiver{}

// EmissionsReceiver is a decorator of the ICS20 transfer module. Transfers to the outpost that carry
// a set_emissions memo are credited and scheduled for the local pools in one step. When the
// schedule fails the whole transfer is rejected and refunded on the hub.
type EmissionsReceiver struct {
	porttypes.IBCModule
	keeper keeper.Keeper
}

// NewEmissionsReceiver constructor
func NewEmissionsReceiver(transfer porttypes.IBCModule, k keeper.Keeper) EmissionsReceiver {
	return EmissionsReceiver{IBCModule: transfer, keeper: k}
}

func (r EmissionsReceiver) OnRecvPacket(ctx sdk.Context, packet channeltypes.Packet, relayer sdk.AccAddress) ibcexported.Acknowledgement {
	packet, memo, err := channel.StripMemo(packet)
	if err != nil {
		return channel.NewErrorAck(err)
	}
	if memo == "" {
		return r.IBCModule.OnRecvPacket(ctx, packet, relayer)
	}
	var data transfertypes.FungibleTokenPacketData
	if err := transfertypes.ModuleCdc.UnmarshalJSON(packet.GetData(), &data); err != nil {
		return channel.NewErrorAck(sdkerrors.Wrap(sdkerrors.ErrUnknownRequest, "cannot unmarshal ICS-20 transfer packet data"))
	}
	if data.Receiver != types.ModuleAddress().String() {
		return r.IBCModule.OnRecvPacket(ctx, packet, relayer)
	}
	var schedule emissionstypes.SetEmissionsMemo
	if err := json.Unmarshal([]byte(memo), &schedule); err != nil {
		return channel.NewErrorAck(sdkerrors.Wrap(types.ErrInvalidFunds, "invalid memo"))
	}

	cacheCtx, commit := ctx.CacheContext()
	cacheCtx = cacheCtx.WithEventManager(sdk.NewEventManager())
	ack := r.IBCModule.OnRecvPacket(cacheCtx, packet, relayer)
	if !ack.Success() {
		return ack
	}
	amount, ok := sdk.NewIntFromString(data.Amount)
	if !ok {
		return channel.NewErrorAck(sdkerrors.Wrapf(sdkerrors.ErrInvalidCoins, "amount %s", data.Amount))
	}
	funds := sdk.NewCoin(receivedDenom(packet, data.Denom), amount)
	if err := r.keeper.SetEmissions(cacheCtx, funds, schedule.SetEmissions); err != nil {
		keeper.ModuleLogger(ctx).Error("emissions rejected", "channel", packet.DestinationChannel, "sequence", packet.Sequence, "err", err)
		return channel.NewErrorAck(err)
	}
	commit()
	ctx.EventManager().EmitEvents(cacheCtx.EventManager().Events())
	return ack
}

// receivedDenom returns the local denom of the tokens as the transfer module credits them
func receivedDenom(packet channeltypes.Packet, denom string) string {
	if transfertypes.ReceiverChainIsSource(packet.GetSourcePort(), packet.GetSourceChannel(), denom) {
		unprefixed := denom[len(transfertypes.GetDenomPrefix(packet.GetSourcePort(), packet.GetSourceChannel())):]
		return transfertypes.ParseDenomTrace(unprefixed).IBCDenom()
	}
	prefixed := transfertypes.GetDenomPrefix(packet.GetDestPort(), packet.GetDestChannel()) + denom
	return transfertypes.ParseDenomTrace(prefixed).IBCDenom()
}
