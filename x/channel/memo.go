package channel

import (
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	transfertypes "github.com/cosmos/ibc-go/v2/modules/apps/transfer/types"
	clienttypes "github.com/cosmos/ibc-go/v2/modules/core/02-client/types"
	channeltypes "github.com/cosmos/ibc-go/v2/modules/core/04-channel/types"
	host "github.com/cosmos/ibc-go/v2/modules/core/24-host"
	tmbytes "github.com/tendermint/tendermint/libs/bytes"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const memoField = "memo"

// AttachMemo adds the memo field to ICS20 packet data
func AttachMemo(data []byte, memo string) ([]byte, error) {
	if memo == "" {
		return data, nil
	}
	bz, err := sjson.SetBytes(data, memoField, memo)
	if err != nil {
		return nil, sdkerrors.Wrap(sdkerrors.ErrJSONMarshal, err.Error())
	}
	return bz, nil
}

// StripMemo returns the packet without the memo field of its ICS20 data together with the memo.
// The transfer codec rejects unknown fields so the memo must be removed before the packet reaches
// the transfer module.
func StripMemo(packet channeltypes.Packet) (channeltypes.Packet, string, error) {
	memo := gjson.GetBytes(packet.GetData(), memoField)
	if !memo.Exists() {
		return packet, "", nil
	}
	bz, err := sjson.DeleteBytes(packet.GetData(), memoField)
	if err != nil {
		return packet, "", sdkerrors.Wrap(sdkerrors.ErrJSONUnmarshal, err.Error())
	}
	packet.Data = bz
	return packet, memo.String(), nil
}

// TransferBankKeeper is the subset of the bank keeper needed to escrow or burn transferred tokens
type TransferBankKeeper interface {
	SendCoins(ctx sdk.Context, fromAddr sdk.AccAddress, toAddr sdk.AccAddress, amt sdk.Coins) error
	SendCoinsFromAccountToModule(ctx sdk.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	BurnCoins(ctx sdk.Context, moduleName string, amt sdk.Coins) error
}

// DenomTraceKeeper resolves ibc voucher denoms
type DenomTraceKeeper interface {
	GetDenomTrace(ctx sdk.Context, denomTraceHash tmbytes.HexBytes) (transfertypes.DenomTrace, bool)
}

// MemoTransfer sends ICS20 transfers that carry a memo for the receiving chain. Tokens are escrowed
// or burned the same way the transfer module does it, so refunds on ack errors and timeouts are
// handled by the transfer module of this chain.
type MemoTransfer struct {
	channelKeeper ChannelKeeper
	scopedKeeper  ScopedKeeper
	bankKeeper    TransferBankKeeper
	denomKeeper   DenomTraceKeeper
}

// NewMemoTransfer constructor. The scoped keeper must be the one of the transfer module.
func NewMemoTransfer(channelKeeper ChannelKeeper, scopedKeeper ScopedKeeper, bankKeeper TransferBankKeeper, denomKeeper DenomTraceKeeper) MemoTransfer {
	return MemoTransfer{
		channelKeeper: channelKeeper,
		scopedKeeper:  scopedKeeper,
		bankKeeper:    bankKeeper,
		denomKeeper:   denomKeeper,
	}
}

// SendTransferWithMemo sends the token to the receiver on the other end of the channel. It returns
// the sequence of the packet.
func (t MemoTransfer) SendTransferWithMemo(
	ctx sdk.Context,
	sourcePort, sourceChannel string,
	token sdk.Coin,
	sender sdk.AccAddress,
	receiver string,
	timeoutTimestamp uint64,
	memo string,
) (uint64, error) {
	if !token.Amount.IsPositive() {
		return 0, sdkerrors.Wrapf(sdkerrors.ErrInvalidCoins, "amount %s", token.Amount)
	}
	ch, found := t.channelKeeper.GetChannel(ctx, sourcePort, sourceChannel)
	if !found {
		return 0, sdkerrors.Wrapf(channeltypes.ErrChannelNotFound, "port %s channel %s", sourcePort, sourceChannel)
	}
	seq, found := t.channelKeeper.GetNextSequenceSend(ctx, sourcePort, sourceChannel)
	if !found {
		return 0, sdkerrors.Wrapf(channeltypes.ErrSequenceSendNotFound, "port %s channel %s", sourcePort, sourceChannel)
	}
	chanCap, ok := t.scopedKeeper.GetCapability(ctx, host.ChannelCapabilityPath(sourcePort, sourceChannel))
	if !ok {
		return 0, sdkerrors.Wrap(channeltypes.ErrChannelCapabilityNotFound, sourceChannel)
	}

	fullDenomPath := token.Denom
	if strings.HasPrefix(token.Denom, transfertypes.DenomPrefix+"/") {
		hash, err := transfertypes.ParseHexHash(strings.TrimPrefix(token.Denom, transfertypes.DenomPrefix+"/"))
		if err != nil {
			return 0, sdkerrors.Wrap(transfertypes.ErrInvalidDenomForTransfer, err.Error())
		}
		trace, found := t.denomKeeper.GetDenomTrace(ctx, hash)
		if !found {
			return 0, sdkerrors.Wrap(transfertypes.ErrTraceNotFound, token.Denom)
		}
		fullDenomPath = trace.GetFullDenomPath()
	}

	coins := sdk.NewCoins(token)
	if transfertypes.SenderChainIsSource(sourcePort, sourceChannel, fullDenomPath) {
		escrow := transfertypes.GetEscrowAddress(sourcePort, sourceChannel)
		if err := t.bankKeeper.SendCoins(ctx, sender, escrow, coins); err != nil {
			return 0, err
		}
	} else {
		if err := t.bankKeeper.SendCoinsFromAccountToModule(ctx, sender, transfertypes.ModuleName, coins); err != nil {
			return 0, err
		}
		if err := t.bankKeeper.BurnCoins(ctx, transfertypes.ModuleName, coins); err != nil {
			return 0, err
		}
	}

	data := transfertypes.NewFungibleTokenPacketData(fullDenomPath, token.Amount.String(), sender.String(), receiver)
	bz, err := AttachMemo(data.GetBytes(), memo)
	if err != nil {
		return 0, err
	}
	packet := channeltypes.NewPacket(
		bz,
		seq,
		sourcePort,
		sourceChannel,
		ch.Counterparty.PortId,
		ch.Counterparty.ChannelId,
		clienttypes.ZeroHeight(),
		timeoutTimestamp,
	)
	if err := t.channelKeeper.SendPacket(ctx, chanCap, packet); err != nil {
		return 0, err
	}
	return seq, nil
}
