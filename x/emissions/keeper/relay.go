package keeper

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	transfertypes "github.com/cosmos/ibc-go/v2/modules/apps/transfer/types"
	channeltypes "github.com/cosmos/ibc-go/v2/modules/core/04-channel/types"

	assemblytypes "github.com/astroport/governance/x/assembly/types"
	"github.com/astroport/governance/x/channel"
	"github.com/astroport/governance/x/emissions/types"
)

// OnRecvOutpostPacket processes a message of an outpost. All state changes are discarded when the
// message fails; the error is returned in the acknowledgement.
func (k Keeper) OnRecvOutpostPacket(ctx sdk.Context, packet channeltypes.Packet) channeltypes.Acknowledgement {
	defer telemetry.ModuleMeasureSince(types.ModuleName, time.Now(), "recv_packet")
	cacheCtx, commit := ctx.CacheContext()
	cacheCtx = cacheCtx.WithEventManager(sdk.NewEventManager())
	result, err := k.handleOutpostPacket(cacheCtx, packet)

	success := err == nil
	telemetry.IncrCounter(1, types.ModuleName, "packets", strconv.FormatBool(success))
	attrs := []sdk.Attribute{
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyChannel, packet.DestinationChannel),
		sdk.NewAttribute(types.AttributeKeyAckSuccess, strconv.FormatBool(success)),
	}
	if err != nil {
		ModuleLogger(ctx).Info("outpost packet rejected", "channel", packet.DestinationChannel, "sequence", packet.Sequence, "err", err)
		ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypePacket, append(attrs, sdk.NewAttribute(types.AttributeKeyAckError, err.Error()))...))
		return channel.NewErrorAck(err)
	}
	commit()
	ctx.EventManager().EmitEvents(cacheCtx.EventManager().Events())
	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypePacket, attrs...))
	return channel.NewResultAck(result)
}

func (k Keeper) handleOutpostPacket(ctx sdk.Context, packet channeltypes.Packet) ([]byte, error) {
	outpost, found := k.GetOutpostByChannel(ctx, packet.DestinationChannel)
	if !found {
		return nil, sdkerrors.Wrapf(types.ErrInvalidChannel, "no outpost for channel %s", packet.DestinationChannel)
	}
	if outpost.Jailed {
		return nil, sdkerrors.Wrap(types.ErrJailedOutpost, outpost.Prefix)
	}
	var msg types.OutpostMsg
	if err := json.Unmarshal(packet.GetData(), &msg); err != nil {
		return nil, sdkerrors.Wrap(types.ErrInvalidPacket, err.Error())
	}
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if voter := msg.Voter(); voter != "" {
		if hrp, _, err := bech32.DecodeAndConvert(voter); err != nil || hrp != outpost.Prefix {
			return nil, sdkerrors.Wrapf(sdkerrors.ErrInvalidAddress, "voter %s does not belong to outpost %s", voter, outpost.Prefix)
		}
	}
	now := uint64(ctx.BlockTime().Unix())
	switch {
	case msg.Vote != nil:
		if err := k.checkChannelBalance(ctx, outpost, msg.Vote.VotingPower, now); err != nil {
			return nil, err
		}
		return nil, k.vote(ctx, msg.Vote.Voter, msg.Vote.VotingPower, msg.Vote.Votes)
	case msg.UpdateUserVotes != nil:
		if err := k.checkChannelBalance(ctx, outpost, msg.UpdateUserVotes.VotingPower, now); err != nil {
			return nil, err
		}
		return nil, k.UpdateUserVotes(ctx, msg.UpdateUserVotes.Voter, msg.UpdateUserVotes.VotingPower)
	case msg.CastVote != nil:
		m := msg.CastVote
		p, err := k.assembly.GetProposal(ctx, m.ProposalID)
		if err != nil {
			return nil, err
		}
		if err := k.checkChannelBalance(ctx, outpost, m.VotingPower, p.StartTime); err != nil {
			return nil, err
		}
		return nil, k.assembly.CastOutpostVote(ctx, m.Voter, m.ProposalID, m.Vote, m.VotingPower)
	case msg.RegisterProposal != nil:
		p, err := k.assembly.GetProposal(ctx, msg.RegisterProposal.ProposalID)
		if err != nil {
			return nil, err
		}
		return types.MustMarshalJSON(assemblytypes.ProposalSnapshot{ID: p.ID, StartTime: p.StartTime}), nil
	default:
		return nil, sdkerrors.Wrap(types.ErrInvalidPacket, "unknown message")
	}
}

// checkChannelBalance ensures that an outpost does not claim more voting power than xASTRO was
// transferred to its chain. The xASTRO of the outpost is held by the escrow account of its ICS20
// channel.
func (k Keeper) checkChannelBalance(ctx sdk.Context, outpost types.OutpostInfo, votingPower sdk.Int, ts uint64) error {
	escrow := transfertypes.GetEscrowAddress(transfertypes.PortID, outpost.Params.ICS20Channel)
	balance, err := k.tracker.BalanceAt(ctx, escrow.String(), ts)
	if err != nil {
		return sdkerrors.Wrap(err, "channel balance")
	}
	if votingPower.GT(balance) {
		return sdkerrors.Wrapf(types.ErrVotingPowerExceeded, "%s > %s", votingPower, balance)
	}
	return nil
}

// RegisterProposal announces a proposal to all remote outposts that are not jailed. Outposts with
// a channel that is not open yet are skipped.
func (k Keeper) RegisterProposal(ctx sdk.Context, proposalID uint64) error {
	p, err := k.assembly.GetProposal(ctx, proposalID)
	if err != nil {
		return err
	}
	if p.Status != assemblytypes.ProposalStatusActive {
		return sdkerrors.Wrapf(sdkerrors.ErrInvalidRequest, "proposal %d is %s", proposalID, p.Status)
	}
	data := types.MustMarshalJSON(types.HubMsg{RegisterProposal: &assemblytypes.ProposalSnapshot{ID: p.ID, StartTime: p.StartTime}})
	timeout := time.Duration(k.GetParams(ctx).IbcTimeout) * time.Second
	for _, o := range k.ActiveOutposts(ctx) {
		if o.IsLocal() {
			continue
		}
		if _, open := k.endpoint.Counterparty(ctx, o.Params.VotingChannel); !open {
			ModuleLogger(ctx).Info("skip outpost without channel", "outpost", o.Prefix)
			continue
		}
		if _, err := k.endpoint.Send(ctx, o.Params.VotingChannel, data, timeout); err != nil {
			return sdkerrors.Wrapf(err, "outpost %s", o.Prefix)
		}
		ctx.EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypeRegisterProposal,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
			sdk.NewAttribute(types.AttributeKeyProposalID, strconv.FormatUint(proposalID, 10)),
			sdk.NewAttribute(types.AttributeKeyOutpost, o.Prefix),
		))
	}
	return nil
}

// OnRegisterProposalAck logs a failed proposal announcement. Outposts can still request the
// proposal on their own.
func (k Keeper) OnRegisterProposalAck(ctx sdk.Context, packet channeltypes.Packet, ack []byte) error {
	_, ackErr, err := channel.ParseAck(ack)
	if err != nil {
		return err
	}
	if ackErr != "" {
		ModuleLogger(ctx).Error("proposal announcement failed", "channel", packet.SourceChannel, "err", ackErr)
	}
	return nil
}
