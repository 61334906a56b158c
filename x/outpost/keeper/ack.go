package keeper

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	channeltypes "github.com/cosmos/ibc-go/v2/modules/core/04-channel/types"

	assemblytypes "github.com/astroport/governance/x/assembly/types"
	"github.com/astroport/governance/x/channel"
	emissionstypes "github.com/astroport/governance/x/emissions/types"
	"github.com/astroport/governance/x/outpost/types"
)

// timeoutErr is stored as error of messages that timed out
const timeoutErr = "timeout"

// OnAcknowledgementPacket completes the message of a user. On success the user becomes idle. On
// failure the error is kept and a relayed unlock is rolled back.
func (k Keeper) OnAcknowledgementPacket(ctx sdk.Context, packet channeltypes.Packet, acknowledgement []byte) error {
	result, ackErr, err := channel.ParseAck(acknowledgement)
	if err != nil {
		return err
	}
	msg, err := decodeOutpostMsg(packet)
	if err != nil {
		return err
	}
	telemetry.IncrCounter(1, types.ModuleName, "acks", strconv.FormatBool(ackErr == ""))
	k.emitAckEvent(ctx, packet, ackErr)
	if msg.RegisterProposal != nil {
		if ackErr != "" {
			k.dropPendingVotes(ctx, msg.RegisterProposal.ProposalID, ackErr)
			return nil
		}
		var p assemblytypes.ProposalSnapshot
		if err := json.Unmarshal(result, &p); err != nil || p.ID != msg.RegisterProposal.ProposalID {
			k.dropPendingVotes(ctx, msg.RegisterProposal.ProposalID, "invalid proposal registration result")
			return nil
		}
		k.RegisterProposal(ctx, p)
		return nil
	}
	stale := k.GetUserStatus(ctx, msg.Voter()).StalePower
	if ackErr != "" {
		k.failUserMsg(ctx, msg, ackErr)
	} else {
		k.setUserStatus(ctx, msg.Voter(), types.UserIbcStatus{})
	}
	if stale {
		k.relayStalePower(ctx, msg.Voter())
	}
	return nil
}

// OnTimeoutPacket handles an expired message like a failed one
func (k Keeper) OnTimeoutPacket(ctx sdk.Context, packet channeltypes.Packet) error {
	msg, err := decodeOutpostMsg(packet)
	if err != nil {
		return err
	}
	telemetry.IncrCounter(1, types.ModuleName, "timeouts")
	k.emitAckEvent(ctx, packet, timeoutErr)
	if msg.RegisterProposal != nil {
		k.dropPendingVotes(ctx, msg.RegisterProposal.ProposalID, timeoutErr)
		return nil
	}
	stale := k.GetUserStatus(ctx, msg.Voter()).StalePower
	k.failUserMsg(ctx, msg, timeoutErr)
	if stale {
		k.relayStalePower(ctx, msg.Voter())
	}
	return nil
}

// OnRecvHubPacket processes the announcement of a proposal by the hub
func (k Keeper) OnRecvHubPacket(ctx sdk.Context, packet channeltypes.Packet) channeltypes.Acknowledgement {
	defer telemetry.ModuleMeasureSince(types.ModuleName, time.Now(), "recv_packet")
	if packet.DestinationChannel != k.GetVotingChannel(ctx) {
		return channel.NewErrorAck(sdkerrors.Wrapf(types.ErrInvalidChannel, "%s is not the voting channel", packet.DestinationChannel))
	}
	var msg emissionstypes.HubMsg
	if err := json.Unmarshal(packet.GetData(), &msg); err != nil {
		return channel.NewErrorAck(sdkerrors.Wrap(types.ErrUnknownPacket, err.Error()))
	}
	if msg.RegisterProposal == nil {
		return channel.NewErrorAck(sdkerrors.Wrap(types.ErrUnknownPacket, "empty message"))
	}
	k.RegisterProposal(ctx, *msg.RegisterProposal)
	return channel.NewResultAck(nil)
}

// RegisterProposal caches the proposal and sends all votes that waited for it
func (k Keeper) RegisterProposal(ctx sdk.Context, p assemblytypes.ProposalSnapshot) {
	if _, exists := k.GetCachedProposal(ctx, p.ID); !exists {
		k.setCachedProposal(ctx, p)
		ModuleLogger(ctx).Info("proposal registered", "proposal_id", p.ID, "start_time", p.StartTime)
	}
	for _, v := range k.takePendingVotes(ctx, p.ID) {
		status := k.GetUserStatus(ctx, v.Voter)
		status.PendingMsg = nil
		k.setUserStatus(ctx, v.Voter, status)

		// a failed dispatch must not affect the other voters
		cacheCtx, commit := ctx.CacheContext()
		cacheCtx = cacheCtx.WithEventManager(sdk.NewEventManager())
		if err := k.castVote(cacheCtx, v.Voter, p, v.Vote); err != nil {
			ModuleLogger(ctx).Info("queued vote dropped", "proposal_id", p.ID, "voter", v.Voter, "err", err)
			status.Error = &types.IbcError{Msg: castVoteMsg(v.Voter, p.ID, v.Vote, sdk.ZeroInt()), Err: err.Error()}
			k.setUserStatus(ctx, v.Voter, status)
			if status.StalePower {
				k.relayStalePower(ctx, v.Voter)
			}
			continue
		}
		commit()
		ctx.EventManager().EmitEvents(cacheCtx.EventManager().Events())
	}
}

// dropPendingVotes removes the votes queued for a proposal that could not be registered
func (k Keeper) dropPendingVotes(ctx sdk.Context, proposalID uint64, reason string) {
	for _, v := range k.takePendingVotes(ctx, proposalID) {
		stale := k.GetUserStatus(ctx, v.Voter).StalePower
		k.setUserStatus(ctx, v.Voter, types.UserIbcStatus{Error: &types.IbcError{
			Msg: castVoteMsg(v.Voter, proposalID, v.Vote, sdk.ZeroInt()),
			Err: reason,
		}})
		if stale {
			k.relayStalePower(ctx, v.Voter)
		}
	}
	ModuleLogger(ctx).Info("proposal registration failed", "proposal_id", proposalID, "err", reason)
}

// failUserMsg stores the error of the user and relocks the position of a failed unlock
func (k Keeper) failUserMsg(ctx sdk.Context, msg emissionstypes.OutpostMsg, reason string) {
	user := msg.Voter()
	k.setUserStatus(ctx, user, types.UserIbcStatus{Error: &types.IbcError{Msg: msg, Err: reason}})
	if msg.UpdateUserVotes == nil || !msg.UpdateUserVotes.IsUnlock {
		return
	}
	addr, err := sdk.AccAddressFromBech32(user)
	if err == nil {
		err = k.votingPower.ForceRelock(ctx, addr)
	}
	if err != nil {
		ModuleLogger(ctx).Error("relock after failed unlock", "user", user, "err", err)
	}
}

func (k Keeper) emitAckEvent(ctx sdk.Context, packet channeltypes.Packet, ackErr string) {
	attrs := []sdk.Attribute{
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyChannel, packet.SourceChannel),
		sdk.NewAttribute(types.AttributeKeySequence, strconv.FormatUint(packet.Sequence, 10)),
		sdk.NewAttribute(types.AttributeKeyAckSuccess, strconv.FormatBool(ackErr == "")),
	}
	if ackErr != "" {
		attrs = append(attrs, sdk.NewAttribute(types.AttributeKeyAckError, ackErr))
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeAck, attrs...))
}

func decodeOutpostMsg(packet channeltypes.Packet) (emissionstypes.OutpostMsg, error) {
	var msg emissionstypes.OutpostMsg
	if err := json.Unmarshal(packet.GetData(), &msg); err != nil {
		return msg, sdkerrors.Wrap(types.ErrUnknownPacket, err.Error())
	}
	if err := msg.ValidateBasic(); err != nil {
		return msg, sdkerrors.Wrap(types.ErrUnknownPacket, err.Error())
	}
	return msg, nil
}

// relayStalePower sends the current voting power of a user whose power changed while a message
// was in flight
func (k Keeper) relayStalePower(ctx sdk.Context, user string) {
	addr, err := sdk.AccAddressFromBech32(user)
	if err == nil {
		err = k.RefreshUserVotes(ctx, addr)
	}
	if err != nil {
		status := k.GetUserStatus(ctx, user)
		status.StalePower = true
		k.setUserStatus(ctx, user, status)
		ModuleLogger(ctx).Error("relay deferred voting power", "user", user, "err", err)
	}
}
