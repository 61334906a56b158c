package keeper

import (
	"strconv"
	"time"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	assemblytypes "github.com/astroport/governance/x/assembly/types"
	emissionstypes "github.com/astroport/governance/x/emissions/types"
	"github.com/astroport/governance/x/outpost/types"
	vxastrotypes "github.com/astroport/governance/x/vxastro/types"
)

// Vote relays an emissions vote with the current voting power of the voter to the hub
func (k Keeper) Vote(ctx sdk.Context, voter sdk.AccAddress, votes []emissionstypes.PoolVote) error {
	if err := emissionstypes.ValidateVotes(votes); err != nil {
		return err
	}
	if _, err := k.readyToSend(ctx, voter.String()); err != nil {
		return err
	}
	power := k.votingPower.VotingPower(ctx, voter)
	if !power.IsPositive() {
		return types.ErrZeroVotingPower
	}
	return k.sendUserMsg(ctx, voter.String(), emissionstypes.OutpostMsg{Vote: &emissionstypes.VotePacket{
		Voter:       voter.String(),
		VotingPower: power,
		Votes:       votes,
	}})
}

// RefreshUserVotes relays the current voting power of the user to the hub
func (k Keeper) RefreshUserVotes(ctx sdk.Context, voter sdk.AccAddress) error {
	return k.sendUserMsg(ctx, voter.String(), emissionstypes.OutpostMsg{UpdateUserVotes: &emissionstypes.UpdateUserVotesPacket{
		Voter:       voter.String(),
		VotingPower: k.votingPower.VotingPower(ctx, voter),
	}})
}

// CastVote relays a governance vote with the voting power at the proposal snapshot. A proposal that
// is not known yet is registered at the hub first; the vote is queued until the hub confirmed it.
func (k Keeper) CastVote(ctx sdk.Context, voter sdk.AccAddress, proposalID uint64, vote assemblytypes.VoteOption) error {
	if err := vote.ValidateBasic(); err != nil {
		return err
	}
	channelID, err := k.readyToSend(ctx, voter.String())
	if err != nil {
		return err
	}
	if p, ok := k.GetCachedProposal(ctx, proposalID); ok {
		return k.castVote(ctx, voter.String(), p, vote)
	}

	// the registration is requested once, later voters join the queue
	if !k.hasPendingVotes(ctx, proposalID) {
		msg := emissionstypes.OutpostMsg{RegisterProposal: &emissionstypes.RegisterProposalPacket{ProposalID: proposalID}}
		if err := k.send(ctx, channelID, msg); err != nil {
			return err
		}
	}
	k.setPendingVote(ctx, proposalID, voter.String(), vote)
	k.setUserStatus(ctx, voter.String(), types.UserIbcStatus{
		PendingMsg: &types.PendingMessage{
			Msg:    castVoteMsg(voter.String(), proposalID, vote, sdk.ZeroInt()),
			SentAt: uint64(ctx.BlockTime().Unix()),
		},
		Error: k.GetUserStatus(ctx, voter.String()).Error,
	})
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRegisterProposal,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyVoter, voter.String()),
		sdk.NewAttribute(types.AttributeKeyProposalID, strconv.FormatUint(proposalID, 10)),
	))
	return nil
}

func (k Keeper) castVote(ctx sdk.Context, voter string, p assemblytypes.ProposalSnapshot, vote assemblytypes.VoteOption) error {
	addr, err := sdk.AccAddressFromBech32(voter)
	if err != nil {
		return sdkerrors.Wrap(sdkerrors.ErrInvalidAddress, voter)
	}
	// same snapshot as the hub uses for local voters
	power := k.votingPower.VotingPowerAt(ctx, addr, p.StartTime-1)
	if !power.IsPositive() {
		return types.ErrZeroVotingPower
	}
	return k.sendUserMsg(ctx, voter, castVoteMsg(voter, p.ID, vote, power))
}

func castVoteMsg(voter string, proposalID uint64, vote assemblytypes.VoteOption, power sdk.Int) emissionstypes.OutpostMsg {
	return emissionstypes.OutpostMsg{CastVote: &emissionstypes.CastVotePacket{
		ProposalID:  proposalID,
		Voter:       voter,
		Vote:        vote,
		VotingPower: power,
	}}
}

// readyToSend returns the voting channel when the user can send a message
func (k Keeper) readyToSend(ctx sdk.Context, user string) (string, error) {
	channelID := k.GetVotingChannel(ctx)
	if channelID == "" {
		return "", types.ErrNoVotingChannel
	}
	if k.GetUserStatus(ctx, user).IsPending() {
		return "", sdkerrors.Wrap(types.ErrPendingUser, user)
	}
	return channelID, nil
}

// sendUserMsg sends the message of the user and marks it pending until the hub answers
func (k Keeper) sendUserMsg(ctx sdk.Context, user string, msg emissionstypes.OutpostMsg) error {
	channelID, err := k.readyToSend(ctx, user)
	if err != nil {
		return err
	}
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	if err := k.send(ctx, channelID, msg); err != nil {
		return err
	}
	status := k.GetUserStatus(ctx, user)
	status.PendingMsg = &types.PendingMessage{Msg: msg, SentAt: uint64(ctx.BlockTime().Unix())}
	// a governance vote carries the power at the proposal start
	if msg.CastVote == nil {
		status.StalePower = false
	}
	k.setUserStatus(ctx, user, status)

	telemetry.IncrCounter(1, types.ModuleName, "user_msgs")
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		eventType(msg),
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyVoter, user),
		sdk.NewAttribute(types.AttributeKeyVotingPower, votingPowerOf(msg).String()),
	))
	return nil
}

func (k Keeper) send(ctx sdk.Context, channelID string, msg emissionstypes.OutpostMsg) error {
	timeout := time.Duration(k.GetParams(ctx).IbcTimeout) * time.Second
	seq, err := k.endpoint.Send(ctx, channelID, emissionstypes.MustMarshalJSON(msg), timeout)
	if err != nil {
		return sdkerrors.Wrap(err, "send to hub")
	}
	ModuleLogger(ctx).Debug("packet sent", "channel", channelID, "sequence", seq, "voter", msg.Voter())
	return nil
}

func eventType(msg emissionstypes.OutpostMsg) string {
	switch {
	case msg.Vote != nil:
		return types.EventTypeVote
	case msg.CastVote != nil:
		return types.EventTypeCastVote
	default:
		return types.EventTypeUpdateUserVotes
	}
}

func votingPowerOf(msg emissionstypes.OutpostMsg) sdk.Int {
	switch {
	case msg.Vote != nil:
		return msg.Vote.VotingPower
	case msg.CastVote != nil:
		return msg.CastVote.VotingPower
	case msg.UpdateUserVotes != nil:
		return msg.UpdateUserVotes.VotingPower
	default:
		return sdk.ZeroInt()
	}
}

var _ vxastrotypes.VotingPowerHooks = Hooks{}

// Hooks relay vxASTRO changes of outpost users to the hub
type Hooks struct {
	k Keeper
}

// Hooks returns the vxASTRO hooks of the outpost
func (k Keeper) Hooks() Hooks {
	return Hooks{k: k}
}

// AfterVotingPowerChanged fails for users with a message in flight, which aborts the lock change.
// Nothing is relayed before the voting channel is set.
func (h Hooks) AfterVotingPowerChanged(ctx sdk.Context, voter sdk.AccAddress, votingPower sdk.Int, isUnlock bool) error {
	if h.k.GetVotingChannel(ctx) == "" {
		return nil
	}
	return h.k.sendUserMsg(ctx, voter.String(), emissionstypes.OutpostMsg{UpdateUserVotes: &emissionstypes.UpdateUserVotesPacket{
		Voter:       voter.String(),
		VotingPower: votingPower,
		IsUnlock:    isUnlock,
	}})
}

// AfterBlacklistChanged relays the new power like a lock change. For a user with a message in
// flight the relay is deferred until the message resolved.
func (h Hooks) AfterBlacklistChanged(ctx sdk.Context, voter sdk.AccAddress, votingPower sdk.Int) error {
	if h.k.GetVotingChannel(ctx) == "" {
		return nil
	}
	status := h.k.GetUserStatus(ctx, voter.String())
	if status.IsPending() {
		status.StalePower = true
		h.k.setUserStatus(ctx, voter.String(), status)
		ModuleLogger(ctx).Info("voting power relay deferred", "voter", voter.String())
		return nil
	}
	return h.AfterVotingPowerChanged(ctx, voter, votingPower, false)
}
