package keeper

import (
	"strings"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/astroport/governance/x/emissions/types"
	vxastrotypes "github.com/astroport/governance/x/vxastro/types"
)

// Vote replaces the emissions vote of a hub user. The voting power is the current vxASTRO power.
func (k Keeper) Vote(ctx sdk.Context, voter sdk.AccAddress, votes []types.PoolVote) error {
	return k.vote(ctx, voter.String(), k.votingPower.VotingPower(ctx, voter), votes)
}

// vote applies a new vote set. The previous votes of the user are cancelled first.
func (k Keeper) vote(ctx sdk.Context, voter string, votingPower sdk.Int, votes []types.PoolVote) error {
	if err := types.ValidateVotes(votes); err != nil {
		return err
	}
	now := uint64(ctx.BlockTime().Unix())
	old, hasVoted := k.GetUserInfo(ctx, voter)
	if cooldown := k.GetParams(ctx).VoteCooldown; hasVoted && now < old.VoteTs+cooldown {
		return sdkerrors.Wrapf(types.ErrVoteCooldown, "next vote at %d", old.VoteTs+cooldown)
	}
	if !votingPower.IsPositive() {
		return types.ErrZeroVotingPower
	}
	for _, v := range votes {
		if !k.IsWhitelisted(ctx, v.Pool) {
			return sdkerrors.Wrap(types.ErrPoolNotWhitelisted, v.Pool)
		}
	}
	var oldInfo *types.UserInfo
	if hasVoted {
		oldInfo = &old
	}
	info := types.UserInfo{VoteTs: now, VotingPower: votingPower, Votes: votes}
	if err := k.applyVotes(ctx, voter, oldInfo, info); err != nil {
		return err
	}
	telemetry.IncrCounter(1, types.ModuleName, "votes")
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeVote,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyVoter, voter),
		sdk.NewAttribute(types.AttributeKeyVotingPower, votingPower.String()),
		sdk.NewAttribute(types.AttributeKeyPool, poolNames(votes)),
	))
	return nil
}

// UpdateUserVotes applies the new voting power of the user to the existing vote. Users without a
// vote are skipped. The vote time is kept so that the cooldown is not extended.
func (k Keeper) UpdateUserVotes(ctx sdk.Context, voter string, votingPower sdk.Int) error {
	old, found := k.GetUserInfo(ctx, voter)
	if !found {
		return nil
	}
	// votes for pools that left the whitelist or were reset since are dropped
	var votes []types.PoolVote
	for _, v := range old.Votes {
		if k.isVoteCounted(ctx, v.Pool, old.VoteTs) {
			votes = append(votes, v)
		}
	}
	info := types.UserInfo{VoteTs: old.VoteTs, VotingPower: votingPower, Votes: votes}
	if err := k.applyVotes(ctx, voter, &old, info); err != nil {
		return err
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRefreshVotes,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyVoter, voter),
		sdk.NewAttribute(types.AttributeKeyVotingPower, votingPower.String()),
	))
	return nil
}

// RefreshUserVotes applies the current vxASTRO power of a hub user to their vote
func (k Keeper) RefreshUserVotes(ctx sdk.Context, voter sdk.AccAddress) error {
	if _, found := k.GetUserInfo(ctx, voter.String()); !found {
		return sdkerrors.Wrapf(sdkerrors.ErrNotFound, "no vote of %s", voter)
	}
	return k.UpdateUserVotes(ctx, voter.String(), k.votingPower.VotingPower(ctx, voter))
}

// applyVotes cancels the contribution of the old vote and adds the new one to the pool tallies.
func (k Keeper) applyVotes(ctx sdk.Context, voter string, old *types.UserInfo, info types.UserInfo) error {
	var (
		pools  []string
		deltas = make(map[string]sdk.Int)
	)
	addDelta := func(pool string, amount sdk.Int) {
		if d, ok := deltas[pool]; ok {
			deltas[pool] = d.Add(amount)
			return
		}
		pools = append(pools, pool)
		deltas[pool] = amount
	}
	if old != nil {
		for _, v := range old.Votes {
			if k.isVoteCounted(ctx, v.Pool, old.VoteTs) {
				addDelta(v.Pool, weightedPower(old.VotingPower, v.Weight).Neg())
			}
		}
	}
	for _, v := range info.Votes {
		addDelta(v.Pool, weightedPower(info.VotingPower, v.Weight))
	}
	for _, pool := range pools {
		if deltas[pool].IsZero() {
			continue
		}
		poolInfo, _ := k.GetPoolInfo(ctx, pool)
		if poolInfo.VotingPower.IsNil() {
			poolInfo.VotingPower = sdk.ZeroInt()
		}
		poolInfo.VotingPower = poolInfo.VotingPower.Add(deltas[pool])
		if poolInfo.VotingPower.IsNegative() {
			return sdkerrors.Wrapf(sdkerrors.ErrLogic, "negative voting power of pool %s", pool)
		}
		if err := k.setPoolInfo(ctx, pool, poolInfo); err != nil {
			return sdkerrors.Wrapf(err, "pool %s", pool)
		}
	}
	return sdkerrors.Wrap(k.setUserInfo(ctx, voter, info), "user info")
}

// isVoteCounted returns true when a vote cast at voteTs is part of the pool tally
func (k Keeper) isVoteCounted(ctx sdk.Context, pool string, voteTs uint64) bool {
	if !k.IsWhitelisted(ctx, pool) {
		return false
	}
	info, found := k.GetPoolInfo(ctx, pool)
	return found && info.InitTs <= voteTs
}

func weightedPower(power sdk.Int, weight sdk.Dec) sdk.Int {
	return power.ToDec().Mul(weight).TruncateInt()
}

func poolNames(votes []types.PoolVote) string {
	names := make([]string, len(votes))
	for i, v := range votes {
		names[i] = v.Pool
	}
	return strings.Join(names, ",")
}

var _ vxastrotypes.VotingPowerHooks = Hooks{}

// Hooks refresh the votes of hub users on vxASTRO changes
type Hooks struct {
	k Keeper
}

// Hooks returns the vxASTRO hooks of the emissions controller
func (k Keeper) Hooks() Hooks {
	return Hooks{k: k}
}

func (h Hooks) AfterVotingPowerChanged(ctx sdk.Context, voter sdk.AccAddress, votingPower sdk.Int, _ bool) error {
	return h.k.UpdateUserVotes(ctx, voter.String(), votingPower)
}

func (h Hooks) AfterBlacklistChanged(ctx sdk.Context, voter sdk.AccAddress, votingPower sdk.Int) error {
	return h.k.UpdateUserVotes(ctx, voter.String(), votingPower)
}
