package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// MaxPoolsToVote is the max number of pools in a single vote
const MaxPoolsToVote = 5

// PoolVote is the share of the voting power a user dedicates to a pool
type PoolVote struct {
	Pool   string  `json:"pool"`
	Weight sdk.Dec `json:"weight"`
}

// ValidateVotes checks that pools are unique and all weights are positive and sum up to at most one
func ValidateVotes(votes []PoolVote) error {
	if len(votes) == 0 {
		return sdkerrors.Wrap(ErrInvalidVotes, "empty")
	}
	if len(votes) > MaxPoolsToVote {
		return sdkerrors.Wrapf(ErrInvalidVotes, "max %d pools", MaxPoolsToVote)
	}
	seen := make(map[string]struct{}, len(votes))
	sum := sdk.ZeroDec()
	for _, v := range votes {
		if _, exists := seen[v.Pool]; exists {
			return sdkerrors.Wrapf(ErrInvalidVotes, "duplicate pool: %s", v.Pool)
		}
		seen[v.Pool] = struct{}{}
		if v.Weight.IsNil() || !v.Weight.IsPositive() {
			return sdkerrors.Wrapf(ErrInvalidVotes, "weight of %s must be positive", v.Pool)
		}
		sum = sum.Add(v.Weight)
		if sum.GT(sdk.OneDec()) {
			return sdkerrors.Wrap(ErrInvalidVotes, "weights exceed 1")
		}
	}
	return nil
}

// UserInfo is the latest vote of a user with the voting power it was applied with
type UserInfo struct {
	VoteTs      uint64     `json:"vote_ts"`
	VotingPower sdk.Int    `json:"voting_power"`
	Votes       []PoolVote `json:"votes"`
}

// VotedPoolInfo is the tally of a pool. InitTs is the time of the latest whitelisting; votes cast
// before it are no longer part of the tally.
type VotedPoolInfo struct {
	InitTs      uint64  `json:"init_ts"`
	VotingPower sdk.Int `json:"voting_power"`
}
