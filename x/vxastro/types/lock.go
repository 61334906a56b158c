package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Lock is a vote escrow position
type Lock struct {
	Amount sdk.Int `json:"amount"`
	// UnlockTime is the unix time in seconds at which an unlocking position can be withdrawn.
	// Zero when the position is locked.
	UnlockTime uint64 `json:"unlock_time,omitempty"`
}

// IsUnlocking returns true when an unlock was started
func (l Lock) IsUnlocking() bool {
	return l.UnlockTime != 0
}

// VotingPower of the position
func (l Lock) VotingPower() sdk.Int {
	if l.IsUnlocking() || l.Amount.IsNil() {
		return sdk.ZeroInt()
	}
	return l.Amount
}

// VotingPowerHooks are notified whenever the voting power of a user changes.
// A returned error aborts the operation that changed the voting power.
type VotingPowerHooks interface {
	AfterVotingPowerChanged(ctx sdk.Context, voter sdk.AccAddress, votingPower sdk.Int, isUnlock bool) error
	// AfterBlacklistChanged is called when the owner adds the voter to the blacklist or removes it.
	// The voter did not act, so the state of the voter must not fail the call.
	AfterBlacklistChanged(ctx sdk.Context, voter sdk.AccAddress, votingPower sdk.Int) error
}

var _ VotingPowerHooks = MultiVotingPowerHooks{}

// MultiVotingPowerHooks combines multiple hooks, called in order
type MultiVotingPowerHooks []VotingPowerHooks

// NewMultiVotingPowerHooks constructor
func NewMultiVotingPowerHooks(hooks ...VotingPowerHooks) MultiVotingPowerHooks {
	return hooks
}

func (h MultiVotingPowerHooks) AfterVotingPowerChanged(ctx sdk.Context, voter sdk.AccAddress, votingPower sdk.Int, isUnlock bool) error {
	for _, v := range h {
		if err := v.AfterVotingPowerChanged(ctx, voter, votingPower, isUnlock); err != nil {
			return err
		}
	}
	return nil
}

func (h MultiVotingPowerHooks) AfterBlacklistChanged(ctx sdk.Context, voter sdk.AccAddress, votingPower sdk.Int) error {
	for _, v := range h {
		if err := v.AfterBlacklistChanged(ctx, voter, votingPower); err != nil {
			return err
		}
	}
	return nil
}
