package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// GenesisState of the vote escrow module
type GenesisState struct {
	Params    Params        `json:"params"`
	Locks     []GenesisLock `json:"locks,omitempty"`
	Blacklist []string      `json:"blacklist,omitempty"`
}

// GenesisLock is a position of a user
type GenesisLock struct {
	Address string `json:"address"`
	Lock    Lock   `json:"lock"`
}

// DefaultGenesisState default values
func DefaultGenesisState() GenesisState {
	return GenesisState{Params: DefaultParams()}
}

// ValidateGenesis validates the genesis state
func ValidateGenesis(g GenesisState) error {
	if err := g.Params.Validate(); err != nil {
		return sdkerrors.Wrap(err, "params")
	}
	uniqueLocks := make(map[string]struct{}, len(g.Locks))
	for i, v := range g.Locks {
		if _, err := sdk.AccAddressFromBech32(v.Address); err != nil {
			return sdkerrors.Wrapf(err, "lock %d", i)
		}
		if v.Lock.Amount.IsNil() || !v.Lock.Amount.IsPositive() {
			return sdkerrors.Wrapf(ErrZeroAmount, "lock %d", i)
		}
		if _, exists := uniqueLocks[v.Address]; exists {
			return sdkerrors.Wrapf(sdkerrors.ErrInvalidRequest, "duplicate lock: %s", v.Address)
		}
		uniqueLocks[v.Address] = struct{}{}
	}
	for i, v := range g.Blacklist {
		if _, err := sdk.AccAddressFromBech32(v); err != nil {
			return sdkerrors.Wrapf(err, "blacklist %d", i)
		}
	}
	return nil
}
