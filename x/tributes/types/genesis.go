package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	emissionstypes "github.com/astroport/governance/x/emissions/types"
)

// GenesisState of the tributes module
type GenesisState struct {
	Params     Params             `json:"params"`
	Tributes   []GenesisTribute   `json:"tributes,omitempty"`
	LastClaims []GenesisLastClaim `json:"last_claims,omitempty"`
}

type GenesisTribute struct {
	EpochTs uint64      `json:"epoch_ts"`
	LpToken string      `json:"lp_token"`
	Tribute TributeInfo `json:"tribute"`
}

type GenesisLastClaim struct {
	User    string `json:"user"`
	EpochTs uint64 `json:"epoch_ts"`
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
	seen := make(map[string]struct{}, len(g.Tributes))
	denoms := make(map[string]uint64)
	for i, t := range g.Tributes {
		if emissionstypes.EpochStart(t.EpochTs) != t.EpochTs {
			return sdkerrors.Wrapf(ErrInvalidTribute, "tribute %d: %d is no epoch start", i, t.EpochTs)
		}
		if t.LpToken == "" {
			return sdkerrors.Wrapf(ErrInvalidTribute, "tribute %d: empty lp token", i)
		}
		if err := t.Tribute.ValidateBasic(); err != nil {
			return sdkerrors.Wrapf(err, "tribute %d", i)
		}
		key := string(GetTributeKey(t.EpochTs, t.LpToken, t.Tribute.Allocated.Denom))
		if _, exists := seen[key]; exists {
			return sdkerrors.Wrapf(ErrInvalidTribute, "tribute %d: duplicate", i)
		}
		seen[key] = struct{}{}
		pool := string(GetPoolTributesPrefix(t.EpochTs, t.LpToken))
		denoms[pool]++
		if denoms[pool] > g.Params.RewardsLimit {
			return sdkerrors.Wrapf(ErrRewardsLimitExceeded, "tribute %d", i)
		}
	}
	users := make(map[string]struct{}, len(g.LastClaims))
	for _, c := range g.LastClaims {
		if _, err := sdk.AccAddressFromBech32(c.User); err != nil {
			return sdkerrors.Wrapf(sdkerrors.ErrInvalidAddress, "last claim of %q", c.User)
		}
		if _, exists := users[c.User]; exists {
			return fmt.Errorf("duplicate last claim of %s", c.User)
		}
		users[c.User] = struct{}{}
		if emissionstypes.EpochStart(c.EpochTs) != c.EpochTs {
			return fmt.Errorf("last claim of %s: %d is no epoch start", c.User, c.EpochTs)
		}
	}
	return nil
}
