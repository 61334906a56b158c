package types

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// GenesisState of the emissions controller
type GenesisState struct {
	Params    Params        `json:"params"`
	Outposts  []OutpostInfo `json:"outposts,omitempty"`
	Whitelist []string      `json:"whitelist,omitempty"`
	// PoolInfos are the latest tallies of the whitelisted pools
	PoolInfos []GenesisPoolInfo `json:"pool_infos,omitempty"`
	// UserInfos are the latest votes of all users
	UserInfos []GenesisUserInfo `json:"user_infos,omitempty"`
	// TuneInfo of the latest tuning, nil when the pools were never tuned
	TuneInfo *TuneInfo `json:"tune_info,omitempty"`
}

type GenesisPoolInfo struct {
	Pool string        `json:"pool"`
	Info VotedPoolInfo `json:"info"`
}

type GenesisUserInfo struct {
	Voter string   `json:"voter"`
	Info  UserInfo `json:"info"`
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
	outposts := make(map[string]struct{}, len(g.Outposts))
	channels := make(map[string]struct{}, len(g.Outposts))
	for _, o := range g.Outposts {
		if err := o.ValidateBasic(); err != nil {
			return sdkerrors.Wrapf(err, "outpost %s", o.Prefix)
		}
		if _, exists := outposts[o.Prefix]; exists {
			return sdkerrors.Wrapf(ErrInvalidOutpost, "duplicate outpost: %s", o.Prefix)
		}
		outposts[o.Prefix] = struct{}{}
		if o.Params == nil {
			continue
		}
		if _, exists := channels[o.Params.VotingChannel]; exists {
			return sdkerrors.Wrapf(ErrChannelAlreadyBound, "voting channel %s", o.Params.VotingChannel)
		}
		channels[o.Params.VotingChannel] = struct{}{}
	}
	whitelist := make(map[string]struct{}, len(g.Whitelist))
	for _, pool := range g.Whitelist {
		prefix, err := DeterminePoolPrefix(pool)
		if err != nil {
			return err
		}
		if _, exists := outposts[prefix]; !exists {
			return sdkerrors.Wrapf(ErrNoOutpostForPool, "pool %s", pool)
		}
		if _, exists := whitelist[pool]; exists {
			return sdkerrors.Wrapf(ErrPoolAlreadyWhitelisted, "duplicate pool: %s", pool)
		}
		whitelist[pool] = struct{}{}
	}
	for _, p := range g.PoolInfos {
		if _, exists := whitelist[p.Pool]; !exists {
			return sdkerrors.Wrapf(ErrPoolNotWhitelisted, "pool info %s", p.Pool)
		}
		if p.Info.VotingPower.IsNil() || p.Info.VotingPower.IsNegative() {
			return sdkerrors.Wrapf(sdkerrors.ErrInvalidRequest, "voting power of pool %s", p.Pool)
		}
	}
	voters := make(map[string]struct{}, len(g.UserInfos))
	for _, u := range g.UserInfos {
		if u.Voter == "" {
			return sdkerrors.Wrap(sdkerrors.ErrInvalidAddress, "empty voter")
		}
		if _, exists := voters[u.Voter]; exists {
			return sdkerrors.Wrapf(sdkerrors.ErrInvalidRequest, "duplicate voter: %s", u.Voter)
		}
		voters[u.Voter] = struct{}{}
		// refreshed votes may have lost all pools
		if len(u.Info.Votes) != 0 {
			if err := ValidateVotes(u.Info.Votes); err != nil {
				return sdkerrors.Wrapf(err, "voter %s", u.Voter)
			}
		}
		if u.Info.VotingPower.IsNil() || u.Info.VotingPower.IsNegative() {
			return sdkerrors.Wrapf(sdkerrors.ErrInvalidRequest, "voting power of %s", u.Voter)
		}
	}
	if t := g.TuneInfo; t != nil {
		if t.TuneTs != EpochStart(t.TuneTs) {
			return sdkerrors.Wrapf(sdkerrors.ErrInvalidRequest, "tune ts %d is not an epoch start", t.TuneTs)
		}
		for _, o := range t.PoolsGrouped {
			if _, ok := t.OutpostEmissionsStatuses[o.Prefix]; !ok {
				return sdkerrors.Wrapf(sdkerrors.ErrInvalidRequest, "no emissions status of %s", o.Prefix)
			}
		}
	}
	return nil
}
