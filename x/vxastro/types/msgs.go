package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ExecuteMsg is the entry point of the vote escrow module. Exactly one field must be set.
type ExecuteMsg struct {
	// Lock escrows the attached funds
	Lock            *struct{}           `json:"lock,omitempty"`
	Unlock          *struct{}           `json:"unlock,omitempty"`
	Relock          *struct{}           `json:"relock,omitempty"`
	Withdraw        *struct{}           `json:"withdraw,omitempty"`
	UpdateBlacklist *UpdateBlacklistMsg `json:"update_blacklist,omitempty"`
}

type UpdateBlacklistMsg struct {
	Append []string `json:"append_addrs,omitempty"`
	Remove []string `json:"remove_addrs,omitempty"`
}

// QueryMsg queries of the vote escrow module. Exactly one field must be set.
type QueryMsg struct {
	// Returns VotingPowerResponse
	UserVotingPower *UserVotingPowerQuery `json:"user_voting_power,omitempty"`
	// Returns VotingPowerResponse
	TotalVotingPower *TimestampQuery `json:"total_voting_power,omitempty"`
	// Returns LockResponse
	LockInfo *UserQuery `json:"lock_info,omitempty"`
	// Returns Params
	Config *struct{} `json:"config,omitempty"`
}

type UserVotingPowerQuery struct {
	User string `json:"user"`
	// Timestamp optional, latest when not set
	Timestamp *uint64 `json:"timestamp,omitempty"`
}

type TimestampQuery struct {
	Timestamp *uint64 `json:"timestamp,omitempty"`
}

type UserQuery struct {
	User string `json:"user"`
}

type VotingPowerResponse struct {
	VotingPower sdk.Int `json:"voting_power"`
}

type LockResponse struct {
	Lock        *Lock `json:"lock,omitempty"`
	Blacklisted bool  `json:"blacklisted"`
}
