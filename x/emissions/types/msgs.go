package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ExecuteMsg is the entry point of the emissions controller. Exactly one field must be set.
type ExecuteMsg struct {
	Vote             *VoteMsg      `json:"vote,omitempty"`
	RefreshUserVotes *struct{}     `json:"refresh_user_votes,omitempty"`
	WhitelistPool    *PoolMsg      `json:"whitelist_pool,omitempty"`
	TunePools        *struct{}     `json:"tune_pools,omitempty"`
	RetryFailed      *struct{}     `json:"retry_failed_outposts,omitempty"`
	RegisterProposal *ProposalMsg  `json:"register_proposal,omitempty"`
	RemovePool       *PoolMsg      `json:"remove_from_whitelist,omitempty"`
	UpdateOutpost    *OutpostInfo  `json:"update_outpost,omitempty"`
	RemoveOutpost    *OutpostMsgID `json:"remove_outpost,omitempty"`
	JailOutpost      *OutpostMsgID `json:"jail_outpost,omitempty"`
	UnjailOutpost    *OutpostMsgID `json:"unjail_outpost,omitempty"`
	UpdateParams     *Params       `json:"update_config,omitempty"`
}

type VoteMsg struct {
	Votes []PoolVote `json:"votes"`
}

type PoolMsg struct {
	Pool string `json:"lp_token"`
}

type ProposalMsg struct {
	ProposalID uint64 `json:"proposal_id"`
}

type OutpostMsgID struct {
	Prefix string `json:"prefix"`
}

// QueryMsg queries of the emissions controller. Exactly one field must be set.
type QueryMsg struct {
	Config *struct{} `json:"config,omitempty"`
	// Returns UserInfo
	UserInfo *UserInfoQuery `json:"user_info,omitempty"`
	// Returns VotedPoolInfo
	VotedPool *VotedPoolQuery `json:"voted_pool,omitempty"`
	// Returns []VotedPoolsResponse of all whitelisted pools
	VotedPools *struct{} `json:"voted_pools,omitempty"`
	// Returns []string
	Whitelist *struct{} `json:"list_whitelisted_pools,omitempty"`
	// Returns []OutpostInfo
	Outposts *struct{} `json:"list_outposts,omitempty"`
	// Returns TuneInfo
	TuneInfo *TimestampQuery `json:"tune_info,omitempty"`
	// Returns TuneInfo
	SimulateTune *struct{} `json:"simulate_tune,omitempty"`
}

type UserInfoQuery struct {
	User string `json:"user"`
	// Timestamp unix time in seconds, latest when not set
	Timestamp *uint64 `json:"timestamp,omitempty"`
}

type VotedPoolQuery struct {
	Pool      string  `json:"pool"`
	Timestamp *uint64 `json:"timestamp,omitempty"`
}

type TimestampQuery struct {
	Timestamp *uint64 `json:"timestamp,omitempty"`
}

// VotedPoolsResponse is a whitelisted pool with its current tally
type VotedPoolsResponse struct {
	Pool        string  `json:"pool"`
	VotingPower sdk.Int `json:"voting_power"`
	InitTs      uint64  `json:"init_ts"`
}
