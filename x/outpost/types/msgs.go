package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	assemblytypes "github.com/astroport/governance/x/assembly/types"
	emissionstypes "github.com/astroport/governance/x/emissions/types"
)

// ExecuteMsg is the entry point of the outpost. Exactly one field must be set.
type ExecuteMsg struct {
	// Vote relays an emissions vote with the current voting power to the hub
	Vote *emissionstypes.VoteMsg `json:"vote,omitempty"`
	// CastVote relays a governance vote with the voting power at the proposal snapshot
	CastVote *CastVoteMsg `json:"cast_vote,omitempty"`
	// RefreshUserVotes relays the current voting power of the sender
	RefreshUserVotes *struct{} `json:"refresh_user_votes,omitempty"`
	// SetEmissions distributes the attached ASTRO to the local pools
	SetEmissions []emissionstypes.PoolAmount `json:"set_emissions,omitempty"`
	// SetVotingChannel binds the channel to the hub. Owner only.
	SetVotingChannel *VotingChannelMsg `json:"set_voting_channel,omitempty"`
	// UpdateParams replaces the params. Owner only.
	UpdateParams *Params `json:"update_config,omitempty"`
}

type CastVoteMsg struct {
	ProposalID uint64                   `json:"proposal_id"`
	Vote       assemblytypes.VoteOption `json:"vote"`
}

type VotingChannelMsg struct {
	Channel string `json:"channel"`
}

// QueryMsg queries of the outpost. Exactly one field must be set.
type QueryMsg struct {
	Config        *struct{}        `json:"config,omitempty"`
	UserIbcStatus *UserQuery       `json:"query_user_ibc_status,omitempty"`
	ProposalCache *ProposalIDQuery `json:"query_proposal,omitempty"`
	VotingPower   *UserQuery       `json:"voting_power,omitempty"`
}

type UserQuery struct {
	User string `json:"user"`
}

type ProposalIDQuery struct {
	ProposalID uint64 `json:"proposal_id"`
}

// ConfigResponse is the config of the outpost
type ConfigResponse struct {
	Params        Params `json:"params"`
	VotingChannel string `json:"voting_channel,omitempty"`
}

// VotingPowerResponse is the local voting power of a user
type VotingPowerResponse struct {
	VotingPower sdk.Int `json:"voting_power"`
}
