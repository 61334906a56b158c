package types

import (
	wasmvmtypes "github.com/CosmWasm/wasmvm/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ExecuteMsg is the entry point of the assembly. Exactly one field must be set.
type ExecuteMsg struct {
	// SubmitProposal requires the deposit attached as funds
	SubmitProposal  *SubmitProposalMsg `json:"submit_proposal,omitempty"`
	CastVote        *CastVoteMsg       `json:"cast_vote,omitempty"`
	EndProposal     *ProposalIDMsg     `json:"end_proposal,omitempty"`
	ExecuteProposal *ProposalIDMsg     `json:"execute_proposal,omitempty"`
	// CheckMessages always fails. ErrMessagesCheckPassed signals that all messages can be executed.
	CheckMessages *CheckMessagesMsg `json:"check_messages,omitempty"`
	// CheckMessagesPassed is the sentinel appended by CheckMessages
	CheckMessagesPassed *struct{} `json:"check_messages_passed,omitempty"`
	// IBCProposalCompleted can only be sent by the IBC controller
	IBCProposalCompleted *IBCProposalCompletedMsg `json:"ibc_proposal_completed,omitempty"`
	// UpdateConfig can only be executed by the assembly itself
	UpdateConfig *ConfigUpdate `json:"update_config,omitempty"`
}

type SubmitProposalMsg struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Link        string                  `json:"link,omitempty"`
	Messages    []wasmvmtypes.CosmosMsg `json:"messages,omitempty"`
	IBCChannel  string                  `json:"ibc_channel,omitempty"`
}

type CastVoteMsg struct {
	ProposalID uint64     `json:"proposal_id"`
	Vote       VoteOption `json:"vote"`
}

type ProposalIDMsg struct {
	ProposalID uint64 `json:"proposal_id"`
}

type CheckMessagesMsg struct {
	Messages []wasmvmtypes.CosmosMsg `json:"messages"`
}

type IBCProposalCompletedMsg struct {
	ProposalID uint64         `json:"proposal_id"`
	Status     ProposalStatus `json:"status"`
}

// QueryMsg queries of the assembly. Exactly one field must be set.
type QueryMsg struct {
	Config *struct{} `json:"config,omitempty"`
	// Returns ProposalListResponse
	Proposals *ProposalsQuery `json:"proposals,omitempty"`
	// Returns Proposal
	Proposal *ProposalIDMsg `json:"proposal,omitempty"`
	// Returns ProposalVotesResponse
	ProposalVotes *ProposalIDMsg `json:"proposal_votes,omitempty"`
	// Returns []VoterResponse
	ProposalVoters *ProposalVotersQuery `json:"proposal_voters,omitempty"`
	// Returns sdk.Int
	UserVotingPower *UserVotingPowerQuery `json:"user_voting_power,omitempty"`
	// Returns sdk.Int
	TotalVotingPower *ProposalIDMsg `json:"total_voting_power,omitempty"`
	// Returns VoterResponse
	UserVote *UserVoteQuery `json:"user_vote,omitempty"`
}

type ProposalsQuery struct {
	StartAfter uint64 `json:"start_after,omitempty"`
	Limit      uint32 `json:"limit,omitempty"`
}

type ProposalVotersQuery struct {
	ProposalID uint64 `json:"proposal_id"`
	StartAfter string `json:"start_after,omitempty"`
	Limit      uint32 `json:"limit,omitempty"`
}

type UserVotingPowerQuery struct {
	User       string `json:"user"`
	ProposalID uint64 `json:"proposal_id"`
}

type UserVoteQuery struct {
	ProposalID uint64 `json:"proposal_id"`
	User       string `json:"user"`
}

type ProposalListResponse struct {
	ProposalCount uint64     `json:"proposal_count"`
	Proposals     []Proposal `json:"proposal_list"`
}

type ProposalVotesResponse struct {
	ProposalID   uint64  `json:"proposal_id"`
	ForPower     sdk.Int `json:"for_power"`
	AgainstPower sdk.Int `json:"against_power"`
}

type VoterResponse struct {
	Address string     `json:"address"`
	Vote    VoteOption `json:"vote"`
}
