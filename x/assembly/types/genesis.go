package types

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// GenesisState of the assembly
type GenesisState struct {
	Config    Config        `json:"config"`
	Proposals []Proposal    `json:"proposals,omitempty"`
	Votes     []GenesisVote `json:"votes,omitempty"`
}

// GenesisVote is a vote of a voter on a proposal
type GenesisVote struct {
	ProposalID uint64     `json:"proposal_id"`
	Voter      string     `json:"voter"`
	Vote       VoteOption `json:"vote"`
}

// DefaultGenesisState default values
func DefaultGenesisState() GenesisState {
	return GenesisState{Config: DefaultConfig()}
}

// ValidateGenesis validates the genesis state
func ValidateGenesis(g GenesisState) error {
	if err := g.Config.Validate(); err != nil {
		return sdkerrors.Wrap(err, "config")
	}
	ids := make(map[uint64]struct{}, len(g.Proposals))
	for _, p := range g.Proposals {
		if p.ID == 0 {
			return sdkerrors.Wrap(ErrInvalidProposal, "id must not be zero")
		}
		if _, exists := ids[p.ID]; exists {
			return sdkerrors.Wrapf(ErrInvalidProposal, "duplicate id: %d", p.ID)
		}
		ids[p.ID] = struct{}{}
	}
	type voteKey struct {
		id    uint64
		voter string
	}
	votes := make(map[voteKey]struct{}, len(g.Votes))
	for _, v := range g.Votes {
		if _, exists := ids[v.ProposalID]; !exists {
			return sdkerrors.Wrapf(ErrProposalNotFound, "vote for %d", v.ProposalID)
		}
		if err := v.Vote.ValidateBasic(); err != nil {
			return err
		}
		k := voteKey{id: v.ProposalID, voter: v.Voter}
		if _, exists := votes[k]; exists {
			return sdkerrors.Wrapf(ErrUserAlreadyVoted, "%s on %d", v.Voter, v.ProposalID)
		}
		votes[k] = struct{}{}
	}
	return nil
}
