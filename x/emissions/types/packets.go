package types

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	assemblytypes "github.com/astroport/governance/x/assembly/types"
)

// Version is the application version of the channels between hub and outposts
const Version = "astroport-ibc-v1"

// OutpostMsg is a packet sent from an outpost to the hub. Exactly one field must be set.
type OutpostMsg struct {
	// Vote applies a new emissions vote of a remote user
	Vote *VotePacket `json:"vote,omitempty"`
	// UpdateUserVotes applies the new voting power of a remote user to the existing vote
	UpdateUserVotes *UpdateUserVotesPacket `json:"update_user_votes,omitempty"`
	// CastVote casts a governance vote of a remote user
	CastVote *CastVotePacket `json:"cast_vote,omitempty"`
	// RegisterProposal asks the hub for the data of a proposal. The ack carries a ProposalSnapshot.
	RegisterProposal *RegisterProposalPacket `json:"register_proposal,omitempty"`
}

type VotePacket struct {
	Voter       string     `json:"voter"`
	VotingPower sdk.Int    `json:"voting_power"`
	Votes       []PoolVote `json:"votes"`
}

type UpdateUserVotesPacket struct {
	Voter       string  `json:"voter"`
	VotingPower sdk.Int `json:"voting_power"`
	IsUnlock    bool    `json:"is_unlock"`
}

type CastVotePacket struct {
	ProposalID  uint64                   `json:"proposal_id"`
	Voter       string                   `json:"voter"`
	Vote        assemblytypes.VoteOption `json:"vote"`
	VotingPower sdk.Int                  `json:"voting_power"`
}

type RegisterProposalPacket struct {
	ProposalID uint64 `json:"proposal_id"`
}

// Voter returns the user the packet acts for, empty for proposal registrations
func (m OutpostMsg) Voter() string {
	switch {
	case m.Vote != nil:
		return m.Vote.Voter
	case m.UpdateUserVotes != nil:
		return m.UpdateUserVotes.Voter
	case m.CastVote != nil:
		return m.CastVote.Voter
	default:
		return ""
	}
}

// ValidateBasic checks that exactly one message is set with non negative voting power
func (m OutpostMsg) ValidateBasic() error {
	var n int
	if m.Vote != nil {
		n++
		if err := ValidateVotes(m.Vote.Votes); err != nil {
			return err
		}
		if err := validateVotingPower(m.Vote.VotingPower); err != nil {
			return err
		}
	}
	if m.UpdateUserVotes != nil {
		n++
		if err := validateVotingPower(m.UpdateUserVotes.VotingPower); err != nil {
			return err
		}
	}
	if m.CastVote != nil {
		n++
		if err := validateVotingPower(m.CastVote.VotingPower); err != nil {
			return err
		}
		if err := m.CastVote.Vote.ValidateBasic(); err != nil {
			return err
		}
	}
	if m.RegisterProposal != nil {
		n++
	}
	if n != 1 {
		return sdkerrors.Wrap(ErrInvalidPacket, "exactly one message required")
	}
	if m.RegisterProposal == nil && m.Voter() == "" {
		return sdkerrors.Wrap(ErrInvalidPacket, "empty voter")
	}
	return nil
}

func validateVotingPower(v sdk.Int) error {
	if v.IsNil() || v.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidPacket, "voting power")
	}
	return nil
}

// HubMsg is a packet sent from the hub to an outpost
type HubMsg struct {
	// RegisterProposal announces a new proposal that remote users can vote on
	RegisterProposal *assemblytypes.ProposalSnapshot `json:"register_proposal,omitempty"`
}

// SetEmissionsMemo is attached to the emissions transfer to an outpost. The outpost controller
// distributes the received ASTRO accordingly.
type SetEmissionsMemo struct {
	SetEmissions []PoolAmount `json:"set_emissions"`
}

// MustMarshalJSON marshals the value and panics on errors
func MustMarshalJSON(v interface{}) []byte {
	bz, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return bz
}
