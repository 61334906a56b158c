package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	host "github.com/cosmos/ibc-go/v2/modules/core/24-host"

	assemblytypes "github.com/astroport/governance/x/assembly/types"
)

// GenesisState of the outpost
type GenesisState struct {
	Params        Params `json:"params"`
	VotingChannel string `json:"voting_channel,omitempty"`
	// Proposals registered at the hub
	Proposals    []assemblytypes.ProposalSnapshot `json:"proposals,omitempty"`
	UserStatuses []GenesisUserStatus              `json:"user_statuses,omitempty"`
	PendingVotes []GenesisPendingVote             `json:"pending_votes,omitempty"`
}

type GenesisUserStatus struct {
	User   string        `json:"user"`
	Status UserIbcStatus `json:"status"`
}

// GenesisPendingVote is a governance vote waiting for the registration of its proposal
type GenesisPendingVote struct {
	ProposalID uint64                   `json:"proposal_id"`
	Voter      string                   `json:"voter"`
	Vote       assemblytypes.VoteOption `json:"vote"`
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
	if g.VotingChannel != "" {
		if err := host.ChannelIdentifierValidator(g.VotingChannel); err != nil {
			return sdkerrors.Wrap(ErrInvalidChannel, err.Error())
		}
	}
	proposals := make(map[uint64]struct{}, len(g.Proposals))
	for _, p := range g.Proposals {
		if _, exists := proposals[p.ID]; exists {
			return sdkerrors.Wrapf(sdkerrors.ErrInvalidRequest, "duplicate proposal: %d", p.ID)
		}
		proposals[p.ID] = struct{}{}
	}
	users := make(map[string]struct{}, len(g.UserStatuses))
	for _, u := range g.UserStatuses {
		if _, err := sdk.AccAddressFromBech32(u.User); err != nil {
			return sdkerrors.Wrapf(sdkerrors.ErrInvalidAddress, "user %s", u.User)
		}
		if _, exists := users[u.User]; exists {
			return sdkerrors.Wrapf(sdkerrors.ErrInvalidRequest, "duplicate user: %s", u.User)
		}
		users[u.User] = struct{}{}
	}
	for _, v := range g.PendingVotes {
		if _, cached := proposals[v.ProposalID]; cached {
			return sdkerrors.Wrapf(sdkerrors.ErrInvalidRequest, "pending vote for registered proposal %d", v.ProposalID)
		}
		if err := v.Vote.ValidateBasic(); err != nil {
			return err
		}
		if _, exists := users[v.Voter]; !exists {
			return sdkerrors.Wrapf(sdkerrors.ErrInvalidRequest, "pending vote of %s without status", v.Voter)
		}
	}
	return nil
}
