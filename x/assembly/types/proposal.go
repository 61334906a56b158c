package types

import (
	"fmt"
	"strings"

	wasmvmtypes "github.com/CosmWasm/wasmvm/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

type ProposalStatus string

const (
	ProposalStatusActive     ProposalStatus = "active"
	ProposalStatusPassed     ProposalStatus = "passed"
	ProposalStatusRejected   ProposalStatus = "rejected"
	ProposalStatusInProgress ProposalStatus = "in_progress"
	ProposalStatusFailed     ProposalStatus = "failed"
	ProposalStatusExecuted   ProposalStatus = "executed"
	ProposalStatusExpired    ProposalStatus = "expired"
)

type VoteOption string

const (
	VoteOptionFor     VoteOption = "for"
	VoteOptionAgainst VoteOption = "against"
)

// ValidateBasic checks the option is known
func (v VoteOption) ValidateBasic() error {
	switch v {
	case VoteOptionFor, VoteOptionAgainst:
		return nil
	default:
		return sdkerrors.Wrapf(sdkerrors.ErrInvalidRequest, "unknown vote option: %q", v)
	}
}

// Proposal is the historic record of a governance proposal. Proposals are never deleted.
type Proposal struct {
	ID          uint64         `json:"proposal_id"`
	Submitter   string         `json:"submitter"`
	Status      ProposalStatus `json:"status"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Link        string         `json:"link,omitempty"`
	// Messages are dispatched on execution, on this chain or over IBCChannel
	Messages   []wasmvmtypes.CosmosMsg `json:"messages,omitempty"`
	IBCChannel string                  `json:"ibc_channel,omitempty"`

	ForPower            sdk.Int `json:"for_power"`
	AgainstPower        sdk.Int `json:"against_power"`
	OutpostForPower     sdk.Int `json:"outpost_for_power"`
	OutpostAgainstPower sdk.Int `json:"outpost_against_power"`
	// TotalVotingPower is sealed on submit with the supply one second before the start time
	TotalVotingPower sdk.Int `json:"total_voting_power"`

	StartBlock      int64    `json:"start_block"`
	StartTime       uint64   `json:"start_time"`
	EndBlock        int64    `json:"end_block"`
	DelayedEndBlock int64    `json:"delayed_end_block"`
	ExpirationBlock int64    `json:"expiration_block"`
	Deposit         sdk.Coin `json:"deposit"`
}

// SnapshotTime is the time the voting power of a proposal is read at. Voting power acquired in the
// block of the submission does not count.
func (p Proposal) SnapshotTime() uint64 {
	return p.StartTime - 1
}

// Tally returns the quorum and threshold reached
func (p Proposal) Tally() (quorum sdk.Dec, threshold sdk.Dec) {
	votes := p.ForPower.Add(p.AgainstPower)
	quorum, threshold = sdk.ZeroDec(), sdk.ZeroDec()
	if p.TotalVotingPower.IsPositive() {
		quorum = votes.ToDec().QuoInt(p.TotalVotingPower)
	}
	if votes.IsPositive() {
		threshold = p.ForPower.ToDec().QuoInt(votes)
	}
	return quorum, threshold
}

// ProposalSnapshot is the data outposts need to accept votes for a proposal
type ProposalSnapshot struct {
	ID        uint64 `json:"id"`
	StartTime uint64 `json:"start_time"`
}

// ValidateProposalText checks title, description and link
func ValidateProposalText(title, description, link string, whitelistedLinks []string) error {
	if l := len(title); l < TitleMinLength || l > TitleMaxLength {
		return sdkerrors.Wrapf(ErrInvalidProposal, "title length must be in [%d, %d]", TitleMinLength, TitleMaxLength)
	}
	if !isSafeText(title) {
		return sdkerrors.Wrap(ErrInvalidProposal, "title contains invalid characters")
	}
	if l := len(description); l < DescriptionMinLength || l > DescriptionMaxLength {
		return sdkerrors.Wrapf(ErrInvalidProposal, "description length must be in [%d, %d]", DescriptionMinLength, DescriptionMaxLength)
	}
	if !isSafeText(description) {
		return sdkerrors.Wrap(ErrInvalidProposal, "description contains invalid characters")
	}
	if link == "" {
		return nil
	}
	if l := len(link); l < LinkMinLength || l > LinkMaxLength {
		return sdkerrors.Wrapf(ErrInvalidProposal, "link length must be in [%d, %d]", LinkMinLength, LinkMaxLength)
	}
	if !isSafeLink(link) {
		return sdkerrors.Wrap(ErrInvalidProposal, "link contains invalid characters")
	}
	for _, w := range whitelistedLinks {
		if strings.HasPrefix(link, w) {
			return nil
		}
	}
	return sdkerrors.Wrap(ErrLinkNotWhitelisted, link)
}

func isSafeText(s string) bool {
	return !strings.ContainsAny(s, "<>&")
}

func isSafeLink(s string) bool {
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.ContainsRune("-_:/?#@!$&()*+,;=.~[]'%", c):
		default:
			return false
		}
	}
	return true
}

func (p Proposal) String() string {
	return fmt.Sprintf("proposal %d (%s)", p.ID, p.Status)
}
