package types

import (
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	yaml "gopkg.in/yaml.v2"
)

// Ranges of the proposal config. Periods are in blocks.
const (
	VotingPeriodMin      uint64 = 12342
	VotingPeriodMax             = 7 * 12342
	DelayMin             uint64 = 6171
	DelayMax                    = 14 * 12342
	ExpirationPeriodMin  uint64 = 12342
	ExpirationPeriodMax  uint64 = 100800
	DepositIntervalStart int64  = 10_000_000_000
	DepositIntervalEnd   int64  = 60_000_000_000

	TitleMinLength       = 4
	TitleMaxLength       = 64
	DescriptionMinLength = 4
	DescriptionMaxLength = 1024
	LinkMinLength        = 12
	LinkMaxLength        = 128
)

var (
	QuorumMin    = sdk.NewDecWithPrec(1, 2)
	QuorumMax    = sdk.OneDec()
	ThresholdMin = sdk.NewDecWithPrec(33, 2)
	ThresholdMax = sdk.OneDec()
)

// Config of the assembly. It can only be changed by an executed proposal.
type Config struct {
	// DepositDenom is the xASTRO denom deposits are paid in
	DepositDenom string `json:"deposit_denom" yaml:"deposit_denom"`
	// IBCController is the only address allowed to report the outcome of proposals executed over IBC
	IBCController string `json:"ibc_controller,omitempty" yaml:"ibc_controller"`
	// ProposalVotingPeriod in blocks
	ProposalVotingPeriod uint64 `json:"proposal_voting_period" yaml:"proposal_voting_period"`
	// ProposalEffectiveDelay in blocks between the end of voting and the earliest execution
	ProposalEffectiveDelay uint64 `json:"proposal_effective_delay" yaml:"proposal_effective_delay"`
	// ProposalExpirationPeriod in blocks after the delay in which a passed proposal can be executed
	ProposalExpirationPeriod  uint64   `json:"proposal_expiration_period" yaml:"proposal_expiration_period"`
	ProposalRequiredDeposit   sdk.Int  `json:"proposal_required_deposit" yaml:"proposal_required_deposit"`
	ProposalRequiredQuorum    sdk.Dec  `json:"proposal_required_quorum" yaml:"proposal_required_quorum"`
	ProposalRequiredThreshold sdk.Dec  `json:"proposal_required_threshold" yaml:"proposal_required_threshold"`
	WhitelistedLinks          []string `json:"whitelisted_links" yaml:"whitelisted_links"`
}

// DefaultConfig returns the config with the lower bounds of all ranges
func DefaultConfig() Config {
	return Config{
		DepositDenom:              "uxastro",
		ProposalVotingPeriod:      VotingPeriodMin,
		ProposalEffectiveDelay:    DelayMin,
		ProposalExpirationPeriod:  ExpirationPeriodMin,
		ProposalRequiredDeposit:   sdk.NewInt(DepositIntervalStart),
		ProposalRequiredQuorum:    sdk.NewDecWithPrec(1, 1),
		ProposalRequiredThreshold: sdk.NewDecWithPrec(5, 1),
		WhitelistedLinks:          []string{"https://forum.astroport.fi/"},
	}
}

// String returns a human readable string representation of the config.
func (c Config) String() string {
	out, _ := yaml.Marshal(c)
	return string(out)
}

// Validate checks all values against their ranges
func (c Config) Validate() error {
	if err := sdk.ValidateDenom(c.DepositDenom); err != nil {
		return sdkerrors.Wrap(ErrInvalidConfig, "deposit denom")
	}
	if c.IBCController != "" {
		if _, err := sdk.AccAddressFromBech32(c.IBCController); err != nil {
			return sdkerrors.Wrap(ErrInvalidConfig, "ibc controller")
		}
	}
	if c.ProposalVotingPeriod < VotingPeriodMin || c.ProposalVotingPeriod > VotingPeriodMax {
		return sdkerrors.Wrapf(ErrInvalidConfig, "voting period must be in [%d, %d]", VotingPeriodMin, VotingPeriodMax)
	}
	if c.ProposalEffectiveDelay < DelayMin || c.ProposalEffectiveDelay > DelayMax {
		return sdkerrors.Wrapf(ErrInvalidConfig, "effective delay must be in [%d, %d]", DelayMin, DelayMax)
	}
	if c.ProposalExpirationPeriod < ExpirationPeriodMin || c.ProposalExpirationPeriod > ExpirationPeriodMax {
		return sdkerrors.Wrapf(ErrInvalidConfig, "expiration period must be in [%d, %d]", ExpirationPeriodMin, ExpirationPeriodMax)
	}
	if c.ProposalRequiredDeposit.IsNil() ||
		c.ProposalRequiredDeposit.LT(sdk.NewInt(DepositIntervalStart)) ||
		c.ProposalRequiredDeposit.GT(sdk.NewInt(DepositIntervalEnd)) {
		return sdkerrors.Wrapf(ErrInvalidConfig, "required deposit must be in [%d, %d]", DepositIntervalStart, DepositIntervalEnd)
	}
	if c.ProposalRequiredQuorum.IsNil() || c.ProposalRequiredQuorum.LT(QuorumMin) || c.ProposalRequiredQuorum.GT(QuorumMax) {
		return sdkerrors.Wrapf(ErrInvalidConfig, "quorum must be in [%s, %s]", QuorumMin, QuorumMax)
	}
	if c.ProposalRequiredThreshold.IsNil() || c.ProposalRequiredThreshold.LT(ThresholdMin) || c.ProposalRequiredThreshold.GT(ThresholdMax) {
		return sdkerrors.Wrapf(ErrInvalidConfig, "threshold must be in [%s, %s]", ThresholdMin, ThresholdMax)
	}
	if len(c.WhitelistedLinks) == 0 {
		return sdkerrors.Wrap(ErrInvalidConfig, "whitelisted links must not be empty")
	}
	for _, l := range c.WhitelistedLinks {
		if err := validateWhitelistedLink(l); err != nil {
			return err
		}
	}
	return nil
}

func validateWhitelistedLink(link string) error {
	if !strings.HasSuffix(link, "/") {
		return sdkerrors.Wrapf(ErrInvalidConfig, "link must end with a slash: %s", link)
	}
	if !isSafeLink(link) {
		return sdkerrors.Wrapf(ErrInvalidConfig, "link contains invalid characters: %s", link)
	}
	return nil
}

// ConfigUpdate changes the given fields of the config
type ConfigUpdate struct {
	IBCController             *string  `json:"ibc_controller,omitempty"`
	ProposalVotingPeriod      *uint64  `json:"proposal_voting_period,omitempty"`
	ProposalEffectiveDelay    *uint64  `json:"proposal_effective_delay,omitempty"`
	ProposalExpirationPeriod  *uint64  `json:"proposal_expiration_period,omitempty"`
	ProposalRequiredDeposit   *sdk.Int `json:"proposal_required_deposit,omitempty"`
	ProposalRequiredQuorum    *sdk.Dec `json:"proposal_required_quorum,omitempty"`
	ProposalRequiredThreshold *sdk.Dec `json:"proposal_required_threshold,omitempty"`
	WhitelistAdd              []string `json:"whitelist_add,omitempty"`
	WhitelistRemove           []string `json:"whitelist_remove,omitempty"`
}

// Apply returns a copy of the config with the update applied. The result is validated.
func (u ConfigUpdate) Apply(c Config) (Config, error) {
	if u.IBCController != nil {
		c.IBCController = *u.IBCController
	}
	if u.ProposalVotingPeriod != nil {
		c.ProposalVotingPeriod = *u.ProposalVotingPeriod
	}
	if u.ProposalEffectiveDelay != nil {
		c.ProposalEffectiveDelay = *u.ProposalEffectiveDelay
	}
	if u.ProposalExpirationPeriod != nil {
		c.ProposalExpirationPeriod = *u.ProposalExpirationPeriod
	}
	if u.ProposalRequiredDeposit != nil {
		c.ProposalRequiredDeposit = *u.ProposalRequiredDeposit
	}
	if u.ProposalRequiredQuorum != nil {
		c.ProposalRequiredQuorum = *u.ProposalRequiredQuorum
	}
	if u.ProposalRequiredThreshold != nil {
		c.ProposalRequiredThreshold = *u.ProposalRequiredThreshold
	}
	links := make([]string, 0, len(c.WhitelistedLinks)+len(u.WhitelistAdd))
	removed := make(map[string]struct{}, len(u.WhitelistRemove))
	for _, l := range u.WhitelistRemove {
		removed[l] = struct{}{}
	}
	for _, l := range c.WhitelistedLinks {
		if _, ok := removed[l]; !ok {
			links = append(links, l)
		}
	}
	for _, l := range u.WhitelistAdd {
		if containsString(links, l) {
			return Config{}, sdkerrors.Wrapf(ErrInvalidConfig, "duplicate link: %s", l)
		}
		links = append(links, l)
	}
	c.WhitelistedLinks = links
	return c, c.Validate()
}

func containsString(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
