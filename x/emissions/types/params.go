package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	paramtypes "github.com/cosmos/cosmos-sdk/x/params/types"
	yaml "gopkg.in/yaml.v2"
)

// Ranges of the emissions params
const (
	MaxPoolsPerOutpost uint64 = 10
	// IbcTimeout limits in seconds, up to one week
	IbcTimeoutMin uint64 = 1
	IbcTimeoutMax uint64 = 7 * 86400
	// VoteCooldownMax is one epoch
	VoteCooldownMax = EpochLength

	DefaultAstroDenom             = "uastro"
	DefaultPoolsPerOutpost uint64 = 5
	DefaultVoteCooldown    uint64 = 10 * 86400
	DefaultIbcTimeout      uint64 = 7200
	DefaultWhitelistingFee int64  = 1_000_000_000
)

var (
	KeyOwner              = []byte("Owner")
	KeyAstroDenom         = []byte("AstroDenom")
	KeyWhitelistingFee    = []byte("WhitelistingFee")
	KeyFeeReceiver        = []byte("FeeReceiver")
	KeyPoolsPerOutpost    = []byte("PoolsPerOutpost")
	KeyWhitelistThreshold = []byte("WhitelistThreshold")
	KeyEmissionsMultiple  = []byte("EmissionsMultiple")
	KeyMaxAstro           = []byte("MaxAstro")
	KeyVoteCooldown       = []byte("VoteCooldown")
	KeyIbcTimeout         = []byte("IbcTimeout")
)

var _ paramtypes.ParamSet = (*Params)(nil)

// Params of the emissions controller
type Params struct {
	// Owner manages outposts and the whitelist
	Owner string `json:"owner" yaml:"owner"`
	// AstroDenom is the hub denom emissions are paid in
	AstroDenom string `json:"astro_denom" yaml:"astro_denom"`
	// WhitelistingFee is charged for every pool whitelisting
	WhitelistingFee sdk.Coin `json:"whitelisting_fee" yaml:"whitelisting_fee"`
	// FeeReceiver gets the whitelisting fees
	FeeReceiver string `json:"fee_receiver" yaml:"fee_receiver"`
	// PoolsPerOutpost limits the number of pools receiving emissions to this value times the active outposts
	PoolsPerOutpost uint64 `json:"pools_per_outpost" yaml:"pools_per_outpost"`
	// WhitelistThreshold is the share of the total voting power that keeps a pool whitelisted when it
	// did not make it into the selection
	WhitelistThreshold sdk.Dec `json:"whitelist_threshold" yaml:"whitelist_threshold"`
	// EmissionsMultiple is applied to the collected ASTRO to get the emissions
	EmissionsMultiple sdk.Dec `json:"emissions_multiple" yaml:"emissions_multiple"`
	// MaxAstro caps the emissions of an epoch
	MaxAstro sdk.Int `json:"max_astro" yaml:"max_astro"`
	// VoteCooldown in seconds between two votes of a user
	VoteCooldown uint64 `json:"vote_cooldown" yaml:"vote_cooldown"`
	// IbcTimeout in seconds of every packet and emissions transfer
	IbcTimeout uint64 `json:"ibc_timeout" yaml:"ibc_timeout"`
}

// ParamKeyTable for the emissions module
func ParamKeyTable() paramtypes.KeyTable {
	return paramtypes.NewKeyTable().RegisterParamSet(&Params{})
}

// DefaultParams returns a default set of parameters.
func DefaultParams() Params {
	return Params{
		AstroDenom:         DefaultAstroDenom,
		WhitelistingFee:    sdk.NewCoin(DefaultAstroDenom, sdk.NewInt(DefaultWhitelistingFee)),
		PoolsPerOutpost:    DefaultPoolsPerOutpost,
		WhitelistThreshold: sdk.NewDecWithPrec(1, 2),
		EmissionsMultiple:  sdk.NewDecWithPrec(8, 1),
		MaxAstro:           sdk.NewInt(1_400_000_000_000),
		VoteCooldown:       DefaultVoteCooldown,
		IbcTimeout:         DefaultIbcTimeout,
	}
}

// ParamSetPairs Implements params.ParamSet
func (p *Params) ParamSetPairs() paramtypes.ParamSetPairs {
	return paramtypes.ParamSetPairs{
		paramtypes.NewParamSetPair(KeyOwner, &p.Owner, validateOptionalAddress),
		paramtypes.NewParamSetPair(KeyAstroDenom, &p.AstroDenom, validateDenom),
		paramtypes.NewParamSetPair(KeyWhitelistingFee, &p.WhitelistingFee, validateFee),
		paramtypes.NewParamSetPair(KeyFeeReceiver, &p.FeeReceiver, validateOptionalAddress),
		paramtypes.NewParamSetPair(KeyPoolsPerOutpost, &p.PoolsPerOutpost, validatePoolsPerOutpost),
		paramtypes.NewParamSetPair(KeyWhitelistThreshold, &p.WhitelistThreshold, validateThreshold),
		paramtypes.NewParamSetPair(KeyEmissionsMultiple, &p.EmissionsMultiple, validateEmissionsMultiple),
		paramtypes.NewParamSetPair(KeyMaxAstro, &p.MaxAstro, validatePositiveInt),
		paramtypes.NewParamSetPair(KeyVoteCooldown, &p.VoteCooldown, validateVoteCooldown),
		paramtypes.NewParamSetPair(KeyIbcTimeout, &p.IbcTimeout, validateIbcTimeout),
	}
}

// String returns a human readable string representation of the parameters.
func (p Params) String() string {
	out, _ := yaml.Marshal(p)
	return string(out)
}

// Validate validate a set of params
func (p Params) Validate() error {
	for _, v := range []struct {
		name  string
		value interface{}
		fn    paramtypes.ValueValidatorFn
	}{
		{"owner", p.Owner, validateOptionalAddress},
		{"astro denom", p.AstroDenom, validateDenom},
		{"whitelisting fee", p.WhitelistingFee, validateFee},
		{"fee receiver", p.FeeReceiver, validateOptionalAddress},
		{"pools per outpost", p.PoolsPerOutpost, validatePoolsPerOutpost},
		{"whitelist threshold", p.WhitelistThreshold, validateThreshold},
		{"emissions multiple", p.EmissionsMultiple, validateEmissionsMultiple},
		{"max astro", p.MaxAstro, validatePositiveInt},
		{"vote cooldown", p.VoteCooldown, validateVoteCooldown},
		{"ibc timeout", p.IbcTimeout, validateIbcTimeout},
	} {
		if err := v.fn(v.value); err != nil {
			return sdkerrors.Wrap(sdkerrors.Wrap(ErrInvalidParams, err.Error()), v.name)
		}
	}
	return nil
}

func validateDenom(i interface{}) error {
	v, ok := i.(string)
	if !ok {
		return fmt.Errorf("invalid parameter type: %T", i)
	}
	return sdk.ValidateDenom(v)
}

func validateFee(i interface{}) error {
	v, ok := i.(sdk.Coin)
	if !ok {
		return fmt.Errorf("invalid parameter type: %T", i)
	}
	return v.Validate()
}

func validatePoolsPerOutpost(i interface{}) error {
	v, ok := i.(uint64)
	if !ok {
		return fmt.Errorf("invalid parameter type: %T", i)
	}
	if v == 0 || v > MaxPoolsPerOutpost {
		return fmt.Errorf("must be in [1, %d]", MaxPoolsPerOutpost)
	}
	return nil
}

func validateThreshold(i interface{}) error {
	v, ok := i.(sdk.Dec)
	if !ok {
		return fmt.Errorf("invalid parameter type: %T", i)
	}
	if v.IsNil() || !v.IsPositive() || v.GTE(sdk.OneDec()) {
		return fmt.Errorf("must be in (0, 1)")
	}
	return nil
}

func validateEmissionsMultiple(i interface{}) error {
	v, ok := i.(sdk.Dec)
	if !ok {
		return fmt.Errorf("invalid parameter type: %T", i)
	}
	if v.IsNil() || !v.IsPositive() || v.GT(sdk.OneDec()) {
		return fmt.Errorf("must be in (0, 1]")
	}
	return nil
}

func validatePositiveInt(i interface{}) error {
	v, ok := i.(sdk.Int)
	if !ok {
		return fmt.Errorf("invalid parameter type: %T", i)
	}
	if v.IsNil() || !v.IsPositive() {
		return fmt.Errorf("must be positive")
	}
	return nil
}

func validateVoteCooldown(i interface{}) error {
	v, ok := i.(uint64)
	if !ok {
		return fmt.Errorf("invalid parameter type: %T", i)
	}
	if v > VoteCooldownMax {
		return fmt.Errorf("must not exceed %d", VoteCooldownMax)
	}
	return nil
}

func validateIbcTimeout(i interface{}) error {
	v, ok := i.(uint64)
	if !ok {
		return fmt.Errorf("invalid parameter type: %T", i)
	}
	if v < IbcTimeoutMin || v > IbcTimeoutMax {
		return fmt.Errorf("must be in [%d, %d]", IbcTimeoutMin, IbcTimeoutMax)
	}
	return nil
}

func validateOptionalAddress(i interface{}) error {
	v, ok := i.(string)
	if !ok {
		return fmt.Errorf("invalid parameter type: %T", i)
	}
	if v == "" {
		return nil
	}
	_, err := sdk.AccAddressFromBech32(v)
	return err
}
