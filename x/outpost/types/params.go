package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	paramtypes "github.com/cosmos/cosmos-sdk/x/params/types"
	yaml "gopkg.in/yaml.v2"

	emissionstypes "github.com/astroport/governance/x/emissions/types"
)

const (
	DefaultAstroDenom        = "ibc/astro"
	DefaultIbcTimeout uint64 = 7200
)

var (
	KeyOwner      = []byte("Owner")
	KeyAstroDenom = []byte("AstroDenom")
	KeyIbcTimeout = []byte("IbcTimeout")
)

var _ paramtypes.ParamSet = (*Params)(nil)

// Params of the outpost
type Params struct {
	// Owner sets the voting channel and updates the params
	Owner string `json:"owner" yaml:"owner"`
	// AstroDenom is the local denom of the ASTRO emissions sent by the hub
	AstroDenom string `json:"astro_denom" yaml:"astro_denom"`
	// IbcTimeout in seconds of every packet sent to the hub
	IbcTimeout uint64 `json:"ibc_timeout" yaml:"ibc_timeout"`
}

// ParamKeyTable for the outpost module
func ParamKeyTable() paramtypes.KeyTable {
	return paramtypes.NewKeyTable().RegisterParamSet(&Params{})
}

// DefaultParams returns a default set of parameters.
func DefaultParams() Params {
	return Params{
		AstroDenom: DefaultAstroDenom,
		IbcTimeout: DefaultIbcTimeout,
	}
}

// ParamSetPairs Implements params.ParamSet
func (p *Params) ParamSetPairs() paramtypes.ParamSetPairs {
	return paramtypes.ParamSetPairs{
		paramtypes.NewParamSetPair(KeyOwner, &p.Owner, validateOptionalAddress),
		paramtypes.NewParamSetPair(KeyAstroDenom, &p.AstroDenom, validateDenom),
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

// the hub and its outposts share the same timeout range
func validateIbcTimeout(i interface{}) error {
	v, ok := i.(uint64)
	if !ok {
		return fmt.Errorf("invalid parameter type: %T", i)
	}
	if v < emissionstypes.IbcTimeoutMin || v > emissionstypes.IbcTimeoutMax {
		return fmt.Errorf("must be in [%d, %d]", emissionstypes.IbcTimeoutMin, emissionstypes.IbcTimeoutMax)
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
