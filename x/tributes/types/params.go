package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	paramtypes "github.com/cosmos/cosmos-sdk/x/params/types"
	yaml "gopkg.in/yaml.v2"
)

const (
	// MaxRewardsLimit bounds the reward denoms per pool and epoch
	MaxRewardsLimit uint64 = 20

	DefaultRewardsLimit uint64 = 5
	DefaultFeeDenom            = "uastro"
	DefaultTributeFee   int64  = 1_000_000
)

var (
	KeyOwner        = []byte("Owner")
	KeyTributeFee   = []byte("TributeFee")
	KeyFeeCollector = []byte("FeeCollector")
	KeyRewardsLimit = []byte("RewardsLimit")
)

var _ paramtypes.ParamSet = (*Params)(nil)

// Params of the tributes module
type Params struct {
	// Owner removes tributes and updates the params
	Owner string `json:"owner" yaml:"owner"`
	// TributeFee is charged once for every new reward denom of a pool in an epoch
	TributeFee sdk.Coin `json:"tribute_fee" yaml:"tribute_fee"`
	// FeeCollector gets the fees. They stay with the module when empty.
	FeeCollector string `json:"fee_collector" yaml:"fee_collector"`
	// RewardsLimit is the max number of reward denoms of a pool in an epoch
	RewardsLimit uint64 `json:"rewards_limit" yaml:"rewards_limit"`
}

// ParamKeyTable for the tributes module
func ParamKeyTable() paramtypes.KeyTable {
	return paramtypes.NewKeyTable().RegisterParamSet(&Params{})
}

// DefaultParams returns a default set of parameters.
func DefaultParams() Params {
	return Params{
		TributeFee:   sdk.NewCoin(DefaultFeeDenom, sdk.NewInt(DefaultTributeFee)),
		RewardsLimit: DefaultRewardsLimit,
	}
}

// ParamSetPairs Implements params.ParamSet
func (p *Params) ParamSetPairs() paramtypes.ParamSetPairs {
	return paramtypes.ParamSetPairs{
		paramtypes.NewParamSetPair(KeyOwner, &p.Owner, validateOptionalAddress),
		paramtypes.NewParamSetPair(KeyTributeFee, &p.TributeFee, validateFee),
		paramtypes.NewParamSetPair(KeyFeeCollector, &p.FeeCollector, validateOptionalAddress),
		paramtypes.NewParamSetPair(KeyRewardsLimit, &p.RewardsLimit, validateRewardsLimit),
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
		{"tribute fee", p.TributeFee, validateFee},
		{"fee collector", p.FeeCollector, validateOptionalAddress},
		{"rewards limit", p.RewardsLimit, validateRewardsLimit},
	} {
		if err := v.fn(v.value); err != nil {
			return sdkerrors.Wrap(sdkerrors.Wrap(ErrInvalidParams, err.Error()), v.name)
		}
	}
	return nil
}

// a zero fee is allowed
func validateFee(i interface{}) error {
	v, ok := i.(sdk.Coin)
	if !ok {
		return fmt.Errorf("invalid parameter type: %T", i)
	}
	return v.Validate()
}

func validateRewardsLimit(i interface{}) error {
	v, ok := i.(uint64)
	if !ok {
		return fmt.Errorf("invalid parameter type: %T", i)
	}
	if v == 0 || v > MaxRewardsLimit {
		return fmt.Errorf("must be in [1, %d]", MaxRewardsLimit)
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
