package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	paramtypes "github.com/cosmos/cosmos-sdk/x/params/types"
	yaml "gopkg.in/yaml.v2"
)

// vote escrow params default values
const (
	DefaultLockDenom = "uxastro"
	// DefaultUnlockPeriod is two weeks in seconds
	DefaultUnlockPeriod uint64 = 14 * 86400
)

var (
	KeyLockDenom    = []byte("LockDenom")
	KeyUnlockPeriod = []byte("UnlockPeriod")
	KeyOwner        = []byte("Owner")
)

var _ paramtypes.ParamSet = (*Params)(nil)

// Params of the vote escrow module
type Params struct {
	// LockDenom is the denom of the token that can be locked for voting power
	LockDenom string `json:"lock_denom" yaml:"lock_denom"`
	// UnlockPeriod in seconds between unlock and withdrawal
	UnlockPeriod uint64 `json:"unlock_period" yaml:"unlock_period"`
	// Owner can update the blacklist. Empty disables blacklisting.
	Owner string `json:"owner" yaml:"owner"`
}

// ParamKeyTable for the vote escrow module
func ParamKeyTable() paramtypes.KeyTable {
	return paramtypes.NewKeyTable().RegisterParamSet(&Params{})
}

// NewParams creates a new Params instance
func NewParams(lockDenom string, unlockPeriod uint64, owner string) Params {
	return Params{
		LockDenom:    lockDenom,
		UnlockPeriod: unlockPeriod,
		Owner:        owner,
	}
}

// DefaultParams returns a default set of parameters.
func DefaultParams() Params {
	return NewParams(DefaultLockDenom, DefaultUnlockPeriod, "")
}

// ParamSetPairs Implements params.ParamSet
func (p *Params) ParamSetPairs() paramtypes.ParamSetPairs {
	return paramtypes.ParamSetPairs{
		paramtypes.NewParamSetPair(KeyLockDenom, &p.LockDenom, validateDenom),
		paramtypes.NewParamSetPair(KeyUnlockPeriod, &p.UnlockPeriod, validateUnlockPeriod),
		paramtypes.NewParamSetPair(KeyOwner, &p.Owner, validateOptionalAddress),
	}
}

// String returns a human readable string representation of the parameters.
func (p Params) String() string {
	out, _ := yaml.Marshal(p)
	return string(out)
}

// Validate validate a set of params
func (p Params) Validate() error {
	if err := validateDenom(p.LockDenom); err != nil {
		return sdkerrors.Wrap(err, "lock denom")
	}
	if err := validateUnlockPeriod(p.UnlockPeriod); err != nil {
		return sdkerrors.Wrap(err, "unlock period")
	}
	return sdkerrors.Wrap(validateOptionalAddress(p.Owner), "owner")
}

func validateDenom(i interface{}) error {
	v, ok := i.(string)
	if !ok {
		return fmt.Errorf("invalid parameter type: %T", i)
	}
	return sdk.ValidateDenom(v)
}

func validateUnlockPeriod(i interface{}) error {
	v, ok := i.(uint64)
	if !ok {
		return fmt.Errorf("invalid parameter type: %T", i)
	}
	if v == 0 {
		return sdkerrors.Wrap(sdkerrors.ErrInvalidRequest, "must not be zero")
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
