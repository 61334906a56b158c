package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// TributeInfo is the reward offered to the voters of a pool in one epoch. Allocated is the total
// deposited, Available what is left after claims.
type TributeInfo struct {
	Allocated sdk.Coin `json:"allocated"`
	Available sdk.Coin `json:"available"`
}

// ValidateBasic checks that both amounts share a denom and available does not exceed allocated
func (t TributeInfo) ValidateBasic() error {
	if err := t.Allocated.Validate(); err != nil {
		return sdkerrors.Wrap(ErrInvalidTribute, err.Error())
	}
	if err := t.Available.Validate(); err != nil {
		return sdkerrors.Wrap(ErrInvalidTribute, err.Error())
	}
	if t.Allocated.Denom != t.Available.Denom {
		return sdkerrors.Wrap(ErrInvalidTribute, "denoms differ")
	}
	if t.Available.Amount.GT(t.Allocated.Amount) {
		return sdkerrors.Wrap(ErrInvalidTribute, "available exceeds allocated")
	}
	return nil
}
