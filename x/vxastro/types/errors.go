package types

import sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

var (
	ErrZeroAmount          = sdkerrors.Register(ModuleName, 2, "zero amount")
	ErrInvalidDenom        = sdkerrors.Register(ModuleName, 3, "invalid lock denom")
	ErrLockNotFound        = sdkerrors.Register(ModuleName, 4, "lock not found")
	ErrUnlockInProgress    = sdkerrors.Register(ModuleName, 5, "unlock in progress")
	ErrNotUnlocking        = sdkerrors.Register(ModuleName, 6, "position is not unlocking")
	ErrUnlockPeriodNotOver = sdkerrors.Register(ModuleName, 7, "unlock period not expired")
	ErrBlacklisted         = sdkerrors.Register(ModuleName, 8, "address is blacklisted")
	ErrUnauthorized        = sdkerrors.Register(ModuleName, 9, "unauthorized")
	ErrInvalidBlacklist    = sdkerrors.Register(ModuleName, 10, "invalid blacklist update")
)
