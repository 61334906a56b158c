package types

import sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

var (
	ErrPoolNotWhitelisted   = sdkerrors.Register(ModuleName, 2, "pool not whitelisted")
	ErrInvalidFunds         = sdkerrors.Register(ModuleName, 3, "invalid funds")
	ErrRewardsLimitExceeded = sdkerrors.Register(ModuleName, 4, "rewards limit exceeded")
	ErrTributeNotFound      = sdkerrors.Register(ModuleName, 5, "tribute not found")
	ErrInvalidParams        = sdkerrors.Register(ModuleName, 6, "invalid params")
	ErrInvalidTribute       = sdkerrors.Register(ModuleName, 7, "invalid tribute")
)
