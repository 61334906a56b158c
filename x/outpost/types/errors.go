package types

import sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

var (
	ErrPendingUser       = sdkerrors.Register(ModuleName, 2, "user has a pending ibc message")
	ErrNoVotingChannel   = sdkerrors.Register(ModuleName, 3, "voting channel not set")
	ErrZeroVotingPower   = sdkerrors.Register(ModuleName, 4, "zero voting power")
	ErrInvalidParams     = sdkerrors.Register(ModuleName, 5, "invalid params")
	ErrInvalidFunds      = sdkerrors.Register(ModuleName, 6, "invalid funds")
	ErrInvalidChannel    = sdkerrors.Register(ModuleName, 7, "invalid channel")
	ErrUnknownPacket     = sdkerrors.Register(ModuleName, 8, "unknown packet")
	ErrProposalNotCached = sdkerrors.Register(ModuleName, 9, "proposal not registered")
)
