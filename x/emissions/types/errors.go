package types

import sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

var (
	ErrInvalidVotes           = sdkerrors.Register(ModuleName, 2, "invalid votes")
	ErrVoteCooldown           = sdkerrors.Register(ModuleName, 3, "vote cooldown")
	ErrZeroVotingPower        = sdkerrors.Register(ModuleName, 4, "zero voting power")
	ErrPoolNotWhitelisted     = sdkerrors.Register(ModuleName, 5, "pool not whitelisted")
	ErrPoolAlreadyWhitelisted = sdkerrors.Register(ModuleName, 6, "pool already whitelisted")
	ErrIncorrectWhitelistFee  = sdkerrors.Register(ModuleName, 7, "incorrect whitelisting fee")
	ErrNoOutpostForPool       = sdkerrors.Register(ModuleName, 8, "no outpost for pool")
	ErrInvalidPool            = sdkerrors.Register(ModuleName, 9, "invalid pool")
	ErrOutpostNotFound        = sdkerrors.Register(ModuleName, 10, "outpost not found")
	ErrJailedOutpost          = sdkerrors.Register(ModuleName, 11, "outpost is jailed")
	ErrInvalidOutpost         = sdkerrors.Register(ModuleName, 12, "invalid outpost")
	ErrTuneCooldown           = sdkerrors.Register(ModuleName, 13, "tune cooldown")
	ErrNoFailedOutposts       = sdkerrors.Register(ModuleName, 14, "no failed outposts to retry")
	ErrInvalidParams          = sdkerrors.Register(ModuleName, 15, "invalid params")
	ErrInvalidChannel         = sdkerrors.Register(ModuleName, 16, "invalid channel")
	ErrVotingPowerExceeded    = sdkerrors.Register(ModuleName, 17, "voting power exceeds channel balance")
	ErrInvalidPacket          = sdkerrors.Register(ModuleName, 18, "invalid packet")
	ErrTransferNotFound       = sdkerrors.Register(ModuleName, 19, "transfer not found")
	ErrChannelAlreadyBound    = sdkerrors.Register(ModuleName, 20, "channel already bound")
	ErrPoolReset              = sdkerrors.Register(ModuleName, 21, "pool cannot be reset")
)
