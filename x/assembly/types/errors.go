package types

import sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

var (
	ErrProposalNotFound       = sdkerrors.Register(ModuleName, 2, "proposal not found")
	ErrProposalNotActive      = sdkerrors.Register(ModuleName, 3, "proposal not active")
	ErrVotingPeriodEnded      = sdkerrors.Register(ModuleName, 4, "voting period ended")
	ErrUserAlreadyVoted       = sdkerrors.Register(ModuleName, 5, "user already voted")
	ErrNoVotingPower          = sdkerrors.Register(ModuleName, 6, "no voting power")
	ErrVotingPeriodNotEnded   = sdkerrors.Register(ModuleName, 7, "voting period not ended")
	ErrProposalNotPassed      = sdkerrors.Register(ModuleName, 8, "proposal not passed")
	ErrProposalDelayNotEnded  = sdkerrors.Register(ModuleName, 9, "proposal delay not ended")
	ErrExecuteProposalExpired = sdkerrors.Register(ModuleName, 10, "proposal expired")
	ErrInsufficientDeposit    = sdkerrors.Register(ModuleName, 11, "insufficient deposit")
	ErrInvalidProposal        = sdkerrors.Register(ModuleName, 12, "invalid proposal")
	ErrLinkNotWhitelisted     = sdkerrors.Register(ModuleName, 13, "link not whitelisted")
	ErrInvalidConfig          = sdkerrors.Register(ModuleName, 14, "invalid config")
	ErrMessagesCheckPassed    = sdkerrors.Register(ModuleName, 15, "messages check passed")
	ErrForbiddenMessage       = sdkerrors.Register(ModuleName, 16, "forbidden message")
	ErrProposalNotInProgress  = sdkerrors.Register(ModuleName, 17, "proposal not in progress")
	ErrWrongIbcStatus         = sdkerrors.Register(ModuleName, 18, "wrong ibc status")
	ErrMissingIbcController   = sdkerrors.Register(ModuleName, 19, "ibc controller not set")
)
