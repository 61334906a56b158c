package types

import (
	wasmvmtypes "github.com/CosmWasm/wasmvm/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BankKeeper is a subset of the SDK bank keeper
type BankKeeper interface {
	SendCoinsFromAccountToModule(ctx sdk.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx sdk.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
}

// XAstroTracker provides historic xASTRO balances
type XAstroTracker interface {
	BalanceAt(ctx sdk.Context, address string, ts uint64) (sdk.Int, error)
	TotalSupplyAt(ctx sdk.Context, ts uint64) (sdk.Int, error)
}

// BuilderUnlock provides the locked builder allocations that count as voting power
type BuilderUnlock interface {
	VotingPowerAt(ctx sdk.Context, account string, ts uint64) (sdk.Int, error)
	TotalVotingPowerAt(ctx sdk.Context, ts uint64) (sdk.Int, error)
}

// IBCController executes proposal messages on a remote chain. The outcome is reported back via
// IBCProposalCompleted.
type IBCController interface {
	IBCExecuteProposal(ctx sdk.Context, sender sdk.AccAddress, channelID string, proposalID uint64, messages []wasmvmtypes.CosmosMsg) error
}
