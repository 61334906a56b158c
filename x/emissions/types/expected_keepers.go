package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/astroport/governance/x/assembly/types"
	"github.com/astroport/governance/x/contract"
)

// BankKeeper is a subset of the SDK bank keeper
type BankKeeper interface {
	SendCoins(ctx sdk.Context, fromAddr sdk.AccAddress, toAddr sdk.AccAddress, amt sdk.Coins) error
	SendCoinsFromAccountToModule(ctx sdk.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
}

// VotingPowerSource provides the current voting power of hub users
type VotingPowerSource interface {
	VotingPower(ctx sdk.Context, user sdk.AccAddress) sdk.Int
}

// XAstroTracker provides historic xASTRO balances
type XAstroTracker interface {
	BalanceAt(ctx sdk.Context, address string, ts uint64) (sdk.Int, error)
}

// XAstroStaking provides the xASTRO exchange rate inputs
type XAstroStaking interface {
	TotalShares(ctx sdk.Context) (sdk.Int, error)
	TotalDeposit(ctx sdk.Context) (sdk.Int, error)
}

// PoolFactory validates hub pools
type PoolFactory interface {
	IsRegisteredPool(ctx sdk.Context, lpToken string) (bool, error)
}

// Incentives distributes emissions to hub pools
type Incentives interface {
	IncentivizeMany(ctx sdk.Context, sender sdk.AccAddress, denom string, schedules []contract.PoolAmount) error
}

// Assembly accepts governance votes relayed from outposts
type Assembly interface {
	GetProposal(ctx sdk.Context, id uint64) (types.Proposal, error)
	CastOutpostVote(ctx sdk.Context, voter string, proposalID uint64, vote types.VoteOption, votingPower sdk.Int) error
}

// TransferKeeper sends ICS20 transfers with a memo for the receiving contract. The outcome is
// reported back through HandleTransferCallback with the returned sequence.
type TransferKeeper interface {
	SendTransferWithMemo(
		ctx sdk.Context,
		sourcePort, sourceChannel string,
		token sdk.Coin,
		sender sdk.AccAddress,
		receiver string,
		timeoutTimestamp uint64,
		memo string,
	) (uint64, error)
}
