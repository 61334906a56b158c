package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	emissionstypes "github.com/astroport/governance/x/emissions/types"
)

// BankKeeper is a subset of the SDK bank keeper
type BankKeeper interface {
	SendCoins(ctx sdk.Context, fromAddr sdk.AccAddress, toAddr sdk.AccAddress, amt sdk.Coins) error
	SendCoinsFromAccountToModule(ctx sdk.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx sdk.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
}

// EmissionsLedger provides the whitelist and the historic votes of the emissions controller
type EmissionsLedger interface {
	IsWhitelisted(ctx sdk.Context, pool string) bool
	PoolPowerAt(ctx sdk.Context, pool string, ts uint64) sdk.Int
	UserVotesAt(ctx sdk.Context, voter string, ts uint64) []emissionstypes.PoolAmount
	FirstVoteTs(ctx sdk.Context, voter string) (uint64, bool)
}
