package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/astroport/governance/x/contract"
)

// BankKeeper is a subset of the SDK bank keeper
type BankKeeper interface {
	SendCoinsFromAccountToModule(ctx sdk.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
}

// VotingPowerSource provides the local vxASTRO voting power. ForceRelock restores the position of
// an unlock that the hub did not confirm.
type VotingPowerSource interface {
	VotingPower(ctx sdk.Context, user sdk.AccAddress) sdk.Int
	VotingPowerAt(ctx sdk.Context, user sdk.AccAddress, ts uint64) sdk.Int
	ForceRelock(ctx sdk.Context, user sdk.AccAddress) error
}

// Incentives distributes the received emissions to the local pools
type Incentives interface {
	IncentivizeMany(ctx sdk.Context, sender sdk.AccAddress, denom string, schedules []contract.PoolAmount) error
}
