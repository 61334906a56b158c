package keeper

import (
	"strconv"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	emissionstypes "github.com/astroport/governance/x/emissions/types"
	"github.com/astroport/governance/x/tributes/types"
)

type payout struct {
	epochTs uint64
	lpToken string
	amount  sdk.Coin
}

// claimPlan is the outcome of a claim. Epochs up to and including lastEpoch are settled.
type claimPlan struct {
	rewards   sdk.Coins
	payouts   []payout
	lastEpoch uint64
	settled   bool
}

// Claim pays out the share of the user in the tributes of every epoch since the last claim. The
// share in a pool is the voting power the user dedicated to it at the epoch start over the pool
// tally at that time. Epochs are settled once and in order, so claiming again pays nothing until a
// new epoch started.
func (k Keeper) Claim(ctx sdk.Context, user, receiver sdk.AccAddress) (sdk.Coins, error) {
	plan := k.planClaim(ctx, user.String())
	if !plan.settled {
		return sdk.NewCoins(), nil
	}
	for _, p := range plan.payouts {
		t, found := k.GetTribute(ctx, p.epochTs, p.lpToken, p.amount.Denom)
		if !found {
			return nil, sdkerrors.Wrapf(types.ErrTributeNotFound, "%s of %s in epoch %d", p.amount.Denom, p.lpToken, p.epochTs)
		}
		t.Available = t.Available.Sub(p.amount)
		k.setTribute(ctx, p.epochTs, p.lpToken, t)
	}
	k.setLastClaim(ctx, user.String(), plan.lastEpoch)
	if !plan.rewards.IsZero() {
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, receiver, plan.rewards); err != nil {
			return nil, sdkerrors.Wrap(err, "payout")
		}
	}

	telemetry.IncrCounter(1, types.ModuleName, "claim")
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeClaim,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyUser, user.String()),
		sdk.NewAttribute(types.AttributeKeyReceiver, receiver.String()),
		sdk.NewAttribute(types.AttributeKeyEpoch, strconv.FormatUint(plan.lastEpoch, 10)),
		sdk.NewAttribute(sdk.AttributeKeyAmount, plan.rewards.String()),
	))
	return plan.rewards, nil
}

// SimulateClaim returns what a claim of the user would pay out now
func (k Keeper) SimulateClaim(ctx sdk.Context, user string) sdk.Coins {
	return k.planClaim(ctx, user).rewards
}

// planClaim walks the started epochs the user has not claimed yet. Without a previous claim the
// walk starts at the first epoch boundary at or after the first vote of the user.
func (k Keeper) planClaim(ctx sdk.Context, user string) claimPlan {
	plan := claimPlan{rewards: sdk.NewCoins()}
	now := uint64(ctx.BlockTime().Unix())
	if now <= emissionstypes.EpochsStart {
		return plan
	}
	current := emissionstypes.EpochStart(now - 1)

	var start uint64
	if last, found := k.GetLastClaim(ctx, user); found {
		start = last + emissionstypes.EpochLength
	} else {
		first, voted := k.emissions.FirstVoteTs(ctx, user)
		if !voted {
			return plan
		}
		start = emissionstypes.EpochStart(first)
		if start < first {
			start += emissionstypes.EpochLength
		}
	}
	if start > current {
		return plan
	}

	for epochTs := start; epochTs <= current; epochTs += emissionstypes.EpochLength {
		for _, vote := range k.emissions.UserVotesAt(ctx, user, epochTs) {
			poolPower := k.emissions.PoolPowerAt(ctx, vote.Pool, epochTs)
			if !poolPower.IsPositive() {
				continue
			}
			k.IteratePoolTributes(ctx, epochTs, vote.Pool, func(t types.TributeInfo) bool {
				amount := t.Allocated.Amount.Mul(vote.Amount).Quo(poolPower)
				if amount.GT(t.Available.Amount) {
					amount = t.Available.Amount
				}
				if amount.IsPositive() {
					coin := sdk.NewCoin(t.Allocated.Denom, amount)
					plan.payouts = append(plan.payouts, payout{epochTs: epochTs, lpToken: vote.Pool, amount: coin})
					plan.rewards = plan.rewards.Add(coin)
				}
				return false
			})
		}
	}
	plan.lastEpoch = current
	plan.settled = true
	return plan
}
