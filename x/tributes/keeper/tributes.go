package keeper

import (
	"strconv"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	emissionstypes "github.com/astroport/governance/x/emissions/types"
	"github.com/astroport/governance/x/tributes/types"
)

// AddTribute deposits a reward for the voters of a whitelisted pool. It counts for the next epoch.
// The first deposit of a denom for the pool in that epoch is charged the tribute fee, further
// deposits add to it. The attached funds must be the reward plus the fee when charged.
func (k Keeper) AddTribute(ctx sdk.Context, sender sdk.AccAddress, funds sdk.Coins, lpToken string, reward sdk.Coin) error {
	if !k.emissions.IsWhitelisted(ctx, lpToken) {
		return sdkerrors.Wrap(types.ErrPoolNotWhitelisted, lpToken)
	}
	if err := reward.Validate(); err != nil || !reward.IsPositive() {
		return sdkerrors.Wrapf(types.ErrInvalidFunds, "reward %s", reward)
	}
	params := k.GetParams(ctx)
	epochTs := emissionstypes.NextEpochStart(uint64(ctx.BlockTime().Unix()))

	tribute, exists := k.GetTribute(ctx, epochTs, lpToken, reward.Denom)
	expFunds := sdk.NewCoins(reward)
	var fee sdk.Coins
	if !exists {
		var count uint64
		k.IteratePoolTributes(ctx, epochTs, lpToken, func(types.TributeInfo) bool {
			count++
			return false
		})
		if count >= params.RewardsLimit {
			return sdkerrors.Wrapf(types.ErrRewardsLimitExceeded, "max %d reward denoms", params.RewardsLimit)
		}
		fee = sdk.NewCoins(params.TributeFee)
		expFunds = expFunds.Add(fee...)
		tribute = types.TributeInfo{
			Allocated: sdk.NewCoin(reward.Denom, sdk.ZeroInt()),
			Available: sdk.NewCoin(reward.Denom, sdk.ZeroInt()),
		}
	}
	if !funds.IsEqual(expFunds) {
		return sdkerrors.Wrapf(types.ErrInvalidFunds, "expected %s, got %s", expFunds, funds)
	}
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, sender, types.ModuleName, sdk.NewCoins(reward)); err != nil {
		return sdkerrors.Wrap(err, "deposit")
	}
	if err := k.chargeFee(ctx, sender, params, fee); err != nil {
		return err
	}

	tribute.Allocated = tribute.Allocated.Add(reward)
	tribute.Available = tribute.Available.Add(reward)
	k.setTribute(ctx, epochTs, lpToken, tribute)

	telemetry.IncrCounter(1, types.ModuleName, "add_tribute")
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeAddTribute,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyLpToken, lpToken),
		sdk.NewAttribute(types.AttributeKeyEpoch, strconv.FormatUint(epochTs, 10)),
		sdk.NewAttribute(sdk.AttributeKeyAmount, reward.String()),
		sdk.NewAttribute(types.AttributeKeyFee, fee.String()),
	))
	return nil
}

func (k Keeper) chargeFee(ctx sdk.Context, sender sdk.AccAddress, params types.Params, fee sdk.Coins) error {
	if fee.IsZero() {
		return nil
	}
	if params.FeeCollector == "" {
		return sdkerrors.Wrap(k.bankKeeper.SendCoinsFromAccountToModule(ctx, sender, types.ModuleName, fee), "tribute fee")
	}
	collector, err := sdk.AccAddressFromBech32(params.FeeCollector)
	if err != nil {
		return sdkerrors.Wrap(err, "fee collector")
	}
	return sdkerrors.Wrap(k.bankKeeper.SendCoins(ctx, sender, collector, fee), "tribute fee")
}

// RemoveTribute refunds the tribute of the pool in the given denom to the receiver. Only tributes
// of the next epoch can be removed. The fee is not refunded. Only the owner can do this.
func (k Keeper) RemoveTribute(ctx sdk.Context, sender sdk.AccAddress, lpToken, denom string, receiver sdk.AccAddress) (sdk.Coin, error) {
	if err := k.requireOwner(ctx, sender); err != nil {
		return sdk.Coin{}, err
	}
	epochTs := emissionstypes.NextEpochStart(uint64(ctx.BlockTime().Unix()))
	tribute, found := k.GetTribute(ctx, epochTs, lpToken, denom)
	if !found {
		return sdk.Coin{}, sdkerrors.Wrapf(types.ErrTributeNotFound, "%s of %s in epoch %d", denom, lpToken, epochTs)
	}
	k.deleteTribute(ctx, epochTs, lpToken, denom)
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, receiver, sdk.NewCoins(tribute.Available)); err != nil {
		return sdk.Coin{}, sdkerrors.Wrap(err, "refund")
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRemoveTribute,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyLpToken, lpToken),
		sdk.NewAttribute(types.AttributeKeyEpoch, strconv.FormatUint(epochTs, 10)),
		sdk.NewAttribute(sdk.AttributeKeyAmount, tribute.Available.String()),
		sdk.NewAttribute(types.AttributeKeyReceiver, receiver.String()),
	))
	return tribute.Available, nil
}
