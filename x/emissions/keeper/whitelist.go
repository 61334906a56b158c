package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/astroport/governance/x/emissions/types"
)

// WhitelistPool makes a pool eligible for votes. The exact whitelisting fee must be attached; it is
// forwarded to the fee receiver. The tally of the pool starts at zero, votes cast before are void.
func (k Keeper) WhitelistPool(ctx sdk.Context, sender sdk.AccAddress, funds sdk.Coins, pool string) error {
	params := k.GetParams(ctx)
	if fee := params.WhitelistingFee; len(funds) != 1 || funds[0].Denom != fee.Denom || !funds[0].Amount.Equal(fee.Amount) {
		return sdkerrors.Wrapf(types.ErrIncorrectWhitelistFee, "expected %s, got %s", params.WhitelistingFee, funds)
	}
	prefix, err := types.DeterminePoolPrefix(pool)
	if err != nil {
		return err
	}
	outpost, found := k.GetOutpost(ctx, prefix)
	if !found {
		return sdkerrors.Wrapf(types.ErrNoOutpostForPool, "prefix %s", prefix)
	}
	if outpost.Jailed {
		return sdkerrors.Wrap(types.ErrJailedOutpost, prefix)
	}
	if c := outpost.AstroPoolConfig; c != nil && c.AstroPool == pool {
		return sdkerrors.Wrap(types.ErrInvalidPool, "astro pool receives constant emissions")
	}
	if k.IsWhitelisted(ctx, pool) {
		return sdkerrors.Wrap(types.ErrPoolAlreadyWhitelisted, pool)
	}
	// a reset at the time of the last tally change could not tell earlier votes from later ones
	if latest, ok := k.pools.Latest(ctx, []byte(pool)); ok && latest.Timestamp >= uint64(ctx.BlockTime().Unix()) {
		return sdkerrors.Wrapf(types.ErrPoolReset, "tally of %s changed at %d", pool, latest.Timestamp)
	}
	if outpost.IsLocal() {
		ok, err := k.factory.IsRegisteredPool(ctx, pool)
		if err != nil {
			return sdkerrors.Wrap(err, "pair factory")
		}
		if !ok {
			return sdkerrors.Wrapf(types.ErrInvalidPool, "%s is not a registered pool", pool)
		}
	}
	if err := k.chargeFee(ctx, sender, params); err != nil {
		return err
	}
	if err := k.whitelist(ctx, pool); err != nil {
		return err
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeWhitelistPool,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyPool, pool),
		sdk.NewAttribute(types.AttributeKeyOutpost, prefix),
	))
	return nil
}

func (k Keeper) chargeFee(ctx sdk.Context, sender sdk.AccAddress, params types.Params) error {
	fee := sdk.NewCoins(params.WhitelistingFee)
	if params.FeeReceiver == "" {
		return sdkerrors.Wrap(k.bankKeeper.SendCoinsFromAccountToModule(ctx, sender, types.ModuleName, fee), "whitelisting fee")
	}
	receiver, err := sdk.AccAddressFromBech32(params.FeeReceiver)
	if err != nil {
		return sdkerrors.Wrap(err, "fee receiver")
	}
	return sdkerrors.Wrap(k.bankKeeper.SendCoins(ctx, sender, receiver, fee), "whitelisting fee")
}

// whitelist resets the tally of the pool
func (k Keeper) whitelist(ctx sdk.Context, pool string) error {
	k.setWhitelisted(ctx, pool)
	info := types.VotedPoolInfo{InitTs: uint64(ctx.BlockTime().Unix()), VotingPower: sdk.ZeroInt()}
	return sdkerrors.Wrapf(k.setPoolInfo(ctx, pool, info), "pool %s", pool)
}

// RemovePoolFromWhitelist removes a pool from the whitelist. Only the owner can do this.
func (k Keeper) RemovePoolFromWhitelist(ctx sdk.Context, sender sdk.AccAddress, pool string) error {
	if err := k.requireOwner(ctx, sender); err != nil {
		return err
	}
	if !k.IsWhitelisted(ctx, pool) {
		return sdkerrors.Wrap(types.ErrPoolNotWhitelisted, pool)
	}
	k.removeWhitelisted(ctx, pool)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRemovePool,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyPool, pool),
	))
	return nil
}

// removeOutpostPools removes all pools of the outpost from the whitelist
func (k Keeper) removeOutpostPools(ctx sdk.Context, prefix string) {
	var remove []string
	k.IterateWhitelist(ctx, func(pool string) bool {
		if p, err := types.DeterminePoolPrefix(pool); err == nil && p == prefix {
			remove = append(remove, pool)
		}
		return false
	})
	for _, pool := range remove {
		k.removeWhitelisted(ctx, pool)
	}
}
