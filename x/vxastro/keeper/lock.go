package keeper

import (
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/astroport/governance/x/vxastro/types"
)

// Lock escrows the given amount for voting power. Locking is not possible while an unlock is in progress.
func (k Keeper) Lock(ctx sdk.Context, user sdk.AccAddress, amount sdk.Coin) error {
	if amount.Denom != k.GetParams(ctx).LockDenom {
		return sdkerrors.Wrapf(types.ErrInvalidDenom, "got %s", amount.Denom)
	}
	if !amount.Amount.IsPositive() {
		return types.ErrZeroAmount
	}
	if k.IsBlacklisted(ctx, user) {
		return types.ErrBlacklisted
	}
	lock, found := k.GetLock(ctx, user)
	if !found {
		lock = types.Lock{Amount: sdk.ZeroInt()}
	}
	if lock.IsUnlocking() {
		return types.ErrUnlockInProgress
	}
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, user, types.ModuleName, sdk.NewCoins(amount)); err != nil {
		return sdkerrors.Wrap(err, "escrow")
	}
	lock.Amount = lock.Amount.Add(amount.Amount)
	k.setLock(ctx, user, lock)

	if err := k.updateVotingPower(ctx, user, lock.VotingPower(), false); err != nil {
		return err
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeLock,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyUser, user.String()),
		sdk.NewAttribute(sdk.AttributeKeyAmount, amount.String()),
		sdk.NewAttribute(types.AttributeKeyVotingPower, lock.VotingPower().String()),
	))
	return nil
}

// Unlock starts the unlock period of the position. The voting power drops to zero immediately.
func (k Keeper) Unlock(ctx sdk.Context, user sdk.AccAddress) (uint64, error) {
	lock, found := k.GetLock(ctx, user)
	if !found {
		return 0, types.ErrLockNotFound
	}
	if lock.IsUnlocking() {
		return 0, types.ErrUnlockInProgress
	}
	lock.UnlockTime = uint64(ctx.BlockTime().Unix()) + k.GetParams(ctx).UnlockPeriod
	k.setLock(ctx, user, lock)

	if err := k.updateVotingPower(ctx, user, sdk.ZeroInt(), true); err != nil {
		return 0, err
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeUnlock,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyUser, user.String()),
		sdk.NewAttribute(types.AttributeKeyUnlockTime, strconv.FormatUint(lock.UnlockTime, 10)),
	))
	return lock.UnlockTime, nil
}

// Relock cancels an unlock in progress and restores the voting power.
func (k Keeper) Relock(ctx sdk.Context, user sdk.AccAddress) error {
	lock, err := k.relock(ctx, user)
	if err != nil {
		return err
	}
	return k.updateVotingPower(ctx, user, k.effectivePower(ctx, user, lock), false)
}

// ForceRelock restores an unlocking position without notifying the hooks. It is used to roll back
// an unlock that could not be confirmed by the hub.
func (k Keeper) ForceRelock(ctx sdk.Context, user sdk.AccAddress) error {
	lock, err := k.relock(ctx, user)
	if err != nil {
		return err
	}
	return k.checkpoint(ctx, user, k.effectivePower(ctx, user, lock))
}

func (k Keeper) relock(ctx sdk.Context, user sdk.AccAddress) (types.Lock, error) {
	lock, found := k.GetLock(ctx, user)
	if !found {
		return types.Lock{}, types.ErrLockNotFound
	}
	if !lock.IsUnlocking() {
		return types.Lock{}, types.ErrNotUnlocking
	}
	lock.UnlockTime = 0
	k.setLock(ctx, user, lock)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRelock,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyUser, user.String()),
		sdk.NewAttribute(types.AttributeKeyVotingPower, lock.VotingPower().String()),
	))
	return lock, nil
}

// Withdraw returns the escrowed tokens once the unlock period is over and removes the position.
func (k Keeper) Withdraw(ctx sdk.Context, user sdk.AccAddress) (sdk.Coin, error) {
	lock, found := k.GetLock(ctx, user)
	if !found {
		return sdk.Coin{}, types.ErrLockNotFound
	}
	if !lock.IsUnlocking() {
		return sdk.Coin{}, types.ErrNotUnlocking
	}
	if now := uint64(ctx.BlockTime().Unix()); now < lock.UnlockTime {
		return sdk.Coin{}, sdkerrors.Wrapf(types.ErrUnlockPeriodNotOver, "unlocks at %d", lock.UnlockTime)
	}
	amount := sdk.NewCoin(k.GetParams(ctx).LockDenom, lock.Amount)
	k.deleteLock(ctx, user)
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, user, sdk.NewCoins(amount)); err != nil {
		return sdk.Coin{}, sdkerrors.Wrap(err, "release escrow")
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeWithdraw,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyUser, user.String()),
		sdk.NewAttribute(sdk.AttributeKeyAmount, amount.String()),
	))
	return amount, nil
}

// UpdateBlacklist adds or removes addresses from the blacklist. Blacklisted addresses have no voting power.
func (k Keeper) UpdateBlacklist(ctx sdk.Context, sender sdk.AccAddress, add, remove []sdk.AccAddress) error {
	owner := k.GetParams(ctx).Owner
	if owner == "" || owner != sender.String() {
		return types.ErrUnauthorized
	}
	if len(add) == 0 && len(remove) == 0 {
		return sdkerrors.Wrap(types.ErrInvalidBlacklist, "empty")
	}
	store := ctx.KVStore(k.storeKey)
	for _, a := range add {
		if k.IsBlacklisted(ctx, a) {
			return sdkerrors.Wrapf(types.ErrInvalidBlacklist, "already blacklisted: %s", a)
		}
		store.Set(blacklistKey(a), []byte{})
		if err := k.updateBlacklistedPower(ctx, a, sdk.ZeroInt()); err != nil {
			return sdkerrors.Wrapf(err, "blacklist %s", a)
		}
	}
	for _, a := range remove {
		if !k.IsBlacklisted(ctx, a) {
			return sdkerrors.Wrapf(types.ErrInvalidBlacklist, "not blacklisted: %s", a)
		}
		store.Delete(blacklistKey(a))
		lock, _ := k.GetLock(ctx, a)
		if err := k.updateBlacklistedPower(ctx, a, lock.VotingPower()); err != nil {
			return sdkerrors.Wrapf(err, "remove from blacklist %s", a)
		}
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeUpdateBlacklist,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyAdded, strconv.Itoa(len(add))),
		sdk.NewAttribute(types.AttributeKeyRemoved, strconv.Itoa(len(remove))),
	))
	return nil
}

func (k Keeper) effectivePower(ctx sdk.Context, user sdk.AccAddress, lock types.Lock) sdk.Int {
	if k.IsBlacklisted(ctx, user) {
		return sdk.ZeroInt()
	}
	return lock.VotingPower()
}

func (k Keeper) updateVotingPower(ctx sdk.Context, user sdk.AccAddress, power sdk.Int, isUnlock bool) error {
	if err := k.checkpoint(ctx, user, power); err != nil {
		return err
	}
	return sdkerrors.Wrap(k.callHooks(ctx, user, power, isUnlock), "voting power hooks")
}

func (k Keeper) updateBlacklistedPower(ctx sdk.Context, user sdk.AccAddress, power sdk.Int) error {
	if err := k.checkpoint(ctx, user, power); err != nil {
		return err
	}
	if k.hooks == nil {
		return nil
	}
	return sdkerrors.Wrap(k.hooks.AfterBlacklistChanged(ctx, user, power), "blacklist hooks")
}
