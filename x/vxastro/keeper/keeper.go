package keeper

import (
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	paramtypes "github.com/cosmos/cosmos-sdk/x/params/types"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/astroport/governance/x/snapshot"
	"github.com/astroport/governance/x/vxastro/types"
)

type Keeper struct {
	storeKey   sdk.StoreKey
	paramSpace paramtypes.Subspace
	bankKeeper types.BankKeeper
	hooks      types.VotingPowerHooks

	userPower  snapshot.PowerSeries
	totalPower snapshot.PowerSeries
}

func NewKeeper(storeKey sdk.StoreKey, paramSpace paramtypes.Subspace, bankKeeper types.BankKeeper) Keeper {
	if !paramSpace.HasKeyTable() {
		paramSpace = paramSpace.WithKeyTable(types.ParamKeyTable())
	}
	return Keeper{
		storeKey:   storeKey,
		paramSpace: paramSpace,
		bankKeeper: bankKeeper,
		userPower:  snapshot.NewPowerSeries(storeKey, types.UserPowerSeriesPrefix),
		totalPower: snapshot.NewPowerSeries(storeKey, types.TotalPowerSeriesPrefix),
	}
}

// SetHooks sets the voting power hooks. Can be set only once.
func (k *Keeper) SetHooks(h types.VotingPowerHooks) *Keeper {
	if k.hooks != nil {
		panic("cannot set voting power hooks twice")
	}
	k.hooks = h
	return k
}

// GetParams returns the total set of parameters.
func (k Keeper) GetParams(ctx sdk.Context) (params types.Params) {
	k.paramSpace.GetParamSet(ctx, &params)
	return params
}

func (k Keeper) setParams(ctx sdk.Context, params types.Params) {
	k.paramSpace.SetParamSet(ctx, &params)
}

// GetLock returns the position of the user
func (k Keeper) GetLock(ctx sdk.Context, user sdk.AccAddress) (types.Lock, bool) {
	bz := ctx.KVStore(k.storeKey).Get(lockKey(user))
	if bz == nil {
		return types.Lock{}, false
	}
	var r types.Lock
	if err := json.Unmarshal(bz, &r); err != nil {
		panic(fmt.Sprintf("corrupt lock of %s: %s", user, err))
	}
	return r, true
}

func (k Keeper) setLock(ctx sdk.Context, user sdk.AccAddress, lock types.Lock) {
	bz, err := json.Marshal(lock)
	if err != nil {
		panic(err)
	}
	ctx.KVStore(k.storeKey).Set(lockKey(user), bz)
}

func (k Keeper) deleteLock(ctx sdk.Context, user sdk.AccAddress) {
	ctx.KVStore(k.storeKey).Delete(lockKey(user))
}

// IterateLocks iterates all positions. When the callback returns true the iteration stops.
func (k Keeper) IterateLocks(ctx sdk.Context, cb func(user sdk.AccAddress, lock types.Lock) bool) {
	iter := sdk.KVStorePrefixIterator(ctx.KVStore(k.storeKey), types.LockPrefix)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var lock types.Lock
		if err := json.Unmarshal(iter.Value(), &lock); err != nil {
			panic(err)
		}
		if cb(iter.Key()[len(types.LockPrefix):], lock) {
			return
		}
	}
}

// IsBlacklisted returns true when the user is on the blacklist
func (k Keeper) IsBlacklisted(ctx sdk.Context, user sdk.AccAddress) bool {
	return ctx.KVStore(k.storeKey).Has(blacklistKey(user))
}

// IterateBlacklist iterates all blacklisted addresses
func (k Keeper) IterateBlacklist(ctx sdk.Context, cb func(user sdk.AccAddress) bool) {
	iter := sdk.KVStorePrefixIterator(ctx.KVStore(k.storeKey), types.BlacklistPrefix)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		if cb(iter.Key()[len(types.BlacklistPrefix):]) {
			return
		}
	}
}

// VotingPower returns the current voting power of the user
func (k Keeper) VotingPower(ctx sdk.Context, user sdk.AccAddress) sdk.Int {
	return k.userPower.LatestPower(ctx, user)
}

// VotingPowerAt returns the voting power of the user at the given unix time in seconds
func (k Keeper) VotingPowerAt(ctx sdk.Context, user sdk.AccAddress, ts uint64) sdk.Int {
	return k.userPower.PowerAt(ctx, user, ts)
}

// TotalVotingPower returns the current sum of all voting power
func (k Keeper) TotalVotingPower(ctx sdk.Context) sdk.Int {
	return k.totalPower.LatestPower(ctx, types.TotalPowerSubject)
}

// TotalVotingPowerAt returns the sum of all voting power at the given unix time in seconds
func (k Keeper) TotalVotingPowerAt(ctx sdk.Context, ts uint64) sdk.Int {
	return k.totalPower.PowerAt(ctx, types.TotalPowerSubject, ts)
}

// checkpoint records the new voting power of the user and adjusts the total
func (k Keeper) checkpoint(ctx sdk.Context, user sdk.AccAddress, newPower sdk.Int) error {
	now := uint64(ctx.BlockTime().Unix())
	oldPower := k.VotingPower(ctx, user)
	if err := k.userPower.RecordPower(ctx, user, now, newPower); err != nil {
		return sdkerrors.Wrap(err, "user voting power")
	}
	total := k.TotalVotingPower(ctx).Sub(oldPower).Add(newPower)
	return sdkerrors.Wrap(k.totalPower.RecordPower(ctx, types.TotalPowerSubject, now, total), "total voting power")
}

func (k Keeper) callHooks(ctx sdk.Context, user sdk.AccAddress, power sdk.Int, isUnlock bool) error {
	if k.hooks == nil {
		return nil
	}
	return k.hooks.AfterVotingPowerChanged(ctx, user, power, isUnlock)
}

func (Keeper) Logger(ctx sdk.Context) log.Logger {
	return ModuleLogger(ctx)
}

func ModuleLogger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

func lockKey(user sdk.AccAddress) []byte {
	return append(append([]byte{}, types.LockPrefix...), user.Bytes()...)
}

func blacklistKey(user sdk.AccAddress) []byte {
	return append(append([]byte{}, types.BlacklistPrefix...), user.Bytes()...)
}
