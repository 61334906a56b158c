package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/astroport/governance/x/vxastro/types"
)

// InitGenesis sets the params and restores all positions with their voting power at genesis time.
// Hooks are not called.
func InitGenesis(ctx sdk.Context, k Keeper, data types.GenesisState) {
	if err := types.ValidateGenesis(data); err != nil {
		panic(err)
	}
	k.setParams(ctx, data.Params)
	store := ctx.KVStore(k.storeKey)
	for _, a := range data.Blacklist {
		store.Set(blacklistKey(mustAddress(a)), []byte{})
	}
	for _, v := range data.Locks {
		user := mustAddress(v.Address)
		k.setLock(ctx, user, v.Lock)
		if err := k.checkpoint(ctx, user, k.effectivePower(ctx, user, v.Lock)); err != nil {
			panic(err)
		}
	}
}

// ExportGenesis exports the params, positions and blacklist. Historic voting power points are not exported.
func ExportGenesis(ctx sdk.Context, k Keeper) types.GenesisState {
	r := types.GenesisState{Params: k.GetParams(ctx)}
	k.IterateLocks(ctx, func(user sdk.AccAddress, lock types.Lock) bool {
		r.Locks = append(r.Locks, types.GenesisLock{Address: user.String(), Lock: lock})
		return false
	})
	k.IterateBlacklist(ctx, func(user sdk.AccAddress) bool {
		r.Blacklist = append(r.Blacklist, user.String())
		return false
	})
	return r
}

func mustAddress(s string) sdk.AccAddress {
	addr, err := sdk.AccAddressFromBech32(s)
	if err != nil {
		panic(err)
	}
	return addr
}
