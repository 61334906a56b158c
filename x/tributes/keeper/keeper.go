package keeper

import (
	"encoding/json"
	"fmt"

	"github.com/cosmos/cosmos-sdk/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	paramtypes "github.com/cosmos/cosmos-sdk/x/params/types"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/astroport/governance/x/tributes/types"
)

type Keeper struct {
	storeKey   sdk.StoreKey
	paramSpace paramtypes.Subspace
	bankKeeper types.BankKeeper
	emissions  types.EmissionsLedger
}

// NewKeeper constructor
func NewKeeper(
	storeKey sdk.StoreKey,
	paramSpace paramtypes.Subspace,
	bankKeeper types.BankKeeper,
	emissions types.EmissionsLedger,
) Keeper {
	if !paramSpace.HasKeyTable() {
		paramSpace = paramSpace.WithKeyTable(types.ParamKeyTable())
	}
	return Keeper{
		storeKey:   storeKey,
		paramSpace: paramSpace,
		bankKeeper: bankKeeper,
		emissions:  emissions,
	}
}

// GetParams returns the total set of parameters.
func (k Keeper) GetParams(ctx sdk.Context) (params types.Params) {
	k.paramSpace.GetParamSet(ctx, &params)
	return params
}

func (k Keeper) setParams(ctx sdk.Context, params types.Params) {
	k.paramSpace.SetParamSet(ctx, &params)
}

// UpdateConfig replaces the params. Only the owner can do this.
func (k Keeper) UpdateConfig(ctx sdk.Context, sender sdk.AccAddress, params types.Params) error {
	if err := k.requireOwner(ctx, sender); err != nil {
		return err
	}
	if err := params.Validate(); err != nil {
		return err
	}
	k.setParams(ctx, params)
	return nil
}

// GetTribute returns the tribute of the pool in the given denom and epoch
func (k Keeper) GetTribute(ctx sdk.Context, epochTs uint64, lpToken, denom string) (types.TributeInfo, bool) {
	bz := ctx.KVStore(k.storeKey).Get(types.GetTributeKey(epochTs, lpToken, denom))
	if bz == nil {
		return types.TributeInfo{}, false
	}
	var r types.TributeInfo
	mustUnmarshal(bz, &r)
	return r, true
}

func (k Keeper) setTribute(ctx sdk.Context, epochTs uint64, lpToken string, t types.TributeInfo) {
	ctx.KVStore(k.storeKey).Set(types.GetTributeKey(epochTs, lpToken, t.Allocated.Denom), mustMarshal(t))
}

func (k Keeper) deleteTribute(ctx sdk.Context, epochTs uint64, lpToken, denom string) {
	ctx.KVStore(k.storeKey).Delete(types.GetTributeKey(epochTs, lpToken, denom))
}

// IteratePoolTributes visits the tributes of a pool in an epoch ordered by denom
func (k Keeper) IteratePoolTributes(ctx sdk.Context, epochTs uint64, lpToken string, cb func(t types.TributeInfo) bool) {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.GetPoolTributesPrefix(epochTs, lpToken))
	iter := store.Iterator(nil, nil)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var t types.TributeInfo
		mustUnmarshal(iter.Value(), &t)
		if cb(t) {
			return
		}
	}
}

// IterateEpochTributes visits the tributes of all pools in an epoch. Pools are visited in store
// order starting after the given pool.
func (k Keeper) IterateEpochTributes(ctx sdk.Context, epochTs uint64, startAfter string, cb func(lpToken string, t types.TributeInfo) bool) {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.GetEpochTributesPrefix(epochTs))
	var start []byte
	if startAfter != "" {
		start = sdk.PrefixEndBytes(address.MustLengthPrefix([]byte(startAfter)))
	}
	iter := store.Iterator(start, nil)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		lpToken, _ := types.SplitEpochTributeKey(iter.Key())
		var t types.TributeInfo
		mustUnmarshal(iter.Value(), &t)
		if cb(lpToken, t) {
			return
		}
	}
}

// IterateTributes visits all tributes ordered by epoch
func (k Keeper) IterateTributes(ctx sdk.Context, cb func(epochTs uint64, lpToken string, t types.TributeInfo) bool) {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.TributePrefix)
	iter := store.Iterator(nil, nil)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		key := iter.Key()
		lpToken, _ := types.SplitEpochTributeKey(key[8:])
		var t types.TributeInfo
		mustUnmarshal(iter.Value(), &t)
		if cb(sdk.BigEndianToUint64(key[:8]), lpToken, t) {
			return
		}
	}
}

// GetLastClaim returns the epoch of the last claim of the user
func (k Keeper) GetLastClaim(ctx sdk.Context, user string) (uint64, bool) {
	bz := ctx.KVStore(k.storeKey).Get(types.GetLastClaimKey(user))
	if bz == nil {
		return 0, false
	}
	return sdk.BigEndianToUint64(bz), true
}

func (k Keeper) setLastClaim(ctx sdk.Context, user string, epochTs uint64) {
	ctx.KVStore(k.storeKey).Set(types.GetLastClaimKey(user), sdk.Uint64ToBigEndian(epochTs))
}

// IterateLastClaims visits the last claims of all users
func (k Keeper) IterateLastClaims(ctx sdk.Context, cb func(user string, epochTs uint64) bool) {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.LastClaimPrefix)
	iter := store.Iterator(nil, nil)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		if cb(string(iter.Key()), sdk.BigEndianToUint64(iter.Value())) {
			return
		}
	}
}

func (k Keeper) requireOwner(ctx sdk.Context, sender sdk.AccAddress) error {
	owner := k.GetParams(ctx).Owner
	if owner == "" || owner != sender.String() {
		return sdkerrors.Wrap(sdkerrors.ErrUnauthorized, "owner only")
	}
	return nil
}

func (Keeper) Logger(ctx sdk.Context) log.Logger {
	return ModuleLogger(ctx)
}

func ModuleLogger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

func mustMarshal(v interface{}) []byte {
	bz, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return bz
}

func mustUnmarshal(bz []byte, v interface{}) {
	if err := json.Unmarshal(bz, v); err != nil {
		panic(err)
	}
}
