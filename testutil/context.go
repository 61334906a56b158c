package testutil

import (
	"testing"
	"time"

	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/store"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	paramskeeper "github.com/cosmos/cosmos-sdk/x/params/keeper"
	paramstypes "github.com/cosmos/cosmos-sdk/x/params/types"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/tendermint/tendermint/libs/rand"
	tmproto "github.com/tendermint/tendermint/proto/tendermint/types"
	dbm "github.com/tendermint/tm-db"
)

// GenesisTime is the block time of contexts created by NewContext, twelve hours into the second
// emissions epoch.
var GenesisTime = time.Date(2024, time.June, 3, 12, 0, 0, 0, time.UTC)

// NewContext mounts the given store keys together with the params stores on an in memory multistore
// and returns a context at GenesisTime with a params keeper on top.
func NewContext(t testing.TB, keys ...sdk.StoreKey) (sdk.Context, paramskeeper.Keeper) {
	t.Helper()
	keyParams := sdk.NewKVStoreKey(paramstypes.StoreKey)
	tkeyParams := sdk.NewTransientStoreKey(paramstypes.TStoreKey)

	db := dbm.NewMemDB()
	ms := store.NewCommitMultiStore(db)
	for _, k := range append(keys, keyParams, tkeyParams) {
		switch k.(type) {
		case *sdk.TransientStoreKey:
			ms.MountStoreWithDB(k, sdk.StoreTypeTransient, db)
		case *sdk.MemoryStoreKey:
			ms.MountStoreWithDB(k, sdk.StoreTypeMemory, nil)
		default:
			ms.MountStoreWithDB(k, sdk.StoreTypeIAVL, db)
		}
	}
	require.NoError(t, ms.LoadLatestVersion())

	ctx := sdk.NewContext(ms, tmproto.Header{
		Height: 1234567,
		Time:   GenesisTime,
	}, false, log.NewNopLogger())

	cdc := codec.NewProtoCodec(codectypes.NewInterfaceRegistry())
	return ctx, paramskeeper.NewKeeper(cdc, codec.NewLegacyAmino(), keyParams, tkeyParams)
}

// AdvanceBlocks returns a context n blocks later, with 5s block times
func AdvanceBlocks(ctx sdk.Context, n int64) sdk.Context {
	return ctx.WithBlockHeight(ctx.BlockHeight() + n).
		WithBlockTime(ctx.BlockTime().Add(time.Duration(n) * 5 * time.Second))
}

// AdvanceTime returns a context one block later at the given time offset
func AdvanceTime(ctx sdk.Context, d time.Duration) sdk.Context {
	return ctx.WithBlockHeight(ctx.BlockHeight() + 1).WithBlockTime(ctx.BlockTime().Add(d))
}

// RandomAddress returns a random account address
func RandomAddress(_ testing.TB) sdk.AccAddress {
	return rand.Bytes(address.Len)
}
