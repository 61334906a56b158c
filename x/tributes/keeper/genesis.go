package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/astroport/governance/x/tributes/types"
)

// InitGenesis sets the params and restores tributes and claim checkpoints
func InitGenesis(ctx sdk.Context, k Keeper, data types.GenesisState) {
	if err := types.ValidateGenesis(data); err != nil {
		panic(err)
	}
	k.setParams(ctx, data.Params)
	for _, t := range data.Tributes {
		k.setTribute(ctx, t.EpochTs, t.LpToken, t.Tribute)
	}
	for _, c := range data.LastClaims {
		k.setLastClaim(ctx, c.User, c.EpochTs)
	}
}

// ExportGenesis exports the params, all tributes and claim checkpoints
func ExportGenesis(ctx sdk.Context, k Keeper) types.GenesisState {
	r := types.GenesisState{Params: k.GetParams(ctx)}
	k.IterateTributes(ctx, func(epochTs uint64, lpToken string, t types.TributeInfo) bool {
		r.Tributes = append(r.Tributes, types.GenesisTribute{EpochTs: epochTs, LpToken: lpToken, Tribute: t})
		return false
	})
	k.IterateLastClaims(ctx, func(user string, epochTs uint64) bool {
		r.LastClaims = append(r.LastClaims, types.GenesisLastClaim{User: user, EpochTs: epochTs})
		return false
	})
	return r
}
