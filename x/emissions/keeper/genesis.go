package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/astroport/governance/x/emissions/types"
)

// InitGenesis sets the params and restores outposts, the whitelist and the latest votes and tallies.
// The IBC port is bound.
func InitGenesis(ctx sdk.Context, k Keeper, data types.GenesisState) {
	if err := types.ValidateGenesis(data); err != nil {
		panic(err)
	}
	k.setParams(ctx, data.Params)
	store := ctx.KVStore(k.storeKey)
	for _, o := range data.Outposts {
		k.setOutpost(ctx, o)
		if o.Params != nil {
			store.Set(types.GetChannelOutpostKey(o.Params.VotingChannel), []byte(o.Prefix))
		}
	}
	for _, pool := range data.Whitelist {
		k.setWhitelisted(ctx, pool)
	}
	for _, p := range data.PoolInfos {
		if err := k.setPoolInfo(ctx, p.Pool, p.Info); err != nil {
			panic(err)
		}
	}
	for _, u := range data.UserInfos {
		if err := k.setUserInfo(ctx, u.Voter, u.Info); err != nil {
			panic(err)
		}
	}
	if data.TuneInfo != nil {
		if err := k.setTuneInfo(ctx, *data.TuneInfo); err != nil {
			panic(err)
		}
	}
	if err := k.endpoint.BindPort(ctx); err != nil {
		panic(err)
	}
}

// ExportGenesis exports the current state. Historic points of the vote series are not exported.
func ExportGenesis(ctx sdk.Context, k Keeper) types.GenesisState {
	r := types.GenesisState{Params: k.GetParams(ctx), Whitelist: k.GetWhitelist(ctx)}
	k.IterateOutposts(ctx, func(o types.OutpostInfo) bool {
		r.Outposts = append(r.Outposts, o)
		return false
	})
	for _, pool := range r.Whitelist {
		if info, found := k.GetPoolInfo(ctx, pool); found {
			r.PoolInfos = append(r.PoolInfos, types.GenesisPoolInfo{Pool: pool, Info: info})
		}
	}
	k.IterateUserInfos(ctx, func(voter string, info types.UserInfo) bool {
		r.UserInfos = append(r.UserInfos, types.GenesisUserInfo{Voter: voter, Info: info})
		return false
	})
	if info, found := k.GetTuneInfo(ctx); found {
		r.TuneInfo = &info
	}
	return r
}
