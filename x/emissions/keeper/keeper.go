package keeper

import (
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	paramtypes "github.com/cosmos/cosmos-sdk/x/params/types"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/astroport/governance/x/channel"
	"github.com/astroport/governance/x/emissions/types"
	"github.com/astroport/governance/x/snapshot"
)

type Keeper struct {
	storeKey    sdk.StoreKey
	paramSpace  paramtypes.Subspace
	bankKeeper  types.BankKeeper
	votingPower types.VotingPowerSource
	tracker     types.XAstroTracker
	staking     types.XAstroStaking
	factory     types.PoolFactory
	incentives  types.Incentives
	assembly    types.Assembly
	transfer    types.TransferKeeper
	endpoint    channel.Endpoint

	pools snapshot.Series
	users snapshot.Series
	tunes snapshot.Series
}

// NewKeeper constructor
func NewKeeper(
	storeKey sdk.StoreKey,
	paramSpace paramtypes.Subspace,
	bankKeeper types.BankKeeper,
	votingPower types.VotingPowerSource,
	tracker types.XAstroTracker,
	staking types.XAstroStaking,
	factory types.PoolFactory,
	incentives types.Incentives,
	assembly types.Assembly,
	transfer types.TransferKeeper,
	channelKeeper channel.ChannelKeeper,
	portKeeper channel.PortKeeper,
	scopedKeeper channel.ScopedKeeper,
) Keeper {
	if !paramSpace.HasKeyTable() {
		paramSpace = paramSpace.WithKeyTable(types.ParamKeyTable())
	}
	return Keeper{
		storeKey:    storeKey,
		paramSpace:  paramSpace,
		bankKeeper:  bankKeeper,
		votingPower: votingPower,
		tracker:     tracker,
		staking:     staking,
		factory:     factory,
		incentives:  incentives,
		assembly:    assembly,
		transfer:    transfer,
		endpoint:    channel.NewEndpoint(types.PortID, types.Version, channelKeeper, portKeeper, scopedKeeper),
		pools:       snapshot.NewSeries(storeKey, types.PoolSeriesPrefix),
		users:       snapshot.NewSeries(storeKey, types.UserSeriesPrefix),
		tunes:       snapshot.NewSeries(storeKey, types.TuneSeriesPrefix),
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

// UpdateParams replaces the params. Only the owner can do this.
func (k Keeper) UpdateParams(ctx sdk.Context, sender sdk.AccAddress, params types.Params) error {
	if err := k.requireOwner(ctx, sender); err != nil {
		return err
	}
	if err := params.Validate(); err != nil {
		return err
	}
	k.setParams(ctx, params)
	return nil
}

// Endpoint returns the IBC endpoint of the hub
func (k Keeper) Endpoint() channel.Endpoint {
	return k.endpoint
}

// GetUserInfo returns the latest vote of the voter
func (k Keeper) GetUserInfo(ctx sdk.Context, voter string) (types.UserInfo, bool) {
	p, ok := k.users.Latest(ctx, []byte(voter))
	if !ok {
		return types.UserInfo{}, false
	}
	var r types.UserInfo
	mustUnmarshal(p.Value, &r)
	return r, true
}

// GetUserInfoAt returns the vote of the voter that was active at the given time
func (k Keeper) GetUserInfoAt(ctx sdk.Context, voter string, ts uint64) (types.UserInfo, bool) {
	p, ok := k.users.AtOrBefore(ctx, []byte(voter), ts)
	if !ok {
		return types.UserInfo{}, false
	}
	var r types.UserInfo
	mustUnmarshal(p.Value, &r)
	return r, true
}

// UserVotesAt returns the share of the voter in every pool tally at the given time. Votes that are
// no longer part of a tally are left out.
func (k Keeper) UserVotesAt(ctx sdk.Context, voter string, ts uint64) []types.PoolAmount {
	info, found := k.GetUserInfoAt(ctx, voter, ts)
	if !found || info.VotingPower.IsNil() {
		return nil
	}
	var r []types.PoolAmount
	for _, v := range info.Votes {
		pool, found := k.GetPoolInfoAt(ctx, v.Pool, ts)
		if !found || pool.InitTs > info.VoteTs || !k.PoolPowerAt(ctx, v.Pool, ts).IsPositive() {
			continue
		}
		if power := weightedPower(info.VotingPower, v.Weight); power.IsPositive() {
			r = append(r, types.PoolAmount{Pool: v.Pool, Amount: power})
		}
	}
	return r
}

// FirstVoteTs returns the time the voter was first recorded
func (k Keeper) FirstVoteTs(ctx sdk.Context, voter string) (uint64, bool) {
	p, ok := k.users.First(ctx, []byte(voter))
	return p.Timestamp, ok
}

func (k Keeper) setUserInfo(ctx sdk.Context, voter string, info types.UserInfo) error {
	return k.users.Record(ctx, []byte(voter), uint64(ctx.BlockTime().Unix()), mustMarshal(info))
}

// IterateUserInfos visits the latest vote of every user
func (k Keeper) IterateUserInfos(ctx sdk.Context, cb func(voter string, info types.UserInfo) bool) {
	k.users.IterateLatest(ctx, func(subject []byte, p snapshot.Point) bool {
		var info types.UserInfo
		mustUnmarshal(p.Value, &info)
		return cb(string(subject), info)
	})
}

// GetPoolInfo returns the latest tally of the pool
func (k Keeper) GetPoolInfo(ctx sdk.Context, pool string) (types.VotedPoolInfo, bool) {
	p, ok := k.pools.Latest(ctx, []byte(pool))
	if !ok {
		return types.VotedPoolInfo{}, false
	}
	var r types.VotedPoolInfo
	mustUnmarshal(p.Value, &r)
	return r, true
}

// GetPoolInfoAt returns the tally of the pool at the given time
func (k Keeper) GetPoolInfoAt(ctx sdk.Context, pool string, ts uint64) (types.VotedPoolInfo, bool) {
	p, ok := k.pools.AtOrBefore(ctx, []byte(pool), ts)
	if !ok {
		return types.VotedPoolInfo{}, false
	}
	var r types.VotedPoolInfo
	mustUnmarshal(p.Value, &r)
	return r, true
}

func (k Keeper) setPoolInfo(ctx sdk.Context, pool string, info types.VotedPoolInfo) error {
	return k.pools.Record(ctx, []byte(pool), uint64(ctx.BlockTime().Unix()), mustMarshal(info))
}

// GetTuneInfo returns the latest tuning result
func (k Keeper) GetTuneInfo(ctx sdk.Context) (types.TuneInfo, bool) {
	p, ok := k.tunes.Latest(ctx, types.TuneSubject)
	if !ok {
		return types.TuneInfo{}, false
	}
	var r types.TuneInfo
	mustUnmarshal(p.Value, &r)
	return r, true
}

// GetTuneInfoAt returns the tuning result that was active at the given time
func (k Keeper) GetTuneInfoAt(ctx sdk.Context, ts uint64) (types.TuneInfo, bool) {
	p, ok := k.tunes.AtOrBefore(ctx, types.TuneSubject, ts)
	if !ok {
		return types.TuneInfo{}, false
	}
	var r types.TuneInfo
	mustUnmarshal(p.Value, &r)
	return r, true
}

// setTuneInfo stores the tune info with its epoch start as timestamp
func (k Keeper) setTuneInfo(ctx sdk.Context, info types.TuneInfo) error {
	return k.tunes.Record(ctx, types.TuneSubject, info.TuneTs, mustMarshal(info))
}

// IsWhitelisted returns true when the pool can be voted for
func (k Keeper) IsWhitelisted(ctx sdk.Context, pool string) bool {
	return ctx.KVStore(k.storeKey).Has(types.GetWhitelistKey(pool))
}

func (k Keeper) setWhitelisted(ctx sdk.Context, pool string) {
	ctx.KVStore(k.storeKey).Set(types.GetWhitelistKey(pool), []byte{})
}

func (k Keeper) removeWhitelisted(ctx sdk.Context, pool string) {
	ctx.KVStore(k.storeKey).Delete(types.GetWhitelistKey(pool))
}

// IterateWhitelist visits all whitelisted pools in key order
func (k Keeper) IterateWhitelist(ctx sdk.Context, cb func(pool string) bool) {
	iter := sdk.KVStorePrefixIterator(ctx.KVStore(k.storeKey), types.WhitelistPrefix)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		if cb(string(iter.Key()[len(types.WhitelistPrefix):])) {
			return
		}
	}
}

// GetWhitelist returns all whitelisted pools
func (k Keeper) GetWhitelist(ctx sdk.Context) []string {
	r := []string{}
	k.IterateWhitelist(ctx, func(pool string) bool {
		r = append(r, pool)
		return false
	})
	return r
}

// GetOutpost returns the outpost with the given bech32 prefix
func (k Keeper) GetOutpost(ctx sdk.Context, prefix string) (types.OutpostInfo, bool) {
	bz := ctx.KVStore(k.storeKey).Get(types.GetOutpostKey(prefix))
	if bz == nil {
		return types.OutpostInfo{}, false
	}
	var r types.OutpostInfo
	mustUnmarshal(bz, &r)
	return r, true
}

func (k Keeper) setOutpost(ctx sdk.Context, o types.OutpostInfo) {
	ctx.KVStore(k.storeKey).Set(types.GetOutpostKey(o.Prefix), mustMarshal(o))
}

// IterateOutposts visits all outposts ordered by prefix
func (k Keeper) IterateOutposts(ctx sdk.Context, cb func(o types.OutpostInfo) bool) {
	iter := sdk.KVStorePrefixIterator(ctx.KVStore(k.storeKey), types.OutpostPrefix)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var o types.OutpostInfo
		mustUnmarshal(iter.Value(), &o)
		if cb(o) {
			return
		}
	}
}

// GetOutpostByChannel returns the outpost that votes over the given hub channel
func (k Keeper) GetOutpostByChannel(ctx sdk.Context, channelID string) (types.OutpostInfo, bool) {
	prefix := ctx.KVStore(k.storeKey).Get(types.GetChannelOutpostKey(channelID))
	if prefix == nil {
		return types.OutpostInfo{}, false
	}
	return k.GetOutpost(ctx, string(prefix))
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
