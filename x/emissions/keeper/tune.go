package keeper

import (
	"strconv"
	"time"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	transfertypes "github.com/cosmos/ibc-go/v2/modules/apps/transfer/types"

	"github.com/astroport/governance/x/contract"
	"github.com/astroport/governance/x/emissions/types"
)

// tunePlan is the outcome of a tuning before any emissions are sent
type tunePlan struct {
	info types.TuneInfo
	// removed pools leave the whitelist
	removed []string
}

// TunePools distributes the emissions of the new epoch to the pools with the most votes. It can run
// once per epoch. Pool votes are read at the epoch start so that the result does not depend on the
// time of the call within the epoch.
func (k Keeper) TunePools(ctx sdk.Context) (types.TuneInfo, error) {
	defer telemetry.ModuleMeasureSince(types.ModuleName, time.Now(), "tune")
	now := uint64(ctx.BlockTime().Unix())
	last, found := k.GetTuneInfo(ctx)
	if !found {
		last = types.TuneInfo{TuneTs: types.EpochStart(now) - types.EpochLength}
	}
	if next := last.TuneTs + types.EpochLength; now < next {
		return types.TuneInfo{}, sdkerrors.Wrapf(types.ErrTuneCooldown, "next tune at %d", next)
	}
	plan, err := k.planTune(ctx, types.EpochStart(now), last.EmissionsState)
	if err != nil {
		return types.TuneInfo{}, err
	}
	for _, pool := range plan.removed {
		k.removeWhitelisted(ctx, pool)
	}
	info := plan.info
	info.OutpostEmissionsStatuses = make(map[string]types.EmissionsStatus, len(info.PoolsGrouped))
	for _, group := range info.PoolsGrouped {
		outpost, _ := k.GetOutpost(ctx, group.Prefix)
		info.OutpostEmissionsStatuses[group.Prefix] = k.sendEmissions(ctx, outpost, group, info.TuneTs)
	}
	if err := k.setTuneInfo(ctx, info); err != nil {
		return types.TuneInfo{}, sdkerrors.Wrap(err, "tune info")
	}
	ModuleLogger(ctx).Info("pools tuned",
		"tune_ts", info.TuneTs,
		"emissions", info.EmissionsState.EmissionsAmount.String(),
		"outposts", len(info.PoolsGrouped),
		"removed", len(plan.removed),
	)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeTunePools,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyTuneTs, strconv.FormatUint(info.TuneTs, 10)),
		sdk.NewAttribute(types.AttributeKeyEmissions, info.EmissionsState.EmissionsAmount.String()),
	))
	return info, nil
}

// SimulateTune returns the result a tuning would have now, without any state changes. Emission
// statuses are not set.
func (k Keeper) SimulateTune(ctx sdk.Context) (types.TuneInfo, error) {
	last, _ := k.GetTuneInfo(ctx)
	plan, err := k.planTune(ctx, types.EpochStart(uint64(ctx.BlockTime().Unix())), last.EmissionsState)
	if err != nil {
		return types.TuneInfo{}, err
	}
	return plan.info, nil
}

func (k Keeper) planTune(ctx sdk.Context, epochStart uint64, prev types.EmissionsState) (tunePlan, error) {
	params := k.GetParams(ctx)
	active := k.ActiveOutposts(ctx)
	isActive := make(map[string]bool, len(active))
	for _, o := range active {
		isActive[o.Prefix] = true
	}

	var eligible []string
	var candidates []types.PoolPower
	totalPower := sdk.ZeroInt()
	k.IterateWhitelist(ctx, func(pool string) bool {
		prefix, err := types.DeterminePoolPrefix(pool)
		if err != nil || !isActive[prefix] {
			return false
		}
		eligible = append(eligible, pool)
		// a pool whitelisted after the epoch start competes from the next epoch on
		if latest, found := k.GetPoolInfo(ctx, pool); !found || latest.InitTs > epochStart {
			return false
		}
		if power := k.PoolPowerAt(ctx, pool, epochStart); power.IsPositive() {
			candidates = append(candidates, types.PoolPower{Pool: pool, VotingPower: power})
			totalPower = totalPower.Add(power)
		}
		return false
	})
	types.SortPoolsByPower(candidates)

	var plan tunePlan
	selected := candidates
	if limit := int(params.PoolsPerOutpost) * len(active); len(candidates) > limit {
		selected = candidates[:limit]
		keep := make(map[string]bool, limit)
		for _, p := range selected {
			keep[p.Pool] = true
		}
		minPower := params.WhitelistThreshold.MulInt(totalPower)
		for _, p := range candidates[limit:] {
			if p.VotingPower.ToDec().GTE(minPower) {
				keep[p.Pool] = true
			}
		}
		for _, pool := range eligible {
			if !keep[pool] {
				plan.removed = append(plan.removed, pool)
			}
		}
	}

	shares, err := k.staking.TotalShares(ctx)
	if err != nil {
		return tunePlan{}, sdkerrors.Wrap(err, "xastro shares")
	}
	deposit, err := k.staking.TotalDeposit(ctx)
	if err != nil {
		return tunePlan{}, sdkerrors.Wrap(err, "astro deposit")
	}
	state := types.NextEmissionsState(prev, shares, types.XAstroRate(deposit, shares), params.EmissionsMultiple, params.MaxAstro)

	selectedPower := sdk.ZeroInt()
	for _, p := range selected {
		selectedPower = selectedPower.Add(p.VotingPower)
	}
	grouped := make(map[string][]types.PoolAmount, len(active))
	for _, p := range selected {
		amount := state.EmissionsAmount.Mul(p.VotingPower).Quo(selectedPower)
		if !amount.IsPositive() {
			continue
		}
		prefix, _ := types.DeterminePoolPrefix(p.Pool)
		grouped[prefix] = append(grouped[prefix], types.PoolAmount{Pool: p.Pool, Amount: amount})
	}
	plan.info = types.TuneInfo{TuneTs: epochStart, EmissionsState: state}
	for _, o := range active {
		pools := grouped[o.Prefix]
		if c := o.AstroPoolConfig; c != nil {
			pools = append(pools, types.PoolAmount{Pool: c.AstroPool, Amount: c.Constant})
		}
		if len(pools) != 0 {
			plan.info.PoolsGrouped = append(plan.info.PoolsGrouped, types.OutpostPools{Prefix: o.Prefix, Pools: pools})
		}
	}
	return plan, nil
}

// PoolPowerAt returns the tally of the pool at the given time. A later reset of the pool does not
// change it.
func (k Keeper) PoolPowerAt(ctx sdk.Context, pool string, ts uint64) sdk.Int {
	info, found := k.GetPoolInfoAt(ctx, pool, ts)
	if !found || info.VotingPower.IsNil() {
		return sdk.ZeroInt()
	}
	return info.VotingPower
}

// sendEmissions hands the emissions of an outpost to the incentives contract on the hub or transfers
// them to a remote outpost. A failure is logged and reported as status; it can be retried.
func (k Keeper) sendEmissions(ctx sdk.Context, outpost types.OutpostInfo, group types.OutpostPools, tuneTs uint64) types.EmissionsStatus {
	params := k.GetParams(ctx)
	cacheCtx, commit := ctx.CacheContext()
	cacheCtx = cacheCtx.WithEventManager(sdk.NewEventManager())

	status := types.EmissionsStatusInProgress
	var err error
	if outpost.IsLocal() {
		schedules := make([]contract.PoolAmount, len(group.Pools))
		for i, p := range group.Pools {
			schedules[i] = contract.PoolAmount{LpToken: p.Pool, Amount: p.Amount}
		}
		err = k.incentives.IncentivizeMany(cacheCtx, types.ModuleAddress(), params.AstroDenom, schedules)
		status = types.EmissionsStatusDone
	} else {
		err = k.transferEmissions(cacheCtx, params, outpost, group, tuneTs)
	}
	if err != nil {
		ModuleLogger(ctx).Error("sending emissions failed", "outpost", outpost.Prefix, "err", err)
		return types.EmissionsStatusFailed
	}
	commit()
	ctx.EventManager().EmitEvents(cacheCtx.EventManager().Events())
	return status
}

func (k Keeper) transferEmissions(ctx sdk.Context, params types.Params, outpost types.OutpostInfo, group types.OutpostPools, tuneTs uint64) error {
	memo := types.SetEmissionsMemo{SetEmissions: group.Pools}
	timeout := uint64(ctx.BlockTime().UnixNano()) + params.IbcTimeout*uint64(time.Second)
	seq, err := k.transfer.SendTransferWithMemo(
		ctx,
		transfertypes.PortID,
		outpost.Params.ICS20Channel,
		sdk.NewCoin(params.AstroDenom, group.Total()),
		types.ModuleAddress(),
		outpost.Params.EmissionsController,
		timeout,
		string(types.MustMarshalJSON(memo)),
	)
	if err != nil {
		return err
	}
	transfer := types.PendingTransfer{Prefix: outpost.Prefix, TuneTs: tuneTs}
	ctx.KVStore(k.storeKey).Set(types.GetTransferKey(outpost.Params.ICS20Channel, seq), mustMarshal(transfer))
	return nil
}

// RetryFailedOutposts sends the emissions of the latest tuning again to all outposts they could not
// be delivered to. Jailed outposts are skipped.
func (k Keeper) RetryFailedOutposts(ctx sdk.Context) error {
	info, found := k.GetTuneInfo(ctx)
	if !found {
		return types.ErrNoFailedOutposts
	}
	failed := info.OutpostsWithStatus(types.EmissionsStatusFailed)
	if len(failed) == 0 {
		return types.ErrNoFailedOutposts
	}
	for _, prefix := range failed {
		outpost, found := k.GetOutpost(ctx, prefix)
		if !found || outpost.Jailed {
			continue
		}
		group, _ := info.Outpost(prefix)
		status := k.sendEmissions(ctx, outpost, group, info.TuneTs)
		info.OutpostEmissionsStatuses[prefix] = status
		ctx.EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypeRetryOutpost,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
			sdk.NewAttribute(types.AttributeKeyOutpost, prefix),
			sdk.NewAttribute(types.AttributeKeyStatus, string(status)),
		))
	}
	return sdkerrors.Wrap(k.setTuneInfo(ctx, info), "tune info")
}

// HandleTransferCallback completes the emissions of an outpost with the outcome of the ICS20
// transfer. Transfers of an older tuning are dropped.
func (k Keeper) HandleTransferCallback(ctx sdk.Context, channelID string, sequence uint64, success bool) error {
	store := ctx.KVStore(k.storeKey)
	key := types.GetTransferKey(channelID, sequence)
	bz := store.Get(key)
	if bz == nil {
		return sdkerrors.Wrapf(types.ErrTransferNotFound, "channel %s sequence %d", channelID, sequence)
	}
	store.Delete(key)
	var transfer types.PendingTransfer
	mustUnmarshal(bz, &transfer)

	info, found := k.GetTuneInfo(ctx)
	if !found || info.TuneTs != transfer.TuneTs || info.OutpostEmissionsStatuses[transfer.Prefix] != types.EmissionsStatusInProgress {
		ModuleLogger(ctx).Info("stale emissions transfer", "outpost", transfer.Prefix, "tune_ts", transfer.TuneTs)
		return nil
	}
	status := types.EmissionsStatusDone
	if !success {
		status = types.EmissionsStatusFailed
		ModuleLogger(ctx).Info("emissions transfer failed", "outpost", transfer.Prefix, "channel", channelID)
	}
	info.OutpostEmissionsStatuses[transfer.Prefix] = status
	if err := k.setTuneInfo(ctx, info); err != nil {
		return sdkerrors.Wrap(err, "tune info")
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeEmissionsFinished,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyOutpost, transfer.Prefix),
		sdk.NewAttribute(types.AttributeKeyStatus, string(status)),
	))
	return nil
}
