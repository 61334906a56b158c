package keeper

import (
	"testing"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroport/governance/testutil"
	"github.com/astroport/governance/x/emissions/types"
)

func TestWhitelistPool(t *testing.T) {
	fee := types.DefaultParams().WhitelistingFee
	remotePool := RandomAddressWithPrefix(t, TestRemotePrefix)
	hubPool := HubPool(t)

	specs := map[string]struct {
		pool   string
		funds  sdk.Coins
		setup  func(ctx sdk.Context, keepers TestKeepers, outposts TestOutposts)
		expErr error
	}{
		"remote pool with exact fee": {
			pool:  remotePool,
			funds: sdk.NewCoins(fee),
		},
		"registered hub pool": {
			pool:  hubPool,
			funds: sdk.NewCoins(fee),
			setup: func(ctx sdk.Context, keepers TestKeepers, _ TestOutposts) {
				keepers.Factory.IsRegisteredPoolFn = func(_ sdk.Context, lpToken string) (bool, error) {
					return lpToken == hubPool, nil
				}
			},
		},
		"unregistered hub pool": {
			pool:  hubPool,
			funds: sdk.NewCoins(fee),
			setup: func(ctx sdk.Context, keepers TestKeepers, _ TestOutposts) {
				keepers.Factory.IsRegisteredPoolFn = func(sdk.Context, string) (bool, error) { return false, nil }
			},
			expErr: types.ErrInvalidPool,
		},
		"fee one unit short": {
			pool:   remotePool,
			funds:  sdk.NewCoins(sdk.NewCoin(fee.Denom, fee.Amount.SubRaw(1))),
			expErr: types.ErrIncorrectWhitelistFee,
		},
		"fee one unit above": {
			pool:   remotePool,
			funds:  sdk.NewCoins(sdk.NewCoin(fee.Denom, fee.Amount.AddRaw(1))),
			expErr: types.ErrIncorrectWhitelistFee,
		},
		"fee in other denom": {
			pool:   remotePool,
			funds:  sdk.NewCoins(sdk.NewCoin("uother", fee.Amount)),
			expErr: types.ErrIncorrectWhitelistFee,
		},
		"no fee": {
			pool:   remotePool,
			expErr: types.ErrIncorrectWhitelistFee,
		},
		"unknown outpost": {
			pool:   RandomAddressWithPrefix(t, "juno"),
			funds:  sdk.NewCoins(fee),
			expErr: types.ErrNoOutpostForPool,
		},
		"invalid pool": {
			pool:   "not-a-pool",
			funds:  sdk.NewCoins(fee),
			expErr: types.ErrInvalidPool,
		},
		"astro pool": {
			pool:   "astro",
			funds:  sdk.NewCoins(fee),
			expErr: types.ErrInvalidPool,
		},
		"already whitelisted": {
			pool:  remotePool,
			funds: sdk.NewCoins(fee),
			setup: func(ctx sdk.Context, keepers TestKeepers, _ TestOutposts) {
				WhitelistTestPool(t, ctx, keepers, remotePool)
			},
			expErr: types.ErrPoolAlreadyWhitelisted,
		},
		"reset at the time of a vote": {
			pool:  remotePool,
			funds: sdk.NewCoins(fee),
			setup: func(ctx sdk.Context, keepers TestKeepers, outposts TestOutposts) {
				WhitelistTestPool(t, ctx, keepers, remotePool)
				voter := testutil.RandomAddress(t)
				LockTestPower(t, ctx, keepers, voter, 1000)
				require.NoError(t, keepers.EmissionsKeeper.Vote(ctx, voter, []types.PoolVote{{Pool: remotePool, Weight: sdk.OneDec()}}))
				require.NoError(t, keepers.EmissionsKeeper.RemovePoolFromWhitelist(ctx, outposts.Owner, remotePool))
			},
			expErr: types.ErrPoolReset,
		},
		"jailed outpost": {
			pool:  remotePool,
			funds: sdk.NewCoins(fee),
			setup: func(ctx sdk.Context, keepers TestKeepers, outposts TestOutposts) {
				require.NoError(t, keepers.EmissionsKeeper.JailOutpost(ctx, outposts.Owner, TestRemotePrefix))
			},
			expErr: types.ErrJailedOutpost,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, keepers := CreateDefaultTestInput(t)
			outposts := SetupOutposts(t, ctx, keepers)
			pool := spec.pool
			if pool == "astro" {
				pool = outposts.AstroPool
			}
			if spec.setup != nil {
				spec.setup(ctx, keepers, outposts)
			}
			payer := testutil.RandomAddress(t)
			keepers.BankKeeper.Fund(payer, sdk.NewCoin(fee.Denom, fee.Amount.MulRaw(2)), sdk.NewCoin("uother", fee.Amount))
			moduleBalance := keepers.BankKeeper.ModuleBalance(types.ModuleName)

			// when
			gotErr := keepers.EmissionsKeeper.WhitelistPool(ctx, payer, spec.funds, pool)

			// then
			if spec.expErr != nil {
				require.ErrorIs(t, gotErr, spec.expErr)
				assert.Equal(t, moduleBalance.String(), keepers.BankKeeper.ModuleBalance(types.ModuleName).String())
				return
			}
			require.NoError(t, gotErr)
			assert.True(t, keepers.EmissionsKeeper.IsWhitelisted(ctx, pool))
			info, found := keepers.EmissionsKeeper.GetPoolInfo(ctx, pool)
			require.True(t, found)
			assert.Equal(t, uint64(ctx.BlockTime().Unix()), info.InitTs)
			assert.True(t, info.VotingPower.IsZero())
			assert.Equal(t, moduleBalance.Add(fee).String(), keepers.BankKeeper.ModuleBalance(types.ModuleName).String())
		})
	}
}

func TestWhitelistFeeReceiver(t *testing.T) {
	ctx, keepers := CreateDefaultTestInput(t)
	SetupOutposts(t, ctx, keepers)
	receiver := testutil.RandomAddress(t)
	params := keepers.EmissionsKeeper.GetParams(ctx)
	params.FeeReceiver = receiver.String()
	SetTestParams(ctx, keepers.EmissionsKeeper, params)

	// when
	WhitelistTestPool(t, ctx, keepers, RandomAddressWithPrefix(t, TestRemotePrefix))

	// then
	assert.Equal(t, params.WhitelistingFee.String(), keepers.BankKeeper.GetBalance(ctx, receiver, params.WhitelistingFee.Denom).String())
	assert.True(t, keepers.BankKeeper.ModuleBalance(types.ModuleName).IsZero())
}

func TestRemovePoolFromWhitelist(t *testing.T) {
	ctx, keepers := CreateDefaultTestInput(t)
	outposts := SetupOutposts(t, ctx, keepers)
	pool := RandomAddressWithPrefix(t, TestRemotePrefix)
	WhitelistTestPool(t, ctx, keepers, pool)

	err := keepers.EmissionsKeeper.RemovePoolFromWhitelist(ctx, testutil.RandomAddress(t), pool)
	require.ErrorIs(t, err, sdkerrors.ErrUnauthorized)

	require.NoError(t, keepers.EmissionsKeeper.RemovePoolFromWhitelist(ctx, outposts.Owner, pool))
	assert.False(t, keepers.EmissionsKeeper.IsWhitelisted(ctx, pool))
	assert.Equal(t, []string{}, keepers.EmissionsKeeper.GetWhitelist(ctx))

	err = keepers.EmissionsKeeper.RemovePoolFromWhitelist(ctx, outposts.Owner, pool)
	require.ErrorIs(t, err, types.ErrPoolNotWhitelisted)
}

func TestWhitelistAgainResetsTally(t *testing.T) {
	ctx, keepers := CreateDefaultTestInput(t)
	outposts := SetupOutposts(t, ctx, keepers)
	pool := RandomAddressWithPrefix(t, TestRemotePrefix)
	WhitelistTestPool(t, ctx, keepers, pool)
	voter := testutil.RandomAddress(t)
	LockTestPower(t, ctx, keepers, voter, 1000)
	require.NoError(t, keepers.EmissionsKeeper.Vote(ctx, voter, []types.PoolVote{{Pool: pool, Weight: sdk.OneDec()}}))

	require.NoError(t, keepers.EmissionsKeeper.RemovePoolFromWhitelist(ctx, outposts.Owner, pool))
	ctx = testutil.AdvanceTime(ctx, time.Hour)

	// when
	WhitelistTestPool(t, ctx, keepers, pool)

	// then
	info, _ := keepers.EmissionsKeeper.GetPoolInfo(ctx, pool)
	assert.True(t, info.VotingPower.IsZero())
	// the old vote is no longer counted when the voter power changes
	LockTestPower(t, ctx, keepers, voter, 500)
	info, _ = keepers.EmissionsKeeper.GetPoolInfo(ctx, pool)
	assert.True(t, info.VotingPower.IsZero())
	msg, broken := VoteConservationInvariant(keepers.EmissionsKeeper)(ctx)
	assert.False(t, broken, msg)
}

func TestWhitelistAgainAfterVoteInSameBlock(t *testing.T) {
	ctx, keepers := CreateDefaultTestInput(t)
	outposts := SetupOutposts(t, ctx, keepers)
	k := keepers.EmissionsKeeper
	pool := RandomAddressWithPrefix(t, TestRemotePrefix)
	WhitelistTestPool(t, ctx, keepers, pool)
	voter := testutil.RandomAddress(t)
	LockTestPower(t, ctx, keepers, voter, 1000)
	ctx = testutil.AdvanceTime(ctx, time.Hour)
	require.NoError(t, k.Vote(ctx, voter, []types.PoolVote{{Pool: pool, Weight: sdk.OneDec()}}))
	require.NoError(t, k.RemovePoolFromWhitelist(ctx, outposts.Owner, pool))

	// when whitelisted again in the block of the vote
	payer := testutil.RandomAddress(t)
	fee := k.GetParams(ctx).WhitelistingFee
	keepers.BankKeeper.Fund(payer, fee)
	err := k.WhitelistPool(ctx, payer, sdk.NewCoins(fee), pool)
	// then
	require.ErrorIs(t, err, types.ErrPoolReset)
	assert.False(t, k.IsWhitelisted(ctx, pool))

	// when whitelisted in a later block
	ctx = testutil.AdvanceTime(ctx, 5*time.Second)
	WhitelistTestPool(t, ctx, keepers, pool)

	// then the old vote is void and the voter can change power and vote again
	LockTestPower(t, ctx, keepers, voter, 500)
	info, _ := k.GetPoolInfo(ctx, pool)
	assert.True(t, info.VotingPower.IsZero())
	ctx = testutil.AdvanceTime(ctx, time.Duration(k.GetParams(ctx).VoteCooldown)*time.Second)
	require.NoError(t, k.Vote(ctx, voter, []types.PoolVote{{Pool: pool, Weight: sdk.OneDec()}}))
	info, _ = k.GetPoolInfo(ctx, pool)
	assert.Equal(t, "1500", info.VotingPower.String())
	msg, broken := VoteConservationInvariant(k)(ctx)
	assert.False(t, broken, msg)
}

func TestPoolHistoryKeptOnWhitelistAgain(t *testing.T) {
	ctx, keepers := CreateDefaultTestInput(t)
	outposts := SetupOutposts(t, ctx, keepers)
	k := keepers.EmissionsKeeper
	pool := RandomAddressWithPrefix(t, TestRemotePrefix)
	WhitelistTestPool(t, ctx, keepers, pool)
	voter := testutil.RandomAddress(t)
	LockTestPower(t, ctx, keepers, voter, 1000)
	require.NoError(t, k.Vote(ctx, voter, []types.PoolVote{{Pool: pool, Weight: sdk.OneDec()}}))

	now := uint64(ctx.BlockTime().Unix())
	epochTs := types.NextEpochStart(now)
	ctx = testutil.AdvanceTime(ctx, time.Duration(epochTs-now+60)*time.Second)
	require.NoError(t, k.RemovePoolFromWhitelist(ctx, outposts.Owner, pool))
	ctx = testutil.AdvanceTime(ctx, time.Hour)

	// when
	WhitelistTestPool(t, ctx, keepers, pool)

	// then the epoch snapshot is unchanged
	assert.Equal(t, "1000", k.PoolPowerAt(ctx, pool, epochTs).String())
	got := k.UserVotesAt(ctx, voter.String(), epochTs)
	require.Len(t, got, 1)
	assert.Equal(t, pool, got[0].Pool)
	assert.Equal(t, "1000", got[0].Amount.String())
	// while the new tally starts at zero
	assert.True(t, k.PoolPowerAt(ctx, pool, uint64(ctx.BlockTime().Unix())).IsZero())
	assert.Empty(t, k.UserVotesAt(ctx, voter.String(), uint64(ctx.BlockTime().Unix())))
}
