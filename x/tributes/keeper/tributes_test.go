package keeper

import (
	"testing"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroport/governance/testutil"
	emissionstypes "github.com/astroport/governance/x/emissions/types"
	"github.com/astroport/governance/x/tributes/types"
)

const testPool = "factory/pool1"

func TestAddTribute(t *testing.T) {
	fee := sdk.NewCoin(types.DefaultFeeDenom, sdk.NewInt(types.DefaultTributeFee))
	usdc := func(n int64) sdk.Coin { return sdk.NewCoin("uusdc", sdk.NewInt(n)) }
	collector := testutil.RandomAddress(t)

	specs := map[string]struct {
		pool         string
		existing     bool
		params       func(p *types.Params)
		reward       sdk.Coin
		funds        sdk.Coins
		balance      sdk.Coins
		expErr       error
		expAllocated string
		expFee       sdk.Coins
	}{
		"first deposit charged": {
			reward:       usdc(100),
			funds:        sdk.NewCoins(usdc(100), fee),
			expAllocated: "100uusdc",
			expFee:       sdk.NewCoins(fee),
		},
		"further deposit not charged": {
			existing:     true,
			reward:       usdc(50),
			funds:        sdk.NewCoins(usdc(50)),
			expAllocated: "150uusdc",
		},
		"fee in reward denom": {
			params: func(p *types.Params) {
				p.TributeFee = usdc(10)
			},
			reward:       usdc(100),
			funds:        sdk.NewCoins(usdc(110)),
			expAllocated: "100uusdc",
			expFee:       sdk.NewCoins(usdc(10)),
		},
		"zero fee": {
			params: func(p *types.Params) {
				p.TributeFee = sdk.NewCoin(types.DefaultFeeDenom, sdk.ZeroInt())
			},
			reward:       usdc(100),
			funds:        sdk.NewCoins(usdc(100)),
			expAllocated: "100uusdc",
		},
		"fee missing": {
			reward: usdc(100),
			funds:  sdk.NewCoins(usdc(100)),
			expErr: types.ErrInvalidFunds,
		},
		"fee charged twice": {
			existing: true,
			reward:   usdc(50),
			funds:    sdk.NewCoins(usdc(50), fee),
			expErr:   types.ErrInvalidFunds,
		},
		"zero reward": {
			reward: usdc(0),
			funds:  sdk.NewCoins(fee),
			expErr: types.ErrInvalidFunds,
		},
		"pool not whitelisted": {
			pool:   "factory/other",
			reward: usdc(100),
			funds:  sdk.NewCoins(usdc(100), fee),
			expErr: types.ErrPoolNotWhitelisted,
		},
		"rewards limit": {
			existing: true,
			params: func(p *types.Params) {
				p.RewardsLimit = 1
			},
			reward: sdk.NewCoin("uatom", sdk.NewInt(100)),
			funds:  sdk.NewCoins(sdk.NewCoin("uatom", sdk.NewInt(100)), fee),
			expErr: types.ErrRewardsLimitExceeded,
		},
		"insufficient balance": {
			reward:  usdc(100),
			funds:   sdk.NewCoins(usdc(100), fee),
			balance: sdk.NewCoins(usdc(100)),
			expErr:  sdkerrors.ErrInsufficientFunds,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, keepers := CreateDefaultTestInput(t)
			k := keepers.TributesKeeper
			keepers.Emissions.Whitelist[testPool] = true
			params := k.GetParams(ctx)
			params.FeeCollector = collector.String()
			if spec.params != nil {
				spec.params(&params)
			}
			SetTestParams(ctx, k, params)
			if spec.existing {
				depositor := testutil.RandomAddress(t)
				keepers.BankKeeper.Fund(depositor, usdc(100), params.TributeFee)
				require.NoError(t, k.AddTribute(ctx, depositor, sdk.NewCoins(usdc(100), params.TributeFee), testPool, usdc(100)))
			}
			feesBefore := keepers.BankKeeper.Balances[collector.String()]
			sender := testutil.RandomAddress(t)
			balance := spec.funds
			if spec.balance != nil {
				balance = spec.balance
			}
			keepers.BankKeeper.Fund(sender, balance...)
			pool := testPool
			if spec.pool != "" {
				pool = spec.pool
			}

			// when
			gotErr := k.AddTribute(ctx, sender, spec.funds, pool, spec.reward)

			// then
			if spec.expErr != nil {
				require.ErrorIs(t, gotErr, spec.expErr)
				return
			}
			require.NoError(t, gotErr)
			epochTs := emissionstypes.NextEpochStart(uint64(ctx.BlockTime().Unix()))
			tribute, found := k.GetTribute(ctx, epochTs, pool, spec.reward.Denom)
			require.True(t, found)
			assert.Equal(t, spec.expAllocated, tribute.Allocated.String())
			assert.Equal(t, spec.expAllocated, tribute.Available.String())
			assert.True(t, keepers.BankKeeper.Balances[sender.String()].IsZero())
			gotFee := keepers.BankKeeper.Balances[collector.String()].Sub(feesBefore)
			assert.Equal(t, spec.expFee.String(), gotFee.String())
		})
	}
}

func TestTributeFeePerEpoch(t *testing.T) {
	ctx, keepers := CreateDefaultTestInput(t)
	k := keepers.TributesKeeper
	keepers.Emissions.Whitelist[testPool] = true
	fee := k.GetParams(ctx).TributeFee
	reward := sdk.NewCoin("uusdc", sdk.NewInt(100))
	sender := testutil.RandomAddress(t)
	keepers.BankKeeper.Fund(sender, reward.Add(reward), fee.Add(fee))

	require.NoError(t, k.AddTribute(ctx, sender, sdk.NewCoins(reward, fee), testPool, reward))
	firstEpoch := emissionstypes.NextEpochStart(uint64(ctx.BlockTime().Unix()))

	// when the next epoch started
	ctx = testutil.AdvanceTime(ctx, time.Duration(emissionstypes.EpochLength)*time.Second)

	// then the fee is charged again for the new epoch
	err := k.AddTribute(ctx, sender, sdk.NewCoins(reward), testPool, reward)
	require.ErrorIs(t, err, types.ErrInvalidFunds)
	require.NoError(t, k.AddTribute(ctx, sender, sdk.NewCoins(reward, fee), testPool, reward))
	secondEpoch := emissionstypes.NextEpochStart(uint64(ctx.BlockTime().Unix()))
	assert.Equal(t, firstEpoch+emissionstypes.EpochLength, secondEpoch)

	for _, epochTs := range []uint64{firstEpoch, secondEpoch} {
		tribute, found := k.GetTribute(ctx, epochTs, testPool, "uusdc")
		require.True(t, found)
		assert.Equal(t, "100uusdc", tribute.Allocated.String())
	}
	assert.Equal(t, sdk.NewCoins(reward.Add(reward), fee.Add(fee)).String(), keepers.BankKeeper.ModuleBalance(types.ModuleName).String())
}

func TestRemoveTribute(t *testing.T) {
	reward := sdk.NewCoin("uusdc", sdk.NewInt(100))

	specs := map[string]struct {
		sender    func(keepers TestKeepers) sdk.AccAddress
		denom     string
		advance   time.Duration
		expErr    error
		expRefund string
	}{
		"refunded": {
			expRefund: "100uusdc",
		},
		"not owner": {
			sender: func(TestKeepers) sdk.AccAddress { return testutil.RandomAddress(t) },
			expErr: sdkerrors.ErrUnauthorized,
		},
		"unknown denom": {
			denom:  "uatom",
			expErr: types.ErrTributeNotFound,
		},
		"epoch started": {
			advance: time.Duration(emissionstypes.EpochLength) * time.Second,
			expErr:  types.ErrTributeNotFound,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, keepers := CreateDefaultTestInput(t)
			k := keepers.TributesKeeper
			keepers.Emissions.Whitelist[testPool] = true
			fee := k.GetParams(ctx).TributeFee
			depositor := testutil.RandomAddress(t)
			keepers.BankKeeper.Fund(depositor, reward, fee)
			require.NoError(t, k.AddTribute(ctx, depositor, sdk.NewCoins(reward, fee), testPool, reward))
			ctx = testutil.AdvanceTime(ctx, spec.advance)
			sender := keepers.Owner
			if spec.sender != nil {
				sender = spec.sender(keepers)
			}
			denom := reward.Denom
			if spec.denom != "" {
				denom = spec.denom
			}
			receiver := testutil.RandomAddress(t)

			// when
			gotRefund, gotErr := k.RemoveTribute(ctx, sender, testPool, denom, receiver)

			// then
			if spec.expErr != nil {
				require.ErrorIs(t, gotErr, spec.expErr)
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, spec.expRefund, gotRefund.String())
			assert.Equal(t, spec.expRefund, keepers.BankKeeper.Balances[receiver.String()].String())
			_, found := k.GetTribute(ctx, emissionstypes.NextEpochStart(uint64(ctx.BlockTime().Unix())), testPool, denom)
			assert.False(t, found)
		})
	}
}

func TestUpdateConfig(t *testing.T) {
	ctx, keepers := CreateDefaultTestInput(t)
	k := keepers.TributesKeeper
	params := k.GetParams(ctx)
	params.RewardsLimit = 10

	err := k.UpdateConfig(ctx, testutil.RandomAddress(t), params)
	require.ErrorIs(t, err, sdkerrors.ErrUnauthorized)

	invalid := params
	invalid.RewardsLimit = types.MaxRewardsLimit + 1
	err = k.UpdateConfig(ctx, keepers.Owner, invalid)
	require.ErrorIs(t, err, types.ErrInvalidParams)

	require.NoError(t, k.UpdateConfig(ctx, keepers.Owner, params))
	assert.Equal(t, uint64(10), k.GetParams(ctx).RewardsLimit)
}
