package keeper

import (
	"errors"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroport/governance/testutil"
	emissionstypes "github.com/astroport/governance/x/emissions/types"
	"github.com/astroport/governance/x/outpost/types"
)

func TestSetEmissions(t *testing.T) {
	myErr := errors.New("testing")
	astro := func(amount int64) sdk.Coin {
		return sdk.NewCoin(types.DefaultAstroDenom, sdk.NewInt(amount))
	}
	schedules := []emissionstypes.PoolAmount{
		{Pool: "factory/pool1", Amount: sdk.NewInt(60)},
		{Pool: "factory/pool2", Amount: sdk.NewInt(40)},
	}
	specs := map[string]struct {
		funds         sdk.Coins
		schedules     []emissionstypes.PoolAmount
		incentivesErr error
		expErr        error
	}{
		"exact amount": {
			funds:     sdk.NewCoins(astro(100)),
			schedules: schedules,
		},
		"amount too high": {
			funds:     sdk.NewCoins(astro(101)),
			schedules: schedules,
			expErr:    types.ErrInvalidFunds,
		},
		"amount too low": {
			funds:     sdk.NewCoins(astro(99)),
			schedules: schedules,
			expErr:    types.ErrInvalidFunds,
		},
		"other denom": {
			funds:     sdk.NewCoins(sdk.NewCoin("uosmo", sdk.NewInt(100))),
			schedules: schedules,
			expErr:    types.ErrInvalidFunds,
		},
		"multiple coins": {
			funds:     sdk.NewCoins(astro(100), sdk.NewCoin("uosmo", sdk.NewInt(1))),
			schedules: schedules,
			expErr:    types.ErrInvalidFunds,
		},
		"no pools": {
			funds:  sdk.NewCoins(astro(100)),
			expErr: types.ErrInvalidFunds,
		},
		"zero amount": {
			funds:     sdk.NewCoins(astro(100)),
			schedules: append([]emissionstypes.PoolAmount{{Pool: "factory/pool3", Amount: sdk.ZeroInt()}}, schedules...),
			expErr:    types.ErrInvalidFunds,
		},
		"incentives fail": {
			funds:         sdk.NewCoins(astro(100)),
			schedules:     schedules,
			incentivesErr: myErr,
			expErr:        myErr,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, keepers := CreateDefaultTestInput(t)
			keepers.Incentives.Err = spec.incentivesErr
			sender := testutil.RandomAddress(t)
			keepers.BankKeeper.Fund(sender, spec.funds...)

			// when
			gotErr := keepers.OutpostKeeper.ExecuteSetEmissions(ctx, sender, spec.funds, spec.schedules)

			// then
			if spec.expErr != nil {
				require.ErrorIs(t, gotErr, spec.expErr)
				assert.Empty(t, keepers.Incentives.Calls)
				return
			}
			require.NoError(t, gotErr)
			require.Len(t, keepers.Incentives.Calls, 1)
			got := keepers.Incentives.Calls[0]
			require.Len(t, got, 2)
			assert.Equal(t, "factory/pool1", got[0].LpToken)
			assert.Equal(t, "60", got[0].Amount.String())
			assert.Equal(t, "factory/pool2", got[1].LpToken)
			assert.Equal(t, "40", got[1].Amount.String())
			assert.Equal(t, "100", keepers.BankKeeper.ModuleBalance(types.ModuleName).AmountOf(types.DefaultAstroDenom).String())
		})
	}
}

func TestSetVotingChannel(t *testing.T) {
	specs := map[string]struct {
		sender    func(keepers TestKeepers) sdk.AccAddress
		channelID string
		expErr    error
	}{
		"owner": {
			channelID: TestVotingChannel,
		},
		"not owner": {
			sender:    func(TestKeepers) sdk.AccAddress { return testutil.RandomAddress(t) },
			channelID: TestVotingChannel,
			expErr:    sdkerrors.ErrUnauthorized,
		},
		"unknown channel": {
			channelID: "channel-7",
			expErr:    types.ErrInvalidChannel,
		},
		"channel to other port": {
			channelID: "channel-3",
			expErr:    types.ErrInvalidChannel,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, keepers := CreateDefaultTestInput(t)
			keepers.Channels.OpenChannel(types.PortID, TestVotingChannel, types.HubPortID, "channel-1", emissionstypes.Version)
			keepers.Channels.OpenChannel(types.PortID, "channel-3", "transfer", "channel-4", emissionstypes.Version)
			sender := keepers.Owner
			if spec.sender != nil {
				sender = spec.sender(keepers)
			}

			// when
			gotErr := keepers.OutpostKeeper.SetVotingChannel(ctx, sender, spec.channelID)

			// then
			if spec.expErr != nil {
				require.ErrorIs(t, gotErr, spec.expErr)
				assert.Empty(t, keepers.OutpostKeeper.GetVotingChannel(ctx))
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, spec.channelID, keepers.OutpostKeeper.GetVotingChannel(ctx))
		})
	}
}

func TestUpdateParams(t *testing.T) {
	ctx, keepers := CreateDefaultTestInput(t)
	k := keepers.OutpostKeeper
	params := k.GetParams(ctx)
	params.IbcTimeout = 60

	err := k.UpdateParams(ctx, testutil.RandomAddress(t), params)
	require.ErrorIs(t, err, sdkerrors.ErrUnauthorized)

	invalid := params
	invalid.IbcTimeout = 0
	err = k.UpdateParams(ctx, keepers.Owner, invalid)
	require.ErrorIs(t, err, types.ErrInvalidParams)

	require.NoError(t, k.UpdateParams(ctx, keepers.Owner, params))
	assert.Equal(t, uint64(60), k.GetParams(ctx).IbcTimeout)
}
