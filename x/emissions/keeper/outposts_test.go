package keeper

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroport/governance/testutil"
	"github.com/astroport/governance/x/emissions/types"
)

func TestUpdateOutpost(t *testing.T) {
	osmoOutpost := func(mutators ...func(o *types.OutpostInfo)) types.OutpostInfo {
		o := types.OutpostInfo{
			Prefix: "osmo",
			Params: &types.OutpostParams{
				EmissionsController: RandomAddressWithPrefix(t, "osmo"),
				VotingChannel:       "channel-5",
				ICS20Channel:        "channel-6",
			},
			AstroDenom: "ibc/osmoastro",
		}
		for _, m := range mutators {
			m(&o)
		}
		return o
	}
	specs := map[string]struct {
		outpost   types.OutpostInfo
		notOwner  bool
		expErr    error
		expJailed bool
	}{
		"new outpost": {
			outpost: osmoOutpost(),
		},
		"update keeps jail status": {
			outpost: osmoOutpost(func(o *types.OutpostInfo) {
				o.Prefix = TestRemotePrefix
				o.Params.EmissionsController = RandomAddressWithPrefix(t, TestRemotePrefix)
				o.Params.VotingChannel = TestVotingChannel
			}),
			expJailed: true,
		},
		"not owner": {
			outpost:  osmoOutpost(),
			notOwner: true,
			expErr:   sdkerrors.ErrUnauthorized,
		},
		"voting channel of other outpost": {
			outpost: osmoOutpost(func(o *types.OutpostInfo) { o.Params.VotingChannel = TestVotingChannel }),
			expErr:  types.ErrChannelAlreadyBound,
		},
		"controller of other chain": {
			outpost: osmoOutpost(func(o *types.OutpostInfo) { o.Params.EmissionsController = RandomAddressWithPrefix(t, "juno") }),
			expErr:  types.ErrInvalidOutpost,
		},
		"upper case prefix": {
			outpost: osmoOutpost(func(o *types.OutpostInfo) { o.Prefix = "Osmo" }),
			expErr:  types.ErrInvalidOutpost,
		},
		"astro pool of other chain": {
			outpost: osmoOutpost(func(o *types.OutpostInfo) {
				o.AstroPoolConfig = &types.AstroPoolConfig{AstroPool: RandomAddressWithPrefix(t, "juno"), Constant: sdk.OneInt()}
			}),
			expErr: types.ErrInvalidOutpost,
		},
		"zero astro pool emissions": {
			outpost: osmoOutpost(func(o *types.OutpostInfo) {
				o.AstroPoolConfig = &types.AstroPoolConfig{AstroPool: RandomAddressWithPrefix(t, "osmo"), Constant: sdk.ZeroInt()}
			}),
			expErr: types.ErrInvalidOutpost,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, keepers := CreateDefaultTestInput(t)
			outposts := SetupOutposts(t, ctx, keepers)
			require.NoError(t, keepers.EmissionsKeeper.JailOutpost(ctx, outposts.Owner, TestRemotePrefix))
			sender := outposts.Owner
			if spec.notOwner {
				sender = testutil.RandomAddress(t)
			}

			// when
			gotErr := keepers.EmissionsKeeper.UpdateOutpost(ctx, sender, spec.outpost)

			// then
			if spec.expErr != nil {
				require.ErrorIs(t, gotErr, spec.expErr)
				return
			}
			require.NoError(t, gotErr)
			got, found := keepers.EmissionsKeeper.GetOutpost(ctx, spec.outpost.Prefix)
			require.True(t, found)
			assert.Equal(t, spec.expJailed, got.Jailed)
			byChannel, found := keepers.EmissionsKeeper.GetOutpostByChannel(ctx, spec.outpost.Params.VotingChannel)
			require.True(t, found)
			assert.Equal(t, spec.outpost.Prefix, byChannel.Prefix)
		})
	}
}

func TestOutpostLifecycle(t *testing.T) {
	ctx, keepers := CreateDefaultTestInput(t)
	outposts := SetupOutposts(t, ctx, keepers)
	k := keepers.EmissionsKeeper
	pool := RandomAddressWithPrefix(t, TestRemotePrefix)
	WhitelistTestPool(t, ctx, keepers, pool)

	// the hub can not be jailed
	err := k.JailOutpost(ctx, outposts.Owner, outposts.Hub.Prefix)
	require.ErrorIs(t, err, types.ErrInvalidOutpost)

	require.NoError(t, k.JailOutpost(ctx, outposts.Owner, TestRemotePrefix))
	assert.False(t, k.IsWhitelisted(ctx, pool))
	assert.Len(t, k.ActiveOutposts(ctx), 1)
	err = k.JailOutpost(ctx, outposts.Owner, TestRemotePrefix)
	require.ErrorIs(t, err, types.ErrJailedOutpost)

	require.NoError(t, k.UnjailOutpost(ctx, outposts.Owner, TestRemotePrefix))
	assert.Len(t, k.ActiveOutposts(ctx), 2)
	err = k.UnjailOutpost(ctx, outposts.Owner, TestRemotePrefix)
	require.ErrorIs(t, err, types.ErrInvalidOutpost)

	// pools need to be whitelisted again
	WhitelistTestPool(t, ctx, keepers, pool)

	// when
	err = k.RemoveOutpost(ctx, outposts.Owner, TestRemotePrefix)

	// then
	require.NoError(t, err)
	_, found := k.GetOutpost(ctx, TestRemotePrefix)
	assert.False(t, found)
	_, found = k.GetOutpostByChannel(ctx, TestVotingChannel)
	assert.False(t, found)
	assert.False(t, k.IsWhitelisted(ctx, pool))
	err = k.RemoveOutpost(ctx, outposts.Owner, TestRemotePrefix)
	require.ErrorIs(t, err, types.ErrOutpostNotFound)
}
