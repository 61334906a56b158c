package app

import (
	"encoding/json"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroport/governance/testutil"
	emissionskeeper "github.com/astroport/governance/x/emissions/keeper"
	emissionstypes "github.com/astroport/governance/x/emissions/types"
	outposttypes "github.com/astroport/governance/x/outpost/types"
	tributestypes "github.com/astroport/governance/x/tributes/types"
	vxastrotypes "github.com/astroport/governance/x/vxastro/types"
)

func TestDecodeHubGenesis(t *testing.T) {
	specs := map[string]struct {
		src    func(g GenesisState)
		expErr bool
	}{
		"default": {
			src: func(GenesisState) {},
		},
		"missing module gets default": {
			src: func(g GenesisState) {
				delete(g, tributestypes.ModuleName)
			},
		},
		"unknown module": {
			src: func(g GenesisState) {
				g[outposttypes.ModuleName] = mustMarshalJSON(outposttypes.DefaultGenesisState())
			},
			expErr: true,
		},
		"unknown field": {
			src: func(g GenesisState) {
				g[vxastrotypes.ModuleName] = json.RawMessage(`{"params":{},"other":1}`)
			},
			expErr: true,
		},
		"invalid module genesis": {
			src: func(g GenesisState) {
				s := tributestypes.DefaultGenesisState()
				s.Params.RewardsLimit = 0
				g[tributestypes.ModuleName] = mustMarshalJSON(s)
			},
			expErr: true,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			g := NewDefaultHubGenesisState()
			spec.src(g)
			// when
			got, gotErr := DecodeHubGenesis(g)
			// then
			if spec.expErr {
				require.Error(t, gotErr)
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, tributestypes.DefaultGenesisState(), got.Tributes)
		})
	}
}

func TestDecodeOutpostGenesis(t *testing.T) {
	g := NewDefaultOutpostGenesisState()
	_, err := DecodeOutpostGenesis(g)
	require.NoError(t, err)

	// when
	g[emissionstypes.ModuleName] = mustMarshalJSON(emissionstypes.DefaultGenesisState())
	_, err = DecodeOutpostGenesis(g)
	// then
	assert.True(t, sdkerrors.ErrInvalidRequest.Is(err), "got %+v", err)
}

func TestHubGenesisExportImport(t *testing.T) {
	hub, keepers := setupHub(t, HubContracts{
		Tracker:    testutil.NewTrackerFake(),
		Staking:    &emissionskeeper.StakingMock{},
		Factory:    &emissionskeeper.PoolFactoryMock{},
		Incentives: &emissionskeeper.IncentivesMock{},
	})
	require.NoError(t, keepers.InitGenesis(hub.ctx, NewDefaultHubGenesisState()))

	user := testutil.RandomAddress(t)
	lockCoin := sdk.NewCoin(vxastrotypes.DefaultLockDenom, sdk.NewInt(1000))
	hub.bank.Fund(user, lockCoin)
	_, err := keepers.Router().Handle(hub.ctx, vxastrotypes.ModuleName, user, sdk.NewCoins(lockCoin), mustMarshalJSON(vxastrotypes.ExecuteMsg{
		Lock: &struct{}{},
	}))
	require.NoError(t, err)
	exported := keepers.ExportGenesis(hub.ctx)

	// when
	newHub, newKeepers := setupHub(t, HubContracts{
		Tracker:    testutil.NewTrackerFake(),
		Staking:    &emissionskeeper.StakingMock{},
		Factory:    &emissionskeeper.PoolFactoryMock{},
		Incentives: &emissionskeeper.IncentivesMock{},
	})
	require.NoError(t, newKeepers.InitGenesis(newHub.ctx, exported))

	// then
	assert.Equal(t, "1000", newKeepers.VxAstro.VotingPower(newHub.ctx, user).String())
	reexported := newKeepers.ExportGenesis(newHub.ctx)
	for module, bz := range exported {
		assert.JSONEq(t, string(bz), string(reexported[module]), module)
	}
}

func TestOutpostGenesisExportImport(t *testing.T) {
	remote, keepers := setupOutpost(t, nil)
	src := outposttypes.DefaultGenesisState()
	src.Params.Owner = testutil.RandomAddress(t).String()
	g := NewDefaultOutpostGenesisState()
	g[outposttypes.ModuleName] = mustMarshalJSON(src)
	require.NoError(t, keepers.InitGenesis(remote.ctx, g))

	// when
	exported := keepers.ExportGenesis(remote.ctx)

	// then
	got, err := DecodeOutpostGenesis(exported)
	require.NoError(t, err)
	assert.Equal(t, src.Params, got.Outpost.Params)
}
