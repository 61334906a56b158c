package keeper

import (
	"encoding/json"
	"testing"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroport/governance/testutil"
	emissionstypes "github.com/astroport/governance/x/emissions/types"
	"github.com/astroport/governance/x/tributes/types"
)

func TestGenesisExportImport(t *testing.T) {
	srcCtx, src := CreateDefaultTestInput(t)
	src.Emissions.Whitelist[testPool] = true
	src.Emissions.Whitelist["factory/pool2"] = true
	addTribute(t, srcCtx, src, testPool, sdk.NewCoin("uusdc", sdk.NewInt(100)))
	addTribute(t, srcCtx, src, testPool, sdk.NewCoin("uatom", sdk.NewInt(100)))
	addTribute(t, srcCtx, src, "factory/pool2", sdk.NewCoin("uusdc", sdk.NewInt(100)))
	voter := testutil.RandomAddress(t)
	now := uint64(srcCtx.BlockTime().Unix())
	src.Emissions.SetVotes(voter.String(), now, emissionstypes.NextEpochStart(now), emissionstypes.PoolAmount{Pool: testPool, Amount: sdk.NewInt(1)})
	srcCtx = testutil.AdvanceTime(srcCtx, time.Duration(emissionstypes.EpochLength)*time.Second)
	_, err := src.TributesKeeper.Claim(srcCtx, voter, voter)
	require.NoError(t, err)

	exported := ExportGenesis(srcCtx, src.TributesKeeper)
	require.Len(t, exported.Tributes, 3)
	require.Len(t, exported.LastClaims, 1)
	require.NoError(t, types.ValidateGenesis(exported))

	// when
	dstCtx, dst := CreateDefaultTestInput(t)
	InitGenesis(dstCtx, dst.TributesKeeper, exported)

	// then
	srcJSON, err := json.Marshal(exported)
	require.NoError(t, err)
	dstJSON, err := json.Marshal(ExportGenesis(dstCtx, dst.TributesKeeper))
	require.NoError(t, err)
	assert.JSONEq(t, string(srcJSON), string(dstJSON))
}

func TestValidateGenesis(t *testing.T) {
	epochTs := emissionstypes.EpochsStart + emissionstypes.EpochLength
	coin := sdk.NewCoin("uusdc", sdk.NewInt(100))
	tribute := types.GenesisTribute{EpochTs: epochTs, LpToken: testPool, Tribute: types.TributeInfo{Allocated: coin, Available: coin}}
	genesisWith := func(mutators ...func(*types.GenesisState)) types.GenesisState {
		r := types.DefaultGenesisState()
		for _, m := range mutators {
			m(&r)
		}
		return r
	}
	specs := map[string]struct {
		state  types.GenesisState
		expErr bool
	}{
		"default": {
			state: types.DefaultGenesisState(),
		},
		"with tributes and claims": {
			state: genesisWith(func(g *types.GenesisState) {
				g.Tributes = []types.GenesisTribute{tribute}
				g.LastClaims = []types.GenesisLastClaim{{User: testutil.RandomAddress(t).String(), EpochTs: epochTs}}
			}),
		},
		"invalid params": {
			state:  types.GenesisState{Params: types.Params{TributeFee: coin}},
			expErr: true,
		},
		"no epoch start": {
			state: genesisWith(func(g *types.GenesisState) {
				tr := tribute
				tr.EpochTs++
				g.Tributes = []types.GenesisTribute{tr}
			}),
			expErr: true,
		},
		"available exceeds allocated": {
			state: genesisWith(func(g *types.GenesisState) {
				tr := tribute
				tr.Tribute.Available = coin.Add(coin)
				g.Tributes = []types.GenesisTribute{tr}
			}),
			expErr: true,
		},
		"duplicate tribute": {
			state: genesisWith(func(g *types.GenesisState) {
				g.Tributes = []types.GenesisTribute{tribute, tribute}
			}),
			expErr: true,
		},
		"rewards limit exceeded": {
			state: genesisWith(func(g *types.GenesisState) {
				g.Params.RewardsLimit = 1
				other := tribute
				other.Tribute = types.TributeInfo{Allocated: sdk.NewCoin("uatom", sdk.NewInt(1)), Available: sdk.NewCoin("uatom", sdk.NewInt(1))}
				g.Tributes = []types.GenesisTribute{tribute, other}
			}),
			expErr: true,
		},
		"invalid user": {
			state: genesisWith(func(g *types.GenesisState) {
				g.LastClaims = []types.GenesisLastClaim{{User: "foo", EpochTs: epochTs}}
			}),
			expErr: true,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			gotErr := types.ValidateGenesis(spec.state)
			if spec.expErr {
				require.Error(t, gotErr)
				return
			}
			require.NoError(t, gotErr)
		})
	}
}
