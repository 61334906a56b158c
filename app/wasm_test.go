package app

import (
	"encoding/json"
	"testing"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	wasmvmtypes "github.com/CosmWasm/wasmvm/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroport/governance/testutil"
	emissionskeeper "github.com/astroport/governance/x/emissions/keeper"
	vxastrotypes "github.com/astroport/governance/x/vxastro/types"
)

func TestSplitCustomMsg(t *testing.T) {
	specs := map[string]struct {
		src        string
		withFunds  bool
		expModule  string
		expPayload string
		expFunds   sdk.Coins
		expErr     *sdkerrors.Error
	}{
		"module only": {
			src:        `{"vxastro":{"lock":{}}}`,
			withFunds:  true,
			expModule:  "vxastro",
			expPayload: `{"lock":{}}`,
		},
		"with funds": {
			src:        `{"vxastro":{"lock":{}},"funds":[{"denom":"uxastro","amount":"10"}]}`,
			withFunds:  true,
			expModule:  "vxastro",
			expPayload: `{"lock":{}}`,
			expFunds:   sdk.NewCoins(sdk.NewCoin("uxastro", sdk.NewInt(10))),
		},
		"funds treated as module in queries": {
			src:       `{"vxastro":{"config":{}},"funds":[]}`,
			withFunds: false,
			expErr:    sdkerrors.ErrInvalidRequest,
		},
		"no module": {
			src:       `{"funds":[]}`,
			withFunds: true,
			expErr:    sdkerrors.ErrInvalidRequest,
		},
		"multiple modules": {
			src:       `{"vxastro":{"lock":{}},"emissions":{"tune_pools":{}}}`,
			withFunds: true,
			expErr:    sdkerrors.ErrInvalidRequest,
		},
		"invalid json": {
			src:       `{"vxastro":`,
			withFunds: true,
			expErr:    sdkerrors.ErrJSONUnmarshal,
		},
		"not an object": {
			src:       `["vxastro"]`,
			withFunds: true,
			expErr:    sdkerrors.ErrJSONUnmarshal,
		},
		"invalid funds": {
			src:       `{"vxastro":{"lock":{}},"funds":"all"}`,
			withFunds: true,
			expErr:    sdkerrors.ErrJSONUnmarshal,
		},
		"unsorted funds": {
			src:       `{"vxastro":{"lock":{}},"funds":[{"denom":"b","amount":"1"},{"denom":"a","amount":"1"}]}`,
			withFunds: true,
			expErr:    sdkerrors.ErrInvalidCoins,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			// when
			module, payload, funds, gotErr := splitCustomMsg([]byte(spec.src), spec.withFunds)
			// then
			if spec.expErr != nil {
				require.True(t, spec.expErr.Is(gotErr), "got %+v", gotErr)
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, spec.expModule, module)
			assert.JSONEq(t, spec.expPayload, string(payload))
			assert.Equal(t, spec.expFunds, funds)
		})
	}
}

func TestCustomMessengerDispatch(t *testing.T) {
	hub, keepers := setupHub(t, HubContracts{
		Tracker:    testutil.NewTrackerFake(),
		Staking:    &emissionskeeper.StakingMock{},
		Factory:    &emissionskeeper.PoolFactoryMock{},
		Incentives: &emissionskeeper.IncentivesMock{},
	})
	require.NoError(t, keepers.InitGenesis(hub.ctx, NewDefaultHubGenesisState()))
	contractAddr := testutil.RandomAddress(t)
	hub.bank.Fund(contractAddr, sdk.NewCoin(vxastrotypes.DefaultLockDenom, sdk.NewInt(100)))

	specs := map[string]struct {
		msg       wasmvmtypes.CosmosMsg
		expErr    *sdkerrors.Error
		expLocked string
	}{
		"lock with funds": {
			msg:       wasmvmtypes.CosmosMsg{Custom: []byte(`{"vxastro":{"lock":{}},"funds":[{"denom":"uxastro","amount":"40"}]}`)},
			expLocked: "40",
		},
		"not a custom message": {
			msg:    wasmvmtypes.CosmosMsg{Bank: &wasmvmtypes.BankMsg{Burn: &wasmvmtypes.BurnMsg{}}},
			expErr: wasmtypes.ErrUnknownMsg,
		},
		"unknown module": {
			msg:    wasmvmtypes.CosmosMsg{Custom: []byte(`{"unknown":{}}`)},
			expErr: sdkerrors.ErrUnknownRequest,
		},
		"unknown field": {
			msg:    wasmvmtypes.CosmosMsg{Custom: []byte(`{"vxastro":{"lock":{},"other":1}}`)},
			expErr: sdkerrors.ErrJSONUnmarshal,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, _ := hub.ctx.CacheContext()
			// when
			events, _, gotErr := NewCustomMessenger(keepers.Router()).DispatchMsg(ctx, contractAddr, "", spec.msg)
			// then
			if spec.expErr != nil {
				require.True(t, spec.expErr.Is(gotErr), "got %+v", gotErr)
				return
			}
			require.NoError(t, gotErr)
			assert.NotEmpty(t, events)
			assert.Equal(t, spec.expLocked, keepers.VxAstro.VotingPower(ctx, contractAddr).String())
		})
	}
}

func TestCustomQuerier(t *testing.T) {
	hub, keepers := setupHub(t, HubContracts{
		Tracker:    testutil.NewTrackerFake(),
		Staking:    &emissionskeeper.StakingMock{},
		Factory:    &emissionskeeper.PoolFactoryMock{},
		Incentives: &emissionskeeper.IncentivesMock{},
	})
	require.NoError(t, keepers.InitGenesis(hub.ctx, NewDefaultHubGenesisState()))
	querier := CustomQuerier(keepers.Router())

	// when
	bz, err := querier(hub.ctx, json.RawMessage(`{"vxastro":{"total_voting_power":{}}}`))
	// then
	require.NoError(t, err)
	var rsp vxastrotypes.VotingPowerResponse
	require.NoError(t, json.Unmarshal(bz, &rsp))
	assert.Equal(t, "0", rsp.VotingPower.String())

	// when
	_, err = querier(hub.ctx, json.RawMessage(`{"unknown":{}}`))
	// then
	assert.True(t, sdkerrors.ErrUnknownRequest.Is(err), "got %+v", err)
}

func TestDeferredMessenger(t *testing.T) {
	hub, keepers := setupHub(t, HubContracts{
		Tracker:    testutil.NewTrackerFake(),
		Staking:    &emissionskeeper.StakingMock{},
		Factory:    &emissionskeeper.PoolFactoryMock{},
		Incentives: &emissionskeeper.IncentivesMock{},
	})
	require.NoError(t, keepers.InitGenesis(hub.ctx, NewDefaultHubGenesisState()))
	sender := testutil.RandomAddress(t)
	msg := wasmvmtypes.CosmosMsg{Custom: []byte(`{"vxastro":{"lock":{}},"funds":[{"denom":"uxastro","amount":"5"}]}`)}
	hub.bank.Fund(sender, sdk.NewCoin(vxastrotypes.DefaultLockDenom, sdk.NewInt(5)))

	// when not bound
	var m deferredMessenger
	_, _, err := m.DispatchMsg(hub.ctx, sender, "", msg)
	// then
	assert.True(t, wasmtypes.ErrUnknownMsg.Is(err), "got %+v", err)

	// when bound
	m.bind(keepers.Router(), nil)
	_, _, err = m.DispatchMsg(hub.ctx, sender, "", msg)
	// then
	require.NoError(t, err)
	assert.Equal(t, "5", keepers.VxAstro.VotingPower(hub.ctx, sender).String())
}
