package keeper

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/astroport/governance/testutil"
	"github.com/astroport/governance/x/channel"
	"github.com/astroport/governance/x/contract"
	emissionstypes "github.com/astroport/governance/x/emissions/types"
	"github.com/astroport/governance/x/outpost/types"
	vxastrokeeper "github.com/astroport/governance/x/vxastro/keeper"
	vxastrotypes "github.com/astroport/governance/x/vxastro/types"
)

// TestVotingChannel is the channel to the hub opened by SetupVotingChannel
const TestVotingChannel = "channel-0"

// TestKeepers bundles the keeper under test with its collaborators
type TestKeepers struct {
	OutpostKeeper Keeper
	VxAstroKeeper vxastrokeeper.Keeper
	BankKeeper    *testutil.BankKeeperMock
	Incentives    *IncentivesMock
	Channels      *channel.ChannelKeeperMock
	Scoped        *channel.ScopedKeeperMock
	Owner         sdk.AccAddress
}

// CreateDefaultTestInput sets up an outpost with an owner together with a vote escrow on an in
// memory multistore. The vote escrow hooks relay voting power changes. No voting channel is set.
func CreateDefaultTestInput(t testing.TB) (sdk.Context, TestKeepers) {
	keyOutpost := sdk.NewKVStoreKey(types.StoreKey)
	keyVxAstro := sdk.NewKVStoreKey(vxastrotypes.StoreKey)
	ctx, paramsKeeper := testutil.NewContext(t, keyOutpost, keyVxAstro)

	keepers := TestKeepers{
		BankKeeper: testutil.NewBankKeeperMock(),
		Incentives: &IncentivesMock{},
		Channels:   channel.NewChannelKeeperMock(),
		Scoped:     channel.NewScopedKeeperMock(),
		Owner:      testutil.RandomAddress(t),
	}
	vxAstro := vxastrokeeper.NewKeeper(keyVxAstro, paramsKeeper.Subspace(vxastrotypes.ModuleName), keepers.BankKeeper)
	vxastrokeeper.SetTestParams(ctx, vxAstro, vxastrotypes.DefaultParams())

	keepers.OutpostKeeper = NewKeeper(
		keyOutpost,
		paramsKeeper.Subspace(types.ModuleName),
		keepers.BankKeeper,
		vxAstro,
		keepers.Incentives,
		keepers.Channels,
		channel.PortKeeperMock{},
		keepers.Scoped,
	)
	vxAstro.SetHooks(keepers.OutpostKeeper.Hooks())
	keepers.VxAstroKeeper = vxAstro

	params := types.DefaultParams()
	params.Owner = keepers.Owner.String()
	keepers.OutpostKeeper.setParams(ctx, params)
	return ctx, keepers
}

// SetupVotingChannel opens the channel to the hub and sets it as voting channel
func SetupVotingChannel(t testing.TB, ctx sdk.Context, keepers TestKeepers) {
	keepers.Channels.OpenChannel(types.PortID, TestVotingChannel, types.HubPortID, "channel-1", emissionstypes.Version)
	keepers.Scoped.ClaimChannel(types.PortID, TestVotingChannel)
	require.NoError(t, keepers.OutpostKeeper.SetVotingChannel(ctx, keepers.Owner, TestVotingChannel))
}

// LockTestPower locks the amount in the vote escrow so that the user has the same voting power
func LockTestPower(t testing.TB, ctx sdk.Context, keepers TestKeepers, user sdk.AccAddress, amount int64) {
	coin := sdk.NewCoin(keepers.VxAstroKeeper.GetParams(ctx).LockDenom, sdk.NewInt(amount))
	keepers.BankKeeper.Fund(user, coin)
	require.NoError(t, keepers.VxAstroKeeper.Lock(ctx, user, coin))
}

// SetTestParams overwrites the module params
func SetTestParams(ctx sdk.Context, k Keeper, p types.Params) {
	k.setParams(ctx, p)
}

var _ types.Incentives = &IncentivesMock{}

// IncentivesMock records all schedules and returns Err when set
type IncentivesMock struct {
	Calls [][]contract.PoolAmount
	Err   error
}

func (m *IncentivesMock) IncentivizeMany(_ sdk.Context, _ sdk.AccAddress, _ string, schedules []contract.PoolAmount) error {
	if m.Err != nil {
		return m.Err
	}
	m.Calls = append(m.Calls, schedules)
	return nil
}
