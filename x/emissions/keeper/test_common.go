package keeper

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/rand"

	"github.com/astroport/governance/testutil"
	assemblykeeper "github.com/astroport/governance/x/assembly/keeper"
	assemblytypes "github.com/astroport/governance/x/assembly/types"
	"github.com/astroport/governance/x/channel"
	"github.com/astroport/governance/x/contract"
	"github.com/astroport/governance/x/emissions/types"
	vxastrokeeper "github.com/astroport/governance/x/vxastro/keeper"
	vxastrotypes "github.com/astroport/governance/x/vxastro/types"
)

// TestKeepers bundles the keeper under test with its collaborators
type TestKeepers struct {
	EmissionsKeeper Keeper
	VxAstroKeeper   vxastrokeeper.Keeper
	AssemblyKeeper  assemblykeeper.Keeper
	BankKeeper      *testutil.BankKeeperMock
	Tracker         *testutil.TrackerFake
	Staking         *StakingMock
	Factory         *PoolFactoryMock
	Incentives      *IncentivesMock
	Transfer        *TransferMock
	Channels        *channel.ChannelKeeperMock
	Scoped          *channel.ScopedKeeperMock
}

// CreateDefaultTestInput sets up the emissions controller with default params together with a vote
// escrow and an assembly on an in memory multistore. The vote escrow hooks refresh the emissions votes.
func CreateDefaultTestInput(t testing.TB) (sdk.Context, TestKeepers) {
	keyEmissions := sdk.NewKVStoreKey(types.StoreKey)
	keyVxAstro := sdk.NewKVStoreKey(vxastrotypes.StoreKey)
	keyAssembly := sdk.NewKVStoreKey(assemblytypes.StoreKey)
	ctx, paramsKeeper := testutil.NewContext(t, keyEmissions, keyVxAstro, keyAssembly)

	keepers := TestKeepers{
		BankKeeper: testutil.NewBankKeeperMock(),
		Tracker:    testutil.NewTrackerFake(),
		Staking:    &StakingMock{},
		Factory:    &PoolFactoryMock{},
		Incentives: &IncentivesMock{},
		Transfer:   &TransferMock{},
		Channels:   channel.NewChannelKeeperMock(),
		Scoped:     channel.NewScopedKeeperMock(),
	}
	vxAstro := vxastrokeeper.NewKeeper(keyVxAstro, paramsKeeper.Subspace(vxastrotypes.ModuleName), keepers.BankKeeper)
	vxastrokeeper.SetTestParams(ctx, vxAstro, vxastrotypes.DefaultParams())

	keepers.AssemblyKeeper = assemblykeeper.NewKeeper(keyAssembly, keepers.BankKeeper, keepers.Tracker, nil, nil, nil)
	assemblykeeper.SetTestConfig(ctx, keepers.AssemblyKeeper, assemblytypes.DefaultConfig())

	keepers.EmissionsKeeper = NewKeeper(
		keyEmissions,
		paramsKeeper.Subspace(types.ModuleName),
		keepers.BankKeeper,
		vxAstro,
		keepers.Tracker,
		keepers.Staking,
		keepers.Factory,
		keepers.Incentives,
		keepers.AssemblyKeeper,
		keepers.Transfer,
		keepers.Channels,
		channel.PortKeeperMock{},
		keepers.Scoped,
	)
	vxAstro.SetHooks(keepers.EmissionsKeeper.Hooks())
	keepers.VxAstroKeeper = vxAstro
	keepers.EmissionsKeeper.setParams(ctx, types.DefaultParams())
	return ctx, keepers
}

// TestOutposts is a hub outpost and a remote outpost with an astro pool. The remote voting channel
// is open and its capability claimed.
type TestOutposts struct {
	Owner     sdk.AccAddress
	Hub       types.OutpostInfo
	Remote    types.OutpostInfo
	AstroPool string
}

const (
	TestRemotePrefix   = "neutron"
	TestVotingChannel  = "channel-1"
	TestICS20Channel   = "channel-2"
	TestControllerPort = "wasm.neutron1controller"
	TestAstroDenom     = "ibc/astro"
)

// SetupOutposts registers a hub and a remote outpost with an owner set in the params
func SetupOutposts(t testing.TB, ctx sdk.Context, keepers TestKeepers) TestOutposts {
	owner := testutil.RandomAddress(t)
	params := types.DefaultParams()
	params.Owner = owner.String()
	keepers.EmissionsKeeper.setParams(ctx, params)

	r := TestOutposts{
		Owner:     owner,
		Hub:       types.OutpostInfo{Prefix: sdk.GetConfig().GetBech32AccountAddrPrefix(), AstroDenom: params.AstroDenom},
		AstroPool: RandomAddressWithPrefix(t, TestRemotePrefix),
	}
	r.Remote = types.OutpostInfo{
		Prefix: TestRemotePrefix,
		Params: &types.OutpostParams{
			EmissionsController: RandomAddressWithPrefix(t, TestRemotePrefix),
			VotingChannel:       TestVotingChannel,
			ICS20Channel:        TestICS20Channel,
		},
		AstroDenom:      TestAstroDenom,
		AstroPoolConfig: &types.AstroPoolConfig{AstroPool: r.AstroPool, Constant: sdk.NewInt(100)},
	}
	require.NoError(t, keepers.EmissionsKeeper.UpdateOutpost(ctx, owner, r.Hub))
	require.NoError(t, keepers.EmissionsKeeper.UpdateOutpost(ctx, owner, r.Remote))
	keepers.Channels.OpenChannel(types.PortID, TestVotingChannel, TestControllerPort, "channel-9", types.Version)
	keepers.Scoped.ClaimChannel(types.PortID, TestVotingChannel)
	return r
}

// WhitelistTestPool pays the fee for the pool and whitelists it
func WhitelistTestPool(t testing.TB, ctx sdk.Context, keepers TestKeepers, pool string) {
	payer := testutil.RandomAddress(t)
	fee := keepers.EmissionsKeeper.GetParams(ctx).WhitelistingFee
	keepers.BankKeeper.Fund(payer, fee)
	require.NoError(t, keepers.EmissionsKeeper.WhitelistPool(ctx, payer, sdk.NewCoins(fee), pool))
}

// LockTestPower locks the amount in the vote escrow so that the user has the same voting power
func LockTestPower(t testing.TB, ctx sdk.Context, keepers TestKeepers, user sdk.AccAddress, amount int64) {
	coin := sdk.NewCoin(keepers.VxAstroKeeper.GetParams(ctx).LockDenom, sdk.NewInt(amount))
	keepers.BankKeeper.Fund(user, coin)
	require.NoError(t, keepers.VxAstroKeeper.Lock(ctx, user, coin))
}

// HubPool returns a token factory pool on the hub
func HubPool(t testing.TB) string {
	return "factory/" + testutil.RandomAddress(t).String() + "/astroport/share"
}

// SetTestParams overwrites the module params
func SetTestParams(ctx sdk.Context, k Keeper, p types.Params) {
	k.setParams(ctx, p)
}

// RandomAddressWithPrefix returns a random bech32 address of a chain with the given prefix
func RandomAddressWithPrefix(t testing.TB, prefix string) string {
	addr, err := bech32.ConvertAndEncode(prefix, rand.Bytes(32))
	require.NoError(t, err)
	return addr
}

var _ types.XAstroStaking = &StakingMock{}

// StakingMock provides the xASTRO exchange rate
type StakingMock struct {
	TotalSharesFn  func(ctx sdk.Context) (sdk.Int, error)
	TotalDepositFn func(ctx sdk.Context) (sdk.Int, error)
}

// SetRate sets constant shares and deposit
func (m *StakingMock) SetRate(shares, deposit int64) {
	m.TotalSharesFn = func(sdk.Context) (sdk.Int, error) { return sdk.NewInt(shares), nil }
	m.TotalDepositFn = func(sdk.Context) (sdk.Int, error) { return sdk.NewInt(deposit), nil }
}

func (m StakingMock) TotalShares(ctx sdk.Context) (sdk.Int, error) {
	if m.TotalSharesFn == nil {
		panic("not expected to be called")
	}
	return m.TotalSharesFn(ctx)
}

func (m StakingMock) TotalDeposit(ctx sdk.Context) (sdk.Int, error) {
	if m.TotalDepositFn == nil {
		panic("not expected to be called")
	}
	return m.TotalDepositFn(ctx)
}

var _ types.PoolFactory = &PoolFactoryMock{}

type PoolFactoryMock struct {
	IsRegisteredPoolFn func(ctx sdk.Context, lpToken string) (bool, error)
}

func (m PoolFactoryMock) IsRegisteredPool(ctx sdk.Context, lpToken string) (bool, error) {
	if m.IsRegisteredPoolFn == nil {
		panic("not expected to be called")
	}
	return m.IsRegisteredPoolFn(ctx, lpToken)
}

var _ types.Incentives = &IncentivesMock{}

// IncentivesMock records all schedules. Err is returned when set.
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

var _ types.TransferKeeper = &TransferMock{}

// TransferMock records all transfers and returns their index as sequence. Err is returned when set.
type TransferMock struct {
	Sent []CapturedTransfer
	Err  error
}

type CapturedTransfer struct {
	Channel  string
	Token    sdk.Coin
	Receiver string
	Memo     string
}

func (m *TransferMock) SendTransferWithMemo(_ sdk.Context, _, sourceChannel string, token sdk.Coin, _ sdk.AccAddress, receiver string, _ uint64, memo string) (uint64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.Sent = append(m.Sent, CapturedTransfer{Channel: sourceChannel, Token: token, Receiver: receiver, Memo: memo})
	return uint64(len(m.Sent)), nil
}
