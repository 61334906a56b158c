package keeper

import (
	"testing"

	"github.com/CosmWasm/wasmd/x/wasm/keeper/wasmtesting"
	wasmvmtypes "github.com/CosmWasm/wasmvm/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/astroport/governance/testutil"
	"github.com/astroport/governance/x/assembly/types"
)

// TestKeepers bundles the keeper under test with its collaborators
type TestKeepers struct {
	AssemblyKeeper Keeper
	BankKeeper     *testutil.BankKeeperMock
	Tracker        *testutil.TrackerFake
	BuilderUnlock  *BuilderUnlockMock
	IBCController  *IBCControllerMock
	Messenger      *wasmtesting.MockMessageHandler
}

// CreateDefaultTestInput sets up an assembly with the default config on an in memory multistore.
// Dispatching a message to the messenger panics unless Messenger.DispatchMsgFn is set.
func CreateDefaultTestInput(t testing.TB) (sdk.Context, TestKeepers) {
	keyAssembly := sdk.NewKVStoreKey(types.StoreKey)
	ctx, _ := testutil.NewContext(t, keyAssembly)

	keepers := TestKeepers{
		BankKeeper:    testutil.NewBankKeeperMock(),
		Tracker:       testutil.NewTrackerFake(),
		BuilderUnlock: &BuilderUnlockMock{},
		IBCController: &IBCControllerMock{},
		Messenger:     &wasmtesting.MockMessageHandler{},
	}
	keepers.AssemblyKeeper = NewKeeper(
		keyAssembly,
		keepers.BankKeeper,
		keepers.Tracker,
		keepers.BuilderUnlock,
		keepers.IBCController,
		keepers.Messenger,
	)
	keepers.AssemblyKeeper.setConfig(ctx, types.DefaultConfig())
	return ctx, keepers
}

// SetTestConfig overwrites the config
func SetTestConfig(ctx sdk.Context, k Keeper, c types.Config) {
	k.setConfig(ctx, c)
}

var _ types.BuilderUnlock = &BuilderUnlockMock{}

// BuilderUnlockMock returns zero voting power unless the Fn fields are set
type BuilderUnlockMock struct {
	VotingPowerAtFn      func(ctx sdk.Context, account string, ts uint64) (sdk.Int, error)
	TotalVotingPowerAtFn func(ctx sdk.Context, ts uint64) (sdk.Int, error)
}

func (m BuilderUnlockMock) VotingPowerAt(ctx sdk.Context, account string, ts uint64) (sdk.Int, error) {
	if m.VotingPowerAtFn == nil {
		return sdk.ZeroInt(), nil
	}
	return m.VotingPowerAtFn(ctx, account, ts)
}

func (m BuilderUnlockMock) TotalVotingPowerAt(ctx sdk.Context, ts uint64) (sdk.Int, error) {
	if m.TotalVotingPowerAtFn == nil {
		return sdk.ZeroInt(), nil
	}
	return m.TotalVotingPowerAtFn(ctx, ts)
}

var _ types.IBCController = &IBCControllerMock{}

// IBCControllerMock records the executed proposals
type IBCControllerMock struct {
	IBCExecuteProposalFn func(ctx sdk.Context, sender sdk.AccAddress, channelID string, proposalID uint64, messages []wasmvmtypes.CosmosMsg) error
}

func (m IBCControllerMock) IBCExecuteProposal(ctx sdk.Context, sender sdk.AccAddress, channelID string, proposalID uint64, messages []wasmvmtypes.CosmosMsg) error {
	if m.IBCExecuteProposalFn == nil {
		panic("not expected to be called")
	}
	return m.IBCExecuteProposalFn(ctx, sender, channelID, proposalID, messages)
}
