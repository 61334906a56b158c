package keeper

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/astroport/governance/testutil"
	"github.com/astroport/governance/x/vxastro/types"
)

// TestKeepers bundles the keeper under test with its collaborators
type TestKeepers struct {
	VxAstroKeeper Keeper
	BankKeeper    *testutil.BankKeeperMock
}

// CreateDefaultTestInput sets up a vote escrow keeper with default params on an in memory multistore
func CreateDefaultTestInput(t testing.TB) (sdk.Context, TestKeepers) {
	keyVxAstro := sdk.NewKVStoreKey(types.StoreKey)
	ctx, paramsKeeper := testutil.NewContext(t, keyVxAstro)

	bank := testutil.NewBankKeeperMock()
	k := NewKeeper(keyVxAstro, paramsKeeper.Subspace(types.ModuleName), bank)
	k.setParams(ctx, types.DefaultParams())
	return ctx, TestKeepers{VxAstroKeeper: k, BankKeeper: bank}
}

// SetTestParams overwrites the module params
func SetTestParams(ctx sdk.Context, k Keeper, p types.Params) {
	k.setParams(ctx, p)
}

// RandomAddress returns a random account address
func RandomAddress(t testing.TB) sdk.AccAddress {
	return testutil.RandomAddress(t)
}

var _ types.VotingPowerHooks = &CapturingHooks{}

// CapturingHooks records all hook calls and returns Err when set
type CapturingHooks struct {
	Calls []HookCall
	Err   error
}

type HookCall struct {
	Voter       sdk.AccAddress
	VotingPower sdk.Int
	IsUnlock    bool
	Blacklist   bool
}

func (h *CapturingHooks) AfterVotingPowerChanged(_ sdk.Context, voter sdk.AccAddress, votingPower sdk.Int, isUnlock bool) error {
	h.Calls = append(h.Calls, HookCall{Voter: voter, VotingPower: votingPower, IsUnlock: isUnlock})
	return h.Err
}

func (h *CapturingHooks) AfterBlacklistChanged(_ sdk.Context, voter sdk.AccAddress, votingPower sdk.Int) error {
	h.Calls = append(h.Calls, HookCall{Voter: voter, VotingPower: votingPower, Blacklist: true})
	return h.Err
}
