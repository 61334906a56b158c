package keeper

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/astroport/governance/testutil"
	emissionstypes "github.com/astroport/governance/x/emissions/types"
	"github.com/astroport/governance/x/tributes/types"
)

// TestKeepers bundles the keeper under test with its collaborators
type TestKeepers struct {
	TributesKeeper Keeper
	BankKeeper     *testutil.BankKeeperMock
	Emissions      *EmissionsLedgerFake
	Owner          sdk.AccAddress
}

// CreateDefaultTestInput sets up the tributes module with an owner on an in memory multistore
func CreateDefaultTestInput(t testing.TB) (sdk.Context, TestKeepers) {
	keyTributes := sdk.NewKVStoreKey(types.StoreKey)
	ctx, paramsKeeper := testutil.NewContext(t, keyTributes)
	keepers := TestKeepers{
		BankKeeper: testutil.NewBankKeeperMock(),
		Emissions:  NewEmissionsLedgerFake(),
		Owner:      testutil.RandomAddress(t),
	}
	keepers.TributesKeeper = NewKeeper(keyTributes, paramsKeeper.Subspace(types.ModuleName), keepers.BankKeeper, keepers.Emissions)
	params := types.DefaultParams()
	params.Owner = keepers.Owner.String()
	keepers.TributesKeeper.setParams(ctx, params)
	return ctx, keepers
}

// SetTestParams overwrites the module params
func SetTestParams(ctx sdk.Context, k Keeper, p types.Params) {
	k.setParams(ctx, p)
}

var _ types.EmissionsLedger = &EmissionsLedgerFake{}

// EmissionsLedgerFake keeps whitelist, pool tallies and user votes per epoch start in memory
type EmissionsLedgerFake struct {
	Whitelist map[string]bool
	pools     map[uint64]map[string]sdk.Int
	votes     map[uint64]map[string][]emissionstypes.PoolAmount
	firstVote map[string]uint64
}

func NewEmissionsLedgerFake() *EmissionsLedgerFake {
	return &EmissionsLedgerFake{
		Whitelist: make(map[string]bool),
		pools:     make(map[uint64]map[string]sdk.Int),
		votes:     make(map[uint64]map[string][]emissionstypes.PoolAmount),
		firstVote: make(map[string]uint64),
	}
}

// SetVotes records the votes of the user at the epoch start and adds them to the pool tallies. The
// vote time is remembered as first vote unless an earlier one exists.
func (f *EmissionsLedgerFake) SetVotes(user string, voteTs, epochTs uint64, votes ...emissionstypes.PoolAmount) {
	if first, ok := f.firstVote[user]; !ok || voteTs < first {
		f.firstVote[user] = voteTs
	}
	if f.votes[epochTs] == nil {
		f.votes[epochTs] = make(map[string][]emissionstypes.PoolAmount)
		f.pools[epochTs] = make(map[string]sdk.Int)
	}
	f.votes[epochTs][user] = votes
	for _, v := range votes {
		if p, ok := f.pools[epochTs][v.Pool]; ok {
			f.pools[epochTs][v.Pool] = p.Add(v.Amount)
		} else {
			f.pools[epochTs][v.Pool] = v.Amount
		}
	}
}

func (f *EmissionsLedgerFake) IsWhitelisted(_ sdk.Context, pool string) bool {
	return f.Whitelist[pool]
}

func (f *EmissionsLedgerFake) PoolPowerAt(_ sdk.Context, pool string, ts uint64) sdk.Int {
	if p, ok := f.pools[ts][pool]; ok {
		return p
	}
	return sdk.ZeroInt()
}

func (f *EmissionsLedgerFake) UserVotesAt(_ sdk.Context, voter string, ts uint64) []emissionstypes.PoolAmount {
	return f.votes[ts][voter]
}

func (f *EmissionsLedgerFake) FirstVoteTs(_ sdk.Context, voter string) (uint64, bool) {
	ts, ok := f.firstVote[voter]
	return ts, ok
}
