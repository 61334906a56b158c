package testutil

import (
	"sort"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

type balancePoint struct {
	ts     uint64
	amount sdk.Int
}

// TrackerFake is an in memory xASTRO tracker with historic balances. The total supply is the sum of
// all balances.
type TrackerFake struct {
	balances map[string][]balancePoint
}

func NewTrackerFake() *TrackerFake {
	return &TrackerFake{balances: make(map[string][]balancePoint)}
}

// SetBalance sets the balance of the address from the given time on
func (f *TrackerFake) SetBalance(address string, ts uint64, amount sdk.Int) {
	points := append(f.balances[address], balancePoint{ts: ts, amount: amount})
	sort.SliceStable(points, func(i, j int) bool { return points[i].ts < points[j].ts })
	f.balances[address] = points
}

func (f *TrackerFake) BalanceAt(_ sdk.Context, address string, ts uint64) (sdk.Int, error) {
	return balanceAt(f.balances[address], ts), nil
}

func (f *TrackerFake) TotalSupplyAt(_ sdk.Context, ts uint64) (sdk.Int, error) {
	total := sdk.ZeroInt()
	for _, points := range f.balances {
		total = total.Add(balanceAt(points, ts))
	}
	return total, nil
}

func balanceAt(points []balancePoint, ts uint64) sdk.Int {
	r := sdk.ZeroInt()
	for _, p := range points {
		if p.ts > ts {
			break
		}
		r = p.amount
	}
	return r
}
