package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/astroport/governance/x/emissions/types"
)

// RegisterInvariants registers the emissions invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "vote-conservation", VoteConservationInvariant(k))
}

// VoteConservationInvariant checks that the tally of every whitelisted pool equals the voting power
// users currently dedicate to it.
func VoteConservationInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		expected := make(map[string]sdk.Int)
		k.IterateUserInfos(ctx, func(_ string, info types.UserInfo) bool {
			for _, v := range info.Votes {
				if !k.isVoteCounted(ctx, v.Pool, info.VoteTs) {
					continue
				}
				sum, ok := expected[v.Pool]
				if !ok {
					sum = sdk.ZeroInt()
				}
				expected[v.Pool] = sum.Add(weightedPower(info.VotingPower, v.Weight))
			}
			return false
		})
		var (
			msg    string
			broken bool
		)
		k.IterateWhitelist(ctx, func(pool string) bool {
			info, _ := k.GetPoolInfo(ctx, pool)
			tally := info.VotingPower
			if tally.IsNil() {
				tally = sdk.ZeroInt()
			}
			want, ok := expected[pool]
			if !ok {
				want = sdk.ZeroInt()
			}
			if !tally.Equal(want) {
				broken = true
				msg += fmt.Sprintf("\tpool %s: tally %s, votes %s\n", pool, tally, want)
			}
			return false
		})
		return sdk.FormatInvariant(types.ModuleName, "vote-conservation", msg), broken
	}
}
