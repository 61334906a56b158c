package types

import (
	"sort"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// EmissionsStatus of the emissions of an outpost in the latest epoch
type EmissionsStatus string

const (
	EmissionsStatusInProgress EmissionsStatus = "in_progress"
	EmissionsStatusDone       EmissionsStatus = "done"
	EmissionsStatusFailed     EmissionsStatus = "failed"
)

// PoolAmount is the ASTRO amount a pool receives in an epoch
type PoolAmount struct {
	Pool   string  `json:"pool"`
	Amount sdk.Int `json:"amount"`
}

// OutpostPools are the emissions of all pools of an outpost
type OutpostPools struct {
	Prefix string       `json:"prefix"`
	Pools  []PoolAmount `json:"pools"`
}

// Total returns the sum of all pool amounts
func (o OutpostPools) Total() sdk.Int {
	total := sdk.ZeroInt()
	for _, p := range o.Pools {
		total = total.Add(p.Amount)
	}
	return total
}

// EmissionsState is the state of the emissions curve after a tuning
type EmissionsState struct {
	XAstroRate      sdk.Dec `json:"xastro_rate"`
	CollectedAstro  sdk.Int `json:"collected_astro"`
	Ema             sdk.Int `json:"ema"`
	EmissionsAmount sdk.Int `json:"emissions_amount"`
}

// TuneInfo is the result of a tuning. It is stored with the epoch start as timestamp.
type TuneInfo struct {
	TuneTs                   uint64                     `json:"tune_ts"`
	PoolsGrouped             []OutpostPools             `json:"pools_grouped"`
	OutpostEmissionsStatuses map[string]EmissionsStatus `json:"outpost_emissions_statuses"`
	EmissionsState           EmissionsState             `json:"emissions_state"`
}

// Outpost returns the emissions of the outpost with the given prefix
func (t TuneInfo) Outpost(prefix string) (OutpostPools, bool) {
	for _, o := range t.PoolsGrouped {
		if o.Prefix == prefix {
			return o, true
		}
	}
	return OutpostPools{}, false
}

// OutpostsWithStatus returns the prefixes with the given status in ascending order
func (t TuneInfo) OutpostsWithStatus(status EmissionsStatus) []string {
	var r []string
	for prefix, s := range t.OutpostEmissionsStatuses {
		if s == status {
			r = append(r, prefix)
		}
	}
	sort.Strings(r)
	return r
}

// PoolPower is the voting power of a pool at the start of an epoch
type PoolPower struct {
	Pool        string  `json:"pool"`
	VotingPower sdk.Int `json:"voting_power"`
}

// SortPoolsByPower sorts pools by voting power in descending order, ties by pool id ascending
func SortPoolsByPower(pools []PoolPower) {
	sort.SliceStable(pools, func(i, j int) bool {
		if c := pools[i].VotingPower.BigInt().Cmp(pools[j].VotingPower.BigInt()); c != 0 {
			return c > 0
		}
		return pools[i].Pool < pools[j].Pool
	})
}

// PendingTransfer is an emissions transfer to an outpost waiting for its acknowledgement
type PendingTransfer struct {
	Prefix string `json:"prefix"`
	TuneTs uint64 `json:"tune_ts"`
}
