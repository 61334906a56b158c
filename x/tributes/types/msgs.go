package types

import sdk "github.com/cosmos/cosmos-sdk/types"

// ExecuteMsg is the entry point of the tributes module. Exactly one field must be set.
type ExecuteMsg struct {
	// AddTribute deposits a reward for the voters of a pool in the next epoch. The reward and, for a
	// new denom, the fee must be attached.
	AddTribute *AddTributeMsg `json:"add_tribute,omitempty"`
	// Claim pays out the rewards of all epochs since the last claim
	Claim *ClaimMsg `json:"claim,omitempty"`
	// RemoveTribute refunds a tribute of the next epoch. Owner only.
	RemoveTribute *RemoveTributeMsg `json:"remove_tribute,omitempty"`
	// UpdateConfig replaces the params. Owner only.
	UpdateConfig *Params `json:"update_config,omitempty"`
}

type AddTributeMsg struct {
	LpToken string   `json:"lp_token"`
	Reward  sdk.Coin `json:"reward"`
}

type ClaimMsg struct {
	// Receiver of the rewards, the sender when empty
	Receiver string `json:"receiver,omitempty"`
}

type RemoveTributeMsg struct {
	LpToken  string `json:"lp_token"`
	Denom    string `json:"denom"`
	Receiver string `json:"receiver"`
}

// QueryMsg queries of the tributes module. Exactly one field must be set.
type QueryMsg struct {
	Config                *struct{}           `json:"config,omitempty"`
	SimulateClaim         *AddressQuery       `json:"simulate_claim,omitempty"`
	LastClaim             *AddressQuery       `json:"last_claim,omitempty"`
	PoolTributes          *PoolTributesQuery  `json:"pool_tributes,omitempty"`
	AllEpochPoolsTributes *EpochTributesQuery `json:"all_epoch_pools_tributes,omitempty"`
}

type AddressQuery struct {
	Address string `json:"address"`
}

type PoolTributesQuery struct {
	LpToken string `json:"lp_token"`
	// EpochTs defaults to the next epoch
	EpochTs *uint64 `json:"epoch_ts,omitempty"`
}

type EpochTributesQuery struct {
	// EpochTs defaults to the next epoch
	EpochTs    *uint64 `json:"epoch_ts,omitempty"`
	StartAfter string  `json:"start_after,omitempty"`
	Limit      uint32  `json:"limit,omitempty"`
}

// PoolTributes are the tributes of a pool in one epoch
type PoolTributes struct {
	LpToken  string        `json:"lp_token"`
	Tributes []TributeInfo `json:"tributes"`
}

// LastClaimResponse is the last epoch a user claimed, zero when never claimed
type LastClaimResponse struct {
	EpochTs uint64 `json:"epoch_ts"`
}
