package contract

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// FactoryQuery queries of the pair factory contract
type FactoryQuery struct {
	PairByLpToken *PairByLpTokenQuery `json:"pair_by_lp_token,omitempty"`
	Config        *struct{}           `json:"config,omitempty"`
}

type PairByLpTokenQuery struct {
	LpToken string `json:"lp_token"`
}

// PairInfo response to the pair query
type PairInfo struct {
	ContractAddr   string `json:"contract_addr"`
	LiquidityToken string `json:"liquidity_token"`
	PairType       string `json:"pair_type"`
}

// FactoryContractAdapter validates pools against the registry of the pair factory
type FactoryContractAdapter struct {
	BaseContractAdapter
}

// NewFactoryContractAdapter constructor
func NewFactoryContractAdapter(contractAddr sdk.AccAddress, wasmKeeper WasmKeeper, addressLookupErr error) FactoryContractAdapter {
	return FactoryContractAdapter{
		BaseContractAdapter: NewBaseContractAdapter(
			contractAddr,
			wasmKeeper,
			addressLookupErr,
		),
	}
}

// PairByLpToken returns the pair registered for the LP token
func (a FactoryContractAdapter) PairByLpToken(ctx sdk.Context, lpToken string) (*PairInfo, error) {
	var rsp PairInfo
	if err := a.doQuery(ctx, FactoryQuery{PairByLpToken: &PairByLpTokenQuery{LpToken: lpToken}}, &rsp); err != nil {
		return nil, sdkerrors.Wrap(err, "contract query")
	}
	return &rsp, nil
}

// IsRegisteredPool returns true when the LP token belongs to a pair of the factory
func (a FactoryContractAdapter) IsRegisteredPool(ctx sdk.Context, lpToken string) (bool, error) {
	pair, err := a.PairByLpToken(ctx, lpToken)
	if err != nil {
		return false, err
	}
	return pair.LiquidityToken == lpToken, nil
}

// IncentivesExecute messages of the incentives contract
type IncentivesExecute struct {
	IncentivizeMany []Incentive `json:"incentivize_many,omitempty"`
}

// Incentive is a reward schedule for a pool
type Incentive struct {
	LpToken string         `json:"lp_token"`
	Reward  RewardSchedule `json:"schedule"`
}

type RewardSchedule struct {
	Denom           string  `json:"denom"`
	Amount          sdk.Int `json:"amount"`
	DurationPeriods uint64  `json:"duration_periods"`
}

// IncentivesContractAdapter hands out emission schedules to the local incentives contract
type IncentivesContractAdapter struct {
	BaseContractAdapter
}

// NewIncentivesContractAdapter constructor
func NewIncentivesContractAdapter(contractAddr sdk.AccAddress, wasmKeeper WasmKeeper, addressLookupErr error) IncentivesContractAdapter {
	return IncentivesContractAdapter{
		BaseContractAdapter: NewBaseContractAdapter(
			contractAddr,
			wasmKeeper,
			addressLookupErr,
		),
	}
}

// PoolAmount is an amount of reward for a pool
type PoolAmount struct {
	LpToken string
	Amount  sdk.Int
}

// IncentivizeMany sets up one epoch long schedules for the given pools. The sum of all amounts is
// sent along in the given denom. Pools with no amount are skipped.
func (a IncentivesContractAdapter) IncentivizeMany(ctx sdk.Context, sender sdk.AccAddress, denom string, schedules []PoolAmount) error {
	msg := IncentivesExecute{IncentivizeMany: make([]Incentive, 0, len(schedules))}
	total := sdk.ZeroInt()
	for _, s := range schedules {
		if !s.Amount.IsPositive() {
			continue
		}
		msg.IncentivizeMany = append(msg.IncentivizeMany, Incentive{
			LpToken: s.LpToken,
			Reward:  RewardSchedule{Denom: denom, Amount: s.Amount, DurationPeriods: 1},
		})
		total = total.Add(s.Amount)
	}
	if len(msg.IncentivizeMany) == 0 {
		return nil
	}
	return a.doExecute(ctx, msg, sender, sdk.NewCoins(sdk.NewCoin(denom, total)))
}
