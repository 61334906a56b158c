package contract

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// TrackerQuery queries of the xASTRO balance tracker contract
type TrackerQuery struct {
	BalanceAt     *BalanceAtQuery     `json:"balance_at,omitempty"`
	TotalSupplyAt *TotalSupplyAtQuery `json:"total_supply_at,omitempty"`
}

type BalanceAtQuery struct {
	Address string `json:"address"`
	// Timestamp unix time in seconds, latest when not set
	Timestamp *uint64 `json:"timestamp,omitempty"`
}

type TotalSupplyAtQuery struct {
	Timestamp *uint64 `json:"timestamp,omitempty"`
}

// TrackerContractAdapter reads historic xASTRO balances
type TrackerContractAdapter struct {
	BaseContractAdapter
}

// NewTrackerContractAdapter constructor
func NewTrackerContractAdapter(contractAddr sdk.AccAddress, wasmKeeper WasmKeeper, addressLookupErr error) TrackerContractAdapter {
	return TrackerContractAdapter{
		BaseContractAdapter: NewBaseContractAdapter(
			contractAddr,
			wasmKeeper,
			addressLookupErr,
		),
	}
}

// BalanceAt returns the xASTRO balance of the address at the given time. The address may be of any chain.
func (a TrackerContractAdapter) BalanceAt(ctx sdk.Context, address string, ts uint64) (sdk.Int, error) {
	query := TrackerQuery{BalanceAt: &BalanceAtQuery{Address: address, Timestamp: &ts}}
	var rsp sdk.Int
	if err := a.doQuery(ctx, query, &rsp); err != nil {
		return sdk.Int{}, sdkerrors.Wrap(err, "contract query")
	}
	return rsp, nil
}

// TotalSupplyAt returns the xASTRO total supply at the given time
func (a TrackerContractAdapter) TotalSupplyAt(ctx sdk.Context, ts uint64) (sdk.Int, error) {
	query := TrackerQuery{TotalSupplyAt: &TotalSupplyAtQuery{Timestamp: &ts}}
	var rsp sdk.Int
	if err := a.doQuery(ctx, query, &rsp); err != nil {
		return sdk.Int{}, sdkerrors.Wrap(err, "contract query")
	}
	return rsp, nil
}

// StakingQuery queries of the ASTRO staking contract
type StakingQuery struct {
	TotalShares  *struct{} `json:"total_shares,omitempty"`
	TotalDeposit *struct{} `json:"total_deposit,omitempty"`
}

// StakingContractAdapter reads the xASTRO share price
type StakingContractAdapter struct {
	BaseContractAdapter
}

// NewStakingContractAdapter constructor
func NewStakingContractAdapter(contractAddr sdk.AccAddress, wasmKeeper WasmKeeper, addressLookupErr error) StakingContractAdapter {
	return StakingContractAdapter{
		BaseContractAdapter: NewBaseContractAdapter(
			contractAddr,
			wasmKeeper,
			addressLookupErr,
		),
	}
}

// TotalShares returns the xASTRO supply
func (a StakingContractAdapter) TotalShares(ctx sdk.Context) (sdk.Int, error) {
	var rsp sdk.Int
	if err := a.doQuery(ctx, StakingQuery{TotalShares: &struct{}{}}, &rsp); err != nil {
		return sdk.Int{}, sdkerrors.Wrap(err, "contract query")
	}
	return rsp, nil
}

// TotalDeposit returns the ASTRO held by the staking contract
func (a StakingContractAdapter) TotalDeposit(ctx sdk.Context) (sdk.Int, error) {
	var rsp sdk.Int
	if err := a.doQuery(ctx, StakingQuery{TotalDeposit: &struct{}{}}, &rsp); err != nil {
		return sdk.Int{}, sdkerrors.Wrap(err, "contract query")
	}
	return rsp, nil
}

// BuilderUnlockQuery queries of the builder unlock contract
type BuilderUnlockQuery struct {
	Allocation *AllocationQuery `json:"allocation,omitempty"`
	State      *StateQuery      `json:"state,omitempty"`
}

type AllocationQuery struct {
	Account   string  `json:"account"`
	Timestamp *uint64 `json:"timestamp,omitempty"`
}

type StateQuery struct {
	Timestamp *uint64 `json:"timestamp,omitempty"`
}

// AllocationResponse response to the allocation query
type AllocationResponse struct {
	Status AllocationStatus `json:"status"`
}

type AllocationStatus struct {
	Amount         sdk.Int `json:"amount"`
	AstroWithdrawn sdk.Int `json:"astro_withdrawn"`
}

// StateResponse response to the state query
type StateResponse struct {
	TotalAstroDeposited  sdk.Int `json:"total_astro_deposited"`
	RemainingAstroTokens sdk.Int `json:"remaining_astro_tokens"`
}

// BuilderUnlockContractAdapter reads the not yet withdrawn builder allocations which count as voting power
type BuilderUnlockContractAdapter struct {
	BaseContractAdapter
}

// NewBuilderUnlockContractAdapter constructor
func NewBuilderUnlockContractAdapter(contractAddr sdk.AccAddress, wasmKeeper WasmKeeper, addressLookupErr error) BuilderUnlockContractAdapter {
	return BuilderUnlockContractAdapter{
		BaseContractAdapter: NewBaseContractAdapter(
			contractAddr,
			wasmKeeper,
			addressLookupErr,
		),
	}
}

// VotingPowerAt returns the locked allocation of the account at the given time
func (a BuilderUnlockContractAdapter) VotingPowerAt(ctx sdk.Context, account string, ts uint64) (sdk.Int, error) {
	var rsp AllocationResponse
	if err := a.doQuery(ctx, BuilderUnlockQuery{Allocation: &AllocationQuery{Account: account, Timestamp: &ts}}, &rsp); err != nil {
		return sdk.Int{}, sdkerrors.Wrap(err, "contract query")
	}
	if rsp.Status.Amount.IsNil() {
		return sdk.ZeroInt(), nil
	}
	withdrawn := rsp.Status.AstroWithdrawn
	if withdrawn.IsNil() {
		withdrawn = sdk.ZeroInt()
	}
	return rsp.Status.Amount.Sub(withdrawn), nil
}

// TotalVotingPowerAt returns the sum of all locked allocations at the given time
func (a BuilderUnlockContractAdapter) TotalVotingPowerAt(ctx sdk.Context, ts uint64) (sdk.Int, error) {
	var rsp StateResponse
	if err := a.doQuery(ctx, BuilderUnlockQuery{State: &StateQuery{Timestamp: &ts}}, &rsp); err != nil {
		return sdk.Int{}, sdkerrors.Wrap(err, "contract query")
	}
	if rsp.RemainingAstroTokens.IsNil() {
		return sdk.ZeroInt(), nil
	}
	return rsp.RemainingAstroTokens, nil
}
