package app

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	assemblytypes "github.com/astroport/governance/x/assembly/types"
	"github.com/astroport/governance/x/contract"
	emissionstypes "github.com/astroport/governance/x/emissions/types"
)

// ContractAddresses are the bech32 addresses of the Astroport contracts on the hub. BuilderUnlock
// and IBCController are optional.
type ContractAddresses struct {
	Tracker       string `json:"tracker"`
	Staking       string `json:"staking"`
	Factory       string `json:"factory"`
	Incentives    string `json:"incentives"`
	BuilderUnlock string `json:"builder_unlock,omitempty"`
	IBCController string `json:"ibc_controller,omitempty"`
}

// HubContracts are the contract collaborators of the hub modules
type HubContracts struct {
	Tracker       assemblytypes.XAstroTracker
	Staking       emissionstypes.XAstroStaking
	Factory       emissionstypes.PoolFactory
	Incentives    emissionstypes.Incentives
	BuilderUnlock assemblytypes.BuilderUnlock
	IBCController assemblytypes.IBCController
}

// NewHubContracts returns wasm adapters for the given addresses. An invalid address is not reported
// here but by every call of its adapter.
func NewHubContracts(addrs ContractAddresses, wasmKeeper contract.WasmKeeper) HubContracts {
	r := HubContracts{
		Tracker:    contract.NewTrackerContractAdapter(lookup(addrs.Tracker), wasmKeeper, lookupErr(addrs.Tracker)),
		Staking:    contract.NewStakingContractAdapter(lookup(addrs.Staking), wasmKeeper, lookupErr(addrs.Staking)),
		Factory:    contract.NewFactoryContractAdapter(lookup(addrs.Factory), wasmKeeper, lookupErr(addrs.Factory)),
		Incentives: contract.NewIncentivesContractAdapter(lookup(addrs.Incentives), wasmKeeper, lookupErr(addrs.Incentives)),
	}
	if addrs.BuilderUnlock != "" {
		r.BuilderUnlock = contract.NewBuilderUnlockContractAdapter(lookup(addrs.BuilderUnlock), wasmKeeper, lookupErr(addrs.BuilderUnlock))
	}
	if addrs.IBCController != "" {
		r.IBCController = contract.NewIBCControllerContractAdapter(lookup(addrs.IBCController), wasmKeeper, lookupErr(addrs.IBCController))
	}
	return r
}

func lookup(addr string) sdk.AccAddress {
	a, _ := sdk.AccAddressFromBech32(addr)
	return a
}

func lookupErr(addr string) error {
	_, err := sdk.AccAddressFromBech32(addr)
	return err
}
