package contract

import (
	"encoding/json"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// SmartQuerier with access to the smart query method of the wasm keeper
type SmartQuerier interface {
	QuerySmart(ctx sdk.Context, contractAddr sdk.AccAddress, req []byte) ([]byte, error)
}

// Executor with access to the execute method of the wasm contract keeper
type Executor interface {
	Execute(ctx sdk.Context, contractAddress sdk.AccAddress, caller sdk.AccAddress, msg []byte, coins sdk.Coins) ([]byte, error)
}

// WasmKeeper is the subset of the wasm keepers the adapters need
type WasmKeeper interface {
	SmartQuerier
	Executor
}

type wasmKeepers struct {
	SmartQuerier
	Executor
}

// NewWasmKeeper combines the wasm query keeper with the permissioned contract ops keeper
func NewWasmKeeper(querier SmartQuerier, contractKeeper wasmtypes.ContractOpsKeeper) WasmKeeper {
	return wasmKeepers{SmartQuerier: querier, Executor: contractKeeper}
}

// BaseContractAdapter is the common part of all adapters. A lookup error for the contract address
// is kept and returned on use so that a missing collaborator fails late, at the call site.
type BaseContractAdapter struct {
	contractAddr     sdk.AccAddress
	wasmKeeper       WasmKeeper
	addressLookupErr error
}

// NewBaseContractAdapter constructor
func NewBaseContractAdapter(contractAddr sdk.AccAddress, wasmKeeper WasmKeeper, addressLookupErr error) BaseContractAdapter {
	return BaseContractAdapter{contractAddr: contractAddr, wasmKeeper: wasmKeeper, addressLookupErr: addressLookupErr}
}

// Address returns the contract address
func (a BaseContractAdapter) Address() (sdk.AccAddress, error) {
	return a.contractAddr, a.addressLookupErr
}

func (a BaseContractAdapter) doQuery(ctx sdk.Context, query interface{}, result interface{}) error {
	if a.addressLookupErr != nil {
		return a.addressLookupErr
	}
	bz, err := json.Marshal(query)
	if err != nil {
		return sdkerrors.Wrap(sdkerrors.ErrJSONMarshal, err.Error())
	}
	res, err := a.wasmKeeper.QuerySmart(ctx, a.contractAddr, bz)
	if err != nil {
		return err
	}
	return sdkerrors.Wrap(json.Unmarshal(res, result), "unmarshal result")
}

func (a BaseContractAdapter) doExecute(ctx sdk.Context, msg interface{}, sender sdk.AccAddress, coins sdk.Coins) error {
	if a.addressLookupErr != nil {
		return a.addressLookupErr
	}
	payloadBz, err := json.Marshal(msg)
	if err != nil {
		return sdkerrors.Wrap(err, "serialize payload msg")
	}
	_, err = a.wasmKeeper.Execute(ctx, a.contractAddr, sender, payloadBz, coins)
	return sdkerrors.Wrap(err, "execute contract")
}
