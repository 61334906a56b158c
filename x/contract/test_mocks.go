package contract

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var _ WasmKeeper = WasmKeeperMock{}

// WasmKeeperMock mocks the wasm keeper methods
type WasmKeeperMock struct {
	QuerySmartFn func(ctx sdk.Context, contractAddr sdk.AccAddress, req []byte) ([]byte, error)
	ExecuteFn    func(ctx sdk.Context, contractAddress sdk.AccAddress, caller sdk.AccAddress, msg []byte, coins sdk.Coins) ([]byte, error)
}

func (m WasmKeeperMock) QuerySmart(ctx sdk.Context, contractAddr sdk.AccAddress, req []byte) ([]byte, error) {
	if m.QuerySmartFn == nil {
		panic("not expected to be called")
	}
	return m.QuerySmartFn(ctx, contractAddr, req)
}

func (m WasmKeeperMock) Execute(ctx sdk.Context, contractAddress sdk.AccAddress, caller sdk.AccAddress, msg []byte, coins sdk.Coins) ([]byte, error) {
	if m.ExecuteFn == nil {
		panic("not expected to be called")
	}
	return m.ExecuteFn(ctx, contractAddress, caller, msg, coins)
}
