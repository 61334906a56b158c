package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	wasmkeeper "github.com/CosmWasm/wasmd/x/wasm/keeper"
	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	wasmvmtypes "github.com/CosmWasm/wasmvm/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// MsgHandler executes a JSON encoded module message on behalf of the sender with the attached funds
type MsgHandler func(ctx sdk.Context, sender sdk.AccAddress, funds sdk.Coins, msg []byte) (*sdk.Result, error)

// ModuleRouter dispatches JSON messages and queries to the governance modules by module name
type ModuleRouter struct {
	handlers map[string]MsgHandler
	queriers map[string]sdk.Querier
}

func NewModuleRouter() *ModuleRouter {
	return &ModuleRouter{
		handlers: make(map[string]MsgHandler),
		queriers: make(map[string]sdk.Querier),
	}
}

// AddRoute registers the handler and querier of a module. It panics on duplicates.
func (r *ModuleRouter) AddRoute(module string, h MsgHandler, q sdk.Querier) *ModuleRouter {
	if _, exists := r.handlers[module]; exists {
		panic(fmt.Sprintf("route %s has already been registered", module))
	}
	r.handlers[module] = h
	r.queriers[module] = q
	return r
}

// Modules returns the names of all registered modules, sorted
func (r ModuleRouter) Modules() []string {
	names := make([]string, 0, len(r.handlers))
	for n := range r.handlers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Handle executes the message with the handler of the module
func (r ModuleRouter) Handle(ctx sdk.Context, module string, sender sdk.AccAddress, funds sdk.Coins, msg []byte) (*sdk.Result, error) {
	h, ok := r.handlers[module]
	if !ok {
		return nil, sdkerrors.Wrapf(sdkerrors.ErrUnknownRequest, "unknown module %q", module)
	}
	return h(ctx, sender, funds, msg)
}

// Query runs the query with the querier of the module
func (r ModuleRouter) Query(ctx sdk.Context, module string, query []byte) ([]byte, error) {
	q, ok := r.queriers[module]
	if !ok {
		return nil, sdkerrors.Wrapf(sdkerrors.ErrUnknownRequest, "unknown module %q", module)
	}
	return q(ctx, []string{module}, abci.RequestQuery{Data: query})
}

// decodeStrict unmarshals JSON and rejects unknown fields
func decodeStrict(bz []byte, target interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(bz))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return sdkerrors.Wrap(sdkerrors.ErrJSONUnmarshal, err.Error())
	}
	return nil
}

var _ wasmkeeper.Messenger = &deferredMessenger{}

// deferredMessenger dispatches to the module router that is created after the keepers. Until it is
// bound all messages are unknown.
type deferredMessenger struct {
	target wasmkeeper.Messenger
}

func (m *deferredMessenger) bind(router *ModuleRouter, nested wasmkeeper.Messenger) {
	if nested == nil {
		m.target = NewCustomMessenger(router)
		return
	}
	m.target = wasmkeeper.NewMessageHandlerChain(NewCustomMessenger(router), nested)
}

func (m *deferredMessenger) DispatchMsg(ctx sdk.Context, contractAddr sdk.AccAddress, contractIBCPortID string, msg wasmvmtypes.CosmosMsg) ([]sdk.Event, [][]byte, error) {
	if m.target == nil {
		return nil, nil, wasmtypes.ErrUnknownMsg
	}
	return m.target.DispatchMsg(ctx, contractAddr, contractIBCPortID, msg)
}
