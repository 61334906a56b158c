package app

import (
	"encoding/json"

	"github.com/CosmWasm/wasmd/x/wasm"
	wasmkeeper "github.com/CosmWasm/wasmd/x/wasm/keeper"
	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	wasmvmtypes "github.com/CosmWasm/wasmvm/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/tidwall/gjson"
)

// fundsField is the optional member of a custom message with the coins the contract sends along
const fundsField = "funds"

// SetupWasmHandlers routes custom messages and queries of contracts to the governance modules.
// A custom message is a JSON object with the module name as single key, for example
// {"emissions":{"vote":{...}},"funds":[...]}. Custom queries have the same shape without funds.
func SetupWasmHandlers(router *ModuleRouter) []wasmkeeper.Option {
	queryPluginOpt := wasmkeeper.WithQueryPlugins(&wasmkeeper.QueryPlugins{
		Custom: CustomQuerier(router),
	})

	extMessageHandlerOpt := wasmkeeper.WithMessageHandlerDecorator(func(nested wasmkeeper.Messenger) wasmkeeper.Messenger {
		return wasmkeeper.NewMessageHandlerChain(
			// disable staking messages
			wasmkeeper.MessageHandlerFunc(func(ctx sdk.Context, contractAddr sdk.AccAddress, contractIBCPortID string, msg wasmvmtypes.CosmosMsg) (events []sdk.Event, data [][]byte, err error) {
				if msg.Staking != nil {
					return nil, nil, sdkerrors.Wrap(wasmtypes.ErrExecuteFailed, "not supported")
				}
				return nil, nil, wasmtypes.ErrUnknownMsg
			}),
			nested,
			// append our custom message handler
			NewCustomMessenger(router),
		)
	})
	return []wasm.Option{
		queryPluginOpt,
		extMessageHandlerOpt,
	}
}

// CustomQuerier answers custom contract queries with the module queriers
func CustomQuerier(router *ModuleRouter) func(ctx sdk.Context, request json.RawMessage) ([]byte, error) {
	return func(ctx sdk.Context, request json.RawMessage) ([]byte, error) {
		module, query, _, err := splitCustomMsg(request, false)
		if err != nil {
			return nil, err
		}
		return router.Query(ctx, module, query)
	}
}

var _ wasmkeeper.Messenger = CustomMessenger{}

// CustomMessenger executes custom contract messages with the module handlers. The contract is the
// sender and pays the attached funds.
type CustomMessenger struct {
	router *ModuleRouter
}

// NewCustomMessenger constructor
func NewCustomMessenger(router *ModuleRouter) CustomMessenger {
	return CustomMessenger{router: router}
}

func (m CustomMessenger) DispatchMsg(ctx sdk.Context, contractAddr sdk.AccAddress, _ string, msg wasmvmtypes.CosmosMsg) ([]sdk.Event, [][]byte, error) {
	if msg.Custom == nil {
		return nil, nil, wasmtypes.ErrUnknownMsg
	}
	module, payload, funds, err := splitCustomMsg(msg.Custom, true)
	if err != nil {
		return nil, nil, err
	}
	res, err := m.router.Handle(ctx, module, contractAddr, funds, payload)
	if err != nil {
		return nil, nil, err
	}
	events := make([]sdk.Event, len(res.Events))
	for i, e := range res.Events {
		events[i] = sdk.Event(e)
	}
	var data [][]byte
	if len(res.Data) != 0 {
		data = [][]byte{res.Data}
	}
	return events, data, nil
}

// splitCustomMsg returns the module name and payload of a custom message or query together with
// the funds, when allowed
func splitCustomMsg(raw []byte, withFunds bool) (string, []byte, sdk.Coins, error) {
	if !gjson.ValidBytes(raw) {
		return "", nil, nil, sdkerrors.Wrap(sdkerrors.ErrJSONUnmarshal, "invalid json")
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return "", nil, nil, sdkerrors.Wrap(sdkerrors.ErrJSONUnmarshal, "object expected")
	}
	var (
		module  string
		payload []byte
		funds   sdk.Coins
		err     error
		n       int
	)
	doc.ForEach(func(key, value gjson.Result) bool {
		if withFunds && key.String() == fundsField {
			if err = json.Unmarshal([]byte(value.Raw), &funds); err != nil {
				err = sdkerrors.Wrap(sdkerrors.ErrJSONUnmarshal, "funds")
				return false
			}
			return true
		}
		n++
		module, payload = key.String(), []byte(value.Raw)
		return true
	})
	if err != nil {
		return "", nil, nil, err
	}
	if n != 1 {
		return "", nil, nil, sdkerrors.Wrapf(sdkerrors.ErrInvalidRequest, "exactly one module expected, got %d", n)
	}
	if err := funds.Validate(); err != nil {
		return "", nil, nil, sdkerrors.Wrap(sdkerrors.ErrInvalidCoins, err.Error())
	}
	return module, payload, funds, nil
}
