package keeper

import (
	"encoding/json"
	"strings"

	wasmkeeper "github.com/CosmWasm/wasmd/x/wasm/keeper"
	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	wasmvmtypes "github.com/CosmWasm/wasmvm/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/astroport/governance/x/assembly/types"
)

// type url prefixes of messages a proposal must never contain
var forbiddenStargatePrefixes = []string{
	"/cosmos.authz.",
	"/cosmos.group.",
}

// validateMessages rejects messages that would allow to bypass governance
func validateMessages(msgs []wasmvmtypes.CosmosMsg) error {
	self := types.ModuleAddress().String()
	for i, msg := range msgs {
		if msg.Stargate != nil {
			for _, p := range forbiddenStargatePrefixes {
				if strings.HasPrefix(msg.Stargate.TypeURL, p) {
					return sdkerrors.Wrapf(types.ErrForbiddenMessage, "message %d: %s", i, msg.Stargate.TypeURL)
				}
			}
		}
		if msg.Wasm == nil {
			continue
		}
		switch {
		case msg.Wasm.Migrate != nil && msg.Wasm.Migrate.ContractAddr == self,
			msg.Wasm.UpdateAdmin != nil && msg.Wasm.UpdateAdmin.ContractAddr == self,
			msg.Wasm.ClearAdmin != nil && msg.Wasm.ClearAdmin.ContractAddr == self:
			return sdkerrors.Wrapf(types.ErrForbiddenMessage, "message %d: admin change of the assembly", i)
		}
	}
	return nil
}

// dispatchMessages sends the messages in order with the assembly as sender. The first failure aborts.
func (k Keeper) dispatchMessages(ctx sdk.Context, msgs []wasmvmtypes.CosmosMsg) error {
	handler := k.messageHandler()
	for i, msg := range msgs {
		events, _, err := handler.DispatchMsg(ctx, types.ModuleAddress(), "", msg)
		if err != nil {
			return sdkerrors.Wrapf(err, "message %d", i)
		}
		ctx.EventManager().EmitEvents(events)
	}
	return nil
}

func (k Keeper) messageHandler() wasmkeeper.Messenger {
	self := wasmkeeper.MessageHandlerFunc(k.handleSelfMsg)
	if k.messenger == nil {
		return wasmkeeper.NewMessageHandlerChain(self)
	}
	return wasmkeeper.NewMessageHandlerChain(self, k.messenger)
}

// handleSelfMsg handles execute messages the assembly sends to itself. Everything else is passed on.
func (k Keeper) handleSelfMsg(ctx sdk.Context, contractAddr sdk.AccAddress, _ string, msg wasmvmtypes.CosmosMsg) ([]sdk.Event, [][]byte, error) {
	if msg.Wasm == nil || msg.Wasm.Execute == nil || msg.Wasm.Execute.ContractAddr != types.ModuleAddress().String() {
		return nil, nil, wasmtypes.ErrUnknownMsg
	}
	var exec types.ExecuteMsg
	if err := json.Unmarshal(msg.Wasm.Execute.Msg, &exec); err != nil {
		return nil, nil, sdkerrors.Wrap(sdkerrors.ErrJSONUnmarshal, err.Error())
	}
	switch {
	case exec.UpdateConfig != nil:
		if err := k.UpdateConfig(ctx, contractAddr, *exec.UpdateConfig); err != nil {
			return nil, nil, err
		}
		return nil, nil, nil
	case exec.CheckMessagesPassed != nil:
		return nil, nil, types.ErrMessagesCheckPassed
	default:
		return nil, nil, sdkerrors.Wrap(types.ErrForbiddenMessage, "self call")
	}
}

// CheckMessages dry-runs the messages as if a proposal was executed. It never succeeds:
// ErrMessagesCheckPassed is returned when every message could be executed. State is never committed.
func (k Keeper) CheckMessages(ctx sdk.Context, msgs []wasmvmtypes.CosmosMsg) error {
	if err := validateMessages(msgs); err != nil {
		return err
	}
	sentinel, err := json.Marshal(types.ExecuteMsg{CheckMessagesPassed: &struct{}{}})
	if err != nil {
		return sdkerrors.Wrap(err, "sentinel")
	}
	all := make([]wasmvmtypes.CosmosMsg, 0, len(msgs)+1)
	all = append(all, msgs...)
	all = append(all, wasmvmtypes.CosmosMsg{Wasm: &wasmvmtypes.WasmMsg{Execute: &wasmvmtypes.ExecuteMsg{
		ContractAddr: types.ModuleAddress().String(),
		Msg:          sentinel,
		Funds:        wasmvmtypes.Coins{},
	}}})
	cacheCtx, _ := ctx.CacheContext()
	return k.dispatchMessages(cacheCtx, all)
}
