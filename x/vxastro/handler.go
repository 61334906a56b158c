package vxastro

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/astroport/governance/x/vxastro/keeper"
	"github.com/astroport/governance/x/vxastro/types"
)

// Handler executes a message on behalf of the sender with the attached funds
type Handler func(ctx sdk.Context, sender sdk.AccAddress, funds sdk.Coins, msg types.ExecuteMsg) (*sdk.Result, error)

// NewHandler constructor
func NewHandler(k keeper.Keeper) Handler {
	return func(ctx sdk.Context, sender sdk.AccAddress, funds sdk.Coins, msg types.ExecuteMsg) (*sdk.Result, error) {
		ctx = ctx.WithEventManager(sdk.NewEventManager())

		var data interface{}
		var err error
		switch {
		case msg.Lock != nil:
			if len(funds) != 1 {
				return nil, sdkerrors.Wrap(sdkerrors.ErrInvalidCoins, "exactly one coin required")
			}
			err = k.Lock(ctx, sender, funds[0])
		case msg.Unlock != nil:
			var unlockTime uint64
			unlockTime, err = k.Unlock(ctx, sender)
			data = map[string]uint64{"unlock_time": unlockTime}
		case msg.Relock != nil:
			err = k.Relock(ctx, sender)
		case msg.Withdraw != nil:
			var amount sdk.Coin
			amount, err = k.Withdraw(ctx, sender)
			data = amount
		case msg.UpdateBlacklist != nil:
			var add, remove []sdk.AccAddress
			if add, err = parseAddresses(msg.UpdateBlacklist.Append); err != nil {
				return nil, err
			}
			if remove, err = parseAddresses(msg.UpdateBlacklist.Remove); err != nil {
				return nil, err
			}
			err = k.UpdateBlacklist(ctx, sender, add, remove)
		default:
			return nil, sdkerrors.Wrapf(sdkerrors.ErrUnknownRequest, "unrecognized %s message", types.ModuleName)
		}
		if err != nil {
			return nil, err
		}
		var bz []byte
		if data != nil {
			if bz, err = json.Marshal(data); err != nil {
				return nil, sdkerrors.Wrap(sdkerrors.ErrJSONMarshal, err.Error())
			}
		}
		return &sdk.Result{Data: bz, Events: ctx.EventManager().ABCIEvents()}, nil
	}
}

func parseAddresses(src []string) ([]sdk.AccAddress, error) {
	r := make([]sdk.AccAddress, len(src))
	for i, v := range src {
		addr, err := sdk.AccAddressFromBech32(v)
		if err != nil {
			return nil, sdkerrors.Wrapf(sdkerrors.ErrInvalidAddress, "%s: %s", v, err)
		}
		r[i] = addr
	}
	return r, nil
}
