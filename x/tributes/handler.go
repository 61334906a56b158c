package tributes

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/astroport/governance/x/tributes/keeper"
	"github.com/astroport/governance/x/tributes/types"
)

// Handler executes a message on behalf of the sender with the attached funds
type Handler func(ctx sdk.Context, sender sdk.AccAddress, funds sdk.Coins, msg types.ExecuteMsg) (*sdk.Result, error)

// NewHandler constructor
func NewHandler(k keeper.Keeper) Handler {
	return func(ctx sdk.Context, sender sdk.AccAddress, funds sdk.Coins, msg types.ExecuteMsg) (*sdk.Result, error) {
		ctx = ctx.WithEventManager(sdk.NewEventManager())
		if !funds.IsZero() && msg.AddTribute == nil {
			return nil, sdkerrors.Wrap(sdkerrors.ErrInvalidRequest, "funds not accepted")
		}

		var data interface{}
		var err error
		switch {
		case msg.AddTribute != nil:
			err = k.AddTribute(ctx, sender, funds, msg.AddTribute.LpToken, msg.AddTribute.Reward)
		case msg.Claim != nil:
			receiver := sender
			if msg.Claim.Receiver != "" {
				if receiver, err = sdk.AccAddressFromBech32(msg.Claim.Receiver); err != nil {
					return nil, sdkerrors.Wrap(sdkerrors.ErrInvalidAddress, "receiver")
				}
			}
			var rewards sdk.Coins
			rewards, err = k.Claim(ctx, sender, receiver)
			data = map[string]sdk.Coins{"rewards": rewards}
		case msg.RemoveTribute != nil:
			var receiver sdk.AccAddress
			if receiver, err = sdk.AccAddressFromBech32(msg.RemoveTribute.Receiver); err != nil {
				return nil, sdkerrors.Wrap(sdkerrors.ErrInvalidAddress, "receiver")
			}
			var refund sdk.Coin
			refund, err = k.RemoveTribute(ctx, sender, msg.RemoveTribute.LpToken, msg.RemoveTribute.Denom, receiver)
			data = map[string]sdk.Coin{"refund": refund}
		case msg.UpdateConfig != nil:
			err = k.UpdateConfig(ctx, sender, *msg.UpdateConfig)
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
