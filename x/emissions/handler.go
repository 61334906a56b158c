package emissions

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/astroport/governance/x/emissions/keeper"
	"github.com/astroport/governance/x/emissions/types"
)

// Handler executes a message on behalf of the sender with the attached funds
type Handler func(ctx sdk.Context, sender sdk.AccAddress, funds sdk.Coins, msg types.ExecuteMsg) (*sdk.Result, error)

// NewHandler constructor
func NewHandler(k keeper.Keeper) Handler {
	return func(ctx sdk.Context, sender sdk.AccAddress, funds sdk.Coins, msg types.ExecuteMsg) (*sdk.Result, error) {
		ctx = ctx.WithEventManager(sdk.NewEventManager())
		if !funds.IsZero() && msg.WhitelistPool == nil {
			return nil, sdkerrors.Wrap(sdkerrors.ErrInvalidRequest, "funds not accepted")
		}

		var data interface{}
		var err error
		switch {
		case msg.Vote != nil:
			err = k.Vote(ctx, sender, msg.Vote.Votes)
		case msg.RefreshUserVotes != nil:
			err = k.RefreshUserVotes(ctx, sender)
		case msg.WhitelistPool != nil:
			err = k.WhitelistPool(ctx, sender, funds, msg.WhitelistPool.Pool)
		case msg.TunePools != nil:
			var info types.TuneInfo
			info, err = k.TunePools(ctx)
			data = info
		case msg.RetryFailed != nil:
			err = k.RetryFailedOutposts(ctx)
		case msg.RegisterProposal != nil:
			err = k.RegisterProposal(ctx, msg.RegisterProposal.ProposalID)
		case msg.RemovePool != nil:
			err = k.RemovePoolFromWhitelist(ctx, sender, msg.RemovePool.Pool)
		case msg.UpdateOutpost != nil:
			err = k.UpdateOutpost(ctx, sender, *msg.UpdateOutpost)
		case msg.RemoveOutpost != nil:
			err = k.RemoveOutpost(ctx, sender, msg.RemoveOutpost.Prefix)
		case msg.JailOutpost != nil:
			err = k.JailOutpost(ctx, sender, msg.JailOutpost.Prefix)
		case msg.UnjailOutpost != nil:
			err = k.UnjailOutpost(ctx, sender, msg.UnjailOutpost.Prefix)
		case msg.UpdateParams != nil:
			err = k.UpdateParams(ctx, sender, *msg.UpdateParams)
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
