package outpost

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/astroport/governance/x/outpost/keeper"
	"github.com/astroport/governance/x/outpost/types"
)

// Handler executes a message on behalf of the sender with the attached funds
type Handler func(ctx sdk.Context, sender sdk.AccAddress, funds sdk.Coins, msg types.ExecuteMsg) (*sdk.Result, error)

// NewHandler constructor
func NewHandler(k keeper.Keeper) Handler {
	return func(ctx sdk.Context, sender sdk.AccAddress, funds sdk.Coins, msg types.ExecuteMsg) (*sdk.Result, error) {
		ctx = ctx.WithEventManager(sdk.NewEventManager())
		if !funds.IsZero() && msg.SetEmissions == nil {
			return nil, sdkerrors.Wrap(sdkerrors.ErrInvalidRequest, "funds not accepted")
		}

		var err error
		switch {
		case msg.Vote != nil:
			err = k.Vote(ctx, sender, msg.Vote.Votes)
		case msg.CastVote != nil:
			err = k.CastVote(ctx, sender, msg.CastVote.ProposalID, msg.CastVote.Vote)
		case msg.RefreshUserVotes != nil:
			err = k.RefreshUserVotes(ctx, sender)
		case msg.SetEmissions != nil:
			err = k.ExecuteSetEmissions(ctx, sender, funds, msg.SetEmissions)
		case msg.SetVotingChannel != nil:
			err = k.SetVotingChannel(ctx, sender, msg.SetVotingChannel.Channel)
		case msg.UpdateParams != nil:
			err = k.UpdateParams(ctx, sender, *msg.UpdateParams)
		default:
			return nil, sdkerrors.Wrapf(sdkerrors.ErrUnknownRequest, "unrecognized %s message", types.ModuleName)
		}
		if err != nil {
			return nil, err
		}
		status := k.GetUserStatus(ctx, sender.String())
		bz, err := json.Marshal(status)
		if err != nil {
			return nil, sdkerrors.Wrap(sdkerrors.ErrJSONMarshal, err.Error())
		}
		return &sdk.Result{Data: bz, Events: ctx.EventManager().ABCIEvents()}, nil
	}
}
