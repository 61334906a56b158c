package assembly

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/astroport/governance/x/assembly/keeper"
	"github.com/astroport/governance/x/assembly/types"
)

// Handler executes a message on behalf of the sender with the attached funds
type Handler func(ctx sdk.Context, sender sdk.AccAddress, funds sdk.Coins, msg types.ExecuteMsg) (*sdk.Result, error)

// NewHandler constructor
func NewHandler(k keeper.Keeper) Handler {
	return func(ctx sdk.Context, sender sdk.AccAddress, funds sdk.Coins, msg types.ExecuteMsg) (*sdk.Result, error) {
		ctx = ctx.WithEventManager(sdk.NewEventManager())
		if !funds.IsZero() && msg.SubmitProposal == nil {
			return nil, sdkerrors.Wrap(sdkerrors.ErrInvalidRequest, "funds not accepted")
		}

		var data interface{}
		var err error
		switch {
		case msg.SubmitProposal != nil:
			var id uint64
			id, err = k.SubmitProposal(ctx, sender, funds, *msg.SubmitProposal)
			data = map[string]uint64{"proposal_id": id}
		case msg.CastVote != nil:
			var power sdk.Int
			power, err = k.CastVote(ctx, sender, msg.CastVote.ProposalID, msg.CastVote.Vote)
			data = map[string]sdk.Int{"voting_power": power}
		case msg.EndProposal != nil:
			var status types.ProposalStatus
			status, err = k.EndProposal(ctx, msg.EndProposal.ProposalID)
			data = map[string]types.ProposalStatus{"status": status}
		case msg.ExecuteProposal != nil:
			var status types.ProposalStatus
			status, err = k.ExecuteProposal(ctx, msg.ExecuteProposal.ProposalID)
			data = map[string]types.ProposalStatus{"status": status}
		case msg.CheckMessages != nil:
			err = k.CheckMessages(ctx, msg.CheckMessages.Messages)
		case msg.CheckMessagesPassed != nil:
			err = types.ErrMessagesCheckPassed
		case msg.IBCProposalCompleted != nil:
			err = k.IBCProposalCompleted(ctx, sender, msg.IBCProposalCompleted.ProposalID, msg.IBCProposalCompleted.Status)
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
