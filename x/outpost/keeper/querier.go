package keeper

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/astroport/governance/x/outpost/types"
)

// NewQuerier creates a querier that decodes a types.QueryMsg from the request data
func NewQuerier(k Keeper) sdk.Querier {
	return func(ctx sdk.Context, _ []string, req abci.RequestQuery) ([]byte, error) {
		var msg types.QueryMsg
		if err := json.Unmarshal(req.Data, &msg); err != nil {
			return nil, sdkerrors.Wrap(sdkerrors.ErrJSONUnmarshal, err.Error())
		}
		var rsp interface{}
		switch {
		case msg.Config != nil:
			rsp = types.ConfigResponse{Params: k.GetParams(ctx), VotingChannel: k.GetVotingChannel(ctx)}
		case msg.UserIbcStatus != nil:
			rsp = k.GetUserStatus(ctx, msg.UserIbcStatus.User)
		case msg.ProposalCache != nil:
			p, ok := k.GetCachedProposal(ctx, msg.ProposalCache.ProposalID)
			if !ok {
				return nil, sdkerrors.Wrapf(types.ErrProposalNotCached, "proposal %d", msg.ProposalCache.ProposalID)
			}
			rsp = p
		case msg.VotingPower != nil:
			addr, err := sdk.AccAddressFromBech32(msg.VotingPower.User)
			if err != nil {
				return nil, sdkerrors.Wrap(sdkerrors.ErrInvalidAddress, err.Error())
			}
			rsp = types.VotingPowerResponse{VotingPower: k.votingPower.VotingPower(ctx, addr)}
		default:
			return nil, sdkerrors.Wrapf(sdkerrors.ErrUnknownRequest, "unknown %s query", types.ModuleName)
		}
		bz, err := json.Marshal(rsp)
		if err != nil {
			return nil, sdkerrors.Wrap(sdkerrors.ErrJSONMarshal, err.Error())
		}
		return bz, nil
	}
}
