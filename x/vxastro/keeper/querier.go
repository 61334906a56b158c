package keeper

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/astroport/governance/x/vxastro/types"
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
		case msg.UserVotingPower != nil:
			user, err := sdk.AccAddressFromBech32(msg.UserVotingPower.User)
			if err != nil {
				return nil, sdkerrors.Wrap(sdkerrors.ErrInvalidAddress, "user")
			}
			power := k.VotingPower(ctx, user)
			if ts := msg.UserVotingPower.Timestamp; ts != nil {
				power = k.VotingPowerAt(ctx, user, *ts)
			}
			rsp = types.VotingPowerResponse{VotingPower: power}
		case msg.TotalVotingPower != nil:
			power := k.TotalVotingPower(ctx)
			if ts := msg.TotalVotingPower.Timestamp; ts != nil {
				power = k.TotalVotingPowerAt(ctx, *ts)
			}
			rsp = types.VotingPowerResponse{VotingPower: power}
		case msg.LockInfo != nil:
			user, err := sdk.AccAddressFromBech32(msg.LockInfo.User)
			if err != nil {
				return nil, sdkerrors.Wrap(sdkerrors.ErrInvalidAddress, "user")
			}
			var r types.LockResponse
			if lock, ok := k.GetLock(ctx, user); ok {
				r.Lock = &lock
			}
			r.Blacklisted = k.IsBlacklisted(ctx, user)
			rsp = r
		case msg.Config != nil:
			rsp = k.GetParams(ctx)
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
