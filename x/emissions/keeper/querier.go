package keeper

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/astroport/governance/x/emissions/types"
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
			rsp = k.GetParams(ctx)
		case msg.UserInfo != nil:
			var (
				info  types.UserInfo
				found bool
			)
			if ts := msg.UserInfo.Timestamp; ts != nil {
				info, found = k.GetUserInfoAt(ctx, msg.UserInfo.User, *ts)
			} else {
				info, found = k.GetUserInfo(ctx, msg.UserInfo.User)
			}
			if !found {
				return nil, sdkerrors.Wrapf(sdkerrors.ErrNotFound, "no vote of %s", msg.UserInfo.User)
			}
			rsp = info
		case msg.VotedPool != nil:
			var (
				info  types.VotedPoolInfo
				found bool
			)
			if ts := msg.VotedPool.Timestamp; ts != nil {
				info, found = k.GetPoolInfoAt(ctx, msg.VotedPool.Pool, *ts)
			} else {
				info, found = k.GetPoolInfo(ctx, msg.VotedPool.Pool)
			}
			if !found {
				return nil, sdkerrors.Wrapf(sdkerrors.ErrNotFound, "pool %s", msg.VotedPool.Pool)
			}
			rsp = info
		case msg.VotedPools != nil:
			r := []types.VotedPoolsResponse{}
			k.IterateWhitelist(ctx, func(pool string) bool {
				info, _ := k.GetPoolInfo(ctx, pool)
				r = append(r, types.VotedPoolsResponse{Pool: pool, VotingPower: info.VotingPower, InitTs: info.InitTs})
				return false
			})
			rsp = r
		case msg.Whitelist != nil:
			rsp = k.GetWhitelist(ctx)
		case msg.Outposts != nil:
			r := []types.OutpostInfo{}
			k.IterateOutposts(ctx, func(o types.OutpostInfo) bool {
				r = append(r, o)
				return false
			})
			rsp = r
		case msg.TuneInfo != nil:
			var (
				info  types.TuneInfo
				found bool
			)
			if ts := msg.TuneInfo.Timestamp; ts != nil {
				info, found = k.GetTuneInfoAt(ctx, *ts)
			} else {
				info, found = k.GetTuneInfo(ctx)
			}
			if !found {
				return nil, sdkerrors.Wrap(sdkerrors.ErrNotFound, "tune info")
			}
			rsp = info
		case msg.SimulateTune != nil:
			info, err := k.SimulateTune(ctx)
			if err != nil {
				return nil, err
			}
			rsp = info
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
