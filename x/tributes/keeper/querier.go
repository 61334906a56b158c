package keeper

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	abci "github.com/tendermint/tendermint/abci/types"

	emissionstypes "github.com/astroport/governance/x/emissions/types"
	"github.com/astroport/governance/x/tributes/types"
)

const (
	defaultQueryLimit = 10
	maxQueryLimit     = 30
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
		case msg.SimulateClaim != nil:
			rewards := k.SimulateClaim(ctx, msg.SimulateClaim.Address)
			if rewards == nil {
				rewards = sdk.Coins{}
			}
			rsp = rewards
		case msg.LastClaim != nil:
			epochTs, _ := k.GetLastClaim(ctx, msg.LastClaim.Address)
			rsp = types.LastClaimResponse{EpochTs: epochTs}
		case msg.PoolTributes != nil:
			q := msg.PoolTributes
			r := []types.TributeInfo{}
			k.IteratePoolTributes(ctx, epochOrNext(ctx, q.EpochTs), q.LpToken, func(t types.TributeInfo) bool {
				r = append(r, t)
				return false
			})
			rsp = r
		case msg.AllEpochPoolsTributes != nil:
			q := msg.AllEpochPoolsTributes
			limit := queryLimit(q.Limit)
			r := []types.PoolTributes{}
			k.IterateEpochTributes(ctx, epochOrNext(ctx, q.EpochTs), q.StartAfter, func(lpToken string, t types.TributeInfo) bool {
				if n := len(r); n != 0 && r[n-1].LpToken == lpToken {
					r[n-1].Tributes = append(r[n-1].Tributes, t)
					return false
				}
				if len(r) == limit {
					return true
				}
				r = append(r, types.PoolTributes{LpToken: lpToken, Tributes: []types.TributeInfo{t}})
				return false
			})
			rsp = r
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

func epochOrNext(ctx sdk.Context, epochTs *uint64) uint64 {
	if epochTs != nil {
		return *epochTs
	}
	return emissionstypes.NextEpochStart(uint64(ctx.BlockTime().Unix()))
}

func queryLimit(l uint32) int {
	switch {
	case l == 0:
		return defaultQueryLimit
	case l > maxQueryLimit:
		return maxQueryLimit
	default:
		return int(l)
	}
}
