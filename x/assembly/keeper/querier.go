package keeper

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/astroport/governance/x/assembly/types"
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
			rsp = k.GetConfig(ctx)
		case msg.Proposals != nil:
			limit := queryLimit(msg.Proposals.Limit)
			r := types.ProposalListResponse{ProposalCount: k.ProposalCount(ctx), Proposals: []types.Proposal{}}
			k.IterateProposals(ctx, msg.Proposals.StartAfter, func(p types.Proposal) bool {
				r.Proposals = append(r.Proposals, p)
				return len(r.Proposals) == limit
			})
			rsp = r
		case msg.Proposal != nil:
			p, err := k.GetProposal(ctx, msg.Proposal.ProposalID)
			if err != nil {
				return nil, err
			}
			rsp = p
		case msg.ProposalVotes != nil:
			p, err := k.GetProposal(ctx, msg.ProposalVotes.ProposalID)
			if err != nil {
				return nil, err
			}
			rsp = types.ProposalVotesResponse{ProposalID: p.ID, ForPower: p.ForPower, AgainstPower: p.AgainstPower}
		case msg.ProposalVoters != nil:
			q := msg.ProposalVoters
			if _, err := k.GetProposal(ctx, q.ProposalID); err != nil {
				return nil, err
			}
			limit := queryLimit(q.Limit)
			r := []types.VoterResponse{}
			k.IterateVotes(ctx, q.ProposalID, q.StartAfter, func(voter string, vote types.VoteOption) bool {
				r = append(r, types.VoterResponse{Address: voter, Vote: vote})
				return len(r) == limit
			})
			rsp = r
		case msg.UserVotingPower != nil:
			p, err := k.GetProposal(ctx, msg.UserVotingPower.ProposalID)
			if err != nil {
				return nil, err
			}
			power, err := k.UserVotingPower(ctx, msg.UserVotingPower.User, p)
			if err != nil {
				return nil, err
			}
			rsp = power
		case msg.TotalVotingPower != nil:
			p, err := k.GetProposal(ctx, msg.TotalVotingPower.ProposalID)
			if err != nil {
				return nil, err
			}
			rsp = p.TotalVotingPower
		case msg.UserVote != nil:
			vote, ok := k.GetVote(ctx, msg.UserVote.ProposalID, msg.UserVote.User)
			if !ok {
				return nil, sdkerrors.Wrapf(sdkerrors.ErrNotFound, "no vote of %s", msg.UserVote.User)
			}
			rsp = types.VoterResponse{Address: msg.UserVote.User, Vote: vote}
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
