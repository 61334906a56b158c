package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/astroport/governance/x/assembly/types"
)

// InitGenesis sets the config and restores proposals and votes. The proposal counter continues
// after the highest imported id.
func InitGenesis(ctx sdk.Context, k Keeper, data types.GenesisState) {
	if err := types.ValidateGenesis(data); err != nil {
		panic(err)
	}
	k.setConfig(ctx, data.Config)
	var maxID uint64
	for _, p := range data.Proposals {
		k.setProposal(ctx, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	ctx.KVStore(k.storeKey).Set(types.ProposalCountKey, sdk.Uint64ToBigEndian(maxID))
	for _, v := range data.Votes {
		k.setVote(ctx, v.ProposalID, v.Voter, v.Vote)
	}
}

// ExportGenesis exports the config, all proposals and their votes
func ExportGenesis(ctx sdk.Context, k Keeper) types.GenesisState {
	r := types.GenesisState{Config: k.GetConfig(ctx)}
	k.IterateProposals(ctx, 0, func(p types.Proposal) bool {
		r.Proposals = append(r.Proposals, p)
		k.IterateVotes(ctx, p.ID, "", func(voter string, vote types.VoteOption) bool {
			r.Votes = append(r.Votes, types.GenesisVote{ProposalID: p.ID, Voter: voter, Vote: vote})
			return false
		})
		return false
	})
	return r
}
