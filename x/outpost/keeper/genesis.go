package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	assemblytypes "github.com/astroport/governance/x/assembly/types"
	"github.com/astroport/governance/x/outpost/types"
)

// InitGenesis sets the params and restores the cross chain state of all users
func InitGenesis(ctx sdk.Context, k Keeper, data types.GenesisState) {
	if err := types.ValidateGenesis(data); err != nil {
		panic(err)
	}
	k.setParams(ctx, data.Params)
	if data.VotingChannel != "" {
		k.setVotingChannel(ctx, data.VotingChannel)
	}
	for _, p := range data.Proposals {
		k.setCachedProposal(ctx, p)
	}
	for _, u := range data.UserStatuses {
		k.setUserStatus(ctx, u.User, u.Status)
	}
	for _, v := range data.PendingVotes {
		k.setPendingVote(ctx, v.ProposalID, v.Voter, v.Vote)
	}
}

// ExportGenesis exports the params, the proposal cache and all users that are not idle
func ExportGenesis(ctx sdk.Context, k Keeper) types.GenesisState {
	r := types.GenesisState{
		Params:        k.GetParams(ctx),
		VotingChannel: k.GetVotingChannel(ctx),
	}
	k.IterateCachedProposals(ctx, func(p assemblytypes.ProposalSnapshot) bool {
		r.Proposals = append(r.Proposals, p)
		return false
	})
	k.IterateUserStatuses(ctx, func(user string, status types.UserIbcStatus) bool {
		r.UserStatuses = append(r.UserStatuses, types.GenesisUserStatus{User: user, Status: status})
		return false
	})
	k.IterateAllPendingVotes(ctx, func(v types.GenesisPendingVote) bool {
		r.PendingVotes = append(r.PendingVotes, v)
		return false
	})
	return r
}
