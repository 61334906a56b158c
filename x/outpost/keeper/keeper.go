package keeper

import (
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	paramtypes "github.com/cosmos/cosmos-sdk/x/params/types"
	"github.com/tendermint/tendermint/libs/log"

	assemblytypes "github.com/astroport/governance/x/assembly/types"
	"github.com/astroport/governance/x/channel"
	emissionstypes "github.com/astroport/governance/x/emissions/types"
	"github.com/astroport/governance/x/outpost/types"
)

type Keeper struct {
	storeKey    sdk.StoreKey
	paramSpace  paramtypes.Subspace
	bankKeeper  types.BankKeeper
	votingPower types.VotingPowerSource
	incentives  types.Incentives
	endpoint    channel.Endpoint
}

// NewKeeper constructor
func NewKeeper(
	storeKey sdk.StoreKey,
	paramSpace paramtypes.Subspace,
	bankKeeper types.BankKeeper,
	votingPower types.VotingPowerSource,
	incentives types.Incentives,
	channelKeeper channel.ChannelKeeper,
	portKeeper channel.PortKeeper,
	scopedKeeper channel.ScopedKeeper,
) Keeper {
	if !paramSpace.HasKeyTable() {
		paramSpace = paramSpace.WithKeyTable(types.ParamKeyTable())
	}
	return Keeper{
		storeKey:    storeKey,
		paramSpace:  paramSpace,
		bankKeeper:  bankKeeper,
		votingPower: votingPower,
		incentives:  incentives,
		endpoint:    channel.NewEndpoint(types.PortID, emissionstypes.Version, channelKeeper, portKeeper, scopedKeeper),
	}
}

// GetParams returns the total set of parameters.
func (k Keeper) GetParams(ctx sdk.Context) (params types.Params) {
	k.paramSpace.GetParamSet(ctx, &params)
	return params
}

func (k Keeper) setParams(ctx sdk.Context, params types.Params) {
	k.paramSpace.SetParamSet(ctx, &params)
}

// UpdateParams replaces the params. Only the owner can do this.
func (k Keeper) UpdateParams(ctx sdk.Context, sender sdk.AccAddress, params types.Params) error {
	if err := k.requireOwner(ctx, sender); err != nil {
		return err
	}
	if err := params.Validate(); err != nil {
		return err
	}
	k.setParams(ctx, params)
	return nil
}

// Endpoint returns the IBC endpoint of the outpost
func (k Keeper) Endpoint() channel.Endpoint {
	return k.endpoint
}

// GetVotingChannel returns the channel to the hub, empty when not set yet
func (k Keeper) GetVotingChannel(ctx sdk.Context) string {
	return string(ctx.KVStore(k.storeKey).Get(types.VotingChannelKey))
}

func (k Keeper) setVotingChannel(ctx sdk.Context, channelID string) {
	ctx.KVStore(k.storeKey).Set(types.VotingChannelKey, []byte(channelID))
}

// GetUserStatus returns the cross chain state of the user. Users without a record are idle.
func (k Keeper) GetUserStatus(ctx sdk.Context, user string) types.UserIbcStatus {
	bz := ctx.KVStore(k.storeKey).Get(types.GetUserStatusKey(user))
	if bz == nil {
		return types.UserIbcStatus{}
	}
	var r types.UserIbcStatus
	mustUnmarshal(bz, &r)
	return r
}

func (k Keeper) setUserStatus(ctx sdk.Context, user string, status types.UserIbcStatus) {
	store := ctx.KVStore(k.storeKey)
	if status.PendingMsg == nil && status.Error == nil {
		store.Delete(types.GetUserStatusKey(user))
		return
	}
	store.Set(types.GetUserStatusKey(user), mustMarshal(status))
}

// IterateUserStatuses visits the status of all users that are not idle
func (k Keeper) IterateUserStatuses(ctx sdk.Context, cb func(user string, status types.UserIbcStatus) bool) {
	iter := sdk.KVStorePrefixIterator(ctx.KVStore(k.storeKey), types.UserStatusPrefix)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var s types.UserIbcStatus
		mustUnmarshal(iter.Value(), &s)
		if cb(string(iter.Key()[len(types.UserStatusPrefix):]), s) {
			return
		}
	}
}

// GetCachedProposal returns a proposal that was registered at the hub
func (k Keeper) GetCachedProposal(ctx sdk.Context, proposalID uint64) (assemblytypes.ProposalSnapshot, bool) {
	bz := ctx.KVStore(k.storeKey).Get(types.GetProposalCacheKey(proposalID))
	if bz == nil {
		return assemblytypes.ProposalSnapshot{}, false
	}
	var r assemblytypes.ProposalSnapshot
	mustUnmarshal(bz, &r)
	return r, true
}

func (k Keeper) setCachedProposal(ctx sdk.Context, p assemblytypes.ProposalSnapshot) {
	ctx.KVStore(k.storeKey).Set(types.GetProposalCacheKey(p.ID), mustMarshal(p))
}

// IterateCachedProposals visits all registered proposals ordered by id
func (k Keeper) IterateCachedProposals(ctx sdk.Context, cb func(p assemblytypes.ProposalSnapshot) bool) {
	iter := sdk.KVStorePrefixIterator(ctx.KVStore(k.storeKey), types.ProposalsCachePrefix)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var p assemblytypes.ProposalSnapshot
		mustUnmarshal(iter.Value(), &p)
		if cb(p) {
			return
		}
	}
}

func (k Keeper) hasPendingVotes(ctx sdk.Context, proposalID uint64) bool {
	iter := sdk.KVStorePrefixIterator(ctx.KVStore(k.storeKey), types.GetPendingVotesPrefix(proposalID))
	defer iter.Close()
	return iter.Valid()
}

func (k Keeper) setPendingVote(ctx sdk.Context, proposalID uint64, voter string, vote assemblytypes.VoteOption) {
	ctx.KVStore(k.storeKey).Set(types.GetPendingVoteKey(proposalID, voter), []byte(vote))
}

// IteratePendingVotes visits the queued votes of a proposal ordered by voter
func (k Keeper) IteratePendingVotes(ctx sdk.Context, proposalID uint64, cb func(voter string, vote assemblytypes.VoteOption) bool) {
	prefix := types.GetPendingVotesPrefix(proposalID)
	iter := sdk.KVStorePrefixIterator(ctx.KVStore(k.storeKey), prefix)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		if cb(string(iter.Key()[len(prefix):]), assemblytypes.VoteOption(iter.Value())) {
			return
		}
	}
}

// IterateAllPendingVotes visits all queued votes ordered by proposal and voter
func (k Keeper) IterateAllPendingVotes(ctx sdk.Context, cb func(v types.GenesisPendingVote) bool) {
	iter := sdk.KVStorePrefixIterator(ctx.KVStore(k.storeKey), types.PendingVotesPrefix)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		key := iter.Key()[len(types.PendingVotesPrefix):]
		v := types.GenesisPendingVote{
			ProposalID: sdk.BigEndianToUint64(key[:8]),
			Voter:      string(key[8:]),
			Vote:       assemblytypes.VoteOption(iter.Value()),
		}
		if cb(v) {
			return
		}
	}
}

// takePendingVotes removes and returns the queued votes of a proposal
func (k Keeper) takePendingVotes(ctx sdk.Context, proposalID uint64) []types.GenesisPendingVote {
	var r []types.GenesisPendingVote
	k.IteratePendingVotes(ctx, proposalID, func(voter string, vote assemblytypes.VoteOption) bool {
		r = append(r, types.GenesisPendingVote{ProposalID: proposalID, Voter: voter, Vote: vote})
		return false
	})
	store := ctx.KVStore(k.storeKey)
	for _, v := range r {
		store.Delete(types.GetPendingVoteKey(proposalID, v.Voter))
	}
	return r
}

func (k Keeper) requireOwner(ctx sdk.Context, sender sdk.AccAddress) error {
	owner := k.GetParams(ctx).Owner
	if owner == "" || owner != sender.String() {
		return sdkerrors.Wrap(sdkerrors.ErrUnauthorized, "owner only")
	}
	return nil
}

func (Keeper) Logger(ctx sdk.Context) log.Logger {
	return ModuleLogger(ctx)
}

func ModuleLogger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

func mustMarshal(v interface{}) []byte {
	bz, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return bz
}

func mustUnmarshal(bz []byte, v interface{}) {
	if err := json.Unmarshal(bz, v); err != nil {
		panic(err)
	}
}
