package keeper

import (
	"encoding/json"
	"fmt"

	wasmkeeper "github.com/CosmWasm/wasmd/x/wasm/keeper"
	"github.com/cosmos/cosmos-sdk/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/astroport/governance/x/assembly/types"
)

type Keeper struct {
	storeKey      sdk.StoreKey
	bankKeeper    types.BankKeeper
	tracker       types.XAstroTracker
	builderUnlock types.BuilderUnlock
	ibcController types.IBCController
	// messenger dispatches proposal messages that are not addressed to the assembly itself
	messenger wasmkeeper.Messenger
}

// NewKeeper constructor. The builder unlock and IBC controller are optional and can be nil.
func NewKeeper(
	storeKey sdk.StoreKey,
	bankKeeper types.BankKeeper,
	tracker types.XAstroTracker,
	builderUnlock types.BuilderUnlock,
	ibcController types.IBCController,
	messenger wasmkeeper.Messenger,
) Keeper {
	return Keeper{
		storeKey:      storeKey,
		bankKeeper:    bankKeeper,
		tracker:       tracker,
		builderUnlock: builderUnlock,
		ibcController: ibcController,
		messenger:     messenger,
	}
}

// GetConfig returns the assembly config
func (k Keeper) GetConfig(ctx sdk.Context) types.Config {
	bz := ctx.KVStore(k.storeKey).Get(types.ConfigKey)
	if bz == nil {
		panic("assembly config not set")
	}
	var c types.Config
	mustUnmarshal(bz, &c)
	return c
}

func (k Keeper) setConfig(ctx sdk.Context, c types.Config) {
	ctx.KVStore(k.storeKey).Set(types.ConfigKey, mustMarshal(c))
}

// GetProposal returns the proposal by id
func (k Keeper) GetProposal(ctx sdk.Context, id uint64) (types.Proposal, error) {
	bz := ctx.KVStore(k.storeKey).Get(types.GetProposalKey(id))
	if bz == nil {
		return types.Proposal{}, sdkerrors.Wrapf(types.ErrProposalNotFound, "id %d", id)
	}
	var p types.Proposal
	mustUnmarshal(bz, &p)
	return p, nil
}

func (k Keeper) setProposal(ctx sdk.Context, p types.Proposal) {
	ctx.KVStore(k.storeKey).Set(types.GetProposalKey(p.ID), mustMarshal(p))
}

// ProposalCount returns the number of submitted proposals, which is also the id of the latest one
func (k Keeper) ProposalCount(ctx sdk.Context) uint64 {
	bz := ctx.KVStore(k.storeKey).Get(types.ProposalCountKey)
	if bz == nil {
		return 0
	}
	return sdk.BigEndianToUint64(bz)
}

func (k Keeper) nextProposalID(ctx sdk.Context) uint64 {
	id := k.ProposalCount(ctx) + 1
	ctx.KVStore(k.storeKey).Set(types.ProposalCountKey, sdk.Uint64ToBigEndian(id))
	return id
}

// IterateProposals iterates proposals in ascending id order starting after the given id.
// When the callback returns true the iteration stops.
func (k Keeper) IterateProposals(ctx sdk.Context, startAfter uint64, cb func(p types.Proposal) bool) {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.ProposalPrefix)
	iter := store.Iterator(sdk.Uint64ToBigEndian(startAfter+1), nil)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var p types.Proposal
		mustUnmarshal(iter.Value(), &p)
		if cb(p) {
			return
		}
	}
}

// GetVote returns the vote of the voter on the proposal
func (k Keeper) GetVote(ctx sdk.Context, proposalID uint64, voter string) (types.VoteOption, bool) {
	bz := ctx.KVStore(k.storeKey).Get(types.GetProposalVoteKey(proposalID, voter))
	if bz == nil {
		return "", false
	}
	return types.VoteOption(bz), true
}

func (k Keeper) setVote(ctx sdk.Context, proposalID uint64, voter string, vote types.VoteOption) {
	ctx.KVStore(k.storeKey).Set(types.GetProposalVoteKey(proposalID, voter), []byte(vote))
}

// IterateVotes iterates the votes of a proposal ordered by voter, starting after the given voter.
// When the callback returns true the iteration stops.
func (k Keeper) IterateVotes(ctx sdk.Context, proposalID uint64, startAfter string, cb func(voter string, vote types.VoteOption) bool) {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.GetProposalVotesPrefix(proposalID))
	var start []byte
	if startAfter != "" {
		start = append([]byte(startAfter), 0x00)
	}
	iter := store.Iterator(start, nil)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		if cb(string(iter.Key()), types.VoteOption(iter.Value())) {
			return
		}
	}
}

// UserVotingPower returns the voting power of the voter for the proposal. It is the xASTRO balance
// plus the locked builder allocation one second before the proposal start.
func (k Keeper) UserVotingPower(ctx sdk.Context, voter string, p types.Proposal) (sdk.Int, error) {
	ts := p.SnapshotTime()
	power, err := k.tracker.BalanceAt(ctx, voter, ts)
	if err != nil {
		return sdk.Int{}, sdkerrors.Wrap(err, "xastro balance")
	}
	if k.builderUnlock == nil {
		return power, nil
	}
	locked, err := k.builderUnlock.VotingPowerAt(ctx, voter, ts)
	if err != nil {
		return sdk.Int{}, sdkerrors.Wrap(err, "builder allocation")
	}
	return power.Add(locked), nil
}

func (k Keeper) totalVotingPowerAt(ctx sdk.Context, ts uint64) (sdk.Int, error) {
	total, err := k.tracker.TotalSupplyAt(ctx, ts)
	if err != nil {
		return sdk.Int{}, sdkerrors.Wrap(err, "xastro supply")
	}
	if k.builderUnlock == nil {
		return total, nil
	}
	locked, err := k.builderUnlock.TotalVotingPowerAt(ctx, ts)
	if err != nil {
		return sdk.Int{}, sdkerrors.Wrap(err, "builder allocations")
	}
	return total.Add(locked), nil
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
