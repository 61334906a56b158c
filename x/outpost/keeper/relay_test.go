package keeper

import (
	"encoding/json"
	"testing"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	clienttypes "github.com/cosmos/ibc-go/v2/modules/core/02-client/types"
	channeltypes "github.com/cosmos/ibc-go/v2/modules/core/04-channel/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroport/governance/testutil"
	assemblytypes "github.com/astroport/governance/x/assembly/types"
	"github.com/astroport/governance/x/channel"
	emissionstypes "github.com/astroport/governance/x/emissions/types"
	"github.com/astroport/governance/x/outpost/types"
)

func TestVoteSingleFlight(t *testing.T) {
	ctx, keepers := CreateDefaultTestInput(t)
	k := keepers.OutpostKeeper
	voter := testutil.RandomAddress(t)
	votes := []emissionstypes.PoolVote{{Pool: "factory/pool1", Weight: sdk.OneDec()}}

	err := k.Vote(ctx, voter, votes)
	require.ErrorIs(t, err, types.ErrNoVotingChannel)

	SetupVotingChannel(t, ctx, keepers)
	err = k.Vote(ctx, voter, votes)
	require.ErrorIs(t, err, types.ErrZeroVotingPower)

	// when
	LockTestPower(t, ctx, keepers, voter, 100)

	// then the lock is relayed
	require.Len(t, keepers.Channels.Sent, 1)
	sent := decodeSent(t, keepers.Channels.LastSent())
	require.NotNil(t, sent.UpdateUserVotes)
	assert.Equal(t, "100", sent.UpdateUserVotes.VotingPower.String())
	assert.False(t, sent.UpdateUserVotes.IsUnlock)

	// and no other message can be sent until the hub answered
	err = k.Vote(ctx, voter, votes)
	require.ErrorIs(t, err, types.ErrPendingUser)
	cacheCtx, _ := ctx.CacheContext()
	keepers.BankKeeper.Fund(voter, sdk.NewCoin("uxastro", sdk.NewInt(1)))
	err = keepers.VxAstroKeeper.Lock(cacheCtx, voter, sdk.NewCoin("uxastro", sdk.NewInt(1)))
	require.ErrorIs(t, err, types.ErrPendingUser)
	_, err = keepers.VxAstroKeeper.Unlock(cacheCtx, voter)
	require.ErrorIs(t, err, types.ErrPendingUser)
	require.ErrorIs(t, k.RefreshUserVotes(ctx, voter), types.ErrPendingUser)

	require.NoError(t, k.OnAcknowledgementPacket(ctx, keepers.Channels.LastSent(), channel.NewResultAck(nil).Acknowledgement()))
	assert.Equal(t, types.UserIbcStatus{}, k.GetUserStatus(ctx, voter.String()))

	// when
	err = k.Vote(ctx, voter, votes)

	// then
	require.NoError(t, err)
	sent = decodeSent(t, keepers.Channels.LastSent())
	require.NotNil(t, sent.Vote)
	assert.Equal(t, voter.String(), sent.Vote.Voter)
	assert.Equal(t, "100", sent.Vote.VotingPower.String())
	require.Len(t, sent.Vote.Votes, 1)
	status := k.GetUserStatus(ctx, voter.String())
	require.True(t, status.IsPending())
	assert.Equal(t, uint64(ctx.BlockTime().Unix()), status.PendingMsg.SentAt)
	assert.Nil(t, status.Error)

	err = k.Vote(ctx, voter, votes)
	require.ErrorIs(t, err, types.ErrPendingUser)
}

func TestVoteRejectsInvalidVotes(t *testing.T) {
	ctx, keepers := CreateDefaultTestInput(t)
	SetupVotingChannel(t, ctx, keepers)
	err := keepers.OutpostKeeper.Vote(ctx, testutil.RandomAddress(t), []emissionstypes.PoolVote{{Pool: "factory/pool1", Weight: sdk.NewDec(2)}})
	require.ErrorIs(t, err, emissionstypes.ErrInvalidVotes)
	assert.Empty(t, keepers.Channels.Sent)
}

func TestFailedMessages(t *testing.T) {
	specs := map[string]struct {
		unlock    bool
		fail      func(ctx sdk.Context, k Keeper, p channeltypes.Packet) error
		expErr    string
		expPower  string
		expUnlock bool
	}{
		"unlock timed out": {
			unlock: true,
			fail: func(ctx sdk.Context, k Keeper, p channeltypes.Packet) error {
				return k.OnTimeoutPacket(ctx, p)
			},
			expErr:   "timeout",
			expPower: "100",
		},
		"unlock rejected by hub": {
			unlock: true,
			fail: func(ctx sdk.Context, k Keeper, p channeltypes.Packet) error {
				return k.OnAcknowledgementPacket(ctx, p, channel.NewErrorAck(emissionstypes.ErrVotingPowerExceeded).Acknowledgement())
			},
			expErr:   emissionstypes.ErrVotingPowerExceeded.Error(),
			expPower: "100",
		},
		"unlock confirmed": {
			unlock: true,
			fail: func(ctx sdk.Context, k Keeper, p channeltypes.Packet) error {
				return k.OnAcknowledgementPacket(ctx, p, channel.NewResultAck(nil).Acknowledgement())
			},
			expPower:  "0",
			expUnlock: true,
		},
		"vote timed out": {
			fail: func(ctx sdk.Context, k Keeper, p channeltypes.Packet) error {
				return k.OnTimeoutPacket(ctx, p)
			},
			expErr:   "timeout",
			expPower: "100",
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, keepers := CreateDefaultTestInput(t)
			k := keepers.OutpostKeeper
			voter := testutil.RandomAddress(t)
			LockTestPower(t, ctx, keepers, voter, 100)
			SetupVotingChannel(t, ctx, keepers)
			if spec.unlock {
				_, err := keepers.VxAstroKeeper.Unlock(ctx, voter)
				require.NoError(t, err)
				assert.Equal(t, "0", keepers.VxAstroKeeper.VotingPower(ctx, voter).String())
			} else {
				require.NoError(t, k.Vote(ctx, voter, []emissionstypes.PoolVote{{Pool: "factory/pool1", Weight: sdk.OneDec()}}))
			}
			packet := keepers.Channels.LastSent()

			// when
			err := spec.fail(ctx, k, packet)

			// then
			require.NoError(t, err)
			status := k.GetUserStatus(ctx, voter.String())
			assert.False(t, status.IsPending())
			if spec.expErr != "" {
				require.NotNil(t, status.Error)
				assert.Equal(t, spec.expErr, status.Error.Err)
				assert.JSONEq(t, string(packet.GetData()), string(emissionstypes.MustMarshalJSON(status.Error.Msg)))
			} else {
				assert.Nil(t, status.Error)
			}
			assert.Equal(t, spec.expPower, keepers.VxAstroKeeper.VotingPower(ctx, voter).String())
			lock, found := keepers.VxAstroKeeper.GetLock(ctx, voter)
			require.True(t, found)
			assert.Equal(t, spec.expUnlock, lock.IsUnlocking())
			// the user can act again
			assert.NoError(t, k.RefreshUserVotes(ctx, voter))
		})
	}
}

func TestCastVoteRegistersProposal(t *testing.T) {
	ctx, keepers := CreateDefaultTestInput(t)
	k := keepers.OutpostKeeper
	alice, bob, late := testutil.RandomAddress(t), testutil.RandomAddress(t), testutil.RandomAddress(t)
	LockTestPower(t, ctx, keepers, alice, 100)
	LockTestPower(t, ctx, keepers, bob, 200)
	proposal := assemblytypes.ProposalSnapshot{ID: 1, StartTime: uint64(ctx.BlockTime().Unix()) + 1800}
	ctx = testutil.AdvanceTime(ctx, time.Hour)
	LockTestPower(t, ctx, keepers, late, 300)
	SetupVotingChannel(t, ctx, keepers)

	// when
	require.NoError(t, k.CastVote(ctx, alice, 1, assemblytypes.VoteOptionFor))
	require.NoError(t, k.CastVote(ctx, bob, 1, assemblytypes.VoteOptionAgainst))
	require.NoError(t, k.CastVote(ctx, late, 1, assemblytypes.VoteOptionFor))

	// then the proposal is registered once
	require.Len(t, keepers.Channels.Sent, 1)
	registration := keepers.Channels.LastSent()
	sent := decodeSent(t, registration)
	require.NotNil(t, sent.RegisterProposal)
	assert.Equal(t, uint64(1), sent.RegisterProposal.ProposalID)
	assert.True(t, k.GetUserStatus(ctx, alice.String()).IsPending())
	assert.True(t, k.GetUserStatus(ctx, bob.String()).IsPending())
	require.ErrorIs(t, k.CastVote(ctx, alice, 1, assemblytypes.VoteOptionAgainst), types.ErrPendingUser)

	// when the hub confirms the proposal
	ack := channel.NewResultAck(emissionstypes.MustMarshalJSON(proposal)).Acknowledgement()
	require.NoError(t, k.OnAcknowledgementPacket(ctx, registration, ack))

	// then the queued votes are sent with the power at the proposal snapshot
	cached, found := k.GetCachedProposal(ctx, 1)
	require.True(t, found)
	assert.Equal(t, proposal, cached)
	require.Len(t, keepers.Channels.Sent, 3)
	gotPowers := make(map[string]string)
	for _, p := range keepers.Channels.Sent[1:] {
		m := decodeSent(t, p)
		require.NotNil(t, m.CastVote)
		assert.Equal(t, uint64(1), m.CastVote.ProposalID)
		gotPowers[m.CastVote.Voter] = m.CastVote.VotingPower.String() + "/" + string(m.CastVote.Vote)
	}
	assert.Equal(t, map[string]string{alice.String(): "100/for", bob.String(): "200/against"}, gotPowers)
	assert.True(t, k.GetUserStatus(ctx, alice.String()).IsPending())
	assert.True(t, k.GetUserStatus(ctx, bob.String()).IsPending())

	// power locked after the proposal start does not count
	lateStatus := k.GetUserStatus(ctx, late.String())
	assert.False(t, lateStatus.IsPending())
	require.NotNil(t, lateStatus.Error)
	assert.Contains(t, lateStatus.Error.Err, types.ErrZeroVotingPower.Error())
	require.ErrorIs(t, k.CastVote(ctx, late, 1, assemblytypes.VoteOptionFor), types.ErrZeroVotingPower)

	// votes on a registered proposal are sent right away
	require.NoError(t, k.OnAcknowledgementPacket(ctx, keepers.Channels.Sent[1], channel.NewResultAck(nil).Acknowledgement()))
	require.NoError(t, k.OnAcknowledgementPacket(ctx, keepers.Channels.Sent[2], channel.NewResultAck(nil).Acknowledgement()))
	require.NoError(t, k.CastVote(ctx, alice, 1, assemblytypes.VoteOptionFor))
	assert.Len(t, keepers.Channels.Sent, 4)
}

func TestFailedProposalRegistration(t *testing.T) {
	specs := map[string]struct {
		fail   func(ctx sdk.Context, k Keeper, p channeltypes.Packet) error
		expErr string
	}{
		"unknown proposal": {
			fail: func(ctx sdk.Context, k Keeper, p channeltypes.Packet) error {
				return k.OnAcknowledgementPacket(ctx, p, channel.NewErrorAck(assemblytypes.ErrProposalNotFound).Acknowledgement())
			},
			expErr: assemblytypes.ErrProposalNotFound.Error(),
		},
		"timeout": {
			fail: func(ctx sdk.Context, k Keeper, p channeltypes.Packet) error {
				return k.OnTimeoutPacket(ctx, p)
			},
			expErr: "timeout",
		},
		"other proposal in result": {
			fail: func(ctx sdk.Context, k Keeper, p channeltypes.Packet) error {
				rsp := emissionstypes.MustMarshalJSON(assemblytypes.ProposalSnapshot{ID: 2, StartTime: 1})
				return k.OnAcknowledgementPacket(ctx, p, channel.NewResultAck(rsp).Acknowledgement())
			},
			expErr: "invalid proposal registration result",
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, keepers := CreateDefaultTestInput(t)
			k := keepers.OutpostKeeper
			voter := testutil.RandomAddress(t)
			LockTestPower(t, ctx, keepers, voter, 100)
			SetupVotingChannel(t, ctx, keepers)
			require.NoError(t, k.CastVote(ctx, voter, 7, assemblytypes.VoteOptionFor))

			// when
			err := spec.fail(ctx, k, keepers.Channels.LastSent())

			// then
			require.NoError(t, err)
			status := k.GetUserStatus(ctx, voter.String())
			assert.False(t, status.IsPending())
			require.NotNil(t, status.Error)
			assert.Equal(t, spec.expErr, status.Error.Err)
			require.NotNil(t, status.Error.Msg.CastVote)
			assert.Equal(t, uint64(7), status.Error.Msg.CastVote.ProposalID)
			_, cached := k.GetCachedProposal(ctx, 7)
			assert.False(t, cached)
			assert.False(t, k.hasPendingVotes(ctx, 7))

			// a new vote requests the registration again
			require.NoError(t, k.CastVote(ctx, voter, 7, assemblytypes.VoteOptionFor))
			assert.Len(t, keepers.Channels.Sent, 2)
		})
	}
}

func TestOnRecvHubPacket(t *testing.T) {
	ctx, keepers := CreateDefaultTestInput(t)
	k := keepers.OutpostKeeper
	voter := testutil.RandomAddress(t)
	LockTestPower(t, ctx, keepers, voter, 100)
	SetupVotingChannel(t, ctx, keepers)
	require.NoError(t, k.CastVote(ctx, voter, 3, assemblytypes.VoteOptionAgainst))
	snapshot := assemblytypes.ProposalSnapshot{ID: 3, StartTime: uint64(ctx.BlockTime().Unix()) + 1}
	announce := emissionstypes.MustMarshalJSON(emissionstypes.HubMsg{RegisterProposal: &snapshot})

	specs := map[string]struct {
		data       []byte
		channelID  string
		expSuccess bool
	}{
		"unknown channel": {
			data:      announce,
			channelID: "channel-9",
		},
		"malformed": {
			data:      []byte("not json"),
			channelID: TestVotingChannel,
		},
		"empty": {
			data:      []byte("{}"),
			channelID: TestVotingChannel,
		},
		"proposal announced": {
			data:       announce,
			channelID:  TestVotingChannel,
			expSuccess: true,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			packet := channeltypes.NewPacket(spec.data, 1, types.HubPortID, "channel-1", types.PortID, spec.channelID, clienttypes.NewHeight(0, 100), 0)
			cacheCtx, _ := ctx.CacheContext()

			// when
			ack := k.OnRecvHubPacket(cacheCtx, packet)

			// then
			assert.Equal(t, spec.expSuccess, ack.Success())
			_, cached := k.GetCachedProposal(cacheCtx, 3)
			assert.Equal(t, spec.expSuccess, cached)
			if !spec.expSuccess {
				return
			}
			// the queued vote went out
			sent := decodeSent(t, keepers.Channels.LastSent())
			require.NotNil(t, sent.CastVote)
			assert.Equal(t, assemblytypes.VoteOptionAgainst, sent.CastVote.Vote)
			assert.Equal(t, "100", sent.CastVote.VotingPower.String())
		})
	}
}

func decodeSent(t *testing.T, p channeltypes.Packet) emissionstypes.OutpostMsg {
	t.Helper()
	var msg emissionstypes.OutpostMsg
	require.NoError(t, json.Unmarshal(p.GetData(), &msg))
	return msg
}
