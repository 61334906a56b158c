package keeper

import (
	"encoding/json"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	transfertypes "github.com/cosmos/ibc-go/v2/modules/apps/transfer/types"
	clienttypes "github.com/cosmos/ibc-go/v2/modules/core/02-client/types"
	channeltypes "github.com/cosmos/ibc-go/v2/modules/core/04-channel/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroport/governance/testutil"
	assemblytypes "github.com/astroport/governance/x/assembly/types"
	"github.com/astroport/governance/x/channel"
	"github.com/astroport/governance/x/emissions/types"
)

func TestOnRecvOutpostPacket(t *testing.T) {
	pool := RandomAddressWithPrefix(t, TestRemotePrefix)
	remoteVoter := RandomAddressWithPrefix(t, TestRemotePrefix)
	escrow := transfertypes.GetEscrowAddress(transfertypes.PortID, TestICS20Channel)

	votePacket := func(power int64) types.OutpostMsg {
		return types.OutpostMsg{Vote: &types.VotePacket{
			Voter:       remoteVoter,
			VotingPower: sdk.NewInt(power),
			Votes:       []types.PoolVote{{Pool: pool, Weight: sdk.OneDec()}},
		}}
	}
	specs := map[string]struct {
		channel   string
		msg       interface{}
		jail      bool
		expResult string
		expErr    bool
		assert    func(t *testing.T, ctx sdk.Context, keepers TestKeepers, proposalID uint64)
	}{
		"vote within channel balance": {
			msg: votePacket(1000),
			assert: func(t *testing.T, ctx sdk.Context, keepers TestKeepers, _ uint64) {
				info, _ := keepers.EmissionsKeeper.GetPoolInfo(ctx, pool)
				assert.Equal(t, "1000", info.VotingPower.String())
				user, found := keepers.EmissionsKeeper.GetUserInfo(ctx, remoteVoter)
				require.True(t, found)
				assert.Equal(t, "1000", user.VotingPower.String())
			},
		},
		"vote above channel balance": {
			msg:    votePacket(1001),
			expErr: true,
		},
		"update user votes without vote": {
			msg: types.OutpostMsg{UpdateUserVotes: &types.UpdateUserVotesPacket{Voter: remoteVoter, VotingPower: sdk.NewInt(10)}},
			assert: func(t *testing.T, ctx sdk.Context, keepers TestKeepers, _ uint64) {
				_, found := keepers.EmissionsKeeper.GetUserInfo(ctx, remoteVoter)
				assert.False(t, found)
			},
		},
		"voter of other chain": {
			msg: types.OutpostMsg{Vote: &types.VotePacket{
				Voter:       RandomAddressWithPrefix(t, "osmo"),
				VotingPower: sdk.NewInt(1),
				Votes:       []types.PoolVote{{Pool: pool, Weight: sdk.OneDec()}},
			}},
			expErr: true,
		},
		"cast vote": {
			msg: "cast_vote",
			assert: func(t *testing.T, ctx sdk.Context, keepers TestKeepers, proposalID uint64) {
				vote, found := keepers.AssemblyKeeper.GetVote(ctx, proposalID, remoteVoter)
				require.True(t, found)
				assert.Equal(t, assemblytypes.VoteOptionFor, vote)
				p, err := keepers.AssemblyKeeper.GetProposal(ctx, proposalID)
				require.NoError(t, err)
				assert.Equal(t, "700", p.OutpostForPower.String())
			},
		},
		"register proposal": {
			msg:       "register_proposal",
			expResult: "snapshot",
		},
		"unknown proposal": {
			msg:    types.OutpostMsg{RegisterProposal: &types.RegisterProposalPacket{ProposalID: 99}},
			expErr: true,
		},
		"multiple messages": {
			msg: types.OutpostMsg{
				RegisterProposal: &types.RegisterProposalPacket{ProposalID: 1},
				Vote:             votePacket(1).Vote,
			},
			expErr: true,
		},
		"malformed packet": {
			msg:    "malformed",
			expErr: true,
		},
		"unknown channel": {
			channel: "channel-7",
			msg:     votePacket(1),
			expErr:  true,
		},
		"jailed outpost": {
			msg:    votePacket(1),
			jail:   true,
			expErr: true,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, keepers := CreateDefaultTestInput(t)
			outposts := SetupOutposts(t, ctx, keepers)
			WhitelistTestPool(t, ctx, keepers, pool)
			keepers.Tracker.SetBalance(escrow.String(), 1, sdk.NewInt(1000))
			proposalID := submitTestProposal(t, ctx, keepers)
			if spec.jail {
				require.NoError(t, keepers.EmissionsKeeper.JailOutpost(ctx, outposts.Owner, TestRemotePrefix))
			}
			var data []byte
			switch m := spec.msg.(type) {
			case types.OutpostMsg:
				data = types.MustMarshalJSON(m)
			case string:
				switch m {
				case "cast_vote":
					data = types.MustMarshalJSON(types.OutpostMsg{CastVote: &types.CastVotePacket{
						ProposalID:  proposalID,
						Voter:       remoteVoter,
						Vote:        assemblytypes.VoteOptionFor,
						VotingPower: sdk.NewInt(700),
					}})
				case "register_proposal":
					data = types.MustMarshalJSON(types.OutpostMsg{RegisterProposal: &types.RegisterProposalPacket{ProposalID: proposalID}})
				default:
					data = []byte("{not json")
				}
			}
			destChannel := TestVotingChannel
			if spec.channel != "" {
				destChannel = spec.channel
			}
			packet := channeltypes.NewPacket(data, 1, TestControllerPort, "channel-9", types.PortID, destChannel, clienttypes.NewHeight(0, 100), 0)
			em := sdk.NewEventManager()

			// when
			ack := keepers.EmissionsKeeper.OnRecvOutpostPacket(ctx.WithEventManager(em), packet)

			// then
			result, ackErr, err := channel.ParseAck(ack.Acknowledgement())
			require.NoError(t, err)
			if spec.expErr {
				assert.False(t, ack.Success())
				assert.NotEmpty(t, ackErr)
				_, found := keepers.EmissionsKeeper.GetUserInfo(ctx, remoteVoter)
				assert.False(t, found)
				require.Len(t, em.Events(), 1)
				assert.Equal(t, types.EventTypePacket, em.Events()[0].Type)
				return
			}
			require.True(t, ack.Success(), ackErr)
			if spec.expResult != "" {
				p, err := keepers.AssemblyKeeper.GetProposal(ctx, proposalID)
				require.NoError(t, err)
				var got assemblytypes.ProposalSnapshot
				require.NoError(t, json.Unmarshal(result, &got))
				assert.Equal(t, assemblytypes.ProposalSnapshot{ID: proposalID, StartTime: p.StartTime}, got)
			}
			if spec.assert != nil {
				spec.assert(t, ctx, keepers, proposalID)
			}
			msg, broken := VoteConservationInvariant(keepers.EmissionsKeeper)(ctx)
			assert.False(t, broken, msg)
		})
	}
}

func TestRemoteVoteRefresh(t *testing.T) {
	ctx, keepers := CreateDefaultTestInput(t)
	SetupOutposts(t, ctx, keepers)
	pool := RandomAddressWithPrefix(t, TestRemotePrefix)
	WhitelistTestPool(t, ctx, keepers, pool)
	escrow := transfertypes.GetEscrowAddress(transfertypes.PortID, TestICS20Channel)
	keepers.Tracker.SetBalance(escrow.String(), 1, sdk.NewInt(1000))
	voter := RandomAddressWithPrefix(t, TestRemotePrefix)
	recv := func(msg types.OutpostMsg) channeltypes.Acknowledgement {
		packet := channeltypes.NewPacket(types.MustMarshalJSON(msg), 1, TestControllerPort, "channel-9", types.PortID, TestVotingChannel, clienttypes.NewHeight(0, 100), 0)
		return keepers.EmissionsKeeper.OnRecvOutpostPacket(ctx, packet)
	}
	ack := recv(types.OutpostMsg{Vote: &types.VotePacket{Voter: voter, VotingPower: sdk.NewInt(800), Votes: []types.PoolVote{{Pool: pool, Weight: sdk.OneDec()}}}})
	require.True(t, ack.Success())

	// unlock on the outpost
	ack = recv(types.OutpostMsg{UpdateUserVotes: &types.UpdateUserVotesPacket{Voter: voter, VotingPower: sdk.ZeroInt(), IsUnlock: true}})
	require.True(t, ack.Success())
	info, _ := keepers.EmissionsKeeper.GetPoolInfo(ctx, pool)
	assert.Equal(t, "0", info.VotingPower.String())

	// the channel balance caps refreshes too
	ack = recv(types.OutpostMsg{UpdateUserVotes: &types.UpdateUserVotesPacket{Voter: voter, VotingPower: sdk.NewInt(1001)}})
	require.False(t, ack.Success())
	info, _ = keepers.EmissionsKeeper.GetPoolInfo(ctx, pool)
	assert.Equal(t, "0", info.VotingPower.String())
}

func TestRegisterProposal(t *testing.T) {
	ctx, keepers := CreateDefaultTestInput(t)
	outposts := SetupOutposts(t, ctx, keepers)
	k := keepers.EmissionsKeeper
	// an outpost without an open channel is skipped
	require.NoError(t, k.UpdateOutpost(ctx, outposts.Owner, types.OutpostInfo{
		Prefix: "osmo",
		Params: &types.OutpostParams{
			EmissionsController: RandomAddressWithPrefix(t, "osmo"),
			VotingChannel:       "channel-5",
			ICS20Channel:        "channel-6",
		},
		AstroDenom: "ibc/osmoastro",
	}))
	proposalID := submitTestProposal(t, ctx, keepers)

	// when
	err := k.RegisterProposal(ctx, proposalID)

	// then
	require.NoError(t, err)
	require.Len(t, keepers.Channels.Sent, 1)
	packet := keepers.Channels.LastSent()
	assert.Equal(t, TestVotingChannel, packet.SourceChannel)
	p, err := keepers.AssemblyKeeper.GetProposal(ctx, proposalID)
	require.NoError(t, err)
	exp := types.HubMsg{RegisterProposal: &assemblytypes.ProposalSnapshot{ID: proposalID, StartTime: p.StartTime}}
	assert.JSONEq(t, string(types.MustMarshalJSON(exp)), string(packet.GetData()))

	err = k.RegisterProposal(ctx, proposalID+1)
	require.ErrorIs(t, err, assemblytypes.ErrProposalNotFound)

	// acks are only logged
	require.NoError(t, k.OnRegisterProposalAck(ctx, packet, channel.NewErrorAck(assemblytypes.ErrProposalNotFound).Acknowledgement()))
	require.Error(t, k.OnRegisterProposalAck(ctx, packet, []byte("not an ack")))
}

func submitTestProposal(t *testing.T, ctx sdk.Context, keepers TestKeepers) uint64 {
	t.Helper()
	submitter := testutil.RandomAddress(t)
	deposit := sdk.NewCoin("uxastro", sdk.NewInt(assemblytypes.DepositIntervalStart))
	keepers.BankKeeper.Fund(submitter, deposit)
	id, err := keepers.AssemblyKeeper.SubmitProposal(ctx, submitter, sdk.NewCoins(deposit), assemblytypes.SubmitProposalMsg{
		Title:       "Outpost votes",
		Description: "Relayed from outposts",
	})
	require.NoError(t, err)
	return id
}
