package app

import (
	"encoding/json"
	"testing"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	paramskeeper "github.com/cosmos/cosmos-sdk/x/params/keeper"
	transfertypes "github.com/cosmos/ibc-go/v2/modules/apps/transfer/types"
	channeltypes "github.com/cosmos/ibc-go/v2/modules/core/04-channel/types"
	porttypes "github.com/cosmos/ibc-go/v2/modules/core/05-port/types"
	ibcexported "github.com/cosmos/ibc-go/v2/modules/core/exported"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tmbytes "github.com/tendermint/tendermint/libs/bytes"

	"github.com/astroport/governance/testutil"
	assemblytypes "github.com/astroport/governance/x/assembly/types"
	"github.com/astroport/governance/x/channel"
	emissionskeeper "github.com/astroport/governance/x/emissions/keeper"
	emissionstypes "github.com/astroport/governance/x/emissions/types"
	outpostkeeper "github.com/astroport/governance/x/outpost/keeper"
	outposttypes "github.com/astroport/governance/x/outpost/types"
	vxastrotypes "github.com/astroport/governance/x/vxastro/types"
)

const (
	hubVotingChannel       = "channel-1"
	hubTransferChannel     = "channel-2"
	outpostVotingChannel   = "channel-0"
	outpostTransferChannel = "channel-3"
)

func TestHubOutpostRoundTrip(t *testing.T) {
	tracker := testutil.NewTrackerFake()
	staking := &emissionskeeper.StakingMock{}
	staking.SetRate(1_000_000, 1_000_000)
	hub, hubKeepers := setupHub(t, HubContracts{
		Tracker:    tracker,
		Staking:    staking,
		Factory:    &emissionskeeper.PoolFactoryMock{},
		Incentives: &emissionskeeper.IncentivesMock{},
	})
	outpostIncentives := &outpostkeeper.IncentivesMock{}
	remote, remoteKeepers := setupOutpost(t, outpostIncentives)
	connectChains(hub, remote)

	prefix := sdk.GetConfig().GetBech32AccountAddrPrefix()
	astroOnOutpost := transfertypes.ParseDenomTrace(
		transfertypes.GetPrefixedDenom(transfertypes.PortID, outpostTransferChannel, emissionstypes.DefaultAstroDenom),
	).IBCDenom()
	astroPool := testutil.RandomAddress(t).String()

	hubOwner := testutil.RandomAddress(t)
	emissionsGenesis := emissionstypes.DefaultGenesisState()
	emissionsGenesis.Params.Owner = hubOwner.String()
	emissionsGenesis.Outposts = []emissionstypes.OutpostInfo{{
		Prefix: prefix,
		Params: &emissionstypes.OutpostParams{
			EmissionsController: outposttypes.ModuleAddress().String(),
			VotingChannel:       hubVotingChannel,
			ICS20Channel:        hubTransferChannel,
		},
		AstroDenom:      astroOnOutpost,
		AstroPoolConfig: &emissionstypes.AstroPoolConfig{AstroPool: astroPool, Constant: sdk.NewInt(100)},
	}}
	hubGenesis := NewDefaultHubGenesisState()
	hubGenesis[emissionstypes.ModuleName] = mustMarshalJSON(emissionsGenesis)
	require.NoError(t, hubKeepers.InitGenesis(hub.ctx, hubGenesis))

	remoteOwner := testutil.RandomAddress(t)
	outpostGenesis := outposttypes.DefaultGenesisState()
	outpostGenesis.Params.Owner = remoteOwner.String()
	outpostGenesis.Params.AstroDenom = astroOnOutpost
	remoteGenesis := NewDefaultOutpostGenesisState()
	remoteGenesis[outposttypes.ModuleName] = mustMarshalJSON(outpostGenesis)
	require.NoError(t, remoteKeepers.InitGenesis(remote.ctx, remoteGenesis))

	_, err := remoteKeepers.Router().Handle(remote.ctx, outposttypes.ModuleName, remoteOwner, nil, mustMarshalJSON(outposttypes.ExecuteMsg{
		SetVotingChannel: &outposttypes.VotingChannelMsg{Channel: outpostVotingChannel},
	}))
	require.NoError(t, err)

	// the xASTRO of the outpost users is escrowed in the ICS20 channel on the hub
	escrow := transfertypes.GetEscrowAddress(transfertypes.PortID, hubTransferChannel)
	tracker.SetBalance(escrow.String(), 0, sdk.NewInt(10_000))

	remotePool := testutil.RandomAddress(t).String()
	payer := testutil.RandomAddress(t)
	fee := hubKeepers.Emissions.GetParams(hub.ctx).WhitelistingFee
	hub.bank.Fund(payer, fee)
	_, err = hubKeepers.Router().Handle(hub.ctx, emissionstypes.ModuleName, payer, sdk.NewCoins(fee), mustMarshalJSON(emissionstypes.ExecuteMsg{
		WhitelistPool: &emissionstypes.PoolMsg{Pool: remotePool},
	}))
	require.NoError(t, err)

	// when a user locks on the outpost
	voter := testutil.RandomAddress(t)
	lockCoin := sdk.NewCoin(vxastrotypes.DefaultLockDenom, sdk.NewInt(1000))
	remote.bank.Fund(voter, lockCoin)
	_, err = remoteKeepers.Router().Handle(remote.ctx, vxastrotypes.ModuleName, voter, sdk.NewCoins(lockCoin), mustMarshalJSON(vxastrotypes.ExecuteMsg{
		Lock: &struct{}{},
	}))
	require.NoError(t, err)
	// then the new power is relayed
	assert.NotNil(t, remoteKeepers.Outpost.GetUserStatus(remote.ctx, voter.String()).PendingMsg)
	acks := remote.relayTo(t, hub)
	require.Len(t, acks, 1)
	require.True(t, acks[0].Success(), string(acks[0].Acknowledgement()))
	assert.Equal(t, outposttypes.UserIbcStatus{}, remoteKeepers.Outpost.GetUserStatus(remote.ctx, voter.String()))

	// when the user votes on the outpost
	_, err = remoteKeepers.Router().Handle(remote.ctx, outposttypes.ModuleName, voter, nil, mustMarshalJSON(outposttypes.ExecuteMsg{
		Vote: &emissionstypes.VoteMsg{Votes: []emissionstypes.PoolVote{{Pool: remotePool, Weight: sdk.OneDec()}}},
	}))
	require.NoError(t, err)
	acks = remote.relayTo(t, hub)
	// then the vote is applied on the hub
	require.Len(t, acks, 1)
	require.True(t, acks[0].Success(), string(acks[0].Acknowledgement()))
	info, found := hubKeepers.Emissions.GetUserInfo(hub.ctx, voter.String())
	require.True(t, found)
	assert.Equal(t, "1000", info.VotingPower.String())
	assert.Equal(t, "1000", hubKeepers.Emissions.PoolPowerAt(hub.ctx, remotePool, uint64(hub.ctx.BlockTime().Unix())).String())

	// when the pools are tuned
	hub.bank.FundModule(emissionstypes.ModuleName, sdk.NewCoin(emissionstypes.DefaultAstroDenom, sdk.NewInt(100)))
	res, err := hubKeepers.Router().Handle(hub.ctx, emissionstypes.ModuleName, payer, nil, mustMarshalJSON(emissionstypes.ExecuteMsg{
		TunePools: &struct{}{},
	}))
	require.NoError(t, err)
	var tune emissionstypes.TuneInfo
	require.NoError(t, json.Unmarshal(res.Data, &tune))
	assert.Equal(t, emissionstypes.EmissionsStatusInProgress, tune.OutpostEmissionsStatuses[prefix])
	assert.Equal(t, "100"+emissionstypes.DefaultAstroDenom, hub.bank.Balances[escrow.String()].String())

	// then the emissions are scheduled on the outpost
	acks = hub.relayTo(t, remote)
	require.Len(t, acks, 1)
	require.True(t, acks[0].Success(), string(acks[0].Acknowledgement()))
	require.Len(t, outpostIncentives.Calls, 1)
	require.Len(t, outpostIncentives.Calls[0], 1)
	assert.Equal(t, astroPool, outpostIncentives.Calls[0][0].LpToken)
	assert.Equal(t, "100", outpostIncentives.Calls[0][0].Amount.String())
	assert.Equal(t, "100"+astroOnOutpost, remote.bank.ModuleBalance(outposttypes.ModuleName).String())
	// and the hub completes the tuning
	tune, found = hubKeepers.Emissions.GetTuneInfo(hub.ctx)
	require.True(t, found)
	assert.Equal(t, emissionstypes.EmissionsStatusDone, tune.OutpostEmissionsStatuses[prefix])

	// when a proposal is submitted on the hub
	hub.ctx = testutil.AdvanceTime(hub.ctx, time.Hour)
	remote.ctx = testutil.AdvanceTime(remote.ctx, time.Hour)
	submitter := testutil.RandomAddress(t)
	config := hubKeepers.Assembly.GetConfig(hub.ctx)
	deposit := sdk.NewCoin(config.DepositDenom, config.ProposalRequiredDeposit)
	hub.bank.Fund(submitter, deposit)
	_, err = hubKeepers.Router().Handle(hub.ctx, assemblytypes.ModuleName, submitter, sdk.NewCoins(deposit), mustMarshalJSON(assemblytypes.ExecuteMsg{
		SubmitProposal: &assemblytypes.SubmitProposalMsg{Title: "Raise emissions", Description: "More ASTRO for outposts"},
	}))
	require.NoError(t, err)
	proposalID := hubKeepers.Assembly.ProposalCount(hub.ctx)

	// and the outpost user votes for it
	_, err = remoteKeepers.Router().Handle(remote.ctx, outposttypes.ModuleName, voter, nil, mustMarshalJSON(outposttypes.ExecuteMsg{
		CastVote: &outposttypes.CastVoteMsg{ProposalID: proposalID, Vote: assemblytypes.VoteOptionFor},
	}))
	require.NoError(t, err)
	// then the outpost registers the proposal first
	acks = remote.relayTo(t, hub)
	require.Len(t, acks, 1)
	require.True(t, acks[0].Success(), string(acks[0].Acknowledgement()))
	_, cached := remoteKeepers.Outpost.GetCachedProposal(remote.ctx, proposalID)
	assert.True(t, cached)
	// and relays the queued vote with the power before the proposal start
	acks = remote.relayTo(t, hub)
	require.Len(t, acks, 1)
	require.True(t, acks[0].Success(), string(acks[0].Acknowledgement()))
	p, err := hubKeepers.Assembly.GetProposal(hub.ctx, proposalID)
	require.NoError(t, err)
	assert.Equal(t, "1000", p.OutpostForPower.String())
	assert.Equal(t, outposttypes.UserIbcStatus{}, remoteKeepers.Outpost.GetUserStatus(remote.ctx, voter.String()))
}

func TestHubRejectsVotingPowerAboveEscrow(t *testing.T) {
	tracker := testutil.NewTrackerFake()
	hub, hubKeepers := setupHub(t, HubContracts{
		Tracker:    tracker,
		Staking:    &emissionskeeper.StakingMock{},
		Factory:    &emissionskeeper.PoolFactoryMock{},
		Incentives: &emissionskeeper.IncentivesMock{},
	})
	remote, remoteKeepers := setupOutpost(t, &outpostkeeper.IncentivesMock{})
	connectChains(hub, remote)

	emissionsGenesis := emissionstypes.DefaultGenesisState()
	emissionsGenesis.Outposts = []emissionstypes.OutpostInfo{{
		Prefix: sdk.GetConfig().GetBech32AccountAddrPrefix(),
		Params: &emissionstypes.OutpostParams{
			EmissionsController: outposttypes.ModuleAddress().String(),
			VotingChannel:       hubVotingChannel,
			ICS20Channel:        hubTransferChannel,
		},
		AstroDenom: "ibc/astro",
	}}
	hubGenesis := NewDefaultHubGenesisState()
	hubGenesis[emissionstypes.ModuleName] = mustMarshalJSON(emissionsGenesis)
	require.NoError(t, hubKeepers.InitGenesis(hub.ctx, hubGenesis))

	outpostGenesis := outposttypes.DefaultGenesisState()
	outpostGenesis.VotingChannel = outpostVotingChannel
	remoteGenesis := NewDefaultOutpostGenesisState()
	remoteGenesis[outposttypes.ModuleName] = mustMarshalJSON(outpostGenesis)
	require.NoError(t, remoteKeepers.InitGenesis(remote.ctx, remoteGenesis))

	escrow := transfertypes.GetEscrowAddress(transfertypes.PortID, hubTransferChannel)
	tracker.SetBalance(escrow.String(), 0, sdk.NewInt(999))

	// when
	voter := testutil.RandomAddress(t)
	lockCoin := sdk.NewCoin(vxastrotypes.DefaultLockDenom, sdk.NewInt(1000))
	remote.bank.Fund(voter, lockCoin)
	_, err := remoteKeepers.Router().Handle(remote.ctx, vxastrotypes.ModuleName, voter, sdk.NewCoins(lockCoin), mustMarshalJSON(vxastrotypes.ExecuteMsg{
		Lock: &struct{}{},
	}))
	require.NoError(t, err)
	acks := remote.relayTo(t, hub)

	// then
	require.Len(t, acks, 1)
	assert.False(t, acks[0].Success())
	status := remoteKeepers.Outpost.GetUserStatus(remote.ctx, voter.String())
	assert.Nil(t, status.PendingMsg)
	require.NotNil(t, status.Error)
	assert.Contains(t, status.Error.Err, "voting power exceeds channel balance")
}

// testChain is an in memory chain with mocked IBC keepers. Packets are delivered by relayTo.
type testChain struct {
	ctx            sdk.Context
	bank           *testutil.BankKeeperMock
	channels       *channel.ChannelKeeperMock
	scoped         *channel.ScopedKeeperMock
	transferScoped *channel.ScopedKeeperMock
	ibcRouter      *porttypes.Router
	relayed        int
}

func newTestChain(t testing.TB, keys map[string]*sdk.KVStoreKey) (*testChain, paramskeeper.Keeper) {
	storeKeys := make([]sdk.StoreKey, 0, len(keys))
	for _, k := range keys {
		storeKeys = append(storeKeys, k)
	}
	ctx, paramsKeeper := testutil.NewContext(t, storeKeys...)
	return &testChain{
		ctx:            ctx,
		bank:           testutil.NewBankKeeperMock(),
		channels:       channel.NewChannelKeeperMock(),
		scoped:         channel.NewScopedKeeperMock(),
		transferScoped: channel.NewScopedKeeperMock(),
	}, paramsKeeper
}

func (c *testChain) ibcKeepers() IBCKeepers {
	return IBCKeepers{
		Channel:        c.channels,
		Port:           channel.PortKeeperMock{},
		Scoped:         c.scoped,
		TransferScoped: c.transferScoped,
		DenomTraces:    noDenomTraces{},
	}
}

func setupHub(t testing.TB, contracts HubContracts) (*testChain, HubKeepers) {
	keys := HubStoreKeys()
	chain, paramsKeeper := newTestChain(t, keys)
	keepers := NewHubKeepers(keys, paramsKeeper, chain.bank, contracts, chain.ibcKeepers(), nil)
	chain.ibcRouter = keepers.AddIBCRoutes(porttypes.NewRouter(), &transferStub{bank: chain.bank})
	return chain, keepers
}

func setupOutpost(t testing.TB, incentives outposttypes.Incentives) (*testChain, OutpostKeepers) {
	keys := OutpostStoreKeys()
	chain, paramsKeeper := newTestChain(t, keys)
	keepers := NewOutpostKeepers(keys, paramsKeeper, chain.bank, incentives, chain.ibcKeepers())
	chain.ibcRouter = keepers.AddIBCRoutes(porttypes.NewRouter(), &transferStub{bank: chain.bank})
	return chain, keepers
}

// connectChains opens the voting and the ICS20 channel between hub and outpost
func connectChains(hub, outpost *testChain) {
	hub.channels.OpenChannel(emissionstypes.PortID, hubVotingChannel, outposttypes.PortID, outpostVotingChannel, emissionstypes.Version)
	hub.scoped.ClaimChannel(emissionstypes.PortID, hubVotingChannel)
	hub.channels.OpenChannel(transfertypes.PortID, hubTransferChannel, transfertypes.PortID, outpostTransferChannel, transfertypes.Version)
	hub.transferScoped.ClaimChannel(transfertypes.PortID, hubTransferChannel)

	outpost.channels.OpenChannel(outposttypes.PortID, outpostVotingChannel, emissionstypes.PortID, hubVotingChannel, emissionstypes.Version)
	outpost.scoped.ClaimChannel(outposttypes.PortID, outpostVotingChannel)
	outpost.channels.OpenChannel(transfertypes.PortID, outpostTransferChannel, transfertypes.PortID, hubTransferChannel, transfertypes.Version)
	outpost.transferScoped.ClaimChannel(transfertypes.PortID, outpostTransferChannel)
}

// relayTo delivers the packets sent since the last call to the other chain and returns their acks
// to this chain. Packets sent while the acks are processed are left for the next call.
func (c *testChain) relayTo(t testing.TB, other *testChain) []ibcexported.Acknowledgement {
	t.Helper()
	end := len(c.channels.Sent)
	var acks []ibcexported.Acknowledgement
	for _, packet := range c.channels.Sent[c.relayed:end] {
		dst, ok := other.ibcRouter.GetRoute(packet.DestinationPort)
		require.True(t, ok, "no route for port %s", packet.DestinationPort)
		ack := dst.OnRecvPacket(other.ctx, packet, nil)
		src, ok := c.ibcRouter.GetRoute(packet.SourcePort)
		require.True(t, ok, "no route for port %s", packet.SourcePort)
		require.NoError(t, src.OnAcknowledgementPacket(c.ctx, packet, ack.Acknowledgement(), nil))
		acks = append(acks, ack)
	}
	c.relayed = end
	return acks
}

var _ porttypes.IBCModule = &transferStub{}

// transferStub credits received ICS20 vouchers like the transfer module does and accepts all acks
type transferStub struct {
	porttypes.IBCModule
	bank *testutil.BankKeeperMock
}

func (s *transferStub) OnRecvPacket(_ sdk.Context, packet channeltypes.Packet, _ sdk.AccAddress) ibcexported.Acknowledgement {
	var data transfertypes.FungibleTokenPacketData
	if err := transfertypes.ModuleCdc.UnmarshalJSON(packet.GetData(), &data); err != nil {
		return channel.NewErrorAck(err)
	}
	receiver, err := sdk.AccAddressFromBech32(data.Receiver)
	if err != nil {
		return channel.NewErrorAck(err)
	}
	voucher := transfertypes.ParseDenomTrace(
		transfertypes.GetPrefixedDenom(packet.GetDestPort(), packet.GetDestChannel(), data.Denom),
	).IBCDenom()
	amount, ok := sdk.NewIntFromString(data.Amount)
	if !ok {
		return channel.NewErrorAck(sdkerrors.Wrapf(sdkerrors.ErrInvalidCoins, "amount %s", data.Amount))
	}
	s.bank.Fund(receiver, sdk.NewCoin(voucher, amount))
	return channel.NewResultAck([]byte{byte(1)})
}

func (s *transferStub) OnAcknowledgementPacket(sdk.Context, channeltypes.Packet, []byte, sdk.AccAddress) error {
	return nil
}

func (s *transferStub) OnTimeoutPacket(sdk.Context, channeltypes.Packet, sdk.AccAddress) error {
	return nil
}

type noDenomTraces struct{}

func (noDenomTraces) GetDenomTrace(sdk.Context, tmbytes.HexBytes) (transfertypes.DenomTrace, bool) {
	return transfertypes.DenomTrace{}, false
}

func TestTributesClaimableAfterPoolWhitelistedAgain(t *testing.T) {
	hub, hubKeepers := setupHub(t, HubContracts{
		Tracker:    testutil.NewTrackerFake(),
		Staking:    &emissionskeeper.StakingMock{},
		Factory:    &emissionskeeper.PoolFactoryMock{},
		Incentives: &emissionskeeper.IncentivesMock{},
	})
	owner := testutil.RandomAddress(t)
	emissionsGenesis := emissionstypes.DefaultGenesisState()
	emissionsGenesis.Params.Owner = owner.String()
	emissionsGenesis.Outposts = []emissionstypes.OutpostInfo{{
		Prefix: sdk.GetConfig().GetBech32AccountAddrPrefix(),
		Params: &emissionstypes.OutpostParams{
			EmissionsController: outposttypes.ModuleAddress().String(),
			VotingChannel:       hubVotingChannel,
			ICS20Channel:        hubTransferChannel,
		},
		AstroDenom: "ibc/astro",
	}}
	hubGenesis := NewDefaultHubGenesisState()
	hubGenesis[emissionstypes.ModuleName] = mustMarshalJSON(emissionsGenesis)
	require.NoError(t, hubKeepers.InitGenesis(hub.ctx, hubGenesis))

	whitelist := func(ctx sdk.Context, pool string) {
		payer := testutil.RandomAddress(t)
		fee := hubKeepers.Emissions.GetParams(ctx).WhitelistingFee
		hub.bank.Fund(payer, fee)
		require.NoError(t, hubKeepers.Emissions.WhitelistPool(ctx, payer, sdk.NewCoins(fee), pool))
	}
	pool := testutil.RandomAddress(t).String()
	whitelist(hub.ctx, pool)

	voter := testutil.RandomAddress(t)
	lockCoin := sdk.NewCoin(vxastrotypes.DefaultLockDenom, sdk.NewInt(1000))
	hub.bank.Fund(voter, lockCoin)
	require.NoError(t, hubKeepers.VxAstro.Lock(hub.ctx, voter, lockCoin))
	require.NoError(t, hubKeepers.Emissions.Vote(hub.ctx, voter, []emissionstypes.PoolVote{{Pool: pool, Weight: sdk.OneDec()}}))

	reward := sdk.NewCoin("uusdc", sdk.NewInt(700))
	tributeFee := hubKeepers.Tributes.GetParams(hub.ctx).TributeFee
	depositor := testutil.RandomAddress(t)
	hub.bank.Fund(depositor, reward, tributeFee)
	require.NoError(t, hubKeepers.Tributes.AddTribute(hub.ctx, depositor, sdk.NewCoins(reward, tributeFee), pool, reward))

	// the pool leaves the whitelist after the epoch started and comes back later
	now := uint64(hub.ctx.BlockTime().Unix())
	epochTs := emissionstypes.NextEpochStart(now)
	hub.ctx = testutil.AdvanceTime(hub.ctx, time.Duration(epochTs-now+60)*time.Second)
	require.NoError(t, hubKeepers.Emissions.RemovePoolFromWhitelist(hub.ctx, owner, pool))
	hub.ctx = testutil.AdvanceTime(hub.ctx, time.Hour)
	whitelist(hub.ctx, pool)

	// when
	got, err := hubKeepers.Tributes.Claim(hub.ctx, voter, voter)

	// then
	require.NoError(t, err)
	assert.Equal(t, reward.String(), got.String())
	assert.Equal(t, reward.String(), hub.bank.GetBalance(hub.ctx, voter, reward.Denom).String())
}
