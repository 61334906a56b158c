package channel

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	capabilitytypes "github.com/cosmos/cosmos-sdk/x/capability/types"
	channeltypes "github.com/cosmos/ibc-go/v2/modules/core/04-channel/types"
	host "github.com/cosmos/ibc-go/v2/modules/core/24-host"
	ibcexported "github.com/cosmos/ibc-go/v2/modules/core/exported"
)

var _ ChannelKeeper = &ChannelKeeperMock{}

// ChannelKeeperMock keeps open channels and records all sent packets
type ChannelKeeperMock struct {
	Channels map[string]channeltypes.Channel
	Sent     []channeltypes.Packet
	// SendErr is returned by SendPacket when set
	SendErr error
}

func NewChannelKeeperMock() *ChannelKeeperMock {
	return &ChannelKeeperMock{Channels: make(map[string]channeltypes.Channel)}
}

// OpenChannel registers an open unordered channel with the given counterparty
func (m *ChannelKeeperMock) OpenChannel(portID, channelID, counterpartyPort, counterpartyChannel, version string) {
	m.Channels[portID+"/"+channelID] = channeltypes.NewChannel(
		channeltypes.OPEN,
		channeltypes.UNORDERED,
		channeltypes.NewCounterparty(counterpartyPort, counterpartyChannel),
		[]string{"connection-0"},
		version,
	)
}

func (m *ChannelKeeperMock) GetChannel(_ sdk.Context, srcPort, srcChan string) (channeltypes.Channel, bool) {
	ch, ok := m.Channels[srcPort+"/"+srcChan]
	return ch, ok
}

func (m *ChannelKeeperMock) GetNextSequenceSend(_ sdk.Context, portID, channelID string) (uint64, bool) {
	if _, ok := m.Channels[portID+"/"+channelID]; !ok {
		return 0, false
	}
	return uint64(len(m.Sent)) + 1, true
}

func (m *ChannelKeeperMock) SendPacket(_ sdk.Context, _ *capabilitytypes.Capability, packet ibcexported.PacketI) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	p, ok := packet.(channeltypes.Packet)
	if !ok {
		return fmt.Errorf("unexpected packet type: %T", packet)
	}
	m.Sent = append(m.Sent, p)
	return nil
}

// LastSent returns the latest sent packet
func (m *ChannelKeeperMock) LastSent() channeltypes.Packet {
	if len(m.Sent) == 0 {
		panic("no packets sent")
	}
	return m.Sent[len(m.Sent)-1]
}

var _ PortKeeper = PortKeeperMock{}

// PortKeeperMock hands out a new capability for every port
type PortKeeperMock struct{}

func (PortKeeperMock) BindPort(_ sdk.Context, portID string) *capabilitytypes.Capability {
	return capabilitytypes.NewCapability(uint64(len(portID)))
}

var _ ScopedKeeper = &ScopedKeeperMock{}

// ScopedKeeperMock keeps claimed capabilities by name
type ScopedKeeperMock struct {
	Caps map[string]*capabilitytypes.Capability
}

func NewScopedKeeperMock() *ScopedKeeperMock {
	return &ScopedKeeperMock{Caps: make(map[string]*capabilitytypes.Capability)}
}

// ClaimChannel claims a channel capability on the port
func (m *ScopedKeeperMock) ClaimChannel(portID, channelID string) {
	m.Caps[host.ChannelCapabilityPath(portID, channelID)] = capabilitytypes.NewCapability(uint64(len(m.Caps) + 1))
}

func (m *ScopedKeeperMock) GetCapability(_ sdk.Context, name string) (*capabilitytypes.Capability, bool) {
	c, ok := m.Caps[name]
	return c, ok
}

func (m *ScopedKeeperMock) AuthenticateCapability(_ sdk.Context, c *capabilitytypes.Capability, name string) bool {
	return m.Caps[name] == c
}

func (m *ScopedKeeperMock) ClaimCapability(_ sdk.Context, c *capabilitytypes.Capability, name string) error {
	if _, exists := m.Caps[name]; exists {
		return fmt.Errorf("capability %s already claimed", name)
	}
	m.Caps[name] = c
	return nil
}
