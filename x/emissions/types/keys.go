package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
)

const (
	// ModuleName is the name of the emissions controller module
	ModuleName = "emissions"

	// StoreKey is the string store representation
	StoreKey = ModuleName

	// RouterKey is the msg router key for the emissions module
	RouterKey = ModuleName

	// PortID is the IBC port outposts connect to
	PortID = ModuleName

	// OutpostPortID is the IBC port of the outpost module on remote chains
	OutpostPortID = "outpost"
)

// nolint
var (
	OutpostPrefix       = []byte{0x01}
	WhitelistPrefix     = []byte{0x02}
	PoolSeriesPrefix    = []byte{0x03}
	UserSeriesPrefix    = []byte{0x04}
	TuneSeriesPrefix    = []byte{0x05}
	PortKey             = []byte{0x06}
	TransferPrefix      = []byte{0x07}
	ChannelOutpostIndex = []byte{0x08}

	// TuneSubject is the single subject of the tune info series
	TuneSubject = []byte("tune")
)

// ModuleAddress is the address holding the ASTRO emissions and whitelisting fees in transit
func ModuleAddress() sdk.AccAddress {
	return authtypes.NewModuleAddress(ModuleName)
}

// GetOutpostKey returns the store key of an outpost
func GetOutpostKey(prefix string) []byte {
	return append(append([]byte{}, OutpostPrefix...), []byte(prefix)...)
}

// GetWhitelistKey returns the store key of a whitelisted pool
func GetWhitelistKey(pool string) []byte {
	return append(append([]byte{}, WhitelistPrefix...), []byte(pool)...)
}

// GetChannelOutpostKey returns the index key from a voting channel to its outpost
func GetChannelOutpostKey(channelID string) []byte {
	return append(append([]byte{}, ChannelOutpostIndex...), []byte(channelID)...)
}

// GetTransferKey returns the store key of an emissions transfer in flight
func GetTransferKey(channelID string, sequence uint64) []byte {
	r := append(append([]byte{}, TransferPrefix...), sdk.Uint64ToBigEndian(sequence)...)
	return append(r, []byte(channelID)...)
}
