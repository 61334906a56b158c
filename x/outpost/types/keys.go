package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
)

const (
	// ModuleName is the name of the outpost module
	ModuleName = "outpost"

	// StoreKey is the string store representation
	StoreKey = ModuleName

	// RouterKey is the msg router key for the outpost module
	RouterKey = ModuleName

	// PortID is the IBC port of the outpost
	PortID = ModuleName

	// HubPortID is the IBC port of the emissions controller on the hub
	HubPortID = "emissions"
)

// nolint
var (
	UserStatusPrefix     = []byte{0x01}
	ProposalsCachePrefix = []byte{0x02}
	PendingVotesPrefix   = []byte{0x03}
	VotingChannelKey     = []byte{0x04}
)

// ModuleAddress is the address that receives the emissions of the hub
func ModuleAddress() sdk.AccAddress {
	return authtypes.NewModuleAddress(ModuleName)
}

// GetUserStatusKey returns the store key of the IBC status of a user
func GetUserStatusKey(user string) []byte {
	return append(append([]byte{}, UserStatusPrefix...), []byte(user)...)
}

// GetProposalCacheKey returns the store key of a proposal registered at the hub
func GetProposalCacheKey(proposalID uint64) []byte {
	return append(append([]byte{}, ProposalsCachePrefix...), sdk.Uint64ToBigEndian(proposalID)...)
}

// GetPendingVotesPrefix returns the prefix of all votes queued for a proposal
func GetPendingVotesPrefix(proposalID uint64) []byte {
	return append(append([]byte{}, PendingVotesPrefix...), sdk.Uint64ToBigEndian(proposalID)...)
}

// GetPendingVoteKey returns the store key of a vote waiting for the proposal registration
func GetPendingVoteKey(proposalID uint64, voter string) []byte {
	return append(GetPendingVotesPrefix(proposalID), []byte(voter)...)
}
