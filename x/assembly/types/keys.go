package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
)

const (
	// ModuleName is the name of the assembly module
	ModuleName = "assembly"

	// StoreKey is the string store representation
	StoreKey = ModuleName

	// RouterKey is the msg router key for the assembly module
	RouterKey = ModuleName
)

// nolint
var (
	ConfigKey          = []byte{0x01}
	ProposalCountKey   = []byte{0x02}
	ProposalPrefix     = []byte{0x03}
	ProposalVotePrefix = []byte{0x04}
)

// ModuleAddress is the address the assembly executes proposal messages with and holds deposits on
func ModuleAddress() sdk.AccAddress {
	return authtypes.NewModuleAddress(ModuleName)
}

// GetProposalKey returns the store key of a proposal
func GetProposalKey(id uint64) []byte {
	return append(append([]byte{}, ProposalPrefix...), sdk.Uint64ToBigEndian(id)...)
}

// GetProposalVotesPrefix returns the store key prefix of all votes of a proposal
func GetProposalVotesPrefix(id uint64) []byte {
	return append(append([]byte{}, ProposalVotePrefix...), sdk.Uint64ToBigEndian(id)...)
}

// GetProposalVoteKey returns the store key of a single vote. Voters are addresses of any chain.
func GetProposalVoteKey(id uint64, voter string) []byte {
	return append(GetProposalVotesPrefix(id), []byte(voter)...)
}
