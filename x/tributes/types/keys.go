package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
)

const (
	// ModuleName is the name of the tributes module
	ModuleName = "tributes"

	// StoreKey is the string store representation
	StoreKey = ModuleName

	// RouterKey is the msg router key for the tributes module
	RouterKey = ModuleName
)

// nolint
var (
	TributePrefix   = []byte{0x01}
	LastClaimPrefix = []byte{0x02}
)

// ModuleAddress is the address holding the deposited tributes
func ModuleAddress() sdk.AccAddress {
	return authtypes.NewModuleAddress(ModuleName)
}

// GetEpochTributesPrefix returns the prefix of all tributes of an epoch
func GetEpochTributesPrefix(epochTs uint64) []byte {
	return append(append([]byte{}, TributePrefix...), sdk.Uint64ToBigEndian(epochTs)...)
}

// GetPoolTributesPrefix returns the prefix of all tributes of a pool in an epoch
func GetPoolTributesPrefix(epochTs uint64, lpToken string) []byte {
	return append(GetEpochTributesPrefix(epochTs), address.MustLengthPrefix([]byte(lpToken))...)
}

// GetTributeKey returns the store key of the tribute in the given denom
func GetTributeKey(epochTs uint64, lpToken, denom string) []byte {
	return append(GetPoolTributesPrefix(epochTs, lpToken), []byte(denom)...)
}

// SplitEpochTributeKey returns the pool and denom of a key relative to the epoch prefix
func SplitEpochTributeKey(key []byte) (lpToken, denom string) {
	n := int(key[0])
	return string(key[1 : 1+n]), string(key[1+n:])
}

// GetLastClaimKey returns the store key of the last epoch the user claimed
func GetLastClaimKey(user string) []byte {
	return append(append([]byte{}, LastClaimPrefix...), []byte(user)...)
}
