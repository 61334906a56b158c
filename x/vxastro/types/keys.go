package types

const (
	// ModuleName is the name of the vote escrow module
	ModuleName = "vxastro"

	// StoreKey is the string store representation
	StoreKey = ModuleName

	// RouterKey is the msg router key for the vote escrow module
	RouterKey = ModuleName
)

// nolint
var (
	LockPrefix             = []byte{0x01}
	UserPowerSeriesPrefix  = []byte{0x02}
	TotalPowerSeriesPrefix = []byte{0x03}
	BlacklistPrefix        = []byte{0x04}

	// TotalPowerSubject is the single subject of the total voting power series
	TotalPowerSubject = []byte("total")
)
