package types

const (
	// EpochsStart is the start of the first epoch, Monday 2024-05-20 00:00 UTC
	EpochsStart uint64 = 1716163200
	// EpochLength is two weeks in seconds
	EpochLength uint64 = 14 * 86400
)

// EpochStart returns the start of the epoch the given time is in. Times before the first epoch map
// to the first epoch.
func EpochStart(ts uint64) uint64 {
	if ts <= EpochsStart {
		return EpochsStart
	}
	return ts - (ts-EpochsStart)%EpochLength
}

// NextEpochStart returns the start of the epoch after the one the given time is in
func NextEpochStart(ts uint64) uint64 {
	return EpochStart(ts) + EpochLength
}
