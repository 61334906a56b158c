package snapshot

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// PowerSeries is a Series of voting power amounts. Missing points read as zero power.
type PowerSeries struct {
	Series
}

// NewPowerSeries constructor
func NewPowerSeries(storeKey sdk.StoreKey, keyPrefix []byte) PowerSeries {
	return PowerSeries{Series: NewSeries(storeKey, keyPrefix)}
}

// RecordPower appends a power point for the subject
func (s PowerSeries) RecordPower(ctx sdk.Context, subject []byte, ts uint64, power sdk.Int) error {
	bz, err := power.Marshal()
	if err != nil {
		return err
	}
	return s.Record(ctx, subject, ts, bz)
}

// PowerAt returns the power of the subject at the given time or zero
func (s PowerSeries) PowerAt(ctx sdk.Context, subject []byte, ts uint64) sdk.Int {
	p, ok := s.AtOrBefore(ctx, subject, ts)
	if !ok {
		return sdk.ZeroInt()
	}
	return mustUnmarshalInt(p.Value)
}

// LatestPower returns the most recent power of the subject or zero
func (s PowerSeries) LatestPower(ctx sdk.Context, subject []byte) sdk.Int {
	p, ok := s.Latest(ctx, subject)
	if !ok {
		return sdk.ZeroInt()
	}
	return mustUnmarshalInt(p.Value)
}

func mustUnmarshalInt(bz []byte) sdk.Int {
	var r sdk.Int
	if err := r.Unmarshal(bz); err != nil {
		panic(fmt.Sprintf("corrupt power point: %s", err))
	}
	return r
}
