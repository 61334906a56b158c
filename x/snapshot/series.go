package snapshot

import (
	"math"

	"github.com/cosmos/cosmos-sdk/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// Point is a single entry of a subject's time series
type Point struct {
	Timestamp uint64
	Value     []byte
}

// Series is a per subject time series persisted under a fixed key prefix.
//
// Layout: prefix | len(subject) | subject | big endian timestamp
//
// Write rules:
//   - a timestamp after the subject's latest point appends a new point
//   - the timestamp of the latest point replaces the value of that point. All transactions of a
//     block share the block time, so the state "at T" is the state after the last write at T and
//     the earlier values of T are not kept
//   - a timestamp before the latest point is rejected with ErrNonMonotonic
type Series struct {
	storeKey sdk.StoreKey
	prefix   []byte
}

// NewSeries constructor
func NewSeries(storeKey sdk.StoreKey, keyPrefix []byte) Series {
	return Series{storeKey: storeKey, prefix: keyPrefix}
}

// Record appends a point for the subject or replaces the value of its latest point when ts is equal.
func (s Series) Record(ctx sdk.Context, subject []byte, ts uint64, value []byte) error {
	if len(subject) == 0 {
		return ErrEmptySubject
	}
	if latest, ok := s.Latest(ctx, subject); ok && ts < latest.Timestamp {
		return sdkerrors.Wrapf(ErrNonMonotonic, "got %d, latest %d", ts, latest.Timestamp)
	}
	s.subjectStore(ctx, subject).Set(sdk.Uint64ToBigEndian(ts), value)
	return nil
}

// AtOrBefore returns the latest point with a timestamp lower or equal to ts.
func (s Series) AtOrBefore(ctx sdk.Context, subject []byte, ts uint64) (Point, bool) {
	var end []byte
	if ts != math.MaxUint64 {
		end = sdk.Uint64ToBigEndian(ts + 1)
	}
	iter := s.subjectStore(ctx, subject).ReverseIterator(nil, end)
	defer iter.Close()
	if !iter.Valid() {
		return Point{}, false
	}
	return Point{Timestamp: sdk.BigEndianToUint64(iter.Key()), Value: iter.Value()}, true
}

// Latest returns the most recent point of the subject
func (s Series) Latest(ctx sdk.Context, subject []byte) (Point, bool) {
	return s.AtOrBefore(ctx, subject, math.MaxUint64)
}

// First returns the oldest point of the subject
func (s Series) First(ctx sdk.Context, subject []byte) (Point, bool) {
	iter := s.subjectStore(ctx, subject).Iterator(nil, nil)
	defer iter.Close()
	if !iter.Valid() {
		return Point{}, false
	}
	return Point{Timestamp: sdk.BigEndianToUint64(iter.Key()), Value: iter.Value()}, true
}

// IteratePoints iterates all points of a subject in ascending time order.
// When the callback returns true the iteration stops.
func (s Series) IteratePoints(ctx sdk.Context, subject []byte, cb func(Point) bool) {
	iter := s.subjectStore(ctx, subject).Iterator(nil, nil)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		if cb(Point{Timestamp: sdk.BigEndianToUint64(iter.Key()), Value: iter.Value()}) {
			return
		}
	}
}

// IterateSubjects iterates all points of all subjects in key order. Subjects are visited in
// (length, bytes) order.
func (s Series) IterateSubjects(ctx sdk.Context, cb func(subject []byte, p Point) bool) {
	iter := prefix.NewStore(ctx.KVStore(s.storeKey), s.prefix).Iterator(nil, nil)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		key := iter.Key()
		subjectLen := int(key[0])
		subject := key[1 : 1+subjectLen]
		ts := sdk.BigEndianToUint64(key[1+subjectLen:])
		if cb(subject, Point{Timestamp: ts, Value: iter.Value()}) {
			return
		}
	}
}

// IterateLatest visits every subject once with its most recent point.
func (s Series) IterateLatest(ctx sdk.Context, cb func(subject []byte, p Point) bool) {
	var (
		current []byte
		last    Point
		stopped bool
	)
	s.IterateSubjects(ctx, func(subject []byte, p Point) bool {
		if current != nil && string(current) != string(subject) {
			if cb(current, last) {
				stopped = true
				return true
			}
		}
		current = append([]byte{}, subject...)
		last = Point{Timestamp: p.Timestamp, Value: append([]byte{}, p.Value...)}
		return false
	})
	if !stopped && current != nil {
		cb(current, last)
	}
}

func (s Series) subjectStore(ctx sdk.Context, subject []byte) prefix.Store {
	return prefix.NewStore(ctx.KVStore(s.storeKey), append(append([]byte{}, s.prefix...), address.MustLengthPrefix(subject)...))
}
