package domain

import (
	"slices"
	"time"
)

// Bucket is one time group of a view
type Bucket struct {
	Key        BucketKey
	Identities []string
	Start      int // flat position of the first identity
}

// Position locates an identity inside the grouping
type Position struct {
	Bucket int // index into ViewIndex.Buckets
	Offset int // index inside the bucket
}

// ViewIndex is the derived grouping of a (records, filter, direction) triple.
// It is immutable once built; any change to the inputs requires a new build.
type ViewIndex struct {
	Direction SortDirection
	Buckets   []Bucket
	Flat      []string

	positions map[string]int
	buckets   map[BucketKey]int
	records   map[string]*ImageRecord
}

type viewEntry struct {
	record *ImageRecord
	key    BucketKey
	at     time.Time
	known  bool
}

// BuildView groups the records accepted by filter into month buckets.
//
// Known buckets are ordered by (year, month) in the given direction and the
// unknown bucket is always last. Within a bucket records are ordered by
// timestamp in the given direction; ties and records without a timestamp keep
// their input order. Nil records, records with an empty identity and repeated
// identities (after the first) are ignored.
func BuildView(records []*ImageRecord, filter Filter, direction SortDirection) *ViewIndex {
	if filter == nil {
		filter = NoFilter
	}

	seen := make(map[string]struct{}, len(records))
	entries := make([]viewEntry, 0, len(records))
	for _, r := range records {
		if r == nil || r.Identity == "" {
			continue
		}
		if _, dup := seen[r.Identity]; dup {
			continue
		}
		seen[r.Identity] = struct{}{}
		if !filter(r) {
			continue
		}
		e := viewEntry{record: r, key: UnknownBucket}
		e.at, e.known = r.Timestamp()
		if e.known {
			e.key = BucketOf(e.at)
		}
		entries = append(entries, e)
	}

	slices.SortStableFunc(entries, func(a, b viewEntry) int {
		switch {
		case !a.known && !b.known:
			return 0
		case !a.known:
			return 1
		case !b.known:
			return -1
		}
		c := a.key.Compare(b.key)
		if c == 0 {
			c = a.at.Compare(b.at)
		}
		if direction == Descending {
			c = -c
		}
		return c
	})

	v := &ViewIndex{
		Direction: direction,
		Flat:      make([]string, 0, len(entries)),
		positions: make(map[string]int, len(entries)),
		buckets:   make(map[BucketKey]int),
		records:   make(map[string]*ImageRecord, len(entries)),
	}

	// Entries are sorted by bucket first, so every bucket is a contiguous run
	// and runs already appear in bucket order.
	for _, e := range entries {
		key := e.key
		if n := len(v.Buckets); n == 0 || v.Buckets[n-1].Key != key {
			v.buckets[key] = len(v.Buckets)
			v.Buckets = append(v.Buckets, Bucket{Key: key, Start: len(v.Flat)})
		}
		b := &v.Buckets[len(v.Buckets)-1]
		b.Identities = append(b.Identities, e.record.Identity)

		v.positions[e.record.Identity] = len(v.Flat)
		v.Flat = append(v.Flat, e.record.Identity)
		v.records[e.record.Identity] = e.record
	}

	return v
}

// Len returns the number of identities in the view
func (v *ViewIndex) Len() int {
	if v == nil {
		return 0
	}
	return len(v.Flat)
}

// IndexOf returns the flat position of identity
func (v *ViewIndex) IndexOf(identity string) (int, bool) {
	if v == nil {
		return 0, false
	}
	i, ok := v.positions[identity]
	return i, ok
}

// IdentityAt returns the identity at flat position i
func (v *ViewIndex) IdentityAt(i int) (string, bool) {
	if v == nil || i < 0 || i >= len(v.Flat) {
		return "", false
	}
	return v.Flat[i], true
}

// Record returns the record for identity, if it is part of the view
func (v *ViewIndex) Record(identity string) (*ImageRecord, bool) {
	if v == nil {
		return nil, false
	}
	r, ok := v.records[identity]
	return r, ok
}

// RecordAt returns the record at flat position i
func (v *ViewIndex) RecordAt(i int) (*ImageRecord, bool) {
	id, ok := v.IdentityAt(i)
	if !ok {
		return nil, false
	}
	return v.Record(id)
}

// Locate returns the bucket position of identity
func (v *ViewIndex) Locate(identity string) (Position, bool) {
	i, ok := v.IndexOf(identity)
	if !ok {
		return Position{}, false
	}
	return v.PositionAt(i)
}

// PositionAt converts a flat position into a bucket position
func (v *ViewIndex) PositionAt(i int) (Position, bool) {
	if v == nil || i < 0 || i >= len(v.Flat) {
		return Position{}, false
	}
	b, _ := slices.BinarySearchFunc(v.Buckets, i, func(b Bucket, target int) int {
		switch {
		case target < b.Start:
			return 1
		case target >= b.Start+len(b.Identities):
			return -1
		}
		return 0
	})
	return Position{Bucket: b, Offset: i - v.Buckets[b].Start}, true
}

// GlobalIndex converts a bucket position into a flat position
func (v *ViewIndex) GlobalIndex(p Position) (int, bool) {
	if v == nil || p.Bucket < 0 || p.Bucket >= len(v.Buckets) {
		return 0, false
	}
	b := v.Buckets[p.Bucket]
	if p.Offset < 0 || p.Offset >= len(b.Identities) {
		return 0, false
	}
	return b.Start + p.Offset, true
}

// Bucket returns the bucket with the given key, if present in the view
func (v *ViewIndex) Bucket(key BucketKey) (Bucket, bool) {
	if v == nil {
		return Bucket{}, false
	}
	if key.IsUnknown() {
		key = UnknownBucket
	}
	i, ok := v.buckets[key]
	if !ok {
		return Bucket{}, false
	}
	return v.Buckets[i], true
}

// Keys returns the bucket keys in view order
func (v *ViewIndex) Keys() []BucketKey {
	if v == nil {
		return nil
	}
	keys := make([]BucketKey, len(v.Buckets))
	for i, b := range v.Buckets {
		keys[i] = b.Key
	}
	return keys
}
