package domain

import (
	"slices"
	"testing"
	"time"
)

func navRecords() []*ImageRecord {
	return []*ImageRecord{
		rec("a", "2023-05-01", ""),
		rec("b", "2023-05-15", ""),
		rec("c", "", ""),
		rec("d", "2022-12-24", ""),
	}
}

func TestResolve(t *testing.T) {
	v := BuildView(navRecords(), NoFilter, Descending)

	tests := []struct {
		name     string
		selector BucketKey
		matching []string
		anchor   string
	}{
		{name: "month", selector: BucketKey{Year: 2023, Month: time.May}, matching: []string{"b", "a"}, anchor: "b"},
		{name: "unknown", selector: UnknownBucket, matching: []string{"c"}, anchor: "c"},
		{name: "no match", selector: BucketKey{Year: 1999, Month: time.March}},
		{name: "month out of range", selector: BucketKey{Year: 2023, Month: 13}},
		{name: "month zero with a year", selector: BucketKey{Year: 2023}},
		{name: "negative year", selector: BucketKey{Year: -1, Month: time.May}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(v, tt.selector)
			if !slices.Equal(res.Matching, tt.matching) {
				t.Errorf("Matching = %v, want %v", res.Matching, tt.matching)
			}
			if res.Anchor != tt.anchor {
				t.Errorf("Anchor = %q, want %q", res.Anchor, tt.anchor)
			}
		})
	}
}

func TestResolve_FollowsViewOrder(t *testing.T) {
	v := BuildView(navRecords(), NoFilter, Ascending)
	res := Resolve(v, BucketKey{Year: 2023, Month: time.May})
	if res.Anchor != "a" {
		t.Errorf("expected anchor a in ascending view, got %q", res.Anchor)
	}
}

func TestNavigator_Toggle(t *testing.T) {
	v := BuildView(navRecords(), NoFilter, Descending)
	may := BucketKey{Year: 2023, Month: time.May}

	var nav Navigator
	first := nav.Select(v, may)
	if !first.Found() || first.Deselected {
		t.Fatalf("expected a match on first select, got %+v", first)
	}

	second := nav.Select(v, may)
	if !second.Deselected || second.Found() || second.Anchor != "" {
		t.Errorf("expected deselected result on second select, got %+v", second)
	}
	if _, active := nav.Active(); active {
		t.Error("expected no active selection after toggle")
	}

	// A different selector in between breaks the toggle
	nav.Select(v, may)
	nav.Select(v, UnknownBucket)
	third := nav.Select(v, may)
	if !third.Found() {
		t.Errorf("expected a match after selecting another bucket, got %+v", third)
	}
}

func TestNavigator_InvalidSelector(t *testing.T) {
	v := BuildView(navRecords(), NoFilter, Descending)

	var nav Navigator
	nav.Select(v, UnknownBucket)

	res := nav.Select(v, BucketKey{Year: 2023, Month: 13})
	if res.Found() || res.Deselected {
		t.Errorf("invalid selector should match nothing, got %+v", res)
	}
	if key, active := nav.Active(); !active || key != UnknownBucket {
		t.Errorf("invalid selector changed the active bucket to %v (%v)", key, active)
	}
}

func TestTimeline(t *testing.T) {
	v := BuildView(navRecords(), NoFilter, Descending)
	points := Timeline(v)

	if len(points) != 3 {
		t.Fatalf("expected 3 time points, got %d", len(points))
	}
	if points[0].Count != 2 || points[0].Anchor != "b" {
		t.Errorf("unexpected first point %+v", points[0])
	}
	if !points[2].Key.IsUnknown() {
		t.Errorf("expected unknown last, got %+v", points[2])
	}
	if Timeline(nil) != nil {
		t.Error("expected nil timeline for nil view")
	}
}

func TestCursor(t *testing.T) {
	records := navRecords()
	v := BuildView(records, NoFilter, Descending) // b a d c

	var c Cursor
	if c.Next(v) {
		t.Error("closed cursor must not move")
	}
	if !c.Open(v, "a") || c.Index() != 1 {
		t.Fatalf("expected a at 1, got %d", c.Index())
	}
	if !c.Next(v) {
		t.Fatal("expected to move to d")
	}
	if id, _ := c.Identity(); id != "d" {
		t.Errorf("expected d, got %s", id)
	}

	c.Prev(v)
	c.Prev(v)
	if c.Prev(v) {
		t.Error("expected Prev to stop at the start")
	}

	// Re-sorting keeps the identity
	c.Open(v, "a")
	asc := BuildView(records, NoFilter, Ascending) // d a b c
	c.Rebase(asc)
	if id, _ := c.Identity(); id != "a" || c.Index() != 1 {
		t.Errorf("expected a at 1 after rebase, got %s at %d", id, c.Index())
	}

	// Filtering the photo out clamps
	c.Open(asc, "c")
	notes := BuildView(append(records, withNotes(rec("n", "2020-01-01", ""), "x")), HasNotes, Ascending)
	c.Rebase(notes)
	if id, _ := c.Identity(); id != "n" {
		t.Errorf("expected clamp to n, got %s", id)
	}

	c.Rebase(BuildView(nil, nil, Ascending))
	if c.IsOpen() {
		t.Error("expected cursor to close on empty view")
	}
}
