package domain

import (
	"fmt"
	"slices"
	"testing"
)

func rec(id, date, model string) *ImageRecord {
	return NewImageRecord(id, Intrinsic{Name: id, DateCreated: date, Model: model}, nil)
}

func withNotes(r *ImageRecord, notes string) *ImageRecord {
	r.Override.Notes = String(notes)
	return r
}

func bucketNames(v *ViewIndex) []string {
	var names []string
	for _, k := range v.Keys() {
		names = append(names, k.String())
	}
	return names
}

func TestBuildView_Scenario(t *testing.T) {
	records := []*ImageRecord{
		rec("a", "2023-05-01", "X"),
		rec("b", "2023-05-15", "Y"),
		rec("c", "unknown", ""),
	}

	v := BuildView(records, NoFilter, Descending)

	if got := bucketNames(v); !slices.Equal(got, []string{"2023-5", "unknown"}) {
		t.Errorf("expected buckets [2023-5 unknown], got %v", got)
	}
	if got := v.Buckets[0].Identities; !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("expected bucket 2023-5 = [b a], got %v", got)
	}
	if !slices.Equal(v.Flat, []string{"b", "a", "c"}) {
		t.Errorf("expected flat [b a c], got %v", v.Flat)
	}
}

func TestBuildView_UnknownAlwaysLast(t *testing.T) {
	records := []*ImageRecord{
		rec("u1", "", ""),
		rec("old", "2001-01-10", ""),
		rec("u2", "garbage", ""),
		rec("new", "2024-08-03", ""),
	}

	for _, dir := range []SortDirection{Ascending, Descending} {
		t.Run(dir.String(), func(t *testing.T) {
			v := BuildView(records, NoFilter, dir)
			last := v.Buckets[len(v.Buckets)-1]
			if !last.Key.IsUnknown() {
				t.Fatalf("expected unknown bucket last, got %v", bucketNames(v))
			}
			if !slices.Equal(last.Identities, []string{"u1", "u2"}) {
				t.Errorf("expected unknown records in input order, got %v", last.Identities)
			}
		})
	}
}

func TestBuildView_BucketOrderFollowsDirection(t *testing.T) {
	records := []*ImageRecord{
		rec("a", "2022-03-01", ""),
		rec("b", "2023-01-01", ""),
		rec("c", "2022-11-20", ""),
	}

	asc := BuildView(records, NoFilter, Ascending)
	if got := bucketNames(asc); !slices.Equal(got, []string{"2022-3", "2022-11", "2023-1"}) {
		t.Errorf("ascending buckets = %v", got)
	}

	desc := BuildView(records, NoFilter, Descending)
	if got := bucketNames(desc); !slices.Equal(got, []string{"2023-1", "2022-11", "2022-3"}) {
		t.Errorf("descending buckets = %v", got)
	}
}

func TestBuildView_MixedOffsetsStayContiguous(t *testing.T) {
	// "late" is in June by its own clock but earlier than "may" as an instant
	records := []*ImageRecord{
		rec("may", "2023-05-31T23:00:00Z", ""),
		rec("late", "2023-06-01T00:30:00+02:00", ""),
		rec("may2", "2023-05-02", ""),
	}

	v := BuildView(records, NoFilter, Descending)
	if got := bucketNames(v); !slices.Equal(got, []string{"2023-6", "2023-5"}) {
		t.Errorf("expected each month once, got %v", got)
	}
}

func TestBuildView_Completeness(t *testing.T) {
	var records []*ImageRecord
	for i := 0; i < 50; i++ {
		date := fmt.Sprintf("20%02d-%02d-%02d", 10+i%5, 1+i%12, 1+i%28)
		if i%7 == 0 {
			date = Unknown
		}
		r := rec(fmt.Sprintf("img-%02d", i), date, "")
		if i%3 == 0 {
			withNotes(r, "note")
		}
		records = append(records, r)
	}

	tests := []struct {
		name   string
		filter Filter
	}{
		{name: "no filter", filter: NoFilter},
		{name: "has notes", filter: HasNotes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := BuildView(records, tt.filter, Descending)

			want := make(map[string]bool)
			for _, r := range records {
				if tt.filter(r) {
					want[r.Identity] = true
				}
			}

			got := make(map[string]int)
			for _, b := range v.Buckets {
				for _, id := range b.Identities {
					got[id]++
				}
			}

			if len(got) != len(want) {
				t.Fatalf("expected %d identities, got %d", len(want), len(got))
			}
			for id, n := range got {
				if n != 1 {
					t.Errorf("identity %s appears %d times", id, n)
				}
				if !want[id] {
					t.Errorf("identity %s should have been filtered out", id)
				}
			}
		})
	}
}

func TestBuildView_FlatAndBucketAgree(t *testing.T) {
	records := []*ImageRecord{
		rec("a", "2023-05-01", ""),
		rec("b", "2023-04-15", ""),
		rec("c", "", ""),
		rec("d", "2023-05-20", ""),
		rec("e", "2021-01-01", ""),
	}
	v := BuildView(records, NoFilter, Ascending)

	for i, id := range v.Flat {
		idx, ok := v.IndexOf(id)
		if !ok || idx != i {
			t.Errorf("IndexOf(%s) = %d, %v; want %d", id, idx, ok, i)
		}

		pos, ok := v.Locate(id)
		if !ok {
			t.Fatalf("Locate(%s) failed", id)
		}
		if v.Buckets[pos.Bucket].Identities[pos.Offset] != id {
			t.Errorf("Locate(%s) = %+v points at %s", id, pos, v.Buckets[pos.Bucket].Identities[pos.Offset])
		}

		back, ok := v.GlobalIndex(pos)
		if !ok || back != i {
			t.Errorf("GlobalIndex(%+v) = %d, %v; want %d", pos, back, ok, i)
		}
	}
}

func TestBuildView_Deterministic(t *testing.T) {
	records := []*ImageRecord{
		rec("a", "2023-05-01", ""),
		rec("b", "2023-05-01", ""),
		rec("c", "", ""),
		rec("d", "2022-01-01", ""),
	}

	first := BuildView(records, NoFilter, Descending)
	for i := 0; i < 20; i++ {
		again := BuildView(records, NoFilter, Descending)
		if !slices.Equal(first.Flat, again.Flat) {
			t.Fatalf("build %d differs: %v vs %v", i, first.Flat, again.Flat)
		}
	}
	// Equal timestamps keep input order
	if !slices.Equal(first.Buckets[0].Identities, []string{"a", "b"}) {
		t.Errorf("expected ties in input order, got %v", first.Buckets[0].Identities)
	}
}

func TestBuildView_EmptyAndDegenerateInput(t *testing.T) {
	v := BuildView(nil, nil, Descending)
	if v.Len() != 0 || len(v.Buckets) != 0 {
		t.Errorf("expected empty view, got %d items in %d buckets", v.Len(), len(v.Buckets))
	}
	if _, ok := v.IdentityAt(0); ok {
		t.Error("IdentityAt on empty view should fail")
	}
	if _, ok := v.GlobalIndex(Position{}); ok {
		t.Error("GlobalIndex on empty view should fail")
	}

	v = BuildView([]*ImageRecord{nil, rec("", "2023-01-01", ""), rec("x", "", ""), rec("x", "2020-01-01", "")}, NoFilter, Descending)
	if !slices.Equal(v.Flat, []string{"x"}) {
		t.Errorf("expected only the first x, got %v", v.Flat)
	}
	if r, _ := v.Record("x"); r.DateCreated() != Unknown {
		t.Errorf("expected the first x record to be kept, got date %q", r.DateCreated())
	}
}

func TestBuildView_ModelFilter(t *testing.T) {
	records := []*ImageRecord{
		withNotes(rec("a", "2023-05-01", "X"), "n"),
		rec("b", "2023-05-15", "Y"),
		withNotes(rec("c", "2023-06-01", "Y"), "n"),
	}

	v := BuildView(records, FilterSpec{Model: "Y"}.Predicate(), Descending)
	if !slices.Equal(v.Flat, []string{"c", "b"}) {
		t.Errorf("model filter: got %v", v.Flat)
	}

	v = BuildView(records, FilterSpec{Model: "Y", NotesOnly: true}.Predicate(), Descending)
	if !slices.Equal(v.Flat, []string{"c"}) {
		t.Errorf("model+notes filter: got %v", v.Flat)
	}
}

func TestDistinctModels(t *testing.T) {
	records := []*ImageRecord{
		rec("1", "", "nikon Z6"),
		rec("2", "", ""),
		rec("3", "", "Canon R5"),
		rec("4", "", "Apple"),
		rec("5", "", "Canon R5"),
	}

	got := DistinctModels(records)
	want := []string{"Apple", "Canon R5", "nikon Z6", Unknown}
	if !slices.Equal(got, want) {
		t.Errorf("DistinctModels() = %v, want %v", got, want)
	}

	if got := DistinctModels(nil); len(got) != 0 {
		t.Errorf("expected no models, got %v", got)
	}
}
