// Package storetest checks a ports.MetadataStore implementation against the
// store contract. Adapter tests call Run with a constructor for a fresh,
// uninitialized store.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"photonotes/internal/domain"
	"photonotes/internal/ports"
)

// Run exercises every contract test against stores built by newStore
func Run(t *testing.T, newStore func(t *testing.T) ports.MetadataStore) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s ports.MetadataStore)
	}{
		{"EmptyStore", testEmptyStore},
		{"InitIdempotent", testInitIdempotent},
		{"UpsertIdempotent", testUpsertIdempotent},
		{"PartialPatch", testPartialPatch},
		{"EmptyValueIsAnOverride", testEmptyValueIsAnOverride},
		{"InvalidIdentity", testInvalidIdentity},
		{"SnapshotRoundTrip", testSnapshotRoundTrip},
		{"ImportReplaces", testImportReplaces},
		{"ImportRejectsInvalid", testImportRejectsInvalid},
		{"ConcurrentAccess", testConcurrentAccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			if err := s.Init(context.Background()); err != nil {
				t.Fatalf("Init() error = %v", err)
			}
			t.Cleanup(func() { s.Close() })
			tt.fn(t, s)
		})
	}
}

func testEmptyStore(t *testing.T, s ports.MetadataStore) {
	ctx := context.Background()

	m, err := s.Get(ctx, "missing.jpg")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if m != nil {
		t.Errorf("expected absent record, got %+v", m)
	}

	all, err := s.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected empty store, got %d records", len(all))
	}
}

func testInitIdempotent(t *testing.T, s ports.MetadataStore) {
	ctx := context.Background()
	mustSave(t, s, "a.jpg", domain.Override{Notes: domain.String("keep")})

	for range 3 {
		if err := s.Init(ctx); err != nil {
			t.Fatalf("repeated Init() error = %v", err)
		}
	}

	all, _ := s.GetAll(ctx)
	if len(all) != 1 {
		t.Fatalf("expected 1 record after repeated Init, got %d", len(all))
	}
	if got := notes(t, s, "a.jpg"); got != "keep" {
		t.Errorf("notes = %q, want keep", got)
	}
}

func testUpsertIdempotent(t *testing.T, s ports.MetadataStore) {
	mustSave(t, s, "id", domain.Override{Notes: domain.String("a")})
	mustSave(t, s, "id", domain.Override{Notes: domain.String("a")})

	if got := notes(t, s, "id"); got != "a" {
		t.Errorf("notes = %q, want a", got)
	}
	all, _ := s.GetAll(context.Background())
	if len(all) != 1 {
		t.Errorf("expected exactly one record, got %d", len(all))
	}
}

func testPartialPatch(t *testing.T, s ports.MetadataStore) {
	first := mustSave(t, s, "id", domain.Override{Make: domain.String("Canon")})
	second := mustSave(t, s, "id", domain.Override{Model: domain.String("R5")})

	if v, _ := second.Override.Get(domain.FieldMake); v != "Canon" {
		t.Errorf("returned make = %q, want Canon", v)
	}

	m, err := s.Get(context.Background(), "id")
	if err != nil || m == nil {
		t.Fatalf("Get() = %v, %v", m, err)
	}
	if v, _ := m.Override.Get(domain.FieldMake); v != "Canon" {
		t.Errorf("make = %q, want Canon", v)
	}
	if v, _ := m.Override.Get(domain.FieldModel); v != "R5" {
		t.Errorf("model = %q, want R5", v)
	}
	if _, ok := m.Override.Get(domain.FieldNotes); ok {
		t.Error("expected notes to stay absent")
	}
	if m.LastModified.IsZero() || m.LastModified.Before(first.LastModified) {
		t.Errorf("lastModified not stamped: first=%v now=%v", first.LastModified, m.LastModified)
	}
}

func testEmptyValueIsAnOverride(t *testing.T, s ports.MetadataStore) {
	mustSave(t, s, "id", domain.Override{Model: domain.String("X")})
	mustSave(t, s, "id", domain.Override{Model: domain.String("")})

	m, _ := s.Get(context.Background(), "id")
	v, ok := m.Override.Get(domain.FieldModel)
	if !ok || v != "" {
		t.Errorf("expected stored empty model, got %q present=%v", v, ok)
	}
}

func testInvalidIdentity(t *testing.T, s ports.MetadataStore) {
	_, err := s.Save(context.Background(), "", domain.Override{Notes: domain.String("x")})
	if !errors.Is(err, domain.ErrInvalidIdentity) {
		t.Errorf("expected ErrInvalidIdentity, got %v", err)
	}
}

func testSnapshotRoundTrip(t *testing.T, s ports.MetadataStore) {
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		data, err := s.ExportSnapshot(ctx)
		if err != nil {
			t.Fatalf("ExportSnapshot() error = %v", err)
		}
		n, err := s.ImportSnapshot(ctx, data)
		if err != nil || n != 0 {
			t.Fatalf("ImportSnapshot() = %d, %v", n, err)
		}
	})

	t.Run("populated", func(t *testing.T) {
		mustSave(t, s, "trip/a.jpg", domain.Override{Notes: domain.String("beach"), Model: domain.String("R5")})
		mustSave(t, s, "trip/b.jpg", domain.Override{DateCreated: domain.String("2023-05-15 10:00:00")})
		mustSave(t, s, "c.png", domain.Override{Artist: domain.String("")})

		before, _ := s.GetAll(ctx)
		data, err := s.ExportSnapshot(ctx)
		if err != nil {
			t.Fatalf("ExportSnapshot() error = %v", err)
		}

		n, err := s.ImportSnapshot(ctx, data)
		if err != nil {
			t.Fatalf("ImportSnapshot() error = %v", err)
		}
		if n != len(before) {
			t.Errorf("imported %d records, want %d", n, len(before))
		}

		after, _ := s.GetAll(ctx)
		if got, want := index(after), index(before); !sameRecords(got, want) {
			t.Errorf("round trip changed the store:\nbefore %v\nafter  %v", want, got)
		}
	})
}

func testImportReplaces(t *testing.T, s ports.MetadataStore) {
	ctx := context.Background()
	mustSave(t, s, "old.jpg", domain.Override{Notes: domain.String("gone")})

	payload := `[{"identity": "new.jpg", "notes": "fresh"}]`
	n, err := s.ImportSnapshot(ctx, []byte(payload))
	if err != nil || n != 1 {
		t.Fatalf("ImportSnapshot() = %d, %v", n, err)
	}

	if m, _ := s.Get(ctx, "old.jpg"); m != nil {
		t.Error("expected old record to be cleared")
	}
	if got := notes(t, s, "new.jpg"); got != "fresh" {
		t.Errorf("notes = %q, want fresh", got)
	}
	if m, _ := s.Get(ctx, "new.jpg"); m.LastModified.IsZero() {
		t.Error("expected imported record without lastModified to be stamped")
	}
}

func testImportRejectsInvalid(t *testing.T, s ports.MetadataStore) {
	ctx := context.Background()
	mustSave(t, s, "keep.jpg", domain.Override{Notes: domain.String("safe")})

	payloads := []string{
		`not json`,
		`{"identity": "x"}`,
		`[{"identity": "a"}, {"notes": "no identity"}]`,
		`[{"identity": "a"}, {"identity": "a"}]`,
	}
	for _, p := range payloads {
		_, err := s.ImportSnapshot(ctx, []byte(p))
		if !errors.Is(err, domain.ErrImportFormatInvalid) {
			t.Errorf("payload %q: expected ErrImportFormatInvalid, got %v", p, err)
		}
	}

	all, _ := s.GetAll(ctx)
	if len(all) != 1 || all[0].Identity != "keep.jpg" {
		t.Errorf("expected store untouched, got %+v", all)
	}
}

func testConcurrentAccess(t *testing.T, s ports.MetadataStore) {
	ctx := context.Background()
	const n = 20

	var wg sync.WaitGroup
	errs := make(chan error, 3*n)
	for i := range n {
		id := fmt.Sprintf("img-%02d.jpg", i)
		wg.Add(3)
		go func() {
			defer wg.Done()
			_, err := s.Save(ctx, id, domain.Override{Make: domain.String("make-" + id)})
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := s.Save(ctx, id, domain.Override{Notes: domain.String("note-" + id)})
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := s.Get(ctx, id)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent operation failed: %v", err)
		}
	}

	all, _ := s.GetAll(ctx)
	if len(all) != n {
		t.Fatalf("expected %d records, got %d", n, len(all))
	}
	for _, m := range all {
		if v, _ := m.Override.Get(domain.FieldMake); v != "make-"+m.Identity {
			t.Errorf("%s: make = %q", m.Identity, v)
		}
		if v, _ := m.Override.Get(domain.FieldNotes); v != "note-"+m.Identity {
			t.Errorf("%s: notes = %q", m.Identity, v)
		}
	}
}

func mustSave(t *testing.T, s ports.MetadataStore, id string, patch domain.Override) *domain.StoredMetadata {
	t.Helper()
	m, err := s.Save(context.Background(), id, patch)
	if err != nil {
		t.Fatalf("Save(%q) error = %v", id, err)
	}
	return m
}

func notes(t *testing.T, s ports.MetadataStore, id string) string {
	t.Helper()
	m, err := s.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get(%q) error = %v", id, err)
	}
	if m == nil {
		t.Fatalf("Get(%q) returned no record", id)
	}
	v, _ := m.Override.Get(domain.FieldNotes)
	return v
}

// index renders records as comparable strings keyed by identity
func index(records []domain.StoredMetadata) map[string]string {
	out := make(map[string]string, len(records))
	for _, m := range records {
		var s string
		for _, f := range domain.EditableFields {
			if v, ok := m.Override.Get(f); ok {
				s += fmt.Sprintf("%s=%q;", f, v)
			}
		}
		out[m.Identity] = s
	}
	return out
}

func sameRecords(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if w, ok := b[k]; !ok || w != v {
			return false
		}
	}
	return true
}
