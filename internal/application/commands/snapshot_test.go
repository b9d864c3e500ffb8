package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"photonotes/internal/adapters/memory"
	"photonotes/internal/adapters/snapshot"
	"photonotes/internal/application"
	"photonotes/internal/domain"
	"photonotes/internal/logger"
)

func TestExportImportCommands(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	source := memory.NewStore()
	source.Save(ctx, "lib/a.jpg", domain.Override{Notes: domain.String("one")})
	source.Save(ctx, "lib/b.jpg", domain.Override{Model: domain.String("R5")})

	exported, err := NewExportCommand(source, snapshot.Files{}, path).Execute(ctx)
	if err != nil {
		t.Fatalf("export Execute() error = %v", err)
	}
	if exported.Records != 2 || exported.Path != path {
		t.Errorf("unexpected export result %+v", exported)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot file not written: %v", err)
	}

	target := memory.NewStore()
	target.Save(ctx, "lib/stale.jpg", domain.Override{Notes: domain.String("stale")})

	imported, err := NewImportCommand(target, snapshot.Files{}, application.NewSessions(), nil, path).Execute(ctx)
	if err != nil {
		t.Fatalf("import Execute() error = %v", err)
	}
	if imported.Records != 2 {
		t.Errorf("imported %d records, want 2", imported.Records)
	}

	all, _ := target.GetAll(ctx)
	if len(all) != 2 || all[0].Identity != "lib/a.jpg" || all[1].Identity != "lib/b.jpg" {
		t.Errorf("target store = %+v", all)
	}
}

func TestExportCommand_ToStdout(t *testing.T) {
	result, err := NewExportCommand(memory.NewStore(), nil, "-").Execute(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.Path != "" || strings.TrimSpace(string(result.Data)) != "[]" {
		t.Errorf("unexpected result path=%q data=%q", result.Path, result.Data)
	}
}

func TestImportCommand_RefreshesGallery(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	gallery := application.NewGallery(store, logger.Discard())
	in := domain.UnknownIntrinsic("a.jpg", "1.00 MB", "image/jpeg")
	gallery.Load([]*domain.ImageRecord{domain.NewImageRecord("lib/a.jpg", in, nil)})

	cmd := NewImportCommand(store, nil, application.NewSessions(), gallery, "")
	cmd.Payload = []byte(`[{"imagePath": "lib/a.jpg", "notes": "from backup"}]`)

	if _, err := cmd.Execute(ctx); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if r, _ := gallery.Record("lib/a.jpg"); r.Notes() != "from backup" {
		t.Errorf("gallery notes = %q", r.Notes())
	}
	if _, ok := gallery.SetFilter(domain.FilterSpec{NotesOnly: true}).IndexOf("lib/a.jpg"); !ok {
		t.Error("expected notes filter to include the imported record")
	}
}

func TestImportCommand_Invalid(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte(`{"not": "an array"}`), 0644)

	store := memory.NewStore()
	store.Save(ctx, "lib/a.jpg", domain.Override{Notes: domain.String("safe")})

	_, err := NewImportCommand(store, snapshot.Files{}, application.NewSessions(), nil, path).Execute(ctx)
	if !errors.Is(err, domain.ErrImportFormatInvalid) {
		t.Fatalf("expected ErrImportFormatInvalid, got %v", err)
	}
	if m, _ := store.Get(ctx, "lib/a.jpg"); m == nil {
		t.Error("expected store to be left untouched")
	}

	if err := (&ImportCommand{}).Validate(); err == nil {
		t.Error("expected path to be required")
	}
}

func TestDiffCommand(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := memory.NewStore()
	store.Save(ctx, "lib/a.jpg", domain.Override{Notes: domain.String("one")})

	same := filepath.Join(dir, "same.json")
	if _, err := NewExportCommand(store, snapshot.Files{}, same).Execute(ctx); err != nil {
		t.Fatal(err)
	}

	result, err := NewDiffCommand(store, snapshot.Files{}, same).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Changed || result.Diff != "" {
		t.Errorf("expected no changes, got:\n%s", result.Diff)
	}

	store.Save(ctx, "lib/a.jpg", domain.Override{Notes: domain.String("two")})
	result, err = NewDiffCommand(store, snapshot.Files{}, same).Execute(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Changed || !strings.Contains(result.Diff, `+    "notes": "one",`) {
		t.Errorf("expected diff restoring the old note, got:\n%s", result.Diff)
	}
}
