package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"photonotes/internal/adapters/memory"
	"photonotes/internal/adapters/sqlite"
	"photonotes/internal/config"
	"photonotes/internal/domain"
)

func TestOpenUsesDatabase(t *testing.T) {
	cfg := &config.Config{
		Library:  t.TempDir(),
		Database: filepath.Join(t.TempDir(), "metadata.db"),
		LogLevel: "off",
	}

	a := Open(context.Background(), cfg, Options{Name: "test", NoTerminal: true})
	defer a.Close()

	if a.Degraded {
		t.Fatal("expected database store")
	}
	if _, ok := a.Store.(*sqlite.Store); !ok {
		t.Fatalf("store = %T, want *sqlite.Store", a.Store)
	}
}

func TestOpenFallsBackToMemory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		Library:  t.TempDir(),
		Database: filepath.Join(blocker, "metadata.db"),
		LogLevel: "off",
	}

	a := Open(context.Background(), cfg, Options{Name: "test", NoTerminal: true})
	defer a.Close()

	if !a.Degraded {
		t.Fatal("expected degraded mode")
	}
	if _, ok := a.Store.(*memory.Store); !ok {
		t.Fatalf("store = %T, want *memory.Store", a.Store)
	}

	// Edits still work for the session
	ctx := context.Background()
	if _, err := a.Store.Save(ctx, "Trip/a.jpg", domain.Override{Notes: domain.String("kept")}); err != nil {
		t.Fatalf("Save in degraded mode: %v", err)
	}
	m, err := a.Store.Get(ctx, "Trip/a.jpg")
	if err != nil || m == nil {
		t.Fatalf("Get = %v, %v", m, err)
	}
}
