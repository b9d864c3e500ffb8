package app

import (
	"context"

	"photonotes/internal/adapters/editor"
	"photonotes/internal/adapters/exif"
	"photonotes/internal/adapters/filesystem"
	"photonotes/internal/adapters/memory"
	"photonotes/internal/adapters/snapshot"
	"photonotes/internal/adapters/sqlite"
	"photonotes/internal/adapters/viewer"
	"photonotes/internal/application"
	"photonotes/internal/config"
	"photonotes/internal/logger"
	"photonotes/internal/ports"
)

// App wires the adapters behind the application services. Every binary
// builds one with Open and releases it with Close.
type App struct {
	Config *config.Config
	Log    *logger.Logger

	Store    ports.MetadataStore
	Degraded bool // the database could not be opened; edits live in memory only

	Files     *filesystem.Scanner
	Snapshots snapshot.Files
	Builder   *application.RecordBuilder
	Sessions  *application.Sessions
	Gallery   *application.Gallery
	Viewer    *viewer.Opener
	Editor    *editor.Opener
}

// Options tweaks Open for a particular binary
type Options struct {
	Name       string // logger name
	NoTerminal bool   // keep log lines off stderr
}

// Open builds the application from cfg. A database that cannot be opened
// is not fatal: the app falls back to an in-memory store and sets Degraded.
func Open(ctx context.Context, cfg *config.Config, opts Options) *App {
	log := logger.New(logger.Options{
		Name:       opts.Name,
		Level:      logger.ParseLevel(cfg.LogLevel),
		File:       cfg.LogFilePath(),
		NoTerminal: opts.NoTerminal,
		JSON:       cfg.LogJSON,
	})

	a := &App{
		Config:   cfg,
		Log:      log,
		Files:    filesystem.NewScanner(),
		Sessions: application.NewSessions(),
		Viewer:   viewer.NewOpener(cfg.LibraryPath()),
		Editor:   editor.NewOpener(cfg.Editor),
	}

	db := sqlite.NewStore(cfg.DatabasePath(), log)
	if err := db.Init(ctx); err != nil {
		log.Warn("metadata database unavailable, edits will not be saved: %v", err)
		mem := memory.NewStore()
		_ = mem.Init(ctx)
		a.Store = mem
		a.Degraded = true
	} else {
		log.Debug("metadata database at %s", db.Path())
		a.Store = db
	}

	a.Builder = application.NewRecordBuilder(exif.NewExtractor(), a.Store, log)
	a.Gallery = application.NewGallery(a.Store, log)
	return a
}

// Close releases the store
func (a *App) Close() error {
	return a.Store.Close()
}
