package commands

import (
	"context"
	"fmt"

	"photonotes/internal/application"
	"photonotes/internal/ports"
)

// ImportResult contains the result of an import
type ImportResult struct {
	Records int
	Message string
}

// ImportCommand replaces the store contents with a snapshot document
type ImportCommand struct {
	store    ports.MetadataStore
	files    ports.SnapshotFiles
	sessions *application.Sessions
	gallery  *application.Gallery
	Path     string
	Payload  []byte // used instead of reading Path when set
}

// NewImportCommand creates a new ImportCommand. The import waits for any
// running ingestion to finish. When gallery is not nil its records are
// refreshed from the imported contents. sessions and gallery may be nil.
func NewImportCommand(store ports.MetadataStore, files ports.SnapshotFiles, sessions *application.Sessions, gallery *application.Gallery, path string) *ImportCommand {
	return &ImportCommand{
		store:    store,
		files:    files,
		sessions: sessions,
		gallery:  gallery,
		Path:     path,
	}
}

// Validate checks if the import operation is valid
func (c *ImportCommand) Validate() error {
	if c.Payload != nil {
		return nil
	}
	return application.ValidateRequired("path", c.Path)
}

// Execute runs the import command
func (c *ImportCommand) Execute(ctx context.Context) (*ImportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	payload := c.Payload
	if payload == nil {
		data, err := c.files.ReadFile(c.Path)
		if err != nil {
			return nil, err
		}
		payload = data
	}

	var n int
	run := func() error {
		var err error
		n, err = c.store.ImportSnapshot(ctx, payload)
		return err
	}

	var err error
	if c.sessions != nil {
		err = c.sessions.Exclusive(run)
	} else {
		err = run()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to import snapshot: %w", err)
	}

	if c.gallery != nil {
		if err := c.gallery.Refresh(ctx); err != nil {
			return nil, fmt.Errorf("imported %d records but failed to refresh: %w", n, err)
		}
	}

	return &ImportResult{
		Records: n,
		Message: fmt.Sprintf("Imported %d records", n),
	}, nil
}
