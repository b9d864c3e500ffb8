package commands

import (
	"context"
	"fmt"

	"photonotes/internal/application"
	"photonotes/internal/ports"
)

// ExportResult contains the result of an export
type ExportResult struct {
	Path    string // empty when the snapshot was only returned
	Data    []byte
	Records int
	Message string
}

// ExportCommand writes every stored record to a snapshot document
type ExportCommand struct {
	store ports.MetadataStore
	files ports.SnapshotFiles
	Path  string
}

// NewExportCommand creates a new ExportCommand. An empty path or "-"
// returns the document without writing it.
func NewExportCommand(store ports.MetadataStore, files ports.SnapshotFiles, path string) *ExportCommand {
	return &ExportCommand{
		store: store,
		files: files,
		Path:  path,
	}
}

// Validate checks if the export operation is valid
func (c *ExportCommand) Validate() error {
	if c.writes() && c.files == nil {
		return &application.ValidationError{Field: "path", Message: "cannot write snapshot files"}
	}
	return nil
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context) (*ExportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	all, err := c.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read store: %w", err)
	}

	data, err := c.store.ExportSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export snapshot: %w", err)
	}

	result := &ExportResult{
		Data:    data,
		Records: len(all),
		Message: fmt.Sprintf("Exported %d records", len(all)),
	}

	if c.writes() {
		if err := c.files.WriteFile(c.Path, data); err != nil {
			return nil, err
		}
		result.Path = c.Path
		result.Message = fmt.Sprintf("Exported %d records to %s", len(all), c.Path)
	}

	return result, nil
}

func (c *ExportCommand) writes() bool {
	return c.Path != "" && c.Path != "-"
}
