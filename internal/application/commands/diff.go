package commands

import (
	"context"
	"fmt"

	"photonotes/internal/application"
	"photonotes/internal/ports"
)

// DiffResult contains the changes an import of Path would make
type DiffResult struct {
	Diff    string
	Changed bool
	Message string
}

// DiffCommand compares the store contents with a snapshot file
type DiffCommand struct {
	store ports.MetadataStore
	files ports.SnapshotFiles
	Path  string
}

// NewDiffCommand creates a new DiffCommand
func NewDiffCommand(store ports.MetadataStore, files ports.SnapshotFiles, path string) *DiffCommand {
	return &DiffCommand{
		store: store,
		files: files,
		Path:  path,
	}
}

// Validate checks if the diff operation is valid
func (c *DiffCommand) Validate() error {
	return application.ValidateRequired("path", c.Path)
}

// Execute runs the diff command
func (c *DiffCommand) Execute(ctx context.Context) (*DiffResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	current, err := c.store.ExportSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export store: %w", err)
	}

	incoming, err := c.files.ReadFile(c.Path)
	if err != nil {
		return nil, err
	}

	d, err := c.files.Diff("store", c.Path, current, incoming)
	if err != nil {
		return nil, fmt.Errorf("failed to compare snapshots: %w", err)
	}

	result := &DiffResult{Diff: d, Changed: d != ""}
	if result.Changed {
		result.Message = fmt.Sprintf("Importing %s would change the store", c.Path)
	} else {
		result.Message = fmt.Sprintf("%s matches the store", c.Path)
	}
	return result, nil
}
