package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"photonotes/internal/application"
	"photonotes/internal/domain"
	"photonotes/internal/logger"
	"photonotes/internal/ports"
)

// DefaultWorkers bounds concurrent record builds when none is configured
const DefaultWorkers = 8

// IngestResult contains the result of scanning a folder
type IngestResult struct {
	SessionID string
	Records   []*domain.ImageRecord // in file order, failed files left out
	Total     int
	Failed    int
	Failures  []application.FileError
	Message   string
}

// IngestCommand scans a folder and builds one record per image file.
// Starting an ingestion supersedes any ingestion still running; the older
// one then fails with ErrSessionSuperseded and its records are discarded.
type IngestCommand struct {
	files    ports.FileSource
	builder  *application.RecordBuilder
	sessions *application.Sessions
	gallery  *application.Gallery
	log      *logger.Logger
	Root     string
	Workers  int
}

// NewIngestCommand creates a new IngestCommand. When gallery is not nil the
// records are loaded into it, unless a newer ingestion began meanwhile.
func NewIngestCommand(files ports.FileSource, builder *application.RecordBuilder, sessions *application.Sessions, gallery *application.Gallery, log *logger.Logger, root string, workers int) *IngestCommand {
	return &IngestCommand{
		files:    files,
		builder:  builder,
		sessions: sessions,
		gallery:  gallery,
		log:      log.Named("ingest"),
		Root:     root,
		Workers:  workers,
	}
}

// Validate checks if the ingest operation is valid
func (c *IngestCommand) Validate() error {
	return application.ValidateRequired("root", c.Root)
}

// Execute runs the ingest command
func (c *IngestCommand) Execute(ctx context.Context) (*IngestResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	session := c.sessions.Begin(ctx)
	defer session.End()
	sctx := session.Context()

	files, err := c.files.List(sctx, c.Root)
	if err != nil {
		if session.Superseded() {
			return nil, application.ErrSessionSuperseded
		}
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", application.ErrNoImages, c.Root)
	}

	workers := c.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	built := make([]*domain.ImageRecord, len(files))
	var (
		mu       sync.Mutex
		failures []application.FileError
	)

	g, gctx := errgroup.WithContext(sctx)
	g.SetLimit(workers)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := c.builder.Build(gctx, f)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				c.log.Warn("skipping %s: %v", f.Identity, err)
				mu.Lock()
				failures = append(failures, application.FileError{Identity: f.Identity, Err: err})
				mu.Unlock()
				return nil
			}
			built[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if session.Superseded() {
			return nil, application.ErrSessionSuperseded
		}
		return nil, err
	}

	slices.SortFunc(failures, func(a, b application.FileError) int {
		return strings.Compare(a.Identity, b.Identity)
	})

	records := make([]*domain.ImageRecord, 0, len(built))
	for _, r := range built {
		if r != nil {
			records = append(records, r)
		}
	}

	if len(records) == 0 {
		return nil, &application.BatchError{Total: len(files), Failures: failures}
	}

	err = c.sessions.Commit(session, func() {
		if c.gallery != nil {
			c.gallery.Load(records)
		}
	})
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Loaded %d images from %s", len(records), c.Root)
	if len(failures) > 0 {
		msg = fmt.Sprintf("%s (%d failed)", msg, len(failures))
	}
	c.log.Info("%s", msg)

	return &IngestResult{
		SessionID: session.ID,
		Records:   records,
		Total:     len(files),
		Failed:    len(failures),
		Failures:  failures,
		Message:   msg,
	}, nil
}
