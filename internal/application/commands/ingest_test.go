package commands

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"

	"photonotes/internal/adapters/memory"
	"photonotes/internal/application"
	"photonotes/internal/domain"
	"photonotes/internal/logger"
	"photonotes/internal/ports"
)

// fakeSource lists a fixed set of files, optionally blocking until released
type fakeSource struct {
	files   []ports.ImageFile
	err     error
	release chan struct{}
	started chan struct{}
}

func (s *fakeSource) List(ctx context.Context, root string) ([]ports.ImageFile, error) {
	if s.started != nil {
		close(s.started)
	}
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.files, s.err
}

// dateExtractor derives the capture date from a table keyed by file name
type dateExtractor map[string]string

func (e dateExtractor) Extract(ctx context.Context, h domain.Handle, fields []domain.Field) (map[domain.Field]string, error) {
	f := h.(ports.ImageFile)
	date, ok := e[f.Name]
	if !ok {
		return nil, domain.ErrExtractionFailed
	}
	return map[domain.Field]string{domain.FieldDateCreated: date}, nil
}

// brokenStore fails every lookup for the listed identities
type brokenStore struct {
	*memory.Store
	mu     sync.Mutex
	broken map[string]bool
}

func (s *brokenStore) Get(ctx context.Context, identity string) (*domain.StoredMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.broken[identity] || s.broken["*"] {
		return nil, &domain.StoreError{Op: "get", Identity: identity, Err: errors.New("corrupt page")}
	}
	return s.Store.Get(ctx, identity)
}

func testFiles(names ...string) []ports.ImageFile {
	files := make([]ports.ImageFile, len(names))
	for i, n := range names {
		files[i] = ports.ImageFile{Identity: "lib/" + n, Name: n, Size: 1024, MediaType: "image/jpeg"}
	}
	return files
}

func newIngest(source ports.FileSource, store ports.MetadataStore, sessions *application.Sessions, gallery *application.Gallery) *IngestCommand {
	extractor := dateExtractor{
		"a.jpg": "2023:05:01 10:00:00",
		"b.jpg": "2023:05:15 09:00:00",
	}
	builder := application.NewRecordBuilder(extractor, store, logger.Discard())
	return NewIngestCommand(source, builder, sessions, gallery, logger.Discard(), "/photos/lib", 4)
}

func TestIngestCommand_Validate(t *testing.T) {
	cmd := &IngestCommand{}
	err := cmd.Validate()

	var valErr *application.ValidationError
	if !errors.As(err, &valErr) || valErr.Field != "root" {
		t.Errorf("expected root ValidationError, got %v", err)
	}
}

func TestIngestCommand_Execute(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	store.Save(ctx, "lib/c.jpg", domain.Override{Notes: domain.String("kept")})

	gallery := application.NewGallery(store, logger.Discard())
	source := &fakeSource{files: testFiles("a.jpg", "b.jpg", "c.jpg")}

	result, err := newIngest(source, store, application.NewSessions(), gallery).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Total != 3 || result.Failed != 0 || len(result.Records) != 3 {
		t.Errorf("unexpected result %+v", result)
	}
	if result.SessionID == "" {
		t.Error("expected a session ID")
	}

	v := gallery.View()
	if want := []string{"lib/b.jpg", "lib/a.jpg", "lib/c.jpg"}; !slices.Equal(v.Flat, want) {
		t.Errorf("gallery flat = %v, want %v", v.Flat, want)
	}
	if r, _ := gallery.Record("lib/c.jpg"); r.Notes() != "kept" {
		t.Errorf("stored notes not merged: %q", r.Notes())
	}
}

func TestIngestCommand_PartialFailure(t *testing.T) {
	store := &brokenStore{Store: memory.NewStore(), broken: map[string]bool{"lib/b.jpg": true}}
	source := &fakeSource{files: testFiles("a.jpg", "b.jpg", "c.jpg")}

	result, err := newIngest(source, store, application.NewSessions(), nil).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Failed != 1 || len(result.Records) != 2 {
		t.Errorf("expected 1 failure and 2 records, got %+v", result)
	}
	if result.Failures[0].Identity != "lib/b.jpg" {
		t.Errorf("failure identity = %q", result.Failures[0].Identity)
	}
}

func TestIngestCommand_AllFailed(t *testing.T) {
	store := &brokenStore{Store: memory.NewStore(), broken: map[string]bool{"*": true}}
	source := &fakeSource{files: testFiles("a.jpg", "b.jpg")}

	_, err := newIngest(source, store, application.NewSessions(), nil).Execute(context.Background())
	if !errors.Is(err, application.ErrNoRecordsProcessed) {
		t.Fatalf("expected ErrNoRecordsProcessed, got %v", err)
	}
	var batch *application.BatchError
	if !errors.As(err, &batch) || batch.Total != 2 || len(batch.Failures) != 2 {
		t.Errorf("unexpected batch error %+v", batch)
	}
}

func TestIngestCommand_NoImages(t *testing.T) {
	_, err := newIngest(&fakeSource{}, memory.NewStore(), application.NewSessions(), nil).Execute(context.Background())
	if !errors.Is(err, application.ErrNoImages) {
		t.Errorf("expected ErrNoImages, got %v", err)
	}
}

func TestIngestCommand_ListError(t *testing.T) {
	source := &fakeSource{err: fmt.Errorf("permission denied")}
	_, err := newIngest(source, memory.NewStore(), application.NewSessions(), nil).Execute(context.Background())
	if err == nil || errors.Is(err, application.ErrSessionSuperseded) {
		t.Errorf("expected list error, got %v", err)
	}
}

func TestIngestCommand_Superseded(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	sessions := application.NewSessions()
	gallery := application.NewGallery(store, logger.Discard())

	slow := &fakeSource{
		files:   testFiles("a.jpg"),
		release: make(chan struct{}),
		started: make(chan struct{}),
	}
	errc := make(chan error, 1)
	go func() {
		_, err := newIngest(slow, store, sessions, gallery).Execute(ctx)
		errc <- err
	}()
	<-slow.started

	fast := &fakeSource{files: testFiles("b.jpg")}
	if _, err := newIngest(fast, store, sessions, gallery).Execute(ctx); err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}

	if err := <-errc; !errors.Is(err, application.ErrSessionSuperseded) {
		t.Fatalf("expected first ingestion to be superseded, got %v", err)
	}

	if v := gallery.View(); !slices.Equal(v.Flat, []string{"lib/b.jpg"}) {
		t.Errorf("gallery shows %v, want only the newer scan", v.Flat)
	}
}
