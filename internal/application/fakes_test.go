package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"photonotes/internal/adapters/memory"
	"photonotes/internal/domain"
	"photonotes/internal/ports"
)

// fakeExtractor returns canned tags per file name
type fakeExtractor struct {
	tags map[string]map[domain.Field]string
	fail map[string]bool
}

func (e *fakeExtractor) Extract(ctx context.Context, h domain.Handle, fields []domain.Field) (map[domain.Field]string, error) {
	f := h.(ports.ImageFile)
	if e.fail[f.Name] {
		return nil, domain.ErrExtractionFailed
	}
	return e.tags[f.Name], nil
}

// failingStore wraps a memory store and fails selected operations
type failingStore struct {
	*memory.Store

	mu       sync.Mutex
	failGet  map[string]bool
	failSave bool
}

func newFailingStore() *failingStore {
	return &failingStore{Store: memory.NewStore(), failGet: map[string]bool{}}
}

func (s *failingStore) Get(ctx context.Context, identity string) (*domain.StoredMetadata, error) {
	s.mu.Lock()
	fail := s.failGet[identity]
	s.mu.Unlock()
	if fail {
		return nil, &domain.StoreError{Op: "get", Identity: identity, Err: errors.New("disk error")}
	}
	return s.Store.Get(ctx, identity)
}

func (s *failingStore) Save(ctx context.Context, identity string, patch domain.Override) (*domain.StoredMetadata, error) {
	s.mu.Lock()
	fail := s.failSave
	s.mu.Unlock()
	if fail {
		return nil, &domain.StoreError{Op: "save", Identity: identity, Kind: domain.ErrStorageWriteFailed, Err: errors.New("disk full")}
	}
	return s.Store.Save(ctx, identity, patch)
}

func imageFile(identity string, size int64) ports.ImageFile {
	name := identity[strings.LastIndex(identity, "/")+1:]
	return ports.ImageFile{
		Identity:  identity,
		Name:      name,
		Path:      "/nonexistent/" + identity,
		Size:      size,
		MediaType: "image/jpeg",
	}
}

type stringHandle string

func (s stringHandle) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(s))), nil
}

func record(id, date, model string) *domain.ImageRecord {
	in := domain.UnknownIntrinsic(id, "0.00 MB", "image/jpeg")
	in.DateCreated = date
	in.Model = model
	return domain.NewImageRecord(id, in, stringHandle(id))
}
