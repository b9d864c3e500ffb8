// Package memory provides a MetadataStore that lives only for the process.
// It backs the degraded mode used when the durable store cannot be opened.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/btree"

	"photonotes/internal/adapters/snapshot"
	"photonotes/internal/domain"
	"photonotes/internal/ports"
)

type Store struct {
	mu sync.RWMutex

	records *btree.Map[string, domain.StoredMetadata]
	now     func() time.Time
}

var _ ports.MetadataStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		records: btree.NewMap[string, domain.StoredMetadata](0),
		now:     time.Now,
	}
}

// Init is a no-op; the store is ready once constructed
func (s *Store) Init(ctx context.Context) error {
	return nil
}

// Close drops every record
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records.Clear()
	return nil
}

func (s *Store) Get(ctx context.Context, identity string) (*domain.StoredMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.records.Get(identity)
	if !ok {
		return nil, nil
	}
	return clone(m), nil
}

func (s *Store) Save(ctx context.Context, identity string, patch domain.Override) (*domain.StoredMetadata, error) {
	if strings.TrimSpace(identity) == "" {
		return nil, &domain.StoreError{Op: "save", Kind: domain.ErrInvalidIdentity}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, _ := s.records.Get(identity)
	m.Identity = identity
	m.Override = m.Override.Patch(patch)
	m.LastModified = s.now().UTC()
	s.records.Set(identity, m)

	return clone(m), nil
}

// GetAll returns every record ordered by identity
func (s *Store) GetAll(ctx context.Context) ([]domain.StoredMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]domain.StoredMetadata, 0, s.records.Len())
	s.records.Scan(func(_ string, m domain.StoredMetadata) bool {
		all = append(all, *clone(m))
		return true
	})
	return all, nil
}

func (s *Store) ExportSnapshot(ctx context.Context) ([]byte, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Encode(all)
}

// ImportSnapshot builds the replacement tree aside and swaps it in, so a
// rejected payload never touches the current records
func (s *Store) ImportSnapshot(ctx context.Context, payload []byte) (int, error) {
	records, err := snapshot.Decode(payload)
	if err != nil {
		return 0, &domain.StoreError{Op: "import", Err: err}
	}

	now := s.now().UTC()
	next := btree.NewMap[string, domain.StoredMetadata](0)
	for _, m := range records {
		if m.LastModified.IsZero() {
			m.LastModified = now
		}
		next.Set(m.Identity, *clone(m))
	}

	s.mu.Lock()
	s.records = next
	s.mu.Unlock()

	return len(records), nil
}

func clone(m domain.StoredMetadata) *domain.StoredMetadata {
	m.Override = m.Override.Clone()
	return &m
}
