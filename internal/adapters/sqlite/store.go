package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"photonotes/internal/adapters/snapshot"
	"photonotes/internal/domain"
	"photonotes/internal/logger"
	"photonotes/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Store implements ports.MetadataStore using SQLite
type Store struct {
	mu   sync.RWMutex
	db   *sql.DB
	path string
	log  *logger.Logger
	now  func() time.Time
}

// Ensure Store implements MetadataStore
var _ ports.MetadataStore = (*Store)(nil)

// NewStore creates a store backed by the database file at path.
// Nothing is opened until Init.
func NewStore(path string, log *logger.Logger) *Store {
	return &Store{
		path: path,
		log:  log.Named("sqlite"),
		now:  time.Now,
	}
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// Init opens the database, creating the file and schema if absent.
// Calling Init on an open store does nothing.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return unavailable(fmt.Errorf("failed to create database directory: %w", err))
	}

	db, err := sql.Open("sqlite", "file:"+s.path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return unavailable(fmt.Errorf("failed to open database: %w", err))
	}
	// A single connection serializes writers inside the process
	db.SetMaxOpenConns(1)

	// Pragmas + schema in a single batch
	_, err = db.ExecContext(ctx, `
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS image_metadata (
			identity TEXT PRIMARY KEY,
			notes TEXT,
			date_created TEXT,
			make TEXT,
			model TEXT,
			software TEXT,
			artist TEXT,
			last_modified TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_image_metadata_date_created ON image_metadata(date_created);
		CREATE INDEX IF NOT EXISTS idx_image_metadata_model ON image_metadata(model);
	`)
	if err != nil {
		db.Close()
		return unavailable(fmt.Errorf("failed to setup database: %w", err))
	}

	if err := checkSchema(ctx, db); err != nil {
		db.Close()
		return unavailable(err)
	}

	s.db = db
	s.log.Debug("opened %s", s.path)
	return nil
}

// checkSchema records the schema version on first use and refuses databases
// written by a newer schema
func checkSchema(ctx context.Context, db *sql.DB) error {
	var version string
	err := db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		_, err = db.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion)
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("unsupported schema version %q", version)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Get retrieves the stored override for identity
func (s *Store) Get(ctx context.Context, identity string) (*domain.StoredMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, notOpen("get", identity)
	}

	m, err := scanMetadata(s.db.QueryRowContext(ctx, selectOne, identity))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.StoreError{Op: "get", Identity: identity, Err: err}
	}
	return m, nil
}

// Save upserts the fields present in patch
func (s *Store) Save(ctx context.Context, identity string, patch domain.Override) (*domain.StoredMetadata, error) {
	if strings.TrimSpace(identity) == "" {
		return nil, &domain.StoreError{Op: "save", Kind: domain.ErrInvalidIdentity}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, notOpen("save", identity)
	}

	var saved *domain.StoredMetadata
	err := s.withTx(ctx, func(tx *metadataTx) error {
		if err := tx.Upsert(ctx, identity, patch, s.now()); err != nil {
			return err
		}
		m, err := tx.Get(ctx, identity)
		if err != nil {
			return err
		}
		saved = m
		return nil
	})
	if err != nil {
		s.log.Error("save %s failed: %v", identity, err)
		return nil, &domain.StoreError{Op: "save", Identity: identity, Kind: domain.ErrStorageWriteFailed, Err: err}
	}
	return saved, nil
}

// GetAll returns every stored record ordered by identity
func (s *Store) GetAll(ctx context.Context) ([]domain.StoredMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, notOpen("get all", "")
	}

	rows, err := s.db.QueryContext(ctx, selectAll)
	if err != nil {
		return nil, &domain.StoreError{Op: "get all", Err: err}
	}
	defer rows.Close()

	var all []domain.StoredMetadata
	for rows.Next() {
		m, err := scanMetadata(rows)
		if err != nil {
			return nil, &domain.StoreError{Op: "get all", Err: err}
		}
		all = append(all, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StoreError{Op: "get all", Err: err}
	}
	return all, nil
}

// ExportSnapshot encodes every stored record
func (s *Store) ExportSnapshot(ctx context.Context) ([]byte, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Encode(all)
}

// ImportSnapshot replaces the store contents with the records in payload.
// The payload is validated in full before anything is cleared, and the
// clear and inserts commit as one transaction.
func (s *Store) ImportSnapshot(ctx context.Context, payload []byte) (int, error) {
	records, err := snapshot.Decode(payload)
	if err != nil {
		return 0, &domain.StoreError{Op: "import", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return 0, notOpen("import", "")
	}

	now := s.now()
	err = s.withTx(ctx, func(tx *metadataTx) error {
		if err := tx.Clear(ctx); err != nil {
			return err
		}
		for _, m := range records {
			if m.LastModified.IsZero() {
				m.LastModified = now
			}
			if err := tx.Insert(ctx, m); err != nil {
				return fmt.Errorf("insert %q: %w", m.Identity, err)
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error("import failed, store left unchanged: %v", err)
		return 0, &domain.StoreError{Op: "import", Kind: domain.ErrStorageWriteFailed, Err: err}
	}

	s.log.Info("imported %d records", len(records))
	return len(records), nil
}

func unavailable(err error) error {
	return &domain.StoreError{Op: "init", Kind: domain.ErrStorageUnavailable, Err: err}
}

func notOpen(op, identity string) error {
	return &domain.StoreError{
		Op:       op,
		Identity: identity,
		Kind:     domain.ErrStorageUnavailable,
		Err:      errors.New("store is not initialized"),
	}
}
