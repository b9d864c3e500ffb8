package sqlite

import (
	"context"
	"database/sql"
	"time"

	"photonotes/internal/domain"
)

const columns = `identity, notes, date_created, make, model, software, artist, last_modified`

const (
	selectOne = `SELECT ` + columns + ` FROM image_metadata WHERE identity = ?`
	selectAll = `SELECT ` + columns + ` FROM image_metadata ORDER BY identity`
)

// NULL means "no override"; COALESCE keeps the stored value for fields
// absent from the patch
const upsert = `
	INSERT INTO image_metadata (` + columns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(identity) DO UPDATE SET
		notes = COALESCE(excluded.notes, image_metadata.notes),
		date_created = COALESCE(excluded.date_created, image_metadata.date_created),
		make = COALESCE(excluded.make, image_metadata.make),
		model = COALESCE(excluded.model, image_metadata.model),
		software = COALESCE(excluded.software, image_metadata.software),
		artist = COALESCE(excluded.artist, image_metadata.artist),
		last_modified = excluded.last_modified
`

const timeFormat = time.RFC3339Nano

// metadataTx groups the statements used inside a write transaction
type metadataTx struct {
	tx *sql.Tx
}

// withTx runs fn inside a transaction, committing on success
func (s *Store) withTx(ctx context.Context, fn func(tx *metadataTx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	t := &metadataTx{tx: tx}

	if err := fn(t); err != nil {
		t.Rollback()
		return err
	}
	return t.Commit()
}

// Upsert applies patch on top of the stored row
func (t *metadataTx) Upsert(ctx context.Context, identity string, patch domain.Override, at time.Time) error {
	_, err := t.tx.ExecContext(ctx, upsert,
		identity,
		nullable(patch.Notes),
		nullable(patch.DateCreated),
		nullable(patch.Make),
		nullable(patch.Model),
		nullable(patch.Software),
		nullable(patch.Artist),
		at.UTC().Format(timeFormat),
	)
	return err
}

// Insert writes m as a new row
func (t *metadataTx) Insert(ctx context.Context, m domain.StoredMetadata) error {
	_, err := t.tx.ExecContext(ctx, `INSERT INTO image_metadata (`+columns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Identity,
		nullable(m.Override.Notes),
		nullable(m.Override.DateCreated),
		nullable(m.Override.Make),
		nullable(m.Override.Model),
		nullable(m.Override.Software),
		nullable(m.Override.Artist),
		m.LastModified.UTC().Format(timeFormat),
	)
	return err
}

// Get reads a row inside the transaction
func (t *metadataTx) Get(ctx context.Context, identity string) (*domain.StoredMetadata, error) {
	return scanMetadata(t.tx.QueryRowContext(ctx, selectOne, identity))
}

// Clear removes every row
func (t *metadataTx) Clear(ctx context.Context) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM image_metadata`)
	return err
}

// Commit commits the transaction
func (t *metadataTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *metadataTx) Rollback() error {
	return t.tx.Rollback()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMetadata(row scanner) (*domain.StoredMetadata, error) {
	var (
		m                                            domain.StoredMetadata
		notes, date, camera, model, software, artist sql.NullString
		lastModified                                 string
	)

	err := row.Scan(&m.Identity, &notes, &date, &camera, &model, &software, &artist, &lastModified)
	if err != nil {
		return nil, err
	}

	m.Override = domain.Override{
		Notes:       fromNull(notes),
		DateCreated: fromNull(date),
		Make:        fromNull(camera),
		Model:       fromNull(model),
		Software:    fromNull(software),
		Artist:      fromNull(artist),
	}
	if t, err := time.Parse(timeFormat, lastModified); err == nil {
		m.LastModified = t
	}

	return &m, nil
}

func nullable(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return domain.String(ns.String)
}
