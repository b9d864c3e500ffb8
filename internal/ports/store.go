package ports

import (
	"context"

	"photonotes/internal/domain"
)

// MetadataStore persists user overrides keyed by photo identity.
// Implementations must tolerate concurrent Get calls and isolate Save calls
// for different identities from each other.
type MetadataStore interface {
	// Lifecycle. Init is idempotent.
	Init(ctx context.Context) error
	Close() error

	// Get returns nil and no error when nothing is stored for identity
	Get(ctx context.Context, identity string) (*domain.StoredMetadata, error)

	// Save applies patch on top of any stored override (fields absent from
	// patch are left untouched) and stamps the last modified time
	Save(ctx context.Context, identity string, patch domain.Override) (*domain.StoredMetadata, error)

	GetAll(ctx context.Context) ([]domain.StoredMetadata, error)

	// Snapshot operations. ImportSnapshot replaces the whole store and leaves
	// it untouched when the payload is rejected.
	ExportSnapshot(ctx context.Context) ([]byte, error)
	ImportSnapshot(ctx context.Context, payload []byte) (int, error)
}
