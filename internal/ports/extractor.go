package ports

import (
	"context"

	"photonotes/internal/domain"
)

// Extractor reads descriptive tags from an image.
// It may return any subset of the requested fields, or an error when the
// file cannot be read at all. Callers treat both cases the same way.
type Extractor interface {
	Extract(ctx context.Context, h domain.Handle, fields []domain.Field) (map[domain.Field]string, error)
}
