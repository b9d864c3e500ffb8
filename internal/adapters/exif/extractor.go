// Package exif reads descriptive tags from JPEG and TIFF files
package exif

import (
	"context"
	"fmt"
	"strings"

	goexif "github.com/rwcarlsen/goexif/exif"

	"photonotes/internal/domain"
	"photonotes/internal/ports"
)

var tagNames = map[domain.Field]goexif.FieldName{
	domain.FieldMake:     goexif.Make,
	domain.FieldModel:    goexif.Model,
	domain.FieldSoftware: goexif.Software,
	domain.FieldArtist:   goexif.Artist,
}

// Extractor implements ports.Extractor with goexif
type Extractor struct{}

// Ensure Extractor implements ports.Extractor
var _ ports.Extractor = (*Extractor)(nil)

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the requested fields present in the file's EXIF block.
// Missing tags are left out of the result. Files without a readable EXIF
// block fail with domain.ErrExtractionFailed.
func (e *Extractor) Extract(ctx context.Context, h domain.Handle, fields []domain.Field) (out map[domain.Field]string, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc, err := h.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	defer rc.Close()

	// goexif panics on some malformed IFDs
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, r)
		}
	}()

	x, err := goexif.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	out = make(map[domain.Field]string, len(fields))
	for _, f := range fields {
		if f == domain.FieldDateCreated {
			if t, err := x.DateTime(); err == nil && t.Year() > 0 {
				out[f] = domain.FormatTimestamp(t)
			}
			continue
		}

		name, ok := tagNames[f]
		if !ok {
			continue
		}
		tag, err := x.Get(name)
		if err != nil {
			continue
		}
		v, err := tag.StringVal()
		if err != nil {
			continue
		}
		if v = clean(v); v != "" {
			out[f] = v
		}
	}

	return out, nil
}

// clean drops the NUL padding some cameras leave in ASCII tags
func clean(s string) string {
	return strings.TrimSpace(strings.TrimRight(s, "\x00"))
}
