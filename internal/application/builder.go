package application

import (
	"context"
	"strings"

	"photonotes/internal/domain"
	"photonotes/internal/logger"
	"photonotes/internal/ports"
)

// RecordBuilder merges a file's intrinsic attributes with any stored
// override for the same identity
type RecordBuilder struct {
	extractor ports.Extractor
	store     ports.MetadataStore
	log       *logger.Logger
}

// NewRecordBuilder creates a builder. extractor may be nil, in which case
// every extracted field is unknown.
func NewRecordBuilder(extractor ports.Extractor, store ports.MetadataStore, log *logger.Logger) *RecordBuilder {
	return &RecordBuilder{
		extractor: extractor,
		store:     store,
		log:       log.Named("builder"),
	}
}

// Build creates the merged record for file. Extraction problems never fail
// the build; a failed store lookup does.
func (b *RecordBuilder) Build(ctx context.Context, file ports.ImageFile) (*domain.ImageRecord, error) {
	if strings.TrimSpace(file.Identity) == "" {
		return nil, domain.ErrInvalidIdentity
	}

	record := domain.NewImageRecord(file.Identity, b.intrinsic(ctx, file), file)

	stored, err := b.store.Get(ctx, file.Identity)
	if err != nil {
		return nil, err
	}
	record.Apply(stored)

	return record, nil
}

func (b *RecordBuilder) intrinsic(ctx context.Context, file ports.ImageFile) domain.Intrinsic {
	mediaType := file.MediaType
	if mediaType == "" {
		mediaType = domain.Unknown
	}
	in := domain.UnknownIntrinsic(file.Name, FormatSize(file.Size), mediaType)

	if b.extractor == nil {
		return in
	}

	tags, err := b.extractor.Extract(ctx, file, domain.ExtractableFields)
	if err != nil {
		b.log.Debug("no tags for %s: %v", file.Identity, err)
		return in
	}

	set := func(dst *string, f domain.Field) {
		if v := strings.TrimSpace(tags[f]); v != "" {
			*dst = v
		}
	}
	set(&in.DateCreated, domain.FieldDateCreated)
	set(&in.Make, domain.FieldMake)
	set(&in.Model, domain.FieldModel)
	set(&in.Software, domain.FieldSoftware)
	set(&in.Artist, domain.FieldArtist)

	return in
}
