package domain

import (
	"io"
	"strings"
	"time"
)

// Unknown is the sentinel shown for any field with neither an override nor an intrinsic value
const Unknown = "unknown"

// Field names an editable attribute of a photo
type Field string

const (
	FieldNotes       Field = "notes"
	FieldDateCreated Field = "dateCreated"
	FieldMake        Field = "make"
	FieldModel       Field = "model"
	FieldSoftware    Field = "software"
	FieldArtist      Field = "artist"
)

// ExtractableFields are the fields an extractor is asked for
var ExtractableFields = []Field{FieldDateCreated, FieldMake, FieldModel, FieldSoftware, FieldArtist}

// EditableFields are the fields a user may override, in display order
var EditableFields = []Field{FieldNotes, FieldDateCreated, FieldMake, FieldModel, FieldSoftware, FieldArtist}

// ParseField resolves a field name, accepting the snake_case spelling for dateCreated
func ParseField(name string) (Field, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "notes", "note":
		return FieldNotes, true
	case "datecreated", "date_created", "date":
		return FieldDateCreated, true
	case "make":
		return FieldMake, true
	case "model":
		return FieldModel, true
	case "software":
		return FieldSoftware, true
	case "artist":
		return FieldArtist, true
	}
	return "", false
}

// Handle is a transient reference to the image bytes. It is never persisted.
type Handle interface {
	Open() (io.ReadCloser, error)
}

// Intrinsic holds attributes derived from the file itself
type Intrinsic struct {
	Name        string
	Size        string // e.g. "2.41 MB"
	Type        string // media type, e.g. "image/jpeg"
	DateCreated string
	Make        string
	Model       string
	Software    string
	Artist      string
}

// UnknownIntrinsic returns the intrinsic set used when extraction fails
func UnknownIntrinsic(name, size, mediaType string) Intrinsic {
	return Intrinsic{
		Name:        name,
		Size:        size,
		Type:        mediaType,
		DateCreated: Unknown,
		Make:        Unknown,
		Model:       Unknown,
		Software:    Unknown,
		Artist:      Unknown,
	}
}

func (in Intrinsic) field(f Field) string {
	switch f {
	case FieldDateCreated:
		return in.DateCreated
	case FieldMake:
		return in.Make
	case FieldModel:
		return in.Model
	case FieldSoftware:
		return in.Software
	case FieldArtist:
		return in.Artist
	}
	return ""
}

// Override is a user-editable set of fields. A nil pointer means "no override".
type Override struct {
	Notes       *string `json:"notes,omitempty"`
	DateCreated *string `json:"dateCreated,omitempty"`
	Make        *string `json:"make,omitempty"`
	Model       *string `json:"model,omitempty"`
	Software    *string `json:"software,omitempty"`
	Artist      *string `json:"artist,omitempty"`
}

// String returns a pointer to s, for building overrides
func String(s string) *string {
	return &s
}

// Get returns the override value for f and whether it is present
func (o Override) Get(f Field) (string, bool) {
	p := o.ptr(f)
	if p == nil || *p == nil {
		return "", false
	}
	return **p, true
}

// Set stores v as the override for f
func (o *Override) Set(f Field, v string) {
	if p := o.ptr(f); p != nil {
		*p = String(v)
	}
}

// IsEmpty reports whether no field is present
func (o Override) IsEmpty() bool {
	for _, f := range EditableFields {
		if _, ok := o.Get(f); ok {
			return false
		}
	}
	return true
}

// Patch returns a copy of o with every field present in p replacing the
// corresponding field of o. Fields absent from p are left untouched.
func (o Override) Patch(p Override) Override {
	out := o.Clone()
	for _, f := range EditableFields {
		if v, ok := p.Get(f); ok {
			out.Set(f, v)
		}
	}
	return out
}

// Clone returns a deep copy
func (o Override) Clone() Override {
	var out Override
	for _, f := range EditableFields {
		if v, ok := o.Get(f); ok {
			out.Set(f, v)
		}
	}
	return out
}

func (o *Override) ptr(f Field) **string {
	switch f {
	case FieldNotes:
		return &o.Notes
	case FieldDateCreated:
		return &o.DateCreated
	case FieldMake:
		return &o.Make
	case FieldModel:
		return &o.Model
	case FieldSoftware:
		return &o.Software
	case FieldArtist:
		return &o.Artist
	}
	return nil
}

// StoredMetadata is the persisted shape, one per identity
type StoredMetadata struct {
	Identity     string
	Override     Override
	LastModified time.Time
}

// ImageRecord is a photo with its intrinsic attributes and any persisted override merged in
type ImageRecord struct {
	Identity  string
	Intrinsic Intrinsic
	Override  Override
	Handle    Handle
}

// NewImageRecord creates a record with no override
func NewImageRecord(identity string, intrinsic Intrinsic, handle Handle) *ImageRecord {
	return &ImageRecord{
		Identity:  identity,
		Intrinsic: intrinsic,
		Handle:    handle,
	}
}

// Apply replaces the record's override with the stored one. Applying the
// same stored metadata any number of times yields the same record.
func (r *ImageRecord) Apply(stored *StoredMetadata) {
	if stored == nil {
		r.Override = Override{}
		return
	}
	r.Override = stored.Override.Clone()
}

// Field returns the effective value of f: a non-empty override, else a
// non-blank intrinsic value, else Unknown. A whitespace-only override is
// non-empty and is returned as is. Notes have no intrinsic value and
// are returned verbatim or empty.
func (r *ImageRecord) Field(f Field) string {
	if f == FieldNotes {
		v, _ := r.Override.Get(FieldNotes)
		return v
	}
	if v, ok := r.Override.Get(f); ok && v != "" {
		return v
	}
	if v := r.Intrinsic.field(f); strings.TrimSpace(v) != "" {
		return v
	}
	return Unknown
}

func (r *ImageRecord) Notes() string       { return r.Field(FieldNotes) }
func (r *ImageRecord) DateCreated() string { return r.Field(FieldDateCreated) }
func (r *ImageRecord) Make() string        { return r.Field(FieldMake) }
func (r *ImageRecord) Model() string       { return r.Field(FieldModel) }
func (r *ImageRecord) Software() string    { return r.Field(FieldSoftware) }
func (r *ImageRecord) Artist() string      { return r.Field(FieldArtist) }

// HasNotes reports whether the record carries non-blank notes
func (r *ImageRecord) HasNotes() bool {
	return strings.TrimSpace(r.Notes()) != ""
}

// Timestamp parses the effective capture timestamp
func (r *ImageRecord) Timestamp() (time.Time, bool) {
	return ParseTimestamp(r.DateCreated())
}

// Bucket returns the time bucket of the record
func (r *ImageRecord) Bucket() BucketKey {
	t, ok := r.Timestamp()
	if !ok {
		return UnknownBucket
	}
	return BucketOf(t)
}
