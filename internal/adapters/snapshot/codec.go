// Package snapshot converts the stored metadata set to and from the portable
// JSON document used by export and import.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"photonotes/internal/domain"
)

// record is the wire shape of one stored entry. imagePath is accepted on
// input as an alias of identity for documents written by older versions.
type record struct {
	Identity     string  `json:"identity,omitempty"`
	ImagePath    string  `json:"imagePath,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	DateCreated  *string `json:"dateCreated,omitempty"`
	Make         *string `json:"make,omitempty"`
	Model        *string `json:"model,omitempty"`
	Software     *string `json:"software,omitempty"`
	Artist       *string `json:"artist,omitempty"`
	LastModified string  `json:"lastModified,omitempty"`
}

// Encode renders records as an indented JSON array ordered by identity.
// An empty set encodes as "[]".
func Encode(records []domain.StoredMetadata) ([]byte, error) {
	sorted := slices.Clone(records)
	slices.SortFunc(sorted, func(a, b domain.StoredMetadata) int {
		return strings.Compare(a.Identity, b.Identity)
	})

	out := make([]record, 0, len(sorted))
	for _, m := range sorted {
		o := m.Override.Clone()
		r := record{
			Identity:    m.Identity,
			Notes:       o.Notes,
			DateCreated: o.DateCreated,
			Make:        o.Make,
			Model:       o.Model,
			Software:    o.Software,
			Artist:      o.Artist,
		}
		if !m.LastModified.IsZero() {
			r.LastModified = m.LastModified.UTC().Format(time.RFC3339Nano)
		}
		out = append(out, r)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses and validates a whole snapshot. Every error wraps
// domain.ErrImportFormatInvalid; on error no records are returned.
func Decode(payload []byte) ([]domain.StoredMetadata, error) {
	payload = bytes.TrimPrefix(payload, []byte("\xef\xbb\xbf"))
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, invalid("expected a JSON array of records")
	}

	var in []record
	if err := json.Unmarshal(trimmed, &in); err != nil {
		return nil, invalid("%v", err)
	}

	out := make([]domain.StoredMetadata, 0, len(in))
	seen := make(map[string]int, len(in))
	for i, r := range in {
		id := r.Identity
		if id == "" {
			id = r.ImagePath
		}
		if strings.TrimSpace(id) == "" {
			return nil, invalid("record %d: missing identity", i)
		}
		if j, dup := seen[id]; dup {
			return nil, invalid("record %d: identity %q already used by record %d", i, id, j)
		}
		seen[id] = i

		m := domain.StoredMetadata{
			Identity: id,
			Override: domain.Override{
				Notes:       r.Notes,
				DateCreated: r.DateCreated,
				Make:        r.Make,
				Model:       r.Model,
				Software:    r.Software,
				Artist:      r.Artist,
			},
		}
		if r.LastModified != "" {
			t, err := time.Parse(time.RFC3339Nano, r.LastModified)
			if err != nil {
				return nil, invalid("record %d: bad lastModified %q", i, r.LastModified)
			}
			m.LastModified = t
		}
		out = append(out, m)
	}

	return out, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrImportFormatInvalid, fmt.Sprintf(format, args...))
}
