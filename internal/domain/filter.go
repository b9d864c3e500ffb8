package domain

import (
	"fmt"
	"strings"
)

// Filter selects the records that take part in a view. Filters must be pure.
type Filter func(r *ImageRecord) bool

// NoFilter keeps every record
func NoFilter(*ImageRecord) bool { return true }

// HasNotes keeps records with non-blank notes
func HasNotes(r *ImageRecord) bool { return r.HasNotes() }

// ByModel keeps records whose effective camera model equals model.
// An empty model or "all" keeps every record.
func ByModel(model string) Filter {
	if model == "" || strings.EqualFold(model, "all") {
		return NoFilter
	}
	return func(r *ImageRecord) bool {
		return r.Model() == model
	}
}

// AllOf keeps records accepted by every filter
func AllOf(filters ...Filter) Filter {
	return func(r *ImageRecord) bool {
		for _, f := range filters {
			if f != nil && !f(r) {
				return false
			}
		}
		return true
	}
}

// FilterSpec is the user-facing filter state
type FilterSpec struct {
	NotesOnly bool
	Model     string // "" means all models
}

// Predicate builds the filter described by s
func (s FilterSpec) Predicate() Filter {
	if !s.NotesOnly && s.Model == "" {
		return NoFilter
	}
	if s.NotesOnly {
		return AllOf(HasNotes, ByModel(s.Model))
	}
	return ByModel(s.Model)
}

// SortDirection orders records by capture timestamp
type SortDirection int

const (
	Descending SortDirection = iota
	Ascending
)

func (d SortDirection) String() string {
	if d == Ascending {
		return "asc"
	}
	return "desc"
}

// Toggle returns the opposite direction
func (d SortDirection) Toggle() SortDirection {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// ParseSortDirection parses "asc" or "desc"
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc", "descending", "newest":
		return Descending, nil
	case "asc", "ascending", "oldest":
		return Ascending, nil
	}
	return Descending, fmt.Errorf("invalid sort direction %q: expected asc or desc", s)
}
