package commands

import (
	"context"
	"slices"
	"testing"

	"photonotes/internal/adapters/memory"
	"photonotes/internal/application"
	"photonotes/internal/domain"
	"photonotes/internal/logger"
)

func newViewGallery() *application.Gallery {
	g := application.NewGallery(memory.NewStore(), logger.Discard())

	rec := func(id, date, model string) *domain.ImageRecord {
		in := domain.UnknownIntrinsic(id, "1.00 MB", "image/jpeg")
		in.DateCreated = date
		in.Model = model
		return domain.NewImageRecord(id, in, nil)
	}
	g.Load([]*domain.ImageRecord{
		rec("a", "2023-05-01", "X"),
		rec("b", "2023-05-15", "Y"),
		rec("c", domain.Unknown, ""),
	})
	return g
}

func TestViewCommand_Execute(t *testing.T) {
	tests := []struct {
		name      string
		filter    domain.FilterSpec
		direction domain.SortDirection
		month     string
		wantFlat  []string
		wantMatch []string
	}{
		{
			name:      "newest first",
			direction: domain.Descending,
			wantFlat:  []string{"b", "a", "c"},
		},
		{
			name:      "oldest first",
			direction: domain.Ascending,
			wantFlat:  []string{"a", "b", "c"},
		},
		{
			name:     "model filter",
			filter:   domain.FilterSpec{Model: "Y"},
			wantFlat: []string{"b"},
		},
		{
			name:      "month selection",
			month:     "2023-5",
			wantFlat:  []string{"b", "a", "c"},
			wantMatch: []string{"b", "a"},
		},
		{
			name:      "unknown month",
			month:     "unknown",
			wantFlat:  []string{"b", "a", "c"},
			wantMatch: []string{"c"},
		},
		{
			name:      "empty month",
			month:     "1999-1",
			wantFlat:  []string{"b", "a", "c"},
			wantMatch: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewViewCommand(newViewGallery(), tt.filter, tt.direction, tt.month).Execute(context.Background())
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			if !slices.Equal(result.View.Flat, tt.wantFlat) {
				t.Errorf("flat = %v, want %v", result.View.Flat, tt.wantFlat)
			}

			if tt.month == "" {
				if result.Selection != nil {
					t.Errorf("unexpected selection %+v", result.Selection)
				}
				return
			}
			if result.Selection == nil {
				t.Fatal("expected a selection")
			}
			if len(result.Selection.Matching) != len(tt.wantMatch) || (len(tt.wantMatch) > 0 && !slices.Equal(result.Selection.Matching, tt.wantMatch)) {
				t.Errorf("matching = %v, want %v", result.Selection.Matching, tt.wantMatch)
			}
		})
	}
}

func TestViewCommand_InvalidMonth(t *testing.T) {
	_, err := NewViewCommand(newViewGallery(), domain.FilterSpec{}, domain.Descending, "May").Execute(context.Background())
	if err == nil {
		t.Error("expected invalid month error")
	}
}
