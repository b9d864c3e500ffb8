package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"photonotes/internal/adapters/memory"
	"photonotes/internal/application"
	"photonotes/internal/domain"
	"photonotes/internal/logger"
)

func TestEditCommand_Validate(t *testing.T) {
	tests := []struct {
		name     string
		identity string
		patch    domain.Override
		wantErr  bool
		errMsg   string
	}{
		{
			name:     "valid notes",
			identity: "lib/a.jpg",
			patch:    domain.Override{Notes: domain.String("hello")},
			wantErr:  false,
		},
		{
			name:     "empty identity",
			identity: "",
			patch:    domain.Override{Notes: domain.String("hello")},
			wantErr:  true,
			errMsg:   "identity is required",
		},
		{
			name:     "empty patch",
			identity: "lib/a.jpg",
			patch:    domain.Override{},
			wantErr:  true,
			errMsg:   "at least one field",
		},
		{
			name:     "bad date",
			identity: "lib/a.jpg",
			patch:    domain.Override{DateCreated: domain.String("tomorrow")},
			wantErr:  true,
			errMsg:   "unrecognized timestamp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &EditCommand{Identity: tt.identity, Patch: tt.patch}
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestEditCommand_StoreOnly(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	if _, err := NewEditCommand(store, nil, "lib/a.jpg", domain.Override{Make: domain.String("Canon")}).Execute(ctx); err != nil {
		t.Fatal(err)
	}
	result, err := NewNoteCommand(store, nil, "lib/a.jpg", "first light").Execute(ctx)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Record != nil {
		t.Error("expected no record without a gallery")
	}
	if v, _ := result.Override.Get(domain.FieldMake); v != "Canon" {
		t.Errorf("make = %q, want Canon", v)
	}
	if v, _ := result.Override.Get(domain.FieldNotes); v != "first light" {
		t.Errorf("notes = %q", v)
	}
}

func TestEditCommand_ThroughGallery(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	gallery := application.NewGallery(store, logger.Discard())
	in := domain.UnknownIntrinsic("a.jpg", "1.00 MB", "image/jpeg")
	in.Model = "X"
	gallery.Load([]*domain.ImageRecord{domain.NewImageRecord("lib/a.jpg", in, nil)})

	patch, err := PatchField("model", "Y")
	if err != nil {
		t.Fatal(err)
	}
	result, err := NewEditCommand(store, gallery, "lib/a.jpg", patch).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Record == nil || result.Record.Model() != "Y" {
		t.Fatalf("expected merged record with model Y, got %+v", result.Record)
	}
	if got := gallery.Models(); len(got) != 1 || got[0] != "Y" {
		t.Errorf("gallery models = %v", got)
	}
}

func TestEditCommand_WriteFailure(t *testing.T) {
	store := &brokenSaveStore{Store: memory.NewStore()}
	_, err := NewNoteCommand(store, nil, "lib/a.jpg", "x").Execute(context.Background())
	if !errors.Is(err, domain.ErrStorageWriteFailed) {
		t.Errorf("expected ErrStorageWriteFailed, got %v", err)
	}
}

func TestPatchField(t *testing.T) {
	patch, err := PatchField("date_created", "2023-05-15")
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := patch.Get(domain.FieldDateCreated); !ok || v != "2023-05-15" {
		t.Errorf("dateCreated = %q present=%v", v, ok)
	}

	if _, err := PatchField("aperture", "f/2"); err == nil {
		t.Error("expected unknown field error")
	}
}

type brokenSaveStore struct {
	*memory.Store
}

func (s *brokenSaveStore) Save(ctx context.Context, identity string, patch domain.Override) (*domain.StoredMetadata, error) {
	return nil, &domain.StoreError{Op: "save", Identity: identity, Kind: domain.ErrStorageWriteFailed, Err: errors.New("read-only")}
}
