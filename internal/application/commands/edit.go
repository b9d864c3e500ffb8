package commands

import (
	"context"
	"fmt"

	"photonotes/internal/application"
	"photonotes/internal/domain"
	"photonotes/internal/ports"
)

// EditResult contains the result of an edit
type EditResult struct {
	Identity string
	Override domain.Override     // stored override after the edit
	Record   *domain.ImageRecord // merged record, nil when the photo is not loaded
	Message  string
}

// EditCommand saves a partial override for one photo
type EditCommand struct {
	store    ports.MetadataStore
	gallery  *application.Gallery
	Identity string
	Patch    domain.Override
}

// NewEditCommand creates a new EditCommand. When the photo is loaded in
// gallery the edit goes through it so that its view is rebuilt; otherwise
// it is saved to store directly. gallery may be nil.
func NewEditCommand(store ports.MetadataStore, gallery *application.Gallery, identity string, patch domain.Override) *EditCommand {
	return &EditCommand{
		store:    store,
		gallery:  gallery,
		Identity: identity,
		Patch:    patch,
	}
}

// NewNoteCommand creates an EditCommand that replaces the notes of a photo
func NewNoteCommand(store ports.MetadataStore, gallery *application.Gallery, identity, notes string) *EditCommand {
	return NewEditCommand(store, gallery, identity, domain.Override{Notes: domain.String(notes)})
}

// PatchField builds a single-field override from a field name
func PatchField(field, value string) (domain.Override, error) {
	f, err := application.ValidateField(field)
	if err != nil {
		return domain.Override{}, err
	}
	var patch domain.Override
	patch.Set(f, value)
	return patch, nil
}

// Validate checks if the edit operation is valid
func (c *EditCommand) Validate() error {
	if err := application.ValidateRequired("identity", c.Identity); err != nil {
		return err
	}
	return application.ValidateOverride(c.Patch)
}

// Execute runs the edit command
func (c *EditCommand) Execute(ctx context.Context) (*EditResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result := &EditResult{
		Identity: c.Identity,
		Message:  fmt.Sprintf("Saved %s", c.Identity),
	}

	if c.gallery != nil {
		if _, ok := c.gallery.Record(c.Identity); ok {
			r, err := c.gallery.Edit(ctx, c.Identity, c.Patch)
			if err != nil {
				return nil, fmt.Errorf("failed to save %s: %w", c.Identity, err)
			}
			result.Record = r
			result.Override = r.Override.Clone()
			return result, nil
		}
	}

	stored, err := c.store.Save(ctx, c.Identity, c.Patch)
	if err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", c.Identity, err)
	}
	result.Override = stored.Override
	return result, nil
}
