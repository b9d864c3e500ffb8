package views

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"photonotes/internal/application"
	"photonotes/internal/application/commands"
	"photonotes/internal/domain"
	"photonotes/internal/ports"
)

// EditModel is a form over the editable fields of one photo. Blank fields
// show what the file says; clearing a field drops its override.
type EditModel struct {
	Frame
	store   ports.MetadataStore
	gallery *application.Gallery

	record *domain.ImageRecord
	form   *FieldForm
}

// NewEditModel creates the edit form
func NewEditModel(store ports.MetadataStore, gallery *application.Gallery) *EditModel {
	return &EditModel{
		store:   store,
		gallery: gallery,
	}
}

// SetRecord loads r into the form
func (m *EditModel) SetRecord(r *domain.ImageRecord) {
	m.ClearMessage()
	m.record = r
	m.form = NewFieldForm(r)
}

// Patch returns the fields whose value differs from the stored override
func (m *EditModel) Patch() domain.Override {
	if m.form == nil {
		return domain.Override{}
	}
	return m.form.Patch()
}

// Init initializes the edit view
func (m *EditModel) Init() tea.Cmd {
	if m.form == nil {
		return nil
	}
	return m.form.Init()
}

// Update handles messages for the edit view
func (m *EditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.form == nil {
			return m, nil
		}
		switch {
		case key.Matches(msg, FieldFormKeys.Cancel):
			return m, func() tea.Msg { return SwitchToGalleryMsg{} }

		case key.Matches(msg, FieldFormKeys.Submit):
			return m, m.submit()
		}

		return m, m.form.Update(msg)
	}

	return m, nil
}

func (m *EditModel) submit() tea.Cmd {
	patch := m.Patch()
	if patch.IsEmpty() {
		return func() tea.Msg { return SwitchToGalleryMsg{} }
	}
	if err := application.ValidateOverride(patch); err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}

	identity := m.record.Identity
	return func() tea.Msg {
		result, err := commands.NewEditCommand(m.store, m.gallery, identity, patch).Execute(context.Background())
		if err != nil {
			return EditErrMsg{Err: err}
		}
		return EditSuccessMsg{Record: result.Record, Message: result.Message}
	}
}

// View renders the edit form
func (m *EditModel) View() string {
	if m.record == nil || m.form == nil {
		return NewViewBuilder().Muted("No photo selected.").String()
	}

	vb := NewViewBuilder()
	vb.Title("Edit " + m.record.Intrinsic.Name)
	vb.Subtitle(m.record.Identity)

	vb.Raw(m.form.View())
	vb.BlankLine()

	vb.Notice(m.Notice)
	vb.Help(FieldFormKeys.Next, FieldFormKeys.Prev, FieldFormKeys.Submit, FieldFormKeys.Cancel)
	return vb.String()
}
