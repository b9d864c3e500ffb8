package views

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"photonotes/internal/adapters/tui/styles"
	"photonotes/internal/application"
	"photonotes/internal/domain"
)

// DetailKeyMap defines key bindings for the detail view
type DetailKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Edit   key.Binding
	Editor key.Binding
	View   key.Binding
	Copy   key.Binding
	Back   key.Binding
}

var DetailKeys = DetailKeyMap{
	Next: key.NewBinding(
		key.WithKeys("l", "right", "j", "down"),
		key.WithHelp("→", "next"),
	),
	Prev: key.NewBinding(
		key.WithKeys("h", "left", "k", "up"),
		key.WithHelp("←", "previous"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Editor: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "notes in $EDITOR"),
	),
	View: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open image"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy notes"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "q", "enter"),
		key.WithHelp("esc", "back"),
	),
}

// DetailModel shows one photo and steps through the current view
type DetailModel struct {
	Frame
	gallery *application.Gallery
	cursor  domain.Cursor
	view    *domain.ViewIndex
	openFn  func(identity string) error
}

// NewDetailModel creates a detail view. openFn opens a photo in the system
// viewer and may be nil.
func NewDetailModel(gallery *application.Gallery, openFn func(identity string) error) *DetailModel {
	return &DetailModel{
		gallery: gallery,
		openFn:  openFn,
	}
}

// Open shows identity, reporting false when it is not in the current view
func (m *DetailModel) Open(identity string) bool {
	m.ClearMessage()
	m.view = m.gallery.View()
	return m.cursor.Open(m.view, identity)
}

// Rebase follows the gallery after its view was rebuilt, keeping the same
// photo when it is still visible
func (m *DetailModel) Rebase() {
	m.view = m.gallery.View()
	m.cursor.Rebase(m.view)
}

// Identity returns the photo on screen
func (m *DetailModel) Identity() (string, bool) {
	return m.cursor.Identity()
}

// Init initializes the detail view
func (m *DetailModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view
func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, DetailKeys.Back):
			m.cursor.Close()
			return m, func() tea.Msg { return SwitchToGalleryMsg{} }

		case key.Matches(msg, DetailKeys.Next):
			m.cursor.Next(m.view)

		case key.Matches(msg, DetailKeys.Prev):
			m.cursor.Prev(m.view)

		case key.Matches(msg, DetailKeys.Edit):
			if r := m.record(); r != nil {
				return m, func() tea.Msg { return SwitchToEditMsg{Record: r} }
			}

		case key.Matches(msg, DetailKeys.Editor):
			if r := m.record(); r != nil {
				return m, func() tea.Msg { return OpenNotesEditorMsg{Record: r} }
			}

		case key.Matches(msg, DetailKeys.View):
			if id, ok := m.cursor.Identity(); ok && m.openFn != nil {
				if err := m.openFn(id); err != nil {
					m.SetMessage(err.Error(), true)
				}
			}

		case key.Matches(msg, DetailKeys.Copy):
			if r := m.record(); r != nil {
				if err := clipboard.WriteAll(r.Notes()); err != nil {
					m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
				} else {
					m.SetMessage("Copied notes", false)
				}
			}
		}
	}

	return m, nil
}

func (m *DetailModel) record() *domain.ImageRecord {
	id, ok := m.cursor.Identity()
	if !ok {
		return nil
	}
	r, _ := m.view.Record(id)
	return r
}

// View renders the detail view
func (m *DetailModel) View() string {
	r := m.record()
	if r == nil {
		return NewViewBuilder().Muted("No photo selected.").String()
	}

	vb := NewViewBuilder()
	vb.Title(r.Intrinsic.Name)
	vb.Subtitle(fmt.Sprintf("%s · %d of %d", r.Identity, m.cursor.Index()+1, m.view.Len()))

	vb.Line(RenderLabelValue("Size", r.Intrinsic.Size))
	vb.Line(RenderLabelValue("Type", r.Intrinsic.Type))
	for _, f := range domain.ExtractableFields {
		value := r.Field(f)
		if _, ok := r.Override.Get(f); ok {
			value += " " + styles.EditedMark.String()
		}
		vb.Line(RenderLabelValue(fieldLabel(f), value))
	}
	vb.BlankLine()

	if notes := r.Notes(); notes != "" {
		vb.Line(styles.Notes.Render(notes))
	} else {
		vb.Muted("No notes.")
	}
	vb.BlankLine()

	vb.Notice(m.Notice)
	vb.Help(DetailKeys.Prev, DetailKeys.Next, DetailKeys.Edit, DetailKeys.Editor,
		DetailKeys.View, DetailKeys.Copy, DetailKeys.Back)
	return vb.String()
}

func fieldLabel(f domain.Field) string {
	switch f {
	case domain.FieldDateCreated:
		return "Taken"
	case domain.FieldMake:
		return "Make"
	case domain.FieldModel:
		return "Camera"
	case domain.FieldSoftware:
		return "Software"
	case domain.FieldArtist:
		return "Artist"
	case domain.FieldNotes:
		return "Notes"
	}
	return string(f)
}
