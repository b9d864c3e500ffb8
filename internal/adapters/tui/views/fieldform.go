package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"photonotes/internal/adapters/tui/styles"
	"photonotes/internal/domain"
)

// FieldFormKeyMap defines key bindings for the override form
type FieldFormKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Next   key.Binding
	Prev   key.Binding
}

var FieldFormKeys = FieldFormKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "prev field"),
	),
}

type formField struct {
	field    domain.Field
	original string // stored override, "" when absent
	present  bool
	input    textinput.Model
}

// FieldForm edits the override of one record. Each input starts with the
// stored override and shows the effective value as placeholder.
type FieldForm struct {
	fields  []formField
	focused int
}

// NewFieldForm builds inputs for every editable field of r. Multi-line notes
// cannot be edited in a single-line input and are left out.
func NewFieldForm(r *domain.ImageRecord) *FieldForm {
	form := &FieldForm{}
	for _, f := range domain.EditableFields {
		current, present := r.Override.Get(f)
		if f == domain.FieldNotes && strings.Contains(current, "\n") {
			continue
		}

		input := textinput.New()
		if f != domain.FieldNotes {
			input.Placeholder = r.Field(f)
		}
		if f == domain.FieldDateCreated {
			input.Placeholder += "  (YYYY-MM-DD HH:MM:SS)"
		}
		input.SetValue(current)

		form.fields = append(form.fields, formField{
			field:    f,
			original: current,
			present:  present,
			input:    input,
		})
	}
	if len(form.fields) > 0 {
		form.fields[0].input.Focus()
	}
	return form
}

// Len returns the number of inputs
func (f *FieldForm) Len() int {
	return len(f.fields)
}

// Field returns the field edited by input i
func (f *FieldForm) Field(i int) domain.Field {
	return f.fields[i].field
}

// Value returns the trimmed value of input i
func (f *FieldForm) Value(i int) string {
	if i < 0 || i >= len(f.fields) {
		return ""
	}
	return strings.TrimSpace(f.fields[i].input.Value())
}

// SetValue replaces the value of input i
func (f *FieldForm) SetValue(i int, value string) {
	if i < 0 || i >= len(f.fields) {
		return
	}
	f.fields[i].input.SetValue(value)
}

// Patch returns the fields whose value differs from the stored override.
// An emptied field is included with "" so the override is cleared.
func (f *FieldForm) Patch() domain.Override {
	var patch domain.Override
	for i, ff := range f.fields {
		value := f.Value(i)
		if ff.present && value == strings.TrimSpace(ff.original) {
			continue
		}
		if !ff.present && value == "" {
			continue
		}
		patch.Set(ff.field, value)
	}
	return patch
}

func (f *FieldForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update moves focus or forwards msg to the focused input
func (f *FieldForm) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, FieldFormKeys.Next):
			f.focus(f.focused + 1)
			return nil
		case key.Matches(msg, FieldFormKeys.Prev):
			f.focus(f.focused - 1)
			return nil
		}
	}

	if len(f.fields) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focused].input, cmd = f.fields[f.focused].input.Update(msg)
	return cmd
}

func (f *FieldForm) focus(i int) {
	n := len(f.fields)
	if n < 2 {
		return
	}
	f.fields[f.focused].input.Blur()
	f.focused = (i%n + n) % n
	f.fields[f.focused].input.Focus()
}

// View renders every input under its label; edited values carry the edited mark
func (f *FieldForm) View() string {
	var b strings.Builder
	for i, ff := range f.fields {
		label := fieldLabel(ff.field)
		if f.Value(i) != strings.TrimSpace(ff.original) {
			label += " " + styles.EditedMark.String()
		}
		b.WriteString(styles.InputLabel.Render(label))
		b.WriteString("\n")
		if i == f.focused {
			b.WriteString(styles.InputFocused.Render(ff.input.View()))
		} else {
			b.WriteString(styles.InputField.Render(ff.input.View()))
		}
		b.WriteString("\n")
	}
	return b.String()
}
