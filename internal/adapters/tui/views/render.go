package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"photonotes/internal/adapters/tui/styles"
	"photonotes/internal/domain"
)

// RenderHelpLine renders key bindings as "key desc" pairs
func RenderHelpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderLabelValue renders one "Label: value" line of the detail screen
func RenderLabelValue(label, value string) string {
	return styles.InputLabel.Render(label+":") + " " + value
}

// RenderBucketHeader renders a month header with its photo count
func RenderBucketHeader(b domain.Bucket) string {
	header := fmt.Sprintf("%s (%d)", b.Key.Label(), len(b.Identities))
	return styles.BucketStyle(b.Key.IsUnknown()).Render(header)
}

// RenderPhotoRow renders one gallery row: notes mark, name, date and camera.
// Names of photos with any override carry the edited mark.
func RenderPhotoRow(r *domain.ImageRecord, selected, highlighted bool) string {
	mark := " "
	if r.HasNotes() {
		mark = styles.NotesMark.String()
	}

	name := r.Intrinsic.Name
	if !r.Override.IsEmpty() {
		name += styles.EditedMark.String()
	}
	switch {
	case selected:
		name = styles.PhotoSelected.Render(name)
	case highlighted:
		name = styles.PhotoHighlighted.Render(name)
	default:
		name = styles.Photo.Render(name)
	}

	return fmt.Sprintf("  %s %s  %s  %s",
		mark,
		name,
		styles.PhotoDate.Render(r.DateCreated()),
		styles.PhotoModel.Render(r.Model()),
	)
}

// ViewBuilder assembles a screen: title, body, notice and help
type ViewBuilder struct {
	b strings.Builder
}

func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n\n")
	return v
}

func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	v.b.WriteString(styles.Subtitle.Render(subtitle))
	v.b.WriteString("\n\n")
	return v
}

func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	return v.Line(styles.MutedText.Render(text))
}

// Notice adds the notice followed by a blank line, if there is one
func (v *ViewBuilder) Notice(n Notice) *ViewBuilder {
	if s := n.Render(); s != "" {
		v.b.WriteString(s)
		v.b.WriteString("\n\n")
	}
	return v
}

func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

func (v *ViewBuilder) Raw(text string) *ViewBuilder {
	v.b.WriteString(text)
	return v
}

// String returns the screen wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
