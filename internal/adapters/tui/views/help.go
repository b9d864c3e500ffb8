package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"photonotes/internal/adapters/tui/styles"
)

var helpCloseKey = key.NewBinding(
	key.WithKeys("esc", "q", "?"),
	key.WithHelp("esc/q/?", "close"),
)

type helpSection struct {
	title    string
	bindings []key.Binding
}

// helpSections is built from the live key maps so the help never drifts
// from the bindings
func helpSections() []helpSection {
	g, d := GalleryKeys, DetailKeys
	return []helpSection{
		{"Gallery", []key.Binding{g.Up, g.Down, g.PrevPage, g.NextPage, g.PrevMonth, g.NextMonth, g.Open}},
		{"View", []key.Binding{g.Select, g.Sort, g.Notes, g.Model, g.Reset, g.Rescan}},
		{"Photo", []key.Binding{g.Edit, g.Editor, g.View, g.Copy}},
		{"Details", []key.Binding{d.Prev, d.Next, d.Copy, d.Back}},
		{"General", []key.Binding{g.Help, g.Quit}},
	}
}

var helpLegend = []string{
	"Photos are grouped by the month they were taken.",
	"Photos without a readable date are listed last.",
	styles.NotesMark.String() + " marks photos with notes, " + styles.EditedMark.String() + " marks edited photos.",
}

// HelpModel lists every key binding
type HelpModel struct {
	Frame
}

func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

func (m *HelpModel) Init() tea.Cmd {
	return nil
}

func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if key.Matches(msg, helpCloseKey) {
			return m, func() tea.Msg { return SwitchToGalleryMsg{} }
		}
	}
	return m, nil
}

func (m *HelpModel) View() string {
	vb := NewViewBuilder()
	vb.Title("Photonotes Help")
	vb.Subtitle("Notes and corrected metadata for a folder of photos")

	for _, section := range helpSections() {
		vb.Line(styles.InputLabel.Render(section.title))
		for _, b := range section.bindings {
			h := b.Help()
			vb.Line(fmt.Sprintf("  %s%s", styles.HelpKey.Render(fmt.Sprintf("%-12s", h.Key)), styles.HelpDesc.Render(h.Desc)))
		}
		vb.BlankLine()
	}

	vb.Line(styles.InputLabel.Render("Months"))
	for _, l := range helpLegend {
		vb.Muted("  " + l)
	}
	vb.BlankLine()

	vb.Help(helpCloseKey)
	return vb.String()
}
