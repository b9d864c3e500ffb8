package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"photonotes/internal/adapters/tui/styles"
	"photonotes/internal/application"
	"photonotes/internal/application/commands"
	"photonotes/internal/domain"
	"photonotes/internal/logger"
	"photonotes/internal/ports"
)

// GalleryKeyMap defines key bindings for the gallery view
type GalleryKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	NextMonth key.Binding
	PrevMonth key.Binding
	Open      key.Binding
	Select    key.Binding
	Sort      key.Binding
	Notes     key.Binding
	Model     key.Binding
	Reset     key.Binding
	Edit      key.Binding
	Editor    key.Binding
	View      key.Binding
	Copy      key.Binding
	Rescan    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var GalleryKeys = GalleryKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+f"),
		key.WithHelp("pgdn", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("pgup", "ctrl+b"),
		key.WithHelp("pgup", "prev page"),
	),
	NextMonth: key.NewBinding(
		key.WithKeys("]", "l", "right"),
		key.WithHelp("]", "next month"),
	),
	PrevMonth: key.NewBinding(
		key.WithKeys("[", "h", "left"),
		key.WithHelp("[", "prev month"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "details"),
	),
	Select: key.NewBinding(
		key.WithKeys("t", " "),
		key.WithHelp("t", "highlight month"),
	),
	Sort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort"),
	),
	Notes: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "notes only"),
	),
	Model: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "camera"),
	),
	Reset: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "reset"),
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
		key.WithHelp("y", "copy path"),
	),
	Rescan: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "rescan"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Scanner runs folder scans for the gallery
type Scanner struct {
	Files    ports.FileSource
	Builder  *application.RecordBuilder
	Sessions *application.Sessions
	Log      *logger.Logger
	Workers  int
}

// GalleryModel lists the photos of the current folder grouped by month
type GalleryModel struct {
	Frame
	gallery *application.Gallery
	scanner *Scanner
	viewer  ports.ImageViewer
	resolve func(identity string) (string, error)
	root    string

	scanning  bool
	spinner   spinner.Model
	pager     *Pager
	view      *domain.ViewIndex
}

// NewGalleryModel creates a gallery view over root. viewer and resolve may
// be nil, which disables opening photos in the system viewer.
func NewGalleryModel(gallery *application.Gallery, scanner *Scanner, viewer ports.ImageViewer, resolve func(string) (string, error), root string) *GalleryModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	m := &GalleryModel{
		gallery:   gallery,
		scanner:   scanner,
		viewer:    viewer,
		resolve:   resolve,
		root:      root,
		spinner:   s,
		pager:     NewPager(20),
	}
	m.sync()
	return m
}

// Init starts the first scan
func (m *GalleryModel) Init() tea.Cmd {
	return m.Rescan()
}

// Rescan scans the folder again, superseding any scan still running
func (m *GalleryModel) Rescan() tea.Cmd {
	if m.scanner == nil {
		return nil
	}
	m.scanning = true
	return tea.Batch(m.spinner.Tick, m.scan())
}

func (m *GalleryModel) scan() tea.Cmd {
	sc := m.scanner
	root := m.root
	return func() tea.Msg {
		cmd := commands.NewIngestCommand(sc.Files, sc.Builder, sc.Sessions, m.gallery, sc.Log, root, sc.Workers)
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return ScanDoneMsg{Err: err}
		}
		return ScanDoneMsg{
			Loaded:  len(result.Records),
			Failed:  result.Failed,
			Message: result.Message,
		}
	}
}

// Update handles messages for the gallery
func (m *GalleryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.scanning {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case ScanDoneMsg:
		if errors.Is(msg.Err, application.ErrSessionSuperseded) {
			// A newer scan is running and will report
			return m, nil
		}
		m.scanning = false
		if msg.Err != nil {
			m.SetMessage(msg.Err.Error(), true)
		} else {
			m.SetMessage(msg.Message, msg.Failed > 0)
		}
		m.pager.SetCursor(0)
		m.sync()
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *GalleryModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, GalleryKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, GalleryKeys.Help):
		return m, func() tea.Msg { return SwitchToHelpMsg{} }

	case key.Matches(msg, GalleryKeys.Rescan):
		return m, m.Rescan()
	}

	if m.scanning {
		return m, nil
	}

	switch {
	case key.Matches(msg, GalleryKeys.Up):
		m.pager.Up()

	case key.Matches(msg, GalleryKeys.Down):
		m.pager.Down()

	case key.Matches(msg, GalleryKeys.NextPage):
		m.pager.PageDown()

	case key.Matches(msg, GalleryKeys.PrevPage):
		m.pager.PageUp()

	case key.Matches(msg, GalleryKeys.NextMonth):
		m.jumpMonth(1)

	case key.Matches(msg, GalleryKeys.PrevMonth):
		m.jumpMonth(-1)

	case key.Matches(msg, GalleryKeys.Select):
		m.toggleMonth()

	case key.Matches(msg, GalleryKeys.Sort):
		m.rebuild(m.gallery.ToggleDirection())

	case key.Matches(msg, GalleryKeys.Notes):
		spec := m.gallery.Filter()
		spec.NotesOnly = !spec.NotesOnly
		m.rebuild(m.gallery.SetFilter(spec))

	case key.Matches(msg, GalleryKeys.Model):
		spec := m.gallery.Filter()
		spec.Model = nextModel(m.gallery.Models(), spec.Model)
		m.rebuild(m.gallery.SetFilter(spec))

	case key.Matches(msg, GalleryKeys.Reset):
		m.rebuild(m.gallery.Reset())

	case key.Matches(msg, GalleryKeys.Open):
		if id, ok := m.Current(); ok {
			return m, func() tea.Msg { return SwitchToDetailMsg{Identity: id} }
		}

	case key.Matches(msg, GalleryKeys.Edit):
		if r := m.currentRecord(); r != nil {
			return m, func() tea.Msg { return SwitchToEditMsg{Record: r} }
		}

	case key.Matches(msg, GalleryKeys.Editor):
		if r := m.currentRecord(); r != nil {
			return m, func() tea.Msg { return OpenNotesEditorMsg{Record: r} }
		}

	case key.Matches(msg, GalleryKeys.View):
		if id, ok := m.Current(); ok {
			m.openImage(id)
		}

	case key.Matches(msg, GalleryKeys.Copy):
		if id, ok := m.Current(); ok {
			if err := clipboard.WriteAll(id); err != nil {
				m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
			} else {
				m.SetMessage("Copied "+id, false)
			}
		}
	}

	return m, nil
}

// nextModel cycles through "all" and every model
func nextModel(models []string, current string) string {
	if len(models) == 0 {
		return ""
	}
	if current == "" {
		return models[0]
	}
	for i, mdl := range models {
		if mdl == current && i+1 < len(models) {
			return models[i+1]
		}
	}
	return ""
}

// jumpMonth moves the cursor to the first photo of a neighbouring month
func (m *GalleryModel) jumpMonth(delta int) {
	pos, ok := m.view.PositionAt(m.pager.Cursor())
	if !ok {
		return
	}
	target := pos.Bucket + delta
	if delta < 0 && pos.Offset > 0 {
		// First go back to the start of the current month
		target = pos.Bucket
	}
	if i, ok := m.view.GlobalIndex(domain.Position{Bucket: target}); ok {
		m.pager.Jump(i)
	}
}

// toggleMonth highlights the month under the cursor, or clears the
// highlight when that month is already active
func (m *GalleryModel) toggleMonth() {
	pos, ok := m.view.PositionAt(m.pager.Cursor())
	if !ok {
		return
	}
	bucket := m.view.Buckets[pos.Bucket]

	res := m.gallery.Select(bucket.Key)
	switch {
	case res.Deselected:
		m.SetMessage("Cleared "+bucket.Key.Label(), false)
	case res.Found():
		if i, ok := m.view.IndexOf(res.Anchor); ok {
			m.pager.SetCursor(i)
		}
		m.SetMessage(fmt.Sprintf("%s: %d photos", bucket.Key.Label(), len(res.Matching)), false)
	}
}

func (m *GalleryModel) openImage(identity string) {
	if m.viewer == nil || m.resolve == nil {
		return
	}
	path, err := m.resolve(identity)
	if err == nil {
		err = m.viewer.Open(path)
	}
	if err != nil {
		m.SetMessage(err.Error(), true)
	}
}

// rebuild keeps the cursor on the same photo when it is still visible
func (m *GalleryModel) rebuild(v *domain.ViewIndex) {
	current, hadCurrent := m.Current()
	m.view = v
	m.pager.SetTotal(v.Len())
	if hadCurrent {
		if i, ok := v.IndexOf(current); ok {
			m.pager.SetCursor(i)
		}
	}
}

// sync picks up changes made to the gallery outside this view
func (m *GalleryModel) sync() {
	m.rebuild(m.gallery.View())
}

// Refresh re-reads the gallery, e.g. after an edit
func (m *GalleryModel) Refresh() {
	m.sync()
}

// Current returns the identity under the cursor
func (m *GalleryModel) Current() (string, bool) {
	return m.view.IdentityAt(m.pager.Cursor())
}

// SetCurrent moves the cursor to identity when it is visible
func (m *GalleryModel) SetCurrent(identity string) {
	if i, ok := m.view.IndexOf(identity); ok {
		m.pager.SetCursor(i)
	}
}

func (m *GalleryModel) currentRecord() *domain.ImageRecord {
	r, _ := m.view.RecordAt(m.pager.Cursor())
	return r
}

// View renders the gallery
func (m *GalleryModel) View() string {
	vb := NewViewBuilder()
	vb.Title("Photonotes")
	vb.Subtitle(m.status())

	if m.scanning {
		vb.Line(m.spinner.View() + " Reading photos in " + m.root)
		vb.BlankLine()
		vb.Help(GalleryKeys.Rescan, GalleryKeys.Quit)
		return vb.String()
	}

	if m.view.Len() == 0 {
		vb.Muted("No photos to show.")
		vb.BlankLine()
	} else {
		vb.Raw(m.renderPage())
		vb.BlankLine()
	}

	vb.Notice(m.Notice)
	vb.Help(
		GalleryKeys.Open, GalleryKeys.Select, GalleryKeys.Sort, GalleryKeys.Notes,
		GalleryKeys.Model, GalleryKeys.Edit, GalleryKeys.Help, GalleryKeys.Quit,
	)
	return vb.String()
}

func (m *GalleryModel) status() string {
	spec := m.gallery.Filter()
	parts := []string{
		fmt.Sprintf("%d photos", m.view.Len()),
		"sorted " + directionLabel(m.gallery.Direction()),
	}
	if spec.NotesOnly {
		parts = append(parts, "with notes")
	}
	if spec.Model != "" {
		parts = append(parts, "camera "+spec.Model)
	}
	if sel := m.gallery.Selection(); sel.Found() {
		parts = append(parts, "highlighting "+sel.Selector.Label())
	}
	if page, pages := m.pager.Page(); pages > 1 {
		parts = append(parts, fmt.Sprintf("page %d/%d", page, pages))
	}
	return strings.Join(parts, " · ")
}

func directionLabel(d domain.SortDirection) string {
	if d == domain.Ascending {
		return "oldest first"
	}
	return "newest first"
}

func (m *GalleryModel) renderPage() string {
	highlighted := make(map[string]bool)
	for _, id := range m.gallery.Selection().Matching {
		highlighted[id] = true
	}

	var b strings.Builder
	start, end := m.pager.Visible()
	lastBucket := -1
	for i := start; i < end; i++ {
		pos, _ := m.view.PositionAt(i)
		if pos.Bucket != lastBucket {
			if lastBucket != -1 {
				b.WriteString("\n")
			}
			b.WriteString(RenderBucketHeader(m.view.Buckets[pos.Bucket]))
			b.WriteString("\n")
			lastBucket = pos.Bucket
		}

		r, _ := m.view.RecordAt(i)
		b.WriteString(RenderPhotoRow(r, i == m.pager.Cursor(), highlighted[r.Identity]))
		b.WriteString("\n")
	}
	return b.String()
}

// SetSize updates the view dimensions and page size
func (m *GalleryModel) SetSize(width, height int) {
	m.Frame.SetSize(width, height)
	// Title, status, help and month headers
	if rows := height - 12; rows > 5 {
		m.pager.Resize(rows)
	}
}
