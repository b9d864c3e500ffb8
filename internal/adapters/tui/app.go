package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"photonotes/internal/adapters/editor"
	"photonotes/internal/adapters/tui/views"
	"photonotes/internal/application"
	"photonotes/internal/application/commands"
	"photonotes/internal/domain"
	"photonotes/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewGallery ViewState = iota
	ViewDetail
	ViewEdit
	ViewHelp
)

// Deps are the services the terminal gallery runs on
type Deps struct {
	Store   ports.MetadataStore
	Gallery *application.Gallery
	Scanner *views.Scanner
	Viewer  ports.ImageViewer
	Resolve func(identity string) (string, error) // identity to file path
	Editor  ports.EditorOpener
	Root    string
	Warning string // shown once the first scan finishes, e.g. degraded storage
}

// App is the main TUI application model
type App struct {
	store   ports.MetadataStore
	gallery *application.Gallery
	editor  ports.EditorOpener
	warning string

	state    ViewState
	returnTo ViewState // view to go back to after an edit
	galleryV *views.GalleryModel
	detail   *views.DetailModel
	edit     *views.EditModel
	help     *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(d Deps) *App {
	var open func(string) error
	if d.Viewer != nil && d.Resolve != nil {
		open = func(identity string) error {
			path, err := d.Resolve(identity)
			if err != nil {
				return err
			}
			return d.Viewer.Open(path)
		}
	}

	return &App{
		store:    d.Store,
		gallery:  d.Gallery,
		editor:   d.Editor,
		warning:  d.Warning,
		state:    ViewGallery,
		galleryV: views.NewGalleryModel(d.Gallery, d.Scanner, d.Viewer, d.Resolve, d.Root),
		detail:   views.NewDetailModel(d.Gallery, open),
		edit:     views.NewEditModel(d.Store, d.Gallery),
		help:     views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.galleryV.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.galleryV.SetSize(msg.Width, msg.Height)
		a.detail.SetSize(msg.Width, msg.Height)
		a.edit.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case views.ScanDoneMsg:
		_, cmd := a.galleryV.Update(msg)
		a.detail.Rebase()
		if a.warning != "" && msg.Err == nil {
			a.galleryV.Warn(a.warning)
			a.warning = ""
		}
		return a, cmd

	// View switching messages
	case views.SwitchToGalleryMsg:
		if a.state == ViewEdit && a.returnTo == ViewDetail {
			a.state = ViewDetail
			return a, nil
		}
		if a.state == ViewDetail {
			if id, ok := a.detail.Identity(); ok {
				a.galleryV.SetCurrent(id)
			}
		}
		a.state = ViewGallery
		a.galleryV.Refresh()
		return a, nil

	case views.SwitchToDetailMsg:
		if a.detail.Open(msg.Identity) {
			a.state = ViewDetail
		}
		return a, nil

	case views.SwitchToEditMsg:
		a.returnTo = a.state
		a.state = ViewEdit
		a.edit.SetRecord(msg.Record)
		return a, a.edit.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	// Edit messages
	case views.EditSuccessMsg:
		a.afterEdit(msg.Message, false)
		return a, nil

	case views.EditErrMsg:
		if a.state == ViewEdit {
			a.edit.SetMessage(msg.Err.Error(), true)
			return a, nil
		}
		a.afterEdit(msg.Err.Error(), true)
		return a, nil

	case views.OpenNotesEditorMsg:
		return a, a.openNotesEditor(msg.Record)

	case notesEditedMsg:
		return a, a.saveNotes(msg)
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewGallery:
		_, cmd = a.galleryV.Update(msg)
	case ViewDetail:
		_, cmd = a.detail.Update(msg)
	case ViewEdit:
		_, cmd = a.edit.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// afterEdit returns from the edit form and rebuilds the views that show
// the edited photo
func (a *App) afterEdit(message string, isErr bool) {
	if a.state == ViewEdit {
		a.state = a.returnTo
	}
	a.galleryV.Refresh()
	a.detail.Rebase()

	if a.state == ViewDetail {
		a.detail.SetMessage(message, isErr)
	} else {
		a.galleryV.SetMessage(message, isErr)
	}
}

type notesEditedMsg struct {
	identity string
	before   string
	draft    *editor.Draft
	err      error
}

func (a *App) openNotesEditor(r *domain.ImageRecord) tea.Cmd {
	if a.editor == nil || r == nil {
		return nil
	}

	before := r.Notes()
	draft, err := editor.NewDraft(before)
	if err != nil {
		return func() tea.Msg { return views.EditErrMsg{Err: err} }
	}

	cmd, err := a.editor.Command(draft.Path)
	if err != nil {
		draft.Remove()
		return func() tea.Msg { return views.EditErrMsg{Err: err} }
	}

	identity := r.Identity
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return notesEditedMsg{identity: identity, before: before, draft: draft, err: err}
	})
}

func (a *App) saveNotes(msg notesEditedMsg) tea.Cmd {
	defer msg.draft.Remove()

	if msg.err != nil {
		err := fmt.Errorf("editor failed: %w", msg.err)
		return func() tea.Msg { return views.EditErrMsg{Err: err} }
	}

	notes, err := msg.draft.Read()
	if err != nil {
		return func() tea.Msg { return views.EditErrMsg{Err: err} }
	}
	if notes == msg.before {
		return nil
	}

	store, gallery, identity := a.store, a.gallery, msg.identity
	return func() tea.Msg {
		result, err := commands.NewNoteCommand(store, gallery, identity, notes).Execute(context.Background())
		if err != nil {
			return views.EditErrMsg{Err: err}
		}
		return views.EditSuccessMsg{Record: result.Record, Message: result.Message}
	}
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewDetail:
		return a.detail.View()
	case ViewEdit:
		return a.edit.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.galleryV.View()
	}
}
