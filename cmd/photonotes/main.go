package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"photonotes/internal/adapters/tui"
	"photonotes/internal/adapters/tui/views"
	"photonotes/internal/app"
	"photonotes/internal/config"
)

func main() {
	cfg := config.Load()
	flag.StringVar(&cfg.Library, "library", cfg.Library, "folder of photos")
	flag.Parse()
	if flag.NArg() > 0 {
		cfg.Library = flag.Arg(0)
	}

	// The TUI owns the terminal; log lines go to the log file only
	a := app.Open(context.Background(), cfg, app.Options{Name: "photonotes", NoTerminal: true})
	defer a.Close()

	warning := ""
	if a.Degraded {
		warning = "Metadata database unavailable: notes and edits will be lost on exit"
	}

	model := tui.NewApp(tui.Deps{
		Store:   a.Store,
		Gallery: a.Gallery,
		Scanner: &views.Scanner{
			Files:    a.Files,
			Builder:  a.Builder,
			Sessions: a.Sessions,
			Log:      a.Log,
			Workers:  cfg.Workers,
		},
		Viewer:  a.Viewer,
		Resolve: a.Viewer.Resolve,
		Editor:  a.Editor,
		Root:    cfg.LibraryPath(),
		Warning: warning,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
