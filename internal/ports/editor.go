package ports

import "os/exec"

// EditorOpener runs the user's text editor on a notes draft
type EditorOpener interface {
	// OpenFile blocks until the editor exits
	OpenFile(path string) error

	// Command returns the editor process without starting it, for callers
	// that hand the terminal over themselves
	Command(path string) (*exec.Cmd, error)
}
