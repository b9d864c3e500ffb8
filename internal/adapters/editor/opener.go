package editor

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"photonotes/internal/ports"
)

// ErrNoEditor is returned when no editor is configured or installed
var ErrNoEditor = errors.New("no editor found: set PHOTONOTES_EDITOR or $EDITOR")

// fallbacks are looked up on $PATH when nothing is configured
var fallbacks = []string{"nvim", "vim", "vi", "nano"}

// Opener runs a terminal editor on notes drafts
type Opener struct {
	preferred string
}

var _ ports.EditorOpener = (*Opener)(nil)

// NewOpener creates an opener. preferred is a command line such as
// "code --wait"; when empty, $EDITOR, $VISUAL and the fallbacks are tried in
// that order.
func NewOpener(preferred string) *Opener {
	return &Opener{preferred: strings.TrimSpace(preferred)}
}

// OpenFile edits path and waits for the editor to exit
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command builds the editor process attached to the current terminal
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	argv := strings.Fields(o.resolve())
	if len(argv) == 0 {
		return nil, ErrNoEditor
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	return cmd, nil
}

func (o *Opener) resolve() string {
	if o.preferred != "" {
		return o.preferred
	}
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	for _, name := range fallbacks {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}
