package editor

import (
	"fmt"
	"os"
	"strings"
)

// Draft is a temporary file holding notes while they are edited in an
// external editor
type Draft struct {
	Path string
}

// NewDraft writes text to a fresh temporary file
func NewDraft(text string) (*Draft, error) {
	f, err := os.CreateTemp("", "photonotes-*.md")
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(text); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write draft: %w", err)
	}

	return &Draft{Path: f.Name()}, nil
}

// Read returns the edited text without the trailing newline most editors add
func (d *Draft) Read() (string, error) {
	data, err := os.ReadFile(d.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read draft: %w", err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(text, "\r"), nil
}

// Remove deletes the draft file
func (d *Draft) Remove() error {
	return os.Remove(d.Path)
}
