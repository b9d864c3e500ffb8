package views

import "photonotes/internal/adapters/tui/styles"

// NoticeLevel decides how a notice is styled
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeWarn
	NoticeError
)

// Notice is the one-line status shown under a view until the next key press
type Notice struct {
	Text  string
	Level NoticeLevel
}

// Render styles the notice, or returns "" when there is nothing to show
func (n Notice) Render() string {
	switch {
	case n.Text == "":
		return ""
	case n.Level == NoticeError:
		return styles.ErrorMsg.Render(n.Text)
	case n.Level == NoticeWarn:
		return styles.WarningMsg.Render(n.Text)
	}
	return styles.Success.Render(n.Text)
}

// IsError reports whether the notice reports a failure
func (n Notice) IsError() bool {
	return n.Text != "" && n.Level == NoticeError
}

// Frame is embedded by every screen: terminal size plus the current notice
type Frame struct {
	Width  int
	Height int
	Notice Notice
}

func (f *Frame) SetSize(width, height int) {
	f.Width = width
	f.Height = height
}

// SetMessage shows text as an error or as plain feedback
func (f *Frame) SetMessage(text string, isErr bool) {
	level := NoticeInfo
	if isErr {
		level = NoticeError
	}
	f.Notice = Notice{Text: text, Level: level}
}

// Warn shows text that needs attention without being a failure
func (f *Frame) Warn(text string) {
	f.Notice = Notice{Text: text, Level: NoticeWarn}
}

func (f *Frame) ClearMessage() {
	f.Notice = Notice{}
}
