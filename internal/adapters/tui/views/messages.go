package views

import "photonotes/internal/domain"

// Messages for view switching
type SwitchToGalleryMsg struct{}

type SwitchToDetailMsg struct {
	Identity string
}

type SwitchToEditMsg struct {
	Record *domain.ImageRecord
}

type SwitchToHelpMsg struct{}

// OpenNotesEditorMsg asks the app to edit the notes of a photo in $EDITOR
type OpenNotesEditorMsg struct {
	Record *domain.ImageRecord
}

// EditSuccessMsg is sent after an edit was saved
type EditSuccessMsg struct {
	Record  *domain.ImageRecord
	Message string
}

// EditErrMsg is sent when an edit could not be saved
type EditErrMsg struct {
	Err error
}

// ScanStartedMsg is sent when a folder scan begins
type ScanStartedMsg struct{}

// ScanDoneMsg carries the outcome of a folder scan
type ScanDoneMsg struct {
	Loaded  int
	Failed  int
	Message string
	Err     error
}
