package domain

import (
	"errors"
	"fmt"
)

var (
	ErrStorageUnavailable  = errors.New("storage unavailable")
	ErrStorageWriteFailed  = errors.New("storage write failed")
	ErrImportFormatInvalid = errors.New("import format invalid")
	ErrExtractionFailed    = errors.New("extraction failed")
	ErrInvalidIdentity     = errors.New("invalid identity")
)

// StoreError describes a failed store operation
type StoreError struct {
	Op       string // "init", "get", "save", "import", ...
	Identity string
	Kind     error // one of the sentinel errors above, may be nil
	Err      error
}

func (e *StoreError) Error() string {
	msg := e.Op
	if e.Identity != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Identity)
	}
	if e.Kind != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Kind)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}
