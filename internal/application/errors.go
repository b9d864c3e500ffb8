package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound           = errors.New("not found")
	ErrNoImages           = errors.New("no image files found")
	ErrNoRecordsProcessed = errors.New("no image could be processed")
	ErrSessionSuperseded  = errors.New("scan superseded by a newer one")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FileError records why one file could not be turned into a record
type FileError struct {
	Identity string
	Err      error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Identity, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// BatchError reports an ingestion in which every file failed
type BatchError struct {
	Total    int
	Failures []FileError
}

func (e *BatchError) Error() string {
	msg := fmt.Sprintf("failed to process all %d images", e.Total)
	if len(e.Failures) > 0 {
		msg = fmt.Sprintf("%s (first error: %v)", msg, &e.Failures[0])
	}
	return msg
}

func (e *BatchError) Is(target error) bool {
	return target == ErrNoRecordsProcessed
}
