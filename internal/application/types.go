package application

import (
	"fmt"

	"photonotes/internal/domain"
)

// Re-export domain types for use by adapters
type (
	ImageRecord    = domain.ImageRecord
	StoredMetadata = domain.StoredMetadata
	Override       = domain.Override
	ViewIndex      = domain.ViewIndex
	BucketKey      = domain.BucketKey
	Resolution     = domain.Resolution
	TimePoint      = domain.TimePoint
	FilterSpec     = domain.FilterSpec
	SortDirection  = domain.SortDirection
)

const (
	Descending = domain.Descending
	Ascending  = domain.Ascending
)

// FormatSize renders a byte count the way intrinsic sizes are displayed
func FormatSize(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/1024/1024)
}
