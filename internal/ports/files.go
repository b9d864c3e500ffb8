package ports

import (
	"context"
	"io"
	"os"
)

// ImageFile is an image found in the selected folder
type ImageFile struct {
	Identity  string // folder-relative path, forward slashes
	Name      string
	Path      string // absolute path on disk
	Size      int64
	MediaType string
}

// Open implements domain.Handle
func (f ImageFile) Open() (io.ReadCloser, error) {
	return os.Open(f.Path)
}

// FileSource enumerates the image files of a folder
type FileSource interface {
	List(ctx context.Context, root string) ([]ImageFile, error)
}

// ImageViewer opens a photo outside the terminal
type ImageViewer interface {
	Open(path string) error
}
