package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"photonotes/internal/ports"
)

// imageExtensions are accepted regardless of the system MIME table
var imageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
}

// Scanner implements ports.FileSource by walking a directory tree
type Scanner struct{}

// Ensure Scanner implements FileSource
var _ ports.FileSource = (*Scanner)(nil)

// NewScanner creates a new filesystem scanner
func NewScanner() *Scanner {
	return &Scanner{}
}

// List returns every image below root, ordered by identity. Hidden files and
// directories are skipped, as are entries that cannot be read.
//
// Identities are "<root base name>/<relative path>" with forward slashes, so
// the same folder maps to the same identities wherever it is mounted.
func (s *Scanner) List(ctx context.Context, root string) ([]ports.ImageFile, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	base := filepath.Base(root)
	var files []ports.ImageFile

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip unreadable entries
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		mediaType, ok := MediaType(d.Name())
		if !ok {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		files = append(files, ports.ImageFile{
			Identity:  base + "/" + filepath.ToSlash(rel),
			Name:      d.Name(),
			Path:      path,
			Size:      fi.Size(),
			MediaType: mediaType,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Identity < files[j].Identity
	})

	return files, nil
}

// Stat returns the image file at path, which must lie below root
func (s *Scanner) Stat(root, path string) (ports.ImageFile, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return ports.ImageFile{}, fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return ports.ImageFile{}, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ports.ImageFile{}, fmt.Errorf("%s is outside %s", path, root)
	}

	fi, err := os.Stat(path)
	if err != nil {
		return ports.ImageFile{}, fmt.Errorf("failed to read image: %w", err)
	}
	if !fi.Mode().IsRegular() {
		return ports.ImageFile{}, fmt.Errorf("%s is not a file", path)
	}

	mediaType, ok := MediaType(fi.Name())
	if !ok {
		return ports.ImageFile{}, fmt.Errorf("%s is not an image", fi.Name())
	}

	return ports.ImageFile{
		Identity:  filepath.Base(root) + "/" + filepath.ToSlash(rel),
		Name:      fi.Name(),
		Path:      path,
		Size:      fi.Size(),
		MediaType: mediaType,
	}, nil
}

// MediaType reports the image media type for a file name, and whether the
// name looks like an image at all
func MediaType(name string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return "", false
	}
	if t, ok := imageExtensions[ext]; ok {
		return t, true
	}
	t := mime.TypeByExtension(ext)
	if mt, _, err := mime.ParseMediaType(t); err == nil && strings.HasPrefix(mt, "image/") {
		return mt, true
	}
	return "", false
}
