package viewer

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"photonotes/internal/ports"
)

// Opener implements ports.ImageViewer with the system's default viewer
type Opener struct {
	libraryPath string
	libraryName string
}

// Ensure Opener implements ImageViewer
var _ ports.ImageViewer = (*Opener)(nil)

// NewOpener creates a new viewer for the photos below libraryPath
func NewOpener(libraryPath string) *Opener {
	return &Opener{
		libraryPath: libraryPath,
		libraryName: filepath.Base(libraryPath),
	}
}

// Open shows the image at path
func (o *Opener) Open(path string) error {
	name, args, err := Command(runtime.GOOS, path)
	if err != nil {
		return err
	}
	return exec.Command(name, args...).Start()
}

// OpenIdentity shows the image with the given identity
func (o *Opener) OpenIdentity(identity string) error {
	path, err := o.Resolve(identity)
	if err != nil {
		return err
	}
	return o.Open(path)
}

// Resolve maps an identity ("<library name>/<relative path>") to a file
// path below the library
func (o *Opener) Resolve(identity string) (string, error) {
	prefix := o.libraryName + "/"
	if !strings.HasPrefix(identity, prefix) {
		return "", fmt.Errorf("%s is not part of library %s", identity, o.libraryName)
	}

	rel := filepath.FromSlash(strings.TrimPrefix(identity, prefix))
	path := filepath.Join(o.libraryPath, rel)

	relPath, err := filepath.Rel(o.libraryPath, path)
	if err != nil || relPath == "." || strings.HasPrefix(relPath, "..") {
		return "", fmt.Errorf("file is outside the library: %s", identity)
	}

	return path, nil
}

// Command returns the program and arguments that open path on goos
func Command(goos, path string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{path}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{path}, nil
	case "windows":
		return "cmd", []string{"/c", "start", "", path}, nil
	default:
		return "", nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}
