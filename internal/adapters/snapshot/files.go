package snapshot

import "photonotes/internal/ports"

// Files implements ports.SnapshotFiles on the local filesystem
type Files struct{}

// Ensure Files implements SnapshotFiles
var _ ports.SnapshotFiles = Files{}

func (Files) ReadFile(path string) ([]byte, error) {
	return ReadFile(path)
}

func (Files) WriteFile(path string, data []byte) error {
	return WriteFile(path, data)
}

func (Files) Diff(currentName, incomingName string, current, incoming []byte) (string, error) {
	return Diff(currentName, incomingName, current, incoming)
}
