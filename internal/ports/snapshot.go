package ports

// SnapshotFiles reads, writes and compares snapshot documents on disk
type SnapshotFiles interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error

	// Diff returns a unified diff between two snapshot documents, or "" when
	// they hold the same records
	Diff(currentName, incomingName string, current, incoming []byte) (string, error)
}
