package snapshot

import (
	"bytes"
	"fmt"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// DiffContext is the number of context lines around each hunk
const DiffContext = 3

// Diff returns a unified diff from the current snapshot to the incoming one.
// Both documents are decoded and re-encoded first so that only changes in
// content show up, not formatting or record order. An empty string means
// importing incoming would change nothing.
func Diff(currentName, incomingName string, current, incoming []byte) (string, error) {
	a, err := normalize(current)
	if err != nil {
		return "", fmt.Errorf("%s: %w", currentName, err)
	}
	b, err := normalize(incoming)
	if err != nil {
		return "", fmt.Errorf("%s: %w", incomingName, err)
	}
	if bytes.Equal(a, b) {
		return "", nil
	}

	u := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(a)),
		B:        difflib.SplitLines(string(b)),
		FromFile: currentName,
		ToFile:   incomingName,
		Context:  DiffContext,
	}
	return difflib.GetUnifiedDiffString(u)
}

func normalize(payload []byte) ([]byte, error) {
	records, err := Decode(payload)
	if err != nil {
		return nil, err
	}
	return Encode(records)
}
