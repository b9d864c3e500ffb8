package mcp

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"photonotes/internal/application"
	"photonotes/internal/domain"
	"photonotes/internal/logger"
	"photonotes/internal/ports"
)

// Deps are the collaborators shared by every tool
type Deps struct {
	Store     ports.MetadataStore
	Files     ports.FileSource
	Snapshots ports.SnapshotFiles
	Builder   *application.RecordBuilder
	Sessions  *application.Sessions
	Gallery   *application.Gallery
	Log       *logger.Logger
	Library   string // default folder for scan
	Workers   int
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// formatView lists the view bucket by bucket, marking selected identities
func formatView(v *domain.ViewIndex, selected map[string]bool) string {
	if v.Len() == 0 {
		return "No images."
	}
	var sb strings.Builder
	for _, b := range v.Buckets {
		fmt.Fprintf(&sb, "%s (%d)\n", b.Key.Label(), len(b.Identities))
		for _, id := range b.Identities {
			r, _ := v.Record(id)
			marker := " "
			if selected[id] {
				marker = "*"
			}
			fmt.Fprintf(&sb, "%s %s\n", marker, formatRecordLine(r))
		}
	}
	return sb.String()
}

func formatRecordLine(r *domain.ImageRecord) string {
	line := fmt.Sprintf("%s  %s  %s", r.Identity, r.DateCreated(), r.Model())
	if r.HasNotes() {
		line += "  [notes]"
	}
	return line
}

func formatRecord(r *domain.ImageRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "identity: %s\n", r.Identity)
	fmt.Fprintf(&sb, "name: %s\n", r.Intrinsic.Name)
	fmt.Fprintf(&sb, "size: %s\n", r.Intrinsic.Size)
	fmt.Fprintf(&sb, "type: %s\n", r.Intrinsic.Type)
	for _, f := range domain.ExtractableFields {
		fmt.Fprintf(&sb, "%s: %s", f, r.Field(f))
		if _, ok := r.Override.Get(f); ok {
			sb.WriteString(" (edited)")
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "notes: %s\n", r.Notes())
	return sb.String()
}

func formatStored(m *domain.StoredMetadata) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "identity: %s\n", m.Identity)
	for _, f := range domain.EditableFields {
		if v, ok := m.Override.Get(f); ok {
			fmt.Fprintf(&sb, "%s: %s\n", f, v)
		}
	}
	if !m.LastModified.IsZero() {
		fmt.Fprintf(&sb, "lastModified: %s\n", m.LastModified.Format("2006-01-02 15:04:05"))
	}
	return sb.String()
}

func formatTimePoint(p domain.TimePoint) string {
	return fmt.Sprintf("%s  %s  %d  %s", p.Key, p.Label, p.Count, p.Anchor)
}
