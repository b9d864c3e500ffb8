package cmd

import (
	"fmt"

	"photonotes/internal/domain"
)

func printView(v *domain.ViewIndex) {
	if v.Len() == 0 {
		fmt.Println("No photos.")
		return
	}
	for i, b := range v.Buckets {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s (%d)\n", b.Key.Label(), len(b.Identities))
		for _, id := range b.Identities {
			r, _ := v.Record(id)
			printRecordLine(r)
		}
	}
}

func printRecordLine(r *domain.ImageRecord) {
	marker := " "
	if r.HasNotes() {
		marker = "*"
	}
	fmt.Printf("  %s %-40s %-19s %s\n", marker, r.Identity, r.DateCreated(), r.Model())
}

func printIdentities(ids []string) {
	if len(ids) == 0 {
		fmt.Println("No photos.")
		return
	}
	for _, id := range ids {
		fmt.Println(id)
	}
}

func printRecord(r *domain.ImageRecord) {
	fmt.Printf("%-12s %s\n", "identity", r.Identity)
	fmt.Printf("%-12s %s\n", "name", r.Intrinsic.Name)
	fmt.Printf("%-12s %s\n", "size", r.Intrinsic.Size)
	fmt.Printf("%-12s %s\n", "type", r.Intrinsic.Type)
	for _, f := range domain.ExtractableFields {
		v := r.Field(f)
		if _, ok := r.Override.Get(f); ok {
			v += " (edited)"
		}
		fmt.Printf("%-12s %s\n", f, v)
	}
	if notes := r.Notes(); notes != "" {
		fmt.Printf("\n%s\n", notes)
	}
}

func printStored(m *domain.StoredMetadata) {
	fmt.Printf("%-12s %s\n", "identity", m.Identity)
	for _, f := range domain.EditableFields {
		if v, ok := m.Override.Get(f); ok {
			fmt.Printf("%-12s %s\n", f, v)
		}
	}
	if !m.LastModified.IsZero() {
		fmt.Printf("%-12s %s\n", "modified", domain.FormatTimestamp(m.LastModified.Local()))
	}
}
