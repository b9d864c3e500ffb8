package application

import (
	"fmt"
	"strings"

	"photonotes/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		// Format field name with spaces for error message (e.g., "dateCreated" -> "date created")
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "dateCreated" -> "date created")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"identity":    "identity",
		"dateCreated": "date created",
		"root":        "folder",
		"path":        "file path",
		"field":       "field",
		"month":       "month",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidateField resolves an editable field name.
// Returns a ValidationError listing the valid names otherwise.
func ValidateField(name string) (domain.Field, error) {
	f, ok := domain.ParseField(name)
	if !ok {
		names := make([]string, len(domain.EditableFields))
		for i, f := range domain.EditableFields {
			names[i] = string(f)
		}
		return "", &ValidationError{
			Field:   "field",
			Message: fmt.Sprintf("unknown field %q (expected one of %s)", name, strings.Join(names, ", ")),
		}
	}
	return f, nil
}

// ValidateOverride checks a patch before it is saved: it must carry at least
// one field, and a non-empty dateCreated must be a recognizable timestamp.
// An empty dateCreated clears the override back to the intrinsic value.
func ValidateOverride(patch domain.Override) error {
	if patch.IsEmpty() {
		return &ValidationError{
			Field:   "override",
			Message: "at least one field must be set",
		}
	}

	if v, ok := patch.Get(domain.FieldDateCreated); ok && strings.TrimSpace(v) != "" {
		if _, ok := domain.ParseTimestamp(v); !ok {
			return &ValidationError{
				Field:   "dateCreated",
				Message: fmt.Sprintf("unrecognized timestamp %q (expected e.g. 2023-05-15 10:30:00)", v),
			}
		}
	}

	return nil
}

// ValidateMonth parses a month selector ("2023-5" or "unknown")
func ValidateMonth(s string) (domain.BucketKey, error) {
	key, err := domain.ParseBucketKey(s)
	if err != nil {
		return domain.BucketKey{}, &ValidationError{Field: "month", Message: err.Error()}
	}
	return key, nil
}
