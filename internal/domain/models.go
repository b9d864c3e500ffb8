package domain

import (
	"slices"
	"strings"
)

// DistinctModels returns the distinct effective camera models, ordered
// alphabetically without regard to case, with Unknown forced to the end
func DistinctModels(records []*ImageRecord) []string {
	seen := make(map[string]struct{})
	hasUnknown := false
	models := make([]string, 0)

	for _, r := range records {
		if r == nil {
			continue
		}
		m := r.Model()
		if m == Unknown {
			hasUnknown = true
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		models = append(models, m)
	}

	slices.SortFunc(models, func(a, b string) int {
		if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	if hasUnknown {
		models = append(models, Unknown)
	}
	return models
}
