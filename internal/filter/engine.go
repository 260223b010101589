// Package filter implements the match category filter.
package filter

import (
	"strings"

	"cricket_bot/internal/model"
)

// Match checks whether a record belongs to the given category.
// Matching is a case-insensitive substring test on the category type;
// the women category also looks at the series name.
func Match(rec model.MatchRecord, category model.Category) bool {
	catType := strings.ToLower(rec.CategoryType)
	switch category {
	case model.CategoryInternational:
		return strings.Contains(catType, "international")
	case model.CategoryDomestic:
		return strings.Contains(catType, "domestic") || strings.Contains(catType, "league")
	case model.CategoryWomen:
		return strings.Contains(catType, "women") ||
			strings.Contains(strings.ToLower(rec.SeriesName), "women")
	default:
		return true
	}
}

// Apply returns the records that belong to the given category, in order.
// The input slice is never modified.
func Apply(records []model.MatchRecord, category model.Category) []model.MatchRecord {
	if category == model.CategoryAll || category == "" {
		out := make([]model.MatchRecord, len(records))
		copy(out, records)
		return out
	}
	var out []model.MatchRecord
	for _, rec := range records {
		if Match(rec, category) {
			out = append(out, rec)
		}
	}
	return out
}
