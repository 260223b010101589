// Package presenter turns match records into display-ready groups, cards and
// ticker text. Nothing here touches the render target.
package presenter

import (
	"fmt"
	"strings"

	"cricket_bot/internal/filter"
	"cricket_bot/internal/model"
)

// MaxGroupSize caps the number of records shown per series.
const MaxGroupSize = 10

// Category badges.
const (
	BadgeInternational = "INT"
	BadgeWomen         = "WOM"
	BadgeDomestic      = "DOM"
	BadgeLeague        = "T20"
	BadgeAll           = "ALL"
)

// Group is the set of records shown under one series header.
type Group struct {
	Badge      string
	SeriesName string
	Records    []model.MatchRecord
}

// EmptyState is returned when nothing is left after filtering.
type EmptyState struct {
	MatchType model.MatchType
	Category  model.Category
}

// Message returns the placeholder text for the empty state.
func (e EmptyState) Message() string {
	cat := ""
	if e.Category != model.CategoryAll && e.Category != "" {
		cat = " " + string(e.Category)
	}
	switch e.MatchType {
	case model.MatchLive:
		return fmt.Sprintf("No%s live matches at the moment", cat)
	case model.MatchRecent:
		return fmt.Sprintf("No%s recent matches found", cat)
	case model.MatchUpcoming:
		return fmt.Sprintf("No%s upcoming matches scheduled", cat)
	default:
		return "No matches found"
	}
}

// Result is either a non-empty list of groups or an empty state.
type Result struct {
	MatchType model.MatchType
	Groups    []Group
	Empty     *EmptyState
}

// Present filters records by category, groups them by series in first-seen
// order and truncates each group to MaxGroupSize.
func Present(records []model.MatchRecord, category model.Category, mt model.MatchType) Result {
	filtered := filter.Apply(records, category)
	if len(filtered) == 0 {
		return Result{MatchType: mt, Empty: &EmptyState{MatchType: mt, Category: category}}
	}
	return Result{MatchType: mt, Groups: GroupBySeries(filtered)}
}

// GroupBySeries partitions records by series name, keeping the order in which
// each series first appears. Records without a series go to DefaultSeriesName.
func GroupBySeries(records []model.MatchRecord) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, rec := range records {
		name := rec.SeriesName
		if name == "" {
			name = model.DefaultSeriesName
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, Group{SeriesName: name})
		}
		if len(groups[i].Records) < MaxGroupSize {
			groups[i].Records = append(groups[i].Records, rec)
		}
	}
	for i := range groups {
		groups[i].Badge = Badge(groups[i].Records[0].CategoryType)
	}
	return groups
}

// Badge derives the short category label from a category type.
// International wins over women, women over domestic, domestic over league.
func Badge(categoryType string) string {
	cat := strings.ToLower(categoryType)
	switch {
	case strings.Contains(cat, "international"):
		return BadgeInternational
	case strings.Contains(cat, "women"):
		return BadgeWomen
	case strings.Contains(cat, "domestic"):
		return BadgeDomestic
	case strings.Contains(cat, "league"):
		return BadgeLeague
	default:
		return BadgeAll
	}
}
