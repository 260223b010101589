// Package model defines the domain types used across the application.
package model

import (
	"fmt"
	"strings"
	"time"
)

// DefaultSeriesName is used for matches whose series is unknown.
const DefaultSeriesName = "Other Matches"

// Team describes one side of a match.
type Team struct {
	Name      string
	ShortName string
}

// Innings holds the score of a team's first innings.
// Runs is nil when the innings has not started.
type Innings struct {
	Runs    *int
	Wickets *int
	Overs   string
}

// MatchRecord is a single match flattened out of the upstream payload.
type MatchRecord struct {
	ID           int64
	Team1        Team
	Team2        Team
	Venue        string
	Format       string
	Status       string
	StartTime    *time.Time
	Team1Score   *Innings
	Team2Score   *Innings
	CategoryType string
	SeriesName   string
}

// Category is the user-selected category filter.
type Category string

// Supported categories.
const (
	CategoryAll           Category = "all"
	CategoryInternational Category = "international"
	CategoryDomestic      Category = "domestic"
	CategoryWomen         Category = "women"
)

// Categories lists all categories in display order.
var Categories = []Category{CategoryAll, CategoryInternational, CategoryDomestic, CategoryWomen}

// ParseCategory converts user input into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q, use: all, international, domestic, women", s)
}

// MatchType selects which of the three match lists is active.
type MatchType string

// Supported match types.
const (
	MatchLive     MatchType = "live"
	MatchRecent   MatchType = "recent"
	MatchUpcoming MatchType = "upcoming"
)

// MatchTypes lists all match types in display order.
var MatchTypes = []MatchType{MatchLive, MatchRecent, MatchUpcoming}

// ParseMatchType converts user input into a MatchType.
func ParseMatchType(s string) (MatchType, error) {
	mt := MatchType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range MatchTypes {
		if mt == known {
			return mt, nil
		}
	}
	return "", fmt.Errorf("unknown match type %q, use: live, recent, upcoming", s)
}

// Subscription opts a chat in to live status notifications.
type Subscription struct {
	ID        int64
	ChatID    int64
	Category  Category
	IsActive  bool
	CreatedAt time.Time
}
