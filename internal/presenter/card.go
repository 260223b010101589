package presenter

import (
	"fmt"
	"time"

	"cricket_bot/internal/model"
)

// ScorePlaceholder is shown where no score is available.
const ScorePlaceholder = "—"

const startTimeLayout = "Jan 2, 03:04 PM"

// Card is a single match ready for rendering.
type Card struct {
	MatchID    int64
	Format     string
	Badge      string
	Team1Code  string
	Team1Name  string
	Team1Score string
	Team2Code  string
	Team2Name  string
	Team2Score string
	Status     string
	StartTime  string
	Venue      string
	Live       bool
	Upcoming   bool
}

// NewCard builds the card of a record for the given match type. Start times
// are rendered in loc; a nil loc means UTC.
func NewCard(rec model.MatchRecord, mt model.MatchType, loc *time.Location) Card {
	c := Card{
		MatchID:   rec.ID,
		Format:    orDefault(rec.Format, "N/A"),
		Badge:     Badge(rec.CategoryType),
		Team1Code: teamCode(rec.Team1.ShortName, "T1"),
		Team1Name: orDefault(rec.Team1.Name, "Team 1"),
		Team2Code: teamCode(rec.Team2.ShortName, "T2"),
		Team2Name: orDefault(rec.Team2.Name, "Team 2"),
		Status:    rec.Status,
		Venue:     orDefault(rec.Venue, "TBD"),
		Live:      mt == model.MatchLive,
		Upcoming:  mt == model.MatchUpcoming,
	}
	if c.Upcoming {
		c.Team1Score = ScorePlaceholder
		c.Team2Score = ScorePlaceholder
		c.StartTime = FormatStartTime(rec.StartTime, loc)
	} else {
		c.Team1Score = FormatScore(rec.Team1Score)
		c.Team2Score = FormatScore(rec.Team2Score)
	}
	return c
}

// FormatScore renders an innings as "runs/wickets (overs)".
// Missing wickets count as 0.
func FormatScore(in *model.Innings) string {
	if in == nil || in.Runs == nil {
		return ScorePlaceholder
	}
	wickets := 0
	if in.Wickets != nil {
		wickets = *in.Wickets
	}
	return FormatInnings(*in.Runs, wickets, in.Overs)
}

// FormatInnings renders "runs/wickets (overs)"; the overs part is omitted
// when overs is empty.
func FormatInnings(runs, wickets int, overs string) string {
	s := fmt.Sprintf("%d/%d", runs, wickets)
	if overs != "" {
		s += fmt.Sprintf(" (%s)", overs)
	}
	return s
}

// FormatStartTime renders a start time as a short date and time.
func FormatStartTime(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(startTimeLayout)
}

func teamCode(short, fallback string) string {
	if short == "" {
		short = fallback
	}
	r := []rune(short)
	if len(r) > 3 {
		r = r[:3]
	}
	return string(r)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
