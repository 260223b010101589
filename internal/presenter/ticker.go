package presenter

import (
	"fmt"
	"strings"

	"cricket_bot/internal/model"
)

// Ticker settings.
const (
	TickerLimit     = 15
	TickerSeparator = "  •  "
	TickerEmpty     = "No upcoming matches scheduled"
)

// Summarize renders the first TickerLimit upcoming matches as a single line,
// repeated twice so the text can loop seamlessly.
func Summarize(upcoming []model.MatchRecord) string {
	if len(upcoming) == 0 {
		return TickerEmpty
	}
	if len(upcoming) > TickerLimit {
		upcoming = upcoming[:TickerLimit]
	}
	items := make([]string, 0, len(upcoming))
	for _, rec := range upcoming {
		items = append(items, TickerItem(rec))
	}
	line := strings.Join(items, TickerSeparator)
	return line + TickerSeparator + line
}

// TickerItem renders one match as "T1 vs T2 (format) - venue".
func TickerItem(rec model.MatchRecord) string {
	return fmt.Sprintf("%s vs %s (%s) - %s", rec.Team1.ShortName, rec.Team2.ShortName, rec.Format, rec.Venue)
}
