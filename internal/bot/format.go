package bot

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"cricket_bot/internal/fetcher"
	"cricket_bot/internal/model"
	"cricket_bot/internal/presenter"
	"cricket_bot/internal/state"
)

// MaxMessageLen is Telegram's limit on the length of a text message.
const MaxMessageLen = 4096

const activeMark = "● "

var matchTypeLabels = map[model.MatchType]string{
	model.MatchLive:     "Live",
	model.MatchRecent:   "Recent",
	model.MatchUpcoming: "Upcoming",
}

var categoryLabels = map[model.Category]string{
	model.CategoryAll:           "All",
	model.CategoryInternational: "International",
	model.CategoryDomestic:      "Domestic",
	model.CategoryWomen:         "Women",
}

// FormatResult renders a presenter result as one or more messages. Messages
// are split between groups so that none exceeds MaxMessageLen.
func FormatResult(res presenter.Result, sel state.Selection, loc *time.Location) []string {
	header := fmt.Sprintf("%s matches · %s\n", matchTypeLabels[sel.MatchType], categoryLabels[sel.Category])
	if res.Empty != nil {
		return []string{header + "\n" + res.Empty.Message()}
	}

	var (
		chunks []string
		cur    strings.Builder
	)
	cur.WriteString(header)
	for _, g := range res.Groups {
		block := FormatGroup(g, res.MatchType, loc)
		if cur.Len() > 0 && cur.Len()+len(block) > MaxMessageLen {
			chunks = append(chunks, strings.TrimRight(cur.String(), "\n"))
			cur.Reset()
		}
		cur.WriteString(block)
	}
	if cur.Len() > 0 {
		chunks = append(chunks, strings.TrimRight(cur.String(), "\n"))
	}
	return chunks
}

// FormatGroup renders a series header followed by its cards.
func FormatGroup(g presenter.Group, mt model.MatchType, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n[%s] %s\n", g.Badge, g.SeriesName)
	for _, rec := range g.Records {
		b.WriteString("\n")
		b.WriteString(FormatCard(presenter.NewCard(rec, mt, loc)))
	}
	return b.String()
}

// FormatCard renders a single match card.
func FormatCard(c presenter.Card) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s", c.MatchID, c.Format)
	if c.Live {
		b.WriteString(" · LIVE")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s  %s\n", c.Team1Code, c.Team1Name, c.Team1Score)
	fmt.Fprintf(&b, "%s %s  %s\n", c.Team2Code, c.Team2Name, c.Team2Score)
	switch {
	case c.Upcoming:
		if c.StartTime != "" {
			fmt.Fprintf(&b, "Starts: %s\n", c.StartTime)
		}
	case c.Status != "":
		b.WriteString(c.Status)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Venue: %s\n", c.Venue)
	return b.String()
}

// FormatFetchError is shown in place of a list that failed to load.
func FormatFetchError(mt model.MatchType) string {
	return fmt.Sprintf("Something went wrong: Failed to load %s matches\nPlease try again later.", mt)
}

// FormatNotification formats a live status change for a subscriber.
func FormatNotification(rec model.MatchRecord) string {
	c := presenter.NewCard(rec, model.MatchLive, nil)
	var b strings.Builder
	series := rec.SeriesName
	if series == "" {
		series = model.DefaultSeriesName
	}
	fmt.Fprintf(&b, "[%s] %s\n\n", c.Badge, series)
	b.WriteString(FormatCard(c))
	return strings.TrimRight(b.String(), "\n")
}

// FormatScorecard formats the innings summary of a match.
func FormatScorecard(sc *fetcher.Scorecard) string {
	if len(sc.Innings) == 0 {
		if sc.Status != "" {
			return fmt.Sprintf("No scorecard available yet for match #%d.\n%s", sc.MatchID, sc.Status)
		}
		return fmt.Sprintf("No scorecard available yet for match #%d.", sc.MatchID)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Scorecard #%d\n", sc.MatchID)
	if sc.Status != "" {
		b.WriteString(sc.Status)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for _, in := range sc.Innings {
		team := in.Team
		if team == "" {
			team = fmt.Sprintf("Innings %d", in.InningsID)
		}
		fmt.Fprintf(&b, "%s  %s\n", team, presenter.FormatInnings(in.Runs, in.Wickets, in.Overs))
	}
	return strings.TrimRight(b.String(), "\n")
}

// CommentaryLimit caps the number of commentary lines shown.
const CommentaryLimit = 10

// FormatMatchInfo formats match details followed by both squads.
func FormatMatchInfo(info *fetcher.MatchInfo, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Match #%d", info.MatchID)
	if info.Description != "" {
		fmt.Fprintf(&b, " · %s", info.Description)
	}
	if info.Format != "" {
		fmt.Fprintf(&b, " (%s)", info.Format)
	}
	b.WriteString("\n")
	if info.Series != "" {
		fmt.Fprintf(&b, "Series: %s\n", info.Series)
	}
	if info.Venue != "" {
		venue := info.Venue
		if info.City != "" {
			venue += ", " + info.City
		}
		fmt.Fprintf(&b, "Venue: %s\n", venue)
	}
	if start := presenter.FormatStartTime(info.StartTime, loc); start != "" {
		fmt.Fprintf(&b, "Starts: %s\n", start)
	}
	if info.Toss != "" {
		fmt.Fprintf(&b, "Toss: %s\n", info.Toss)
	}
	if info.Status != "" {
		b.WriteString(info.Status)
		b.WriteString("\n")
	}

	for _, sq := range []fetcher.Squad{info.Team1, info.Team2} {
		if sq.Name == "" && len(sq.Players) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s squad:\n", orDefault(sq.Name, sq.ShortName))
		if len(sq.Players) == 0 {
			b.WriteString("  not announced\n")
			continue
		}
		for _, p := range sq.Players {
			b.WriteString("  ")
			b.WriteString(p.Name)
			if p.Captain {
				b.WriteString(" (c)")
			}
			if p.Keeper {
				b.WriteString(" (wk)")
			}
			if p.Role != "" {
				fmt.Fprintf(&b, " · %s", p.Role)
			}
			b.WriteString("\n")
		}
	}
	return truncate(strings.TrimRight(b.String(), "\n"), MaxMessageLen)
}

// FormatCommentary formats the latest CommentaryLimit commentary lines.
func FormatCommentary(c *fetcher.Commentary) string {
	if len(c.Entries) == 0 {
		return fmt.Sprintf("No commentary available yet for match #%d.", c.MatchID)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Commentary #%d\n", c.MatchID)
	if c.Status != "" {
		b.WriteString(c.Status)
		b.WriteString("\n")
	}
	entries := c.Entries
	if len(entries) > CommentaryLimit {
		entries = entries[:CommentaryLimit]
	}
	for _, e := range entries {
		b.WriteString("\n")
		if e.Over != "" {
			fmt.Fprintf(&b, "%s ", e.Over)
		}
		if e.Event != "" {
			fmt.Fprintf(&b, "[%s] ", e.Event)
		}
		b.WriteString(e.Text)
		b.WriteString("\n")
	}
	return truncate(strings.TrimRight(b.String(), "\n"), MaxMessageLen)
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	const ellipsis = "…"
	cut := n - len(ellipsis)
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + ellipsis
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Keyboard builds the tab and category buttons, marking the active ones.
func Keyboard(sel state.Selection) tgbotapi.InlineKeyboardMarkup {
	tabs := make([]tgbotapi.InlineKeyboardButton, 0, len(model.MatchTypes))
	for _, mt := range model.MatchTypes {
		label := matchTypeLabels[mt]
		if mt == sel.MatchType {
			label = activeMark + label
		}
		tabs = append(tabs, tgbotapi.NewInlineKeyboardButtonData(label, actionTab+":"+string(mt)))
	}

	cats := make([]tgbotapi.InlineKeyboardButton, 0, len(model.Categories))
	for _, c := range model.Categories {
		label := categoryLabels[c]
		if c == sel.Category {
			label = activeMark + label
		}
		cats = append(cats, tgbotapi.NewInlineKeyboardButtonData(label, actionCategory+":"+string(c)))
	}

	return tgbotapi.NewInlineKeyboardMarkup(tabs, cats)
}
