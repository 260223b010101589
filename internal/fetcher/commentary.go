package fetcher

import (
	"context"
	"fmt"
	"strings"
)

// Commentary is the ball-by-ball commentary of a match, newest first.
type Commentary struct {
	MatchID int64
	Status  string
	Entries []CommentaryEntry
}

// CommentaryEntry is one line of commentary.
type CommentaryEntry struct {
	Over  string
	Event string
	Text  string
}

type rawFormat struct {
	FormatID    []string `json:"formatId"`
	FormatValue []string `json:"formatValue"`
}

type rawCommentary struct {
	CommentaryList []struct {
		CommText          string               `json:"commText"`
		OverNumber        FlexString           `json:"overNumber"`
		Event             string               `json:"event"`
		CommentaryFormats map[string]rawFormat `json:"commentaryFormats"`
	} `json:"commentaryList"`
	MatchHeader *struct {
		Status string `json:"status"`
	} `json:"matchHeader"`
}

// FetchCommentary downloads the latest commentary of a match. Formatting
// placeholders in the text are replaced with their values and empty lines
// are dropped.
func (f *Fetcher) FetchCommentary(ctx context.Context, matchID int64) (*Commentary, error) {
	path := fmt.Sprintf("/mcenter/v1/%d/comm", matchID)
	var raw rawCommentary
	if err := f.getJSON(ctx, path, &raw); err != nil {
		return nil, &FetchError{Endpoint: path, Err: err}
	}

	c := &Commentary{MatchID: matchID}
	if raw.MatchHeader != nil {
		c.Status = raw.MatchHeader.Status
	}
	for _, item := range raw.CommentaryList {
		text := item.CommText
		for _, rf := range item.CommentaryFormats {
			for i, id := range rf.FormatID {
				if i < len(rf.FormatValue) {
					text = strings.ReplaceAll(text, id, rf.FormatValue[i])
				}
			}
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		event := item.Event
		if event == "NONE" {
			event = ""
		}
		c.Entries = append(c.Entries, CommentaryEntry{Over: string(item.OverNumber), Event: event, Text: text})
	}
	return c, nil
}
