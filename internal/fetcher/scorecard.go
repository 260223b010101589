package fetcher

import (
	"context"
	"fmt"
)

// Scorecard summarizes the innings of a single match.
type Scorecard struct {
	MatchID int64
	Status  string
	Innings []ScorecardInnings
}

// ScorecardInnings is one innings of a scorecard.
type ScorecardInnings struct {
	InningsID int
	Team      string
	Runs      int
	Wickets   int
	Overs     string
}

type rawScorecard struct {
	ScoreCard []struct {
		InningsID      int `json:"inningsId"`
		BatTeamDetails *struct {
			BatTeamName      string `json:"batTeamName"`
			BatTeamShortName string `json:"batTeamShortName"`
		} `json:"batTeamDetails"`
		ScoreDetails *struct {
			Runs    int   `json:"runs"`
			Wickets int   `json:"wickets"`
			Overs   Overs `json:"overs"`
		} `json:"scoreDetails"`
	} `json:"scoreCard"`
	MatchHeader *struct {
		Status string `json:"status"`
	} `json:"matchHeader"`
}

// FetchScorecard downloads the scorecard of a match. The high-level
// scorecard is tried first; the detailed one is used when it has no innings.
// A match without any innings yields an empty Scorecard.
func (f *Fetcher) FetchScorecard(ctx context.Context, matchID int64) (*Scorecard, error) {
	hsPath := fmt.Sprintf("/mcenter/v1/%d/hscard", matchID)
	var hs rawScorecard
	if err := f.getJSON(ctx, hsPath, &hs); err != nil {
		return nil, &FetchError{Endpoint: hsPath, Err: err}
	}
	if len(hs.ScoreCard) > 0 {
		return toScorecard(matchID, hs), nil
	}

	sPath := fmt.Sprintf("/mcenter/v1/%d/scard", matchID)
	var s rawScorecard
	if err := f.getJSON(ctx, sPath, &s); err != nil {
		return nil, &FetchError{Endpoint: sPath, Err: err}
	}
	if len(s.ScoreCard) > 0 {
		return toScorecard(matchID, s), nil
	}

	return toScorecard(matchID, hs), nil
}

func toScorecard(matchID int64, raw rawScorecard) *Scorecard {
	sc := &Scorecard{MatchID: matchID}
	if raw.MatchHeader != nil {
		sc.Status = raw.MatchHeader.Status
	}
	for _, in := range raw.ScoreCard {
		inn := ScorecardInnings{InningsID: in.InningsID}
		if d := in.BatTeamDetails; d != nil {
			inn.Team = d.BatTeamName
			if inn.Team == "" {
				inn.Team = d.BatTeamShortName
			}
		}
		if d := in.ScoreDetails; d != nil {
			inn.Runs = d.Runs
			inn.Wickets = d.Wickets
			inn.Overs = string(d.Overs)
		}
		sc.Innings = append(sc.Innings, inn)
	}
	return sc
}
