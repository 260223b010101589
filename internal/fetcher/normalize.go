package fetcher

import (
	"context"
	"time"

	"cricket_bot/internal/model"
)

// Matches fetches the list of the given type and normalizes it.
func (f *Fetcher) Matches(ctx context.Context, mt model.MatchType) ([]model.MatchRecord, error) {
	payload, err := f.Fetch(ctx, mt)
	if err != nil {
		return nil, err
	}
	return Normalize(payload), nil
}

// Normalize flattens a payload into match records in traversal order.
// Missing levels of nesting yield fewer records, never an error.
func Normalize(p *RawPayload) []model.MatchRecord {
	if p == nil {
		return nil
	}
	var records []model.MatchRecord
	for _, group := range p.TypeMatches {
		for _, sm := range group.SeriesMatches {
			series := sm.SeriesAdWrapper
			if series == nil {
				continue
			}
			seriesName := series.SeriesName
			if seriesName == "" {
				seriesName = model.DefaultSeriesName
			}
			for _, m := range series.Matches {
				rec := toRecord(m)
				rec.CategoryType = group.MatchType
				rec.SeriesName = seriesName
				records = append(records, rec)
			}
		}
	}
	return records
}

func toRecord(m RawMatch) model.MatchRecord {
	var rec model.MatchRecord
	if info := m.MatchInfo; info != nil {
		rec.ID, _ = info.MatchID.Int64()
		rec.Team1 = toTeam(info.Team1)
		rec.Team2 = toTeam(info.Team2)
		if info.VenueInfo != nil {
			rec.Venue = info.VenueInfo.Ground
		}
		rec.Format = info.MatchFormat
		rec.Status = info.Status
		if ms, ok := info.StartDate.Int64(); ok {
			t := time.UnixMilli(ms).UTC()
			rec.StartTime = &t
		}
	}
	if score := m.MatchScore; score != nil {
		rec.Team1Score = toInnings(score.Team1Score)
		rec.Team2Score = toInnings(score.Team2Score)
	}
	return rec
}

func toTeam(t *RawTeam) model.Team {
	if t == nil {
		return model.Team{}
	}
	return model.Team{Name: t.TeamName, ShortName: t.TeamSName}
}

func toInnings(ts *RawTeamScore) *model.Innings {
	if ts == nil || ts.Inngs1 == nil {
		return nil
	}
	in := ts.Inngs1
	return &model.Innings{
		Runs:    in.Runs,
		Wickets: in.Wickets,
		Overs:   string(in.Overs),
	}
}
