package fetcher

import (
	"context"
	"fmt"
	"time"
)

// MatchInfo holds the details of a single match, including both squads.
type MatchInfo struct {
	MatchID     int64
	Description string
	Format      string
	Status      string
	Series      string
	Venue       string
	City        string
	Toss        string
	StartTime   *time.Time
	Team1       Squad
	Team2       Squad
}

// Squad is a team and its announced players.
type Squad struct {
	Name      string
	ShortName string
	Players   []Player
}

// Player is a member of a squad.
type Player struct {
	Name    string
	Role    string
	Captain bool
	Keeper  bool
}

type rawSquad struct {
	Name          string `json:"name"`
	ShortName     string `json:"shortName"`
	PlayerDetails []struct {
		Name     string `json:"name"`
		FullName string `json:"fullName"`
		Role     string `json:"role"`
		Captain  bool   `json:"captain"`
		Keeper   bool   `json:"keeper"`
	} `json:"playerDetails"`
}

type rawMatchDetails struct {
	MatchInfo *struct {
		MatchDescription    string     `json:"matchDescription"`
		MatchFormat         string     `json:"matchFormat"`
		Status              string     `json:"status"`
		MatchStartTimestamp FlexString `json:"matchStartTimestamp"`
		Series              *struct {
			Name string `json:"name"`
		} `json:"series"`
		Venue *struct {
			Name string `json:"name"`
			City string `json:"city"`
		} `json:"venue"`
		TossResults *struct {
			TossWinnerName string `json:"tossWinnerName"`
			Decision       string `json:"decision"`
		} `json:"tossResults"`
		Team1 *rawSquad `json:"team1"`
		Team2 *rawSquad `json:"team2"`
	} `json:"matchInfo"`
}

// FetchMatchInfo downloads the details and squads of a match.
// A response without match info yields a MatchInfo with only the ID set.
func (f *Fetcher) FetchMatchInfo(ctx context.Context, matchID int64) (*MatchInfo, error) {
	path := fmt.Sprintf("/mcenter/v1/%d", matchID)
	var raw rawMatchDetails
	if err := f.getJSON(ctx, path, &raw); err != nil {
		return nil, &FetchError{Endpoint: path, Err: err}
	}

	info := &MatchInfo{MatchID: matchID}
	mi := raw.MatchInfo
	if mi == nil {
		return info, nil
	}
	info.Description = mi.MatchDescription
	info.Format = mi.MatchFormat
	info.Status = mi.Status
	if ms, ok := mi.MatchStartTimestamp.Int64(); ok {
		t := time.UnixMilli(ms).UTC()
		info.StartTime = &t
	}
	if mi.Series != nil {
		info.Series = mi.Series.Name
	}
	if mi.Venue != nil {
		info.Venue = mi.Venue.Name
		info.City = mi.Venue.City
	}
	if tr := mi.TossResults; tr != nil && tr.TossWinnerName != "" {
		info.Toss = tr.TossWinnerName
		if tr.Decision != "" {
			info.Toss += " opted for " + tr.Decision
		}
	}
	info.Team1 = toSquad(mi.Team1)
	info.Team2 = toSquad(mi.Team2)
	return info, nil
}

func toSquad(rs *rawSquad) Squad {
	if rs == nil {
		return Squad{}
	}
	sq := Squad{Name: rs.Name, ShortName: rs.ShortName}
	for _, p := range rs.PlayerDetails {
		name := p.FullName
		if name == "" {
			name = p.Name
		}
		if name == "" {
			continue
		}
		sq.Players = append(sq.Players, Player{Name: name, Role: p.Role, Captain: p.Captain, Keeper: p.Keeper})
	}
	return sq
}
