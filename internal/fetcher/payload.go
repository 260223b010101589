package fetcher

import (
	"bytes"
	"strconv"
)

// RawPayload is the response body of the match list endpoints.
type RawPayload struct {
	TypeMatches []RawTypeGroup `json:"typeMatches"`
}

// RawTypeGroup groups series by category type (International, Domestic, League, Women).
type RawTypeGroup struct {
	MatchType     string           `json:"matchType"`
	SeriesMatches []RawSeriesMatch `json:"seriesMatches"`
}

// RawSeriesMatch is one entry of a type group. Ad slots carry no wrapper.
type RawSeriesMatch struct {
	SeriesAdWrapper *RawSeries `json:"seriesAdWrapper"`
}

// RawSeries holds the matches of a single series.
type RawSeries struct {
	SeriesID   FlexString `json:"seriesId"`
	SeriesName string     `json:"seriesName"`
	Matches    []RawMatch `json:"matches"`
}

// RawMatch is a single match as returned by the API.
type RawMatch struct {
	MatchInfo  *RawMatchInfo  `json:"matchInfo"`
	MatchScore *RawMatchScore `json:"matchScore"`
}

// RawMatchInfo holds the descriptive part of a match.
type RawMatchInfo struct {
	MatchID     FlexString `json:"matchId"`
	MatchDesc   string     `json:"matchDesc"`
	MatchFormat string     `json:"matchFormat"`
	Status      string     `json:"status"`
	State       string     `json:"state"`
	StartDate   FlexString `json:"startDate"`
	Team1       *RawTeam   `json:"team1"`
	Team2       *RawTeam   `json:"team2"`
	VenueInfo   *RawVenue  `json:"venueInfo"`
}

// RawTeam describes a team.
type RawTeam struct {
	TeamName  string `json:"teamName"`
	TeamSName string `json:"teamSName"`
}

// RawVenue describes where a match is played.
type RawVenue struct {
	Ground string `json:"ground"`
	City   string `json:"city"`
}

// RawMatchScore holds both teams' scores.
type RawMatchScore struct {
	Team1Score *RawTeamScore `json:"team1Score"`
	Team2Score *RawTeamScore `json:"team2Score"`
}

// RawTeamScore holds a team's innings.
type RawTeamScore struct {
	Inngs1 *RawInnings `json:"inngs1"`
}

// RawInnings is the score of a single innings.
type RawInnings struct {
	Runs    *int  `json:"runs"`
	Wickets *int  `json:"wickets"`
	Overs   Overs `json:"overs"`
}

// FlexString accepts either a JSON string or a JSON number.
// The API is inconsistent about quoting ids, timestamps and overs.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	*s = FlexString(data)
	return nil
}

// Int64 parses the value as an integer. ok is false if it is empty or malformed.
func (s FlexString) Int64() (int64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(string(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Overs is the overs part of a score. A numeric zero decodes to "" like a
// missing value, while the string "0" is kept as is.
type Overs string

// UnmarshalJSON implements json.Unmarshaler.
func (o *Overs) UnmarshalJSON(data []byte) error {
	var s FlexString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '"' {
		if v, err := strconv.ParseFloat(string(s), 64); err == nil && v == 0 {
			s = ""
		}
	}
	*o = Overs(s)
	return nil
}
