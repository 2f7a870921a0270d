package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spektr-org/batstats/league"
)

// ============================================================================
// STANDINGS — Winning percentage and rank from the season table
// ============================================================================
// Teams are stable-sorted by winning percentage, highest first. Equal
// percentages keep the order of the season table, so with the 2016 table
// Texas (95-67) ranks ahead of Washington (95-67).
// ============================================================================

// TeamStanding is one row of the standings.
type TeamStanding struct {
	Rank       int     `json:"rank"`
	Team       string  `json:"team"`
	Abbrev     string  `json:"abbrev"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	WinningPct float64 `json:"winningPct"`
}

// Standings is the ranked, immutable standings table.
type Standings struct {
	rows     []TeamStanding
	byAbbrev map[string]int
}

// WinningPct is wins/(wins+losses). A team that has not played is 0.
func WinningPct(wins, losses int) float64 {
	games := wins + losses
	if games <= 0 {
		return 0
	}
	return float64(wins) / float64(games)
}

// ComputeStandings ranks teams by winning percentage. Percentages keep full
// precision; rounding is a display concern.
func ComputeStandings(teams []league.Team) []TeamStanding {
	rows := make([]TeamStanding, len(teams))
	for i, t := range teams {
		rows[i] = TeamStanding{
			Team:       t.Name,
			Abbrev:     t.Abbrev,
			Wins:       t.Wins,
			Losses:     t.Losses,
			WinningPct: WinningPct(t.Wins, t.Losses),
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].WinningPct > rows[j].WinningPct
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// NewStandings computes the standings of a season.
func NewStandings(dir league.TeamDirectory) *Standings {
	rows := ComputeStandings(dir.Teams())
	s := &Standings{rows: rows, byAbbrev: make(map[string]int, len(rows))}
	for i, r := range rows {
		s.byAbbrev[strings.ToUpper(r.Abbrev)] = i
	}
	return s
}

// All returns the standings by ascending rank.
func (s *Standings) All() []TeamStanding {
	out := make([]TeamStanding, len(s.rows))
	copy(out, s.rows)
	return out
}

// Rank returns one team's standing.
func (s *Standings) Rank(abbrev string) (TeamStanding, error) {
	i, ok := s.byAbbrev[strings.ToUpper(strings.TrimSpace(abbrev))]
	if !ok {
		return TeamStanding{}, fmt.Errorf("team %q: %w", abbrev, league.ErrNotFound)
	}
	return s.rows[i], nil
}
