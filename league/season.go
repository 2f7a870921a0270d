package league

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// ============================================================================
// SEASON — Static team table (full name, abbreviation, wins, losses)
// ============================================================================
// A season is embedded data, parsed once. Engines see it only through
// TeamDirectory, so another year is a new JSON file and nothing else.
// ============================================================================

//go:embed seasons/2016.json
var season2016JSON []byte

// Team is one club's entry in the season table.
type Team struct {
	Name   string `json:"name"`
	Abbrev string `json:"abbrev"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

// TeamDirectory is the narrow accessor the engines use for team data.
type TeamDirectory interface {
	// Teams returns the table in its listed order. Order matters: it breaks
	// standings ties.
	Teams() []Team
	Abbrev(name string) (string, error)
	TeamName(abbrev string) (string, error)
}

// Season is an immutable team table with name and abbreviation indexes.
type Season struct {
	year     int
	teams    []Team
	byName   map[string]int
	byAbbrev map[string]int
}

type seasonFile struct {
	Year  int    `json:"year"`
	Teams []Team `json:"teams"`
}

// ParseSeason decodes a season table. Names and abbreviations must be unique.
func ParseSeason(data []byte) (*Season, error) {
	var f seasonFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode season: %w", err)
	}
	return NewSeason(f.Year, f.Teams)
}

// NewSeason indexes a team table.
func NewSeason(year int, teams []Team) (*Season, error) {
	s := &Season{
		year:     year,
		teams:    make([]Team, len(teams)),
		byName:   make(map[string]int, len(teams)),
		byAbbrev: make(map[string]int, len(teams)),
	}
	copy(s.teams, teams)

	for i, t := range s.teams {
		name := nameKey(t.Name)
		abbrev := strings.ToUpper(strings.TrimSpace(t.Abbrev))
		if name == "" || abbrev == "" {
			return nil, fmt.Errorf("season %d: team %d has an empty name or abbreviation", year, i)
		}
		if _, dup := s.byName[name]; dup {
			return nil, fmt.Errorf("season %d: duplicate team name %q", year, t.Name)
		}
		if _, dup := s.byAbbrev[abbrev]; dup {
			return nil, fmt.Errorf("season %d: duplicate abbreviation %q", year, t.Abbrev)
		}
		s.byName[name] = i
		s.byAbbrev[abbrev] = i
	}
	return s, nil
}

var season2016 = sync.OnceValue(func() *Season {
	s, err := ParseSeason(season2016JSON)
	if err != nil {
		panic(fmt.Sprintf("league: embedded 2016 season: %v", err))
	}
	return s
})

// Season2016 returns the embedded 2016 table.
func Season2016() *Season { return season2016() }

// Year returns the season year.
func (s *Season) Year() int { return s.year }

// Teams returns a copy of the table in listed order.
func (s *Season) Teams() []Team {
	out := make([]Team, len(s.teams))
	copy(out, s.teams)
	return out
}

// Abbrev maps a full team name to its abbreviation, ignoring case and
// extra space.
func (s *Season) Abbrev(name string) (string, error) {
	i, ok := s.byName[nameKey(name)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidTeamName, name)
	}
	return s.teams[i].Abbrev, nil
}

// TeamName maps an abbreviation back to the full team name.
func (s *Season) TeamName(abbrev string) (string, error) {
	i, ok := s.byAbbrev[strings.ToUpper(strings.TrimSpace(abbrev))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, abbrev)
	}
	return s.teams[i].Name, nil
}

func nameKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
