package league

import (
	"fmt"
	"strings"

	"github.com/spektr-org/batstats/engine"
)

// ============================================================================
// STORE — Immutable, indexed table of player records
// ============================================================================
// Built once from loader output and only read afterwards, so a *Store is safe
// for concurrent use without locking.
// ============================================================================

// View dimension keys. Each stat code is a measure key.
const (
	DimPlayer   = "player"
	DimTeam     = "team"
	DimPosition = "pos"
)

var playerAdapter = newPlayerAdapter()

func newPlayerAdapter() *engine.DomainAdapter[PlayerRecord] {
	a := engine.NewDomainAdapter[PlayerRecord]().
		Dimension(DimPlayer, func(p PlayerRecord) string { return p.Name }).
		Dimension(DimTeam, func(p PlayerRecord) string { return p.Team }).
		Dimension(DimPosition, func(p PlayerRecord) string { return p.Position })
	for _, s := range AllStats() {
		s := s // per-iteration copy for the closure (go.mod targets go 1.21)
		a.Measure(s.Code(), func(p PlayerRecord) float64 { return p.Stats[s] })
	}
	return a
}

// Store holds the season's player records.
type Store struct {
	records []PlayerRecord
	index   map[string]int
	view    engine.RecordView
}

// NewStore canonicalizes every player key and indexes the records. Record
// order is kept; it is the order ties resolve in downstream.
func NewStore(records []PlayerRecord) (*Store, error) {
	s := &Store{
		records: make([]PlayerRecord, len(records)),
		index:   make(map[string]int, len(records)),
	}

	for i, r := range records {
		r.Name = Canonical(r.Name)
		r.Team = strings.ToUpper(strings.TrimSpace(r.Team))
		r.Position = strings.TrimSpace(r.Position)
		if r.Name == "" {
			return nil, fmt.Errorf("record %d: empty player name", i)
		}
		if prev, dup := s.index[r.Name]; dup {
			return nil, fmt.Errorf("%w: %q at records %d and %d", ErrDuplicatePlayer, r.Name, prev, i)
		}
		s.index[r.Name] = i
		s.records[i] = r
	}

	s.view = playerAdapter.Bind(s.records)
	return s, nil
}

// Len returns the number of players.
func (s *Store) Len() int { return len(s.records) }

// Records returns a copy of every record in dataset order.
func (s *Store) Records() []PlayerRecord {
	out := make([]PlayerRecord, len(s.records))
	copy(out, s.records)
	return out
}

// View exposes the records to the engine: dimensions player, team, pos and
// one measure per stat code.
func (s *Store) View() engine.RecordView { return s.view }

// Roster returns the players on a team, in dataset order. An unknown or
// empty team yields an empty roster.
func (s *Store) Roster(abbrev string) []PlayerRecord {
	abbrev = strings.TrimSpace(abbrev)
	var out []PlayerRecord
	for _, r := range s.records {
		if strings.EqualFold(r.Team, abbrev) {
			out = append(out, r)
		}
	}
	return out
}

// Player looks a record up by name. Both parts are canonicalized first.
func (s *Store) Player(last, first string) (PlayerRecord, error) {
	key := PlayerKey(last, first)
	i, ok := s.index[key]
	if !ok {
		return PlayerRecord{}, fmt.Errorf("player %q: %w", key, ErrNotFound)
	}
	return s.records[i], nil
}

// Column returns the league-wide values of a stat code, in dataset order.
func (s *Store) Column(code string) ([]float64, error) {
	stat, err := ParseStat(code)
	if err != nil {
		return nil, err
	}
	return s.Values(stat), nil
}

// Values returns the league-wide values of a stat, in dataset order.
func (s *Store) Values(stat Stat) []float64 {
	return engine.ColumnValues(s.view, stat.Code())
}
