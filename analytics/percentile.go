package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/spektr-org/batstats/engine"
	"github.com/spektr-org/batstats/league"
)

// ============================================================================
// PERCENTILES — Quantile filters and per-player percentile ranks
// ============================================================================
// Both read the full league column, free agents included.
//
// A player's percentile for a stat is (p+1)/N, where p is the FIRST position
// of the player's value in the ascending column. Players tied on a value all
// get that first position's percentile.
// ============================================================================

// PlayerValue is one player's value for one stat.
type PlayerValue struct {
	Name  string  `json:"name"`
	Team  string  `json:"team"`
	Value float64 `json:"value"`
}

// QuantileResult lists the players at or above a quantile threshold.
type QuantileResult struct {
	Stat      league.Stat   `json:"-"`
	Code      string        `json:"stat"`
	Quantile  float64       `json:"quantile"`
	Threshold float64       `json:"threshold"`
	Players   []PlayerValue `json:"players"`
}

// StatPercentile is a player's percentile rank for one stat.
type StatPercentile struct {
	Stat       league.Stat `json:"-"`
	Code       string      `json:"stat"`
	Percentile float64     `json:"percentile"`
	Formatted  string      `json:"formatted"` // "XX.X%"
}

// PlayerPercentile is a player's rank across every tracked stat, in stat order.
type PlayerPercentile struct {
	Name  string           `json:"name"`
	Team  string           `json:"team"`
	Stats []StatPercentile `json:"stats"`
}

// Percentiles answers distribution queries over a store.
type Percentiles struct {
	store *league.Store
}

// NewPercentiles creates a Percentiles engine over store.
func NewPercentiles(store *league.Store) *Percentiles {
	return &Percentiles{store: store}
}

// QuantileStat returns every player whose value is at or above the q-th
// quantile (linear interpolation), smallest value first. Equal values keep
// dataset order.
func (p *Percentiles) QuantileStat(code string, q float64) (*QuantileResult, error) {
	stat, err := league.ParseStat(code)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(q) || q < 0 || q > 1 {
		return nil, fmt.Errorf("%w: %v is outside [0, 1]", league.ErrInvalidQuantile, q)
	}

	threshold := engine.Quantile(p.store.Values(stat), q)

	players := make([]PlayerValue, 0)
	for _, r := range p.store.Records() {
		if v := r.Value(stat); v >= threshold {
			players = append(players, PlayerValue{Name: r.Name, Team: r.Team, Value: v})
		}
	}
	sort.SliceStable(players, func(i, j int) bool { return players[i].Value < players[j].Value })

	return &QuantileResult{
		Stat:      stat,
		Code:      stat.Code(),
		Quantile:  q,
		Threshold: threshold,
		Players:   players,
	}, nil
}

// PlayerPercentiles ranks one player against the league in every stat.
func (p *Percentiles) PlayerPercentiles(last, first string) (*PlayerPercentile, error) {
	player, err := p.store.Player(last, first)
	if err != nil {
		return nil, err
	}

	n := p.store.Len()
	out := &PlayerPercentile{Name: player.Name, Team: player.Team, Stats: make([]StatPercentile, 0, league.NumStats)}
	for _, s := range league.AllStats() {
		sorted := p.store.Values(s)
		sort.Float64s(sorted)

		// SearchFloat64s finds the first index holding a value >= target; the
		// player's own value is present, so that is its first occurrence.
		pos := sort.SearchFloat64s(sorted, player.Value(s))
		pct := engine.Round(100*float64(pos+1)/float64(n), 1)

		out.Stats = append(out.Stats, StatPercentile{
			Stat:       s,
			Code:       s.Code(),
			Percentile: pct,
			Formatted:  FormatPercent(pct),
		})
	}
	return out, nil
}

// FormatPercent prints a percentile with one decimal, e.g. "41.7%".
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}
