package analytics

import (
	"github.com/spektr-org/batstats/engine"
	"github.com/spektr-org/batstats/league"
)

// ============================================================================
// AGGREGATOR — Per-team and league-wide aggregates
// ============================================================================
// Per-team results leave out the excluded teams (free agents by default).
// League-wide scalars read the full column, free agents included.
//
// Mean and standard deviation are rounded to RoundPlaces; the median is
// returned as computed.
// ============================================================================

// TeamStatRow holds one team's aggregate for every tracked stat.
type TeamStatRow struct {
	Team    string                   `json:"team"`
	Players int                      `json:"players"`
	Values  [league.NumStats]float64 `json:"values"`
}

// TeamStats is a per-team aggregate table, ordered by team code.
type TeamStats struct {
	Aggregation string        `json:"aggregation"`
	Rows        []TeamStatRow `json:"rows"`
}

// Aggregator computes grouped and scalar aggregates over a store.
type Aggregator struct {
	store *league.Store
	cfg   *config
}

// NewAggregator creates an Aggregator over store.
func NewAggregator(store *league.Store, opts ...Option) *Aggregator {
	return &Aggregator{store: store, cfg: applyOptions(opts)}
}

// rostered is the store view without the excluded teams.
func (a *Aggregator) rostered() engine.RecordView {
	return engine.Exclude(a.store.View(), league.DimTeam, a.cfg.ExcludedTeams...)
}

// ============================================================================
// PER-TEAM
// ============================================================================

// MeanByTeam is each team's mean of every stat, rounded.
func (a *Aggregator) MeanByTeam() TeamStats { return a.byTeam(engine.AggMean, true) }

// MedianByTeam is each team's median of every stat, unrounded.
func (a *Aggregator) MedianByTeam() TeamStats { return a.byTeam(engine.AggMedian, false) }

// StdByTeam is each team's sample standard deviation of every stat, rounded.
// A team with a single player has NaN throughout.
func (a *Aggregator) StdByTeam() TeamStats { return a.byTeam(engine.AggStd, true) }

func (a *Aggregator) byTeam(aggregation string, round bool) TeamStats {
	groups := engine.GroupBy(a.rostered(), league.DimTeam)
	engine.SortGroups(groups, "label_asc")

	out := TeamStats{Aggregation: aggregation, Rows: make([]TeamStatRow, 0, len(groups))}
	for _, g := range groups {
		row := TeamStatRow{Team: g.Key, Players: g.Count}
		for _, s := range league.AllStats() {
			v := engine.Aggregate(engine.ColumnValues(g.View, s.Code()), aggregation)
			if round {
				v = engine.Round(v, a.cfg.RoundPlaces)
			}
			row.Values[s] = v
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// SumByTeam totals one stat per team, smallest total first.
func (a *Aggregator) SumByTeam(code string) ([]engine.Group, error) {
	stat, err := league.ParseStat(code)
	if err != nil {
		return nil, err
	}
	return engine.GroupAndAggregate(a.rostered(), league.DimTeam, stat.Code(), engine.AggSum, "value_asc", 0), nil
}

// TeamTotals sums the given stats over one team's roster. An empty roster
// totals to zero.
func (a *Aggregator) TeamTotals(abbrev string, stats []league.Stat) []float64 {
	roster := a.store.Roster(abbrev)
	out := make([]float64, len(stats))
	for i, s := range stats {
		for _, p := range roster {
			out[i] += p.Value(s)
		}
	}
	return out
}

// ============================================================================
// LEAGUE-WIDE SCALARS
// ============================================================================

// MeanStat is the league mean of one stat, rounded.
func (a *Aggregator) MeanStat(code string) (float64, error) {
	values, err := a.store.Column(code)
	if err != nil {
		return 0, err
	}
	return engine.Round(engine.Mean(values), a.cfg.RoundPlaces), nil
}

// MedianStat is the league median of one stat, unrounded.
func (a *Aggregator) MedianStat(code string) (float64, error) {
	values, err := a.store.Column(code)
	if err != nil {
		return 0, err
	}
	return engine.Median(values), nil
}

// StdStat is the league sample standard deviation of one stat, rounded.
func (a *Aggregator) StdStat(code string) (float64, error) {
	values, err := a.store.Column(code)
	if err != nil {
		return 0, err
	}
	return engine.Round(engine.StdDev(values), a.cfg.RoundPlaces), nil
}
