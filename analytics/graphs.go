package analytics

import (
	"fmt"

	"github.com/spektr-org/batstats/engine"
	"github.com/spektr-org/batstats/league"
)

// ============================================================================
// GRAPHS — Chart data for the three graph commands
// ============================================================================
// These produce engine.ChartConfig only; drawing is the renderer's job.
// ============================================================================

// TeamByStat charts each team's total of one stat as horizontal bars,
// smallest total first. Excluded teams are left out.
func (a *Aggregator) TeamByStat(code string) (*engine.ChartConfig, error) {
	groups, err := a.SumByTeam(code)
	if err != nil {
		return nil, err
	}
	stat, _ := league.ParseStat(code)

	cfg := engine.BuildChart(engine.ChartSpec{
		Type:  engine.ChartHorizontal,
		Title: fmt.Sprintf("%s By Team", stat.Code()),
		XAxis: stat.Code(),
		YAxis: "Team",
	}, groups)
	if cfg == nil {
		return nil, fmt.Errorf("no rostered players for %s: %w", stat.Code(), league.ErrNotFound)
	}
	return cfg, nil
}

// StatByStat scatters two league columns against each other, the first stat
// on the x axis. Every player is plotted, free agents included.
func StatByStat(store *league.Store, xCode, yCode string) (*engine.ChartConfig, error) {
	xs, err := league.ParseStat(xCode)
	if err != nil {
		return nil, err
	}
	ys, err := league.ParseStat(yCode)
	if err != nil {
		return nil, err
	}

	records := store.Records()
	labels := make([]string, len(records))
	for i, r := range records {
		labels[i] = r.Name
	}

	cfg := engine.BuildScatter(engine.ChartSpec{
		Title: fmt.Sprintf("%s versus %s", ys.Code(), xs.Code()),
		XAxis: xs.Code(),
		YAxis: ys.Code(),
	}, labels, store.Values(xs), store.Values(ys))
	if cfg == nil {
		return nil, fmt.Errorf("no players loaded: %w", league.ErrNotFound)
	}
	return cfg, nil
}

// TeamComparison charts two teams' counting-stat totals side by side: one
// bar group per stat, one series per team.
func (a *Aggregator) TeamComparison(first, second string) *engine.ChartConfig {
	stats := league.CountingStats()
	firstTotals := a.TeamTotals(first, stats)
	secondTotals := a.TeamTotals(second, stats)

	groups := make([]engine.Group, len(stats))
	for i, s := range stats {
		groups[i] = engine.Group{
			Key:   s.Code(),
			Label: s.Code(),
			SubGroups: []engine.Group{
				{Key: first, Label: first, Value: firstTotals[i]},
				{Key: second, Label: second, Value: secondTotals[i]},
			},
		}
	}

	return engine.BuildChart(engine.ChartSpec{
		Type:  engine.ChartBar,
		Title: fmt.Sprintf("A Comparison Between %s and %s in Each Stat", first, second),
		XAxis: "Stats",
		YAxis: "Scores in Each Stat",
	}, groups)
}
