package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spektr-org/batstats/analytics"
	"github.com/spektr-org/batstats/engine"
	"github.com/spektr-org/batstats/league"
)

// ============================================================================
// HANDLERS — One per command
// ============================================================================

func (d *Dispatcher) runStandings(Args) (*engine.Result, error) {
	rows := d.standings.All()

	table := &engine.TableData{
		Title: "Standings",
		Columns: []engine.Column{
			engine.NumberColumn("rank", "Rank"),
			engine.TextColumn("team", "Team"),
			engine.NumberColumn("wins", "Wins"),
			engine.NumberColumn("losses", "Losses"),
			engine.NumberColumn("pct", "Winning Pct"),
		},
		Rows: make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(r.Rank),
			r.Team,
			strconv.Itoa(r.Wins),
			strconv.Itoa(r.Losses),
			fmt.Sprintf("%.3f", r.WinningPct),
		})
	}
	return tableResult("Standings", table), nil
}

func (d *Dispatcher) runRoster(args Args) (*engine.Result, error) {
	abbrev, err := d.teams.Abbrev(args.Get(ArgTeam))
	if err != nil {
		return nil, err
	}
	view := engine.ApplyFilters(d.store.View(), engine.Filters{
		Dimensions: map[string][]string{league.DimTeam: {abbrev}},
	})
	title := fmt.Sprintf("%s Roster", abbrev)
	return tableResult(title, engine.BuildListTable(title, view, nil, nil)), nil
}

func (d *Dispatcher) runPlayerStats(args Args) (*engine.Result, error) {
	p, err := d.store.Player(args.Get(ArgLast), args.Get(ArgFirst))
	if err != nil {
		return nil, err
	}
	view := engine.ApplyFilters(d.store.View(), engine.Filters{
		Dimensions: map[string][]string{league.DimPlayer: {p.Name}},
	})
	return tableResult(p.Name, engine.BuildListTable(p.Name, view, nil, nil)), nil
}

func (d *Dispatcher) runAvgTeamStats(Args) (*engine.Result, error) {
	return teamStatsResult("Mean Team Stats", d.aggregator.MeanByTeam()), nil
}

func (d *Dispatcher) runMedTeamStats(Args) (*engine.Result, error) {
	return teamStatsResult("Median Team Stats", d.aggregator.MedianByTeam()), nil
}

func (d *Dispatcher) runStdTeamStats(Args) (*engine.Result, error) {
	return teamStatsResult("Standard Deviation Team Stats", d.aggregator.StdByTeam()), nil
}

func (d *Dispatcher) runMeanStat(args Args) (*engine.Result, error) {
	stat := strings.ToUpper(args.Get(ArgStat))
	v, err := d.aggregator.MeanStat(stat)
	if err != nil {
		return nil, err
	}
	return scalarResult(engine.AggMean, stat, v, fmt.Sprintf("The mean %s is: %.3f", stat, v)), nil
}

func (d *Dispatcher) runMedianStat(args Args) (*engine.Result, error) {
	stat := strings.ToUpper(args.Get(ArgStat))
	v, err := d.aggregator.MedianStat(stat)
	if err != nil {
		return nil, err
	}
	return scalarResult(engine.AggMedian, stat, v, fmt.Sprintf("The median %s is: %.3f", stat, v)), nil
}

func (d *Dispatcher) runStdStat(args Args) (*engine.Result, error) {
	stat := strings.ToUpper(args.Get(ArgStat))
	v, err := d.aggregator.StdStat(stat)
	if err != nil {
		return nil, err
	}
	return scalarResult(engine.AggStd, stat, v, fmt.Sprintf("The standard deviation of %s is: %.3f", stat, v)), nil
}

func (d *Dispatcher) runMaxStatPlayer(args Args) (*engine.Result, error) {
	stat := strings.ToUpper(args.Get(ArgStat))
	players, err := analytics.MaxStatPlayers(d.store, stat)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("Max %s", stat)
	return tableResult(title, playerValueTable(title, stat, players)), nil
}

func (d *Dispatcher) runQuantileStat(args Args) (*engine.Result, error) {
	stat := strings.ToUpper(args.Get(ArgStat))
	if _, err := league.ParseStat(stat); err != nil {
		return nil, err
	}
	q, err := strconv.ParseFloat(args.Get(ArgQuantile), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", league.ErrInvalidQuantile, args.Get(ArgQuantile))
	}

	res, err := d.percentiles.QuantileStat(stat, q)
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("%s at or above the %s quantile", stat, engine.FormatNumber(q))
	table := playerValueTable(title, stat, res.Players)
	table.Summary = &engine.Summary{
		Label:  "Threshold",
		Values: map[string]string{stat: engine.FormatNumber(res.Threshold)},
	}
	return tableResult(title, table), nil
}

func (d *Dispatcher) runPlayerQuantile(args Args) (*engine.Result, error) {
	res, err := d.percentiles.PlayerPercentiles(args.Get(ArgLast), args.Get(ArgFirst))
	if err != nil {
		return nil, err
	}

	table := &engine.TableData{
		Title:   res.Name,
		Columns: []engine.Column{engine.TextColumn("stat", "Stat"), engine.NumberColumn("percentile", "Percentile")},
		Rows:    make([][]string, 0, len(res.Stats)),
	}
	for _, s := range res.Stats {
		table.Rows = append(table.Rows, []string{s.Code, s.Formatted})
	}

	out := tableResult(res.Name, table)
	out.Reply = "Name: " + res.Name
	return out, nil
}

func (d *Dispatcher) runGraphTeamByStat(args Args) (*engine.Result, error) {
	cfg, err := d.aggregator.TeamByStat(args.Get(ArgStat))
	if err != nil {
		return nil, err
	}
	return chartResult(cfg), nil
}

func (d *Dispatcher) runGraphStatByStat(args Args) (*engine.Result, error) {
	cfg, err := analytics.StatByStat(d.store, args.Get(ArgStat1), args.Get(ArgStat2))
	if err != nil {
		return nil, err
	}
	return chartResult(cfg), nil
}

func (d *Dispatcher) runGraphTeamComparison(args Args) (*engine.Result, error) {
	first, err := d.teams.Abbrev(args.Get(ArgTeam1))
	if err != nil {
		return nil, err
	}
	second, err := d.teams.Abbrev(args.Get(ArgTeam2))
	if err != nil {
		return nil, err
	}
	return chartResult(d.aggregator.TeamComparison(first, second)), nil
}

func (d *Dispatcher) runListOfCommands(Args) (*engine.Result, error) {
	table := &engine.TableData{
		Title:   "Commands",
		Columns: []engine.Column{engine.TextColumn("command", "Command"), engine.TextColumn("inputs", "Inputs")},
	}
	names := make([]string, 0, numCommands)
	for _, c := range All() {
		keys := make([]string, 0, 2)
		for _, in := range c.Inputs() {
			keys = append(keys, in.Key)
		}
		table.Rows = append(table.Rows, []string{c.String(), strings.Join(keys, ", ")})
		names = append(names, "'"+c.String()+"'")
	}

	out := tableResult("Commands", table)
	out.Type = engine.ResultText
	out.Reply = "Here is a list of the program commands: \n " + strings.Join(names, " \n ")
	return out, nil
}

// ============================================================================
// RESULT BUILDERS
// ============================================================================

func tableResult(title string, table *engine.TableData) *engine.Result {
	return &engine.Result{Type: engine.ResultTable, Title: title, TableData: table}
}

func chartResult(cfg *engine.ChartConfig) *engine.Result {
	return &engine.Result{
		Type:        engine.ResultChart,
		Title:       cfg.Title,
		ChartConfig: cfg,
		TableData:   engine.BuildChartTable(cfg),
	}
}

func scalarResult(aggregation, stat string, v float64, reply string) *engine.Result {
	label := engine.LabelForAggregation(aggregation)
	return &engine.Result{
		Type:  engine.ResultText,
		Title: fmt.Sprintf("%s %s", label, stat),
		Reply: reply,
		TableData: &engine.TableData{
			Columns: []engine.Column{engine.TextColumn("stat", "Stat"), engine.NumberColumn("value", label)},
			Rows:    [][]string{{stat, engine.FormatNumber(v)}},
		},
	}
}

func playerValueTable(title, stat string, players []analytics.PlayerValue) *engine.TableData {
	table := &engine.TableData{
		Title: title,
		Columns: []engine.Column{
			engine.TextColumn("player", "Player"),
			engine.TextColumn("team", "Team"),
			engine.NumberColumn("value", stat),
		},
		Rows: make([][]string, 0, len(players)),
	}
	for _, p := range players {
		table.Rows = append(table.Rows, []string{p.Name, p.Team, engine.FormatNumber(p.Value)})
	}
	return table
}

func teamStatsResult(title string, stats analytics.TeamStats) *engine.Result {
	columns := []engine.Column{engine.TextColumn("team", "Team")}
	for _, code := range league.StatCodes() {
		columns = append(columns, engine.NumberColumn(code, code))
	}

	rows := make([][]string, 0, len(stats.Rows))
	for _, r := range stats.Rows {
		row := []string{r.Team}
		for _, v := range r.Values {
			row = append(row, engine.FormatNumber(v))
		}
		rows = append(rows, row)
	}
	return tableResult(title, &engine.TableData{Title: title, Columns: columns, Rows: rows})
}
