package command

import (
	"errors"
	"strings"
	"testing"

	"github.com/spektr-org/batstats/engine"
	"github.com/spektr-org/batstats/league"
	"github.com/spektr-org/batstats/league/leaguetest"
)

func newTestDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	return NewDispatcher(leaguetest.Store(t), league.Season2016())
}

func mustExecute(t *testing.T, d *Dispatcher, cmd Command, args Args) *engine.Result {
	t.Helper()
	res, err := d.Execute(cmd, args)
	if err != nil {
		t.Fatalf("%s: %v", cmd, err)
	}
	if res.Command != cmd.String() {
		t.Errorf("result command = %q, want %q", res.Command, cmd)
	}
	return res
}

// ============================================================================
// ENUMERATION
// ============================================================================

func TestParseIsCaseInsensitive(t *testing.T) {
	for _, c := range All() {
		for _, name := range []string{c.String(), strings.ToLower(c.String()), " " + strings.ToUpper(c.String()) + " "} {
			got, err := Parse(name)
			if err != nil || got != c {
				t.Errorf("Parse(%q) = %v, %v", name, got, err)
			}
		}
	}
	if _, err := Parse("Get-Batting-Title"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("unknown name error = %v", err)
	}
}

func TestEveryCommandHasAHandler(t *testing.T) {
	if len(All()) != 16 {
		t.Fatalf("expected 16 commands, got %d", len(All()))
	}
	for _, c := range All() {
		if _, ok := handlers[c]; !ok {
			t.Errorf("%s has no handler", c)
		}
	}
	if _, err := newTestDispatcher(t).Execute(Command(42), nil); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("out-of-range command error = %v", err)
	}
}

func TestInputs(t *testing.T) {
	in := GetQuantileStat.Inputs()
	if len(in) != 2 || in[0].Key != ArgStat || in[1].Key != ArgQuantile {
		t.Fatalf("unexpected inputs: %+v", in)
	}
	if in[0].Validate == nil || in[0].Validate("hr") != nil || in[0].Validate("WAR") == nil {
		t.Error("stat input should validate codes")
	}
	if !strings.Contains(in[0].Prompt, "2B, 3B, HR") {
		t.Errorf("stat prompt = %q", in[0].Prompt)
	}
	if GetStandings.Inputs() != nil {
		t.Error("Get-Standings takes no input")
	}
}

// ============================================================================
// EXECUTION
// ============================================================================

func TestExecuteStandings(t *testing.T) {
	res := mustExecute(t, newTestDispatcher(t), GetStandings, nil)
	rows := res.TableData.Rows
	if len(rows) != 30 {
		t.Fatalf("expected 30 rows, got %d", len(rows))
	}
	if rows[1][1] != "Texas Rangers" || rows[1][4] != "0.586" || rows[2][1] != "Washington Nationals" {
		t.Errorf("unexpected rows 2-3: %v %v", rows[1], rows[2])
	}
}

func TestExecuteRoster(t *testing.T) {
	d := newTestDispatcher(t)
	res := mustExecute(t, d, GetRoster, Args{ArgTeam: "chicago cubs"})
	if len(res.TableData.Rows) != 3 || res.TableData.Rows[0][0] != "Bryant, Kris" {
		t.Fatalf("unexpected roster: %v", res.TableData.Rows)
	}
	if len(res.TableData.Columns) != 19 {
		t.Errorf("expected 3 dimensions + 16 stats, got %d columns", len(res.TableData.Columns))
	}

	_, err := d.Execute(GetRoster, Args{ArgTeam: "Brooklyn Dodgers"})
	if Message(GetRoster, err) != "Invalid Team Name" {
		t.Errorf("message = %q", Message(GetRoster, err))
	}
}

func TestExecutePlayerStats(t *testing.T) {
	d := newTestDispatcher(t)
	res := mustExecute(t, d, GetPlayerStats, Args{ArgLast: "ortiz", ArgFirst: "david"})
	if len(res.TableData.Rows) != 1 || res.TableData.Rows[0][2] != "DH" {
		t.Fatalf("unexpected rows: %v", res.TableData.Rows)
	}

	_, err := d.Execute(GetPlayerStats, Args{ArgLast: "Ruth", ArgFirst: "Babe"})
	if Message(GetPlayerStats, err) != "Invalid Player Name" {
		t.Errorf("message = %q", Message(GetPlayerStats, err))
	}
}

func TestExecuteTeamStats(t *testing.T) {
	d := newTestDispatcher(t)

	mean := mustExecute(t, d, GetAvgTeamStats, nil)
	if len(mean.TableData.Rows) != 5 {
		t.Fatalf("expected 5 teams, got %d", len(mean.TableData.Rows))
	}
	// Team column then G AB R H 2B 3B HR
	if chc := mean.TableData.Rows[2]; chc[0] != "CHC" || chc[7] != "30.667" {
		t.Errorf("unexpected CHC mean row: %v", chc)
	}

	std := mustExecute(t, d, GetStdTeamStats, nil)
	if bal := std.TableData.Rows[0]; bal[7] != "NaN" {
		t.Errorf("BAL std HR = %s, want NaN", bal[7])
	}

	med := mustExecute(t, d, GetMedTeamStats, nil)
	for _, row := range med.TableData.Rows {
		if row[0] == league.FreeAgent {
			t.Fatal("free agents in median table")
		}
	}
}

func TestExecuteScalars(t *testing.T) {
	d := newTestDispatcher(t)

	cases := []struct {
		cmd   Command
		reply string
	}{
		{GetMeanStat, "The mean HR is: 33.417"},
		{GetMedianStat, "The median HR is: 32.500"},
		{GetStdStat, "The standard deviation of HR is: 7.621"},
	}
	for _, c := range cases {
		res := mustExecute(t, d, c.cmd, Args{ArgStat: "hr"})
		if res.Reply != c.reply {
			t.Errorf("%s reply = %q, want %q", c.cmd, res.Reply, c.reply)
		}
	}

	_, err := d.Execute(GetMeanStat, Args{ArgStat: "WAR"})
	if Message(GetMeanStat, err) != "Invalid Stat" {
		t.Errorf("message = %q", Message(GetMeanStat, err))
	}
}

func TestExecuteMaxStatPlayer(t *testing.T) {
	res := mustExecute(t, newTestDispatcher(t), GetMaxStatPlayer, Args{ArgStat: "3B"})
	rows := res.TableData.Rows
	if len(rows) != 2 || rows[0][0] != "Murphy, Daniel" || rows[1][0] != "Betts, Mookie" || rows[1][2] != "5" {
		t.Fatalf("unexpected leaders: %v", rows)
	}
}

func TestExecuteQuantileStat(t *testing.T) {
	d := newTestDispatcher(t)

	res := mustExecute(t, d, GetQuantileStat, Args{ArgStat: "HR", ArgQuantile: "0.5"})
	if len(res.TableData.Rows) != 6 || res.TableData.Summary.Values["HR"] != "32.5" {
		t.Fatalf("unexpected result: %v %+v", res.TableData.Rows, res.TableData.Summary)
	}

	cases := []struct {
		args Args
		msg  string
	}{
		{Args{ArgStat: "HR", ArgQuantile: "1.5"}, "Invalid Quantile"},
		{Args{ArgStat: "HR", ArgQuantile: "half"}, "Invalid Quantile"},
		{Args{ArgStat: "WAR", ArgQuantile: "0.5"}, "Invalid Stat"},
	}
	for _, c := range cases {
		_, err := d.Execute(GetQuantileStat, c.args)
		if got := Message(GetQuantileStat, err); got != c.msg {
			t.Errorf("%v: message = %q, want %q", c.args, got, c.msg)
		}
	}
}

func TestExecutePlayerQuantile(t *testing.T) {
	d := newTestDispatcher(t)

	res := mustExecute(t, d, GetPlayerQuantile, Args{ArgLast: "Trumbo", ArgFirst: "Mark"})
	if res.Reply != "Name: Trumbo, Mark" {
		t.Errorf("reply = %q", res.Reply)
	}
	if hr := res.TableData.Rows[league.HomeRuns]; hr[0] != "HR" || hr[1] != "100.0%" {
		t.Errorf("HR row = %v", hr)
	}

	_, err := d.Execute(GetPlayerQuantile, Args{ArgLast: "Nobody"})
	if Message(GetPlayerQuantile, err) != "Invalid Player" {
		t.Errorf("message = %q", Message(GetPlayerQuantile, err))
	}
}

func TestExecuteGraphs(t *testing.T) {
	d := newTestDispatcher(t)

	byTeam := mustExecute(t, d, GraphTeamByStat, Args{ArgStat: "HR"})
	if byTeam.Type != engine.ResultChart || byTeam.ChartConfig.ChartType != engine.ChartHorizontal {
		t.Fatalf("unexpected result: %+v", byTeam)
	}
	if byTeam.TableData == nil || len(byTeam.TableData.Rows) != 5 || byTeam.TableData.Rows[0][0] != "BAL" {
		t.Errorf("unexpected plotted table: %+v", byTeam.TableData)
	}

	scatter := mustExecute(t, d, GraphStatByStat, Args{ArgStat1: "AB", ArgStat2: "HR"})
	if scatter.ChartConfig.ChartType != engine.ChartScatter || len(scatter.TableData.Rows) != 12 {
		t.Errorf("unexpected scatter: %+v", scatter.ChartConfig)
	}
	_, err := d.Execute(GraphStatByStat, Args{ArgStat1: "AB", ArgStat2: "WAR"})
	if Message(GraphStatByStat, err) != "Invalid Stat(s)" {
		t.Errorf("message = %q", Message(GraphStatByStat, err))
	}

	cmp := mustExecute(t, d, GraphTeamComparison, Args{ArgTeam1: "Chicago Cubs", ArgTeam2: "texas rangers"})
	if len(cmp.ChartConfig.Series) != 2 || cmp.TableData.Columns[1].Label != "CHC" {
		t.Errorf("unexpected comparison: %+v", cmp.TableData.Columns)
	}
	_, err = d.Execute(GraphTeamComparison, Args{ArgTeam1: "Chicago Cubs", ArgTeam2: "Nowhere"})
	if Message(GraphTeamComparison, err) != "Invalid Team Name(s)" {
		t.Errorf("message = %q", Message(GraphTeamComparison, err))
	}
}

func TestExecuteListOfCommands(t *testing.T) {
	res, err := newTestDispatcher(t).ExecuteName("list-of-commands", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.TableData.Rows) != 16 || !strings.Contains(res.Reply, "'Graph-Team-Comparison'") {
		t.Errorf("unexpected listing: %q", res.Reply)
	}
}

func TestMessageUnknownCommand(t *testing.T) {
	_, err := newTestDispatcher(t).ExecuteName("Get-Batting-Title", nil)
	if Message(GetStandings, err) != "Invalid Command" {
		t.Errorf("message = %q", Message(GetStandings, err))
	}
	if Message(GetStandings, nil) != "" {
		t.Error("nil error should have no message")
	}
}
