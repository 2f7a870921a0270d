package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spektr-org/batstats/command"
	"github.com/spektr-org/batstats/league"
	"github.com/spektr-org/batstats/league/leaguetest"
)

func runConsole(t *testing.T, input, chartDir string) (string, *console) {
	t.Helper()
	d := command.NewDispatcher(leaguetest.Store(t), league.Season2016())
	var out bytes.Buffer
	c := newConsole(d, 2016, strings.NewReader(input), &out, "text", chartDir)
	if err := c.run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	return out.String(), c
}

func TestConsoleGreeting(t *testing.T) {
	g := greeting(2016)
	if !strings.HasPrefix(g, "Greetings, this program analyzes and graphs 2016 MLB Data.") {
		t.Errorf("greeting = %q", g)
	}
	if !strings.HasSuffix(g, "'Graph-Team-Comparison', or 'List-Of-Commands': ") {
		t.Errorf("greeting should end with the last command: %q", g)
	}
}

func TestConsoleMeanStat(t *testing.T) {
	out, c := runConsole(t, "get-mean-stat\nhr\nend\n", "")
	if !strings.Contains(out, "Enter a stat (G, AB, R, H, 2B, 3B, HR") {
		t.Errorf("missing stat prompt:\n%s", out)
	}
	if !strings.Contains(out, "The mean HR is: 33.417\n") {
		t.Errorf("missing reply:\n%s", out)
	}
	if c.last != "The mean HR is: 33.417\n" {
		t.Errorf("last = %q", c.last)
	}
}

func TestConsoleInvalidInputs(t *testing.T) {
	input := strings.Join([]string{
		"Get-Batting-Title",
		"Get-Roster", "Montreal Expos",
		"Get-Player-Stats", "Ruth", "Babe",
		"Get-Quantile-Stat", "WAR",
		"Get-Quantile-Stat", "HR", "1.5",
		"Get-Player-Quantile", "Nobody", "Here",
		"Graph-Stat-By-Stat", "AB", "WAR",
		"Graph-Team-Comparison", "Chicago Cubs", "Nowhere",
		"end",
	}, "\n")
	out, _ := runConsole(t, input, "")

	for _, msg := range []string{
		"Invalid Command\n",
		"Invalid Team Name\n",
		"Invalid Player Name\n",
		"Invalid Stat\n",
		"Invalid Quantile\n",
		"Invalid Player\n",
		"Invalid Stat(s)\n",
		"Invalid Team Name(s)\n",
	} {
		if !strings.Contains(out, msg) {
			t.Errorf("missing %q in:\n%s", msg, out)
		}
	}
	// An invalid stat ends Get-Quantile-Stat before the quantile prompt.
	if strings.Count(out, "Enter a quantile") != 1 {
		t.Errorf("quantile prompted %d times", strings.Count(out, "Enter a quantile"))
	}
}

func TestConsoleStopsAtEnd(t *testing.T) {
	out, _ := runConsole(t, "END\nGet-Standings\n", "")
	if strings.Contains(out, "Texas Rangers") {
		t.Error("commands after end should not run")
	}

	// End of input also stops the loop.
	out, _ = runConsole(t, "Get-Standings\n", "")
	if !strings.Contains(out, "Chicago Cubs") {
		t.Errorf("standings missing:\n%s", out)
	}
}

func TestConsoleSavesCharts(t *testing.T) {
	dir := t.TempDir()
	out, _ := runConsole(t, "Graph-Team-By-Stat\nHR\nend\n", dir)

	path := filepath.Join(dir, "graph-team-by-stat.png")
	if !strings.Contains(out, "Chart saved to "+path) {
		t.Errorf("missing save notice:\n%s", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("chart not written: %v", err)
	}
}

func TestConsoleCopy(t *testing.T) {
	d := command.NewDispatcher(leaguetest.Store(t), league.Season2016())
	var out bytes.Buffer
	var copied string

	c := newConsole(d, 2016, strings.NewReader("copy\nGet-Median-Stat\nAVG\ncopy\nend\n"), &out, "text", "")
	c.copy = func(s string) error {
		copied = s
		return nil
	}
	if err := c.run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Nothing to copy") {
		t.Error("copy before any result should say so")
	}
	if copied != "The median AVG is: 0.281\n" {
		t.Errorf("copied = %q", copied)
	}

	c = newConsole(d, 2016, strings.NewReader("List-Of-Commands\ncopy\nend\n"), &out, "text", "")
	c.copy = func(string) error { return errors.New("no display") }
	if err := c.run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Copy failed: no display") {
		t.Error("copy failure should be reported")
	}
}

func TestArgList(t *testing.T) {
	args := argList{}
	if err := args.Set("Stat=HR"); err != nil {
		t.Fatal(err)
	}
	if err := args.Set("quantile=0.5"); err != nil {
		t.Fatal(err)
	}
	if args["stat"] != "HR" || args["quantile"] != "0.5" {
		t.Errorf("args = %v", args)
	}
	if err := args.Set("nokey"); err == nil {
		t.Error("expected error for missing '='")
	}
}
