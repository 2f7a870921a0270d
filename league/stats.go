package league

import (
	"fmt"
	"strings"
)

// ============================================================================
// STATS — The 16 tracked batting statistics
// ============================================================================
// Stat is a closed enumeration. Its order is the column order of the batting
// table and the order every per-stat result is reported in.
// ============================================================================

// Stat identifies one tracked batting statistic.
type Stat int

const (
	Games Stat = iota
	AtBats
	Runs
	Hits
	Doubles
	Triples
	HomeRuns
	RunsBattedIn
	Walks
	Strikeouts
	StolenBases
	CaughtStealing
	Average
	Slugging
	OnBase
	OnBasePlusSlugging

	NumStats = int(OnBasePlusSlugging) + 1
)

var statCodes = [NumStats]string{
	"G", "AB", "R", "H", "2B", "3B", "HR", "RBI",
	"BB", "K", "SB", "CS", "AVG", "SLG", "OBP", "OPS",
}

var statNames = [NumStats]string{
	"Games", "At Bats", "Runs", "Hits", "Doubles", "Triples", "Home Runs",
	"Runs Batted In", "Walks", "Strikeouts", "Stolen Bases", "Caught Stealing",
	"Batting Average", "Slugging Percentage", "On-Base Percentage", "On-Base Plus Slugging",
}

// Code returns the short column symbol, e.g. "HR".
func (s Stat) Code() string {
	if !s.Valid() {
		return fmt.Sprintf("Stat(%d)", int(s))
	}
	return statCodes[s]
}

// DisplayName returns the long name, e.g. "Home Runs".
func (s Stat) DisplayName() string {
	if !s.Valid() {
		return s.Code()
	}
	return statNames[s]
}

func (s Stat) String() string { return s.Code() }

// Valid reports whether s is one of the tracked stats.
func (s Stat) Valid() bool { return s >= 0 && int(s) < NumStats }

// ParseStat resolves a stat code, ignoring case and surrounding space.
func ParseStat(code string) (Stat, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	for i, known := range statCodes {
		if known == c {
			return Stat(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStat, code)
}

// AllStats returns every tracked stat in column order.
func AllStats() []Stat {
	out := make([]Stat, NumStats)
	for i := range out {
		out[i] = Stat(i)
	}
	return out
}

// CountingStats are the stats that add up meaningfully across a roster:
// everything before CS. Rate stats and caught-stealing are left out.
func CountingStats() []Stat {
	return []Stat{Games, AtBats, Runs, Hits, Doubles, Triples, HomeRuns, RunsBattedIn, Walks, Strikeouts, StolenBases}
}

// StatCodes returns the codes of every tracked stat, in column order.
func StatCodes() []string {
	out := make([]string, NumStats)
	copy(out, statCodes[:])
	return out
}
