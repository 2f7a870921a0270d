package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spektr-org/batstats/league"
)

// ============================================================================
// COMMANDS — Closed enumeration of the query surface
// ============================================================================
// Names are matched case-insensitively. Anything else is ErrUnknownCommand;
// there is no fall-through.
// ============================================================================

// ErrUnknownCommand is returned for a name outside the command set.
var ErrUnknownCommand = errors.New("unknown command")

// Command is one of the 16 supported queries.
type Command int

const (
	GetStandings Command = iota
	GetRoster
	GetPlayerStats
	GetAvgTeamStats
	GetMedTeamStats
	GetStdTeamStats
	GetMeanStat
	GetMedianStat
	GetStdStat
	GetMaxStatPlayer
	GetQuantileStat
	GetPlayerQuantile
	GraphTeamByStat
	GraphStatByStat
	GraphTeamComparison
	ListOfCommands

	numCommands = int(ListOfCommands) + 1
)

var commandNames = [numCommands]string{
	"Get-Standings",
	"Get-Roster",
	"Get-Player-Stats",
	"Get-Avg-Team-Stats",
	"Get-Med-Team-Stats",
	"Get-Std-Team-Stats",
	"Get-Mean-Stat",
	"Get-Median-Stat",
	"Get-Std-Stat",
	"Get-Max-Stat-Player",
	"Get-Quantile-Stat",
	"Get-Player-Quantile",
	"Graph-Team-By-Stat",
	"Graph-Stat-By-Stat",
	"Graph-Team-Comparison",
	"List-Of-Commands",
}

func (c Command) String() string {
	if c < 0 || int(c) >= numCommands {
		return fmt.Sprintf("Command(%d)", int(c))
	}
	return commandNames[c]
}

// IsGraph reports whether the command produces a chart.
func (c Command) IsGraph() bool {
	return c == GraphTeamByStat || c == GraphStatByStat || c == GraphTeamComparison
}

// Parse resolves a command name, ignoring case and surrounding space.
func Parse(name string) (Command, error) {
	n := strings.TrimSpace(name)
	for i, known := range commandNames {
		if strings.EqualFold(known, n) {
			return Command(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}

// All returns every command in listing order.
func All() []Command {
	out := make([]Command, numCommands)
	for i := range out {
		out[i] = Command(i)
	}
	return out
}

// ============================================================================
// INPUTS — What each command asks the user for
// ============================================================================

// Argument keys.
const (
	ArgTeam     = "team"
	ArgTeam1    = "team1"
	ArgTeam2    = "team2"
	ArgLast     = "last"
	ArgFirst    = "first"
	ArgStat     = "stat"
	ArgStat1    = "stat1"
	ArgStat2    = "stat2"
	ArgQuantile = "quantile"
)

// Input is one prompted argument. Validate, when set, lets an interactive
// caller reject a bad value before asking for the next one.
type Input struct {
	Key      string             `json:"key"`
	Prompt   string             `json:"prompt"`
	Validate func(string) error `json:"-"`
}

var statPrompt = "Enter a stat (" + strings.Join(league.StatCodes(), ", ") + "): "

func validStat(v string) error {
	_, err := league.ParseStat(v)
	return err
}

var (
	teamInput     = Input{Key: ArgTeam, Prompt: "Enter a team name: "}
	lastInput     = Input{Key: ArgLast, Prompt: "Input player's last name: "}
	firstInput    = Input{Key: ArgFirst, Prompt: "Input player's first name: "}
	statInput     = Input{Key: ArgStat, Prompt: statPrompt, Validate: validStat}
	quantileInput = Input{Key: ArgQuantile, Prompt: "Enter a quantile (between 0 and 1 inclusive): "}
)

// Inputs lists the arguments a command takes, in prompt order.
func (c Command) Inputs() []Input {
	switch c {
	case GetRoster:
		return []Input{teamInput}
	case GetPlayerStats, GetPlayerQuantile:
		return []Input{lastInput, firstInput}
	case GetMeanStat, GetMedianStat, GetStdStat, GetMaxStatPlayer, GraphTeamByStat:
		return []Input{statInput}
	case GetQuantileStat:
		return []Input{statInput, quantileInput}
	case GraphStatByStat:
		return []Input{
			{Key: ArgStat1, Prompt: statPrompt},
			{Key: ArgStat2, Prompt: statPrompt},
		}
	case GraphTeamComparison:
		return []Input{
			{Key: ArgTeam1, Prompt: "Enter first team name: "},
			{Key: ArgTeam2, Prompt: "Enter second team name: "},
		}
	default:
		return nil
	}
}

// Args carries a command's arguments by key.
type Args map[string]string

// Get returns an argument with surrounding space trimmed.
func (a Args) Get(key string) string {
	return strings.TrimSpace(a[key])
}
