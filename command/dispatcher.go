package command

import (
	"errors"
	"fmt"
	"log"

	"github.com/spektr-org/batstats/analytics"
	"github.com/spektr-org/batstats/engine"
	"github.com/spektr-org/batstats/league"
)

// ============================================================================
// DISPATCHER — Command → engine operation → Result
// ============================================================================
// Every command maps to exactly one handler through the handlers table. The
// Result is render-ready; printing, charting and HTTP encoding happen outside.
//
// A Dispatcher holds only immutable engines, so one instance may serve
// concurrent callers.
// ============================================================================

type handler func(d *Dispatcher, args Args) (*engine.Result, error)

var handlers = map[Command]handler{
	GetStandings:        (*Dispatcher).runStandings,
	GetRoster:           (*Dispatcher).runRoster,
	GetPlayerStats:      (*Dispatcher).runPlayerStats,
	GetAvgTeamStats:     (*Dispatcher).runAvgTeamStats,
	GetMedTeamStats:     (*Dispatcher).runMedTeamStats,
	GetStdTeamStats:     (*Dispatcher).runStdTeamStats,
	GetMeanStat:         (*Dispatcher).runMeanStat,
	GetMedianStat:       (*Dispatcher).runMedianStat,
	GetStdStat:          (*Dispatcher).runStdStat,
	GetMaxStatPlayer:    (*Dispatcher).runMaxStatPlayer,
	GetQuantileStat:     (*Dispatcher).runQuantileStat,
	GetPlayerQuantile:   (*Dispatcher).runPlayerQuantile,
	GraphTeamByStat:     (*Dispatcher).runGraphTeamByStat,
	GraphStatByStat:     (*Dispatcher).runGraphStatByStat,
	GraphTeamComparison: (*Dispatcher).runGraphTeamComparison,
	ListOfCommands:      (*Dispatcher).runListOfCommands,
}

// Dispatcher runs commands against one season's data.
type Dispatcher struct {
	store       *league.Store
	teams       league.TeamDirectory
	standings   *analytics.Standings
	aggregator  *analytics.Aggregator
	percentiles *analytics.Percentiles
}

// NewDispatcher wires the engines for store and teams. Options go to the
// aggregator.
func NewDispatcher(store *league.Store, teams league.TeamDirectory, opts ...analytics.Option) *Dispatcher {
	return &Dispatcher{
		store:       store,
		teams:       teams,
		standings:   analytics.NewStandings(teams),
		aggregator:  analytics.NewAggregator(store, opts...),
		percentiles: analytics.NewPercentiles(store),
	}
}

// Players returns the number of players the dispatcher queries.
func (d *Dispatcher) Players() int { return d.store.Len() }

// Execute runs one command.
func (d *Dispatcher) Execute(cmd Command, args Args) (*engine.Result, error) {
	h, ok := handlers[cmd]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
	if args == nil {
		args = Args{}
	}

	log.Printf("⚾ batstats: %s over %d players", cmd, d.store.Len())

	res, err := h(d, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cmd, err)
	}
	res.Command = cmd.String()
	return res, nil
}

// ExecuteName parses name and runs the command.
func (d *Dispatcher) ExecuteName(name string, args Args) (*engine.Result, error) {
	cmd, err := Parse(name)
	if err != nil {
		return nil, err
	}
	return d.Execute(cmd, args)
}

// ============================================================================
// USER MESSAGES
// ============================================================================

// Message is the short line shown to an interactive user for a failed
// command. Errors outside the known taxonomy print as-is.
func Message(cmd Command, err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnknownCommand):
		return "Invalid Command"
	}

	switch cmd {
	case GetRoster:
		if errors.Is(err, league.ErrInvalidTeamName) {
			return "Invalid Team Name"
		}
	case GetPlayerStats:
		if errors.Is(err, league.ErrNotFound) {
			return "Invalid Player Name"
		}
	case GetPlayerQuantile:
		if errors.Is(err, league.ErrNotFound) {
			return "Invalid Player"
		}
	case GraphStatByStat:
		if errors.Is(err, league.ErrInvalidStat) {
			return "Invalid Stat(s)"
		}
	case GraphTeamComparison:
		if errors.Is(err, league.ErrInvalidTeamName) {
			return "Invalid Team Name(s)"
		}
	}

	switch {
	case errors.Is(err, league.ErrInvalidStat):
		return "Invalid Stat"
	case errors.Is(err, league.ErrInvalidQuantile):
		return "Invalid Quantile"
	case errors.Is(err, league.ErrInvalidTeamName):
		return "Invalid Team Name"
	case errors.Is(err, league.ErrNotFound):
		return "Not Found"
	default:
		return err.Error()
	}
}
