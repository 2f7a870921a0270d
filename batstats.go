// Package batstats answers ad-hoc statistical queries over one season of
// batting records for a fixed 30-team league.
//
// Usage:
//
//	import (
//	    "github.com/spektr-org/batstats/analytics"
//	    "github.com/spektr-org/batstats/command"
//	    "github.com/spektr-org/batstats/league"
//	)
//
//	store, err := league.NewStore(records)
//	d := command.NewDispatcher(store, league.Season2016())
//	result, err := d.Execute(command.GetMeanStat, command.Args{"stat": "HR"})
//
// The engine never calls an external service. Records are loaded once
// (helpers.ParseCSV, helpers.LoadSQL) and every query after that is a pure,
// read-only computation over the in-memory table.
package batstats
