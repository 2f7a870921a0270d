package league

import "errors"

// Lookup and validation failures. Callers match them with errors.Is; the
// wrapped message carries the offending input.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidStat     = errors.New("invalid stat")
	ErrInvalidQuantile = errors.New("invalid quantile")
	ErrInvalidTeamName = errors.New("invalid team name")
	ErrDuplicatePlayer = errors.New("duplicate player")
)
