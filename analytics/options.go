package analytics

import "github.com/spektr-org/batstats/league"

// ============================================================================
// ANALYTICS OPTIONS — Functional options for the aggregation engines
// ============================================================================

// Option configures an Aggregator via functional options.
type Option func(*config)

type config struct {
	RoundPlaces   int      // decimal places for mean/std results
	ExcludedTeams []string // team codes left out of grouped results
}

// WithRoundPlaces sets how many decimals mean and standard deviation keep.
// Medians are never rounded.
func WithRoundPlaces(places int) Option {
	return func(c *config) {
		if places >= 0 {
			c.RoundPlaces = places
		}
	}
}

// WithExcludedTeams replaces the team codes dropped from per-team results.
// No codes means every team, free agents included, is grouped.
func WithExcludedTeams(codes ...string) Option {
	return func(c *config) {
		c.ExcludedTeams = codes
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		RoundPlaces:   3,
		ExcludedTeams: []string{league.FreeAgent},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
