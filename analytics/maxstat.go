package analytics

import (
	"github.com/spektr-org/batstats/engine"
	"github.com/spektr-org/batstats/league"
)

// MaxStatPlayers returns every player tied at the league maximum of a stat,
// in dataset order.
func MaxStatPlayers(store *league.Store, code string) ([]PlayerValue, error) {
	stat, err := league.ParseStat(code)
	if err != nil {
		return nil, err
	}

	top := engine.Max(store.Values(stat))
	out := make([]PlayerValue, 0, 1)
	for _, r := range store.Records() {
		if v := r.Value(stat); v == top {
			out = append(out, PlayerValue{Name: r.Name, Team: r.Team, Value: v})
		}
	}
	return out, nil
}
