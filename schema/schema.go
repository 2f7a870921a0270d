package schema

import (
	"fmt"
	"strings"

	"github.com/spektr-org/batstats/league"
)

// ============================================================================
// SCHEMA — Describes the shape of the batting table
// ============================================================================
// Loaders use it to find columns by name; the key column holds the
// "Last, First" player name, dimensions are string columns, measures numeric.
// ============================================================================

// Config describes the complete shape of a dataset.
type Config struct {
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`

	KeyColumn  string          `json:"keyColumn"`
	Dimensions []DimensionMeta `json:"dimensions"`
	Measures   []MeasureMeta   `json:"measures"`
}

// DimensionMeta describes a string column.
type DimensionMeta struct {
	Key         string `json:"key"`    // record field
	Column      string `json:"column"` // source column header
	DisplayName string `json:"displayName"`
}

// MeasureMeta describes a numeric stat column. Counts default to sum, rates
// to mean.
type MeasureMeta struct {
	Key                string `json:"key"`
	DisplayName        string `json:"displayName"`
	Unit               string `json:"unit,omitempty"` // "games", "count", "rate"
	DefaultAggregation string `json:"defaultAggregation,omitempty"`
}

// DefaultDimension creates a DimensionMeta with sensible defaults.
func DefaultDimension(key, column, displayName string) DimensionMeta {
	return DimensionMeta{
		Key:         key,
		Column:      column,
		DisplayName: displayName,
	}
}

// DefaultMeasure creates a MeasureMeta with sensible defaults.
func DefaultMeasure(key, displayName string) MeasureMeta {
	return MeasureMeta{
		Key:                key,
		DisplayName:        displayName,
		Unit:               "count",
		DefaultAggregation: "sum",
	}
}

// Batting is the season batting table: PLAYER, Team, POS, then one column
// per tracked stat in stat order.
func Batting() Config {
	cfg := Config{
		Name:        "batting",
		Version:     "2016",
		Description: "Season batting lines, one row per player",
		KeyColumn:   "PLAYER",
		Dimensions: []DimensionMeta{
			DefaultDimension(league.DimTeam, "Team", "Team"),
			DefaultDimension(league.DimPosition, "POS", "Position"),
		},
	}

	for _, s := range league.AllStats() {
		m := DefaultMeasure(s.Code(), s.DisplayName())
		switch s {
		case league.Games:
			m.Unit = "games"
		case league.Average, league.Slugging, league.OnBase, league.OnBasePlusSlugging:
			m.Unit = "rate"
			m.DefaultAggregation = "mean"
		}
		cfg.Measures = append(cfg.Measures, m)
	}
	return cfg
}

// DimensionKeys returns all dimension keys.
func (c Config) DimensionKeys() []string {
	keys := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		keys[i] = d.Key
	}
	return keys
}

// MeasureKeys returns all measure keys.
func (c Config) MeasureKeys() []string {
	keys := make([]string, len(c.Measures))
	for i, m := range c.Measures {
		keys[i] = m.Key
	}
	return keys
}

// Columns returns every source column the schema reads: key, dimensions,
// then measures.
func (c Config) Columns() []string {
	cols := []string{c.KeyColumn}
	for _, d := range c.Dimensions {
		cols = append(cols, d.Column)
	}
	return append(cols, c.MeasureKeys()...)
}

// ColumnIndex maps each schema column to its position in headers. Header
// matching ignores case and surrounding space; extra headers are ignored.
// A missing column is an error naming it.
func (c Config) ColumnIndex(headers []string) (map[string]int, error) {
	pos := make(map[string]int, len(headers))
	for i, h := range headers {
		key := strings.ToUpper(strings.TrimSpace(h))
		if _, dup := pos[key]; !dup {
			pos[key] = i
		}
	}

	index := make(map[string]int)
	var missing []string
	for _, col := range c.Columns() {
		i, ok := pos[strings.ToUpper(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		index[col] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("schema %s: missing columns %s", c.Name, strings.Join(missing, ", "))
	}
	return index, nil
}
