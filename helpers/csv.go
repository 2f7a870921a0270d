package helpers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spektr-org/batstats/league"
	"github.com/spektr-org/batstats/schema"
)

// ============================================================================
// CSV HELPER — Parses the batting table into []league.PlayerRecord
// ============================================================================
// Consumer reads the CSV from wherever it lives (file, HTTP upload, stdin).
// Columns are located by header name through the schema, so column order and
// extra columns do not matter.
// ============================================================================

// ParseCSV parses CSV bytes into player records using sch to find columns.
// Empty numeric cells read as 0; any other non-numeric cell is an error
// naming its line and column.
func ParseCSV(data []byte, sch schema.Config) ([]league.PlayerRecord, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	index, err := sch.ColumnIndex(headers)
	if err != nil {
		return nil, err
	}

	stats, err := statColumns(sch)
	if err != nil {
		return nil, err
	}

	var records []league.PlayerRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		rec := league.PlayerRecord{
			Name:     cell(row, index[sch.KeyColumn]),
			Team:     cell(row, index[sch.Dimensions[0].Column]),
			Position: cell(row, index[sch.Dimensions[1].Column]),
		}
		for _, sc := range stats {
			col := index[sc.column]
			v, err := parseNumber(cell(row, col))
			if err != nil {
				line, _ := reader.FieldPos(col)
				return nil, fmt.Errorf("line %d, column %s: %w", line, sc.column, err)
			}
			rec.Stats[sc.stat] = v
		}
		records = append(records, rec)
	}

	return records, nil
}

// LoadCSV parses data and builds a Store from it (convenience wrapper).
func LoadCSV(data []byte, sch schema.Config) (*league.Store, error) {
	records, err := ParseCSV(data, sch)
	if err != nil {
		return nil, err
	}
	return league.NewStore(records)
}

type statColumn struct {
	column string
	stat   league.Stat
}

// statColumns pairs each schema measure with the Stat it fills.
func statColumns(sch schema.Config) ([]statColumn, error) {
	if len(sch.Dimensions) != 2 {
		return nil, fmt.Errorf("schema %s: want team and position dimensions, got %d", sch.Name, len(sch.Dimensions))
	}
	cols := make([]statColumn, 0, len(sch.Measures))
	for _, m := range sch.Measures {
		s, err := league.ParseStat(m.Key)
		if err != nil {
			return nil, fmt.Errorf("schema %s: %w", sch.Name, err)
		}
		cols = append(cols, statColumn{column: m.Key, stat: s})
	}
	return cols, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseNumber(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}
