package schema

import (
	"strings"
	"testing"
)

func TestBattingColumns(t *testing.T) {
	sch := Batting()
	cols := sch.Columns()
	if len(cols) != 19 {
		t.Fatalf("expected 19 columns, got %d", len(cols))
	}
	if cols[0] != "PLAYER" || cols[1] != "Team" || cols[2] != "POS" || cols[3] != "G" || cols[18] != "OPS" {
		t.Errorf("unexpected column order: %v", cols)
	}
	if got := sch.DimensionKeys(); len(got) != 2 || got[0] != "team" || got[1] != "pos" {
		t.Errorf("dimension keys = %v", got)
	}
}

func TestBattingUnits(t *testing.T) {
	units := make(map[string]string)
	aggs := make(map[string]string)
	for _, m := range Batting().Measures {
		units[m.Key] = m.Unit
		aggs[m.Key] = m.DefaultAggregation
	}
	if units["G"] != "games" || units["HR"] != "count" || units["AVG"] != "rate" {
		t.Errorf("unexpected units: %v", units)
	}
	if aggs["HR"] != "sum" || aggs["OPS"] != "mean" {
		t.Errorf("unexpected default aggregations: %v", aggs)
	}
}

func TestColumnIndex(t *testing.T) {
	headers := strings.Split("Rank, player ,TEAM,POS,G,AB,R,H,2B,3B,HR,RBI,BB,K,SB,CS,AVG,SLG,OBP,OPS", ",")
	index, err := Batting().ColumnIndex(headers)
	if err != nil {
		t.Fatal(err)
	}
	if index["PLAYER"] != 1 || index["Team"] != 2 || index["OPS"] != 19 {
		t.Errorf("unexpected index: %v", index)
	}
	if _, ok := index["Rank"]; ok {
		t.Error("extra header should not be indexed")
	}
}

func TestColumnIndexMissing(t *testing.T) {
	_, err := Batting().ColumnIndex([]string{"PLAYER", "Team", "POS", "G", "AB"})
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
	if !strings.Contains(err.Error(), "HR") || !strings.Contains(err.Error(), "OPS") {
		t.Errorf("error should name missing columns: %v", err)
	}
}
