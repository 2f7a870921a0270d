package engine

import "strings"

// ============================================================================
// TABLE BUILDER — Produces TableData from views and charts
// ============================================================================
// Column discovery uses view.DimensionKeys()/MeasureKeys() when the caller
// does not name the columns explicitly.
// ============================================================================

// TextColumn is a left-aligned text column.
func TextColumn(key, label string) Column {
	return Column{Key: key, Label: label, Type: "text", Align: "left"}
}

// NumberColumn is a right-aligned numeric column.
func NumberColumn(key, label string) Column {
	return Column{Key: key, Label: label, Type: "number", Align: "right"}
}

// ============================================================================
// LIST TABLE — Row per record
// ============================================================================

// BuildListTable renders one row per record. Nil dimensions/measures means
// every key the view registers.
func BuildListTable(title string, view RecordView, dimensions, measures []string) *TableData {
	if dimensions == nil {
		dimensions = view.DimensionKeys()
	}
	if measures == nil {
		measures = view.MeasureKeys()
	}

	columns := make([]Column, 0, len(dimensions)+len(measures))
	for _, key := range dimensions {
		columns = append(columns, TextColumn(key, LabelForDimension(key)))
	}
	for _, key := range measures {
		columns = append(columns, NumberColumn(key, key))
	}

	rows := make([][]string, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		row := make([]string, 0, len(columns))
		for _, key := range dimensions {
			row = append(row, view.Dimension(i, key))
		}
		for _, key := range measures {
			row = append(row, FormatNumber(view.Measure(i, key)))
		}
		rows = append(rows, row)
	}

	return &TableData{
		Title:   title,
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label:  "Records",
			Values: map[string]string{"count": FormatInt(view.Len())},
		},
	}
}

// ============================================================================
// CHART TABLE — The plotted values of a chart, as rows
// ============================================================================

// BuildChartTable lays a chart's data out as a table: one row per point
// label, one column per series. Scatter charts get x and y columns instead.
func BuildChartTable(cfg *ChartConfig) *TableData {
	if cfg == nil || len(cfg.Series) == 0 {
		return nil
	}

	labelCol := cfg.YAxis
	if cfg.ChartType == ChartBar {
		labelCol = cfg.XAxis
	}
	if labelCol == "" {
		labelCol = "Label"
	}

	if cfg.ChartType == ChartScatter {
		columns := []Column{TextColumn("label", "Player"), NumberColumn("x", cfg.XAxis), NumberColumn("y", cfg.YAxis)}
		rows := make([][]string, 0, len(cfg.Series[0].Data))
		for _, p := range cfg.Series[0].Data {
			rows = append(rows, []string{p.Label, FormatNumber(p.X), FormatNumber(p.Value)})
		}
		return &TableData{Title: cfg.Title, Columns: columns, Rows: rows}
	}

	columns := []Column{TextColumn("label", labelCol)}
	for _, s := range cfg.Series {
		columns = append(columns, NumberColumn(s.Name, s.Name))
	}
	rows := make([][]string, 0, len(cfg.Series[0].Data))
	for i, p := range cfg.Series[0].Data {
		row := []string{p.Label}
		for _, s := range cfg.Series {
			if i < len(s.Data) {
				row = append(row, FormatNumber(s.Data[i].Value))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return &TableData{Title: cfg.Title, Columns: columns, Rows: rows}
}

// LabelForDimension returns a capitalized label for a dimension.
func LabelForDimension(dimension string) string {
	if len(dimension) == 0 {
		return ""
	}
	return strings.ToUpper(dimension[:1]) + dimension[1:]
}
