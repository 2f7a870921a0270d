package render

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spektr-org/batstats/engine"
)

// ============================================================================
// RENDER — Result → text, JSON or CSV
// ============================================================================
// Charts are drawn separately (see chart.go); every chart Result also carries
// its plotted values as TableData, so the textual formats still show them.
// ============================================================================

// Output formats.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatPretty = "pretty"
	FormatCSV    = "csv"
)

// ErrUnknownFormat is returned for a format outside the list above.
var ErrUnknownFormat = errors.New("unknown output format")

// Write renders res in the named format.
func Write(w io.Writer, res *engine.Result, format string) error {
	switch strings.ToLower(format) {
	case FormatText, "":
		return WriteText(w, res)
	case FormatJSON:
		return WriteJSON(w, res, false)
	case FormatPretty:
		return WriteJSON(w, res, true)
	case FormatCSV:
		return WriteCSV(w, res)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ============================================================================
// TEXT OUTPUT — Console tables
// ============================================================================

// WriteText prints the reply line, then the table with aligned columns.
func WriteText(w io.Writer, res *engine.Result) error {
	if res == nil {
		_, err := fmt.Fprintln(w, "No result.")
		return err
	}

	if res.Reply != "" {
		if _, err := fmt.Fprintln(w, res.Reply); err != nil {
			return err
		}
		// Scalar replies already say everything the one-row table would.
		if res.Type == engine.ResultText {
			return nil
		}
	}

	if res.TableData == nil {
		return nil
	}
	return writeTable(w, res.TableData)
}

func writeTable(w io.Writer, t *engine.TableData) error {
	if t.Title != "" {
		if _, err := fmt.Fprintln(w, t.Title); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Headers(), "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if t.Summary != nil {
		parts := make([]string, 0, len(t.Summary.Values))
		for _, c := range t.Columns {
			if v, ok := t.Summary.Values[c.Key]; ok {
				parts = append(parts, c.Label+"="+v)
			}
		}
		if len(parts) == 0 {
			keys := make([]string, 0, len(t.Summary.Values))
			for k := range t.Summary.Values {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				parts = append(parts, k+"="+t.Summary.Values[k])
			}
		}
		fmt.Fprintf(tw, "%s:\t%s\n", t.Summary.Label, strings.Join(parts, " "))
	}
	return tw.Flush()
}

// ============================================================================
// JSON OUTPUT
// ============================================================================

// WriteJSON encodes v on one line, or indented when pretty is set.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var out []byte
	var err error

	if pretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// ============================================================================
// CSV OUTPUT — Sheets-ready rows
// ============================================================================

// WriteCSV writes chart data when the result has a chart, else its table,
// else the reply as a single cell.
func WriteCSV(w io.Writer, res *engine.Result) error {
	cw := csv.NewWriter(w)

	switch {
	case res == nil:
		cw.Write([]string{"Result", "No data"})
	case res.ChartConfig != nil && writeChartCSV(cw, res.ChartConfig):
	case res.TableData != nil && writeTableCSV(cw, res.TableData):
	default:
		reply := res.Reply
		if reply == "" {
			reply = "No data"
		}
		cw.Write([]string{"Summary"})
		cw.Write([]string{reply})
	}

	cw.Flush()
	return cw.Error()
}

func writeChartCSV(cw *csv.Writer, chart *engine.ChartConfig) bool {
	table := engine.BuildChartTable(chart)
	if table == nil {
		return false
	}
	return writeTableCSV(cw, table)
}

func writeTableCSV(cw *csv.Writer, table *engine.TableData) bool {
	headers := table.Headers()
	if len(headers) == 0 {
		return false
	}
	cw.Write(headers)
	for _, row := range table.Rows {
		cw.Write(row)
	}
	return true
}
