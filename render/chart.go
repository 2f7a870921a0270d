package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/spektr-org/batstats/engine"
)

// ============================================================================
// PNG CHARTS — Bar, horizontal bar and scatter via gonum/plot
// ============================================================================
// Canvas sizes are pixels. The canvas runs at 72 dpi so one point is one
// pixel. Fonts are the ones gonum/plot embeds, so no display or font files
// are needed.
// ============================================================================

// ErrEmptyChart is returned when a chart has no points to draw.
var ErrEmptyChart = errors.New("chart has no data")

// Default canvas size.
const (
	DefaultWidth  = 900
	DefaultHeight = 600
)

const (
	dpi         = 72
	pointRadius = 3
	// Share of each category slot the bars fill; the rest is the gap.
	barFill = 0.8
)

// WritePNG draws cfg as a PNG image of the given size.
func WritePNG(w io.Writer, cfg *engine.ChartConfig, width, height int) error {
	c, err := drawCanvas(cfg, width, height)
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes cfg to dir/<name>.png and returns the path.
func SavePNG(dir, name string, cfg *engine.ChartConfig) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}
	path := filepath.Join(dir, strings.ToLower(name)+".png")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := WritePNG(f, cfg, DefaultWidth, DefaultHeight); err != nil {
		return "", err
	}
	return path, nil
}

// Draw renders cfg onto a new image.
func Draw(cfg *engine.ChartConfig, width, height int) (image.Image, error) {
	c, err := drawCanvas(cfg, width, height)
	if err != nil {
		return nil, err
	}
	return c.Image(), nil
}

func drawCanvas(cfg *engine.ChartConfig, width, height int) (*vgimg.Canvas, error) {
	if cfg == nil || len(cfg.Series) == 0 || len(cfg.Series[0].Data) == 0 {
		return nil, ErrEmptyChart
	}
	if width < 200 || height < 150 {
		return nil, fmt.Errorf("chart size %dx%d is too small", width, height)
	}

	p, err := buildPlot(cfg, width, height)
	if err != nil {
		return nil, err
	}

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Points(float64(width)), vg.Points(float64(height))),
		vgimg.UseDPI(dpi),
		vgimg.UseBackgroundColor(color.White),
	)
	p.Draw(draw.New(c))
	return c, nil
}

// ============================================================================
// PLOT
// ============================================================================

func buildPlot(cfg *engine.ChartConfig, width, height int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = cfg.Title
	p.X.Label.Text = cfg.XAxis
	p.Y.Label.Text = cfg.YAxis
	p.Legend.Top = true

	if cfg.ShowGrid {
		grid := plotter.NewGrid()
		// Only the value axis gets grid lines on bar charts.
		switch cfg.ChartType {
		case engine.ChartHorizontal:
			grid.Horizontal.Color = nil
		case engine.ChartBar:
			grid.Vertical.Color = nil
		}
		p.Add(grid)
	}

	var err error
	switch cfg.ChartType {
	case engine.ChartScatter:
		err = addScatter(p, cfg)
	case engine.ChartHorizontal:
		err = addBars(p, cfg, true, height)
	default:
		err = addBars(p, cfg, false, width)
	}
	if err != nil {
		return nil, fmt.Errorf("build %s chart: %w", cfg.ChartType, err)
	}
	return p, nil
}

// addBars draws one bar per category for each series, side by side within
// the category. Categories come in first-seen order across series; a series
// without a category gets a zero bar there.
func addBars(p *plot.Plot, cfg *engine.ChartConfig, horizontal bool, span int) error {
	labels, index := categories(cfg.Series)

	n := len(cfg.Series)
	slot := float64(span) * barFill / float64(len(labels))
	barWidth := vg.Points(slot * barFill / float64(n))

	for i, s := range cfg.Series {
		values := make(plotter.Values, len(labels))
		for _, pt := range s.Data {
			values[index[pt.Label]] = pt.Value
		}

		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return err
		}
		bars.Horizontal = horizontal
		bars.Color = seriesColor(cfg, i)
		bars.LineStyle.Width = 0
		bars.Offset = vg.Length(float64(i)-float64(n-1)/2) * barWidth

		p.Add(bars)
		if cfg.ShowLegend {
			p.Legend.Add(s.Name, bars)
		}
	}

	if horizontal {
		p.NominalY(labels...)
	} else {
		p.NominalX(labels...)
	}
	return nil
}

func addScatter(p *plot.Plot, cfg *engine.ChartConfig) error {
	for i, s := range cfg.Series {
		xys := make(plotter.XYs, len(s.Data))
		for j, pt := range s.Data {
			xys[j] = plotter.XY{X: pt.X, Y: pt.Value}
		}

		points, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		points.GlyphStyle.Color = seriesColor(cfg, i)
		points.GlyphStyle.Radius = vg.Points(pointRadius)
		points.GlyphStyle.Shape = draw.CircleGlyph{}

		p.Add(points)
		if cfg.ShowLegend {
			p.Legend.Add(s.Name, points)
		}
	}
	return nil
}

func categories(series []engine.ChartSeries) ([]string, map[string]int) {
	var labels []string
	index := make(map[string]int)
	for _, s := range series {
		for _, pt := range s.Data {
			if _, ok := index[pt.Label]; !ok {
				index[pt.Label] = len(labels)
				labels = append(labels, pt.Label)
			}
		}
	}
	return labels, index
}

// ============================================================================
// COLORS
// ============================================================================

// seriesColor resolves the i-th series color: the series' own, then the
// chart palette, then the plotutil palette. Colors are "#rrggbb" or an SVG
// color name.
func seriesColor(cfg *engine.ChartConfig, i int) color.Color {
	name := cfg.Series[i].Color
	if name == "" && i < len(cfg.Colors) {
		name = cfg.Colors[i]
	}
	if col, ok := parseColor(name); ok {
		return col
	}
	return plotutil.Color(i)
}

func parseColor(s string) (color.Color, bool) {
	s = strings.TrimSpace(s)
	if col, ok := colornames.Map[strings.ToLower(s)]; ok {
		return col, true
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return nil, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, false
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xFF}, true
}
