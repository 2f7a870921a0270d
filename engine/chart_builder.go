package engine

// ============================================================================
// CHART BUILDER — Produces ChartConfig from a ChartSpec + Groups
// ============================================================================
// Bar charts come from groups (one series) or groups with sub-groups (one
// series per sub-group key). Scatter charts come from two parallel columns.
// ============================================================================

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// BuildChart produces a ChartConfig from a ChartSpec and aggregated groups.
// Returns nil when there is nothing to plot.
func BuildChart(spec ChartSpec, groups []Group) *ChartConfig {
	if len(groups) == 0 {
		return nil
	}

	chartType := spec.Type
	if chartType == "" {
		chartType = ChartBar
	}

	config := &ChartConfig{
		ChartType: chartType,
		Title:     spec.Title,
		XAxis:     spec.XAxis,
		YAxis:     spec.YAxis,
		ShowGrid:  true,
	}

	if hasSubGroups(groups) {
		config.Series = buildMultiSeries(groups)
		config.ShowLegend = true
	} else {
		config.Series = buildSingleSeries(groups, spec.Title)
	}

	config.Colors = assignColors(len(config.Series))
	return config
}

// BuildScatter pairs xs[i] with ys[i], labelled labels[i]. The three slices
// must be the same length; extra entries in any of them are ignored.
func BuildScatter(spec ChartSpec, labels []string, xs, ys []float64) *ChartConfig {
	n := min(len(labels), len(xs), len(ys))
	if n == 0 {
		return nil
	}

	points := make([]ChartPoint, n)
	for i := 0; i < n; i++ {
		points[i] = ChartPoint{Label: labels[i], X: xs[i], Value: ys[i]}
	}

	name := spec.Title
	if name == "" {
		name = "Value"
	}

	return &ChartConfig{
		ChartType: ChartScatter,
		Title:     spec.Title,
		XAxis:     spec.XAxis,
		YAxis:     spec.YAxis,
		Series:    []ChartSeries{{Name: name, Data: points, Color: defaultColors[0]}},
		Colors:    assignColors(1),
		ShowGrid:  true,
	}
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

func buildSingleSeries(groups []Group, seriesName string) []ChartSeries {
	if seriesName == "" {
		seriesName = "Value"
	}

	points := make([]ChartPoint, 0, len(groups))
	for _, g := range groups {
		points = append(points, ChartPoint{
			Label: g.Label,
			Value: g.Value,
		})
	}

	return []ChartSeries{{
		Name:  seriesName,
		Data:  points,
		Color: defaultColors[0],
	}}
}

// buildMultiSeries emits one series per sub-group key, in first-seen order.
// A group missing a sub-key contributes 0 to that series.
func buildMultiSeries(groups []Group) []ChartSeries {
	subKeys := make([]string, 0)
	seen := make(map[string]bool)
	for _, g := range groups {
		for _, sg := range g.SubGroups {
			if !seen[sg.Key] {
				seen[sg.Key] = true
				subKeys = append(subKeys, sg.Key)
			}
		}
	}

	seriesMap := make(map[string][]ChartPoint, len(subKeys))
	for _, g := range groups {
		sgLookup := make(map[string]float64, len(g.SubGroups))
		for _, sg := range g.SubGroups {
			sgLookup[sg.Key] = sg.Value
		}
		for _, key := range subKeys {
			seriesMap[key] = append(seriesMap[key], ChartPoint{
				Label: g.Label,
				Value: sgLookup[key],
			})
		}
	}

	series := make([]ChartSeries, 0, len(subKeys))
	for i, key := range subKeys {
		series = append(series, ChartSeries{
			Name:  key,
			Data:  seriesMap[key],
			Color: defaultColors[i%len(defaultColors)],
		})
	}
	return series
}

func hasSubGroups(groups []Group) bool {
	for _, g := range groups {
		if len(g.SubGroups) > 0 {
			return true
		}
	}
	return false
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
