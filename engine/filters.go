package engine

import "strings"

// ============================================================================
// FILTERS — Narrowing the player table by team, position or name
// ============================================================================
// Roster lookups keep one team; per-team aggregates drop the free agents.
// Matching ignores case, so "chc" selects the Cubs.
// ============================================================================

// ApplyFilters keeps the rows whose value in every filtered dimension is one
// of that dimension's allowed values. With nothing to filter on, view comes
// back unchanged.
func ApplyFilters(view RecordView, filters Filters) RecordView {
	allowed := make(map[string]map[string]bool, len(filters.Dimensions))
	for dim, values := range filters.Dimensions {
		if len(values) > 0 {
			allowed[dim] = toLowerSet(values)
		}
	}
	if len(allowed) == 0 {
		return view
	}

	return selectRows(view, func(i int) bool {
		for dim, set := range allowed {
			if !set[strings.ToLower(view.Dimension(i, dim))] {
				return false
			}
		}
		return true
	})
}

// Exclude drops the rows whose dimension value is one of values, e.g. the
// "FA" team. With no values, view comes back unchanged.
func Exclude(view RecordView, dimension string, values ...string) RecordView {
	if len(values) == 0 {
		return view
	}
	drop := toLowerSet(values)
	return selectRows(view, func(i int) bool {
		return !drop[strings.ToLower(view.Dimension(i, dimension))]
	})
}

// selectRows keeps row order, so ties downstream still resolve in file order.
func selectRows(view RecordView, keep func(i int) bool) RecordView {
	var rows []int
	for i := 0; i < view.Len(); i++ {
		if keep(i) {
			rows = append(rows, i)
		}
	}
	return newSubView(view, rows)
}

func toLowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}
