package engine

// ============================================================================
// RECORD VIEW — Row access to the player table
// ============================================================================
// Analytics reads players through RecordView: dimensions are the text
// columns (player, team, pos), measures the stat codes (G ... OPS).
//
//   DomainView[T]  the store's records, read through registered accessors
//   SubView        a team, a filtered roster, or the league without FA
// ============================================================================

// RecordView is row-indexed access to players. Out-of-range rows and unknown
// keys read as "" and 0.
type RecordView interface {
	Len() int
	Dimension(row int, key string) string
	Measure(row int, key string) float64
	DimensionKeys() []string
	MeasureKeys() []string
}

// ============================================================================
// SUB VIEW
// ============================================================================

// SubView selects rows of a parent view by index. Rows keep parent order.
type SubView struct {
	parent RecordView
	rows   []int
}

func newSubView(parent RecordView, rows []int) RecordView {
	return &SubView{parent: parent, rows: rows}
}

func (v *SubView) Len() int { return len(v.rows) }

// parentRow maps row to the parent index, or -1 when out of range.
func (v *SubView) parentRow(row int) int {
	if row < 0 || row >= len(v.rows) {
		return -1
	}
	return v.rows[row]
}

func (v *SubView) Dimension(row int, key string) string {
	return v.parent.Dimension(v.parentRow(row), key)
}

func (v *SubView) Measure(row int, key string) float64 {
	return v.parent.Measure(v.parentRow(row), key)
}

func (v *SubView) DimensionKeys() []string { return v.parent.DimensionKeys() }
func (v *SubView) MeasureKeys() []string   { return v.parent.MeasureKeys() }

// ============================================================================
// DOMAIN ADAPTER
// ============================================================================
// The store registers one accessor per column at startup:
//
//	engine.NewDomainAdapter[PlayerRecord]().
//	    Dimension("team", func(p PlayerRecord) string { return p.Team }).
//	    Measure("HR", func(p PlayerRecord) float64 { return p.Stats[HomeRuns] })
// ============================================================================

// DomainAdapter maps column keys to accessors on T. Key order is
// registration order; registering a key twice replaces its accessor.
type DomainAdapter[T any] struct {
	dimKeys  []string
	measKeys []string
	dims     map[string]func(T) string
	meas     map[string]func(T) float64
}

// NewDomainAdapter returns an adapter with no columns.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{
		dims: make(map[string]func(T) string),
		meas: make(map[string]func(T) float64),
	}
}

// Dimension registers a text column.
func (a *DomainAdapter[T]) Dimension(key string, fn func(T) string) *DomainAdapter[T] {
	if _, ok := a.dims[key]; !ok {
		a.dimKeys = append(a.dimKeys, key)
	}
	a.dims[key] = fn
	return a
}

// Measure registers a stat column.
func (a *DomainAdapter[T]) Measure(key string, fn func(T) float64) *DomainAdapter[T] {
	if _, ok := a.meas[key]; !ok {
		a.measKeys = append(a.measKeys, key)
	}
	a.meas[key] = fn
	return a
}

// Bind returns a view over records. The slice is shared, not copied.
func (a *DomainAdapter[T]) Bind(records []T) RecordView {
	return &DomainView[T]{adapter: a, records: records}
}

// DomainView is a bound DomainAdapter.
type DomainView[T any] struct {
	adapter *DomainAdapter[T]
	records []T
}

func (v *DomainView[T]) Len() int { return len(v.records) }

func (v *DomainView[T]) Dimension(row int, key string) string {
	fn, ok := v.adapter.dims[key]
	if !ok || row < 0 || row >= len(v.records) {
		return ""
	}
	return fn(v.records[row])
}

func (v *DomainView[T]) Measure(row int, key string) float64 {
	fn, ok := v.adapter.meas[key]
	if !ok || row < 0 || row >= len(v.records) {
		return 0
	}
	return fn(v.records[row])
}

func (v *DomainView[T]) DimensionKeys() []string { return v.adapter.dimKeys }
func (v *DomainView[T]) MeasureKeys() []string   { return v.adapter.measKeys }
