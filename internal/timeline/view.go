package timeline

// RangeView keeps the filter state of one dashboard session.
// The extent seeds the interval; later edits arrive as raw strings and only valid ones
// replace the rendered rows. Not safe for concurrent use.
type RangeView struct {
	rows      []ResultRow
	extent    Interval
	hasExtent bool

	interval    Interval
	hasInterval bool
	rendered    []ChartRow
}

// NewRangeView builds a view over rows and renders the full extent when there is one.
func NewRangeView(rows []ResultRow) *RangeView {
	v := &RangeView{rows: rows, rendered: []ChartRow{}}
	v.extent, v.hasExtent = ComputeExtent(rows)
	if v.hasExtent {
		v.interval = v.extent
		v.hasInterval = true
		v.rendered, _ = FilterToRows(rows, v.extent)
	}
	return v
}

// Apply re-filters with the bounds typed by the user.
// Invalid bounds leave the view untouched: the previous rows come back with changed=false.
func (v *RangeView) Apply(minStr, maxStr string) (rows []ChartRow, changed bool) {
	iv, err := ParseInterval(minStr, maxStr)
	if err != nil {
		return v.rendered, false
	}
	out, ok := FilterToRows(v.rows, iv)
	if !ok {
		return v.rendered, false
	}
	v.interval = iv
	v.hasInterval = true
	v.rendered = out
	return out, true
}

// Extent returns the full data extent; ok is false when there are no events.
func (v *RangeView) Extent() (Interval, bool) { return v.extent, v.hasExtent }

// Interval returns the last accepted interval; ok is false until one exists.
func (v *RangeView) Interval() (Interval, bool) { return v.interval, v.hasInterval }

// Rows returns the currently rendered chart rows.
func (v *RangeView) Rows() []ChartRow { return v.rendered }
