// Package timeline turns grouped stepping query results into chart-ready timeline rows.
package timeline

import "time"

// FixedDurationMs is the width given to every rendered row.
// Stepping events are points, so this is an arbitrary rendering width and not an event duration.
const FixedDurationMs int64 = 100

// EventPoint is a single point event inside a location group.
type EventPoint struct {
	StartMs int64  `json:"start_ms"` // unix epoch milliseconds
	Label   string `json:"label"`
}

// ResultRow is one location group with its events ordered by start time.
type ResultRow struct {
	Location string       `json:"location"` // "<machine>/<chunk>"
	Events   []EventPoint `json:"events"`
}

// Interval is a closed [MinMs, MaxMs] range in unix milliseconds.
type Interval struct {
	MinMs int64 `json:"min_ms"`
	MaxMs int64 `json:"max_ms"`
}

// Valid reports whether MinMs <= MaxMs.
func (iv Interval) Valid() bool {
	return iv.MinMs <= iv.MaxMs
}

// Contains reports whether ms lies inside the interval, both bounds inclusive.
func (iv Interval) Contains(ms int64) bool {
	return iv.MinMs <= ms && ms <= iv.MaxMs
}

// ChartRow is one entry of the timeline widget: Location, Event, Start, End.
type ChartRow struct {
	Location string    `json:"location"`
	Label    string    `json:"label"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// ComputeExtent returns the smallest and largest StartMs across all rows.
// ok is false when rows hold no events at all.
func ComputeExtent(rows []ResultRow) (iv Interval, ok bool) {
	for _, row := range rows {
		for _, ev := range row.Events {
			if !ok {
				iv = Interval{MinMs: ev.StartMs, MaxMs: ev.StartMs}
				ok = true
				continue
			}
			if ev.StartMs < iv.MinMs {
				iv.MinMs = ev.StartMs
			}
			if ev.StartMs > iv.MaxMs {
				iv.MaxMs = ev.StartMs
			}
		}
	}
	return iv, ok
}

// FilterToRows flattens rows into chart rows whose start lies inside iv.
// Input order is kept; nothing is re-sorted. ok is false, with no rows, when iv is inverted.
func FilterToRows(rows []ResultRow, iv Interval) (out []ChartRow, ok bool) {
	if !iv.Valid() {
		return nil, false
	}
	out = make([]ChartRow, 0)
	for _, row := range rows {
		for _, ev := range row.Events {
			if !iv.Contains(ev.StartMs) {
				continue
			}
			out = append(out, ChartRow{
				Location: row.Location,
				Label:    ev.Label,
				Start:    msToTime(ev.StartMs),
				End:      msToTime(ev.StartMs + FixedDurationMs),
			})
		}
	}
	return out, true
}

func msToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
