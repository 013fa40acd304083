package timeline

import (
	"errors"
	"fmt"
	"io"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
)

// ErrNothingToRender is returned by RenderPNG for an empty row set.
var ErrNothingToRender = errors.New("no timeline rows to render")

const (
	defaultChartWidth  = 1200
	defaultChartHeight = 600
	laneStrokeWidth    = 8
)

// RenderOptions sizes the PNG. Zero values pick the defaults.
type RenderOptions struct {
	Width  int
	Height int
	Title  string
}

// RenderPNG draws rows as horizontal bars, one lane per location, in order of first appearance.
func RenderPNG(w io.Writer, rows []ChartRow, opts RenderOptions) error {
	if len(rows) == 0 {
		return ErrNothingToRender
	}
	if opts.Width <= 0 {
		opts.Width = defaultChartWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultChartHeight
	}

	lanes := make(map[string]int)
	var ticks []chart.Tick
	series := make([]chart.Series, 0, len(rows))
	for _, r := range rows {
		lane, ok := lanes[r.Location]
		if !ok {
			lane = len(lanes)
			lanes[r.Location] = lane
			ticks = append(ticks, chart.Tick{Value: float64(lane), Label: r.Location})
		}
		color := chart.GetDefaultColor(lane)
		series = append(series, chart.TimeSeries{
			Name: r.Label,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: laneStrokeWidth,
				DotColor:    color,
				DotWidth:    2,
			},
			XValues: []time.Time{r.Start, r.End},
			YValues: []float64{float64(lane), float64(lane)},
		})
	}

	ch := chart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:           "time (UTC)",
			ValueFormatter: chart.TimeValueFormatterWithFormat("15:04:05.000"),
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: -1, Max: float64(len(lanes))},
			Ticks: ticks,
		},
		Series: series,
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render timeline png: %w", err)
	}
	return nil
}
