package timeline

import (
	"fmt"
	"time"
)

// DataTableColumn is a column header in the Google Visualization DataTable literal.
type DataTableColumn struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// DataTableCell holds one cell value.
type DataTableCell struct {
	V any `json:"v"`
}

// DataTableRow is one row of cells.
type DataTableRow struct {
	C []DataTableCell `json:"c"`
}

// DataTableLiteral can be passed straight to google.visualization.DataTable.
type DataTableLiteral struct {
	Cols []DataTableColumn `json:"cols"`
	Rows []DataTableRow    `json:"rows"`
}

// timelineColumns is fixed by the timeline widget.
var timelineColumns = []DataTableColumn{
	{ID: "Location", Type: "string"},
	{ID: "Event", Type: "string"},
	{ID: "Start", Type: "date"},
	{ID: "End", Type: "date"},
}

// DataTable converts chart rows into the timeline widget's table literal.
func DataTable(rows []ChartRow) DataTableLiteral {
	cols := make([]DataTableColumn, len(timelineColumns))
	copy(cols, timelineColumns)

	out := DataTableLiteral{Cols: cols, Rows: make([]DataTableRow, 0, len(rows))}
	for _, r := range rows {
		out.Rows = append(out.Rows, DataTableRow{C: []DataTableCell{
			{V: r.Location},
			{V: r.Label},
			{V: dateLiteral(r.Start)},
			{V: dateLiteral(r.End)},
		}})
	}
	return out
}

// dateLiteral formats t as the DataTable "Date(...)" string; months are zero-based.
func dateLiteral(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("Date(%d, %d, %d, %d, %d, %d, %d)",
		t.Year(), int(t.Month())-1, t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/int(time.Millisecond))
}
