// Package warehouse talks to the BigQuery-compatible query service and maps its
// loosely typed row payload onto timeline rows.
package warehouse

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"stepping_debug/internal/timeline"
)

// SteppingQuery groups stepping events per (machine_ip, chunk_id), events ordered by start.
const SteppingQuery = `select
  machine_ip,
  chunk_id,
  array(
    select event
    from unnest(events) as event
    order by event.start_ms) as events
from (
  select
    machine_ip,
    chunk_id,
    array_agg(
      struct(
        unix_millis(start_at) as start_ms,
        format("%s(%d)", event_type, chunk_timestamp) as label
      )
    ) as events
  from
    ` + "`platform.stepping`" + `
  group by
    machine_ip,
    chunk_id
)`

var (
	ErrJobIncomplete = errors.New("query job did not complete")
	ErrMalformedRow  = errors.New("malformed result row")
)

// QueryRequest is the jobs.query request body.
type QueryRequest struct {
	Query        string `json:"query"`
	UseLegacySQL bool   `json:"useLegacySql"`
	TimeoutMs    int64  `json:"timeoutMs,omitempty"`
}

// QueryResponse is the subset of the jobs.query response we read.
type QueryResponse struct {
	Kind        string     `json:"kind,omitempty"`
	JobComplete bool       `json:"jobComplete"`
	TotalRows   string     `json:"totalRows,omitempty"`
	Rows        []TableRow `json:"rows"`
}

// TableRow is a row (or a STRUCT value) in the f/v encoding.
type TableRow struct {
	F []TableCell `json:"f"`
}

// TableCell holds a raw value: a string for scalars, an array for REPEATED, an object for STRUCT.
type TableCell struct {
	V json.RawMessage `json:"v"`
}

// DecodeSteppingRows maps the SteppingQuery payload onto timeline rows.
// Columns: 0 machine_ip, 1 chunk_id, 2 events (REPEATED STRUCT<start_ms INT64, label STRING>).
func DecodeSteppingRows(resp *QueryResponse) ([]timeline.ResultRow, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedRow)
	}
	if !resp.JobComplete {
		return nil, ErrJobIncomplete
	}

	out := make([]timeline.ResultRow, 0, len(resp.Rows))
	for i, row := range resp.Rows {
		r, err := decodeLocationRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func decodeLocationRow(row TableRow) (timeline.ResultRow, error) {
	if len(row.F) < 3 {
		return timeline.ResultRow{}, fmt.Errorf("%w: want 3 columns, got %d", ErrMalformedRow, len(row.F))
	}
	machine, err := row.F[0].String()
	if err != nil {
		return timeline.ResultRow{}, fmt.Errorf("machine_ip: %w", err)
	}
	chunk, err := row.F[1].String()
	if err != nil {
		return timeline.ResultRow{}, fmt.Errorf("chunk_id: %w", err)
	}

	var repeated []TableCell
	if len(row.F[2].V) > 0 && string(row.F[2].V) != "null" {
		if err := json.Unmarshal(row.F[2].V, &repeated); err != nil {
			return timeline.ResultRow{}, fmt.Errorf("%w: events: %v", ErrMalformedRow, err)
		}
	}

	res := timeline.ResultRow{Location: machine + "/" + chunk, Events: make([]timeline.EventPoint, 0, len(repeated))}
	for j, cell := range repeated {
		ev, err := decodeEvent(cell)
		if err != nil {
			return timeline.ResultRow{}, fmt.Errorf("event %d: %w", j, err)
		}
		res.Events = append(res.Events, ev)
	}
	return res, nil
}

func decodeEvent(cell TableCell) (timeline.EventPoint, error) {
	var record TableRow
	if err := json.Unmarshal(cell.V, &record); err != nil {
		return timeline.EventPoint{}, fmt.Errorf("%w: struct: %v", ErrMalformedRow, err)
	}
	if len(record.F) < 2 {
		return timeline.EventPoint{}, fmt.Errorf("%w: want 2 struct fields, got %d", ErrMalformedRow, len(record.F))
	}
	rawStart, err := record.F[0].String()
	if err != nil {
		return timeline.EventPoint{}, fmt.Errorf("start_ms: %w", err)
	}
	startMs, err := strconv.ParseInt(rawStart, 10, 64)
	if err != nil {
		return timeline.EventPoint{}, fmt.Errorf("%w: start_ms %q", ErrMalformedRow, rawStart)
	}
	label, err := record.F[1].String()
	if err != nil {
		return timeline.EventPoint{}, fmt.Errorf("label: %w", err)
	}
	return timeline.EventPoint{StartMs: startMs, Label: label}, nil
}

// String decodes a scalar cell. The API sends every scalar, INT64 included, as a JSON string.
func (c TableCell) String() (string, error) {
	var s string
	if err := json.Unmarshal(c.V, &s); err != nil {
		return "", fmt.Errorf("%w: not a string value: %s", ErrMalformedRow, string(c.V))
	}
	return s, nil
}
