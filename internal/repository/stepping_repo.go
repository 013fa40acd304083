package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"stepping_debug/internal/models"
	"stepping_debug/internal/timeline"

	"github.com/google/uuid"
)

// SteppingSQLite keeps stepping events in SQLite and doubles as the local query backend.
type SteppingSQLite struct {
	db *sql.DB
}

func NewSteppingSQLite(db *sql.DB) *SteppingSQLite { return &SteppingSQLite{db: db} }

var _ SteppingRepo = (*SteppingSQLite)(nil)

const (
	insertSteppingSQL = `
		INSERT INTO stepping_events (id, machine_ip, chunk_id, event_type, chunk_timestamp, start_ms)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	// Rows come back grouped by location, events ordered by start time inside each group.
	selectSteppingRowsSQL = `
		SELECT machine_ip, chunk_id, start_ms, event_type, chunk_timestamp
		FROM stepping_events
		ORDER BY machine_ip ASC, chunk_id ASC, start_ms ASC, id ASC
	`
)

// Append inserts e. A missing EventID or StartAt is filled in; the stored event is returned.
func (r *SteppingSQLite) Append(ctx context.Context, e models.SteppingEvent) (models.SteppingEvent, error) {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.StartAt.IsZero() {
		e.StartAt = time.Now().UTC()
	} else {
		e.StartAt = e.StartAt.UTC()
	}
	e.EventType = strings.ToUpper(strings.TrimSpace(e.EventType))

	_, err := r.db.ExecContext(ctx, insertSteppingSQL,
		e.EventID,
		e.MachineIP,
		e.ChunkID,
		e.EventType,
		int64(e.ChunkTimestamp),
		e.StartAt.UnixMilli(),
	)
	if err != nil {
		return models.SteppingEvent{}, fmt.Errorf("insert stepping event %s: %w", e.EventID, err)
	}
	return e, nil
}

// SteppingRows runs the grouped stepping query: one ResultRow per (machine_ip, chunk_id).
func (r *SteppingSQLite) SteppingRows(ctx context.Context) ([]timeline.ResultRow, error) {
	rows, err := r.db.QueryContext(ctx, selectSteppingRowsSQL)
	if err != nil {
		return nil, fmt.Errorf("query stepping rows: %w", err)
	}
	defer rows.Close()

	out := make([]timeline.ResultRow, 0, 16)
	var prevMachine, prevChunk string
	for rows.Next() {
		var (
			ev      models.SteppingEvent
			startMs int64
			chunkTS int64
		)
		if err := rows.Scan(&ev.MachineIP, &ev.ChunkID, &startMs, &ev.EventType, &chunkTS); err != nil {
			return nil, fmt.Errorf("scan stepping row: %w", err)
		}
		ev.ChunkTimestamp = uint64(chunkTS)

		if len(out) == 0 || ev.MachineIP != prevMachine || ev.ChunkID != prevChunk {
			out = append(out, timeline.ResultRow{Location: ev.Location()})
			prevMachine, prevChunk = ev.MachineIP, ev.ChunkID
		}
		last := &out[len(out)-1]
		last.Events = append(last.Events, timeline.EventPoint{StartMs: startMs, Label: ev.Label()})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stepping rows: %w", err)
	}
	return out, nil
}
