package models

import (
	"fmt"
	"time"
)

// SteppingEvent is one step of one chunk as reported by a chunk server.
type SteppingEvent struct {
	EventID        string    `json:"event_id"`
	MachineIP      string    `json:"machine_ip"`
	ChunkID        string    `json:"chunk_id"`
	EventType      string    `json:"event_type"`      // e.g. STEP_START | STEP_END | SNAPSHOT
	ChunkTimestamp uint64    `json:"chunk_timestamp"` // simulation tick of the chunk
	StartAt        time.Time `json:"start_at"`
}

// Location is the timeline lane key, "<machine_ip>/<chunk_id>".
func (e SteppingEvent) Location() string {
	return e.MachineIP + "/" + e.ChunkID
}

// Label is the human-readable timeline label, e.g. "STEP_START(42)".
func (e SteppingEvent) Label() string {
	return fmt.Sprintf("%s(%d)", e.EventType, e.ChunkTimestamp)
}
