package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"stepping_debug/internal/service"
)

func postEvents(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/stepping/events", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer valid")
	h.ServeHTTP(w, req)
	return w
}

func TestRecordEvents(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		wantCount  int
		wantChunks []string
	}{
		{
			name:       "single event",
			body:       `{"machine_ip":"10.0.0.1","chunk_id":"5","event_type":"STEP_START","chunk_timestamp":3}`,
			wantCount:  1,
			wantChunks: []string{"5"},
		},
		{
			name: "batch",
			body: `{"events":[
				{"machine_ip":"10.0.0.1","chunk_id":"5","event_type":"STEP_START","chunk_timestamp":3,"start_at":"2024-03-01T10:00:00Z"},
				{"machine_ip":"10.0.0.1","chunk_id":"6","event_type":"STEP_END","chunk_timestamp":3}
			]}`,
			wantCount:  2,
			wantChunks: []string{"5", "6"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := &mockStepping{}
			r := newTestRouter(&service.Service{Authorization: &mockAuth{principal: fullAccess(1)}, Stepping: st})

			w := postEvents(t, r, tc.body)
			if w.Code != http.StatusCreated {
				t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
			}
			var out map[string]int
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out["count"] != tc.wantCount {
				t.Fatalf("count: got %d, want %d", out["count"], tc.wantCount)
			}
			if len(st.lastBatch) != len(tc.wantChunks) {
				t.Fatalf("batch size: got %d", len(st.lastBatch))
			}
			for i, want := range tc.wantChunks {
				if st.lastBatch[i].ChunkID != want {
					t.Fatalf("event %d chunk: got %q, want %q", i, st.lastBatch[i].ChunkID, want)
				}
			}
		})
	}
}

func TestRecordEvents_Errors(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		scopes   []string
		st       *mockStepping
		wantCode int
	}{
		{name: "empty body", body: "", wantCode: http.StatusBadRequest},
		{name: "not json", body: "{", wantCode: http.StatusBadRequest},
		{name: "events not an array", body: `{"events":{}}`, wantCode: http.StatusBadRequest},
		{
			name:     "validation error",
			body:     `{"machine_ip":"host","chunk_id":"5","event_type":"X"}`,
			st:       &mockStepping{recordErr: fmt.Errorf("event 0: %w", service.ErrInvalidMachineIP)},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "storage error",
			body:     `{"machine_ip":"10.0.0.1","chunk_id":"5","event_type":"X"}`,
			st:       &mockStepping{recordErr: errors.New("disk full")},
			wantCode: http.StatusInternalServerError,
		},
		{
			name:     "read scope only",
			body:     `{"machine_ip":"10.0.0.1","chunk_id":"5","event_type":"X"}`,
			scopes:   []string{service.ScopeRead},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := tc.st
			if st == nil {
				st = &mockStepping{}
			}
			p := fullAccess(1)
			if tc.scopes != nil {
				p.Scopes = tc.scopes
			}
			r := newTestRouter(&service.Service{Authorization: &mockAuth{principal: p}, Stepping: st})

			w := postEvents(t, r, tc.body)
			if w.Code != tc.wantCode {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tc.wantCode, w.Body.String())
			}
			if tc.wantCode == http.StatusForbidden && st.batchCalls != 0 {
				t.Fatalf("service must not be called without write scope")
			}
		})
	}
}
