package warehouse

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"stepping_debug/internal/timeline"
)

// steppingPayload is shaped like a real jobs.query answer for SteppingQuery.
const steppingPayload = `{
  "kind": "bigquery#queryResponse",
  "jobComplete": true,
  "totalRows": "2",
  "rows": [
    {"f": [{"v": "10.0.0.1"}, {"v": "5"}, {"v": [
      {"v": {"f": [{"v": "1000"}, {"v": "STEP_START(1)"}]}},
      {"v": {"f": [{"v": "5000"}, {"v": "STEP_END(1)"}]}}
    ]}]},
    {"f": [{"v": "10.0.0.2"}, {"v": "7"}, {"v": []}]}
  ]
}`

func decodePayload(t *testing.T, s string) *QueryResponse {
	t.Helper()
	var resp QueryResponse
	if err := json.Unmarshal([]byte(s), &resp); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	return &resp
}

func TestDecodeSteppingRows(t *testing.T) {
	t.Parallel()

	got, err := DecodeSteppingRows(decodePayload(t, steppingPayload))
	if err != nil {
		t.Fatalf("DecodeSteppingRows: %v", err)
	}
	want := []timeline.ResultRow{
		{Location: "10.0.0.1/5", Events: []timeline.EventPoint{
			{StartMs: 1000, Label: "STEP_START(1)"},
			{StartMs: 5000, Label: "STEP_END(1)"},
		}},
		{Location: "10.0.0.2/7", Events: []timeline.EventPoint{}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("rows:\n got %+v\nwant %+v", got, want)
	}
}

func TestDecodeSteppingRows_Malformed(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		payload string
		wantErr error
		wantMsg string
	}{
		{
			name:    "job incomplete",
			payload: `{"jobComplete": false}`,
			wantErr: ErrJobIncomplete,
		},
		{
			name:    "too few columns",
			payload: `{"jobComplete": true, "rows": [{"f": [{"v": "h"}, {"v": "c"}]}]}`,
			wantErr: ErrMalformedRow,
			wantMsg: "row 0",
		},
		{
			name:    "non numeric start",
			payload: `{"jobComplete": true, "rows": [{"f": [{"v": "h"}, {"v": "c"}, {"v": [{"v": {"f": [{"v": "soon"}, {"v": "L"}]}}]}]}]}`,
			wantErr: ErrMalformedRow,
			wantMsg: "event 0",
		},
		{
			name:    "events not an array",
			payload: `{"jobComplete": true, "rows": [{"f": [{"v": "h"}, {"v": "c"}, {"v": "oops"}]}]}`,
			wantErr: ErrMalformedRow,
		},
		{
			name:    "machine not a string",
			payload: `{"jobComplete": true, "rows": [{"f": [{"v": {"x": 1}}, {"v": "c"}, {"v": []}]}]}`,
			wantErr: ErrMalformedRow,
			wantMsg: "machine_ip",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeSteppingRows(decodePayload(t, tc.payload))
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if tc.wantMsg != "" && !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("expected %q in %q", tc.wantMsg, err.Error())
			}
		})
	}

	if _, err := DecodeSteppingRows(nil); !errors.Is(err, ErrMalformedRow) {
		t.Fatalf("nil response: got %v", err)
	}
}

func TestClient_SteppingRows(t *testing.T) {
	t.Parallel()

	var gotReq QueryRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/bigquery/v2/projects/bonsai-genesis/queries" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("key") != "k1" {
			t.Errorf("api key missing: %q", r.URL.RawQuery)
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("bearer missing: %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(steppingPayload))
	}))
	defer srv.Close()

	c := NewClient(Config{
		Endpoint:  srv.URL + "/bigquery/v2/",
		ProjectID: "bonsai-genesis",
		APIKey:    "k1",
		Token:     "tok",
	}, srv.Client())

	rows, err := c.SteppingRows(context.Background())
	if err != nil {
		t.Fatalf("SteppingRows: %v", err)
	}
	if len(rows) != 2 || rows[0].Location != "10.0.0.1/5" || len(rows[0].Events) != 2 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if gotReq.Query != SteppingQuery || gotReq.UseLegacySQL {
		t.Fatalf("unexpected request body: %+v", gotReq)
	}
}

func TestClient_QueryErrors(t *testing.T) {
	t.Parallel()

	t.Run("api error envelope", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"code":403,"message":"Access Denied: Project bonsai-genesis","status":"PERMISSION_DENIED"}}`))
		}))
		defer srv.Close()

		c := NewClient(Config{Endpoint: srv.URL, ProjectID: "bonsai-genesis"}, srv.Client())
		_, err := c.Query(context.Background(), "select 1")
		if err == nil || !strings.Contains(err.Error(), "Access Denied") || !strings.Contains(err.Error(), "PERMISSION_DENIED") {
			t.Fatalf("expected api error, got %v", err)
		}
	})

	t.Run("plain status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream", http.StatusBadGateway)
		}))
		defer srv.Close()

		c := NewClient(Config{Endpoint: srv.URL, ProjectID: "p"}, srv.Client())
		_, err := c.Query(context.Background(), "select 1")
		if err == nil || !strings.Contains(err.Error(), "502") {
			t.Fatalf("expected status error, got %v", err)
		}
	})

	t.Run("bad json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"rows": [`))
		}))
		defer srv.Close()

		c := NewClient(Config{Endpoint: srv.URL, ProjectID: "p"}, srv.Client())
		if _, err := c.Query(context.Background(), "select 1"); err == nil {
			t.Fatalf("expected decode error")
		}
	})

	t.Run("missing project", func(t *testing.T) {
		c := NewClient(Config{}, nil)
		if _, err := c.Query(context.Background(), "select 1"); err == nil {
			t.Fatalf("expected configuration error")
		}
	})
}
