package handlers

import (
	"context"
	"net/http"
	"sync"

	"stepping_debug/internal/models"
	"stepping_debug/internal/service"
	"stepping_debug/internal/timeline"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID    int
	signUpErr   error
	grant       service.Grant
	genTokenErr error
	principal   service.Principal
	parseErr    error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastGenScope       string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password, scope string) (service.Grant, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	m.lastGenScope = scope
	return m.grant, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (service.Principal, error) {
	m.lastParseToken = token
	return m.principal, m.parseErr
}

// fullAccess is a principal holding every scope.
func fullAccess(userID int) service.Principal {
	return service.Principal{UserID: userID, Scopes: []string{service.ScopeRead, service.ScopeWrite}}
}

type mockStepping struct {
	recordErr   error
	storedOnErr int // events reported stored when recordErr is set
	lastBatch   []models.SteppingEvent
	batchCalls  int
}

func (m *mockStepping) Record(ctx context.Context, e models.SteppingEvent) (models.SteppingEvent, error) {
	out, err := m.RecordBatch(ctx, []models.SteppingEvent{e})
	if err != nil {
		return models.SteppingEvent{}, err
	}
	return out[0], nil
}
func (m *mockStepping) RecordBatch(ctx context.Context, events []models.SteppingEvent) ([]models.SteppingEvent, error) {
	m.batchCalls++
	m.lastBatch = events
	if m.recordErr != nil {
		return events[:m.storedOnErr], m.recordErr
	}
	return events, nil
}

// mockTimeline serves fixed rows through the real filtering code so handlers see real results.
type mockTimeline struct {
	mu        sync.Mutex
	rows      []timeline.ResultRow
	err       error
	snapshots int
	lastRange service.RangeFilter
}

func (m *mockTimeline) setRows(rows []timeline.ResultRow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = rows
}

func (m *mockTimeline) Snapshot(ctx context.Context) (service.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots++
	if m.err != nil {
		return service.Snapshot{}, m.err
	}
	iv, ok := timeline.ComputeExtent(m.rows)
	return service.Snapshot{Rows: m.rows, Extent: iv, HasExtent: ok}, nil
}

func (m *mockTimeline) Rows(ctx context.Context, f service.RangeFilter) (service.TimelineResult, error) {
	m.mu.Lock()
	m.lastRange = f
	m.mu.Unlock()
	return service.NewTimelineService(rowSourceFunc(func(context.Context) ([]timeline.ResultRow, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		return m.rows, m.err
	})).Rows(ctx, f)
}

type rowSourceFunc func(ctx context.Context) ([]timeline.ResultRow, error)

func (f rowSourceFunc) SteppingRows(ctx context.Context) ([]timeline.ResultRow, error) { return f(ctx) }

// ---- Shared Test Helpers ----

// Timestamps used by the fixtures: 2024-03-01T10:00:00Z and two later points.
const (
	t0 int64 = 1709287200000
	t1       = t0 + 1000
	t2       = t0 + 5000
)

func fixtureRows() []timeline.ResultRow {
	return []timeline.ResultRow{
		{Location: "10.0.0.1/1", Events: []timeline.EventPoint{
			{StartMs: t0, Label: "STEP_START(1)"},
			{StartMs: t2, Label: "STEP_END(1)"},
		}},
		{Location: "10.0.0.2/9", Events: []timeline.EventPoint{
			{StartMs: t1, Label: "SNAPSHOT(4)"},
		}},
	}
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
