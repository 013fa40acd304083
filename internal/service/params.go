package service

import (
	"strings"
	"time"

	"stepping_debug/internal/timeline"
)

// AuthConfig carries token signing settings.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

// Grant is the result of a successful sign-in.
type Grant struct {
	Token     string
	Scopes    []string
	ExpiresAt time.Time
}

// Principal is the caller identified by a token.
type Principal struct {
	UserID int
	Scopes []string
}

// HasScope reports whether scope was granted.
func (p Principal) HasScope(scope string) bool {
	for _, s := range p.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// ScopeString joins scopes the way they travel in tokens and requests.
func ScopeString(scopes []string) string {
	return strings.Join(scopes, " ")
}

// RangeFilter holds the raw interval bounds typed by a user.
type RangeFilter struct {
	From string // empty means the start of the data extent
	To   string // empty means the end of the data extent
}

// Snapshot is one execution of the stepping query with its extent.
type Snapshot struct {
	Rows      []timeline.ResultRow
	Extent    timeline.Interval
	HasExtent bool
}

// Filter returns the chart rows inside iv.
func (s Snapshot) Filter(iv timeline.Interval) ([]timeline.ChartRow, bool) {
	return timeline.FilterToRows(s.Rows, iv)
}

// TimelineResult is a filtered view of a snapshot. Extent and Interval are nil when there is no data.
type TimelineResult struct {
	Extent   *timeline.Interval
	Interval *timeline.Interval
	Rows     []timeline.ChartRow
}
