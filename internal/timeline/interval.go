package timeline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"

	// layoutBound mirrors the ISO strings browsers produce, e.g. 2017-03-04T05:06:07.890Z.
	layoutBound = "2006-01-02T15:04:05.000Z07:00"
)

// ErrInvalidInterval is returned when a bound cannot be parsed or min > max.
var ErrInvalidInterval = errors.New("invalid interval")

// ParseBound parses one interval bound into unix milliseconds.
// Accepted forms: RFC3339 (with or without fraction), 'YYYY-MM-DD HH:MM:SS', 'YYYY-MM-DD'
// and an all-digit unix millisecond count.
func ParseBound(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty bound", ErrInvalidInterval)
	}
	if isAllDigits(s) {
		ms, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
		}
		return ms, nil
	}
	for _, layout := range []string{time.RFC3339Nano, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli(), nil
		}
	}
	return 0, fmt.Errorf("%w: unrecognized time %q", ErrInvalidInterval, s)
}

// ParseInterval parses both bounds and rejects inverted ranges.
func ParseInterval(minStr, maxStr string) (Interval, error) {
	minMs, err := ParseBound(minStr)
	if err != nil {
		return Interval{}, fmt.Errorf("min: %w", err)
	}
	maxMs, err := ParseBound(maxStr)
	if err != nil {
		return Interval{}, fmt.Errorf("max: %w", err)
	}
	iv := Interval{MinMs: minMs, MaxMs: maxMs}
	if !iv.Valid() {
		return Interval{}, fmt.Errorf("%w: min %s is after max %s", ErrInvalidInterval, minStr, maxStr)
	}
	return iv, nil
}

// FormatBound renders ms the way ParseBound reads it back.
func FormatBound(ms int64) string {
	return msToTime(ms).Format(layoutBound)
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
