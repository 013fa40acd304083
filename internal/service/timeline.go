package service

import (
	"context"
	"fmt"
	"strings"

	"stepping_debug/internal/timeline"
)

type TimelineService struct {
	source RowSource
}

func NewTimelineService(source RowSource) *TimelineService {
	return &TimelineService{source: source}
}

// Snapshot runs the stepping query once and computes its extent.
func (s *TimelineService) Snapshot(ctx context.Context) (Snapshot, error) {
	rows, err := s.source.SteppingRows(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load stepping rows: %w", err)
	}
	if rows == nil {
		rows = []timeline.ResultRow{}
	}
	extent, ok := timeline.ComputeExtent(rows)
	return Snapshot{Rows: rows, Extent: extent, HasExtent: ok}, nil
}

// Rows loads a snapshot and filters it to f. A blank bound defaults to the matching side
// of the extent; with no data and a blank bound the result is empty.
func (s *TimelineService) Rows(ctx context.Context, f RangeFilter) (TimelineResult, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return TimelineResult{}, err
	}
	return resolveRange(snap, f)
}

func resolveRange(snap Snapshot, f RangeFilter) (TimelineResult, error) {
	res := TimelineResult{Rows: []timeline.ChartRow{}}
	if snap.HasExtent {
		extent := snap.Extent
		res.Extent = &extent
	}

	from, to := strings.TrimSpace(f.From), strings.TrimSpace(f.To)
	if from == "" || to == "" {
		if !snap.HasExtent {
			// Still reject a malformed bound the caller did give.
			for _, b := range []string{from, to} {
				if b == "" {
					continue
				}
				if _, err := timeline.ParseBound(b); err != nil {
					return TimelineResult{}, err
				}
			}
			return res, nil
		}
		if from == "" {
			from = timeline.FormatBound(snap.Extent.MinMs)
		}
		if to == "" {
			to = timeline.FormatBound(snap.Extent.MaxMs)
		}
	}

	iv, err := timeline.ParseInterval(from, to)
	if err != nil {
		return TimelineResult{}, err
	}
	rows, ok := snap.Filter(iv)
	if !ok {
		return TimelineResult{}, fmt.Errorf("%w: %s..%s", timeline.ErrInvalidInterval, from, to)
	}
	res.Interval = &iv
	res.Rows = rows
	return res, nil
}
