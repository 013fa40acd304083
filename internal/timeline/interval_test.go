package timeline

import (
	"errors"
	"testing"
	"time"
)

func TestParseBound(t *testing.T) {
	t.Parallel()

	ms := func(tm time.Time) int64 { return tm.UnixMilli() }

	cases := []struct {
		name    string
		in      string
		want    int64
		wantErr bool
	}{
		{name: "iso with millis", in: "2017-03-04T05:06:07.890Z", want: ms(time.Date(2017, 3, 4, 5, 6, 7, 890e6, time.UTC))},
		{name: "rfc3339 offset", in: "2017-03-04T08:06:07+03:00", want: ms(time.Date(2017, 3, 4, 5, 6, 7, 0, time.UTC))},
		{name: "date time", in: "2017-03-04 05:06:07", want: ms(time.Date(2017, 3, 4, 5, 6, 7, 0, time.UTC))},
		{name: "date only", in: "2017-03-04", want: ms(time.Date(2017, 3, 4, 0, 0, 0, 0, time.UTC))},
		{name: "unix millis", in: "1000", want: 1000},
		{name: "surrounding spaces", in: "  1500 ", want: 1500},
		{name: "empty", in: "", wantErr: true},
		{name: "garbage", in: "not a date", wantErr: true},
		{name: "half typed", in: "2017-03-0", wantErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseBound(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidInterval) {
					t.Fatalf("expected ErrInvalidInterval, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("ParseBound(%q) = %d; want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseInterval(t *testing.T) {
	t.Parallel()

	iv, err := ParseInterval("1000", "1970-01-01T00:00:03.000Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if iv != (Interval{MinMs: 1000, MaxMs: 3000}) {
		t.Fatalf("unexpected interval: %+v", iv)
	}

	if _, err := ParseInterval("3000", "1000"); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("inverted: expected ErrInvalidInterval, got %v", err)
	}
	if _, err := ParseInterval("nope", "1000"); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("bad min: expected ErrInvalidInterval, got %v", err)
	}
	if _, err := ParseInterval("1000", "NaN"); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("bad max: expected ErrInvalidInterval, got %v", err)
	}
}

func TestFormatBound_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, ms := range []int64{0, 1000, 1488603967890} {
		s := FormatBound(ms)
		got, err := ParseBound(s)
		if err != nil {
			t.Fatalf("ParseBound(%q): %v", s, err)
		}
		if got != ms {
			t.Fatalf("round trip %d -> %q -> %d", ms, s, got)
		}
	}
	if got := FormatBound(1488603967890); got != "2017-03-04T05:06:07.890Z" {
		t.Fatalf("FormatBound = %q", got)
	}
}
