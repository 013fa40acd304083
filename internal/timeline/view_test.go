package timeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestRangeView_SeedsFromExtent(t *testing.T) {
	t.Parallel()

	v := NewRangeView(sampleRows())
	ext, ok := v.Extent()
	if !ok || ext != (Interval{MinMs: 1000, MaxMs: 5000}) {
		t.Fatalf("extent: %+v ok=%v", ext, ok)
	}
	iv, ok := v.Interval()
	if !ok || iv != ext {
		t.Fatalf("interval should start at the extent, got %+v ok=%v", iv, ok)
	}
	if len(v.Rows()) != 2 {
		t.Fatalf("expected full range rendered, got %d rows", len(v.Rows()))
	}
}

func TestRangeView_EmptyData(t *testing.T) {
	t.Parallel()

	v := NewRangeView([]ResultRow{{Location: "a/1"}})
	if _, ok := v.Extent(); ok {
		t.Fatalf("expected undefined extent")
	}
	if _, ok := v.Interval(); ok {
		t.Fatalf("expected unset interval")
	}
	if rows := v.Rows(); rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty rows, got %#v", rows)
	}

	rows, changed := v.Apply("0", "10")
	if !changed || len(rows) != 0 {
		t.Fatalf("valid interval on empty data: rows=%v changed=%v", rows, changed)
	}
}

func TestRangeView_InvalidIntervalKeepsPriorOutput(t *testing.T) {
	t.Parallel()

	v := NewRangeView(sampleRows())
	accepted, changed := v.Apply("1970-01-01T00:00:01.000Z", "1970-01-01T00:00:03.000Z")
	if !changed || len(accepted) != 1 || accepted[0].Label != "A" {
		t.Fatalf("unexpected accepted rows: %+v changed=%v", accepted, changed)
	}

	for _, bounds := range [][2]string{
		{"1970-01-01T00:00:0", "1970-01-01T00:00:03.000Z"}, // half typed
		{"1000", "not-a-date"},
		{"5000", "1000"}, // inverted
		{"", ""},
	} {
		rows, changed := v.Apply(bounds[0], bounds[1])
		if changed {
			t.Fatalf("bounds %q should be rejected", bounds)
		}
		if !reflect.DeepEqual(rows, accepted) {
			t.Fatalf("bounds %q: got %+v, want prior %+v", bounds, rows, accepted)
		}
		iv, _ := v.Interval()
		if iv != (Interval{MinMs: 1000, MaxMs: 3000}) {
			t.Fatalf("bounds %q replaced the interval: %+v", bounds, iv)
		}
	}
}

func TestDataTable(t *testing.T) {
	t.Parallel()

	rows, _ := FilterToRows(sampleRows(), Interval{MinMs: 1000, MaxMs: 1000})
	dt := DataTable(rows)

	b, err := json.Marshal(dt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"cols":[{"id":"Location","type":"string"},{"id":"Event","type":"string"},{"id":"Start","type":"date"},{"id":"End","type":"date"}],` +
		`"rows":[{"c":[{"v":"10.0.0.1/5"},{"v":"A"},{"v":"Date(1970, 0, 1, 0, 0, 1, 0)"},{"v":"Date(1970, 0, 1, 0, 0, 1, 100)"}]}]}`
	if string(b) != want {
		t.Fatalf("datatable json:\n got %s\nwant %s", b, want)
	}

	if empty := DataTable(nil); len(empty.Cols) != 4 || empty.Rows == nil {
		t.Fatalf("empty table should keep columns and a non-nil rows slice: %+v", empty)
	}
}

func TestDateLiteral_ZeroBasedMonth(t *testing.T) {
	t.Parallel()

	got := dateLiteral(time.Date(2017, time.December, 31, 23, 59, 58, 7e6, time.UTC))
	if got != "Date(2017, 11, 31, 23, 59, 58, 7)" {
		t.Fatalf("dateLiteral = %q", got)
	}
}

func TestRenderPNG(t *testing.T) {
	t.Parallel()

	if err := RenderPNG(&bytes.Buffer{}, nil, RenderOptions{}); !errors.Is(err, ErrNothingToRender) {
		t.Fatalf("expected ErrNothingToRender, got %v", err)
	}

	rows, _ := FilterToRows([]ResultRow{
		{Location: "10.0.0.1/5", Events: []EventPoint{{StartMs: 1000, Label: "A"}, {StartMs: 5000, Label: "B"}}},
		{Location: "10.0.0.2/7", Events: []EventPoint{{StartMs: 3000, Label: "C"}}},
	}, Interval{MinMs: 0, MaxMs: 10000})

	var buf bytes.Buffer
	if err := RenderPNG(&buf, rows, RenderOptions{Width: 400, Height: 200, Title: "stepping"}); err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Fatalf("output is not a PNG (%d bytes)", buf.Len())
	}
}
