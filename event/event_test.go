package event_test

import (
	"testing"
	"time"

	"github.com/uniyakcom/pulse/event"
	"github.com/uniyakcom/pulse/value"
)

func TestLevelString(t *testing.T) {
	cases := []struct {
		l    event.Level
		want string
	}{
		{event.LevelNone, "log"},
		{event.LevelDebug, "debug"},
		{event.LevelInfo, "info"},
		{event.LevelWarn, "warn"},
		{event.LevelError, "error"},
	}
	for _, tc := range cases {
		if got := tc.l.String(); got != tc.want {
			t.Errorf("Level(%d) = %q, want %q", tc.l, got, tc.want)
		}
	}
}

func TestPropsEncodeOrder(t *testing.T) {
	props := event.Props{
		event.P("z", 1),
		event.P("a", "two"),
		event.PS("m", value.Bool(true)),
	}
	v, err := props.Encode()
	if err != nil {
		t.Fatal(err)
	}
	got := string(value.AppendValue(nil, v))
	want := `{"z":1,"a":"two","m":true}`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestPropsEncodeFailurePropagates(t *testing.T) {
	props := event.Props{
		event.P("ok", 1),
		event.PS("bad", value.Defer(func() (value.Source, error) {
			return value.Source{}, errTest
		})),
	}
	v, err := props.Encode()
	if v != nil {
		t.Fatal("partial props object escaped")
	}
	if !value.IsCustom(err) {
		t.Fatalf("err = %v, want custom", err)
	}
}

var errTest = errEncode("refused")

type errEncode string

func (e errEncode) Error() string { return string(e) }

func TestPropsAddGet(t *testing.T) {
	var props event.Props
	props.Add("k", 42)
	props.Add("k", 43)

	src, ok := props.Get("k")
	if !ok {
		t.Fatal("Get(k) missing")
	}
	v, _ := value.Serialize(src)
	if v.Float64() != 42 {
		t.Errorf("Get returns %v, want first value 42", v.Float64())
	}
	if _, ok := props.Get("absent"); ok {
		t.Error("Get(absent) = ok, want miss")
	}
}

func TestExtentPointOnly(t *testing.T) {
	ts := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	v := event.At(ts).Encode()

	if v.Len() != 1 {
		t.Fatalf("instant extent has %d fields, want 1", v.Len())
	}
	if got := v.Get("timestamp").Str(); got != "2026-08-23T12:00:00Z" {
		t.Errorf("timestamp = %q", got)
	}
	if v.Get("milliseconds") != nil {
		t.Error("instant extent must not carry milliseconds")
	}
}

func TestExtentWithLength(t *testing.T) {
	ts := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	v := event.Span(ts, 1500*time.Microsecond).Encode()

	ms := v.Get("milliseconds")
	if ms == nil {
		t.Fatal("span extent missing milliseconds")
	}
	if got := ms.Float64(); got != 1.5 {
		t.Errorf("milliseconds = %v, want 1.5", got)
	}
}

func TestNewEvent(t *testing.T) {
	evt := event.New(event.LevelWarn, "disk almost full", event.P("pct", 91))
	if evt.Level != event.LevelWarn || evt.Msg != "disk almost full" {
		t.Errorf("event = %+v", evt)
	}
	if evt.Extent != nil {
		t.Error("fresh event must have nil extent (no timing info)")
	}
	if len(evt.Props) != 1 {
		t.Errorf("props = %d, want 1", len(evt.Props))
	}
}
