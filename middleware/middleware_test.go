package middleware_test

import (
	"sync"
	"testing"
	"time"

	"github.com/uniyakcom/pulse/core"
	"github.com/uniyakcom/pulse/event"
	"github.com/uniyakcom/pulse/middleware"
	"github.com/uniyakcom/pulse/middleware/minlevel"
	"github.com/uniyakcom/pulse/middleware/recoverer"
	"github.com/uniyakcom/pulse/value"
)

type memSink struct {
	mu     sync.Mutex
	levels []event.Level
	panics bool
}

func (m *memSink) Write(level event.Level, _ string, _, _ *value.Value) {
	if m.panics {
		panic("sink exploded")
	}
	m.mu.Lock()
	m.levels = append(m.levels, level)
	m.mu.Unlock()
}

func (m *memSink) Flush(time.Duration) bool {
	if m.panics {
		panic("flush exploded")
	}
	return true
}

func encodeEmpty(t *testing.T) *value.Value {
	t.Helper()
	v, err := event.Props(nil).Encode()
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestMinLevelFilters(t *testing.T) {
	mem := &memSink{}
	s := middleware.Chain(mem, minlevel.New(event.LevelWarn))
	props := encodeEmpty(t)

	s.Write(event.LevelDebug, "m", nil, props)
	s.Write(event.LevelInfo, "m", nil, props)
	s.Write(event.LevelWarn, "m", nil, props)
	s.Write(event.LevelError, "m", nil, props)
	s.Write(event.LevelNone, "m", nil, props) // 未分级恒放行

	want := []event.Level{event.LevelWarn, event.LevelError, event.LevelNone}
	if len(mem.levels) != len(want) {
		t.Fatalf("passed %v, want %v", mem.levels, want)
	}
	for i := range want {
		if mem.levels[i] != want[i] {
			t.Errorf("levels[%d] = %v, want %v", i, mem.levels[i], want[i])
		}
	}
}

func TestRecovererSwallowsPanic(t *testing.T) {
	var recovered any
	s := middleware.Chain(&memSink{panics: true}, recoverer.New(func(r any) { recovered = r }))

	s.Write(event.LevelInfo, "m", nil, encodeEmpty(t)) // 不得 panic

	if recovered != "sink exploded" {
		t.Errorf("recovered = %v, want sink exploded", recovered)
	}
	if ok := s.Flush(time.Second); ok {
		t.Error("flush that panicked reported success")
	}
}

func TestChainOrder(t *testing.T) {
	mem := &memSink{}
	// 最后一个中间件最外层: recoverer 包住 minlevel
	s := middleware.Chain(mem,
		minlevel.New(event.LevelInfo),
		recoverer.New(nil),
	)
	props := encodeEmpty(t)
	s.Write(event.LevelDebug, "m", nil, props)
	s.Write(event.LevelError, "m", nil, props)

	if len(mem.levels) != 1 || mem.levels[0] != event.LevelError {
		t.Errorf("levels = %v, want [error]", mem.levels)
	}

	var _ core.Sink = s
}
