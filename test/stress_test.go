package pulse_test

import (
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/uniyakcom/pulse/event"
	rt "github.com/uniyakcom/pulse/runtime"
	"github.com/uniyakcom/pulse/sink/async"
	"github.com/uniyakcom/pulse/sink/console"
	"github.com/uniyakcom/pulse/sink/multi"
	"github.com/uniyakcom/pulse/value"
)

// 说明：压力测试需要较长运行时间，使用 go test -v ./test/ 单独运行
// 使用 -short 标志可跳过这些测试

// countSink 只计数不输出
type countSink struct {
	n atomic.Int64
}

func (c *countSink) Write(event.Level, string, *value.Value, *value.Value) {
	c.n.Add(1)
}

func (c *countSink) Flush(time.Duration) bool { return true }

// TestStressHighConcurrency 高并发压力测试
// 100个goroutines并发发射，每个1000个事件
func TestStressHighConcurrency(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	cnt := &countSink{}
	r := rt.New(rt.WithSink(cnt))

	goroutineCount := 100
	eventsPerGoroutine := 1000
	start := time.Now()

	var wg sync.WaitGroup
	for g := 0; g < goroutineCount; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < eventsPerGoroutine; i++ {
				r.Emit(event.New(event.LevelInfo, "stress.concurrent",
					event.P("worker", g), event.P("seq", i)))
			}
		}(g)
	}
	wg.Wait()
	duration := time.Since(start)

	expected := int64(goroutineCount * eventsPerGoroutine)
	actual := cnt.n.Load()

	t.Logf("High concurrency: %d events in %v", actual, duration)
	t.Logf("Throughput: %.0f events/sec", float64(actual)/duration.Seconds())

	// 同步路径不允许丢失
	if actual != expected {
		t.Errorf("expected %d events, got %d", expected, actual)
	}
}

// TestStressAsyncBursty 异步突发流量压力测试
// 模拟10次突发，每次1000个事件，Written+Dropped 必须守恒
func TestStressAsyncBursty(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	cnt := &countSink{}
	as, err := async.NewWithConfig(cnt, async.Config{Workers: 8})
	if err != nil {
		t.Fatal(err)
	}
	r := rt.New(rt.WithSink(as))

	total := 0
	for burst := 0; burst < 10; burst++ {
		// 突发阶段：快速发射1000个事件
		for i := 0; i < 1000; i++ {
			r.Emit(event.New(event.LevelInfo, "stress.burst", event.P("i", i)))
			total++
		}

		// 空闲阶段
		time.Sleep(100 * time.Millisecond)
	}

	if !r.Flush(10 * time.Second) {
		t.Fatal("flush timed out")
	}
	stats := as.Stats()

	t.Logf("Bursty: written=%d dropped=%d (%.1f%% delivered)",
		stats.Written, stats.Dropped, float64(stats.Written)/float64(total)*100)

	// 背压允许丢弃，但每个事件要么写出要么计入丢弃
	if stats.Written+stats.Dropped != int64(total) {
		t.Errorf("written+dropped = %d, want %d", stats.Written+stats.Dropped, total)
	}
	if cnt.n.Load() != stats.Written {
		t.Errorf("inner saw %d, stats say %d", cnt.n.Load(), stats.Written)
	}
}

// TestStressMemoryUsage 内存使用压力测试
func TestStressMemoryUsage(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	runtime.GC()
	var m1 runtime.MemStats
	runtime.ReadMemStats(&m1)

	cons := console.NewWithConfig(console.Config{Out: io.Discard, NoColor: true})
	r := rt.New(rt.WithSink(cons))

	// 发射100000个带嵌套属性的事件
	for i := 0; i < 100000; i++ {
		r.Emit(event.New(event.LevelInfo, "stress.memory",
			event.P("seq", i),
			event.P("payload", map[string]any{"a": 1, "b": "text"}),
		))
	}

	runtime.GC()
	var m2 runtime.MemStats
	runtime.ReadMemStats(&m2)

	t.Logf("Memory: Before=%d KB, After events=%d KB", m1.Alloc/1024, m2.Alloc/1024)

	// 事件不驻留，内存不应超过10倍
	if m2.Alloc > m1.Alloc*10 {
		t.Errorf("memory too high: %d > %d", m2.Alloc, m1.Alloc*10)
	}
}

// TestStressSlowSink 慢 Sink 压力测试
// 异步层必须把慢写出隔离在业务 goroutine 之外
func TestStressSlowSink(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	slow := &slowSink{delay: 5 * time.Millisecond}
	as, err := async.NewWithConfig(slow, async.Config{Workers: 32})
	if err != nil {
		t.Fatal(err)
	}
	r := rt.New(rt.WithSink(as))

	start := time.Now()
	for i := 0; i < 100; i++ {
		r.Emit(event.New(event.LevelInfo, "slow.test", event.P("i", i)))
	}
	emitDuration := time.Since(start)

	// 发射端不应被 5ms 写出拖住
	if emitDuration > time.Second {
		t.Errorf("emit path blocked for %v", emitDuration)
	}

	if !r.Flush(30 * time.Second) {
		t.Fatal("flush timed out")
	}
	stats := as.Stats()
	t.Logf("Slow sink: emit %v, written=%d dropped=%d", emitDuration, stats.Written, stats.Dropped)

	if stats.Written+stats.Dropped != 100 {
		t.Errorf("written+dropped = %d, want 100", stats.Written+stats.Dropped)
	}
}

// TestStressFanOut 多路扇出长时间压力测试
// 持续5秒向3个下游扇出
func TestStressFanOut(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	a, b, c := &countSink{}, &countSink{}, &countSink{}
	r := rt.New(rt.WithSink(multi.New(a, b, c)))

	var total atomic.Int64
	stop := make(chan struct{})
	var wg sync.WaitGroup

	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					r.Emit(event.New(event.LevelInfo, "stress.fanout"))
					total.Add(1)
				}
			}
		}()
	}

	time.Sleep(5 * time.Second)
	close(stop)
	wg.Wait()

	n := total.Load()
	t.Logf("Fan-out: %d events in 5 seconds", n)

	if a.n.Load() != n || b.n.Load() != n || c.n.Load() != n {
		t.Errorf("fan-out diverged: %d/%d/%d, want %d", a.n.Load(), b.n.Load(), c.n.Load(), n)
	}
}

// slowSink 每次写出固定延迟
type slowSink struct {
	delay time.Duration
	n     atomic.Int64
}

func (s *slowSink) Write(event.Level, string, *value.Value, *value.Value) {
	time.Sleep(s.delay)
	s.n.Add(1)
}

func (s *slowSink) Flush(time.Duration) bool { return true }
