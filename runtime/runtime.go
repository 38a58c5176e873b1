// Package runtime 组装发射管线：Sink + 时钟 + 随机源。
//
// Runtime 负责事件的最终编码与分发：
//   - 缺失时间范围时从时钟补齐（时钟不可用则省略）
//   - 属性编码失败时降级为错误描述字符串，事件仍然发出
//   - 按级别分发到 Sink
package runtime

import (
	"time"

	"github.com/uniyakcom/pulse/clock"
	"github.com/uniyakcom/pulse/core"
	"github.com/uniyakcom/pulse/event"
	"github.com/uniyakcom/pulse/rng"
	"github.com/uniyakcom/pulse/sink/console"
	"github.com/uniyakcom/pulse/value"
)

// Runtime 事件发射运行时
type Runtime struct {
	sink  core.Sink
	clock core.Clock
	rng   core.Rng
}

// Option 配置项
type Option func(*Runtime)

// WithSink 替换输出 Sink
func WithSink(s core.Sink) Option {
	return func(r *Runtime) {
		if s != nil {
			r.sink = s
		}
	}
}

// WithClock 替换时钟
func WithClock(c core.Clock) Option {
	return func(r *Runtime) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithRng 替换随机源
func WithRng(g core.Rng) Option {
	return func(r *Runtime) {
		if g != nil {
			r.rng = g
		}
	}
}

// New 创建运行时。默认 console Sink + 系统时钟 + 加密随机源。
func New(opts ...Option) *Runtime {
	r := &Runtime{
		sink:  console.New(),
		clock: clock.System{},
		rng:   rng.Crypto{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Sink 返回当前 Sink
func (r *Runtime) Sink() core.Sink { return r.sink }

// Emit 编码并发出事件。
//
// 属性编码失败不丢事件：props 降级为错误描述字符串。
// 事件未带时间范围时取时钟当前时刻；时钟不可用则不补。
func (r *Runtime) Emit(e *event.Event) {
	if e == nil {
		return
	}
	ext := e.Extent
	if ext == nil {
		if now, ok := r.clock.Now(); ok {
			x := event.At(now)
			ext = &x
		}
	}

	var extVal *value.Value
	if ext != nil {
		extVal = ext.Encode()
	}

	propsVal, err := e.Props.Encode()
	if err != nil {
		propsVal = value.NewString(err.Error())
	}

	r.sink.Write(e.Level, e.Msg, extVal, propsVal)
}

// Flush 等待 Sink 排空，超时返回 false
func (r *Runtime) Flush(timeout time.Duration) bool {
	return r.sink.Flush(timeout)
}

// ─── span ───

// Span 进行中的时间跨度。End 时发出带时长的事件。
type Span struct {
	rt    *Runtime
	msg   string
	props event.Props
	start time.Time
	ok    bool // 起点可用
	done  bool
}

// StartSpan 开始一个跨度。随机源可用时附加 trace_id / span_id 属性；
// 不可用则两者都省略，跨度照常工作。
func (r *Runtime) StartSpan(msg string, props ...event.Prop) *Span {
	sp := &Span{rt: r, msg: msg, props: event.Props(props)}
	if traceID, ok := rng.TraceID(r.rng); ok {
		if spanID, ok := rng.SpanID(r.rng); ok {
			sp.props = append(sp.props,
				event.P("trace_id", traceID),
				event.P("span_id", spanID),
			)
		}
	}
	if now, ok := r.clock.Now(); ok {
		sp.start = now
		sp.ok = true
	}
	return sp
}

// End 结束跨度并发出 Info 级事件。重复调用无效。
func (sp *Span) End(props ...event.Prop) {
	if sp.done {
		return
	}
	sp.done = true

	e := event.New(event.LevelInfo, sp.msg, append(sp.props, props...)...)
	if sp.ok {
		if end, ok := sp.rt.clock.Now(); ok {
			x := event.Span(sp.start, end.Sub(sp.start))
			e.Extent = &x
		}
	}
	sp.rt.Emit(e)
}
