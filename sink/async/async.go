// Package async 提供异步 Sink 包装：写出任务投递到 goroutine 池执行，
// 调用方永不被下游 I/O 阻塞。
//
// 队列满时丢弃事件并计数（诊断管线宁可丢日志也不反压业务）。
// Flush 在 deadline 内等待在途任务排空，返回确定的成功/失败。
//
//	s, _ := async.New(console.New())
//	defer s.Close(time.Second)
package async

import (
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/uniyakcom/pulse/core"
	"github.com/uniyakcom/pulse/event"
	"github.com/uniyakcom/pulse/util"
	"github.com/uniyakcom/pulse/value"
)

// Config 异步 Sink 配置
type Config struct {
	// Workers 池内 worker 数量。默认 4。
	Workers int
}

func (c *Config) defaults() {
	if c.Workers <= 0 {
		c.Workers = 4
	}
}

// Sink 异步写出端
type Sink struct {
	inner   core.Sink
	pool    *ants.Pool
	pending atomic.Int64  // 在途任务数（Flush 排空依据）
	written *util.Counter // 热路径计数，分散写避免争用
	dropped atomic.Int64
	closed  atomic.Bool
}

// New 创建默认配置的异步包装
func New(inner core.Sink) (*Sink, error) {
	return NewWithConfig(inner, Config{})
}

// NewWithConfig 创建带配置的异步包装
func NewWithConfig(inner core.Sink, cfg Config) (*Sink, error) {
	cfg.defaults()

	// 非阻塞池: worker 全忙时 Submit 立即报 ErrPoolOverload → 丢弃计数
	pool, err := ants.NewPool(cfg.Workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}
	return &Sink{inner: inner, pool: pool, written: util.NewCounter()}, nil
}

// Write 投递写出任务。池满或已关闭时丢弃并计数，绝不阻塞调用方。
func (s *Sink) Write(level event.Level, msg string, extent, props *value.Value) {
	if s.closed.Load() {
		s.dropped.Add(1)
		return
	}

	s.pending.Add(1)
	err := s.pool.Submit(func() {
		s.inner.Write(level, msg, extent, props)
		s.written.Add(1)
		s.pending.Add(-1)
	})
	if err != nil {
		s.pending.Add(-1)
		s.dropped.Add(1)
	}
}

// Flush 等待在途任务排空后冲刷下游，整体受 timeout 约束。
// 排空轮询粒度 500µs；超时返回 false，绝不悬挂。
func (s *Sink) Flush(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)

	for s.pending.Load() > 0 {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(500 * time.Microsecond)
	}

	remain := time.Until(deadline)
	if remain <= 0 {
		return false
	}
	return s.inner.Flush(remain)
}

// Close 关闭池并等待已投递任务执行完毕（最长 timeout）。
// 关闭后 Write 变为丢弃计数的 no-op。
func (s *Sink) Close(timeout time.Duration) error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.pool.ReleaseTimeout(timeout)
}

// Stats 返回运行时统计
func (s *Sink) Stats() core.SinkStats {
	return core.SinkStats{
		Written: s.written.Read(),
		Dropped: s.dropped.Load(),
	}
}
