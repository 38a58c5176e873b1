// Package multi 提供多路 Sink 扇出：一次写出复制到全部下游。
package multi

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/uniyakcom/pulse/core"
	"github.com/uniyakcom/pulse/event"
	"github.com/uniyakcom/pulse/value"
)

// Sink 扇出写出端
type Sink struct {
	sinks []core.Sink
}

// New 创建扇出 Sink
func New(sinks ...core.Sink) *Sink {
	return &Sink{sinks: sinks}
}

// Write 按注册顺序依次写出（保证各下游观察到相同事件顺序）
func (s *Sink) Write(level event.Level, msg string, extent, props *value.Value) {
	for _, sink := range s.sinks {
		sink.Write(level, msg, extent, props)
	}
}

// Flush 并发冲刷全部下游（共享同一 timeout），全部成功才算成功。
// 单个下游的 Flush 自身保证不悬挂，errgroup 聚合等待即可。
func (s *Sink) Flush(timeout time.Duration) bool {
	var g errgroup.Group
	for _, sink := range s.sinks {
		sink := sink
		g.Go(func() error {
			if !sink.Flush(timeout) {
				return fmt.Errorf("sink flush failed within %v", timeout)
			}
			return nil
		})
	}
	return g.Wait() == nil
}
