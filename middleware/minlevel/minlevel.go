// Package minlevel 提供严重级别下限中间件。
//
// 低于下限的事件直接丢弃。未分级事件（LevelNone）恒放行：
// 它们走 console 的默认 log 通道，不参与级别排序。
package minlevel

import (
	"time"

	"github.com/uniyakcom/pulse/core"
	"github.com/uniyakcom/pulse/event"
	"github.com/uniyakcom/pulse/middleware"
	"github.com/uniyakcom/pulse/value"
)

// New 创建级别过滤中间件
func New(min event.Level) middleware.Middleware {
	return func(next core.Sink) core.Sink {
		return &sink{next: next, min: min}
	}
}

type sink struct {
	next core.Sink
	min  event.Level
}

func (s *sink) Write(level event.Level, msg string, extent, props *value.Value) {
	if level != event.LevelNone && level < s.min {
		return
	}
	s.next.Write(level, msg, extent, props)
}

func (s *sink) Flush(timeout time.Duration) bool {
	return s.next.Flush(timeout)
}
