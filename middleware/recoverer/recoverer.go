// Package recoverer 提供 Sink panic 恢复中间件。
//
// 下游 Sink 的 panic 不应打断业务 goroutine：恢复后通过回调上报，
// 本次写出视为丢失。Flush 中 panic 按失败处理。
package recoverer

import (
	"time"

	"github.com/uniyakcom/pulse/core"
	"github.com/uniyakcom/pulse/event"
	"github.com/uniyakcom/pulse/middleware"
	"github.com/uniyakcom/pulse/value"
)

// New 创建 panic 恢复中间件。onPanic 可为 nil（静默恢复）。
func New(onPanic func(recovered any)) middleware.Middleware {
	return func(next core.Sink) core.Sink {
		return &sink{next: next, onPanic: onPanic}
	}
}

type sink struct {
	next    core.Sink
	onPanic func(recovered any)
}

func (s *sink) report(r any) {
	if s.onPanic != nil {
		s.onPanic(r)
	}
}

func (s *sink) Write(level event.Level, msg string, extent, props *value.Value) {
	defer func() {
		if r := recover(); r != nil {
			s.report(r)
		}
	}()
	s.next.Write(level, msg, extent, props)
}

func (s *sink) Flush(timeout time.Duration) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.report(r)
			ok = false
		}
	}()
	return s.next.Flush(timeout)
}
