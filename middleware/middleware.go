// Package middleware 提供 Sink 中间件机制。
//
// 中间件包装 core.Sink，在写出前后添加逻辑（级别过滤、panic 恢复等）。
// 类似 HTTP 中间件模式。
//
//	s := middleware.Chain(console.New(),
//	    minlevel.New(event.LevelInfo),
//	    recoverer.New(nil),
//	)
package middleware

import "github.com/uniyakcom/pulse/core"

// Middleware 中间件函数签名
type Middleware func(next core.Sink) core.Sink

// Chain 依次包装 Sink。最后一个中间件在最外层（先执行）。
func Chain(s core.Sink, mws ...Middleware) core.Sink {
	for _, mw := range mws {
		s = mw(s)
	}
	return s
}
