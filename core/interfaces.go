// Package core 提供事件发射管线的核心接口定义
package core

import (
	"time"

	"github.com/uniyakcom/pulse/event"
	"github.com/uniyakcom/pulse/value"
)

// Sink 接收已序列化事件的写出端（console 式）
type Sink interface {
	// Write 执行一次副作用写出。extent 为 nil 表示"无时间信息"，
	// 必须按此处理而不是报错；props 恒非 nil（可能是降级后的字符串值）。
	Write(level event.Level, msg string, extent, props *value.Value)

	// Flush 在 timeout 内冲刷缓冲，返回确定的成功/失败，绝不悬挂。
	Flush(timeout time.Duration) bool
}

// Clock 墙钟抽象。不可用时返回 ok=false，
// 事件层以省略时间戳应对，而不是让整次发射失败。
type Clock interface {
	Now() (time.Time, bool)
}

// Rng 随机源抽象。不可用时返回 false 且不触碰 buf，
// 事件层以省略标识符数据应对。
type Rng interface {
	Fill(buf []byte) bool
}

// SinkStats Sink 运行时统计（仅异步实现有值）
type SinkStats struct {
	Written int64 // 已写出事件总数
	Dropped int64 // 队列满被丢弃的事件总数
}
