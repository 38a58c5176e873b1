// Package clock 提供 core.Clock 的内置实现。
package clock

import "time"

// System 系统墙钟（始终可用）
type System struct{}

// Now 返回当前时间
func (System) Now() (time.Time, bool) { return time.Now(), true }

// Frozen 冻结时钟（测试与确定性回放）
type Frozen struct {
	T time.Time
}

// Now 返回固定时间
func (f Frozen) Now() (time.Time, bool) { return f.T, true }

// Unavailable 不可用时钟。事件层对 ok=false 的响应是省略时间戳，
// 而不是发射失败。
type Unavailable struct{}

// Now 恒报告不可用
func (Unavailable) Now() (time.Time, bool) { return time.Time{}, false }
