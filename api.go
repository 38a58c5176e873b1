// Package pulse 统一API入口
package pulse

import (
	"sync/atomic"
	"time"

	"github.com/uniyakcom/pulse/core"
	"github.com/uniyakcom/pulse/event"
	"github.com/uniyakcom/pulse/runtime"
)

// Event 导出Event类型
type Event = event.Event

// Prop 导出Prop类型
type Prop = event.Prop

// Props 导出Props类型
type Props = event.Props

// Extent 导出Extent类型
type Extent = event.Extent

// Level 导出Level类型
type Level = event.Level

// Sink 导出Sink接口
type Sink = core.Sink

// 级别常量
const (
	LevelNone  = event.LevelNone
	LevelDebug = event.LevelDebug
	LevelInfo  = event.LevelInfo
	LevelWarn  = event.LevelWarn
	LevelError = event.LevelError
)

// P 构造属性（任意 Go 值，反射捕获）
func P(key string, val any) Prop { return event.P(key, val) }

// ═══════════════════════════════════════════════════════════════════
// 第零层：包级默认运行时（零配置，console 输出）
// ═══════════════════════════════════════════════════════════════════

// defaultRT 包级默认运行时。Setup 可整体替换，读取走原子指针。
var defaultRT atomic.Pointer[runtime.Runtime]

func init() {
	defaultRT.Store(runtime.New())
}

// Setup 重建包级默认运行时
//
// 用法:
//
//	pulse.Setup(runtime.WithSink(async.New(console.New(), async.Config{})))
func Setup(opts ...runtime.Option) {
	defaultRT.Store(runtime.New(opts...))
}

// Default 返回包级默认运行时
// 适用于需要将运行时作为参数传递但又想使用全局默认实例的场景。
func Default() *runtime.Runtime {
	return defaultRT.Load()
}

// ═══════════════════════════════════════════════════════════════════
// 第一层：按级别发射（推荐使用）
// ═══════════════════════════════════════════════════════════════════

// Debug 发出 debug 级事件
//
// 用法:
//
//	pulse.Debug("cache miss", pulse.P("key", key))
func Debug(msg string, props ...Prop) {
	Default().Emit(event.New(event.LevelDebug, msg, props...))
}

// Info 发出 info 级事件
func Info(msg string, props ...Prop) {
	Default().Emit(event.New(event.LevelInfo, msg, props...))
}

// Warn 发出 warn 级事件
func Warn(msg string, props ...Prop) {
	Default().Emit(event.New(event.LevelWarn, msg, props...))
}

// Error 发出 error 级事件
func Error(msg string, props ...Prop) {
	Default().Emit(event.New(event.LevelError, msg, props...))
}

// Log 发出未分级事件（不参与级别过滤）
func Log(msg string, props ...Prop) {
	Default().Emit(event.New(event.LevelNone, msg, props...))
}

// ═══════════════════════════════════════════════════════════════════
// 第二层：完整事件控制
// ═══════════════════════════════════════════════════════════════════

// Emit 发出完整事件（自定义级别、时间范围）
func Emit(e *Event) {
	Default().Emit(e)
}

// StartSpan 开始一个时间跨度，End 时发出带时长与 trace/span 标识的事件
//
// 用法:
//
//	sp := pulse.StartSpan("db.query", pulse.P("table", "users"))
//	defer sp.End()
func StartSpan(msg string, props ...Prop) *runtime.Span {
	return Default().StartSpan(msg, props...)
}

// Flush 等待默认运行时的 Sink 排空，超时返回 false
// 通常仅在进程退出前调用。
func Flush(timeout time.Duration) bool {
	return Default().Flush(timeout)
}
