package event

import (
	"time"

	"github.com/uniyakcom/pulse/value"
)

// Extent 事件时间范围: 时间点 + 可选持续长度。
// Len 为零表示瞬时事件，非零表示跨度（span）。
type Extent struct {
	Point time.Time
	Len   time.Duration
}

// At 构造瞬时 Extent
func At(t time.Time) Extent { return Extent{Point: t} }

// Span 构造跨度 Extent（Point 为起点）
func Span(start time.Time, d time.Duration) Extent {
	return Extent{Point: start, Len: d}
}

// Encode 编码为固定双字段对象 {timestamp, milliseconds?}
//
// 这是与通用序列化器并列的姊妹编码器（形态固定，不走 Serialize），
// 只共享同一套动态值模型。timestamp 为 RFC3339Nano 字符串（动态值树
// 中宿主原生时刻的文本形态）；milliseconds 仅在跨度非零时出现。
func (e Extent) Encode() *value.Value {
	b := value.NewObject()
	// 固定形态构建不会触发状态机错误，错误按原设计忽略
	_ = b.Field("timestamp", value.NewString(e.Point.Format(time.RFC3339Nano)))
	if e.Len > 0 {
		ms := float64(e.Len.Nanoseconds()) / 1e6
		_ = b.Field("milliseconds", value.NewNumber(ms))
	}
	v, _ := b.Finish()
	return v
}
