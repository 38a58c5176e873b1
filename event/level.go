// Package event 提供诊断事件模型。
//
// Event 是 pulse 的基本发射单元：消息 + 严重级别 + 可选时间范围 +
// 有序属性包。属性值经 value.Serialize 编码为动态值树后交给 Sink。
package event

// Level 事件严重级别
type Level uint8

const (
	LevelNone  Level = iota // 未分级（console 的默认 log 通道）
	LevelDebug              // 调试
	LevelInfo               // 信息
	LevelWarn               // 警告
	LevelError              // 错误
)

// String 返回级别名称
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "log"
	}
}
