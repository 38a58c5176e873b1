// Package zaplog 提供 zap 适配 Sink：事件转交给 *zap.Logger 写出。
//
// 动态值树在此处（最外层边界）一次性转换为宿主原生表示（Interface），
// 交由 zap 的编码器落盘。适合已有 zap 基础设施的服务复用其输出配置。
package zaplog

import (
	"time"

	"go.uber.org/zap"

	"github.com/uniyakcom/pulse/event"
	"github.com/uniyakcom/pulse/value"
)

// Sink zap 适配写出端
type Sink struct {
	logger *zap.Logger
}

// New 创建 zap 适配 Sink。logger 为 nil 时使用 zap.NewNop()。
func New(logger *zap.Logger) *Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sink{logger: logger}
}

// Write 按级别转交 zap。extent 为 nil 时省略 extent 字段（无时间信息）。
func (s *Sink) Write(level event.Level, msg string, extent, props *value.Value) {
	fields := make([]zap.Field, 0, 2)
	if extent != nil {
		fields = append(fields, zap.Any("extent", extent.Interface()))
	}
	fields = append(fields, zap.Any("props", props.Interface()))

	switch level {
	case event.LevelDebug:
		s.logger.Debug(msg, fields...)
	case event.LevelInfo:
		s.logger.Info(msg, fields...)
	case event.LevelWarn:
		s.logger.Warn(msg, fields...)
	case event.LevelError:
		s.logger.Error(msg, fields...)
	default:
		s.logger.Info(msg, fields...)
	}
}

// Flush 调用 zap Sync，deadline 守卫保证确定返回。
func (s *Sink) Flush(timeout time.Duration) bool {
	done := make(chan bool, 1)
	go func() {
		done <- s.logger.Sync() == nil
	}()

	select {
	case ok := <-done:
		return ok
	case <-time.After(timeout):
		return false
	}
}
