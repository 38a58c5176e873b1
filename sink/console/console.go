// Package console 提供 console 式 Sink：按级别分通道写出文本行。
//
// 行格式: 级别标签 + 消息 + extent JSON + props JSON。extent 为 nil
// 时写 null（"无时间信息"）。级别标签用 fatih/color 着色，可关闭。
//
//	s := console.New()
//	s.Write(event.LevelInfo, "hello", nil, props)
package console

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/uniyakcom/pulse/event"
	"github.com/uniyakcom/pulse/value"
)

// Config console Sink 配置
type Config struct {
	// Out 输出目标。默认 os.Stdout。
	Out io.Writer

	// NoColor 关闭级别标签着色（写入非终端或测试时）。
	NoColor bool
}

// Sink console 式写出端
type Sink struct {
	mu   sync.Mutex
	out  io.Writer
	tags [5]string // 按级别预渲染的标签
}

// New 创建默认配置的 console Sink（os.Stdout，终端自动着色）
func New() *Sink {
	return NewWithConfig(Config{})
}

// NewWithConfig 创建带配置的 console Sink
func NewWithConfig(cfg Config) *Sink {
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	s := &Sink{out: cfg.Out}
	for l := event.LevelNone; l <= event.LevelError; l++ {
		s.tags[l] = renderTag(l, !cfg.NoColor)
	}
	return s
}

// renderTag 级别标签（构造期一次性渲染，写出热路径零格式化）
func renderTag(l event.Level, colored bool) string {
	name := strings.ToUpper(l.String())
	if !colored {
		return name
	}
	switch l {
	case event.LevelDebug:
		return color.CyanString(name)
	case event.LevelInfo:
		return color.GreenString(name)
	case event.LevelWarn:
		return color.YellowString(name)
	case event.LevelError:
		return color.RedString(name)
	default:
		return name
	}
}

// Write 写出一行。extent 为 nil 按"无时间信息"处理（渲染 null）。
func (s *Sink) Write(level event.Level, msg string, extent, props *value.Value) {
	if level > event.LevelError {
		level = event.LevelNone
	}

	w := value.AcquireWriter()
	defer value.ReleaseWriter(w)

	w.WriteRaw(s.tags[level])
	w.WriteRaw(" ")
	w.WriteRaw(msg)
	w.WriteRaw(" ")
	w.WriteValue(extent) // nil extent → null
	w.WriteRaw(" ")
	w.WriteValue(props)
	w.WriteRaw("\n")

	s.mu.Lock()
	_, _ = s.out.Write(w.Bytes())
	s.mu.Unlock()
}

// Flush 冲刷输出目标。
//
// 每次 Write 都直写 out，只有包了缓冲层（bufio.Writer 等带 Flush 的
// 目标）才有真正要冲的内容；其余目标直接成功。冲刷在独立 goroutine
// 里执行并用 deadline 守卫，保证确定返回、绝不悬挂。
func (s *Sink) Flush(timeout time.Duration) bool {
	type flusher interface{ Flush() error }

	out, ok := s.out.(flusher)
	if !ok {
		return true
	}

	done := make(chan bool, 1)
	go func() {
		s.mu.Lock()
		err := out.Flush()
		s.mu.Unlock()
		done <- err == nil
	}()

	select {
	case ok := <-done:
		return ok
	case <-time.After(timeout):
		return false
	}
}
