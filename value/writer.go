package value

import (
	"encoding/base64"
	"math"
	"strconv"
	"sync"
)

// Writer 动态值 JSON 渲染器（零分配追加到 buffer）
//
// 动态值树在内存中即是交付物，Writer 只服务需要文本形态的消费方
// （console sink 的行输出）。设计要点:
//   - 直接向 []byte 追加，无中间 io.Writer 层
//   - 支持 pool 复用（AcquireWriter/ReleaseWriter）
//   - 字符串自动转义；bytes 渲染为 base64 字符串
//   - bignumber 按原始十进制字面量渲染（JSON 数字字面量精度不设限，
//     超 double 部分由文本消费方自行决断）
//
// 用法:
//
//	w := value.AcquireWriter()
//	defer value.ReleaseWriter(w)
//	w.WriteValue(v)
//	line := w.String()
type Writer struct {
	buf []byte
}

// ─── Pool ───

var writerPool = sync.Pool{
	New: func() any { return &Writer{buf: make([]byte, 0, 256)} },
}

// AcquireWriter 从池中获取 Writer
func AcquireWriter() *Writer {
	w := writerPool.Get().(*Writer)
	w.buf = w.buf[:0]
	return w
}

// ReleaseWriter 归还 Writer 到池中
func ReleaseWriter(w *Writer) {
	// 保留小 buffer，释放大 buffer（防内存泄漏）
	if cap(w.buf) > 1<<16 {
		w.buf = make([]byte, 0, 256)
	}
	writerPool.Put(w)
}

// ─── 结果获取 ───

// Bytes 返回已生成的 JSON 字节（生命周期绑定到 Writer）
func (w *Writer) Bytes() []byte { return w.buf }

// String 返回已生成的 JSON 字符串
func (w *Writer) String() string { return string(w.buf) }

// Len 返回已写入的字节数
func (w *Writer) Len() int { return len(w.buf) }

// Reset 重置 Writer 以复用
func (w *Writer) Reset() { w.buf = w.buf[:0] }

// ─── 渲染 ───

// WriteValue 将动态值渲染为 JSON 追加到 buffer
func (w *Writer) WriteValue(v *Value) {
	w.buf = AppendValue(w.buf, v)
}

// WriteRaw 追加原始字符串（不做 JSON 转义）
func (w *Writer) WriteRaw(s string) {
	w.buf = append(w.buf, s...)
}

// AppendValue 将动态值渲染为 JSON 追加到 dst（零拷贝，外部 buffer 场景）
func AppendValue(dst []byte, v *Value) []byte {
	switch v.Type() {
	case TypeNull:
		return append(dst, "null"...)

	case TypeBool:
		if v.b {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)

	case TypeNumber:
		return appendFloat(dst, v.f)

	case TypeBigNumber:
		// 原始十进制字面量，不加引号
		return append(dst, v.s...)

	case TypeString:
		return appendQuotedString(dst, v.s)

	case TypeBytes:
		return appendQuotedString(dst, base64String(v.by))

	case TypeArray:
		dst = append(dst, '[')
		for i, elem := range v.a {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = AppendValue(dst, elem)
		}
		return append(dst, ']')

	default: // TypeObject
		dst = append(dst, '{')
		for i := range v.o.kvs {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendQuotedString(dst, v.o.kvs[i].k)
			dst = append(dst, ':')
			dst = AppendValue(dst, v.o.kvs[i].v)
		}
		return append(dst, '}')
	}
}

// ─── 字符串转义 ───

// appendQuotedString 写入带引号和转义的 JSON 字符串
//
// 优化: 先扫描是否需要转义（大部分字符串不需要）
func appendQuotedString(dst []byte, s string) []byte {
	dst = append(dst, '"')

	needsEscape := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c == '"' || c == '\\' {
			needsEscape = true
			break
		}
	}

	if !needsEscape {
		dst = append(dst, s...)
		return append(dst, '"')
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			dst = append(dst, '\\', '"')
		case c == '\\':
			dst = append(dst, '\\', '\\')
		case c == '\n':
			dst = append(dst, '\\', 'n')
		case c == '\r':
			dst = append(dst, '\\', 'r')
		case c == '\t':
			dst = append(dst, '\\', 't')
		case c < 0x20:
			// 控制字符: \u00XX
			dst = append(dst, '\\', 'u', '0', '0')
			dst = append(dst, hexDigit[c>>4], hexDigit[c&0xF])
		default:
			dst = append(dst, c)
		}
	}
	return append(dst, '"')
}

var hexDigit = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}

// base64String 字节缓冲的文本形态（标准 base64）
func base64String(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// ─── 数字渲染 ───

// appendFloat 写入 double
func appendFloat(dst []byte, f float64) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		// JSON 不支持 NaN/Inf，输出 null
		return append(dst, "null"...)
	}
	// 整数快速路径
	if f == math.Trunc(f) && f >= -1e15 && f <= 1e15 {
		return appendInt(dst, int64(f))
	}
	return strconv.AppendFloat(dst, f, 'f', -1, 64)
}

// appendInt 快速 int64 追加
func appendInt(dst []byte, v int64) []byte {
	if v >= 0 && v < 100 {
		return appendSmallInt(dst, int(v))
	}
	return strconv.AppendInt(dst, v, 10)
}

// appendSmallInt 小整数快速路径（0-99 查表）
func appendSmallInt(dst []byte, v int) []byte {
	if v < 10 {
		return append(dst, byte('0'+v))
	}
	return append(dst, byte('0'+v/10), byte('0'+v%10))
}
