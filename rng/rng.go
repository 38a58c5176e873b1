// Package rng 提供 core.Rng 的内置实现与标识符派生。
package rng

import (
	"crypto/rand"
	"encoding/hex"
	"io"

	"github.com/google/uuid"

	"github.com/uniyakcom/pulse/core"
)

// Crypto 密码学随机源（crypto/rand）
type Crypto struct{}

// Fill 填充 buf。读取失败时返回 false 且不保证 buf 内容。
func (Crypto) Fill(buf []byte) bool {
	_, err := rand.Read(buf)
	return err == nil
}

// Unavailable 不可用随机源。事件层对 false 的响应是省略标识符，
// 而不是发射失败。
type Unavailable struct{}

// Fill 恒报告不可用
func (Unavailable) Fill([]byte) bool { return false }

// ─── 标识符派生 ───

// TraceID 从随机源派生 16 字节 trace 标识（32 位十六进制）
func TraceID(r core.Rng) (string, bool) {
	return hexID(r, 16)
}

// SpanID 从随机源派生 8 字节 span 标识（16 位十六进制）
func SpanID(r core.Rng) (string, bool) {
	return hexID(r, 8)
}

func hexID(r core.Rng, n int) (string, bool) {
	buf := make([]byte, n)
	if !r.Fill(buf) {
		return "", false
	}
	return hex.EncodeToString(buf), true
}

// UUID 从随机源派生 UUID v4。随机源不可用时返回 ok=false。
func UUID(r core.Rng) (string, bool) {
	u, err := uuid.NewRandomFromReader(rngReader{r})
	if err != nil {
		return "", false
	}
	return u.String(), true
}

// rngReader 将 core.Rng 适配为 io.Reader 喂给 uuid
type rngReader struct {
	r core.Rng
}

func (rr rngReader) Read(p []byte) (int, error) {
	if !rr.r.Fill(p) {
		return 0, io.ErrUnexpectedEOF
	}
	return len(p), nil
}
