// Package util 提供发射管线通用的工具类型
package util

import (
	"runtime"
	"sync/atomic"
	"unsafe"
)

// maxSlots 最大 slot 数量（覆盖常见 GOMAXPROCS）
const maxSlots = 128

// Counter 分散写入计数器（异步 Sink 的热路径写出计数用）
//
// 多 goroutine 并发 Add 时按 goroutine 栈地址哈希分散到不同 cache line，
// 避免单个 atomic 计数器的跨核争用。Read 聚合所有 slot，非精确瞬时值。
type Counter struct {
	slots [maxSlots]counterSlot
	mask  int
}

type counterSlot struct {
	n atomic.Int64
	_ [56]byte // cache line padding（64 − 8 字节）
}

// NewCounter 创建计数器。slot 数取 GOMAXPROCS 向上取 2 的幂，
// 低核环境保底 8 个以摊薄栈地址哈希冲突。
func NewCounter() *Counter {
	n := runtime.GOMAXPROCS(0)
	sz := 1
	for sz < n {
		sz *= 2
	}
	if sz < 8 {
		sz = 8
	}
	if sz > maxSlots {
		sz = maxSlots
	}
	return &Counter{mask: sz - 1}
}

// Add 累加 delta（per-goroutine 栈地址分散）
//
// goroutine 最小栈 8KB = 2^13，栈变量地址右移 13 位后做 bitmask，
// 不同 goroutine 大概率落到不同 slot。
//
//go:nosplit
func (c *Counter) Add(delta int64) {
	var x uintptr
	id := int(uintptr(unsafe.Pointer(&x)) >> 13)
	c.slots[id&c.mask].n.Add(delta)
}

// Read 聚合所有 slot 的累计值
func (c *Counter) Read() int64 {
	var sum int64
	for i := 0; i <= c.mask; i++ {
		sum += c.slots[i].n.Load()
	}
	return sum
}
