package value

import (
	"errors"
	"fmt"
)

// ErrKind 序列化错误类别
type ErrKind uint8

const (
	// ErrStructural Builder 状态机被非法使用（无键先给值、挂起键未配对
	// 就 Finish、复用已 Finish 的 Builder、变体缺少 case 名等）
	ErrStructural ErrKind = iota + 1

	// ErrCustom 子值自身序列化失败（Defer 源返回 error）
	ErrCustom
)

// String 返回类别名称
func (k ErrKind) String() string {
	switch k {
	case ErrStructural:
		return "structural"
	case ErrCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Error 序列化错误（携带类别，测试可直接断言非法状态转移）
type Error struct {
	Kind ErrKind
	Msg  string
}

func (e *Error) Error() string { return "value: " + e.Msg }

// structuralf 构造 Structural 错误
func structuralf(format string, args ...any) *Error {
	return &Error{Kind: ErrStructural, Msg: fmt.Sprintf(format, args...)}
}

// customErr 将子值序列化失败包装为 Custom 错误。
// 已是 *Error 的直接透传，保留原始类别。
func customErr(err error) error {
	var ve *Error
	if errors.As(err, &ve) {
		return err
	}
	return &Error{Kind: ErrCustom, Msg: err.Error()}
}

// IsStructural err 是否为 Structural 类别
func IsStructural(err error) bool {
	var ve *Error
	return errors.As(err, &ve) && ve.Kind == ErrStructural
}

// IsCustom err 是否为 Custom 类别
func IsCustom(err error) bool {
	var ve *Error
	return errors.As(err, &ve) && ve.Kind == ErrCustom
}
