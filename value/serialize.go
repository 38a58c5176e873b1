package value

import (
	"math"
	"math/bits"
	"strconv"
)

// MaxDepth 序列化最大递归深度（防深层嵌套源值导致栈溢出）
const MaxDepth = 512

// MaxSafeInt 整数安全精度阈值: 2^53 − 1（double 的 53 位尾数内无损）。
// 有符号/无符号、64 位/128 位整数统一适用：|v| ≤ 阈值编码为普通 number，
// 超过则编码为十进制字符串承载的 bignumber。
const MaxSafeInt = 1<<53 - 1

// Serialize 将结构化源值转换为动态值树
//
// 纯函数：无隐藏状态、无 I/O、可重入，多 goroutine 各自调用天然安全。
// 任何子值失败立即中止整个顶层调用并传播错误，不返回部分结果；
// 中止调用内的局部累加直接丢弃，调用方观察不到半成品。
func Serialize(src Source) (*Value, error) {
	return serialize(src, 0)
}

// serialize 递归编码，每种形态一个分支（封闭联合，穷举分派）
func serialize(src Source, depth int) (*Value, error) {
	if depth > MaxDepth {
		return nil, structuralf("nesting exceeds max depth %d", MaxDepth)
	}

	switch src.kind {
	case KindNull:
		return NewNull(), nil

	case KindBool:
		return NewBool(src.b), nil

	case KindInt:
		return encodeInt(src.i), nil

	case KindUint:
		return encodeUint(src.u), nil

	case KindInt128:
		return encodeInt128(src.hi, src.u), nil

	case KindUint128:
		return encodeUint128(src.hi, src.u), nil

	case KindFloat:
		// 已在构造期加宽到 double，原样传递（NaN/Inf 不做特殊处理）
		return NewNumber(src.f), nil

	case KindChar:
		// 单码点的最小 UTF-8 编码
		return NewString(string(src.r)), nil

	case KindString:
		return NewString(src.s), nil

	case KindBytes:
		return NewBytes(src.by), nil

	case KindSome:
		// Some(v) 与 v 单独编码结果完全一致
		if len(src.kids) == 0 {
			return NewNull(), nil
		}
		return serialize(src.kids[0], depth+1)

	case KindSeq:
		return serializeSeq(src.kids, depth)

	case KindMap:
		return serializeMap(src.pairs, depth)

	case KindRecord:
		return serializeFields(src.fields, depth)

	case KindVariant:
		return serializeVariant(src, depth)

	case KindDefer:
		inner, err := src.fn()
		if err != nil {
			return nil, customErr(err)
		}
		// depth+1: 防 Defer 链自引用导致无界递归
		return serialize(inner, depth+1)

	default:
		return nil, structuralf("unknown source kind %d", src.kind)
	}
}

// serializeSeq 序列/元组 → 数组（空序列 → 空数组）
func serializeSeq(items []Source, depth int) (*Value, error) {
	b := NewArray()
	for _, item := range items {
		v, err := serialize(item, depth+1)
		if err != nil {
			return nil, err
		}
		if err := b.Append(v); err != nil {
			return nil, err
		}
	}
	return b.Finish()
}

// serializeMap 有序 map → 对象（键先序列化，再按标量编码折算为字符串）
func serializeMap(pairs []Pair, depth int) (*Value, error) {
	b := NewObject()
	for _, p := range pairs {
		k, err := serialize(p.K, depth+1)
		if err != nil {
			return nil, err
		}
		if err := b.Key(k); err != nil {
			return nil, err
		}
		v, err := serialize(p.V, depth+1)
		if err != nil {
			return nil, err
		}
		if err := b.Value(v); err != nil {
			return nil, err
		}
	}
	return b.Finish()
}

// serializeFields record / struct 变体载荷 → 对象（键恒为静态字段名）
func serializeFields(fields []Field, depth int) (*Value, error) {
	b := NewObject()
	for _, f := range fields {
		v, err := serialize(f.Val, depth+1)
		if err != nil {
			return nil, err
		}
		if err := b.Field(f.Name, v); err != nil {
			return nil, err
		}
	}
	return b.Finish()
}

// serializeVariant 变体编码
//
// 无载荷 → case 名字符串；其余先编码载荷（newtype 直接编码，tuple 按
// 序列、struct 按 record），再整体做单键包装 {case: payload}。
func serializeVariant(src Source, depth int) (*Value, error) {
	if src.s == "" {
		return nil, structuralf("variant with no case name")
	}

	switch src.vt {
	case variantUnit:
		return NewString(src.s), nil

	case variantNewtype:
		payload, err := serialize(src.kids[0], depth+1)
		if err != nil {
			return nil, err
		}
		return WrapVariant(src.s, payload)

	case variantTuple:
		payload, err := serializeSeq(src.kids, depth)
		if err != nil {
			return nil, err
		}
		return WrapVariant(src.s, payload)

	default: // variantStruct
		payload, err := serializeFields(src.fields, depth)
		if err != nil {
			return nil, err
		}
		return WrapVariant(src.s, payload)
	}
}

// ─── 整数精度编码 ───

// encodeInt int64 → number 或 bignumber
func encodeInt(i int64) *Value {
	if i >= -MaxSafeInt && i <= MaxSafeInt {
		return NewNumber(float64(i))
	}
	return NewBigNumber(strconv.FormatInt(i, 10))
}

// encodeUint uint64 → number 或 bignumber
func encodeUint(u uint64) *Value {
	if u <= MaxSafeInt {
		return NewNumber(float64(u))
	}
	return NewBigNumber(strconv.FormatUint(u, 10))
}

// encodeUint128 128 位无符号整数编码
func encodeUint128(hi, lo uint64) *Value {
	if hi == 0 {
		return encodeUint(lo)
	}
	// hi != 0 → 量级 ≥ 2^64，必然超阈值
	return NewBigNumber(u128Decimal(hi, lo))
}

// encodeInt128 128 位有符号整数编码（hi/lo 补码）
func encodeInt128(hi, lo uint64) *Value {
	// 落在 int64 范围内的走窄整数路径
	if hi == 0 && lo <= math.MaxInt64 {
		return encodeInt(int64(lo))
	}
	if hi == math.MaxUint64 && int64(lo) < 0 {
		return encodeInt(int64(lo))
	}
	if int64(hi) < 0 {
		// 负数: 128 位取负后转十进制，前缀负号
		nlo := -lo
		nhi := ^hi
		if nlo == 0 {
			nhi++
		}
		return NewBigNumber("-" + u128Decimal(nhi, nlo))
	}
	return NewBigNumber(u128Decimal(hi, lo))
}

// u128Decimal 128 位无符号整数 → 十进制字符串
//
// 反复以 1e9 为除数做 128/64 位除法（bits.Div64），每轮产出 9 位十进制，
// 直到高 64 位归零后由 strconv 收尾。最大 39 位数字。
func u128Decimal(hi, lo uint64) string {
	if hi == 0 {
		return strconv.FormatUint(lo, 10)
	}

	const chunk = 1_000_000_000 // 1e9

	var buf [40]byte
	pos := len(buf)

	for hi != 0 {
		qhi := hi / chunk
		rem := hi % chunk
		qlo, r := bits.Div64(rem, lo, chunk)
		hi, lo = qhi, qlo

		// 非最高段补零到 9 位
		for i := 0; i < 9; i++ {
			pos--
			buf[pos] = byte('0' + r%10)
			r /= 10
		}
	}

	for lo > 0 {
		pos--
		buf[pos] = byte('0' + lo%10)
		lo /= 10
	}

	return string(buf[pos:])
}

// ─── map 键折算 ───

// keyString 将已序列化的键值按其标量编码折算为对象键字符串。
// 数组/对象不能作为键（Structural 错误）。
func keyString(k *Value) (string, error) {
	switch k.Type() {
	case TypeNull:
		return "null", nil
	case TypeBool:
		if k.Bool() {
			return "true", nil
		}
		return "false", nil
	case TypeNumber:
		return formatNumber(k.Float64()), nil
	case TypeBigNumber:
		return k.Decimal(), nil
	case TypeString:
		return k.Str(), nil
	case TypeBytes:
		return base64String(k.Bytes()), nil
	default:
		return "", structuralf("map key must be a scalar, got %s", k.Type())
	}
}

// formatNumber double → 十进制字符串（整数快速路径与 Writer 保持一致）
func formatNumber(f float64) string {
	if f == math.Trunc(f) && f >= -1e15 && f <= 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
