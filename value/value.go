// Package value 提供结构化值到动态值树的序列化引擎
//
// 核心是 Serialize: 访问者式地走完一棵静态类型的结构化值树（标量、
// Option、序列、元组、map、record、变体），产出一棵宿主中立的动态值树
// （只含 null/bool/number/bignumber/string/bytes/array/object 八种形态），
// 供无静态类型系统的环境（JSON 式运行时）直接消费。
//
// 设计原则:
//   - 封闭标签联合: 源值形态集合固定有限，编译期穷举分派
//   - 精度守恒: 整数量级超出 double 的 53 位尾数（2^53−1）时回退为
//     十进制字符串承载的 bignumber，绝不悄悄丢精度
//   - 失败即中止: 任何子值序列化失败立即传播，不产出半成品树
//   - Builder 状态机: 对象构建的键值配对由显式状态字段守卫，
//     非法转移是可断言的 Structural 错误
//
// 用法:
//
//	src := value.Record(
//	    value.F("name", value.Str("event")),
//	    value.F("data", value.MapOf(
//	        value.KV(value.Str("c"), value.Int(1)),
//	        value.KV(value.Str("d"), value.Int(2)),
//	    )),
//	)
//	v, err := value.Serialize(src)  // {"name":"event","data":{"c":1,"d":2}}
package value

// Type 动态值类型
type Type uint8

const (
	TypeNull      Type = iota // null
	TypeBool                  // true / false
	TypeNumber                // IEEE-754 double
	TypeBigNumber             // 超精度整数（十进制字符串承载）
	TypeString                // 字符串
	TypeBytes                 // 字节缓冲
	TypeArray                 // 有序数组
	TypeObject                // 有序键值对对象
)

// String 返回类型名称
func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeNumber:
		return "number"
	case TypeBigNumber:
		return "bignumber"
	case TypeString:
		return "string"
	case TypeBytes:
		return "bytes"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value 动态值树
//
// 无类型宿主（JSON 式运行时）能直接消费的中间树：只有 null/bool/number/
// bignumber/string/bytes/array/object 八种形态。Serialize 以及 Builder
// 在构建期增量填充，Finish 之后视为不可变。
//
// 结构布局沿用 yak json.Value 的紧凑多字段模式（o/a/s/t 共存，按 t 取用）：
//   - o: TypeObject 的有序键值对（保持插入顺序）
//   - a: TypeArray 的子值
//   - s: TypeString 的字符串 / TypeBigNumber 的十进制字面量
//   - by: TypeBytes 的字节缓冲
//   - f: TypeNumber 的 double
//   - t: 值类型
//   - b: TypeBool 的布尔值
type Value struct {
	o  kvPairs
	a  []*Value
	s  string
	by []byte
	f  float64
	t  Type
	b  bool
}

// kvPairs 有序键值对（对象保持插入顺序，map 语义要求）
type kvPairs struct {
	kvs []kv
}

type kv struct {
	k string
	v *Value
}

// ─── 构造 ───

// null/true/false 全局单例（借鉴 fastjson 单例模式，构建后不可变所以安全）
var (
	nullValue  = &Value{t: TypeNull}
	trueValue  = &Value{t: TypeBool, b: true}
	falseValue = &Value{t: TypeBool, b: false}
)

// NewNull 返回 null 值
func NewNull() *Value { return nullValue }

// NewBool 返回布尔值
func NewBool(b bool) *Value {
	if b {
		return trueValue
	}
	return falseValue
}

// NewNumber 返回 double 数值
func NewNumber(f float64) *Value { return &Value{t: TypeNumber, f: f} }

// NewBigNumber 返回超精度数值（lit 为十进制字面量，可带负号）
func NewBigNumber(lit string) *Value { return &Value{t: TypeBigNumber, s: lit} }

// NewString 返回字符串值
func NewString(s string) *Value { return &Value{t: TypeString, s: s} }

// NewBytes 返回字节缓冲值（拷贝 b，调用方可继续复用原切片）
func NewBytes(b []byte) *Value {
	cp := make([]byte, len(b))
	copy(cp, b)
	return &Value{t: TypeBytes, by: cp}
}

// ─── 类型判断 ───

// Type 返回值类型
func (v *Value) Type() Type {
	if v == nil {
		return TypeNull
	}
	return v.t
}

// IsNull 是否为 null
func (v *Value) IsNull() bool { return v == nil || v.t == TypeNull }

// IsObject 是否为对象
func (v *Value) IsObject() bool { return v != nil && v.t == TypeObject }

// IsArray 是否为数组
func (v *Value) IsArray() bool { return v != nil && v.t == TypeArray }

// ─── 值获取（安全: 类型不匹配返回零值） ───

// Bool 获取布尔值
func (v *Value) Bool() bool {
	if v == nil || v.t != TypeBool {
		return false
	}
	return v.b
}

// Float64 获取 double 数值
func (v *Value) Float64() float64 {
	if v == nil || v.t != TypeNumber {
		return 0
	}
	return v.f
}

// Str 获取字符串值
func (v *Value) Str() string {
	if v == nil || v.t != TypeString {
		return ""
	}
	return v.s
}

// Bytes 获取字节缓冲（直接引用内部切片，调用方不得修改）
func (v *Value) Bytes() []byte {
	if v == nil || v.t != TypeBytes {
		return nil
	}
	return v.by
}

// Decimal 获取超精度数值的十进制字面量
func (v *Value) Decimal() string {
	if v == nil || v.t != TypeBigNumber {
		return ""
	}
	return v.s
}

// Get 按键在对象中查找（线性扫描，属性包通常字段少；重复键返回首个）
func (v *Value) Get(key string) *Value {
	if v == nil || v.t != TypeObject {
		return nil
	}
	for i := range v.o.kvs {
		if v.o.kvs[i].k == key {
			return v.o.kvs[i].v
		}
	}
	return nil
}

// At 按下标获取数组元素，越界返回 nil
func (v *Value) At(i int) *Value {
	if v == nil || v.t != TypeArray || i < 0 || i >= len(v.a) {
		return nil
	}
	return v.a[i]
}

// Len 返回数组或对象的元素数量
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.t {
	case TypeArray:
		return len(v.a)
	case TypeObject:
		return len(v.o.kvs)
	default:
		return 0
	}
}

// ArrayEach 遍历数组元素，返回 false 停止遍历
func (v *Value) ArrayEach(fn func(i int, val *Value) bool) {
	if v == nil || v.t != TypeArray {
		return
	}
	for i, elem := range v.a {
		if !fn(i, elem) {
			return
		}
	}
}

// ObjectEach 遍历对象键值对（保持插入顺序），返回 false 停止遍历
func (v *Value) ObjectEach(fn func(key string, val *Value) bool) {
	if v == nil || v.t != TypeObject {
		return
	}
	for i := range v.o.kvs {
		if !fn(v.o.kvs[i].k, v.o.kvs[i].v) {
			return
		}
	}
}
