package value

// Kind 结构化源值形态
//
// 封闭标签联合：形态集合固定且有限，serialize 按 kind 穷举分派，
// 不走开放式动态分发。
type Kind uint8

const (
	KindNull    Kind = iota // 匿名 unit / None / 命名空标记，统一编码为 null
	KindBool                // 布尔
	KindInt                 // 8/16/32/64 位有符号整数（统一收敛到 int64）
	KindUint                // 8/16/32/64 位无符号整数（统一收敛到 uint64）
	KindInt128              // 128 位有符号整数（补码 hi/lo）
	KindUint128             // 128 位无符号整数（hi/lo）
	KindFloat               // 32/64 位浮点（统一加宽到 float64）
	KindChar                // 单字符
	KindString              // 字符串
	KindBytes               // 字节序列
	KindSome                // Option::Some 包装
	KindSeq                 // 序列 / 元组（编码方式相同）
	KindMap                 // 有序键值对，键可为任意可序列化标量
	KindRecord              // 结构体：静态字段名 + 值
	KindVariant             // 枚举分支：case 名 + 载荷
	KindDefer               // 延迟求值源，可在序列化期拒绝自身
)

// variantForm 变体载荷形态
type variantForm uint8

const (
	variantUnit    variantForm = iota // 无载荷 → case 名字符串
	variantNewtype                    // 单个匿名载荷 → {case: payload}
	variantTuple                      // 多个匿名载荷 → {case: [...]}
	variantStruct                     // 命名字段载荷 → {case: {...}}
)

// Source 结构化源值（输入侧标签联合）
//
// 字段按 kind 取用，零值即 KindNull。构造后不可变，可安全跨 goroutine
// 复用（每次 Serialize 调用独立，不共享可变状态）。
type Source struct {
	kind   Kind
	vt     variantForm
	b      bool
	i      int64
	u      uint64   // KindUint 值 / KindUint128 低 64 位 / KindInt128 低 64 位
	hi     uint64   // 128 位整数高 64 位（Int128 为补码表示）
	f      float64
	r      rune
	s      string   // KindString 值 / KindChar 不用 / KindVariant 的 case 名
	by     []byte
	kids   []Source // KindSeq 元素 / KindSome 单元素 / variantTuple 载荷
	pairs  []Pair   // KindMap
	fields []Field  // KindRecord / variantStruct
	fn     func() (Source, error)
}

// Pair map 的一对键值（键本身也是源值，序列化后按标量编码折算为字符串）
type Pair struct {
	K Source
	V Source
}

// Field 结构体字段（字段名是编译期字符串常量，不经过序列化）
type Field struct {
	Name string
	Val  Source
}

// Kind 返回源值形态
func (s Source) Kind() Kind { return s.kind }

// ─── 标量构造 ───

// Null 匿名 unit（"无值"）
func Null() Source { return Source{kind: KindNull} }

// None Option 的空分支，与 Null 同样编码为 null
func None() Source { return Source{kind: KindNull} }

// Marker 命名空标记（仅有名字的零字段类型），同样编码为 null。
// 注意与无载荷变体的不对称：匿名/命名空标记 → null，无载荷变体 → case 名字符串。
func Marker(name string) Source { _ = name; return Source{kind: KindNull} }

// Bool 布尔
func Bool(b bool) Source { return Source{kind: KindBool, b: b} }

// Int8 8 位有符号整数
func Int8(v int8) Source { return Source{kind: KindInt, i: int64(v)} }

// Int16 16 位有符号整数
func Int16(v int16) Source { return Source{kind: KindInt, i: int64(v)} }

// Int32 32 位有符号整数
func Int32(v int32) Source { return Source{kind: KindInt, i: int64(v)} }

// Int64 64 位有符号整数
func Int64(v int64) Source { return Source{kind: KindInt, i: v} }

// Int 平台整数
func Int(v int) Source { return Source{kind: KindInt, i: int64(v)} }

// Uint8 8 位无符号整数
func Uint8(v uint8) Source { return Source{kind: KindUint, u: uint64(v)} }

// Uint16 16 位无符号整数
func Uint16(v uint16) Source { return Source{kind: KindUint, u: uint64(v)} }

// Uint32 32 位无符号整数
func Uint32(v uint32) Source { return Source{kind: KindUint, u: uint64(v)} }

// Uint64 64 位无符号整数
func Uint64(v uint64) Source { return Source{kind: KindUint, u: v} }

// Uint 平台无符号整数
func Uint(v uint) Source { return Source{kind: KindUint, u: uint64(v)} }

// Int128 128 位有符号整数（hi/lo 补码表示: 值 = hi·2^64 + lo）
func Int128(hi int64, lo uint64) Source {
	return Source{kind: KindInt128, hi: uint64(hi), u: lo}
}

// Uint128 128 位无符号整数（值 = hi·2^64 + lo）
func Uint128(hi, lo uint64) Source {
	return Source{kind: KindUint128, hi: hi, u: lo}
}

// Float32 32 位浮点（加宽到 double 后原样传递）
func Float32(f float32) Source { return Source{kind: KindFloat, f: float64(f)} }

// Float64 64 位浮点
func Float64(f float64) Source { return Source{kind: KindFloat, f: f} }

// Char 单字符（编码为该码点的最小 UTF-8 字符串）
func Char(r rune) Source { return Source{kind: KindChar, r: r} }

// Str 字符串
func Str(s string) Source { return Source{kind: KindString, s: s} }

// Bytes 字节序列（编码为字节缓冲，不是字符串）
func Bytes(b []byte) Source { return Source{kind: KindBytes, by: b} }

// ─── 复合构造 ───

// Some Option 的有值分支，编码结果与内部值单独编码完全一致
func Some(inner Source) Source {
	return Source{kind: KindSome, kids: []Source{inner}}
}

// Seq 序列 / 元组（定长元组与变长序列编码方式相同）
func Seq(items ...Source) Source {
	return Source{kind: KindSeq, kids: items}
}

// MapOf 有序 map，键可为任意可序列化标量
func MapOf(pairs ...Pair) Source {
	return Source{kind: KindMap, pairs: pairs}
}

// KV 构造 map 键值对
func KV(k, v Source) Pair { return Pair{K: k, V: v} }

// Record 结构体（静态字段名 + 值，字段顺序即输出顺序）
func Record(fields ...Field) Source {
	return Source{kind: KindRecord, fields: fields}
}

// F 构造结构体字段
func F(name string, v Source) Field { return Field{Name: name, Val: v} }

// ─── 变体构造 ───

// CaseUnit 无载荷变体 → 编码为 case 名字符串
func CaseUnit(name string) Source {
	return Source{kind: KindVariant, vt: variantUnit, s: name}
}

// CaseNewtype 单匿名载荷变体 → {name: payload}
func CaseNewtype(name string, payload Source) Source {
	return Source{kind: KindVariant, vt: variantNewtype, s: name, kids: []Source{payload}}
}

// CaseTuple 多匿名载荷变体 → {name: [...]}（载荷先按序列编码，再做单键包装）
func CaseTuple(name string, items ...Source) Source {
	return Source{kind: KindVariant, vt: variantTuple, s: name, kids: items}
}

// CaseStruct 命名字段变体 → {name: {...}}（载荷先按结构体编码，再做单键包装）
func CaseStruct(name string, fields ...Field) Source {
	return Source{kind: KindVariant, vt: variantStruct, s: name, fields: fields}
}

// ─── 延迟源 ───

// Defer 延迟求值源。fn 在序列化期调用，返回 error 表示该子值拒绝
// 序列化，整个顶层 Serialize 立即中止并传播该错误（Custom 类别）。
func Defer(fn func() (Source, error)) Source {
	return Source{kind: KindDefer, fn: fn}
}
