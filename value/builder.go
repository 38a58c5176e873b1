package value

// Builder 约定：单次使用。Finish 之后任何继续操作都是 Structural 错误；
// Builder 不可跨并发序列化调用共享（每次调用各自新建，使用契约而非运行时保证）。

// ─── 数组 Builder ───

// ArrayBuilder 数组累加器
type ArrayBuilder struct {
	a         []*Value
	finalized bool
}

// NewArray 创建数组 Builder
func NewArray() *ArrayBuilder { return &ArrayBuilder{} }

// Append 追加一个元素
func (b *ArrayBuilder) Append(v *Value) error {
	if b.finalized {
		return structuralf("append to finalized array builder")
	}
	b.a = append(b.a, v)
	return nil
}

// Finish 定格为数组值。空 Builder 定格为空数组。
func (b *ArrayBuilder) Finish() (*Value, error) {
	if b.finalized {
		return nil, structuralf("finish already-finalized array builder")
	}
	b.finalized = true
	return &Value{t: TypeArray, a: b.a}, nil
}

// ─── 对象 Builder ───

// builderState 对象 Builder 状态机: expectKey → hasKey → expectKey → … → finalized
type builderState uint8

const (
	stateExpectKey builderState = iota // 等待下一个键
	stateHasKey                        // 已有挂起键，等待配对值
	stateFinalized                     // 已定格
)

// ObjectBuilder 对象累加器（服务 map 与 record/struct-variant 两条路径）
//
// 键值严格交替配对，状态机在每次变更调用时守卫：
//   - expectKey 收到值 → Structural 错误（值缺少前置键）
//   - hasKey 再收到键 → 覆盖挂起键（last-key-wins，测试钉住该行为）
//   - 挂起键未配对就 Finish → Structural 错误
//
// 已完成配对的重复键按插入顺序并存，Get 返回首个。
type ObjectBuilder struct {
	o       kvPairs
	pending string
	state   builderState
}

// NewObject 创建对象 Builder
func NewObject() *ObjectBuilder { return &ObjectBuilder{} }

// Key 以动态值作为键（按其标量编码折算为字符串；非标量键为 Structural 错误）
func (b *ObjectBuilder) Key(k *Value) error {
	s, err := keyString(k)
	if err != nil {
		return err
	}
	return b.KeyString(s)
}

// KeyString 以静态字符串作为键（record 字段名路径，不经过序列化）
func (b *ObjectBuilder) KeyString(k string) error {
	switch b.state {
	case stateFinalized:
		return structuralf("key on finalized object builder")
	case stateHasKey:
		// 连续两个键: 覆盖挂起键，状态不变
		b.pending = k
		return nil
	default:
		b.pending = k
		b.state = stateHasKey
		return nil
	}
}

// Value 为挂起键配对一个值
func (b *ObjectBuilder) Value(v *Value) error {
	switch b.state {
	case stateFinalized:
		return structuralf("value on finalized object builder")
	case stateExpectKey:
		return structuralf("missing key for a value")
	default:
		b.o.kvs = append(b.o.kvs, kv{k: b.pending, v: v})
		b.pending = ""
		b.state = stateExpectKey
		return nil
	}
}

// Field 键值一步配对（静态字段名便捷路径）
func (b *ObjectBuilder) Field(name string, v *Value) error {
	if err := b.KeyString(name); err != nil {
		return err
	}
	return b.Value(v)
}

// Finish 定格为对象值。仅在 expectKey 状态合法（不允许悬挂未配对键）。
func (b *ObjectBuilder) Finish() (*Value, error) {
	switch b.state {
	case stateFinalized:
		return nil, structuralf("finish already-finalized object builder")
	case stateHasKey:
		return nil, structuralf("finish with pending key %q", b.pending)
	default:
		b.state = stateFinalized
		return &Value{t: TypeObject, o: b.o}, nil
	}
}

// ─── 变体包装 ───

// WrapVariant 将已编码的载荷做单键包装: {name: payload}。
//
// 这是第二道外层编码：tuple/struct 变体的载荷先按普通数组/对象编码完成，
// 再整体包进 case 名之下，不折叠为一趟。case 名缺失为 Structural 错误。
func WrapVariant(name string, payload *Value) (*Value, error) {
	if name == "" {
		return nil, structuralf("variant wrap with no case name")
	}
	return &Value{t: TypeObject, o: kvPairs{kvs: []kv{{k: name, v: payload}}}}, nil
}
