package event

import "github.com/uniyakcom/pulse/value"

// Prop 一条命名属性
type Prop struct {
	Key string
	Val value.Source
}

// P 构造属性（值经反射捕获，任意 Go 类型）
func P(key string, v any) Prop {
	return Prop{Key: key, Val: value.Capture(v)}
}

// PS 构造属性（显式结构化源值，零反射）
func PS(key string, src value.Source) Prop {
	return Prop{Key: key, Val: src}
}

// Props 有序属性包（保持追加顺序，编码后对象键序一致）
type Props []Prop

// Add 追加属性
func (p *Props) Add(key string, v any) {
	*p = append(*p, P(key, v))
}

// Get 按键查找属性值，重复键返回首个
func (p Props) Get(key string) (value.Source, bool) {
	for i := range p {
		if p[i].Key == key {
			return p[i].Val, true
		}
	}
	return value.Source{}, false
}

// Encode 将属性包整体编码为单个对象
//
// 每个属性值各自经 Serialize 编码；任一属性失败立即中止并传播，
// 调用方（runtime 层）负责降级兜底，这里不做局部挽救。
func (p Props) Encode() (*value.Value, error) {
	b := value.NewObject()
	for i := range p {
		v, err := value.Serialize(p[i].Val)
		if err != nil {
			return nil, err
		}
		if err := b.Field(p[i].Key, v); err != nil {
			return nil, err
		}
	}
	return b.Finish()
}
