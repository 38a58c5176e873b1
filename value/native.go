package value

import "encoding/json"

// Interface 将动态值树一次性转换为宿主原生表示
//
// 按 §设计约定，整棵树只在最外层调用边界转换一次（zap 适配等宿主侧
// 消费方使用）。映射:
//   - null → nil
//   - bool / number / string → 对应原生类型
//   - bignumber → json.Number（保留"数字身份 + 字符串承载"双重属性）
//   - bytes → []byte 副本
//   - array → []any
//   - object → map[string]any（宿主原生 map 不保序；需要保序的消费方
//     应直接遍历 Value 本身）
func (v *Value) Interface() any {
	switch v.Type() {
	case TypeNull:
		return nil
	case TypeBool:
		return v.b
	case TypeNumber:
		return v.f
	case TypeBigNumber:
		return json.Number(v.s)
	case TypeString:
		return v.s
	case TypeBytes:
		cp := make([]byte, len(v.by))
		copy(cp, v.by)
		return cp
	case TypeArray:
		out := make([]any, len(v.a))
		for i, elem := range v.a {
			out[i] = elem.Interface()
		}
		return out
	default: // TypeObject
		out := make(map[string]any, len(v.o.kvs))
		for i := range v.o.kvs {
			k := v.o.kvs[i].k
			if _, dup := out[k]; dup {
				continue // 重复键保留首个，与 Get 语义一致
			}
			out[k] = v.o.kvs[i].v.Interface()
		}
		return out
	}
}
