package value

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"
)

// Sourcer 自定义捕获接口。实现方完全控制自身的结构化形态。
type Sourcer interface {
	AsSource() Source
}

// Capture 将任意 Go 值捕获为结构化源值
//
// 支持:
//   - 基础类型: bool, string, int*, uint*, float*, []byte
//   - 复合类型: struct, map, slice, array, pointer
//   - 接口: Sourcer、error（取 Error() 字符串）
//   - struct tag: `json:"name"` 重命名、`json:"-"` 跳过
//   - time.Time → RFC3339Nano 字符串，time.Duration → 字符串形态
//
// 指针映射为 Option: nil → None，非 nil → Some(解引用捕获)。
// 不可捕获的类型（chan、func、complex）延迟到序列化期报 Custom 错误，
// 捕获本身永不失败。
func Capture(v any) Source {
	return capture(reflect.ValueOf(v), 0)
}

// captureFailed 构造序列化期才报错的占位源
func captureFailed(format string, args ...any) Source {
	msg := fmt.Sprintf(format, args...)
	return Defer(func() (Source, error) {
		return Source{}, fmt.Errorf("%s", msg)
	})
}

func capture(rv reflect.Value, depth int) Source {
	// nil interface / invalid
	if !rv.IsValid() {
		return Null()
	}
	if depth > MaxDepth {
		return captureFailed("capture: nesting exceeds max depth %d", MaxDepth)
	}

	// 快速路径: 具体类型直接匹配（避免 Kind() 反射开销）
	if rv.CanInterface() {
		switch val := rv.Interface().(type) {
		case Source:
			return val
		case Sourcer:
			return val.AsSource()
		case time.Time:
			return Str(val.Format(time.RFC3339Nano))
		case time.Duration:
			return Str(val.String())
		case error:
			return Str(val.Error())
		case []byte:
			return Bytes(val)
		case string:
			return Str(val)
		case bool:
			return Bool(val)
		case int:
			return Int(val)
		case int64:
			return Int64(val)
		case float64:
			return Float64(val)
		case map[string]any:
			return captureMapStringAny(val, depth)
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return Float64(rv.Float())
	case reflect.String:
		return Str(rv.String())

	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return None()
		}
		if rv.Kind() == reflect.Pointer {
			return Some(capture(rv.Elem(), depth+1))
		}
		return capture(rv.Elem(), depth+1)

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return Bytes(rv.Bytes())
		}
		items := make([]Source, rv.Len())
		for i := range items {
			items[i] = capture(rv.Index(i), depth+1)
		}
		return Seq(items...)

	case reflect.Map:
		return captureMap(rv, depth)

	case reflect.Struct:
		return captureStruct(rv, depth)

	default:
		return captureFailed("capture: unsupported kind %s", rv.Kind())
	}
}

// captureMapStringAny map[string]any 快速路径（跳过通用反射）
func captureMapStringAny(m map[string]any, depth int) Source {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]Pair, len(keys))
	for i, k := range keys {
		pairs[i] = KV(Str(k), capture(reflect.ValueOf(m[k]), depth+1))
	}
	return MapOf(pairs...)
}

// captureMap 通用 map 捕获
//
// Go map 迭代顺序随机，按键的显示形态排序保证捕获结果确定。
func captureMap(rv reflect.Value, depth int) Source {
	type entry struct {
		order string
		pair  Pair
	}
	entries := make([]entry, 0, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		k := capture(iter.Key(), depth+1)
		v := capture(iter.Value(), depth+1)
		entries = append(entries, entry{order: fmt.Sprint(iter.Key().Interface()), pair: KV(k, v)})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].order < entries[j].order })

	pairs := make([]Pair, len(entries))
	for i, e := range entries {
		pairs[i] = e.pair
	}
	return MapOf(pairs...)
}

// ─── struct 捕获 ───

// structFieldInfo 预解析的字段元数据（含 json tag）
type structFieldInfo struct {
	name  string
	index int
}

// structFieldCache 字段元数据缓存（按类型解析一次）
var structFieldCache sync.Map // reflect.Type → []structFieldInfo

func getStructFields(t reflect.Type) []structFieldInfo {
	if cached, ok := structFieldCache.Load(t); ok {
		return cached.([]structFieldInfo)
	}
	fields := buildStructFields(t)
	structFieldCache.Store(t, fields)
	return fields
}

func buildStructFields(t reflect.Type) []structFieldInfo {
	fields := make([]structFieldInfo, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("json"); ok {
			if tag == "-" {
				continue
			}
			if comma := strings.IndexByte(tag, ','); comma >= 0 {
				tag = tag[:comma]
			}
			if tag != "" {
				name = tag
			}
		}
		fields = append(fields, structFieldInfo{name: name, index: i})
	}
	return fields
}

// captureStruct struct → record（字段声明顺序即输出顺序）
func captureStruct(rv reflect.Value, depth int) Source {
	infos := getStructFields(rv.Type())
	fields := make([]Field, len(infos))
	for i, info := range infos {
		fields[i] = F(info.name, capture(rv.Field(info.index), depth+1))
	}
	return Record(fields...)
}
