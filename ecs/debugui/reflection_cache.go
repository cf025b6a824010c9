package debugui

import (
	"fmt"
	"reflect"
	"sync"
)

// FieldInfo describes one exported struct field.
type FieldInfo struct {
	Name      string
	Index     int
	IsPointer bool
}

// ReflectionCache memoizes the exported fields of component types.
type ReflectionCache struct {
	mu         sync.RWMutex
	fieldCache map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{fieldCache: make(map[reflect.Type][]FieldInfo)}
}

// GetFields returns the exported fields of t. Non-struct types have none.
func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fieldCache[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			fields = append(fields, FieldInfo{Name: f.Name, Index: i, IsPointer: f.Type.Kind() == reflect.Ptr})
		}
	}

	rc.mu.Lock()
	rc.fieldCache[t] = fields
	rc.mu.Unlock()
	return fields
}

var globalReflectionCache = NewReflectionCache()

// Field is one leaf of a component as shown by the inspector. Nested structs
// are flattened into dotted paths such as "Translation.X".
type Field struct {
	Path  string
	Value reflect.Value
	// Editable is false for fields reached through a pointer and for
	// components the inspector was told to leave alone.
	Editable bool
}

// String formats the current value.
func (f Field) String() string {
	if !f.Value.IsValid() {
		return "<invalid>"
	}
	if f.Value.Kind() == reflect.Ptr {
		if f.Value.IsNil() {
			return "nil"
		}
		return f.Value.Type().String()
	}
	return fmt.Sprintf("%v", f.Value.Interface())
}

// Set stores v, which must be a float64, int64, uint64, bool or string
// matching the field's kind. It reports whether the value was written.
func (f Field) Set(v any) bool {
	if !f.Editable || !f.Value.CanSet() {
		return false
	}
	switch x := v.(type) {
	case float64:
		if !f.Value.CanFloat() {
			return false
		}
		f.Value.SetFloat(x)
	case int64:
		if !f.Value.CanInt() {
			return false
		}
		f.Value.SetInt(x)
	case uint64:
		if !f.Value.CanUint() {
			return false
		}
		f.Value.SetUint(x)
	case bool:
		if f.Value.Kind() != reflect.Bool {
			return false
		}
		f.Value.SetBool(x)
	case string:
		if f.Value.Kind() != reflect.String {
			return false
		}
		f.Value.SetString(x)
	default:
		return false
	}
	return true
}

// ComponentFields flattens component, a pointer to a struct, into its leaf
// fields. Pointers to structs with exported fields are followed read-only.
func ComponentFields(component any, editable bool) []Field {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return []Field{{Path: v.Type().Name(), Value: v, Editable: editable && v.CanSet()}}
	}
	return appendFields(nil, "", v, editable)
}

func appendFields(out []Field, prefix string, v reflect.Value, editable bool) []Field {
	for _, info := range globalReflectionCache.GetFields(v.Type()) {
		fv := v.Field(info.Index)
		path := prefix + info.Name

		if info.IsPointer && !fv.IsNil() && fv.Elem().Kind() == reflect.Struct &&
			len(globalReflectionCache.GetFields(fv.Elem().Type())) > 0 {
			out = appendFields(out, path+".", fv.Elem(), false)
			continue
		}
		if fv.Kind() == reflect.Struct && len(globalReflectionCache.GetFields(fv.Type())) > 0 {
			out = appendFields(out, path+".", fv, editable)
			continue
		}
		out = append(out, Field{Path: path, Value: fv, Editable: editable && !info.IsPointer})
	}
	return out
}
