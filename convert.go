package strif

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	timeType       = reflect.TypeFor[time.Time]()
	valueType      = reflect.TypeFor[Value]()
	jsonNumberType = reflect.TypeFor[json.Number]()
)

// ValueOf converts plain Go data into a [Value].
//
// Strings, booleans, every integer and float kind, json.Number and time.Time
// map to their scalar kinds. Maps become [KindMap] (non-string keys are
// formatted with fmt), slices and arrays become [KindList] ([]byte is treated
// as a string), and structs become maps of their exported fields keyed by the
// json or yaml tag name, falling back to the field name. Pointers and
// interfaces are followed; nil becomes null. A pointer, map or slice that
// refers back to one of its own ancestors becomes null. Anything else is
// wrapped with [Opaque].
func ValueOf(x any) Value {
	switch v := x.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case *Value:
		if v == nil {
			return Null()
		}
		return *v
	case string:
		return String(v)
	case bool:
		return Bool(v)
	case int:
		return Number(float64(v))
	case int64:
		return Number(float64(v))
	case float64:
		return Number(v)
	case json.Number:
		return jsonNumber(v)
	case time.Time:
		return Time(v)
	}
	return reflectValue(reflect.ValueOf(x))
}

func reflectValue(rv reflect.Value) Value {
	var c converter
	return c.value(rv)
}

func jsonNumber(n json.Number) Value {
	f, err := n.Float64()
	if err != nil {
		return String(n.String())
	}
	return Number(f)
}

// visit identifies a reference held on the current conversion path. Slices
// carry their length so that a sub-slice sharing a backing array is distinct.
type visit struct {
	ptr uintptr
	typ reflect.Type
	n   int
}

// converter walks a reflect graph depth first. Active holds the references on
// the path from the root to the node being converted.
type converter struct {
	active map[visit]struct{}
}

func (c *converter) enter(rv reflect.Value) bool {
	key := visit{ptr: rv.Pointer(), typ: rv.Type()}
	if rv.Kind() == reflect.Slice {
		key.n = rv.Len()
	}
	if _, ok := c.active[key]; ok {
		return false
	}
	if c.active == nil {
		c.active = make(map[visit]struct{})
	}
	c.active[key] = struct{}{}
	return true
}

func (c *converter) leave(rv reflect.Value) {
	key := visit{ptr: rv.Pointer(), typ: rv.Type()}
	if rv.Kind() == reflect.Slice {
		key.n = rv.Len()
	}
	delete(c.active, key)
}

func (c *converter) value(rv reflect.Value) Value {
	if v, ok := special(rv); ok {
		return v
	}
	switch rv.Kind() {
	case reflect.Invalid:
		return Null()
	case reflect.Interface:
		if rv.IsNil() {
			return Null()
		}
		return c.value(rv.Elem())
	case reflect.Pointer:
		if rv.IsNil() || !c.enter(rv) {
			return Null()
		}
		defer c.leave(rv)
		return c.value(rv.Elem())
	case reflect.String:
		return String(rv.String())
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float())
	case reflect.Slice:
		if rv.IsNil() {
			return Null()
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return String(string(rv.Bytes()))
		}
		if rv.Len() > 0 {
			if !c.enter(rv) {
				return Null()
			}
			defer c.leave(rv)
		}
		return c.list(rv)
	case reflect.Array:
		return c.list(rv)
	case reflect.Map:
		if rv.IsNil() || !c.enter(rv) {
			return Null()
		}
		defer c.leave(rv)
		m := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[mapKey(iter.Key())] = c.value(iter.Value())
		}
		return Map(m)
	case reflect.Struct:
		m := make(map[string]Value, rv.NumField())
		c.fields(rv, m)
		return Map(m)
	default:
		if rv.CanInterface() {
			return Opaque(rv.Interface())
		}
		return Null()
	}
}

// special converts the struct and string types that carry their own meaning.
func special(rv reflect.Value) (Value, bool) {
	if !rv.IsValid() {
		return Value{}, false
	}
	switch rv.Type() {
	case timeType:
		if !rv.CanInterface() {
			return Null(), true
		}
		return Time(rv.Interface().(time.Time)), true
	case valueType:
		if !rv.CanInterface() {
			return Null(), true
		}
		return rv.Interface().(Value), true
	case jsonNumberType:
		return jsonNumber(json.Number(rv.String())), true
	}
	return Value{}, false
}

func (c *converter) list(rv reflect.Value) Value {
	items := make([]Value, rv.Len())
	for i := range items {
		items[i] = c.value(rv.Index(i))
	}
	return List(items...)
}

func (c *converter) fields(rv reflect.Value, into map[string]Value) {
	rt := rv.Type()
	for i := range rt.NumField() {
		field := rt.Field(i)
		fv := rv.Field(i)
		if promoted(field) {
			c.embedded(fv, into)
			continue
		}
		if name, ok := fieldName(field); ok {
			into[name] = c.value(fv)
		}
	}
}

func (c *converter) embedded(fv reflect.Value, into map[string]Value) {
	if fv.Kind() == reflect.Pointer {
		if fv.IsNil() || !c.enter(fv) {
			return
		}
		defer c.leave(fv)
		fv = fv.Elem()
	}
	if fv.Kind() == reflect.Struct {
		c.fields(fv, into)
	}
}

func mapKey(k reflect.Value) string {
	for k.Kind() == reflect.Interface && !k.IsNil() {
		k = k.Elem()
	}
	if k.Kind() == reflect.String {
		return k.String()
	}
	if !k.CanInterface() {
		return fmt.Sprint(k)
	}
	return fmt.Sprint(k.Interface())
}

// promoted reports whether an embedded struct's fields are flattened into the
// outer struct.
func promoted(field reflect.StructField) bool {
	return field.Anonymous && indirectType(field.Type).Kind() == reflect.Struct && fieldTag(field) == ""
}

func fieldName(field reflect.StructField) (string, bool) {
	if !field.IsExported() {
		return "", false
	}
	name := fieldTag(field)
	if name == "-" {
		return "", false
	}
	if name == "" {
		name = field.Name
	}
	return name, true
}

func fieldTag(field reflect.StructField) string {
	for _, key := range []string{"json", "yaml"} {
		tag, ok := field.Tag.Lookup(key)
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name != "" {
			return name
		}
	}
	return ""
}

func indirectType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// indirect follows pointers and interfaces. A nil reference yields the zero
// reflect.Value.
func indirect(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

// asValue reports whether rv holds a [Value], following pointers.
func asValue(rv reflect.Value) (Value, bool) {
	rv = indirect(rv)
	if !rv.IsValid() || rv.Type() != valueType || !rv.CanInterface() {
		return Value{}, false
	}
	return rv.Interface().(Value), true
}

// child looks key up one level below rv without converting anything else,
// with the same keys [Value.Get] would accept on the converted value.
func child(rv reflect.Value, key string) (reflect.Value, bool) {
	rv = indirect(rv)
	if !rv.IsValid() {
		return reflect.Value{}, false
	}
	if _, ok := special(rv); ok {
		return reflect.Value{}, false
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		return mapChild(rv, key)
	case reflect.Slice:
		if rv.IsNil() || rv.Type().Elem().Kind() == reflect.Uint8 {
			return reflect.Value{}, false
		}
		return indexChild(rv, key)
	case reflect.Array:
		return indexChild(rv, key)
	case reflect.Struct:
		return fieldChild(rv, key, nil)
	default:
		return reflect.Value{}, false
	}
}

func mapChild(rv reflect.Value, key string) (reflect.Value, bool) {
	kt := rv.Type().Key()
	if kt.Kind() == reflect.String {
		v := rv.MapIndex(reflect.ValueOf(key).Convert(kt))
		return v, v.IsValid()
	}
	iter := rv.MapRange()
	for iter.Next() {
		if mapKey(iter.Key()) == key {
			return iter.Value(), true
		}
	}
	return reflect.Value{}, false
}

func indexChild(rv reflect.Value, key string) (reflect.Value, bool) {
	if key == "length" {
		return reflect.ValueOf(rv.Len()), true
	}
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 || i >= rv.Len() || strconv.Itoa(i) != key {
		return reflect.Value{}, false
	}
	return rv.Index(i), true
}

// fieldChild finds the field named key, searching promoted fields the way
// [ValueOf] flattens them: a later field wins over an earlier one.
func fieldChild(rv reflect.Value, key string, seen map[uintptr]bool) (reflect.Value, bool) {
	var (
		found reflect.Value
		hit   bool
	)
	rt := rv.Type()
	for i := range rt.NumField() {
		field := rt.Field(i)
		fv := rv.Field(i)
		if promoted(field) {
			if fv.Kind() == reflect.Pointer {
				if fv.IsNil() || seen[fv.Pointer()] {
					continue
				}
				if seen == nil {
					seen = make(map[uintptr]bool)
				}
				seen[fv.Pointer()] = true
				fv = fv.Elem()
			}
			if v, ok := fieldChild(fv, key, seen); ok {
				found, hit = v, true
			}
			continue
		}
		if name, ok := fieldName(field); ok && name == key {
			found, hit = fv, true
		}
	}
	return found, hit
}

// truthy reports whether rv would convert to a truthy [Value], converting
// only scalars.
func truthy(rv reflect.Value) bool {
	if v, ok := asValue(rv); ok {
		return v.Truthy()
	}
	rv = indirect(rv)
	if !rv.IsValid() {
		return false
	}
	switch rv.Kind() {
	case reflect.Map:
		return !rv.IsNil()
	case reflect.Slice:
		if rv.IsNil() {
			return false
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return rv.Len() > 0
		}
		return true
	case reflect.Array, reflect.Struct:
		return true
	default:
		return reflectValue(rv).Truthy()
	}
}
