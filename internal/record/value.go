package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"
	"unicode/utf16"
)

// Value is a sealed interface representing the cell values a row can hold.
// Only Null, String, Int, Float, Bool, Array, and Object implement it.
type Value interface {
	recordValue() // Sealed - only these types implement it
}

// Null represents a JSON null or a missing SQL value.
type Null struct{}

func (Null) recordValue() {}

// MarshalJSON implements json.Marshaler for Null.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// String represents a string cell.
type String string

func (String) recordValue() {}

// Int represents an integer cell.
type Int int64

func (Int) recordValue() {}

// Float represents a non-integral numeric cell.
type Float float64

func (Float) recordValue() {}

// Bool represents a boolean cell.
type Bool bool

func (Bool) recordValue() {}

// Array represents a list of values. Nested rows are stored as an Array of
// Objects under the children field.
type Array []Value

func (Array) recordValue() {}

// Object is a single row: a map of field names to values.
// Use SortedKeys() for deterministic iteration.
type Object map[string]Value

func (Object) recordValue() {}

// Pair is a key-value pair for ergonomic Object construction.
type Pair struct {
	Key   string
	Value Value
}

// O is a shorthand for Pair.
// Example: NewObject(O("id", Int(1)), O("name", String("alice")))
func O(key string, value Value) Pair {
	return Pair{Key: key, Value: value}
}

// NewObject creates an Object from key-value pairs.
func NewObject(pairs ...Pair) Object {
	obj := make(Object, len(pairs))
	for _, p := range pairs {
		obj[p.Key] = p.Value
	}
	return obj
}

// Get returns the value stored under field, or Null if the field is absent.
func (obj Object) Get(field string) Value {
	if v, ok := obj[field]; ok && v != nil {
		return v
	}
	return Null{}
}

// Has reports whether field is present and not Null.
func (obj Object) Has(field string) bool {
	v, ok := obj[field]
	if !ok || v == nil {
		return false
	}
	_, isNull := v.(Null)
	return !isNull
}

// With returns a shallow copy of obj with field set to v.
// The receiver is never mutated.
func (obj Object) With(field string, v Value) Object {
	out := make(Object, len(obj)+1)
	for k, val := range obj {
		out[k] = val
	}
	out[field] = v
	return out
}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code units).
// Go's sort.Strings uses UTF-8 byte order, which differs for some inputs.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	n := min(len(a16), len(b16))
	for i := 0; i < n; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}

// Children returns the nested rows stored under name.
// Values that are not Objects are skipped; a missing field yields nil.
func Children(obj Object, name string) []Object {
	arr, ok := obj[name].(Array)
	if !ok {
		return nil
	}
	out := make([]Object, 0, len(arr))
	for _, v := range arr {
		if child, ok := v.(Object); ok {
			out = append(out, child)
		}
	}
	return out
}

// HasChildren reports whether obj stores an Array under name.
func HasChildren(obj Object, name string) bool {
	_, ok := obj[name].(Array)
	return ok
}

// WithChildren returns a copy of obj whose children field holds rows.
func WithChildren(obj Object, name string, rows []Object) Object {
	arr := make(Array, len(rows))
	for i, r := range rows {
		arr[i] = r
	}
	return obj.With(name, arr)
}

// Text returns the display form of a value: the form row keys and the
// built-in filters compare against.
func Text(v Value) string {
	switch val := v.(type) {
	case nil, Null:
		return ""
	case String:
		return string(val)
	case Int:
		return strconv.FormatInt(int64(val), 10)
	case Float:
		return formatFloat(float64(val))
	case Bool:
		return strconv.FormatBool(bool(val))
	default:
		b, err := MarshalJSON(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}

// Number returns the numeric form of a value and whether it has one.
// Strings are parsed, so CSV-sourced columns sort numerically too.
func Number(v Value) (float64, bool) {
	switch val := v.(type) {
	case Int:
		return float64(val), true
	case Float:
		return float64(val), true
	case Bool:
		if val {
			return 1, true
		}
		return 0, true
	case String:
		f, err := strconv.ParseFloat(string(val), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// FromGo converts a decoded Go value (from encoding/json, yaml.v3, or a
// database/sql scan) into a Value.
func FromGo(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case string:
		return String(val), nil
	case []byte:
		return String(string(val)), nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(val), nil
	case int8:
		return Int(val), nil
	case int16:
		return Int(val), nil
	case int32:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint8:
		return Int(val), nil
	case uint16:
		return Int(val), nil
	case uint32:
		return Int(val), nil
	case uint64:
		if val > math.MaxInt64 {
			return nil, fmt.Errorf("unsigned value out of int64 range: %d", val)
		}
		return Int(val), nil
	case float32:
		return numberFromFloat(float64(val)), nil
	case float64:
		return numberFromFloat(val), nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", val, err)
		}
		return Float(f), nil
	case time.Time:
		return String(val.UTC().Format(time.RFC3339Nano)), nil
	case []string:
		arr := make(Array, len(val))
		for i, elem := range val {
			arr[i] = String(elem)
		}
		return arr, nil
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			rv, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = rv
		}
		return arr, nil
	case map[string]any:
		obj := make(Object, len(val))
		for k, elem := range val {
			rv, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj[k] = rv
		}
		return obj, nil
	case map[any]any:
		obj := make(Object, len(val))
		for k, elem := range val {
			rv, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%v]: %w", k, err)
			}
			obj[fmt.Sprint(k)] = rv
		}
		return obj, nil
	case fmt.Stringer:
		return String(val.String()), nil
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}

// numberFromFloat keeps integral values as Int so that keys read from JSON
// ("id": 1) and YAML (id: 1) resolve to the same text.
func numberFromFloat(f float64) Value {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return Int(int64(f))
	}
	return Float(f)
}

// ToGo converts a Value back to plain Go data (for encoding/json output).
func ToGo(v Value) any {
	switch val := v.(type) {
	case nil, Null:
		return nil
	case String:
		return string(val)
	case Int:
		return int64(val)
	case Float:
		return float64(val)
	case Bool:
		return bool(val)
	case Array:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = ToGo(elem)
		}
		return out
	case Object:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = ToGo(elem)
		}
		return out
	default:
		return nil
	}
}

// Decode parses JSON bytes into a Value. Numbers without a fraction or
// exponent become Int.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return FromGo(raw)
}

// DecodeRows parses a JSON array of objects into rows.
func DecodeRows(data []byte) ([]Object, error) {
	v, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return RowsFromValue(v)
}

// RowsFromValue converts an Array of Objects into rows.
func RowsFromValue(v Value) ([]Object, error) {
	arr, ok := v.(Array)
	if !ok {
		return nil, fmt.Errorf("expected an array of rows, got %T", v)
	}
	rows := make([]Object, len(arr))
	for i, elem := range arr {
		obj, ok := elem.(Object)
		if !ok {
			return nil, fmt.Errorf("row %d: expected an object, got %T", i, elem)
		}
		rows[i] = obj
	}
	return rows, nil
}

// UnmarshalJSON implements json.Unmarshaler for Object.
func (obj *Object) UnmarshalJSON(data []byte) error {
	v, err := Decode(data)
	if err != nil {
		return err
	}
	o, ok := v.(Object)
	if !ok {
		return fmt.Errorf("expected JSON object, got %T", v)
	}
	*obj = o
	return nil
}

// MarshalJSON implements json.Marshaler for Object with sorted keys.
// This is not canonical marshaling; use MarshalCanonical for fingerprints.
func (obj Object) MarshalJSON() ([]byte, error) {
	return MarshalJSON(obj)
}

// MarshalJSON marshals any Value to JSON bytes.
func MarshalJSON(v Value) ([]byte, error) {
	switch val := v.(type) {
	case nil, Null:
		return []byte("null"), nil
	case String:
		return json.Marshal(string(val))
	case Int:
		return json.Marshal(int64(val))
	case Float:
		return json.Marshal(float64(val))
	case Bool:
		return json.Marshal(bool(val))
	case Array:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := MarshalJSON(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case Object:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, k := range val.SortedKeys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, fmt.Errorf("marshal key %q: %w", k, err)
			}
			buf.Write(kb)
			buf.WriteByte(':')
			vb, err := MarshalJSON(val[k])
			if err != nil {
				return nil, fmt.Errorf("marshal value for key %q: %w", k, err)
			}
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown Value type: %T", v)
	}
}
