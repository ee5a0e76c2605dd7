package table

import (
	"reflect"
	"strconv"

	"github.com/roach88/tablestate/internal/record"
)

// DefaultRowKeyField is the field read when no RowKey is configured.
const DefaultRowKeyField = "key"

// RowKey resolves the unique key of a row. Func takes precedence over
// Field. An empty key means "missing": the row falls back to its
// positional index and a warning is recorded.
type RowKey struct {
	Field string
	Func  func(rec record.Object, index int) string
}

// KeyField returns a RowKey reading the given field.
func KeyField(field string) RowKey {
	return RowKey{Field: field}
}

// KeyFunc returns a RowKey computed by fn.
func KeyFunc(fn func(rec record.Object, index int) string) RowKey {
	return RowKey{Func: fn}
}

// Resolve returns the row's key. The boolean is false when the key was
// missing and the positional index was used instead. Resolve does not see
// other rows; the table's key table also moves duplicates to their index.
func (k RowKey) Resolve(rec record.Object, index int) (string, bool) {
	var key string
	if k.Func != nil {
		key = k.Func(rec, index)
	} else {
		field := k.Field
		if field == "" {
			field = DefaultRowKeyField
		}
		if rec.Has(field) {
			key = record.Text(rec.Get(field))
		}
	}
	if key == "" {
		return strconv.Itoa(index), false
	}
	return key, true
}

// FlattenRows expands the row tree depth-first: each parent precedes its
// children.
func FlattenRows(data []record.Object, childrenName string) []record.Object {
	out := make([]record.Object, 0, len(data))
	var walk func(rows []record.Object)
	walk = func(rows []record.Object) {
		for _, r := range rows {
			out = append(out, r)
			if kids := record.Children(r, childrenName); len(kids) > 0 {
				walk(kids)
			}
		}
	}
	walk(data)
	return out
}

// positionalKey is the fallback key of the row at index. The index is
// prefixed with "#" when a row already owns it as its real key.
func positionalKey(index int, owned map[string]int) string {
	key := strconv.Itoa(index)
	if _, taken := owned[key]; taken {
		return "#" + key
	}
	return key
}

// rowID is the identity of a row object. Sorting, filtering and paging
// move rows around but hand out the same objects.
func rowID(rec record.Object) uintptr {
	return reflect.ValueOf(rec).Pointer()
}
