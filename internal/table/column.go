package table

import "strconv"

// FlatColumn is one node of the column tree after key resolution.
type FlatColumn struct {
	Key    string
	Depth  int
	Leaf   bool
	Column *Column
}

// Normalize walks the column tree depth-first and resolves every node's
// key. Parents precede their children. The Column reference is kept so
// tree-aware consumers can reach Children.
func Normalize(columns []*Column) []FlatColumn {
	var out []FlatColumn
	ordinal := 0
	var walk func(cols []*Column, depth int)
	walk = func(cols []*Column, depth int) {
		for _, c := range cols {
			if c == nil {
				continue
			}
			out = append(out, FlatColumn{
				Key:    resolveColumnKey(c, ordinal),
				Depth:  depth,
				Leaf:   c.IsLeaf(),
				Column: c,
			})
			ordinal++
			walk(c.Children, depth+1)
		}
	}
	walk(columns, 0)
	return out
}

func resolveColumnKey(c *Column, ordinal int) string {
	if c.Key != "" {
		return c.Key
	}
	if c.DataIndex != "" {
		return c.DataIndex
	}
	return strconv.Itoa(ordinal)
}

// FindByKey returns the column whose resolved key is key, or nil.
func FindByKey(columns []*Column, key string) *Column {
	return NewColumnIndex(columns).FindByKey(key)
}

// ColumnIndex caches the normalized column tree for key lookups.
// Build a new index whenever the column set changes.
type ColumnIndex struct {
	flat  []FlatColumn
	byKey map[string]int
	byPtr map[*Column]int
}

// NewColumnIndex normalizes columns and indexes them by key. When two
// columns resolve to the same key the first one wins.
func NewColumnIndex(columns []*Column) *ColumnIndex {
	flat := Normalize(columns)
	ix := &ColumnIndex{
		flat:  flat,
		byKey: make(map[string]int, len(flat)),
		byPtr: make(map[*Column]int, len(flat)),
	}
	for i, fc := range flat {
		if _, dup := ix.byKey[fc.Key]; !dup {
			ix.byKey[fc.Key] = i
		}
		ix.byPtr[fc.Column] = i
	}
	return ix
}

// Flat returns the normalized columns in depth-first order.
func (ix *ColumnIndex) Flat() []FlatColumn {
	return ix.flat
}

// Len returns the number of columns, groups included.
func (ix *ColumnIndex) Len() int {
	return len(ix.flat)
}

// FindByKey returns the column with the given resolved key, or nil.
func (ix *ColumnIndex) FindByKey(key string) *Column {
	i, ok := ix.byKey[key]
	if !ok {
		return nil
	}
	return ix.flat[i].Column
}

// KeyOf returns the resolved key of c, or "" when c is not in the index.
func (ix *ColumnIndex) KeyOf(c *Column) string {
	i, ok := ix.byPtr[c]
	if !ok {
		return ""
	}
	return ix.flat[i].Key
}

// HasLeaf reports whether key names a leaf column. Filter state is kept
// for leaf columns only.
func (ix *ColumnIndex) HasLeaf(key string) bool {
	i, ok := ix.byKey[key]
	return ok && ix.flat[i].Leaf
}

// Keys returns every resolved key in depth-first order.
func (ix *ColumnIndex) Keys() []string {
	keys := make([]string, len(ix.flat))
	for i, fc := range ix.flat {
		keys[i] = fc.Key
	}
	return keys
}

// collect returns the columns matching pred in depth-first order.
func (ix *ColumnIndex) collect(pred func(*Column) bool) []FlatColumn {
	var out []FlatColumn
	for _, fc := range ix.flat {
		if pred(fc.Column) {
			out = append(out, fc)
		}
	}
	return out
}
