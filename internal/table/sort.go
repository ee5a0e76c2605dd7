package table

import (
	"slices"

	"github.com/roach88/tablestate/internal/record"
)

// SortState is the single active sort. Order is SortNone iff ColumnKey is
// empty.
type SortState struct {
	ColumnKey string    `json:"column_key,omitempty" yaml:"column_key,omitempty"`
	Order     SortOrder `json:"order,omitempty" yaml:"order,omitempty"`
}

// Active reports whether a sort is applied.
func (s SortState) Active() bool {
	return s.ColumnKey != "" && s.Order != SortNone
}

// normalized enforces the invariant that a column implies an order and the
// other way round.
func (s SortState) normalized() SortState {
	if !s.Active() {
		return SortState{}
	}
	return s
}

// ToggleSort advances the sort cycle for the clicked column.
//
// A column that is not the active one starts at directions[0]. The active
// column moves to the next direction; running off the end clears the sort.
// With the default directions the cycle is none -> ascend -> descend ->
// none, never jumping from none straight to descend.
func ToggleSort(current SortState, columnKey string, directions []SortOrder) SortState {
	if len(directions) == 0 {
		directions = DefaultSortDirections
	}
	if !current.Active() || current.ColumnKey != columnKey {
		return SortState{ColumnKey: columnKey, Order: directions[0]}.normalized()
	}
	next := slices.Index(directions, current.Order) + 1
	if next >= len(directions) {
		return SortState{}
	}
	return SortState{ColumnKey: columnKey, Order: directions[next]}.normalized()
}

// Comparator builds the row comparator for col in the given order.
// It returns nil when there is nothing to sort by.
//
// A zero result stays zero so a stable sort keeps input order; Descend
// negates non-zero results. A sorter that panics is a caller bug and the
// panic propagates.
func Comparator(col *Column, order SortOrder) func(a, b record.Object) int {
	if col == nil || col.Sorter == nil || order == SortNone {
		return nil
	}
	sorter := col.Sorter
	return func(a, b record.Object) int {
		r := sorter(a, b, order)
		if r == 0 {
			return 0
		}
		if order == Descend {
			return -r
		}
		return r
	}
}

// RecursiveSort stably sorts the top-level rows, then each row's children
// with the same comparator, level by level. Rows never move to a different
// parent. The input slice and rows are not mutated; parents whose children
// were sorted are shallow copies.
func RecursiveSort(data []record.Object, cmp func(a, b record.Object) int, childrenName string) []record.Object {
	return recursiveSort(data, cmp, childrenName, nil)
}

// recursiveSort calls copied with each parent it replaces and the copy.
func recursiveSort(data []record.Object, cmp func(a, b record.Object) int, childrenName string, copied func(orig, cp record.Object)) []record.Object {
	out := slices.Clone(data)
	if cmp == nil {
		return out
	}
	slices.SortStableFunc(out, cmp)
	for i, rec := range out {
		if !record.HasChildren(rec, childrenName) {
			continue
		}
		kids := record.Children(rec, childrenName)
		out[i] = record.WithChildren(rec, childrenName, recursiveSort(kids, cmp, childrenName, copied))
		if copied != nil {
			copied(rec, out[i])
		}
	}
	return out
}

// sortFromIndex derives the controlled sort. The second result reports
// whether any column declares SortOrder; when none does, internal state
// owns the sort. The active sort is the first column whose SortOrder is
// not SortNone.
func sortFromIndex(ix *ColumnIndex) (SortState, bool) {
	declared := ix.collect(func(c *Column) bool { return c.SortOrder != nil })
	if len(declared) == 0 {
		return SortState{}, false
	}
	for _, fc := range declared {
		if *fc.Column.SortOrder != SortNone {
			return SortState{ColumnKey: fc.Key, Order: *fc.Column.SortOrder}.normalized(), true
		}
	}
	return SortState{}, true
}

// defaultSortFromIndex returns the initial uncontrolled sort: the first
// column declaring DefaultSortOrder.
func defaultSortFromIndex(ix *ColumnIndex) SortState {
	cols := ix.collect(func(c *Column) bool { return c.DefaultSortOrder != SortNone })
	if len(cols) == 0 {
		return SortState{}
	}
	return SortState{ColumnKey: cols[0].Key, Order: cols[0].Column.DefaultSortOrder}.normalized()
}

// SortStateFromColumns derives the sort from controlled columns. The
// boolean reports whether the sort is controlled at all.
func SortStateFromColumns(columns []*Column) (SortState, bool) {
	return sortFromIndex(NewColumnIndex(columns))
}
