package table

import (
	"slices"
	"sort"

	"github.com/roach88/tablestate/internal/record"
)

// Filters maps a column key to its selected filter values.
// A column is active iff its value list is non-empty.
type Filters map[string][]string

// Clone returns a deep copy of f.
func (f Filters) Clone() Filters {
	out := make(Filters, len(f))
	for k, v := range f {
		out[k] = slices.Clone(v)
	}
	return out
}

// Active returns the keys with a non-empty value list, sorted.
func (f Filters) Active() []string {
	keys := make([]string, 0, len(f))
	for k, v := range f {
		if len(v) > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether f and o select the same values. Inactive entries
// are ignored, so {a: []} equals {}.
func (f Filters) Equal(o Filters) bool {
	fa, oa := f.Active(), o.Active()
	if !slices.Equal(fa, oa) {
		return false
	}
	for _, k := range fa {
		if !slices.Equal(f[k], o[k]) {
			return false
		}
	}
	return true
}

// FiltersFromColumns collects the controlled filter values: every column
// whose FilteredValue is set.
func FiltersFromColumns(columns []*Column) Filters {
	return filtersFromIndex(NewColumnIndex(columns))
}

func filtersFromIndex(ix *ColumnIndex) Filters {
	out := Filters{}
	for _, fc := range ix.collect(func(c *Column) bool { return c.FilteredValue != nil }) {
		out[fc.Key] = slices.Clone(fc.Column.FilteredValue)
	}
	return out
}

// DefaultFilters collects DefaultFilteredValue per column, overridden by
// any controlled FilteredValue.
func DefaultFilters(columns []*Column) Filters {
	return defaultFiltersFromIndex(NewColumnIndex(columns))
}

func defaultFiltersFromIndex(ix *ColumnIndex) Filters {
	out := Filters{}
	for _, fc := range ix.collect(func(c *Column) bool { return c.DefaultFilteredValue != nil }) {
		out[fc.Key] = slices.Clone(fc.Column.DefaultFilteredValue)
	}
	for k, v := range filtersFromIndex(ix) {
		out[k] = v
	}
	return out
}

// ApplyFilters keeps the rows that pass every active column filter.
//
// Within a column a row survives if ANY selected value satisfies OnFilter;
// across columns the tests combine with AND. Columns without OnFilter, or
// keys without a column, are no-ops. Filters look at top-level rows only;
// children travel with their parent.
func ApplyFilters(data []record.Object, filters Filters, columns []*Column) []record.Object {
	return applyFilters(data, filters, NewColumnIndex(columns))
}

func applyFilters(data []record.Object, filters Filters, ix *ColumnIndex) []record.Object {
	out := data
	for _, key := range filters.Active() {
		col := ix.FindByKey(key)
		if col == nil || col.OnFilter == nil {
			continue
		}
		values := filters[key]
		kept := make([]record.Object, 0, len(out))
		for _, rec := range out {
			for _, v := range values {
				if col.OnFilter(v, rec) {
					kept = append(kept, rec)
					break
				}
			}
		}
		out = kept
	}
	return out
}

// FilterState tracks filter selections, reconciling locally owned values
// with controlled ones. Controlled values always win.
type FilterState struct {
	local      Filters
	controlled Filters
}

// NewFilterState seeds the local state with the columns' default filters.
func NewFilterState(ix *ColumnIndex) *FilterState {
	return &FilterState{
		local:      defaultFiltersFromIndex(ix),
		controlled: filtersFromIndex(ix),
	}
}

// Current returns the effective filters: local values overlaid with the
// controlled ones.
func (s *FilterState) Current() Filters {
	out := s.local.Clone()
	for k, v := range s.controlled {
		out[k] = slices.Clone(v)
	}
	return out
}

// IsControlled reports whether key's filter is owned by the caller.
func (s *FilterState) IsControlled(key string) bool {
	_, ok := s.controlled[key]
	return ok
}

// Reconcile aligns the state with a new column set. Entries for keys that
// no longer name a leaf column are dropped and returned (sorted). Newly
// controlled values replace any residual local value.
func (s *FilterState) Reconcile(ix *ColumnIndex) []string {
	var pruned []string
	for k := range s.local {
		if !ix.HasLeaf(k) {
			pruned = append(pruned, k)
			delete(s.local, k)
		}
	}
	sort.Strings(pruned)

	s.controlled = filtersFromIndex(ix)
	for k, v := range s.controlled {
		s.local[k] = slices.Clone(v)
	}
	return pruned
}

// Set applies a user selection for key. It returns the would-be filters
// and whether they differ from the current ones. The change is committed
// only for uncontrolled keys; controlled keys advance only through the
// next reconciliation.
func (s *FilterState) Set(ix *ColumnIndex, key string, values []string) (Filters, bool) {
	current := s.Current()
	next := current.Clone()
	next[key] = slices.Clone(values)
	for k := range next {
		if !ix.HasLeaf(k) {
			delete(next, k)
		}
	}
	if next.Equal(current) {
		return next, false
	}

	for k := range s.local {
		if _, ok := next[k]; !ok {
			delete(s.local, k)
		}
	}
	for k, v := range next {
		if s.IsControlled(k) {
			continue
		}
		s.local[k] = slices.Clone(v)
	}
	return next, true
}
