package table

import "github.com/roach88/tablestate/internal/record"

// SelectionType picks between multi-select checkboxes and single-select
// radios.
type SelectionType string

const (
	SelectCheckbox SelectionType = "checkbox"
	SelectRadio    SelectionType = "radio"
)

// BulkOp is a bulk selection operation over the current page.
type BulkOp string

const (
	BulkAll       BulkOp = "all"
	BulkRemoveAll BulkOp = "removeAll"
	BulkInvert    BulkOp = "invert"
)

// Valid reports whether op is a known bulk operation.
func (op BulkOp) Valid() bool {
	return op == BulkAll || op == BulkRemoveAll || op == BulkInvert
}

// SelectWay names the granular callback a selection change is routed to.
type SelectWay string

const (
	WayOnSelect         SelectWay = "onSelect"
	WayOnSelectMultiple SelectWay = "onSelectMultiple"
	WayOnSelectAll      SelectWay = "onSelectAll"
	WayOnSelectInvert   SelectWay = "onSelectInvert"
	WayCustom           SelectWay = "custom"
)

// CheckboxProps are the per-row selection flags.
type CheckboxProps struct {
	Disabled       bool `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	DefaultChecked bool `json:"default_checked,omitempty" yaml:"default_checked,omitempty"`
}

// SelectionItem is a custom entry of the selection menu. OnSelect receives
// the changeable keys of the current page. Select, when set, returns the
// new membership of each changeable row given whether it is selected now.
type SelectionItem struct {
	Key      string
	Text     string
	OnSelect func(changeableKeys []string)
	Select   func(rec record.Object, selected bool) bool
}

// RowSelection configures row selection. A nil *RowSelection on Props
// disables selection.
type RowSelection struct {
	Type SelectionType
	// SelectedRowKeys makes the selection controlled when non-nil.
	SelectedRowKeys  []string
	GetCheckboxProps func(rec record.Object) CheckboxProps
	Selections       []SelectionItem

	OnChange         func(selectedKeys []string, selectedRows []record.Object)
	OnSelect         func(rec record.Object, checked bool, selectedRows []record.Object)
	OnSelectMultiple func(checked bool, selectedRows, changedRows []record.Object)
	OnSelectAll      func(checked bool, selectedRows, changedRows []record.Object)
	OnSelectInvert   func(selectedKeys []string)
}

// CheckboxPropsCache memoizes GetCheckboxProps per row key. It is owned by
// one Table and wiped whenever the data source or the callback may have
// changed.
type CheckboxPropsCache struct {
	fn      func(rec record.Object) CheckboxProps
	entries map[string]CheckboxProps
}

// NewCheckboxPropsCache creates a cache over fn. A nil fn yields zero
// props for every row.
func NewCheckboxPropsCache(fn func(rec record.Object) CheckboxProps) *CheckboxPropsCache {
	return &CheckboxPropsCache{fn: fn, entries: make(map[string]CheckboxProps)}
}

// Get returns the props for the row with the given key, computing them on
// first use.
func (c *CheckboxPropsCache) Get(key string, rec record.Object) CheckboxProps {
	if c.fn == nil {
		return CheckboxProps{}
	}
	if p, ok := c.entries[key]; ok {
		return p
	}
	p := c.fn(rec)
	c.entries[key] = p
	return p
}

// Reset drops every entry and installs fn.
func (c *CheckboxPropsCache) Reset(fn func(rec record.Object) CheckboxProps) {
	c.fn = fn
	clear(c.entries)
}

// Len returns the number of memoized rows.
func (c *CheckboxPropsCache) Len() int {
	return len(c.entries)
}

// keyedRow is a row with its resolved key, checkbox props and FlatData
// index. Pos is -1 for rows outside FlatData.
type keyedRow struct {
	Key    string
	Record record.Object
	Pos    int
	Props  CheckboxProps
}

// selectionState holds the stored keys, the dirty flag and the shift-range
// pivot. Default-checked rows are never written into stored; they are
// merged in on read until the first committed interaction. A controlled
// selection is exactly the controlled keys and never turns dirty.
//
// The pivot is a FlatData index. It moves on every single-row toggle,
// controlled or not, so a parent that echoes the emitted keys back keeps
// shift-range selection working.
type selectionState struct {
	stored     *keySet
	controlled bool
	dirty      bool

	hasPivot bool
	pivot    int
	pivotKey string

	cache *CheckboxPropsCache
}

func newSelectionState(rs *RowSelection) selectionState {
	s := selectionState{stored: newKeySet(), cache: NewCheckboxPropsCache(nil)}
	s.reconcile(rs)
	return s
}

// reconcile mirrors a controlled key list and refreshes the props
// callback. The cache is always wiped: two func values cannot be compared.
func (s *selectionState) reconcile(rs *RowSelection) {
	if rs == nil {
		s.controlled = false
		s.cache.Reset(nil)
		return
	}
	s.cache.Reset(rs.GetCheckboxProps)
	s.controlled = rs.SelectedRowKeys != nil
	if s.controlled {
		s.stored = newKeySet(rs.SelectedRowKeys...)
		s.dirty = false
	}
}

// resetDirty clears the dirty flag and the props cache. Stored keys stay.
func (s *selectionState) resetDirty(rs *RowSelection) {
	s.dirty = false
	var fn func(record.Object) CheckboxProps
	if rs != nil {
		fn = rs.GetCheckboxProps
	}
	s.cache.Reset(fn)
}

// working returns the set an interaction starts from: stored keys plus,
// until the first interaction, the default-checked keys.
func (s *selectionState) working(defaults []string) *keySet {
	work := s.stored.clone()
	if !s.dirty && !s.controlled {
		for _, k := range defaults {
			work.add(k)
		}
	}
	return work
}

// pivotIn returns the pivot if it still points at the same row. A pivot
// whose row moved or vanished counts as no pivot.
func (s *selectionState) pivotIn(rows []keyedRow) (int, bool) {
	if !s.hasPivot || s.pivot < 0 || s.pivot >= len(rows) {
		return 0, false
	}
	if rows[s.pivot].Key != s.pivotKey {
		return 0, false
	}
	return s.pivot, true
}

// toggle checks or unchecks rows[index], where rows is the keyed FlatData.
// With shift and a live pivot that differs from index, every non-disabled
// row between the pivot and index (inclusive) is set to checked, and only
// keys whose membership flipped are reported.
func (s *selectionState) toggle(rows []keyedRow, index int, checked, shift bool, defaults []string) (*keySet, SelectWay, []string) {
	work := s.working(defaults)
	key := rows[index].Key
	way := WayOnSelect
	var changed []string

	if pivot, ok := s.pivotIn(rows); shift && ok && pivot != index {
		way = WayOnSelectMultiple
		direction := 1
		if pivot < index {
			direction = -1
		}
		distance := (pivot - index) * direction
		for step := 0; step <= distance; step++ {
			row := rows[index+step*direction]
			if row.Props.Disabled {
				continue
			}
			if setMembership(work, row.Key, checked) {
				changed = append(changed, row.Key)
			}
		}
	} else {
		setMembership(work, key, checked)
	}

	s.hasPivot = true
	s.pivot = index
	s.pivotKey = key
	return work, way, changed
}

// radio replaces the selection with the single key. Radios have no range
// semantics and leave the pivot alone.
func (s *selectionState) radio(key string) *keySet {
	return newKeySet(key)
}

// bulk applies op to the changeable rows. It returns the resulting set,
// the callback way, the checked flag reported to callbacks and the keys
// that flipped.
func (s *selectionState) bulk(rows []keyedRow, op BulkOp, defaults []string) (*keySet, SelectWay, bool, []string) {
	work := s.working(defaults)
	var changed []string
	way, checked := WayOnSelectAll, op == BulkAll
	if op == BulkInvert {
		way = WayOnSelectInvert
	}

	for _, key := range changeableKeys(rows) {
		switch op {
		case BulkAll:
			if work.add(key) {
				changed = append(changed, key)
			}
		case BulkRemoveAll:
			if work.remove(key) {
				changed = append(changed, key)
			}
		case BulkInvert:
			if !work.add(key) {
				work.remove(key)
			}
			changed = append(changed, key)
		}
	}
	return work, way, checked, changed
}

func changeableKeys(rows []keyedRow) []string {
	keys := make([]string, 0, len(rows))
	for _, r := range rows {
		if !r.Props.Disabled {
			keys = append(keys, r.Key)
		}
	}
	return keys
}

func setMembership(s *keySet, key string, checked bool) bool {
	if checked {
		return s.add(key)
	}
	return s.remove(key)
}
