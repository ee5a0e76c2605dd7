package table

import (
	"log/slog"
	"slices"
	"strconv"

	"github.com/roach88/tablestate/internal/record"
)

// DefaultChildrenColumnName is the row field holding nested rows.
const DefaultChildrenColumnName = "children"

// Props is the complete external input of a Table. Every facet is
// controlled or uncontrolled as documented on its field's type.
type Props struct {
	DataSource []record.Object
	Columns    []*Column
	RowKey     RowKey
	// Pagination nil means pagination with defaults.
	Pagination   *PaginationConfig
	RowSelection *RowSelection
	// ChildrenColumnName defaults to "children".
	ChildrenColumnName string
	// SortDirections applies to columns that declare none.
	SortDirections []SortOrder

	OnChange    func(ChangeEvent)
	OnSelection func(SelectionEvent)
}

// Option configures a Table.
type Option func(*Table)

// WithLogger sets the logger used for configuration warnings.
// Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(t *Table) {
		if l != nil {
			t.logger = l
		}
	}
}

// Sequencer hands out strictly increasing event sequence numbers.
// *Clock is the production implementation.
type Sequencer interface {
	Next() int64
}

// WithClock sets the sequencer stamping events. Use NewClockAt to continue
// a sequence.
func WithClock(c Sequencer) Option {
	return func(t *Table) {
		if c != nil {
			t.clock = c
		}
	}
}

// Table is the tabular data state engine.
//
// CRITICAL: Not safe for concurrent use; see package doc.
type Table struct {
	props Props
	ix    *ColumnIndex

	filters        *FilterState
	sort           SortState // local, used when sortControlled is false
	controlledSort SortState
	sortControlled bool
	page           paginationState
	sel            selectionState

	clock  Sequencer
	logger *slog.Logger
	warn   *warnings

	// sorted, flat and the key table are derived from DataSource and the
	// effective sort. Any state change drops them.
	sorted  []record.Object
	flat    []record.Object
	keys    map[uintptr]string // data source row identity -> key
	flatPos map[uintptr]int    // row identity -> FlatData index
	cached  bool
}

// New creates a Table from props. Initial uncontrolled state comes from
// the Default* fields of the columns and the pagination config.
func New(props Props, opts ...Option) *Table {
	t := &Table{
		clock:  NewClock(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.warn = newWarnings(t.logger)

	t.props = props
	t.ix = NewColumnIndex(props.Columns)
	t.filters = NewFilterState(t.ix)
	t.sort = defaultSortFromIndex(t.ix)
	t.controlledSort, t.sortControlled = sortFromIndex(t.ix)

	page, valid := newPaginationState(props.Pagination)
	t.page = page
	if !valid {
		t.warnPageSize()
	}
	t.sel = newSelectionState(props.RowSelection)

	t.fill()
	t.clampPage()
	return t
}

// SetProps runs the reconciliation pass for a new set of props.
//
// Order: reconcile filters and sort against the new columns, drop derived
// data, clamp pagination, then reset the selection dirty flag if the
// effective filters changed. Controlled values always win.
func (t *Table) SetProps(next Props) {
	prev := t.props
	before := t.filters.Current()
	t.props = next

	if !sameData(prev.DataSource, next.DataSource) {
		t.resetDataSession()
	}

	t.ix = NewColumnIndex(next.Columns)
	for _, key := range t.filters.Reconcile(t.ix) {
		t.warn.warn(key, WarnStaleFilter, map[string]string{"column": key},
			"filter on column %q dropped: column no longer exists", key)
	}
	t.controlledSort, t.sortControlled = sortFromIndex(t.ix)
	if t.sort.Active() && !t.sortable(t.sort.ColumnKey) {
		t.sort = SortState{}
	}

	t.invalidate()

	t.page.reconcile(next.Pagination)
	if next.Pagination != nil && (next.Pagination.PageSize < 0 || next.Pagination.DefaultPageSize < 0) {
		t.warnPageSize()
	}
	t.clampPage()

	t.sel.reconcile(next.RowSelection)
	if !before.Equal(t.filters.Current()) {
		t.sel.resetDirty(next.RowSelection)
	}
}

// SetDataSource replaces the data. It always counts as a new data source:
// the dirty flag and the checkbox-props cache are reset, stored selections
// are kept.
func (t *Table) SetDataSource(data []record.Object) {
	t.props.DataSource = data
	t.resetDataSession()
	t.fill()
	t.clampPage()
}

func (t *Table) resetDataSession() {
	t.sel.resetDirty(t.props.RowSelection)
	t.warn.forgetRows()
	t.invalidate()
}

// Props returns the current props.
func (t *Table) Props() Props {
	return t.props
}

// Columns returns the column index for the current column set.
func (t *Table) Columns() *ColumnIndex {
	return t.ix
}

// ---------------------------------------------------------------------------
// Derived data
// ---------------------------------------------------------------------------

// Sort returns the effective sort.
func (t *Table) Sort() SortState {
	if t.sortControlled {
		return t.controlledSort
	}
	return t.sort
}

// Filters returns the effective filters.
func (t *Table) Filters() Filters {
	return t.filters.Current()
}

// FlatData returns the sorted, unfiltered rows flattened depth-first.
// It is the scope of default selection and selected-row lookup.
func (t *Table) FlatData() []record.Object {
	t.fill()
	return t.flat
}

// LocalData returns the rows after sort, then filter. With no active sort
// and no active filter it returns the data source itself.
func (t *Table) LocalData() []record.Object {
	t.fill()
	return applyFilters(t.sorted, t.filters.Current(), t.ix)
}

// Pagination returns the effective pagination and whether pagination is
// enabled.
func (t *Table) Pagination() (Pagination, bool) {
	if !t.page.enabled {
		return Pagination{}, false
	}
	return t.page.effective(len(t.LocalData())), true
}

// CurrentPageData returns the rows of the current page.
func (t *Table) CurrentPageData() []record.Object {
	return t.pageOf(t.page, t.LocalData())
}

// FlatCurrentPageData returns the current page flattened depth-first.
// Row indexes passed to selection operations index into this list.
func (t *Table) FlatCurrentPageData() []record.Object {
	return FlattenRows(t.CurrentPageData(), t.childrenName())
}

// pageOf slices local for state. Data no longer than a page passes
// through unsliced, which keeps caller-paged data (Total set) intact.
func (t *Table) pageOf(state paginationState, local []record.Object) []record.Object {
	if !state.enabled {
		return local
	}
	p := state.effective(len(local))
	if len(local) <= p.PageSize {
		return local
	}
	return Slice(local, p.Current, p.PageSize)
}

func (t *Table) fill() {
	if t.cached {
		return
	}
	t.keys = t.checkRowKeys()

	// Sorted parents are copies; key them through the row they came from.
	origin := make(map[uintptr]uintptr)
	t.sorted = t.sortData(t.Sort(), func(orig, cp record.Object) {
		origin[rowID(cp)] = rowID(orig)
	})
	t.flat = FlattenRows(t.sorted, t.childrenName())
	t.flatPos = make(map[uintptr]int, len(t.flat))
	for i, rec := range t.flat {
		id := rowID(rec)
		if _, seen := t.flatPos[id]; !seen {
			t.flatPos[id] = i
		}
		if o, ok := origin[id]; ok {
			t.keys[id] = t.keys[o]
		}
	}
	t.cached = true
}

func (t *Table) invalidate() {
	t.cached = false
	t.sorted = nil
	t.flat = nil
	t.keys = nil
	t.flatPos = nil
}

func (t *Table) sortData(s SortState, copied func(orig, cp record.Object)) []record.Object {
	cmp := Comparator(t.ix.FindByKey(s.ColumnKey), s.Order)
	if !s.Active() || cmp == nil {
		return t.props.DataSource
	}
	return recursiveSort(t.props.DataSource, cmp, t.childrenName(), copied)
}

func (t *Table) localFor(s SortState, f Filters) []record.Object {
	return applyFilters(t.sortData(s, nil), f, t.ix)
}

func (t *Table) childrenName() string {
	if t.props.ChildrenColumnName == "" {
		return DefaultChildrenColumnName
	}
	return t.props.ChildrenColumnName
}

func (t *Table) sortable(key string) bool {
	col := t.ix.FindByKey(key)
	return col != nil && col.Sorter != nil
}

func (t *Table) clampPage() {
	if !t.page.enabled || t.page.currentControlled {
		return
	}
	t.page.current = t.page.effective(len(t.LocalData())).Current
}

// ---------------------------------------------------------------------------
// Sort, filter, paginate
// ---------------------------------------------------------------------------

// ToggleSort advances the sort cycle of the column with the given key and
// emits a ChangeEvent. When any column declares SortOrder the new sort is
// emitted but not committed.
func (t *Table) ToggleSort(columnKey string) (*ChangeEvent, error) {
	col := t.ix.FindByKey(columnKey)
	if col == nil {
		return nil, opError(ErrCodeUnknownColumn, "no column with key %q", columnKey)
	}
	if col.Sorter == nil {
		return nil, opError(ErrCodeNotSortable, "column %q has no sorter", columnKey)
	}
	directions := col.SortDirections
	if len(directions) == 0 {
		directions = t.props.SortDirections
	}
	next := ToggleSort(t.Sort(), columnKey, directions)

	committed := !t.sortControlled
	if committed {
		t.sort = next
		t.invalidate()
	}
	ev := t.changeEvent(ActionSort, next, t.filters.Current(), t.page, committed)
	return ev, nil
}

// SetFilter sets the selected filter values of a leaf column.
//
// Returns a nil event when the filters did not change. Otherwise the page
// resets to 1 (unless the current page is controlled) and the selection
// dirty flag is cleared. Values for a controlled column are emitted but
// not committed.
func (t *Table) SetFilter(columnKey string, values []string) (*ChangeEvent, error) {
	col := t.ix.FindByKey(columnKey)
	if col == nil {
		return nil, opError(ErrCodeUnknownColumn, "no column with key %q", columnKey)
	}
	if !col.IsLeaf() {
		return nil, opError(ErrCodeNotFilterable, "column %q is a column group", columnKey)
	}
	committed := !t.filters.IsControlled(columnKey)
	next, changed := t.filters.Set(t.ix, columnKey, values)
	if !changed {
		return nil, nil
	}

	nextPage := t.page
	if t.page.enabled {
		nextPage.current = 1
		if !t.page.currentControlled {
			t.page.current = 1
		}
		if cfg := t.props.Pagination; cfg != nil && cfg.OnChange != nil {
			cfg.OnChange(1, nextPage.pageSize)
		}
	}
	t.sel.resetDirty(t.props.RowSelection)
	t.invalidate()

	return t.changeEvent(ActionFilter, t.Sort(), next, nextPage, committed), nil
}

// ChangePage moves to page current, clamped to the last page. A value
// below 1 keeps the current page. Changing page clears the selection dirty
// flag.
func (t *Table) ChangePage(current int) (*ChangeEvent, error) {
	if !t.page.enabled {
		return nil, opError(ErrCodePaginationDisabled, "pagination is disabled")
	}
	next := t.page
	if current >= 1 {
		next.current = current
	}
	next.current = next.effective(len(t.LocalData())).Current
	if cfg := t.props.Pagination; cfg != nil && cfg.OnChange != nil {
		cfg.OnChange(next.current, next.pageSize)
	}

	committed := !t.page.currentControlled
	if committed {
		t.page.current = next.current
	}
	t.sel.dirty = false
	return t.changeEvent(ActionPaginate, t.Sort(), t.filters.Current(), next, committed), nil
}

// ChangePageSize sets the page size and moves to page current, clamped
// against the new page count.
func (t *Table) ChangePageSize(current, pageSize int) (*ChangeEvent, error) {
	if !t.page.enabled {
		return nil, opError(ErrCodePaginationDisabled, "pagination is disabled")
	}
	if pageSize < 1 {
		return nil, opError(ErrCodeInvalidPageSize, "page size must be at least 1, got %d", pageSize)
	}
	next := t.page
	next.pageSize = pageSize
	if current >= 1 {
		next.current = current
	}
	next.current = next.effective(len(t.LocalData())).Current
	if cfg := t.props.Pagination; cfg != nil && cfg.OnShowSizeChange != nil {
		cfg.OnShowSizeChange(next.current, next.pageSize)
	}

	committed := !t.page.pageSizeControlled
	if committed {
		t.page.pageSize = next.pageSize
	}
	if !t.page.currentControlled {
		t.page.current = next.current
	}
	return t.changeEvent(ActionPaginate, t.Sort(), t.filters.Current(), next, committed), nil
}

// changeEvent builds, stamps and emits the unified event for the would-be
// state (s, f, page).
func (t *Table) changeEvent(action Action, s SortState, f Filters, page paginationState, committed bool) *ChangeEvent {
	local := t.localFor(s, f)
	ev := ChangeEvent{
		Filters:   f.Clone(),
		Extra:     Extra{CurrentDataSource: local, Action: action},
		Committed: committed,
	}
	if page.enabled {
		p := page.effective(len(local))
		ev.Pagination = &p
	}
	if s.Active() {
		col := t.ix.FindByKey(s.ColumnKey)
		ev.Sorter = Sorter{Column: col, ColumnKey: s.ColumnKey, Order: s.Order}
		if col != nil {
			ev.Sorter.Field = col.DataIndex
		}
	}
	ev.Seq = t.clock.Next()
	if t.props.OnChange != nil {
		t.props.OnChange(ev)
	}
	return &ev
}

// ---------------------------------------------------------------------------
// Selection
// ---------------------------------------------------------------------------

// ToggleSingle checks or unchecks the row at index of the flattened
// current page. The pivot lives in FlatData, so with shift and a live
// pivot every row between the pivot and the clicked row is set to checked
// whatever page it is on, and reported in one onSelectMultiple event.
func (t *Table) ToggleSingle(index int, checked, shift bool) (*SelectionEvent, error) {
	page, err := t.selectionRows(index)
	if err != nil {
		return nil, err
	}
	clicked := page[index]
	rows := t.keyedRows(t.FlatData())
	work, way, changed := t.sel.toggle(rows, clicked.Pos, checked, shift, t.defaultSelection())
	ev := SelectionEvent{Way: way, Record: clicked.Record, Checked: checked, ChangedKeys: changed}
	return t.commitSelection(work, ev), nil
}

// ToggleRadio makes the row at index the only selected row.
func (t *Table) ToggleRadio(index int, checked bool) (*SelectionEvent, error) {
	rows, err := t.selectionRows(index)
	if err != nil {
		return nil, err
	}
	work := t.sel.radio(rows[index].Key)
	ev := SelectionEvent{Way: WayOnSelect, Record: rows[index].Record, Checked: checked}
	return t.commitSelection(work, ev), nil
}

// Select dispatches to ToggleRadio or ToggleSingle by selection type.
func (t *Table) Select(index int, checked, shift bool) (*SelectionEvent, error) {
	if rs := t.props.RowSelection; rs != nil && rs.Type == SelectRadio {
		return t.ToggleRadio(index, checked)
	}
	return t.ToggleSingle(index, checked, shift)
}

// BulkSelect applies op to the changeable rows of the current page.
func (t *Table) BulkSelect(op BulkOp) (*SelectionEvent, error) {
	if t.props.RowSelection == nil {
		return nil, opError(ErrCodeSelectionDisabled, "row selection is not configured")
	}
	if !op.Valid() {
		return nil, opError(ErrCodeInvalidOp, "unknown bulk operation %q", op)
	}
	rows := t.keyedRows(t.FlatCurrentPageData())
	work, way, checked, changed := t.sel.bulk(rows, op, t.defaultSelection())
	ev := SelectionEvent{Way: way, Op: op, Checked: checked, ChangedKeys: changed}
	return t.commitSelection(work, ev), nil
}

// CustomSelect runs the SelectionItem with the given key over the
// changeable rows of the current page. OnSelect sees their keys first;
// Select then decides each row's membership. The event reports the keys
// whose membership differs from before the call.
func (t *Table) CustomSelect(selectionKey string) (*SelectionEvent, error) {
	rs := t.props.RowSelection
	if rs == nil {
		return nil, opError(ErrCodeSelectionDisabled, "row selection is not configured")
	}
	i := slices.IndexFunc(rs.Selections, func(s SelectionItem) bool { return s.Key == selectionKey })
	if i < 0 {
		return nil, opError(ErrCodeUnknownSelection, "no selection item with key %q", selectionKey)
	}
	item := rs.Selections[i]
	before := newKeySet(t.SelectedKeys()...)

	rows := t.keyedRows(t.FlatCurrentPageData())
	if item.OnSelect != nil {
		item.OnSelect(changeableKeys(rows))
	}
	work := t.sel.working(t.defaultSelection())
	if item.Select != nil {
		for _, r := range rows {
			if !r.Props.Disabled {
				setMembership(work, r.Key, item.Select(r.Record, work.has(r.Key)))
			}
		}
	}

	ev := SelectionEvent{Way: WayCustom, Selection: selectionKey, ChangedKeys: diffKeys(before, work)}
	return t.commitSelection(work, ev), nil
}

func (t *Table) selectionRows(index int) ([]keyedRow, error) {
	if t.props.RowSelection == nil {
		return nil, opError(ErrCodeSelectionDisabled, "row selection is not configured")
	}
	rows := t.keyedRows(t.FlatCurrentPageData())
	if index < 0 || index >= len(rows) {
		return nil, opError(ErrCodeRowOutOfRange, "row index %d outside current page of %d rows", index, len(rows))
	}
	return rows, nil
}

// commitSelection stores work and marks the selection dirty unless it is
// controlled, then routes the change to onChange and the granular callback
// for ev.Way.
func (t *Table) commitSelection(work *keySet, ev SelectionEvent) *SelectionEvent {
	ev.Committed = !t.sel.controlled
	if ev.Committed {
		t.sel.stored = work
		t.sel.dirty = true
	}
	ev.SelectedKeys = work.keys()
	ev.SelectedRows = t.rowsByKey(ev.SelectedKeys, true)
	ev.ChangedRows = t.rowsByKey(ev.ChangedKeys, false)
	ev.Seq = t.clock.Next()

	if rs := t.props.RowSelection; rs != nil {
		if rs.OnChange != nil {
			rs.OnChange(slices.Clone(ev.SelectedKeys), ev.SelectedRows)
		}
		switch ev.Way {
		case WayOnSelect:
			if rs.OnSelect != nil {
				rs.OnSelect(ev.Record, ev.Checked, ev.SelectedRows)
			}
		case WayOnSelectMultiple:
			if rs.OnSelectMultiple != nil {
				rs.OnSelectMultiple(ev.Checked, ev.SelectedRows, ev.ChangedRows)
			}
		case WayOnSelectAll:
			if rs.OnSelectAll != nil {
				rs.OnSelectAll(ev.Checked, ev.SelectedRows, ev.ChangedRows)
			}
		case WayOnSelectInvert:
			if rs.OnSelectInvert != nil {
				rs.OnSelectInvert(slices.Clone(ev.SelectedKeys))
			}
		}
	}
	if t.props.OnSelection != nil {
		t.props.OnSelection(ev)
	}
	return &ev
}

// IsSelected reports whether the row with key is selected. Until the
// first interaction default-checked rows of an uncontrolled selection
// count as selected.
func (t *Table) IsSelected(key string) bool {
	if t.props.RowSelection == nil {
		return false
	}
	if t.sel.stored.has(key) {
		return true
	}
	return !t.sel.dirty && !t.sel.controlled && slices.Contains(t.defaultSelection(), key)
}

// SelectedKeys returns the effective selection in selection order.
func (t *Table) SelectedKeys() []string {
	if t.props.RowSelection == nil {
		return []string{}
	}
	return t.sel.working(t.defaultSelection()).keys()
}

// SelectedRows returns the selected rows of FlatData, in FlatData order.
func (t *Table) SelectedRows() []record.Object {
	return t.rowsByKey(t.SelectedKeys(), true)
}

// Dirty reports whether the user interacted with the selection since the
// last reset.
func (t *Table) Dirty() bool {
	return t.sel.dirty
}

// ResetDirty clears the dirty flag and the checkbox-props cache. Stored
// selections are kept.
func (t *Table) ResetDirty() {
	t.sel.resetDirty(t.props.RowSelection)
}

// CheckboxProps returns the memoized checkbox props of rec.
func (t *Table) CheckboxProps(rec record.Object, index int) CheckboxProps {
	return t.sel.cache.Get(t.RowKeyOf(rec, index), rec)
}

// CheckboxPropsCache exposes the cache, mainly for inspection in tests.
func (t *Table) CheckboxPropsCache() *CheckboxPropsCache {
	return t.sel.cache
}

// RowKeyOf returns the key of rec. Rows of the data source are looked up
// in the key table, so a row keeps its key on every page and in every
// sort order. Other rows resolve their key with index as the position.
func (t *Table) RowKeyOf(rec record.Object, index int) string {
	t.fill()
	if key, ok := t.keys[rowID(rec)]; ok {
		return key
	}
	key, _ := t.props.RowKey.Resolve(rec, index)
	return key
}

// keyedRows pairs the rows of data with their keys, checkbox props and
// FlatData indexes.
func (t *Table) keyedRows(data []record.Object) []keyedRow {
	t.fill()
	rows := make([]keyedRow, len(data))
	for i, rec := range data {
		pos, ok := t.flatPos[rowID(rec)]
		if !ok {
			pos = -1
		}
		key := t.RowKeyOf(rec, i)
		rows[i] = keyedRow{Key: key, Record: rec, Pos: pos, Props: t.sel.cache.Get(key, rec)}
	}
	return rows
}

// defaultSelection returns the keys of default-checked rows of FlatData.
func (t *Table) defaultSelection() []string {
	rs := t.props.RowSelection
	if rs == nil || rs.GetCheckboxProps == nil {
		return nil
	}
	var keys []string
	for _, r := range t.keyedRows(t.FlatData()) {
		if r.Props.DefaultChecked {
			keys = append(keys, r.Key)
		}
	}
	return keys
}

// rowsByKey looks rows up in FlatData. With flatOrder the result follows
// FlatData order, otherwise the order of keys. Unknown keys are skipped.
func (t *Table) rowsByKey(keys []string, flatOrder bool) []record.Object {
	if len(keys) == 0 {
		return []record.Object{}
	}
	flat := t.FlatData()
	byKey := make(map[string]record.Object, len(flat))
	var ordered []record.Object
	want := newKeySet(keys...)
	for i, rec := range flat {
		key := t.RowKeyOf(rec, i)
		if _, dup := byKey[key]; dup {
			continue
		}
		byKey[key] = rec
		if flatOrder && want.has(key) {
			ordered = append(ordered, rec)
		}
	}
	if flatOrder {
		if ordered == nil {
			return []record.Object{}
		}
		return ordered
	}
	out := make([]record.Object, 0, len(keys))
	for _, k := range keys {
		if rec, ok := byKey[k]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Warnings
// ---------------------------------------------------------------------------

// Warnings returns the configuration warnings recorded so far.
func (t *Table) Warnings() []Warning {
	t.fill()
	return slices.Clone(t.warn.list)
}

// checkRowKeys builds the key table of the flattened data source. The
// first row with a key owns it. A row whose key is missing or repeats an
// earlier row's key is keyed by its index in the flattened data source
// instead, and warned about once.
func (t *Table) checkRowKeys() map[uintptr]string {
	flat := FlattenRows(t.props.DataSource, t.childrenName())
	owned := make([]string, len(flat))
	first := make(map[string]int, len(flat))
	for i, rec := range flat {
		key, ok := t.props.RowKey.Resolve(rec, i)
		index := strconv.Itoa(i)
		if !ok {
			t.warn.warn(index, WarnMissingRowKey, map[string]string{"index": index},
				"row %d has no key; using its index", i)
			continue
		}
		if prev, dup := first[key]; dup {
			t.warn.warn(index, WarnDuplicateRowKey,
				map[string]string{"index": index, "key": key, "first": strconv.Itoa(prev)},
				"rows %d and %d share key %q; row %d uses its index", prev, i, key, i)
			continue
		}
		first[key] = i
		owned[i] = key
	}

	keys := make(map[uintptr]string, len(flat))
	for i, rec := range flat {
		key := owned[i]
		if key == "" {
			key = positionalKey(i, first)
		}
		if _, seen := keys[rowID(rec)]; !seen {
			keys[rowID(rec)] = key
		}
	}
	return keys
}

func (t *Table) warnPageSize() {
	t.warn.warn("pagination", WarnInvalidPageSize, nil, "page size must be positive; using %d", t.page.pageSize)
}

// sameData reports whether a and b are the same backing array, which is
// how the table decides the data source identity changed.
func sameData(a, b []record.Object) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}
