package table

import "github.com/roach88/tablestate/internal/record"

// Action names what triggered a ChangeEvent.
type Action string

const (
	ActionPaginate Action = "paginate"
	ActionSort     Action = "sort"
	ActionFilter   Action = "filter"
)

// Sorter describes the sort carried by a ChangeEvent.
type Sorter struct {
	Column    *Column   `json:"-"`
	ColumnKey string    `json:"column_key,omitempty"`
	Field     string    `json:"field,omitempty"`
	Order     SortOrder `json:"order,omitempty"`
}

// Extra carries the locally sorted and filtered rows behind a change.
type Extra struct {
	CurrentDataSource []record.Object `json:"current_data_source"`
	Action            Action          `json:"action"`
}

// ChangeEvent is the unified "table changed" signal fired on every filter,
// sort and page change. It always describes the would-be next state, even
// when a controlled facet kept the table from committing it.
type ChangeEvent struct {
	Seq        int64       `json:"seq"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Filters    Filters     `json:"filters"`
	Sorter     Sorter      `json:"sorter"`
	Extra      Extra       `json:"extra"`
	// Committed is false when the table kept its previous state because
	// the changed facet is controlled.
	Committed bool `json:"committed"`
}

// SelectionEvent reports one selection interaction. Shift-range and bulk
// operations produce a single batched event.
type SelectionEvent struct {
	Seq       int64         `json:"seq"`
	Way       SelectWay     `json:"way"`
	Op        BulkOp        `json:"op,omitempty"`
	Selection string        `json:"selection,omitempty"`
	Record    record.Object `json:"record,omitempty"`
	Checked   bool          `json:"checked"`

	SelectedKeys []string        `json:"selected_keys"`
	SelectedRows []record.Object `json:"selected_rows"`
	ChangedKeys  []string        `json:"changed_keys,omitempty"`
	ChangedRows  []record.Object `json:"changed_rows,omitempty"`

	Committed bool `json:"committed"`
}
