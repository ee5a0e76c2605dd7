package table

import "github.com/roach88/tablestate/internal/record"

// SortOrder is the direction of the active sort.
type SortOrder string

const (
	// SortNone means no sort is applied.
	SortNone SortOrder = ""
	// Ascend sorts in the sorter's natural order.
	Ascend SortOrder = "ascend"
	// Descend negates the sorter's result.
	Descend SortOrder = "descend"
)

// DefaultSortDirections is the cycle used when neither the column nor the
// table configures one: none -> ascend -> descend -> none.
var DefaultSortDirections = []SortOrder{Ascend, Descend}

// Valid reports whether o is one of the known orders.
func (o SortOrder) Valid() bool {
	return o == SortNone || o == Ascend || o == Descend
}

// CompareFunc orders two rows. It is always written as if ascending; the
// engine negates the result for Descend. The order argument is passed for
// sorters that want to place empty values last in both directions.
type CompareFunc func(a, b record.Object, order SortOrder) int

// FilterFunc reports whether rec matches one selected filter value.
type FilterFunc func(value string, rec record.Object) bool

// FilterOption is one entry of a column's filter menu.
type FilterOption struct {
	Text     string         `json:"text" yaml:"text"`
	Value    string         `json:"value" yaml:"value"`
	Children []FilterOption `json:"children,omitempty" yaml:"children,omitempty"`
}

// Column describes one column (or column group) of the table.
//
// Key resolution: Key, then DataIndex, then the column's depth-first
// ordinal in the whole column tree.
type Column struct {
	Key       string
	DataIndex string
	Title     string
	Children  []*Column
	Fixed     string // "left", "right" or empty

	// Filtering.
	Filters        []FilterOption
	FilterMultiple bool
	// FilteredValue makes the column's filter controlled when non-nil.
	// An empty non-nil slice is a controlled "no filter".
	FilteredValue        []string
	DefaultFilteredValue []string
	OnFilter             FilterFunc

	// Sorting.
	Sorter CompareFunc
	// SortOrder makes the table's sort controlled when non-nil on any
	// column.
	SortOrder        *SortOrder
	DefaultSortOrder SortOrder
	SortDirections   []SortOrder
}

// IsLeaf reports whether the column has no children.
func (c *Column) IsLeaf() bool {
	return len(c.Children) == 0
}

// Order returns a pointer to o, for setting Column.SortOrder.
func Order(o SortOrder) *SortOrder {
	return &o
}
