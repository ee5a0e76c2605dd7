package config

import "github.com/roach88/tablestate/internal/table"

// TableConfig is the declarative form of table.Props, minus the data.
type TableConfig struct {
	Name               string            `json:"name,omitempty" yaml:"name,omitempty"`
	RowKey             string            `json:"row_key,omitempty" yaml:"row_key,omitempty"`
	ChildrenColumnName string            `json:"children_column_name,omitempty" yaml:"children_column_name,omitempty"`
	SortDirections     []table.SortOrder `json:"sort_directions,omitempty" yaml:"sort_directions,omitempty"`
	Columns            []ColumnConfig    `json:"columns" yaml:"columns"`
	Pagination         *PaginationConfig `json:"pagination,omitempty" yaml:"pagination,omitempty"`
	Selection          *SelectionConfig  `json:"selection,omitempty" yaml:"selection,omitempty"`
}

// ColumnConfig declares one column or column group.
type ColumnConfig struct {
	Key       string         `json:"key,omitempty" yaml:"key,omitempty"`
	DataIndex string         `json:"data_index,omitempty" yaml:"data_index,omitempty"`
	Title     string         `json:"title,omitempty" yaml:"title,omitempty"`
	Fixed     string         `json:"fixed,omitempty" yaml:"fixed,omitempty"`
	Children  []ColumnConfig `json:"children,omitempty" yaml:"children,omitempty"`

	Sorter           *SorterConfig     `json:"sorter,omitempty" yaml:"sorter,omitempty"`
	SortOrder        *table.SortOrder  `json:"sort_order,omitempty" yaml:"sort_order,omitempty"`
	DefaultSortOrder table.SortOrder   `json:"default_sort_order,omitempty" yaml:"default_sort_order,omitempty"`
	SortDirections   []table.SortOrder `json:"sort_directions,omitempty" yaml:"sort_directions,omitempty"`

	Filter               *FilterConfig        `json:"filter,omitempty" yaml:"filter,omitempty"`
	Filters              []table.FilterOption `json:"filters,omitempty" yaml:"filters,omitempty"`
	FilterMultiple       *bool                `json:"filter_multiple,omitempty" yaml:"filter_multiple,omitempty"`
	FilteredValue        []string             `json:"filtered_value,omitempty" yaml:"filtered_value,omitempty"`
	DefaultFilteredValue []string             `json:"default_filtered_value,omitempty" yaml:"default_filtered_value,omitempty"`
}

// SorterConfig selects a built-in comparator.
type SorterConfig struct {
	Type string `json:"type" yaml:"type"`
	// Field defaults to the column's data index, then its key.
	Field string `json:"field,omitempty" yaml:"field,omitempty"`
	// Locale is a BCP 47 tag for the collate sorter. Default "und".
	Locale string `json:"locale,omitempty" yaml:"locale,omitempty"`
}

// FilterConfig selects a built-in filter predicate.
type FilterConfig struct {
	Type       string `json:"type" yaml:"type"`
	Field      string `json:"field,omitempty" yaml:"field,omitempty"`
	IgnoreCase bool   `json:"ignore_case,omitempty" yaml:"ignore_case,omitempty"`
}

// PaginationConfig mirrors table.PaginationConfig without callbacks.
type PaginationConfig struct {
	Disabled        bool `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Current         int  `json:"current,omitempty" yaml:"current,omitempty"`
	DefaultCurrent  int  `json:"default_current,omitempty" yaml:"default_current,omitempty"`
	PageSize        int  `json:"page_size,omitempty" yaml:"page_size,omitempty"`
	DefaultPageSize int  `json:"default_page_size,omitempty" yaml:"default_page_size,omitempty"`
	Total           int  `json:"total,omitempty" yaml:"total,omitempty"`
}

// Rule matches rows whose field text equals Equals or is one of In.
type Rule struct {
	Field  string   `json:"field" yaml:"field"`
	Equals *string  `json:"equals,omitempty" yaml:"equals,omitempty"`
	In     []string `json:"in,omitempty" yaml:"in,omitempty"`
}

// Selection item actions.
const (
	ActionSelect   = "select"
	ActionDeselect = "deselect"
	ActionInvert   = "invert"
)

// SelectionItemConfig declares a custom selection menu entry. Action is
// applied to the changeable rows of the current page that match When, or
// to all of them without When.
type SelectionItemConfig struct {
	Key    string `json:"key" yaml:"key"`
	Text   string `json:"text,omitempty" yaml:"text,omitempty"`
	Action string `json:"action" yaml:"action"`
	When   *Rule  `json:"when,omitempty" yaml:"when,omitempty"`
}

// SelectionConfig enables row selection.
type SelectionConfig struct {
	Type               string                `json:"type,omitempty" yaml:"type,omitempty"`
	SelectedRowKeys    []string              `json:"selected_row_keys,omitempty" yaml:"selected_row_keys,omitempty"`
	DisabledWhen       *Rule                 `json:"disabled_when,omitempty" yaml:"disabled_when,omitempty"`
	DefaultCheckedWhen *Rule                 `json:"default_checked_when,omitempty" yaml:"default_checked_when,omitempty"`
	Selections         []SelectionItemConfig `json:"selections,omitempty" yaml:"selections,omitempty"`
}
