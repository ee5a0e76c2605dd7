package session

import (
	"errors"
	"fmt"

	"github.com/roach88/tablestate/internal/table"
)

// ErrInvalidCommand marks a Command whose parameters do not fit its op.
var ErrInvalidCommand = errors.New("invalid command")

// Command ops.
const (
	OpSort         = "sort"
	OpFilter       = "filter"
	OpPage         = "page"
	OpSelect       = "select"
	OpSelectBulk   = "select_bulk"
	OpSelectCustom = "select_custom"
)

// Command is one table operation in a form that can be stored and applied
// again later. Only the fields its Op reads are meaningful.
type Command struct {
	Op       string       `json:"op"`
	Column   string       `json:"column,omitempty"`
	Values   []string     `json:"values,omitempty"`
	Current  int          `json:"current,omitempty"`
	PageSize int          `json:"page_size,omitempty"`
	Index    int          `json:"index,omitempty"`
	Checked  bool         `json:"checked,omitempty"`
	Shift    bool         `json:"shift,omitempty"`
	Bulk     table.BulkOp `json:"bulk,omitempty"`
	Key      string       `json:"key,omitempty"`
}

// Validate reports a parameter the op needs but the command lacks. Errors
// wrap ErrInvalidCommand. Table state is not consulted; an unknown column
// is the table's error to raise.
func (c Command) Validate() error {
	switch c.Op {
	case OpSort, OpFilter:
		if c.Column == "" {
			return fmt.Errorf("%w: column is required", ErrInvalidCommand)
		}
	case OpPage, OpSelect:
	case OpSelectBulk:
		if !c.Bulk.Valid() {
			return fmt.Errorf("%w: unknown bulk op %q", ErrInvalidCommand, c.Bulk)
		}
	case OpSelectCustom:
		if c.Key == "" {
			return fmt.Errorf("%w: key is required", ErrInvalidCommand)
		}
	default:
		return fmt.Errorf("%w: unknown op %q", ErrInvalidCommand, c.Op)
	}
	return nil
}

// Apply runs the command against t. The event is a *table.ChangeEvent, a
// *table.SelectionEvent, or nil when nothing changed.
func (c Command) Apply(t *table.Table) (any, error) {
	switch c.Op {
	case OpSort:
		return nilEvent(t.ToggleSort(c.Column))
	case OpFilter:
		return nilEvent(t.SetFilter(c.Column, c.Values))
	case OpPage:
		if c.PageSize != 0 {
			return nilEvent(t.ChangePageSize(c.Current, c.PageSize))
		}
		return nilEvent(t.ChangePage(c.Current))
	case OpSelect:
		return nilEvent(t.Select(c.Index, c.Checked, c.Shift))
	case OpSelectBulk:
		return nilEvent(t.BulkSelect(c.Bulk))
	case OpSelectCustom:
		return nilEvent(t.CustomSelect(c.Key))
	}
	return nil, c.Validate()
}

// nilEvent keeps a typed nil event pointer from turning into a non-nil
// interface value.
func nilEvent[E any](ev *E, err error) (any, error) {
	if err != nil || ev == nil {
		return nil, err
	}
	return ev, nil
}
