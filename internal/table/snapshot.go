package table

import "github.com/roach88/tablestate/internal/record"

// Snapshot is a serializable view of the derived table state.
type Snapshot struct {
	Sort         SortState       `json:"sort"`
	Filters      Filters         `json:"filters"`
	Pagination   *Pagination     `json:"pagination,omitempty"`
	Total        int             `json:"total"`
	PageKeys     []string        `json:"page_keys"`
	PageRows     []record.Object `json:"page_rows"`
	SelectedKeys []string        `json:"selected_keys"`
	Dirty        bool            `json:"dirty"`
	Warnings     []Warning       `json:"warnings,omitempty"`
}

// Snapshot captures the current derived state.
func (t *Table) Snapshot() Snapshot {
	local := t.LocalData()
	page := t.CurrentPageData()
	s := Snapshot{
		Sort:         t.Sort(),
		Filters:      activeOnly(t.Filters()),
		Total:        len(local),
		PageKeys:     t.PageKeys(),
		PageRows:     page,
		SelectedKeys: t.SelectedKeys(),
		Dirty:        t.Dirty(),
		Warnings:     t.Warnings(),
	}
	if p, ok := t.Pagination(); ok {
		s.Pagination = &p
	}
	if s.PageRows == nil {
		s.PageRows = []record.Object{}
	}
	return s
}

// PageKeys returns the keys of the current page's top-level rows.
func (t *Table) PageKeys() []string {
	page := t.CurrentPageData()
	keys := make([]string, len(page))
	for i, rec := range page {
		keys[i] = t.RowKeyOf(rec, i)
	}
	return keys
}

func activeOnly(f Filters) Filters {
	out := Filters{}
	for _, k := range f.Active() {
		out[k] = f[k]
	}
	return out
}
