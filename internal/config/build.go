package config

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/roach88/tablestate/internal/record"
	"github.com/roach88/tablestate/internal/table"
)

// Build binds cfg to table.Props. DataSource and callbacks are left to the
// caller. cfg must have passed Validate.
func Build(cfg *TableConfig) (table.Props, error) {
	columns, err := buildColumns(cfg.Columns)
	if err != nil {
		return table.Props{}, err
	}
	props := table.Props{
		Columns:            columns,
		RowKey:             table.KeyField(cfg.RowKey),
		ChildrenColumnName: cfg.ChildrenColumnName,
		SortDirections:     slices.Clone(cfg.SortDirections),
	}
	if p := cfg.Pagination; p != nil {
		props.Pagination = &table.PaginationConfig{
			Disabled:        p.Disabled,
			Current:         p.Current,
			DefaultCurrent:  p.DefaultCurrent,
			PageSize:        p.PageSize,
			DefaultPageSize: p.DefaultPageSize,
			Total:           p.Total,
		}
	}
	if s := cfg.Selection; s != nil {
		props.RowSelection = buildSelection(s)
	}
	return props, nil
}

func buildColumns(cols []ColumnConfig) ([]*table.Column, error) {
	out := make([]*table.Column, 0, len(cols))
	for _, c := range cols {
		children, err := buildColumns(c.Children)
		if err != nil {
			return nil, err
		}
		col := &table.Column{
			Key:                  c.Key,
			DataIndex:            c.DataIndex,
			Title:                c.Title,
			Fixed:                c.Fixed,
			Filters:              c.Filters,
			FilterMultiple:       c.FilterMultiple == nil || *c.FilterMultiple,
			FilteredValue:        c.FilteredValue,
			DefaultFilteredValue: c.DefaultFilteredValue,
			SortOrder:            c.SortOrder,
			DefaultSortOrder:     c.DefaultSortOrder,
			SortDirections:       slices.Clone(c.SortDirections),
		}
		if len(children) > 0 {
			col.Children = children
		}
		field := cmp.Or(c.DataIndex, c.Key)
		if s := c.Sorter; s != nil {
			sorter, err := NewSorter(s.Type, cmp.Or(s.Field, field), s.Locale)
			if err != nil {
				return nil, err
			}
			col.Sorter = sorter
		}
		if f := c.Filter; f != nil {
			filter, err := NewFilter(f.Type, cmp.Or(f.Field, field), f.IgnoreCase)
			if err != nil {
				return nil, err
			}
			col.OnFilter = filter
		}
		out = append(out, col)
	}
	return out, nil
}

func buildSelection(s *SelectionConfig) *table.RowSelection {
	rs := &table.RowSelection{
		Type:            table.SelectionType(cmp.Or(s.Type, string(table.SelectCheckbox))),
		SelectedRowKeys: s.SelectedRowKeys,
	}
	if s.DisabledWhen != nil || s.DefaultCheckedWhen != nil {
		disabled, checked := s.DisabledWhen, s.DefaultCheckedWhen
		rs.GetCheckboxProps = func(rec record.Object) table.CheckboxProps {
			return table.CheckboxProps{
				Disabled:       disabled.Matches(rec),
				DefaultChecked: checked.Matches(rec),
			}
		}
	}
	for _, item := range s.Selections {
		rs.Selections = append(rs.Selections, table.SelectionItem{
			Key:    item.Key,
			Text:   item.Text,
			Select: selectAction(item.Action, item.When),
		})
	}
	return rs
}

// selectAction returns the membership function of a selection item. Rows
// the rule does not match keep their membership.
func selectAction(action string, when *Rule) func(record.Object, bool) bool {
	return func(rec record.Object, selected bool) bool {
		if when != nil && !when.Matches(rec) {
			return selected
		}
		switch action {
		case ActionSelect:
			return true
		case ActionDeselect:
			return false
		case ActionInvert:
			return !selected
		}
		return selected
	}
}

// Matches reports whether rec satisfies the rule. A nil rule never
// matches.
func (r *Rule) Matches(rec record.Object) bool {
	if r == nil {
		return false
	}
	text := record.Text(rec.Get(r.Field))
	if r.Equals != nil && text == *r.Equals {
		return true
	}
	return slices.Contains(r.In, text)
}

// NewSorter returns the built-in comparator for typ over field.
//
// Every built-in sorter places rows whose field is missing (or, for
// "number", not numeric) after the others in both directions.
func NewSorter(typ, field, locale string) (table.CompareFunc, error) {
	switch typ {
	case "string":
		return textSorter(field, strings.Compare), nil
	case "number":
		return func(a, b record.Object, order table.SortOrder) int {
			x, okA := record.Number(a.Get(field))
			y, okB := record.Number(b.Get(field))
			if r, done := missingLast(!okA, !okB, order); done {
				return r
			}
			return cmp.Compare(x, y)
		}, nil
	case "collate":
		tag := language.Und
		if locale != "" {
			t, err := language.Parse(locale)
			if err != nil {
				return nil, &LoadError{Code: ErrCodeLocale, Field: field, Message: err.Error()}
			}
			tag = t
		}
		// A Collator is not safe for concurrent use; a table calls its
		// sorter from one goroutine.
		c := collate.New(tag)
		return textSorter(field, c.CompareString), nil
	default:
		return nil, &LoadError{Code: ErrCodeSorterType, Field: field, Message: "unknown sorter type " + typ}
	}
}

func textSorter(field string, compare func(a, b string) int) table.CompareFunc {
	return func(a, b record.Object, order table.SortOrder) int {
		x, y := a.Get(field), b.Get(field)
		if r, done := missingLast(isMissing(x), isMissing(y), order); done {
			return r
		}
		return compare(record.Text(x), record.Text(y))
	}
}

func isMissing(v record.Value) bool {
	_, null := v.(record.Null)
	return null
}

// missingLast orders missing values after present ones. The table negates
// results for Descend, so the sign is flipped here to cancel that out.
func missingLast(aMissing, bMissing bool, order table.SortOrder) (int, bool) {
	if !aMissing && !bMissing {
		return 0, false
	}
	r := 0
	switch {
	case aMissing && !bMissing:
		r = 1
	case !aMissing && bMissing:
		r = -1
	}
	if order == table.Descend {
		r = -r
	}
	return r, true
}

// NewFilter returns the built-in predicate for typ over field. The
// selected filter value is compared against the field's text form.
func NewFilter(typ, field string, ignoreCase bool) (table.FilterFunc, error) {
	var match func(text, value string) bool
	switch typ {
	case "equals":
		match = func(text, value string) bool { return text == value }
		if ignoreCase {
			match = strings.EqualFold
		}
	case "contains":
		match = strings.Contains
	case "prefix":
		match = strings.HasPrefix
	default:
		return nil, &LoadError{Code: ErrCodeFilterType, Field: field, Message: "unknown filter type " + typ}
	}
	if ignoreCase && typ != "equals" {
		inner := match
		match = func(text, value string) bool {
			return inner(strings.ToLower(text), strings.ToLower(value))
		}
	}
	return func(value string, rec record.Object) bool {
		return match(record.Text(rec.Get(field)), value)
	}, nil
}
