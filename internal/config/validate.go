package config

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/roach88/tablestate/internal/table"
)

var (
	sorterTypes = map[string]bool{"string": true, "number": true, "collate": true}
	filterTypes = map[string]bool{"equals": true, "contains": true, "prefix": true}
)

// Validate checks the semantic rules the schema cannot express and
// returns every problem found, in column order.
func Validate(cfg *TableConfig) []error {
	var errs []error
	add := func(code, field, format string, args ...any) {
		errs = append(errs, &LoadError{Code: code, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if len(cfg.Columns) == 0 {
		add(ErrCodeNoColumns, "columns", "at least one column is required")
	}
	for _, o := range cfg.SortDirections {
		if o != table.Ascend && o != table.Descend {
			add(ErrCodeSortOrder, "sort_directions", "invalid direction %q", o)
		}
	}

	seen := map[string]bool{}
	for _, fc := range table.Normalize(shapeColumns(cfg.Columns)) {
		if seen[fc.Key] {
			add(ErrCodeDuplicateKey, "columns", "duplicate column key %q", fc.Key)
		}
		seen[fc.Key] = true
	}

	var walk func(cols []ColumnConfig, path string)
	walk = func(cols []ColumnConfig, path string) {
		for i, c := range cols {
			field := fmt.Sprintf("%s[%d]", path, i)
			group := len(c.Children) > 0
			if c.Sorter != nil {
				if group {
					add(ErrCodeGroupBehaviour, field, "column groups cannot sort")
				}
				if !sorterTypes[c.Sorter.Type] {
					add(ErrCodeSorterType, field+".sorter", "unknown sorter type %q", c.Sorter.Type)
				}
				if c.Sorter.Locale != "" {
					if _, err := language.Parse(c.Sorter.Locale); err != nil {
						add(ErrCodeLocale, field+".sorter", "invalid locale %q: %v", c.Sorter.Locale, err)
					}
				}
			}
			if c.Filter != nil {
				if group {
					add(ErrCodeGroupBehaviour, field, "column groups cannot filter")
				}
				if !filterTypes[c.Filter.Type] {
					add(ErrCodeFilterType, field+".filter", "unknown filter type %q", c.Filter.Type)
				}
			}
			if c.SortOrder != nil && !c.SortOrder.Valid() {
				add(ErrCodeSortOrder, field+".sort_order", "invalid sort order %q", *c.SortOrder)
			}
			if !c.DefaultSortOrder.Valid() {
				add(ErrCodeSortOrder, field+".default_sort_order", "invalid sort order %q", c.DefaultSortOrder)
			}
			for _, o := range c.SortDirections {
				if o != table.Ascend && o != table.Descend {
					add(ErrCodeSortOrder, field+".sort_directions", "invalid direction %q", o)
				}
			}
			walk(c.Children, field+".children")
		}
	}
	walk(cfg.Columns, "columns")

	if s := cfg.Selection; s != nil {
		if s.Type != "" && s.Type != string(table.SelectCheckbox) && s.Type != string(table.SelectRadio) {
			add(ErrCodeSelectionType, "selection.type", "invalid selection type %q", s.Type)
		}
		type namedRule struct {
			name string
			rule *Rule
		}
		rules := []namedRule{{"disabled_when", s.DisabledWhen}, {"default_checked_when", s.DefaultCheckedWhen}}
		for i, item := range s.Selections {
			name := fmt.Sprintf("selections[%d]", i)
			switch item.Action {
			case ActionSelect, ActionDeselect, ActionInvert:
			default:
				add(ErrCodeItemAction, "selection."+name+".action", "invalid action %q", item.Action)
			}
			rules = append(rules, namedRule{name + ".when", item.When})
		}
		for _, r := range rules {
			if r.rule != nil && r.rule.Equals == nil && len(r.rule.In) == 0 {
				add(ErrCodeRule, "selection."+r.name, "rule needs equals or in")
			}
		}
	}
	return errs
}

// shapeColumns builds key-only columns so key resolution matches the
// table exactly.
func shapeColumns(cols []ColumnConfig) []*table.Column {
	out := make([]*table.Column, len(cols))
	for i, c := range cols {
		out[i] = &table.Column{Key: c.Key, DataIndex: c.DataIndex, Children: shapeColumns(c.Children)}
	}
	return out
}
