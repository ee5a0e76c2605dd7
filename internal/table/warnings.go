package table

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
)

// WarningCode categorizes configuration warnings.
type WarningCode string

const (
	// WarnMissingRowKey: rowKey resolved to nothing; the row falls back to
	// its positional index.
	WarnMissingRowKey WarningCode = "MISSING_ROW_KEY"

	// WarnDuplicateRowKey: two rows of the flattened data share a key.
	WarnDuplicateRowKey WarningCode = "DUPLICATE_ROW_KEY"

	// WarnInvalidPageSize: a configured page size is negative.
	WarnInvalidPageSize WarningCode = "INVALID_PAGE_SIZE"

	// WarnStaleFilter: a filter referenced a column that no longer exists.
	WarnStaleFilter WarningCode = "STALE_FILTER"
)

// Warning is a non-fatal configuration problem. Each distinct warning is
// logged and recorded once per data source.
type Warning struct {
	Code    WarningCode       `json:"code" yaml:"code"`
	Message string            `json:"message" yaml:"message"`
	Details map[string]string `json:"details,omitempty" yaml:"details,omitempty"`
}

// warnings dedupes and records warnings.
type warnings struct {
	logger *slog.Logger
	seen   map[string]struct{}
	list   []Warning
}

func newWarnings(logger *slog.Logger) *warnings {
	return &warnings{logger: logger, seen: make(map[string]struct{})}
}

// warn records w unless a warning with the same identity was already seen.
func (w *warnings) warn(identity string, code WarningCode, details map[string]string, format string, args ...any) {
	id := string(code) + "\x00" + identity
	if _, dup := w.seen[id]; dup {
		return
	}
	w.seen[id] = struct{}{}
	msg := fmt.Sprintf(format, args...)
	w.list = append(w.list, Warning{Code: code, Message: msg, Details: details})

	attrs := []any{"code", string(code)}
	for _, k := range sortedDetailKeys(details) {
		attrs = append(attrs, k, details[k])
	}
	w.logger.Warn(msg, attrs...)
}

// forgetRows clears the row-scoped dedupe entries so a new data source
// reports its own key problems.
func (w *warnings) forgetRows() {
	for id := range w.seen {
		if hasCodePrefix(id, WarnMissingRowKey) || hasCodePrefix(id, WarnDuplicateRowKey) {
			delete(w.seen, id)
		}
	}
}

func hasCodePrefix(id string, code WarningCode) bool {
	p := string(code) + "\x00"
	return len(id) >= len(p) && id[:len(p)] == p
}

func sortedDetailKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
