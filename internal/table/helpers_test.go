package table

import (
	"cmp"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/tablestate/internal/record"
)

func row(id int, pairs ...record.Pair) record.Object {
	return record.NewObject(append([]record.Pair{record.O("id", record.Int(id))}, pairs...)...)
}

func rowsN(n int) []record.Object {
	out := make([]record.Object, n)
	for i := range out {
		out[i] = row(i + 1)
	}
	return out
}

func idsOf(rows []record.Object) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = record.Text(r.Get("id"))
	}
	return out
}

func numberSorter(field string) CompareFunc {
	return func(a, b record.Object, _ SortOrder) int {
		x, _ := record.Number(a.Get(field))
		y, _ := record.Number(b.Get(field))
		return cmp.Compare(x, y)
	}
}

func equalsFilter(field string) FilterFunc {
	return func(value string, rec record.Object) bool {
		return record.Text(rec.Get(field)) == value
	}
}

func prefixFilter(field string) FilterFunc {
	return func(value string, rec record.Object) bool {
		return strings.HasPrefix(record.Text(rec.Get(field)), value)
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestTable(props Props) *Table {
	if props.RowKey.Field == "" && props.RowKey.Func == nil {
		props.RowKey = KeyField("id")
	}
	return New(props, WithLogger(quietLogger()))
}
