package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tablestate/internal/record"
)

func TestToggleSort_CycleHasPeriodThree(t *testing.T) {
	var s SortState
	var orders []SortOrder
	for i := 0; i < 6; i++ {
		s = ToggleSort(s, "age", []SortOrder{Ascend, Descend})
		orders = append(orders, s.Order)
	}
	assert.Equal(t, []SortOrder{Ascend, Descend, SortNone, Ascend, Descend, SortNone}, orders)
}

func TestToggleSort_Rules(t *testing.T) {
	tests := []struct {
		name       string
		current    SortState
		key        string
		directions []SortOrder
		want       SortState
	}{
		{
			name:    "other column starts at first direction",
			current: SortState{ColumnKey: "a", Order: Descend},
			key:     "b",
			want:    SortState{ColumnKey: "b", Order: Ascend},
		},
		{
			name:       "custom directions",
			key:        "a",
			directions: []SortOrder{Descend, Ascend},
			want:       SortState{ColumnKey: "a", Order: Descend},
		},
		{
			name:       "single direction clears on second click",
			current:    SortState{ColumnKey: "a", Order: Descend},
			key:        "a",
			directions: []SortOrder{Descend},
			want:       SortState{},
		},
		{
			name:    "empty directions use default",
			current: SortState{ColumnKey: "a", Order: Ascend},
			key:     "a",
			want:    SortState{ColumnKey: "a", Order: Descend},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToggleSort(tt.current, tt.key, tt.directions)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.ColumnKey == "", got.Order == SortNone, "order is none iff column is empty")
		})
	}
}

func TestComparator(t *testing.T) {
	col := &Column{Key: "n", Sorter: numberSorter("n")}
	a := record.NewObject(record.O("n", record.Int(1)))
	b := record.NewObject(record.O("n", record.Int(2)))

	asc := Comparator(col, Ascend)
	desc := Comparator(col, Descend)
	require.NotNil(t, asc)
	assert.Negative(t, asc(a, b))
	assert.Positive(t, desc(a, b))
	assert.Zero(t, desc(a, a), "ties stay ties in both directions")

	assert.Nil(t, Comparator(col, SortNone))
	assert.Nil(t, Comparator(&Column{Key: "x"}, Ascend))
	assert.Nil(t, Comparator(nil, Ascend))
}

func TestComparator_SorterPanicPropagates(t *testing.T) {
	col := &Column{Key: "n", Sorter: func(a, b record.Object, _ SortOrder) int { panic("boom") }}
	cmp := Comparator(col, Ascend)
	assert.Panics(t, func() { RecursiveSort(rowsN(2), cmp, "children") })
}

func TestRecursiveSort_StableAndHierarchical(t *testing.T) {
	child := func(id, n int) record.Object { return row(id, record.O("n", record.Int(n))) }
	parentA := record.WithChildren(child(1, 2), "children", []record.Object{child(11, 3), child(12, 1), child(13, 2)})
	parentB := record.WithChildren(child(2, 1), "children", []record.Object{child(21, 9), child(22, 0)})
	tie := child(3, 2)
	data := []record.Object{parentA, parentB, tie}

	cmp := Comparator(&Column{Sorter: numberSorter("n")}, Ascend)
	sorted := RecursiveSort(data, cmp, "children")

	assert.Equal(t, []string{"2", "1", "3"}, idsOf(sorted), "ties keep input order")
	assert.Equal(t, []string{"22", "21"}, idsOf(record.Children(sorted[0], "children")))
	assert.Equal(t, []string{"12", "13", "11"}, idsOf(record.Children(sorted[1], "children")))

	// Inputs are untouched.
	assert.Equal(t, []string{"1", "2", "3"}, idsOf(data))
	assert.Equal(t, []string{"11", "12", "13"}, idsOf(record.Children(parentA, "children")))
}

func TestRecursiveSort_NilComparatorIsIdentity(t *testing.T) {
	data := rowsN(3)
	assert.Equal(t, data, RecursiveSort(data, nil, "children"))
}

func TestSortStateFromColumns(t *testing.T) {
	s, controlled := SortStateFromColumns([]*Column{{Key: "a"}, {Key: "b", DefaultSortOrder: Ascend}})
	assert.False(t, controlled)
	assert.Equal(t, SortState{}, s)

	s, controlled = SortStateFromColumns([]*Column{
		{Key: "a", SortOrder: Order(SortNone)},
		{Key: "b", SortOrder: Order(Descend)},
		{Key: "c", SortOrder: Order(Ascend)},
	})
	assert.True(t, controlled)
	assert.Equal(t, SortState{ColumnKey: "b", Order: Descend}, s, "first non-empty order wins")

	assert.Equal(t, SortState{ColumnKey: "b", Order: Ascend},
		defaultSortFromIndex(NewColumnIndex([]*Column{{Key: "a"}, {Key: "b", DefaultSortOrder: Ascend}})))
}
