package table

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *Table {
	t := New("id", "name", "score")
	t.AppendRow(String("1"), String("a"), Int(10))
	t.AppendRow(String("2"), Null, Int(20))
	t.AppendRow(String("1"), String("c"), Null)
	return t
}

func TestNew_DeduplicatesColumnNames(t *testing.T) {
	tbl := New("a", "b", "a")
	assert.Equal(t, []string{"a", "b"}, tbl.Columns())
}

func TestAppendRow_PadsShortRows(t *testing.T) {
	tbl := New("a", "b", "c")
	tbl.AppendRow(Int(1))
	require.Equal(t, 1, tbl.NumRows())
	assert.True(t, tbl.Get(0, "b").IsNull())
	assert.True(t, tbl.Get(0, "c").IsNull())
}

func TestGet_MissingColumnIsNull(t *testing.T) {
	tbl := sampleTable()
	assert.True(t, tbl.Get(0, "nope").IsNull())
	assert.Len(t, tbl.Column("nope"), 3)
}

func TestRename_LastCollisionWins(t *testing.T) {
	tbl := New("ID", "Site", "Participant ID")
	tbl.AppendRow(String("7"), String("NYC"), String("9"))

	out := tbl.Rename(func(s string) string {
		switch s {
		case "ID", "Participant ID":
			return "participant_id"
		case "Site":
			return "city"
		}
		return s
	})

	assert.Equal(t, []string{"participant_id", "city"}, out.Columns())
	assert.Equal(t, "9", out.Get(0, "participant_id").String())
	assert.Equal(t, "ID", tbl.Columns()[0], "input must not change")
}

func TestEnsureColumns(t *testing.T) {
	tbl := sampleTable()
	out := tbl.EnsureColumns("score", "city")

	assert.Equal(t, []string{"id", "name", "score", "city"}, out.Columns())
	assert.True(t, out.Get(2, "city").IsNull())
	assert.False(t, tbl.Has("city"))
}

func TestApply(t *testing.T) {
	tbl := sampleTable()
	out := tbl.Apply("name", func(v Value) Value {
		if v.IsNull() {
			return String("?")
		}
		return v
	})

	assert.Equal(t, "?", out.Get(1, "name").String())
	assert.True(t, tbl.Get(1, "name").IsNull())
}

func TestDropMissing(t *testing.T) {
	tbl := sampleTable()

	assert.Equal(t, 2, tbl.DropMissing("name").NumRows())
	assert.Equal(t, 1, tbl.DropMissing("name", "score").NumRows())
	assert.Equal(t, 0, tbl.DropMissing("absent").NumRows())
}

func TestFromRows_RepeatedNames(t *testing.T) {
	tbl := FromRows(
		[]string{"id", "city", "city", "email"},
		[][]Value{
			{String("7"), String("NYC"), String("Boston"), String("a@x.org")},
			{String("8"), String("LA")},
		},
	)

	assert.Equal(t, []string{"id", "city", "email"}, tbl.Columns())
	require.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, []string{"7", "Boston", "a@x.org"}, tbl.Records()[0])
	assert.Equal(t, []string{"8", "", ""}, tbl.Records()[1])
}

func TestRowKeys_SeparatorInCells(t *testing.T) {
	kind := strconv.Itoa(int(KindString))
	tests := []struct {
		name string
		a, b []Value
	}{
		{
			name: "separator byte moved between cells",
			a:    []Value{String("a\x1f" + kind + ":b"), String("c")},
			b:    []Value{String("a"), String("b\x1f" + kind + ":c")},
		},
		{
			name: "length prefix spelled inside a cell",
			a:    []Value{String("x"), String("3:" + kind + ":y")},
			b:    []Value{String("x3:" + kind + ":"), String("y")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := New("k1", "k2")
			tbl.AppendRow(tt.a...)
			tbl.AppendRow(tt.b...)

			assert.Zero(t, tbl.DuplicateCount())
			assert.Equal(t, 2, tbl.DedupLast("k1", "k2").NumRows())
		})
	}
}

func TestDedupLast_KeepsLastOccurrence(t *testing.T) {
	out := sampleTable().DedupLast("id")

	require.Equal(t, 2, out.NumRows())
	assert.Equal(t, "2", out.Get(0, "id").String())
	assert.Equal(t, "1", out.Get(1, "id").String())
	assert.Equal(t, "c", out.Get(1, "name").String())
}

func TestSortStable(t *testing.T) {
	out := sampleTable().SortStable(func(a, b Row) bool {
		return Compare(a.Get("id"), b.Get("id")) < 0
	})

	assert.Equal(t, []string{"1", "1", "2"}, []string{
		out.Get(0, "id").String(), out.Get(1, "id").String(), out.Get(2, "id").String(),
	})
	assert.Equal(t, "a", out.Get(0, "name").String(), "ties keep input order")
}

func TestSelect(t *testing.T) {
	out := sampleTable().Select("score", "id", "extra")

	assert.Equal(t, []string{"score", "id", "extra"}, out.Columns())
	assert.Equal(t, []string{"10", "1", ""}, out.Records()[0])
}

func TestMissingAndDuplicateCounts(t *testing.T) {
	tbl := New("a", "b")
	tbl.AppendRow(Int(1), Null)
	tbl.AppendRow(Int(1), Null)
	tbl.AppendRow(Int(1), String("x"))
	tbl.AppendRow(String("1"), Null)

	assert.Equal(t, 3, tbl.MissingCount())
	assert.Equal(t, 1, tbl.DuplicateCount(), "string 1 and int 1 are different cells")
}
