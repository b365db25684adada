package hierarchy

import (
	"encoding/json"
	"math"
	"testing"

	"hierview/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, n *Node) string {
	t.Helper()
	data, err := json.Marshal(n)
	require.NoError(t, err)
	return string(data)
}

func TestBuildSharedPrefix(t *testing.T) {
	tbl := table.New("A", "B")
	tbl.Append(table.Row{"A": table.String("x"), "B": table.String("y")})
	tbl.Append(table.Row{"A": table.String("x"), "B": table.String("z")})
	tbl.Append(table.Row{"A": table.String("w"), "B": table.Absent()})

	root := Build(tbl)

	assert.Equal(t, `{"x":{"y":{},"z":{}},"w":{}}`, encode(t, root))
	assert.Equal(t, []string{"x", "w"}, root.Keys())
}

func TestBuildSkipsAbsentAndContinues(t *testing.T) {
	tbl := table.New("A", "B")
	tbl.Append(table.Row{"A": table.Absent(), "B": table.String("y")})

	assert.Equal(t, `{"y":{}}`, encode(t, Build(tbl)))
}

func TestBuildNullInMiddleColumn(t *testing.T) {
	tbl := table.New("Industry", "Segment", "Expert")
	tbl.Append(table.Row{"Industry": table.String("Semis"), "Segment": table.String("Foundry"), "Expert": table.String("Ann")})
	tbl.Append(table.Row{"Industry": table.String("Semis"), "Segment": table.Absent(), "Expert": table.String("Bo")})

	root := Build(tbl)

	semis, ok := root.Child("Semis")
	require.True(t, ok)
	assert.Equal(t, []string{"Foundry", "Bo"}, semis.Keys())

	bo, ok := semis.Child("Bo")
	require.True(t, ok)
	assert.True(t, bo.IsLeaf())
}

func TestBuildEmptyTable(t *testing.T) {
	root := Build(table.New("A", "B"))
	assert.Equal(t, 0, root.Len())
	assert.Equal(t, "{}", encode(t, root))

	assert.Equal(t, 0, Build(nil).Len())
}

func TestBuildAllAbsentRow(t *testing.T) {
	tbl := table.New("A", "B")
	tbl.Append(table.Row{"A": table.Absent(), "B": table.Absent()})
	tbl.Append(table.Row{})

	assert.True(t, Build(tbl).IsLeaf())
}

func TestBuildMissingColumnTreatedAsAbsent(t *testing.T) {
	tbl := table.New("A", "B", "C")
	tbl.Append(table.Row{"A": table.String("x"), "C": table.String("z")})

	assert.Equal(t, `{"x":{"z":{}}}`, encode(t, Build(tbl)))
}

func TestBuildIdempotentRows(t *testing.T) {
	row := table.Row{"A": table.String("x"), "B": table.Number(2020)}

	once := table.New("A", "B")
	once.Append(row)

	twice := table.New("A", "B")
	twice.Append(row)
	twice.Append(row)

	assert.True(t, Build(once).Equal(Build(twice)))
	assert.Equal(t, encode(t, Build(once)), encode(t, Build(twice)))
}

func TestBuildDeterministic(t *testing.T) {
	tbl := table.New("A", "B", "C")
	for _, a := range []string{"p", "q", "p", "r"} {
		for _, b := range []float64{1, 2.5, 1} {
			tbl.Append(table.Row{"A": table.String(a), "B": table.Number(b), "C": table.String(a + "-leaf")})
		}
	}

	first := Build(tbl)
	second := Build(tbl)

	assert.True(t, first.Equal(second))
	assert.Equal(t, encode(t, first), encode(t, second))
}

func TestBuildSharedPrefixIsSinglePath(t *testing.T) {
	tbl := table.New("A", "B", "C")
	tbl.Append(table.Row{"A": table.String("a"), "B": table.String("b"), "C": table.String("c1")})
	tbl.Append(table.Row{"A": table.String("a"), "B": table.String("b"), "C": table.String("c2")})

	root := Build(tbl)
	require.Equal(t, 1, root.Len())

	a, _ := root.Child("a")
	require.Equal(t, 1, a.Len())

	b, _ := a.Child("b")
	assert.Equal(t, []string{"c1", "c2"}, b.Keys())
}

func TestBuildNumericKeys(t *testing.T) {
	tbl := table.New("Year", "Value")
	tbl.Append(table.Row{"Year": table.Number(2020), "Value": table.Number(1.5)})
	tbl.Append(table.Row{"Year": table.Number(2020.0), "Value": table.Number(3)})

	assert.Equal(t, `{"2020":{"1.5":{},"3":{}}}`, encode(t, Build(tbl)))

	large := table.New("ID", "Sign")
	large.Append(table.Row{"ID": table.Number(1234567890123450), "Sign": table.Number(0)})
	large.Append(table.Row{"ID": table.Number(1e15), "Sign": table.Number(math.Copysign(0, -1))})
	large.Append(table.Row{"ID": table.Number(1e15), "Sign": table.Number(0)})

	assert.Equal(t, `{"1234567890123450":{"0":{}},"1000000000000000":{"0":{}}}`, encode(t, Build(large)))
}

func TestInsertReturnsPathEnd(t *testing.T) {
	root := New()
	end := Insert(root, []string{"A", "B"}, table.Row{"A": table.String("x"), "B": table.String("y")})

	x, _ := root.Child("x")
	y, _ := x.Child("y")
	assert.Same(t, y, end)

	assert.Same(t, root, Insert(root, []string{"A"}, table.Row{}))
}
