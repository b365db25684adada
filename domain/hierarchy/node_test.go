package hierarchy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateDoesNotOverwrite(t *testing.T) {
	root := New()
	first := root.GetOrCreate("x")
	first.GetOrCreate("y")

	again := root.GetOrCreate("x")

	assert.Same(t, first, again)
	assert.Equal(t, 1, root.Len())
	assert.Equal(t, []string{"y"}, again.Keys())
}

func TestZeroValueNode(t *testing.T) {
	var n Node
	assert.True(t, n.IsLeaf())

	n.GetOrCreate("a")
	assert.Equal(t, []string{"a"}, n.Keys())
}

func TestKeysReturnsCopy(t *testing.T) {
	root := New()
	root.GetOrCreate("a")

	keys := root.Keys()
	keys[0] = "mutated"

	assert.Equal(t, []string{"a"}, root.Keys())
}

func TestEqualIgnoresOrder(t *testing.T) {
	left := New()
	left.GetOrCreate("a").GetOrCreate("b")
	left.GetOrCreate("c")

	right := New()
	right.GetOrCreate("c")
	right.GetOrCreate("a").GetOrCreate("b")

	assert.True(t, left.Equal(right))

	right.GetOrCreate("a").GetOrCreate("extra")
	assert.False(t, left.Equal(right))
}

func TestEqualNil(t *testing.T) {
	var missing *Node

	assert.True(t, New().Equal(nil))
	assert.True(t, missing.Equal(New()))
	assert.True(t, missing.Equal(nil))

	populated := New()
	populated.GetOrCreate("a")
	assert.False(t, populated.Equal(nil))
	assert.False(t, missing.Equal(populated))
}

func TestJSONRoundTripPreservesOrder(t *testing.T) {
	doc := `{"zeta":{"b":{},"a":{}},"alpha":{},"<tag>":{"\"quoted\"":{}}}`

	var n Node
	require.NoError(t, json.Unmarshal([]byte(doc), &n))
	assert.Equal(t, []string{"zeta", "alpha", "<tag>"}, n.Keys())

	out, err := json.Marshal(&n)
	require.NoError(t, err)

	var again Node
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, n.Keys(), again.Keys())
	assert.True(t, n.Equal(&again))
}

func TestUnmarshalRejectsNonObjects(t *testing.T) {
	cases := map[string]string{
		"array root":   `["a"]`,
		"string leaf":  `{"a":"b"}`,
		"number leaf":  `{"a":{"b":1}}`,
		"null leaf":    `{"a":null}`,
		"truncated":    `{"a":{}`,
		"bare literal": `true`,
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			var n Node
			assert.Error(t, json.Unmarshal([]byte(doc), &n))
		})
	}
}

func TestSummarize(t *testing.T) {
	root := New()
	x := root.GetOrCreate("x")
	x.GetOrCreate("y")
	x.GetOrCreate("z").GetOrCreate("deep")
	root.GetOrCreate("w")

	s := Summarize(root)

	assert.Equal(t, 5, s.Nodes)
	assert.Equal(t, 3, s.Leaves)
	assert.Equal(t, 3, s.MaxDepth)
	assert.Equal(t, 2, s.TopLevel)
	assert.InDelta(t, 5.0/3.0, s.MeanFanOut, 1e-9)
	assert.Equal(t, 2.0, s.MedianFanOut)
	assert.Equal(t, 2.0, s.MaxFanOut)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(New()))
}
