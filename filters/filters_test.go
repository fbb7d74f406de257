package filters

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeafAndGroupShape(t *testing.T) {
	leaf := NewLeaf(OpGe, &Key{Section: "run", Name: "a"}, 1)
	assert.True(t, leaf.IsLeaf())

	group := NewGroup(OpAnd, leaf)
	assert.False(t, group.IsLeaf())

	empty := NewGroup(OpAnd)
	assert.False(t, empty.IsLeaf())
	assert.NotNil(t, empty.Filters)
}

func TestCanonicalShape(t *testing.T) {
	tree := Canonical(nil)
	assert.Equal(t, OpOr, tree.Op)
	require.Len(t, tree.Filters, 1)
	assert.Equal(t, OpAnd, tree.Filters[0].Op)
	assert.Empty(t, tree.Filters[0].Filters)
}

func TestWireJSON(t *testing.T) {
	tree := Canonical([]*Filters{
		NewLeaf(OpEq, &Key{Section: "config", Name: "lr"}, 0.001),
	})

	out, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"op":"OR","filters":[{"op":"AND","filters":[{"op":"=","key":{"section":"config","name":"lr"},"value":0.001}]}]}`,
		string(out))

	var back Filters
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, OpOr, back.Op)
	require.Len(t, back.Filters, 1)
	leaf := back.Filters[0].Filters[0]
	assert.Equal(t, OpEq, leaf.Op)
	assert.Equal(t, &Key{Section: "config", Name: "lr"}, leaf.Key)
	assert.Equal(t, 0.001, leaf.Value)
}

func TestZeroValueIsNotDropped(t *testing.T) {
	leaf := NewLeaf(OpEq, &Key{Section: "summary", Name: "loss"}, 0)
	out, err := json.Marshal(leaf)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"value":0`)
}

func TestSortKeyDefaults(t *testing.T) {
	sk := NewSortKey()
	assert.Equal(t, "run", sk.Key.Section)
	assert.Equal(t, "createdAt", sk.Key.Name)
	assert.False(t, sk.Ascending)

	out, err := json.Marshal(sk)
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":{"section":"run","name":"createdAt"},"ascending":false}`, string(out))
}
