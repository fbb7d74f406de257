package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tracelab/workspaces-go/filters"
	"github.com/tracelab/workspaces-go/internal/testutil"
)

func TestTreeToList(t *testing.T) {
	tree, err := ToFilters("Metric('Runtime') >= 60 and Config('lr') <= 0.001")
	assert.NoError(t, err)

	list := TreeToList(tree)
	assert.Equal(t, []*FilterExpr{
		Metric("Runtime").Ge(int64(60)),
		Config("lr").Le(0.001),
	}, list)
}

func TestTreeToListSkipsKeylessLeaves(t *testing.T) {
	tree := filters.Canonical([]*filters.Filters{
		filters.NewLeaf(filters.OpEq, nil, int64(1)),
		leaf(filters.OpGe, "run", "duration", int64(60)),
	})
	assert.Equal(t, []*FilterExpr{Metric("Runtime").Ge(int64(60))}, TreeToList(tree))
}

func TestListToTree(t *testing.T) {
	list := []*FilterExpr{
		Metric("State").Eq("finished"),
		Summary("loss").Le(0.5),
		nil,
	}
	assert.Equal(t, filters.Canonical([]*filters.Filters{
		leaf(filters.OpEq, "run", "state", "finished"),
		leaf(filters.OpLe, "summary", "loss", 0.5),
	}), ListToTree(list))
}

func TestTreeListRoundTrip(t *testing.T) {
	tree, err := ToFilters("Metric('Runtime') >= 60 and Metric('State') == 'finished'")
	assert.NoError(t, err)
	assert.Equal(t, tree, ListToTree(TreeToList(tree)))
}

func TestStringToList(t *testing.T) {
	list, err := StringToList("")
	assert.NoError(t, err)
	assert.Nil(t, list)

	list, err = StringToList("Metric('Runtime') >= 60")
	assert.NoError(t, err)
	assert.Equal(t, []*FilterExpr{Metric("Runtime").Ge(int64(60))}, list)

	_, err = StringToList("Foo('x') == 1")
	assert.Error(t, err)
}

func TestListToString(t *testing.T) {
	assert.Equal(t, "", ListToString(nil))

	got := ListToString([]*FilterExpr{
		Metric("Runtime").Ge(60),
		Config("lr").Le(0.001),
	})
	testutil.AssertEqualExpr(t, `(Metric("Runtime") >= 60 and Config("lr") <= 0.001)`, got)
}

func TestNormalizeFilters(t *testing.T) {
	got, err := NormalizeFilters(nil)
	assert.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = NormalizeFilters("Metric('Runtime') >= 60")
	assert.NoError(t, err)
	assert.Equal(t, "Metric('Runtime') >= 60", got)

	got, err = NormalizeFilters([]*FilterExpr{Metric("State").Eq("finished")})
	assert.NoError(t, err)
	testutil.AssertEqualExpr(t, `(Metric("State") == 'finished')`, got)

	_, err = NormalizeFilters(42)
	assert.EqualError(t, err, "filters must be a string or a []*FilterExpr, got int")
}
