package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tracelab/workspaces-go/filters"
)

func leaf(op, section, name string, value interface{}) *filters.Filters {
	return filters.NewLeaf(op, &filters.Key{Section: section, Name: name}, value)
}

func TestToFiltersEmpty(t *testing.T) {
	got, err := ToFilters("")
	assert.NoError(t, err)
	assert.Equal(t, filters.Canonical(nil), got)
}

func TestToFilters(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		want       *filters.Filters
	}{
		{
			"single comparison",
			"a >= 1",
			filters.Canonical([]*filters.Filters{
				leaf(filters.OpGe, "run", "a", int64(1)),
			}),
		},
		{
			"root conjunction unpacked",
			"b == 1 and c == 2",
			filters.Canonical([]*filters.Filters{
				leaf(filters.OpEq, "run", "b", int64(1)),
				leaf(filters.OpEq, "run", "c", int64(2)),
			}),
		},
		{
			"single equals accepted",
			"b = 1",
			filters.Canonical([]*filters.Filters{
				leaf(filters.OpEq, "run", "b", int64(1)),
			}),
		},
		{
			"config accessor",
			"Config('param') == 'value'",
			filters.Canonical([]*filters.Filters{
				leaf(filters.OpEq, "config", "param", "value"),
			}),
		},
		{
			"bare name translated",
			"Runtime >= 60",
			filters.Canonical([]*filters.Filters{
				leaf(filters.OpGe, "run", "duration", int64(60)),
			}),
		},
		{
			"accessor name translated",
			"Metric('Runtime') >= 60",
			filters.Canonical([]*filters.Filters{
				leaf(filters.OpGe, "run", "duration", int64(60)),
			}),
		},
		{
			"dotted name resolves section",
			"config.lr >= 0.001",
			filters.Canonical([]*filters.Filters{
				leaf(filters.OpGe, "config", "lr", 0.001),
			}),
		},
		{
			"disjunction nests under the canonical group",
			"State == 'finished' or State == 'crashed'",
			filters.Canonical([]*filters.Filters{
				filters.NewGroup(filters.OpOr,
					leaf(filters.OpEq, "run", "state", "finished"),
					leaf(filters.OpEq, "run", "state", "crashed"),
				),
			}),
		},
		{
			"tags membership",
			"Tags() in ['baseline', 'ablation']",
			filters.Canonical([]*filters.Filters{
				leaf(filters.OpIn, "run", "tags", []interface{}{"baseline", "ablation"}),
			}),
		},
		{
			"not in",
			"User not in ['alice', 'bob']",
			filters.Canonical([]*filters.Filters{
				leaf(filters.OpNin, "run", "username", []interface{}{"alice", "bob"}),
			}),
		},
		{
			"tuple values",
			"a in (1, 2)",
			filters.Canonical([]*filters.Filters{
				leaf(filters.OpIn, "run", "a", []interface{}{int64(1), int64(2)}),
			}),
		},
		{
			"keyword literals",
			"a == None and b == True and c == False",
			filters.Canonical([]*filters.Filters{
				leaf(filters.OpEq, "run", "a", nil),
				leaf(filters.OpEq, "run", "b", true),
				leaf(filters.OpEq, "run", "c", false),
			}),
		},
		{
			"within_last operator form",
			"Metric('CreatedTimestamp') within_last 5 days",
			filters.Canonical([]*filters.Filters{
				leaf(filters.OpWithinSeconds, "run", "createdAt", int64(432000)),
			}),
		},
		{
			"within_last function form",
			"WithinLast(Metric('CreatedTimestamp'), 2, 'hours')",
			filters.Canonical([]*filters.Filters{
				leaf(filters.OpWithinSeconds, "run", "createdAt", int64(7200)),
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToFilters(tt.expression)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToFiltersSummaryAlias(t *testing.T) {
	canonical, err := ToFilters("SummaryMetric('loss') <= 0.5")
	assert.NoError(t, err)
	alias, err := ToFilters("Summary('loss') <= 0.5")
	assert.NoError(t, err)
	assert.Equal(t, canonical, alias)
}

func TestToFiltersStrictComparisonCoerced(t *testing.T) {
	rec := captureWarnings(t)

	got, err := ToFilters("Metric('Runtime') > 60")
	assert.NoError(t, err)
	assert.Equal(t, filters.Canonical([]*filters.Filters{
		leaf(filters.OpGe, "run", "duration", int64(60)),
	}), got)
	assert.Len(t, rec.warnings, 1)
}

func TestToFiltersArithmetic(t *testing.T) {
	tests := []struct {
		expression string
		want       interface{}
	}{
		{"a == 2 ** 10", int64(1024)},
		{"a == 7 / 2", 3.5},
		{"a == 7 // 2", int64(3)},
		{"a == -7 // 2", int64(-4)},
		{"a == -7 % 3", int64(2)},
		{"a == 7 % -3", int64(-2)},
		{"a == 1 + 2 * 3", int64(7)},
		{"a == (1 + 2) * 3", int64(9)},
		{"a == -5", int64(-5)},
		{"a == 2 ** -1", 0.5},
		{"a == 1.5 * 2", 3.0},
		{"a == 'x' + 'y'", "xy"},
		{"a in [1] + [2]", []interface{}{int64(1), int64(2)}},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			got, err := ToFilters(tt.expression)
			assert.NoError(t, err)
			value := got.Filters[0].Filters[0].Value
			assert.Equal(t, tt.want, value)
		})
	}
}

func TestToFiltersErrors(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		wantErr    string
	}{
		{
			"unknown accessor",
			"Foo('x') == 1",
			"unsupported function name: Foo",
		},
		{
			"accessor argument not a string",
			"Config(1) == 'x'",
			"invalid arguments for Config: expected string literal",
		},
		{
			"within_last arity",
			"WithinLast(Metric('CreatedTimestamp'), 5)",
			"WithinLast requires exactly 3 arguments (metric, amount, unit), got 2",
		},
		{
			"within_last wrong field",
			"Metric('Runtime') within_last 5 days",
			"the 'within_last' operator is only available for CreatedTimestamp, cannot use with 'Runtime'",
		},
		{
			"within_last bad unit",
			"WithinLast(Metric('CreatedTimestamp'), 5, 'weeks')",
			"invalid time unit 'weeks', must be 'minutes', 'hours', or 'days'",
		},
		{
			"division by zero",
			"a == 1 / 0",
			"division by zero at position 5",
		},
		{
			"string plus number",
			"a == 'x' + 1",
			"unsupported operand type string at position 5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToFilters(tt.expression)
			assert.EqualError(t, err, tt.wantErr)
		})
	}

	for _, expression := range []string{"a ==", "a == 1 extra", "a == )", "[1, 2", "'open"} {
		_, err := ToFilters(expression)
		assert.Error(t, err, expression)
	}
}
