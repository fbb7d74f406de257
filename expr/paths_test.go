package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tracelab/workspaces-go/filters"
)

func TestKeyToServerPath(t *testing.T) {
	tests := []struct {
		key  filters.Key
		want string
	}{
		{filters.Key{Section: "config", Name: "lr"}, "config.lr"},
		{filters.Key{Section: "summary", Name: "loss"}, "summary_metrics.loss"},
		{filters.Key{Section: "keys_info", Name: "x"}, "keys_info.keys.x"},
		{filters.Key{Section: "tags", Name: "baseline"}, "tags.baseline"},
		{filters.Key{Section: "run", Name: "duration"}, "duration"},
	}

	for _, tt := range tests {
		got, err := KeyToServerPath(tt.key)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := KeyToServerPath(filters.Key{Section: "bogus", Name: "x"})
	assert.EqualError(t, err, `invalid key section "bogus" for "x"`)
}

func TestServerPathToKey(t *testing.T) {
	tests := []struct {
		path string
		want filters.Key
	}{
		{"config.lr", filters.Key{Section: "config", Name: "lr"}},
		{"summary_metrics.loss", filters.Key{Section: "summary", Name: "loss"}},
		{"keys_info.keys.x", filters.Key{Section: "keys_info", Name: "x"}},
		{"tags.baseline", filters.Key{Section: "tags", Name: "baseline"}},
		{"duration", filters.Key{Section: "run", Name: "duration"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ServerPathToKey(tt.path))
	}
}

func TestGroupByKey(t *testing.T) {
	tests := []struct {
		groupStr string
		want     filters.Key
	}{
		{"group", filters.Key{Section: "run", Name: "group"}},
		{"JobType", filters.Key{Section: "run", Name: "jobType"}},
		{"run.group", filters.Key{Section: "run", Name: "group"}},
		{"config.param", filters.Key{Section: "config", Name: "param.value"}},
		{"config.param.value", filters.Key{Section: "config", Name: "param.value"}},
		{"config.nested.x", filters.Key{Section: "config", Name: "nested.value.x"}},
		{"summary.loss", filters.Key{Section: "summary", Name: "loss"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GroupByKey(tt.groupStr), tt.groupStr)
	}
}
