package expr

import (
	"github.com/tracelab/workspaces-go/bimap"
	"github.com/tracelab/workspaces-go/filters"
)

// sectionMap maps expression accessor names to backend section tags.
// Summary is an alias for SummaryMetric, so the map is many-to-one and is
// inverted by hand below.
var sectionMap = map[string]string{
	"Config":        "config",
	"SummaryMetric": "summary",
	"Summary":       "summary",
	"KeysInfo":      "keys_info",
	"Tags":          "tags",
	"Metric":        "run",
}

// sectionMapReversed picks the canonical accessor per section;
// "summary" inverts to SummaryMetric, not Summary.
var sectionMapReversed = map[string]string{
	"config":    "Config",
	"summary":   "SummaryMetric",
	"keys_info": "KeysInfo",
	"tags":      "Tags",
	"run":       "Metric",
}

// feMetricNameMap translates user-facing run field names to the backend
// field names stored in the wire schema. Names absent from the map pass
// through unchanged in both directions.
var feMetricNameMap = bimap.MustNew(map[string]string{
	"ID":                    "name",
	"Name":                  "displayName",
	"Tags":                  "tags",
	"State":                 "state",
	"CreatedTimestamp":      "createdAt",
	"Runtime":               "duration",
	"User":                  "username",
	"Sweep":                 "sweep",
	"Group":                 "group",
	"JobType":               "jobType",
	"Hostname":              "host",
	"UsingArtifact":         "inputArtifacts",
	"OutputtingArtifact":    "outputArtifacts",
	"Step":                  "_step",
	"RelativeTime(Wall)":    "_absolute_runtime",
	"RelativeTime(Process)": "_runtime",
	"WallTime":              "_timestamp",
})

// operatorMap maps backend operators to their expression spelling.
var operatorMap = bimap.MustNew(map[string]string{
	filters.OpAnd:           "and",
	filters.OpOr:            "or",
	filters.OpEq:            "==",
	filters.OpNe:            "!=",
	filters.OpLt:            "<",
	filters.OpLe:            "<=",
	filters.OpGt:            ">",
	filters.OpGe:            ">=",
	filters.OpIn:            "in",
	filters.OpNin:           "not in",
	filters.OpWithinSeconds: "within_last",
})

// ToBackendName translates a frontend field name to its backend form.
// Unmapped names pass through unchanged.
func ToBackendName(name string) string {
	return feMetricNameMap.GetOr(name, name)
}

// ToFrontendName translates a backend field name to its frontend form.
// Unmapped names pass through unchanged.
func ToFrontendName(name string) string {
	return feMetricNameMap.GetInverseOr(name, name)
}
