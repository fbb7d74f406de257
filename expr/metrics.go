package expr

import (
	"fmt"

	"github.com/tracelab/workspaces-go/filters"
)

// MetricRef is a handle on a filterable run field. It stores the frontend
// name; translation to the backend name happens when a wire key is built.
// Comparison builders never compare values, they construct FilterExpr
// nodes.
type MetricRef struct {
	name    string
	section string
}

// Metric refers to run metadata fields and logged metrics ("run" section).
func Metric(name string) MetricRef {
	return MetricRef{name: name, section: "run"}
}

// Summary refers to the last logged value of a metric ("summary" section).
func Summary(name string) MetricRef {
	return MetricRef{name: name, section: "summary"}
}

// Config refers to a hyperparameter ("config" section).
func Config(name string) MetricRef {
	return MetricRef{name: name, section: "config"}
}

// Tags refers to the run tag set. It takes no name: tags always live on the
// run section under the fixed name "tags".
func Tags() MetricRef {
	return MetricRef{name: "tags", section: "run"}
}

// KeysInfo refers to the key-info meta section. You probably don't need it.
func KeysInfo(name string) MetricRef {
	return MetricRef{name: name, section: "keys_info"}
}

// metricConstructors rebuilds the concrete accessor for a section when
// converting wire keys back to handles. Tags is absent: it shares the run
// section with Metric.
var metricConstructors = map[string]func(string) MetricRef{
	"run":       Metric,
	"summary":   Summary,
	"config":    Config,
	"keys_info": KeysInfo,
}

func (m MetricRef) Name() string {
	return m.name
}

func (m MetricRef) Section() string {
	return m.section
}

// accessorName is the canonical accessor for this handle's section, used in
// diagnostics.
func (m MetricRef) accessorName() string {
	if name, ok := sectionMapReversed[m.section]; ok {
		return name
	}
	return "Metric"
}

func (m MetricRef) String() string {
	return fmt.Sprintf("%s('%s')", m.accessorName(), m.name)
}

// ToKey builds the wire key, translating the frontend name to its backend
// form.
func (m MetricRef) ToKey() filters.Key {
	return filters.Key{Section: m.section, Name: ToBackendName(m.name)}
}

// MetricFromKey rebuilds a handle from a wire key, translating the backend
// name to its frontend form. Unknown sections keep their section tag on a
// generic handle.
func MetricFromKey(key filters.Key) MetricRef {
	name := ToFrontendName(key.Name)
	if constructor, ok := metricConstructors[key.Section]; ok {
		return constructor(name)
	}
	return MetricRef{name: name, section: key.Section}
}

// Eq builds an equality filter (canonical operator "=").
func (m MetricRef) Eq(value interface{}) *FilterExpr {
	return NewFilterExpr(filters.OpEq, m, value)
}

// Ne builds an inequality filter.
func (m MetricRef) Ne(value interface{}) *FilterExpr {
	return NewFilterExpr(filters.OpNe, m, value)
}

// Lt builds a "<=" filter: the backend has no strict inequality, so "<" is
// coerced and an advisory is emitted.
func (m MetricRef) Lt(value interface{}) *FilterExpr {
	logger.Warn(fmt.Sprintf(
		"using '<' operator with %s is being mapped to '<=' for platform consistency, consider using '<=' explicitly in your filters",
		m.accessorName()))
	return NewFilterExpr(filters.OpLe, m, value)
}

// Le builds a "<=" filter.
func (m MetricRef) Le(value interface{}) *FilterExpr {
	return NewFilterExpr(filters.OpLe, m, value)
}

// Gt builds a ">=" filter: the backend has no strict inequality, so ">" is
// coerced and an advisory is emitted.
func (m MetricRef) Gt(value interface{}) *FilterExpr {
	logger.Warn(fmt.Sprintf(
		"using '>' operator with %s is being mapped to '>=' for platform consistency, consider using '>=' explicitly in your filters",
		m.accessorName()))
	return NewFilterExpr(filters.OpGe, m, value)
}

// Ge builds a ">=" filter.
func (m MetricRef) Ge(value interface{}) *FilterExpr {
	return NewFilterExpr(filters.OpGe, m, value)
}

// IsIn builds a membership filter.
func (m MetricRef) IsIn(values []interface{}) *FilterExpr {
	return NewFilterExpr(filters.OpIn, m, values)
}

// NotIn builds a non-membership filter.
func (m MetricRef) NotIn(values []interface{}) *FilterExpr {
	return NewFilterExpr(filters.OpNin, m, values)
}

// WithinLast filters runs created within the last amount of minutes, hours
// or days. Only valid on CreatedTimestamp.
func (m MetricRef) WithinLast(amount float64, unit string) (*FilterExpr, error) {
	if err := validateWithinLastField(m.ToKey()); err != nil {
		return nil, err
	}
	seconds, err := ToSeconds(amount, unit)
	if err != nil {
		return nil, err
	}
	return NewFilterExpr(filters.OpWithinSeconds, m, seconds), nil
}

// FilterExpr is one field comparison, the object form of a Filters leaf.
//
// Its fields are unexported: build one through the MetricRef comparison
// builders (Metric("loss").Le(0.5), Config("model").IsIn(...)) or the
// NewFilterExpr factory, which normalize the stored metric name.
type FilterExpr struct {
	op    string
	key   MetricRef
	value interface{}
}

// NewFilterExpr is the only construction path for FilterExpr. The metric
// name is re-wrapped through the backend-to-frontend translation so handles
// built from either name form store the same thing.
func NewFilterExpr(op string, key MetricRef, value interface{}) *FilterExpr {
	key.name = ToFrontendName(key.name)
	return &FilterExpr{op: op, key: key, value: value}
}

func (f *FilterExpr) Op() string {
	return f.op
}

func (f *FilterExpr) Key() MetricRef {
	return f.key
}

func (f *FilterExpr) Value() interface{} {
	return f.value
}

func (f *FilterExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", f.key, operatorMap.GetOr(f.op, f.op), formatValue(f.value))
}

// ToModel converts the expression to a canonical Filters leaf.
func (f *FilterExpr) ToModel() *filters.Filters {
	key := f.key.ToKey()
	return filters.NewLeaf(f.op, &key, f.value)
}

// Ordering pairs a field handle with a sort direction.
type Ordering struct {
	Item      MetricRef
	Ascending bool
}

// NewOrdering builds an ascending ordering on the given field.
func NewOrdering(item MetricRef) Ordering {
	return Ordering{Item: item, Ascending: true}
}

// ToSortKey converts the ordering to its wire form.
func (o Ordering) ToSortKey() filters.SortKey {
	key := o.Item.ToKey()
	return filters.SortKey{
		Key:       filters.SortKeyKey{Section: key.Section, Name: key.Name},
		Ascending: o.Ascending,
	}
}

// OrderingFromSortKey rebuilds an ordering from its wire form.
func OrderingFromSortKey(sortKey filters.SortKey) Ordering {
	item := MetricFromKey(filters.Key{Section: sortKey.Key.Section, Name: sortKey.Key.Name})
	return Ordering{Item: item, Ascending: sortKey.Ascending}
}
