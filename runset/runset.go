// runset contains the filter-bearing containers: the report Runset and the
// workspace RunsetSettings. Both accept filters as an expression string or
// a list of expr.FilterExpr and normalize to the string form on
// construction, so downstream consumers only ever see one representation.
package runset

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/tracelab/workspaces-go/expr"
	"github.com/tracelab/workspaces-go/filters"
	"github.com/tracelab/workspaces-go/gql"
)

var (
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	validate = validator.New()

	uni := ut.New(en.New(), en.New())
	trans, _ = uni.GetTranslator("en")

	_ = enTranslations.RegisterDefaultTranslations(validate, trans)
}

// translateValidatorError flattens validator's error map into one readable
// error.
func translateValidatorError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	translated := validationErrors.Translate(trans)
	vals := make([]string, 0, len(translated))
	for _, value := range translated {
		vals = append(vals, value)
	}
	return errors.New(strings.Join(vals, " "))
}

const nameAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateName produces a random spec-document id, matching the id shape
// the frontend generates.
func generateName() string {
	var b strings.Builder
	for i := 0; i < 12; i++ {
		b.WriteByte(nameAlphabet[rand.Intn(len(nameAlphabet))])
	}
	return b.String()
}

// Runset is a set of runs to display in a report panel grid.
type Runset struct {
	Entity  string
	Project string
	Name    string `validate:"required"`
	Query   string

	// Always the string form; list input is normalized at the boundary.
	filters string

	GroupBy []string
	Order   []expr.Ordering

	id string
}

// New builds a Runset. filterInput may be an expression string or a
// []*expr.FilterExpr; defaults match a fresh run set in the UI (named
// "Run set", newest runs first, no filters).
func New(entity, project string, filterInput interface{}) (*Runset, error) {
	normalized, err := expr.NormalizeFilters(filterInput)
	if err != nil {
		return nil, err
	}
	r := &Runset{
		Entity:  entity,
		Project: project,
		Name:    "Run set",
		filters: normalized,
		Order: []expr.Ordering{
			{Item: expr.Metric("CreatedTimestamp"), Ascending: false},
		},
		id: generateName(),
	}
	if err := validate.Struct(r); err != nil {
		return nil, translateValidatorError(err)
	}
	return r, nil
}

// Filters returns the normalized filter expression string.
func (r *Runset) Filters() string {
	return r.filters
}

// SetFilters replaces the filters, accepting either input form.
func (r *Runset) SetFilters(filterInput interface{}) error {
	normalized, err := expr.NormalizeFilters(filterInput)
	if err != nil {
		return err
	}
	r.filters = normalized
	return nil
}

// ProjectRef is the wire reference to the project a runset pulls runs from.
type ProjectRef struct {
	EntityName string `json:"entityName" mapstructure:"entityName"`
	Name       string `json:"name" mapstructure:"name"`
	ID         string `json:"id" mapstructure:"id"`
}

// Search is the wire form of the runset search box.
type Search struct {
	Query string `json:"query" mapstructure:"query"`
}

// Sort is the wire form of the runset sort order.
type Sort struct {
	Keys []filters.SortKey `json:"keys" mapstructure:"keys"`
}

// Model is the wire form of a runset inside a saved view spec.
type Model struct {
	ID       string           `json:"id" mapstructure:"id"`
	Project  *ProjectRef      `json:"project,omitempty" mapstructure:"project"`
	Name     string           `json:"name" mapstructure:"name"`
	Search   Search           `json:"search" mapstructure:"search"`
	Filters  *filters.Filters `json:"filters" mapstructure:"filters"`
	Grouping []filters.Key    `json:"grouping" mapstructure:"grouping"`
	Sort     Sort             `json:"sort" mapstructure:"sort"`
}

// ToModel converts the runset to its wire form. When both entity and
// project are set, the project's internal id is resolved through the
// executor; a missing project is an error rather than a silently broken
// reference.
func (r *Runset) ToModel(ctx context.Context, executor gql.Executor) (*Model, error) {
	var project *ProjectRef
	if r.Entity != "" && r.Project != "" {
		response, err := executor.Execute(ctx, gql.ProjectInternalID, map[string]interface{}{
			"entityName":  r.Entity,
			"projectName": r.Project,
		})
		if err != nil {
			return nil, err
		}
		raw, ok := response["project"].(map[string]interface{})
		if !ok || raw == nil {
			return nil, fmt.Errorf(
				"run set '%s' project '%s/%s' not found, verify the entity and project names and that you have access",
				r.Name, r.Entity, r.Project)
		}
		internalID, _ := raw["internalId"].(string)
		project = &ProjectRef{EntityName: r.Entity, Name: r.Project, ID: internalID}
	}

	tree, err := expr.ToFilters(r.filters)
	if err != nil {
		return nil, err
	}

	grouping := make([]filters.Key, 0, len(r.GroupBy))
	for _, group := range r.GroupBy {
		grouping = append(grouping, expr.GroupByKey(group))
	}

	keys := make([]filters.SortKey, 0, len(r.Order))
	for _, ordering := range r.Order {
		keys = append(keys, ordering.ToSortKey())
	}

	return &Model{
		ID:       r.id,
		Project:  project,
		Name:     r.Name,
		Search:   Search{Query: r.Query},
		Filters:  tree,
		Grouping: grouping,
		Sort:     Sort{Keys: keys},
	}, nil
}

// FromModel rebuilds a Runset from its wire form. The filter tree comes
// back as its expression string.
func FromModel(model *Model) *Runset {
	entity, project := "", ""
	if model.Project != nil {
		entity = model.Project.EntityName
		project = model.Project.Name
	}

	groupBy := make([]string, 0, len(model.Grouping))
	for _, key := range model.Grouping {
		groupBy = append(groupBy, groupByString(key))
	}

	order := make([]expr.Ordering, 0, len(model.Sort.Keys))
	for _, sortKey := range model.Sort.Keys {
		order = append(order, expr.OrderingFromSortKey(sortKey))
	}

	id := model.ID
	if id == "" {
		id = generateName()
	}

	return &Runset{
		Entity:  entity,
		Project: project,
		Name:    model.Name,
		Query:   model.Search.Query,
		filters: expr.ToExpr(model.Filters),
		GroupBy: groupBy,
		Order:   order,
		id:      id,
	}
}

// groupByString inverts expr.GroupByKey: run fields render as their
// frontend name, other sections as "section.name" with the config ".value"
// token removed.
func groupByString(key filters.Key) string {
	if key.Section == "run" {
		return expr.ToFrontendName(key.Name)
	}
	name := key.Name
	if key.Section == "config" {
		segments := strings.Split(name, ".")
		if len(segments) >= 2 && segments[1] == "value" {
			name = strings.Join(append(segments[:1], segments[2:]...), ".")
		}
	}
	return key.Section + "." + expr.ToFrontendName(name)
}

// RunSettings customizes how one run renders in a workspace runset.
type RunSettings struct {
	Color    string `json:"color" mapstructure:"color"`
	Disabled bool   `json:"disabled" mapstructure:"disabled"`
}

// Settings configures the runset of a workspace (the left bar containing
// runs). Like Runset, its filters are always stored as a string.
type Settings struct {
	Query      string
	RegexQuery bool

	filters string

	GroupBy     []expr.MetricRef
	Order       []expr.Ordering
	RunSettings map[string]RunSettings
}

// NewSettings builds workspace runset settings; filterInput may be an
// expression string or a []*expr.FilterExpr.
func NewSettings(filterInput interface{}) (*Settings, error) {
	normalized, err := expr.NormalizeFilters(filterInput)
	if err != nil {
		return nil, err
	}
	return &Settings{
		filters: normalized,
		Order: []expr.Ordering{
			{Item: expr.Metric("CreatedTimestamp"), Ascending: false},
		},
		RunSettings: map[string]RunSettings{},
	}, nil
}

// Filters returns the normalized filter expression string.
func (s *Settings) Filters() string {
	return s.filters
}

// SetFilters replaces the filters, accepting either input form.
func (s *Settings) SetFilters(filterInput interface{}) error {
	normalized, err := expr.NormalizeFilters(filterInput)
	if err != nil {
		return err
	}
	s.filters = normalized
	return nil
}
