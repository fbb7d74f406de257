package expr

import (
	"fmt"

	"github.com/tracelab/workspaces-go/filters"
)

// TreeToList flattens a canonical tree into its leaf expressions, in order.
// Nodes without a key are skipped; each leaf's handle is rebuilt from its
// section.
func TreeToList(tree *filters.Filters) []*FilterExpr {
	var list []*FilterExpr
	var walk func(f *filters.Filters)
	walk = func(f *filters.Filters) {
		if f == nil {
			return
		}
		if f.Filters != nil {
			for _, child := range f.Filters {
				walk(child)
			}
			return
		}
		if f.Key == nil {
			return
		}
		list = append(list, NewFilterExpr(f.Op, MetricFromKey(*f.Key), f.Value))
	}
	walk(tree)
	return list
}

// ListToTree wraps leaf expressions into the canonical OR[AND[...]] shape.
func ListToTree(list []*FilterExpr) *filters.Filters {
	leaves := make([]*filters.Filters, 0, len(list))
	for _, f := range list {
		if f == nil {
			continue
		}
		leaves = append(leaves, f.ToModel())
	}
	return filters.Canonical(leaves)
}

// StringToList parses an expression string into leaf expressions.
func StringToList(expression string) ([]*FilterExpr, error) {
	if expression == "" {
		return nil, nil
	}
	tree, err := ToFilters(expression)
	if err != nil {
		return nil, err
	}
	return TreeToList(tree), nil
}

// ListToString renders leaf expressions as an expression string.
func ListToString(list []*FilterExpr) string {
	if len(list) == 0 {
		return ""
	}
	return ToExpr(ListToTree(list))
}

// NormalizeFilters collapses the two accepted filter input forms into the
// canonical string representation: strings pass through, FilterExpr lists
// are rendered. Containers call this at their construction boundary so
// downstream consumers always see a string.
func NormalizeFilters(value interface{}) (string, error) {
	switch value := value.(type) {
	case nil:
		return "", nil
	case string:
		return value, nil
	case []*FilterExpr:
		return ListToString(value), nil
	}
	return "", fmt.Errorf("filters must be a string or a []*FilterExpr, got %T", value)
}
