package expr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tracelab/workspaces-go/filters"
)

// renderOpMap spells backend operators for the string syntax. Both "=" and
// "==" render as "==": the single-equals form is accepted on input only.
var renderOpMap = map[string]string{
	filters.OpGt:  ">",
	filters.OpLt:  "<",
	filters.OpEq:  "==",
	"==":          "==",
	filters.OpNe:  "!=",
	filters.OpGe:  ">=",
	filters.OpLe:  "<=",
	filters.OpIn:  "in",
	filters.OpNin: "not in",
	filters.OpAnd: "and",
	filters.OpOr:  "or",
}

// ToExpr renders a canonical filter tree as an expression string. Leaves
// without a key name contribute nothing, so an empty tree renders as "".
func ToExpr(tree *filters.Filters) string {
	if tree == nil {
		return ""
	}
	return convertFilter(tree, true)
}

func convertFilter(f *filters.Filters, isRoot bool) string {
	if f.Filters != nil {
		var subExpressions []string
		for _, child := range f.Filters {
			if child.Filters == nil && (child.Key == nil || child.Key.Name == "") {
				continue
			}
			rendered := convertFilter(child, false)
			if rendered == "" {
				continue
			}
			subExpressions = append(subExpressions, rendered)
		}
		if len(subExpressions) == 0 {
			return ""
		}

		joint := " or "
		if f.Op == filters.OpAnd {
			joint = " and "
		}
		expr := strings.Join(subExpressions, joint)
		if !isRoot {
			return "(" + expr + ")"
		}
		return expr
	}

	if f.Key == nil || f.Key.Name == "" {
		return ""
	}

	if f.Op == filters.OpWithinSeconds {
		return renderWithinSeconds(f)
	}

	keyName := renderKeyName(*f.Key)
	return fmt.Sprintf("%s %s %s", keyName, renderOpMap[f.Op], formatValue(f.Value))
}

// renderKeyName translates the backend field name to its frontend form and
// wraps it in the section's canonical accessor when one exists.
func renderKeyName(key filters.Key) string {
	frontendName := ToFrontendName(key.Name)
	if accessor, ok := sectionMapReversed[key.Section]; ok {
		return fmt.Sprintf("%s(%q)", accessor, frontendName)
	}
	return frontendName
}

// renderWithinSeconds emits the operator form of the relative-time filter,
// converting the stored seconds back to the most natural unit.
func renderWithinSeconds(f *filters.Filters) string {
	seconds, _ := toNumber(f.Value)
	amount, unit := ToHuman(int64(seconds))
	return fmt.Sprintf("%s within_last %s %s", renderKeyName(*f.Key), formatAmount(amount), unit)
}

func formatAmount(amount float64) string {
	if amount == float64(int64(amount)) {
		return strconv.FormatInt(int64(amount), 10)
	}
	return strconv.FormatFloat(amount, 'g', -1, 64)
}

// formatValue renders a value as the expression literal it parses back
// from: None for nil, single-quoted strings, Python-style booleans, and
// lists joined with ", " (list members render unquoted).
func formatValue(value interface{}) string {
	switch value := value.(type) {
	case nil:
		return "None"
	case string:
		return "'" + value + "'"
	case []interface{}:
		parts := make([]string, 0, len(value))
		for _, element := range value {
			parts = append(parts, formatPlain(element))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return formatPlain(value)
	}
}

// formatPlain renders a scalar without quoting, as list members appear.
func formatPlain(value interface{}) string {
	switch value := value.(type) {
	case nil:
		return "None"
	case bool:
		if value {
			return "True"
		}
		return "False"
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", value)
	}
}
