package expr

import (
	"fmt"
	"regexp"
	"strings"
)

// withinLastPattern matches "<accessor call> within_last <number> <unit>",
// with the unit optionally quoted. RE2 has no backreferences, so the quoted
// and bare unit forms are spelled out as alternatives.
var withinLastPattern = regexp.MustCompile(`(?i)((?:Metric|Summary|SummaryMetric|Config|KeysInfo|Tags)\s*\([^)]*\))` +
	`\s+within_last\s+` +
	`(\d+(?:\.\d+)?)` +
	`\s+` +
	`(?:'(minutes?|hours?|days?)'|"(minutes?|hours?|days?)"|(minutes?|hours?|days?))`)

// preprocessWithinLast rewrites the within_last operator syntax to the
// WithinLast(call, amount, 'unit') function form the grammar understands.
// This pass must run before the operator rewrites, which would otherwise
// mangle the surrounding text.
func preprocessWithinLast(expr string) string {
	return withinLastPattern.ReplaceAllStringFunc(expr, func(match string) string {
		groups := withinLastPattern.FindStringSubmatch(match)
		call, amount := groups[1], groups[2]
		unit := groups[3]
		if unit == "" {
			unit = groups[4]
		}
		if unit == "" {
			unit = groups[5]
		}
		if !strings.HasSuffix(unit, "s") {
			unit += "s"
		}
		return fmt.Sprintf("WithinLast(%s, %s, '%s')", call, amount, unit)
	})
}

// preprocessEquality rewrites a lone '=' to '==' so both spellings parse.
// A '=' that is part of '==', '!=', '<=' or '>=' is left alone.
func preprocessEquality(expr string) string {
	var b strings.Builder
	b.Grow(len(expr))
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		if c == '=' {
			loneBefore := i == 0 || !strings.ContainsRune("!<>=", rune(expr[i-1]))
			loneAfter := i+1 == len(expr) || expr[i+1] != '='
			if loneBefore && loneAfter {
				b.WriteString("==")
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// preprocessComparison widens '<' to '<=' and '>' to '>=': the backend has
// no strict inequality, so the expression is coerced rather than rejected.
// An advisory identifying the coerced operator(s) is emitted whenever a
// rewrite happened.
func preprocessComparison(expr string) string {
	var b strings.Builder
	b.Grow(len(expr))
	hadLt, hadGt := false, false
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		if (c == '<' || c == '>') && (i+1 == len(expr) || expr[i+1] != '=') {
			b.WriteByte(c)
			b.WriteByte('=')
			if c == '<' {
				hadLt = true
			} else {
				hadGt = true
			}
			continue
		}
		b.WriteByte(c)
	}

	switch {
	case hadLt && hadGt:
		logger.Warn("filter expression contains '<' and/or '>' operators which are being mapped to '<=' and '>=' respectively for platform consistency, consider using '<=' and '>=' explicitly in your filters")
	case hadLt:
		logger.Warn("filter expression contains '<' operator which is being mapped to '<=' for platform consistency, consider using '<=' explicitly in your filters")
	case hadGt:
		logger.Warn("filter expression contains '>' operator which is being mapped to '>=' for platform consistency, consider using '>=' explicitly in your filters")
	}

	return b.String()
}

// preprocess applies the rewrite passes in their required order: each pass
// assumes the previous one already ran.
func preprocess(expr string) string {
	expr = preprocessWithinLast(expr)
	expr = preprocessEquality(expr)
	expr = preprocessComparison(expr)
	return expr
}
