package expr

import (
	"fmt"
	"math"

	"github.com/tracelab/workspaces-go/filters"
)

// compareOpMap translates comparison spellings to backend operators. Both
// '=' and '==' arrive here as '==' (the preprocessor collapsed them) and
// map to the single canonical "=".
var compareOpMap = map[string]string{
	"==":     filters.OpEq,
	"!=":     filters.OpNe,
	"<=":     filters.OpLe,
	">=":     filters.OpGe,
	"<":      filters.OpLt,
	">":      filters.OpGt,
	"in":     filters.OpIn,
	"not in": filters.OpNin,
}

// ToFilters parses a filter expression string into the canonical tree. The
// result is always shaped OR[AND[leaf...]]; an empty expression yields an
// empty conjunction.
func ToFilters(expression string) (*filters.Filters, error) {
	if expression == "" {
		return filters.Canonical(nil), nil
	}

	tokens, err := lex(preprocess(expression))
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.current(); tok.kind != tokenEOF {
		return nil, fmt.Errorf("unexpected %q at position %d", tok.text, tok.pos)
	}

	rootFilter, err := parseNode(root)
	if err != nil {
		return nil, err
	}

	// A root conjunction is unpacked into the single AND group rather than
	// double-nested.
	var leaves []*filters.Filters
	if rootFilter.Op == filters.OpAnd && rootFilter.Filters != nil {
		leaves = rootFilter.Filters
	} else {
		leaves = []*filters.Filters{rootFilter}
	}
	return filters.Canonical(leaves), nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) current() token {
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) atKeyword(word string) bool {
	tok := p.current()
	return tok.kind == tokenName && tok.text == word
}

func (p *parser) parseOr() (node, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	if !p.atKeyword("or") {
		return first, nil
	}
	values := []node{first}
	for p.atKeyword("or") {
		p.advance()
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		values = append(values, next)
	}
	return &boolNode{op: "or", values: values, pos: first.position()}, nil
}

func (p *parser) parseAnd() (node, error) {
	first, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	if !p.atKeyword("and") {
		return first, nil
	}
	values := []node{first}
	for p.atKeyword("and") {
		p.advance()
		next, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		values = append(values, next)
	}
	return &boolNode{op: "and", values: values, pos: first.position()}, nil
}

func (p *parser) parseComparison() (node, error) {
	left, err := p.parseArith()
	if err != nil {
		return nil, err
	}

	op := ""
	switch tok := p.current(); {
	case tok.kind == tokenEq:
		op = "=="
	case tok.kind == tokenNe:
		op = "!="
	case tok.kind == tokenLe:
		op = "<="
	case tok.kind == tokenGe:
		op = ">="
	case tok.kind == tokenLt:
		op = "<"
	case tok.kind == tokenGt:
		op = ">"
	case tok.kind == tokenName && tok.text == "in":
		op = "in"
	case tok.kind == tokenName && tok.text == "not":
		p.advance()
		if !p.atKeyword("in") {
			return nil, fmt.Errorf("expected 'in' after 'not' at position %d", p.current().pos)
		}
		op = "not in"
	}
	if op == "" {
		return left, nil
	}
	p.advance()

	right, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	return &compareNode{left: left, op: op, right: right, pos: left.position()}, nil
}

func (p *parser) parseArith() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch p.current().kind {
		case tokenPlus:
			op = "+"
		case tokenMinus:
			op = "-"
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: op, left: left, right: right, pos: left.position()}
	}
}

func (p *parser) parseTerm() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch p.current().kind {
		case tokenStar:
			op = "*"
		case tokenSlash:
			op = "/"
		case tokenFloorDiv:
			op = "//"
		case tokenPercent:
			op = "%"
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: op, left: left, right: right, pos: left.position()}
	}
}

func (p *parser) parseUnary() (node, error) {
	switch tok := p.current(); tok.kind {
	case tokenPlus, tokenMinus:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &unaryNode{op: tok.text, operand: operand, pos: tok.pos}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.current().kind != tokenPower {
		return base, nil
	}
	p.advance()
	// Right associative, and the exponent may carry its own sign.
	exponent, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &binaryNode{op: "**", left: base, right: exponent, pos: base.position()}, nil
}

func (p *parser) parsePrimary() (node, error) {
	tok := p.current()
	switch tok.kind {
	case tokenInt:
		p.advance()
		return &literalNode{value: tok.intValue, pos: tok.pos}, nil
	case tokenFloat:
		p.advance()
		return &literalNode{value: tok.floatValue, pos: tok.pos}, nil
	case tokenString:
		p.advance()
		return &literalNode{value: tok.text, pos: tok.pos}, nil
	case tokenName:
		p.advance()
		switch tok.text {
		case "True":
			return &literalNode{value: true, pos: tok.pos}, nil
		case "False":
			return &literalNode{value: false, pos: tok.pos}, nil
		case "None":
			return &literalNode{value: nil, pos: tok.pos}, nil
		}
		if p.current().kind == tokenLparen {
			return p.parseCall(tok)
		}
		return &nameNode{ident: tok.text, pos: tok.pos}, nil
	case tokenLparen:
		return p.parseParenthesized(tok)
	case tokenLbracket:
		return p.parseList(tok)
	}
	return nil, fmt.Errorf("unexpected %q at position %d", tok.text, tok.pos)
}

func (p *parser) parseCall(name token) (node, error) {
	p.advance() // consume '('
	var args []node
	if p.current().kind != tokenRparen {
		for {
			arg, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.current().kind != tokenComma {
				break
			}
			p.advance()
		}
	}
	if p.current().kind != tokenRparen {
		return nil, fmt.Errorf("expected ')' at position %d", p.current().pos)
	}
	p.advance()
	return &callNode{funcName: name.text, args: args, pos: name.pos}, nil
}

func (p *parser) parseParenthesized(open token) (node, error) {
	p.advance() // consume '('
	first, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.current().kind != tokenComma {
		if p.current().kind != tokenRparen {
			return nil, fmt.Errorf("expected ')' at position %d", p.current().pos)
		}
		p.advance()
		return first, nil
	}

	// A comma makes it a tuple literal.
	elements := []node{first}
	for p.current().kind == tokenComma {
		p.advance()
		if p.current().kind == tokenRparen {
			break
		}
		element, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)
	}
	if p.current().kind != tokenRparen {
		return nil, fmt.Errorf("expected ')' at position %d", p.current().pos)
	}
	p.advance()
	return &listNode{elements: elements, pos: open.pos}, nil
}

func (p *parser) parseList(open token) (node, error) {
	p.advance() // consume '['
	var elements []node
	for p.current().kind != tokenRbracket {
		element, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)
		if p.current().kind != tokenComma {
			break
		}
		p.advance()
	}
	if p.current().kind != tokenRbracket {
		return nil, fmt.Errorf("expected ']' at position %d", p.current().pos)
	}
	p.advance()
	return &listNode{elements: elements, pos: open.pos}, nil
}

// parseNode walks an expression node into a Filters node.
func parseNode(n node) (*filters.Filters, error) {
	switch n := n.(type) {
	case *callNode:
		if n.funcName == "WithinLast" {
			return parseWithinLast(n)
		}
	case *compareNode:
		return parseCompare(n)
	case *boolNode:
		op := filters.OpAnd
		if n.op == "or" {
			op = filters.OpOr
		}
		children := make([]*filters.Filters, 0, len(n.values))
		for _, value := range n.values {
			child, err := parseNode(value)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		return filters.NewGroup(op, children...), nil
	}
	return nil, fmt.Errorf("unsupported expression type at position %d", n.position())
}

func parseCompare(n *compareNode) (*filters.Filters, error) {
	op, ok := compareOpMap[n.op]
	if !ok {
		return nil, fmt.Errorf("unsupported comparison operator %q", n.op)
	}
	value, err := extractValue(n.right)
	if err != nil {
		return nil, err
	}

	switch left := n.left.(type) {
	case *callNode:
		key, err := callToKey(left)
		if err != nil {
			return nil, err
		}
		return filters.NewLeaf(op, key, value), nil
	case *nameNode:
		// A bare (possibly dotted) name is an implicit run-section field.
		key := ServerPathToKey(ToBackendName(left.ident))
		return filters.NewLeaf(op, &key, value), nil
	default:
		// Anything else on the left has no addressable key; the leaf is
		// kept but serializes to nothing.
		return filters.NewLeaf(op, nil, value), nil
	}
}

// callToKey resolves an accessor call like Config('lr') or Tags() to a wire
// key with the backend field name.
func callToKey(call *callNode) (*filters.Key, error) {
	section, name, err := resolveAccessor(call)
	if err != nil {
		return nil, err
	}
	return &filters.Key{Section: section, Name: ToBackendName(name)}, nil
}

func resolveAccessor(call *callNode) (section string, name string, err error) {
	section, ok := sectionMap[call.funcName]
	if !ok {
		return "", "", fmt.Errorf("unsupported function name: %s", call.funcName)
	}
	// Tags() with no arguments filters the run tags field.
	if call.funcName == "Tags" && len(call.args) == 0 {
		return "run", "tags", nil
	}
	if len(call.args) != 1 {
		return "", "", fmt.Errorf("invalid arguments for %s", call.funcName)
	}
	lit, ok := call.args[0].(*literalNode)
	if !ok {
		return "", "", fmt.Errorf("invalid arguments for %s: expected string literal", call.funcName)
	}
	str, ok := lit.value.(string)
	if !ok {
		return "", "", fmt.Errorf("invalid arguments for %s: expected string literal", call.funcName)
	}
	return section, str, nil
}

func parseWithinLast(call *callNode) (*filters.Filters, error) {
	if len(call.args) != 3 {
		return nil, fmt.Errorf("WithinLast requires exactly 3 arguments (metric, amount, unit), got %d", len(call.args))
	}

	metricCall, ok := call.args[0].(*callNode)
	if !ok {
		return nil, fmt.Errorf("first argument to WithinLast must be a metric function call, e.g. Metric('CreatedTimestamp')")
	}
	key, err := callToKey(metricCall)
	if err != nil {
		return nil, err
	}
	if err := validateWithinLastField(*key); err != nil {
		return nil, err
	}

	amountValue, err := extractValue(call.args[1])
	if err != nil {
		return nil, err
	}
	amount, ok := toNumber(amountValue)
	if !ok {
		return nil, fmt.Errorf("second argument to WithinLast must be a number, got %T", amountValue)
	}

	unitValue, err := extractValue(call.args[2])
	if err != nil {
		return nil, err
	}
	unit, ok := unitValue.(string)
	if !ok {
		return nil, fmt.Errorf("third argument to WithinLast must be a string ('minutes', 'hours', or 'days'), got %T", unitValue)
	}

	seconds, err := ToSeconds(amount, unit)
	if err != nil {
		return nil, err
	}
	return filters.NewLeaf(filters.OpWithinSeconds, key, seconds), nil
}

// extractValue evaluates a literal expression eagerly. Bare names are kept
// as strings, mirroring how unquoted list members parse.
func extractValue(n node) (interface{}, error) {
	switch n := n.(type) {
	case *literalNode:
		return n.value, nil
	case *nameNode:
		return n.ident, nil
	case *listNode:
		values := make([]interface{}, 0, len(n.elements))
		for _, element := range n.elements {
			value, err := extractValue(element)
			if err != nil {
				return nil, err
			}
			values = append(values, value)
		}
		return values, nil
	case *binaryNode:
		left, err := extractValue(n.left)
		if err != nil {
			return nil, err
		}
		right, err := extractValue(n.right)
		if err != nil {
			return nil, err
		}
		return evalBinary(n.op, left, right, n.pos)
	case *unaryNode:
		operand, err := extractValue(n.operand)
		if err != nil {
			return nil, err
		}
		return evalUnary(n.op, operand, n.pos)
	}
	return nil, fmt.Errorf("unsupported value type at position %d", n.position())
}

func toNumber(v interface{}) (float64, bool) {
	switch v := v.(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func evalBinary(op string, left, right interface{}, pos int) (interface{}, error) {
	// "+" also concatenates strings and lists.
	if op == "+" {
		if leftStr, ok := left.(string); ok {
			if rightStr, ok := right.(string); ok {
				return leftStr + rightStr, nil
			}
		}
		if leftList, ok := left.([]interface{}); ok {
			if rightList, ok := right.([]interface{}); ok {
				joined := make([]interface{}, 0, len(leftList)+len(rightList))
				joined = append(joined, leftList...)
				joined = append(joined, rightList...)
				return joined, nil
			}
		}
	}

	leftInt, leftIsInt := left.(int64)
	rightInt, rightIsInt := right.(int64)
	if leftIsInt && rightIsInt {
		return evalBinaryInt(op, leftInt, rightInt, pos)
	}

	leftFloat, ok := toNumber(left)
	if !ok {
		return nil, fmt.Errorf("unsupported operand type %T at position %d", left, pos)
	}
	rightFloat, ok := toNumber(right)
	if !ok {
		return nil, fmt.Errorf("unsupported operand type %T at position %d", right, pos)
	}

	switch op {
	case "+":
		return leftFloat + rightFloat, nil
	case "-":
		return leftFloat - rightFloat, nil
	case "*":
		return leftFloat * rightFloat, nil
	case "/":
		if rightFloat == 0 {
			return nil, fmt.Errorf("division by zero at position %d", pos)
		}
		return leftFloat / rightFloat, nil
	case "//":
		if rightFloat == 0 {
			return nil, fmt.Errorf("division by zero at position %d", pos)
		}
		return math.Floor(leftFloat / rightFloat), nil
	case "%":
		if rightFloat == 0 {
			return nil, fmt.Errorf("division by zero at position %d", pos)
		}
		m := math.Mod(leftFloat, rightFloat)
		if m != 0 && (m < 0) != (rightFloat < 0) {
			m += rightFloat
		}
		return m, nil
	case "**":
		return math.Pow(leftFloat, rightFloat), nil
	}
	return nil, fmt.Errorf("unsupported binary operation %q", op)
}

func evalBinaryInt(op string, left, right int64, pos int) (interface{}, error) {
	switch op {
	case "+":
		return left + right, nil
	case "-":
		return left - right, nil
	case "*":
		return left * right, nil
	case "/":
		if right == 0 {
			return nil, fmt.Errorf("division by zero at position %d", pos)
		}
		// True division always yields a float.
		return float64(left) / float64(right), nil
	case "//":
		if right == 0 {
			return nil, fmt.Errorf("division by zero at position %d", pos)
		}
		q := left / right
		if left%right != 0 && (left < 0) != (right < 0) {
			q--
		}
		return q, nil
	case "%":
		if right == 0 {
			return nil, fmt.Errorf("division by zero at position %d", pos)
		}
		m := left % right
		if m != 0 && (m < 0) != (right < 0) {
			m += right
		}
		return m, nil
	case "**":
		if right >= 0 {
			result := int64(1)
			for i := int64(0); i < right; i++ {
				result *= left
			}
			return result, nil
		}
		return math.Pow(float64(left), float64(right)), nil
	}
	return nil, fmt.Errorf("unsupported binary operation %q", op)
}

func evalUnary(op string, operand interface{}, pos int) (interface{}, error) {
	switch operand := operand.(type) {
	case int64:
		if op == "-" {
			return -operand, nil
		}
		return operand, nil
	case float64:
		if op == "-" {
			return -operand, nil
		}
		return operand, nil
	}
	return nil, fmt.Errorf("unsupported operand type %T at position %d", operand, pos)
}
