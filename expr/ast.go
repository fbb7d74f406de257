package expr

// Expression nodes produced by the grammar. The set is closed: parenthesized
// boolean expressions, comparisons, accessor calls, literals, lists and the
// literal arithmetic needed to evaluate them.

type node interface {
	position() int
}

// boolNode is an n-ary "and"/"or". Runs of the same operator are flattened
// into one node so the walker can unpack a root conjunction directly.
type boolNode struct {
	op     string // "and" or "or"
	values []node
	pos    int
}

type compareNode struct {
	left  node
	op    string // "==", "!=", "<=", ">=", "in", "not in"
	right node
	pos   int
}

type callNode struct {
	funcName string
	args     []node
	pos      int
}

type nameNode struct {
	ident string
	pos   int
}

// literalNode holds nil, bool, int64, float64 or string.
type literalNode struct {
	value interface{}
	pos   int
}

type listNode struct {
	elements []node
	pos      int
}

type binaryNode struct {
	op    string // "+", "-", "*", "/", "//", "%", "**"
	left  node
	right node
	pos   int
}

type unaryNode struct {
	op      string // "+" or "-"
	operand node
	pos     int
}

func (n *boolNode) position() int    { return n.pos }
func (n *compareNode) position() int { return n.pos }
func (n *callNode) position() int    { return n.pos }
func (n *nameNode) position() int    { return n.pos }
func (n *literalNode) position() int { return n.pos }
func (n *listNode) position() int    { return n.pos }
func (n *binaryNode) position() int  { return n.pos }
func (n *unaryNode) position() int   { return n.pos }
