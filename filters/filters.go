// filters package contains the canonical wire model for run filters
// that is shared between the expression layer and the saved-view spec
// documents exchanged with the backend.
package filters

// Operators understood by the backend filter tree.
const (
	OpOr            = "OR"
	OpAnd           = "AND"
	OpEq            = "="
	OpNe            = "!="
	OpLe            = "<="
	OpGe            = ">="
	OpLt            = "<"
	OpGt            = ">"
	OpIn            = "IN"
	OpNin           = "NIN"
	OpWithinSeconds = "WITHINSECONDS"
)

// Key identifies the field a leaf filter applies to. Section is one of
// "run", "summary", "config", "tags" or "keys_info"; Name is the backend
// field name.
type Key struct {
	Section string `json:"section" mapstructure:"section"`
	Name    string `json:"name" mapstructure:"name"`
}

// Filters is a node of the canonical filter tree. A node is either a leaf
// (Key and Value set, Filters nil) or an internal boolean node (Filters set,
// Key and Value nil). Every producer in this module emits the shape
// OR[AND[leaf...]].
type Filters struct {
	Op       string      `json:"op" mapstructure:"op"`
	Key      *Key        `json:"key,omitempty" mapstructure:"key"`
	Filters  []*Filters  `json:"filters,omitempty" mapstructure:"filters"`
	Value    interface{} `json:"value,omitempty" mapstructure:"value"`
	Disabled bool        `json:"disabled,omitempty" mapstructure:"disabled"`
	Current  *Filters    `json:"current,omitempty" mapstructure:"current"`
}

// IsLeaf reports whether the node carries a field comparison rather than
// child nodes.
func (f *Filters) IsLeaf() bool {
	return f.Filters == nil
}

// NewLeaf builds a comparison node.
func NewLeaf(op string, key *Key, value interface{}) *Filters {
	return &Filters{Op: op, Key: key, Value: value}
}

// NewGroup builds an internal boolean node.
func NewGroup(op string, children ...*Filters) *Filters {
	if children == nil {
		children = []*Filters{}
	}
	return &Filters{Op: op, Filters: children}
}

// Canonical wraps leaves into the OR[AND[...]] shape the backend stores.
func Canonical(leaves []*Filters) *Filters {
	if leaves == nil {
		leaves = []*Filters{}
	}
	return NewGroup(OpOr, NewGroup(OpAnd, leaves...))
}

// SortKeyKey identifies the field a sort applies to.
type SortKeyKey struct {
	Section string `json:"section" mapstructure:"section"`
	Name    string `json:"name" mapstructure:"name"`
}

// SortKey is one entry of a runset sort order.
type SortKey struct {
	Key       SortKeyKey `json:"key" mapstructure:"key"`
	Ascending bool       `json:"ascending" mapstructure:"ascending"`
}

// NewSortKey returns the backend default sort, newest run first.
func NewSortKey() SortKey {
	return SortKey{Key: SortKeyKey{Section: "run", Name: "createdAt"}}
}
