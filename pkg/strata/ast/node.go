package ast

// Kind identifies the type of a document tree node.
type Kind string

const (
	KindNull     Kind = "null"
	KindBool     Kind = "bool"
	KindNumber   Kind = "number"
	KindString   Kind = "string"
	KindSequence Kind = "sequence"
	KindMapping  Kind = "mapping"
	KindTagged   Kind = "tagged"
)

// Node is a single node in a parsed document tree.
//
// Exactly one of the payload fields is meaningful, selected by Kind:
//
//   - KindBool: Bool
//   - KindNumber: Literal (the raw numeric token from the source)
//   - KindString: Literal
//   - KindSequence: Items
//   - KindMapping: Pairs
//   - KindTagged: Tag and Inner
//
// KindNull carries no payload.
type Node struct {
	Kind Kind

	Bool    bool
	Literal string
	Items   []*Node
	Pairs   []Pair
	Tag     string
	Inner   *Node

	Loc Location
}

// Pair is one key/value entry of a mapping, in source order.
// Keys are full nodes; YAML does not restrict keys to strings.
type Pair struct {
	Key   *Node
	Value *Node
}

// IsScalar returns true for null, bool, number and string nodes.
func (n *Node) IsScalar() bool {
	switch n.Kind {
	case KindNull, KindBool, KindNumber, KindString:
		return true
	}
	return false
}
