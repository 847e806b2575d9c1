// Package ast defines the language independent expression tree and its operations:
// FromJSON converts a raw parse result to a tree, Compact removes structural nodes,
// WriteIn renders a compacted tree in a language.
//
// Nodes are immutable after construction, operations always return new nodes
// or the unchanged receiver.
package ast

import (
	"encoding/json"
	"strings"

	"github.com/ava12/notation"
)

// Error codes used by ast (FromJSON, Compact):
const (
	// EmptyTreeError indicates an empty raw array or a node with empty head.
	EmptyTreeError = notation.TreeErrors + iota

	// WrongNodeError indicates a raw node that is neither a string nor an array with a string head.
	WrongNodeError

	// ArityError indicates a node child count that does not match its head.
	ArityError

	// NotSupertypeError indicates a syntactic type wrapper around a wrapper of a type that is not its subtype.
	NotSupertypeError

	// NoGrammarMatchError indicates a raw concept node that matches no production shape.
	NoGrammarMatchError
)

// Error codes used by ast (WriteIn):
const (
	// NoGroupersError indicates an argument that must be grouped in a language with no groupers.
	NoGroupersError = notation.RenderErrors + iota

	// UnknownHeadError indicates a node head that is neither a concept nor a syntactic type.
	UnknownHeadError

	// NoNotationError indicates a concept with no notation in target language.
	NoNotationError
)

// Node is either a leaf holding a value or an interior node holding a head and children.
// Head is a concept name, a syntactic type name, or an unresolved (opaque) symbol.
type Node struct {
	Value    string
	Head     string
	Children []*Node

	// Name contains the name tag of the notation the node was parsed from, if any.
	Name string

	leaf bool
}

// Leaf creates a leaf node.
func Leaf(value string) *Node {
	return &Node{Value: value, leaf: true}
}

// New creates an interior node.
func New(head string, children ...*Node) *Node {
	return &Node{Head: head, Children: children}
}

// Named creates an interior node with a name tag.
func Named(head, name string, children ...*Node) *Node {
	return &Node{Head: head, Children: children, Name: name}
}

// IsLeaf reports whether n is a leaf.
func (n *Node) IsLeaf() bool {
	return n.leaf
}

// Equal reports whether n and o have the same structure, heads, and values. Name tags are ignored.
func (n *Node) Equal(o *Node) bool {
	if n.leaf || o.leaf {
		return n.leaf == o.leaf && n.Value == o.Value
	}

	if n.Head != o.Head || len(n.Children) != len(o.Children) {
		return false
	}

	for i, c := range n.Children {
		if !c.Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// ToJSON converts n to the interchange form: a string for leaves,
// []any{head, children...} for interior nodes.
func (n *Node) ToJSON() any {
	if n.leaf {
		return n.Value
	}

	res := make([]any, 1, len(n.Children)+1)
	res[0] = n.Head
	for _, c := range n.Children {
		res = append(res, c.ToJSON())
	}
	return res
}

// MarshalJSON implements json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.ToJSON())
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	res, e := ParseJSON(string(data))
	if e != nil {
		return e
	}

	*n = *res
	return nil
}

// String returns compact JSON representation of n.
func (n *Node) String() string {
	data, _ := n.MarshalJSON()
	return string(data)
}

// ParseJSON decodes the interchange form into a tree. Concept and type heads are not resolved,
// numbers are converted to leaves holding their text.
func ParseJSON(text string) (*Node, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var raw any
	if e := dec.Decode(&raw); e != nil {
		return nil, notation.FormatError(WrongNodeError, "incorrect tree JSON: %s", e.Error())
	}

	return fromRaw(raw)
}

func fromRaw(raw any) (*Node, error) {
	switch r := raw.(type) {
	case string:
		return Leaf(r), nil

	case json.Number:
		return Leaf(r.String()), nil

	case []any:
		head, e := rawHead(r)
		if e != nil {
			return nil, e
		}

		n := New(head)
		for _, item := range r[1:] {
			c, e := fromRaw(item)
			if e != nil {
				return nil, e
			}
			n.Children = append(n.Children, c)
		}
		return n, nil

	default:
		return nil, wrongNodeError(raw)
	}
}

func rawHead(raw []any) (string, error) {
	if len(raw) == 0 {
		return "", notation.FormatError(EmptyTreeError, "empty tree node")
	}

	head, isString := raw[0].(string)
	if !isString {
		return "", wrongNodeError(raw)
	}
	if head == "" {
		return "", notation.FormatError(EmptyTreeError, "empty tree node head")
	}
	return head, nil
}

func wrongNodeError(raw any) *notation.Error {
	return notation.FormatError(WrongNodeError, "incorrect tree node %v", raw)
}

func arityError(n *Node, expected int) *notation.Error {
	return notation.FormatError(ArityError, "node %s: expecting %d children, got %d", n.Head, expected, len(n.Children))
}
