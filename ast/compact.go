package ast

import (
	"github.com/ava12/notation"
	"github.com/ava12/notation/registry"
)

// Compact removes grouping concepts and chains of syntactic type wrappers.
// Result contains syntactic type wrappers only around leaves and opaque nodes.
// Compact is idempotent.
func (n *Node) Compact(reg *registry.Registry) (*Node, error) {
	if n.leaf {
		return n, nil
	}

	if n.Head == "" {
		return nil, notation.FormatError(EmptyTreeError, "empty tree node")
	}

	if c, found := reg.Concept(n.Head); found {
		return n.compactConcept(reg, c)
	}

	if reg.IsType(n.Head) {
		return n.compactWrapper(reg)
	}

	return n.compactChildren(reg)
}

func (n *Node) compactChildren(reg *registry.Registry) (*Node, error) {
	res := Named(n.Head, n.Name)
	res.Children = make([]*Node, len(n.Children))
	for i, c := range n.Children {
		cc, e := c.Compact(reg)
		if e != nil {
			return nil, e
		}
		res.Children[i] = cc
	}
	return res, nil
}

func (n *Node) compactConcept(reg *registry.Registry, c *registry.Concept) (*Node, error) {
	switch {
	case c.Grouping:
		if len(n.Children) != 1 {
			return nil, arityError(n, 1)
		}
		return n.Children[0].Compact(reg)

	case c.IsTerminal():
		if len(n.Children) != 1 || !n.Children[0].leaf {
			return nil, notation.FormatError(ArityError, "terminal node %s must contain a single value", n.Head)
		}
		return n, nil

	case len(n.Children) != c.Arity():
		return nil, arityError(n, c.Arity())

	default:
		return n.compactChildren(reg)
	}
}

func (n *Node) compactWrapper(reg *registry.Registry) (*Node, error) {
	if len(n.Children) != 1 {
		return nil, arityError(n, 1)
	}

	arg := n.Children[0]
	if arg.leaf {
		return n, nil
	}

	if reg.IsType(arg.Head) {
		if len(arg.Children) != 1 {
			return nil, arityError(arg, 1)
		}
		if !reg.Hierarchy().IsSupertype(n.Head, arg.Head) {
			return nil, notation.FormatError(NotSupertypeError, "%s is not a supertype of %s", n.Head, arg.Head)
		}
		return arg.Compact(reg)
	}

	if _, found := reg.Concept(arg.Head); found {
		return arg.Compact(reg)
	}

	return n.compactChildren(reg)
}
