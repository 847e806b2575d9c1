package ast

import (
	"strings"

	"github.com/ava12/notation"
	"github.com/ava12/notation/registry"
)

// WriteIn renders compacted tree n in lang.
// Each concept node is rendered with the notation having the same name tag as the node,
// or with the first notation of the concept if there is none. Arguments of types looser than
// the declared argument types are wrapped in the first grouper pair of lang.
// A syntactic type wrapper left around a concept node (n is not compacted) is grouped
// when the concept parent type is looser than the wrapper type.
func (n *Node) WriteIn(reg *registry.Registry, lang *registry.Language) (string, error) {
	w := &writer{reg, lang}
	return w.write(n)
}

type writer struct {
	reg  *registry.Registry
	lang *registry.Language
}

func (w *writer) write(n *Node) (string, error) {
	if n.leaf {
		return n.Value, nil
	}

	if c, found := w.reg.Concept(n.Head); found {
		return w.writeConcept(n, c)
	}

	if w.reg.IsType(n.Head) {
		return w.writeWrapper(n)
	}

	return "", notation.FormatError(UnknownHeadError, "cannot render unknown node %s in %s", n.Head, w.lang.Name)
}

func (w *writer) writeWrapper(n *Node) (string, error) {
	if len(n.Children) != 1 {
		return "", arityError(n, 1)
	}

	arg := n.Children[0]
	text, e := w.write(arg)
	if e != nil {
		return "", e
	}

	inner := w.nodeType(arg)
	if inner == "" || w.reg.Hierarchy().IsSupertypeOrEqual(n.Head, inner) {
		return text, nil
	}
	return w.group(text, n.Head, inner)
}

// nodeType returns syntactic type of n: its head for type wrappers, parent type for concepts,
// empty string otherwise.
func (w *writer) nodeType(n *Node) string {
	if n.leaf {
		return ""
	}
	if w.reg.IsType(n.Head) {
		return n.Head
	}
	if c, found := w.reg.Concept(n.Head); found {
		return c.Parent
	}
	return ""
}

func (w *writer) group(text, declared, actual string) (string, error) {
	switch {
	case w.lang.FlatPrecedence:
		return text, nil
	case !w.lang.HasGroupers():
		return "", notation.FormatError(NoGroupersError,
			"cannot put %s into %s: language %s has no groupers", actual, declared, w.lang.Name)
	default:
		return w.lang.Group(text), nil
	}
}

func (w *writer) writeConcept(n *Node, c *registry.Concept) (string, error) {
	if c.IsTerminal() {
		if len(n.Children) != 1 || !n.Children[0].leaf {
			return "", notation.FormatError(ArityError, "terminal node %s must contain a single value", n.Head)
		}
		return n.Children[0].Value, nil
	}

	if len(n.Children) != c.Arity() {
		return "", arityError(n, c.Arity())
	}

	if c.Grouping {
		text, e := w.write(n.Children[0])
		if e != nil {
			return "", e
		}
		return w.group(text, c.Parent, c.TypeSequence[0])
	}

	p := w.lang.Production(c.Name, n.Name)
	if p == nil || p.IsTerminal() {
		return "", notation.FormatError(NoNotationError, "no notation for %s in %s", c.Name, w.lang.Name)
	}

	args := make([]string, len(n.Children))
	for i, child := range n.Children {
		text, e := w.write(child)
		if e != nil {
			return "", e
		}

		declared := c.TypeSequence[i]
		actual := w.nodeType(child)
		if !child.leaf && child.Head != declared && actual != "" && !w.reg.Hierarchy().IsSupertypeOrEqual(declared, actual) {
			text, e = w.group(text, declared, actual)
			if e != nil {
				return "", e
			}
		}
		args[i] = text
	}

	values := make([]string, len(p.ToCanonical))
	for slot, index := range p.ToCanonical {
		values[slot] = args[index]
	}
	text := strings.Join(strings.Fields(p.Template.Fill(values)), " ")
	return w.lang.Lint(text), nil
}
