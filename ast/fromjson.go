package ast

import (
	"github.com/ava12/notation"
	"github.com/ava12/notation/grammar"
	"github.com/ava12/notation/registry"
)

// FromJSON converts a parse result of lang to a tree.
// Strings become leaves. An array headed by a concept is matched against the concept rules in lang,
// the first rule of the same shape is used: literal terminals are dropped and the remaining
// children are reordered canonically. Arrays headed by other symbols (syntactic types) are kept
// as is with their children converted.
func FromJSON(reg *registry.Registry, lang *registry.Language, raw any) (*Node, error) {
	switch r := raw.(type) {
	case string:
		return Leaf(r), nil

	case []any:
		head, e := rawHead(r)
		if e != nil {
			return nil, e
		}

		items := r[1:]
		if _, found := reg.Concept(head); !found {
			n := New(head)
			for _, item := range items {
				c, e := FromJSON(reg, lang, item)
				if e != nil {
					return nil, e
				}
				n.Children = append(n.Children, c)
			}
			return n, nil
		}

		for _, rule := range lang.Rules(head) {
			if matchShape(rule.Symbols, items) {
				return fromRule(reg, lang, rule, items)
			}
		}
		return nil, notation.FormatError(NoGrammarMatchError, "no %s rule in %s for %v", head, lang.Name, raw)

	default:
		return nil, wrongNodeError(raw)
	}
}

func matchShape(symbols []grammar.Symbol, items []any) bool {
	if len(symbols) != len(items) {
		return false
	}

	for i, s := range symbols {
		if s.IsNonTerm() {
			if _, isArray := items[i].([]any); !isArray {
				return false
			}
			continue
		}

		text, isString := items[i].(string)
		if !isString || !s.Matches(text) {
			return false
		}
	}
	return true
}

func fromRule(reg *registry.Registry, lang *registry.Language, rule *grammar.Rule, items []any) (*Node, error) {
	p := rule.Production
	if p.IsTerminal() {
		return Named(p.Concept, p.Name, Leaf(items[0].(string))), nil
	}

	if p.Template.IsPassThrough() {
		return FromJSON(reg, lang, items[0])
	}

	children := make([]*Node, len(p.FromCanonical))
	slot := 0
	for i, s := range rule.Symbols {
		if !s.IsNonTerm() {
			continue
		}

		c, e := FromJSON(reg, lang, items[i])
		if e != nil {
			return nil, e
		}
		children[p.ToCanonical[slot]] = c
		slot++
	}
	return Named(p.Concept, p.Name, children...), nil
}
