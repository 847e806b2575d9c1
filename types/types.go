// Package types defines the syntactic type hierarchy: fixed linear chains of increasingly
// specific grammatical categories and the supertype relation they induce.
package types

import (
	"github.com/ava12/notation"
)

// Error codes used by types:
const (
	// EmptyChainError indicates a chain with no types or with an empty type name.
	EmptyChainError = notation.ConfigErrors + iota

	// CyclicChainError indicates that some type is (transitively) its own supertype.
	CyclicChainError
)

// Expression is the name of the root category; grouping concepts are created for the atomic
// feet of chains starting with it.
const Expression = "expression"

// DefaultChains are the chains used when no chains are configured.
var DefaultChains = [][]string{
	{Expression, "numberexpr", "sumexpr", "productexpr", "factorexpr", "atomicnumberexpr"},
	{Expression, "propositionexpr", "conditionalexpr", "disjunctexpr", "conjunctexpr", "atomicpropexpr"},
	{Expression, "setexpr", "unionexpr", "intersectionexpr", "atomicsetexpr"},
}

// Hierarchy holds type chains and their transitive supertype relation.
// Hierarchy is immutable and safe for concurrent use.
type Hierarchy struct {
	chains  [][]string
	index   map[string][]int // type name -> indexes of chains containing it
	atomics map[string]bool
	supers  map[string]map[string]bool // supers[a][b] means a is a supertype of b
}

// NewHierarchy creates a hierarchy from chains listed from the most general type to the most specific one.
// Uses DefaultChains if no chains are given.
func NewHierarchy(chains ...[]string) (*Hierarchy, error) {
	if len(chains) == 0 {
		chains = DefaultChains
	}

	h := &Hierarchy{
		chains:  make([][]string, len(chains)),
		index:   make(map[string][]int),
		atomics: make(map[string]bool),
	}
	for i, c := range chains {
		if len(c) == 0 {
			return nil, notation.FormatError(EmptyChainError, "type chain #%d is empty", i)
		}

		h.chains[i] = append([]string(nil), c...)
		for _, t := range c {
			if t == "" {
				return nil, notation.FormatError(EmptyChainError, "type chain #%d contains empty type name", i)
			}
			h.index[t] = append(h.index[t], i)
		}
		h.atomics[c[len(c)-1]] = true
	}

	h.supers = closure(h.chains)
	for t, subs := range h.supers {
		if subs[t] {
			return nil, notation.FormatError(CyclicChainError, "type %q is its own supertype", t)
		}
	}

	return h, nil
}

// closure seeds direct chain edges and then adds transitive edges until nothing changes.
func closure(chains [][]string) map[string]map[string]bool {
	supers := make(map[string]map[string]bool)
	add := func(a, b string) bool {
		subs := supers[a]
		if subs == nil {
			subs = make(map[string]bool)
			supers[a] = subs
		}
		if subs[b] {
			return false
		}
		subs[b] = true
		return true
	}

	for _, c := range chains {
		for i := 1; i < len(c); i++ {
			add(c[i-1], c[i])
		}
	}

	for changed := true; changed; {
		changed = false
		for a, subs := range supers {
			for b := range subs {
				for c := range supers[b] {
					if !subs[c] && add(a, c) {
						changed = true
					}
				}
			}
		}
	}

	return supers
}

// Chains returns copies of hierarchy chains.
func (h *Hierarchy) Chains() [][]string {
	res := make([][]string, len(h.chains))
	for i, c := range h.chains {
		res[i] = append([]string(nil), c...)
	}
	return res
}

// Has reports whether t is a member of some chain.
func (h *Hierarchy) Has(t string) bool {
	return len(h.index[t]) > 0
}

// IsAtomic reports whether t is the most specific type of some chain.
func (h *Hierarchy) IsAtomic(t string) bool {
	return h.atomics[t]
}

// LowestSubtype returns the atomic type of the chain containing t if t belongs to exactly one chain,
// otherwise returns t itself.
func (h *Hierarchy) LowestSubtype(t string) string {
	is := h.index[t]
	if len(is) != 1 {
		return t
	}

	c := h.chains[is[0]]
	return c[len(c)-1]
}

// IsSupertype reports whether a is a strict supertype of b.
func (h *Hierarchy) IsSupertype(a, b string) bool {
	return h.supers[a][b]
}

// IsSupertypeOrEqual reports whether a == b or a is a supertype of b.
func (h *Hierarchy) IsSupertypeOrEqual(a, b string) bool {
	return a == b || h.supers[a][b]
}

// Subtypes returns direct subtypes of t in all chains, in chain order, without duplicates.
func (h *Hierarchy) Subtypes(t string) []string {
	var res []string
	seen := make(map[string]bool)
	for _, ci := range h.index[t] {
		c := h.chains[ci]
		for i := 0; i < len(c)-1; i++ {
			if c[i] == t && !seen[c[i+1]] {
				seen[c[i+1]] = true
				res = append(res, c[i+1])
			}
		}
	}
	return res
}

// AtomicExpression describes the atomic foot of a chain headed by Expression.
type AtomicExpression struct {
	// Atomic is the most specific type of the chain.
	Atomic string

	// Top is the most general type of the chain below Expression (or Expression for chains of length 2).
	Top string
}

// AtomicExpressions lists atomic feet of chains headed by Expression, in chain order, without duplicates.
func (h *Hierarchy) AtomicExpressions() []AtomicExpression {
	var res []AtomicExpression
	seen := make(map[string]bool)
	for _, c := range h.chains {
		if len(c) < 2 || c[0] != Expression {
			continue
		}

		atomic := c[len(c)-1]
		if seen[atomic] {
			continue
		}

		seen[atomic] = true
		top := c[1]
		if len(c) == 2 {
			top = Expression
		}
		res = append(res, AtomicExpression{atomic, top})
	}
	return res
}
