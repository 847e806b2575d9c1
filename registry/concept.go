package registry

import (
	"regexp"
	"slices"

	"github.com/ava12/notation"
	"github.com/ava12/notation/grammar"
	"github.com/ava12/notation/lexer"
	"github.com/ava12/notation/template"
)

// ConceptID is an interned concept identifier, index in registration order.
type ConceptID int

// GroupingPrefix is the name prefix of grouping concepts created for atomic types.
const GroupingPrefix = "grouped"

var (
	patternNameRe  = regexp.MustCompile(`[^\s()\[\]{}]+`)
	patternPieceRe = regexp.MustCompile(`[()\[\]{}]|[^\s()\[\]{}]+`)
)

// Pattern is a canonical concept pattern: either putdown text or a terminal regular expression.
type Pattern struct {
	Text     string
	Terminal bool
}

// Putdown creates a bracketed application pattern, e.g. "(+ sumexpr productexpr)".
func Putdown(text string) Pattern {
	return Pattern{Text: text}
}

// Terminal creates a terminal pattern from a regular expression, e.g. `\d+`.
func Terminal(re string) Pattern {
	return Pattern{Text: re, Terminal: true}
}

// Concept is a named semantic unit.
type Concept struct {
	ID      ConceptID
	Name    string
	Parent  string
	Pattern Pattern

	// TypeSequence contains argument types (type or concept names) in canonical order,
	// empty for terminal concepts.
	TypeSequence []string

	// Grouping is true for concepts created automatically for grouping symbols.
	Grouping bool
}

// IsTerminal reports whether c has a terminal pattern.
func (c *Concept) IsTerminal() bool {
	return c.Pattern.Terminal
}

// Arity returns the number of arguments.
func (c *Concept) Arity() int {
	return len(c.TypeSequence)
}

// GroupingName returns the name of the grouping concept for an atomic type.
func GroupingName(atomic string) string {
	return GroupingPrefix + atomic
}

// AddConcept registers a concept or replaces the concept with the same name.
// A replaced concept keeps its ID, but all its notations are removed from all languages.
// Terminal concepts get their pattern as a terminal notation in every language,
// application concepts get their putdown pattern as a notation in the canonical language;
// these seeded notations are replaced by the first explicit notation for the same language.
func (r *Registry) AddConcept(name, parent string, p Pattern) (*Concept, error) {
	if name == "" || r.hierarchy.Has(name) {
		return nil, notation.FormatError(WrongNameError, "wrong concept name %q", name)
	}

	if !r.hierarchy.Has(parent) {
		return nil, unknownTypeError(parent, name)
	}

	c := &Concept{Name: name, Parent: parent, Pattern: p}
	if p.Terminal {
		if e := lexer.Check(lexer.Pattern(p.Text)); e != nil {
			return nil, e
		}
	} else {
		c.TypeSequence = r.typeSequence(name, p.Text)
		if len(c.TypeSequence) > len(r.variables) {
			return nil, notation.FormatError(TooFewVariablesError,
				"concept %q has %d arguments, only %d variable names defined", name, len(c.TypeSequence), len(r.variables))
		}
	}

	if e := r.storeConcept(c); e != nil {
		return nil, e
	}

	r.logger.Debug("concept registered", "name", name, "parent", parent, "pattern", p.Text, "terminal", p.Terminal)
	return c, nil
}

func (r *Registry) typeSequence(name, text string) []string {
	var res []string
	for _, n := range patternNameRe.FindAllString(text, -1) {
		_, isConcept := r.conceptIDs[n]
		if (isConcept && n != name) || r.hierarchy.Has(n) {
			res = append(res, n)
		}
	}
	return res
}

func (r *Registry) storeConcept(c *Concept) error {
	id, found := r.conceptIDs[c.Name]
	if found {
		c.ID = id
		r.concepts[id] = c
		for _, l := range r.languages {
			l.dropConcept(c.Name)
		}
		r.logger.Debug("concept replaced", "name", c.Name)
	} else {
		c.ID = ConceptID(len(r.concepts))
		r.concepts = append(r.concepts, c)
		r.conceptIDs[c.Name] = c.ID
	}

	for _, l := range r.languages {
		if e := r.seed(l, c); e != nil {
			return e
		}
		l.rebuild()
	}
	return nil
}

// seed adds seeded notations of c to l.
func (r *Registry) seed(l *Language, c *Concept) error {
	switch {
	case c.Grouping:
		return nil

	case c.IsTerminal():
		_, e := r.addTerminal(l, c, c.Pattern.Text, "", true)
		return e

	case l.canonical:
		_, e := r.addTemplate(l, c, r.putdownTemplate(c), r.variables, "", true)
		return e

	default:
		return nil
	}
}

// putdownTemplate replaces argument names in the canonical pattern with variables.
func (r *Registry) putdownTemplate(c *Concept) *template.Template {
	pieces := make([]template.Piece, 0)
	arg := 0
	for _, text := range patternPieceRe.FindAllString(c.Pattern.Text, -1) {
		if arg < len(c.TypeSequence) && text == c.TypeSequence[arg] {
			pieces = append(pieces, template.Piece{Text: r.variables[arg], Variable: true})
			arg++
		} else {
			pieces = append(pieces, template.Piece{Text: text})
		}
	}
	return template.New(pieces...)
}

// addGrouping registers grouping concepts for atomic types unless already registered.
func (r *Registry) addGrouping() []*Concept {
	var res []*Concept
	for _, ae := range r.hierarchy.AtomicExpressions() {
		name := GroupingName(ae.Atomic)
		id, found := r.conceptIDs[name]
		if found && r.concepts[id].Grouping {
			res = append(res, r.concepts[id])
			continue
		}

		c := &Concept{
			Name:         name,
			Parent:       ae.Atomic,
			Pattern:      Putdown("( " + ae.Top + " )"),
			TypeSequence: []string{ae.Top},
			Grouping:     true,
		}
		if found {
			c.ID = id
			r.concepts[id] = c
		} else {
			c.ID = ConceptID(len(r.concepts))
			r.concepts = append(r.concepts, c)
			r.conceptIDs[name] = c.ID
		}
		res = append(res, c)
		r.logger.Debug("grouping concept registered", "name", name, "inner", ae.Top)
	}
	return res
}

// IsGrouping reports whether name is a grouping concept.
func (r *Registry) IsGrouping(name string) bool {
	c, found := r.Concept(name)
	return found && c.Grouping
}

func (r *Registry) addTerminal(l *Language, c *Concept, re, name string, seeded bool) (*grammar.Production, error) {
	id, e := l.tokenizer.Add(lexer.Pattern(re))
	if e != nil {
		return nil, e
	}

	p := &grammar.Production{
		Concept:  c.Name,
		Terminal: re,
		Name:     name,
		Seeded:   seeded,
	}
	l.addRules(c, []grammar.Symbol{grammar.PatternSymbol(id, re)}, p)
	return p, nil
}

// mapVariables returns template slot to argument index map and its inverse.
func mapVariables(c *Concept, t *template.Template, vars []string) (to, from []int, e error) {
	from = make([]int, c.Arity())
	for i := range from {
		from[i] = -1
	}

	for slot, v := range t.Variables() {
		index := slices.Index(vars, v)
		if index < 0 || index >= c.Arity() {
			return nil, nil, notation.FormatError(VariableIndexError,
				"variable %s in %q: concept %q has %d arguments", v, t.Text(), c.Name, c.Arity())
		}

		to = append(to, index)
		from[index] = slot
	}

	for index, slot := range from {
		if slot < 0 {
			return nil, nil, notation.FormatError(MissingVariableError,
				"argument #%d of concept %q is not used in %q", index, c.Name, t.Text())
		}
	}

	return to, from, nil
}

func (r *Registry) addTemplate(l *Language, c *Concept, t *template.Template, vars []string, name string, seeded bool) (*grammar.Production, error) {
	to, from, e := mapVariables(c, t, vars)
	if e != nil {
		return nil, e
	}

	p := &grammar.Production{
		Concept:       c.Name,
		Template:      t,
		Variables:     slices.Clone(vars),
		Name:          name,
		ToCanonical:   to,
		FromCanonical: from,
		Seeded:        seeded,
	}

	symbols := make([]grammar.Symbol, t.Len())
	slot := 0
	for i, piece := range t.Pieces() {
		if piece.Variable {
			symbols[i] = grammar.NonTermSymbol(c.TypeSequence[p.ToCanonical[slot]])
			slot++
			continue
		}

		id, e := l.tokenizer.Add(lexer.Literal(piece.Text))
		if e != nil {
			return nil, e
		}
		symbols[i] = grammar.LiteralSymbol(id, piece.Text)
	}

	l.addRules(c, symbols, p)
	return p, nil
}
