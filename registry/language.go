package registry

import (
	"slices"

	"github.com/ava12/notation"
	"github.com/ava12/notation/grammar"
	"github.com/ava12/notation/lexer"
	"github.com/ava12/notation/parser"
	"github.com/ava12/notation/template"
)

// LanguageID is an interned language identifier, index in registration order.
type LanguageID int

// Linter post-processes rendered text.
type Linter func(string) string

// LanguageOptions contains optional language settings.
type LanguageOptions struct {
	// FlatPrecedence makes every concept reachable from the lowest subtype of its parent type
	// and disables grouping of arguments when rendering.
	FlatPrecedence bool

	// Canonical marks the language that gets putdown notations of all application concepts.
	// Only one canonical language may be registered.
	Canonical bool
}

// Language owns a grammar and a tokenizer built from its notations.
type Language struct {
	ID             LanguageID
	Name           string
	Groupers       []string
	Linter         Linter
	FlatPrecedence bool

	canonical bool
	grammar   *grammar.Grammar
	tokenizer *lexer.Tokenizer
	parser    *parser.Parser
	lowest    func(string) string
}

// AddLanguage registers a language.
// groupers contains pairs of opening and closing grouping symbols, e.g. "(", ")", "[", "]".
// Rules for type chains, grouping concepts, terminal concepts and (for canonical language)
// putdown notations of all registered concepts are added to the new language.
func (r *Registry) AddLanguage(name string, groupers []string, linter Linter, opts LanguageOptions) (*Language, error) {
	if name == "" {
		return nil, notation.FormatError(WrongNameError, "empty language name")
	}

	if _, found := r.languageIDs[name]; found {
		return nil, notation.FormatError(LanguageDefinedError, "language %q already defined", name)
	}

	if opts.Canonical && r.canonical != nil {
		return nil, notation.FormatError(LanguageDefinedError, "canonical language already defined: %q", r.canonical.Name)
	}

	if len(groupers)%2 != 0 {
		return nil, notation.FormatError(GroupersError, "odd number of grouping symbols for language %q", name)
	}
	if slices.Contains(groupers, "") {
		return nil, notation.FormatError(GroupersError, "empty grouping symbol for language %q", name)
	}

	l := &Language{
		ID:             LanguageID(len(r.languages)),
		Name:           name,
		Groupers:       slices.Clone(groupers),
		Linter:         linter,
		FlatPrecedence: opts.FlatPrecedence,
		canonical:      opts.Canonical,
		grammar:        grammar.New(r.start),
		tokenizer:      lexer.New(name),
		lowest:         r.hierarchy.LowestSubtype,
	}

	for _, chain := range r.hierarchy.Chains() {
		for i := 1; i < len(chain); i++ {
			l.grammar.AddRule(chain[i-1], []grammar.Symbol{grammar.NonTermSymbol(chain[i])}, nil)
		}
	}

	if len(l.Groupers) > 0 {
		for _, c := range r.addGrouping() {
			if e := r.addGroupers(l, c); e != nil {
				return nil, e
			}
		}
	}

	for _, c := range r.concepts {
		if e := r.seed(l, c); e != nil {
			return nil, e
		}
	}

	r.languages = append(r.languages, l)
	r.languageIDs[name] = l.ID
	if l.canonical {
		r.canonical = l
	}
	l.rebuild()

	r.logger.Debug("language registered", "name", name, "groupers", l.Groupers,
		"flat", l.FlatPrecedence, "canonical", l.canonical)
	return l, nil
}

func (r *Registry) addGroupers(l *Language, c *Concept) error {
	for i := 0; i < len(l.Groupers); i += 2 {
		t := template.New(
			template.Piece{Text: l.Groupers[i]},
			template.Piece{Text: r.variables[0], Variable: true},
			template.Piece{Text: l.Groupers[i+1]},
		)
		if _, e := r.addTemplate(l, c, t, r.variables, "", true); e != nil {
			return e
		}
	}
	return nil
}

// addRules adds the parent type rule (once) and the concept rule.
func (l *Language) addRules(c *Concept, symbols []grammar.Symbol, p *grammar.Production) {
	parent := c.Parent
	if l.FlatPrecedence {
		parent = l.lowest(parent)
	}
	l.grammar.AddRule(parent, []grammar.Symbol{grammar.NonTermSymbol(c.Name)}, nil)
	l.grammar.AddRule(c.Name, symbols, p)
}

// dropConcept removes all rules of concept name, including its parent type rule.
func (l *Language) dropConcept(name string) {
	l.grammar.RemoveRules(func(r *grammar.Rule) bool {
		if r.NonTerm == name {
			return true
		}
		return r.Production == nil && len(r.Symbols) == 1 && r.Symbols[0].IsNonTerm() && r.Symbols[0].Name == name
	})
}

// dropSeeded removes seeded productions of concept name.
func (l *Language) dropSeeded(name string) int {
	return l.grammar.RemoveRules(func(r *grammar.Rule) bool {
		return r.NonTerm == name && r.Production != nil && r.Production.Seeded
	})
}

func (l *Language) rebuild() {
	l.parser = parser.New(l.grammar)
}

// Grammar returns the language grammar.
func (l *Language) Grammar() *grammar.Grammar {
	return l.grammar
}

// Tokenizer returns the language tokenizer.
func (l *Language) Tokenizer() *lexer.Tokenizer {
	return l.tokenizer
}

// IsCanonical reports whether l is the canonical language.
func (l *Language) IsCanonical() bool {
	return l.canonical
}

// HasGroupers reports whether l defines at least one grouper pair.
func (l *Language) HasGroupers() bool {
	return len(l.Groupers) > 0
}

// Group wraps text in the first grouper pair. Returns text unchanged if l has no groupers.
func (l *Language) Group(text string) string {
	if len(l.Groupers) == 0 {
		return text
	}
	return l.Groupers[0] + text + l.Groupers[1]
}

// Productions returns productions of concept in registration order.
func (l *Language) Productions(concept string) []*grammar.Production {
	return l.grammar.Productions(concept)
}

// Rules returns rules of concept with attached productions in registration order.
func (l *Language) Rules(concept string) []*grammar.Rule {
	var res []*grammar.Rule
	for _, r := range l.grammar.Rules(concept) {
		if r.Production != nil && r.Production.Concept == concept {
			res = append(res, r)
		}
	}
	return res
}

// Production returns the production of concept with given name tag
// or the first registered production if there is no such tag or name is empty.
// Returns nil if l has no productions for concept.
func (l *Language) Production(concept, name string) *grammar.Production {
	ps := l.grammar.Productions(concept)
	if len(ps) == 0 {
		return nil
	}

	if name != "" {
		for _, p := range ps {
			if p.Name == name {
				return p
			}
		}
	}
	return ps[0]
}

// Tokenize splits text into tokens. Returns *notation.Error of LexicalErrors class on failure.
func (l *Language) Tokenize(text string) ([]*lexer.Token, error) {
	return l.tokenizer.Tokenize(text)
}

// Parse tokenizes and parses text, returning the first derivation as a nested array.
// Returns *notation.Error of LexicalErrors or SyntaxErrors class on failure.
func (l *Language) Parse(text string) (any, error) {
	tokens, e := l.tokenizer.Tokenize(text)
	if e != nil {
		return nil, e
	}

	return l.parser.Parse(tokens)
}

// Lint applies the language linter to text.
func (l *Language) Lint(text string) string {
	if l.Linter == nil {
		return text
	}
	return l.Linter(text)
}
