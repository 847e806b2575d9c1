// Package registry holds concepts and languages and builds per-language grammars and
// tokenizers from notations.
//
// Registry is filled at setup time (AddConcept, AddLanguage, AddNotation) and must be treated
// as read-only afterwards; a read-only registry is safe for concurrent use.
package registry

import (
	"log/slog"

	"github.com/ava12/notation"
	"github.com/ava12/notation/template"
	"github.com/ava12/notation/types"
)

// Error codes used by registry:
const (
	// UnknownLanguageError indicates an unregistered language name.
	UnknownLanguageError = notation.ConfigErrors + 20 + iota

	// UnknownConceptError indicates an unregistered concept name.
	UnknownConceptError

	// UnknownTypeError indicates a parent type missing from the type hierarchy.
	UnknownTypeError

	// LanguageDefinedError indicates an attempt to register a language twice.
	LanguageDefinedError

	// WrongNameError indicates an empty name or a concept name clashing with a type name.
	WrongNameError

	// GroupersError indicates an odd number of grouping symbols or an empty grouping symbol.
	GroupersError

	// NotationKindError indicates a template notation for a terminal concept or
	// a terminal notation for an application concept.
	NotationKindError

	// VariableIndexError indicates a template variable with no matching type sequence entry.
	VariableIndexError

	// MissingVariableError indicates a template that does not use some concept argument.
	MissingVariableError

	// TooFewVariablesError indicates a concept with more arguments than there are variable names.
	TooFewVariablesError
)

// DefaultStart is the default start nonterminal of language grammars.
const DefaultStart = types.Expression

// Options contains registry settings.
type Options struct {
	// Hierarchy contains syntactic type chains, types.DefaultChains are used if nil.
	Hierarchy *types.Hierarchy

	// Variables contains default template variable names, template.DefaultVariables() if empty.
	Variables []string

	// Start contains the start nonterminal of language grammars, DefaultStart if empty.
	Start string

	// Logger receives registration messages at debug level, nothing is logged if nil.
	Logger *slog.Logger
}

// Registry holds concepts, languages, and the syntactic type hierarchy.
type Registry struct {
	hierarchy   *types.Hierarchy
	variables   []string
	start       string
	logger      *slog.Logger
	concepts    []*Concept
	conceptIDs  map[string]ConceptID
	languages   []*Language
	languageIDs map[string]LanguageID
	canonical   *Language
}

// New creates an empty registry.
func New(opts Options) (*Registry, error) {
	h := opts.Hierarchy
	if h == nil {
		var e error
		h, e = types.NewHierarchy()
		if e != nil {
			return nil, e
		}
	}

	vars := opts.Variables
	if len(vars) == 0 {
		vars = template.DefaultVariables()
	}

	start := opts.Start
	if start == "" {
		start = DefaultStart
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Registry{
		hierarchy:   h,
		variables:   append([]string(nil), vars...),
		start:       start,
		logger:      logger.With("component", "registry"),
		conceptIDs:  make(map[string]ConceptID),
		languageIDs: make(map[string]LanguageID),
	}, nil
}

// Hierarchy returns the syntactic type hierarchy.
func (r *Registry) Hierarchy() *types.Hierarchy {
	return r.hierarchy
}

// Variables returns default template variable names.
func (r *Registry) Variables() []string {
	return append([]string(nil), r.variables...)
}

// Start returns the start nonterminal of language grammars.
func (r *Registry) Start() string {
	return r.start
}

// IsType reports whether name is a syntactic type.
func (r *Registry) IsType(name string) bool {
	return r.hierarchy.Has(name)
}

// Concept returns the concept with given name.
func (r *Registry) Concept(name string) (*Concept, bool) {
	id, found := r.conceptIDs[name]
	if !found {
		return nil, false
	}
	return r.concepts[id], true
}

// ConceptByID returns the concept with given ID or nil.
func (r *Registry) ConceptByID(id ConceptID) *Concept {
	if id < 0 || int(id) >= len(r.concepts) {
		return nil
	}
	return r.concepts[id]
}

// Concepts returns all concepts in registration order, including grouping concepts.
func (r *Registry) Concepts() []*Concept {
	return append([]*Concept(nil), r.concepts...)
}

// Language returns the language with given name.
func (r *Registry) Language(name string) (*Language, bool) {
	id, found := r.languageIDs[name]
	if !found {
		return nil, false
	}
	return r.languages[id], true
}

// MustLanguage is like Language but returns an error for unknown names.
func (r *Registry) MustLanguage(name string) (*Language, error) {
	l, found := r.Language(name)
	if !found {
		return nil, unknownLanguageError(name)
	}
	return l, nil
}

// Languages returns all languages in registration order.
func (r *Registry) Languages() []*Language {
	return append([]*Language(nil), r.languages...)
}

// Canonical returns the canonical (putdown) language or nil if none is registered.
func (r *Registry) Canonical() *Language {
	return r.canonical
}

func unknownLanguageError(name string) *notation.Error {
	return notation.FormatError(UnknownLanguageError, "unknown language %q", name)
}

func unknownConceptError(name string) *notation.Error {
	return notation.FormatError(UnknownConceptError, "unknown concept %q", name)
}

func unknownTypeError(name, concept string) *notation.Error {
	return notation.FormatError(UnknownTypeError, "unknown syntactic type %q for concept %q", name, concept)
}
