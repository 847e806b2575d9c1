// Package converter defines Converter, the entry point for registering notations
// and converting expressions between languages.
package converter

import (
	"log/slog"
	"regexp"

	"github.com/ava12/notation"
	"github.com/ava12/notation/ast"
	"github.com/ava12/notation/grammar"
	"github.com/ava12/notation/registry"
	"github.com/ava12/notation/types"
)

// Pseudo-language names.
const (
	// Putdown is the built-in canonical language.
	Putdown = "putdown"

	// AST stands for the JSON tree: as a source language the text is a tree to render,
	// as a target language the compacted tree is returned.
	AST = "ast"
)

var (
	openRe  = regexp.MustCompile(`([(\[{])\s+`)
	closeRe = regexp.MustCompile(`\s+([)\]}])`)
)

// PutdownLinter removes spaces after opening and before closing brackets.
func PutdownLinter(text string) string {
	return closeRe.ReplaceAllString(openRe.ReplaceAllString(text, "$1"), "$1")
}

// Options contains converter settings.
type Options struct {
	// Chains contains syntactic type chains, types.DefaultChains are used if empty.
	Chains [][]string

	// Variables contains default template variable names, A..Z if empty.
	Variables []string

	// Start contains the start nonterminal, "expression" if empty.
	Start string

	// Logger receives debug messages, nothing is logged if nil.
	Logger *slog.Logger
}

// LanguageOptions contains optional language settings.
type LanguageOptions struct {
	// FlatPrecedence makes all concepts reachable at the lowest precedence level and disables grouping.
	FlatPrecedence bool
}

// Converter owns a registry with the built-in putdown language.
// Setup methods (Add*) must not be called concurrently with other methods;
// once setup is done Convert, Parse, and Render are safe for concurrent use.
type Converter struct {
	reg    *registry.Registry
	logger *slog.Logger
}

// New creates a converter containing putdown language.
func New(opts Options) (*Converter, error) {
	h, e := types.NewHierarchy(opts.Chains...)
	if e != nil {
		return nil, e
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	reg, e := registry.New(registry.Options{
		Hierarchy: h,
		Variables: opts.Variables,
		Start:     opts.Start,
		Logger:    logger,
	})
	if e != nil {
		return nil, e
	}

	_, e = reg.AddLanguage(Putdown, nil, PutdownLinter, registry.LanguageOptions{FlatPrecedence: true, Canonical: true})
	if e != nil {
		return nil, e
	}

	return &Converter{reg, logger.With("component", "converter")}, nil
}

// Registry returns the underlying registry.
func (c *Converter) Registry() *registry.Registry {
	return c.reg
}

// AddLanguage registers a language. groupers contains pairs of grouping symbols, linter may be nil.
func (c *Converter) AddLanguage(name string, groupers []string, linter registry.Linter, opts LanguageOptions) error {
	if name == AST {
		return notation.FormatError(registry.WrongNameError, "language name %q is reserved", name)
	}

	_, e := c.reg.AddLanguage(name, groupers, linter, registry.LanguageOptions{FlatPrecedence: opts.FlatPrecedence})
	return e
}

// AddConcept registers a concept, see registry.Registry.AddConcept.
func (c *Converter) AddConcept(name, parent string, p registry.Pattern) error {
	_, e := c.reg.AddConcept(name, parent, p)
	return e
}

// AddNotation registers a notation, see registry.Registry.AddNotation.
func (c *Converter) AddNotation(language, concept, text string, opts registry.NotationOptions) error {
	_, e := c.reg.AddNotation(language, concept, text, opts)
	return e
}

// Languages returns language names in registration order, putdown first.
func (c *Converter) Languages() []string {
	ls := c.reg.Languages()
	res := make([]string, len(ls))
	for i, l := range ls {
		res[i] = l.Name
	}
	return res
}

// Language returns the registered language with given name.
func (c *Converter) Language(name string) (*registry.Language, error) {
	return c.reg.MustLanguage(name)
}

// Rules returns grammar rules of language in registration order.
func (c *Converter) Rules(language string) ([]*grammar.Rule, error) {
	l, e := c.reg.MustLanguage(language)
	if e != nil {
		return nil, e
	}
	return l.Grammar().AllRules(), nil
}

func (c *Converter) checkLanguage(name string) error {
	if name == AST {
		return nil
	}
	_, e := c.reg.MustLanguage(name)
	return e
}

// Parse converts text in language to a compacted tree.
// Returns false (and no error) if text does not conform to language grammar.
func (c *Converter) Parse(language, text string) (*ast.Node, bool, error) {
	if language == AST {
		n, e := ast.ParseJSON(text)
		if e != nil {
			return nil, false, e
		}

		n, e = n.Compact(c.reg)
		return n, e == nil, e
	}

	l, e := c.reg.MustLanguage(language)
	if e != nil {
		return nil, false, e
	}

	raw, e := l.Parse(text)
	if e != nil {
		if notation.IsInputError(e) {
			c.logger.Debug("cannot parse", "language", language, "text", text, "error", e)
			return nil, false, nil
		}
		return nil, false, e
	}

	n, e := ast.FromJSON(c.reg, l, raw)
	if e == nil {
		n, e = n.Compact(c.reg)
	}
	if e != nil {
		return nil, false, e
	}
	return n, true, nil
}

// Render compacts tree and writes it in language. AST language yields compact JSON.
func (c *Converter) Render(tree *ast.Node, language string) (string, error) {
	if e := c.checkLanguage(language); e != nil {
		return "", e
	}

	n, e := tree.Compact(c.reg)
	if e != nil {
		return "", e
	}

	if language == AST {
		return n.String(), nil
	}

	l, _ := c.reg.Language(language)
	return n.WriteIn(c.reg, l)
}

// Convert converts text from src language to dst language.
// Equal languages yield text unchanged. Returns false (and no error) if text does not conform
// to src grammar. Errors indicate unknown languages or broken configuration.
func (c *Converter) Convert(src, dst, text string) (string, bool, error) {
	if e := c.checkLanguage(src); e != nil {
		return "", false, e
	}
	if e := c.checkLanguage(dst); e != nil {
		return "", false, e
	}

	if src == dst {
		return text, true, nil
	}

	tree, ok, e := c.Parse(src, text)
	if !ok {
		return "", false, e
	}

	res, e := c.Render(tree, dst)
	if e != nil {
		return "", false, e
	}

	c.logger.Debug("converted", "from", src, "to", dst, "text", text, "result", res)
	return res, true, nil
}
