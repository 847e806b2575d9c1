// Package template splits notation strings into literal and variable pieces and fills
// variables with values.
package template

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ava12/notation"
)

// Error codes used by template:
const (
	// EmptyTemplateError indicates a template with no pieces.
	EmptyTemplateError = notation.ConfigErrors + 10 + iota

	// DuplicateVariableError indicates a variable used more than once in a template.
	DuplicateVariableError

	// NoVariablesError indicates an empty list of variable names.
	NoVariablesError
)

// DefaultVariables returns the default variable names: A, B, ..., Z.
func DefaultVariables() []string {
	res := make([]string, 26)
	for i := range res {
		res[i] = string(rune('A' + i))
	}
	return res
}

// Piece is a part of a template: either literal text or a variable slot.
type Piece struct {
	// Text contains literal text or variable name.
	Text string

	// Variable is true for variable slots.
	Variable bool
}

// Template is a parsed notation string. Template is immutable.
type Template struct {
	text   string
	pieces []Piece
	slots  []int // indexes of variable pieces
}

// Parse splits text into pieces.
// Each occurrence of a name from variables bounded by word boundaries becomes a variable slot,
// the remaining text is split on whitespace into literal pieces.
func Parse(text string, variables []string) (*Template, error) {
	if len(variables) == 0 {
		return nil, notation.FormatError(NoVariablesError, "no variable names for template %q", text)
	}

	names := append([]string(nil), variables...)
	sort.SliceStable(names, func(i, j int) bool {
		return len(names[i]) > len(names[j])
	})
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(n)
	}
	re := regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)

	t := &Template{text: text}
	used := make(map[string]bool)
	addLiterals := func(s string) {
		for _, f := range strings.Fields(s) {
			t.pieces = append(t.pieces, Piece{Text: f})
		}
	}

	pos := 0
	for _, m := range re.FindAllStringIndex(text, -1) {
		addLiterals(text[pos:m[0]])
		name := text[m[0]:m[1]]
		if used[name] {
			return nil, notation.FormatError(DuplicateVariableError, "variable %s used twice in template %q", name, text)
		}

		used[name] = true
		t.slots = append(t.slots, len(t.pieces))
		t.pieces = append(t.pieces, Piece{Text: name, Variable: true})
		pos = m[1]
	}
	addLiterals(text[pos:])

	if len(t.pieces) == 0 {
		return nil, notation.FormatError(EmptyTemplateError, "empty template %q", text)
	}

	return t, nil
}

// New creates a template from pieces. Literal pieces containing whitespace are split.
// Template text is the pieces joined with single spaces.
func New(pieces ...Piece) *Template {
	t := &Template{}
	texts := make([]string, 0, len(pieces))
	for _, p := range pieces {
		if p.Variable {
			t.slots = append(t.slots, len(t.pieces))
			t.pieces = append(t.pieces, p)
			texts = append(texts, p.Text)
			continue
		}

		for _, f := range strings.Fields(p.Text) {
			t.pieces = append(t.pieces, Piece{Text: f})
			texts = append(texts, f)
		}
	}
	t.text = strings.Join(texts, " ")
	return t
}

// MustParse is like Parse but panics on error.
func MustParse(text string, variables []string) *Template {
	t, e := Parse(text, variables)
	if e != nil {
		panic(e)
	}
	return t
}

// Text returns original template text.
func (t *Template) Text() string {
	return t.text
}

// Pieces returns a copy of template pieces.
func (t *Template) Pieces() []Piece {
	return append([]Piece(nil), t.pieces...)
}

// Len returns the number of pieces.
func (t *Template) Len() int {
	return len(t.pieces)
}

// Variables returns variable names in template order.
func (t *Template) Variables() []string {
	res := make([]string, len(t.slots))
	for i, pi := range t.slots {
		res[i] = t.pieces[pi].Text
	}
	return res
}

// Literals returns literal pieces in template order, possibly with duplicates.
func (t *Template) Literals() []string {
	res := make([]string, 0, len(t.pieces)-len(t.slots))
	for _, p := range t.pieces {
		if !p.Variable {
			res = append(res, p.Text)
		}
	}
	return res
}

// IsPassThrough reports whether the template consists of a single variable.
func (t *Template) IsPassThrough() bool {
	return len(t.pieces) == 1 && t.pieces[0].Variable
}

// Fill substitutes the n-th variable slot with values[n] and joins pieces with single spaces.
// Missing values are replaced with empty strings.
func (t *Template) Fill(values []string) string {
	parts := make([]string, len(t.pieces))
	slot := 0
	for i, p := range t.pieces {
		if !p.Variable {
			parts[i] = p.Text
			continue
		}

		if slot < len(values) {
			parts[i] = values[slot]
		}
		slot++
	}
	return strings.Join(parts, " ")
}

// FillNamed substitutes variables with values from the map and joins pieces with single spaces.
// Variables missing from the map are kept as is.
func (t *Template) FillNamed(values map[string]string) string {
	parts := make([]string, len(t.pieces))
	for i, p := range t.pieces {
		v, found := values[p.Text]
		if p.Variable && found {
			parts[i] = v
		} else {
			parts[i] = p.Text
		}
	}
	return strings.Join(parts, " ")
}
