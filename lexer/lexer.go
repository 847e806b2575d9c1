// Package lexer defines the tokenizer used by languages.
//
// A Tokenizer holds an ordered set of matchers, each one is either literal text or a regular expression.
// Matchers are tried in priority order: lower Priority first; matchers of equal priority
// are ordered by reverse lexicographic order of literal text (so that longer literals are tried before
// their own prefixes), then by registration order. Whitespace between tokens is insignificant.
package lexer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ava12/notation"
)

// Error codes used by lexer:
const (
	// WrongCharError indicates that tokenizer cannot fetch any token at current position.
	// Error message contains the rune at current position.
	WrongCharError = notation.LexicalErrors + iota
)

// Configuration error codes used by lexer:
const (
	// WrongPatternError indicates a matcher pattern that is not a valid regular expression.
	WrongPatternError = notation.ConfigErrors + 60 + iota

	// EmptyMatchError indicates a matcher pattern that matches empty string.
	EmptyMatchError
)

// Matcher priorities. Generic patterns must be tried after all specific literals.
const (
	LiteralPriority = 0
	PatternPriority = 10
)

// Matcher describes a token pattern.
type Matcher struct {
	// ID is assigned by Tokenizer.Add and never changes.
	ID int

	// Pattern contains literal text or a regular expression.
	Pattern string

	// Literal is true for literal text patterns.
	Literal bool

	// Priority defines try order, lower values are tried first.
	Priority int
}

func (m Matcher) String() string {
	if m.Literal {
		return fmt.Sprintf("%q", m.Pattern)
	}
	return "/" + m.Pattern + "/"
}

func (m Matcher) source() string {
	if m.Literal {
		return regexp.QuoteMeta(m.Pattern)
	}
	return m.Pattern
}

// Literal creates a literal matcher with LiteralPriority.
func Literal(text string) Matcher {
	return Matcher{Pattern: text, Literal: true, Priority: LiteralPriority}
}

// Pattern creates a regular expression matcher with PatternPriority.
func Pattern(re string) Matcher {
	return Matcher{Pattern: re, Priority: PatternPriority}
}

// Check returns an error if m cannot be used as a token pattern:
// it is not a valid regular expression or it matches empty string.
func Check(m Matcher) error {
	re, e := regexp.Compile("^(?:" + m.source() + ")")
	if e != nil {
		return notation.FormatError(WrongPatternError, "incorrect pattern %s (%s)", m, e.Error())
	}
	if re.MatchString("") {
		return notation.FormatError(EmptyMatchError, "pattern %s matches empty string", m)
	}
	return nil
}

// Tokenizer converts text to a sequence of tokens.
// Tokenizer must not be modified concurrently with other calls,
// Tokenize is safe for concurrent use once setup is done.
type Tokenizer struct {
	name     string
	matchers []Matcher // in registration order, index is the ID
	order    []int     // IDs in try order
	owners   []int     // regexp group index -> matcher ID, -1 for inner groups
	re       *regexp.Regexp
}

// New creates an empty tokenizer. name is used in error messages.
func New(name string) *Tokenizer {
	t := &Tokenizer{name: name}
	t.compile()
	return t
}

// Name returns the tokenizer name.
func (t *Tokenizer) Name() string {
	return t.name
}

// Find returns the ID of the matcher with the same pattern and kind.
func (t *Tokenizer) Find(m Matcher) (id int, found bool) {
	for _, mm := range t.matchers {
		if mm.Literal == m.Literal && mm.Pattern == m.Pattern {
			return mm.ID, true
		}
	}
	return -1, false
}

// Add registers a matcher unless the same matcher is already registered and returns its ID.
func (t *Tokenizer) Add(m Matcher) (int, error) {
	id, found := t.Find(m)
	if found {
		return id, nil
	}

	if e := Check(m); e != nil {
		return -1, e
	}

	m.ID = len(t.matchers)
	t.matchers = append(t.matchers, m)
	t.compile()
	return m.ID, nil
}

// Matcher returns the matcher with given ID.
func (t *Tokenizer) Matcher(id int) Matcher {
	return t.matchers[id]
}

// Matchers returns all matchers in try order.
func (t *Tokenizer) Matchers() []Matcher {
	res := make([]Matcher, len(t.order))
	for i, id := range t.order {
		res[i] = t.matchers[id]
	}
	return res
}

func (t *Tokenizer) sort() {
	t.order = make([]int, len(t.matchers))
	for i := range t.order {
		t.order[i] = i
	}
	sort.SliceStable(t.order, func(i, j int) bool {
		a := t.matchers[t.order[i]]
		b := t.matchers[t.order[j]]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if a.Literal && b.Literal {
			return a.Pattern > b.Pattern
		}
		return false
	})
}

func (t *Tokenizer) compile() {
	t.sort()
	masks := []string{`\s+`}
	t.owners = []int{-1}
	for _, id := range t.order {
		m := t.matchers[id]
		src := m.source()
		masks = append(masks, "("+src+")")
		t.owners = append(t.owners, id)
		inner := regexp.MustCompile(src).NumSubexp()
		for ; inner > 0; inner-- {
			t.owners = append(t.owners, -1)
		}
	}
	t.re = regexp.MustCompile("(?s:" + strings.Join(masks, "|") + ")")
}

func position(text string, pos int) (line, col int) {
	head := text[:pos]
	line = strings.Count(head, "\n") + 1
	lineStart := strings.LastIndexByte(head, '\n') + 1
	return line, utf8.RuneCountInString(head[lineStart:]) + 1
}

func (t *Tokenizer) wrongCharError(text string, pos int) *notation.Error {
	r, _ := utf8.DecodeRuneInString(text[pos:])
	line, col := position(text, pos)
	msg := fmt.Sprintf("wrong char \"%c\" (u+%x)", r, r)
	return notation.NewError(WrongCharError, msg, t.name, line, col)
}

// Tokenize splits text into tokens.
// Returns nil and *notation.Error with WrongCharError code if some part of text matches no pattern.
func (t *Tokenizer) Tokenize(text string) ([]*Token, error) {
	var res []*Token
	pos := 0
	for pos < len(text) {
		match := t.re.FindStringSubmatchIndex(text[pos:])
		if len(match) == 0 || match[0] != 0 || match[1] <= match[0] {
			return nil, t.wrongCharError(text, pos)
		}

		for g := 1; g < len(t.owners); g++ {
			id := t.owners[g]
			if id < 0 || match[g*2] < 0 {
				continue
			}

			m := t.matchers[id]
			line, col := position(text, pos)
			res = append(res, &Token{id, m.Pattern, text[pos : pos+match[1]], t.name, line, col})
			break
		}
		pos += match[1]
	}
	return res, nil
}
