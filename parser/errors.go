package parser

import (
	"strings"

	"github.com/ava12/notation"
	"github.com/ava12/notation/lexer"
)

// Error codes used by parser:
const (
	// UnexpectedEoiError indicates that input ended while some tokens are still expected.
	UnexpectedEoiError = notation.SyntaxErrors + iota

	// UnexpectedTokenError indicates a token that cannot continue any derivation.
	UnexpectedTokenError

	// UnresolvedError indicates that input is recognized but no derivation tree can be built
	// (possible only for grammars with derivation cycles).
	UnresolvedError
)

func expectedList(expected []string) string {
	if len(expected) == 0 {
		return "nothing"
	}
	return strings.Join(expected, " or ")
}

func unexpectedEoiError(source string, expected []string) *notation.Error {
	msg := "unexpected end of input, expecting " + expectedList(expected)
	if source != "" {
		msg += " in " + source
	}
	return notation.FormatError(UnexpectedEoiError, msg)
}

func unexpectedTokenError(t *lexer.Token, expected []string) *notation.Error {
	return notation.FormatErrorPos(t, UnexpectedTokenError, "unexpected token %q, expecting %s", t.Text(), expectedList(expected))
}

func unresolvedError(start string) *notation.Error {
	return notation.FormatError(UnresolvedError, "cannot build derivation tree for %s", start)
}
