/*
Package notation converts mathematical expressions between surface notations.

A designer registers syntactic type chains, concepts (named semantic units with a
canonical "putdown" pattern), languages, and per-language notations for the concepts.
Text in any registered language can then be parsed into a language independent tree
and rendered in any other language, keeping the named stylistic variant when the target
language has one.

Consists of subpackages:
  - types: syntactic type hierarchy (supertype relation over linear chains);
  - template: notation templates made of literal and variable pieces;
  - grammar: grammar rules and production metadata built from notations;
  - lexer: tokenizer with prioritized literal and regexp matchers;
  - parser: Earley parser returning the first parse as nested arrays;
  - registry: concept registry, languages, and the notation/grammar builder;
  - ast: tree type with FromJSON, Compact, and WriteIn operations;
  - converter: façade owning the registry and orchestrating conversions;
  - config: application config, concept/notation tables, and table hot reload;
  - cmd/notate: console utility.

Typical usage is:

1. Create a converter (it contains the canonical putdown language).

2. Register concepts, then languages and notations, either directly or from table files
with config.Build.

3. Call Convert(source, target, text).
*/
package notation

import (
	"errors"
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	ConfigErrors  = 1   // used by types, template, registry
	TreeErrors    = 101 // used by ast (FromJSON, Compact)
	RenderErrors  = 201 // used by ast (WriteIn)
	LexicalErrors = 301 // used by lexer
	SyntaxErrors  = 401 // used by parser
)

// Error is the error type used by notation subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains the language name of the text that caused this error or empty string.
	SourceName string

	// Line contains line number in source text or 0.
	Line int

	// Col contains column number in source text or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// lexer.Token implements this interface.
type SourcePos interface {
	// SourceName returns source language name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// Class returns the first code of the error class e belongs to.
func (e *Error) Class() int {
	return (e.Code-1)/100*100 + 1
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// IsInputError reports whether e (or an error it wraps) is caused by malformed input text
// rather than by a broken configuration, i.e. belongs to LexicalErrors or SyntaxErrors.
func IsInputError(e error) bool {
	var ne *Error
	if !errors.As(e, &ne) {
		return false
	}

	c := ne.Class()
	return c == LexicalErrors || c == SyntaxErrors
}

// HasCode reports whether e (or an error it wraps) is an *Error with given code.
func HasCode(e error, code int) bool {
	var ne *Error
	return errors.As(e, &ne) && ne.Code == code
}
