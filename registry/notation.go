package registry

import (
	"github.com/ava12/notation"
	"github.com/ava12/notation/grammar"
	"github.com/ava12/notation/lexer"
	"github.com/ava12/notation/template"
)

// NotationOptions contains optional notation settings.
type NotationOptions struct {
	// Terminal is true if notation text is a regular expression for a terminal concept.
	Terminal bool

	// Variables contains variable names used in the template, registry default names if empty.
	// The n-th name stands for the n-th argument of the concept.
	Variables []string

	// Name contains the name tag pairing notations of the same style across languages.
	Name string
}

// AddNotation registers a notation of concept in language and adds the corresponding rules
// to the language grammar.
// The first explicit notation removes seeded notations of the concept in the language,
// grouping concepts keep their grouper notations.
func (r *Registry) AddNotation(language, concept, text string, opts NotationOptions) (*grammar.Production, error) {
	l, found := r.Language(language)
	if !found {
		return nil, unknownLanguageError(language)
	}

	c, found := r.Concept(concept)
	if !found {
		return nil, unknownConceptError(concept)
	}

	if c.IsTerminal() != opts.Terminal {
		kind := "template"
		if opts.Terminal {
			kind = "terminal"
		}
		return nil, notation.FormatError(NotationKindError, "%s notation %q for concept %q", kind, text, concept)
	}

	var t *template.Template
	vars := opts.Variables
	if len(vars) == 0 {
		vars = r.variables
	}
	if opts.Terminal {
		if e := lexer.Check(lexer.Pattern(text)); e != nil {
			return nil, e
		}
	} else {
		var e error
		t, e = template.Parse(text, vars)
		if e == nil {
			_, _, e = mapVariables(c, t, vars)
		}
		if e != nil {
			return nil, e
		}
	}

	if !c.Grouping {
		if cnt := l.dropSeeded(concept); cnt > 0 {
			r.logger.Debug("seeded notations dropped", "language", language, "concept", concept, "count", cnt)
		}
	}

	var (
		p *grammar.Production
		e error
	)
	if opts.Terminal {
		p, e = r.addTerminal(l, c, text, opts.Name, false)
	} else {
		p, e = r.addTemplate(l, c, t, vars, opts.Name, false)
	}
	if e != nil {
		l.rebuild()
		return nil, e
	}

	l.rebuild()
	r.logger.Debug("notation registered", "language", language, "concept", concept, "text", text, "name", opts.Name)
	return p, nil
}
