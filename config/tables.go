package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ava12/notation/converter"
	"github.com/ava12/notation/registry"
)

//go:embed builtin/arith.yaml
var builtinArith []byte

// Linter names usable in language tables.
const (
	NoLinter       = "none"
	BracketsLinter = "brackets"
)

var linters = map[string]registry.Linter{
	NoLinter:       nil,
	BracketsLinter: converter.PutdownLinter,
}

// Tables holds a set of languages, concepts, and notations.
type Tables struct {
	// Types contains syntactic type chains, default chains are used if no table defines them.
	Types [][]string `yaml:"types,omitempty" toml:"types"`

	// Variables contains default variable names for notations of this table.
	Variables []string `yaml:"variables,omitempty" toml:"variables"`

	Languages []LanguageTable `yaml:"languages,omitempty" toml:"languages"`
	Concepts  []ConceptTable  `yaml:"concepts,omitempty" toml:"concepts"`

	// Notations maps language name to notations in registration order.
	Notations map[string][]NotationTable `yaml:"notations,omitempty" toml:"notations"`

	// Source contains the file name or "builtin".
	Source string `yaml:"-" toml:"-"`
}

// LanguageTable describes a language.
type LanguageTable struct {
	Name     string   `yaml:"name" toml:"name"`
	Groupers []string `yaml:"groupers,omitempty" toml:"groupers"`
	Linter   string   `yaml:"linter,omitempty" toml:"linter"`
	Flat     bool     `yaml:"flat,omitempty" toml:"flat"`
}

// ConceptTable describes a concept, exactly one of Putdown and Terminal must be set.
type ConceptTable struct {
	Name     string `yaml:"name" toml:"name"`
	Parent   string `yaml:"parent" toml:"parent"`
	Putdown  string `yaml:"putdown,omitempty" toml:"putdown"`
	Terminal string `yaml:"terminal,omitempty" toml:"terminal"`
}

// NotationTable describes a notation, exactly one of Template and Terminal must be set.
type NotationTable struct {
	Concept   string   `yaml:"concept" toml:"concept"`
	Template  string   `yaml:"template,omitempty" toml:"template"`
	Terminal  string   `yaml:"terminal,omitempty" toml:"terminal"`
	Variables []string `yaml:"variables,omitempty" toml:"variables"`
	Name      string   `yaml:"name,omitempty" toml:"name"`
}

// Builtin returns the built-in arithmetic table.
func Builtin() *Tables {
	t, err := ParseTables(builtinArith, "yaml")
	if err != nil {
		panic(fmt.Sprintf("broken builtin table: %v", err))
	}
	t.Source = "builtin"
	return t
}

// LoadTables loads tables from a YAML (.yaml, .yml) or TOML (.toml) file.
func LoadTables(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables: %w", err)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	t, err := ParseTables(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	t.Source = path
	return t, nil
}

// ParseTables decodes tables in given format ("yaml", "yml", or "toml"),
// applies defaults and validates the result.
func ParseTables(data []byte, format string) (*Tables, error) {
	var t Tables
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("failed to parse YAML tables: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("failed to parse TOML tables: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported tables format %q", format)
	}

	t.Defaults()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Defaults applies default values to the tables.
func (t *Tables) Defaults() {
	for i := range t.Languages {
		l := &t.Languages[i]
		l.Name = strings.TrimSpace(l.Name)
		if l.Linter == "" {
			l.Linter = NoLinter
		}
	}

	for i := range t.Concepts {
		c := &t.Concepts[i]
		c.Name = strings.TrimSpace(c.Name)
		c.Parent = strings.TrimSpace(c.Parent)
	}

	for _, ns := range t.Notations {
		for i := range ns {
			ns[i].Concept = strings.TrimSpace(ns[i].Concept)
			if len(ns[i].Variables) == 0 && len(t.Variables) > 0 {
				ns[i].Variables = slices.Clone(t.Variables)
			}
		}
	}
}

// Validate checks table structure. Names are resolved later by Build.
func (t *Tables) Validate() error {
	var errs []error
	for i, l := range t.Languages {
		if l.Name == "" {
			errs = append(errs, fmt.Errorf("language #%d: name is required", i))
		}
		if _, found := linters[l.Linter]; !found {
			errs = append(errs, fmt.Errorf("language %q: unknown linter %q", l.Name, l.Linter))
		}
		if len(l.Groupers)%2 != 0 {
			errs = append(errs, fmt.Errorf("language %q: odd number of groupers", l.Name))
		}
	}

	for i, c := range t.Concepts {
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("concept #%d: name is required", i))
		}
		if c.Parent == "" {
			errs = append(errs, fmt.Errorf("concept %q: parent is required", c.Name))
		}
		if (c.Putdown == "") == (c.Terminal == "") {
			errs = append(errs, fmt.Errorf("concept %q: exactly one of putdown and terminal is required", c.Name))
		}
	}

	for lang, ns := range t.Notations {
		for i, n := range ns {
			if n.Concept == "" {
				errs = append(errs, fmt.Errorf("notation %s #%d: concept is required", lang, i))
			}
			if (n.Template == "") == (n.Terminal == "") {
				errs = append(errs, fmt.Errorf("notation %s %q: exactly one of template and terminal is required", lang, n.Concept))
			}
		}
	}

	return errors.Join(errs...)
}

// Build creates a converter and applies tables to it:
// languages of all tables first, then concepts, then notations.
// Type chains are taken from the first table defining them.
func Build(opts converter.Options, tables ...*Tables) (*converter.Converter, error) {
	if len(opts.Chains) == 0 {
		for _, t := range tables {
			if len(t.Types) > 0 {
				opts.Chains = t.Types
				break
			}
		}
	}

	c, err := converter.New(opts)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	for _, t := range tables {
		for _, l := range t.Languages {
			err = c.AddLanguage(l.Name, l.Groupers, linters[l.Linter], converter.LanguageOptions{FlatPrecedence: l.Flat})
			if err != nil {
				return nil, fmt.Errorf("%s: language %q: %w", t.Source, l.Name, err)
			}
		}
	}

	for _, t := range tables {
		for _, cc := range t.Concepts {
			p := registry.Putdown(cc.Putdown)
			if cc.Terminal != "" {
				p = registry.Terminal(cc.Terminal)
			}
			if err = c.AddConcept(cc.Name, cc.Parent, p); err != nil {
				return nil, fmt.Errorf("%s: concept %q: %w", t.Source, cc.Name, err)
			}
		}
	}

	for _, t := range tables {
		langs := make([]string, 0, len(t.Notations))
		for lang := range t.Notations {
			langs = append(langs, lang)
		}
		slices.Sort(langs)

		count := 0
		for _, lang := range langs {
			for _, n := range t.Notations[lang] {
				no := registry.NotationOptions{Variables: n.Variables, Name: n.Name}
				text := n.Template
				if n.Terminal != "" {
					no.Terminal = true
					text = n.Terminal
				}
				if err = c.AddNotation(lang, n.Concept, text, no); err != nil {
					return nil, fmt.Errorf("%s: notation %s %q: %w", t.Source, lang, n.Concept, err)
				}
				count++
			}
		}

		logger.Info("tables applied", "source", t.Source, "languages", len(t.Languages),
			"concepts", len(t.Concepts), "notations", count)
	}

	return c, nil
}

// NewConverter loads tables named by cfg (the built-in one first unless disabled)
// and builds a converter.
func NewConverter(cfg *Config, logger *slog.Logger) (*converter.Converter, error) {
	var tables []*Tables
	if !cfg.Tables.NoBuiltin {
		tables = append(tables, Builtin())
	}

	for _, f := range cfg.Tables.Files {
		t, err := LoadTables(f)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}

	return Build(converter.Options{
		Variables: cfg.Converter.Variables,
		Start:     cfg.Converter.Start,
		Logger:    logger,
	}, tables...)
}
