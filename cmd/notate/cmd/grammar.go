package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ava12/notation/grammar"
	"github.com/ava12/notation/registry"
)

var (
	grammarJSON bool
	grammarOut  string
)

var grammarCmd = &cobra.Command{
	Use:   "grammar <language>",
	Short: "Dumps language grammar",
	Long: `Dumps rules and tokens of a language grammar as text or JSON.

Examples:
  notate grammar infix
  notate grammar --json -o latex.json latex`,
	Args: cobra.ExactArgs(1),
	RunE: runGrammar,
}

func init() {
	rootCmd.AddCommand(grammarCmd)
	grammarCmd.Flags().BoolVarP(&grammarJSON, "json", "j", false, "output JSON")
	grammarCmd.Flags().StringVarP(&grammarOut, "output", "o", "", "output file name, default is stdout")
}

type jsonSymbol struct {
	Name    string `json:"name"`
	Term    bool   `json:"term,omitempty"`
	Literal bool   `json:"literal,omitempty"`
}

type jsonRule struct {
	NonTerm  string       `json:"nonterm"`
	Symbols  []jsonSymbol `json:"symbols"`
	Concept  string       `json:"concept,omitempty"`
	Notation string       `json:"notation,omitempty"`
	Name     string       `json:"name,omitempty"`
	Seeded   bool         `json:"seeded,omitempty"`
}

type jsonGrammar struct {
	Language string     `json:"language"`
	Start    string     `json:"start"`
	Groupers []string   `json:"groupers,omitempty"`
	Flat     bool       `json:"flat,omitempty"`
	Tokens   []string   `json:"tokens"`
	Rules    []jsonRule `json:"rules"`
}

func runGrammar(cmd *cobra.Command, args []string) error {
	c, err := newConverter()
	if err != nil {
		return err
	}

	l, err := c.Language(args[0])
	if err != nil {
		return err
	}

	var content []byte
	if grammarJSON {
		content, err = makeJSON(l)
		if err != nil {
			return err
		}
	} else {
		content = makeText(l)
	}

	if grammarOut == "" {
		_, err = cmd.OutOrStdout().Write(content)
		return err
	}
	return os.WriteFile(grammarOut, content, 0o666)
}

func makeText(l *registry.Language) []byte {
	var buf []byte
	buf = fmt.Appendf(buf, "# %s, start: %s\n", l.Name, l.Grammar().Start())
	for _, m := range l.Tokenizer().Matchers() {
		buf = fmt.Appendf(buf, "# token %s\n", m)
	}
	for _, r := range l.Grammar().AllRules() {
		buf = fmt.Appendf(buf, "%s;", r)
		if p := r.Production; p != nil && p.Concept == r.NonTerm {
			buf = fmt.Appendf(buf, " # %s", p.Text())
			if p.Name != "" {
				buf = fmt.Appendf(buf, " (%s)", p.Name)
			}
		}
		buf = append(buf, '\n')
	}
	return buf
}

func makeJSON(l *registry.Language) ([]byte, error) {
	g := l.Grammar()
	res := jsonGrammar{
		Language: l.Name,
		Start:    g.Start(),
		Groupers: l.Groupers,
		Flat:     l.FlatPrecedence,
		Tokens:   []string{},
		Rules:    []jsonRule{},
	}

	for _, m := range l.Tokenizer().Matchers() {
		res.Tokens = append(res.Tokens, m.String())
	}

	for _, r := range g.AllRules() {
		jr := jsonRule{NonTerm: r.NonTerm, Symbols: make([]jsonSymbol, len(r.Symbols))}
		for i, s := range r.Symbols {
			jr.Symbols[i] = jsonSymbol{Name: s.Name, Term: s.Term != grammar.NonTerm, Literal: s.Literal}
		}
		if p := r.Production; p != nil && p.Concept == r.NonTerm {
			jr.Concept = p.Concept
			jr.Notation = p.Text()
			jr.Name = p.Name
			jr.Seeded = p.Seeded
		}
		res.Rules = append(res.Rules, jr)
	}

	content, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(content, '\n'), nil
}
