package lexer

import (
	"strings"
	"testing"

	"github.com/ava12/notation"
	"github.com/ava12/notation/internal/test"
)

func tokenizer(t *testing.T, ms ...Matcher) *Tokenizer {
	tk := New("sample")
	for _, m := range ms {
		_, e := tk.Add(m)
		test.ExpectSuccess(t, e)
	}
	return tk
}

func tokenTexts(ts []*Token) string {
	texts := make([]string, len(ts))
	for i, t := range ts {
		texts[i] = t.Text()
	}
	return strings.Join(texts, " ")
}

func TestEmpty(t *testing.T) {
	tk := tokenizer(t, Pattern(`\d+`))
	for _, src := range []string{"", " ", " \t\r\n "} {
		ts, e := tk.Tokenize(src)
		if e != nil {
			t.Fatalf("source %q: unexpected error %s", src, e)
		}
		if len(ts) != 0 {
			t.Fatalf("source %q: unexpected tokens %q", src, tokenTexts(ts))
		}
	}
}

func TestPriority(t *testing.T) {
	tk := tokenizer(t,
		Pattern(`\d+`),
		Pattern(`[a-zA-Z]`),
		Literal("<"),
		Literal("x"),
		Literal("<="),
		Literal("("),
	)

	order := make([]string, 0)
	for _, m := range tk.Matchers() {
		order = append(order, m.String())
	}
	test.ExpectString(t, `"x" "<=" "<" "(" /\d+/ /[a-zA-Z]/`, strings.Join(order, " "))

	ts, e := tk.Tokenize("10<=x<(y")
	test.ExpectSuccess(t, e)
	test.ExpectString(t, "10 <= x < ( y", tokenTexts(ts))
	test.ExpectString(t, "x", ts[2].TypeName())
	test.ExpectBool(t, true, tk.Matcher(ts[2].Type()).Literal)
	test.ExpectBool(t, false, tk.Matcher(ts[5].Type()).Literal)
}

func TestDuplicates(t *testing.T) {
	tk := New("")
	id1, e := tk.Add(Literal("+"))
	test.ExpectSuccess(t, e)
	id2, e := tk.Add(Literal("+"))
	test.ExpectSuccess(t, e)
	test.ExpectInt(t, id1, id2)
	id3, e := tk.Add(Pattern(`\+`))
	test.ExpectSuccess(t, e)
	test.Assert(t, id3 != id1, "literal and pattern must be different matchers")
	test.ExpectInt(t, 2, len(tk.Matchers()))
}

func TestInnerGroups(t *testing.T) {
	tk := tokenizer(t, Pattern(`(a)(b)?c`), Pattern(`\d+`), Literal("*"))
	ts, e := tk.Tokenize("ac * 12 abc")
	test.ExpectSuccess(t, e)
	test.ExpectString(t, "ac * 12 abc", tokenTexts(ts))
	test.ExpectString(t, `\d+`, ts[2].TypeName())
}

func TestWrongChar(t *testing.T) {
	tk := tokenizer(t, Pattern(`\d+`), Literal("+"))
	ts, e := tk.Tokenize("1 +\n 2 & 3")
	test.Assert(t, ts == nil, "expecting no tokens, got %q", tokenTexts(ts))
	test.ExpectErrorCode(t, WrongCharError, e)
	ee := e.(*notation.Error)
	test.ExpectInt(t, 2, ee.Line)
	test.ExpectInt(t, 4, ee.Col)
	test.ExpectBool(t, true, notation.IsInputError(e))
	test.Assert(t, strings.HasSuffix(ee.Message, "in sample at line 2 col 4"), "unexpected message %q", ee.Message)
}

func TestPatternErrors(t *testing.T) {
	tk := New("")
	_, e := tk.Add(Pattern(`(`))
	test.ExpectErrorCode(t, WrongPatternError, e)
	_, e = tk.Add(Pattern(`\d*`))
	test.ExpectErrorCode(t, EmptyMatchError, e)
	test.ExpectBool(t, false, notation.IsInputError(e))
	test.ExpectInt(t, 0, len(tk.Matchers()))
}
