package lexer

// Token is a lexeme fetched by Tokenizer.
type Token struct {
	tokenType int
	typeName  string
	text      string
	source    string
	line, col int
}

// Type returns the ID of the matcher that fetched the token.
func (t *Token) Type() int {
	return t.tokenType
}

// TypeName returns the matcher pattern.
func (t *Token) TypeName() string {
	return t.typeName
}

func (t *Token) Text() string {
	return t.text
}

// SourceName returns the name of the tokenizer (the language name).
func (t *Token) SourceName() string {
	return t.source
}

func (t *Token) Line() int {
	return t.line
}

func (t *Token) Col() int {
	return t.col
}

// NewToken creates a token not bound to any source text position.
func NewToken(tokenType int, typeName, text string) *Token {
	return &Token{tokenType: tokenType, typeName: typeName, text: text}
}
