package lexer

import (
	"io"
	"strconv"
	"unicode"
)

// Lexer produces tokens on demand from a character source. Each call to
// Next yields exactly one token or one lexical error; once the source
// is exhausted it yields EOF tokens forever.
type Lexer struct {
	cursor *Cursor
}

func NewLexer(reader io.Reader) *Lexer {
	return &Lexer{cursor: NewCursor(reader)}
}

var keywords = map[string]TokenKind{
	"def":    DEF,
	"extern": EXTERN,
}

var punctuation = map[rune]TokenKind{
	'(': LPAREN,
	')': RPAREN,
	';': DELIMITER,
	',': COMMA,
}

// isOperator reports whether r is lexed as a binary operator. The set
// is wider than the parser's precedence table on purpose: the parser
// owns the table and rejects operators it does not know.
func isOperator(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '<', '>', '%':
		return true
	}
	return false
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Next returns the next token. Lexical errors are per-token and never
// poison the lexer: the offending characters are already consumed, so
// a caller may ignore the error and call Next again.
func (l *Lexer) Next() (Token, error) {
	c, ok := l.cursor.Curr()

	// Skip whitespace.
	for ok && unicode.IsSpace(c) {
		c, ok = l.cursor.Advance()
	}
	if !ok {
		return Token{Kind: EOF}, nil
	}

	// Eat the character that starts the token.
	l.cursor.Advance()

	// A comment runs to the end of the line and produces nothing. The
	// newline itself is left for the whitespace skip above.
	if c == '#' {
		for {
			r, ok := l.cursor.Curr()
			if !ok || r == '\n' {
				break
			}
			l.cursor.Advance()
		}
		return l.Next()
	}

	if kind, ok := punctuation[c]; ok {
		return Token{Kind: kind}, nil
	}

	if isOperator(c) {
		return Token{Kind: BINOP, Op: c}, nil
	}

	// A letter starts an identifier or a keyword.
	if unicode.IsLetter(c) {
		text := string(c)
		for {
			r, ok := l.cursor.Curr()
			if !ok || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
				break
			}
			text += string(r)
			l.cursor.Advance()
		}
		if kind, ok := keywords[text]; ok {
			return Token{Kind: kind}, nil
		}
		return Token{Kind: IDENT, Text: text}, nil
	}

	// A digit or a dot starts a number. The whole run of digits and
	// dots is collected first; a run with more than one dot fails the
	// float parse and is reported with its full text.
	if isDigit(c) || c == '.' {
		text := string(c)
		for {
			r, ok := l.cursor.Curr()
			if !ok || !(isDigit(r) || r == '.') {
				break
			}
			text += string(r)
			l.cursor.Advance()
		}
		num, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, MalformedNumberError{Text: text}
		}
		return Token{Kind: NUMBER, Num: num}, nil
	}

	return Token{}, UnrecognizedCharError{Char: c}
}
