package lexer

import "fmt"

type TokenKind int

const (
	EOF TokenKind = iota

	DEF
	EXTERN

	DELIMITER // ;
	LPAREN
	RPAREN
	COMMA

	BINOP
	IDENT
	NUMBER
)

func (t TokenKind) String() string {
	data := map[TokenKind]string{
		EOF:       "EOF",
		DEF:       "DEF",
		EXTERN:    "EXTERN",
		DELIMITER: "DELIMITER",
		LPAREN:    "LPAREN",
		RPAREN:    "RPAREN",
		COMMA:     "COMMA",
		BINOP:     "BINOP",
		IDENT:     "IDENT",
		NUMBER:    "NUMBER",
	}
	return data[t]
}

// Token is one lexical unit. Text is set for IDENT, Num for NUMBER and
// Op for BINOP; the other kinds carry no payload.
type Token struct {
	Kind TokenKind
	Text string
	Num  float64
	Op   rune
}

func (t Token) String() string {
	switch t.Kind {
	case IDENT:
		return fmt.Sprintf("identifier %q", t.Text)
	case NUMBER:
		return fmt.Sprintf("number %v", t.Num)
	case BINOP:
		return fmt.Sprintf("operator %q", t.Op)
	default:
		return t.Kind.String()
	}
}
