package parser

import (
	"fmt"

	"github.com/ddadaal/kaleidoscope-go/lexer"
)

// UnexpectedTokenError reports a token that does not fit the grammar at
// its position. Expected is a human-readable description of what would
// have fit.
type UnexpectedTokenError struct {
	Found    lexer.Token
	Expected string
}

func (e UnexpectedTokenError) Error() string {
	return fmt.Sprintf("got %s, expected %s", e.Found, e.Expected)
}

// UnexpectedEOFError reports input that ended in the middle of a
// construct.
type UnexpectedEOFError struct {
	Expected string
}

func (e UnexpectedEOFError) Error() string {
	return fmt.Sprintf("unexpected end of input, expected %s", e.Expected)
}

// UnknownOperatorError reports a lexed operator character that is not
// in the precedence table.
type UnknownOperatorError struct {
	Op rune
}

func (e UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown operator %q", e.Op)
}
