package lexer

import "fmt"

// MalformedNumberError reports a numeric literal that did not parse as
// a float. Text is the entire run of digits and dots that was scanned.
type MalformedNumberError struct {
	Text string
}

func (e MalformedNumberError) Error() string {
	return fmt.Sprintf("malformed number %q", e.Text)
}

// UnrecognizedCharError reports a character that cannot start any
// token.
type UnrecognizedCharError struct {
	Char rune
}

func (e UnrecognizedCharError) Error() string {
	return fmt.Sprintf("unrecognized character %q", e.Char)
}
