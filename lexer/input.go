package lexer

import (
	"bufio"
	"io"
)

// Cursor is a two-rune window over a single-pass character source. It
// exposes the current rune, a one-rune lookahead, and an advance
// operation; advancing past the end keeps reporting exhaustion.
type Cursor struct {
	reader  *bufio.Reader
	curr    rune
	next    rune
	hasCurr bool
	hasNext bool
}

// NewCursor wraps reader and fills the window with its first two runes.
func NewCursor(reader io.Reader) *Cursor {
	c := &Cursor{reader: bufio.NewReader(reader)}
	c.curr, c.hasCurr = c.read()
	c.next, c.hasNext = c.read()
	return c
}

// read treats any read error, EOF included, as end of input. A
// single-pass source cannot be retried anyway.
func (c *Cursor) read() (rune, bool) {
	r, _, err := c.reader.ReadRune()
	if err != nil {
		return 0, false
	}
	return r, true
}

// Curr returns the current rune. The second result is false once the
// input is exhausted.
func (c *Cursor) Curr() (rune, bool) {
	return c.curr, c.hasCurr
}

// Peek returns the rune after the current one without consuming it.
func (c *Cursor) Peek() (rune, bool) {
	return c.next, c.hasNext
}

// Advance shifts the window forward one rune and returns the new
// current rune.
func (c *Cursor) Advance() (rune, bool) {
	c.curr, c.hasCurr = c.next, c.hasNext
	c.next, c.hasNext = c.read()
	return c.curr, c.hasCurr
}
