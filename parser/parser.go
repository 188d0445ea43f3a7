// Package parser builds an ast.Program from a token stream by
// recursive descent, using precedence climbing for binary expressions.
package parser

import (
	"fmt"

	"github.com/ddadaal/kaleidoscope-go/ast"
	"github.com/ddadaal/kaleidoscope-go/lexer"
)

// TokenStream is the parser's view of a lexer: one token per call, and
// an EOF token forever once the input is exhausted. At most one token
// of lookahead is buffered beyond the current one.
type TokenStream interface {
	Next() (lexer.Token, error)
}

var _ TokenStream = (*lexer.Lexer)(nil)

// Higher precedence binds tighter. An operator missing from this table
// is a parse error even though the lexer accepted it.
var precedences = map[rune]int{
	'<': 10,
	'>': 10,
	'+': 20,
	'-': 20,
	'*': 40,
	'/': 40,
}

type Parser struct {
	stream TokenStream
	curr   lexer.Token
	next   lexer.Token
	primed bool

	anonCount int
}

func NewParser(stream TokenStream) *Parser {
	return &Parser{stream: stream}
}

// Parse consumes the whole stream and returns the program, or the
// first error encountered. There is no recovery: a caller that wants
// to resynchronize must skip forward itself (for instance to the next
// ';') and call Parse again on the rest.
//
// Internally the grammar functions panic typed errors; this boundary
// turns them back into return values.
func (p *Parser) Parse() (prog ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if !ok {
				panic(r)
			}
			prog, err = nil, rerr
		}
	}()

	p.prime()

	for p.curr.Kind != lexer.EOF {
		switch p.curr.Kind {
		case lexer.DEF:
			prog = append(prog, ast.FunctionDef{Func: p.parseDefinition()})
		case lexer.EXTERN:
			prog = append(prog, ast.ExternDecl{Proto: p.parseExtern()})
		case lexer.DELIMITER:
			p.advance()
		default:
			prog = append(prog, ast.FunctionDef{Func: p.parseTopLevelExpr()})
		}
	}
	return prog, nil
}

// prime fills the two-token window on the first Parse call.
func (p *Parser) prime() {
	if p.primed {
		return
	}
	p.curr = p.pull()
	p.next = p.pull()
	p.primed = true
}

func (p *Parser) advance() {
	p.curr = p.next
	p.next = p.pull()
}

func (p *Parser) pull() lexer.Token {
	tok, err := p.stream.Next()
	if err != nil {
		panic(err)
	}
	return tok
}

// definition := "def" prototype expression
func (p *Parser) parseDefinition() ast.Function {
	p.advance() // eat def
	proto := p.parsePrototype()
	body := p.parseExpression()
	return ast.Function{Prototype: proto, Body: body}
}

// extern := "extern" prototype
func (p *Parser) parseExtern() ast.Prototype {
	p.advance() // eat extern
	return p.parsePrototype()
}

// A bare expression at the top level becomes the body of a uniquely
// named nullary function, so a driver can compile and run it directly.
func (p *Parser) parseTopLevelExpr() ast.Function {
	p.anonCount++
	return ast.Function{
		Prototype: ast.Prototype{Name: fmt.Sprintf("__anon_expr_%d", p.anonCount)},
		Body:      p.parseExpression(),
	}
}

// prototype := ident "(" (ident ("," ident)*)? ")"
func (p *Parser) parsePrototype() ast.Prototype {
	name := p.expectIdent("function name in prototype")
	p.expect(lexer.LPAREN, "'(' in prototype")

	var args []string
	if p.curr.Kind == lexer.IDENT {
		for {
			args = append(args, p.expectIdent("parameter name"))
			if p.curr.Kind != lexer.COMMA {
				break
			}
			p.advance() // eat ,
		}
	}
	p.expect(lexer.RPAREN, "')' to close the parameter list")

	return ast.Prototype{Name: name, Args: args}
}

// expression := primary (binop primary)*
func (p *Parser) parseExpression() ast.Expression {
	lhs := p.parsePrimary()
	return p.parseBinOpRHS(0, lhs)
}

// parseBinOpRHS folds operator/primary pairs into lhs while their
// precedence is at least minPrec. When the operator after the next
// primary binds strictly tighter, that continuation is absorbed into
// the right-hand side first, giving left associativity among equals
// and right-first binding of tighter tiers.
func (p *Parser) parseBinOpRHS(minPrec int, lhs ast.Expression) ast.Expression {
	for {
		if p.curr.Kind != lexer.BINOP {
			return lhs
		}
		op := p.curr.Op
		prec := p.precedenceOf(op)
		if prec < minPrec {
			return lhs
		}
		p.advance() // eat operator

		rhs := p.parsePrimary()

		if p.curr.Kind == lexer.BINOP && p.precedenceOf(p.curr.Op) > prec {
			rhs = p.parseBinOpRHS(prec+1, rhs)
		}

		lhs = ast.Binary{Op: op, Left: lhs, Right: rhs}
	}
}

func (p *Parser) precedenceOf(op rune) int {
	prec, ok := precedences[op]
	if !ok {
		panic(UnknownOperatorError{Op: op})
	}
	return prec
}

// primary := ident ("(" args ")")? | number | "(" expression ")"
func (p *Parser) parsePrimary() ast.Expression {
	switch p.curr.Kind {
	case lexer.IDENT:
		return p.parseIdentExpr()
	case lexer.NUMBER:
		return p.parseNumberExpr()
	case lexer.LPAREN:
		return p.parseParenExpr()
	}
	p.fail("a primary expression")
	return nil
}

func (p *Parser) parseNumberExpr() ast.Expression {
	num := p.curr.Num
	p.advance()
	return ast.Number(num)
}

func (p *Parser) parseParenExpr() ast.Expression {
	p.advance() // eat (
	expr := p.parseExpression()
	p.expect(lexer.RPAREN, "')' to close the expression")
	return expr
}

// An identifier immediately followed by '(' is a call; otherwise it is
// a variable reference.
func (p *Parser) parseIdentExpr() ast.Expression {
	name := p.curr.Text
	p.advance()

	if p.curr.Kind != lexer.LPAREN {
		return ast.Variable(name)
	}
	p.advance() // eat (

	var args []ast.Expression
	if p.curr.Kind != lexer.RPAREN {
		for {
			args = append(args, p.parseExpression())
			if p.curr.Kind != lexer.COMMA {
				break
			}
			p.advance() // eat ,
		}
	}
	p.expect(lexer.RPAREN, "')' to close the argument list")

	return ast.Call{Callee: name, Args: args}
}

// expect consumes the current token if it has the wanted kind and
// fails the parse otherwise.
func (p *Parser) expect(kind lexer.TokenKind, expected string) lexer.Token {
	tok := p.curr
	if tok.Kind != kind {
		p.fail(expected)
	}
	p.advance()
	return tok
}

func (p *Parser) expectIdent(expected string) string {
	tok := p.curr
	if tok.Kind != lexer.IDENT {
		p.fail(expected)
	}
	p.advance()
	return tok.Text
}

func (p *Parser) fail(expected string) {
	if p.curr.Kind == lexer.EOF {
		panic(UnexpectedEOFError{Expected: expected})
	}
	panic(UnexpectedTokenError{Found: p.curr, Expected: expected})
}
