package codegen

import (
	"strings"
	"testing"

	"github.com/ddadaal/kaleidoscope-go/ast"
	"github.com/ddadaal/kaleidoscope-go/lexer"
	"github.com/ddadaal/kaleidoscope-go/parser"
)

func compile(t *testing.T, src string) *Context {
	t.Helper()
	prog, err := parser.NewParser(lexer.NewLexer(strings.NewReader(src))).Parse()
	if err != nil {
		t.Fatalf("parsing %q: %v", src, err)
	}
	cc := NewContext("test")
	if err := cc.CompileProgram(prog); err != nil {
		t.Fatalf("compiling %q: %v", src, err)
	}
	return cc
}

func TestPrototypeIsIdempotent(t *testing.T) {
	cc := NewContext("test")
	proto := &ast.Prototype{Name: "sin", Args: []string{"a"}}

	first, err := cc.CompilePrototype(proto)
	if err != nil {
		t.Fatal(err)
	}
	second, err := cc.CompilePrototype(proto)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatal("re-declaring a prototype made a second function")
	}
}

func TestPrototypeArityMismatch(t *testing.T) {
	cc := NewContext("test")
	if _, err := cc.CompilePrototype(&ast.Prototype{Name: "f", Args: []string{"a"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := cc.CompilePrototype(&ast.Prototype{Name: "f", Args: []string{"a", "b"}}); err == nil {
		t.Fatal("expected an arity mismatch error")
	}
}

func TestExternThenDefinitionComposes(t *testing.T) {
	cc := compile(t, "extern f(a) def f(x) x+1")

	ll := cc.Module.String()
	if strings.Count(ll, "define double @f") != 1 {
		t.Fatalf("want exactly one definition of f:\n%s", ll)
	}
	// The definition's parameter name wins.
	if !strings.Contains(ll, "%x") {
		t.Fatalf("parameter not renamed to x:\n%s", ll)
	}
}

func TestArithmetic(t *testing.T) {
	cc := compile(t, "def f(a, b) a+b*2-a/b")

	ll := cc.Module.String()
	for _, inst := range []string{"fadd", "fmul", "fsub", "fdiv"} {
		if !strings.Contains(ll, inst) {
			t.Fatalf("missing %s in:\n%s", inst, ll)
		}
	}
}

func TestComparisonYieldsDouble(t *testing.T) {
	cc := compile(t, "def less(a, b) a < b")

	ll := cc.Module.String()
	if !strings.Contains(ll, "fcmp ult") {
		t.Fatalf("missing fcmp in:\n%s", ll)
	}
	if !strings.Contains(ll, "uitofp") {
		t.Fatalf("comparison result not converted back to double:\n%s", ll)
	}
}

func TestCallArityChecked(t *testing.T) {
	prog := ast.Program{
		ast.ExternDecl{Proto: ast.Prototype{Name: "sin", Args: []string{"a"}}},
		ast.FunctionDef{Func: ast.Function{
			Prototype: ast.Prototype{Name: "f"},
			Body:      ast.Call{Callee: "sin", Args: []ast.Expression{ast.Number(1), ast.Number(2)}},
		}},
	}
	cc := NewContext("test")
	if err := cc.CompileProgram(prog); err == nil {
		t.Fatal("expected an arity error")
	}
}

func TestUnknownVariable(t *testing.T) {
	cc := NewContext("test")
	_, err := cc.CompileFunction(&ast.Function{
		Prototype: ast.Prototype{Name: "f"},
		Body:      ast.Variable("nope"),
	})
	if err == nil {
		t.Fatal("expected an unknown variable error")
	}
	// A failed body must not leave f half-defined.
	if _, err := cc.CompileFunction(&ast.Function{
		Prototype: ast.Prototype{Name: "f"},
		Body:      ast.Number(1),
	}); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
}

func TestRedefinitionRejected(t *testing.T) {
	cc := compile(t, "def f() 1")
	_, err := cc.CompileFunction(&ast.Function{
		Prototype: ast.Prototype{Name: "f"},
		Body:      ast.Number(2),
	})
	if err == nil {
		t.Fatal("expected a redefinition error")
	}
}
