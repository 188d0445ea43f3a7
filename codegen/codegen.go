// Package codegen lowers an ast.Program into LLVM IR. Everything is a
// double: function parameters, return values and all intermediates.
package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/ddadaal/kaleidoscope-go/ast"
)

// Context accumulates declarations and definitions into one LLVM
// module across many CompilePrototype/CompileFunction calls, which is
// what lets a REPL feed it one top level at a time.
type Context struct {
	Module *ir.Module
	funcs  map[string]*ir.Func
}

func NewContext(name string) *Context {
	m := ir.NewModule()
	m.SourceFilename = name
	return &Context{
		Module: m,
		funcs:  map[string]*ir.Func{},
	}
}

// CompilePrototype declares a function taking len(Args) doubles and
// returning a double. Re-declaring a known name returns the existing
// function, so an extern followed by a matching def composes; the
// arities must agree.
func (c *Context) CompilePrototype(proto *ast.Prototype) (*ir.Func, error) {
	if fn, ok := c.funcs[proto.Name]; ok {
		if len(fn.Params) != len(proto.Args) {
			return nil, fmt.Errorf(
				"function %s redeclared with %d parameters, previously %d",
				proto.Name, len(proto.Args), len(fn.Params))
		}
		return fn, nil
	}

	params := make([]*ir.Param, 0, len(proto.Args))
	for _, arg := range proto.Args {
		params = append(params, ir.NewParam(arg, types.Double))
	}
	fn := c.Module.NewFunc(proto.Name, types.Double, params...)
	c.funcs[proto.Name] = fn
	return fn, nil
}

// CompileFunction compiles a definition: its prototype (or the earlier
// extern/def declaration of the same name) plus an entry block holding
// the lowered body.
func (c *Context) CompileFunction(function *ast.Function) (*ir.Func, error) {
	fn, err := c.CompilePrototype(&function.Prototype)
	if err != nil {
		return nil, err
	}
	if len(fn.Blocks) != 0 {
		return nil, fmt.Errorf("function %s is already defined", function.Prototype.Name)
	}

	// The definition's own parameter names win over whatever an
	// earlier declaration used.
	named := map[string]value.Value{}
	for i, arg := range function.Prototype.Args {
		fn.Params[i].SetName(arg)
		named[arg] = fn.Params[i]
	}

	entry := fn.NewBlock("entry")
	ret, err := c.compileExpr(entry, named, function.Body)
	if err != nil {
		// Leave no half-built body behind.
		fn.Blocks = nil
		return nil, err
	}
	entry.NewRet(ret)
	return fn, nil
}

// CompileProgram feeds every top-level declaration of prog through the
// two operations above, in order.
func (c *Context) CompileProgram(prog ast.Program) error {
	for _, top := range prog {
		switch node := top.(type) {
		case ast.ExternDecl:
			if _, err := c.CompilePrototype(&node.Proto); err != nil {
				return err
			}
		case ast.FunctionDef:
			if _, err := c.CompileFunction(&node.Func); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Context) compileExpr(b *ir.Block, named map[string]value.Value, expr ast.Expression) (value.Value, error) {
	switch e := expr.(type) {
	case ast.Number:
		return constant.NewFloat(types.Double, float64(e)), nil

	case ast.Variable:
		v, ok := named[string(e)]
		if !ok {
			return nil, fmt.Errorf("unknown variable name: %s", e)
		}
		return v, nil

	case ast.Binary:
		lhs, err := c.compileExpr(b, named, e.Left)
		if err != nil {
			return nil, err
		}
		rhs, err := c.compileExpr(b, named, e.Right)
		if err != nil {
			return nil, err
		}
		switch e.Op {
		case '+':
			return b.NewFAdd(lhs, rhs), nil
		case '-':
			return b.NewFSub(lhs, rhs), nil
		case '*':
			return b.NewFMul(lhs, rhs), nil
		case '/':
			return b.NewFDiv(lhs, rhs), nil
		case '<':
			cmp := b.NewFCmp(enum.FPredULT, lhs, rhs)
			return b.NewUIToFP(cmp, types.Double), nil
		case '>':
			cmp := b.NewFCmp(enum.FPredULT, rhs, lhs)
			return b.NewUIToFP(cmp, types.Double), nil
		}
		return nil, fmt.Errorf("unknown binary operator %q", e.Op)

	case ast.Call:
		fn, ok := c.funcs[e.Callee]
		if !ok {
			return nil, fmt.Errorf("unknown function: %s", e.Callee)
		}
		if len(e.Args) != len(fn.Params) {
			return nil, fmt.Errorf(
				"function %s expects %d arguments but the call has %d",
				e.Callee, len(fn.Params), len(e.Args))
		}
		args := make([]value.Value, 0, len(e.Args))
		for _, arg := range e.Args {
			v, err := c.compileExpr(b, named, arg)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		return b.NewCall(fn, args...), nil
	}

	return nil, fmt.Errorf("unhandled expression %T", expr)
}
