package checker

import (
	"github.com/thiremani/typelang/ast"
	"github.com/thiremani/typelang/types"
)

// checkRead returns the configured input type. The optional operand names
// the source and must be a str.
func (c *Checker) checkRead(e *ast.ReadExp, env *TypeEnv) types.Type {
	if e.File != nil {
		t := c.Check(e.File, env)
		if t = c.require(e.File, t, types.IsStr, "read: expected a str source, got %s", t); types.IsError(t) {
			return t
		}
	}
	return c.Options.ReadType
}

// checkEval types (eval code). The code is always checked. Under
// EvalReject the form itself is an error; under EvalDynamic the code must
// be a str and the result is trusted to be EvalType.
func (c *Checker) checkEval(e *ast.EvalExp, env *TypeEnv) types.Type {
	t := c.Check(e.Code, env)
	if types.IsError(t) {
		return t
	}
	switch c.Options.Eval {
	case EvalDynamic:
		if t = c.require(e.Code, t, types.IsStr, "eval: expected a str program, got %s", t); types.IsError(t) {
			return t
		}
		return c.Options.EvalType
	default:
		return c.report(e.Token, ErrUntypable, "eval "+ErrUntypable.Error())
	}
}
