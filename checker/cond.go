package checker

import (
	"github.com/thiremani/typelang/ast"
	"github.com/thiremani/typelang/types"
)

// checkIf needs a bool condition and branches of one type. Branch types
// are never unioned; an empty list on one side takes the other's element
// type. The branches are compared even when the condition is wrong.
func (c *Checker) checkIf(e *ast.IfExp, env *TypeEnv) types.Type {
	cond := c.Check(e.Cond, env)
	then := c.Check(e.Then, env)
	els := c.Check(e.Else, env)

	cond = c.require(e.Cond, cond, types.IsBool, "if condition: expected bool, got %s", cond)
	if err, ok := types.AnyError(then, els); ok {
		return absorb(cond, err)
	}
	if !types.Compatible(then, els) {
		return absorb(cond, c.mismatch(e, "if branches disagree: %s vs %s", then, els))
	}
	if types.IsError(cond) {
		return cond
	}
	return types.Join(then, els)
}
