package checker

import (
	"github.com/thiremani/typelang/ast"
	"github.com/thiremani/typelang/types"
)

func (c *Checker) checkRef(e *ast.RefExp, env *TypeEnv) types.Type {
	t := c.Check(e.Value, env)
	if types.IsError(t) {
		return t
	}
	return types.Ref{Elem: t}
}

func (c *Checker) checkRefArg(op string, loc ast.Expression, env *TypeEnv) types.Type {
	t := c.Check(loc, env)
	return c.require(loc, t, types.IsRef, "%s: expected a reference, got %s", op, t)
}

func (c *Checker) checkDeref(e *ast.DerefExp, env *TypeEnv) types.Type {
	t := c.checkRefArg("deref", e.Loc, env)
	if types.IsError(t) {
		return t
	}
	return t.(types.Ref).Elem
}

// checkAssign needs the stored value to fit the cell type.
func (c *Checker) checkAssign(e *ast.AssignExp, env *TypeEnv) types.Type {
	loc := c.checkRefArg("set!", e.Loc, env)
	val := c.Check(e.Value, env)
	if err, ok := types.AnyError(loc, val); ok {
		return err
	}
	cell := loc.(types.Ref).Elem
	if !types.Compatible(cell, val) {
		return c.mismatch(e.Value, "set!: cell holds %s, got %s", cell, val)
	}
	return types.UnitT
}

func (c *Checker) checkFree(e *ast.FreeExp, env *TypeEnv) types.Type {
	t := c.checkRefArg("free", e.Loc, env)
	if types.IsError(t) {
		return t
	}
	return types.UnitT
}
