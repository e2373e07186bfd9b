package checker

import (
	"github.com/thiremani/typelang/ast"
	"github.com/thiremani/typelang/types"
)

func (c *Checker) checkCons(e *ast.ConsExp, env *TypeEnv) types.Type {
	l := c.Check(e.Left, env)
	r := c.Check(e.Right, env)
	if err, ok := types.AnyError(l, r); ok {
		return err
	}
	return types.Pair{Left: l, Right: r}
}

func (c *Checker) checkPairArg(op string, arg ast.Expression, env *TypeEnv) (types.Pair, types.Type) {
	t := c.Check(arg, env)
	t = c.require(arg, t, types.IsPair, "%s: expected a pair, got %s", op, t)
	if types.IsError(t) {
		return types.Pair{}, t
	}
	return t.(types.Pair), nil
}

func (c *Checker) checkCar(e *ast.CarExp, env *TypeEnv) types.Type {
	p, err := c.checkPairArg("car", e.Arg, env)
	if err != nil {
		return err
	}
	return p.Left
}

func (c *Checker) checkCdr(e *ast.CdrExp, env *TypeEnv) types.Type {
	p, err := c.checkPairArg("cdr", e.Arg, env)
	if err != nil {
		return err
	}
	return p.Right
}

// checkList needs every element to share one type. Without a written
// element type an empty list is a list of Unresolved.
func (c *Checker) checkList(e *ast.ListExp, env *TypeEnv) types.Type {
	var elem types.Type = types.Unknown
	if e.ElemType != nil {
		elem = c.annotation(e, e.ElemType)
	}
	ts := c.checkAll(e.Elems, env)

	result := elem
	for i, t := range ts {
		if types.IsError(t) || types.IsError(elem) {
			result = absorb(result, t)
			continue
		}
		if !types.Compatible(elem, t) {
			result = absorb(result, c.mismatch(e.Elems[i], "list element %d: expected %s, got %s", i+1, elem, t))
			continue
		}
		elem = types.Join(elem, t)
	}
	if types.IsError(result) {
		return result
	}
	return types.List{Elem: elem}
}

func (c *Checker) checkNull(e *ast.NullExp, env *TypeEnv) types.Type {
	t := c.Check(e.Arg, env)
	t = c.require(e.Arg, t, types.IsList, "null?: expected a list, got %s", t)
	if types.IsError(t) {
		return t
	}
	return types.Boolean
}
