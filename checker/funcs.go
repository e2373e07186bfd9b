package checker

import (
	"github.com/thiremani/typelang/ast"
	"github.com/thiremani/typelang/types"
)

func (c *Checker) checkLambda(e *ast.LambdaExp, env *TypeEnv) types.Type {
	names := make([]string, len(e.Params))
	params := make([]types.Type, len(e.Params))
	var result types.Type = types.UnitT
	for i, p := range e.Params {
		names[i] = p.Name.Name
		params[i] = c.annotation(p.Name, p.Type)
		result = absorb(result, params[i])
	}

	body := c.Check(e.Body, env.ExtendAll(names, params))
	if result = absorb(result, body); types.IsError(result) {
		return result
	}
	return types.Func{Params: params, Return: body}
}

// checkCall matches arguments to parameters by position. Every argument
// is checked even when the callee is already known to be wrong.
func (c *Checker) checkCall(e *ast.CallExp, env *TypeEnv) types.Type {
	callee := c.Check(e.Operator, env)
	args := c.checkAll(e.Arguments, env)

	if types.IsError(callee) {
		return callee
	}
	fn, ok := callee.(types.Func)
	if !ok {
		return c.mismatch(e.Operator, "cannot call %s: not a function", callee)
	}
	if len(args) != len(fn.Params) {
		return c.mismatch(e, "call of %s: expected %d argument(s), got %d", fn, len(fn.Params), len(args))
	}

	var result types.Type = fn.Return
	for i, arg := range args {
		if types.IsError(arg) {
			result = absorb(result, arg)
			continue
		}
		if !types.Compatible(fn.Params[i], arg) {
			result = absorb(result, c.mismatch(e.Arguments[i], "argument %d: expected %s, got %s", i+1, fn.Params[i], arg))
		}
	}
	return result
}
