package checker

import (
	"github.com/thiremani/typelang/ast"
	"github.com/thiremani/typelang/types"
)

// checkNumeric types arithmetic: every operand must be num. All operands
// are checked even after a failure so later errors are still reported.
func (c *Checker) checkNumeric(op string, operands []ast.Expression, env *TypeEnv) types.Type {
	var result types.Type = types.Number
	for i, operand := range operands {
		t := c.Check(operand, env)
		t = c.require(operand, t, types.IsNum, "operand %d of %s: expected num, got %s", i+1, op, t)
		result = absorb(result, t)
	}
	return result
}

// checkComparison is numeric-only for <, > and = alike.
func (c *Checker) checkComparison(op string, left, right ast.Expression, env *TypeEnv) types.Type {
	t := c.checkNumeric(op, []ast.Expression{left, right}, env)
	if types.IsError(t) {
		return t
	}
	return types.Boolean
}
