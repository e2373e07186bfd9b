package checker

import (
	"errors"
	"fmt"

	"github.com/thiremani/typelang/ast"
	"github.com/thiremani/typelang/token"
	"github.com/thiremani/typelang/types"
)

var (
	// ErrTypeMismatch classifies operands whose type breaks a typing rule.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrMalformed classifies parser placeholders and broken annotations.
	ErrMalformed = errors.New("malformed expression")
	// ErrUntypable classifies forms the checker refuses to type, such as
	// eval under EvalReject.
	ErrUntypable = errors.New("cannot be typed statically")
)

// TypeEnv is the environment the checker threads through expressions.
type TypeEnv = Env[types.Type]

// Checker derives a type for each expression form. It is syntax directed:
// every rule looks only at the node, its children and the environment.
// Errors are values: an ill-typed expression has type types.Error and the
// originating problem is recorded once in Errors. Enclosing expressions
// absorb the Error silently, and checking always visits every child.
type Checker struct {
	Options Options
	Errors  []*token.CompileError
}

func New(opts Options) *Checker {
	def := DefaultOptions()
	if opts.ReadType == nil {
		opts.ReadType = def.ReadType
	}
	if opts.EvalType == nil {
		opts.EvalType = def.EvalType
	}
	return &Checker{
		Options: opts,
		Errors:  []*token.CompileError{},
	}
}

// Err joins the recorded diagnostics, or returns nil if there are none.
func (c *Checker) Err() error {
	if len(c.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(c.Errors))
	for i, e := range c.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// Reset drops recorded diagnostics.
func (c *Checker) Reset() {
	c.Errors = []*token.CompileError{}
}

func (c *Checker) report(tok token.Token, err error, msg string) types.Type {
	c.Errors = append(c.Errors, &token.CompileError{Token: tok, Msg: msg, Err: err})
	return types.Error{Msg: msg}
}

func (c *Checker) mismatch(n ast.Node, format string, args ...any) types.Type {
	return c.report(n.Tok(), ErrTypeMismatch, fmt.Sprintf(format, args...))
}

// require returns t if pred holds. An Error t is passed through without a
// new diagnostic; anything else is reported at n.
func (c *Checker) require(n ast.Node, t types.Type, pred func(types.Type) bool, format string, args ...any) types.Type {
	if types.IsError(t) || pred(t) {
		return t
	}
	return c.mismatch(n, format, args...)
}

// absorb keeps the first Error seen: cur if it is one, else next if it is
// one, else cur.
func absorb(cur, next types.Type) types.Type {
	if types.IsError(cur) || !types.IsError(next) {
		return cur
	}
	return next
}

// annotation validates a written type. Broken annotations contain an
// Error left by the parser; nodes built elsewhere may carry none at all.
func (c *Checker) annotation(n ast.Node, t types.Type) types.Type {
	if t == nil {
		return c.report(n.Tok(), ErrMalformed, fmt.Sprintf("%s: missing type annotation", n))
	}
	if types.Contains(t, types.ErrorKind) {
		return c.report(n.Tok(), ErrMalformed, fmt.Sprintf("invalid type annotation %s", t))
	}
	return t
}

func (c *Checker) checkAll(exps []ast.Expression, env *TypeEnv) []types.Type {
	ts := make([]types.Type, len(exps))
	for i, e := range exps {
		ts[i] = c.Check(e, env)
	}
	return ts
}

// Check derives the type of e under env. An expression type not defined
// in package ast is a contract violation and panics.
func (c *Checker) Check(e ast.Expression, env *TypeEnv) types.Type {
	switch e := e.(type) {
	case *ast.NumConst:
		return types.Number
	case *ast.StrConst:
		return types.String
	case *ast.BoolConst:
		return types.Boolean
	case *ast.UnitExp:
		return types.UnitT
	case *ast.ErrorExp:
		return c.report(e.Token, ErrMalformed, e.Msg)
	case *ast.VarExp:
		return c.checkVar(e, env)
	case *ast.AddExp:
		return c.checkNumeric("+", e.Operands, env)
	case *ast.SubExp:
		return c.checkNumeric("-", []ast.Expression{e.Left, e.Right}, env)
	case *ast.MultExp:
		return c.checkNumeric("*", []ast.Expression{e.Left, e.Right}, env)
	case *ast.DivExp:
		return c.checkNumeric("/", []ast.Expression{e.Left, e.Right}, env)
	case *ast.LessExp:
		return c.checkComparison("<", e.Left, e.Right, env)
	case *ast.GreaterExp:
		return c.checkComparison(">", e.Left, e.Right, env)
	case *ast.EqualExp:
		return c.checkComparison("=", e.Left, e.Right, env)
	case *ast.IfExp:
		return c.checkIf(e, env)
	case *ast.LetExp:
		return c.checkLet(e, env)
	case *ast.LetrecExp:
		return c.checkLetrec(e, env)
	case *ast.LambdaExp:
		return c.checkLambda(e, env)
	case *ast.CallExp:
		return c.checkCall(e, env)
	case *ast.ConsExp:
		return c.checkCons(e, env)
	case *ast.CarExp:
		return c.checkCar(e, env)
	case *ast.CdrExp:
		return c.checkCdr(e, env)
	case *ast.ListExp:
		return c.checkList(e, env)
	case *ast.NullExp:
		return c.checkNull(e, env)
	case *ast.RefExp:
		return c.checkRef(e, env)
	case *ast.DerefExp:
		return c.checkDeref(e, env)
	case *ast.AssignExp:
		return c.checkAssign(e, env)
	case *ast.FreeExp:
		return c.checkFree(e, env)
	case *ast.ReadExp:
		return c.checkRead(e, env)
	case *ast.EvalExp:
		return c.checkEval(e, env)
	}
	panic(fmt.Sprintf("checker: unhandled expression %T", e))
}

func (c *Checker) checkVar(e *ast.VarExp, env *TypeEnv) types.Type {
	t, err := env.Lookup(e.Name)
	if err != nil {
		return c.report(e.Token, err, err.Error())
	}
	return t
}

// CheckProgram checks the declarations in order, each under the bindings
// of those before it, and returns the type of the result expression.
func (c *Checker) CheckProgram(p *ast.Program) types.Type {
	t, _ := c.CheckProgramIn(p, nil)
	return t
}

// CheckProgramIn is CheckProgram starting from env. It also returns the
// environment holding every declaration.
func (c *Checker) CheckProgramIn(p *ast.Program, env *TypeEnv) (types.Type, *TypeEnv) {
	for _, d := range p.Decls {
		_, env = c.CheckDecl(d, env)
	}
	return c.Check(p.Exp, env), env
}

// CheckProgram runs a fresh checker over p. The error joins every
// diagnostic; it is nil exactly when the program is well typed.
func CheckProgram(p *ast.Program, opts Options) (types.Type, error) {
	c := New(opts)
	t := c.CheckProgram(p)
	if err := c.Err(); err != nil {
		return t, err
	}
	if types.IsError(t) {
		return t, fmt.Errorf("%w: %s", ErrTypeMismatch, t)
	}
	return t, nil
}
