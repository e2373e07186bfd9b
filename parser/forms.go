package parser

import (
	"strconv"

	"github.com/thiremani/typelang/ast"
	"github.com/thiremani/typelang/token"
	"github.com/thiremani/typelang/types"
)

// formParseFn builds the node for a parenthesised form whose head is a
// keyword or operator. d.Elems[0] is the head.
type formParseFn func(d *datum) ast.Expression

func (p *Parser) registerForm(t token.TokenType, fn formParseFn) {
	p.formParseFns[t] = fn
}

func (p *Parser) registerForms() {
	p.formParseFns = make(map[token.TokenType]formParseFn)
	p.registerForm(token.ADD, p.parseAdd)
	p.registerForm(token.SUB, p.parseBinary)
	p.registerForm(token.MUL, p.parseBinary)
	p.registerForm(token.QUO, p.parseBinary)
	p.registerForm(token.LSS, p.parseBinary)
	p.registerForm(token.GTR, p.parseBinary)
	p.registerForm(token.EQL, p.parseBinary)
	p.registerForm(token.CONS, p.parseBinary)
	p.registerForm(token.ASSIGN, p.parseBinary)

	p.registerForm(token.CAR, p.parseUnary)
	p.registerForm(token.CDR, p.parseUnary)
	p.registerForm(token.NULL, p.parseUnary)
	p.registerForm(token.REF, p.parseUnary)
	p.registerForm(token.DEREF, p.parseUnary)
	p.registerForm(token.FREE, p.parseUnary)
	p.registerForm(token.EVAL, p.parseUnary)

	p.registerForm(token.IF, p.parseIf)
	p.registerForm(token.LET, p.parseLet)
	p.registerForm(token.LETREC, p.parseLetrec)
	p.registerForm(token.LAMBDA, p.parseLambda)
	p.registerForm(token.LIST, p.parseList)
	p.registerForm(token.READ, p.parseRead)
	p.registerForm(token.DEFINE, p.parseNestedDefine)
}

// bad records a syntax error and returns the placeholder node for it.
func (p *Parser) bad(tok token.Token, format string, args ...any) ast.Expression {
	p.errorf(tok, format, args...)
	return &ast.ErrorExp{Token: tok, Msg: p.errors[len(p.errors)-1].Msg}
}

func (p *Parser) parseExpression(d *datum) ast.Expression {
	if d.IsList {
		return p.parseForm(d)
	}

	tok := d.Tok
	switch tok.Type {
	case token.NUMBER:
		value, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return p.bad(tok, "could not parse %q as number", tok.Literal)
		}
		return &ast.NumConst{Token: tok, Value: value}
	case token.STRING:
		return &ast.StrConst{Token: tok, Value: tok.Literal}
	case token.BOOL:
		return &ast.BoolConst{Token: tok, Value: tok.Literal == "#t"}
	case token.UNIT:
		return &ast.UnitExp{Token: tok}
	case token.IDENT:
		return &ast.VarExp{Token: tok, Name: tok.Literal}
	case token.ILLEGAL:
		return p.bad(tok, "illegal token %q", tok.Literal)
	}
	return p.bad(tok, "unexpected %q outside of a form", tok.Literal)
}

func (p *Parser) parseExpressions(ds []*datum) []ast.Expression {
	exps := make([]ast.Expression, 0, len(ds))
	for _, d := range ds {
		exps = append(exps, p.parseExpression(d))
	}
	return exps
}

func (p *Parser) parseForm(d *datum) ast.Expression {
	if len(d.Elems) == 0 {
		return p.bad(d.Tok, "empty form ()")
	}
	head := d.Elems[0]
	if !head.IsList {
		if fn, ok := p.formParseFns[head.Tok.Type]; ok {
			return fn(d)
		}
		if head.Tok.Type == token.COLON || head.Tok.Type == token.ARROW {
			return p.bad(head.Tok, "unexpected %q at the start of a form", head.Tok.Literal)
		}
	}
	return &ast.CallExp{
		Token:     d.Tok,
		Operator:  p.parseExpression(head),
		Arguments: p.parseExpressions(d.Elems[1:]),
	}
}

// arity checks the number of operands after the head.
func (p *Parser) arity(d *datum, want int) bool {
	if got := len(d.Elems) - 1; got != want {
		p.errorf(d.head(), "%s expects %d operand(s), got %d", d.head().Literal, want, got)
		return false
	}
	return true
}

func (p *Parser) errorNode(d *datum) ast.Expression {
	return &ast.ErrorExp{Token: d.Tok, Msg: p.errors[len(p.errors)-1].Msg}
}

func (p *Parser) parseAdd(d *datum) ast.Expression {
	return &ast.AddExp{Token: d.Tok, Operands: p.parseExpressions(d.Elems[1:])}
}

func (p *Parser) parseBinary(d *datum) ast.Expression {
	if !p.arity(d, 2) {
		return p.errorNode(d)
	}
	l := p.parseExpression(d.Elems[1])
	r := p.parseExpression(d.Elems[2])
	switch d.head().Type {
	case token.SUB:
		return &ast.SubExp{Token: d.Tok, Left: l, Right: r}
	case token.MUL:
		return &ast.MultExp{Token: d.Tok, Left: l, Right: r}
	case token.QUO:
		return &ast.DivExp{Token: d.Tok, Left: l, Right: r}
	case token.LSS:
		return &ast.LessExp{Token: d.Tok, Left: l, Right: r}
	case token.GTR:
		return &ast.GreaterExp{Token: d.Tok, Left: l, Right: r}
	case token.EQL:
		return &ast.EqualExp{Token: d.Tok, Left: l, Right: r}
	case token.CONS:
		return &ast.ConsExp{Token: d.Tok, Left: l, Right: r}
	default: // token.ASSIGN
		return &ast.AssignExp{Token: d.Tok, Loc: l, Value: r}
	}
}

func (p *Parser) parseUnary(d *datum) ast.Expression {
	if !p.arity(d, 1) {
		return p.errorNode(d)
	}
	arg := p.parseExpression(d.Elems[1])
	switch d.head().Type {
	case token.CAR:
		return &ast.CarExp{Token: d.Tok, Arg: arg}
	case token.CDR:
		return &ast.CdrExp{Token: d.Tok, Arg: arg}
	case token.NULL:
		return &ast.NullExp{Token: d.Tok, Arg: arg}
	case token.REF:
		return &ast.RefExp{Token: d.Tok, Value: arg}
	case token.DEREF:
		return &ast.DerefExp{Token: d.Tok, Loc: arg}
	case token.FREE:
		return &ast.FreeExp{Token: d.Tok, Loc: arg}
	default: // token.EVAL
		return &ast.EvalExp{Token: d.Tok, Code: arg}
	}
}

func (p *Parser) parseIf(d *datum) ast.Expression {
	if !p.arity(d, 3) {
		return p.errorNode(d)
	}
	return &ast.IfExp{
		Token: d.Tok,
		Cond:  p.parseExpression(d.Elems[1]),
		Then:  p.parseExpression(d.Elems[2]),
		Else:  p.parseExpression(d.Elems[3]),
	}
}

func (p *Parser) parseRead(d *datum) ast.Expression {
	switch len(d.Elems) {
	case 1:
		return &ast.ReadExp{Token: d.Tok}
	case 2:
		return &ast.ReadExp{Token: d.Tok, File: p.parseExpression(d.Elems[1])}
	}
	return p.bad(d.head(), "read expects at most 1 operand, got %d", len(d.Elems)-1)
}

// parseList handles (list e...) and (list : T e...).
func (p *Parser) parseList(d *datum) ast.Expression {
	lst := &ast.ListExp{Token: d.Tok}
	rest := d.Elems[1:]
	if len(rest) > 0 && rest[0].isAtom(token.COLON) {
		if len(rest) < 2 {
			return p.bad(rest[0].Tok, "missing element type after %q", ":")
		}
		lst.ElemType = p.parseType(rest[1])
		rest = rest[2:]
	}
	lst.Elems = p.parseExpressions(rest)
	return lst
}

// parseAnnotated splits "name : T rest..." or "name rest..." into its
// parts. T is nil when no annotation is present.
func (p *Parser) parseAnnotated(at token.Token, ds []*datum) (*ast.VarExp, types.Type, []*datum, bool) {
	if len(ds) == 0 || !ds[0].isAtom(token.IDENT) {
		if len(ds) > 0 {
			at = ds[0].Tok
		}
		p.errorf(at, "expected a variable name")
		return nil, nil, nil, false
	}
	name := &ast.VarExp{Token: ds[0].Tok, Name: ds[0].Tok.Literal}
	rest := ds[1:]
	if len(rest) > 0 && rest[0].isAtom(token.COLON) {
		if len(rest) < 2 {
			p.errorf(rest[0].Tok, "missing type after %q", ":")
			return nil, nil, nil, false
		}
		return name, p.parseType(rest[1]), rest[2:], true
	}
	return name, nil, rest, true
}

func (p *Parser) parseBindings(d *datum, typed bool) ([]*ast.Binding, bool) {
	if !p.arity(d, 2) {
		return nil, false
	}
	list := d.Elems[1]
	if !list.IsList {
		p.errorf(list.Tok, "%s expects a parenthesised list of bindings", d.head().Literal)
		return nil, false
	}
	bindings := []*ast.Binding{}
	for _, b := range list.Elems {
		if !b.IsList {
			p.errorf(b.Tok, "binding must be a form (name [: type] value)")
			return nil, false
		}
		name, typ, rest, ok := p.parseAnnotated(b.Tok, b.Elems)
		if !ok {
			return nil, false
		}
		if len(rest) != 1 {
			p.errorf(b.Tok, "binding of %s needs exactly one value", name)
			return nil, false
		}
		if typed && typ == nil {
			p.errorf(name.Token, "%s binding %s needs a declared type", d.head().Literal, name)
			return nil, false
		}
		bindings = append(bindings, &ast.Binding{Name: name, Type: typ, Value: p.parseExpression(rest[0])})
	}
	return bindings, true
}

func (p *Parser) parseLet(d *datum) ast.Expression {
	bindings, ok := p.parseBindings(d, false)
	if !ok {
		return p.errorNode(d)
	}
	return &ast.LetExp{Token: d.Tok, Bindings: bindings, Body: p.parseExpression(d.Elems[2])}
}

func (p *Parser) parseLetrec(d *datum) ast.Expression {
	bindings, ok := p.parseBindings(d, true)
	if !ok {
		return p.errorNode(d)
	}
	return &ast.LetrecExp{Token: d.Tok, Bindings: bindings, Body: p.parseExpression(d.Elems[2])}
}

// parseLambda handles (lambda ((x : T) ...) body).
func (p *Parser) parseLambda(d *datum) ast.Expression {
	if !p.arity(d, 2) {
		return p.errorNode(d)
	}
	list := d.Elems[1]
	if !list.IsList {
		return p.bad(list.Tok, "lambda expects a parenthesised parameter list")
	}
	params := []*ast.Param{}
	for _, pd := range list.Elems {
		if !pd.IsList {
			return p.bad(pd.Tok, "parameter %q needs a declared type: (%s : T)", pd.Tok.Literal, pd.Tok.Literal)
		}
		name, typ, rest, ok := p.parseAnnotated(pd.Tok, pd.Elems)
		if !ok {
			return p.errorNode(d)
		}
		if typ == nil || len(rest) != 0 {
			return p.bad(pd.Tok, "parameter must be written (name : type)")
		}
		params = append(params, &ast.Param{Name: name, Type: typ})
	}
	return &ast.LambdaExp{Token: d.Tok, Params: params, Body: p.parseExpression(d.Elems[2])}
}

func isDefine(d *datum) bool {
	return d.IsList && len(d.Elems) > 0 && d.Elems[0].isAtom(token.DEFINE)
}

// parseDefine handles (define x e) and (define x : T e).
func (p *Parser) parseDefine(d *datum) *ast.DefineDecl {
	name, typ, rest, ok := p.parseAnnotated(d.head(), d.Elems[1:])
	if !ok {
		return nil
	}
	if len(rest) != 1 {
		p.errorf(d.Tok, "define of %s needs exactly one value", name)
		return nil
	}
	return &ast.DefineDecl{Token: d.Tok, Name: name, Type: typ, Value: p.parseExpression(rest[0])}
}

func (p *Parser) parseNestedDefine(d *datum) ast.Expression {
	return p.bad(d.Tok, "define is only allowed at the top level")
}
