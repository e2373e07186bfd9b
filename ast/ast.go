package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/thiremani/typelang/token"
	"github.com/thiremani/typelang/types"
)

// The base Node interface
type Node interface {
	Tok() token.Token
	String() string
}

// All expression nodes implement this. The marker method is unexported so
// the set of expression forms is closed to this package.
type Expression interface {
	Node
	expressionNode()
}

// Program is an ordered list of top-level declarations followed by the
// expression whose type is the program's type.
type Program struct {
	Decls []*DefineDecl
	Exp   Expression
}

func (p *Program) Tok() token.Token {
	if len(p.Decls) > 0 {
		return p.Decls[0].Tok()
	}
	if p.Exp != nil {
		return p.Exp.Tok()
	}
	return token.Token{
		Type:    token.EOF,
		Literal: "",
	}
}

func (p *Program) String() string {
	parts := []string{}
	for _, d := range p.Decls {
		parts = append(parts, d.String())
	}
	if p.Exp != nil {
		parts = append(parts, p.Exp.String())
	}
	return strings.Join(parts, "\n")
}

// DefineDecl binds Name at the top level. A non-nil Type makes the
// binding recursive: the name is visible while Value is checked.
type DefineDecl struct {
	Token token.Token // the ( token
	Name  *VarExp
	Type  types.Type
	Value Expression
}

func (d *DefineDecl) Tok() token.Token { return d.Token }
func (d *DefineDecl) String() string {
	var out bytes.Buffer
	out.WriteString("(define ")
	out.WriteString(d.Name.String())
	if d.Type != nil {
		out.WriteString(" : " + d.Type.String())
	}
	out.WriteString(" " + d.Value.String() + ")")
	return out.String()
}

func printVec(a []Expression) string {
	parts := make([]string, 0, len(a))
	for _, e := range a {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, " ")
}

func form(head string, args ...Expression) string {
	if len(args) == 0 {
		return "(" + head + ")"
	}
	return "(" + head + " " + printVec(args) + ")"
}

// Literals

type NumConst struct {
	Token token.Token
	Value float64
}

func (n *NumConst) expressionNode()  {}
func (n *NumConst) Tok() token.Token { return n.Token }
func (n *NumConst) String() string {
	if n.Token.Literal != "" {
		return n.Token.Literal
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

type StrConst struct {
	Token token.Token
	Value string
}

func (s *StrConst) expressionNode()  {}
func (s *StrConst) Tok() token.Token { return s.Token }
func (s *StrConst) String() string   { return strconv.Quote(s.Value) }

type BoolConst struct {
	Token token.Token
	Value bool
}

func (b *BoolConst) expressionNode()  {}
func (b *BoolConst) Tok() token.Token { return b.Token }
func (b *BoolConst) String() string {
	if b.Value {
		return "#t"
	}
	return "#f"
}

type UnitExp struct {
	Token token.Token
}

func (u *UnitExp) expressionNode()  {}
func (u *UnitExp) Tok() token.Token { return u.Token }
func (u *UnitExp) String() string   { return "unit" }

// ErrorExp stands in for a sub-tree the parser could not make sense of.
type ErrorExp struct {
	Token token.Token
	Msg   string
}

func (e *ErrorExp) expressionNode()  {}
func (e *ErrorExp) Tok() token.Token { return e.Token }
func (e *ErrorExp) String() string   { return "<error>" }

type VarExp struct {
	Token token.Token // the token.IDENT token
	Name  string
}

func (v *VarExp) expressionNode()  {}
func (v *VarExp) Tok() token.Token { return v.Token }
func (v *VarExp) String() string   { return v.Name }

// Arithmetic and comparison

type AddExp struct {
	Token    token.Token
	Operands []Expression
}

func (a *AddExp) expressionNode()  {}
func (a *AddExp) Tok() token.Token { return a.Token }
func (a *AddExp) String() string   { return form("+", a.Operands...) }

type SubExp struct {
	Token       token.Token
	Left, Right Expression
}

func (s *SubExp) expressionNode()  {}
func (s *SubExp) Tok() token.Token { return s.Token }
func (s *SubExp) String() string   { return form("-", s.Left, s.Right) }

type MultExp struct {
	Token       token.Token
	Left, Right Expression
}

func (m *MultExp) expressionNode()  {}
func (m *MultExp) Tok() token.Token { return m.Token }
func (m *MultExp) String() string   { return form("*", m.Left, m.Right) }

type DivExp struct {
	Token       token.Token
	Left, Right Expression
}

func (d *DivExp) expressionNode()  {}
func (d *DivExp) Tok() token.Token { return d.Token }
func (d *DivExp) String() string   { return form("/", d.Left, d.Right) }

type LessExp struct {
	Token       token.Token
	Left, Right Expression
}

func (l *LessExp) expressionNode()  {}
func (l *LessExp) Tok() token.Token { return l.Token }
func (l *LessExp) String() string   { return form("<", l.Left, l.Right) }

type GreaterExp struct {
	Token       token.Token
	Left, Right Expression
}

func (g *GreaterExp) expressionNode()  {}
func (g *GreaterExp) Tok() token.Token { return g.Token }
func (g *GreaterExp) String() string   { return form(">", g.Left, g.Right) }

type EqualExp struct {
	Token       token.Token
	Left, Right Expression
}

func (e *EqualExp) expressionNode()  {}
func (e *EqualExp) Tok() token.Token { return e.Token }
func (e *EqualExp) String() string   { return form("=", e.Left, e.Right) }

// Control and binding forms

type IfExp struct {
	Token            token.Token
	Cond, Then, Else Expression
}

func (i *IfExp) expressionNode()  {}
func (i *IfExp) Tok() token.Token { return i.Token }
func (i *IfExp) String() string   { return form("if", i.Cond, i.Then, i.Else) }

// Binding is one (name [: type] value) entry of a let or letrec.
type Binding struct {
	Name  *VarExp
	Type  types.Type // optional for let, required for letrec
	Value Expression
}

func (b *Binding) String() string {
	if b.Type == nil {
		return "(" + b.Name.String() + " " + b.Value.String() + ")"
	}
	return "(" + b.Name.String() + " : " + b.Type.String() + " " + b.Value.String() + ")"
}

func bindingsStr(head string, bs []*Binding, body Expression) string {
	parts := make([]string, 0, len(bs))
	for _, b := range bs {
		parts = append(parts, b.String())
	}
	return "(" + head + " (" + strings.Join(parts, " ") + ") " + body.String() + ")"
}

type LetExp struct {
	Token    token.Token
	Bindings []*Binding
	Body     Expression
}

func (l *LetExp) expressionNode()  {}
func (l *LetExp) Tok() token.Token { return l.Token }
func (l *LetExp) String() string   { return bindingsStr("let", l.Bindings, l.Body) }

type LetrecExp struct {
	Token    token.Token
	Bindings []*Binding
	Body     Expression
}

func (l *LetrecExp) expressionNode()  {}
func (l *LetrecExp) Tok() token.Token { return l.Token }
func (l *LetrecExp) String() string   { return bindingsStr("letrec", l.Bindings, l.Body) }

type Param struct {
	Name *VarExp
	Type types.Type
}

type LambdaExp struct {
	Token  token.Token
	Params []*Param
	Body   Expression
}

func (l *LambdaExp) expressionNode()  {}
func (l *LambdaExp) Tok() token.Token { return l.Token }
func (l *LambdaExp) String() string {
	params := []string{}
	for _, p := range l.Params {
		params = append(params, "("+p.Name.String()+" : "+p.Type.String()+")")
	}
	return "(lambda (" + strings.Join(params, " ") + ") " + l.Body.String() + ")"
}

type CallExp struct {
	Token     token.Token // The '(' token
	Operator  Expression
	Arguments []Expression
}

func (c *CallExp) expressionNode()  {}
func (c *CallExp) Tok() token.Token { return c.Token }
func (c *CallExp) String() string {
	return "(" + printVec(append([]Expression{c.Operator}, c.Arguments...)) + ")"
}

// Pairs and lists

type ConsExp struct {
	Token       token.Token
	Left, Right Expression
}

func (c *ConsExp) expressionNode()  {}
func (c *ConsExp) Tok() token.Token { return c.Token }
func (c *ConsExp) String() string   { return form("cons", c.Left, c.Right) }

type CarExp struct {
	Token token.Token
	Arg   Expression
}

func (c *CarExp) expressionNode()  {}
func (c *CarExp) Tok() token.Token { return c.Token }
func (c *CarExp) String() string   { return form("car", c.Arg) }

type CdrExp struct {
	Token token.Token
	Arg   Expression
}

func (c *CdrExp) expressionNode()  {}
func (c *CdrExp) Tok() token.Token { return c.Token }
func (c *CdrExp) String() string   { return form("cdr", c.Arg) }

// ListExp builds a list. ElemType is the optional written element type.
type ListExp struct {
	Token    token.Token
	ElemType types.Type
	Elems    []Expression
}

func (l *ListExp) expressionNode()  {}
func (l *ListExp) Tok() token.Token { return l.Token }
func (l *ListExp) String() string {
	if l.ElemType == nil {
		return form("list", l.Elems...)
	}
	return form("list : "+l.ElemType.String(), l.Elems...)
}

type NullExp struct {
	Token token.Token
	Arg   Expression
}

func (n *NullExp) expressionNode()  {}
func (n *NullExp) Tok() token.Token { return n.Token }
func (n *NullExp) String() string   { return form("null?", n.Arg) }

// References

type RefExp struct {
	Token token.Token
	Value Expression
}

func (r *RefExp) expressionNode()  {}
func (r *RefExp) Tok() token.Token { return r.Token }
func (r *RefExp) String() string   { return form("ref", r.Value) }

type DerefExp struct {
	Token token.Token
	Loc   Expression
}

func (d *DerefExp) expressionNode()  {}
func (d *DerefExp) Tok() token.Token { return d.Token }
func (d *DerefExp) String() string   { return form("deref", d.Loc) }

type AssignExp struct {
	Token token.Token
	Loc   Expression
	Value Expression
}

func (a *AssignExp) expressionNode()  {}
func (a *AssignExp) Tok() token.Token { return a.Token }
func (a *AssignExp) String() string   { return form("set!", a.Loc, a.Value) }

type FreeExp struct {
	Token token.Token
	Loc   Expression
}

func (f *FreeExp) expressionNode()  {}
func (f *FreeExp) Tok() token.Token { return f.Token }
func (f *FreeExp) String() string   { return form("free", f.Loc) }

// I/O and dynamic evaluation

// ReadExp reads input. File is optional.
type ReadExp struct {
	Token token.Token
	File  Expression
}

func (r *ReadExp) expressionNode()  {}
func (r *ReadExp) Tok() token.Token { return r.Token }
func (r *ReadExp) String() string {
	if r.File == nil {
		return "(read)"
	}
	return form("read", r.File)
}

type EvalExp struct {
	Token token.Token
	Code  Expression
}

func (e *EvalExp) expressionNode()  {}
func (e *EvalExp) Tok() token.Token { return e.Token }
func (e *EvalExp) String() string   { return form("eval", e.Code) }
