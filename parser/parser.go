package parser

import (
	"errors"
	"fmt"

	"github.com/thiremani/typelang/ast"
	"github.com/thiremani/typelang/lexer"
	"github.com/thiremani/typelang/token"
)

// ErrSyntax classifies every diagnostic produced by the parser.
var ErrSyntax = errors.New("syntax error")

// datum is one read s-expression: an atom, or a parenthesised list whose
// Tok is the opening paren.
type datum struct {
	Tok    token.Token
	IsList bool
	Elems  []*datum
}

func (d *datum) head() token.Token {
	if len(d.Elems) == 0 {
		return d.Tok
	}
	return d.Elems[0].Tok
}

func (d *datum) isAtom(t token.TokenType) bool {
	return !d.IsList && d.Tok.Type == t
}

type Parser struct {
	l      *lexer.Lexer
	errors []*token.CompileError

	curToken  token.Token
	peekToken token.Token

	formParseFns map[token.TokenType]formParseFn
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:      l,
		errors: []*token.CompileError{},
	}
	p.registerForms()

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) Errors() []*token.CompileError {
	return p.errors
}

func (p *Parser) errorf(tok token.Token, format string, args ...any) {
	p.errors = append(p.errors, &token.CompileError{
		Token: tok,
		Msg:   fmt.Sprintf(format, args...),
		Err:   ErrSyntax,
	})
}

// readDatum reads one s-expression starting at curToken and leaves
// curToken on its last token. It returns nil for a stray ')' or EOF.
func (p *Parser) readDatum() *datum {
	switch p.curToken.Type {
	case token.EOF:
		p.errorf(p.curToken, "unexpected end of input")
		return nil
	case token.RPAREN:
		p.errorf(p.curToken, "unexpected %q", ")")
		return nil
	case token.LPAREN:
		d := &datum{Tok: p.curToken, IsList: true}
		for !p.peekTokenIs(token.RPAREN) {
			if p.peekTokenIs(token.EOF) {
				p.errorf(d.Tok, "unclosed %q", "(")
				return d
			}
			p.nextToken()
			if elem := p.readDatum(); elem != nil {
				d.Elems = append(d.Elems, elem)
			}
		}
		p.nextToken()
		return d
	default:
		return &datum{Tok: p.curToken}
	}
}

// ParseForms reads every top-level form and returns them in source order.
// Each node is either a *ast.DefineDecl or an ast.Expression.
func (p *Parser) ParseForms() []ast.Node {
	nodes := []ast.Node{}
	for !p.curTokenIs(token.EOF) {
		d := p.readDatum()
		p.nextToken()
		if d == nil {
			continue
		}
		if isDefine(d) {
			if decl := p.parseDefine(d); decl != nil {
				nodes = append(nodes, decl)
			}
			continue
		}
		nodes = append(nodes, p.parseExpression(d))
	}
	return nodes
}

// Parse reads a whole program: definitions followed by exactly one result
// expression.
func (p *Parser) Parse() *ast.Program {
	program := &ast.Program{Decls: []*ast.DefineDecl{}}
	for _, n := range p.ParseForms() {
		switch n := n.(type) {
		case *ast.DefineDecl:
			if program.Exp != nil {
				p.errorf(n.Tok(), "definition of %s after the program's result expression", n.Name)
				continue
			}
			program.Decls = append(program.Decls, n)
		case ast.Expression:
			if program.Exp != nil {
				p.errorf(n.Tok(), "program has more than one result expression")
				continue
			}
			program.Exp = n
		}
	}

	if program.Exp == nil {
		p.errorf(p.curToken, "program has no result expression")
		program.Exp = &ast.ErrorExp{Token: p.curToken, Msg: "missing result expression"}
	}
	return program
}

// ParseString parses src as a program named name.
func ParseString(name, src string) (*ast.Program, []*token.CompileError) {
	p := New(lexer.New(name, src))
	program := p.Parse()
	return program, p.Errors()
}
