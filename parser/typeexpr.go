package parser

import (
	"github.com/thiremani/typelang/lexer"
	"github.com/thiremani/typelang/token"
	"github.com/thiremani/typelang/types"
)

// parseType reads a type annotation. Malformed annotations are reported
// and come back as an Error type so the checker can absorb them.
func (p *Parser) parseType(d *datum) types.Type {
	if !d.IsList {
		switch d.Tok.Type {
		case token.UNIT:
			return types.UnitT
		case token.IDENT:
			if t, ok := types.LookupName(d.Tok.Literal); ok {
				return t
			}
		}
		return p.badType(d.Tok, "unknown type %q", d.Tok.Literal)
	}

	for i, e := range d.Elems {
		if e.isAtom(token.ARROW) {
			return p.parseFuncType(d, i)
		}
	}

	if len(d.Elems) == 0 {
		return p.badType(d.Tok, "empty type ()")
	}
	head := d.Elems[0]
	args := d.Elems[1:]
	switch {
	case head.isAtom(token.LIST) && len(args) == 1:
		return types.List{Elem: p.parseType(args[0])}
	case head.isAtom(token.REF) && len(args) == 1:
		return types.Ref{Elem: p.parseType(args[0])}
	case head.isAtom(token.IDENT) && head.Tok.Literal == "pair" && len(args) == 2:
		return types.Pair{Left: p.parseType(args[0]), Right: p.parseType(args[1])}
	}
	return p.badType(head.Tok, "malformed type starting with %q", head.Tok.Literal)
}

// parseFuncType reads (P1 P2 ... -> R) where arrow is the index of "->".
func (p *Parser) parseFuncType(d *datum, arrow int) types.Type {
	results := d.Elems[arrow+1:]
	if len(results) != 1 {
		return p.badType(d.Elems[arrow].Tok, "function type needs exactly one result type after %q", "->")
	}
	params := make([]types.Type, 0, arrow)
	for _, pd := range d.Elems[:arrow] {
		params = append(params, p.parseType(pd))
	}
	return types.Func{Params: params, Return: p.parseType(results[0])}
}

func (p *Parser) badType(tok token.Token, format string, args ...any) types.Type {
	p.errorf(tok, format, args...)
	return types.Error{Msg: p.errors[len(p.errors)-1].Msg}
}

// ParseType parses a standalone type such as "(num -> (list str))". It is
// used for type names given in configuration.
func ParseType(src string) (types.Type, []*token.CompileError) {
	p := New(lexer.New("", src))
	d := p.readDatum()
	if d == nil {
		return types.ErrorT, p.Errors()
	}
	t := p.parseType(d)
	if !p.peekTokenIs(token.EOF) {
		p.errorf(p.peekToken, "unexpected %q after type", p.peekToken.Literal)
	}
	return t, p.Errors()
}
