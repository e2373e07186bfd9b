package token

import (
	"fmt"
	"strconv"
)

type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF
	COMMENT

	literal_beg
	// Identifiers + literals
	IDENT  // x, f, null?, set!
	NUMBER // 42, -3.5
	STRING // "abc"
	BOOL   // #t, #f
	literal_end

	operator_beg
	// Operators and delimiters
	ADD // +
	SUB // -
	MUL // *
	QUO // /

	LSS // <
	GTR // >
	EQL // =

	LPAREN // (
	RPAREN // )
	COLON  // :
	ARROW  // ->
	operator_end

	keyword_beg
	DEFINE
	LET
	LETREC
	LAMBDA
	IF
	CONS
	CAR
	CDR
	LIST
	NULL
	REF
	DEREF
	ASSIGN
	FREE
	READ
	EVAL
	UNIT
	keyword_end
)

var tokens = [...]string{
	ILLEGAL: "ILLEGAL",

	EOF:     "EOF",
	COMMENT: "COMMENT",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",
	BOOL:   "BOOL",

	ADD: "+",
	SUB: "-",
	MUL: "*",
	QUO: "/",

	LSS: "<",
	GTR: ">",
	EQL: "=",

	LPAREN: "(",
	RPAREN: ")",
	COLON:  ":",
	ARROW:  "->",

	DEFINE: "define",
	LET:    "let",
	LETREC: "letrec",
	LAMBDA: "lambda",
	IF:     "if",
	CONS:   "cons",
	CAR:    "car",
	CDR:    "cdr",
	LIST:   "list",
	NULL:   "null?",
	REF:    "ref",
	DEREF:  "deref",
	ASSIGN: "set!",
	FREE:   "free",
	READ:   "read",
	EVAL:   "eval",
	UNIT:   "unit",
}

var keywords map[string]TokenType

func init() {
	keywords = make(map[string]TokenType, keyword_end-(keyword_beg+1))
	for i := keyword_beg + 1; i < keyword_end; i++ {
		keywords[tokens[i]] = i
	}
}

// LookupIdent maps a symbol to its keyword token type, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

type Token struct {
	FileName string
	Type     TokenType
	Literal  string
	Line     int
	Column   int
}

func (t Token) IsKeyword() bool {
	return keyword_beg < t.Type && t.Type < keyword_end
}

func (t Token) IsLiteral() bool {
	return literal_beg < t.Type && t.Type < literal_end
}

// Pos renders the token position as file:line:col. The file part is
// omitted for anonymous input.
func (t Token) Pos() string {
	if t.FileName == "" {
		return fmt.Sprintf("%d:%d", t.Line, t.Column)
	}
	return fmt.Sprintf("%s:%d:%d", t.FileName, t.Line, t.Column)
}

func (t Token) String() string {
	return t.Type.String()
}

func (tokenType TokenType) String() string {
	s := ""
	if 0 <= tokenType && tokenType < TokenType(len(tokens)) {
		s = tokens[tokenType]
	}

	if s == "" {
		s = "token(" + strconv.Itoa(int(tokenType)) + ")"
	}

	return s
}
