package parser

import (
	"errors"
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/require"
	"github.com/thiremani/typelang/ast"
	"github.com/thiremani/typelang/lexer"
	"github.com/thiremani/typelang/types"
)

func lexerFor(src string) *lexer.Lexer {
	return lexer.New("", src)
}

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	program, errs := ParseString(t.Name(), src)
	require.Empty(t, errs)
	return program
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`(+ 300 42)`, `(+ 300 42)`},
		{`(+)`, `(+)`},
		{`(- 1 2)`, `(- 1 2)`},
		{`(* 1 (/ 4 2))`, `(* 1 (/ 4 2))`},
		{`(if (< x 1) "a" "b")`, `(if (< x 1) "a" "b")`},
		{`(let ((x 1) (y : str "s")) (> x 0))`, `(let ((x 1) (y : str "s")) (> x 0))`},
		{`(letrec ((f : (num -> num) (lambda ((n : num)) (f n)))) (f 2))`,
			`(letrec ((f : (num -> num) (lambda ((n : num)) (f n)))) (f 2))`},
		{`(lambda () unit)`, `(lambda () unit)`},
		{`((lambda ((x : num)) x) 5)`, `((lambda ((x : num)) x) 5)`},
		{`(car (cons 1 "x"))`, `(car (cons 1 "x"))`},
		{`(cdr (cons #t #f))`, `(cdr (cons #t #f))`},
		{`(null? (list : num))`, `(null? (list : num))`},
		{`(list 1 2 3)`, `(list 1 2 3)`},
		{`(set! (ref 1) (deref r))`, `(set! (ref 1) (deref r))`},
		{`(free r)`, `(free r)`},
		{`(read)`, `(read)`},
		{`(read "in.txt")`, `(read "in.txt")`},
		{`(eval "(+ 1 2)")`, `(eval "(+ 1 2)")`},
		{"; comment\n(= 1 1)", `(= 1 1)`},
	}

	for _, tt := range tests {
		program := mustParse(t, tt.input)
		require.Empty(t, program.Decls)
		require.Equal(t, tt.expected, program.Exp.String(), "input %q", tt.input)
	}
}

func TestNodeShapes(t *testing.T) {
	program := mustParse(t, `(+ 1 "a" x)`)
	add, ok := program.Exp.(*ast.AddExp)
	require.True(t, ok, "got %T", program.Exp)
	require.Len(t, add.Operands, 3)
	require.IsType(t, &ast.NumConst{}, add.Operands[0])
	require.IsType(t, &ast.StrConst{}, add.Operands[1])
	require.IsType(t, &ast.VarExp{}, add.Operands[2])
	require.Equal(t, 1.0, add.Operands[0].(*ast.NumConst).Value)

	program = mustParse(t, `(f 1 2)`)
	call, ok := program.Exp.(*ast.CallExp)
	require.True(t, ok)
	require.Equal(t, "f", call.Operator.(*ast.VarExp).Name)
	require.Len(t, call.Arguments, 2)

	program = mustParse(t, `(set! r 2)`)
	assign, ok := program.Exp.(*ast.AssignExp)
	require.True(t, ok)
	require.Equal(t, "r", assign.Loc.String())
}

func TestDeclarations(t *testing.T) {
	program := mustParse(t, `(define x 1)
(define sq : (num -> num) (lambda ((n : num)) (* n n)))
(sq x)`)

	require.Len(t, program.Decls, 2)
	require.Equal(t, "x", program.Decls[0].Name.Name)
	require.Nil(t, program.Decls[0].Type)

	want := types.Func{Params: []types.Type{types.Number}, Return: types.Number}
	if diff := deep.Equal(program.Decls[1].Type, types.Type(want)); diff != nil {
		t.Error(diff)
	}
	require.Equal(t, "(sq x)", program.Exp.String())
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input string
		want  types.Type
	}{
		{"num", types.Number},
		{"unit", types.UnitT},
		{"(list str)", types.List{Elem: types.String}},
		{"(ref (pair num bool))", types.Ref{Elem: types.Pair{Left: types.Number, Right: types.Boolean}}},
		{"(-> unit)", types.Func{Params: []types.Type{}, Return: types.UnitT}},
		{"(num (list num) -> (num -> bool))", types.Func{
			Params: []types.Type{types.Number, types.List{Elem: types.Number}},
			Return: types.Func{Params: []types.Type{types.Number}, Return: types.Boolean},
		}},
	}

	for _, tt := range tests {
		got, errs := ParseType(tt.input)
		require.Empty(t, errs, "input %q", tt.input)
		if diff := deep.Equal(got, tt.want); diff != nil {
			t.Errorf("input %q: %v", tt.input, diff)
		}
	}
}

func TestParseTypeErrors(t *testing.T) {
	for _, input := range []string{"number", "(pair num)", "(num -> )", "()", "", "num str"} {
		got, errs := ParseType(input)
		require.NotEmpty(t, errs, "input %q", input)
		require.True(t, types.IsError(got) || input == "num str", "input %q got %s", input, got)
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
	}{
		{`(- 1 2 3)`, "- expects 2 operand(s), got 3"},
		{`(car)`, "car expects 1 operand(s), got 0"},
		{`(if #t 1)`, "if expects 3 operand(s), got 2"},
		{`(lambda (x) x)`, `parameter "x" needs a declared type: (x : T)`},
		{`(letrec ((f 1)) f)`, "letrec binding f needs a declared type"},
		{`(let (x 1) x)`, "binding must be a form (name [: type] value)"},
		{`()`, "empty form ()"},
		{`(+ 1 2`, `unclosed "("`},
		{`(let ((x : number 1)) x)`, `unknown type "number"`},
		{`(+ 1 (define y 2))`, "define is only allowed at the top level"},
		{`(define x 1)`, "program has no result expression"},
		{`1 2`, "program has more than one result expression"},
		{`1 (define x 2)`, "definition of x after the program's result expression"},
		{`(read 1 2)`, "read expects at most 1 operand, got 2"},
		{`#q`, `illegal token "#q"`},
		{`)`, `unexpected ")"`},
		{"1\x00(+ 1 \"a\")", `illegal token "\x00"`},
	}

	for _, tt := range tests {
		_, errs := ParseString("", tt.input)
		require.NotEmpty(t, errs, "input %q", tt.input)
		require.Equal(t, tt.msg, errs[0].Msg, "input %q", tt.input)
		require.True(t, errors.Is(errs[0], ErrSyntax))
	}
}

func TestMalformedSubtreeBecomesErrorExp(t *testing.T) {
	program, errs := ParseString("", `(+ 1 (car))`)
	require.Len(t, errs, 1)
	add := program.Exp.(*ast.AddExp)
	require.IsType(t, &ast.ErrorExp{}, add.Operands[1])
	require.Equal(t, "car expects 1 operand(s), got 0", add.Operands[1].(*ast.ErrorExp).Msg)
}

func TestParseFormsKeepsOrder(t *testing.T) {
	p := New(lexerFor(`(define a 1) a (define b 2)`))
	nodes := p.ParseForms()
	require.Empty(t, p.Errors())
	require.Len(t, nodes, 3)
	require.IsType(t, &ast.DefineDecl{}, nodes[0])
	require.IsType(t, &ast.VarExp{}, nodes[1])
	require.IsType(t, &ast.DefineDecl{}, nodes[2])
}

func TestErrorPositions(t *testing.T) {
	_, errs := ParseString("pos.tl", "(define x 1)\n  (car 1 2)")
	require.Len(t, errs, 1)
	require.Equal(t, "pos.tl:2:4: car expects 1 operand(s), got 2", errs[0].Error())
}
