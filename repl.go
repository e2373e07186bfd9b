package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/thiremani/typelang/ast"
	"github.com/thiremani/typelang/checker"
	"github.com/thiremani/typelang/lexer"
	"github.com/thiremani/typelang/parser"
	"github.com/thiremani/typelang/token"
)

const (
	promptMain = "tl> "
	promptCont = "... "
	replName   = "repl"
)

const replHelp = `Enter expressions or (define name [: type] value) forms.
  :env    list the names in scope with their types
  :reset  forget every definition
  :help   show this message
  :quit   leave`

// session keeps the definitions made so far. Each input is checked with
// a fresh diagnostics list under the accumulated environment.
type session struct {
	checker *checker.Checker
	env     *checker.TypeEnv
}

func newSession(opts checker.Options) *session {
	return &session{checker: checker.New(opts)}
}

// incomplete reports whether src still has unclosed parens.
func incomplete(src string) bool {
	depth := 0
	for _, tok := range lexer.New(replName, src).Tokenize() {
		switch tok.Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		}
	}
	return depth > 0
}

// command handles a ":" line. It returns false when the session should end.
func (s *session) command(w io.Writer, line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case ":quit", ":q":
		return false
	case ":env":
		for _, name := range s.env.Names() {
			t, _ := s.env.Lookup(name)
			fmt.Fprintf(w, "%s : %s\n", name, t)
		}
	case ":reset":
		s.env = nil
		fmt.Fprintln(w, "environment cleared")
	case ":help":
		fmt.Fprintln(w, replHelp)
	default:
		fmt.Fprintf(w, "unknown command %s. Type :help for the list.\n", strings.TrimSpace(line))
	}
	return true
}

// eval checks every form in src in order. Definitions extend the session
// environment even when their value is ill typed, so later lines see the
// Error type instead of an unbound name.
func (s *session) eval(w io.Writer, src string) {
	p := parser.New(lexer.New(replName, src))
	nodes := p.ParseForms()
	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(w, "%s\n", e)
		}
		return
	}

	for _, n := range nodes {
		s.checker.Reset()
		switch n := n.(type) {
		case *ast.DefineDecl:
			t, env := s.checker.CheckDecl(n, s.env)
			s.env = env
			s.printErrors(w)
			fmt.Fprintf(w, "%s : %s\n", n.Name, t)
		case ast.Expression:
			t := s.checker.Check(n, s.env)
			s.printErrors(w)
			fmt.Fprintf(w, "%s\n", t)
		}
	}
}

func (s *session) printErrors(w io.Writer) {
	for _, e := range s.checker.Errors {
		fmt.Fprintf(w, "%s\n", e)
	}
}

func readInput(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) && b.Len() > 0 {
			// ctrl-c drops a half typed form
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !incomplete(b.String()) {
			return b.String(), true
		}
	}
}

// runRepl reads forms with line editing until :quit or end of input.
// History is kept in historyPath between sessions.
func runRepl(opts checker.Options, historyPath string, w io.Writer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(historyPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if err := os.MkdirAll(filepath.Dir(historyPath), 0755); err != nil {
			return
		}
		if f, err := os.Create(historyPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintf(w, "typelang %s. Type :help for commands.\n", Version)
	s := newSession(opts)
	for {
		src, ok := readInput(ln)
		if !ok {
			fmt.Fprintln(w)
			return nil
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			if !s.command(w, src) {
				return nil
			}
			continue
		}
		s.eval(w, src)
	}
}
