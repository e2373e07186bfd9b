package lexer

import (
	"strings"

	"github.com/thiremani/typelang/token"
)

type Lexer struct {
	FileName     string
	input        []rune
	position     int  // current position in input (points to current rune)
	readPosition int  // current reading position in input (after current rune)
	curr         rune // current rune under examination
	line         int
	column       int
}

func New(fileName, input string) *Lexer {
	l := &Lexer{FileName: fileName, input: []rune(input), line: 1}
	l.readRune()
	return l
}

var operators = map[string]token.TokenType{
	"+":  token.ADD,
	"-":  token.SUB,
	"*":  token.MUL,
	"/":  token.QUO,
	"<":  token.LSS,
	">":  token.GTR,
	"=":  token.EQL,
	"->": token.ARROW,
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	tok := token.Token{
		FileName: l.FileName,
		Line:     l.line,
		Column:   l.column,
	}

	if l.atEOF() {
		tok.Type = token.EOF
		return tok
	}

	switch l.curr {
	case '(':
		tok.Type, tok.Literal = token.LPAREN, "("
	case ')':
		tok.Type, tok.Literal = token.RPAREN, ")"
	case ':':
		tok.Type, tok.Literal = token.COLON, ":"
	case '"':
		tok.Literal, tok.Type = l.readString()
		return tok
	case '#':
		tok.Literal = l.readSymbol()
		if tok.Literal == "#t" || tok.Literal == "#f" {
			tok.Type = token.BOOL
		} else {
			tok.Type = token.ILLEGAL
		}
		return tok
	default:
		if !isSymbolRune(l.curr) {
			tok.Type, tok.Literal = token.ILLEGAL, string(l.curr)
			break
		}
		tok.Literal = l.readSymbol()
		tok.Type = classify(tok.Literal)
		return tok
	}

	l.readRune()
	return tok
}

// Tokenize reads the whole input, the trailing EOF token included.
func (l *Lexer) Tokenize() []token.Token {
	toks := []token.Token{}
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func classify(sym string) token.TokenType {
	if t, ok := operators[sym]; ok {
		return t
	}
	if isNumber(sym) {
		return token.NUMBER
	}
	return token.LookupIdent(sym)
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch l.curr {
		case ' ', '\t', '\n', '\r':
			l.readRune()
		case ';':
			for l.curr != '\n' && !l.atEOF() {
				l.readRune()
			}
		default:
			return
		}
	}
}

// atEOF is true once every rune has been consumed. A NUL inside the
// input is not the end.
func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) readRune() {
	if l.curr == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.curr = 0
	} else {
		l.curr = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) readSymbol() string {
	position := l.position
	for isSymbolRune(l.curr) {
		l.readRune()
	}
	return string(l.input[position:l.position])
}

// readString consumes a double quoted literal and returns its unescaped
// contents. An unterminated literal yields ILLEGAL.
func (l *Lexer) readString() (string, token.TokenType) {
	var sb strings.Builder
	l.readRune() // opening quote
	for {
		if l.atEOF() {
			return sb.String(), token.ILLEGAL
		}
		switch l.curr {
		case '"':
			l.readRune()
			return sb.String(), token.STRING
		case '\\':
			l.readRune()
			if l.atEOF() {
				return sb.String(), token.ILLEGAL
			}
			switch l.curr {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			default:
				sb.WriteRune(l.curr)
			}
		default:
			sb.WriteRune(l.curr)
		}
		l.readRune()
	}
}

func isSymbolRune(ch rune) bool {
	switch ch {
	case 0, ' ', '\t', '\n', '\r', '(', ')', '"', ';', ':':
		return false
	}
	return true
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// isNumber accepts an optional sign, digits and at most one decimal point.
func isNumber(sym string) bool {
	rs := []rune(sym)
	if len(rs) > 0 && (rs[0] == '-' || rs[0] == '+') {
		rs = rs[1:]
	}
	digits, dots := 0, 0
	for _, r := range rs {
		switch {
		case isDigit(r):
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}
