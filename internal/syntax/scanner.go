package syntax

import (
	"fmt"
	"strings"
)

// Scanner performs lexical analysis on expanded OpenQASM source.
// Scanning is fail-fast: after the first lexical error Next only yields EOF
// and Err reports the error.
type Scanner struct {
	source // embedded character reader

	// Current token info
	tok    Token   // token type
	lit    string  // exact token text
	kind   LitKind // literal kind (only valid when tok == _Literal)
	tokPos Pos     // token start position
	space  string  // whitespace preceding the token

	spaceBuf strings.Builder
}

// NewScanner creates a new Scanner for src. The filename is only used for
// positions.
func NewScanner(filename, src string) *Scanner {
	s := &Scanner{}
	s.init(filename, src)
	return s
}

// Next advances to the next token.
func (s *Scanner) Next() {
	s.spaceBuf.Reset()

redo:
	if s.err != nil {
		s.tok = _EOF
		s.lit = ""
		s.tokPos = s.pos()
		s.space = ""
		return
	}

	// Whitespace is kept so the parser can reproduce expression text.
	for isWhitespace(s.ch) {
		s.spaceBuf.WriteRune(s.ch)
		s.nextch()
	}

	if s.ch == '/' && s.peek() == '/' {
		s.skipLineComment()
		goto redo
	}

	s.tokPos = s.pos()
	s.space = s.spaceBuf.String()
	start := s.chOff

	switch {
	case s.ch < 0:
		s.tok = _EOF
		s.lit = ""
		return

	case isLetter(s.ch):
		s.scanIdent()

	case isDigit(s.ch) || s.ch == '.' && isDigit(rune(s.peek())):
		s.scanNumber()

	case s.ch == '"':
		s.scanString()

	default:
		if !s.scanOperator() {
			s.errorAt(s.tokPos, fmt.Sprintf("unexpected character %q", s.ch))
			goto redo
		}
	}

	if s.err != nil {
		goto redo
	}
	s.lit = s.buf[start:s.chOff]
}

// Token returns the current token type.
func (s *Scanner) Token() Token {
	return s.tok
}

// Literal returns the current token's source text.
func (s *Scanner) Literal() string {
	return s.lit
}

// LitKind returns the current literal's kind (only valid when Token() == _Literal).
func (s *Scanner) LitKind() LitKind {
	return s.kind
}

// Pos returns the current token's start position.
func (s *Scanner) Pos() Pos {
	return s.tokPos
}

// Space returns the whitespace that preceded the current token.
func (s *Scanner) Space() string {
	return s.space
}

// Err returns the first lexical error, or nil.
func (s *Scanner) Err() error {
	if s.err == nil {
		return nil
	}
	return s.err
}

// scanIdent scans an identifier or keyword.
func (s *Scanner) scanIdent() {
	start := s.chOff
	s.nextch()
	for isLetter(s.ch) || isDigit(s.ch) {
		s.nextch()
	}
	s.tok = LookupKeyword(s.buf[start:s.chOff])
}

// scanNumber scans an unsigned integer or a real literal.
func (s *Scanner) scanNumber() {
	s.tok = _Literal
	s.kind = IntLit

	s.scanDecimalDigits()
	if s.ch == '.' {
		s.kind = RealLit
		s.nextch()
		s.scanDecimalDigits()
	}

	if lower(s.ch) == 'e' {
		s.kind = RealLit
		s.nextch()
		if s.ch == '+' || s.ch == '-' {
			s.nextch()
		}
		if !isDigit(s.ch) {
			s.error("exponent has no digits")
			return
		}
		s.scanDecimalDigits()
	}
}

// scanDecimalDigits scans decimal digits.
func (s *Scanner) scanDecimalDigits() {
	for isDigit(s.ch) {
		s.nextch()
	}
}

// scanString scans a string literal. OpenQASM strings have no escapes and
// may not span lines.
func (s *Scanner) scanString() {
	pos := s.pos()
	s.nextch() // skip opening "

	for s.ch != '"' {
		if s.ch == '\n' || s.ch < 0 {
			s.errorAt(pos, "string not terminated")
			return
		}
		s.nextch()
	}
	s.nextch() // skip closing "

	s.tok = _Literal
	s.kind = StringLit
}

// scanOperator scans an operator or symbol. It reports false if the current
// character starts neither.
func (s *Scanner) scanOperator() bool {
	ch := s.ch

	switch ch {
	case '+':
		s.tok = _Add
	case '-':
		s.nextch()
		if s.ch == '>' {
			s.nextch()
			s.tok = _Arrow
		} else {
			s.tok = _Sub
		}
		return true
	case '*':
		s.tok = _Mul
	case '/':
		s.tok = _Div
	case '^':
		s.tok = _Pow
	case '=':
		s.nextch()
		if s.ch == '=' {
			s.nextch()
			s.tok = _Eql
		} else {
			s.tok = _Assign
		}
		return true
	case '(':
		s.tok = _Lparen
	case ')':
		s.tok = _Rparen
	case '[':
		s.tok = _Lbrack
	case ']':
		s.tok = _Rbrack
	case '{':
		s.tok = _Lbrace
	case '}':
		s.tok = _Rbrace
	case ',':
		s.tok = _Comma
	case ';':
		s.tok = _Semi
	default:
		return false
	}

	s.nextch()
	return true
}

// skipLineComment skips a line comment (from // to end of line). The
// newline itself is left for the whitespace loop.
func (s *Scanner) skipLineComment() {
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
}

// Tokenize scans all of src and returns its lexemes, terminated by exactly
// one EOF lexeme. It stops at the first lexical error.
func Tokenize(filename, src string) ([]Lexeme, error) {
	s := NewScanner(filename, src)

	var toks []Lexeme
	for {
		s.Next()
		if err := s.Err(); err != nil {
			return nil, err
		}
		toks = append(toks, Lexeme{
			Tok:   s.tok,
			Lit:   s.lit,
			Kind:  s.kind,
			Pos:   s.tokPos,
			Index: len(toks),
			Space: s.space,
		})
		if s.tok == _EOF {
			return toks, nil
		}
	}
}
