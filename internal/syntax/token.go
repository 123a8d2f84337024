// Package syntax implements lexical and syntactic analysis for OpenQASM 2.0.
package syntax

import "fmt"

// Token represents the type of a lexical token.
type Token uint

const (
	// Special tokens
	_EOF Token = iota // end of input

	// Literals
	_Name    // identifier: q, CX, pi, u3
	_Literal // literal value (used with LitKind)

	// Operators (ordered by precedence, low to high)
	_Add // +
	_Sub // -
	_Mul // *
	_Div // /
	_Pow // ^

	// Symbols
	_Arrow  // ->
	_Assign // =
	_Eql    // ==
	_Lparen // (
	_Rparen // )
	_Lbrack // [
	_Rbrack // ]
	_Lbrace // {
	_Rbrace // }
	_Comma  // ,
	_Semi   // ;

	// Keywords
	_OpenQASM
	_Qreg
	_Creg
	_Gate
	_Opaque
	_If
	_Measure
	_Reset
	_Barrier
	_Include

	tokenCount
)

// tokenNames maps tokens to their string representation.
var tokenNames = [...]string{
	_EOF: "EOF",

	_Name:    "NAME",
	_Literal: "LITERAL",

	_Add: "+",
	_Sub: "-",
	_Mul: "*",
	_Div: "/",
	_Pow: "^",

	_Arrow:  "->",
	_Assign: "=",
	_Eql:    "==",
	_Lparen: "(",
	_Rparen: ")",
	_Lbrack: "[",
	_Rbrack: "]",
	_Lbrace: "{",
	_Rbrace: "}",
	_Comma:  ",",
	_Semi:   ";",

	_OpenQASM: "OPENQASM",
	_Qreg:     "qreg",
	_Creg:     "creg",
	_Gate:     "gate",
	_Opaque:   "opaque",
	_If:       "if",
	_Measure:  "measure",
	_Reset:    "reset",
	_Barrier:  "barrier",
	_Include:  "include",
}

// String returns the string representation of the token.
func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// Precedence returns the operator precedence for binary operators.
// Returns 0 for non-operators.
//
//	1: + -
//	2: * /
//	3: ^ (right associative)
func (t Token) Precedence() int {
	switch t {
	case _Add, _Sub:
		return 1
	case _Mul, _Div:
		return 2
	case _Pow:
		return 3
	}
	return 0
}

// IsKeyword reports whether t is a keyword token.
func (t Token) IsKeyword() bool {
	return t >= _OpenQASM && t <= _Include
}

// IsLiteral reports whether t is a literal token.
func (t Token) IsLiteral() bool {
	return t == _Literal
}

// IsOperator reports whether t is an arithmetic operator token.
func (t Token) IsOperator() bool {
	return t >= _Add && t <= _Pow
}

// IsEOF reports whether t is the EOF token.
func (t Token) IsEOF() bool {
	return t == _EOF
}

// Exported operator tokens for expression consumers.
const (
	Add Token = _Add // +
	Sub Token = _Sub // -
	Mul Token = _Mul // *
	Div Token = _Div // /
	Pow Token = _Pow // ^
)

// LitKind represents the kind of a literal token.
type LitKind uint8

const (
	IntLit    LitKind = iota // 0, 42
	RealLit                  // 2.0, .5, 1e-3
	StringLit                // "qelib1.inc"
)

// litKindNames maps literal kinds to their string representation.
var litKindNames = [...]string{
	IntLit:    "int",
	RealLit:   "real",
	StringLit: "string",
}

// String returns the string representation of the literal kind.
func (k LitKind) String() string {
	if k <= StringLit {
		return litKindNames[k]
	}
	return fmt.Sprintf("LitKind(%d)", k)
}

// Class is the coarse lexical category of a lexeme.
type Class uint8

const (
	ClassEOF Class = iota
	ClassKeyword
	ClassIdent
	ClassInt
	ClassReal
	ClassString
	ClassSymbol
	ClassOperator
)

var classNames = [...]string{
	ClassEOF:      "end of input",
	ClassKeyword:  "keyword",
	ClassIdent:    "identifier",
	ClassInt:      "integer",
	ClassReal:     "real",
	ClassString:   "string",
	ClassSymbol:   "symbol",
	ClassOperator: "operator",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return fmt.Sprintf("Class(%d)", c)
}

// keywords maps keyword strings to their token type.
// Builtin gate names (U, CX) and pi are NOT keywords; they are scanned as _Name.
var keywords = map[string]Token{
	"OPENQASM": _OpenQASM,
	"qreg":     _Qreg,
	"creg":     _Creg,
	"gate":     _Gate,
	"opaque":   _Opaque,
	"if":       _If,
	"measure":  _Measure,
	"reset":    _Reset,
	"barrier":  _Barrier,
	"include":  _Include,
}

// LookupKeyword returns the token for the given identifier string.
// If the identifier is a keyword, returns the keyword token.
// Otherwise, returns _Name.
func LookupKeyword(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return _Name
}

// Lexeme is one classified lexical unit produced by Tokenize.
type Lexeme struct {
	Tok   Token
	Lit   string  // exact source text (strings keep their quotes)
	Kind  LitKind // only valid when Tok == _Literal
	Pos   Pos     // start position
	Index int     // ordinal in the token stream
	Space string  // whitespace between the previous lexeme and this one
}

// Class returns the lexical category of l.
func (l Lexeme) Class() Class {
	switch {
	case l.Tok == _EOF:
		return ClassEOF
	case l.Tok == _Name:
		return ClassIdent
	case l.Tok == _Literal:
		switch l.Kind {
		case IntLit:
			return ClassInt
		case RealLit:
			return ClassReal
		default:
			return ClassString
		}
	case l.Tok.IsKeyword():
		return ClassKeyword
	case l.Tok.IsOperator():
		return ClassOperator
	}
	return ClassSymbol
}

// describe renders l for diagnostics: keywords and symbols by their text,
// everything else by category and text.
func (l Lexeme) describe() string {
	switch l.Class() {
	case ClassEOF:
		return "EOF"
	case ClassIdent:
		return "identifier " + l.Lit
	case ClassInt, ClassReal, ClassString:
		return l.Class().String() + " " + l.Lit
	}
	return "'" + l.Lit + "'"
}

func (l Lexeme) String() string {
	return fmt.Sprintf("%s %s %q", l.Pos, l.Class(), l.Lit)
}
