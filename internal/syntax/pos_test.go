package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPos(t *testing.T) {
	var zero Pos
	assert.False(t, zero.IsValid())

	p := NewPos("a.qasm", 3, 7)
	assert.True(t, p.IsValid())
	assert.Equal(t, "a.qasm:3:7", p.String())
	assert.Equal(t, uint32(3), p.Line())
	assert.Equal(t, uint32(7), p.Col())
	assert.Equal(t, "a.qasm", p.Filename())

	assert.Equal(t, "3:7", NewPos("", 3, 7).String())
}

func TestPosBefore(t *testing.T) {
	tests := []struct {
		a, b Pos
		want bool
	}{
		{NewPos("", 1, 1), NewPos("", 1, 2), true},
		{NewPos("", 1, 9), NewPos("", 2, 1), true},
		{NewPos("", 2, 1), NewPos("", 1, 9), false},
		{NewPos("", 4, 4), NewPos("", 4, 4), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.a.Before(tt.b), "%s before %s", tt.a, tt.b)
	}
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "->", _Arrow.String())
	assert.Equal(t, "OPENQASM", _OpenQASM.String())
	assert.Equal(t, "token(999)", Token(999).String())
	assert.Equal(t, "real", RealLit.String())
	assert.Equal(t, "identifier", ClassIdent.String())
}

func TestTokenPredicates(t *testing.T) {
	for _, tok := range []Token{_OpenQASM, _Qreg, _Creg, _Gate, _Opaque, _If, _Measure, _Reset, _Barrier, _Include} {
		assert.True(t, tok.IsKeyword(), tok.String())
		assert.False(t, tok.IsOperator(), tok.String())
	}
	for _, tok := range []Token{Add, Sub, Mul, Div, Pow} {
		assert.True(t, tok.IsOperator(), tok.String())
		assert.NotZero(t, tok.Precedence(), tok.String())
	}
	assert.Less(t, Add.Precedence(), Mul.Precedence())
	assert.Less(t, Mul.Precedence(), Pow.Precedence())
	assert.Zero(t, _Arrow.Precedence())
	assert.True(t, _Literal.IsLiteral())
}

func TestLookupKeyword(t *testing.T) {
	assert.Equal(t, _Gate, LookupKeyword("gate"))
	assert.Equal(t, _Name, LookupKeyword("Gate"))
	assert.Equal(t, _Name, LookupKeyword("U"))
	assert.Equal(t, _Name, LookupKeyword("pi"))
	assert.Equal(t, _Name, LookupKeyword("openqasm"))
}
