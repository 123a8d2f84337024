package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := ParseString("test.qasm", src)
	require.NoError(t, err)
	require.NotNil(t, prog)
	return prog
}

func parseErr(t *testing.T, src string) *ParseError {
	t.Helper()
	prog, err := ParseString("test.qasm", src)
	require.Error(t, err)
	assert.Nil(t, prog, "no partial program on error")

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	return perr
}

func TestParseBellProgram(t *testing.T) {
	src := `OPENQASM 2.0;
gate h a { u2(0,pi) a; }
qreg q[2];
creg c[2];
h q[0];
CX q[0], q[1];
measure q[1] -> c[1];
`
	prog := mustParse(t, src)
	assert.Equal(t, "2.0", prog.Version)
	require.Len(t, prog.Stmts, 6)

	gate, ok := prog.Stmts[0].(*GateDecl)
	require.True(t, ok, "stmt 0 is %T", prog.Stmts[0])
	assert.Equal(t, "h", gate.Name)
	assert.Empty(t, gate.Params)
	assert.Equal(t, []string{"a"}, gate.Qubits)
	require.Len(t, gate.Body, 1)
	assert.Equal(t, "u2", gate.Body[0].Name)
	assert.Equal(t, []string{"0", "pi"}, gate.Body[0].Params)
	require.Len(t, gate.Body[0].Args, 1)
	assert.Equal(t, &RegRef{Name: "a"}, withoutPos(gate.Body[0].Args[0]))

	qreg, ok := prog.Stmts[1].(*QRegDecl)
	require.True(t, ok)
	assert.Equal(t, "q", qreg.Name)
	assert.Equal(t, 2, qreg.Size)

	creg, ok := prog.Stmts[2].(*CRegDecl)
	require.True(t, ok)
	assert.Equal(t, "c", creg.Name)
	assert.Equal(t, 2, creg.Size)

	h, ok := prog.Stmts[3].(*GateCall)
	require.True(t, ok)
	assert.Equal(t, "h", h.Name)
	assert.Nil(t, h.Params)
	assert.Equal(t, "q[0]", argsString(h.Args))

	cx, ok := prog.Stmts[4].(*GateCall)
	require.True(t, ok)
	assert.Equal(t, "CX", cx.Name)
	assert.Equal(t, "q[0], q[1]", argsString(cx.Args))

	m, ok := prog.Stmts[5].(*MeasureStmt)
	require.True(t, ok)
	assert.Equal(t, "q[1]", m.Src.String())
	assert.Equal(t, "c[1]", m.Dst.String())
	assert.Equal(t, "q", m.Src.RegName())
	assert.Equal(t, "c", m.Dst.RegName())
}

// withoutPos strips positions so nodes can be compared structurally.
func withoutPos(a Arg) Arg {
	switch a := a.(type) {
	case *RegRef:
		return &RegRef{Name: a.Name}
	case *IndexRef:
		return &IndexRef{Name: a.Name, Index: a.Index}
	}
	return a
}

func TestParseWithoutVersion(t *testing.T) {
	prog := mustParse(t, "qreg q[1];")
	assert.Equal(t, "", prog.Version)
	require.Len(t, prog.Stmts, 1)
}

func TestParseEmpty(t *testing.T) {
	prog := mustParse(t, "")
	assert.Empty(t, prog.Stmts)

	prog = mustParse(t, "OPENQASM 2.0;")
	assert.Equal(t, "2.0", prog.Version)
	assert.Empty(t, prog.Stmts)
}

func TestParseConditional(t *testing.T) {
	tests := []struct {
		src   string
		param string
	}{
		{"if(c==1) rz(pi/2) q[1];", "pi/2"},
		{"if (c == 1) rz(pi / 2) q[1];", "pi / 2"},
		{"if ( c==1 )\n\trz( pi/2 ) q[1] ;", "pi/2"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog := mustParse(t, "qreg q[2]; creg c[2];\n"+tt.src)
			require.Len(t, prog.Stmts, 3)

			s, ok := prog.Stmts[2].(*IfStmt)
			require.True(t, ok, "got %T", prog.Stmts[2])
			assert.Equal(t, "c", s.Creg)
			assert.Equal(t, 1, s.Value)

			call, ok := s.Then.(*GateCall)
			require.True(t, ok, "got %T", s.Then)
			assert.Equal(t, "rz", call.Name)
			assert.Equal(t, []string{tt.param}, call.Params)
			assert.Equal(t, "q[1]", argsString(call.Args))
		})
	}
}

func TestParseConditionalBody(t *testing.T) {
	prog := mustParse(t, `
if(c==0) measure q[0] -> c[0];
if(c==3) reset q;
if(c==2) barrier q;
`)
	require.Len(t, prog.Stmts, 3)

	_, ok := prog.Stmts[0].(*IfStmt).Then.(*MeasureStmt)
	assert.True(t, ok)
	_, ok = prog.Stmts[1].(*IfStmt).Then.(*ResetStmt)
	assert.True(t, ok)
	_, ok = prog.Stmts[2].(*IfStmt).Then.(*BarrierStmt)
	assert.True(t, ok)
}

func TestParseGateDecl(t *testing.T) {
	prog := mustParse(t, `
gate cu1(lambda) a,b
{
  u1(lambda/2) a;
  cx a,b;
  u1(-lambda/2) b;
  cx a,b;
  u1(lambda/2) b;
}
gate noop q { }
gate g() a { }
`)
	require.Len(t, prog.Stmts, 3)

	cu1 := prog.Stmts[0].(*GateDecl)
	assert.Equal(t, "cu1", cu1.Name)
	assert.Equal(t, []string{"lambda"}, cu1.Params)
	assert.Equal(t, []string{"a", "b"}, cu1.Qubits)
	require.Len(t, cu1.Body, 5)
	assert.Equal(t, []string{"-lambda/2"}, cu1.Body[2].Params)
	assert.Equal(t, "a, b", argsString(cu1.Body[1].Args))

	noop := prog.Stmts[1].(*GateDecl)
	assert.Equal(t, "noop", noop.Name)
	assert.Empty(t, noop.Body)

	g := prog.Stmts[2].(*GateDecl)
	assert.Empty(t, g.Params)
}

func TestParseOpaque(t *testing.T) {
	prog := mustParse(t, "opaque magic(a,b) q,r; opaque plain q;")
	require.Len(t, prog.Stmts, 2)

	o := prog.Stmts[0].(*OpaqueDecl)
	assert.Equal(t, "magic", o.Name)
	assert.Equal(t, []string{"a", "b"}, o.Params)
	assert.Equal(t, []string{"q", "r"}, o.Qubits)

	plain := prog.Stmts[1].(*OpaqueDecl)
	assert.Nil(t, plain.Params)
	assert.Equal(t, []string{"q"}, plain.Qubits)
}

func TestParseParams(t *testing.T) {
	tests := []struct {
		call   string
		params []string
	}{
		{"U(0,0,0) q;", []string{"0", "0", "0"}},
		{"u3(pi/2, -pi, 0.5) q;", []string{"pi/2", "-pi", "0.5"}},
		{"rz(sin(pi/4)^2) q;", []string{"sin(pi/4)^2"}},
		{"rz((1+2)*3) q;", []string{"(1+2)*3"}},
		{"rz(1e-3) q;", []string{"1e-3"}},
		{"rz( 2 * pi ) q;", []string{"2 * pi"}},
		{"g() q;", nil},
	}

	for _, tt := range tests {
		t.Run(tt.call, func(t *testing.T) {
			prog, err := ParseString("test", tt.call)
			require.NoError(t, err)
			call := prog.Stmts[0].(*GateCall)
			assert.Equal(t, tt.params, call.Params)
		})
	}
}

func TestParseCommaInsideParens(t *testing.T) {
	perr := parseErr(t, "rz(f(a, b)) q;")
	assert.Equal(t, "')'", perr.Expected)
	assert.Equal(t, "','", perr.Found)
}

func TestParseBarrierReset(t *testing.T) {
	prog := mustParse(t, "barrier q, r[1], s; reset q[0];")
	require.Len(t, prog.Stmts, 2)

	b := prog.Stmts[0].(*BarrierStmt)
	assert.Equal(t, "q, r[1], s", argsString(b.Targets))

	r := prog.Stmts[1].(*ResetStmt)
	assert.Equal(t, &IndexRef{Name: "q", Index: 0}, withoutPos(r.Target))
}

func TestParseWholeRegisterMeasure(t *testing.T) {
	prog := mustParse(t, "measure q -> c;")
	m := prog.Stmts[0].(*MeasureStmt)
	assert.Equal(t, &RegRef{Name: "q"}, withoutPos(m.Src))
	assert.Equal(t, &RegRef{Name: "c"}, withoutPos(m.Dst))
}

func TestParsePositions(t *testing.T) {
	prog := mustParse(t, "qreg q[2];\n  h q[1];")
	assert.Equal(t, "test.qasm:1:1", prog.Stmts[0].Pos().String())

	call := prog.Stmts[1].(*GateCall)
	assert.Equal(t, "test.qasm:2:3", call.Pos().String())
	assert.Equal(t, "test.qasm:2:5", call.Args[0].Pos().String())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		pos      string
		expected string
		found    string
	}{
		{"missing_semi", "qreg q[2]\nh q[0];", "test.qasm:2:1", "';'", "identifier h"},
		{"missing_semi_eof", "qreg q[2]", "test.qasm:1:10", "';'", "EOF"},
		{"bad_size", "qreg q[x];", "test.qasm:1:8", "integer", "identifier x"},
		{"real_size", "qreg q[2.5];", "test.qasm:1:8", "integer", "real 2.5"},
		{"missing_name", "creg [2];", "test.qasm:1:6", "identifier", "'['"},
		{"stray_symbol", "qreg q[1]; ;", "test.qasm:1:12", "statement", "';'"},
		{"include_left", `include "qelib1.inc";`, "test.qasm:1:1", "statement", "'include'"},
		{"measure_arrow", "measure q c;", "test.qasm:1:11", "'->'", "identifier c"},
		{"if_assign", "if (c = 1) x q;", "test.qasm:1:7", "'=='", "'='"},
		{"if_body_decl", "if (c == 1) qreg r[1];", "test.qasm:1:13", "gate application, measure, reset or barrier", "'qreg'"},
		{"gate_body_measure", "gate g a { measure a -> c; }", "test.qasm:1:12", "gate application or '}'", "'measure'"},
		{"gate_unclosed", "gate g a { x a;", "test.qasm:1:16", "'}'", "EOF"},
		{"trailing_comma_param", "u(1,) q;", "test.qasm:1:5", "expression", "')'"},
		{"string_param", `rz("x") q;`, "test.qasm:1:4", "expression", `string "x"`},
		{"unclosed_param", "rz(pi q;", "test.qasm:1:8", "')'", "';'"},
		{"unclosed_nested", "rz((pi) q;", "test.qasm:1:10", "')'", "';'"},
		{"arg_missing", "h ;", "test.qasm:1:3", "identifier", "';'"},
		{"version_int", "OPENQASM 2;", "test.qasm:1:10", "version number", "integer 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perr := parseErr(t, tt.src)
			assert.Equal(t, tt.pos, perr.Pos.String())
			assert.Equal(t, tt.expected, perr.Expected)
			assert.Equal(t, tt.found, perr.Found)
			assert.Equal(t, tt.pos+": expected "+tt.expected+", found "+tt.found, perr.Error())
		})
	}
}

func TestParseUnsupportedVersion(t *testing.T) {
	perr := parseErr(t, "OPENQASM 3.0;\nqreg q[1];")
	assert.Equal(t, "test.qasm:1:10", perr.Pos.String())
	assert.Equal(t, "unsupported OpenQASM version 3.0", perr.Msg)
	assert.Equal(t, "test.qasm:1:10: unsupported OpenQASM version 3.0", perr.Error())

	prog := mustParse(t, "OPENQASM 2.1;")
	assert.Equal(t, "2.1", prog.Version)
}

func TestParseIntegerOutOfRange(t *testing.T) {
	perr := parseErr(t, "qreg q[99999999999999999999999];")
	assert.Equal(t, "integer literal 99999999999999999999999 out of range", perr.Msg)
}

func TestParseFirstErrorWins(t *testing.T) {
	// Both lines are malformed; only the first is reported.
	perr := parseErr(t, "qreg q[2]\ncreg c 2;")
	assert.Equal(t, "test.qasm:2:1", perr.Pos.String())
}

func TestParseLexErrorPassesThrough(t *testing.T) {
	prog, err := ParseString("test.qasm", "qreg q[2]; @")
	require.Error(t, err)
	assert.Nil(t, prog)

	var lexErr *LexError
	assert.ErrorAs(t, err, &lexErr)
}

func TestParseTokensWithoutEOF(t *testing.T) {
	toks, err := Tokenize("test", "qreg q[1];")
	require.NoError(t, err)

	stmts, err := Parse(toks[:len(toks)-1])
	require.NoError(t, err)
	assert.Len(t, stmts, 1)

	_, err = Parse(toks[:3])
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "EOF", perr.Found)
}

func TestParseIndependentParsers(t *testing.T) {
	toks, err := Tokenize("test", "qreg q[1]; h q[0];")
	require.NoError(t, err)

	a, err := ParseProgram(toks)
	require.NoError(t, err)
	b, err := ParseProgram(toks)
	require.NoError(t, err)
	assert.Equal(t, len(a.Stmts), len(b.Stmts))
	assert.NotSame(t, a.Stmts[0], b.Stmts[0])
}
