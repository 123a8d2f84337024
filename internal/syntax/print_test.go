package syntax

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sampleSource = `OPENQASM 2.0;
gate cu1(lambda) a,b { u1(lambda/2) a; cx a,b; }
opaque magic q;
qreg q[2];
creg c[2];
cu1(pi / 4) q[0],q[1];
barrier q;
reset q[1];
measure q -> c;
if(c==1) U(0, 0, pi) q[0];
`

func TestFormat(t *testing.T) {
	prog := mustParse(t, sampleSource)

	var buf bytes.Buffer
	require.NoError(t, Format(&buf, prog))

	want := `OPENQASM 2.0;
gate cu1(lambda) a,b
{
  u1(lambda/2) a;
  cx a, b;
}
opaque magic q;
qreg q[2];
creg c[2];
cu1(pi / 4) q[0], q[1];
barrier q;
reset q[1];
measure q -> c;
if(c==1) U(0,0,pi) q[0];
`
	assert.Equal(t, want, buf.String())
}

func TestFormatRoundTrip(t *testing.T) {
	prog := mustParse(t, sampleSource)

	var first bytes.Buffer
	require.NoError(t, Format(&first, prog))

	again := mustParse(t, first.String())
	var second bytes.Buffer
	require.NoError(t, Format(&second, again))

	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, len(prog.Stmts), len(again.Stmts))
}

func TestFormatNoVersion(t *testing.T) {
	prog := mustParse(t, "qreg q[1];")

	var buf bytes.Buffer
	require.NoError(t, Format(&buf, prog))
	assert.Equal(t, "qreg q[1];\n", buf.String())
}

func TestFprint(t *testing.T) {
	prog := mustParse(t, "qreg q[2];\nrz(pi/2) q[0];\nif(c==1) x q[1];")

	var buf bytes.Buffer
	Fprint(&buf, prog)

	want := `Program test.qasm:1:1
  QRegDecl test.qasm:1:1 q[2]
  GateCall test.qasm:2:1 rz
    Params: "pi/2"
    Args: q[0]
  IfStmt test.qasm:3:1 c == 1
    GateCall test.qasm:3:10 x
      Args: q[1]
`
	assert.Equal(t, want, buf.String())
}

func TestFprintExpr(t *testing.T) {
	x, err := ParseExpr("-sin(a)")
	require.NoError(t, err)

	var buf bytes.Buffer
	Fprint(&buf, x)

	want := `UnaryOp 1:1 -
  CallExpr 1:2 sin
    Name 1:6 "a"
`
	assert.Equal(t, want, buf.String())
}

func TestFprintJSON(t *testing.T) {
	prog := mustParse(t, "OPENQASM 2.0;\nqreg q[1];\nh q[0];\nmeasure q[0] -> c[0];")

	var buf bytes.Buffer
	require.NoError(t, FprintJSON(&buf, prog))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "Program", doc["type"])
	assert.Equal(t, "2.0", doc["version"])

	stmts := doc["stmts"].([]interface{})
	require.Len(t, stmts, 3)

	call := stmts[1].(map[string]interface{})
	assert.Equal(t, "GateCall", call["type"])
	assert.Equal(t, "h", call["name"])
	assert.Equal(t, []interface{}{}, call["params"])

	args := call["args"].([]interface{})
	require.Len(t, args, 1)
	arg := args[0].(map[string]interface{})
	assert.Equal(t, "IndexRef", arg["type"])
	assert.Equal(t, float64(0), arg["index"])

	m := stmts[2].(map[string]interface{})
	assert.Equal(t, "MeasureStmt", m["type"])
	assert.Equal(t, "c", m["dst"].(map[string]interface{})["name"])
}

func TestFprintYAML(t *testing.T) {
	prog := mustParse(t, "qreg q[3];")

	var buf bytes.Buffer
	require.NoError(t, FprintYAML(&buf, prog))
	assert.Contains(t, buf.String(), "type: Program")

	var doc struct {
		Type  string `yaml:"type"`
		Stmts []struct {
			Type string `yaml:"type"`
			Name string `yaml:"name"`
			Size int    `yaml:"size"`
		} `yaml:"stmts"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "Program", doc.Type)
	require.Len(t, doc.Stmts, 1)
	assert.Equal(t, "QRegDecl", doc.Stmts[0].Type)
	assert.Equal(t, "q", doc.Stmts[0].Name)
	assert.Equal(t, 3, doc.Stmts[0].Size)
}

func TestWalk(t *testing.T) {
	prog := mustParse(t, sampleSource)

	var kinds []string
	Walk(prog, func(n Node) bool {
		switch n.(type) {
		case *GateDecl:
			kinds = append(kinds, "gate")
			return false // skip the body
		case *GateCall:
			kinds = append(kinds, "call")
		case *IfStmt:
			kinds = append(kinds, "if")
		case *IndexRef, *RegRef:
			kinds = append(kinds, "arg")
		}
		return true
	})

	assert.Equal(t, []string{
		"gate",
		"call", "arg", "arg", // cu1
		"arg",        // barrier
		"arg",        // reset
		"arg", "arg", // measure
		"if", "call", "arg",
	}, kinds)
}

func TestInspect(t *testing.T) {
	prog := mustParse(t, sampleSource)

	calls := 0
	Inspect(prog, func(s Stmt) {
		if _, ok := s.(*GateCall); ok {
			calls++
		}
	})
	// two in the gate body, one top level, one under if
	assert.Equal(t, 4, calls)
}
