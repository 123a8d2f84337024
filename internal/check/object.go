package check

import (
	"fmt"

	"github.com/you-not-fish/qasm/internal/syntax"
)

// Object is a declared entity: a register, a gate, a formal argument of a
// gate, or a predeclared name.
type Object interface {
	Name() string    // object name
	Pos() syntax.Pos // declaration position, invalid for predeclared objects
	Parent() *Scope  // enclosing scope
	String() string

	setParent(*Scope)
	aObject()
}

// object is the base struct for all objects.
type object struct {
	name   string
	pos    syntax.Pos
	parent *Scope
}

func (o *object) Name() string       { return o.name }
func (o *object) Pos() syntax.Pos    { return o.pos }
func (o *object) Parent() *Scope     { return o.parent }
func (o *object) setParent(s *Scope) { o.parent = s }
func (*object) aObject()             {}

// RegKind distinguishes quantum from classical registers.
type RegKind uint8

const (
	Quantum RegKind = iota
	Classical
)

func (k RegKind) String() string {
	if k == Quantum {
		return "qreg"
	}
	return "creg"
}

// Register is a declared qreg or creg.
type Register struct {
	object
	Kind RegKind
	Size int
}

// NewRegister creates a register object.
func NewRegister(pos syntax.Pos, name string, kind RegKind, size int) *Register {
	return &Register{object: object{name: name, pos: pos}, Kind: kind, Size: size}
}

func (r *Register) String() string {
	return fmt.Sprintf("%s %s[%d]", r.Kind, r.name, r.Size)
}

// Gate is a gate definition, an opaque gate or one of the builtins U and CX.
type Gate struct {
	object
	Params  []string
	Qubits  []string
	Opaque  bool
	Builtin bool
}

// NewGate creates a gate object.
func NewGate(pos syntax.Pos, name string, params, qubits []string) *Gate {
	return &Gate{object: object{name: name, pos: pos}, Params: params, Qubits: qubits}
}

func (g *Gate) String() string {
	kind := "gate"
	switch {
	case g.Builtin:
		kind = "builtin gate"
	case g.Opaque:
		kind = "opaque gate"
	}
	return fmt.Sprintf("%s %s(%d) %d", kind, g.name, len(g.Params), len(g.Qubits))
}

// FormalKind distinguishes the two argument lists of a gate.
type FormalKind uint8

const (
	Param FormalKind = iota
	Qubit
)

// Formal is a parameter or qubit argument, visible inside one gate body.
type Formal struct {
	object
	Kind FormalKind
}

// NewFormal creates a formal argument object.
func NewFormal(pos syntax.Pos, name string, kind FormalKind) *Formal {
	return &Formal{object: object{name: name, pos: pos}, Kind: kind}
}

func (f *Formal) String() string {
	if f.Kind == Param {
		return "param " + f.name
	}
	return "qubit " + f.name
}

// Const is a predeclared constant (pi).
type Const struct {
	object
}

func (c *Const) String() string { return "const " + c.name }

// Func is a predeclared unary function usable in parameter expressions.
type Func struct {
	object
}

func (f *Func) String() string { return "func " + f.name }
