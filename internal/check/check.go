package check

import (
	"github.com/you-not-fish/qasm/internal/syntax"
)

// Checker holds the state of one Check call.
type Checker struct {
	conf *Config
	info *Info

	// Gate body context; nil at top level.
	gate  *Gate
	scope *Scope

	// Error tracking
	errors int    // error count
	first  *Error // first error
}

// checkProgram checks the statements of prog in order. Declarations take
// effect at the point they appear.
func (c *Checker) checkProgram(prog *syntax.Program) {
	for _, s := range prog.Stmts {
		c.stmt(s)
	}
}

func (c *Checker) stmt(s syntax.Stmt) {
	switch s := s.(type) {
	case *syntax.QRegDecl:
		c.regDecl(s.Pos(), s.Name, Quantum, s.Size)

	case *syntax.CRegDecl:
		c.regDecl(s.Pos(), s.Name, Classical, s.Size)

	case *syntax.GateDecl:
		c.gateDecl(s)

	case *syntax.OpaqueDecl:
		g := NewGate(s.Pos(), s.Name, s.Params, s.Qubits)
		g.Opaque = true
		c.formals(g)
		c.declareGate(g)

	case *syntax.GateCall:
		c.gateCall(s)

	case *syntax.MeasureStmt:
		c.measure(s)

	case *syntax.ResetStmt:
		c.quantumArg(s.Target)

	case *syntax.BarrierStmt:
		for _, a := range s.Targets {
			c.quantumArg(a)
		}

	case *syntax.IfStmt:
		c.ifStmt(s)

	default:
		c.errorf(s.Pos(), "invalid AST: unexpected statement %T", s)
	}
}

// ----------------------------------------------------------------------------
// Declarations

func (c *Checker) regDecl(pos syntax.Pos, name string, kind RegKind, size int) {
	if size <= 0 {
		c.errorf(pos, "register %s must have positive size, got %d", name, size)
	}

	r := NewRegister(pos, name, kind, size)
	scope := c.info.qregs
	if kind == Classical {
		scope = c.info.cregs
	}
	if prev := scope.Insert(r); prev != nil {
		c.errorf(pos, "%s %s redeclared (previous declaration at %s)", kind, name, prev.Pos())
		return
	}
	c.info.Registers = append(c.info.Registers, r)
}

// declareGate adds g to the gate table.
func (c *Checker) declareGate(g *Gate) {
	if prev, _ := c.info.gates.LookupParent(g.Name()); prev != nil {
		if pg, ok := prev.(*Gate); ok && pg.Builtin {
			c.errorf(g.Pos(), "gate %s redeclared (builtin)", g.Name())
		} else if prev.Pos().IsValid() {
			c.errorf(g.Pos(), "gate %s redeclared (previous declaration at %s)", g.Name(), prev.Pos())
		} else {
			c.errorf(g.Pos(), "gate %s redeclared (predeclared %s)", g.Name(), prev)
		}
		return
	}
	c.info.gates.Insert(g)
	c.info.Gates = append(c.info.Gates, g)
}

// formals builds the scope of g's formal arguments, reporting duplicates.
func (c *Checker) formals(g *Gate) *Scope {
	s := NewScope(c.info.gates, "gate "+g.Name())
	for _, name := range g.Params {
		if s.Insert(NewFormal(g.Pos(), name, Param)) != nil {
			c.errorf(g.Pos(), "duplicate argument %s in gate %s", name, g.Name())
		}
	}
	for _, name := range g.Qubits {
		if s.Insert(NewFormal(g.Pos(), name, Qubit)) != nil {
			c.errorf(g.Pos(), "duplicate argument %s in gate %s", name, g.Name())
		}
	}
	return s
}

// gateDecl checks a gate body against its formals. The gate itself is
// declared after its body, so a gate cannot call itself.
func (c *Checker) gateDecl(d *syntax.GateDecl) {
	g := NewGate(d.Pos(), d.Name, d.Params, d.Qubits)
	s := c.formals(g)
	c.info.Scopes[d] = s

	c.gate, c.scope = g, s
	for _, call := range d.Body {
		c.gateCall(call)
	}
	c.gate, c.scope = nil, nil

	c.declareGate(g)
}
