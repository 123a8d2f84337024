package check

import (
	"github.com/you-not-fish/qasm/internal/syntax"
)

// lookupGate resolves the gate named by a call.
func (c *Checker) lookupGate(pos syntax.Pos, name string) *Gate {
	obj, _ := c.info.gates.LookupParent(name)
	if obj == nil {
		c.errorf(pos, "undefined gate %s", name)
		return nil
	}
	g, ok := obj.(*Gate)
	if !ok {
		c.errorf(pos, "%s is not a gate", name)
		return nil
	}
	return g
}

func (c *Checker) gateCall(call *syntax.GateCall) {
	g := c.lookupGate(call.Pos(), call.Name)
	if g != nil {
		if len(call.Params) != len(g.Params) {
			c.errorf(call.Pos(), "gate %s takes %d parameters, got %d", g.Name(), len(g.Params), len(call.Params))
		}
		if len(call.Args) != len(g.Qubits) {
			c.errorf(call.Pos(), "gate %s takes %d qubit arguments, got %d", g.Name(), len(g.Qubits), len(call.Args))
		}
	}

	c.params(call)

	if c.gate != nil {
		c.bodyArgs(call)
	} else {
		c.broadcastArgs(call.Args)
	}
}

// bodyArgs checks the arguments of a call inside a gate body: each must be
// a bare qubit formal, used at most once.
func (c *Checker) bodyArgs(call *syntax.GateCall) {
	seen := make(map[string]bool)
	for _, a := range call.Args {
		ref, ok := a.(*syntax.RegRef)
		if !ok {
			c.errorf(a.Pos(), "indexed argument %s not allowed in gate %s", a, c.gate.Name())
			continue
		}

		f, _ := c.scope.Lookup(ref.Name).(*Formal)
		switch {
		case f == nil:
			c.errorf(a.Pos(), "undefined qubit %s in gate %s", ref.Name, c.gate.Name())
			continue
		case f.Kind == Param:
			c.errorf(a.Pos(), "%s is a parameter of gate %s, not a qubit", ref.Name, c.gate.Name())
			continue
		}

		if seen[ref.Name] {
			c.errorf(a.Pos(), "qubit %s used more than once", ref.Name)
		}
		seen[ref.Name] = true
	}
}

// broadcastArgs checks top-level gate arguments. Whole registers are
// applied element-wise and must agree in size; no qubit may appear twice.
func (c *Checker) broadcastArgs(args []syntax.Arg) {
	var (
		size  = -1
		first *Register
		used  qubitSet
	)
	for _, a := range args {
		r := c.quantumArg(a)
		if r == nil {
			continue
		}

		if _, whole := a.(*syntax.RegRef); whole {
			if size < 0 {
				size, first = r.Size, r
			} else if r.Size != size {
				c.errorf(a.Pos(), "register sizes do not agree: %s has %d qubits, %s has %d", first.Name(), size, r.Name(), r.Size)
			}
		}

		if !used.add(a) {
			c.errorf(a.Pos(), "qubit %s used more than once", a)
		}
	}
}

// quantumArg resolves a reference that must name a quantum register.
func (c *Checker) quantumArg(a syntax.Arg) *Register {
	return c.regArg(a, Quantum)
}

// classicalArg resolves a reference that must name a classical register.
func (c *Checker) classicalArg(a syntax.Arg) *Register {
	return c.regArg(a, Classical)
}

func (c *Checker) regArg(a syntax.Arg, kind RegKind) *Register {
	name := a.RegName()
	r := c.info.Register(kind, name)
	if r == nil {
		other := Quantum
		if kind == Quantum {
			other = Classical
		}
		if c.info.Register(other, name) != nil {
			c.errorf(a.Pos(), "%s is not a %s register", name, kindWord(kind))
		} else {
			c.errorf(a.Pos(), "undefined %s register %s", kindWord(kind), name)
		}
		return nil
	}

	if ix, ok := a.(*syntax.IndexRef); ok && ix.Index >= r.Size {
		c.errorf(a.Pos(), "index %d out of range for %s of size %d", ix.Index, name, r.Size)
		return nil
	}
	return r
}

func kindWord(k RegKind) string {
	if k == Quantum {
		return "quantum"
	}
	return "classical"
}

func (c *Checker) measure(s *syntax.MeasureStmt) {
	src := c.quantumArg(s.Src)
	dst := c.classicalArg(s.Dst)
	if src == nil || dst == nil {
		return
	}

	_, srcWhole := s.Src.(*syntax.RegRef)
	_, dstWhole := s.Dst.(*syntax.RegRef)
	switch {
	case srcWhole != dstWhole:
		c.errorf(s.Pos(), "cannot measure %s into %s", s.Src, s.Dst)
	case srcWhole && src.Size != dst.Size:
		c.errorf(s.Pos(), "measure size mismatch: %s has %d qubits, %s has %d bits", src.Name(), src.Size, dst.Name(), dst.Size)
	}
}

func (c *Checker) ifStmt(s *syntax.IfStmt) {
	if c.info.Register(Classical, s.Creg) == nil {
		if c.info.Register(Quantum, s.Creg) != nil {
			c.errorf(s.Pos(), "%s is not a classical register", s.Creg)
		} else {
			c.errorf(s.Pos(), "undefined classical register %s", s.Creg)
		}
	}
	c.stmt(s.Then)
}

// qubitSet records which qubits a single statement touches.
type qubitSet struct {
	whole map[string]bool
	bits  map[string]map[int]bool
}

// add records a and reports whether it is disjoint from everything
// recorded before.
func (s *qubitSet) add(a syntax.Arg) bool {
	if s.whole == nil {
		s.whole = make(map[string]bool)
		s.bits = make(map[string]map[int]bool)
	}

	name := a.RegName()
	if s.whole[name] {
		return false
	}

	switch a := a.(type) {
	case *syntax.RegRef:
		s.whole[name] = true
		return len(s.bits[name]) == 0

	case *syntax.IndexRef:
		if s.bits[name] == nil {
			s.bits[name] = make(map[int]bool)
		}
		if s.bits[name][a.Index] {
			return false
		}
		s.bits[name][a.Index] = true
	}
	return true
}
