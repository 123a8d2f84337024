package check

import "github.com/you-not-fish/qasm/internal/syntax"

// Config specifies the configuration for checking.
type Config struct {
	// Error is called for each error. If nil, only the first error is
	// reported, through the return value of Check.
	Error ErrorHandler
}

// Info holds the declarations found in a program.
type Info struct {
	// Registers lists qreg and creg declarations in source order.
	Registers []*Register

	// Gates lists gate and opaque declarations in source order.
	// The builtins U and CX are not included; see Universe.
	Gates []*Gate

	// Scopes maps each gate declaration to the scope of its formals.
	Scopes map[*syntax.GateDecl]*Scope

	qregs *Scope
	cregs *Scope
	gates *Scope
}

// Register returns the register of the given kind named name, or nil.
func (info *Info) Register(kind RegKind, name string) *Register {
	s := info.qregs
	if kind == Classical {
		s = info.cregs
	}
	if r, ok := s.Lookup(name).(*Register); ok {
		return r
	}
	return nil
}

// Gate returns the gate named name, including the builtins, or nil.
func (info *Info) Gate(name string) *Gate {
	obj, _ := info.gates.LookupParent(name)
	if g, ok := obj.(*Gate); ok {
		return g
	}
	return nil
}

// NumQubits returns the total size of all quantum registers.
func (info *Info) NumQubits() int {
	return info.sum(Quantum)
}

// NumClbits returns the total size of all classical registers.
func (info *Info) NumClbits() int {
	return info.sum(Classical)
}

func (info *Info) sum(kind RegKind) int {
	n := 0
	for _, r := range info.Registers {
		if r.Kind == kind {
			n += r.Size
		}
	}
	return n
}

// Check checks prog. All errors are passed to conf.Error; the first one
// is returned. Info is returned even when there are errors.
func Check(prog *syntax.Program, conf *Config) (*Info, error) {
	if conf == nil {
		conf = &Config{}
	}

	info := &Info{
		Scopes: make(map[*syntax.GateDecl]*Scope),
		qregs:  NewScope(nil, "qregs"),
		cregs:  NewScope(nil, "cregs"),
		gates:  NewScope(Universe, "gates"),
	}
	c := &Checker{conf: conf, info: info}

	c.checkProgram(prog)

	if c.errors > 0 {
		return info, c.first
	}
	return info, nil
}
