package check

import (
	"github.com/you-not-fish/qasm/internal/syntax"
)

// params checks the parameter expressions of a call. They must parse and
// may only use pi, the predeclared functions and, inside a gate body, the
// gate's own parameters.
func (c *Checker) params(call *syntax.GateCall) {
	for _, text := range call.Params {
		x, err := syntax.ParseExpr(text)
		if err != nil {
			c.errorf(call.Pos(), "invalid parameter %q in call to %s: %v", text, call.Name, err)
			continue
		}
		c.expr(call.Pos(), x)
	}
}

func (c *Checker) expr(pos syntax.Pos, x syntax.Expr) {
	switch x := x.(type) {
	case *syntax.Name:
		c.paramName(pos, x.Value)

	case *syntax.BasicLit:
		// ok

	case *syntax.Operation:
		c.expr(pos, x.X)
		if x.Y != nil {
			c.expr(pos, x.Y)
		}

	case *syntax.CallExpr:
		if _, ok := Universe.Lookup(x.Fun.Value).(*Func); !ok {
			c.errorf(pos, "unknown function %s", x.Fun.Value)
		}
		c.expr(pos, x.Arg)

	case *syntax.ParenExpr:
		c.expr(pos, x.X)

	default:
		c.errorf(pos, "invalid AST: unexpected expression %T", x)
	}
}

func (c *Checker) paramName(pos syntax.Pos, name string) {
	if c.scope != nil {
		if f, ok := c.scope.Lookup(name).(*Formal); ok {
			if f.Kind == Qubit {
				c.errorf(pos, "qubit %s used as a parameter", name)
			}
			return
		}
	}
	if _, ok := Universe.Lookup(name).(*Const); ok {
		return
	}

	if c.gate != nil {
		c.errorf(pos, "undefined parameter %s in gate %s", name, c.gate.Name())
	} else {
		c.errorf(pos, "undefined identifier %s", name)
	}
}
