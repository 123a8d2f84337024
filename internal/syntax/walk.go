package syntax

import "fmt"

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *QRegDecl, *CRegDecl, *OpaqueDecl:
		// leaves

	case *GateDecl:
		for _, c := range n.Body {
			Walk(c, v)
		}

	case *GateCall:
		for _, a := range n.Args {
			Walk(a, v)
		}

	case *MeasureStmt:
		Walk(n.Src, v)
		Walk(n.Dst, v)

	case *ResetStmt:
		Walk(n.Target, v)

	case *BarrierStmt:
		for _, a := range n.Targets {
			Walk(a, v)
		}

	case *IfStmt:
		Walk(n.Then, v)

	case *RegRef, *IndexRef:
		// leaves

	case *Name, *BasicLit:
		// leaves

	case *Operation:
		Walk(n.X, v)
		if n.Y != nil {
			Walk(n.Y, v)
		}

	case *CallExpr:
		Walk(n.Fun, v)
		Walk(n.Arg, v)

	case *ParenExpr:
		Walk(n.X, v)

	default:
		panic(fmt.Sprintf("syntax.Walk: unexpected node type %T", n))
	}
}

// Inspect calls f for each statement of prog, descending into gate bodies
// and conditionals. It is a convenience over Walk for statement consumers.
func Inspect(prog *Program, f func(Stmt)) {
	Walk(prog, func(n Node) bool {
		if s, ok := n.(Stmt); ok {
			f(s)
		}
		return true
	})
}
