package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the AST to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		p.printf("Program %s\n", n.pos)
		p.indent++
		if n.Version != "" {
			p.printf("Version: %s\n", n.Version)
		}
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *QRegDecl:
		p.printf("QRegDecl %s %s[%d]\n", n.pos, n.Name, n.Size)

	case *CRegDecl:
		p.printf("CRegDecl %s %s[%d]\n", n.pos, n.Name, n.Size)

	case *GateDecl:
		p.printf("GateDecl %s\n", n.pos)
		p.indent++
		p.printf("Name: %s\n", n.Name)
		if len(n.Params) > 0 {
			p.printf("Params: %s\n", strings.Join(n.Params, ", "))
		}
		p.printf("Qubits: %s\n", strings.Join(n.Qubits, ", "))
		if len(n.Body) > 0 {
			p.printf("Body:\n")
			p.indent++
			for _, c := range n.Body {
				p.print(c)
			}
			p.indent--
		}
		p.indent--

	case *OpaqueDecl:
		p.printf("OpaqueDecl %s\n", n.pos)
		p.indent++
		p.printf("Name: %s\n", n.Name)
		if len(n.Params) > 0 {
			p.printf("Params: %s\n", strings.Join(n.Params, ", "))
		}
		p.printf("Qubits: %s\n", strings.Join(n.Qubits, ", "))
		p.indent--

	case *GateCall:
		p.printf("GateCall %s %s\n", n.pos, n.Name)
		p.indent++
		if len(n.Params) > 0 {
			p.printf("Params: %s\n", quoteAll(n.Params))
		}
		p.printf("Args: %s\n", argsString(n.Args))
		p.indent--

	case *MeasureStmt:
		p.printf("MeasureStmt %s %s -> %s\n", n.pos, n.Src, n.Dst)

	case *ResetStmt:
		p.printf("ResetStmt %s %s\n", n.pos, n.Target)

	case *BarrierStmt:
		p.printf("BarrierStmt %s %s\n", n.pos, argsString(n.Targets))

	case *IfStmt:
		p.printf("IfStmt %s %s == %d\n", n.pos, n.Creg, n.Value)
		p.indent++
		p.print(n.Then)
		p.indent--

	case *RegRef:
		p.printf("RegRef %s %s\n", n.pos, n.Name)

	case *IndexRef:
		p.printf("IndexRef %s %s[%d]\n", n.pos, n.Name, n.Index)

	case *Name:
		p.printf("Name %s %q\n", n.pos, n.Value)

	case *BasicLit:
		p.printf("BasicLit %s %s %q\n", n.pos, n.Kind, n.Value)

	case *Operation:
		if n.Y == nil {
			p.printf("UnaryOp %s %s\n", n.pos, n.Op)
			p.indent++
			p.print(n.X)
			p.indent--
		} else {
			p.printf("BinaryOp %s %s\n", n.pos, n.Op)
			p.indent++
			p.printf("X:\n")
			p.indent++
			p.print(n.X)
			p.indent--
			p.printf("Y:\n")
			p.indent++
			p.print(n.Y)
			p.indent--
			p.indent--
		}

	case *CallExpr:
		p.printf("CallExpr %s %s\n", n.pos, n.Fun.Value)
		p.indent++
		p.print(n.Arg)
		p.indent--

	case *ParenExpr:
		p.printf("ParenExpr %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	default:
		p.printf("<%T>\n", node)
	}
}

// argsString joins register references the way they are written in source.
func argsString(args []Arg) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}

func quoteAll(list []string) string {
	parts := make([]string, len(list))
	for i, s := range list {
		parts[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(parts, ", ")
}
