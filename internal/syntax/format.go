package syntax

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Format writes prog back out as canonical OpenQASM source. Parameter
// expressions are emitted exactly as they were captured, so parsing the
// output yields an equivalent program.
func Format(w io.Writer, prog *Program) error {
	bw := bufio.NewWriter(w)
	if prog.Version != "" {
		fmt.Fprintf(bw, "OPENQASM %s;\n", prog.Version)
	}
	for _, s := range prog.Stmts {
		formatStmt(bw, s, "")
	}
	return bw.Flush()
}

func formatStmt(w *bufio.Writer, s Stmt, indent string) {
	w.WriteString(indent)

	switch s := s.(type) {
	case *QRegDecl:
		fmt.Fprintf(w, "qreg %s[%d];\n", s.Name, s.Size)

	case *CRegDecl:
		fmt.Fprintf(w, "creg %s[%d];\n", s.Name, s.Size)

	case *GateDecl:
		fmt.Fprintf(w, "gate %s%s %s\n", s.Name, formatParams(s.Params), strings.Join(s.Qubits, ","))
		w.WriteString(indent + "{\n")
		for _, c := range s.Body {
			formatStmt(w, c, indent+"  ")
		}
		w.WriteString(indent + "}\n")

	case *OpaqueDecl:
		fmt.Fprintf(w, "opaque %s%s %s;\n", s.Name, formatParams(s.Params), strings.Join(s.Qubits, ","))

	case *GateCall:
		fmt.Fprintf(w, "%s%s %s;\n", s.Name, formatParams(s.Params), argsString(s.Args))

	case *MeasureStmt:
		fmt.Fprintf(w, "measure %s -> %s;\n", s.Src, s.Dst)

	case *ResetStmt:
		fmt.Fprintf(w, "reset %s;\n", s.Target)

	case *BarrierStmt:
		fmt.Fprintf(w, "barrier %s;\n", argsString(s.Targets))

	case *IfStmt:
		fmt.Fprintf(w, "if(%s==%d) ", s.Creg, s.Value)
		formatStmt(w, s.Then, "")

	default:
		panic(fmt.Sprintf("syntax.Format: unexpected statement type %T", s))
	}
}

func formatParams(params []string) string {
	if len(params) == 0 {
		return ""
	}
	return "(" + strings.Join(params, ",") + ")"
}
