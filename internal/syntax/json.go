package syntax

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

// FprintYAML writes the same document as FprintJSON in YAML.
func FprintYAML(w io.Writer, node Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toJSON(node)); err != nil {
		return err
	}
	return enc.Close()
}

func toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Program:
		m := map[string]interface{}{
			"type":  "Program",
			"pos":   n.pos.String(),
			"stmts": mapSlice(n.Stmts, func(s Stmt) interface{} { return toJSON(s) }),
		}
		if n.Version != "" {
			m["version"] = n.Version
		}
		return m

	case *QRegDecl:
		return map[string]interface{}{
			"type": "QRegDecl",
			"pos":  n.pos.String(),
			"name": n.Name,
			"size": n.Size,
		}

	case *CRegDecl:
		return map[string]interface{}{
			"type": "CRegDecl",
			"pos":  n.pos.String(),
			"name": n.Name,
			"size": n.Size,
		}

	case *GateDecl:
		return map[string]interface{}{
			"type":   "GateDecl",
			"pos":    n.pos.String(),
			"name":   n.Name,
			"params": stringSlice(n.Params),
			"qubits": stringSlice(n.Qubits),
			"body":   mapSlice(n.Body, func(c *GateCall) interface{} { return toJSON(c) }),
		}

	case *OpaqueDecl:
		return map[string]interface{}{
			"type":   "OpaqueDecl",
			"pos":    n.pos.String(),
			"name":   n.Name,
			"params": stringSlice(n.Params),
			"qubits": stringSlice(n.Qubits),
		}

	case *GateCall:
		return map[string]interface{}{
			"type":   "GateCall",
			"pos":    n.pos.String(),
			"name":   n.Name,
			"params": stringSlice(n.Params),
			"args":   mapSlice(n.Args, func(a Arg) interface{} { return toJSON(a) }),
		}

	case *MeasureStmt:
		return map[string]interface{}{
			"type": "MeasureStmt",
			"pos":  n.pos.String(),
			"src":  toJSON(n.Src),
			"dst":  toJSON(n.Dst),
		}

	case *ResetStmt:
		return map[string]interface{}{
			"type":   "ResetStmt",
			"pos":    n.pos.String(),
			"target": toJSON(n.Target),
		}

	case *BarrierStmt:
		return map[string]interface{}{
			"type":    "BarrierStmt",
			"pos":     n.pos.String(),
			"targets": mapSlice(n.Targets, func(a Arg) interface{} { return toJSON(a) }),
		}

	case *IfStmt:
		return map[string]interface{}{
			"type":  "IfStmt",
			"pos":   n.pos.String(),
			"creg":  n.Creg,
			"value": n.Value,
			"then":  toJSON(n.Then),
		}

	case *RegRef:
		return map[string]interface{}{
			"type": "RegRef",
			"pos":  n.pos.String(),
			"name": n.Name,
		}

	case *IndexRef:
		return map[string]interface{}{
			"type":  "IndexRef",
			"pos":   n.pos.String(),
			"name":  n.Name,
			"index": n.Index,
		}

	case *Name:
		return map[string]interface{}{
			"type":  "Name",
			"pos":   n.pos.String(),
			"value": n.Value,
		}

	case *BasicLit:
		return map[string]interface{}{
			"type":  "BasicLit",
			"pos":   n.pos.String(),
			"kind":  n.Kind.String(),
			"value": n.Value,
		}

	case *Operation:
		m := map[string]interface{}{
			"type": "Operation",
			"pos":  n.pos.String(),
			"op":   n.Op.String(),
			"x":    toJSON(n.X),
		}
		if n.Y != nil {
			m["y"] = toJSON(n.Y)
		}
		return m

	case *CallExpr:
		return map[string]interface{}{
			"type": "CallExpr",
			"pos":  n.pos.String(),
			"fun":  n.Fun.Value,
			"arg":  toJSON(n.Arg),
		}

	case *ParenExpr:
		return map[string]interface{}{
			"type": "ParenExpr",
			"pos":  n.pos.String(),
			"x":    toJSON(n.X),
		}

	default:
		return map[string]interface{}{
			"type": "Unknown",
		}
	}
}

// Helper functions to map slices

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}

// stringSlice keeps empty lists as [] rather than null.
func stringSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
