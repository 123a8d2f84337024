package syntax

import "strconv"

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 3 classes of nodes: Statements, Arguments (register references)
// and Expressions. Each set is closed: the marker methods are unexported, so
// consumers can switch exhaustively over the types declared in this file.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of first character belonging to the node
	aNode()   // marker method to restrict implementations to this package
}

// Stmt is the interface for all top-level statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// Arg is a qubit or bit target: either a whole register or one element of it.
type Arg interface {
	Node
	RegName() string
	String() string
	aArg()
}

// Expr is the interface for typed parameter expressions (see ParseExpr).
type Expr interface {
	Node
	aExpr()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

type stmt struct{ node }

func (*stmt) aStmt() {}

type arg struct{ node }

func (*arg) aArg() {}

type expr struct{ node }

func (*expr) aExpr() {}

// ----------------------------------------------------------------------------
// Program

// Program is the result of parsing one expanded source.
type Program struct {
	node
	Version string // version from the OPENQASM header, "" if absent
	Stmts   []Stmt // top-level statements in source order
}

// ----------------------------------------------------------------------------
// Declarations

// QRegDecl declares a quantum register: qreg Name[Size];
type QRegDecl struct {
	stmt
	Name string
	Size int
}

// CRegDecl declares a classical register: creg Name[Size];
type CRegDecl struct {
	stmt
	Name string
	Size int
}

// GateDecl defines a gate: gate Name(Params) Qubits { Body }
type GateDecl struct {
	stmt
	Name   string
	Params []string    // formal parameter names, possibly empty
	Qubits []string    // formal qubit argument names
	Body   []*GateCall // applications in the body, possibly empty
}

// OpaqueDecl declares a gate without a body: opaque Name(Params) Qubits;
type OpaqueDecl struct {
	stmt
	Name   string
	Params []string
	Qubits []string
}

// ----------------------------------------------------------------------------
// Quantum operations

// GateCall applies a gate: Name(Params) Args;
// Params holds the unevaluated expression text exactly as written.
type GateCall struct {
	stmt
	Name   string
	Args   []Arg
	Params []string
}

// MeasureStmt represents: measure Src -> Dst;
type MeasureStmt struct {
	stmt
	Src Arg // qubit side
	Dst Arg // bit side
}

// ResetStmt represents: reset Target;
type ResetStmt struct {
	stmt
	Target Arg
}

// BarrierStmt represents: barrier Targets;
type BarrierStmt struct {
	stmt
	Targets []Arg
}

// IfStmt represents: if (Creg == Value) Then
// Then is a *GateCall, *MeasureStmt, *ResetStmt or *BarrierStmt.
type IfStmt struct {
	stmt
	Creg  string
	Value int
	Then  Stmt
}

// ----------------------------------------------------------------------------
// Arguments

// RegRef refers to a whole register: q
type RegRef struct {
	arg
	Name string
}

func (r *RegRef) RegName() string { return r.Name }
func (r *RegRef) String() string  { return r.Name }

// IndexRef refers to one element of a register: q[Index]
type IndexRef struct {
	arg
	Name  string
	Index int
}

func (r *IndexRef) RegName() string { return r.Name }
func (r *IndexRef) String() string  { return r.Name + "[" + strconv.Itoa(r.Index) + "]" }

// ----------------------------------------------------------------------------
// Expressions

// Name represents an identifier: pi, theta, sin
type Name struct {
	expr
	Value string
}

// BasicLit represents an int or real literal.
type BasicLit struct {
	expr
	Value string  // literal text
	Kind  LitKind // IntLit or RealLit
}

// Operation represents a unary or binary operation.
// For unary operations, Y is nil.
type Operation struct {
	expr
	Op Token // Add, Sub, Mul, Div or Pow
	X  Expr
	Y  Expr
}

// CallExpr represents a unary function application: sin(X)
type CallExpr struct {
	expr
	Fun *Name
	Arg Expr
}

// ParenExpr represents a parenthesized expression: (X)
type ParenExpr struct {
	expr
	X Expr
}
