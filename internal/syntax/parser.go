package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

// Maximum number of errors before aborting parse. Parsing is fail-fast:
// the first error ends it and no partial program is returned.
const maxErrors = 1

// Parser performs syntax analysis on a lexeme stream.
// A Parser is not safe for concurrent use; independent Parsers are.
type Parser struct {
	toks []Lexeme
	idx  int

	// Current token info (cached from toks[idx])
	cur Lexeme
	tok Token
	lit string
	pos Pos

	// Error handling
	errcnt int
	first  *ParseError // first error encountered
	abort  bool        // set to true when error limit reached
}

// NewParser creates a new Parser for toks. A trailing EOF lexeme is
// optional; running off the end of toks behaves like reading one.
func NewParser(toks []Lexeme) *Parser {
	p := &Parser{toks: toks, idx: -1}
	p.next() // prime the parser with first token
	return p
}

// ----------------------------------------------------------------------------
// Token navigation

// next advances to the next token.
func (p *Parser) next() {
	if p.abort {
		p.tok = _EOF
		return
	}
	if p.idx+1 < len(p.toks) {
		p.idx++
		p.cur = p.toks[p.idx]
	} else {
		eof := Lexeme{Tok: _EOF, Index: len(p.toks)}
		if n := len(p.toks); n > 0 {
			eof.Pos = p.toks[n-1].Pos
		}
		p.cur = eof
	}
	p.tok = p.cur.Tok
	p.lit = p.cur.Lit
	p.pos = p.cur.Pos
}

// got reports whether the current token is tok.
// If so, it consumes the token and returns true.
func (p *Parser) got(tok Token) bool {
	if p.tok == tok {
		p.next()
		return true
	}
	return false
}

// want consumes the current token if it matches tok.
// Otherwise, reports an error.
func (p *Parser) want(tok Token) {
	if !p.got(tok) {
		p.expected("'" + tok.String() + "'")
	}
}

// ----------------------------------------------------------------------------
// Error handling

// expected reports that the current token is not in the described set.
func (p *Parser) expected(what string) {
	p.report(&ParseError{Pos: p.pos, Expected: what, Found: p.cur.describe()})
}

// errorf reports a syntax error that is not a token mismatch.
func (p *Parser) errorf(pos Pos, format string, args ...interface{}) {
	p.report(&ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

func (p *Parser) report(err *ParseError) {
	if p.abort {
		return
	}
	if p.errcnt == 0 {
		p.first = err
	}
	p.errcnt++
	p.errorLimitCheck()
}

// errorLimitCheck aborts parsing once the error limit is reached.
func (p *Parser) errorLimitCheck() {
	if p.errcnt >= maxErrors {
		p.abort = true
		p.tok = _EOF
	}
}

// Err returns the first error encountered, or nil if none.
func (p *Parser) Err() error {
	if p.first == nil {
		return nil
	}
	return p.first
}

// ----------------------------------------------------------------------------
// Parsing entry points

// Parse parses the whole lexeme stream.
func (p *Parser) Parse() (*Program, error) {
	prog := &Program{}
	prog.pos = p.pos

	if p.tok == _OpenQASM {
		prog.Version = p.version()
	}

	for !p.abort && p.tok != _EOF {
		if s := p.stmt(); s != nil {
			prog.Stmts = append(prog.Stmts, s)
		}
	}

	if p.first != nil {
		return nil, p.first
	}
	return prog, nil
}

// ParseProgram parses toks into a Program.
func ParseProgram(toks []Lexeme) (*Program, error) {
	return NewParser(toks).Parse()
}

// Parse parses toks and returns the top-level statements in program order.
func Parse(toks []Lexeme) ([]Stmt, error) {
	prog, err := ParseProgram(toks)
	if err != nil {
		return nil, err
	}
	return prog.Stmts, nil
}

// ParseString tokenizes and parses already expanded source text.
func ParseString(filename, src string) (*Program, error) {
	toks, err := Tokenize(filename, src)
	if err != nil {
		return nil, err
	}
	return ParseProgram(toks)
}

// ----------------------------------------------------------------------------
// Helper methods

// name parses an identifier.
func (p *Parser) name() string {
	if p.tok != _Name {
		p.expected("identifier")
		return "_"
	}
	name := p.lit
	p.next()
	return name
}

// intLit parses a non-negative integer literal.
func (p *Parser) intLit() int {
	if p.tok != _Literal || p.cur.Kind != IntLit {
		p.expected("integer")
		return 0
	}
	n, err := strconv.Atoi(p.lit)
	if err != nil {
		p.errorf(p.pos, "integer literal %s out of range", p.lit)
		return 0
	}
	p.next()
	return n
}

// identList parses a comma-separated list of identifiers.
func (p *Parser) identList() []string {
	list := []string{p.name()}
	for p.got(_Comma) {
		list = append(list, p.name())
	}
	return list
}

// paramList parses an optional parenthesized identifier list.
func (p *Parser) paramList() []string {
	var params []string
	if p.got(_Lparen) {
		if p.tok != _Rparen {
			params = p.identList()
		}
		p.want(_Rparen)
	}
	return params
}

// ----------------------------------------------------------------------------
// Version header

// version parses: OPENQASM real;
func (p *Parser) version() string {
	p.want(_OpenQASM)

	pos := p.pos
	if p.tok != _Literal || p.cur.Kind != RealLit {
		p.expected("version number")
		return ""
	}
	v := p.lit
	p.next()

	if major, _, _ := strings.Cut(v, "."); major != "2" {
		p.errorf(pos, "unsupported OpenQASM version %s", v)
	}

	p.want(_Semi)
	return v
}

// ----------------------------------------------------------------------------
// Statements

// stmt parses a top-level statement.
func (p *Parser) stmt() Stmt {
	switch p.tok {
	case _Qreg:
		d := &QRegDecl{}
		d.pos = p.pos
		d.Name, d.Size = p.regDecl()
		return d

	case _Creg:
		d := &CRegDecl{}
		d.pos = p.pos
		d.Name, d.Size = p.regDecl()
		return d

	case _Gate:
		return p.gateDecl()

	case _Opaque:
		return p.opaqueDecl()

	case _If:
		return p.ifStmt()

	case _Name, _Measure, _Reset, _Barrier:
		return p.qop()

	default:
		p.expected("statement")
		return nil
	}
}

// qop parses a quantum operation: a gate application, measure, reset or
// barrier. These are the statements allowed after an if.
func (p *Parser) qop() Stmt {
	switch p.tok {
	case _Name:
		return p.gateCall()
	case _Measure:
		return p.measureStmt()
	case _Reset:
		return p.resetStmt()
	case _Barrier:
		return p.barrierStmt()
	}
	p.expected("gate application, measure, reset or barrier")
	return nil
}

// regDecl parses the shared tail of qreg/creg: Name[Size];
func (p *Parser) regDecl() (string, int) {
	p.next() // qreg or creg
	name := p.name()
	p.want(_Lbrack)
	size := p.intLit()
	p.want(_Rbrack)
	p.want(_Semi)
	return name, size
}

// gateDecl parses: gate Name [(params)] qubits { body }
func (p *Parser) gateDecl() *GateDecl {
	d := &GateDecl{}
	d.pos = p.pos

	p.want(_Gate)
	d.Name = p.name()
	d.Params = p.paramList()
	d.Qubits = p.identList()

	p.want(_Lbrace)
	for p.tok != _Rbrace && p.tok != _EOF {
		if p.tok != _Name {
			p.expected("gate application or '}'")
			break
		}
		d.Body = append(d.Body, p.gateCall())
	}
	p.want(_Rbrace)

	return d
}

// opaqueDecl parses: opaque Name [(params)] qubits;
func (p *Parser) opaqueDecl() *OpaqueDecl {
	d := &OpaqueDecl{}
	d.pos = p.pos

	p.want(_Opaque)
	d.Name = p.name()
	d.Params = p.paramList()
	d.Qubits = p.identList()
	p.want(_Semi)

	return d
}

// gateCall parses: Name [(exprs)] args;
func (p *Parser) gateCall() *GateCall {
	s := &GateCall{}
	s.pos = p.pos

	s.Name = p.name()
	if p.got(_Lparen) {
		if p.tok != _Rparen {
			s.Params = p.exprTextList()
		}
		p.want(_Rparen)
	}
	s.Args = p.argList()
	p.want(_Semi)

	return s
}

// measureStmt parses: measure arg -> arg;
func (p *Parser) measureStmt() *MeasureStmt {
	s := &MeasureStmt{}
	s.pos = p.pos

	p.want(_Measure)
	s.Src = p.arg()
	p.want(_Arrow)
	s.Dst = p.arg()
	p.want(_Semi)

	return s
}

// resetStmt parses: reset arg;
func (p *Parser) resetStmt() *ResetStmt {
	s := &ResetStmt{}
	s.pos = p.pos

	p.want(_Reset)
	s.Target = p.arg()
	p.want(_Semi)

	return s
}

// barrierStmt parses: barrier args;
func (p *Parser) barrierStmt() *BarrierStmt {
	s := &BarrierStmt{}
	s.pos = p.pos

	p.want(_Barrier)
	s.Targets = p.argList()
	p.want(_Semi)

	return s
}

// ifStmt parses: if (creg == int) qop
func (p *Parser) ifStmt() *IfStmt {
	s := &IfStmt{}
	s.pos = p.pos

	p.want(_If)
	p.want(_Lparen)
	s.Creg = p.name()
	p.want(_Eql)
	s.Value = p.intLit()
	p.want(_Rparen)

	s.Then = p.qop()

	return s
}

// ----------------------------------------------------------------------------
// Arguments

// arg parses a register reference: name or name[int]
func (p *Parser) arg() Arg {
	pos := p.pos
	name := p.name()

	if p.got(_Lbrack) {
		r := &IndexRef{Name: name}
		r.pos = pos
		r.Index = p.intLit()
		p.want(_Rbrack)
		return r
	}

	r := &RegRef{Name: name}
	r.pos = pos
	return r
}

// argList parses a comma-separated list of register references.
func (p *Parser) argList() []Arg {
	list := []Arg{p.arg()}
	for p.got(_Comma) {
		list = append(list, p.arg())
	}
	return list
}

// ----------------------------------------------------------------------------
// Parameter expressions

// exprTextList parses a comma-separated list of parameter expressions.
func (p *Parser) exprTextList() []string {
	list := []string{p.exprText()}
	for p.got(_Comma) {
		list = append(list, p.exprText())
	}
	return list
}

// exprText consumes one parameter expression and returns its source text
// verbatim: the lexemes joined with the whitespace that separated them.
// The expression ends at a ',' or ')' outside any nested parentheses.
func (p *Parser) exprText() string {
	var b strings.Builder
	depth := 0

	for {
		switch p.tok {
		case _Name, _Add, _Sub, _Mul, _Div, _Pow:
		case _Literal:
			if p.cur.Kind == StringLit {
				p.expected("expression")
				return ""
			}
		case _Lparen:
			depth++
		case _Rparen:
			if depth == 0 {
				return p.endExprText(&b)
			}
			depth--
		case _Comma:
			if depth == 0 {
				return p.endExprText(&b)
			}
			p.expected("')'")
			return ""
		default:
			if depth > 0 || b.Len() > 0 {
				p.expected("')'")
			} else {
				p.expected("expression")
			}
			return ""
		}

		if b.Len() > 0 {
			b.WriteString(p.cur.Space)
		}
		b.WriteString(p.lit)
		p.next()
	}
}

func (p *Parser) endExprText(b *strings.Builder) string {
	if b.Len() == 0 {
		p.expected("expression")
	}
	return b.String()
}
