package syntax

// ParseExpr parses the text of one gate parameter, as stored in
// GateCall.Params, into an expression tree. The parser core never calls it;
// it exists for consumers that want structure instead of opaque text.
// Nothing is evaluated.
func ParseExpr(text string) (Expr, error) {
	toks, err := Tokenize("", text)
	if err != nil {
		return nil, err
	}

	p := NewParser(toks)
	x := p.expr()
	if p.tok != _EOF {
		p.expected("end of expression")
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	return x, nil
}

// expr parses an expression.
func (p *Parser) expr() Expr {
	return p.binaryExpr(0)
}

// binaryExpr parses a binary expression with minimum precedence prec.
// Implements Pratt parsing / precedence climbing; ^ is right associative.
func (p *Parser) binaryExpr(prec int) Expr {
	x := p.unaryExpr()

	for {
		oprec := p.tok.Precedence()
		if oprec <= prec {
			return x
		}

		op := &Operation{Op: p.tok, X: x}
		op.pos = x.Pos()
		p.next() // consume operator

		if op.Op == _Pow {
			op.Y = p.binaryExpr(oprec - 1)
		} else {
			op.Y = p.binaryExpr(oprec)
		}
		x = op
	}
}

// unaryExpr parses a unary expression. A sign binds looser than ^, so
// -pi^2 is -(pi^2).
func (p *Parser) unaryExpr() Expr {
	switch p.tok {
	case _Sub, _Add:
		op := &Operation{Op: p.tok}
		op.pos = p.pos
		p.next()
		op.X = p.binaryExpr(_Mul.Precedence())
		return op

	default:
		return p.operand()
	}
}

// operand parses a name, a call, a number or a parenthesized expression.
func (p *Parser) operand() Expr {
	switch p.tok {
	case _Name:
		n := &Name{Value: p.lit}
		n.pos = p.pos
		p.next()
		if p.tok == _Lparen {
			return p.callExpr(n)
		}
		return n

	case _Literal:
		if p.cur.Kind == StringLit {
			break
		}
		lit := &BasicLit{Value: p.lit, Kind: p.cur.Kind}
		lit.pos = p.pos
		p.next()
		return lit

	case _Lparen:
		paren := &ParenExpr{}
		paren.pos = p.pos
		p.next()
		paren.X = p.expr()
		p.want(_Rparen)
		return paren
	}

	p.expected("operand")
	n := &Name{Value: "_"} // placeholder, discarded by the caller
	n.pos = p.pos
	return n
}

// callExpr parses Fun(Arg)
func (p *Parser) callExpr(fun *Name) Expr {
	call := &CallExpr{Fun: fun}
	call.pos = fun.Pos()

	p.want(_Lparen)
	call.Arg = p.expr()
	p.want(_Rparen)

	return call
}

// ExprNames returns the identifiers referenced by x in source order,
// excluding function names of calls.
func ExprNames(x Expr) []string {
	var names []string
	collectNames(x, &names)
	return names
}

func collectNames(x Expr, names *[]string) {
	switch x := x.(type) {
	case *Name:
		*names = append(*names, x.Value)
	case *BasicLit:
	case *Operation:
		collectNames(x.X, names)
		if x.Y != nil {
			collectNames(x.Y, names)
		}
	case *CallExpr:
		collectNames(x.Arg, names)
	case *ParenExpr:
		collectNames(x.X, names)
	}
}
