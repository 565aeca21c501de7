package snippetlang

import "fmt"

// parser is a straightforward recursive-descent parser with one token of
// lookahead. Precedence, loosest to tightest: ternary, ||, &&, equality,
// relational, additive, multiplicative, unary, postfix (member/call).
type parser struct {
	lex  *lexer
	cur  token
	err  error
}

func newParser(src string) (*parser, error) {
	p := &parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

func (p *parser) expect(k tokenKind, what string) error {
	if p.cur.kind != k {
		return fmt.Errorf("snippetlang: expected %s", what)
	}
	return p.advance()
}

// ParseProgram parses a full statement list: expressions separated by ';',
// with an optional trailing/embedded 'return <expr>'.
func ParseProgram(src string) (*Program, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	prog := &Program{}
	for p.cur.kind != tokEOF {
		if p.cur.kind == tokSemicolon {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if p.cur.kind == tokReturn {
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.cur.kind == tokEOF || p.cur.kind == tokSemicolon {
				prog.stmts = append(prog.stmts, returnStmt{value: undefinedLit{}})
			} else {
				e, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				prog.stmts = append(prog.stmts, returnStmt{value: e})
			}
			continue
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		prog.stmts = append(prog.stmts, e)
		if p.cur.kind == tokSemicolon {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	return prog, nil
}

// ParseExpr parses src as a single bare expression (no statement list).
func ParseExpr(src string) (Expr, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, fmt.Errorf("snippetlang: unexpected trailing input")
	}
	return e, nil
}

func (p *parser) parseExpr() (Expr, error) { return p.parseTernary() }

func (p *parser) parseTernary() (Expr, error) {
	cond, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if p.cur.kind == tokQuestion {
		if err := p.advance(); err != nil {
			return nil, err
		}
		then, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokColon, "':' in ternary expression"); err != nil {
			return nil, err
		}
		els, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ternaryExpr{cond: cond, then: then, els: els}, nil
	}
	return cond, nil
}

func (p *parser) parseLogicalOr() (Expr, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokOr {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = logicalExpr{op: tokOr, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseLogicalAnd() (Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokAnd {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = logicalExpr{op: tokAnd, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseEquality() (Expr, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokEq || p.cur.kind == tokNeq {
		op := p.cur.kind
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseRelational() (Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokLt || p.cur.kind == tokLte || p.cur.kind == tokGt || p.cur.kind == tokGte {
		op := p.cur.kind
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAdditive() (Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := p.cur.kind
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokStar || p.cur.kind == tokSlash {
		op := p.cur.kind
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if p.cur.kind == tokNot || p.cur.kind == tokMinus {
		op := p.cur.kind
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryExpr{op: op, operand: operand}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (Expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokDot {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.kind != tokIdent {
			return nil, fmt.Errorf("snippetlang: expected identifier after '.'")
		}
		name := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.kind == tokLParen {
			if err := p.advance(); err != nil {
				return nil, err
			}
			var args []Expr
			for p.cur.kind != tokRParen {
				a, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				if p.cur.kind == tokComma {
					if err := p.advance(); err != nil {
						return nil, err
					}
				}
			}
			if err := p.advance(); err != nil { // consume ')'
				return nil, err
			}
			e = callExpr{target: e, method: name, args: args}
			continue
		}
		e = memberExpr{target: e, name: name}
	}
	return e, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	switch p.cur.kind {
	case tokNumber:
		v := p.cur.num
		if err := p.advance(); err != nil {
			return nil, err
		}
		return numberLit{value: v}, nil
	case tokString:
		v := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return stringLit{value: v}, nil
	case tokRegex:
		pat, flags := p.cur.text, p.cur.flag
		if err := p.advance(); err != nil {
			return nil, err
		}
		return regexLit{pattern: pat, flags: flags}, nil
	case tokTrue:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return boolLit{value: true}, nil
	case tokFalse:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return boolLit{value: false}, nil
	case tokNull:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return nullLit{}, nil
	case tokUndefined:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return undefinedLit{}, nil
	case tokIdent:
		name := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return identExpr{name: name}, nil
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, fmt.Errorf("snippetlang: unexpected token in expression")
}
