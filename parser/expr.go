package parser

import (
	"strconv"
	"strings"

	"github.com/ardnew/sapling/ast"
	"github.com/ardnew/sapling/token"
)

// parseExpr parses a full expression at the lowest precedence level
// (logical OR). Precedence, low to high, per spec.md §4.2: OR, AND,
// unary NOT, equality/relational, additive, multiplicative.
func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.is(token.T_OR) {
		op := p.advance()

		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryOp{Base: base(op), Op: ast.OpOr, Left: left, Right: right}
	}

	return left, nil
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for p.is(token.T_AND) {
		op := p.advance()

		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryOp{Base: base(op), Op: ast.OpAnd, Left: left, Right: right}
	}

	return left, nil
}

func (p *Parser) parseNot() (ast.Expr, error) {
	if p.is(token.T_NOT) {
		op := p.advance()

		expr, err := p.parseNot()
		if err != nil {
			return nil, err
		}

		return &ast.UnaryOp{Base: base(op), Expr: expr}, nil
	}

	return p.parseEquality()
}

var equalityOps = map[token.Type]ast.BinOp{
	token.T_EQ: ast.OpEq, token.T_NE: ast.OpNe,
	token.T_LT: ast.OpLt, token.T_GT: ast.OpGt,
	token.T_LE: ast.OpLe, token.T_GE: ast.OpGe,
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := equalityOps[p.cur().Type]
		if !ok {
			return left, nil
		}

		tok := p.advance()

		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryOp{Base: base(tok), Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for p.is(token.T_PLUS) || p.is(token.T_MINUS) {
		tok := p.advance()

		op := ast.OpAdd
		if tok.Type == token.T_MINUS {
			op = ast.OpSub
		}

		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryOp{Base: base(tok), Op: op, Left: left, Right: right}
	}

	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	left, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}

	for p.is(token.T_STAR) || p.is(token.T_SLASH) || p.is(token.T_PERCENT) {
		tok := p.advance()

		var op ast.BinOp
		switch tok.Type {
		case token.T_STAR:
			op = ast.OpMul
		case token.T_SLASH:
			op = ast.OpDiv
		default:
			op = ast.OpMod
		}

		right, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryOp{Base: base(tok), Op: op, Left: left, Right: right}
	}

	return left, nil
}

// parsePostfix parses a primary expression followed by zero or more
// attribute, index, or call suffixes (spec.md §4.2's `e.id`, `e[e]`,
// `e(args?)` productions).
func (p *Parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.is(token.T_DOT) || p.is(token.T_QDOT):
			tok := p.advance()

			name, err := p.expect(token.T_ID)
			if err != nil {
				return nil, err
			}

			expr = &ast.Attribute{
				Base: base(tok), Recv: expr, Name: name.Literal,
				NullSafe: tok.Type == token.T_QDOT,
			}
		case p.is(token.T_LBRACKET):
			tok := p.advance()

			key, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			if _, err := p.expect(token.T_RBRACKET); err != nil {
				return nil, err
			}

			expr = &ast.Index{Base: base(tok), Container: expr, Key: key}
		case p.is(token.T_LPAREN):
			tok := p.cur()

			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}

			expr = &ast.Call{Base: base(tok), Callee: expr, Args: args}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.cur()

	switch tok.Type {
	case token.T_INT:
		p.advance()

		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, p.errorf("invalid integer literal %q", tok.Literal)
		}

		return &ast.Int{Base: base(tok), Value: v}, nil
	case token.T_FLOAT:
		p.advance()

		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, p.errorf("invalid float literal %q", tok.Literal)
		}

		return &ast.Float{Base: base(tok), Value: v}, nil
	case token.T_HEX:
		p.advance()

		v, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimPrefix(tok.Literal, "0x"), "0X"), 16, 64)
		if err != nil {
			return nil, p.errorf("invalid hex literal %q", tok.Literal)
		}

		return &ast.Hex{Base: base(tok), Value: v, Text: tok.Literal}, nil
	case token.T_STRING:
		p.advance()

		return &ast.String{Base: base(tok), Value: tok.Literal}, nil
	case token.T_REGEX:
		p.advance()

		return &ast.Regex{Base: base(tok), Pattern: tok.Literal}, nil
	case token.T_TRUE:
		p.advance()

		return &ast.Bool{Base: base(tok), Value: true}, nil
	case token.T_FALSE:
		p.advance()

		return &ast.Bool{Base: base(tok), Value: false}, nil
	case token.T_NIL:
		p.advance()

		return &ast.Nil{Base: base(tok)}, nil
	case token.T_ID:
		p.advance()

		return &ast.Id{Base: base(tok), Name: tok.Literal}, nil
	case token.T_LPAREN:
		p.advance()

		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(token.T_RPAREN); err != nil {
			return nil, err
		}

		return expr, nil
	case token.T_LBRACE:
		return p.parseBraceExpr()
	case token.T_NEW:
		return p.parseNew()
	default:
		return nil, p.errorf("unexpected token %s", tok.Type)
	}
}

// parseNew parses `new ClassExpr(args?)` (spec.md §4.7).
func (p *Parser) parseNew() (ast.Expr, error) {
	start, _ := p.expect(token.T_NEW)

	class, err := p.parseClassExpr()
	if err != nil {
		return nil, err
	}

	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}

	return &ast.New{Base: base(start), Class: class, Args: args}, nil
}

// parseClassExpr parses the dotted-name expression naming a class in
// `new ClassExpr(...)`, stopping before the argument list's '('.
func (p *Parser) parseClassExpr() (ast.Expr, error) {
	name, err := p.expect(token.T_ID)
	if err != nil {
		return nil, err
	}

	var expr ast.Expr = &ast.Id{Base: base(name), Name: name.Literal}

	for p.is(token.T_DOT) {
		dot := p.advance()

		attr, err := p.expect(token.T_ID)
		if err != nil {
			return nil, err
		}

		expr = &ast.Attribute{Base: base(dot), Recv: expr, Name: attr.Literal}
	}

	return expr, nil
}

// parseArgs parses `( arg, ... )` where arg is `expr` or `id: expr`
// (spec.md §4.2's named-argument form).
func (p *Parser) parseArgs() ([]ast.Arg, error) {
	if _, err := p.expect(token.T_LPAREN); err != nil {
		return nil, err
	}

	var args []ast.Arg
	for !p.is(token.T_RPAREN) {
		if len(args) > 0 {
			if _, err := p.expect(token.T_COMMA); err != nil {
				return nil, err
			}
		}

		start := p.cur()

		var name string
		if p.is(token.T_ID) && p.at(1).Is(token.T_COLON) {
			n := p.advance()
			p.advance() // ':'
			name = n.Literal
		}

		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		args = append(args, ast.Arg{Base: base(start), Value: val, Name: name})
	}

	if _, err := p.expect(token.T_RPAREN); err != nil {
		return nil, err
	}

	return args, nil
}

// parseBraceExpr parses the three `{...}` forms spec.md §4.2 defines:
// array literal `{a, b, c}`, dictionary literal `{k: v, ...}`, and
// array comprehension `{expr : id in source}`. All three share the
// opening brace and an initial expression, so the form is decided by
// what follows the first ':' (if any).
func (p *Parser) parseBraceExpr() (ast.Expr, error) {
	start, _ := p.expect(token.T_LBRACE)

	if p.is(token.T_RBRACE) {
		p.advance()

		return &ast.Array{Base: base(start)}, nil
	}

	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.is(token.T_COLON) {
		p.advance()

		if p.is(token.T_ID) && p.at(1).Is(token.T_IN) {
			binder := p.advance()
			p.advance() // 'in'

			source, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			if _, err := p.expect(token.T_RBRACE); err != nil {
				return nil, err
			}

			return &ast.ArrayComp{Base: base(start), Elem: first, Binder: binder.Literal, Source: source}, nil
		}

		firstVal, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		entries := []ast.DictEntry{{Key: first, Value: firstVal}}

		for p.is(token.T_COMMA) {
			p.advance()

			k, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			if _, err := p.expect(token.T_COLON); err != nil {
				return nil, err
			}

			v, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			entries = append(entries, ast.DictEntry{Key: k, Value: v})
		}

		if _, err := p.expect(token.T_RBRACE); err != nil {
			return nil, err
		}

		return &ast.Dictionary{Base: base(start), Entries: entries}, nil
	}

	elems := []ast.Expr{first}

	for p.is(token.T_COMMA) {
		p.advance()

		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		elems = append(elems, e)
	}

	if _, err := p.expect(token.T_RBRACE); err != nil {
		return nil, err
	}

	return &ast.Array{Base: base(start), Elems: elems}, nil
}
