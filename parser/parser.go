// Package parser turns a Sapling token stream into the instruction tree
// defined by package ast (spec.md §4.2). It is a hand-written recursive
// descent parser with precedence climbing rather than a generated
// LALR(1) table — the teacher's own generated lang/parser package
// (output of goccmack/gogll) is not part of this repository's source,
// so the grammar below reimplements its contract by hand, grounded
// directly on spec.md §4.2's design-level grammar.
package parser

import (
	"fmt"

	"github.com/ardnew/sapling/ast"
	"github.com/ardnew/sapling/errs"
	"github.com/ardnew/sapling/lexer"
	"github.com/ardnew/sapling/token"
)

// Parser consumes a fully-lexed token slice and produces an *ast.Code.
// Buffering all tokens up front (rather than streaming from the lexer)
// keeps the lookahead needed to disambiguate `type id = expr` from
// `id = expr`, and `{expr : id in source}` from `{k: v}`, simple
// arbitrary-offset peeks instead of a hand-rolled pushback buffer.
type Parser struct {
	toks []token.Token
	pos  int
}

// Parse lexes and parses src in one step.
func Parse(src string) (*ast.Code, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}

	return New(toks).ParseCode()
}

// New returns a Parser over an already-lexed token stream.
func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

func (p *Parser) cur() token.Token { return p.at(0) }

func (p *Parser) at(offset int) token.Token {
	i := p.pos + offset
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1] // T_EOF
	}

	return p.toks[i]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}

	return t
}

func (p *Parser) is(typ token.Type) bool { return p.cur().Is(typ) }

func (p *Parser) expect(typ token.Type) (token.Token, error) {
	if !p.is(typ) {
		return token.Token{}, p.errorf("expected %s, found %q", typ, p.cur().Literal)
	}

	return p.advance(), nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return errs.NewSyntax(pos(p.cur()), fmt.Sprintf(format, args...))
}

func pos(t token.Token) errs.Position {
	return errs.Position{Line: t.Pos.Line, Column: t.Pos.Column}
}

func base(t token.Token) ast.Base { return ast.Base{Pos: pos(t)} }

// ParseCode parses the whole token stream as a top-level program.
func (p *Parser) ParseCode() (*ast.Code, error) {
	start := p.cur()

	stmts, err := p.parseStmts(token.T_EOF)
	if err != nil {
		return nil, err
	}

	return &ast.Code{Base: base(start), Stmts: stmts}, nil
}

// parseStmts parses statements until the current token is `end`,
// without consuming it.
func (p *Parser) parseStmts(end token.Type) ([]ast.Stmt, error) {
	var stmts []ast.Stmt

	for !p.is(end) && !p.is(token.T_EOF) {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	return stmts, nil
}

// parseBody parses a brace-delimited statement block.
func (p *Parser) parseBody() (*ast.Body, error) {
	start, err := p.expect(token.T_LBRACE)
	if err != nil {
		return nil, err
	}

	stmts, err := p.parseStmts(token.T_RBRACE)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.T_RBRACE); err != nil {
		return nil, err
	}

	return &ast.Body{Base: base(start), Stmts: stmts}, nil
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch p.cur().Type {
	case token.T_IF:
		return p.parseIf()
	case token.T_WHILE:
		return p.parseWhile()
	case token.T_REPEAT:
		return p.parseRepeat()
	case token.T_FUNC:
		return p.parseFuncOrAttrFunc()
	case token.T_RETURN:
		return p.parseReturn()
	case token.T_IMPORT:
		return p.parseImport()
	case token.T_STRUCT:
		return p.parseStruct()
	case token.T_ENUM:
		return p.parseEnum()
	case token.T_BREAK:
		t := p.advance()

		return &ast.Break{Base: base(t)}, nil
	case token.T_CONTINUE:
		t := p.advance()

		return &ast.Continue{Base: base(t)}, nil
	case token.T_CONST:
		return p.parseAssign(true)
	default:
		return p.parseAssignOrExprStmt()
	}
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	start, _ := p.expect(token.T_IF)

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	then, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	node := &ast.If{Base: base(start), Cond: cond, Then: then}

	for p.is(token.T_ELSE) && p.at(1).Is(token.T_IF) {
		p.advance()
		p.advance()

		c, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		b, err := p.parseBody()
		if err != nil {
			return nil, err
		}

		node.ElseIfs = append(node.ElseIfs, ast.ElseIf{Cond: c, Body: b})
	}

	if p.is(token.T_ELSE) {
		p.advance()

		b, err := p.parseBody()
		if err != nil {
			return nil, err
		}

		node.Else = b
	}

	return node, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	start, _ := p.expect(token.T_WHILE)

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	return &ast.While{Base: base(start), Cond: cond, Body: body}, nil
}

func (p *Parser) parseRepeat() (ast.Stmt, error) {
	start, _ := p.expect(token.T_REPEAT)

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.T_UNTIL); err != nil {
		return nil, err
	}

	until, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &ast.Repeat{Base: base(start), Body: body, Until: until}, nil
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	start, _ := p.expect(token.T_RETURN)

	if p.is(token.T_RBRACE) || p.is(token.T_EOF) {
		return &ast.Return{Base: base(start), Value: &ast.Nil{Base: base(start)}}, nil
	}

	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &ast.Return{Base: base(start), Value: val}, nil
}

func (p *Parser) parseImport() (ast.Stmt, error) {
	start, _ := p.expect(token.T_IMPORT)

	first, err := p.expect(token.T_STRING)
	if err != nil {
		return nil, err
	}

	if !p.is(token.T_COMMA) && !p.is(token.T_FROM) {
		return &ast.Import{Base: base(start), Module: first.Literal}, nil
	}

	names := []string{first.Literal}
	for p.is(token.T_COMMA) {
		p.advance()

		n, err := p.expect(token.T_STRING)
		if err != nil {
			return nil, err
		}

		names = append(names, n.Literal)
	}

	if _, err := p.expect(token.T_FROM); err != nil {
		return nil, err
	}

	mod, err := p.expect(token.T_STRING)
	if err != nil {
		return nil, err
	}

	return &ast.Import{Base: base(start), Module: mod.Literal, Names: names}, nil
}

func (p *Parser) parseStruct() (ast.Stmt, error) {
	start, _ := p.expect(token.T_STRUCT)

	name, err := p.expect(token.T_ID)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.T_LBRACE); err != nil {
		return nil, err
	}

	var fields []ast.FieldDef
	for !p.is(token.T_RBRACE) {
		typ, err := p.expect(token.T_ID)
		if err != nil {
			return nil, err
		}

		fname, err := p.expect(token.T_ID)
		if err != nil {
			return nil, err
		}

		fields = append(fields, ast.FieldDef{Name: fname.Literal, Type: typ.Literal})
	}

	if _, err := p.expect(token.T_RBRACE); err != nil {
		return nil, err
	}

	return &ast.Struct{Base: base(start), Name: name.Literal, Fields: fields}, nil
}

func (p *Parser) parseEnum() (ast.Stmt, error) {
	start, _ := p.expect(token.T_ENUM)

	name, err := p.expect(token.T_ID)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.T_LBRACE); err != nil {
		return nil, err
	}

	var members []ast.EnumMember
	for !p.is(token.T_RBRACE) {
		mname, err := p.expect(token.T_ID)
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(token.T_ASSIGN); err != nil {
			return nil, err
		}

		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		members = append(members, ast.EnumMember{Name: mname.Literal, Value: val})
	}

	if _, err := p.expect(token.T_RBRACE); err != nil {
		return nil, err
	}

	return &ast.Enum{Base: base(start), Name: name.Literal, Members: members}, nil
}

// parseFuncOrAttrFunc parses `func id(params?) body` or
// `func ClassName.methodName(params?) body` (spec.md §4.2).
func (p *Parser) parseFuncOrAttrFunc() (ast.Stmt, error) {
	start, _ := p.expect(token.T_FUNC)

	name, err := p.expect(token.T_ID)
	if err != nil {
		return nil, err
	}

	if p.is(token.T_DOT) {
		p.advance()

		method, err := p.expect(token.T_ID)
		if err != nil {
			return nil, err
		}

		params, err := p.parseParams()
		if err != nil {
			return nil, err
		}

		body, err := p.parseBody()
		if err != nil {
			return nil, err
		}

		return &ast.AttrFuncDef{
			Base: base(start), Class: name.Literal, Method: method.Literal,
			Params: params, Body: body,
		}, nil
	}

	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	return &ast.FuncDef{Base: base(start), Name: name.Literal, Params: params, Body: body}, nil
}

// parseParams parses `( param, ... )` where each param is
// `id` | `type id` | `id = default` | `type id = default` (spec.md §4.2).
func (p *Parser) parseParams() ([]ast.Param, error) {
	if _, err := p.expect(token.T_LPAREN); err != nil {
		return nil, err
	}

	var params []ast.Param
	for !p.is(token.T_RPAREN) {
		if len(params) > 0 {
			if _, err := p.expect(token.T_COMMA); err != nil {
				return nil, err
			}
		}

		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}

		params = append(params, param)
	}

	if _, err := p.expect(token.T_RPAREN); err != nil {
		return nil, err
	}

	return params, nil
}

func (p *Parser) parseParam() (ast.Param, error) {
	var param ast.Param

	first, err := p.expect(token.T_ID)
	if err != nil {
		return param, err
	}

	if p.is(token.T_ID) {
		name, err := p.expect(token.T_ID)
		if err != nil {
			return param, err
		}

		param.Name = name.Literal
		param.Annotation = first.Literal
	} else {
		param.Name = first.Literal
		param.Annotation = "any"
	}

	if p.is(token.T_ASSIGN) {
		p.advance()

		def, err := p.parseExpr()
		if err != nil {
			return param, err
		}

		param.Default = def
	}

	return param, nil
}

// parseAssignOrExprStmt disambiguates the statement forms that start
// with an identifier: `type id = expr`, `id = expr`, `id op= expr`, and
// a bare expression statement (e.g. a call used for its side effect).
func (p *Parser) parseAssignOrExprStmt() (ast.Stmt, error) {
	if p.is(token.T_ID) && p.at(1).Is(token.T_ID) && p.at(2).Is(token.T_ASSIGN) {
		return p.parseAssign(false)
	}

	if p.is(token.T_ID) && isCompoundAssignOrAssign(p.at(1).Type) {
		return p.parseAssign(false)
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	stmt, ok := expr.(ast.Stmt)
	if !ok {
		return nil, p.errorf("expression cannot be used as a statement")
	}

	return stmt, nil
}

func isCompoundAssignOrAssign(t token.Type) bool {
	switch t {
	case token.T_ASSIGN, token.T_PLUSEQ, token.T_MINUSEQ, token.T_STAREQ, token.T_SLASHEQ, token.T_PERCENTEQ:
		return true
	default:
		return false
	}
}

var compoundOps = map[token.Type]ast.BinOp{
	token.T_PLUSEQ:    ast.OpAdd,
	token.T_MINUSEQ:   ast.OpSub,
	token.T_STAREQ:    ast.OpMul,
	token.T_SLASHEQ:   ast.OpDiv,
	token.T_PERCENTEQ: ast.OpMod,
}

// parseAssign parses the four assignment forms of spec.md §4.2/§4.8.
// isConst is true when the caller has already consumed a `const`
// keyword.
func (p *Parser) parseAssign(isConst bool) (ast.Stmt, error) {
	start := p.cur()
	if isConst {
		p.advance()
	}

	var annotation string
	if p.is(token.T_ID) && p.at(1).Is(token.T_ID) {
		typ, err := p.expect(token.T_ID)
		if err != nil {
			return nil, err
		}

		annotation = typ.Literal
	}

	name, err := p.expect(token.T_ID)
	if err != nil {
		return nil, err
	}

	if op, ok := compoundOps[p.cur().Type]; ok {
		p.advance()

		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		return &ast.Assign{Base: base(start), Target: name.Literal, Value: val, CompoundOp: op}, nil
	}

	if _, err := p.expect(token.T_ASSIGN); err != nil {
		return nil, err
	}

	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &ast.Assign{
		Base: base(start), Target: name.Literal, Value: val,
		Const: isConst, Annotation: annotation,
	}, nil
}
