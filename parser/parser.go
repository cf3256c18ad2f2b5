// Package parser builds an abstract syntax tree from a token stream.
package parser

import (
	"fmt"

	"github.com/marcuscaisey/lox/ast"
	"github.com/marcuscaisey/lox/loxerr"
	"github.com/marcuscaisey/lox/scanner"
	"github.com/marcuscaisey/lox/token"
)

const maxArgs = 255

// Parse scans and parses src into a list of statements.
//
// Parsing stops at the first syntax error: the source did not implement
// full panic-mode recovery across statements, and a consolidated
// implementation keeps that same first-fail behaviour rather than risk
// diverging from it.
func Parse(src string) ([]ast.Stmt, error) {
	tokens, err := scanner.Scan(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	return p.parseProgram()
}

// unwind is panicked to abort parsing as soon as a syntax error is found.
type unwind struct{ err error }

type parser struct {
	tokens  []token.Token
	pos     int
	nextID  int
	current token.Token
}

func (p *parser) parseProgram() (stmts []ast.Stmt, err error) {
	defer func() {
		if r := recover(); r != nil {
			u, ok := r.(unwind)
			if !ok {
				panic(r)
			}
			stmts, err = nil, u.err
		}
	}()
	p.current = p.tokens[0]
	for !p.check(token.Eof) {
		stmts = append(stmts, p.parseDecl())
	}
	return stmts, nil
}

func (p *parser) parseDecl() ast.Stmt {
	switch {
	case p.match(token.Class):
		return p.parseClassDecl()
	case p.match(token.Fun):
		return p.parseFunDecl("function")
	case p.match(token.Var):
		return p.parseVarDecl()
	default:
		return p.parseStmt()
	}
}

func (p *parser) parseClassDecl() ast.Stmt {
	keyword := p.previous().Start
	name := p.expect(token.Identifier, "expect class name")

	var superclass *ast.VariableExpr
	if p.match(token.Less) {
		superTok := p.expect(token.Identifier, "expect superclass name")
		superclass = &ast.VariableExpr{ID: p.newID(), Name: superTok}
	}

	p.expect(token.LeftBrace, `expect "{" before class body`)
	var methods []*ast.FunctionStmt
	for !p.check(token.RightBrace) && !p.check(token.Eof) {
		methods = append(methods, p.parseFunDecl("method").(*ast.FunctionStmt))
	}
	p.expect(token.RightBrace, `expect "}" after class body`)

	return &ast.ClassStmt{Keyword: keyword, Name: name, Superclass: superclass, Methods: methods}
}

func (p *parser) parseFunDecl(kind string) ast.Stmt {
	keyword := p.previous().Start
	name := p.expect(token.Identifier, fmt.Sprintf("expect %s name", kind))
	p.expect(token.LeftParen, fmt.Sprintf(`expect "(" after %s name`, kind))
	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.current.Start, fmt.Sprintf("can't have more than %d parameters", maxArgs))
			}
			params = append(params, p.expect(token.Identifier, "expect parameter name"))
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.expect(token.RightParen, `expect ")" after parameters`)
	p.expect(token.LeftBrace, fmt.Sprintf(`expect "{" before %s body`, kind))
	body := p.parseBlock()
	return &ast.FunctionStmt{Keyword: keyword, Name: name, Params: params, Body: body}
}

func (p *parser) parseVarDecl() ast.Stmt {
	keyword := p.previous().Start
	name := p.expect(token.Identifier, "expect variable name")
	var init ast.Expr
	if p.match(token.Equal) {
		init = p.parseExpr()
	}
	p.expect(token.Semicolon, `expect ";" after variable declaration`)
	return &ast.VarStmt{Keyword: keyword, Name: name, Initializer: init}
}

func (p *parser) parseStmt() ast.Stmt {
	switch {
	case p.match(token.Print):
		return p.parsePrintStmt()
	case p.match(token.LeftBrace):
		return &ast.BlockStmt{LeftBrace: p.previous().Start, Stmts: p.parseBlock()}
	case p.match(token.If):
		return p.parseIfStmt()
	case p.match(token.While):
		return p.parseWhileStmt()
	case p.match(token.For):
		return p.parseForStmt()
	case p.match(token.Return):
		return p.parseReturnStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *parser) parsePrintStmt() ast.Stmt {
	keyword := p.previous().Start
	expr := p.parseExpr()
	p.expect(token.Semicolon, `expect ";" after value`)
	return &ast.PrintStmt{Keyword: keyword, Expr: expr}
}

func (p *parser) parseBlock() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.check(token.Eof) {
		stmts = append(stmts, p.parseDecl())
	}
	p.expect(token.RightBrace, `expect "}" after block`)
	return stmts
}

func (p *parser) parseIfStmt() ast.Stmt {
	keyword := p.previous().Start
	p.expect(token.LeftParen, `expect "(" after "if"`)
	cond := p.parseExpr()
	p.expect(token.RightParen, `expect ")" after if condition`)
	then := p.parseStmt()
	var els ast.Stmt
	if p.match(token.Else) {
		els = p.parseStmt()
	}
	return &ast.IfStmt{Keyword: keyword, Cond: cond, Then: then, Else: els}
}

func (p *parser) parseWhileStmt() ast.Stmt {
	keyword := p.previous().Start
	p.expect(token.LeftParen, `expect "(" after "while"`)
	cond := p.parseExpr()
	p.expect(token.RightParen, `expect ")" after condition`)
	body := p.parseStmt()
	return &ast.WhileStmt{Keyword: keyword, Cond: cond, Body: body}
}

// parseForStmt desugars `for (init; cond; incr) body` at parse time into:
//
//	{ init; while (cond) { body; incr; } }
//
// with a missing cond treated as `true` and a missing init/incr simply
// omitted.
func (p *parser) parseForStmt() ast.Stmt {
	keyword := p.previous().Start
	p.expect(token.LeftParen, `expect "(" after "for"`)

	var init ast.Stmt
	switch {
	case p.match(token.Semicolon):
	case p.match(token.Var):
		init = p.parseVarDecl()
	default:
		init = p.parseExprStmt()
	}

	var cond ast.Expr
	if !p.check(token.Semicolon) {
		cond = p.parseExpr()
	}
	p.expect(token.Semicolon, `expect ";" after loop condition`)

	var incr ast.Expr
	if !p.check(token.RightParen) {
		incr = p.parseExpr()
	}
	p.expect(token.RightParen, `expect ")" after for clauses`)

	body := p.parseStmt()

	if incr != nil {
		body = &ast.BlockStmt{LeftBrace: keyword, Stmts: []ast.Stmt{body, &ast.ExprStmt{Expr: incr}}}
	}
	if cond == nil {
		cond = &ast.LiteralExpr{Token: token.Token{Start: keyword}, Value: true}
	}
	loop := ast.Stmt(&ast.WhileStmt{Keyword: keyword, Cond: cond, Body: body})
	if init != nil {
		loop = &ast.BlockStmt{LeftBrace: keyword, Stmts: []ast.Stmt{init, loop}}
	}
	return loop
}

func (p *parser) parseReturnStmt() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.Semicolon) {
		value = p.parseExpr()
	}
	p.expect(token.Semicolon, `expect ";" after return value`)
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *parser) parseExprStmt() ast.Stmt {
	expr := p.parseExpr()
	p.expect(token.Semicolon, `expect ";" after expression`)
	return &ast.ExprStmt{Expr: expr}
}

func (p *parser) parseExpr() ast.Expr {
	return p.parseAssignment()
}

func (p *parser) parseAssignment() ast.Expr {
	expr := p.parseLogicOr()
	if p.match(token.Equal) {
		equals := p.previous()
		value := p.parseAssignment()
		switch e := expr.(type) {
		case *ast.VariableExpr:
			return &ast.AssignExpr{ID: p.newID(), Name: e.Name, Value: value}
		case *ast.GetExpr:
			return &ast.SetExpr{Object: e.Object, Name: e.Name, Value: value}
		default:
			p.errorAt(equals.Start, "invalid assignment target")
		}
	}
	return expr
}

func (p *parser) parseLogicOr() ast.Expr {
	expr := p.parseLogicAnd()
	for p.match(token.Or) {
		op := p.previous()
		right := p.parseLogicAnd()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) parseLogicAnd() ast.Expr {
	expr := p.parseEquality()
	for p.match(token.And) {
		op := p.previous()
		right := p.parseEquality()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) parseEquality() ast.Expr {
	expr := p.parseComparison()
	for p.match(token.BangEqual, token.EqualEqual) {
		op := p.previous()
		right := p.parseComparison()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) parseComparison() ast.Expr {
	expr := p.parseTerm()
	for p.match(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		op := p.previous()
		right := p.parseTerm()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) parseTerm() ast.Expr {
	expr := p.parseFactor()
	for p.match(token.Minus, token.Plus) {
		op := p.previous()
		right := p.parseFactor()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) parseFactor() ast.Expr {
	expr := p.parseUnary()
	for p.match(token.Slash, token.Star) {
		op := p.previous()
		right := p.parseUnary()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) parseUnary() ast.Expr {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		operand := p.parseUnary()
		return &ast.UnaryExpr{Op: op, Operand: operand}
	}
	return p.parseCall()
}

func (p *parser) parseCall() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch {
		case p.match(token.LeftParen):
			expr = p.finishCall(expr)
		case p.match(token.Dot):
			name := p.expect(token.Identifier, `expect property name after "."`)
			expr = &ast.GetExpr{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.current.Start, fmt.Sprintf("can't have more than %d arguments", maxArgs))
			}
			args = append(args, p.parseExpr())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren := p.expect(token.RightParen, `expect ")" after arguments`)
	return &ast.CallExpr{Callee: callee, Paren: paren.Start, Args: args}
}

func (p *parser) parsePrimary() ast.Expr {
	tok := p.current
	switch {
	case p.match(token.False):
		return &ast.LiteralExpr{Token: tok, Value: false}
	case p.match(token.True):
		return &ast.LiteralExpr{Token: tok, Value: true}
	case p.match(token.Nil):
		return &ast.LiteralExpr{Token: tok, Value: nil}
	case p.match(token.Number, token.String):
		return &ast.LiteralExpr{Token: tok, Value: tok.Literal}
	case p.match(token.This):
		return &ast.ThisExpr{ID: p.newID(), Token: tok}
	case p.match(token.Super):
		p.expect(token.Dot, `expect "." after "super"`)
		method := p.expect(token.Identifier, "expect superclass method name")
		return &ast.SuperExpr{ID: p.newID(), Token: tok, Method: method}
	case p.match(token.Identifier):
		return &ast.VariableExpr{ID: p.newID(), Name: tok}
	case p.match(token.LeftParen):
		expr := p.parseExpr()
		p.expect(token.RightParen, `expect ")" after expression`)
		return &ast.GroupingExpr{LeftParen: tok.Start, Expr: expr}
	}
	panic(unwind{loxerr.New(loxerr.ParseError, tok.Start, "expect expression")})
}

func (p *parser) newID() int {
	p.nextID++
	return p.nextID
}

func (p *parser) check(typ token.Type) bool {
	return p.current.Type == typ
}

func (p *parser) match(types ...token.Type) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) advance() token.Token {
	prev := p.current
	if p.pos < len(p.tokens)-1 && p.current.Type != token.Eof {
		p.pos++
		p.current = p.tokens[p.pos]
	}
	return prev
}

func (p *parser) previous() token.Token {
	if p.pos == 0 {
		return p.current
	}
	return p.tokens[p.pos-1]
}

func (p *parser) expect(typ token.Type, msg string) token.Token {
	if p.check(typ) {
		return p.advance()
	}
	p.errorAt(p.current.Start, msg)
	panic("unreachable")
}

func (p *parser) errorAt(pos token.Position, msg string) {
	panic(unwind{loxerr.New(loxerr.ParseError, pos, msg)})
}
