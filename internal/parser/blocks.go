package parser

import (
	"github.com/eddndev/achronyme/internal/lexer"
	"github.com/eddndev/achronyme/pkg/ast"
)

// findMatchingParen returns the index of the RPAREN matching the LPAREN at
// openIdx, scanning the already-buffered token stream without consuming
// anything — used to decide whether `(...)` begins a lambda parameter list
// or a plain grouped expression.
func (p *Parser) findMatchingParen(openIdx int) int {
	depth := 0
	for i := openIdx; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case lexer.LPAREN:
			depth++
		case lexer.RPAREN:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(p.tokens) - 1
}

func (p *Parser) parseParenOrLambda() ast.Expression {
	openIdx := p.pos
	closeIdx := p.findMatchingParen(openIdx)
	after := p.tokens[closeIdx+1]
	if after.Type == lexer.FATARROW || after.Type == lexer.COLON {
		return p.parseLambda()
	}
	tok := p.advance() // '('
	inner := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN, "grouped expression")
	_ = tok
	return inner
}

func (p *Parser) parseLambda() ast.Expression {
	tok := p.expect(lexer.LPAREN, "lambda parameters")
	var params []ast.Param
	for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
		variadic := false
		if _, ok := p.accept(lexer.ELLIPSIS); ok {
			variadic = true
		}
		nameTok := p.expect(lexer.IDENT, "lambda parameter")
		var typeExpr ast.TypeExpr
		if _, ok := p.accept(lexer.COLON); ok {
			typeExpr = p.parseTypeExpr()
		}
		params = append(params, ast.Param{Name: nameTok.Literal, Type: typeExpr, IsVariadic: variadic})
		if _, ok := p.accept(lexer.COMMA); !ok {
			break
		}
	}
	p.expect(lexer.RPAREN, "lambda parameters")
	var retType ast.TypeExpr
	if _, ok := p.accept(lexer.COLON); ok {
		retType = p.parseTypeExpr()
	}
	p.expect(lexer.FATARROW, "lambda body")
	body := p.parseExpression(LOWEST)
	return &ast.LambdaExpression{Token: toPos(tok), Params: params, ReturnType: retType, Body: body}
}

func (p *Parser) parseBlockStatements(close lexer.TokenType) []ast.Statement {
	var stmts []ast.Statement
	for !p.at(close) && !p.at(lexer.EOF) {
		stmts = append(stmts, p.parseStatement())
		p.accept(lexer.SEMI)
	}
	return stmts
}

func (p *Parser) parseDoBlock() ast.Expression {
	tok := p.expect(lexer.DO, "do block")
	p.expect(lexer.LBRACE, "do block")
	stmts := p.parseBlockStatements(lexer.RBRACE)
	p.expect(lexer.RBRACE, "do block")
	return &ast.DoBlock{Token: toPos(tok), Statements: stmts}
}

func (p *Parser) parseGenerateBlock() ast.Expression {
	tok := p.expect(lexer.GENERATE, "generate block")
	p.expect(lexer.LBRACE, "generate block")
	stmts := p.parseBlockStatements(lexer.RBRACE)
	p.expect(lexer.RBRACE, "generate block")
	return &ast.GenerateBlock{Token: toPos(tok), Statements: stmts}
}

func (p *Parser) parseTryExpression() ast.Expression {
	tok := p.expect(lexer.TRY, "try expression")
	body := p.parseDoBlockOrBraceExpr()
	p.expect(lexer.CATCH, "try/catch")
	p.expect(lexer.LPAREN, "catch binding")
	nameTok := p.expect(lexer.IDENT, "catch binding name")
	p.expect(lexer.RPAREN, "catch binding")
	handler := p.parseDoBlockOrBraceExpr()
	return &ast.TryExpression{Token: toPos(tok), Body: body, CatchName: nameTok.Literal, Handler: handler}
}

// parseDoBlockOrBraceExpr parses a `{ stmt; ...; expr }` block as an
// implicit do-block — used by try/catch bodies, which spec 4.4.4 writes
// with bare braces rather than a leading `do` keyword.
func (p *Parser) parseDoBlockOrBraceExpr() ast.Expression {
	tok := p.expect(lexer.LBRACE, "block")
	stmts := p.parseBlockStatements(lexer.RBRACE)
	p.expect(lexer.RBRACE, "block")
	return &ast.DoBlock{Token: toPos(tok), Statements: stmts}
}

func (p *Parser) parseWhileExpression() ast.Expression {
	tok := p.expect(lexer.WHILE, "while expression")
	p.expect(lexer.LPAREN, "while condition")
	cond := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN, "while condition")
	body := p.parseDoBlockOrBraceExpr()
	return &ast.WhileExpression{Token: toPos(tok), Condition: cond, Body: body}
}

func (p *Parser) parseForExpression() ast.Expression {
	tok := p.expect(lexer.FOR, "for expression")
	p.expect(lexer.LPAREN, "for binding")
	nameTok := p.expect(lexer.IDENT, "for loop variable")
	p.expect(lexer.IN, "for loop")
	iter := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN, "for loop")
	body := p.parseDoBlockOrBraceExpr()
	return &ast.ForExpression{Token: toPos(tok), VarName: nameTok.Literal, Iterable: iter, Body: body}
}

func (p *Parser) parseMatchExpression() ast.Expression {
	tok := p.expect(lexer.MATCH, "match expression")
	target := p.parseExpression(LOWEST)
	p.expect(lexer.LBRACE, "match arms")
	var arms []ast.MatchArm
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		pattern := p.parsePattern()
		p.expect(lexer.FATARROW, "match arm")
		body := p.parseExpression(LOWEST)
		arms = append(arms, ast.MatchArm{Pattern: pattern, Body: body})
		if _, ok := p.accept(lexer.COMMA); !ok {
			break
		}
	}
	p.expect(lexer.RBRACE, "match arms")
	return &ast.MatchExpression{Token: toPos(tok), Target: target, Arms: arms}
}
