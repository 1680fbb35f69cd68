// Package parser implements a recursive-descent / Pratt parser that turns
// lexer tokens into the pkg/ast node shapes the evaluator consumes (spec
// section 3.2). Structurally grounded on the teacher's internal/parser
// (CWBudde-go-dws): a buffered token stream with explicit lookahead rather
// than a single-token-of-lookahead streaming parser, since lambda-vs-
// grouped-expression disambiguation needs to scan past a matching `)` to
// check for a following `=>`.
package parser

import (
	"fmt"

	"github.com/eddndev/achronyme/internal/errcat"
	"github.com/eddndev/achronyme/internal/lexer"
	"github.com/eddndev/achronyme/pkg/ast"
)

// Parser consumes the full token stream of one source unit and builds a
// Program. Errors are accumulated rather than aborting eagerly, so a
// REPL or `achronyme lex`-style tool can report more than one problem per
// parse.
type Parser struct {
	tokens []lexer.Token
	pos    int
	source string
	file   string
	errors []*errcat.SyntaxError
}

// New tokenizes the entire input up front and returns a Parser positioned
// at the first token.
func New(source, file string) *Parser {
	l := lexer.New(source)
	var toks []lexer.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == lexer.EOF {
			break
		}
	}
	return &Parser{tokens: toks, source: source, file: file}
}

func (p *Parser) Errors() []*errcat.SyntaxError { return p.errors }

func (p *Parser) cur() lexer.Token  { return p.tokens[p.pos] }
func (p *Parser) peekN(n int) lexer.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}
func (p *Parser) peek() lexer.Token { return p.peekN(1) }

func (p *Parser) advance() lexer.Token {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) at(tt lexer.TokenType) bool { return p.cur().Type == tt }

func (p *Parser) accept(tt lexer.TokenType) (lexer.Token, bool) {
	if p.at(tt) {
		return p.advance(), true
	}
	return lexer.Token{}, false
}

func (p *Parser) expect(tt lexer.TokenType, context string) lexer.Token {
	if p.at(tt) {
		return p.advance()
	}
	tok := p.cur()
	p.errorf(tok.Pos, "unexpected %q while parsing %s", tok.Literal, context)
	return tok
}

func (p *Parser) errorf(pos ast.Position, format string, args ...interface{}) {
	p.errors = append(p.errors, errcat.NewSyntaxError(pos, fmt.Sprintf(format, args...), p.source, p.file))
}

func toPos(t lexer.Token) ast.Position { return t.Pos }

// ParseProgram parses the full token stream into a Program of top-level
// statements.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.at(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.accept(lexer.SEMI)
	}
	return prog
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case lexer.LET:
		return p.parseLetStatement()
	case lexer.MUT:
		return p.parseMutStatement()
	case lexer.TYPE:
		return p.parseTypeAliasStatement()
	case lexer.IMPORT:
		return p.parseImportStatement()
	case lexer.EXPORT:
		return p.parseExportStatement()
	default:
		return p.parseAssignOrExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() ast.Statement {
	tok := p.advance() // 'let'
	nameTok := p.expect(lexer.IDENT, "let binding name")
	var typeExpr ast.TypeExpr
	if _, ok := p.accept(lexer.COLON); ok {
		typeExpr = p.parseTypeExpr()
	}
	p.expect(lexer.ASSIGN, "let binding")
	value := p.parseExpression(LOWEST)
	return &ast.LetStatement{Token: toPos(tok), Name: nameTok.Literal, Type: typeExpr, Value: value}
}

func (p *Parser) parseMutStatement() ast.Statement {
	tok := p.advance() // 'mut'
	nameTok := p.expect(lexer.IDENT, "mut binding name")
	var typeExpr ast.TypeExpr
	if _, ok := p.accept(lexer.COLON); ok {
		typeExpr = p.parseTypeExpr()
	}
	p.expect(lexer.ASSIGN, "mut binding")
	value := p.parseExpression(LOWEST)
	return &ast.MutStatement{Token: toPos(tok), Name: nameTok.Literal, Type: typeExpr, Value: value}
}

func (p *Parser) parseTypeAliasStatement() ast.Statement {
	tok := p.advance() // 'type'
	nameTok := p.expect(lexer.IDENT, "type alias name")
	p.expect(lexer.ASSIGN, "type alias")
	typeExpr := p.parseTypeExpr()
	return &ast.TypeAliasStatement{Token: toPos(tok), Name: nameTok.Literal, Type: typeExpr}
}

func (p *Parser) parseImportStatement() ast.Statement {
	tok := p.advance() // 'import'
	var names []string
	if _, ok := p.accept(lexer.LBRACE); ok {
		for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
			nameTok := p.expect(lexer.IDENT, "import name")
			names = append(names, nameTok.Literal)
			if _, ok := p.accept(lexer.COMMA); !ok {
				break
			}
		}
		p.expect(lexer.RBRACE, "import list")
	} else {
		nameTok := p.expect(lexer.IDENT, "import name")
		names = append(names, nameTok.Literal)
	}
	var path string
	if _, ok := p.accept(lexer.IN); ok {
		pathTok := p.expect(lexer.STRING, "import path")
		path = pathTok.Literal
	}
	return &ast.ImportStatement{Token: toPos(tok), Names: names, Path: path}
}

func (p *Parser) parseExportStatement() ast.Statement {
	tok := p.advance() // 'export'
	inner := p.parseStatement()
	return &ast.ExportStatement{Token: toPos(tok), Inner: inner}
}

// parseAssignOrExpressionStatement parses an expression, then checks
// whether it is followed by `=` to turn it into an assignment; only
// identifiers and field accesses are legal assignment targets (spec 3.2's
// Lvalue rule — index-assignment is not supported).
func (p *Parser) parseAssignOrExpressionStatement() ast.Statement {
	tok := p.cur()
	expr := p.parseExpression(LOWEST)
	if _, ok := p.accept(lexer.ASSIGN); ok {
		lv, ok := expr.(ast.Lvalue)
		if !ok {
			p.errorf(toPos(tok), "invalid assignment target")
			value := p.parseExpression(LOWEST)
			return &ast.ExpressionStatement{Token: toPos(tok), Expression: value}
		}
		value := p.parseExpression(LOWEST)
		return &ast.AssignStatement{Token: toPos(tok), Target: lv, Value: value}
	}
	return &ast.ExpressionStatement{Token: toPos(tok), Expression: expr}
}
