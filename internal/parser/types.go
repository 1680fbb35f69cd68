package parser

import (
	"github.com/eddndev/achronyme/internal/lexer"
	"github.com/eddndev/achronyme/pkg/ast"
)

// parseTypeExpr parses a gradual type annotation: a base/alias name, a
// function signature `(T, ...): U`, or a `|`-separated union of either
// (spec 3.2).
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	first := p.parseTypeAtom()
	if !p.at(lexer.PIPE) {
		return first
	}
	members := []ast.TypeExpr{first}
	for {
		if _, ok := p.accept(lexer.PIPE); !ok {
			break
		}
		members = append(members, p.parseTypeAtom())
	}
	return &ast.UnionType{Members: members}
}

func (p *Parser) parseTypeAtom() ast.TypeExpr {
	tok := p.cur()
	if tok.Type == lexer.LPAREN {
		return p.parseFunctionType()
	}
	nameTok := p.expect(lexer.IDENT, "type name")
	return &ast.NamedType{Token: toPos(nameTok), Name: nameTok.Literal}
}

func (p *Parser) parseFunctionType() ast.TypeExpr {
	tok := p.expect(lexer.LPAREN, "function type")
	var params []ast.TypeExpr
	for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
		params = append(params, p.parseTypeExpr())
		if _, ok := p.accept(lexer.COMMA); !ok {
			break
		}
	}
	p.expect(lexer.RPAREN, "function type")
	var ret ast.TypeExpr
	if _, ok := p.accept(lexer.COLON); ok {
		ret = p.parseTypeExpr()
	}
	return &ast.FunctionType{Token: toPos(tok), Params: params, ReturnType: ret}
}
