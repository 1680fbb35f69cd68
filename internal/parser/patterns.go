package parser

import (
	"github.com/eddndev/achronyme/internal/lexer"
	"github.com/eddndev/achronyme/pkg/ast"
)

var typeNames = map[string]bool{
	"Number": true, "String": true, "Boolean": true, "Complex": true,
	"Tensor": true, "ComplexTensor": true, "Vector": true, "Record": true,
	"Edge": true, "Function": true, "Generator": true, "Error": true,
	"Any": true, "Null": true,
}

// parsePattern parses one match-arm pattern, including an optional trailing
// `if (cond)` guard (spec 4.4.5).
func (p *Parser) parsePattern() ast.Pattern {
	base := p.parsePrimaryPattern()
	if p.cur().Type == lexer.IDENT && p.cur().Literal == "if" && p.peek().Type == lexer.LPAREN {
		tok := p.advance() // 'if'
		p.advance()        // '('
		cond := p.parseExpression(LOWEST)
		p.expect(lexer.RPAREN, "pattern guard")
		return &ast.GuardedPattern{Token: toPos(tok), Pattern: base, Cond: cond}
	}
	return base
}

func (p *Parser) parsePrimaryPattern() ast.Pattern {
	tok := p.cur()
	switch tok.Type {
	case lexer.UNDERSCORE:
		p.advance()
		return &ast.WildcardPattern{Token: toPos(tok)}
	case lexer.LBRACE:
		return p.parseRecordPattern()
	case lexer.LBRACKET:
		return p.parseVectorPattern()
	case lexer.IDENT:
		if typeNames[tok.Literal] {
			p.advance()
			return &ast.TypePattern{Token: toPos(tok), TypeName: tok.Literal}
		}
		p.advance()
		return &ast.VarPattern{Token: toPos(tok), Name: tok.Literal}
	case lexer.NUMBER, lexer.IMAGINARY, lexer.STRING, lexer.TRUE, lexer.FALSE, lexer.NULL, lexer.MINUS:
		lit := p.parseExpression(UNARYPREC)
		return &ast.LiteralPattern{Token: toPos(tok), Literal: lit}
	default:
		p.errorf(tok.Pos, "unexpected token %q in pattern", tok.Literal)
		p.advance()
		return &ast.WildcardPattern{Token: toPos(tok)}
	}
}

func (p *Parser) parseRecordPattern() ast.Pattern {
	tok := p.expect(lexer.LBRACE, "record pattern")
	rp := &ast.RecordPattern{Token: toPos(tok)}
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		nameTok := p.expect(lexer.IDENT, "record pattern field")
		if _, ok := p.accept(lexer.COLON); ok {
			sub := p.parsePattern()
			rp.Fields = append(rp.Fields, ast.RecordFieldPattern{Name: nameTok.Literal, Pattern: sub})
		} else {
			rp.Fields = append(rp.Fields, ast.RecordFieldPattern{
				Name:      nameTok.Literal,
				Pattern:   &ast.VarPattern{Token: toPos(nameTok), Name: nameTok.Literal},
				Shorthand: true,
			})
		}
		if _, ok := p.accept(lexer.COMMA); !ok {
			break
		}
	}
	p.expect(lexer.RBRACE, "record pattern")
	return rp
}

func (p *Parser) parseVectorPattern() ast.Pattern {
	tok := p.expect(lexer.LBRACKET, "vector pattern")
	vp := &ast.VectorPattern{Token: toPos(tok)}
	for !p.at(lexer.RBRACKET) && !p.at(lexer.EOF) {
		if _, ok := p.accept(lexer.ELLIPSIS); ok {
			nameTok := p.expect(lexer.IDENT, "rest binding")
			vp.Rest = nameTok.Literal
			vp.HasRest = true
			break
		}
		vp.Elements = append(vp.Elements, p.parsePattern())
		if _, ok := p.accept(lexer.COMMA); !ok {
			break
		}
	}
	p.expect(lexer.RBRACKET, "vector pattern")
	return vp
}
