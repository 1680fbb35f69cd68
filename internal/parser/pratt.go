package parser

import (
	"strconv"

	"github.com/eddndev/achronyme/internal/lexer"
	"github.com/eddndev/achronyme/pkg/ast"
)

// Precedence levels, lowest to highest, per spec 4.4.2: power (right-assoc)
// > unary (-, !) > * / % > + - > edge ops (->, <>) > comparison > && > ||.
const (
	LOWEST int = iota
	ORPREC
	ANDPREC
	COMPARISONPREC
	EDGEPREC
	ADDPREC
	MULPREC
	UNARYPREC
	POWERPREC
	CALLPREC
)

var precedences = map[lexer.TokenType]int{
	lexer.OR:         ORPREC,
	lexer.AND:        ANDPREC,
	lexer.EQ:         COMPARISONPREC,
	lexer.NEQ:        COMPARISONPREC,
	lexer.LT:         COMPARISONPREC,
	lexer.LTE:        COMPARISONPREC,
	lexer.GT:         COMPARISONPREC,
	lexer.GTE:        COMPARISONPREC,
	lexer.ARROW:      EDGEPREC,
	lexer.UNDIRECTED: EDGEPREC,
	lexer.PLUS:       ADDPREC,
	lexer.MINUS:      ADDPREC,
	lexer.STAR:       MULPREC,
	lexer.SLASH:      MULPREC,
	lexer.PERCENT:    MULPREC,
	lexer.CARET:      POWERPREC,
	lexer.LPAREN:     CALLPREC,
	lexer.LBRACKET:   CALLPREC,
	lexer.DOT:        CALLPREC,
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.cur().Type]; ok {
		return prec
	}
	return LOWEST
}

// parseExpression is the Pratt entry point: parse a prefix expression, then
// fold in infix/postfix operators while the next token binds tighter than
// precedence.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	left := p.parsePrefix()
	for precedence < p.peekPrecedence() {
		switch p.cur().Type {
		case lexer.LPAREN:
			left = p.parseCall(left)
		case lexer.LBRACKET:
			left = p.parseIndex(left)
		case lexer.DOT:
			left = p.parseFieldAccess(left)
		case lexer.CARET:
			left = p.parseBinary(left, true)
		case lexer.ARROW, lexer.UNDIRECTED:
			left = p.parseEdge(left)
		default:
			left = p.parseBinary(left, false)
		}
	}
	return left
}

func (p *Parser) parseBinary(left ast.Expression, rightAssoc bool) ast.Expression {
	tok := p.advance()
	prec := precedences[tok.Type]
	var right ast.Expression
	if rightAssoc {
		right = p.parseExpression(prec - 1)
	} else {
		right = p.parseExpression(prec)
	}
	return &ast.BinaryExpression{Token: toPos(tok), Operator: tok.Literal, Left: left, Right: right}
}

func (p *Parser) parseEdge(left ast.Expression) ast.Expression {
	tok := p.advance()
	directed := tok.Type == lexer.ARROW
	right := p.parseExpression(EDGEPREC)
	edge := &ast.EdgeExpression{Token: toPos(tok), From: left, To: right, Directed: directed}
	if p.at(lexer.LBRACE) {
		edge.Properties = p.parseRecordLiteral()
	}
	return edge
}

func (p *Parser) parseCall(callee ast.Expression) ast.Expression {
	tok := p.advance() // '('
	var args []ast.Expression
	for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
		if spreadTok, ok := p.accept(lexer.ELLIPSIS); ok {
			args = append(args, &ast.SpreadExpression{Token: toPos(spreadTok), Value: p.parseExpression(LOWEST)})
		} else {
			args = append(args, p.parseExpression(LOWEST))
		}
		if _, ok := p.accept(lexer.COMMA); !ok {
			break
		}
	}
	p.expect(lexer.RPAREN, "call arguments")
	return &ast.CallExpression{Token: toPos(tok), Callee: callee, Args: args}
}

func (p *Parser) parseIndex(target ast.Expression) ast.Expression {
	tok := p.advance() // '['
	var indices []ast.Expression
	for !p.at(lexer.RBRACKET) && !p.at(lexer.EOF) {
		indices = append(indices, p.parseIndexArg())
		if _, ok := p.accept(lexer.COMMA); !ok {
			break
		}
	}
	p.expect(lexer.RBRACKET, "index expression")
	return &ast.IndexExpression{Token: toPos(tok), Target: target, Indices: indices}
}

// parseIndexArg parses a single index slot, which may be a bare expression
// or a `start..end` range with either bound optional.
func (p *Parser) parseIndexArg() ast.Expression {
	tok := p.cur()
	var start ast.Expression
	if !p.at(lexer.DOTDOT) {
		start = p.parseExpression(LOWEST)
	}
	if dotdot, ok := p.accept(lexer.DOTDOT); ok {
		var end ast.Expression
		if !p.at(lexer.RBRACKET) && !p.at(lexer.COMMA) {
			end = p.parseExpression(LOWEST)
		}
		return &ast.RangeExpression{Token: toPos(dotdot), Start: start, End: end}
	}
	_ = tok
	return start
}

func (p *Parser) parseFieldAccess(target ast.Expression) ast.Expression {
	tok := p.advance() // '.'
	nameTok := p.expect(lexer.IDENT, "field name")
	return &ast.FieldAccess{Token: toPos(tok), Target: target, Field: nameTok.Literal}
}

func (p *Parser) parsePrefix() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case lexer.NUMBER:
		return p.parseNumberLiteral()
	case lexer.IMAGINARY:
		return p.parseComplexLiteral()
	case lexer.STRING:
		p.advance()
		return &ast.StringLiteral{Token: toPos(tok), Value: tok.Literal}
	case lexer.TRUE, lexer.FALSE:
		p.advance()
		return &ast.BooleanLiteral{Token: toPos(tok), Value: tok.Type == lexer.TRUE}
	case lexer.NULL:
		p.advance()
		return &ast.NullLiteral{Token: toPos(tok)}
	case lexer.IDENT:
		p.advance()
		return &ast.Identifier{Token: toPos(tok), Name: tok.Literal}
	case lexer.REC:
		p.advance()
		return &ast.RecExpression{Token: toPos(tok)}
	case lexer.SELF:
		p.advance()
		return &ast.SelfExpression{Token: toPos(tok)}
	case lexer.MINUS, lexer.BANG:
		p.advance()
		operand := p.parseExpression(UNARYPREC)
		return &ast.UnaryExpression{Token: toPos(tok), Operator: tok.Literal, Operand: operand}
	case lexer.LPAREN:
		return p.parseParenOrLambda()
	case lexer.LBRACKET:
		return p.parseArrayLiteral()
	case lexer.LBRACE:
		return p.parseRecordLiteral()
	case lexer.DO:
		return p.parseDoBlock()
	case lexer.TRY:
		return p.parseTryExpression()
	case lexer.THROW:
		p.advance()
		return &ast.ThrowExpression{Token: toPos(tok), Value: p.parseExpression(LOWEST)}
	case lexer.MATCH:
		return p.parseMatchExpression()
	case lexer.WHILE:
		return p.parseWhileExpression()
	case lexer.FOR:
		return p.parseForExpression()
	case lexer.GENERATE:
		return p.parseGenerateBlock()
	case lexer.YIELD:
		p.advance()
		return &ast.YieldExpression{Token: toPos(tok), Value: p.parseExpression(LOWEST)}
	case lexer.RETURN:
		p.advance()
		return &ast.ReturnExpression{Token: toPos(tok), Value: p.parseExpression(LOWEST)}
	default:
		p.errorf(tok.Pos, "unexpected token %q in expression", tok.Literal)
		p.advance()
		return &ast.NullLiteral{Token: toPos(tok)}
	}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	tok := p.advance()
	val, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.errorf(tok.Pos, "invalid number literal %q", tok.Literal)
	}
	return &ast.NumberLiteral{Token: toPos(tok), Value: val, Raw: tok.Literal}
}

func (p *Parser) parseComplexLiteral() ast.Expression {
	tok := p.advance()
	val, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.errorf(tok.Pos, "invalid imaginary literal %q", tok.Literal)
	}
	return &ast.ComplexLiteral{Token: toPos(tok), Imaginary: val}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.advance() // '['
	var elements []ast.Expression
	for !p.at(lexer.RBRACKET) && !p.at(lexer.EOF) {
		if spreadTok, ok := p.accept(lexer.ELLIPSIS); ok {
			elements = append(elements, &ast.SpreadExpression{Token: toPos(spreadTok), Value: p.parseExpression(LOWEST)})
		} else {
			elements = append(elements, p.parseExpression(LOWEST))
		}
		if _, ok := p.accept(lexer.COMMA); !ok {
			break
		}
	}
	p.expect(lexer.RBRACKET, "array literal")
	return &ast.ArrayLiteral{Token: toPos(tok), Elements: elements}
}

func (p *Parser) parseRecordLiteral() *ast.RecordLiteral {
	tok := p.expect(lexer.LBRACE, "record literal")
	rec := &ast.RecordLiteral{Token: toPos(tok)}
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		if spreadTok, ok := p.accept(lexer.ELLIPSIS); ok {
			rec.Fields = append(rec.Fields, ast.RecordField{Spread: p.parseExpression(LOWEST)})
			_ = spreadTok
		} else {
			isMut := false
			if _, ok := p.accept(lexer.MUT); ok {
				isMut = true
			}
			nameTok := p.expect(lexer.IDENT, "record field name")
			var value ast.Expression
			if _, ok := p.accept(lexer.COLON); ok {
				value = p.parseExpression(LOWEST)
			} else {
				// shorthand `{ x }` === `{ x: x }`
				value = &ast.Identifier{Token: toPos(nameTok), Name: nameTok.Literal}
			}
			rec.Fields = append(rec.Fields, ast.RecordField{Name: nameTok.Literal, IsMut: isMut, Value: value})
		}
		if _, ok := p.accept(lexer.COMMA); !ok {
			break
		}
	}
	p.expect(lexer.RBRACE, "record literal")
	return rec
}
