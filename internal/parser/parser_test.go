package parser

import (
	"testing"

	"github.com/eddndev/achronyme/pkg/ast"
)

func parseOneExpr(t *testing.T, src string) ast.Expression {
	t.Helper()
	p := New(src, "test.ach")
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("parse errors for %q: %v", src, p.Errors()[0].Message)
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	es, ok := prog.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected ExpressionStatement, got %T", prog.Statements[0])
	}
	return es.Expression
}

func TestLetAndMutStatements(t *testing.T) {
	p := New(`let x = 1
mut y: Number = 2`, "test.ach")
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("parse errors: %v", p.Errors()[0].Message)
	}
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Statements))
	}
	if _, ok := prog.Statements[0].(*ast.LetStatement); !ok {
		t.Errorf("statement[0] = %T, want LetStatement", prog.Statements[0])
	}
	if _, ok := prog.Statements[1].(*ast.MutStatement); !ok {
		t.Errorf("statement[1] = %T, want MutStatement", prog.Statements[1])
	}
}

func TestOperatorPrecedence(t *testing.T) {
	expr := parseOneExpr(t, "1 + 2 * 3")
	bin, ok := expr.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("expected BinaryExpression, got %T", expr)
	}
	if bin.Operator != "+" {
		t.Fatalf("top operator = %q, want +", bin.Operator)
	}
	rhs, ok := bin.Right.(*ast.BinaryExpression)
	if !ok || rhs.Operator != "*" {
		t.Fatalf("right side should be a multiplication, got %#v", bin.Right)
	}
}

func TestPowerRightAssociative(t *testing.T) {
	expr := parseOneExpr(t, "2 ^ 3 ^ 2")
	bin, ok := expr.(*ast.BinaryExpression)
	if !ok || bin.Operator != "^" {
		t.Fatalf("expected top-level ^, got %#v", expr)
	}
	if _, ok := bin.Right.(*ast.BinaryExpression); !ok {
		t.Fatalf("expected right-associative nesting on the right side")
	}
	if _, ok := bin.Left.(*ast.NumberLiteral); !ok {
		t.Fatalf("expected a plain literal on the left side")
	}
}

func TestIfParsesAsCall(t *testing.T) {
	expr := parseOneExpr(t, `if(x < 0, -1, 1)`)
	call, ok := expr.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected CallExpression, got %T", expr)
	}
	ident, ok := call.Callee.(*ast.Identifier)
	if !ok || ident.Name != "if" {
		t.Fatalf("callee = %#v, want identifier \"if\"", call.Callee)
	}
	if len(call.Args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(call.Args))
	}
}

func TestLambdaVsGrouped(t *testing.T) {
	lambda := parseOneExpr(t, "(x, y) => x + y")
	if _, ok := lambda.(*ast.LambdaExpression); !ok {
		t.Fatalf("expected LambdaExpression, got %T", lambda)
	}

	grouped := parseOneExpr(t, "(1 + 2) * 3")
	bin, ok := grouped.(*ast.BinaryExpression)
	if !ok || bin.Operator != "*" {
		t.Fatalf("expected grouped expression folded into *, got %#v", grouped)
	}
}

func TestArrayLiteralWithSpread(t *testing.T) {
	expr := parseOneExpr(t, "[1, 2, ...rest]")
	arr, ok := expr.(*ast.ArrayLiteral)
	if !ok {
		t.Fatalf("expected ArrayLiteral, got %T", expr)
	}
	if len(arr.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(arr.Elements))
	}
	if _, ok := arr.Elements[2].(*ast.SpreadExpression); !ok {
		t.Fatalf("expected last element to be a spread, got %T", arr.Elements[2])
	}
}

func TestRecordLiteralWithMutAndSpread(t *testing.T) {
	expr := parseOneExpr(t, `{ mut v: 0, name: "a", ...base }`)
	rec, ok := expr.(*ast.RecordLiteral)
	if !ok {
		t.Fatalf("expected RecordLiteral, got %T", expr)
	}
	if len(rec.Fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(rec.Fields))
	}
	if !rec.Fields[0].IsMut || rec.Fields[0].Name != "v" {
		t.Fatalf("field[0] = %#v, want mut v", rec.Fields[0])
	}
	if rec.Fields[2].Spread == nil {
		t.Fatalf("field[2] should be a spread")
	}
}

func TestIndexRangeParsing(t *testing.T) {
	expr := parseOneExpr(t, "v[1..3]")
	idx, ok := expr.(*ast.IndexExpression)
	if !ok {
		t.Fatalf("expected IndexExpression, got %T", expr)
	}
	rng, ok := idx.Indices[0].(*ast.RangeExpression)
	if !ok {
		t.Fatalf("expected RangeExpression index, got %T", idx.Indices[0])
	}
	if rng.Start == nil || rng.End == nil {
		t.Fatalf("expected both bounds present")
	}
}

func TestMatchExpression(t *testing.T) {
	expr := parseOneExpr(t, `match v { [] => "empty", [h, ...t] => h, _ => "other" }`)
	m, ok := expr.(*ast.MatchExpression)
	if !ok {
		t.Fatalf("expected MatchExpression, got %T", expr)
	}
	if len(m.Arms) != 3 {
		t.Fatalf("expected 3 arms, got %d", len(m.Arms))
	}
	vp, ok := m.Arms[1].Pattern.(*ast.VectorPattern)
	if !ok || !vp.HasRest || vp.Rest != "t" {
		t.Fatalf("arm[1] pattern = %#v, want vector pattern with rest t", m.Arms[1].Pattern)
	}
}

func TestEdgeExpression(t *testing.T) {
	expr := parseOneExpr(t, `"a" -> "b"`)
	edge, ok := expr.(*ast.EdgeExpression)
	if !ok || !edge.Directed {
		t.Fatalf("expected directed EdgeExpression, got %#v", expr)
	}
}

func TestComplexLiteral(t *testing.T) {
	expr := parseOneExpr(t, "3i")
	c, ok := expr.(*ast.ComplexLiteral)
	if !ok || c.Imaginary != 3 {
		t.Fatalf("expected ComplexLiteral(3), got %#v", expr)
	}
}
