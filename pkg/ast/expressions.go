package ast

import (
	"strconv"
	"strings"
)

func (*Identifier) expressionNode()        {}
func (*NumberLiteral) expressionNode()     {}
func (*BooleanLiteral) expressionNode()    {}
func (*StringLiteral) expressionNode()     {}
func (*ComplexLiteral) expressionNode()    {}
func (*NullLiteral) expressionNode()       {}
func (*ArrayLiteral) expressionNode()      {}
func (*RecordLiteral) expressionNode()     {}
func (*IndexExpression) expressionNode()   {}
func (*FieldAccess) expressionNode()       {}
func (*UnaryExpression) expressionNode()   {}
func (*BinaryExpression) expressionNode()  {}
func (*CallExpression) expressionNode()    {}
func (*LambdaExpression) expressionNode()  {}
func (*DoBlock) expressionNode()           {}
func (*TryExpression) expressionNode()     {}
func (*ThrowExpression) expressionNode()   {}
func (*MatchExpression) expressionNode()   {}
func (*WhileExpression) expressionNode()   {}
func (*ForExpression) expressionNode()     {}
func (*GenerateBlock) expressionNode()     {}
func (*YieldExpression) expressionNode()   {}
func (*ReturnExpression) expressionNode()  {}
func (*RecExpression) expressionNode()     {}
func (*SelfExpression) expressionNode()    {}
func (*EdgeExpression) expressionNode()    {}
func (*RangeExpression) expressionNode()   {}
func (*SpreadExpression) expressionNode()  {}

// Identifier is a bare name reference, resolved via environment.Get.
type Identifier struct {
	Token Position
	Name  string
}

func (n *Identifier) Pos() Position  { return n.Token }
func (n *Identifier) String() string { return n.Name }

// NumberLiteral is an IEEE-754 double literal.
type NumberLiteral struct {
	Token Position
	Value float64
	Raw   string
}

func (n *NumberLiteral) Pos() Position  { return n.Token }
func (n *NumberLiteral) String() string { return n.Raw }

// BooleanLiteral is `true`/`false`.
type BooleanLiteral struct {
	Token Position
	Value bool
}

func (n *BooleanLiteral) Pos() Position { return n.Token }
func (n *BooleanLiteral) String() string {
	if n.Value {
		return "true"
	}
	return "false"
}

// StringLiteral is a quoted string; Value has escapes already resolved.
type StringLiteral struct {
	Token Position
	Value string
}

func (n *StringLiteral) Pos() Position  { return n.Token }
func (n *StringLiteral) String() string { return "\"" + n.Value + "\"" }

// ComplexLiteral is a number with the `i` imaginary suffix, e.g. `3i`, `2.5i`.
type ComplexLiteral struct {
	Token     Position
	Imaginary float64
}

func (n *ComplexLiteral) Pos() Position { return n.Token }
func (n *ComplexLiteral) String() string {
	return strconv.FormatFloat(n.Imaginary, 'g', -1, 64) + "i"
}

// NullLiteral is the `null` sentinel.
type NullLiteral struct {
	Token Position
}

func (n *NullLiteral) Pos() Position  { return n.Token }
func (n *NullLiteral) String() string { return "null" }

// ArrayLiteral is `[e1, e2, ...rest]`; elements that are SpreadExpressions
// are flattened into the constructed Vector at evaluation time.
type ArrayLiteral struct {
	Token    Position
	Elements []Expression
}

func (n *ArrayLiteral) Pos() Position { return n.Token }
func (n *ArrayLiteral) String() string {
	parts := make([]string, len(n.Elements))
	for i, e := range n.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// SpreadExpression wraps `...expr` wherever a spread is syntactically legal
// (array literals, record literals, call arguments).
type SpreadExpression struct {
	Token Position
	Value Expression
}

func (n *SpreadExpression) Pos() Position  { return n.Token }
func (n *SpreadExpression) String() string { return "..." + n.Value.String() }

// RecordField is one `name: value` pair of a record literal, or a bare
// `...expr` spread (Spread != nil, Name == "").
type RecordField struct {
	Name     string
	IsMut    bool
	Value    Expression
	Spread   Expression
}

// RecordLiteral is `{ f1: e1, mut f2: e2, ...rest }`.
type RecordLiteral struct {
	Token  Position
	Fields []RecordField
}

func (n *RecordLiteral) Pos() Position { return n.Token }
func (n *RecordLiteral) String() string {
	parts := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		if f.Spread != nil {
			parts[i] = "..." + f.Spread.String()
			continue
		}
		prefix := ""
		if f.IsMut {
			prefix = "mut "
		}
		parts[i] = prefix + f.Name + ": " + f.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// IndexExpression is `target[i1, i2, ...]`; each index may itself be a
// RangeExpression for slicing.
type IndexExpression struct {
	Token   Position
	Target  Expression
	Indices []Expression
}

func (n *IndexExpression) Pos() Position { return n.Token }
func (n *IndexExpression) String() string {
	parts := make([]string, len(n.Indices))
	for i, idx := range n.Indices {
		parts[i] = idx.String()
	}
	return n.Target.String() + "[" + strings.Join(parts, ", ") + "]"
}

// RangeExpression is a half-open `start..end` used inside an index list.
// Either bound may be nil, meaning "from the start"/"to the end".
type RangeExpression struct {
	Token Position
	Start Expression
	End   Expression
}

func (n *RangeExpression) Pos() Position { return n.Token }
func (n *RangeExpression) String() string {
	start, end := "", ""
	if n.Start != nil {
		start = n.Start.String()
	}
	if n.End != nil {
		end = n.End.String()
	}
	return start + ".." + end
}

// FieldAccess is `target.field`.
type FieldAccess struct {
	Token  Position
	Target Expression
	Field  string
}

func (n *FieldAccess) Pos() Position  { return n.Token }
func (n *FieldAccess) String() string { return n.Target.String() + "." + n.Field }

// UnaryExpression is a prefix operator: `-x`, `!x`.
type UnaryExpression struct {
	Token    Position
	Operator string
	Operand  Expression
}

func (n *UnaryExpression) Pos() Position  { return n.Token }
func (n *UnaryExpression) String() string { return "(" + n.Operator + n.Operand.String() + ")" }

// BinaryExpression is an infix operator application.
type BinaryExpression struct {
	Token    Position
	Operator string
	Left     Expression
	Right    Expression
}

func (n *BinaryExpression) Pos() Position { return n.Token }
func (n *BinaryExpression) String() string {
	return "(" + n.Left.String() + " " + n.Operator + " " + n.Right.String() + ")"
}

// CallExpression is `callee(args...)`. `if`/`piecewise` parse into this
// node with Callee being a bare Identifier ("if"/"piecewise"); the
// evaluator special-cases those names as control forms (spec 4.4.4).
type CallExpression struct {
	Token  Position
	Callee Expression
	Args   []Expression
}

func (n *CallExpression) Pos() Position { return n.Token }
func (n *CallExpression) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return n.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

// Param is one lambda parameter, with an optional type annotation.
type Param struct {
	Name       string
	Type       TypeExpr
	IsVariadic bool
}

// LambdaExpression is `(p1, p2) => body` or the full block form.
type LambdaExpression struct {
	Token      Position
	Params     []Param
	ReturnType TypeExpr
	Body       Expression
}

func (n *LambdaExpression) Pos() Position { return n.Token }
func (n *LambdaExpression) String() string {
	parts := make([]string, len(n.Params))
	for i, p := range n.Params {
		parts[i] = p.Name
	}
	return "(" + strings.Join(parts, ", ") + ") => " + n.Body.String()
}

// DoBlock is `do { stmt; ...; expr }`; its value is the value of the final
// expression statement, or Null if the last statement isn't an expression.
type DoBlock struct {
	Token      Position
	Statements []Statement
}

func (n *DoBlock) Pos() Position  { return n.Token }
func (n *DoBlock) String() string { return "do { ... }" }

// TryExpression is `try { Body } catch (Name) { Handler }`.
type TryExpression struct {
	Token     Position
	Body      Expression
	CatchName string
	Handler   Expression
}

func (n *TryExpression) Pos() Position  { return n.Token }
func (n *TryExpression) String() string { return "try { ... } catch (" + n.CatchName + ") { ... }" }

// ThrowExpression is `throw expr`.
type ThrowExpression struct {
	Token Position
	Value Expression
}

func (n *ThrowExpression) Pos() Position  { return n.Token }
func (n *ThrowExpression) String() string { return "throw " + n.Value.String() }

// MatchArm is one `pattern => expr` arm of a match expression.
type MatchArm struct {
	Pattern Pattern
	Body    Expression
}

// MatchExpression is `match expr { arm, arm, ... }`.
type MatchExpression struct {
	Token  Position
	Target Expression
	Arms   []MatchArm
}

func (n *MatchExpression) Pos() Position  { return n.Token }
func (n *MatchExpression) String() string { return "match " + n.Target.String() + " { ... }" }

// WhileExpression is `while (cond) { body }`.
type WhileExpression struct {
	Token     Position
	Condition Expression
	Body      Expression
}

func (n *WhileExpression) Pos() Position  { return n.Token }
func (n *WhileExpression) String() string { return "while (" + n.Condition.String() + ") { ... }" }

// ForExpression is `for (name in iter) { body }`.
type ForExpression struct {
	Token    Position
	VarName  string
	Iterable Expression
	Body     Expression
}

func (n *ForExpression) Pos() Position { return n.Token }
func (n *ForExpression) String() string {
	return "for (" + n.VarName + " in " + n.Iterable.String() + ") { ... }"
}

// GenerateBlock is `generate { ... }`, producing a Generator value.
type GenerateBlock struct {
	Token      Position
	Statements []Statement
}

func (n *GenerateBlock) Pos() Position  { return n.Token }
func (n *GenerateBlock) String() string { return "generate { ... }" }

// YieldExpression is `yield expr` inside a generate block.
type YieldExpression struct {
	Token Position
	Value Expression
}

func (n *YieldExpression) Pos() Position  { return n.Token }
func (n *YieldExpression) String() string { return "yield " + n.Value.String() }

// ReturnExpression is `return expr` inside a function body.
type ReturnExpression struct {
	Token Position
	Value Expression
}

func (n *ReturnExpression) Pos() Position  { return n.Token }
func (n *ReturnExpression) String() string { return "return " + n.Value.String() }

// RecExpression is the `rec` self-reference identifier inside a lambda.
type RecExpression struct{ Token Position }

func (n *RecExpression) Pos() Position  { return n.Token }
func (n *RecExpression) String() string { return "rec" }

// SelfExpression is the `self` identifier inside a record method.
type SelfExpression struct{ Token Position }

func (n *SelfExpression) Pos() Position  { return n.Token }
func (n *SelfExpression) String() string { return "self" }

// EdgeExpression is `a -> b` (directed) or `a <> b` (undirected), with an
// optional trailing record of properties.
type EdgeExpression struct {
	Token      Position
	From       Expression
	To         Expression
	Directed   bool
	Properties *RecordLiteral
}

func (n *EdgeExpression) Pos() Position { return n.Token }
func (n *EdgeExpression) String() string {
	op := "<>"
	if n.Directed {
		op = "->"
	}
	return n.From.String() + " " + op + " " + n.To.String()
}
