package ast

import "strings"

// TypeExpr is a gradual type annotation as written in source: a base name,
// a union, a function signature, or a reference to a `type Name = ...` alias.
type TypeExpr interface {
	Node
	typeExprNode()
}

// NamedType is one of the base type names in spec section 3.2, or an alias
// reference resolved lazily by the type layer (internal/types).
type NamedType struct {
	Token Position
	Name  string
}

func (t *NamedType) typeExprNode() {}
func (t *NamedType) Pos() Position { return t.Token }
func (t *NamedType) String() string {
	return t.Name
}

// UnionType is `T | U` (possibly chained into more than two members).
type UnionType struct {
	Members []TypeExpr
}

func (t *UnionType) typeExprNode() {}
func (t *UnionType) Pos() Position {
	if len(t.Members) > 0 {
		return t.Members[0].Pos()
	}
	return Position{}
}
func (t *UnionType) String() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

// FunctionType is `(T, ...): U`.
type FunctionType struct {
	Token      Position
	Params     []TypeExpr
	ReturnType TypeExpr
}

func (t *FunctionType) typeExprNode() {}
func (t *FunctionType) Pos() Position { return t.Token }
func (t *FunctionType) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	ret := "Any"
	if t.ReturnType != nil {
		ret = t.ReturnType.String()
	}
	return "(" + strings.Join(parts, ", ") + "): " + ret
}
