package ast

import "strings"

// Pattern is a `match` arm pattern or a destructuring binding target.
type Pattern interface {
	Node
	patternNode()
}

func (*LiteralPattern) patternNode()  {}
func (*WildcardPattern) patternNode() {}
func (*VarPattern) patternNode()      {}
func (*RecordPattern) patternNode()   {}
func (*VectorPattern) patternNode()   {}
func (*TypePattern) patternNode()     {}
func (*GuardedPattern) patternNode()  {}

// LiteralPattern matches by structural equality against a literal value.
type LiteralPattern struct {
	Token   Position
	Literal Expression
}

func (p *LiteralPattern) Pos() Position  { return p.Token }
func (p *LiteralPattern) String() string { return p.Literal.String() }

// WildcardPattern is `_`: always matches, binds nothing.
type WildcardPattern struct{ Token Position }

func (p *WildcardPattern) Pos() Position  { return p.Token }
func (p *WildcardPattern) String() string { return "_" }

// VarPattern always matches and binds Name in the arm's scope.
type VarPattern struct {
	Token Position
	Name  string
}

func (p *VarPattern) Pos() Position  { return p.Token }
func (p *VarPattern) String() string { return p.Name }

// RecordFieldPattern is one `name: pattern` entry; Shorthand means the
// source wrote bare `{ name }`, equivalent to `{ name: name }`.
type RecordFieldPattern struct {
	Name      string
	Pattern   Pattern
	Shorthand bool
}

// RecordPattern is `{ f1: p1, f2: p2, ... }`; matches records containing at
// least the named fields (extra fields are ignored).
type RecordPattern struct {
	Token  Position
	Fields []RecordFieldPattern
}

func (p *RecordPattern) Pos() Position { return p.Token }
func (p *RecordPattern) String() string {
	parts := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		parts[i] = f.Name + ": " + f.Pattern.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// VectorPattern is `[p1, ..., pk]`, optionally with a trailing
// `...rest` binding the remainder (length >= k).
type VectorPattern struct {
	Token    Position
	Elements []Pattern
	Rest     string // "" if there is no rest binding
	HasRest  bool
}

func (p *VectorPattern) Pos() Position { return p.Token }
func (p *VectorPattern) String() string {
	parts := make([]string, len(p.Elements))
	for i, e := range p.Elements {
		parts[i] = e.String()
	}
	if p.HasRest {
		parts = append(parts, "..."+p.Rest)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// TypePattern matches when type(v) equals TypeName ("Number" also matches
// any numeric kind; "Any" matches anything).
type TypePattern struct {
	Token    Position
	TypeName string
}

func (p *TypePattern) Pos() Position  { return p.Token }
func (p *TypePattern) String() string { return p.TypeName }

// GuardedPattern is `pattern if (cond)`: Pattern must match and then Cond
// must be truthy with the pattern's bindings in scope.
type GuardedPattern struct {
	Token   Position
	Pattern Pattern
	Cond    Expression
}

func (p *GuardedPattern) Pos() Position { return p.Token }
func (p *GuardedPattern) String() string {
	return p.Pattern.String() + " if (" + p.Cond.String() + ")"
}
