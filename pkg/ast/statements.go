package ast

func (*LetStatement) statementNode()        {}
func (*MutStatement) statementNode()        {}
func (*TypeAliasStatement) statementNode()  {}
func (*AssignStatement) statementNode()     {}
func (*ExpressionStatement) statementNode() {}
func (*ImportStatement) statementNode()     {}
func (*ExportStatement) statementNode()     {}

// LetStatement is `let name [: Type] = expr` — an immutable binding.
type LetStatement struct {
	Token Position
	Name  string
	Type  TypeExpr
	Value Expression
}

func (n *LetStatement) Pos() Position  { return n.Token }
func (n *LetStatement) String() string { return "let " + n.Name + " = " + n.Value.String() }

// MutStatement is `mut name [: Type] = expr` — a mutable binding.
type MutStatement struct {
	Token Position
	Name  string
	Type  TypeExpr
	Value Expression
}

func (n *MutStatement) Pos() Position  { return n.Token }
func (n *MutStatement) String() string { return "mut " + n.Name + " = " + n.Value.String() }

// TypeAliasStatement is `type Name = TypeExpr`.
type TypeAliasStatement struct {
	Token Position
	Name  string
	Type  TypeExpr
}

func (n *TypeAliasStatement) Pos() Position  { return n.Token }
func (n *TypeAliasStatement) String() string { return "type " + n.Name + " = " + n.Type.String() }

// Lvalue is an assignable target: identifier or field access.
// Indexed assignment (`arr[i] = v`) is deliberately not an Lvalue — spec
// section 8 documents index-assignment as unsupported (Open Question,
// resolved as "preserve the limitation"; see DESIGN.md).
type Lvalue interface {
	Expression
	lvalueNode()
}

func (*Identifier) lvalueNode()  {}
func (*FieldAccess) lvalueNode() {}

// AssignStatement is `lvalue = expr`.
type AssignStatement struct {
	Token  Position
	Target Lvalue
	Value  Expression
}

func (n *AssignStatement) Pos() Position  { return n.Token }
func (n *AssignStatement) String() string { return n.Target.String() + " = " + n.Value.String() }

// ExpressionStatement wraps a bare expression used as a statement.
type ExpressionStatement struct {
	Token      Position
	Expression Expression
}

func (n *ExpressionStatement) Pos() Position  { return n.Token }
func (n *ExpressionStatement) String() string { return n.Expression.String() }

// ImportStatement is `import name in "path"` (or `import name`).
type ImportStatement struct {
	Token Position
	Names []string
	Path  string
}

func (n *ImportStatement) Pos() Position  { return n.Token }
func (n *ImportStatement) String() string { return "import ..." }

// ExportStatement is `export name` or `export let name = expr`.
type ExportStatement struct {
	Token Position
	Inner Statement
}

func (n *ExportStatement) Pos() Position  { return n.Token }
func (n *ExportStatement) String() string { return "export " + n.Inner.String() }
