// Package types implements the gradual type layer (spec 4.4.6, component
// G): checking annotated bindings/parameters against the runtime type of
// the value they receive, and resolving `type Name = T` aliases lazily.
package types

import (
	"fmt"

	"github.com/eddndev/achronyme/internal/value"
	"github.com/eddndev/achronyme/pkg/ast"
)

// Table is the process-wide alias table populated by TypeAliasStatement
// (spec 4.4.6: "a process-wide alias table populated by type Name = T
// declarations; resolved lazily on check").
type Table struct {
	aliases map[string]ast.TypeExpr
}

func NewTable() *Table {
	return &Table{aliases: make(map[string]ast.TypeExpr)}
}

func (t *Table) Define(name string, expr ast.TypeExpr) {
	t.aliases[name] = expr
}

func (t *Table) resolve(name string) (ast.TypeExpr, bool) {
	expr, ok := t.aliases[name]
	return expr, ok
}

// Check reports whether v satisfies annot, resolving aliases against the
// table. A nil annot always matches (unannotated binding).
func (t *Table) Check(annot ast.TypeExpr, v value.Value) error {
	if annot == nil {
		return nil
	}
	if matchType(t, annot, v) {
		return nil
	}
	return fmt.Errorf("expected type %s, got %s", annot.String(), v.Type())
}

func matchType(t *Table, annot ast.TypeExpr, v value.Value) bool {
	switch te := annot.(type) {
	case *ast.NamedType:
		return matchNamed(t, te.Name, v)
	case *ast.UnionType:
		for _, m := range te.Members {
			if matchType(t, m, v) {
				return true
			}
		}
		return false
	case *ast.FunctionType:
		_, ok := v.(value.Function)
		return ok
	default:
		return false
	}
}

func matchNamed(t *Table, name string, v value.Value) bool {
	switch name {
	case "Any":
		return true
	case "Null":
		_, ok := v.(value.Null)
		return ok
	case "Number":
		_, ok := v.(value.Number)
		return ok
	case "Complex":
		switch v.(type) {
		case value.Complex, *value.ComplexTensor:
			return true
		default:
			return false
		}
	case "String":
		_, ok := v.(value.Str)
		return ok
	case "Boolean":
		_, ok := v.(value.Bool)
		return ok
	case "Tensor":
		_, ok := v.(*value.RealTensor)
		return ok
	case "ComplexTensor":
		_, ok := v.(*value.ComplexTensor)
		return ok
	case "Vector":
		_, ok := v.(*value.Vector)
		return ok
	case "Record":
		_, ok := v.(*value.Record)
		return ok
	case "Edge":
		_, ok := v.(*value.Edge)
		return ok
	case "Function":
		_, ok := v.(value.Function)
		return ok
	case "Generator":
		_, ok := v.(*value.Generator)
		return ok
	case "Error":
		_, ok := v.(*value.Error)
		return ok
	default:
		if alias, ok := t.resolve(name); ok {
			return matchType(t, alias, v)
		}
		return false
	}
}
