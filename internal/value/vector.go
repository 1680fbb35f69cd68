package value

import "strings"

// Vector is the heterogeneous ordered collection produced by array-literal
// syntax (spec 3.1). Numeric-only vectors may be lowered into *RealTensor
// by tensor builtins, but the literal form itself stays a Vector so mixed
// element types and nested structures are always representable.
type Vector struct {
	Items []Value
}

func (v *Vector) Type() string { return "Vector" }

func (v *Vector) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, item := range v.Items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(Print(item))
	}
	b.WriteByte(']')
	return b.String()
}
