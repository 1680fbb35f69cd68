package value

// Clone performs the deep copy semantics spec 3.1/3.3 requires for
// by-value types (Vector, Record, Tensor) passed across function calls and
// record spreads. MutableRef cells are intentionally NOT cloned — a mut
// cell's whole purpose is shared ownership, so copying through one copies
// the reference, matching spec 3.3's closure-capture-by-reference rule.
// Functions and Generators are likewise reference types and pass through
// unchanged.
func Clone(v Value) Value {
	switch x := v.(type) {
	case Number, Bool, Str, Null, Complex:
		return x
	case *Vector:
		items := make([]Value, len(x.Items))
		for i, item := range x.Items {
			items[i] = Clone(item)
		}
		return &Vector{Items: items}
	case *RealTensor:
		return NewRealTensor(x.Real.Clone())
	case *ComplexTensor:
		return NewComplexTensor(x.Complex.Clone())
	case *Record:
		out := NewRecord()
		for _, name := range x.Names {
			f := x.Fields[name]
			out.Set(name, Clone(f.Value), f.IsMut)
		}
		return out
	case *Edge:
		var props *Record
		if x.Properties != nil {
			props = Clone(x.Properties).(*Record)
		}
		return &Edge{From: x.From, To: x.To, Directed: x.Directed, Properties: props}
	default:
		// MutableRef, Function variants, Generator, Error: reference semantics.
		return v
	}
}
