package value

// Equal implements structural equality (spec 4.1/8: `==` on Vectors,
// Records and Tensors compares structure, not identity). Functions and
// Generators are never equal to anything but themselves by reference,
// since they carry no meaningful structural identity.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		return ok && av.Val == bv.Val
	case Bool:
		bv, ok := b.(Bool)
		return ok && av.Val == bv.Val
	case Str:
		bv, ok := b.(Str)
		return ok && av.Val == bv.Val
	case Null:
		_, ok := b.(Null)
		return ok
	case Complex:
		bv, ok := b.(Complex)
		return ok && av.Val == bv.Val
	case *Vector:
		bv, ok := b.(*Vector)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case *RealTensor:
		bv, ok := b.(*RealTensor)
		return ok && av.Real.Equal(bv.Real)
	case *ComplexTensor:
		bv, ok := b.(*ComplexTensor)
		return ok && av.Complex.Equal(bv.Complex)
	case *Record:
		bv, ok := b.(*Record)
		if !ok || len(av.Names) != len(bv.Names) {
			return false
		}
		for _, name := range av.Names {
			bf, ok := bv.Fields[name]
			if !ok {
				return false
			}
			if !Equal(av.Fields[name].Value, bf.Value) {
				return false
			}
		}
		return true
	case *MutableRef:
		return Equal(av.Get(), derefIfRef(b))
	case *Edge:
		bv, ok := b.(*Edge)
		if !ok {
			return false
		}
		return Equal(av.From, bv.From) && Equal(av.To, bv.To) && av.Directed == bv.Directed
	case *Error:
		bv, ok := b.(*Error)
		return ok && av.Kind == bv.Kind && av.Message == bv.Message
	default:
		return a == b
	}
}

func derefIfRef(v Value) Value {
	if r, ok := v.(*MutableRef); ok {
		return r.Get()
	}
	return v
}
