// Package value implements the Achronyme value model (spec section 3.1,
// component A) together with the lexically-scoped environment (section 3.3,
// component D). The two live in one package, grounded on the teacher's
// internal/interp/runtime package, which for the same reason (a Function
// closure needs to hold an Environment, and an Environment needs to store
// Values) keeps its Value interface and its Environment type side by side.
package value

import "strconv"

// Value is the tagged union every Achronyme runtime value implements.
// Concrete variants are listed in spec section 3.1.
type Value interface {
	// Type returns the canonical type name returned by the `type()` builtin.
	Type() string
	// String returns the canonical pretty-printed form (spec section 4.1).
	String() string
}

// Number is an IEEE-754 double. Integer-valued numbers print without a
// decimal point (spec 4.1).
type Number struct {
	Val float64
}

func (n Number) Type() string { return "Number" }
func (n Number) String() string {
	return formatNumber(n.Val)
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) && !isNegZero(f) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func isNegZero(f float64) bool {
	return f == 0 && 1/f < 0
}

// Bool is a two-state boolean.
type Bool struct {
	Val bool
}

func (b Bool) Type() string { return "Boolean" }
func (b Bool) String() string {
	if b.Val {
		return "true"
	}
	return "false"
}

// Str is owned UTF-8 text.
type Str struct {
	Val string
}

func (s Str) Type() string   { return "String" }
func (s Str) String() string { return s.Val }

// Null is the distinct sentinel value (spec 3.1: "distinct from zero and
// empty").
type Null struct{}

func (Null) Type() string   { return "Null" }
func (Null) String() string { return "null" }

// Truthy implements the evaluator's truthiness rule (spec 4.4.2): numbers
// are truthy when non-zero, collections when non-empty, Null is always
// falsey, and Booleans follow their own value.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case Bool:
		return x.Val
	case Number:
		return x.Val != 0
	case Str:
		return x.Val != ""
	case Null:
		return false
	case *Vector:
		return len(x.Items) > 0
	case *RealTensor:
		return len(x.Data()) > 0
	case *ComplexTensor:
		return len(x.Data()) > 0
	case *Record:
		return true
	default:
		return v != nil
	}
}
