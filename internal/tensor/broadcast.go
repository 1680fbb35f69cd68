package tensor

import "fmt"

// BroadcastShape implements spec 4.2's NumPy-style broadcasting rule:
// align by the rightmost axis, missing leading axes are length-1, and for
// each axis the sizes must match or one of them must be 1.
func BroadcastShape(a, b []int) ([]int, error) {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		da, db := 1, 1
		if idx := len(a) - 1 - i; idx >= 0 {
			da = a[idx]
		}
		if idx := len(b) - 1 - i; idx >= 0 {
			db = b[idx]
		}
		switch {
		case da == db:
			out[n-1-i] = da
		case da == 1:
			out[n-1-i] = db
		case db == 1:
			out[n-1-i] = da
		default:
			return nil, &ShapeError{Msg: fmt.Sprintf("tensor: shapes %v and %v cannot broadcast", a, b)}
		}
	}
	return out, nil
}

// broadcastIndex maps a flat index in the broadcast output shape back to
// the source tensor's flat index, treating size-1 axes as virtually
// replicated (no physical copy, per spec 4.2).
func broadcastIndex(outShape, srcShape []int, outFlat int) int {
	rank := len(outShape)
	srcStrides := strides(srcShape)
	offset := rank - len(srcShape)

	coords := make([]int, rank)
	rem := outFlat
	for i := rank - 1; i >= 0; i-- {
		coords[i] = rem % outShape[i]
		rem /= outShape[i]
	}

	flat := 0
	for i := 0; i < len(srcShape); i++ {
		outAxis := i + offset
		c := coords[outAxis]
		if srcShape[i] == 1 {
			c = 0
		}
		flat += c * srcStrides[i]
	}
	return flat
}

// BinOp applies fn element-wise after broadcasting a and b per spec 4.2.
func BinOp(a, b *Real, fn func(x, y float64) float64) (*Real, error) {
	shape, err := BroadcastShape(a.shape, b.shape)
	if err != nil {
		return nil, err
	}
	n := Size(shape)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		ai := broadcastIndex(shape, a.shape, i)
		bi := broadcastIndex(shape, b.shape, i)
		out[i] = fn(a.data[ai], b.data[bi])
	}
	return &Real{data: out, shape: shape}, nil
}

// ScalarOp applies fn(element, scalar) to every element (or fn(scalar,
// element) when scalarIsRHS is false), used for Number <op> Tensor forms.
func ScalarOp(t *Real, scalar float64, fn func(x, y float64) float64, scalarIsRHS bool) *Real {
	out := make([]float64, len(t.data))
	for i, v := range t.data {
		if scalarIsRHS {
			out[i] = fn(v, scalar)
		} else {
			out[i] = fn(scalar, v)
		}
	}
	return &Real{data: out, shape: append([]int(nil), t.shape...)}
}

func Add(a, b *Real) (*Real, error) { return BinOp(a, b, func(x, y float64) float64 { return x + y }) }
func Sub(a, b *Real) (*Real, error) { return BinOp(a, b, func(x, y float64) float64 { return x - y }) }
func Mul(a, b *Real) (*Real, error) { return BinOp(a, b, func(x, y float64) float64 { return x * y }) }
func Div(a, b *Real) (*Real, error) { return BinOp(a, b, func(x, y float64) float64 { return x / y }) }

// BinOpComplex is BinOp's Complex-tensor counterpart: element-wise fn
// after broadcasting a and b per spec 4.2.
func BinOpComplex(a, b *Complex, fn func(x, y complex128) complex128) (*Complex, error) {
	shape, err := BroadcastShape(a.shape, b.shape)
	if err != nil {
		return nil, err
	}
	n := Size(shape)
	out := make([]complex128, n)
	for i := 0; i < n; i++ {
		ai := broadcastIndex(shape, a.shape, i)
		bi := broadcastIndex(shape, b.shape, i)
		out[i] = fn(a.data[ai], b.data[bi])
	}
	return &Complex{data: out, shape: shape}, nil
}

// ScalarOpComplex is ScalarOp's Complex-tensor counterpart, used for
// Complex <op> ComplexTensor forms (a bare Number/Complex scalar is
// promoted to complex128 by the caller before this runs).
func ScalarOpComplex(t *Complex, scalar complex128, fn func(x, y complex128) complex128, scalarIsRHS bool) *Complex {
	out := make([]complex128, len(t.data))
	for i, v := range t.data {
		if scalarIsRHS {
			out[i] = fn(v, scalar)
		} else {
			out[i] = fn(scalar, v)
		}
	}
	return &Complex{data: out, shape: append([]int(nil), t.shape...)}
}
