package tensor

import "fmt"

// indexRange is a resolved half-open [Start, End) range over one axis.
type indexRange struct {
	Start, End int
}

// normalizeIndex resolves a negative index (counted from the end) against
// a dimension size; it does not clamp — callers decide range vs scalar
// semantics (spec 4.2: single negative indices count from the end).
func normalizeIndex(idx, size int) int {
	if idx < 0 {
		return size + idx
	}
	return idx
}

// Index implements spec 4.2 indexing: a rank-r tensor accepts 1..r scalar
// indices (int) and/or ranges (indexRange); fewer than r indices yield a
// sub-tensor; full rank yields a scalar wrapped as a 0-length-shape is not
// used — callers asking for a scalar should use At() instead.
func (t *Real) Index(idxs []Idx) (*Real, error) {
	if len(idxs) == 0 || len(idxs) > t.Rank() {
		return nil, &ShapeError{Msg: fmt.Sprintf("tensor: expected 1..%d indices, got %d", t.Rank(), len(idxs))}
	}
	str := strides(t.shape)

	// Resolve each supplied index against its axis; ranges are clamped and
	// half-open per spec 4.2 ("start > end yields empty").
	resolved := make([]indexRange, len(idxs))
	isScalar := make([]bool, len(idxs))
	for axis, ix := range idxs {
		size := t.shape[axis]
		if ix.IsRange {
			start, end := ix.Start, ix.End
			if !ix.HasStart {
				start = 0
			} else {
				start = normalizeIndex(start, size)
			}
			if !ix.HasEnd {
				end = size
			} else {
				end = normalizeIndex(end, size)
			}
			if end > size {
				end = size
			}
			if start < 0 {
				start = 0
			}
			if start > end {
				end = start
			}
			resolved[axis] = indexRange{Start: start, End: end}
		} else {
			n := normalizeIndex(ix.Start, size)
			if n < 0 || n >= size {
				return nil, &IndexError{Msg: fmt.Sprintf("tensor: index %d out of bounds for axis of size %d", ix.Start, size)}
			}
			resolved[axis] = indexRange{Start: n, End: n + 1}
			isScalar[axis] = true
		}
	}
	for axis := len(idxs); axis < t.Rank(); axis++ {
		resolved = append(resolved, indexRange{Start: 0, End: t.shape[axis]})
		isScalar = append(isScalar, false)
	}

	outShape := make([]int, 0, t.Rank())
	for axis, r := range resolved {
		if isScalar[axis] {
			continue
		}
		outShape = append(outShape, r.End-r.Start)
	}
	if len(outShape) == 0 {
		// Full-rank scalar indexing still returns a rank-1, length-1 tensor
		// here; At() is the scalar-returning entry point used by the
		// evaluator when every index is a plain integer.
		outShape = []int{1}
	}

	total := Size(outShape)
	out := make([]float64, total)
	coords := make([]int, t.Rank())
	for axis := range resolved {
		coords[axis] = resolved[axis].Start
	}
	var fill func(axis, outPos int) int
	fill = func(axis, outPos int) int {
		if axis == t.Rank() {
			flat := 0
			for a := 0; a < t.Rank(); a++ {
				flat += coords[a] * str[a]
			}
			out[outPos] = t.data[flat]
			return outPos + 1
		}
		if isScalar[axis] {
			coords[axis] = resolved[axis].Start
			return fill(axis+1, outPos)
		}
		for v := resolved[axis].Start; v < resolved[axis].End; v++ {
			coords[axis] = v
			outPos = fill(axis+1, outPos)
		}
		return outPos
	}
	fill(0, 0)
	return &Real{data: out, shape: outShape}, nil
}

// Idx is one axis selector: either a scalar (IsRange=false, Start=index) or
// a half-open range with optional bounds.
type Idx struct {
	IsRange  bool
	Start    int
	End      int
	HasStart bool
	HasEnd   bool
}

func ScalarIdx(i int) Idx { return Idx{Start: i} }
func RangeIdx(start, end int, hasStart, hasEnd bool) Idx {
	return Idx{IsRange: true, Start: start, End: end, HasStart: hasStart, HasEnd: hasEnd}
}

// At returns the scalar element at a full-rank coordinate.
func (t *Real) At(coords []int) (float64, error) {
	if len(coords) != t.Rank() {
		return 0, &ShapeError{Msg: fmt.Sprintf("tensor: expected %d coordinates, got %d", t.Rank(), len(coords))}
	}
	str := strides(t.shape)
	flat := 0
	for i, c := range coords {
		n := normalizeIndex(c, t.shape[i])
		if n < 0 || n >= t.shape[i] {
			return 0, &IndexError{Msg: fmt.Sprintf("tensor: index %d out of bounds for axis of size %d", c, t.shape[i])}
		}
		flat += n * str[i]
	}
	return t.data[flat], nil
}

// Reshape returns a new tensor with the same data in a different shape;
// product(newShape) must equal len(Data()).
func (t *Real) Reshape(newShape []int) (*Real, error) {
	if Size(newShape) != len(t.data) {
		return nil, &ShapeError{Msg: fmt.Sprintf("tensor: cannot reshape %v into %v", t.shape, newShape)}
	}
	return &Real{data: append([]float64(nil), t.data...), shape: append([]int(nil), newShape...)}, nil
}

// Transpose reverses the two axes of a rank-2 tensor (spec 4.1/8:
// transpose(transpose(A)) == A).
func (t *Real) Transpose() (*Real, error) {
	if t.Rank() != 2 {
		return nil, &ShapeError{Msg: "transpose: requires a rank-2 tensor"}
	}
	rows, cols := t.shape[0], t.shape[1]
	out := make([]float64, len(t.data))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out[c*rows+r] = t.data[r*cols+c]
		}
	}
	return &Real{data: out, shape: []int{cols, rows}}, nil
}
