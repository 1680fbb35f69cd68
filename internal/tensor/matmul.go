package tensor

import "fmt"

// MatMul implements spec 4.2's matmul rule: rank-2 x rank-2 with matching
// inner dimension; 1-D dotted with 1-D yields a scalar tensor; mixed rank
// treats the 1-D operand as a row or column vector as needed and removes
// the inserted axis from the result.
func MatMul(a, b *Real) (*Real, error) {
	switch {
	case a.Rank() == 1 && b.Rank() == 1:
		return dot1D(a, b)
	case a.Rank() == 2 && b.Rank() == 2:
		return matmul2D(a, b)
	case a.Rank() == 1 && b.Rank() == 2:
		// Treat a as a 1xN row vector; drop the inserted leading axis.
		row, err := a.Reshape([]int{1, a.shape[0]})
		if err != nil {
			return nil, err
		}
		res, err := matmul2D(row, b)
		if err != nil {
			return nil, err
		}
		return res.Reshape([]int{res.shape[1]})
	case a.Rank() == 2 && b.Rank() == 1:
		// Treat b as an Nx1 column vector; drop the inserted trailing axis.
		col, err := b.Reshape([]int{b.shape[0], 1})
		if err != nil {
			return nil, err
		}
		res, err := matmul2D(a, col)
		if err != nil {
			return nil, err
		}
		return res.Reshape([]int{res.shape[0]})
	default:
		return nil, &ShapeError{Msg: fmt.Sprintf("matmul: unsupported ranks %d and %d", a.Rank(), b.Rank())}
	}
}

func dot1D(a, b *Real) (*Real, error) {
	if len(a.data) != len(b.data) {
		return nil, &ShapeError{Msg: fmt.Sprintf("matmul: vectors of length %d and %d", len(a.data), len(b.data))}
	}
	sum := 0.0
	for i := range a.data {
		sum += a.data[i] * b.data[i]
	}
	return &Real{data: []float64{sum}, shape: []int{1}}, nil
}

func matmul2D(a, b *Real) (*Real, error) {
	m, n := a.shape[0], a.shape[1]
	n2, p := b.shape[0], b.shape[1]
	if n != n2 {
		return nil, &ShapeError{Msg: fmt.Sprintf("matmul: inner dimensions %d and %d do not match", n, n2)}
	}
	out := make([]float64, m*p)
	for i := 0; i < m; i++ {
		for k := 0; k < n; k++ {
			aik := a.data[i*n+k]
			if aik == 0 {
				continue
			}
			for j := 0; j < p; j++ {
				out[i*p+j] += aik * b.data[k*p+j]
			}
		}
	}
	return &Real{data: out, shape: []int{m, p}}, nil
}
