package lpsolver

import "gonum.org/v1/gonum/mat"

// RevisedSimplex solves `sense*cᵀx s.t. Ax <= b, x >= 0` by maintaining the
// basis inverse explicitly with gonum.org/v1/gonum/mat (spec 4.7.2's
// revised variant) instead of carrying the full dense tableau — the same
// dense-linear-algebra dependency internal/linalg uses, applied here to
// avoid updating the non-basic columns every pivot.
func RevisedSimplex(c []float64, A [][]float64, b []float64, sense Sense) (*Result, error) {
	m := len(b)
	n := len(c)
	if len(A) != m {
		return nil, &ShapeError{Msg: "lpsolver: len(A) must match len(b)"}
	}
	for _, v := range b {
		if v < 0 {
			return nil, &InfeasibleError{Msg: "lpsolver: revised simplex requires b >= 0; use TwoPhase"}
		}
		_ = v
	}

	total := n + m
	full := mat.NewDense(m, total, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			full.Set(i, j, A[i][j])
		}
		full.Set(i, n+i, 1)
	}
	d := make([]float64, total)
	for j := 0; j < n; j++ {
		d[j] = -float64(sense) * c[j]
	}

	basis := make([]int, m)
	for i := range basis {
		basis[i] = n + i
	}
	bvec := mat.NewVecDense(m, append([]float64(nil), b...))

	binv := mat.NewDense(m, m, nil)
	binv.Zero()
	for i := 0; i < m; i++ {
		binv.Set(i, i, 1)
	}

	for iter := 0; iter < MaxIterations; iter++ {
		xB := mat.NewVecDense(m, nil)
		xB.MulVec(binv, bvec)

		cB := make([]float64, m)
		for i, bi := range basis {
			cB[i] = d[bi]
		}
		cBVec := mat.NewVecDense(m, cB)

		yRow := mat.NewVecDense(m, nil)
		yRow.MulVec(binv.T(), cBVec)

		entering := -1
		bestReduced := -ZeroEps
		var enteringDir *mat.VecDense
		for j := 0; j < total; j++ {
			isBasic := false
			for _, bi := range basis {
				if bi == j {
					isBasic = true
					break
				}
			}
			if isBasic {
				continue
			}
			col := mat.Col(nil, j, full)
			colVec := mat.NewVecDense(m, col)
			reduced := d[j] - mat.Dot(yRow, colVec)
			if reduced < bestReduced {
				dir := mat.NewVecDense(m, nil)
				dir.MulVec(binv, colVec)
				bestReduced = reduced
				entering = j
				enteringDir = dir
			}
		}
		if entering == -1 {
			sol := make([]float64, n)
			for i, bi := range basis {
				if bi < n {
					sol[bi] = xB.AtVec(i)
				}
			}
			obj := 0.0
			for i, bi := range basis {
				obj += d[bi] * xB.AtVec(i)
				_ = i
			}
			return &Result{
				Solution:  sol,
				Objective: -float64(sense) * obj,
				Basis:     append([]int(nil), basis...),
			}, nil
		}

		leaving := -1
		bestRatio := 0.0
		for i := 0; i < m; i++ {
			a := enteringDir.AtVec(i)
			if a <= PivotEps {
				continue
			}
			ratio := xB.AtVec(i) / a
			if leaving == -1 || ratio < bestRatio-1e-12 {
				leaving = i
				bestRatio = ratio
			}
		}
		if leaving == -1 {
			return nil, &UnboundedError{Msg: "lpsolver: revised simplex unbounded"}
		}

		pivotVal := enteringDir.AtVec(leaving)
		eta := mat.NewDense(m, m, nil)
		eta.Zero()
		for i := 0; i < m; i++ {
			eta.Set(i, i, 1)
		}
		for i := 0; i < m; i++ {
			if i == leaving {
				eta.Set(i, leaving, 1/pivotVal)
				continue
			}
			eta.Set(i, leaving, -enteringDir.AtVec(i)/pivotVal)
		}
		newBinv := mat.NewDense(m, m, nil)
		newBinv.Mul(eta, binv)
		binv = newBinv
		basis[leaving] = entering
	}
	return nil, &InfeasibleError{Msg: "lpsolver: revised simplex exceeded MaxIterations"}
}
