package lpsolver

// NewDualFeasible builds a tableau like New but skips the b >= 0
// requirement — used when the objective row is already optimal (e.g. all
// costs non-negative for a minimization) but some constraint's slack
// starts negative, which is exactly the state DualSimplex expects to
// clean up (spec 4.7.2's dual variant).
func NewDualFeasible(c []float64, A [][]float64, b []float64, sense Sense) (*Tableau, error) {
	t, err := newUnchecked(c, A, b, sense)
	if err != nil {
		return nil, err
	}
	if !t.IsOptimal() {
		return nil, &InfeasibleError{Msg: "lpsolver: objective row is not dual-feasible; use Primal or TwoPhase"}
	}
	return t, nil
}

// newUnchecked is New without the b >= 0 validation, shared by the dual
// and two-phase constructors.
func newUnchecked(c []float64, A [][]float64, b []float64, sense Sense) (*Tableau, error) {
	m := len(b)
	n := len(c)
	if m != len(A) {
		return nil, &ShapeError{Msg: "lpsolver: len(A) must match len(b)"}
	}
	t := &Tableau{m: m, n: n, sense: sense}
	t.data = make([]float64, (m+1)*t.cols())
	t.basis = make([]int, m)
	for j := 0; j < n; j++ {
		t.set(0, j, -float64(sense)*c[j])
	}
	for i := 0; i < m; i++ {
		if len(A[i]) != n {
			return nil, &ShapeError{Msg: "lpsolver: row of A does not match len(c)"}
		}
		for j := 0; j < n; j++ {
			t.set(i+1, j, A[i][j])
		}
		t.set(i+1, n+i, 1)
		t.set(i+1, t.rhsCol(), b[i])
		t.basis[i] = n + i
	}
	return t, nil
}

// mostNegativeRHSRow returns the row with the most negative RHS, or -1 if
// every row is already feasible.
func (t *Tableau) mostNegativeRHSRow() int {
	best := -1
	bestVal := -ZeroEps
	for i := 1; i <= t.m; i++ {
		v := t.at(i, t.rhsCol())
		if v < bestVal {
			bestVal = v
			best = i
		}
	}
	return best
}

// dualEnteringColumn runs the dual ratio test along leavingRow: among
// columns with a strictly negative entry in that row, pick the one
// minimizing |objective row value| / |row value|, ties broken by smallest
// column index.
func (t *Tableau) dualEnteringColumn(leavingRow int) (int, error) {
	best := -1
	bestRatio := 0.0
	for j := 0; j < t.n+t.m; j++ {
		a := t.at(leavingRow, j)
		if a >= -PivotEps {
			continue
		}
		ratio := t.at(0, j) / -a
		if best == -1 || ratio < bestRatio-1e-12 {
			best = j
			bestRatio = ratio
		}
	}
	if best == -1 {
		return -1, &InfeasibleError{Msg: "lpsolver: primal infeasible — no valid dual pivot column"}
	}
	return best, nil
}

// DualSimplex restores primal feasibility on a dual-feasible tableau by
// repeatedly pivoting out the most negative RHS row (spec 4.7.2).
func DualSimplex(t *Tableau) (*Result, error) {
	for iter := 0; iter < MaxIterations; iter++ {
		leaving := t.mostNegativeRHSRow()
		if leaving == -1 {
			return &Result{
				Solution:  t.ExtractSolution(),
				Objective: t.ObjectiveValue(),
				Basis:     t.Basis(),
				Tableau:   t,
			}, nil
		}
		entering, err := t.dualEnteringColumn(leaving)
		if err != nil {
			return nil, err
		}
		t.Pivot(entering, leaving)
	}
	return nil, &InfeasibleError{Msg: "lpsolver: dual simplex exceeded MaxIterations"}
}
