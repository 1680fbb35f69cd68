// Package lpsolver implements the simplex family described in spec 4.7
// (component F): a shared dense tableau abstraction plus primal, dual,
// two-phase and revised variants, and sensitivity analysis. Grounded on
// gonum.org/v1/gonum/mat for the revised variant's basis-inverse
// bookkeeping, the same dense-linear-algebra library internal/linalg uses
// for component C.
package lpsolver

import "fmt"

// Sense is the optimization direction; spec 4.7.1's "sense = ±1".
type Sense int

const (
	Maximize Sense = 1
	Minimize Sense = -1
)

// Numerical constants from spec 4.7.1.
const (
	ZeroEps       = 1e-10
	PivotEps      = 1e-8
	MaxIterations = 10000
)

type ShapeError struct{ Msg string }

func (e *ShapeError) Error() string { return e.Msg }

type UnboundedError struct{ Msg string }

func (e *UnboundedError) Error() string { return e.Msg }

type InfeasibleError struct{ Msg string }

func (e *InfeasibleError) Error() string { return e.Msg }

// Tableau is the dense `(m+1) x (n+m+1)` buffer of spec 4.7.1: row 0 is the
// objective row, rows 1..m are the constraint rows, columns 0..n-1 are
// decision variables, n..n+m-1 are slack variables, and column n+m is the
// RHS. Internally the objective row always stores `-sense*c` in the
// decision columns, so every variant's optimality test ("all entries >=
// -eps") is written once regardless of maximize/minimize.
type Tableau struct {
	m, n  int
	data  []float64
	basis []int
	sense Sense
}

func (t *Tableau) cols() int { return t.n + t.m + 1 }
func (t *Tableau) rhsCol() int { return t.n + t.m }

func (t *Tableau) at(row, col int) float64   { return t.data[row*t.cols()+col] }
func (t *Tableau) set(row, col int, v float64) { t.data[row*t.cols()+col] = v }

// New builds the initial tableau for `sense*cᵀx s.t. Ax <= b, x >= 0`. It
// requires `b[i] >= 0` for all i — the caller dispatches to TwoPhase
// otherwise (spec 4.7.1).
func New(c []float64, A [][]float64, b []float64, sense Sense) (*Tableau, error) {
	m := len(b)
	n := len(c)
	if m != len(A) {
		return nil, &ShapeError{Msg: fmt.Sprintf("lpsolver: len(A) = %d, want %d rows matching b", len(A), m)}
	}
	for i, row := range A {
		if len(row) != n {
			return nil, &ShapeError{Msg: fmt.Sprintf("lpsolver: row %d of A has %d columns, want %d matching c", i, len(row), n)}
		}
	}
	for i, v := range b {
		if v < 0 {
			return nil, &ShapeError{Msg: fmt.Sprintf("lpsolver: b[%d] = %v < 0; use TwoPhase", i, v)}
		}
	}

	t := &Tableau{m: m, n: n, sense: sense}
	t.data = make([]float64, (m+1)*t.cols())
	t.basis = make([]int, m)

	for j := 0; j < n; j++ {
		t.set(0, j, -float64(sense)*c[j])
	}

	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			t.set(i+1, j, A[i][j])
		}
		t.set(i+1, n+i, 1)
		t.set(i+1, t.rhsCol(), b[i])
		t.basis[i] = n + i
	}
	return t, nil
}

// IsOptimal reports whether every decision/slack entry of the objective row
// is >= -ZeroEps (spec 4.7.1).
func (t *Tableau) IsOptimal() bool {
	for j := 0; j < t.n+t.m; j++ {
		if t.at(0, j) < -ZeroEps {
			return false
		}
	}
	return true
}

// FindEnteringVariable returns the column with the most negative reduced
// cost, ties broken by smallest column index, or -1 if already optimal.
func (t *Tableau) FindEnteringVariable() int {
	best := -1
	bestVal := -ZeroEps
	for j := 0; j < t.n+t.m; j++ {
		v := t.at(0, j)
		if v < bestVal {
			bestVal = v
			best = j
		}
	}
	return best
}

// FindLeavingVariable runs the minimum-ratio test over rows whose pivot
// column entry exceeds PivotEps, ties broken by smallest row index.
// Returns an UnboundedError if no row qualifies.
func (t *Tableau) FindLeavingVariable(entering int) (int, error) {
	best := -1
	bestRatio := 0.0
	for i := 1; i <= t.m; i++ {
		a := t.at(i, entering)
		if a <= PivotEps {
			continue
		}
		ratio := t.at(i, t.rhsCol()) / a
		if best == -1 || ratio < bestRatio-1e-12 {
			best = i
			bestRatio = ratio
		}
	}
	if best == -1 {
		return -1, &UnboundedError{Msg: "lpsolver: unbounded — no valid leaving row"}
	}
	return best, nil
}

// Pivot divides the pivot row by the pivot element and eliminates the
// entering column from every other row, updating the basis.
func (t *Tableau) Pivot(entering, leaving int) {
	pivotVal := t.at(leaving, entering)
	cols := t.cols()
	for j := 0; j < cols; j++ {
		t.set(leaving, j, t.at(leaving, j)/pivotVal)
	}
	for i := 0; i <= t.m; i++ {
		if i == leaving {
			continue
		}
		factor := t.at(i, entering)
		if factor == 0 {
			continue
		}
		for j := 0; j < cols; j++ {
			t.set(i, j, t.at(i, j)-factor*t.at(leaving, j))
		}
	}
	t.basis[leaving-1] = entering
}

// ExtractSolution returns the n decision-variable values: zero for
// non-basic variables, the RHS entry for basic ones.
func (t *Tableau) ExtractSolution() []float64 {
	sol := make([]float64, t.n)
	for i := 0; i < t.m; i++ {
		if t.basis[i] < t.n {
			sol[t.basis[i]] = t.at(i+1, t.rhsCol())
		}
	}
	return sol
}

// ObjectiveValue returns the original-sense objective at the current
// tableau state.
func (t *Tableau) ObjectiveValue() float64 {
	return float64(t.sense) * t.at(0, t.rhsCol())
}

func (t *Tableau) Basis() []int { return append([]int(nil), t.basis...) }
func (t *Tableau) M() int       { return t.m }
func (t *Tableau) N() int       { return t.n }
