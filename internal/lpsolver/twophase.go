package lpsolver

import "math"

// phase1Tableau is a scratch tableau carrying slack AND artificial columns,
// used only to drive Phase I to a basic feasible solution before handing
// off to the ordinary Tableau for Phase II (spec 4.7.2's two-phase
// variant).
type phase1Tableau struct {
	m, ndec, nslack, nart int
	data                  []float64
	basis                 []int
}

func (t *phase1Tableau) cols() int   { return t.ndec + t.nslack + t.nart + 1 }
func (t *phase1Tableau) rhsCol() int { return t.cols() - 1 }
func (t *phase1Tableau) at(r, c int) float64    { return t.data[r*t.cols()+c] }
func (t *phase1Tableau) set(r, c int, v float64) { t.data[r*t.cols()+c] = v }

func (t *phase1Tableau) pivot(entering, leaving int) {
	pivotVal := t.at(leaving, entering)
	for j := 0; j < t.cols(); j++ {
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
		for j := 0; j < t.cols(); j++ {
			t.set(i, j, t.at(i, j)-factor*t.at(leaving, j))
		}
	}
	t.basis[leaving-1] = entering
}

// TwoPhaseSimplex handles the case New rejects: some b[i] < 0. Phase I
// flips each such row and introduces an artificial variable for it, then
// minimizes the sum of artificials; Phase II restarts the ordinary primal
// simplex from the feasible basis Phase I found (spec 4.7.2).
func TwoPhaseSimplex(c []float64, A [][]float64, b []float64, sense Sense) (*Result, error) {
	n := len(c)
	m := len(b)

	flipped := make([]bool, m)
	nart := 0
	for i, v := range b {
		if v < 0 {
			flipped[i] = true
			nart++
		}
	}
	if nart == 0 {
		return Solve(c, A, b, sense)
	}

	pt := &phase1Tableau{m: m, ndec: n, nslack: m, nart: nart}
	pt.data = make([]float64, (m+1)*pt.cols())
	pt.basis = make([]int, m)

	for j := 0; j < n; j++ {
		pt.set(0, j, 0)
	}
	for j := 0; j < nart; j++ {
		pt.set(0, n+m+j, 1)
	}

	artCol := 0
	for i := 0; i < m; i++ {
		sign := 1.0
		if flipped[i] {
			sign = -1.0
		}
		for j := 0; j < n; j++ {
			pt.set(i+1, j, sign*A[i][j])
		}
		slackCol := n + i
		pt.set(i+1, slackCol, sign)
		pt.set(i+1, pt.rhsCol(), sign*b[i])
		if flipped[i] {
			ac := n + m + artCol
			pt.set(i+1, ac, 1)
			pt.basis[i] = ac
			artCol++
		} else {
			pt.basis[i] = slackCol
		}
	}

	for i := 0; i < m; i++ {
		if flipped[i] {
			for j := 0; j < pt.cols(); j++ {
				pt.set(0, j, pt.at(0, j)-pt.at(i+1, j))
			}
		}
	}

	for iter := 0; iter < MaxIterations; iter++ {
		entering := -1
		bestVal := -ZeroEps
		for j := 0; j < n+m+nart; j++ {
			v := pt.at(0, j)
			if v < bestVal {
				bestVal = v
				entering = j
			}
		}
		if entering == -1 {
			break
		}
		leaving := -1
		bestRatio := 0.0
		for i := 1; i <= m; i++ {
			a := pt.at(i, entering)
			if a <= PivotEps {
				continue
			}
			ratio := pt.at(i, pt.rhsCol()) / a
			if leaving == -1 || ratio < bestRatio-1e-12 {
				leaving = i
				bestRatio = ratio
			}
		}
		if leaving == -1 {
			return nil, &UnboundedError{Msg: "lpsolver: phase I unbounded (should not happen for a feasibility objective)"}
		}
		pt.pivot(entering, leaving)
	}

	if math.Abs(pt.at(0, pt.rhsCol())) > 1e-7 {
		return nil, &InfeasibleError{Msg: "lpsolver: no feasible solution (phase I objective did not reach zero)"}
	}

	// drive out any artificial left basic at zero, where possible.
	for i := 0; i < m; i++ {
		if pt.basis[i] < n+m {
			continue
		}
		for j := 0; j < n+m; j++ {
			if math.Abs(pt.at(i+1, j)) > PivotEps {
				pt.pivot(j, i+1)
				break
			}
		}
	}

	t2 := &Tableau{m: m, n: n, sense: sense}
	t2.data = make([]float64, (m+1)*t2.cols())
	t2.basis = make([]int, m)
	for j := 0; j < n; j++ {
		t2.set(0, j, -float64(sense)*c[j])
	}
	for i := 0; i < m; i++ {
		for j := 0; j < n+m; j++ {
			t2.set(i+1, j, pt.at(i+1, j))
		}
		t2.set(i+1, t2.rhsCol(), pt.at(i+1, pt.rhsCol()))
		if pt.basis[i] < n+m {
			t2.basis[i] = pt.basis[i]
		} else {
			t2.basis[i] = -1
		}
	}
	for i := 0; i < m; i++ {
		b := t2.basis[i]
		if b < 0 {
			continue
		}
		coeff := t2.at(0, b)
		if coeff == 0 {
			continue
		}
		for j := 0; j < t2.cols(); j++ {
			t2.set(0, j, t2.at(0, j)-coeff*t2.at(i+1, j))
		}
	}

	return PrimalSimplex(t2)
}
