package lpsolver

import "math"

// ShadowPrice returns the dual value (shadow price) of constraint i: the
// objective-row entry above the slack column for that constraint, which
// by LP duality equals the rate of change of the optimum per unit change
// in b[i] (spec 4.7.3).
func ShadowPrice(r *Result, i int) (float64, error) {
	t := r.Tableau
	if t == nil {
		return 0, &ShapeError{Msg: "lpsolver: sensitivity analysis requires a tableau-backed result (Primal/Dual/TwoPhase, not Revised)"}
	}
	if i < 0 || i >= t.m {
		return 0, &ShapeError{Msg: "lpsolver: constraint index out of range"}
	}
	return float64(t.sense) * t.at(0, t.n+i), nil
}

// SensitivityRange is the interval over which a coefficient can move
// without changing the optimal basis (spec 4.7.3).
type SensitivityRange struct {
	Low, High float64
}

// SensitivityC computes the allowable range for objective coefficient j
// holding the optimal basis fixed: for a non-basic variable, only its
// reduced cost bounds one side; for a basic variable, the ratio test runs
// over the tableau row it is basic in.
func SensitivityC(r *Result, j int) (SensitivityRange, error) {
	t := r.Tableau
	if t == nil {
		return SensitivityRange{}, &ShapeError{Msg: "lpsolver: sensitivity analysis requires a tableau-backed result"}
	}
	if j < 0 || j >= t.n {
		return SensitivityRange{}, &ShapeError{Msg: "lpsolver: variable index out of range"}
	}

	basicRow := -1
	for i, bi := range t.basis {
		if bi == j {
			basicRow = i + 1
			break
		}
	}

	if basicRow == -1 {
		reduced := t.at(0, j)
		if t.sense == Maximize {
			return SensitivityRange{Low: -posInf(), High: reduced}, nil
		}
		return SensitivityRange{Low: -reduced, High: posInf()}, nil
	}

	low, high := -posInf(), posInf()
	for k := 0; k < t.n+t.m; k++ {
		if k == j {
			continue
		}
		isBasic := false
		for _, bi := range t.basis {
			if bi == k {
				isBasic = true
				break
			}
		}
		if isBasic {
			continue
		}
		akj := t.at(basicRow, k)
		if akj == 0 {
			continue
		}
		ratio := t.at(0, k) / akj
		if akj > 0 {
			if ratio < high {
				high = ratio
			}
		} else {
			if ratio > low {
				low = ratio
			}
		}
	}
	return SensitivityRange{Low: low, High: high}, nil
}

// SensitivityB computes the allowable range for RHS i holding the optimal
// basis feasible: the ratio test over column n+i of the tableau body,
// which equals the i-th column of B^-1 (spec 4.7.3).
func SensitivityB(r *Result, i int) (SensitivityRange, error) {
	t := r.Tableau
	if t == nil {
		return SensitivityRange{}, &ShapeError{Msg: "lpsolver: sensitivity analysis requires a tableau-backed result"}
	}
	if i < 0 || i >= t.m {
		return SensitivityRange{}, &ShapeError{Msg: "lpsolver: constraint index out of range"}
	}

	col := t.n + i
	low, high := -posInf(), posInf()
	for row := 1; row <= t.m; row++ {
		bik := t.at(row, col)
		if bik == 0 {
			continue
		}
		xB := t.at(row, t.rhsCol())
		ratio := xB / bik
		if bik > 0 {
			if ratio < high {
				high = ratio
			}
		} else {
			if ratio > low {
				low = ratio
			}
		}
	}
	return SensitivityRange{Low: low, High: high}, nil
}

func posInf() float64 { return math.Inf(1) }
