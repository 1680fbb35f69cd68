package lpsolver

// LinProg is the auto-selection entry point of spec 4.7.4: pick Primal
// when the problem starts feasible, TwoPhase when it does not, matching
// the heuristic `linprog` uses rather than forcing callers to know which
// variant applies.
func LinProg(c []float64, A [][]float64, b []float64, sense Sense) (*Result, error) {
	feasible := true
	for _, v := range b {
		if v < 0 {
			feasible = false
			break
		}
	}
	if feasible {
		return Solve(c, A, b, sense)
	}
	return TwoPhaseSimplex(c, A, b, sense)
}
