package lpsolver

// Result bundles a solved tableau with the fields sensitivity analysis and
// callers need: the optimal point, the objective value, and the tableau
// itself (kept around so ShadowPrice/SensitivityC/SensitivityB can read the
// final basis and reduced costs).
type Result struct {
	Solution  []float64
	Objective float64
	Basis     []int
	Tableau   *Tableau
}

// PrimalSimplex runs the standard two-column-test simplex loop of spec
// 4.7.2 on a tableau whose initial basic solution is already feasible
// (every RHS >= 0, which New guarantees).
func PrimalSimplex(t *Tableau) (*Result, error) {
	for iter := 0; iter < MaxIterations; iter++ {
		if t.IsOptimal() {
			return &Result{
				Solution:  t.ExtractSolution(),
				Objective: t.ObjectiveValue(),
				Basis:     t.Basis(),
				Tableau:   t,
			}, nil
		}
		entering := t.FindEnteringVariable()
		leaving, err := t.FindLeavingVariable(entering)
		if err != nil {
			return nil, err
		}
		t.Pivot(entering, leaving)
	}
	return nil, &InfeasibleError{Msg: "lpsolver: exceeded MaxIterations without reaching optimality"}
}

// Solve is the primal-simplex entry point for an already-feasible problem
// (Ax <= b, b >= 0).
func Solve(c []float64, A [][]float64, b []float64, sense Sense) (*Result, error) {
	t, err := New(c, A, b, sense)
	if err != nil {
		return nil, err
	}
	return PrimalSimplex(t)
}
