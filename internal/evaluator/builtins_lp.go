package evaluator

import (
	"fmt"

	"github.com/eddndev/achronyme/internal/lpsolver"
	"github.com/eddndev/achronyme/internal/value"
)

// lpResult wraps a solved lpsolver.Result as a runtime Value so it can be
// threaded through objective_value/shadow_price/sensitivity_c/
// sensitivity_b without flattening it into a Record up front (Revised's
// Result has no Tableau, so those three raise ShapeError on it exactly as
// internal/lpsolver does).
type lpResult struct {
	*lpsolver.Result
}

func (r *lpResult) Type() string { return "LPResult" }
func (r *lpResult) String() string {
	return fmt.Sprintf("LPResult(objective=%g, solution=%v)", r.Objective, r.Solution)
}

// registerLPBuiltins wires spec section 6's simplex-family catalog over
// internal/lpsolver.
func registerLPBuiltins(env *value.Environment) {
	def(env, builtin("linprog", 4, false, lpEntry("linprog", lpsolver.LinProg)))
	def(env, builtin("simplex", 4, false, lpEntry("simplex", lpsolver.Solve)))
	def(env, builtin("dual_simplex", 4, false, func(args []value.Value) (value.Value, error) {
		c, A, b, sense, err := lpArgs("dual_simplex", args)
		if err != nil {
			return nil, err
		}
		t, err := lpsolver.NewDualFeasible(c, A, b, sense)
		if err != nil {
			return nil, lpErr(err)
		}
		r, err := lpsolver.DualSimplex(t)
		if err != nil {
			return nil, lpErr(err)
		}
		return &lpResult{r}, nil
	}))
	def(env, builtin("two_phase_simplex", 4, false, lpEntry("two_phase_simplex", lpsolver.TwoPhaseSimplex)))
	def(env, builtin("revised_simplex", 4, false, lpEntry("revised_simplex", lpsolver.RevisedSimplex)))

	def(env, builtin("objective_value", 1, false, func(args []value.Value) (value.Value, error) {
		r, err := asLPResult("objective_value", args[0])
		if err != nil {
			return nil, err
		}
		return value.Number{Val: r.Objective}, nil
	}))

	def(env, builtin("shadow_price", 2, false, func(args []value.Value) (value.Value, error) {
		r, err := asLPResult("shadow_price", args[0])
		if err != nil {
			return nil, err
		}
		i, err := asNumber("shadow_price", args[1])
		if err != nil {
			return nil, err
		}
		v, err := lpsolver.ShadowPrice(r.Result, int(i))
		if err != nil {
			return nil, lpErr(err)
		}
		return value.Number{Val: v}, nil
	}))

	def(env, builtin("sensitivity_c", 2, false, func(args []value.Value) (value.Value, error) {
		r, err := asLPResult("sensitivity_c", args[0])
		if err != nil {
			return nil, err
		}
		j, err := asNumber("sensitivity_c", args[1])
		if err != nil {
			return nil, err
		}
		rng, err := lpsolver.SensitivityC(r.Result, int(j))
		if err != nil {
			return nil, lpErr(err)
		}
		return sensitivityRecord(rng), nil
	}))

	def(env, builtin("sensitivity_b", 2, false, func(args []value.Value) (value.Value, error) {
		r, err := asLPResult("sensitivity_b", args[0])
		if err != nil {
			return nil, err
		}
		i, err := asNumber("sensitivity_b", args[1])
		if err != nil {
			return nil, err
		}
		rng, err := lpsolver.SensitivityB(r.Result, int(i))
		if err != nil {
			return nil, lpErr(err)
		}
		return sensitivityRecord(rng), nil
	}))
}

func sensitivityRecord(rng lpsolver.SensitivityRange) *value.Record {
	rec := value.NewRecord()
	rec.Set("low", value.Number{Val: rng.Low}, false)
	rec.Set("high", value.Number{Val: rng.High}, false)
	return rec
}

type lpSolveFunc func(c []float64, A [][]float64, b []float64, sense lpsolver.Sense) (*lpsolver.Result, error)

func lpEntry(name string, solve lpSolveFunc) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		c, A, b, sense, err := lpArgs(name, args)
		if err != nil {
			return nil, err
		}
		r, err := solve(c, A, b, sense)
		if err != nil {
			return nil, lpErr(err)
		}
		return &lpResult{r}, nil
	}
}

// lpArgs decodes the (c, A, b, sense) call signature every simplex variant
// shares: c and b are numeric Vectors, A is a Vector of row Vectors (or a
// rank-2 Tensor), and sense is the string "max"/"min".
func lpArgs(name string, args []value.Value) (c []float64, A [][]float64, b []float64, sense lpsolver.Sense, err error) {
	c, err = vectorFloats(name, args[0])
	if err != nil {
		return
	}
	A, err = matrixFloats(name, args[1])
	if err != nil {
		return
	}
	b, err = vectorFloats(name, args[2])
	if err != nil {
		return
	}
	sense, err = senseArg(name, args[3])
	return
}

func vectorFloats(name string, v value.Value) ([]float64, error) {
	t, err := asRealTensor(name, v)
	if err != nil {
		return nil, err
	}
	if t.Rank() != 1 {
		return nil, shapeErrorf("%s: expects a 1-D vector", name)
	}
	return append([]float64(nil), t.Data()...), nil
}

func matrixFloats(name string, v value.Value) ([][]float64, error) {
	if vec, ok := v.(*value.Vector); ok {
		rows := make([][]float64, len(vec.Items))
		for i, row := range vec.Items {
			r, err := vectorFloats(name, row)
			if err != nil {
				return nil, err
			}
			rows[i] = r
		}
		return rows, nil
	}
	t, err := asRealTensor(name, v)
	if err != nil {
		return nil, err
	}
	if t.Rank() != 2 {
		return nil, shapeErrorf("%s: expects a matrix", name)
	}
	rows, cols := t.Shape()[0], t.Shape()[1]
	out := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		row := make([]float64, cols)
		for j := 0; j < cols; j++ {
			row[j], _ = t.At([]int{i, j})
		}
		out[i] = row
	}
	return out, nil
}

func senseArg(name string, v value.Value) (lpsolver.Sense, error) {
	s, err := asString(name, v)
	if err != nil {
		return 0, err
	}
	switch s {
	case "max", "maximize":
		return lpsolver.Maximize, nil
	case "min", "minimize":
		return lpsolver.Minimize, nil
	default:
		return 0, valueErrorf("%s: sense must be \"max\" or \"min\", got %q", name, s)
	}
}

func asLPResult(name string, v value.Value) (*lpResult, error) {
	r, ok := v.(*lpResult)
	if !ok {
		return nil, typeErrorf("%s expects an LPResult, got %s", name, v.Type())
	}
	return r, nil
}

// lpErr maps internal/lpsolver's sentinel error types onto the runtime
// error taxonomy of spec section 7.
func lpErr(err error) error {
	switch err.(type) {
	case *lpsolver.ShapeError:
		return shapeErrorf("%s", err.Error())
	case *lpsolver.UnboundedError:
		return value.NewError(value.KindUnboundedError, err.Error())
	case *lpsolver.InfeasibleError:
		return value.NewError(value.KindInfeasibleError, err.Error())
	default:
		return valueErrorf("%s", err.Error())
	}
}
