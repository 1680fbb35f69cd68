package evaluator

import (
	"math"

	"github.com/eddndev/achronyme/internal/linalg"
	"github.com/eddndev/achronyme/internal/value"
)

// registerNumericalBuiltins registers spec section 6's numerical-methods
// catalog: finite-difference derivatives, quadrature rules, and root
// finders. The root finders and gradient/integral helpers all invoke a
// caller-supplied Function, hence a method on the Evaluator that will run
// the program.
func (e *Evaluator) registerNumericalBuiltins(env *value.Environment) {
	def(env, builtin("diff", 3, false, func(args []value.Value) (value.Value, error) {
		return e.finiteDiff(env, "diff", args, 1)
	}))
	def(env, builtin("diff2", 3, false, func(args []value.Value) (value.Value, error) {
		return e.finiteDiff(env, "diff2", args, 2)
	}))
	def(env, builtin("diff3", 3, false, func(args []value.Value) (value.Value, error) {
		return e.finiteDiff(env, "diff3", args, 3)
	}))

	def(env, builtin("gradient", 2, false, func(args []value.Value) (value.Value, error) {
		fn, err := asFunction("gradient", args[0])
		if err != nil {
			return nil, err
		}
		at, err := asVector("gradient", args[1])
		if err != nil {
			return nil, err
		}
		const h = 1e-5
		grad := make([]value.Value, len(at.Items))
		for i := range at.Items {
			plus := cloneVectorItems(at.Items)
			minus := cloneVectorItems(at.Items)
			xi, err := asNumber("gradient", at.Items[i])
			if err != nil {
				return nil, err
			}
			plus[i] = value.Number{Val: xi + h}
			minus[i] = value.Number{Val: xi - h}
			fp, err := e.apply(fn, []value.Value{&value.Vector{Items: plus}}, env)
			if err != nil {
				return nil, err
			}
			fm, err := e.apply(fn, []value.Value{&value.Vector{Items: minus}}, env)
			if err != nil {
				return nil, err
			}
			fpN, err := asNumber("gradient", fp)
			if err != nil {
				return nil, err
			}
			fmN, err := asNumber("gradient", fm)
			if err != nil {
				return nil, err
			}
			grad[i] = value.Number{Val: (fpN - fmN) / (2 * h)}
		}
		return &value.Vector{Items: grad}, nil
	}))

	def(env, builtin("trapz", 4, false, func(args []value.Value) (value.Value, error) {
		return e.quadrature(env, "trapz", args, trapzRule)
	}))
	def(env, builtin("simpson", 4, false, func(args []value.Value) (value.Value, error) {
		return e.quadrature(env, "simpson", args, simpsonRule)
	}))
	def(env, builtin("simpson38", 4, false, func(args []value.Value) (value.Value, error) {
		return e.quadrature(env, "simpson38", args, simpson38Rule)
	}))
	def(env, builtin("integral", 4, false, func(args []value.Value) (value.Value, error) {
		return e.quadrature(env, "integral", args, simpsonRule)
	}))
	def(env, builtin("quad", 4, false, func(args []value.Value) (value.Value, error) {
		return e.quadrature(env, "quad", args, simpsonRule)
	}))
	def(env, builtin("romberg", 3, false, func(args []value.Value) (value.Value, error) {
		return e.romberg(env, args)
	}))

	def(env, builtin("bisect", 4, false, func(args []value.Value) (value.Value, error) {
		return e.bisect(env, args)
	}))
	def(env, builtin("newton", 3, true, func(args []value.Value) (value.Value, error) {
		return e.newton(env, args)
	}))
	def(env, builtin("secant", 3, false, func(args []value.Value) (value.Value, error) {
		return e.secant(env, args)
	}))
	def(env, builtin("solve", 3, true, func(args []value.Value) (value.Value, error) {
		return e.solve(env, args)
	}))
}

func cloneVectorItems(items []value.Value) []value.Value {
	out := make([]value.Value, len(items))
	copy(out, items)
	return out
}

// finiteDiff implements diff/diff2/diff3: central-difference derivatives
// of orders 1-3 via repeated symmetric stencils.
func (e *Evaluator) finiteDiff(env *value.Environment, name string, args []value.Value, order int) (value.Value, error) {
	fn, err := asFunction(name, args[0])
	if err != nil {
		return nil, err
	}
	x, err := asNumber(name, args[1])
	if err != nil {
		return nil, err
	}
	h, err := asNumber(name, args[2])
	if err != nil {
		return nil, err
	}
	call := func(xi float64) (float64, error) {
		v, err := e.apply(fn, []value.Value{value.Number{Val: xi}}, env)
		if err != nil {
			return 0, err
		}
		return asNumber(name, v)
	}
	switch order {
	case 1:
		fp, err := call(x + h)
		if err != nil {
			return nil, err
		}
		fm, err := call(x - h)
		if err != nil {
			return nil, err
		}
		return value.Number{Val: (fp - fm) / (2 * h)}, nil
	case 2:
		fp, err := call(x + h)
		if err != nil {
			return nil, err
		}
		f0, err := call(x)
		if err != nil {
			return nil, err
		}
		fm, err := call(x - h)
		if err != nil {
			return nil, err
		}
		return value.Number{Val: (fp - 2*f0 + fm) / (h * h)}, nil
	default:
		fpp, err := call(x + 2*h)
		if err != nil {
			return nil, err
		}
		fp, err := call(x + h)
		if err != nil {
			return nil, err
		}
		fm, err := call(x - h)
		if err != nil {
			return nil, err
		}
		fmm, err := call(x - 2*h)
		if err != nil {
			return nil, err
		}
		return value.Number{Val: (fpp - 2*fp + 2*fm - fmm) / (2 * h * h * h)}, nil
	}
}

type quadRule func(ys []float64, h float64) float64

func trapzRule(ys []float64, h float64) float64 {
	total := 0.0
	for i := 0; i < len(ys)-1; i++ {
		total += (ys[i] + ys[i+1]) / 2 * h
	}
	return total
}

func simpsonRule(ys []float64, h float64) float64 {
	n := len(ys) - 1
	if n%2 != 0 {
		return trapzRule(ys, h)
	}
	total := ys[0] + ys[n]
	for i := 1; i < n; i++ {
		if i%2 == 0 {
			total += 2 * ys[i]
		} else {
			total += 4 * ys[i]
		}
	}
	return total * h / 3
}

func simpson38Rule(ys []float64, h float64) float64 {
	n := len(ys) - 1
	if n%3 != 0 {
		return simpsonRule(ys, h)
	}
	total := ys[0] + ys[n]
	for i := 1; i < n; i++ {
		if i%3 == 0 {
			total += 2 * ys[i]
		} else {
			total += 3 * ys[i]
		}
	}
	return total * 3 * h / 8
}

// quadrature implements trapz/simpson/simpson38/integral/quad: integrate
// fn over [a, b] with n subintervals using the given composite rule.
func (e *Evaluator) quadrature(env *value.Environment, name string, args []value.Value, rule quadRule) (value.Value, error) {
	fn, err := asFunction(name, args[0])
	if err != nil {
		return nil, err
	}
	a, err := asNumber(name, args[1])
	if err != nil {
		return nil, err
	}
	b, err := asNumber(name, args[2])
	if err != nil {
		return nil, err
	}
	nf, err := asNumber(name, args[3])
	if err != nil {
		return nil, err
	}
	n := int(nf)
	if n < 1 {
		return nil, valueErrorf("%s: subinterval count must be positive", name)
	}
	h := (b - a) / float64(n)
	ys := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		v, err := e.apply(fn, []value.Value{value.Number{Val: a + float64(i)*h}}, env)
		if err != nil {
			return nil, err
		}
		y, err := asNumber(name, v)
		if err != nil {
			return nil, err
		}
		ys[i] = y
	}
	return value.Number{Val: rule(ys, h)}, nil
}

// romberg implements Romberg integration via repeated Richardson
// extrapolation of the trapezoid rule, refining until consecutive
// estimates agree to 1e-10 or ten levels are reached.
func (e *Evaluator) romberg(env *value.Environment, args []value.Value) (value.Value, error) {
	fn, err := asFunction("romberg", args[0])
	if err != nil {
		return nil, err
	}
	a, err := asNumber("romberg", args[1])
	if err != nil {
		return nil, err
	}
	b, err := asNumber("romberg", args[2])
	if err != nil {
		return nil, err
	}
	call := func(x float64) (float64, error) {
		v, err := e.apply(fn, []value.Value{value.Number{Val: x}}, env)
		if err != nil {
			return 0, err
		}
		return asNumber("romberg", v)
	}

	const maxLevels = 10
	r := make([][]float64, maxLevels)
	for i := range r {
		r[i] = make([]float64, maxLevels)
	}

	fa, err := call(a)
	if err != nil {
		return nil, err
	}
	fb, err := call(b)
	if err != nil {
		return nil, err
	}
	r[0][0] = (b - a) / 2 * (fa + fb)

	for i := 1; i < maxLevels; i++ {
		h := (b - a) / math.Pow(2, float64(i))
		sum := 0.0
		for k := 1; k <= int(math.Pow(2, float64(i-1))); k++ {
			x := a + float64(2*k-1)*h
			fx, err := call(x)
			if err != nil {
				return nil, err
			}
			sum += fx
		}
		r[i][0] = r[i-1][0]/2 + sum*h

		for j := 1; j <= i; j++ {
			factor := math.Pow(4, float64(j))
			r[i][j] = (factor*r[i][j-1] - r[i-1][j-1]) / (factor - 1)
		}

		if i > 1 && math.Abs(r[i][i]-r[i-1][i-1]) < 1e-10 {
			return value.Number{Val: r[i][i]}, nil
		}
	}
	return value.Number{Val: r[maxLevels-1][maxLevels-1]}, nil
}

// bisect implements the bisection root finder (spec section 6): requires
// a sign change over [a, b].
func (e *Evaluator) bisect(env *value.Environment, args []value.Value) (value.Value, error) {
	fn, err := asFunction("bisect", args[0])
	if err != nil {
		return nil, err
	}
	a, err := asNumber("bisect", args[1])
	if err != nil {
		return nil, err
	}
	b, err := asNumber("bisect", args[2])
	if err != nil {
		return nil, err
	}
	call := func(x float64) (float64, error) {
		v, err := e.apply(fn, []value.Value{value.Number{Val: x}}, env)
		if err != nil {
			return 0, err
		}
		return asNumber("bisect", v)
	}
	fa, err := call(a)
	if err != nil {
		return nil, err
	}
	fb, err := call(b)
	if err != nil {
		return nil, err
	}
	if fa*fb > 0 {
		return nil, numericErrorf("bisect: f(a) and f(b) must have opposite signs")
	}
	for i := 0; i < 200; i++ {
		mid := (a + b) / 2
		fm, err := call(mid)
		if err != nil {
			return nil, err
		}
		if math.Abs(fm) < 1e-12 || (b-a)/2 < 1e-12 {
			return value.Number{Val: mid}, nil
		}
		if fa*fm < 0 {
			b = mid
			fb = fm
		} else {
			a = mid
			fa = fm
		}
	}
	return value.Number{Val: (a + b) / 2}, nil
}

// newton implements Newton-Raphson iteration. An optional 4th argument
// supplies the derivative; otherwise it is estimated via central
// difference.
func (e *Evaluator) newton(env *value.Environment, args []value.Value) (value.Value, error) {
	fn, err := asFunction("newton", args[0])
	if err != nil {
		return nil, err
	}
	x, err := asNumber("newton", args[1])
	if err != nil {
		return nil, err
	}
	tol, err := asNumber("newton", args[2])
	if err != nil {
		return nil, err
	}
	var deriv value.Function
	if len(args) > 3 {
		deriv, err = asFunction("newton", args[3])
		if err != nil {
			return nil, err
		}
	}
	call := func(f value.Function, xi float64) (float64, error) {
		v, err := e.apply(f, []value.Value{value.Number{Val: xi}}, env)
		if err != nil {
			return 0, err
		}
		return asNumber("newton", v)
	}
	const h = 1e-6
	for i := 0; i < 100; i++ {
		fx, err := call(fn, x)
		if err != nil {
			return nil, err
		}
		if math.Abs(fx) < tol {
			return value.Number{Val: x}, nil
		}
		var dfx float64
		if deriv != nil {
			dfx, err = call(deriv, x)
			if err != nil {
				return nil, err
			}
		} else {
			fp, err := call(fn, x+h)
			if err != nil {
				return nil, err
			}
			fm, err := call(fn, x-h)
			if err != nil {
				return nil, err
			}
			dfx = (fp - fm) / (2 * h)
		}
		if dfx == 0 {
			return nil, numericErrorf("newton: zero derivative at x=%g", x)
		}
		x -= fx / dfx
	}
	return value.Number{Val: x}, nil
}

// secant implements the secant method, avoiding newton's derivative
// requirement by estimating slope from the last two iterates.
func (e *Evaluator) secant(env *value.Environment, args []value.Value) (value.Value, error) {
	fn, err := asFunction("secant", args[0])
	if err != nil {
		return nil, err
	}
	x0, err := asNumber("secant", args[1])
	if err != nil {
		return nil, err
	}
	x1, err := asNumber("secant", args[2])
	if err != nil {
		return nil, err
	}
	call := func(xi float64) (float64, error) {
		v, err := e.apply(fn, []value.Value{value.Number{Val: xi}}, env)
		if err != nil {
			return 0, err
		}
		return asNumber("secant", v)
	}
	f0, err := call(x0)
	if err != nil {
		return nil, err
	}
	for i := 0; i < 100; i++ {
		f1, err := call(x1)
		if err != nil {
			return nil, err
		}
		if math.Abs(f1) < 1e-12 {
			return value.Number{Val: x1}, nil
		}
		if f1 == f0 {
			return nil, numericErrorf("secant: stalled, f(x0) == f(x1)")
		}
		x2 := x1 - f1*(x1-x0)/(f1-f0)
		x0, f0 = x1, f1
		x1 = x2
	}
	return value.Number{Val: x1}, nil
}

// solve is overloaded per spec section 6's catalog: solve(A, b) performs a
// linear-system solve (internal/linalg, the tensor domain) when the first
// argument is a tensor/Vector; solve(f, ...) is the general-purpose root
// finder otherwise — bisection when a bracketing interval is given (2 extra
// args), else Newton's method from a single starting point (1 extra arg).
func (e *Evaluator) solve(env *value.Environment, args []value.Value) (value.Value, error) {
	if _, ok := args[0].(value.Function); !ok {
		a, err := asRealTensor("solve", args[0])
		if err != nil {
			return nil, err
		}
		b, err := asRealTensor("solve", args[1])
		if err != nil {
			return nil, err
		}
		x, err := linalg.Solve(a, b)
		if err != nil {
			return nil, linalgErr(err)
		}
		return realTensorToValue(x, nil)
	}
	if len(args) >= 3 {
		return e.bisect(env, args[:3])
	}
	extended := append(append([]value.Value{}, args...), value.Number{Val: 1e-10})
	return e.newton(env, extended)
}
