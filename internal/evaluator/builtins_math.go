package evaluator

import (
	"math"

	"github.com/eddndev/achronyme/internal/value"
)

// registerConstants defines the named numeric constants spec section 6
// lists alongside the math builtin catalog.
func registerConstants(env *value.Environment) {
	env.Define("pi", value.Number{Val: math.Pi}, false)
	env.Define("e", value.Number{Val: math.E}, false)
	env.Define("phi", value.Number{Val: (1 + math.Sqrt(5)) / 2}, false)
	env.Define("sqrt2", value.Number{Val: math.Sqrt2}, false)
	env.Define("sqrt3", value.Number{Val: math.Sqrt(3)}, false)
	env.Define("ln2", value.Number{Val: math.Ln2}, false)
	env.Define("ln10", value.Number{Val: math.Log(10)}, false)
}

// unary1 wraps a plain float64->float64 math function into a 1-arg
// builtin.
func unary1(name string, f func(float64) float64) *value.Builtin {
	return builtin(name, 1, false, func(args []value.Value) (value.Value, error) {
		x, err := asNumber(name, args[0])
		if err != nil {
			return nil, err
		}
		return value.Number{Val: f(x)}, nil
	})
}

// registerMathBuiltins registers spec section 6's arithmetic/math catalog.
func registerMathBuiltins(env *value.Environment) {
	for _, b := range []*value.Builtin{
		unary1("sin", math.Sin), unary1("cos", math.Cos), unary1("tan", math.Tan),
		unary1("asin", math.Asin), unary1("acos", math.Acos), unary1("atan", math.Atan),
		unary1("sinh", math.Sinh), unary1("cosh", math.Cosh), unary1("tanh", math.Tanh),
		unary1("exp", math.Exp), unary1("ln", math.Log), unary1("log10", math.Log10),
		unary1("log2", math.Log2), unary1("cbrt", math.Cbrt),
		unary1("abs", math.Abs), unary1("sign", sign),
		unary1("floor", math.Floor), unary1("ceil", math.Ceil),
		unary1("round", math.Round), unary1("trunc", math.Trunc),
		unary1("deg", func(x float64) float64 { return x * 180 / math.Pi }),
		unary1("rad", func(x float64) float64 { return x * math.Pi / 180 }),
	} {
		def(env, b)
	}

	def(env, builtin("sqrt", 1, false, func(args []value.Value) (value.Value, error) {
		x, err := asNumber("sqrt", args[0])
		if err != nil {
			return nil, err
		}
		if x < 0 {
			return nil, numericErrorf("sqrt: negative argument %g", x)
		}
		return value.Number{Val: math.Sqrt(x)}, nil
	}))

	def(env, builtin("atan2", 2, false, func(args []value.Value) (value.Value, error) {
		y, err := asNumber("atan2", args[0])
		if err != nil {
			return nil, err
		}
		x, err := asNumber("atan2", args[1])
		if err != nil {
			return nil, err
		}
		return value.Number{Val: math.Atan2(y, x)}, nil
	}))

	def(env, builtin("pow", 2, false, func(args []value.Value) (value.Value, error) {
		x, err := asNumber("pow", args[0])
		if err != nil {
			return nil, err
		}
		y, err := asNumber("pow", args[1])
		if err != nil {
			return nil, err
		}
		return value.Number{Val: math.Pow(x, y)}, nil
	}))

	def(env, builtin("log", 2, false, func(args []value.Value) (value.Value, error) {
		base, err := asNumber("log", args[0])
		if err != nil {
			return nil, err
		}
		x, err := asNumber("log", args[1])
		if err != nil {
			return nil, err
		}
		return value.Number{Val: math.Log(x) / math.Log(base)}, nil
	}))

	def(env, builtin("min", 1, true, func(args []value.Value) (value.Value, error) {
		return reduceNumbers("min", args, math.Min)
	}))
	def(env, builtin("max", 1, true, func(args []value.Value) (value.Value, error) {
		return reduceNumbers("max", args, math.Max)
	}))
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// reduceNumbers implements the variadic `min`/`max` overload: either one
// Vector/Tensor argument or several scalar Number arguments.
func reduceNumbers(name string, args []value.Value, pick func(a, b float64) float64) (value.Value, error) {
	var nums []float64
	if len(args) == 1 {
		items, err := asItems(name, args[0])
		if err != nil {
			n, err2 := asNumber(name, args[0])
			if err2 != nil {
				return nil, err
			}
			return value.Number{Val: n}, nil
		}
		for _, it := range items {
			n, ok := it.(value.Number)
			if !ok {
				return nil, typeErrorf("%s expects a numeric collection", name)
			}
			nums = append(nums, n.Val)
		}
	} else {
		for _, a := range args {
			n, err := asNumber(name, a)
			if err != nil {
				return nil, err
			}
			nums = append(nums, n)
		}
	}
	if len(nums) == 0 {
		return nil, valueErrorf("%s: empty input", name)
	}
	result := nums[0]
	for _, n := range nums[1:] {
		result = pick(result, n)
	}
	return value.Number{Val: result}, nil
}
