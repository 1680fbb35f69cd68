package evaluator

import (
	"math"

	"github.com/eddndev/achronyme/internal/value"
)

// registerCollectionBuiltins registers spec section 6's collection
// catalog. The higher-order members (map/filter/reduce/pipe/any/all/find/
// findIndex) call back into e.apply to invoke the caller-supplied
// Function, so this registration is a method on the Evaluator that will
// run the program rather than a free function.
func (e *Evaluator) registerCollectionBuiltins(env *value.Environment) {
	def(env, builtin("len", 1, false, func(args []value.Value) (value.Value, error) {
		items, err := asItems("len", args[0])
		if err != nil {
			if s, ok := args[0].(value.Str); ok {
				return value.Number{Val: float64(len([]rune(s.Val)))}, nil
			}
			return nil, err
		}
		return value.Number{Val: float64(len(items))}, nil
	}))

	def(env, builtin("sum", 1, false, func(args []value.Value) (value.Value, error) {
		nums, err := numericItems("sum", args[0])
		if err != nil {
			return nil, err
		}
		total := 0.0
		for _, n := range nums {
			total += n
		}
		return value.Number{Val: total}, nil
	}))

	def(env, builtin("mean", 1, false, func(args []value.Value) (value.Value, error) {
		nums, err := numericItems("mean", args[0])
		if err != nil {
			return nil, err
		}
		if len(nums) == 0 {
			return nil, valueErrorf("mean: empty input")
		}
		return value.Number{Val: meanOf(nums)}, nil
	}))

	def(env, builtin("variance", 1, false, func(args []value.Value) (value.Value, error) {
		nums, err := numericItems("variance", args[0])
		if err != nil {
			return nil, err
		}
		if len(nums) == 0 {
			return nil, valueErrorf("variance: empty input")
		}
		return value.Number{Val: varianceOf(nums)}, nil
	}))

	def(env, builtin("std", 1, false, func(args []value.Value) (value.Value, error) {
		nums, err := numericItems("std", args[0])
		if err != nil {
			return nil, err
		}
		if len(nums) == 0 {
			return nil, valueErrorf("std: empty input")
		}
		return value.Number{Val: math.Sqrt(varianceOf(nums))}, nil
	}))

	def(env, builtin("count", 1, false, func(args []value.Value) (value.Value, error) {
		items, err := asItems("count", args[0])
		if err != nil {
			return nil, err
		}
		return value.Number{Val: float64(len(items))}, nil
	}))

	def(env, builtin("contains", 2, false, func(args []value.Value) (value.Value, error) {
		items, err := asItems("contains", args[0])
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			if value.Equal(it, args[1]) {
				return value.Bool{Val: true}, nil
			}
		}
		return value.Bool{Val: false}, nil
	}))

	def(env, builtin("map", 2, false, func(args []value.Value) (value.Value, error) {
		items, err := asItems("map", args[0])
		if err != nil {
			return nil, err
		}
		fn, err := asFunction("map", args[1])
		if err != nil {
			return nil, err
		}
		out := make([]value.Value, len(items))
		for i, it := range items {
			v, err := e.apply(fn, []value.Value{it}, env)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return &value.Vector{Items: out}, nil
	}))

	def(env, builtin("filter", 2, false, func(args []value.Value) (value.Value, error) {
		items, err := asItems("filter", args[0])
		if err != nil {
			return nil, err
		}
		fn, err := asFunction("filter", args[1])
		if err != nil {
			return nil, err
		}
		var out []value.Value
		for _, it := range items {
			v, err := e.apply(fn, []value.Value{it}, env)
			if err != nil {
				return nil, err
			}
			if value.Truthy(v) {
				out = append(out, it)
			}
		}
		return &value.Vector{Items: out}, nil
	}))

	def(env, builtin("reduce", 3, false, func(args []value.Value) (value.Value, error) {
		items, err := asItems("reduce", args[0])
		if err != nil {
			return nil, err
		}
		fn, err := asFunction("reduce", args[1])
		if err != nil {
			return nil, err
		}
		acc := args[2]
		for _, it := range items {
			acc, err = e.apply(fn, []value.Value{acc, it}, env)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	}))

	def(env, builtin("pipe", 1, true, func(args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return nil, typeErrorf("pipe expects at least 1 argument")
		}
		acc := args[0]
		for _, a := range args[1:] {
			fn, err := asFunction("pipe", a)
			if err != nil {
				return nil, err
			}
			acc, err = e.apply(fn, []value.Value{acc}, env)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	}))

	def(env, builtin("any", 2, false, func(args []value.Value) (value.Value, error) {
		items, err := asItems("any", args[0])
		if err != nil {
			return nil, err
		}
		fn, err := asFunction("any", args[1])
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			v, err := e.apply(fn, []value.Value{it}, env)
			if err != nil {
				return nil, err
			}
			if value.Truthy(v) {
				return value.Bool{Val: true}, nil
			}
		}
		return value.Bool{Val: false}, nil
	}))

	def(env, builtin("all", 2, false, func(args []value.Value) (value.Value, error) {
		items, err := asItems("all", args[0])
		if err != nil {
			return nil, err
		}
		fn, err := asFunction("all", args[1])
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			v, err := e.apply(fn, []value.Value{it}, env)
			if err != nil {
				return nil, err
			}
			if !value.Truthy(v) {
				return value.Bool{Val: false}, nil
			}
		}
		return value.Bool{Val: true}, nil
	}))

	def(env, builtin("find", 2, false, func(args []value.Value) (value.Value, error) {
		items, err := asItems("find", args[0])
		if err != nil {
			return nil, err
		}
		fn, err := asFunction("find", args[1])
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			v, err := e.apply(fn, []value.Value{it}, env)
			if err != nil {
				return nil, err
			}
			if value.Truthy(v) {
				return it, nil
			}
		}
		return value.Null{}, nil
	}))

	def(env, builtin("findIndex", 2, false, func(args []value.Value) (value.Value, error) {
		items, err := asItems("findIndex", args[0])
		if err != nil {
			return nil, err
		}
		fn, err := asFunction("findIndex", args[1])
		if err != nil {
			return nil, err
		}
		for i, it := range items {
			v, err := e.apply(fn, []value.Value{it}, env)
			if err != nil {
				return nil, err
			}
			if value.Truthy(v) {
				return value.Number{Val: float64(i)}, nil
			}
		}
		return value.Number{Val: -1}, nil
	}))
}

func numericItems(name string, v value.Value) ([]float64, error) {
	items, err := asItems(name, v)
	if err != nil {
		return nil, err
	}
	nums := make([]float64, len(items))
	for i, it := range items {
		n, ok := it.(value.Number)
		if !ok {
			return nil, typeErrorf("%s expects a numeric collection, element %d is a %s", name, i, it.Type())
		}
		nums[i] = n.Val
	}
	return nums, nil
}

func meanOf(nums []float64) float64 {
	total := 0.0
	for _, n := range nums {
		total += n
	}
	return total / float64(len(nums))
}

func varianceOf(nums []float64) float64 {
	m := meanOf(nums)
	total := 0.0
	for _, n := range nums {
		d := n - m
		total += d * d
	}
	return total / float64(len(nums))
}
