package evaluator

import (
	"github.com/eddndev/achronyme/internal/stringfn"
	"github.com/eddndev/achronyme/internal/value"
)

// registerStringBuiltins adapts internal/stringfn's plain Go functions
// into the Value-typed builtin catalog spec section 6 names.
func registerStringBuiltins(env *value.Environment) {
	def(env, builtin("concat", 1, true, func(args []value.Value) (value.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			s, err := asString("concat", a)
			if err != nil {
				return nil, err
			}
			parts[i] = s
		}
		return value.Str{Val: stringfn.Concat(parts...)}, nil
	}))

	def(env, builtin("length", 1, false, func(args []value.Value) (value.Value, error) {
		s, err := asString("length", args[0])
		if err != nil {
			return nil, err
		}
		return value.Number{Val: float64(stringfn.Length(s))}, nil
	}))

	def(env, builtin("upper", 1, false, stringUnary("upper", stringfn.Upper)))
	def(env, builtin("lower", 1, false, stringUnary("lower", stringfn.Lower)))
	def(env, builtin("trim", 1, false, stringUnary("trim", stringfn.Trim)))
	def(env, builtin("trim_start", 1, false, stringUnary("trim_start", stringfn.TrimStart)))
	def(env, builtin("trim_end", 1, false, stringUnary("trim_end", stringfn.TrimEnd)))

	def(env, builtin("starts_with", 2, false, func(args []value.Value) (value.Value, error) {
		s, prefix, err := stringPair("starts_with", args)
		if err != nil {
			return nil, err
		}
		return value.Bool{Val: stringfn.StartsWith(s, prefix)}, nil
	}))
	def(env, builtin("ends_with", 2, false, func(args []value.Value) (value.Value, error) {
		s, suffix, err := stringPair("ends_with", args)
		if err != nil {
			return nil, err
		}
		return value.Bool{Val: stringfn.EndsWith(s, suffix)}, nil
	}))

	def(env, builtin("replace", 3, false, func(args []value.Value) (value.Value, error) {
		s, err := asString("replace", args[0])
		if err != nil {
			return nil, err
		}
		old, err := asString("replace", args[1])
		if err != nil {
			return nil, err
		}
		nw, err := asString("replace", args[2])
		if err != nil {
			return nil, err
		}
		return value.Str{Val: stringfn.Replace(s, old, nw)}, nil
	}))

	def(env, builtin("split", 2, false, func(args []value.Value) (value.Value, error) {
		s, sep, err := stringPair("split", args)
		if err != nil {
			return nil, err
		}
		parts := stringfn.Split(s, sep)
		items := make([]value.Value, len(parts))
		for i, p := range parts {
			items[i] = value.Str{Val: p}
		}
		return &value.Vector{Items: items}, nil
	}))

	def(env, builtin("join", 2, false, func(args []value.Value) (value.Value, error) {
		items, err := asItems("join", args[0])
		if err != nil {
			return nil, err
		}
		sep, err := asString("join", args[1])
		if err != nil {
			return nil, err
		}
		parts := make([]string, len(items))
		for i, it := range items {
			s, err := asString("join", it)
			if err != nil {
				return nil, err
			}
			parts[i] = s
		}
		return value.Str{Val: stringfn.Join(parts, sep)}, nil
	}))

	def(env, builtin("pad_start", 3, false, func(args []value.Value) (value.Value, error) {
		return padBuiltin("pad_start", args, stringfn.PadStart)
	}))
	def(env, builtin("pad_end", 3, false, func(args []value.Value) (value.Value, error) {
		return padBuiltin("pad_end", args, stringfn.PadEnd)
	}))
}

func stringUnary(name string, f func(string) string) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		s, err := asString(name, args[0])
		if err != nil {
			return nil, err
		}
		return value.Str{Val: f(s)}, nil
	}
}

func stringPair(name string, args []value.Value) (string, string, error) {
	a, err := asString(name, args[0])
	if err != nil {
		return "", "", err
	}
	b, err := asString(name, args[1])
	if err != nil {
		return "", "", err
	}
	return a, b, nil
}

func padBuiltin(name string, args []value.Value, f func(string, int, string) string) (value.Value, error) {
	s, err := asString(name, args[0])
	if err != nil {
		return nil, err
	}
	width, err := asNumber(name, args[1])
	if err != nil {
		return nil, err
	}
	pad, err := asString(name, args[2])
	if err != nil {
		return nil, err
	}
	return value.Str{Val: f(s, int(width), pad)}, nil
}
