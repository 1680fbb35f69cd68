package value

// Environment is the lexically-scoped binding chain (spec 3.3, component
// D): a linked stack of scopes, each mapping names to MutableRef cells so
// that closures capturing an outer `mut` binding observe later writes
// through the same cell (spec 3.3's "closures capture by reference").
type Environment struct {
	parent *Environment
	scope  map[string]*MutableRef
	mut    map[string]bool
}

// NewEnvironment creates a root environment with no parent (used once, at
// program start; every other Environment descends from it via Push).
func NewEnvironment() *Environment {
	return &Environment{
		scope: make(map[string]*MutableRef),
		mut:   make(map[string]bool),
	}
}

// Push opens a new child scope, used on block entry (do-blocks, function
// bodies, loop bodies, match arms).
func (e *Environment) Push() *Environment {
	return &Environment{
		parent: e,
		scope:  make(map[string]*MutableRef),
		mut:    make(map[string]bool),
	}
}

// Define introduces a new binding in the current (innermost) scope. Redefining
// a name already bound in the SAME scope shadows it there, matching
// ordinary block-scoping rules; isMut marks it as a `mut` binding, rebindable
// via Set.
//
// v is deep-cloned before it is stored (spec 3.1/3.4: "values are passed by
// deep clone except through mutable reference cells"). Binding is the one
// choke point every let/mut/parameter/loop-variable assignment passes
// through, so cloning here is what makes plain rebinding of a Record or
// Vector independent of its source — only a MutableRef survives Clone
// unchanged, preserving closure-capture-by-reference.
func (e *Environment) Define(name string, v Value, isMut bool) {
	e.scope[name] = NewMutableRef(Clone(v))
	e.mut[name] = isMut
}

// Get resolves name by walking outward through enclosing scopes (spec 3.3).
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if ref, ok := env.scope[name]; ok {
			return ref.Get(), true
		}
	}
	return nil, false
}

// Set rebinds an existing `mut` binding in place, walking outward to find
// the cell that owns name. It reports ok=false if name is unbound or was
// declared with `let` (immutable), which the evaluator turns into a
// MutabilityError.
func (e *Environment) Set(name string, v Value) (ok bool, isImmutable bool) {
	for env := e; env != nil; env = env.parent {
		if ref, found := env.scope[name]; found {
			if !env.mut[name] {
				return false, true
			}
			ref.Set(v)
			return true, false
		}
	}
	return false, false
}

// IsMutable reports whether name, if bound, was declared with `mut`.
func (e *Environment) IsMutable(name string) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.scope[name]; ok {
			return env.mut[name]
		}
	}
	return false
}

// Clear empties this scope's own bindings (not its ancestors'), used by
// `.ach` restore's replace mode to wipe a target environment before
// reloading it wholesale.
func (e *Environment) Clear() {
	e.scope = make(map[string]*MutableRef)
	e.mut = make(map[string]bool)
}

// Snapshot returns a shallow copy of the environment chain's visible
// bindings (spec 4.3, used by the `env` CLI command and REPL introspection):
// names closer to the current scope shadow outer ones of the same name.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value)
	chain := []*Environment{}
	for env := e; env != nil; env = env.parent {
		chain = append(chain, env)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for name, ref := range chain[i].scope {
			out[name] = ref.Get()
		}
	}
	return out
}
