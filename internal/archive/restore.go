package archive

import (
	"fmt"

	"github.com/eddndev/achronyme/internal/value"
)

// RestoreMode selects how an archive's bindings are applied to a live
// Environment (spec.md §6: "restore modes {merge, replace, namespace} are
// honored per the language reference").
type RestoreMode int

const (
	// ModeMerge defines every archived binding into env, overwriting any
	// name already bound there (the default: an update, not a wipe).
	ModeMerge RestoreMode = iota
	// ModeReplace wipes every binding env currently holds in its own
	// (innermost) scope before restoring the archive, so the result is
	// exactly the archive's bindings and nothing env held before.
	ModeReplace
	// ModeNamespace defines each archived binding under "prefix.name"
	// instead of its bare name, so a restore can be inspected or composed
	// without colliding with the live session at all.
	ModeNamespace
)

// Restore decodes every binding in a, in deterministic (sorted) name
// order, and applies it to env per mode. lookup resolves Builtin-kind
// values by name — pass a freshly built global environment (it always
// carries the full builtin catalog) even when env itself is about to be
// cleared by ModeReplace, since env may no longer have builtins bound by
// the time Deserialize needs to resolve one. namespace is only consulted
// for ModeNamespace.
func Restore(a *Archive, env, lookup *value.Environment, mode RestoreMode, namespace string) error {
	names := make([]string, 0, len(a.Bindings))
	for name := range a.Bindings {
		names = append(names, name)
	}
	sortStrings(names)

	if mode == ModeReplace {
		env.Clear()
	}

	for _, name := range names {
		b := a.Bindings[name]
		v, err := Deserialize(b.Value, lookup)
		if err != nil {
			return fmt.Errorf("archive: restoring %q: %w", name, err)
		}
		target := name
		if mode == ModeNamespace {
			if namespace == "" {
				return fmt.Errorf("archive: namespace restore requires a non-empty namespace prefix")
			}
			target = namespace + "." + name
		}
		env.Define(target, v, b.Mut)
	}
	return nil
}

// Save captures a snapshot's worth of named bindings into a map of
// archive.Binding, ready for Write. mutable reports whether a given
// binding name was declared `mut` in the snapshot's environment — pass
// env.IsMutable so the saved bindings round-trip their original kind.
func Save(bindings map[string]value.Value, mutable func(name string) bool) (map[string]Binding, error) {
	out := make(map[string]Binding, len(bindings))
	for name, v := range bindings {
		sv, err := Serialize(v)
		if err != nil {
			return nil, fmt.Errorf("archive: saving %q: %w", name, err)
		}
		out[name] = Binding{Value: sv, Mut: mutable(name)}
	}
	return out, nil
}
