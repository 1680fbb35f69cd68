package value

// Edge is the value produced by `a -> b` / `a <> b` edge syntax (spec 3.1,
// graph component). Node identities are plain Values (usually Str or
// Number); Properties carries the optional attached record literal.
type Edge struct {
	From, To   Value
	Directed   bool
	Properties *Record
}

func (e *Edge) Type() string { return "Edge" }

func (e *Edge) String() string {
	arrow := "<>"
	if e.Directed {
		arrow = "->"
	}
	s := Print(e.From) + " " + arrow + " " + Print(e.To)
	if e.Properties != nil && len(e.Properties.Names) > 0 {
		s += " " + e.Properties.String()
	}
	return s
}
