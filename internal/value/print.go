package value

// visitSet tracks record identities currently being printed, so a cyclic
// structure (a record holding a MutableRef back to itself) prints "{...}"
// at the repeat instead of recursing forever (spec section 9).
type visitSet struct {
	seen map[*Record]bool
}

func newVisitSet() *visitSet {
	return &visitSet{seen: make(map[*Record]bool)}
}

func (s *visitSet) has(r *Record) bool { return s.seen[r] }
func (s *visitSet) add(r *Record)      { s.seen[r] = true }
func (s *visitSet) remove(r *Record)   { delete(s.seen, r) }

// Print is the canonical pretty-printer (spec 4.1), cycle-safe across
// records reached through MutableRef cells or nested vectors.
func Print(v Value) string {
	return printValue(v, newVisitSet())
}

func printValue(v Value, seen *visitSet) string {
	switch x := v.(type) {
	case *Record:
		return printRecord(x, seen)
	case *MutableRef:
		return printValue(x.Get(), seen)
	case *Vector:
		return printVectorSeen(x, seen)
	default:
		return v.String()
	}
}

func printVectorSeen(v *Vector, seen *visitSet) string {
	s := "["
	for i, item := range v.Items {
		if i > 0 {
			s += ", "
		}
		s += printValue(item, seen)
	}
	return s + "]"
}
