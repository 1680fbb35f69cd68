package value

// Kind enumerates the fixed error taxonomy of spec section 7. Kind values
// are exactly the strings surfaced to user code through an Error record's
// `kind` field, so they are never renamed once published.
type Kind string

const (
	KindParseError      Kind = "ParseError"
	KindUndefinedError  Kind = "UndefinedError"
	KindTypeError       Kind = "TypeError"
	KindMutabilityError Kind = "MutabilityError"
	KindShapeError      Kind = "ShapeError"
	KindIndexError      Kind = "IndexError"
	KindValueError      Kind = "ValueError"
	KindNumericError    Kind = "NumericError"
	KindSingularError   Kind = "SingularError"
	KindZeroDivision    Kind = "ZeroDivisionError"
	KindUnboundedError  Kind = "UnboundedError"
	KindInfeasibleError Kind = "InfeasibleError"
	KindMatchError      Kind = "MatchError"
	KindRecursionError  Kind = "RecursionError"
	KindUserError       Kind = "UserError"
)

// Error is the first-class runtime error value (spec 7): every Achronyme
// error, whether raised by a builtin or by user `throw`, is a Record-shaped
// value with message/kind/source fields, catchable with `try`/`catch`.
type Error struct {
	Message string
	Kind     Kind
	Source  Value // nil unless chained from a caught inner error
}

func (e *Error) Type() string { return "Error" }

func (e *Error) String() string {
	return string(e.Kind) + ": " + e.Message
}

// ToRecord exposes the error's fields the way user code observes them when
// catching it (spec 7: `catch e` binds a Record with message/kind/source).
func (e *Error) ToRecord() *Record {
	r := NewRecord()
	r.Set("message", Str{Val: e.Message}, false)
	r.Set("kind", Str{Val: string(e.Kind)}, false)
	if e.Source != nil {
		r.Set("source", e.Source, false)
	} else {
		r.Set("source", Null{}, false)
	}
	return r
}

// Error implements the standard library error interface so *Error can be
// threaded through Go's own error-returning functions inside the
// evaluator.
func (e *Error) Error() string { return e.String() }

func NewError(kind Kind, message string) *Error {
	return &Error{Message: message, Kind: kind}
}
