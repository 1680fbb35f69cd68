package evaluator

import "github.com/eddndev/achronyme/internal/value"

// returnSignal unwinds evaluation to the nearest function boundary (spec
// 4.4.4's `return v`). It implements error so it propagates through the
// ordinary (Value, error) plumbing without a separate control-flow field
// threaded through every eval call, the way the teacher's ControlFlow
// struct is checked after each statement — Go's own error propagation
// gives us that check for free at every call site.
type returnSignal struct {
	Value value.Value
}

func (r *returnSignal) Error() string { return "return outside function" }

// tailCallSignal replaces a self-recursive call in tail position (spec
// 4.4.3) instead of growing the call stack. It only ever escapes as far as
// the applyUserDefined loop that produced the frame it refers to, because
// it is only constructed when evalExpr is invoked with tail=true, and
// tail=true is only threaded through the handful of positions spec 4.4.3
// names as tail position.
type tailCallSignal struct {
	Args []value.Value
}

func (t *tailCallSignal) Error() string { return "tail call outside function" }

// generatorCancelSignal unwinds a generator body's goroutine after its
// consumer calls (*value.Generator).Stop — e.g. a `for x in gen` loop
// that `break`s before the generator is exhausted. It propagates out of
// evalYield exactly like returnSignal propagates out of `return`, so the
// driving goroutine started by evalGenerateBlock unwinds instead of
// blocking forever on an Emit no consumer will ever resume.
type generatorCancelSignal struct{}

func (generatorCancelSignal) Error() string { return "generator canceled" }
