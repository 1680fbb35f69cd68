package value

// Generator is a cooperative, single-threaded coroutine (spec 3.2, 4.4.5):
// `generate { ... yield x ... }` suspends at each yield and resumes on the
// next pull. It is backed by a goroutine blocked on an unbuffered channel
// pair rather than OS threads — at any instant exactly one of the producer
// (the generator body) and the consumer (the caller of Next) is runnable,
// which preserves single-threaded semantics while reusing Go's scheduler
// instead of hand-rolling a continuation stack.
type Generator struct {
	values   chan genItem
	resume   chan struct{}
	cancel   chan struct{}
	started  bool
	done     bool
	canceled bool
}

type genItem struct {
	Val Value
	Err error
}

func NewGenerator() *Generator {
	return &Generator{
		values: make(chan genItem),
		resume: make(chan struct{}),
		cancel: make(chan struct{}),
	}
}

func (g *Generator) Type() string   { return "Generator" }
func (g *Generator) String() string { return "<generator>" }

// Emit is called from within the generator's driving goroutine at each
// `yield` expression; it blocks until the consumer calls Next again, or
// until Stop cancels the generator, whichever happens first. Its bool
// result reports whether the generator was canceled while Emit was
// blocked — the caller (evalYield) uses this to unwind the generator
// body instead of looping forever on a consumer that will never call
// Next again (spec section 5: "a dropped Generator releases its
// captured environment").
func (g *Generator) Emit(v Value) (canceled bool) {
	select {
	case g.values <- genItem{Val: v}:
	case <-g.cancel:
		return true
	}
	select {
	case <-g.resume:
		return false
	case <-g.cancel:
		return true
	}
}

// Stop cancels the generator: any Emit call currently blocked (or the
// next one reached) unblocks immediately and the driving goroutine
// unwinds, releasing its captured environment. Safe to call more than
// once and safe to call on an already-exhausted generator. Callers that
// break out of a `for x in gen` loop before exhausting it, or otherwise
// drop a generator early, should call Stop so its goroutine does not
// leak forever blocked on an unbuffered channel.
func (g *Generator) Stop() {
	if g.done || g.canceled {
		return
	}
	g.canceled = true
	close(g.cancel)
}

// Fail delivers an error raised inside the generator body to the consumer
// and ends the sequence.
func (g *Generator) Fail(err error) {
	g.values <- genItem{Err: err}
	close(g.values)
}

// Close signals the generator body has run to completion with no error.
func (g *Generator) Close() {
	close(g.values)
}

// Next pulls the next value, reporting ok=false once the generator body has
// returned (spec 4.4.5: iterating an exhausted generator yields nothing
// further, it is not an error).
func (g *Generator) Next() (val Value, ok bool, err error) {
	if g.done {
		return Null{}, false, nil
	}
	if g.started {
		g.resume <- struct{}{}
	}
	g.started = true
	item, open := <-g.values
	if !open {
		g.done = true
		return Null{}, false, nil
	}
	if item.Err != nil {
		g.done = true
		return Null{}, false, item.Err
	}
	return item.Val, true, nil
}
