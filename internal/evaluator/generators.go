package evaluator

import (
	"github.com/eddndev/achronyme/internal/value"
	"github.com/eddndev/achronyme/pkg/ast"
)

// evalGenerateBlock implements `generate { ... }` (spec 4.6): the block's
// statements run on their own goroutine, driven by the Generator's
// unbuffered channel pair so exactly one of the producer and the consumer
// of Next() is ever runnable — a Generator gets its own child Evaluator
// (fresh call-stack accounting, same type-alias table) so its frames never
// interleave with whatever called generate() in the first place.
func (e *Evaluator) evalGenerateBlock(n *ast.GenerateBlock, env *value.Environment) *value.Generator {
	gen := value.NewGenerator()
	sub := e.child()
	sub.curGen = gen
	scope := env.Push()

	go func() {
		_, err := sub.evalBlock(n.Statements, scope, false)
		if err != nil {
			if _, ok := err.(generatorCancelSignal); ok {
				// The consumer already called Stop; no one is listening on
				// values/resume any more, so just unwind without touching
				// either channel.
				return
			}
			if _, ok := err.(*returnSignal); ok {
				gen.Close()
				return
			}
			gen.Fail(err)
			return
		}
		gen.Close()
	}()

	return gen
}

// evalYield implements `yield v` (spec 4.6): it suspends the generator's
// goroutine until the consumer calls Next() again.
func (e *Evaluator) evalYield(n *ast.YieldExpression, env *value.Environment) (value.Value, error) {
	if e.curGen == nil {
		return nil, typeErrorf("yield used outside a generate block")
	}
	v, err := e.evalExpr(n.Value, env, false)
	if err != nil {
		return nil, err
	}
	if canceled := e.curGen.Emit(v); canceled {
		return nil, generatorCancelSignal{}
	}
	return value.Null{}, nil
}
