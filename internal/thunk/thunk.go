// Package thunk provides the deferred-value cells that generated code uses
// for bound names and call arguments.
//
// A cell holds either a concrete value or a producer. Which one is chosen by
// the constructor (Of or Lazy), never by inspecting the payload, so a curried
// *object.Function stored with Of is handed back untouched when forced.
// Producers are not memoized: every Force runs the producer again.
package thunk

import (
	"errors"
	"fmt"
	"sync/atomic"

	"splufp/internal/object"
)

var (
	// ErrUnbound is returned when a declared binding is forced before its
	// definition was attached with Rebind.
	ErrUnbound = errors.New("binding forced before definition")
	// ErrRecursionLimit is returned when producers nest deeper than MaxDepth.
	ErrRecursionLimit = errors.New("recursion limit exceeded")
)

// DefaultMaxDepth is the nesting limit used until SetMaxDepth is called.
const DefaultMaxDepth = 10000

var (
	maxDepth atomic.Int64
	depth    atomic.Int64
)

func init() {
	maxDepth.Store(DefaultMaxDepth)
}

// SetMaxDepth sets how many producers may be running inside one another.
// Values below one restore the default.
func SetMaxDepth(n int) {
	if n < 1 {
		n = DefaultMaxDepth
	}
	maxDepth.Store(int64(n))
}

// MaxDepth reports the current nesting limit.
func MaxDepth() int {
	return int(maxDepth.Load())
}

// Producer computes a value on demand.
type Producer func() (object.Object, error)

type payload struct {
	value    object.Object
	producer Producer
}

func valuePayload(v object.Object) payload {
	if v == nil {
		v = object.NONE
	}
	return payload{value: v}
}

func (p payload) force() (object.Object, error) {
	if p.producer == nil {
		return p.value, nil
	}

	limit := maxDepth.Load()
	if depth.Add(1) > limit {
		depth.Add(-1)
		return nil, fmt.Errorf("%w: more than %d nested forces", ErrRecursionLimit, limit)
	}
	defer depth.Add(-1)

	v, err := p.producer()
	if err != nil {
		return nil, err
	}
	if v == nil {
		return object.NONE, nil
	}
	return v, nil
}

// Thunk is an immutable deferred value.
type Thunk struct {
	p payload
}

// Of wraps a concrete value.
func Of(v object.Object) *Thunk {
	return &Thunk{p: valuePayload(v)}
}

// Lazy wraps a producer that runs on every Force.
func Lazy(fn Producer) *Thunk {
	if fn == nil {
		return Of(object.NONE)
	}
	return &Thunk{p: payload{producer: fn}}
}

func (t *Thunk) Type() object.ObjectType { return object.DEFERRED_OBJ }
func (t *Thunk) Inspect() string {
	if t.p.producer != nil {
		return "<thunk>"
	}
	return t.p.value.Inspect()
}

// Force returns the wrapped value, or the producer's result. Producer
// errors are returned as they are.
func (t *Thunk) Force() (object.Object, error) {
	return t.p.force()
}
