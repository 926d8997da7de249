package thunk

import (
	"fmt"
	"splufp/internal/object"
)

// Assignable is a deferred value whose payload can be replaced after
// construction. Generated code introduces a recursive name as an Assignable
// and attaches the definition once it exists, so the definition can refer
// to itself or to a sibling declared in the same group.
//
// Assignable performs no locking; callers sharing a cell across goroutines
// must synchronize Rebind against Force themselves.
type Assignable struct {
	name  string
	p     payload
	bound bool
}

// NewAssignable creates a cell holding a placeholder. Forcing it before
// Rebind returns the placeholder.
func NewAssignable(placeholder object.Object) *Assignable {
	return &Assignable{p: valuePayload(placeholder), bound: true}
}

// Declare creates an unbound cell. Forcing it before Rebind fails with
// ErrUnbound.
func Declare(name string) *Assignable {
	return &Assignable{name: name}
}

// Rebind replaces the payload with a concrete value.
func (a *Assignable) Rebind(v object.Object) {
	a.p = valuePayload(v)
	a.bound = true
}

// RebindLazy replaces the payload with a producer.
func (a *Assignable) RebindLazy(fn Producer) {
	if fn == nil {
		a.Rebind(object.NONE)
		return
	}
	a.p = payload{producer: fn}
	a.bound = true
}

// IsBound reports whether a definition or placeholder is attached.
func (a *Assignable) IsBound() bool { return a.bound }

// Name is the name given to Declare, empty for NewAssignable cells.
func (a *Assignable) Name() string { return a.name }

func (a *Assignable) Type() object.ObjectType { return object.DEFERRED_OBJ }
func (a *Assignable) Inspect() string {
	if !a.bound {
		return fmt.Sprintf("<unbound %s>", a.name)
	}
	if a.p.producer != nil {
		return "<thunk>"
	}
	return a.p.value.Inspect()
}

// Force returns the attached value or the producer's result. An unbound
// cell fails with ErrUnbound.
func (a *Assignable) Force() (object.Object, error) {
	if !a.bound {
		if a.name == "" {
			return nil, ErrUnbound
		}
		return nil, fmt.Errorf("%w: %s", ErrUnbound, a.name)
	}
	return a.p.force()
}
