// Package traverse implements the higher-order sequence primitives.
//
// Both folds hand every element and accumulator to the combining function
// wrapped in a thunk, and never force them themselves. They run as loops, so
// sequence length is not bounded by stack depth.
package traverse

import (
	"fmt"
	"splufp/internal/object"
	"splufp/internal/thunk"
)

// Foldl combines from the left: fn(e[n-1], ... fn(e1, fn(e0, init))).
// The element is fn's first argument and the running accumulator its second.
func Foldl(fn object.Object, init object.Object, seq *object.Array) (object.Object, error) {
	acc := init
	for i, e := range snapshot(seq) {
		next, err := object.Apply(fn, thunk.Of(e), thunk.Of(acc))
		if err != nil {
			return nil, fmt.Errorf("foldl at index %d: %w", i, err)
		}
		acc = next
	}
	return acc, nil
}

// Foldr combines from the right: fn(e0, fn(e1, ... fn(e[n-1], init))).
// The element is fn's first argument and the accumulator built from the
// remaining suffix its second. A single element therefore gives
// fn(e0, init), with init in second position.
func Foldr(fn object.Object, init object.Object, seq *object.Array) (object.Object, error) {
	elements := snapshot(seq)
	acc := init
	for i := len(elements) - 1; i >= 0; i-- {
		next, err := object.Apply(fn, thunk.Of(elements[i]), thunk.Of(acc))
		if err != nil {
			return nil, fmt.Errorf("foldr at index %d: %w", i, err)
		}
		acc = next
	}
	return acc, nil
}

// Map calls fn on every element in index order for its effects and
// discards the results.
func Map(fn object.Object, seq *object.Array) error {
	for i, e := range snapshot(seq) {
		if _, err := object.Apply(fn, thunk.Of(e)); err != nil {
			return fmt.Errorf("map at index %d: %w", i, err)
		}
	}
	return nil
}

// snapshot copies the elements so a callback that splices the input
// cannot change the traversal.
func snapshot(seq *object.Array) []object.Object {
	if seq == nil {
		return nil
	}
	return append([]object.Object(nil), seq.Elements...)
}

func toArray(name string, arg object.Deferred) (*object.Array, error) {
	v, err := object.Resolve(arg)
	if err != nil {
		return nil, err
	}
	arr, ok := v.(*object.Array)
	if !ok {
		return nil, object.NewError("sequence argument to `%s` must be an ARRAY, got=%s", name, v.Type())
	}
	return arr, nil
}

// FoldlFn is foldl in curried form. init is passed through unforced.
func FoldlFn() *object.Function {
	return object.Curry3("foldl", func(fn, init, seq object.Deferred) (object.Object, error) {
		arr, err := toArray("foldl", seq)
		if err != nil {
			return nil, err
		}
		return Foldl(fn, init, arr)
	})
}

func FoldrFn() *object.Function {
	return object.Curry3("foldr", func(fn, init, seq object.Deferred) (object.Object, error) {
		arr, err := toArray("foldr", seq)
		if err != nil {
			return nil, err
		}
		return Foldr(fn, init, arr)
	})
}

func MapFn() *object.Function {
	return object.Curry2("map", func(fn, seq object.Deferred) (object.Object, error) {
		arr, err := toArray("map", seq)
		if err != nil {
			return nil, err
		}
		if err := Map(fn, arr); err != nil {
			return nil, err
		}
		return object.NONE, nil
	})
}
