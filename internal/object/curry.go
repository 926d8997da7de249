package object

import "fmt"

// Curry1 wraps a one-argument primitive as a Function.
func Curry1(name string, fn func(a Deferred) (Object, error)) *Function {
	return &Function{Name: name, Arity: 1, Fn: fn}
}

// Curry2 builds a chain of two single-argument Functions. Applying the
// first argument only captures it; nothing is forced until fn runs.
func Curry2(name string, fn func(a, b Deferred) (Object, error)) *Function {
	return &Function{Name: name, Arity: 2, Fn: func(a Deferred) (Object, error) {
		return &Function{Name: name, Arity: 1, Fn: func(b Deferred) (Object, error) {
			return fn(a, b)
		}}, nil
	}}
}

func Curry3(name string, fn func(a, b, c Deferred) (Object, error)) *Function {
	return &Function{Name: name, Arity: 3, Fn: func(a Deferred) (Object, error) {
		return Curry2(name, func(b, c Deferred) (Object, error) {
			return fn(a, b, c)
		}), nil
	}}
}

// Apply performs one single-argument application per arg, in order. A
// result that is itself Deferred is resolved before the next application.
// Supplying fewer args than the chain expects returns the partially
// applied Function.
func Apply(fn Object, args ...Deferred) (Object, error) {
	cur := fn
	for i, arg := range args {
		resolved, err := Resolve(cur)
		if err != nil {
			return nil, err
		}
		f, ok := resolved.(*Function)
		if !ok {
			return nil, fmt.Errorf("%w: argument %d applied to %s", ErrNotCallable, i+1, resolved.Type())
		}
		cur, err = f.Fn(arg)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// Resolve forces obj until the result is no longer Deferred. Chains are
// walked in a loop so a producer returning another thunk costs no stack.
func Resolve(obj Object) (Object, error) {
	for {
		d, ok := obj.(Deferred)
		if !ok {
			return obj, nil
		}
		next, err := d.Force()
		if err != nil {
			return nil, err
		}
		obj = next
	}
}
