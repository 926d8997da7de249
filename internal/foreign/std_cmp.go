package foreign

import (
	"strings"

	"splufp/internal/object"
)

func fnCmpEq() *object.Function {
	return object.Curry2("eq", func(a, b object.Deferred) (object.Object, error) {
		x, y, err := resolveBoth(a, b)
		if err != nil {
			return nil, err
		}
		return object.NativeBoolToBooleanObject(object.Equal(x, y)), nil
	})
}

// ordering compares two numbers or two strings; test receives -1, 0 or 1.
func ordering(name string, test func(c int) bool) *object.Function {
	return object.Curry2(name, func(a, b object.Deferred) (object.Object, error) {
		x, y, err := resolveBoth(a, b)
		if err != nil {
			return nil, err
		}
		switch xv := x.(type) {
		case *object.Number:
			if yv, ok := y.(*object.Number); ok {
				// NaN is unordered: every comparison involving it is false
				if xv.Value != xv.Value || yv.Value != yv.Value {
					return object.FALSE, nil
				}
				c := 0
				if xv.Value < yv.Value {
					c = -1
				} else if xv.Value > yv.Value {
					c = 1
				}
				return object.NativeBoolToBooleanObject(test(c)), nil
			}
		case *object.String:
			if yv, ok := y.(*object.String); ok {
				return object.NativeBoolToBooleanObject(test(strings.Compare(xv.Value, yv.Value))), nil
			}
		}
		return nil, object.NewError("cannot compare %s with %s in `%s`", x.Type(), y.Type(), name)
	})
}

func fnCmpGeq() *object.Function { return ordering("geq", func(c int) bool { return c >= 0 }) }
func fnCmpLeq() *object.Function { return ordering("leq", func(c int) bool { return c <= 0 }) }
func fnCmpGt() *object.Function  { return ordering("gt", func(c int) bool { return c > 0 }) }
func fnCmpLt() *object.Function  { return ordering("lt", func(c int) bool { return c < 0 }) }

// and forces its second argument only when the first is truthy.
func fnLogicAnd() *object.Function {
	return object.Curry2("and", func(a, b object.Deferred) (object.Object, error) {
		x, err := object.Resolve(a)
		if err != nil {
			return nil, err
		}
		if !object.IsTruthy(x) {
			return object.FALSE, nil
		}
		y, err := object.Resolve(b)
		if err != nil {
			return nil, err
		}
		return object.NativeBoolToBooleanObject(object.IsTruthy(y)), nil
	})
}

// or forces its second argument only when the first is falsy.
func fnLogicOr() *object.Function {
	return object.Curry2("or", func(a, b object.Deferred) (object.Object, error) {
		x, err := object.Resolve(a)
		if err != nil {
			return nil, err
		}
		if object.IsTruthy(x) {
			return object.TRUE, nil
		}
		y, err := object.Resolve(b)
		if err != nil {
			return nil, err
		}
		return object.NativeBoolToBooleanObject(object.IsTruthy(y)), nil
	})
}
