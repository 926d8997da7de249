package foreign

import (
	"splufp/internal/object"
)

func numberOp(name string, op func(a, b float64) float64) *object.Function {
	return object.Curry2(name, func(a, b object.Deferred) (object.Object, error) {
		x, err := unpackNumber(a, name)
		if err != nil {
			return nil, err
		}
		y, err := unpackNumber(b, name)
		if err != nil {
			return nil, err
		}
		return &object.Number{Value: op(x, y)}, nil
	})
}

// add sums numbers and concatenates as soon as either side is a string.
func fnMathAdd() *object.Function {
	return object.Curry2("add", func(a, b object.Deferred) (object.Object, error) {
		x, y, err := resolveBoth(a, b)
		if err != nil {
			return nil, err
		}
		xn, xok := x.(*object.Number)
		yn, yok := y.(*object.Number)
		if xok && yok {
			return &object.Number{Value: xn.Value + yn.Value}, nil
		}
		_, xs := x.(*object.String)
		_, ys := y.(*object.String)
		if xs || ys {
			return &object.String{Value: x.Inspect() + y.Inspect()}, nil
		}
		return nil, object.NewError("unsupported operands to `add`: %s and %s", x.Type(), y.Type())
	})
}

func fnMathSub() *object.Function {
	return numberOp("sub", func(a, b float64) float64 { return a - b })
}

func fnMathMul() *object.Function {
	return numberOp("mul", func(a, b float64) float64 { return a * b })
}

// div follows IEEE rules, so a zero divisor yields an infinity or NaN.
func fnMathDiv() *object.Function {
	return numberOp("div", func(a, b float64) float64 { return a / b })
}

func fnMathNeg() *object.Function {
	return object.Curry1("neg", func(a object.Deferred) (object.Object, error) {
		x, err := unpackNumber(a, "neg")
		if err != nil {
			return nil, err
		}
		return &object.Number{Value: -x}, nil
	})
}
