package thunk

import (
	"errors"
	"splufp/internal/object"
	"testing"
)

func number(t *testing.T, obj object.Object) float64 {
	t.Helper()
	n, ok := obj.(*object.Number)
	if !ok {
		t.Fatalf("expected NUMBER, got %s", obj.Type())
	}
	return n.Value
}

func TestValueThunkForcesRepeatedly(t *testing.T) {
	v := &object.String{Value: "hello"}
	th := Of(v)
	for i := 0; i < 5; i++ {
		got, err := th.Force()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != v {
			t.Fatalf("force %d returned %s, want the wrapped value", i, got.Inspect())
		}
	}
}

func TestNilValueBecomesNone(t *testing.T) {
	got, err := Of(nil).Force()
	if err != nil || got != object.NONE {
		t.Fatalf("expected none, got %v, %v", got, err)
	}
	got, err = Lazy(func() (object.Object, error) { return nil, nil }).Force()
	if err != nil || got != object.NONE {
		t.Fatalf("expected none from producer, got %v, %v", got, err)
	}
}

func TestProducerIsNotMemoized(t *testing.T) {
	counter := 0
	th := Lazy(func() (object.Object, error) {
		n := counter
		counter++
		return &object.Number{Value: float64(n)}, nil
	})

	for want := 0; want < 3; want++ {
		got, err := th.Force()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if number(t, got) != float64(want) {
			t.Errorf("force %d returned %s", want, got.Inspect())
		}
	}
}

func TestFunctionValueIsNotInvoked(t *testing.T) {
	called := false
	fn := object.Curry1("probe", func(a object.Deferred) (object.Object, error) {
		called = true
		return object.NONE, nil
	})

	got, err := Of(fn).Force()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != fn {
		t.Errorf("expected the function itself, got %s", got.Inspect())
	}
	if called {
		t.Errorf("forcing a stored function invoked it")
	}
}

func TestProducerErrorPropagatesUnchanged(t *testing.T) {
	boom := errors.New("boom")
	th := Lazy(func() (object.Object, error) { return nil, boom })

	_, err := th.Force()
	if err != boom {
		t.Fatalf("expected the producer's error, got %v", err)
	}
	if depth.Load() != 0 {
		t.Errorf("depth counter leaked: %d", depth.Load())
	}
}

func TestAssignableRebind(t *testing.T) {
	p0 := &object.String{Value: "placeholder"}
	p1 := &object.String{Value: "definition"}

	cell := NewAssignable(p0)
	got, _ := cell.Force()
	if got != p0 {
		t.Fatalf("expected placeholder before rebind, got %s", got.Inspect())
	}

	cell.Rebind(p1)
	got, err := cell.Force()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != p1 {
		t.Errorf("expected rebound value, got %s", got.Inspect())
	}
}

func TestDeclaredCellForcedBeforeRebind(t *testing.T) {
	cell := Declare("later")
	_, err := cell.Force()
	if !errors.Is(err, ErrUnbound) {
		t.Fatalf("expected ErrUnbound, got %v", err)
	}
	if cell.IsBound() {
		t.Errorf("declared cell reports bound")
	}

	cell.RebindLazy(func() (object.Object, error) { return object.TRUE, nil })
	got, err := cell.Force()
	if err != nil || got != object.TRUE {
		t.Fatalf("expected true after rebind, got %v, %v", got, err)
	}
}

func TestSelfReferentialBinding(t *testing.T) {
	fact := Declare("fact")
	fact.Rebind(object.Curry1("fact", func(n object.Deferred) (object.Object, error) {
		v, err := object.Resolve(n)
		if err != nil {
			return nil, err
		}
		x := v.(*object.Number).Value
		if x <= 1 {
			return &object.Number{Value: 1}, nil
		}
		rec, err := object.Apply(fact, Of(&object.Number{Value: x - 1}))
		if err != nil {
			return nil, err
		}
		r, err := object.Resolve(rec)
		if err != nil {
			return nil, err
		}
		return &object.Number{Value: x * r.(*object.Number).Value}, nil
	}))

	got, err := object.Apply(fact, Of(&object.Number{Value: 5}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if number(t, got) != 120 {
		t.Errorf("expected 120, got %s", got.Inspect())
	}
}

func TestMutualRecursionThroughDeclaredCells(t *testing.T) {
	isEven := Declare("isEven")
	isOdd := Declare("isOdd")

	step := func(self string, other *Assignable, base object.Object) *object.Function {
		return object.Curry1(self, func(n object.Deferred) (object.Object, error) {
			v, err := object.Resolve(n)
			if err != nil {
				return nil, err
			}
			x := v.(*object.Number).Value
			if x == 0 {
				return base, nil
			}
			return object.Apply(other, Of(&object.Number{Value: x - 1}))
		})
	}
	isEven.Rebind(step("isEven", isOdd, object.TRUE))
	isOdd.Rebind(step("isOdd", isEven, object.FALSE))

	got, err := object.Apply(isEven, Of(&object.Number{Value: 10}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != object.TRUE {
		t.Errorf("expected true, got %s", got.Inspect())
	}
}

func TestRecursionLimit(t *testing.T) {
	SetMaxDepth(100)
	defer SetMaxDepth(DefaultMaxDepth)

	loop := Declare("loop")
	loop.RebindLazy(func() (object.Object, error) { return loop.Force() })

	_, err := loop.Force()
	if !errors.Is(err, ErrRecursionLimit) {
		t.Fatalf("expected ErrRecursionLimit, got %v", err)
	}
	if depth.Load() != 0 {
		t.Errorf("depth counter leaked: %d", depth.Load())
	}
}

func TestProducerChainsDoNotNest(t *testing.T) {
	SetMaxDepth(10)
	defer SetMaxDepth(DefaultMaxDepth)

	var next func(n int) object.Object
	next = func(n int) object.Object {
		if n == 0 {
			return &object.String{Value: "done"}
		}
		return Lazy(func() (object.Object, error) { return next(n - 1), nil })
	}

	got, err := object.Resolve(next(50000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Inspect() != "done" {
		t.Errorf("expected done, got %s", got.Inspect())
	}
}

func TestSetMaxDepthDefault(t *testing.T) {
	SetMaxDepth(0)
	if MaxDepth() != DefaultMaxDepth {
		t.Errorf("expected default depth, got %d", MaxDepth())
	}
}
