package foreign

import (
	"fmt"
	"io"
	"math"
	"time"

	"splufp/internal/object"
)

func fnDebugLog(out io.Writer) *object.Function {
	return object.Curry1("log", func(a object.Deferred) (object.Object, error) {
		v, err := object.Resolve(a)
		if err != nil {
			return nil, err
		}
		if _, err := fmt.Fprintln(out, v.Inspect()); err != nil {
			return nil, fmt.Errorf("log: %w", err)
		}
		return object.NONE, nil
	})
}

// maxDelayMillis keeps the duration conversion below math.MaxInt64.
const maxDelayMillis = float64(math.MaxInt64/int64(time.Millisecond)) - 1

// delay spins until ms milliseconds have passed. It does not yield.
func fnTimeDelay() *object.Function {
	return object.Curry1("delay", func(a object.Deferred) (object.Object, error) {
		ms, err := unpackNumber(a, "delay")
		if err != nil {
			return nil, err
		}
		if math.IsNaN(ms) || math.IsInf(ms, 0) {
			return nil, object.NewError("argument to `delay` must be a finite NUMBER, got=%s", (&object.Number{Value: ms}).Inspect())
		}
		if ms < 0 {
			ms = 0
		}
		if ms > maxDelayMillis {
			ms = maxDelayMillis
		}
		deadline := time.Now().Add(time.Duration(ms * float64(time.Millisecond)))
		for time.Now().Before(deadline) {
		}
		return object.NONE, nil
	})
}
