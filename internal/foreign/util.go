package foreign

import (
	"math"

	"splufp/internal/object"
)

func unpackNumber(arg object.Deferred, fnName string) (float64, error) {
	v, err := object.Resolve(arg)
	if err != nil {
		return 0, err
	}
	n, ok := v.(*object.Number)
	if !ok {
		return 0, object.NewError("argument to `%s` must be a NUMBER, got=%s", fnName, v.Type())
	}
	return n.Value, nil
}

func unpackArray(arg object.Deferred, fnName string) (*object.Array, error) {
	v, err := object.Resolve(arg)
	if err != nil {
		return nil, err
	}
	arr, ok := v.(*object.Array)
	if !ok {
		return nil, object.NewError("argument to `%s` must be an ARRAY, got=%s", fnName, v.Type())
	}
	return arr, nil
}

// resolveBoth forces a then b.
func resolveBoth(a, b object.Deferred) (object.Object, object.Object, error) {
	x, err := object.Resolve(a)
	if err != nil {
		return nil, nil, err
	}
	y, err := object.Resolve(b)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// normalizeRange clamps start and end the way host slicing does: negative
// positions count back from length, NaN counts as zero. Clamping happens
// before the int conversion so infinite or huge positions stay in range.
func normalizeRange(start, end float64, length int) (int, int) {
	s, e := clampIndex(start, length), clampIndex(end, length)
	if e < s {
		e = s
	}
	return s, e
}

func clampIndex(p float64, length int) int {
	if math.IsNaN(p) {
		return 0
	}
	p = math.Trunc(p)
	if p < 0 {
		p += float64(length)
	}
	if p < 0 {
		return 0
	}
	if p >= float64(length) {
		return length
	}
	return int(p)
}
