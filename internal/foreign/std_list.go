package foreign

import (
	"math"

	"splufp/internal/object"
)

// array_at returns none for an index that is out of range or not a whole
// number, instead of failing.
func fnListArrayAt() *object.Function {
	return object.Curry2("array_at", func(a, i object.Deferred) (object.Object, error) {
		arr, err := unpackArray(a, "array_at")
		if err != nil {
			return nil, err
		}
		idx, err := unpackNumber(i, "array_at")
		if err != nil {
			return nil, err
		}
		if idx != math.Trunc(idx) || idx < 0 || idx >= float64(len(arr.Elements)) {
			return object.NONE, nil
		}
		return arr.Elements[int(idx)], nil
	})
}

// slice copies arr[start:end] into a new array.
func fnListSlice() *object.Function {
	return object.Curry3("slice", func(a, s, e object.Deferred) (object.Object, error) {
		arr, err := unpackArray(a, "slice")
		if err != nil {
			return nil, err
		}
		start, err := unpackNumber(s, "slice")
		if err != nil {
			return nil, err
		}
		end, err := unpackNumber(e, "slice")
		if err != nil {
			return nil, err
		}
		from, to := normalizeRange(start, end, len(arr.Elements))
		out := make([]object.Object, to-from)
		copy(out, arr.Elements[from:to])
		return &object.Array{Elements: out}, nil
	})
}

// splice removes count elements starting at start from arr in place and
// returns them.
func fnListSplice() *object.Function {
	return object.Curry3("splice", func(a, s, c object.Deferred) (object.Object, error) {
		arr, err := unpackArray(a, "splice")
		if err != nil {
			return nil, err
		}
		start, err := unpackNumber(s, "splice")
		if err != nil {
			return nil, err
		}
		count, err := unpackNumber(c, "splice")
		if err != nil {
			return nil, err
		}
		from := clampIndex(start, len(arr.Elements))
		rest := len(arr.Elements) - from
		if math.IsNaN(count) || count < 0 {
			count = 0
		}
		if count > float64(rest) {
			count = float64(rest)
		}
		to := from + int(count)

		removed := make([]object.Object, to-from)
		copy(removed, arr.Elements[from:to])
		arr.Elements = append(arr.Elements[:from], arr.Elements[to:]...)
		return &object.Array{Elements: removed}, nil
	})
}

func fnListLen() *object.Function {
	return object.Curry1("len", func(a object.Deferred) (object.Object, error) {
		v, err := object.Resolve(a)
		if err != nil {
			return nil, err
		}
		switch x := v.(type) {
		case *object.Array:
			return &object.Number{Value: float64(len(x.Elements))}, nil
		case *object.String:
			return &object.Number{Value: float64(len([]rune(x.Value)))}, nil
		default:
			return nil, object.NewError("argument to `len` not supported, got=%s", v.Type())
		}
	})
}

// obj_get returns none for a missing field.
func fnRecordGet() *object.Function {
	return object.Curry2("obj_get", func(r, k object.Deferred) (object.Object, error) {
		rec, key, err := resolveBoth(r, k)
		if err != nil {
			return nil, err
		}
		record, ok := rec.(*object.Record)
		if !ok {
			return nil, object.NewError("argument to `obj_get` must be a RECORD, got=%s", rec.Type())
		}
		if v, ok := record.Get(key.Inspect()); ok {
			return v, nil
		}
		return object.NONE, nil
	})
}
