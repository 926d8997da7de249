package object

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	NONE_OBJ     = "NONE"
	BOOLEAN_OBJ  = "BOOLEAN"
	NUMBER_OBJ   = "NUMBER"
	STRING_OBJ   = "STRING"
	ARRAY_OBJ    = "ARRAY"
	RECORD_OBJ   = "RECORD"
	FUNCTION_OBJ = "FUNCTION"
	DEFERRED_OBJ = "DEFERRED"
)

var (
	NONE  = &None{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

var (
	// ErrType reports a primitive applied to a value of the wrong shape.
	ErrType = errors.New("type error")
	// ErrNotCallable reports an application whose target is not a function.
	ErrNotCallable = errors.New("value is not callable")
)

type ObjectType string

type Object interface {
	Type() ObjectType
	Inspect() string
}

// Deferred is a value whose concrete result is only computed when forced.
type Deferred interface {
	Object
	Force() (Object, error)
}

type None struct{}

func (n *None) Type() ObjectType { return NONE_OBJ }
func (n *None) Inspect() string  { return "none" }

type Number struct {
	Value float64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }
func (n *Number) Inspect() string {
	switch {
	case math.IsNaN(n.Value):
		return "NaN"
	case math.IsInf(n.Value, 1):
		return "Infinity"
	case math.IsInf(n.Value, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return fmt.Sprintf("%t", b.Value) }

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

// Array is an ordered, 0-indexed sequence. Only slice and splice mutate it.
type Array struct {
	Elements []Object
}

func (a *Array) Type() ObjectType { return ARRAY_OBJ }
func (a *Array) Inspect() string {
	var out bytes.Buffer

	elements := []string{}
	for _, e := range a.Elements {
		elements = append(elements, e.Inspect())
	}

	out.WriteString("[")
	out.WriteString(strings.Join(elements, ", "))
	out.WriteString("]")

	return out.String()
}

// Record is a string-keyed set of fields that remembers insertion order.
type Record struct {
	Keys   []string
	Fields map[string]Object
}

func (r *Record) Type() ObjectType { return RECORD_OBJ }
func (r *Record) Inspect() string {
	var out bytes.Buffer

	pairs := []string{}
	for _, k := range r.Keys {
		pairs = append(pairs, fmt.Sprintf("%s: %s", k, r.Fields[k].Inspect()))
	}

	out.WriteString("{")
	out.WriteString(strings.Join(pairs, ", "))
	out.WriteString("}")

	return out.String()
}

// Put simplify adding fields to a record
func (r *Record) Put(k string, v Object) *Record {
	if r.Fields == nil {
		r.Fields = map[string]Object{}
	}
	if _, ok := r.Fields[k]; !ok {
		r.Keys = append(r.Keys, k)
	}
	r.Fields[k] = v
	return r
}

func (r *Record) Get(k string) (Object, bool) {
	v, ok := r.Fields[k]
	return v, ok
}

// Function is one link of a curried chain. Arity is the number of
// arguments still expected, including the one Fn consumes.
type Function struct {
	Name  string
	Arity int
	Fn    func(arg Deferred) (Object, error)
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	if f.Name == "" {
		return fmt.Sprintf("<fn/%d>", f.Arity)
	}
	return fmt.Sprintf("<fn %s/%d>", f.Name, f.Arity)
}

func NativeBoolToBooleanObject(input bool) *Boolean {
	if input {
		return TRUE
	}
	return FALSE
}

// IsTruthy follows the host convention: none, false, 0, NaN and "" are falsy.
func IsTruthy(obj Object) bool {
	switch o := obj.(type) {
	case *None:
		return false
	case *Boolean:
		return o.Value
	case *Number:
		return o.Value != 0 && !math.IsNaN(o.Value)
	case *String:
		return o.Value != ""
	default:
		return obj != nil
	}
}

// Equal compares scalars by value and everything else by identity.
func Equal(a, b Object) bool {
	switch x := a.(type) {
	case *None:
		_, ok := b.(*None)
		return ok
	case *Number:
		y, ok := b.(*Number)
		return ok && x.Value == y.Value
	case *String:
		y, ok := b.(*String)
		return ok && x.Value == y.Value
	case *Boolean:
		y, ok := b.(*Boolean)
		return ok && x.Value == y.Value
	default:
		return a == b
	}
}

func NewError(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrType, fmt.Sprintf(format, a...))
}
