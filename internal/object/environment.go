package object

import (
	"fmt"
	"log/slog"
	"sort"
)

// Environment maps names to bound values. Lookups walk outward.
type Environment struct {
	Bindings map[string]*Binding
	Outer    *Environment
}

type Binding struct {
	Value Object
	// IsBuiltin marks primitives installed by the registry
	IsBuiltin bool
}

func NewEnvironment() *Environment {
	return &Environment{
		Bindings: make(map[string]*Binding),
	}
}

// NewEnclosedEnvironment initializes an environment with a parent.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	slog.Debug("------ new env ------")
	env := NewEnvironment()
	env.Outer = outer
	return env
}

func (e *Environment) GetBinding(name string) (*Binding, bool) {
	binding, ok := e.Bindings[name]
	if ok {
		return binding, true
	}
	if e.Outer != nil {
		return e.Outer.GetBinding(name)
	}
	return nil, false
}

func (e *Environment) Get(name string) (Object, bool) {
	binding, ok := e.GetBinding(name)
	if !ok {
		return nil, false
	}
	return binding.Value, true
}

// Define binds name in this environment, replacing a user binding of the
// same name but refusing to shadow a builtin defined at this level.
func (e *Environment) Define(name string, val Object) (Object, error) {
	if existing, ok := e.Bindings[name]; ok && existing.IsBuiltin {
		return nil, fmt.Errorf("cannot redefine builtin '%s'", name)
	}
	e.Bindings[name] = &Binding{Value: val}
	return val, nil
}

func (e *Environment) DefineBuiltin(name string, val Object) {
	e.Bindings[name] = &Binding{Value: val, IsBuiltin: true}
}

// Names returns every visible name, sorted.
func (e *Environment) Names() []string {
	seen := map[string]struct{}{}
	for env := e; env != nil; env = env.Outer {
		for k := range env.Bindings {
			seen[k] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
