package checker

import (
	"errors"
	"fmt"
)

// ErrUnboundVariable classifies lookups of names with no visible binding.
var ErrUnboundVariable = errors.New("unbound variable")

type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable %s", e.Name)
}

func (e *UnboundVariableError) Is(target error) bool {
	return target == ErrUnboundVariable
}

// Env is an immutable chain of bindings. Each frame binds one name and
// points at its parent; extending never touches the receiver, so sibling
// scopes built from the same parent cannot observe each other. The nil
// *Env is the empty environment.
type Env[T any] struct {
	parent *Env[T]
	name   string
	elem   T
}

// Extend returns a new environment with name bound to elem, shadowing any
// binding of name visible in e.
func (e *Env[T]) Extend(name string, elem T) *Env[T] {
	return &Env[T]{parent: e, name: name, elem: elem}
}

// ExtendAll binds names to elems left to right, so a later duplicate
// shadows an earlier one.
func (e *Env[T]) ExtendAll(names []string, elems []T) *Env[T] {
	if len(names) != len(elems) {
		panic(fmt.Sprintf("ExtendAll: %d names for %d values", len(names), len(elems)))
	}
	out := e
	for i, name := range names {
		out = out.Extend(name, elems[i])
	}
	return out
}

// Lookup searches from the innermost frame outward.
func (e *Env[T]) Lookup(name string) (T, error) {
	for f := e; f != nil; f = f.parent {
		if f.name == name {
			return f.elem, nil
		}
	}

	var zero T
	return zero, &UnboundVariableError{Name: name}
}

// Names lists the visible names, innermost first, without the shadowed
// duplicates.
func (e *Env[T]) Names() []string {
	seen := make(map[string]struct{})
	names := []string{}
	for f := e; f != nil; f = f.parent {
		if _, ok := seen[f.name]; ok {
			continue
		}
		seen[f.name] = struct{}{}
		names = append(names, f.name)
	}
	return names
}

