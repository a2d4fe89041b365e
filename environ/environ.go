package environ

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var ErrUndefined = errors.New("undefined identifier")

// Environ is a scope of named values. Lookups that fail in a scope continue
// in its parent.
type Environ[T any] interface {
	Resolve(string) (T, error)
	Define(string, T)
	Names() []string
	Len() int
}

type Env[T any] struct {
	values map[string]T
	parent Environ[T]
}

func Empty[T any]() Environ[T] {
	return Enclosed[T](nil)
}

func Enclosed[T any](parent Environ[T]) Environ[T] {
	e := Env[T]{
		values: make(map[string]T),
		parent: parent,
	}
	return &e
}

// Len gives the number of values defined in the scope itself.
func (e *Env[T]) Len() int {
	return len(e.values)
}

// Names returns the sorted names visible from the scope, parents included.
func (e *Env[T]) Names() []string {
	list := slices.Collect(maps.Keys(e.values))
	if e.parent != nil {
		for _, n := range e.parent.Names() {
			if _, ok := e.values[n]; !ok {
				list = append(list, n)
			}
		}
	}
	slices.Sort(list)
	return list
}

func (e *Env[T]) Define(ident string, value T) {
	e.values[ident] = value
}

func (e *Env[T]) Resolve(ident string) (T, error) {
	value, ok := e.values[ident]
	if ok {
		return value, nil
	}
	if e.parent != nil {
		return e.parent.Resolve(ident)
	}
	var t T
	return t, fmt.Errorf("%s: %w", ident, ErrUndefined)
}

// Unwrap gives the parent scope or the scope itself at the top.
func (e *Env[T]) Unwrap() Environ[T] {
	if e.parent == nil {
		return e
	}
	return e.parent
}
