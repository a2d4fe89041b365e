// Package selector implements a CSS selector engine.
//
// Selectors are parsed by a recursive-descent Parser that reports every
// production it recognizes to a Generator. The Builder generator turns those
// productions into a Selector over any node type thanks to a NodeOps
// implementation, usually the default one created by NewOps from a Tree.
// The Describer generator writes an English description of the selector and
// a Tee feeds two generators from a single parse.
//
// The supported grammar is a subset of CSS3: type, universal, id, class and
// attribute selectors (with the =, ~=, |=, ^=, $= and *= operators), the
// descendant, child (>), adjacent (+) and general sibling (~) combinators,
// the first-child, last-child, only-child, empty, nth-child(n) and
// nth-last-child(n) pseudo classes, namespace prefixes and :not() with a
// single simple selector as argument.
package selector

import (
	"iter"
	"slices"
)

// Compile parses str and builds a Selector with ops.
func Compile[N comparable](str string, ops NodeOps[N]) (Selector[N], error) {
	if ops == nil {
		return nil, ErrArgument
	}
	b, err := Parse(str, NewBuilder(ops))
	if err != nil {
		return nil, err
	}
	return b.Selector(), nil
}

func MustCompile[N comparable](str string, ops NodeOps[N]) Selector[N] {
	sel, err := Compile(str, ops)
	if err != nil {
		panic(err)
	}
	return sel
}

// Describe returns an English description of str.
func Describe(str string) (string, error) {
	d, err := Parse(str, new(Describer))
	if err != nil {
		return "", err
	}
	return d.Text(), nil
}

// Select applies sel to the given context nodes.
func (s Selector[N]) Select(nodes ...N) iter.Seq[N] {
	return s(slices.Values(nodes))
}

// First returns the first node matched by s from the given context nodes.
func (s Selector[N]) First(nodes ...N) (N, bool) {
	for n := range s.Select(nodes...) {
		return n, true
	}
	var zero N
	return zero, false
}
