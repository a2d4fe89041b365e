package selector

import (
	"iter"
	"slices"
	"strings"
)

// Selector filters and transforms a sequence of candidate nodes. Selectors
// are lazy and can be applied any number of times.
type Selector[N any] func(iter.Seq[N]) iter.Seq[N]

// NodeOps gives one Selector factory per production of the grammar.
type NodeOps[N any] interface {
	Type(NamespacePrefix, string) Selector[N]
	Universal(NamespacePrefix) Selector[N]
	Id(string) Selector[N]
	Class(string) Selector[N]

	AttributeExists(NamespacePrefix, string) Selector[N]
	AttributeExact(NamespacePrefix, string, string) Selector[N]
	AttributeIncludes(NamespacePrefix, string, string) Selector[N]
	AttributeDashMatch(NamespacePrefix, string, string) Selector[N]
	AttributePrefixMatch(NamespacePrefix, string, string) Selector[N]
	AttributeSuffixMatch(NamespacePrefix, string, string) Selector[N]
	AttributeSubstring(NamespacePrefix, string, string) Selector[N]

	FirstChild() Selector[N]
	LastChild() Selector[N]
	NthChild(int, int) Selector[N]
	OnlyChild() Selector[N]
	Empty() Selector[N]
	NthLastChild(int, int) Selector[N]

	Child() Selector[N]
	Descendant() Selector[N]
	Adjacent() Selector[N]
	GeneralSibling() Selector[N]
}

// Tree is the minimal set of accessors the default NodeOps needs from a
// document implementation. Methods returning a node and a bool report false
// when there is no such node.
type Tree[N comparable] interface {
	Element(N) bool
	Name(N) string
	Attribute(N, NamespacePrefix, string) (string, bool)
	Parent(N) (N, bool)
	// Root reports whether the node is the document node holding the
	// top-level element(s).
	Root(N) bool
	FirstChild(N) (N, bool)
	NextSibling(N) (N, bool)
	PrevSibling(N) (N, bool)
}

// NamespaceTree can be implemented by a Tree to support namespace prefixes
// on type and universal selectors.
type NamespaceTree[N comparable] interface {
	InNamespace(N, NamespacePrefix) bool
}

const (
	attrId    = "id"
	attrClass = "class"
)

type Ops[N comparable] struct {
	Tree Tree[N]
	// FoldCase makes type selectors compare names without regard to case.
	FoldCase bool
}

func NewOps[N comparable](tree Tree[N]) *Ops[N] {
	return &Ops[N]{
		Tree: tree,
	}
}

func (o *Ops[N]) Type(prefix NamespacePrefix, name string) Selector[N] {
	return o.filter(func(n N) bool {
		if !o.Tree.Element(n) || !o.inNamespace(n, prefix) {
			return false
		}
		if o.FoldCase {
			return strings.EqualFold(o.Tree.Name(n), name)
		}
		return o.Tree.Name(n) == name
	})
}

func (o *Ops[N]) Universal(prefix NamespacePrefix) Selector[N] {
	return o.filter(func(n N) bool {
		return o.Tree.Element(n) && o.inNamespace(n, prefix)
	})
}

func (o *Ops[N]) Id(id string) Selector[N] {
	return o.AttributeExact(NoNamespace, attrId, id)
}

func (o *Ops[N]) Class(class string) Selector[N] {
	return o.AttributeIncludes(NoNamespace, attrClass, class)
}

func (o *Ops[N]) AttributeExists(prefix NamespacePrefix, name string) Selector[N] {
	return o.attribute(prefix, name, func(_ string) bool {
		return true
	})
}

func (o *Ops[N]) AttributeExact(prefix NamespacePrefix, name, value string) Selector[N] {
	return o.attribute(prefix, name, func(str string) bool {
		return str == value
	})
}

func (o *Ops[N]) AttributeIncludes(prefix NamespacePrefix, name, value string) Selector[N] {
	return o.attribute(prefix, name, func(str string) bool {
		return value != "" && slices.Contains(strings.Fields(str), value)
	})
}

func (o *Ops[N]) AttributeDashMatch(prefix NamespacePrefix, name, value string) Selector[N] {
	return o.attribute(prefix, name, func(str string) bool {
		return str == value || strings.HasPrefix(str, value+"-")
	})
}

func (o *Ops[N]) AttributePrefixMatch(prefix NamespacePrefix, name, value string) Selector[N] {
	return o.attribute(prefix, name, func(str string) bool {
		return value != "" && strings.HasPrefix(str, value)
	})
}

func (o *Ops[N]) AttributeSuffixMatch(prefix NamespacePrefix, name, value string) Selector[N] {
	return o.attribute(prefix, name, func(str string) bool {
		return value != "" && strings.HasSuffix(str, value)
	})
}

func (o *Ops[N]) AttributeSubstring(prefix NamespacePrefix, name, value string) Selector[N] {
	return o.attribute(prefix, name, func(str string) bool {
		return value != "" && strings.Contains(str, value)
	})
}

func (o *Ops[N]) FirstChild() Selector[N] {
	return o.filter(func(n N) bool {
		if !o.childOfElement(n) {
			return false
		}
		_, ok := o.prevElement(n)
		return !ok
	})
}

func (o *Ops[N]) LastChild() Selector[N] {
	return o.filter(func(n N) bool {
		if !o.childOfElement(n) {
			return false
		}
		_, ok := o.nextElement(n)
		return !ok
	})
}

func (o *Ops[N]) NthChild(_, b int) Selector[N] {
	return o.filter(func(n N) bool {
		if _, ok := o.Tree.Parent(n); !ok {
			return false
		}
		pos := 1
		for curr, ok := o.prevElement(n); ok; curr, ok = o.prevElement(curr) {
			pos++
		}
		return pos == b
	})
}

func (o *Ops[N]) NthLastChild(_, b int) Selector[N] {
	return o.filter(func(n N) bool {
		if _, ok := o.Tree.Parent(n); !ok {
			return false
		}
		pos := 1
		for curr, ok := o.nextElement(n); ok; curr, ok = o.nextElement(curr) {
			pos++
		}
		return pos == b
	})
}

func (o *Ops[N]) OnlyChild() Selector[N] {
	return o.filter(func(n N) bool {
		if !o.childOfElement(n) {
			return false
		}
		_, prev := o.prevElement(n)
		_, next := o.nextElement(n)
		return !prev && !next
	})
}

func (o *Ops[N]) Empty() Selector[N] {
	return o.filter(func(n N) bool {
		_, ok := o.Tree.FirstChild(n)
		return !ok
	})
}

func (o *Ops[N]) Child() Selector[N] {
	return func(nodes iter.Seq[N]) iter.Seq[N] {
		return func(yield func(N) bool) {
			for n := range nodes {
				for c := range o.children(n) {
					if !yield(c) {
						return
					}
				}
			}
		}
	}
}

func (o *Ops[N]) Descendant() Selector[N] {
	return func(nodes iter.Seq[N]) iter.Seq[N] {
		return func(yield func(N) bool) {
			seen := make(map[N]struct{})
			var walk func(N) bool
			walk = func(n N) bool {
				for c := range o.children(n) {
					if _, ok := seen[c]; ok {
						// the subtree of c has already been produced
						continue
					}
					seen[c] = struct{}{}
					if !yield(c) || !walk(c) {
						return false
					}
				}
				return true
			}
			for n := range nodes {
				if !walk(n) {
					return
				}
			}
		}
	}
}

func (o *Ops[N]) Adjacent() Selector[N] {
	return func(nodes iter.Seq[N]) iter.Seq[N] {
		return func(yield func(N) bool) {
			for n := range nodes {
				next, ok := o.nextElement(n)
				if ok && !yield(next) {
					return
				}
			}
		}
	}
}

func (o *Ops[N]) GeneralSibling() Selector[N] {
	return func(nodes iter.Seq[N]) iter.Seq[N] {
		return func(yield func(N) bool) {
			seen := make(map[N]struct{})
			for n := range nodes {
				for curr, ok := o.nextElement(n); ok; curr, ok = o.nextElement(curr) {
					if _, ok := seen[curr]; ok {
						// following siblings were produced from an earlier node
						break
					}
					seen[curr] = struct{}{}
					if !yield(curr) {
						return
					}
				}
			}
		}
	}
}

func (o *Ops[N]) filter(keep func(N) bool) Selector[N] {
	return func(nodes iter.Seq[N]) iter.Seq[N] {
		return func(yield func(N) bool) {
			for n := range nodes {
				if keep(n) && !yield(n) {
					return
				}
			}
		}
	}
}

func (o *Ops[N]) attribute(prefix NamespacePrefix, name string, accept func(string) bool) Selector[N] {
	return o.filter(func(n N) bool {
		if !o.Tree.Element(n) {
			return false
		}
		str, ok := o.Tree.Attribute(n, prefix, name)
		return ok && accept(str)
	})
}

func (o *Ops[N]) inNamespace(n N, prefix NamespacePrefix) bool {
	if prefix.IsNone() || prefix.IsAny() {
		return true
	}
	ns, ok := o.Tree.(NamespaceTree[N])
	if !ok {
		return true
	}
	return ns.InNamespace(n, prefix)
}

func (o *Ops[N]) childOfElement(n N) bool {
	parent, ok := o.Tree.Parent(n)
	return ok && !o.Tree.Root(parent)
}

func (o *Ops[N]) children(n N) iter.Seq[N] {
	return func(yield func(N) bool) {
		for c, ok := o.Tree.FirstChild(n); ok; c, ok = o.Tree.NextSibling(c) {
			if o.Tree.Element(c) && !yield(c) {
				return
			}
		}
	}
}

func (o *Ops[N]) prevElement(n N) (N, bool) {
	for {
		prev, ok := o.Tree.PrevSibling(n)
		if !ok || o.Tree.Element(prev) {
			return prev, ok
		}
		n = prev
	}
}

func (o *Ops[N]) nextElement(n N) (N, bool) {
	for {
		next, ok := o.Tree.NextSibling(n)
		if !ok || o.Tree.Element(next) {
			return next, ok
		}
		n = next
	}
}
