package selector

import (
	"iter"
	"slices"
)

// Builder composes the selectors created by its NodeOps into one Selector.
// Members of a group are unioned: a node reachable from several members is
// produced once.
type Builder[N comparable] struct {
	Ops NodeOps[N]

	selector  Selector[N]
	members   []Selector[N]
	current   Selector[N]
	negations []Selector[N]
}

func NewBuilder[N comparable](ops NodeOps[N]) *Builder[N] {
	return &Builder[N]{
		Ops: ops,
	}
}

// Selector returns the selector built by the last parse, nil if no parse
// completed.
func (b *Builder[N]) Selector() Selector[N] {
	return b.selector
}

func (b *Builder[N]) OnInit() {
	b.selector = nil
	b.members = b.members[:0]
	b.current = nil
	b.negations = b.negations[:0]
}

func (b *Builder[N]) OnSelector() {
	if b.current != nil {
		b.members = append(b.members, b.current)
	}
	b.current = nil
}

func (b *Builder[N]) OnClose() {
	members := slices.Clone(b.members)
	if b.current != nil {
		members = append(members, b.current)
	}
	normalize := b.Ops.Descendant()
	b.selector = func(nodes iter.Seq[N]) iter.Seq[N] {
		return func(yield func(N) bool) {
			var (
				seen = make(map[N]struct{})
				all  = slices.Collect(normalize(nodes))
			)
			for _, m := range members {
				for n := range m(slices.Values(all)) {
					if _, ok := seen[n]; ok {
						continue
					}
					seen[n] = struct{}{}
					if !yield(n) {
						return
					}
				}
			}
		}
	}
	b.members = b.members[:0]
	b.current = nil
}

func (b *Builder[N]) Type(prefix NamespacePrefix, name string) {
	b.add(b.Ops.Type(prefix, name))
}

func (b *Builder[N]) Universal(prefix NamespacePrefix) {
	b.add(b.Ops.Universal(prefix))
}

func (b *Builder[N]) Id(id string) {
	b.add(b.Ops.Id(id))
}

func (b *Builder[N]) Class(class string) {
	b.add(b.Ops.Class(class))
}

func (b *Builder[N]) AttributeExists(prefix NamespacePrefix, name string) {
	b.add(b.Ops.AttributeExists(prefix, name))
}

func (b *Builder[N]) AttributeExact(prefix NamespacePrefix, name, value string) {
	b.add(b.Ops.AttributeExact(prefix, name, value))
}

func (b *Builder[N]) AttributeIncludes(prefix NamespacePrefix, name, value string) {
	b.add(b.Ops.AttributeIncludes(prefix, name, value))
}

func (b *Builder[N]) AttributeDashMatch(prefix NamespacePrefix, name, value string) {
	b.add(b.Ops.AttributeDashMatch(prefix, name, value))
}

func (b *Builder[N]) AttributePrefixMatch(prefix NamespacePrefix, name, value string) {
	b.add(b.Ops.AttributePrefixMatch(prefix, name, value))
}

func (b *Builder[N]) AttributeSuffixMatch(prefix NamespacePrefix, name, value string) {
	b.add(b.Ops.AttributeSuffixMatch(prefix, name, value))
}

func (b *Builder[N]) AttributeSubstring(prefix NamespacePrefix, name, value string) {
	b.add(b.Ops.AttributeSubstring(prefix, name, value))
}

func (b *Builder[N]) FirstChild() {
	b.add(b.Ops.FirstChild())
}

func (b *Builder[N]) LastChild() {
	b.add(b.Ops.LastChild())
}

func (b *Builder[N]) NthChild(a, n int) {
	b.add(b.Ops.NthChild(a, n))
}

func (b *Builder[N]) OnlyChild() {
	b.add(b.Ops.OnlyChild())
}

func (b *Builder[N]) Empty() {
	b.add(b.Ops.Empty())
}

func (b *Builder[N]) NthLastChild(a, n int) {
	b.add(b.Ops.NthLastChild(a, n))
}

func (b *Builder[N]) Child() {
	b.add(b.Ops.Child())
}

func (b *Builder[N]) Descendant() {
	b.add(b.Ops.Descendant())
}

func (b *Builder[N]) Adjacent() {
	b.add(b.Ops.Adjacent())
}

func (b *Builder[N]) GeneralSibling() {
	b.add(b.Ops.GeneralSibling())
}

func (b *Builder[N]) BeginNegation() {
	b.negations = append(b.negations, b.current)
	b.current = nil
}

// EndNegation replaces the negated component by a filter keeping the nodes
// for which the component does not match.
func (b *Builder[N]) EndNegation() {
	var (
		last  = len(b.negations) - 1
		inner = b.current
	)
	b.current = b.negations[last]
	b.negations = b.negations[:last]
	if inner == nil {
		return
	}
	b.add(func(nodes iter.Seq[N]) iter.Seq[N] {
		return func(yield func(N) bool) {
			for n := range nodes {
				var match bool
				for range inner(single(n)) {
					match = true
					break
				}
				if !match && !yield(n) {
					return
				}
			}
		}
	})
}

func (b *Builder[N]) add(sel Selector[N]) {
	prev := b.current
	if prev == nil {
		b.current = sel
		return
	}
	b.current = func(nodes iter.Seq[N]) iter.Seq[N] {
		return sel(prev(nodes))
	}
}

func single[N any](n N) iter.Seq[N] {
	return func(yield func(N) bool) {
		yield(n)
	}
}
