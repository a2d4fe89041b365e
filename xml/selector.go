package xml

import (
	"errors"
	"slices"

	"github.com/midbel/fizzler/environ"
	"github.com/midbel/fizzler/selector"
)

var ErrNoMatch = errors.New("no element matched")

// Tree gives the selector engine access to an XML document. Namespace
// prefixes used in selectors are resolved to uris with the namespaces
// defined on the tree. A prefix that is not defined matches the prefix
// written in the document.
type Tree struct {
	namespaces environ.Environ[string]
}

func NewTree() *Tree {
	return &Tree{
		namespaces: environ.Empty[string](),
	}
}

// TreeFor creates a Tree knowing the namespaces declared on the document
// element of the document holding node.
func TreeFor(node Node) *Tree {
	tree := NewTree()
	for node.Parent() != nil {
		node = node.Parent()
	}
	var ns []NS
	switch n := node.(type) {
	case *Document:
		ns = n.Namespaces()
	case *Element:
		ns = n.Namespaces()
	}
	for _, n := range ns {
		if n.Default() {
			continue
		}
		tree.Define(n.Prefix, n.Uri)
	}
	return tree
}

func (t *Tree) Define(prefix, uri string) {
	t.namespaces.Define(prefix, uri)
}

func (t *Tree) Element(n Node) bool {
	return n.Type() == TypeElement
}

func (t *Tree) Name(n Node) string {
	return n.LocalName()
}

func (t *Tree) Attribute(n Node, prefix selector.NamespacePrefix, name string) (string, bool) {
	el, ok := n.(*Element)
	if !ok {
		return "", false
	}
	ix := slices.IndexFunc(el.Attrs, func(a Attribute) bool {
		if a.Name != name || a.declaration() {
			return false
		}
		switch {
		case prefix.IsAny():
			return true
		case prefix.IsSpecific():
			return t.matchSpace(a.QName, prefix.Text())
		default:
			return a.Space == ""
		}
	})
	if ix < 0 {
		return "", false
	}
	return el.Attrs[ix].Value(), true
}

func (t *Tree) Parent(n Node) (Node, bool) {
	p := n.Parent()
	return p, p != nil
}

func (t *Tree) Root(n Node) bool {
	return n.Type() == TypeDocument
}

func (t *Tree) FirstChild(n Node) (Node, bool) {
	nodes := childNodes(n)
	if len(nodes) == 0 {
		return nil, false
	}
	return nodes[0], true
}

func (t *Tree) NextSibling(n Node) (Node, bool) {
	return sibling(n, 1)
}

func (t *Tree) PrevSibling(n Node) (Node, bool) {
	return sibling(n, -1)
}

func (t *Tree) InNamespace(n Node, prefix selector.NamespacePrefix) bool {
	el, ok := n.(*Element)
	if !ok {
		return false
	}
	if prefix.IsEmpty() {
		return el.Uri == "" && el.Space == ""
	}
	return t.matchSpace(el.QName, prefix.Text())
}

func (t *Tree) matchSpace(qn QName, prefix string) bool {
	uri, err := t.namespaces.Resolve(prefix)
	if err != nil || qn.Uri == "" {
		return qn.Space == prefix
	}
	return qn.Uri == uri
}

func childNodes(n Node) []Node {
	switch n := n.(type) {
	case *Document:
		return n.Nodes
	case *Element:
		return n.Nodes
	default:
		return nil
	}
}

func sibling(n Node, offset int) (Node, bool) {
	if n.Type() == TypeAttribute || n.Parent() == nil {
		return nil, false
	}
	var (
		nodes = childNodes(n.Parent())
		pos   = n.Position() + offset
	)
	if pos < 0 || pos >= len(nodes) {
		return nil, false
	}
	return nodes[pos], true
}

// Compile creates a selector over XML nodes.
func Compile(expr string, tree *Tree) (selector.Selector[Node], error) {
	if tree == nil {
		tree = NewTree()
	}
	return selector.Compile[Node](expr, selector.NewOps[Node](tree))
}

// QuerySelectorAll gives the elements under node matched by expr.
// Namespace prefixes are resolved with the declarations of the document
// element.
func QuerySelectorAll(node Node, expr string) ([]Node, error) {
	sel, err := Compile(expr, TreeFor(node))
	if err != nil {
		return nil, err
	}
	return slices.Collect(sel.Select(node)), nil
}

// QuerySelector gives the first element under node matched by expr.
func QuerySelector(node Node, expr string) (Node, error) {
	sel, err := Compile(expr, TreeFor(node))
	if err != nil {
		return nil, err
	}
	n, ok := sel.First(node)
	if !ok {
		return nil, ErrNoMatch
	}
	return n, nil
}
