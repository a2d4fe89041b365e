// Package html runs selectors over documents parsed by golang.org/x/net/html.
//
// Element names are compared without regard to case. Elements and attributes
// of foreign content (svg, math) can be selected with the namespace prefix
// given to them by the HTML parser, e.g. svg|rect or [xlink|href].
package html

import (
	"errors"
	"io"
	"slices"
	"strings"

	"github.com/midbel/fizzler/selector"
	"golang.org/x/net/html"
)

var ErrNoMatch = errors.New("no element matched")

type Node = html.Node

// Tree implements selector.Tree and selector.NamespaceTree for html nodes.
type Tree struct{}

func (Tree) Element(n *Node) bool {
	return n.Type == html.ElementNode
}

func (Tree) Name(n *Node) string {
	return n.Data
}

func (Tree) Attribute(n *Node, prefix selector.NamespacePrefix, name string) (string, bool) {
	ix := slices.IndexFunc(n.Attr, func(a html.Attribute) bool {
		if !strings.EqualFold(a.Key, name) {
			return false
		}
		switch {
		case prefix.IsAny():
			return true
		case prefix.IsSpecific():
			return a.Namespace == prefix.Text()
		default:
			return a.Namespace == ""
		}
	})
	if ix < 0 {
		return "", false
	}
	return n.Attr[ix].Val, true
}

func (Tree) Parent(n *Node) (*Node, bool) {
	return n.Parent, n.Parent != nil
}

func (Tree) Root(n *Node) bool {
	return n.Type == html.DocumentNode
}

func (Tree) FirstChild(n *Node) (*Node, bool) {
	return n.FirstChild, n.FirstChild != nil
}

func (Tree) NextSibling(n *Node) (*Node, bool) {
	return n.NextSibling, n.NextSibling != nil
}

func (Tree) PrevSibling(n *Node) (*Node, bool) {
	return n.PrevSibling, n.PrevSibling != nil
}

func (Tree) InNamespace(n *Node, prefix selector.NamespacePrefix) bool {
	if prefix.IsEmpty() {
		return n.Namespace == ""
	}
	return n.Namespace == prefix.Text()
}

func Parse(r io.Reader) (*Node, error) {
	return html.Parse(r)
}

func ParseString(str string) (*Node, error) {
	return Parse(strings.NewReader(str))
}

// Compile creates a selector over html nodes.
func Compile(expr string) (selector.Selector[*Node], error) {
	ops := selector.NewOps[*Node](Tree{})
	ops.FoldCase = true
	return selector.Compile[*Node](expr, ops)
}

func QuerySelectorAll(node *Node, expr string) ([]*Node, error) {
	sel, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	return slices.Collect(sel.Select(node)), nil
}

func QuerySelector(node *Node, expr string) (*Node, error) {
	sel, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	n, ok := sel.First(node)
	if !ok {
		return nil, ErrNoMatch
	}
	return n, nil
}

// Render gives the markup of node and its descendants.
func Render(node *Node) (string, error) {
	var buf strings.Builder
	if err := html.Render(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Text gives the text content of node with runs of blanks collapsed.
func Text(node *Node) string {
	var (
		list []string
		walk func(*Node)
	)
	walk = func(n *Node) {
		if n.Type == html.TextNode {
			list = append(list, strings.Fields(n.Data)...)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	return strings.Join(list, " ")
}
