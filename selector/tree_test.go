package selector

import (
	"slices"
	"strings"
)

type testNode struct {
	name     string
	text     string
	document bool
	attrs    map[string]string
	parent   *testNode
	children []*testNode
}

func doc(children ...*testNode) *testNode {
	d := &testNode{document: true}
	d.append(children...)
	return d
}

// el creates an element. attrs are given as "name=value" pairs.
func el(name string, attrs []string, children ...*testNode) *testNode {
	n := &testNode{
		name:  name,
		attrs: make(map[string]string),
	}
	for _, a := range attrs {
		k, v, _ := strings.Cut(a, "=")
		n.attrs[k] = v
	}
	n.append(children...)
	return n
}

func text(str string) *testNode {
	return &testNode{text: str}
}

func (n *testNode) append(children ...*testNode) {
	for _, c := range children {
		c.parent = n
		n.children = append(n.children, c)
	}
}

func (n *testNode) sibling(offset int) (*testNode, bool) {
	if n.parent == nil {
		return nil, false
	}
	ix := slices.Index(n.parent.children, n) + offset
	if ix < 0 || ix >= len(n.parent.children) {
		return nil, false
	}
	return n.parent.children[ix], true
}

type testTree struct{}

func (testTree) Element(n *testNode) bool {
	return !n.document && n.name != ""
}

func (testTree) Name(n *testNode) string {
	return n.name
}

func (testTree) Attribute(n *testNode, _ NamespacePrefix, name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

func (testTree) Parent(n *testNode) (*testNode, bool) {
	return n.parent, n.parent != nil
}

func (testTree) Root(n *testNode) bool {
	return n.document
}

func (testTree) FirstChild(n *testNode) (*testNode, bool) {
	if len(n.children) == 0 {
		return nil, false
	}
	return n.children[0], true
}

func (testTree) NextSibling(n *testNode) (*testNode, bool) {
	return n.sibling(1)
}

func (testTree) PrevSibling(n *testNode) (*testNode, bool) {
	return n.sibling(-1)
}

func testOps() NodeOps[*testNode] {
	return NewOps[*testNode](testTree{})
}

func names(nodes []*testNode) []string {
	var list []string
	for _, n := range nodes {
		list = append(list, n.name)
	}
	return list
}

// sampleDocument is:
//
//	<body>
//	  <div id="myDiv" class="checkit"><p class="ohyeah omg">eeeee</p></div>
//	  <div id="someOtherDiv" class="checkit"></div>
//	</body>
func sampleDocument() *testNode {
	return doc(
		el("body", nil,
			el("div", []string{"id=myDiv", "class=checkit"},
				el("p", []string{"class=ohyeah omg"}, text("eeeee")),
			),
			el("div", []string{"id=someOtherDiv", "class=checkit"}),
		),
	)
}
