package xml_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/midbel/fizzler/xml"
)

const prolog = `<?xml version="1.0" encoding="UTF-8"?>`

const sample = prolog + `
<!-- catalog of items -->
<catalog xmlns:x="urn:x" xmlns:y="urn:y">
	<item id="1" class="first">first</item>
	<x:item x:lang="fr">second</x:item>
	<y:entry/>
	<group>
		<item id="2"/>
		<note>   </note>
	</group>
</catalog>
`

func TestParseValidDocument(t *testing.T) {
	doc, err := xml.ParseString(sample)
	if err != nil {
		t.Fatalf("fail to parse sample document: %s", err)
	}
	if len(doc.Nodes) != 2 {
		t.Fatalf("document: want 2 nodes, got %d", len(doc.Nodes))
	}
	if doc.Nodes[0].Type() != xml.TypeComment {
		t.Errorf("first node: want comment, got %s", doc.Nodes[0].Type())
	}
	root, ok := doc.Root().(*xml.Element)
	if !ok {
		t.Fatalf("root: element expected, got %T", doc.Root())
	}
	if root.Name != "catalog" || root.Parent() != doc || root.Position() != 1 {
		t.Errorf("root: unexpected element %s (position %d)", root.QualifiedName(), root.Position())
	}
	if root.Len() != 4 {
		t.Errorf("root: want 4 children, got %d", root.Len())
	}
	ns := doc.Namespaces()
	if len(ns) != 2 || ns[0].Prefix != "x" || ns[1].Uri != "urn:y" {
		t.Errorf("namespaces mismatched: %v", ns)
	}
	item, ok := root.Nodes[1].(*xml.Element)
	if !ok {
		t.Fatalf("item: element expected, got %T", root.Nodes[1])
	}
	if item.Uri != "urn:x" || item.QualifiedName() != "x:item" {
		t.Errorf("item: unexpected name %s", item.ExpandedName())
	}
	if attr, ok := item.GetAttribute("x:lang"); !ok || attr.Uri != "urn:x" || attr.Value() != "fr" {
		t.Errorf("item: x:lang attribute mismatched")
	}
	if got := root.Value(); got != "first second" {
		t.Errorf("text content: want %q, got %q", "first second", got)
	}
}

func TestParseNodes(t *testing.T) {
	const str = `<root a="&lt;x&gt;"><!-- c -->a &amp; b<![CDATA[<x>]]><b/>tail<?pi k="v"?></root>`

	doc, err := xml.ParseString(prolog + str)
	if err != nil {
		t.Fatalf("fail to parse document: %s", err)
	}
	root := doc.Root().(*xml.Element)
	if attr, _ := root.GetAttribute("a"); attr.Value() != "<x>" {
		t.Errorf("attribute: entity not decoded: %q", attr.Value())
	}
	want := []xml.NodeType{
		xml.TypeComment,
		xml.TypeText,
		xml.TypeText,
		xml.TypeElement,
		xml.TypeText,
		xml.TypeInstruction,
	}
	if len(root.Nodes) != len(want) {
		t.Fatalf("children: want %d nodes, got %d", len(want), len(root.Nodes))
	}
	for i, n := range root.Nodes {
		if n.Type() != want[i] {
			t.Errorf("child %d: want %s, got %s", i, want[i], n.Type())
		}
		if n.Position() != i || n.Parent() != root {
			t.Errorf("child %d: position or parent not set", i)
		}
	}
	if got := root.Nodes[1].Value(); got != "a & b" {
		t.Errorf("text: want %q, got %q", "a & b", got)
	}
	if _, ok := root.Nodes[2].(*xml.CharData); !ok || root.Nodes[2].Value() != "<x>" {
		t.Errorf("cdata: unexpected node %T", root.Nodes[2])
	}
}

func TestParseKeepEmpty(t *testing.T) {
	const str = `<root> <a/> </root>`

	p := xml.NewParser(strings.NewReader(str))
	p.OmitProlog = true
	p.TrimSpace = false
	p.KeepEmpty = true

	doc, err := p.Parse()
	if err != nil {
		t.Fatalf("fail to parse document: %s", err)
	}
	root := doc.Root().(*xml.Element)
	if root.Len() != 3 {
		t.Errorf("children: want 3 nodes, got %d", root.Len())
	}
}

func TestParseInvalidDocument(t *testing.T) {
	data := []struct {
		Xml        string
		Cause      string
		OmitProlog bool
	}{
		{
			Xml:   ``,
			Cause: "document without root element",
		},
		{
			Xml:        `<root></root>`,
			Cause:      "document without prolog",
			OmitProlog: true,
		},
		{
			Xml:        `<?xml version="1.1"?><root></root>`,
			Cause:      "unsupported version",
			OmitProlog: true,
		},
		{
			Xml:   `<root empty-attr></root>`,
			Cause: "attribute without value",
		},
		{
			Xml:   `<root id="id-1" id="id-2"></root>`,
			Cause: "duplicate attribute",
		},
		{
			Xml:   `<root><a></b></root>`,
			Cause: "mismatched closing element",
		},
		{
			Xml:   `<root><a>`,
			Cause: "unclosed element",
		},
		{
			Xml:   `<x:root></root>`,
			Cause: "closing element without namespace",
		},
	}
	for _, d := range data {
		if !d.OmitProlog {
			d.Xml = prolog + d.Xml
		}
		_, err := xml.ParseString(d.Xml)
		if err == nil {
			t.Errorf("%s: invalid document parsed properly!", d.Cause)
		}
	}
}

func TestParseOmitProlog(t *testing.T) {
	p := xml.NewParser(strings.NewReader(`<?style sheet="a.css"?><root/>`))
	p.OmitProlog = true
	doc, err := p.Parse()
	if err != nil {
		t.Fatalf("fail to parse document without prolog: %s", err)
	}
	if doc.Root() == nil {
		t.Errorf("root element missing")
	}
}

func TestParseStrictNamespace(t *testing.T) {
	const str = `<root><x:a/></root>`

	p := xml.NewParser(strings.NewReader(str))
	p.OmitProlog = true
	if _, err := p.Parse(); err != nil {
		t.Fatalf("undeclared prefix rejected in lax mode: %s", err)
	}

	p = xml.NewParser(strings.NewReader(str))
	p.OmitProlog = true
	p.StrictNS = true
	_, err := p.Parse()

	var perr xml.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("parse error expected, got %v", err)
	}
	if perr.Element != "namespace" {
		t.Errorf("error: want namespace error, got %s", perr.Element)
	}
}

func TestParseMaxDepth(t *testing.T) {
	p := xml.NewParser(strings.NewReader(`<a><b><c><d/></c></b></a>`))
	p.OmitProlog = true
	p.MaxDepth = 3
	if _, err := p.Parse(); err == nil {
		t.Errorf("document deeper than limit parsed properly!")
	}
}
