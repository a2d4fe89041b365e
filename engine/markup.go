package engine

import (
	"io"

	"github.com/midbel/fizzler/html"
	"github.com/midbel/fizzler/xml"
)

const (
	xmlEngine  = "xml"
	htmlEngine = "html"
)

// XmlEngine loads documents with the xml package. Namespaces are added to
// the ones declared by the document element to resolve the prefixes used in
// selectors.
type XmlEngine struct {
	Namespaces map[string]string
	StrictNS   bool
	// Depth limits the levels of elements written in the markup of a match.
	Depth int
}

func Xml() *XmlEngine {
	return &XmlEngine{
		Namespaces: make(map[string]string),
	}
}

func (e *XmlEngine) Name() string {
	return xmlEngine
}

func (e *XmlEngine) Load(r io.Reader) (Document, error) {
	p := xml.NewParser(r)
	p.OmitProlog = true
	p.StrictNS = e.StrictNS
	doc, err := p.Parse()
	if err != nil {
		return nil, err
	}
	tree := xml.TreeFor(doc)
	for prefix, uri := range e.Namespaces {
		tree.Define(prefix, uri)
	}
	x := xmlDocument{
		doc:   doc,
		tree:  tree,
		depth: e.Depth,
	}
	return &x, nil
}

type xmlDocument struct {
	doc   *xml.Document
	tree  *xml.Tree
	depth int
}

func (d *xmlDocument) Select(expr string) ([]Match, error) {
	sel, err := xml.Compile(expr, d.tree)
	if err != nil {
		return nil, err
	}
	var list []Match
	for n := range sel.Select(d.doc) {
		m := Match{
			Name:   n.QualifiedName(),
			Text:   n.Value(),
			Markup: xml.WriteNodeDepth(n, d.depth),
		}
		list = append(list, m)
	}
	return list, nil
}

type HtmlEngine struct{}

func Html() *HtmlEngine {
	return new(HtmlEngine)
}

func (e *HtmlEngine) Name() string {
	return htmlEngine
}

func (e *HtmlEngine) Load(r io.Reader) (Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &htmlDocument{doc: doc}, nil
}

type htmlDocument struct {
	doc *html.Node
}

func (d *htmlDocument) Select(expr string) ([]Match, error) {
	sel, err := html.Compile(expr)
	if err != nil {
		return nil, err
	}
	var list []Match
	for n := range sel.Select(d.doc) {
		str, err := html.Render(n)
		if err != nil {
			return nil, err
		}
		m := Match{
			Name:   n.Data,
			Text:   html.Text(n),
			Markup: str,
		}
		list = append(list, m)
	}
	return list, nil
}
