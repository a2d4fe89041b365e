package xml

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/midbel/fizzler/environ"
)

const MaxDepth = 512

const (
	SupportedVersion  = "1.0"
	SupportedEncoding = "UTF-8"
)

const AttrXmlNS = "xmlns"

type ParseError struct {
	Position
	Element string
	Message string
}

func createParseError(elem, msg string, pos Position) error {
	return ParseError{
		Position: pos,
		Element:  elem,
		Message:  msg,
	}
}

func (p ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", p.Line, p.Column, p.Element, p.Message)
}

type Parser struct {
	scan *Scanner
	curr Token
	peek Token

	depth int

	TrimSpace  bool
	KeepEmpty  bool
	OmitProlog bool
	StrictNS   bool
	MaxDepth   int

	namespaces environ.Environ[string]
}

func NewParser(r io.Reader) *Parser {
	p := Parser{
		scan:       Scan(r),
		TrimSpace:  true,
		MaxDepth:   MaxDepth,
		namespaces: environ.Empty[string](),
	}
	p.next()
	p.next()
	return &p
}

func ParseString(str string) (*Document, error) {
	return ParseReader(strings.NewReader(str))
}

func ParseReader(r io.Reader) (*Document, error) {
	return NewParser(r).Parse()
}

func (p *Parser) Parse() (*Document, error) {
	if err := p.parseProlog(); err != nil {
		return nil, err
	}
	doc := EmptyDocument()
	for !p.done() {
		node, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		if node == nil {
			continue
		}
		switch node.Type() {
		case TypeComment, TypeElement, TypeInstruction:
		case TypeText:
			continue
		default:
			return nil, p.createError("document", "invalid node type")
		}
		doc.attach(node)
		if node.Type() == TypeElement {
			break
		}
	}
	if doc.Root() == nil {
		return nil, p.createError("document", "missing root element")
	}
	return doc, nil
}

func (p *Parser) parseProlog() error {
	if !p.is(ProcInstTag) {
		if !p.OmitProlog {
			return p.createError("document", "xml prolog missing")
		}
		return nil
	}
	p.next()
	if !p.is(Name) || p.getCurrentLiteral() != "xml" {
		if !p.OmitProlog {
			return p.createError("document", "expected xml prolog")
		}
		return p.parseInstructionBody(nil)
	}
	var pi Instruction
	if err := p.parseInstructionBody(&pi); err != nil {
		return err
	}
	ok := slices.ContainsFunc(pi.Attrs, func(a Attribute) bool {
		return a.LocalName() == "version" && a.Value() == SupportedVersion
	})
	if !ok {
		return p.createError("document", "xml version not supported")
	}
	ix := slices.IndexFunc(pi.Attrs, func(a Attribute) bool {
		return a.LocalName() == "encoding"
	})
	if ix >= 0 && strings.ToUpper(pi.Attrs[ix].Value()) != SupportedEncoding {
		return p.createError("document", "xml encoding not supported")
	}
	return nil
}

func (p *Parser) parseNode() (Node, error) {
	p.enter()
	defer p.leave()
	if p.depth >= p.MaxDepth {
		return nil, p.createError("document", "maximum depth reached")
	}
	switch p.curr.Type {
	case OpenTag:
		return p.parseElement()
	case CommentTag:
		return p.parseComment(), nil
	case ProcInstTag:
		return p.parsePI()
	case Cdata:
		return p.parseCharData(), nil
	case Literal:
		return p.parseLiteral(), nil
	default:
		return nil, p.createError("document", fmt.Sprintf("unexpected %s", p.curr))
	}
}

func (p *Parser) parseElement() (Node, error) {
	p.namespaces = environ.Enclosed(p.namespaces)
	defer func() {
		u, ok := p.namespaces.(interface {
			Unwrap() environ.Environ[string]
		})
		if ok {
			p.namespaces = u.Unwrap()
		}
	}()
	p.next()
	var (
		elem Element
		err  error
	)
	if p.is(Namespace) {
		elem.Space = p.getCurrentLiteral()
		p.next()
	}
	if !p.is(Name) {
		return nil, p.createError("element", "name is missing")
	}
	elem.Name = p.getCurrentLiteral()
	p.next()

	elem.Attrs, err = p.parseAttributes(&elem, func() bool {
		return p.is(EndTag) || p.is(EmptyElemTag)
	})
	if err != nil {
		return nil, err
	}
	if elem.Uri, err = p.isDefined(elem.QName); err != nil {
		return nil, err
	}

	switch p.curr.Type {
	case EmptyElemTag:
		p.next()
		return &elem, nil
	case EndTag:
		p.next()
	default:
		return nil, p.createError("element", "end of element expected")
	}
	for !p.done() && !p.is(CloseTag) {
		child, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		if child != nil {
			elem.Append(child)
		}
	}
	if !p.is(CloseTag) {
		return nil, p.createError("element", "closing element is missing")
	}
	p.next()
	return &elem, p.parseCloseElement(&elem)
}

func (p *Parser) parseCloseElement(elem *Element) error {
	if elem.Space != "" && !p.is(Namespace) {
		return p.createError("element", "closing element without namespace")
	}
	if p.is(Namespace) {
		if elem.Space != p.getCurrentLiteral() {
			return p.createError("element", "namespace mismatched with opening element")
		}
		p.next()
	}
	if !p.is(Name) {
		return p.createError("element", "name is missing")
	}
	if p.getCurrentLiteral() != elem.Name {
		return p.createError("element", "name mismatched with opening element")
	}
	p.next()
	if !p.is(EndTag) {
		return p.createError("element", "end of element expected")
	}
	p.next()
	return nil
}

func (p *Parser) parsePI() (Node, error) {
	p.next()
	if !p.is(Name) {
		return nil, p.createError("processing instruction", "name is missing")
	}
	var elem Instruction
	if err := p.parseInstructionBody(&elem); err != nil {
		return nil, err
	}
	return &elem, nil
}

// parseInstructionBody parses the name, the attributes and the end of a
// processing instruction. The result is discarded when elem is nil.
func (p *Parser) parseInstructionBody(elem *Instruction) error {
	if elem == nil {
		elem = new(Instruction)
	}
	elem.Name = p.getCurrentLiteral()
	p.next()
	var err error
	elem.Attrs, err = p.parseAttributes(elem, func() bool {
		return p.is(ProcInstTag)
	})
	if err != nil {
		return err
	}
	if !p.is(ProcInstTag) {
		return p.createError("processing instruction", "end of element expected")
	}
	p.next()
	return nil
}

func (p *Parser) parseAttributes(parent Node, done func() bool) ([]Attribute, error) {
	var attrs []Attribute
	for i := 0; !p.done() && !done(); i++ {
		attr, err := p.parseAttr()
		if err != nil {
			return nil, err
		}
		ok := slices.ContainsFunc(attrs, func(a Attribute) bool {
			return attr.QualifiedName() == a.QualifiedName()
		})
		if ok {
			return nil, p.createError("attribute", "attribute is already defined")
		}
		attr.setParent(parent)
		attr.setPosition(i)
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

func (p *Parser) parseAttr() (Attribute, error) {
	var (
		attr Attribute
		err  error
	)
	if p.is(Namespace) {
		attr.Space = p.getCurrentLiteral()
		p.next()
	}
	if !p.is(Attr) {
		return attr, p.createError("attribute", "name is expected")
	}
	attr.Name = p.getCurrentLiteral()
	p.next()
	if !p.is(Literal) {
		return attr, p.createError("attribute", "value is missing")
	}
	attr.Datum = p.getCurrentLiteral()
	p.next()
	if attr.Name == AttrXmlNS {
		p.namespaces.Define("", attr.Datum)
	} else if attr.Space == AttrXmlNS {
		p.namespaces.Define(attr.Name, attr.Datum)
	}
	if attr.Space != "" {
		attr.Uri, err = p.isDefined(attr.QName)
	}
	return attr, err
}

func (p *Parser) parseComment() Node {
	defer p.next()
	return NewComment(p.getCurrentLiteral())
}

func (p *Parser) parseCharData() Node {
	defer p.next()
	return NewCharacterData(p.getCurrentLiteral())
}

func (p *Parser) parseLiteral() Node {
	str := p.getCurrentLiteral()
	if p.TrimSpace {
		str = strings.TrimSpace(str)
	}
	p.next()
	if !p.KeepEmpty && str == "" {
		return nil
	}
	return NewText(str)
}

// isDefined resolves the namespace uri of a name. Unknown prefixes are only
// an error in strict mode.
func (p *Parser) isDefined(qn QName) (string, error) {
	if qn.declaration() {
		return "", nil
	}
	uri, err := p.namespaces.Resolve(qn.Space)
	if err != nil && p.StrictNS && qn.Space != "" {
		return "", p.createError("namespace", fmt.Sprintf("%s: namespace is not defined", qn.Space))
	}
	return uri, nil
}

func (p *Parser) getCurrentLiteral() string {
	return p.curr.Literal
}

func (p *Parser) createError(elem, msg string) error {
	return createParseError(elem, msg, p.curr.Position)
}

func (p *Parser) is(kind rune) bool {
	return p.curr.Type == kind
}

func (p *Parser) done() bool {
	return p.is(EOF)
}

func (p *Parser) enter() {
	p.depth++
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) next() {
	p.curr = p.peek
	p.peek = p.scan.Scan()
}
