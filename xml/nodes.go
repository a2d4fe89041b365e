package xml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

type NodeType int8

const (
	TypeDocument NodeType = 1 << iota
	TypeElement
	TypeComment
	TypeAttribute
	TypeInstruction
	TypeText
)

func (n NodeType) String() string {
	switch n {
	default:
		return "<>"
	case TypeDocument:
		return "document"
	case TypeElement:
		return "element"
	case TypeComment:
		return "comment"
	case TypeAttribute:
		return "attribute"
	case TypeInstruction:
		return "pi"
	case TypeText:
		return "text"
	}
}

type Node interface {
	Type() NodeType
	LocalName() string
	QualifiedName() string
	Leaf() bool
	Position() int
	Parent() Node
	Value() string

	setParent(Node)
	setPosition(int)
}

type NS struct {
	Prefix string
	Uri    string
}

func (n NS) Default() bool {
	return n.Prefix == ""
}

var ErrElement = errors.New("element expected")

type Document struct {
	Version  string
	Encoding string

	Nodes []Node
}

func NewDocument(root Node) *Document {
	doc := EmptyDocument()
	doc.attach(root)
	return doc
}

func EmptyDocument() *Document {
	doc := Document{
		Version:  SupportedVersion,
		Encoding: SupportedEncoding,
	}
	return &doc
}

func (d *Document) Write(w io.Writer) error {
	return NewWriter(w).Write(d)
}

func (d *Document) WriteString() (string, error) {
	var (
		buf bytes.Buffer
		err = d.Write(&buf)
	)
	return buf.String(), err
}

// Root gives the document element.
func (d *Document) Root() Node {
	ix := slices.IndexFunc(d.Nodes, func(n Node) bool {
		return n.Type() == TypeElement
	})
	if ix < 0 {
		return nil
	}
	return d.Nodes[ix]
}

func (d *Document) Namespaces() []NS {
	el, ok := d.Root().(*Element)
	if !ok {
		return nil
	}
	return el.Namespaces()
}

func (d *Document) Type() NodeType {
	return TypeDocument
}

func (d *Document) LocalName() string {
	return ""
}

func (d *Document) QualifiedName() string {
	return ""
}

func (d *Document) Leaf() bool {
	return false
}

func (d *Document) Position() int {
	return 0
}

func (d *Document) Parent() Node {
	return nil
}

func (d *Document) Value() string {
	if root := d.Root(); root != nil {
		return root.Value()
	}
	return ""
}

func (d *Document) attach(node Node) {
	node.setParent(d)
	node.setPosition(len(d.Nodes))
	d.Nodes = append(d.Nodes, node)
}

func (d *Document) setParent(_ Node) {}

func (d *Document) setPosition(_ int) {}

type QName struct {
	Uri   string
	Space string
	Name  string
}

func ParseName(name string) (QName, error) {
	var (
		qn QName
		ok bool
	)
	qn.Space, qn.Name, ok = strings.Cut(name, ":")
	if !ok {
		qn.Name, qn.Space = qn.Space, ""
	}
	if ok && qn.Space == "" {
		return qn, fmt.Errorf("%s: invalid namespace", name)
	}
	return qn, nil
}

func ExpandedName(name, space, uri string) QName {
	return QName{
		Name:  name,
		Space: space,
		Uri:   uri,
	}
}

func LocalName(name string) QName {
	return ExpandedName(name, "", "")
}

func QualifiedName(name, space string) QName {
	return ExpandedName(name, space, "")
}

func (q QName) Equal(other QName) bool {
	return q.Uri == other.Uri && q.Name == other.Name
}

func (q QName) LocalName() string {
	return q.Name
}

func (q QName) ExpandedName() string {
	if q.Uri == "" {
		return q.LocalName()
	}
	return fmt.Sprintf("{%s}%s", q.Uri, q.Name)
}

func (q QName) QualifiedName() string {
	if q.Space == "" {
		return q.LocalName()
	}
	return fmt.Sprintf("%s:%s", q.Space, q.Name)
}

// declaration reports whether the name is the one of a namespace
// declaration attribute.
func (q QName) declaration() bool {
	return q.Name == AttrXmlNS || q.Space == AttrXmlNS
}

type Attribute struct {
	QName
	Datum string

	parent   Node
	position int
}

func NewAttribute(name QName, value string) Attribute {
	return Attribute{
		QName: name,
		Datum: value,
	}
}

func (_ *Attribute) Type() NodeType {
	return TypeAttribute
}

func (_ *Attribute) Leaf() bool {
	return true
}

func (a *Attribute) Position() int {
	return a.position
}

func (a *Attribute) Parent() Node {
	return a.parent
}

func (a *Attribute) Value() string {
	return a.Datum
}

func (a *Attribute) setParent(node Node) {
	a.parent = node
}

func (a *Attribute) setPosition(pos int) {
	a.position = pos
}

type Element struct {
	QName
	Attrs []Attribute
	Nodes []Node

	parent   Node
	position int
}

func NewElement(name QName) *Element {
	return &Element{
		QName: name,
	}
}

// Namespaces gives the namespaces declared by the element itself.
func (e *Element) Namespaces() []NS {
	var ns []NS
	for _, a := range e.Attrs {
		if !a.declaration() {
			continue
		}
		n := NS{
			Prefix: a.Name,
			Uri:    a.Value(),
		}
		if n.Prefix == AttrXmlNS {
			n.Prefix = ""
		}
		ns = append(ns, n)
	}
	return ns
}

// Attributes gives the attributes of the element without the namespace
// declarations.
func (e *Element) Attributes() []Attribute {
	var as []Attribute
	for _, a := range e.Attrs {
		if a.declaration() {
			continue
		}
		as = append(as, a)
	}
	return as
}

func (_ *Element) Type() NodeType {
	return TypeElement
}

func (e *Element) Leaf() bool {
	if e.Empty() {
		return true
	}
	switch e.Nodes[0].(type) {
	case *Text, *CharData:
		return len(e.Nodes) == 1
	default:
		return false
	}
}

func (e *Element) Empty() bool {
	return len(e.Nodes) == 0
}

// Value gives the text content of the element, the text of each descendant
// separated by a blank.
func (e *Element) Value() string {
	var list []string
	for _, n := range e.Nodes {
		if n.Type() == TypeComment || n.Type() == TypeInstruction {
			continue
		}
		if str := n.Value(); str != "" {
			list = append(list, str)
		}
	}
	return strings.Join(list, " ")
}

func (e *Element) Append(node Node) {
	if a, ok := node.(*Attribute); ok {
		e.SetAttribute(*a)
		return
	}
	node.setParent(e)
	node.setPosition(len(e.Nodes))
	e.Nodes = append(e.Nodes, node)
}

func (e *Element) Len() int {
	return len(e.Nodes)
}

func (e *Element) Position() int {
	return e.position
}

func (e *Element) Parent() Node {
	return e.parent
}

func (e *Element) GetAttribute(name string) (Attribute, bool) {
	ix := slices.IndexFunc(e.Attrs, func(a Attribute) bool {
		return a.QualifiedName() == name
	})
	if ix < 0 {
		return Attribute{}, false
	}
	return e.Attrs[ix], true
}

func (e *Element) SetAttribute(attr Attribute) {
	attr.setParent(e)
	ix := slices.IndexFunc(e.Attrs, func(a Attribute) bool {
		return a.QualifiedName() == attr.QualifiedName()
	})
	if ix < 0 {
		attr.setPosition(len(e.Attrs))
		e.Attrs = append(e.Attrs, attr)
	} else {
		attr.setPosition(ix)
		e.Attrs[ix] = attr
	}
}

func (e *Element) setPosition(pos int) {
	e.position = pos
}

func (e *Element) setParent(parent Node) {
	e.parent = parent
}

type Instruction struct {
	QName
	Attrs []Attribute

	parent   Node
	position int
}

func NewInstruction(name QName) *Instruction {
	return &Instruction{
		QName: name,
	}
}

func (_ *Instruction) Type() NodeType {
	return TypeInstruction
}

func (i *Instruction) Leaf() bool {
	return true
}

func (i *Instruction) Value() string {
	return ""
}

func (i *Instruction) Position() int {
	return i.position
}

func (i *Instruction) Parent() Node {
	return i.parent
}

func (i *Instruction) setPosition(pos int) {
	i.position = pos
}

func (i *Instruction) setParent(parent Node) {
	i.parent = parent
}

// leaf holds what text, character data and comment nodes have in common.
type leaf struct {
	Content string

	parent   Node
	position int
}

func (_ *leaf) LocalName() string {
	return ""
}

func (_ *leaf) QualifiedName() string {
	return ""
}

func (_ *leaf) Leaf() bool {
	return true
}

func (l *leaf) Value() string {
	return l.Content
}

func (l *leaf) Position() int {
	return l.position
}

func (l *leaf) Parent() Node {
	return l.parent
}

func (l *leaf) setPosition(pos int) {
	l.position = pos
}

func (l *leaf) setParent(parent Node) {
	l.parent = parent
}

type CharData struct {
	leaf
}

func NewCharacterData(chardata string) *CharData {
	var c CharData
	c.Content = chardata
	return &c
}

func (_ *CharData) Type() NodeType {
	return TypeText
}

type Text struct {
	leaf
}

func NewText(text string) *Text {
	var t Text
	t.Content = text
	return &t
}

func (_ *Text) Type() NodeType {
	return TypeText
}

type Comment struct {
	leaf
}

func NewComment(comment string) *Comment {
	var c Comment
	c.Content = comment
	return &c
}

func (_ *Comment) Type() NodeType {
	return TypeComment
}

