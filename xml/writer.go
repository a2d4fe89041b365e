package xml

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

type WriterOptions uint64

const (
	OptionCompact WriterOptions = 1 << iota
	OptionNoNamespace
	OptionNoComment
	OptionNoProlog
)

func (w WriterOptions) Compact() bool {
	return w&OptionCompact > 0
}

func (w WriterOptions) NoNamespace() bool {
	return w&OptionNoNamespace > 0
}

func (w WriterOptions) NoComment() bool {
	return w&OptionNoComment > 0
}

func (w WriterOptions) NoProlog() bool {
	return w&OptionNoProlog > 0
}

type Writer struct {
	writer *bufio.Writer

	Indent   string
	MaxDepth int
	WriterOptions
}

// WriteNode gives the markup of a node and all its descendants.
func WriteNode(node Node) string {
	return writeNode(node, 0, 0)
}

// WriteNodeDepth is like WriteNode but stops after depth levels of
// elements. Elements deeper are written empty unless they only hold text.
func WriteNodeDepth(node Node, depth int) string {
	return writeNode(node, depth, 0)
}

func writeNode(node Node, maxdepth int, options WriterOptions) string {
	var buf bytes.Buffer

	ws := NewWriter(&buf)
	ws.MaxDepth = maxdepth
	ws.WriterOptions = options | OptionNoProlog
	ws.writeNode(node, -1)
	ws.writer.Flush()
	return strings.TrimSpace(buf.String())
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{
		writer: bufio.NewWriter(w),
		Indent: "  ",
	}
}

func (w *Writer) Write(doc *Document) error {
	if err := w.writeProlog(); err != nil {
		return err
	}
	for _, n := range doc.Nodes {
		if err := w.writeNode(n, -1); err != nil {
			return err
		}
	}
	return w.writer.Flush()
}

func (w *Writer) writeNode(node Node, depth int) error {
	switch node := node.(type) {
	case *Document:
		return w.writeNode(node.Root(), depth)
	case *Element:
		return w.writeElement(node, depth+1)
	case *CharData:
		return w.writeCharData(node)
	case *Text:
		return w.writeText(node)
	case *Instruction:
		return w.writeInstruction(node, depth+1)
	case *Comment:
		return w.writeComment(node, depth+1)
	case *Attribute:
		return w.writeAttributes([]Attribute{*node}, 0)
	default:
		return fmt.Errorf("node: unknown type (%T)", node)
	}
}

func (w *Writer) writeElement(node *Element, depth int) error {
	if depth > 0 || !w.NoProlog() {
		w.writeNL()
	}
	prefix := w.getIndent(depth)
	w.writer.WriteString(prefix)
	w.writer.WriteRune(langle)
	w.writeName(node.QName)

	level := depth + 1
	if len(node.Attrs) == 1 {
		level = 0
	}
	if err := w.writeAttributes(node.Attrs, level); err != nil {
		return err
	}
	if node.Empty() || (w.MaxDepth > 0 && depth >= w.MaxDepth && !node.Leaf()) {
		w.writer.WriteRune(slash)
		w.writer.WriteRune(rangle)
		return nil
	}
	w.writer.WriteRune(rangle)
	for _, n := range node.Nodes {
		if err := w.writeNode(n, depth); err != nil {
			return err
		}
	}
	if !node.Leaf() {
		w.writeNL()
		w.writer.WriteString(prefix)
	}
	w.writer.WriteRune(langle)
	w.writer.WriteRune(slash)
	w.writeName(node.QName)
	w.writer.WriteRune(rangle)
	return nil
}

func (w *Writer) writeName(name QName) {
	if w.NoNamespace() {
		w.writer.WriteString(name.LocalName())
	} else {
		w.writer.WriteString(name.QualifiedName())
	}
}

func (w *Writer) writeText(node *Text) error {
	_, err := w.writer.WriteString(escapeText(node.Content))
	return err
}

func (w *Writer) writeCharData(node *CharData) error {
	w.writer.WriteString("<![CDATA[")
	w.writer.WriteString(node.Content)
	w.writer.WriteString("]]>")
	return nil
}

func (w *Writer) writeComment(node *Comment, depth int) error {
	if w.NoComment() {
		return nil
	}
	w.writeNL()
	w.writer.WriteString(w.getIndent(depth))
	w.writer.WriteString("<!--")
	w.writer.WriteString(node.Content)
	w.writer.WriteString("-->")
	return nil
}

func (w *Writer) writeInstruction(node *Instruction, depth int) error {
	if depth > 0 {
		w.writeNL()
	}
	w.writer.WriteString(w.getIndent(depth))
	w.writer.WriteRune(langle)
	w.writer.WriteRune(question)
	w.writer.WriteString(node.Name)
	if err := w.writeAttributes(node.Attrs, 0); err != nil {
		return err
	}
	w.writer.WriteRune(question)
	w.writer.WriteRune(rangle)
	return nil
}

func (w *Writer) writeProlog() error {
	if w.NoProlog() {
		return nil
	}
	prolog := NewInstruction(LocalName("xml"))
	prolog.Attrs = []Attribute{
		NewAttribute(LocalName("version"), SupportedVersion),
		NewAttribute(LocalName("encoding"), SupportedEncoding),
	}
	return w.writeInstruction(prolog, 0)
}

func (w *Writer) writeAttributes(attrs []Attribute, depth int) error {
	prefix := w.getIndent(depth)
	for i, a := range attrs {
		if w.NoNamespace() && a.declaration() {
			continue
		}
		if i == 0 || depth == 0 || w.Compact() {
			w.writer.WriteRune(' ')
		} else {
			w.writeNL()
			w.writer.WriteString(prefix)
		}
		w.writeName(a.QName)
		w.writer.WriteRune(equal)
		w.writer.WriteRune(quote)
		w.writer.WriteString(escapeText(a.Value()))
		w.writer.WriteRune(quote)
	}
	return nil
}

func (w *Writer) writeNL() {
	if w.Compact() {
		return
	}
	w.writer.WriteRune('\n')
}

func (w *Writer) getIndent(depth int) string {
	if w.Compact() || depth <= 0 {
		return ""
	}
	return strings.Repeat(w.Indent, depth)
}

var escaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeText(str string) string {
	return escaper.Replace(str)
}
