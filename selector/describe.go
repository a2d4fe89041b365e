package selector

import (
	"fmt"
	"strings"
)

// Describer writes an English description of a selector.
type Describer struct {
	text strings.Builder

	selectors  int
	descendant bool
	negations  []string
}

func (d *Describer) Text() string {
	return d.text.String()
}

func (d *Describer) OnInit() {
	d.text.Reset()
	d.selectors = 0
	d.descendant = false
	d.negations = d.negations[:0]
}

func (d *Describer) OnSelector() {
	if d.selectors > 0 {
		d.add(", combined with previous, take all ")
	} else {
		d.add("Take all ")
	}
	d.selectors++
	d.descendant = false
}

func (d *Describer) OnClose() {
	d.add(" and select them.")
}

func (d *Describer) Type(prefix NamespacePrefix, name string) {
	d.add(fmt.Sprintf("<%s> elements", prefix.Format(name)))
}

func (d *Describer) Universal(prefix NamespacePrefix) {
	switch {
	case prefix.IsEmpty():
		d.add("elements without namespace")
	case prefix.IsSpecific():
		d.add(fmt.Sprintf("elements in namespace %s", prefix.Text()))
	default:
		d.add("elements")
	}
}

func (d *Describer) Id(id string) {
	d.add(fmt.Sprintf(" with an ID of '%s'", id))
}

func (d *Describer) Class(class string) {
	d.add(fmt.Sprintf(" with a class of '%s'", class))
}

func (d *Describer) AttributeExists(prefix NamespacePrefix, name string) {
	d.add(fmt.Sprintf(" which have attribute %s defined", prefix.Format(name)))
}

func (d *Describer) AttributeExact(prefix NamespacePrefix, name, value string) {
	d.add(fmt.Sprintf(" which have attribute %s with a value of '%s'", prefix.Format(name), value))
}

func (d *Describer) AttributeIncludes(prefix NamespacePrefix, name, value string) {
	d.add(fmt.Sprintf(" which have attribute %s that includes the word '%s'", prefix.Format(name), value))
}

func (d *Describer) AttributeDashMatch(prefix NamespacePrefix, name, value string) {
	d.add(fmt.Sprintf(" which have attribute %s with a hyphen separated value matching '%s'", prefix.Format(name), value))
}

func (d *Describer) AttributePrefixMatch(prefix NamespacePrefix, name, value string) {
	d.add(fmt.Sprintf(" which have attribute %s whose value begins with '%s'", prefix.Format(name), value))
}

func (d *Describer) AttributeSuffixMatch(prefix NamespacePrefix, name, value string) {
	d.add(fmt.Sprintf(" which have attribute %s whose value ends with '%s'", prefix.Format(name), value))
}

func (d *Describer) AttributeSubstring(prefix NamespacePrefix, name, value string) {
	d.add(fmt.Sprintf(" which have attribute %s whose value contains '%s'", prefix.Format(name), value))
}

func (d *Describer) FirstChild() {
	d.add(" which are the first child of their parent")
}

func (d *Describer) LastChild() {
	d.add(" which are the last child of their parent")
}

func (d *Describer) NthChild(_, b int) {
	d.add(fmt.Sprintf(" where the element has %d sibling(s) before it", b-1))
}

func (d *Describer) OnlyChild() {
	d.add(" where the element is the only child")
}

func (d *Describer) Empty() {
	d.add(" where the element is empty")
}

func (d *Describer) NthLastChild(_, b int) {
	d.add(fmt.Sprintf(" where the element has %d sibling(s) after it", b-1))
}

func (d *Describer) Child() {
	d.add(", then take their immediate children which are ")
}

// Descendant is described differently the first time it occurs in a
// selector: later occurrences narrow the set obtained so far.
func (d *Describer) Descendant() {
	if d.descendant {
		d.add(". With those, take only their descendants which are ")
		return
	}
	d.add(", then take their descendants which are ")
	d.descendant = true
}

func (d *Describer) Adjacent() {
	d.add(", then take their immediate next sibling which are ")
}

func (d *Describer) GeneralSibling() {
	d.add(", then take their next siblings which are ")
}

func (d *Describer) BeginNegation() {
	d.negations = append(d.negations, d.text.String())
	d.text.Reset()
}

func (d *Describer) EndNegation() {
	var (
		last  = len(d.negations) - 1
		inner = strings.TrimSpace(d.text.String())
	)
	d.text.Reset()
	d.text.WriteString(d.negations[last])
	d.negations = d.negations[:last]
	d.add(fmt.Sprintf(" excluding those matching [%s]", inner))
}

func (d *Describer) add(str string) {
	d.text.WriteString(str)
}
