package selector

import "reflect"

// Tee forwards every event to Primary and then to Secondary.
type Tee struct {
	Primary   Generator
	Secondary Generator
}

// NewTee returns a generator feeding both primary and secondary. The
// returned generator supports negation only if both of them do. A tee with
// a nil side is rejected with ErrArgument by the parser.
func NewTee(primary, secondary Generator) Generator {
	t := Tee{
		Primary:   primary,
		Secondary: secondary,
	}
	_, ok1 := primary.(NegationGenerator)
	_, ok2 := secondary.(NegationGenerator)
	if ok1 && ok2 {
		return &negationTee{Tee: t}
	}
	return &t
}

func (t *Tee) OnInit() {
	t.Primary.OnInit()
	t.Secondary.OnInit()
}

func (t *Tee) OnSelector() {
	t.Primary.OnSelector()
	t.Secondary.OnSelector()
}

func (t *Tee) OnClose() {
	t.Primary.OnClose()
	t.Secondary.OnClose()
}

func (t *Tee) Type(prefix NamespacePrefix, name string) {
	t.Primary.Type(prefix, name)
	t.Secondary.Type(prefix, name)
}

func (t *Tee) Universal(prefix NamespacePrefix) {
	t.Primary.Universal(prefix)
	t.Secondary.Universal(prefix)
}

func (t *Tee) Id(id string) {
	t.Primary.Id(id)
	t.Secondary.Id(id)
}

func (t *Tee) Class(class string) {
	t.Primary.Class(class)
	t.Secondary.Class(class)
}

func (t *Tee) AttributeExists(prefix NamespacePrefix, name string) {
	t.Primary.AttributeExists(prefix, name)
	t.Secondary.AttributeExists(prefix, name)
}

func (t *Tee) AttributeExact(prefix NamespacePrefix, name, value string) {
	t.Primary.AttributeExact(prefix, name, value)
	t.Secondary.AttributeExact(prefix, name, value)
}

func (t *Tee) AttributeIncludes(prefix NamespacePrefix, name, value string) {
	t.Primary.AttributeIncludes(prefix, name, value)
	t.Secondary.AttributeIncludes(prefix, name, value)
}

func (t *Tee) AttributeDashMatch(prefix NamespacePrefix, name, value string) {
	t.Primary.AttributeDashMatch(prefix, name, value)
	t.Secondary.AttributeDashMatch(prefix, name, value)
}

func (t *Tee) AttributePrefixMatch(prefix NamespacePrefix, name, value string) {
	t.Primary.AttributePrefixMatch(prefix, name, value)
	t.Secondary.AttributePrefixMatch(prefix, name, value)
}

func (t *Tee) AttributeSuffixMatch(prefix NamespacePrefix, name, value string) {
	t.Primary.AttributeSuffixMatch(prefix, name, value)
	t.Secondary.AttributeSuffixMatch(prefix, name, value)
}

func (t *Tee) AttributeSubstring(prefix NamespacePrefix, name, value string) {
	t.Primary.AttributeSubstring(prefix, name, value)
	t.Secondary.AttributeSubstring(prefix, name, value)
}

func (t *Tee) FirstChild() {
	t.Primary.FirstChild()
	t.Secondary.FirstChild()
}

func (t *Tee) LastChild() {
	t.Primary.LastChild()
	t.Secondary.LastChild()
}

func (t *Tee) NthChild(a, b int) {
	t.Primary.NthChild(a, b)
	t.Secondary.NthChild(a, b)
}

func (t *Tee) OnlyChild() {
	t.Primary.OnlyChild()
	t.Secondary.OnlyChild()
}

func (t *Tee) Empty() {
	t.Primary.Empty()
	t.Secondary.Empty()
}

func (t *Tee) NthLastChild(a, b int) {
	t.Primary.NthLastChild(a, b)
	t.Secondary.NthLastChild(a, b)
}

func (t *Tee) Child() {
	t.Primary.Child()
	t.Secondary.Child()
}

func (t *Tee) Descendant() {
	t.Primary.Descendant()
	t.Secondary.Descendant()
}

func (t *Tee) Adjacent() {
	t.Primary.Adjacent()
	t.Secondary.Adjacent()
}

func (t *Tee) GeneralSibling() {
	t.Primary.GeneralSibling()
	t.Secondary.GeneralSibling()
}

type negationTee struct {
	Tee
}

func (t *negationTee) BeginNegation() {
	t.Primary.(NegationGenerator).BeginNegation()
	t.Secondary.(NegationGenerator).BeginNegation()
}

func (t *negationTee) EndNegation() {
	t.Primary.(NegationGenerator).EndNegation()
	t.Secondary.(NegationGenerator).EndNegation()
}

// nilGenerator reports whether gen, or one side of a tee, is nil or a nil
// pointer.
func nilGenerator(gen Generator) bool {
	switch g := gen.(type) {
	case nil:
		return true
	case *Tee:
		return g == nil || nilGenerator(g.Primary) || nilGenerator(g.Secondary)
	case *negationTee:
		return g == nil || nilGenerator(g.Primary) || nilGenerator(g.Secondary)
	}
	v := reflect.ValueOf(gen)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
