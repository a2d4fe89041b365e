package selector

// NamespacePrefix is the namespace part of a type, universal or attribute
// selector. The zero value means that no prefix was given.
type NamespacePrefix struct {
	text    string
	defined bool
}

var (
	NoNamespace    = NamespacePrefix{}
	AnyNamespace   = Prefix("*")
	EmptyNamespace = Prefix("")
)

func Prefix(text string) NamespacePrefix {
	return NamespacePrefix{
		text:    text,
		defined: true,
	}
}

func (n NamespacePrefix) Text() string {
	return n.text
}

func (n NamespacePrefix) IsNone() bool {
	return !n.defined
}

func (n NamespacePrefix) IsAny() bool {
	return n.defined && n.text == "*"
}

func (n NamespacePrefix) IsEmpty() bool {
	return n.defined && n.text == ""
}

func (n NamespacePrefix) IsSpecific() bool {
	return n.defined && n.text != "" && n.text != "*"
}

// Format writes name qualified by the prefix the way it appears in a
// selector.
func (n NamespacePrefix) Format(name string) string {
	if n.IsNone() {
		return name
	}
	return n.text + "|" + name
}

func (n NamespacePrefix) String() string {
	if n.IsNone() {
		return "<none>"
	}
	return n.text + "|"
}

// Generator receives the productions recognized by the parser, in the order
// they appear in the selector.
type Generator interface {
	OnInit()
	OnSelector()
	OnClose()

	Type(NamespacePrefix, string)
	Universal(NamespacePrefix)
	Id(string)
	Class(string)

	AttributeExists(NamespacePrefix, string)
	AttributeExact(NamespacePrefix, string, string)
	AttributeIncludes(NamespacePrefix, string, string)
	AttributeDashMatch(NamespacePrefix, string, string)
	AttributePrefixMatch(NamespacePrefix, string, string)
	AttributeSuffixMatch(NamespacePrefix, string, string)
	AttributeSubstring(NamespacePrefix, string, string)

	FirstChild()
	LastChild()
	NthChild(int, int)
	OnlyChild()
	Empty()
	NthLastChild(int, int)

	Child()
	Descendant()
	Adjacent()
	GeneralSibling()
}

// NegationGenerator is implemented by generators able to handle :not().
// Every event received between BeginNegation and EndNegation describes the
// negated component.
type NegationGenerator interface {
	Generator
	BeginNegation()
	EndNegation()
}
