package selector

import (
	"fmt"
	"strings"
)

type Event struct {
	Name string
	Args []any
}

func (e Event) String() string {
	if len(e.Args) == 0 {
		return e.Name
	}
	var list []string
	for _, a := range e.Args {
		list = append(list, fmt.Sprint(a))
	}
	return fmt.Sprintf("%s(%s)", e.Name, strings.Join(list, ", "))
}

// Recorder keeps every event it receives, in order. OnEvent, when set, is
// called with each event as soon as it is recorded.
type Recorder struct {
	Events  []Event
	OnEvent func(Event)
}

func (r *Recorder) OnInit()     { r.record("OnInit") }
func (r *Recorder) OnSelector() { r.record("OnSelector") }
func (r *Recorder) OnClose()    { r.record("OnClose") }

func (r *Recorder) Type(prefix NamespacePrefix, name string) {
	r.record("Type", prefix, name)
}

func (r *Recorder) Universal(prefix NamespacePrefix) {
	r.record("Universal", prefix)
}

func (r *Recorder) Id(id string)       { r.record("Id", id) }
func (r *Recorder) Class(class string) { r.record("Class", class) }

func (r *Recorder) AttributeExists(prefix NamespacePrefix, name string) {
	r.record("AttributeExists", prefix, name)
}

func (r *Recorder) AttributeExact(prefix NamespacePrefix, name, value string) {
	r.record("AttributeExact", prefix, name, value)
}

func (r *Recorder) AttributeIncludes(prefix NamespacePrefix, name, value string) {
	r.record("AttributeIncludes", prefix, name, value)
}

func (r *Recorder) AttributeDashMatch(prefix NamespacePrefix, name, value string) {
	r.record("AttributeDashMatch", prefix, name, value)
}

func (r *Recorder) AttributePrefixMatch(prefix NamespacePrefix, name, value string) {
	r.record("AttributePrefixMatch", prefix, name, value)
}

func (r *Recorder) AttributeSuffixMatch(prefix NamespacePrefix, name, value string) {
	r.record("AttributeSuffixMatch", prefix, name, value)
}

func (r *Recorder) AttributeSubstring(prefix NamespacePrefix, name, value string) {
	r.record("AttributeSubstring", prefix, name, value)
}

func (r *Recorder) FirstChild()           { r.record("FirstChild") }
func (r *Recorder) LastChild()            { r.record("LastChild") }
func (r *Recorder) NthChild(a, b int)     { r.record("NthChild", a, b) }
func (r *Recorder) OnlyChild()            { r.record("OnlyChild") }
func (r *Recorder) Empty()                { r.record("Empty") }
func (r *Recorder) NthLastChild(a, b int) { r.record("NthLastChild", a, b) }

func (r *Recorder) Child()          { r.record("Child") }
func (r *Recorder) Descendant()     { r.record("Descendant") }
func (r *Recorder) Adjacent()       { r.record("Adjacent") }
func (r *Recorder) GeneralSibling() { r.record("GeneralSibling") }

func (r *Recorder) BeginNegation() { r.record("BeginNegation") }
func (r *Recorder) EndNegation()   { r.record("EndNegation") }

// Names returns the names of the recorded events.
func (r *Recorder) Names() []string {
	var list []string
	for _, e := range r.Events {
		list = append(list, e.Name)
	}
	return list
}

func (r *Recorder) record(name string, args ...any) {
	e := Event{
		Name: name,
		Args: args,
	}
	r.Events = append(r.Events, e)
	if r.OnEvent != nil {
		r.OnEvent(e)
	}
}
