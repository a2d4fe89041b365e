// Package engine gives a common interface to run selectors over the
// document types supported by fizzler.
package engine

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/midbel/fizzler/environ"
)

var ErrEngine = errors.New("unknown engine")

// Match is a node selected in a document.
type Match struct {
	Name   string
	Text   string
	Markup string
}

type Document interface {
	Select(string) ([]Match, error)
}

type Engine interface {
	Name() string
	Load(io.Reader) (Document, error)
}

type Registry struct {
	engines environ.Environ[Engine]
}

func NewRegistry() *Registry {
	return &Registry{
		engines: environ.Empty[Engine](),
	}
}

// Builtin gives a registry holding the xml and html engines.
func Builtin() *Registry {
	r := NewRegistry()
	r.Register(Xml())
	r.Register(Html())
	return r
}

func (r *Registry) Register(e Engine) {
	r.engines.Define(e.Name(), e)
}

func (r *Registry) Lookup(name string) (Engine, error) {
	e, err := r.engines.Resolve(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEngine, name)
	}
	return e, nil
}

func (r *Registry) Names() []string {
	return r.engines.Names()
}

// Detect gives the name of the engine to use for file based on its
// extension. Files without a known extension are handled as xml.
func Detect(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".html", ".htm":
		return htmlEngine
	default:
		return xmlEngine
	}
}
