package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/midbel/fizzler/engine"
	"github.com/midbel/fizzler/xml"
)

// Config holds the settings read from a configuration file such as:
//
//	<fizz>
//	  <engine>xml</engine>
//	  <limit>10</limit>
//	  <namespace prefix="atom">http://www.w3.org/2005/Atom</namespace>
//	</fizz>
type Config struct {
	Engine     string
	Limit      int
	Depth      int
	StrictNS   bool
	Namespaces map[string]string
}

func (c *Config) Load(file string) error {
	r, err := os.Open(file)
	if err != nil {
		return err
	}
	defer r.Close()

	p := xml.NewParser(r)
	p.OmitProlog = true
	doc, err := p.Parse()
	if err != nil {
		return err
	}
	ns, err := xml.QuerySelectorAll(doc, "fizz > namespace[prefix]")
	if err != nil {
		return err
	}
	if c.Namespaces == nil {
		c.Namespaces = make(map[string]string)
	}
	for _, n := range ns {
		el, ok := n.(*xml.Element)
		if !ok {
			continue
		}
		a, _ := el.GetAttribute("prefix")
		c.Namespaces[a.Value()] = strings.TrimSpace(el.Value())
	}
	if str, ok := configValue(doc, "fizz > engine"); ok {
		c.Engine = str
	}
	if str, ok := configValue(doc, "fizz > strict-ns"); ok {
		c.StrictNS, err = strconv.ParseBool(str)
		if err != nil {
			return fmt.Errorf("strict-ns: %w", err)
		}
	}
	if c.Limit, err = configInt(doc, "fizz > limit"); err != nil {
		return err
	}
	if c.Depth, err = configInt(doc, "fizz > depth"); err != nil {
		return err
	}
	return nil
}

// Registry gives the engines configured with c. depth limits the levels of
// elements printed for each xml match.
func (c Config) Registry(depth int) *engine.Registry {
	x := engine.Xml()
	x.StrictNS = c.StrictNS
	x.Depth = depth
	for prefix, uri := range c.Namespaces {
		x.Namespaces[prefix] = uri
	}
	reg := engine.NewRegistry()
	reg.Register(x)
	reg.Register(engine.Html())
	return reg
}

func configValue(doc *xml.Document, expr string) (string, bool) {
	n, err := xml.QuerySelector(doc, expr)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(n.Value()), true
}

func configInt(doc *xml.Document, expr string) (int, error) {
	str, ok := configValue(doc, expr)
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", expr, err)
	}
	return n, nil
}

func loadDocument(file, name string, cfg Config, depth int) (engine.Document, error) {
	if name == "" {
		name = cfg.Engine
	}
	if name == "" {
		name = engine.Detect(file)
	}
	e, err := cfg.Registry(depth).Lookup(name)
	if err != nil {
		return nil, err
	}
	r, err := openFile(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return e.Load(r)
}

func openFile(file string) (io.ReadCloser, error) {
	if file == "" || file == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	u, err := url.Parse(file)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "http", "https":
		req, err := http.NewRequest(http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("accept", "text/html, text/xml")
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, err
		}
		if res.StatusCode != http.StatusOK {
			res.Body.Close()
			return nil, fmt.Errorf("fail to retrieve remote file")
		}
		return res.Body, nil
	default:
		return os.Open(file)
	}
}
