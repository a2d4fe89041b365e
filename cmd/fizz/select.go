package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/midbel/fizzler/engine"
)

var selectCmd SelectCmd

type SelectCmd struct {
	Engine string
	Limit  int
	Depth  int
	Quiet  bool
	Text   bool
	Config
}

const queryInfo = "query took %s - %d nodes matching %q"

func (q SelectCmd) Run(args []string) error {
	set := flag.NewFlagSet("select", flag.ContinueOnError)
	set.StringVar(&q.Engine, "engine", "", "engine used to load the document (xml, html) - default is based on file extension")
	set.IntVar(&q.Limit, "limit", 0, "limit number of results returned by query")
	set.IntVar(&q.Depth, "print-depth", 0, "print depth")
	set.BoolVar(&q.Quiet, "quiet", false, "suppress output - default is to print the result nodes")
	set.BoolVar(&q.Text, "text", false, "print only value of node")
	set.BoolVar(&q.StrictNS, "strict-ns", false, "strict namespace checking")
	set.Func("config", "context configuration", func(file string) error {
		return q.Config.Load(file)
	})
	if err := set.Parse(args); err != nil {
		return err
	}
	if q.Limit == 0 {
		q.Limit = q.Config.Limit
	}
	if q.Depth == 0 {
		q.Depth = q.Config.Depth
	}
	doc, err := loadDocument(set.Arg(1), q.Engine, q.Config, q.Depth)
	if err != nil {
		return err
	}
	now := time.Now()
	results, err := doc.Select(set.Arg(0))
	if err != nil {
		return err
	}
	elapsed := time.Since(now)
	if q.Limit > 0 && len(results) > q.Limit {
		results = results[:q.Limit]
	}
	if !q.Quiet {
		if q.Text {
			printValues(results)
		} else {
			printNodes(results)
		}
	}
	fmt.Fprintln(os.Stdout, infoStyle.Render(fmt.Sprintf(queryInfo, elapsed, len(results), set.Arg(0))))
	if len(results) == 0 {
		return errFail
	}
	return nil
}

func printValues(results []engine.Match) {
	for _, m := range results {
		fmt.Fprintln(os.Stdout, m.Text)
	}
}

func printNodes(results []engine.Match) {
	for _, m := range results {
		fmt.Fprintln(os.Stdout, nameStyle.Render(m.Name))
		fmt.Fprintln(os.Stdout, m.Markup)
	}
}
