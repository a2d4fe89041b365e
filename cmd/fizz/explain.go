package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/midbel/fizzler/selector"
)

var (
	explainCmd ExplainCmd
	tokensCmd  TokensCmd
	debugCmd   DebugCmd
)

type ExplainCmd struct{}

func (_ ExplainCmd) Run(args []string) error {
	set := flag.NewFlagSet("explain", flag.ContinueOnError)
	if err := set.Parse(args); err != nil {
		return err
	}
	str, err := selector.Describe(set.Arg(0))
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, str)
	return nil
}

type TokensCmd struct {
	Position bool
}

func (t TokensCmd) Run(args []string) error {
	set := flag.NewFlagSet("tokens", flag.ContinueOnError)
	set.BoolVar(&t.Position, "position", false, "print position of each token")
	if err := set.Parse(args); err != nil {
		return err
	}
	for tok, err := range selector.Tokenize(set.Arg(0)) {
		if err != nil {
			return err
		}
		if t.Position {
			fmt.Fprintf(os.Stdout, "%3d: ", tok.Pos)
		}
		fmt.Fprintln(os.Stdout, tok)
	}
	return nil
}

type DebugCmd struct {
	Trace string
}

func (d DebugCmd) Run(args []string) error {
	set := flag.NewFlagSet("debug", flag.ContinueOnError)
	set.StringVar(&d.Trace, "trace", "stderr", "where to trace grammar rules (stderr, stdout, none)")
	if err := set.Parse(args); err != nil {
		return err
	}
	var (
		rec  selector.Recorder
		desc selector.Describer
		tee  = selector.NewTee(&rec, &desc)
		p    = selector.NewParser(selector.Tokenize(set.Arg(0)))
	)
	defer p.Close()
	switch d.Trace {
	case "stderr":
		p.Tracer = selector.TraceStderr()
	case "stdout":
		p.Tracer = selector.TraceStdout()
	case "none", "":
	default:
		return fmt.Errorf("%s: unknown trace output", d.Trace)
	}
	rec.OnEvent = func(e selector.Event) {
		fmt.Fprintln(os.Stdout, eventStyle.Render(e.String()))
	}
	if err := p.Parse(tee); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout)
	fmt.Fprintln(os.Stdout, titleStyle.Render(fmt.Sprintf("%d events", len(rec.Events))))
	fmt.Fprintln(os.Stdout, desc.Text())
	return nil
}
