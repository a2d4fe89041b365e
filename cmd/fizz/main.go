package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/midbel/cli"
)

var errFail = errors.New("fail")

var (
	summary = "fizz runs css selectors over xml and html documents"
	help    = ""
)

func main() {
	var (
		set  = cli.NewFlagSet("fizz")
		root = prepare()
	)
	root.SetSummary(summary)
	root.SetHelp(help)
	if err := set.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			root.Help()
			os.Exit(2)
		}
	}
	err := root.Execute(set.Args())
	if err != nil {
		if s, ok := err.(cli.SuggestionError); ok && len(s.Others) > 0 {
			fmt.Fprintln(os.Stderr, "similar command(s)")
			for _, n := range s.Others {
				fmt.Fprintln(os.Stderr, "-", n)
			}
		}
		if !errors.Is(err, errFail) {
			fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		}
		os.Exit(1)
	}
}

func prepare() *cli.CommandTrie {
	root := cli.New()
	root.Register([]string{"select"}, &cli.Command{Handler: &selectCmd})
	root.Register([]string{"query"}, &cli.Command{Handler: &selectCmd})
	root.Register([]string{"exec"}, &cli.Command{Handler: &selectCmd})
	root.Register([]string{"explain"}, &cli.Command{Handler: &explainCmd})
	root.Register([]string{"tokens"}, &cli.Command{Handler: &tokensCmd})
	root.Register([]string{"debug"}, &cli.Command{Handler: &debugCmd})
	root.Register([]string{"explore"}, &cli.Command{Handler: &exploreCmd})

	return root
}
