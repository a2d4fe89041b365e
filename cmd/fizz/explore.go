package main

import (
	"flag"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/midbel/fizzler/engine"
	"github.com/midbel/fizzler/selector"
)

var exploreCmd ExploreCmd

type ExploreCmd struct {
	Engine string
	Max    int
	Config
}

func (e ExploreCmd) Run(args []string) error {
	set := flag.NewFlagSet("explore", flag.ContinueOnError)
	set.StringVar(&e.Engine, "engine", "", "engine used to load the document (xml, html)")
	set.IntVar(&e.Max, "max", 5, "number of matches displayed")
	set.Func("config", "context configuration", func(file string) error {
		return e.Config.Load(file)
	})
	if err := set.Parse(args); err != nil {
		return err
	}
	doc, err := loadDocument(set.Arg(0), e.Engine, e.Config, 1)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(newExplorer(doc, e.Max)).Run()
	return err
}

type explorer struct {
	input   textinput.Model
	doc     engine.Document
	max     int
	matches []engine.Match
	desc    string
	err     error
}

func newExplorer(doc engine.Document, limit int) explorer {
	in := textinput.New()
	in.Prompt = promptStyle.Render("> ")
	in.Placeholder = "selector"
	in.Focus()
	return explorer{
		input: in,
		doc:   doc,
		max:   limit,
	}
}

func (m explorer) Init() tea.Cmd {
	return nil
}

func (m explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
	}
	var (
		prev = m.input.Value()
		cmd  tea.Cmd
	)
	m.input, cmd = m.input.Update(msg)
	if curr := m.input.Value(); curr != prev {
		m.refresh(curr)
	}
	return m, cmd
}

func (m *explorer) refresh(expr string) {
	m.matches, m.desc, m.err = nil, "", nil
	if strings.TrimSpace(expr) == "" {
		return
	}
	if m.desc, m.err = selector.Describe(expr); m.err != nil {
		return
	}
	m.matches, m.err = m.doc.Select(expr)
}

func (m explorer) View() tea.View {
	var str strings.Builder
	str.WriteString(m.input.View())
	str.WriteString("\n\n")
	switch {
	case m.err != nil:
		str.WriteString(errorStyle.Render(m.err.Error()))
	case m.desc != "":
		str.WriteString(m.desc)
		str.WriteString("\n")
		str.WriteString(infoStyle.Render(fmt.Sprintf("%d nodes matching", len(m.matches))))
		for i, n := range m.matches {
			if i >= m.max {
				break
			}
			str.WriteString("\n")
			str.WriteString(boxStyle.Render(nameStyle.Render(n.Name) + "\n" + n.Markup))
		}
	}
	str.WriteString("\n\n")
	str.WriteString(infoStyle.Render("esc to quit"))
	return tea.NewView(str.String())
}
