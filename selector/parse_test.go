package selector

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func events(r *Recorder) []string {
	var list []string
	for _, e := range r.Events {
		list = append(list, e.String())
	}
	return list
}

func TestParse(t *testing.T) {
	tests := []struct {
		Input    string
		Expected []string
	}{
		{
			Input:    "div",
			Expected: []string{"Type(<none>, div)"},
		},
		{
			Input:    "  div  ",
			Expected: []string{"Type(<none>, div)"},
		},
		{
			Input:    "*",
			Expected: []string{"Universal(<none>)"},
		},
		{
			Input:    "#main",
			Expected: []string{"Universal(<none>)", "Id(main)"},
		},
		{
			Input:    "p.a.b",
			Expected: []string{"Type(<none>, p)", "Class(a)", "Class(b)"},
		},
		{
			Input:    "div > p",
			Expected: []string{"Type(<none>, div)", "Child", "Type(<none>, p)"},
		},
		{
			Input:    "div>p",
			Expected: []string{"Type(<none>, div)", "Child", "Type(<none>, p)"},
		},
		{
			Input:    "div p  span",
			Expected: []string{"Type(<none>, div)", "Descendant", "Type(<none>, p)", "Descendant", "Type(<none>, span)"},
		},
		{
			Input:    "h1 + p",
			Expected: []string{"Type(<none>, h1)", "Adjacent", "Type(<none>, p)"},
		},
		{
			Input:    "h1 ~ p",
			Expected: []string{"Type(<none>, h1)", "GeneralSibling", "Type(<none>, p)"},
		},
		{
			Input:    "a, b",
			Expected: []string{"Type(<none>, a)", "OnSelector", "Type(<none>, b)"},
		},
		{
			Input:    "a ,b , c",
			Expected: []string{"Type(<none>, a)", "OnSelector", "Type(<none>, b)", "OnSelector", "Type(<none>, c)"},
		},
		{
			Input:    "ns|a",
			Expected: []string{"Type(ns|, a)"},
		},
		{
			Input:    "|a",
			Expected: []string{"Type(|, a)"},
		},
		{
			Input:    "*|*",
			Expected: []string{"Universal(*|)"},
		},
		{
			Input:    "ns|*",
			Expected: []string{"Universal(ns|)"},
		},
		{
			Input:    "[lang]",
			Expected: []string{"Universal(<none>)", "AttributeExists(<none>, lang)"},
		},
		{
			Input:    "[ns|lang]",
			Expected: []string{"Universal(<none>)", "AttributeExists(ns|, lang)"},
		},
		{
			Input:    "a[href='x']",
			Expected: []string{"Type(<none>, a)", "AttributeExact(<none>, href, x)"},
		},
		{
			Input:    "a[ href = x ]",
			Expected: []string{"Type(<none>, a)", "AttributeExact(<none>, href, x)"},
		},
		{
			Input:    "[rel ~= copyright]",
			Expected: []string{"Universal(<none>)", "AttributeIncludes(<none>, rel, copyright)"},
		},
		{
			Input:    "[lang|=en]",
			Expected: []string{"Universal(<none>)", "AttributeDashMatch(<none>, lang, en)"},
		},
		{
			Input:    "[a^=b]",
			Expected: []string{"Universal(<none>)", "AttributePrefixMatch(<none>, a, b)"},
		},
		{
			Input:    "[a$=b]",
			Expected: []string{"Universal(<none>)", "AttributeSuffixMatch(<none>, a, b)"},
		},
		{
			Input:    `[a*="b c"]`,
			Expected: []string{"Universal(<none>)", "AttributeSubstring(<none>, a, b c)"},
		},
		{
			Input:    "li:first-child:last-child",
			Expected: []string{"Type(<none>, li)", "FirstChild", "LastChild"},
		},
		{
			Input:    ":only-child:empty",
			Expected: []string{"Universal(<none>)", "OnlyChild", "Empty"},
		},
		{
			Input:    "li:nth-child(2)",
			Expected: []string{"Type(<none>, li)", "NthChild(1, 2)"},
		},
		{
			Input:    "li:nth-last-child( 3 )",
			Expected: []string{"Type(<none>, li)", "NthLastChild(1, 3)"},
		},
		{
			Input:    "p:not(.a)",
			Expected: []string{"Type(<none>, p)", "BeginNegation", "Class(a)", "EndNegation"},
		},
		{
			Input:    ":not(p)",
			Expected: []string{"Universal(<none>)", "BeginNegation", "Type(<none>, p)", "EndNegation"},
		},
		{
			Input:    ":not( ns|* )",
			Expected: []string{"Universal(<none>)", "BeginNegation", "Universal(ns|)", "EndNegation"},
		},
		{
			Input:    "a:not([href]) > b",
			Expected: []string{"Type(<none>, a)", "BeginNegation", "AttributeExists(<none>, href)", "EndNegation", "Child", "Type(<none>, b)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.Input, func(t *testing.T) {
			rec, err := Parse(tt.Input, new(Recorder))
			require.NoError(t, err)

			want := append([]string{"OnInit", "OnSelector"}, tt.Expected...)
			want = append(want, "OnClose")
			assert.Equal(t, want, events(rec))
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		Input string
		Err   error
	}{
		{Input: "", Err: ErrEmpty},
		{Input: "   ", Err: ErrEmpty},
		{Input: "a,", Err: ErrSyntax},
		{Input: ",a", Err: ErrSyntax},
		{Input: "a,,b", Err: ErrSyntax},
		{Input: "a >", Err: ErrSyntax},
		{Input: "> a", Err: ErrSyntax},
		{Input: "a > > b", Err: ErrSyntax},
		{Input: "a)", Err: ErrSyntax},
		{Input: "ns|", Err: ErrSyntax},
		{Input: ".", Err: ErrSyntax},
		{Input: ".1", Err: ErrSyntax},
		{Input: "[a", Err: ErrSyntax},
		{Input: "[a=]", Err: ErrSyntax},
		{Input: "[a=b", Err: ErrSyntax},
		{Input: "[a=b c]", Err: ErrSyntax},
		{Input: "[=b]", Err: ErrSyntax},
		{Input: ":hover", Err: ErrSyntax},
		{Input: ":lang(fr)", Err: ErrSyntax},
		{Input: ":nth-child(odd)", Err: ErrSyntax},
		{Input: ":nth-child(2n+1)", Err: ErrSyntax},
		{Input: ":nth-child(2", Err: ErrSyntax},
		{Input: ":not()", Err: ErrSyntax},
		{Input: ":not(a b)", Err: ErrSyntax},
		{Input: ":not(a.b)", Err: ErrSyntax},
		{Input: ":not(.foo.bar)", Err: ErrSyntax},
		{Input: ":not(p.foo)", Err: ErrSyntax},
		{Input: ":not(:not(a))", Err: ErrSyntax},
		{Input: ":not(a", Err: ErrSyntax},
		{Input: "div!", Err: ErrSyntax},
		{Input: "'div'", Err: ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.Input, func(t *testing.T) {
			_, err := Parse(tt.Input, new(Recorder))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.Err)
			assert.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("div > :hover", new(Recorder))
	require.Error(t, err)

	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "div > :hover", se.Expr)
	assert.Equal(t, 8, se.Pos)
	assert.Contains(t, err.Error(), "hover")
}

func TestParseNegationUnsupported(t *testing.T) {
	type plain struct {
		Generator
	}
	_, err := Parse("p:not(.a)", plain{new(Recorder)})
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = Parse("p:not(.a)", NewTee(new(Recorder), plain{new(Recorder)}))
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = Parse("p.a", plain{new(Recorder)})
	assert.NoError(t, err)
}

func TestParseTokens(t *testing.T) {
	_, err := ParseTokens(nil, new(Recorder))
	assert.ErrorIs(t, err, ErrArgument)

	truncated := func(yield func(Token, error) bool) {
		yield(Token{Type: Ident, Literal: "div"}, nil)
	}
	_, err = ParseTokens(truncated, new(Recorder))
	assert.ErrorIs(t, err, ErrSyntax)

	rec, err := ParseTokens(Tokenize("a b"), new(Recorder))
	require.NoError(t, err)
	assert.Equal(t, []string{"OnInit", "OnSelector", "Type", "Descendant", "Type", "OnClose"}, rec.Names())
}

func TestParserReuse(t *testing.T) {
	p := NewParser(Tokenize("a"))
	defer p.Close()

	require.NoError(t, p.Parse(new(Recorder)))
	assert.ErrorIs(t, p.Parse(new(Recorder)), ErrArgument)

	q := NewParser(Tokenize("a"))
	defer q.Close()
	assert.ErrorIs(t, q.Parse(nil), ErrArgument)
}

func TestParseNilGenerator(t *testing.T) {
	_, err := Parse("div", (*Describer)(nil))
	assert.ErrorIs(t, err, ErrArgument)

	_, err = Parse("div", (*Builder[*testNode])(nil))
	assert.ErrorIs(t, err, ErrArgument)

	_, err = ParseTokens(Tokenize("div"), (*Recorder)(nil))
	assert.ErrorIs(t, err, ErrArgument)

	var tee *Tee
	_, err = Parse("div", tee)
	assert.ErrorIs(t, err, ErrArgument)

	for _, gen := range []Generator{
		NewTee(nil, new(Describer)),
		NewTee(new(Recorder), (*Describer)(nil)),
		NewTee(NewTee(new(Recorder), nil), new(Recorder)),
	} {
		_, err = Parse("div", gen)
		assert.ErrorIs(t, err, ErrArgument)
	}

	_, err = Parse("div", NewTee(new(Recorder), new(Describer)))
	assert.NoError(t, err)
}

func TestParserTracer(t *testing.T) {
	var buf bytes.Buffer

	p := NewParser(Tokenize("a > b"))
	p.Tracer = TraceWriter(&buf)
	require.NoError(t, p.Parse(new(Recorder)))
	p.Close()
	assert.Contains(t, buf.String(), "rule=selectors_group")
	assert.Contains(t, buf.String(), "rule=combinator")
	assert.Contains(t, buf.String(), "msg=\"token consumed\"")
	assert.Contains(t, buf.String(), "token=ident(b) pos=5")

	buf.Reset()
	p = NewParser(Tokenize("a > :hover"))
	p.Tracer = TraceWriter(&buf)
	err := p.Parse(new(Recorder))
	p.Close()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSyntax))
	assert.Contains(t, buf.String(), "production failed")
	assert.Contains(t, buf.String(), "rule=pseudo")
	var failed []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "production failed") {
			failed = append(failed, line)
		}
	}
	require.NotEmpty(t, failed)
	assert.Contains(t, failed[0], "pos=6")
}

func FuzzParse(f *testing.F) {
	for _, s := range []string{"div > p", "a, b", "ns|a[x|=y]:not(.z)", ":nth-child(3) ~ *"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, str string) {
		rec, err := Parse(str, new(Recorder))
		if err != nil {
			if !errors.Is(err, ErrSyntax) && !errors.Is(err, ErrUnsupported) {
				t.Fatalf("%q: unexpected error kind: %v", str, err)
			}
			return
		}
		names := rec.Names()
		if len(names) < 3 || names[0] != "OnInit" || names[len(names)-1] != "OnClose" {
			t.Fatalf("%q: unbalanced events %v", str, names)
		}
	})
}
