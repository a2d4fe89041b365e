package selector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokens(t *testing.T, str string) []Token {
	t.Helper()
	var list []Token
	for tok, err := range Tokenize(str) {
		require.NoError(t, err, str)
		list = append(list, tok)
	}
	return list
}

func TestTokenize(t *testing.T) {
	ident := func(s string) Token { return Token{Type: Ident, Literal: s} }
	blank := Token{Type: Blank, Literal: " "}
	eof := Token{Type: EOF}

	tests := []struct {
		Input    string
		Expected []Token
	}{
		{
			Input:    "",
			Expected: []Token{eof},
		},
		{
			Input:    "div",
			Expected: []Token{ident("div"), eof},
		},
		{
			Input:    "-moz-box",
			Expected: []Token{ident("-moz-box"), eof},
		},
		{
			Input:    "div p",
			Expected: []Token{ident("div"), blank, ident("p"), eof},
		},
		{
			Input:    "div\t\n p",
			Expected: []Token{ident("div"), {Type: Blank, Literal: "\t\n "}, ident("p"), eof},
		},
		{
			Input:    "div > p",
			Expected: []Token{ident("div"), {Type: Greater}, blank, ident("p"), eof},
		},
		{
			Input:    "a+b",
			Expected: []Token{ident("a"), {Type: Plus}, ident("b"), eof},
		},
		{
			Input:    "a ~ b",
			Expected: []Token{ident("a"), {Type: Tilde}, blank, ident("b"), eof},
		},
		{
			Input:    "a , b",
			Expected: []Token{ident("a"), charToken(','), blank, ident("b"), eof},
		},
		{
			Input:    "#foo.bar",
			Expected: []Token{{Type: Hash, Literal: "foo"}, charToken('.'), ident("bar"), eof},
		},
		{
			Input: "[lang|=en]",
			Expected: []Token{
				charToken('['), ident("lang"), {Type: DashMatch}, ident("en"), charToken(']'), eof,
			},
		},
		{
			Input: "[a~='x y']",
			Expected: []Token{
				charToken('['), ident("a"), {Type: Includes}, {Type: String, Literal: "x y"}, charToken(']'), eof,
			},
		},
		{
			Input: "[a^=b][a$=b][a*=b]",
			Expected: []Token{
				charToken('['), ident("a"), {Type: PrefixMatch}, ident("b"), charToken(']'),
				charToken('['), ident("a"), {Type: SuffixMatch}, ident("b"), charToken(']'),
				charToken('['), ident("a"), {Type: SubstringMatch}, ident("b"), charToken(']'),
				eof,
			},
		},
		{
			Input:    "*|*",
			Expected: []Token{charToken('*'), charToken('|'), charToken('*'), eof},
		},
		{
			Input:    ":not(p)",
			Expected: []Token{{Type: Not}, ident("p"), charToken(')'), eof},
		},
		{
			Input:    ":nth-child(2)",
			Expected: []Token{charToken(':'), {Type: Function, Literal: "nth-child"}, {Type: Integer, Literal: "2"}, charToken(')'), eof},
		},
		{
			Input:    ":nota",
			Expected: []Token{charToken(':'), ident("nota"), eof},
		},
		{
			Input:    `'it\'s'`,
			Expected: []Token{{Type: String, Literal: "it's"}, eof},
		},
		{
			Input:    `"a\\b"`,
			Expected: []Token{{Type: String, Literal: `a\b`}, eof},
		},
		{
			Input:    `"it's"`,
			Expected: []Token{{Type: String, Literal: "it's"}, eof},
		},
	}
	for _, tt := range tests {
		t.Run(tt.Input, func(t *testing.T) {
			got := tokens(t, tt.Input)
			require.Len(t, got, len(tt.Expected))
			for i := range got {
				assert.True(t, tt.Expected[i].Equal(got[i]), "token %d: want %s, got %s", i, tt.Expected[i], got[i])
			}
		})
	}
}

func TestTokenizePosition(t *testing.T) {
	got := tokens(t, "div > p")
	var pos []int
	for _, tok := range got {
		pos = append(pos, tok.Pos)
	}
	assert.Equal(t, []int{1, 4, 6, 7, 8}, pos)
}

func TestTokenizeRestartable(t *testing.T) {
	seq := Tokenize("a > b")
	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	assert.Equal(t, first, second)
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		Input string
		Pos   int
	}{
		{Input: "-1", Pos: 2},
		{Input: "--a", Pos: 2},
		{Input: "#", Pos: 1},
		{Input: "div#", Pos: 4},
		{Input: "'abc", Pos: 1},
		{Input: `'a\`, Pos: 1},
		{Input: `'a\nb'`, Pos: 4},
		{Input: "div!", Pos: 4},
		{Input: "a^b", Pos: 3},
		{Input: "a$", Pos: 3},
		{Input: "p{", Pos: 2},
	}
	for _, tt := range tests {
		t.Run(tt.Input, func(t *testing.T) {
			var err error
			for _, e := range Tokenize(tt.Input) {
				if e != nil {
					err = e
				}
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSyntax))

			var se *SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.Pos, se.Pos)
		})
	}
}

func FuzzTokenize(f *testing.F) {
	for _, s := range []string{"div > p", "*|a[b~='c']", ":not(#x)", "a, b + c ~ d"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, str string) {
		var eofs int
		for tok, err := range Tokenize(str) {
			if err != nil {
				return
			}
			if tok.Type == EOF {
				eofs++
			}
		}
		if eofs != 1 {
			t.Errorf("%q: expected exactly one EOF token, got %d", str, eofs)
		}
	})
}
