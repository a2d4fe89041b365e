package selector

import (
	"fmt"
)

const (
	EOF rune = -(1 + iota)
	Ident
	Hash
	String
	Integer
	Function
	Blank
	Char
	Includes       // ~=
	DashMatch      // |=
	PrefixMatch    // ^=
	SuffixMatch    // $=
	SubstringMatch // *=
	Plus
	Greater
	Tilde
	Not // :not(
)

type Token struct {
	Literal string
	Type    rune
	Pos     int
}

func charToken(c rune) Token {
	return Token{
		Literal: string(c),
		Type:    Char,
	}
}

// Equal reports whether both tokens have the same kind and text. The
// position is not taken into account.
func (t Token) Equal(other Token) bool {
	return t.Type == other.Type && t.Literal == other.Literal
}

func (t Token) isChar(c rune) bool {
	return t.Type == Char && t.Literal == string(c)
}

func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "<eof>"
	case Ident:
		return fmt.Sprintf("ident(%s)", t.Literal)
	case Hash:
		return fmt.Sprintf("hash(%s)", t.Literal)
	case String:
		return fmt.Sprintf("string(%s)", t.Literal)
	case Integer:
		return fmt.Sprintf("integer(%s)", t.Literal)
	case Function:
		return fmt.Sprintf("function(%s)", t.Literal)
	case Blank:
		return "<blank>"
	case Char:
		return fmt.Sprintf("char(%s)", t.Literal)
	case Includes:
		return "<includes>"
	case DashMatch:
		return "<dash-match>"
	case PrefixMatch:
		return "<prefix-match>"
	case SuffixMatch:
		return "<suffix-match>"
	case SubstringMatch:
		return "<substring-match>"
	case Plus:
		return "<plus>"
	case Greater:
		return "<greater>"
	case Tilde:
		return "<tilde>"
	case Not:
		return "<not>"
	default:
		return "<unknown>"
	}
}

func kindName(kind rune) string {
	switch kind {
	case EOF:
		return "end of input"
	case Ident:
		return "identifier"
	case Hash:
		return "hash"
	case String:
		return "string"
	case Integer:
		return "integer"
	case Function:
		return "function"
	case Blank:
		return "whitespace"
	case Char:
		return "character"
	case Includes:
		return "includes operator"
	case DashMatch:
		return "dash-match operator"
	case PrefixMatch:
		return "prefix-match operator"
	case SuffixMatch:
		return "suffix-match operator"
	case SubstringMatch:
		return "substring operator"
	case Plus:
		return "adjacent combinator"
	case Greater:
		return "child combinator"
	case Tilde:
		return "sibling combinator"
	case Not:
		return "negation"
	default:
		return "unknown"
	}
}

const (
	dash       = '-'
	underscore = '_'
	hash       = '#'
	dot        = '.'
	comma      = ','
	plus       = '+'
	rangle     = '>'
	tilde      = '~'
	star       = '*'
	pipe       = '|'
	caret      = '^'
	dollar     = '$'
	equal      = '='
	colon      = ':'
	lsquare    = '['
	rsquare    = ']'
	lparen     = '('
	rparen     = ')'
	quote      = '"'
	apos       = '\''
	backslash  = '\\'
)

func isBlank(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isNameStart(c rune) bool {
	return isLetter(c) || c == underscore
}

func isNameChar(c rune) bool {
	return isNameStart(c) || isDigit(c) || c == dash
}
