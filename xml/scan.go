package xml

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"unicode"
	"unicode/utf8"
)

const (
	EOF rune = -(1 + iota)
	Name
	Namespace // name:
	Attr      // name=
	Literal
	Cdata
	CommentTag   // <!--
	OpenTag      // <
	EndTag       // >
	CloseTag     // </
	EmptyElemTag // />
	ProcInstTag  // <?, ?>
	Invalid
)

type Position struct {
	Line   int
	Column int
}

type Token struct {
	Literal string
	Type    rune
	Position
}

func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "<eof>"
	case CommentTag:
		return fmt.Sprintf("comment(%s)", t.Literal)
	case Name:
		return fmt.Sprintf("name(%s)", t.Literal)
	case Namespace:
		return fmt.Sprintf("namespace(%s)", t.Literal)
	case Attr:
		return fmt.Sprintf("attr(%s)", t.Literal)
	case Cdata:
		return fmt.Sprintf("chardata(%s)", t.Literal)
	case Literal:
		return fmt.Sprintf("literal(%s)", t.Literal)
	case OpenTag:
		return "<open-elem-tag>"
	case EndTag:
		return "<end-elem-tag>"
	case CloseTag:
		return "<close-elem-tag>"
	case EmptyElemTag:
		return "<empty-elem-tag>"
	case ProcInstTag:
		return "<processing-instruction>"
	case Invalid:
		return "<invalid>"
	default:
		return "<unknown>"
	}
}

const (
	langle     = '<'
	rangle     = '>'
	lsquare    = '['
	rsquare    = ']'
	colon      = ':'
	quote      = '"'
	apos       = '\''
	slash      = '/'
	question   = '?'
	bang       = '!'
	equal      = '='
	ampersand  = '&'
	semicolon  = ';'
	dash       = '-'
	underscore = '_'
	dot        = '.'
)

type state int8

const (
	literalState state = 1 << iota
)

// Scanner splits an XML document into tokens. Character data between tags
// is returned as a single Literal token with entities already decoded.
type Scanner struct {
	input io.RuneScanner
	char  rune
	str   bytes.Buffer

	Position
	state
}

func Scan(r io.Reader) *Scanner {
	var (
		rs    = bufio.NewReader(r)
		pk, _ = rs.Peek(3)
	)
	if bytes.Equal(pk, []byte{0xEF, 0xBB, 0xBF}) {
		rs.Discard(3)
	}

	scan := &Scanner{
		input: rs,
	}
	scan.Line = 1
	scan.read()
	return scan
}

func (s *Scanner) Scan() Token {
	var tok Token
	tok.Position = s.Position
	if s.done() {
		tok.Type = EOF
		return tok
	}
	s.str.Reset()
	if s.state == literalState {
		s.state = 0
		if s.char != langle {
			s.scanLiteral(&tok)
			return tok
		}
	}
	switch {
	case s.char == langle:
		s.scanOpeningTag(&tok)
	case s.char == rangle:
		s.scanEndTag(&tok)
	case s.char == slash || s.char == question:
		s.scanClosingTag(&tok)
	case s.char == quote || s.char == apos:
		s.scanValue(&tok)
	case unicode.IsLetter(s.char) || s.char == underscore:
		s.scanName(&tok)
	default:
		s.scanLiteral(&tok)
	}
	return tok
}

func (s *Scanner) scanOpeningTag(tok *Token) {
	s.read()
	tok.Type = OpenTag
	switch s.char {
	case bang:
		s.read()
		switch s.char {
		case lsquare:
			s.scanCharData(tok)
		case dash:
			s.scanComment(tok)
		default:
			tok.Type = Invalid
		}
		return
	case question:
		tok.Type = ProcInstTag
		s.read()
	case slash:
		tok.Type = CloseTag
		s.read()
	}
	s.skipBlank()
}

func (s *Scanner) scanComment(tok *Token) {
	s.read()
	if s.char != dash {
		tok.Type = Invalid
		return
	}
	s.read()
	tok.Type = Invalid
	for !s.done() {
		if s.char == dash && s.peek() == dash {
			s.read()
			s.read()
			if s.char == rangle {
				s.read()
				tok.Type = CommentTag
				s.state = literalState
				break
			}
			s.str.WriteString("--")
			continue
		}
		s.write()
		s.read()
	}
	tok.Literal = s.str.String()
}

func (s *Scanner) scanCharData(tok *Token) {
	s.read()
	for !s.done() && s.char != lsquare {
		s.write()
		s.read()
	}
	s.read()
	if s.str.String() != "CDATA" {
		tok.Type = Invalid
		return
	}
	s.str.Reset()
	tok.Type = Invalid
	for !s.done() {
		if s.char == rsquare && s.peek() == rsquare {
			s.read()
			s.read()
			if s.char == rangle {
				s.read()
				tok.Type = Cdata
				s.state = literalState
				break
			}
			s.str.WriteString("]]")
			continue
		}
		s.write()
		s.read()
	}
	tok.Literal = s.str.String()
}

func (s *Scanner) scanEndTag(tok *Token) {
	tok.Type = EndTag
	s.state = literalState
	s.read()
}

func (s *Scanner) scanClosingTag(tok *Token) {
	tok.Type = Invalid
	if s.char == question {
		tok.Type = ProcInstTag
	} else if s.char == slash {
		tok.Type = EmptyElemTag
	}
	s.read()
	if s.char != rangle {
		tok.Type = Invalid
		return
	}
	s.read()
	s.state = literalState
}

func (s *Scanner) scanValue(tok *Token) {
	delim := s.char
	s.read()
	for !s.done() && s.char != delim {
		if s.char == ampersand {
			if !s.scanEntity() {
				break
			}
			continue
		}
		s.write()
		s.read()
	}
	tok.Type = Literal
	tok.Literal = s.str.String()
	if s.char != delim {
		tok.Type = Invalid
		return
	}
	s.read()
	s.skipBlank()
}

// scanEntity decodes the entity starting at the current character and
// writes it to the token buffer.
func (s *Scanner) scanEntity() bool {
	var str bytes.Buffer
	str.WriteRune(ampersand)
	s.read()
	for !s.done() && s.char != semicolon && !unicode.IsSpace(s.char) {
		str.WriteRune(s.char)
		s.read()
	}
	if s.char != semicolon {
		return false
	}
	str.WriteRune(semicolon)
	s.read()
	s.str.WriteString(html.UnescapeString(str.String()))
	return true
}

func (s *Scanner) scanLiteral(tok *Token) {
	tok.Type = Literal
	for !s.done() && s.char != langle {
		if s.char == ampersand {
			if !s.scanEntity() {
				tok.Type = Invalid
				break
			}
			continue
		}
		s.write()
		s.read()
	}
	tok.Literal = s.str.String()
}

func (s *Scanner) scanName(tok *Token) {
	accept := func() bool {
		return unicode.IsLetter(s.char) || unicode.IsDigit(s.char) ||
			s.char == dash || s.char == underscore || s.char == dot
	}
	for !s.done() && accept() {
		s.write()
		s.read()
	}
	tok.Type = Name
	tok.Literal = s.str.String()
	s.skipBlank()
	switch s.char {
	case equal:
		tok.Type = Attr
		s.read()
		s.skipBlank()
	case colon:
		tok.Type = Namespace
		s.read()
	}
}

func (s *Scanner) write() {
	s.str.WriteRune(s.char)
}

func (s *Scanner) read() {
	if s.char == '\n' {
		s.Column = 0
		s.Line++
	}
	s.Column++
	char, _, err := s.input.ReadRune()
	if errors.Is(err, io.EOF) {
		char = utf8.RuneError
	}
	s.char = char
}

func (s *Scanner) peek() rune {
	defer s.input.UnreadRune()
	r, _, _ := s.input.ReadRune()
	return r
}

func (s *Scanner) done() bool {
	return s.char == utf8.RuneError
}

func (s *Scanner) skipBlank() {
	for !s.done() && unicode.IsSpace(s.char) {
		s.read()
	}
}
