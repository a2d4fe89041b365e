package selector

import (
	"fmt"
	"iter"
	"strings"
)

const eof rune = -1

// Scanner breaks a selector into tokens. Positions are 1-based and count
// characters, not bytes.
type Scanner struct {
	input []rune
	curr  int
	str   strings.Builder
}

func Scan(str string) *Scanner {
	return &Scanner{
		input: []rune(str),
	}
}

// Tokenize returns a lazy sequence of the tokens of str. The sequence ends
// after the EOF token or after the first error. Each iteration starts a new
// scan of str.
func Tokenize(str string) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		scan := Scan(str)
		for {
			tok, err := scan.Scan()
			if err != nil {
				yield(tok, err)
				return
			}
			if !yield(tok, nil) || tok.Type == EOF {
				return
			}
		}
	}
}

func (s *Scanner) Scan() (Token, error) {
	var tok Token
	tok.Pos = s.curr + 1
	s.str.Reset()

	char := s.read()
	if char == eof {
		tok.Type = EOF
		return tok, nil
	}
	var err error
	switch {
	case isBlank(char):
		err = s.scanBlank(&tok)
	case char == dash || isNameStart(char):
		s.unread()
		err = s.scanIdent(&tok)
	case isDigit(char):
		s.unread()
		s.scanInteger(&tok)
	case char == hash:
		err = s.scanHash(&tok)
	case char == quote || char == apos:
		err = s.scanString(&tok, char)
	case char == star:
		tok = s.scanOperator(tok, SubstringMatch, char)
	case char == tilde:
		tok.Type = Tilde
		if s.peek() == equal {
			s.read()
			tok.Type = Includes
		}
	case char == pipe:
		tok = s.scanOperator(tok, DashMatch, char)
	case char == caret:
		err = s.scanMatch(&tok, PrefixMatch)
	case char == dollar:
		err = s.scanMatch(&tok, SuffixMatch)
	case char == colon:
		s.scanColon(&tok)
	case char == plus:
		tok.Type = Plus
	case char == rangle:
		tok.Type = Greater
	case char == dot || char == comma || char == equal || char == lsquare || char == rsquare || char == rparen:
		tok.Type = Char
		tok.Literal = string(char)
	default:
		err = syntaxError(fmt.Sprintf("invalid character %q", char), tok.Pos)
	}
	return tok, err
}

func (s *Scanner) scanBlank(tok *Token) error {
	s.str.WriteRune(s.input[s.curr-1])
	for isBlank(s.peek()) {
		s.str.WriteRune(s.read())
	}
	switch s.peek() {
	case comma:
		s.read()
		tok.Type = Char
		tok.Literal = string(comma)
	case plus:
		s.read()
		tok.Type = Plus
	case rangle:
		s.read()
		tok.Type = Greater
	case tilde:
		s.read()
		tok.Type = Tilde
		// a blank followed by ~= is still an operator
		if s.peek() == equal {
			s.read()
			tok.Type = Includes
		}
	default:
		tok.Type = Blank
		tok.Literal = s.str.String()
	}
	return nil
}

func (s *Scanner) scanIdent(tok *Token) error {
	if s.peek() == dash {
		s.str.WriteRune(s.read())
		if !isNameStart(s.peek()) {
			return syntaxError("identifier expected after vendor prefix", s.curr+1)
		}
	}
	for isNameChar(s.peek()) {
		s.str.WriteRune(s.read())
	}
	tok.Type = Ident
	tok.Literal = s.str.String()
	if s.peek() == lparen {
		s.read()
		tok.Type = Function
	}
	return nil
}

func (s *Scanner) scanInteger(tok *Token) {
	for isDigit(s.peek()) {
		s.str.WriteRune(s.read())
	}
	tok.Type = Integer
	tok.Literal = s.str.String()
}

func (s *Scanner) scanHash(tok *Token) error {
	for isNameChar(s.peek()) {
		s.str.WriteRune(s.read())
	}
	if s.str.Len() == 0 {
		return syntaxError("name expected after #", tok.Pos)
	}
	tok.Type = Hash
	tok.Literal = s.str.String()
	return nil
}

func (s *Scanner) scanString(tok *Token, quote rune) error {
	for {
		char := s.read()
		switch char {
		case eof:
			return syntaxError("unterminated string", tok.Pos)
		case quote:
			tok.Type = String
			tok.Literal = s.str.String()
			return nil
		case backslash:
			next := s.read()
			if next == eof {
				return syntaxError("unterminated string", tok.Pos)
			}
			if next != quote && next != backslash {
				return syntaxError("invalid escape sequence in string", s.curr)
			}
			s.str.WriteRune(next)
		default:
			s.str.WriteRune(char)
		}
	}
}

func (s *Scanner) scanOperator(tok Token, kind rune, char rune) Token {
	if s.peek() == equal {
		s.read()
		tok.Type = kind
		return tok
	}
	tok.Type = Char
	tok.Literal = string(char)
	return tok
}

func (s *Scanner) scanMatch(tok *Token, kind rune) error {
	if s.peek() != equal {
		return syntaxError("= expected", s.curr+1)
	}
	s.read()
	tok.Type = kind
	return nil
}

func (s *Scanner) scanColon(tok *Token) {
	const negation = "not("
	for i, c := range negation {
		if s.at(s.curr+i) != c {
			tok.Type = Char
			tok.Literal = string(colon)
			return
		}
	}
	s.curr += len(negation)
	tok.Type = Not
}

func (s *Scanner) read() rune {
	c := s.at(s.curr)
	if c != eof {
		s.curr++
	}
	return c
}

func (s *Scanner) unread() {
	if s.curr > 0 {
		s.curr--
	}
}

func (s *Scanner) peek() rune {
	return s.at(s.curr)
}

func (s *Scanner) at(ix int) rune {
	if ix < 0 || ix >= len(s.input) {
		return eof
	}
	return s.input[ix]
}
