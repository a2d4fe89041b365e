package selector

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
)

const (
	pseudoFirstChild   = "first-child"
	pseudoLastChild    = "last-child"
	pseudoOnlyChild    = "only-child"
	pseudoEmpty        = "empty"
	pseudoNthChild     = "nth-child"
	pseudoNthLastChild = "nth-last-child"
)

// Parse parses str and drives gen with the productions found. gen is
// returned so that its result can be read directly.
func Parse[G Generator](str string, gen G) (G, error) {
	if strings.TrimSpace(str) == "" {
		return gen, fmt.Errorf("%w: %w", ErrSyntax, ErrEmpty)
	}
	g, err := ParseTokens(Tokenize(str), gen)
	return g, withExpr(err, str)
}

// ParseTokens is like Parse but reads from an already tokenized selector.
func ParseTokens[G Generator](tokens iter.Seq2[Token, error], gen G) (G, error) {
	if tokens == nil {
		return gen, fmt.Errorf("%w: tokens sequence is nil", ErrArgument)
	}
	p := NewParser(tokens)
	defer p.Close()
	return gen, p.Parse(gen)
}

type Parser struct {
	reader *Reader[Token]
	gen    Generator
	done   bool

	Tracer
}

func NewParser(tokens iter.Seq2[Token, error]) *Parser {
	return &Parser{
		reader: NewReaderErr(tokens),
		Tracer: NoopTracer(),
	}
}

// Parse consumes the whole token sequence. A Parser can only be used once.
func (p *Parser) Parse(gen Generator) error {
	if nilGenerator(gen) {
		return fmt.Errorf("%w: generator is nil", ErrArgument)
	}
	if p.done {
		return fmt.Errorf("%w: parser already used", ErrArgument)
	}
	p.done = true
	p.gen = gen
	return p.parseGroup()
}

func (p *Parser) Close() error {
	return p.reader.Close()
}

func (p *Parser) parseGroup() error {
	p.Enter("selectors_group")
	defer p.Leave("selectors_group")

	p.gen.OnInit()
	if err := p.skipBlanks(); err != nil {
		return err
	}
	tok, err := p.peek()
	if err != nil {
		return err
	}
	if tok.Type == EOF {
		return p.fail("selectors_group", fmt.Errorf("%w: %w", ErrSyntax, ErrEmpty))
	}
	for {
		p.gen.OnSelector()
		if err := p.parseSelector(); err != nil {
			return err
		}
		tok, err := p.read()
		if err != nil {
			return err
		}
		if tok.Type == EOF {
			break
		}
		if !tok.isChar(comma) {
			return p.fail("selectors_group", unexpectedToken(tok, kindName(EOF), "comma"))
		}
		if err := p.skipBlanks(); err != nil {
			return err
		}
	}
	p.gen.OnClose()
	return nil
}

func (p *Parser) parseSelector() error {
	p.Enter("selector")
	defer p.Leave("selector")

	if err := p.parseSequence(); err != nil {
		return err
	}
	for {
		ok, err := p.parseCombinator()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := p.parseSequence(); err != nil {
			return err
		}
	}
}

func (p *Parser) parseCombinator() (bool, error) {
	p.Enter("combinator")
	defer p.Leave("combinator")

	tok, err := p.peek()
	if err != nil {
		return false, err
	}
	var blank bool
	if tok.Type == Blank {
		blank = true
		if err := p.skipBlanks(); err != nil {
			return false, err
		}
		if tok, err = p.peek(); err != nil {
			return false, err
		}
	}
	switch tok.Type {
	case Plus:
		p.gen.Adjacent()
	case Greater:
		p.gen.Child()
	case Tilde:
		p.gen.GeneralSibling()
	default:
		if !blank || tok.Type == EOF || tok.isChar(comma) {
			return false, nil
		}
		p.gen.Descendant()
		return true, nil
	}
	if err := p.skip(); err != nil {
		return false, err
	}
	return true, p.skipBlanks()
}

func (p *Parser) parseSequence() error {
	p.Enter("simple_selector_sequence")
	defer p.Leave("simple_selector_sequence")

	head, err := p.parseHead()
	if err != nil {
		return err
	}
	for n := 0; ; n++ {
		tok, err := p.peek()
		if err != nil {
			return err
		}
		if !isModifier(tok) {
			if n == 0 && !head {
				return p.fail("simple_selector_sequence", unexpectedToken(tok, "type selector", "universal selector", "hash", "class", "attribute", "pseudo class", "negation"))
			}
			return nil
		}
		if !head && n == 0 {
			p.gen.Universal(NoNamespace)
		}
		if tok.Type == Not {
			err = p.parseNegation()
		} else {
			err = p.parseModifier()
		}
		if err != nil {
			return err
		}
	}
}

// parseHead parses the optional type or universal selector starting a
// sequence.
func (p *Parser) parseHead() (bool, error) {
	prefix, err := p.parseNamespacePrefix()
	if err != nil {
		return false, err
	}
	tok, err := p.peek()
	if err != nil {
		return false, err
	}
	switch {
	case tok.Type == Ident:
		if err := p.skip(); err != nil {
			return false, err
		}
		p.gen.Type(prefix, tok.Literal)
	case tok.isChar(star):
		if err := p.skip(); err != nil {
			return false, err
		}
		p.gen.Universal(prefix)
	case !prefix.IsNone():
		return false, p.fail("namespace_prefix", unexpectedToken(tok, kindName(Ident), "universal selector"))
	default:
		return false, nil
	}
	return true, nil
}

// parseNamespacePrefix looks ahead for a prefix followed by a pipe. Tokens
// read while looking ahead are put back when no prefix is found.
func (p *Parser) parseNamespacePrefix() (NamespacePrefix, error) {
	tok, err := p.read()
	if err != nil {
		return NoNamespace, err
	}
	if tok.isChar(pipe) {
		return EmptyNamespace, nil
	}
	if tok.Type != Ident && !tok.isChar(star) {
		return NoNamespace, p.unread(tok)
	}
	next, err := p.peek()
	if err != nil {
		return NoNamespace, err
	}
	if !next.isChar(pipe) {
		return NoNamespace, p.unread(tok)
	}
	if err := p.skip(); err != nil {
		return NoNamespace, err
	}
	return Prefix(tok.Literal), nil
}

func (p *Parser) parseModifier() error {
	tok, err := p.peek()
	if err != nil {
		return err
	}
	switch {
	case tok.Type == Hash:
		if err := p.skip(); err != nil {
			return err
		}
		p.gen.Id(tok.Literal)
		return nil
	case tok.isChar(dot):
		return p.parseClass()
	case tok.isChar(lsquare):
		return p.parseAttribute()
	case tok.isChar(colon):
		return p.parsePseudo()
	default:
		return p.fail("modifier", unexpectedToken(tok, "hash", "class", "attribute", "pseudo class"))
	}
}

func (p *Parser) parseClass() error {
	p.Enter("class")
	defer p.Leave("class")

	if err := p.skip(); err != nil {
		return err
	}
	tok, err := p.expect(Ident, "class")
	if err != nil {
		return err
	}
	p.gen.Class(tok.Literal)
	return nil
}

func (p *Parser) parseAttribute() error {
	p.Enter("attrib")
	defer p.Leave("attrib")

	if err := p.skip(); err != nil {
		return err
	}
	if err := p.skipBlanks(); err != nil {
		return err
	}
	prefix, err := p.parseNamespacePrefix()
	if err != nil {
		return err
	}
	name, err := p.expect(Ident, "attrib")
	if err != nil {
		return err
	}
	if err := p.skipBlanks(); err != nil {
		return err
	}
	op, err := p.read()
	if err != nil {
		return err
	}
	if op.isChar(rsquare) {
		p.gen.AttributeExists(prefix, name.Literal)
		return nil
	}
	var emit func(NamespacePrefix, string, string)
	switch {
	case op.isChar(equal):
		emit = p.gen.AttributeExact
	case op.Type == Includes:
		emit = p.gen.AttributeIncludes
	case op.Type == DashMatch:
		emit = p.gen.AttributeDashMatch
	case op.Type == PrefixMatch:
		emit = p.gen.AttributePrefixMatch
	case op.Type == SuffixMatch:
		emit = p.gen.AttributeSuffixMatch
	case op.Type == SubstringMatch:
		emit = p.gen.AttributeSubstring
	default:
		return p.fail("attrib", unexpectedToken(op, "comparison operator", "]"))
	}
	if err := p.skipBlanks(); err != nil {
		return err
	}
	value, err := p.read()
	if err != nil {
		return err
	}
	if value.Type != Ident && value.Type != String {
		return p.fail("attrib", unexpectedToken(value, kindName(Ident), kindName(String)))
	}
	if err := p.skipBlanks(); err != nil {
		return err
	}
	if tok, err := p.read(); err != nil {
		return err
	} else if !tok.isChar(rsquare) {
		return p.fail("attrib", unexpectedToken(tok, "]"))
	}
	emit(prefix, name.Literal, value.Literal)
	return nil
}

func (p *Parser) parsePseudo() error {
	p.Enter("pseudo")
	defer p.Leave("pseudo")

	if err := p.skip(); err != nil {
		return err
	}
	tok, err := p.read()
	if err != nil {
		return err
	}
	switch tok.Type {
	case Ident:
		switch tok.Literal {
		case pseudoFirstChild:
			p.gen.FirstChild()
		case pseudoLastChild:
			p.gen.LastChild()
		case pseudoOnlyChild:
			p.gen.OnlyChild()
		case pseudoEmpty:
			p.gen.Empty()
		default:
			cause := fmt.Sprintf("unknown pseudo-class %q, use either %s, %s, %s or %s", tok.Literal, pseudoFirstChild, pseudoLastChild, pseudoOnlyChild, pseudoEmpty)
			return p.fail("pseudo", syntaxError(cause, tok.Pos))
		}
		return nil
	case Function:
		return p.parseFunction(tok)
	default:
		return p.fail("pseudo", unexpectedToken(tok, kindName(Ident), kindName(Function)))
	}
}

func (p *Parser) parseFunction(fn Token) error {
	p.Enter("functional_pseudo")
	defer p.Leave("functional_pseudo")

	var emit func(int, int)
	switch fn.Literal {
	case pseudoNthChild:
		emit = p.gen.NthChild
	case pseudoNthLastChild:
		emit = p.gen.NthLastChild
	default:
		cause := fmt.Sprintf("unknown functional pseudo-class %q, use either %s or %s", fn.Literal, pseudoNthChild, pseudoNthLastChild)
		return p.fail("functional_pseudo", syntaxError(cause, fn.Pos))
	}
	if err := p.skipBlanks(); err != nil {
		return err
	}
	tok, err := p.expect(Integer, "functional_pseudo")
	if err != nil {
		return err
	}
	b, err := strconv.Atoi(tok.Literal)
	if err != nil {
		return p.fail("functional_pseudo", syntaxError(fmt.Sprintf("invalid integer %s", tok.Literal), tok.Pos))
	}
	if err := p.skipBlanks(); err != nil {
		return err
	}
	if err := p.expectChar(rparen, "functional_pseudo"); err != nil {
		return err
	}
	emit(1, b)
	return nil
}

func (p *Parser) parseNegation() error {
	p.Enter("negation")
	defer p.Leave("negation")

	tok, err := p.read()
	if err != nil {
		return err
	}
	neg, ok := p.gen.(NegationGenerator)
	if !ok {
		return p.fail("negation", fmt.Errorf("%w: negation pseudo-class at position %d", ErrUnsupported, tok.Pos))
	}
	neg.BeginNegation()
	if err := p.skipBlanks(); err != nil {
		return err
	}
	head, err := p.parseHead()
	if err != nil {
		return err
	}
	if !head {
		tok, err := p.peek()
		if err != nil {
			return err
		}
		if tok.Type == Not || !isModifier(tok) {
			return p.fail("negation", unexpectedToken(tok, "type selector", "universal selector", "hash", "class", "attribute", "pseudo class"))
		}
		if err := p.parseModifier(); err != nil {
			return err
		}
	}
	if err := p.skipBlanks(); err != nil {
		return err
	}
	if err := p.expectChar(rparen, "negation"); err != nil {
		return err
	}
	neg.EndNegation()
	return nil
}

func (p *Parser) skipBlanks() error {
	for {
		tok, err := p.peek()
		if err != nil {
			return err
		}
		if tok.Type != Blank {
			return nil
		}
		if err := p.skip(); err != nil {
			return err
		}
	}
}

func (p *Parser) expect(kind rune, rule string) (Token, error) {
	tok, err := p.read()
	if err != nil {
		return tok, err
	}
	if tok.Type != kind {
		return tok, p.fail(rule, unexpectedToken(tok, kindName(kind)))
	}
	return tok, nil
}

func (p *Parser) expectChar(char rune, rule string) error {
	tok, err := p.read()
	if err != nil {
		return err
	}
	if !tok.isChar(char) {
		return p.fail(rule, unexpectedToken(tok, string(char)))
	}
	return nil
}

func (p *Parser) fail(rule string, err error) error {
	p.Error(rule, err)
	return err
}

func (p *Parser) peek() (Token, error) {
	tok, err := p.reader.Peek()
	return tok, p.sourceError(err)
}

func (p *Parser) read() (Token, error) {
	tok, err := p.reader.Read()
	if err == nil {
		p.Consume(tok)
	}
	return tok, p.sourceError(err)
}

func (p *Parser) skip() error {
	_, err := p.read()
	return err
}

func (p *Parser) unread(tok Token) error {
	return p.reader.Unread(tok)
}

// sourceError turns the end of a token sequence without EOF token into a
// syntax error.
func (p *Parser) sourceError(err error) error {
	if errors.Is(err, io.EOF) {
		return syntaxError("unexpected end of token sequence", 0)
	}
	return err
}

func isModifier(tok Token) bool {
	return tok.Type == Hash || tok.Type == Not || tok.isChar(dot) ||
		tok.isChar(lsquare) || tok.isChar(colon)
}
