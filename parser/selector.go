package parser

import (
	"fmt"
	"strings"

	"github.com/benbjohnson/css3/ast"
	"github.com/benbjohnson/css3/token"
)

// selectorPseudoClasses are the functional pseudo-classes whose argument
// is a selector list.
var selectorPseudoClasses = map[string]bool{
	"not":         true,
	"is":          true,
	"where":       true,
	"matches":     true,
	"has":         true,
	"-webkit-any": true,
	"-moz-any":    true,
}

// ParseSelectorList parses a comma separated list of selectors.
func (p *Parser) ParseSelectorList() (ast.SelectorList, error) {
	p.trace("ParseSelectorList")
	return p.parseSelectorList(false)
}

// ParseSelector parses a single complex selector.
func (p *Parser) ParseSelector() (*ast.Selector, error) {
	p.trace("ParseSelector")
	p.skipWhitespaceComments()
	return p.parseSelector(false)
}

// ParseCombinator parses the combinator between two compound selectors
// along with any whitespace and comments that follow it.
func (p *Parser) ParseCombinator() (*ast.Combinator, error) {
	return p.parseCombinator()
}

// parseSelectorList parses selectors separated by commas. If relative is
// true then each selector may begin with a combinator.
func (p *Parser) parseSelectorList(relative bool) (ast.SelectorList, error) {
	var a ast.SelectorList
	for {
		p.skipWhitespaceComments()
		sel, err := p.parseSelector(relative)
		if err != nil {
			return nil, err
		}
		a = append(a, sel)

		p.skipWhitespaceComments()
		if p.t.Lookahead(1).Kind != token.Comma {
			return a, nil
		}
		p.t.Consume()
	}
}

// parseSelector parses compound selectors joined by combinators.
//
// Whitespace between two compound selectors is the descendant combinator
// unless an explicit combinator follows it. Whitespace before the end of
// the selector is left in the stream.
func (p *Parser) parseSelector(relative bool) (*ast.Selector, error) {
	p.trace("parseSelector")
	sel := &ast.Selector{Pos: p.t.Lookahead(1).Pos}

	// A relative selector may start with a combinator.
	if relative && isCombinatorDelim(p.t.Lookahead(1)) {
		c, err := p.parseCombinator()
		if err != nil {
			return nil, err
		}
		sel.Parts = append(sel.Parts, c)
	}

	for {
		if err := p.parseCompoundSelector(sel); err != nil {
			return nil, err
		}

		// Look past whitespace & comments to determine what follows.
		i := 1
		for p.t.Lookahead(i).IsWhitespaceOrComment() {
			i++
		}

		switch next := p.t.Lookahead(i); {
		case isSelectorEnd(next):
			return sel, nil

		case isCombinatorDelim(next):
			p.skipWhitespaceComments()

		default:
			// Only whitespace can separate compounds without a combinator.
			for p.t.Lookahead(1).Kind == token.Comment {
				p.t.Consume()
			}
			if p.t.Lookahead(1).Kind != token.Whitespace {
				return nil, unexpected(next)
			}
		}

		c, err := p.parseCombinator()
		if err != nil {
			return nil, err
		}
		sel.Parts = append(sel.Parts, c)
	}
}

// parseCombinator consumes a combinator: whitespace, "+", ">", "~" or
// "/deep/". Whitespace and comments after the combinator are discarded.
func (p *Parser) parseCombinator() (*ast.Combinator, error) {
	p.trace("parseCombinator")

	var value string
	tok := p.t.Consume()
	switch tok.Kind {
	case token.Whitespace:
		value = " "

	case token.Delim:
		switch tok.Value {
		case "+", ">", "~":
			value = tok.Value
		case "/":
			// The "/deep/" combinator spans three tokens.
			tn1, tn2 := p.t.Lookahead(1), p.t.Lookahead(2)
			if !tn1.IsIdent("deep") || !tn2.IsDelim('/') {
				return nil, unexpected(tn1)
			}
			p.t.Consume()
			p.t.Consume()
			value = "/deep/"
		default:
			return nil, unexpected(tok)
		}

	case token.Illegal, token.EOF, token.Comment, token.Ident, token.Function,
		token.AtKeyword, token.Hash, token.String, token.BadString, token.URL,
		token.BadURL, token.Number, token.Percentage, token.Dimension,
		token.UnicodeRange, token.IncludeMatch, token.DashMatch,
		token.PrefixMatch, token.SuffixMatch, token.SubstringMatch,
		token.Column, token.CDO, token.CDC, token.Colon, token.Semicolon,
		token.Comma, token.LBrack, token.RBrack, token.LParen, token.RParen,
		token.LBrace, token.RBrace:
		return nil, unexpected(tok)

	default:
		panic(fmt.Sprintf("parser: unhandled token kind: %s", tok.Kind))
	}

	p.skipWhitespaceComments()
	return &ast.Combinator{Value: value, Pos: tok.Pos}, nil
}

// parseCompoundSelector appends the simple selectors of one compound
// selector to sel. At least one simple selector is required.
func (p *Parser) parseCompoundSelector(sel *ast.Selector) error {
	n := len(sel.Parts)

	// An optional type or universal selector comes first.
	if tok := p.t.Lookahead(1); tok.Kind == token.Ident || tok.IsDelim('*') || tok.IsDelim('|') {
		s, err := p.parseTypeSelector()
		if err != nil {
			return err
		}
		sel.Parts = append(sel.Parts, s)
	}

	for {
		tok := p.t.Lookahead(1)
		switch {
		case tok.Kind == token.Hash:
			if tok.Type != "id" {
				return unexpected(tok)
			}
			p.t.Consume()
			sel.Parts = append(sel.Parts, &ast.IDSelector{Name: tok.Value, Pos: tok.Pos})

		case tok.IsDelim('.'):
			p.t.Consume()
			name := p.t.Consume()
			if name.Kind != token.Ident {
				return expected("ident", name)
			}
			sel.Parts = append(sel.Parts, &ast.ClassSelector{Name: name.Value, Pos: tok.Pos})

		case tok.IsDelim('&'):
			p.t.Consume()
			sel.Parts = append(sel.Parts, &ast.NestingSelector{Pos: tok.Pos})

		case tok.Kind == token.LBrack:
			s, err := p.parseAttributeSelector()
			if err != nil {
				return err
			}
			sel.Parts = append(sel.Parts, s)

		case tok.Kind == token.Colon:
			s, err := p.parsePseudoSelector()
			if err != nil {
				return err
			}
			sel.Parts = append(sel.Parts, s)

		default:
			if len(sel.Parts) == n {
				return unexpected(tok)
			}
			return nil
		}
	}
}

// parseTypeSelector parses "name", "*", "ns|name", "*|name" or "|name".
func (p *Parser) parseTypeSelector() (*ast.TypeSelector, error) {
	tok := p.t.Consume()
	s := &ast.TypeSelector{Pos: tok.Pos}

	// An empty namespace prefix.
	if tok.IsDelim('|') {
		name := p.t.Consume()
		if name.Kind != token.Ident && !name.IsDelim('*') {
			return nil, expected("ident", name)
		}
		s.HasNamespace, s.Name = true, name.Value
		return s, nil
	}
	s.Name = tok.Value

	// A namespace prefix is followed by a pipe and the element name.
	if tn1, tn2 := p.t.Lookahead(1), p.t.Lookahead(2); tn1.IsDelim('|') && (tn2.Kind == token.Ident || tn2.IsDelim('*')) {
		p.t.Consume()
		p.t.Consume()
		s.Namespace, s.HasNamespace, s.Name = s.Name, true, tn2.Value
	}
	return s, nil
}

// parseAttributeSelector parses "[name]" or "[name op value modifier]".
func (p *Parser) parseAttributeSelector() (*ast.AttributeSelector, error) {
	open := p.t.Consume()
	s := &ast.AttributeSelector{Pos: open.Pos}

	p.skipWhitespaceComments()
	name := p.t.Consume()
	if name.Kind != token.Ident {
		return nil, expected("ident", name)
	}
	s.Name = name.Value

	// Attribute names may carry a namespace prefix.
	if tn1, tn2 := p.t.Lookahead(1), p.t.Lookahead(2); tn1.IsDelim('|') && tn2.Kind == token.Ident {
		p.t.Consume()
		p.t.Consume()
		s.Name += "|" + tn2.Value
	}

	p.skipWhitespaceComments()
	switch tok := p.t.Consume(); tok.Kind {
	case token.RBrack:
		return s, nil
	case token.IncludeMatch, token.DashMatch, token.PrefixMatch, token.SuffixMatch, token.SubstringMatch:
		s.Matcher = tok.String()
	case token.Delim:
		if tok.Value != "=" {
			return nil, unexpected(tok)
		}
		s.Matcher = "="
	default:
		return nil, unexpected(tok)
	}

	p.skipWhitespaceComments()
	value := p.t.Consume()
	if value.Kind != token.Ident && value.Kind != token.String {
		return nil, expected("ident or string", value)
	}
	s.Value = value.Value

	p.skipWhitespaceComments()
	if tok := p.t.Lookahead(1); tok.Kind == token.Ident {
		switch modifier := strings.ToLower(tok.Value); modifier {
		case "i", "s":
			p.t.Consume()
			s.Modifier = modifier
		default:
			return nil, unexpected(tok)
		}
		p.skipWhitespaceComments()
	}

	if tok := p.t.Consume(); tok.Kind != token.RBrack {
		return nil, expected("]", tok)
	}
	return s, nil
}

// parsePseudoSelector parses a pseudo-class or a pseudo-element.
func (p *Parser) parsePseudoSelector() (ast.SelectorPart, error) {
	colon := p.t.Consume()

	// A second colon introduces a pseudo-element.
	element := p.t.Lookahead(1).Kind == token.Colon
	if element {
		p.t.Consume()
	}

	tok := p.t.Consume()
	switch tok.Kind {
	case token.Ident:
		if element {
			return &ast.PseudoElementSelector{Name: tok.Value, Pos: colon.Pos}, nil
		}
		return &ast.PseudoClassSelector{Name: tok.Value, Pos: colon.Pos}, nil

	case token.Function:
		if element {
			f := p.consumeFunction(tok)
			return &ast.PseudoElementSelector{Name: tok.Value, Function: true, Args: trimWhitespace(f.Values), Pos: colon.Pos}, nil
		}

		name := strings.ToLower(tok.Value)
		if !selectorPseudoClasses[name] {
			f := p.consumeFunction(tok)
			return &ast.PseudoClassSelector{Name: tok.Value, Function: true, Args: trimWhitespace(f.Values), Pos: colon.Pos}, nil
		}

		// Only :has() accepts relative selectors.
		selectors, err := p.parseSelectorList(name == "has")
		if err != nil {
			return nil, err
		}
		p.skipWhitespaceComments()
		if end := p.t.Consume(); end.Kind != token.RParen {
			return nil, expected(")", end)
		}
		return &ast.PseudoClassSelector{Name: tok.Value, Function: true, Selectors: selectors, Pos: colon.Pos}, nil

	default:
		return nil, expected("ident", tok)
	}
}

// isCombinatorDelim returns true if tok is an explicit combinator.
func isCombinatorDelim(tok token.Token) bool {
	return tok.IsDelim('+') || tok.IsDelim('>') || tok.IsDelim('~') || tok.IsDelim('/')
}

// isSelectorEnd returns true if tok terminates a complex selector.
func isSelectorEnd(tok token.Token) bool {
	switch tok.Kind {
	case token.Comma, token.LBrace, token.RBrace, token.RParen, token.Semicolon, token.EOF:
		return true
	}
	return false
}
