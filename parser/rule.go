package parser

import (
	"strings"

	"github.com/benbjohnson/css3/ast"
	"github.com/benbjohnson/css3/token"
)

// ruleAtRules are at-rules whose block contains a list of rules.
var ruleAtRules = map[string]bool{
	"media":          true,
	"supports":       true,
	"document":       true,
	"-moz-document":  true,
	"layer":          true,
	"container":      true,
	"scope":          true,
	"starting-style": true,
}

// declarationAtRules are at-rules whose block contains a list of declarations.
var declarationAtRules = map[string]bool{
	"font-face":           true,
	"page":                true,
	"counter-style":       true,
	"property":            true,
	"viewport":            true,
	"font-palette-values": true,
	"font-feature-values": true,
}

// ParseStyleSheet parses the token stream into a stylesheet.
func (p *Parser) ParseStyleSheet() (*ast.StyleSheet, error) {
	p.trace("ParseStyleSheet")
	rules, err := p.consumeRules(true, false)
	if err != nil {
		return nil, err
	}
	return &ast.StyleSheet{Rules: rules}, nil
}

// ParseRules parses a list of rules.
func (p *Parser) ParseRules() (ast.Rules, error) {
	p.trace("ParseRules")
	return p.consumeRules(false, false)
}

// ParseRule parses a qualified rule or at-rule.
func (p *Parser) ParseRule() (ast.Rule, error) {
	p.trace("ParseRule")
	p.skipWhitespaceComments()

	switch tok := p.t.Lookahead(1); tok.Kind {
	case token.EOF:
		return nil, unexpected(tok)
	case token.AtKeyword:
		return p.consumeAtRule(false, false)
	default:
		return p.consumeQualifiedRule(false)
	}
}

// ParseDeclarations parses a list of declarations and at-rules.
func (p *Parser) ParseDeclarations() (ast.Declarations, error) {
	p.trace("ParseDeclarations")
	return p.consumeDeclarations(false)
}

// ParseDeclaration parses a name/value declaration.
func (p *Parser) ParseDeclaration() (*ast.Declaration, error) {
	p.trace("ParseDeclaration")
	p.skipWhitespaceComments()

	// If the next token is not an ident then return an error.
	if tok := p.t.Lookahead(1); tok.Kind != token.Ident {
		return nil, expected("ident", tok)
	}
	return p.consumeDeclaration()
}

// ParseComponentValue parses a component value.
func (p *Parser) ParseComponentValue() (ast.ComponentValue, error) {
	p.trace("ParseComponentValue")
	p.skipWhitespaceComments()

	// If the next token is EOF then return an error.
	if tok := p.t.Lookahead(1); tok.Kind == token.EOF {
		return nil, unexpected(tok)
	}
	return p.consumeComponentValue(), nil
}

// ParseComponentValues parses a list of component values up to EOF.
func (p *Parser) ParseComponentValues() (ast.ComponentValues, error) {
	p.trace("ParseComponentValues")
	var a ast.ComponentValues
	for {
		switch p.t.Lookahead(1).Kind {
		case token.EOF:
			return trimWhitespace(a), nil
		case token.Comment:
			p.t.Consume()
		default:
			a = append(a, p.consumeComponentValue())
		}
	}
}

// consumeRules consumes a list of rules from a token stream. (§5.4.1)
//
// At the top level, CDO and CDC tokens are ignored. A nested list ends at
// the right brace that closes its block.
func (p *Parser) consumeRules(toplevel, nested bool) (ast.Rules, error) {
	var a ast.Rules
	for {
		tok := p.t.Consume()
		switch tok.Kind {
		case token.Whitespace, token.Comment:
			// nop
		case token.EOF:
			return a, nil
		case token.AtKeyword:
			p.t.Reconsume()
			r, err := p.consumeAtRule(false, nested)
			if err != nil {
				return nil, err
			}
			a = append(a, r)
		default:
			if tok.Kind == token.RBrace && nested {
				return a, nil
			} else if (tok.Kind == token.CDO || tok.Kind == token.CDC) && toplevel {
				continue
			}
			p.t.Reconsume()
			r, err := p.consumeQualifiedRule(false)
			if err != nil {
				return nil, err
			}
			a = append(a, r)
		}
	}
}

// consumeAtRule consumes a single at-rule. (§5.4.2)
//
// An at-rule nested in a style rule holds declarations where it would
// otherwise hold rules. An at-rule inside a block ends at the "}" that
// closes the block, which is left for the caller.
func (p *Parser) consumeAtRule(nested, inBlock bool) (*ast.AtRule, error) {
	p.trace("consumeAtRule")

	// Set the name to the value of the at-keyword token.
	tok := p.t.Consume()
	r := &ast.AtRule{Name: tok.Value, Pos: tok.Pos}

	// Consume the prelude up to a semicolon, EOF or the start of a block.
	for {
		switch tok := p.t.Lookahead(1); tok.Kind {
		case token.Semicolon:
			p.t.Consume()
			r.Prelude = trimWhitespace(r.Prelude)
			return r, nil
		case token.RBrace:
			if !inBlock {
				r.Prelude = append(r.Prelude, p.consumeComponentValue())
				continue
			}
			r.Prelude = trimWhitespace(r.Prelude)
			return r, nil
		case token.EOF:
			r.Prelude = trimWhitespace(r.Prelude)
			return r, nil
		case token.LBrace:
			r.Prelude = trimWhitespace(r.Prelude)
			block, err := p.consumeAtRuleBlock(strings.ToLower(r.Name), nested)
			if err != nil {
				return nil, err
			}
			r.Block = block
			return r, nil
		case token.Comment:
			p.t.Consume()
		default:
			r.Prelude = append(r.Prelude, p.consumeComponentValue())
		}
	}
}

// consumeAtRuleBlock consumes the {-block of an at-rule named name.
// The block is parsed according to what the at-rule is known to contain.
func (p *Parser) consumeAtRuleBlock(name string, nested bool) (ast.Node, error) {
	if ruleAtRules[name] && !nested {
		p.t.Consume()
		rules, err := p.consumeRules(false, true)
		if err != nil {
			return nil, err
		}
		return rules, nil
	} else if ruleAtRules[name] || declarationAtRules[name] {
		p.t.Consume()
		a, err := p.consumeDeclarations(true)
		if err != nil {
			return nil, err
		}
		return a, nil
	}
	return p.consumeSimpleBlock(p.t.Consume()), nil
}

// consumeQualifiedRule consumes a single style rule: a selector list
// followed by a block of declarations. (§5.4.3)
func (p *Parser) consumeQualifiedRule(nested bool) (*ast.QualifiedRule, error) {
	p.trace("consumeQualifiedRule")
	r := &ast.QualifiedRule{Pos: p.t.Lookahead(1).Pos}

	selectors, err := p.parseSelectorList(nested)
	if err != nil {
		return nil, err
	}
	r.Selectors = selectors

	p.skipWhitespaceComments()
	if tok := p.t.Consume(); tok.Kind != token.LBrace {
		return nil, expected("{", tok)
	}

	a, err := p.consumeDeclarations(true)
	if err != nil {
		return nil, err
	}
	r.Declarations = a
	return r, nil
}

// consumeDeclarations consumes a list of declarations. (§5.4.4)
//
// Nested style rules are accepted alongside declarations and at-rules. An
// identifier followed by a colon always starts a declaration.
func (p *Parser) consumeDeclarations(nested bool) (ast.Declarations, error) {
	var a ast.Declarations
	for {
		tok := p.t.Consume()
		switch tok.Kind {
		case token.Whitespace, token.Comment, token.Semicolon:
			// nop
		case token.EOF:
			return a, nil
		case token.RBrace:
			if !nested {
				return nil, unexpected(tok)
			}
			return a, nil
		case token.AtKeyword:
			p.t.Reconsume()
			r, err := p.consumeAtRule(true, true)
			if err != nil {
				return nil, err
			}
			a = append(a, r)
		case token.Ident:
			p.t.Reconsume()
			if !p.peekDeclaration() {
				next := p.peekPastIdent()
				r, err := p.consumeQualifiedRule(true)
				if err != nil && isValueStart(next) {
					// An ident followed by a value is reported as a
					// declaration missing its colon.
					return nil, expected("colon", next)
				} else if err != nil {
					return nil, err
				}
				a = append(a, r)
				continue
			}
			d, err := p.consumeDeclaration()
			if err != nil {
				return nil, err
			}
			a = append(a, d)
		case token.Delim, token.Hash, token.Colon, token.LBrack:
			p.t.Reconsume()
			r, err := p.consumeQualifiedRule(true)
			if err != nil {
				return nil, err
			}
			a = append(a, r)
		default:
			// Any other token is a syntax error.
			return nil, unexpected(tok)
		}
	}
}

// peekDeclaration returns true if the next ident is followed by a colon,
// ignoring whitespace and comments in between.
func (p *Parser) peekDeclaration() bool {
	return p.peekPastIdent().Kind == token.Colon
}

// peekPastIdent returns the first token after the next ident that is not
// whitespace or a comment.
func (p *Parser) peekPastIdent() token.Token {
	i := 2
	for p.t.Lookahead(i).IsWhitespaceOrComment() {
		i++
	}
	return p.t.Lookahead(i)
}

// isValueStart returns true for tokens that usually begin a declaration
// value rather than continue a selector.
func isValueStart(tok token.Token) bool {
	switch tok.Kind {
	case token.Ident, token.Number, token.Percentage, token.Dimension, token.String, token.Function, token.URL:
		return true
	}
	return false
}

// consumeDeclaration consumes a single declaration. (§5.4.5)
//
// The value runs up to, but not including, the next semicolon, right
// brace or EOF.
func (p *Parser) consumeDeclaration() (*ast.Declaration, error) {
	p.trace("consumeDeclaration")

	// The first token must be an ident.
	ident := p.t.Consume()
	d := &ast.Declaration{Name: ident.Value, Pos: ident.Pos}

	// Skip over whitespace.
	p.skipWhitespaceComments()

	// The next token must be a colon.
	if tok := p.t.Consume(); tok.Kind != token.Colon {
		return nil, expected("colon", tok)
	}

	// Consume the declaration value.
	for {
		switch p.t.Lookahead(1).Kind {
		case token.Semicolon, token.RBrace, token.EOF:
			// Check last two non-whitespace tokens for "!important".
			d.Values, d.Important = cleanImportantFlag(trimWhitespace(d.Values))
			return d, nil
		case token.Comment:
			p.t.Consume()
		default:
			d.Values = append(d.Values, p.consumeComponentValue())
		}
	}
}

// cleanImportantFlag checks if the last two non-whitespace tokens are a
// "!" delim and a case-insensitive "important" ident. If so, it removes
// them and returns the "important" flag set to true.
func cleanImportantFlag(values ast.ComponentValues) (ast.ComponentValues, bool) {
	n := len(values)
	if n == 0 {
		return values, false
	}

	last, ok := values[n-1].(*ast.Token)
	if !ok || last.Kind != token.Ident || !strings.EqualFold(last.Value, "important") {
		return values, false
	}

	i := n - 2
	for i >= 0 && isWhitespace(values[i]) {
		i--
	}
	if i < 0 {
		return values, false
	}
	if bang, ok := values[i].(*ast.Token); !ok || !bang.IsDelim('!') {
		return values, false
	}
	return trimWhitespace(values[:i]), true
}

// consumeComponentValue consumes a single component value. (§5.4.6)
func (p *Parser) consumeComponentValue() ast.ComponentValue {
	tok := p.t.Consume()
	switch tok.Kind {
	case token.LBrace, token.LBrack, token.LParen:
		return p.consumeSimpleBlock(tok)
	case token.Function:
		return p.consumeFunction(tok)
	default:
		return &ast.Token{Token: tok}
	}
}

// consumeSimpleBlock consumes a simple block opened by tok. (§5.4.7)
// An EOF closes the block.
func (p *Parser) consumeSimpleBlock(tok token.Token) *ast.SimpleBlock {
	b := &ast.SimpleBlock{Token: tok}

	var ending token.Kind
	switch tok.Kind {
	case token.LBrace:
		ending = token.RBrace
	case token.LBrack:
		ending = token.RBrack
	default:
		ending = token.RParen
	}

	for {
		switch next := p.t.Lookahead(1); next.Kind {
		case token.EOF:
			return b
		case ending:
			p.t.Consume()
			return b
		case token.Comment:
			p.t.Consume()
		default:
			b.Values = append(b.Values, p.consumeComponentValue())
		}
	}
}

// consumeFunction consumes a function whose function token is tok. (§5.4.8)
// An EOF closes the function.
func (p *Parser) consumeFunction(tok token.Token) *ast.Function {
	f := &ast.Function{Name: tok.Value, Pos: tok.Pos}
	for {
		switch p.t.Lookahead(1).Kind {
		case token.EOF:
			return f
		case token.RParen:
			p.t.Consume()
			return f
		case token.Comment:
			p.t.Consume()
		default:
			f.Values = append(f.Values, p.consumeComponentValue())
		}
	}
}
