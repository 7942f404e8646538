// Package parser implements a recursive-descent parser for CSS3 style
// sheets, rules, declarations, component values and selectors.
//
// Every production returns the node it built or an *Error located at the
// token that made it fail. Errors are final: the parser does not attempt
// to recover and resynchronize.
package parser

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/benbjohnson/css3/ast"
	"github.com/benbjohnson/css3/scanner"
	"github.com/benbjohnson/css3/token"
)

// Parser represents a CSS3 parser. It holds the token stream of a single
// source exclusively for the duration of a parse.
type Parser struct {
	t      *scanner.Tokenizer
	logger logrus.FieldLogger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger that productions are traced to at debug level.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// New returns a parser that reads tokens from t.
func New(t *scanner.Tokenizer, opts ...Option) *Parser {
	p := &Parser{t: t}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		p.logger = logger
	}
	return p
}

// ParseStyleSheet parses an input stream into a stylesheet.
func ParseStyleSheet(r io.Reader, opts ...Option) (*ast.StyleSheet, error) {
	p := newParser(r, opts)
	ss, err := p.ParseStyleSheet()
	if err = p.end(err); err != nil {
		return nil, err
	}
	return ss, nil
}

// ParseRules parses a list of rules.
func ParseRules(r io.Reader, opts ...Option) (ast.Rules, error) {
	p := newParser(r, opts)
	a, err := p.ParseRules()
	if err = p.end(err); err != nil {
		return nil, err
	}
	return a, nil
}

// ParseRule parses a qualified rule or at-rule.
func ParseRule(r io.Reader, opts ...Option) (ast.Rule, error) {
	p := newParser(r, opts)
	rule, err := p.ParseRule()
	if err = p.end(err); err != nil {
		return nil, err
	}
	return rule, nil
}

// ParseDeclarations parses a list of declarations and at-rules.
func ParseDeclarations(r io.Reader, opts ...Option) (ast.Declarations, error) {
	p := newParser(r, opts)
	a, err := p.ParseDeclarations()
	if err = p.end(err); err != nil {
		return nil, err
	}
	return a, nil
}

// ParseDeclaration parses a name/value declaration.
func ParseDeclaration(r io.Reader, opts ...Option) (*ast.Declaration, error) {
	p := newParser(r, opts)
	d, err := p.ParseDeclaration()
	if err = p.end(err); err != nil {
		return nil, err
	}
	return d, nil
}

// ParseComponentValue parses a component value.
func ParseComponentValue(r io.Reader, opts ...Option) (ast.ComponentValue, error) {
	p := newParser(r, opts)
	v, err := p.ParseComponentValue()
	if err = p.end(err); err != nil {
		return nil, err
	}
	return v, nil
}

// ParseComponentValues parses a list of component values.
func ParseComponentValues(r io.Reader, opts ...Option) (ast.ComponentValues, error) {
	p := newParser(r, opts)
	a, err := p.ParseComponentValues()
	if err = p.end(err); err != nil {
		return nil, err
	}
	return a, nil
}

// ParseSelectorList parses a comma separated list of selectors.
func ParseSelectorList(r io.Reader, opts ...Option) (ast.SelectorList, error) {
	p := newParser(r, opts)
	a, err := p.ParseSelectorList()
	if err = p.end(err); err != nil {
		return nil, err
	}
	return a, nil
}

// ParseSelector parses a single complex selector.
func ParseSelector(r io.Reader, opts ...Option) (*ast.Selector, error) {
	p := newParser(r, opts)
	sel, err := p.ParseSelector()
	if err = p.end(err); err != nil {
		return nil, err
	}
	return sel, nil
}

// newParser returns a parser over the tokens of r.
func newParser(r io.Reader, opts []Option) *Parser {
	return New(scanner.NewTokenizer(scanner.New(r)), opts...)
}

// end completes a parse of the full input. A read error takes precedence
// over a syntax error since the syntax error is likely a consequence of it.
// Otherwise only whitespace and comments may remain in the stream.
func (p *Parser) end(err error) error {
	if rerr := p.t.Err(); rerr != nil {
		return errors.Wrap(rerr, "read stylesheet")
	} else if err != nil {
		return err
	}

	p.skipWhitespaceComments()
	if tok := p.t.Consume(); tok.Kind != token.EOF {
		return expected("EOF", tok)
	}
	return nil
}

// trace logs the start of a production.
func (p *Parser) trace(production string) {
	p.logger.Debugf("%s at %s", production, p.t.Lookahead(1).Pos)
}

// skipWhitespaceComments consumes all contiguous whitespace and comment tokens.
func (p *Parser) skipWhitespaceComments() {
	for p.t.Lookahead(1).IsWhitespaceOrComment() {
		p.t.Consume()
	}
}

// trimWhitespace removes leading and trailing whitespace tokens.
func trimWhitespace(a ast.ComponentValues) ast.ComponentValues {
	for len(a) > 0 && isWhitespace(a[0]) {
		a = a[1:]
	}
	for len(a) > 0 && isWhitespace(a[len(a)-1]) {
		a = a[:len(a)-1]
	}
	if len(a) == 0 {
		return nil
	}
	return a
}

// isWhitespace returns true if v is a whitespace token.
func isWhitespace(v ast.ComponentValue) bool {
	tok, ok := v.(*ast.Token)
	return ok && tok.Kind == token.Whitespace
}
