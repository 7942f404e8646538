package css

import (
	"strings"

	"github.com/benbjohnson/css3/ast"
	"github.com/benbjohnson/css3/parser"
	"github.com/benbjohnson/css3/scanner"
	"github.com/benbjohnson/css3/token"
)

// Parse parses src into a stylesheet.
func Parse(src string, opts ...parser.Option) (*ast.StyleSheet, error) {
	return parser.ParseStyleSheet(strings.NewReader(src), opts...)
}

// ParseSelectors parses src as a comma separated list of selectors.
func ParseSelectors(src string, opts ...parser.Option) (ast.SelectorList, error) {
	return parser.ParseSelectorList(strings.NewReader(src), opts...)
}

// ParseDeclarations parses src as the contents of a style attribute.
func ParseDeclarations(src string, opts ...parser.Option) (ast.Declarations, error) {
	return parser.ParseDeclarations(strings.NewReader(src), opts...)
}

// Format parses src as a stylesheet and returns it in canonical form.
func Format(src string) (string, error) {
	ss, err := Parse(src)
	if err != nil {
		return "", err
	}
	return ss.String(), nil
}

// Tokenize returns every token in src, including whitespace and comments.
// The last token is always EOF.
func Tokenize(src string) []token.Token {
	s := scanner.New(strings.NewReader(src))

	var a []token.Token
	for {
		tok := s.Scan()
		a = append(a, tok)
		if tok.Kind == token.EOF {
			return a
		}
	}
}
