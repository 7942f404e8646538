package ast_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benbjohnson/css3/ast"
	"github.com/benbjohnson/css3/token"
)

func tok(kind token.Kind, value string) *ast.Token {
	return &ast.Token{Token: token.Token{Kind: kind, Value: value}}
}

var ws = tok(token.Whitespace, " ")

// Ensure that nodes can be printed to a writer.
func TestPrinter(t *testing.T) {
	var tests = []struct {
		in ast.Node
		s  string
	}{
		// Nil-safety.
		{in: (*ast.StyleSheet)(nil), s: ``},
		{in: (*ast.AtRule)(nil), s: ``},
		{in: (*ast.QualifiedRule)(nil), s: ``},
		{in: (*ast.Declaration)(nil), s: ``},
		{in: (*ast.SimpleBlock)(nil), s: ``},
		{in: (*ast.Function)(nil), s: ``},
		{in: (*ast.Token)(nil), s: ``},
		{in: (*ast.Selector)(nil), s: ``},
		{in: (*ast.TypeSelector)(nil), s: ``},
		{in: (*ast.IDSelector)(nil), s: ``},
		{in: (*ast.ClassSelector)(nil), s: ``},
		{in: (*ast.AttributeSelector)(nil), s: ``},
		{in: (*ast.PseudoClassSelector)(nil), s: ``},
		{in: (*ast.PseudoElementSelector)(nil), s: ``},
		{in: (*ast.NestingSelector)(nil), s: ``},
		{in: (*ast.Combinator)(nil), s: ``},

		// Rules.
		{in: &ast.StyleSheet{}, s: ``},
		{
			in: &ast.StyleSheet{Rules: ast.Rules{
				&ast.AtRule{Name: "import", Prelude: ast.ComponentValues{tok(token.URL, "a.css")}},
				&ast.QualifiedRule{Selectors: ast.SelectorList{{Parts: []ast.SelectorPart{&ast.TypeSelector{Name: "a"}}}}},
			}},
			s: "@import url(a.css);\na {}",
		},
		{in: &ast.AtRule{Name: "font-face", Block: ast.Declarations{}}, s: `@font-face {}`},
		{
			in: &ast.AtRule{
				Name:    "media",
				Prelude: ast.ComponentValues{tok(token.Ident, "print")},
				Block:   ast.Rules{&ast.QualifiedRule{Selectors: ast.SelectorList{{Parts: []ast.SelectorPart{&ast.ClassSelector{Name: "nav"}}}}}},
			},
			s: `@media print { .nav {} }`,
		},
		{
			in: &ast.AtRule{Name: "unknown", Block: &ast.SimpleBlock{
				Token:  token.Token{Kind: token.LBrace},
				Values: ast.ComponentValues{tok(token.Ident, "x")},
			}},
			s: `@unknown {x}`,
		},
		{
			in: &ast.QualifiedRule{
				Selectors: ast.SelectorList{
					{Parts: []ast.SelectorPart{&ast.TypeSelector{Name: "a"}}},
					{Parts: []ast.SelectorPart{&ast.TypeSelector{Name: "b"}}},
				},
				Declarations: ast.Declarations{
					&ast.Declaration{Name: "color", Values: ast.ComponentValues{tok(token.Ident, "red")}},
					&ast.Declaration{Name: "margin", Values: ast.ComponentValues{tok(token.Number, "0")}, Important: true},
				},
			},
			s: `a, b { color: red; margin: 0 !important; }`,
		},

		// Component values.
		{
			in: ast.ComponentValues{
				&ast.Function{Name: "rgb", Values: ast.ComponentValues{tok(token.Number, "0"), tok(token.Comma, ""), ws, tok(token.Number, "1")}},
				ws,
				&ast.SimpleBlock{Token: token.Token{Kind: token.LBrack}, Values: ast.ComponentValues{tok(token.Ident, "x")}},
				&ast.SimpleBlock{Token: token.Token{Kind: token.LParen}},
			},
			s: `rgb(0, 1) [x]()`,
		},

		// Selectors.
		{
			in: &ast.Selector{Parts: []ast.SelectorPart{
				&ast.TypeSelector{Name: "a"},
				&ast.Combinator{Value: " "},
				&ast.TypeSelector{Namespace: "svg", HasNamespace: true, Name: "rect"},
				&ast.Combinator{Value: ">"},
				&ast.TypeSelector{HasNamespace: true, Name: "b"},
				&ast.Combinator{Value: "/deep/"},
				&ast.IDSelector{Name: "id"},
				&ast.ClassSelector{Name: "cls"},
			}},
			s: `a svg|rect > |b /deep/ #id.cls`,
		},
		{
			in: &ast.Selector{Parts: []ast.SelectorPart{
				&ast.Combinator{Value: "+"},
				&ast.NestingSelector{},
				&ast.PseudoClassSelector{Name: "hover"},
				&ast.PseudoElementSelector{Name: "before"},
			}},
			s: `+ &:hover::before`,
		},
		{in: &ast.AttributeSelector{Name: "href"}, s: `[href]`},
		{in: &ast.AttributeSelector{Name: "lang", Matcher: "|=", Value: "en", Modifier: "i"}, s: `[lang|="en" i]`},
		{in: &ast.AttributeSelector{Name: "title", Matcher: "=", Value: `say "hi"`}, s: `[title="say \"hi\""]`},
		{
			in: &ast.PseudoClassSelector{Name: "not", Function: true, Selectors: ast.SelectorList{
				{Parts: []ast.SelectorPart{&ast.ClassSelector{Name: "a"}}},
				{Parts: []ast.SelectorPart{&ast.ClassSelector{Name: "b"}}},
			}},
			s: `:not(.a, .b)`,
		},
		{
			in: &ast.PseudoClassSelector{Name: "nth-child", Function: true, Args: ast.ComponentValues{
				&ast.Token{Token: token.Token{Kind: token.Dimension, Value: "2n"}},
				&ast.Token{Token: token.Token{Kind: token.Number, Value: "+1"}},
			}},
			s: `:nth-child(2n+1)`,
		},
		{in: &ast.PseudoElementSelector{Name: "slotted", Function: true, Args: ast.ComponentValues{tok(token.Ident, "span")}}, s: `::slotted(span)`},
	}

	for i, tt := range tests {
		var buf bytes.Buffer
		var p ast.Printer
		require.NoError(t, p.Fprint(&buf, tt.in), "%d", i)
		assert.Equal(t, tt.s, buf.String(), "%d. %T", i, tt.in)
	}
}

// Ensure String() matches the printer output.
func TestNode_String(t *testing.T) {
	d := &ast.Declaration{Name: "color", Values: ast.ComponentValues{tok(token.Ident, "red")}}
	assert.Equal(t, `color: red`, d.String())
	assert.Equal(t, `color: red;`, ast.Declarations{d}.String())
	assert.Equal(t, ast.Sprint(d), d.String())
}

// Ensure that write errors are returned from the printer.
func TestPrinter_WriteError(t *testing.T) {
	var p ast.Printer
	err := p.Fprint(&errWriter{err: errors.New("marker")}, &ast.Declaration{Name: "color"})
	assert.EqualError(t, err, "marker")
}

type errWriter struct{ err error }

func (w *errWriter) Write([]byte) (int, error) { return 0, w.err }
