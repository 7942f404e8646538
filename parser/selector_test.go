package parser_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benbjohnson/css3/ast"
	"github.com/benbjohnson/css3/parser"
	"github.com/benbjohnson/css3/scanner"
	"github.com/benbjohnson/css3/token"
)

// ignorePos compares nodes without their source positions.
var ignorePos = cmpopts.IgnoreTypes(token.Pos{})

// Ensure that selector lists can be parsed into an AST.
func TestParseSelectorList(t *testing.T) {
	var tests = []ParserTest{
		{in: `a`, out: `a`},
		{in: `a b`, out: `a b`},
		{in: "a \t\n b", out: `a b`},
		{in: `a > b`, out: `a > b`},
		{in: `a>b`, out: `a > b`},
		{in: `a+b`, out: `a + b`},
		{in: `a ~ b`, out: `a ~ b`},
		{in: `a /deep/ b`, out: `a /deep/ b`},
		{in: `a/deep/b`, out: `a /deep/ b`},
		{in: `a /* c */ b`, out: `a b`},
		{in: `a/* c */ b`, out: `a b`},
		{in: `a > /* c */ b`, out: `a > b`},
		{in: `*`, out: `*`},
		{in: `*.a`, out: `*.a`},
		{in: `ns|a`, out: `ns|a`},
		{in: `*|a`, out: `*|a`},
		{in: `|a`, out: `|a`},
		{in: `#id.cls[href]`, out: `#id.cls[href]`},
		{in: `[ href ]`, out: `[href]`},
		{in: `[href^="http"]`, out: `[href^="http"]`},
		{in: `[lang|=en]`, out: `[lang|="en"]`},
		{in: `[type=text i]`, out: `[type="text" i]`},
		{in: `[data-x='y' S]`, out: `[data-x="y" s]`},
		{in: `[xlink|href]`, out: `[xlink|href]`},
		{in: `a:hover`, out: `a:hover`},
		{in: `a::before`, out: `a::before`},
		{in: `::-webkit-scrollbar`, out: `::-webkit-scrollbar`},
		{in: `li:nth-child(2n+1)`, out: `li:nth-child(2n+1)`},
		{in: `li:nth-child( 2n + 1 )`, out: `li:nth-child(2n + 1)`},
		{in: `:lang(en)`, out: `:lang(en)`},
		{in: `:not(.a, .b)`, out: `:not(.a, .b)`},
		{in: `:is( a  b )`, out: `:is(a b)`},
		{in: `:has(> img)`, out: `:has(> img)`},
		{in: `::slotted(span)`, out: `::slotted(span)`},
		{in: `&.active`, out: `&.active`},
		{in: `a, b , c`, out: `a, b, c`},

		{in: ``, err: `unexpected EOF at 1:1`},
		{in: `a,`, err: `unexpected EOF at 1:3`},
		{in: `a >`, err: `unexpected EOF at 1:4`},
		{in: `a / b`, err: `unexpected whitespace at 1:4`},
		{in: `a /deep b`, err: `unexpected ident "deep" at 1:4`},
		{in: `a /DEEP/ b`, err: `unexpected ident "DEEP" at 1:4`},
		{in: `a/**/b`, err: `unexpected ident "b" at 1:6`},
		{in: `#123`, err: `unexpected hash "#123" at 1:1`},
		{in: `.5`, err: `unexpected number ".5" at 1:1`},
		{in: `a.`, err: `expected ident, got EOF at 1:3`},
		{in: `a:`, err: `expected ident, got EOF at 1:3`},
		{in: `[href`, err: `unexpected EOF at 1:6`},
		{in: `[href=]`, err: `expected ident or string, got "]" at 1:7`},
		{in: `[href=a x]`, err: `unexpected ident "x" at 1:9`},
		{in: `:not()`, err: `unexpected ")" at 1:6`},
		{in: `:not(a`, err: `expected ), got EOF at 1:7`},
		{in: `:not(> img)`, err: `unexpected delim ">" at 1:6`},
		{in: `a b;`, err: `expected EOF, got semicolon ";" at 1:4`},
	}

	for _, tt := range tests {
		v, err := parser.ParseSelectorList(strings.NewReader(tt.in))
		tt.Assert(t, v, err)
	}
}

// Ensure that a single selector can be parsed and its parts are located.
func TestParseSelector(t *testing.T) {
	sel, err := parser.ParseSelector(strings.NewReader(`  a  >  b.c`))
	require.NoError(t, err)
	require.Len(t, sel.Parts, 4)

	assert.Equal(t, token.Pos{Offset: 2, Char: 2}, sel.Pos)
	assert.Equal(t, &ast.TypeSelector{Name: "a", Pos: token.Pos{Offset: 2, Char: 2}}, sel.Parts[0])
	assert.Equal(t, &ast.Combinator{Value: ">", Pos: token.Pos{Offset: 5, Char: 5}}, sel.Parts[1])
	assert.Equal(t, &ast.TypeSelector{Name: "b", Pos: token.Pos{Offset: 8, Char: 8}}, sel.Parts[2])
	assert.Equal(t, &ast.ClassSelector{Name: "c", Pos: token.Pos{Offset: 9, Char: 9}}, sel.Parts[3])

	_, err = parser.ParseSelector(strings.NewReader(`a, b`))
	assert.EqualError(t, err, `expected EOF, got comma "," at 1:2`)
}

// Ensure that combinators are parsed from the token stream.
func TestParser_ParseCombinator(t *testing.T) {
	var tests = []struct {
		in    string
		value string
		pos   token.Pos
		next  token.Kind
		err   string
	}{
		{in: ` `, value: " ", next: token.EOF},
		{in: " \t\n", value: " ", next: token.EOF},
		{in: `> b`, value: ">", next: token.Ident},
		{in: `+b`, value: "+", next: token.Ident},
		{in: `~ /* c */ b`, value: "~", next: token.Ident},
		{in: `/deep/ b`, value: "/deep/", next: token.Ident},
		{in: `/deep/.b`, value: "/deep/", next: token.Delim},
		{in: ` /* c */ >`, value: " ", next: token.Delim},

		{in: ``, err: `unexpected EOF at 1:1`},
		{in: `a`, err: `unexpected ident "a" at 1:1`},
		{in: `*`, err: `unexpected delim "*" at 1:1`},
		{in: `,`, err: `unexpected comma "," at 1:1`},
		{in: `/* c */ >`, err: `unexpected comment "/* c */" at 1:1`},
		{in: `/`, err: `unexpected EOF at 1:2`},
		{in: `/ deep/`, err: `unexpected whitespace at 1:2`},
		{in: `/deep`, err: `unexpected ident "deep" at 1:2`},
		{in: `/deep b`, err: `unexpected ident "deep" at 1:2`},
		{in: `/DEEP/`, err: `unexpected ident "DEEP" at 1:2`},
		{in: `/foo/`, err: `unexpected ident "foo" at 1:2`},
		{in: `//`, err: `unexpected delim "/" at 1:2`},
	}

	for _, tt := range tests {
		tz := scanner.NewTokenizer(scanner.New(strings.NewReader(tt.in)))
		c, err := parser.New(tz).ParseCombinator()
		if tt.err != "" {
			assert.EqualError(t, err, tt.err, "<%q>", tt.in)
			assert.Nil(t, c, "<%q>", tt.in)
			continue
		}
		require.NoError(t, err, "<%q>", tt.in)
		assert.Equal(t, tt.value, c.Value, "<%q>", tt.in)
		assert.Equal(t, token.Pos{}, c.Pos, "<%q>", tt.in)
		assert.Equal(t, tt.next, tz.Lookahead(1).Kind, "<%q>", tt.in)
	}
}

// Ensure every token kind is either accepted or rejected with a located
// error, and that an unknown kind is treated as a programming error.
func TestParser_ParseCombinator_Kinds(t *testing.T) {
	for _, k := range token.Kinds() {
		pos := token.Pos{Offset: 3, Char: 3}
		tz := scanner.NewTokenizerFromTokens([]token.Token{{Kind: k, Value: "x", Pos: pos}})

		var c *ast.Combinator
		var err error
		require.NotPanics(t, func() { c, err = parser.New(tz).ParseCombinator() }, "%s", k)

		if k == token.Whitespace {
			require.NoError(t, err)
			assert.Equal(t, " ", c.Value)
			assert.Equal(t, pos, c.Pos)
			continue
		}

		var perr *parser.Error
		require.ErrorAs(t, err, &perr, "%s", k)
		assert.Equal(t, pos, perr.Pos, "%s", k)
	}

	tz := scanner.NewTokenizerFromTokens([]token.Token{{Kind: token.Kind(100)}})
	assert.Panics(t, func() { _, _ = parser.New(tz).ParseCombinator() })
}

// Ensure that "/deep/" consumes exactly its three tokens.
func TestParser_ParseCombinator_Deep(t *testing.T) {
	tz := scanner.NewTokenizerFromTokens([]token.Token{
		{Kind: token.Delim, Value: "/", Pos: token.Pos{Offset: 2, Char: 2}},
		{Kind: token.Ident, Value: "deep", Pos: token.Pos{Offset: 3, Char: 3}},
		{Kind: token.Delim, Value: "/", Pos: token.Pos{Offset: 7, Char: 7}},
		{Kind: token.Ident, Value: "b", Pos: token.Pos{Offset: 8, Char: 8}},
	})
	c, err := parser.New(tz).ParseCombinator()
	require.NoError(t, err)
	assert.Equal(t, &ast.Combinator{Value: "/deep/", Pos: token.Pos{Offset: 2, Char: 2}}, c)
	assert.True(t, tz.Lookahead(1).IsIdent("b"))
	assert.Equal(t, token.Pos{Offset: 7, Char: 7}, tz.Location())
}

// Ensure that printed selectors parse back into an equal tree.
func TestParseSelectorList_RoundTrip(t *testing.T) {
	for _, s := range []string{
		`a`, `a b`, `a > b`, `a>b`, `a + b ~ c`, `a /deep/ b`, `a/deep/b`,
		`ns|a`, `|a`, `*|*`, `*`, `#id.cls`, `[href]`, `[href^="http"]`,
		`[lang|=en i]`, `a:hover`, `a::before`, `:not(.a, .b)`, `:is(a b)`,
		`:has(> img, + p)`, `li:nth-child(2n+1)`, `&.active`, `a, b , c`,
		`.a\.b`, `#x\ y`, `a\,b`, `.\31 23`, `[data\:x="1"]`, `a::-x\(y`,
	} {
		list, err := parser.ParseSelectorList(strings.NewReader(s))
		require.NoError(t, err, "<%q>", s)

		other, err := parser.ParseSelectorList(strings.NewReader(list.String()))
		require.NoError(t, err, "<%q>", list.String())

		if diff := cmp.Diff(list, other, ignorePos); diff != "" {
			t.Errorf("<%q> round trip mismatch (-want +got):\n%s", s, diff)
		}
	}
}

// Ensure that a combinator re-parsed from the source at its location is
// equal to the original.
func TestParseSelector_CombinatorSource(t *testing.T) {
	for _, s := range []string{`a b`, `a  >  b`, `a+b`, `a ~ b`, `a /deep/ b`, "a\n/deep/\nb"} {
		sel, err := parser.ParseSelector(strings.NewReader(s))
		require.NoError(t, err, "<%q>", s)
		require.Len(t, sel.Parts, 3, "<%q>", s)

		c := sel.Parts[1].(*ast.Combinator)
		tz := scanner.NewTokenizer(scanner.New(strings.NewReader(s[c.Pos.Offset:])))
		other, err := parser.New(tz).ParseCombinator()
		require.NoError(t, err, "<%q>", s)

		if diff := cmp.Diff(c, other, ignorePos); diff != "" {
			t.Errorf("<%q> combinator mismatch (-want +got):\n%s", s, diff)
		}
		assert.True(t, tz.Lookahead(1).IsIdent("b"), "<%q>", s)
	}
}
