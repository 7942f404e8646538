package ast

import (
	"bytes"
	"io"
	"strings"

	"github.com/benbjohnson/css3/token"
)

// Printer writes nodes as canonical CSS text.
//
// Whitespace is normalized: rules are separated by newlines at the top
// level, declarations are written as "name: value;" and combinators are
// surrounded by single spaces.
type Printer struct{}

// Fprint writes the CSS representation of n to w.
func (p *Printer) Fprint(w io.Writer, n Node) error {
	pw := &printWriter{w: w}
	pw.print(n)
	return pw.err
}

// Sprint returns the CSS representation of n.
func Sprint(n Node) string {
	var buf bytes.Buffer
	var p Printer
	_ = p.Fprint(&buf, n)
	return buf.String()
}

func (s *StyleSheet) String() string            { return Sprint(s) }
func (a Rules) String() string                  { return Sprint(a) }
func (r *AtRule) String() string                { return Sprint(r) }
func (r *QualifiedRule) String() string         { return Sprint(r) }
func (a Declarations) String() string           { return Sprint(a) }
func (d *Declaration) String() string           { return Sprint(d) }
func (a ComponentValues) String() string        { return Sprint(a) }
func (b *SimpleBlock) String() string           { return Sprint(b) }
func (f *Function) String() string              { return Sprint(f) }
func (t *Token) String() string                 { return Sprint(t) }
func (a SelectorList) String() string           { return Sprint(a) }
func (s *Selector) String() string              { return Sprint(s) }
func (s *TypeSelector) String() string          { return Sprint(s) }
func (s *IDSelector) String() string            { return Sprint(s) }
func (s *ClassSelector) String() string         { return Sprint(s) }
func (s *AttributeSelector) String() string     { return Sprint(s) }
func (s *PseudoClassSelector) String() string   { return Sprint(s) }
func (s *PseudoElementSelector) String() string { return Sprint(s) }
func (s *NestingSelector) String() string       { return Sprint(s) }
func (c *Combinator) String() string            { return Sprint(c) }

// printWriter tracks the first write error so callers can write freely.
type printWriter struct {
	w   io.Writer
	err error
}

func (pw *printWriter) write(s string) {
	if pw.err != nil {
		return
	}
	_, pw.err = io.WriteString(pw.w, s)
}

func (pw *printWriter) print(n Node) {
	switch n := n.(type) {
	case *StyleSheet:
		if n == nil {
			return
		}
		for i, r := range n.Rules {
			if i > 0 {
				pw.write("\n")
			}
			pw.print(r)
		}

	case Rules:
		for i, r := range n {
			if i > 0 {
				pw.write(" ")
			}
			pw.print(r)
		}

	case *AtRule:
		if n == nil {
			return
		}
		pw.write("@" + token.EscapeIdent(n.Name))
		if len(n.Prelude) > 0 {
			pw.write(" ")
			pw.print(n.Prelude)
		}
		switch block := n.Block.(type) {
		case nil:
			pw.write(";")
		case Rules:
			pw.write(" ")
			pw.printBlock(block, len(block))
		case Declarations:
			pw.write(" ")
			pw.printBlock(block, len(block))
		default:
			pw.write(" ")
			pw.print(block)
		}

	case *QualifiedRule:
		if n == nil {
			return
		}
		pw.print(n.Selectors)
		pw.write(" ")
		pw.printBlock(n.Declarations, len(n.Declarations))

	case Declarations:
		for i, v := range n {
			if i > 0 {
				pw.write(" ")
			}
			pw.print(v)
			if _, ok := v.(*Declaration); ok {
				pw.write(";")
			}
		}

	case *Declaration:
		if n == nil {
			return
		}
		pw.write(token.EscapeIdent(n.Name) + ": ")
		pw.print(n.Values)
		if n.Important {
			pw.write(" !important")
		}

	case ComponentValues:
		for _, v := range n {
			pw.print(v)
		}

	case *SimpleBlock:
		if n == nil {
			return
		}
		switch n.Token.Kind {
		case token.LBrace:
			pw.write("{")
			pw.print(n.Values)
			pw.write("}")
		case token.LBrack:
			pw.write("[")
			pw.print(n.Values)
			pw.write("]")
		case token.LParen:
			pw.write("(")
			pw.print(n.Values)
			pw.write(")")
		}

	case *Function:
		if n == nil {
			return
		}
		pw.write(token.EscapeIdent(n.Name) + "(")
		pw.print(n.Values)
		pw.write(")")

	case *Token:
		if n == nil {
			return
		}
		pw.write(n.Token.String())

	case SelectorList:
		for i, s := range n {
			if i > 0 {
				pw.write(", ")
			}
			pw.print(s)
		}

	case *Selector:
		if n == nil {
			return
		}
		for i, part := range n.Parts {
			c, ok := part.(*Combinator)
			if !ok {
				pw.print(part)
				continue
			}
			switch {
			case c.Value == " ":
				pw.write(" ")
			case i == 0:
				pw.write(c.Value + " ")
			default:
				pw.write(" " + c.Value + " ")
			}
		}

	case *TypeSelector:
		if n == nil {
			return
		}
		if n.HasNamespace || n.Namespace != "" {
			pw.write(escapeTypeName(n.Namespace) + "|")
		}
		pw.write(escapeTypeName(n.Name))

	case *IDSelector:
		if n == nil {
			return
		}
		pw.write("#" + token.EscapeIdent(n.Name))

	case *ClassSelector:
		if n == nil {
			return
		}
		pw.write("." + token.EscapeIdent(n.Name))

	case *AttributeSelector:
		if n == nil {
			return
		}
		pw.write("[" + escapeAttributeName(n.Name))
		if n.Matcher != "" {
			pw.write(n.Matcher)
			pw.write(token.Token{Kind: token.String, Value: n.Value, Ending: '"'}.String())
		}
		if n.Modifier != "" {
			pw.write(" " + n.Modifier)
		}
		pw.write("]")

	case *PseudoClassSelector:
		if n == nil {
			return
		}
		pw.write(":" + token.EscapeIdent(n.Name))
		if n.Function {
			pw.write("(")
			if n.Selectors != nil {
				pw.print(n.Selectors)
			} else {
				pw.print(n.Args)
			}
			pw.write(")")
		}

	case *PseudoElementSelector:
		if n == nil {
			return
		}
		pw.write("::" + token.EscapeIdent(n.Name))
		if n.Function {
			pw.write("(")
			pw.print(n.Args)
			pw.write(")")
		}

	case *NestingSelector:
		if n == nil {
			return
		}
		pw.write("&")

	case *Combinator:
		if n == nil {
			return
		}
		pw.write(n.Value)
	}
}

// escapeTypeName escapes an element or namespace name, leaving the
// universal "*" and the empty namespace as they are.
func escapeTypeName(s string) string {
	if s == "*" || s == "" {
		return s
	}
	return token.EscapeIdent(s)
}

// escapeAttributeName escapes the parts of a "name" or "ns|name".
func escapeAttributeName(s string) string {
	if ns, name, ok := strings.Cut(s, "|"); ok {
		return escapeTypeName(ns) + "|" + token.EscapeIdent(name)
	}
	return token.EscapeIdent(s)
}

// printBlock writes a {-block around the contents of n.
func (pw *printWriter) printBlock(n Node, size int) {
	if size == 0 {
		pw.write("{}")
		return
	}
	pw.write("{ ")
	pw.print(n)
	pw.write(" }")
}
