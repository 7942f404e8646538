package ast

import (
	"github.com/benbjohnson/css3/token"
)

// Node represents a node in the CSS3 abstract syntax tree.
type Node interface {
	node()
	String() string
}

func (_ *StyleSheet) node()            {}
func (_ Rules) node()                  {}
func (_ *AtRule) node()                {}
func (_ *QualifiedRule) node()         {}
func (_ Declarations) node()           {}
func (_ *Declaration) node()           {}
func (_ ComponentValues) node()        {}
func (_ *SimpleBlock) node()           {}
func (_ *Function) node()              {}
func (_ *Token) node()                 {}
func (_ SelectorList) node()           {}
func (_ *Selector) node()              {}
func (_ *TypeSelector) node()          {}
func (_ *IDSelector) node()            {}
func (_ *ClassSelector) node()         {}
func (_ *AttributeSelector) node()     {}
func (_ *PseudoClassSelector) node()   {}
func (_ *PseudoElementSelector) node() {}
func (_ *NestingSelector) node()       {}
func (_ *Combinator) node()            {}

// StyleSheet represents a top-level CSS3 stylesheet.
type StyleSheet struct {
	Rules Rules
}

// Rules represents a list of rules.
type Rules []Rule

// Rule represents a qualified rule or at-rule.
type Rule interface {
	Node
	rule()
}

func (_ *AtRule) rule()        {}
func (_ *QualifiedRule) rule() {}

// AtRule represents a rule starting with an "@" symbol.
//
// Block is nil for statement at-rules such as @import. Otherwise it is
// Rules for at-rules that contain rules (@media, @supports, ...),
// Declarations for at-rules that contain declarations (@font-face,
// @page, ...) or that are nested inside a style rule, and a *SimpleBlock
// for any other at-rule.
type AtRule struct {
	Name    string
	Prelude ComponentValues
	Block   Node
	Pos     token.Pos
}

// QualifiedRule represents a style rule: a selector list and a block of
// declarations.
type QualifiedRule struct {
	Selectors    SelectorList
	Declarations Declarations
	Pos          token.Pos
}

// Declarations represents a list of declarations or at-rules.
type Declarations []Node

// Declaration represents a name/value pair.
type Declaration struct {
	Name      string
	Values    ComponentValues
	Important bool
	Pos       token.Pos
}

// ComponentValues represents a list of component values.
type ComponentValues []ComponentValue

// ComponentValue represents a component value.
type ComponentValue interface {
	Node
	componentValue()
}

func (_ *SimpleBlock) componentValue() {}
func (_ *Function) componentValue()    {}
func (_ *Token) componentValue()       {}

// SimpleBlock represents a {-block, [-block, or (-block.
// Token is the token that opened the block.
type SimpleBlock struct {
	Token  token.Token
	Values ComponentValues
}

// Function represents a function call with a list of arguments.
type Function struct {
	Name   string
	Values ComponentValues
	Pos    token.Pos
}

// Token represents a single token in the AST.
type Token struct {
	token.Token
}

// SelectorList represents a comma separated list of complex selectors.
type SelectorList []*Selector

// Selector represents a complex selector: compound selector components
// separated by combinators. A relative selector may start with a
// combinator.
type Selector struct {
	Parts []SelectorPart
	Pos   token.Pos
}

// SelectorPart represents a simple selector or a combinator.
type SelectorPart interface {
	Node
	selectorPart()
}

func (_ *TypeSelector) selectorPart()          {}
func (_ *IDSelector) selectorPart()            {}
func (_ *ClassSelector) selectorPart()         {}
func (_ *AttributeSelector) selectorPart()     {}
func (_ *PseudoClassSelector) selectorPart()   {}
func (_ *PseudoElementSelector) selectorPart() {}
func (_ *NestingSelector) selectorPart()       {}
func (_ *Combinator) selectorPart()            {}

// TypeSelector represents an element name or the universal selector ("*").
// Namespace is "" when no namespace prefix was given. HasNamespace is
// set for an explicit prefix, including the empty one in "|name".
type TypeSelector struct {
	Namespace    string
	HasNamespace bool
	Name         string
	Pos          token.Pos
}

// IDSelector represents a "#id" selector.
type IDSelector struct {
	Name string
	Pos  token.Pos
}

// ClassSelector represents a ".class" selector.
type ClassSelector struct {
	Name string
	Pos  token.Pos
}

// AttributeSelector represents a "[name]" or "[name op value]" selector.
// Matcher is one of "", "=", "~=", "|=", "^=", "$=" or "*=".
// Modifier is "", "i" or "s".
type AttributeSelector struct {
	Name     string
	Matcher  string
	Value    string
	Modifier string
	Pos      token.Pos
}

// PseudoClassSelector represents ":name" or ":name(args)". The arguments
// of pseudo-classes that take selectors (:not, :is, :where, :has, ...)
// are parsed into Selectors; all others keep their raw component values.
type PseudoClassSelector struct {
	Name      string
	Function  bool
	Args      ComponentValues
	Selectors SelectorList
	Pos       token.Pos
}

// PseudoElementSelector represents "::name" or "::name(args)".
type PseudoElementSelector struct {
	Name     string
	Function bool
	Args     ComponentValues
	Pos      token.Pos
}

// NestingSelector represents the "&" selector.
type NestingSelector struct {
	Pos token.Pos
}

// Combinator represents the relationship between two compound selectors.
// Value is one of " " (descendant), ">", "+", "~" or "/deep/".
type Combinator struct {
	Value string
	Pos   token.Pos
}

// Position returns the position of the first token of a node.
// Lists return the position of their first element or a zero position.
func Position(n Node) token.Pos {
	switch n := n.(type) {
	case *StyleSheet:
		return Position(n.Rules)
	case Rules:
		if len(n) > 0 {
			return Position(n[0])
		}
	case *AtRule:
		return n.Pos
	case *QualifiedRule:
		return n.Pos
	case Declarations:
		if len(n) > 0 {
			return Position(n[0])
		}
	case *Declaration:
		return n.Pos
	case ComponentValues:
		if len(n) > 0 {
			return Position(n[0])
		}
	case *SimpleBlock:
		return n.Token.Pos
	case *Function:
		return n.Pos
	case *Token:
		return n.Token.Pos
	case SelectorList:
		if len(n) > 0 {
			return n[0].Pos
		}
	case *Selector:
		return n.Pos
	case *TypeSelector:
		return n.Pos
	case *IDSelector:
		return n.Pos
	case *ClassSelector:
		return n.Pos
	case *AttributeSelector:
		return n.Pos
	case *PseudoClassSelector:
		return n.Pos
	case *PseudoElementSelector:
		return n.Pos
	case *NestingSelector:
		return n.Pos
	case *Combinator:
		return n.Pos
	}
	return token.Pos{}
}
