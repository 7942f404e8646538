package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/benbjohnson/css3/token"
)

// Ensure that all nodes implement the Node interface.
func TestNode(t *testing.T) {
	var a []Node
	a = append(a, &StyleSheet{}, &AtRule{}, &QualifiedRule{}, &Declaration{})
	a = append(a, &SimpleBlock{}, &Function{}, &Token{})
	a = append(a, Rules{}, Declarations{}, ComponentValues{}, SelectorList{})
	a = append(a, &Selector{}, &TypeSelector{}, &IDSelector{}, &ClassSelector{})
	a = append(a, &AttributeSelector{}, &PseudoClassSelector{}, &PseudoElementSelector{})
	a = append(a, &NestingSelector{}, &Combinator{})
	for _, n := range a {
		n.node()
	}
}

// Ensure that all rules implement the Rule interface.
func TestRule(t *testing.T) {
	a := []Rule{&AtRule{}, &QualifiedRule{}}
	for _, r := range a {
		r.rule()
	}
}

// Ensure that all component values implement the ComponentValue interface.
func TestComponentValue(t *testing.T) {
	a := []ComponentValue{&SimpleBlock{}, &Function{}, &Token{}}
	for _, v := range a {
		v.componentValue()
	}
}

// Ensure that all selector parts implement the SelectorPart interface.
func TestSelectorPart(t *testing.T) {
	a := []SelectorPart{
		&TypeSelector{}, &IDSelector{}, &ClassSelector{}, &AttributeSelector{},
		&PseudoClassSelector{}, &PseudoElementSelector{}, &NestingSelector{}, &Combinator{},
	}
	for _, v := range a {
		v.selectorPart()
	}
}

// Ensure that node positions can be retrieved.
func TestPosition(t *testing.T) {
	pos := token.Pos{Offset: 7, Line: 1, Char: 2}

	var tests = []struct {
		in  Node
		pos token.Pos
	}{
		{in: &StyleSheet{Rules: Rules{&QualifiedRule{Pos: pos}}}, pos: pos},
		{in: &StyleSheet{}, pos: token.Pos{}},
		{in: Rules{&AtRule{Pos: pos}}, pos: pos},
		{in: Rules{}, pos: token.Pos{}},
		{in: &QualifiedRule{Pos: pos}, pos: pos},
		{in: &AtRule{Pos: pos}, pos: pos},
		{in: Declarations{&AtRule{Pos: pos}}, pos: pos},
		{in: Declarations{&Declaration{Pos: pos}}, pos: pos},
		{in: Declarations{}, pos: token.Pos{}},
		{in: ComponentValues{&SimpleBlock{Token: token.Token{Pos: pos}}}, pos: pos},
		{in: ComponentValues{&Function{Pos: pos}}, pos: pos},
		{in: ComponentValues{&Token{Token: token.Token{Pos: pos}}}, pos: pos},
		{in: ComponentValues{}, pos: token.Pos{}},
		{in: SelectorList{&Selector{Pos: pos}}, pos: pos},
		{in: SelectorList{}, pos: token.Pos{}},
		{in: &Selector{Pos: pos}, pos: pos},
		{in: &TypeSelector{Pos: pos}, pos: pos},
		{in: &IDSelector{Pos: pos}, pos: pos},
		{in: &ClassSelector{Pos: pos}, pos: pos},
		{in: &AttributeSelector{Pos: pos}, pos: pos},
		{in: &PseudoClassSelector{Pos: pos}, pos: pos},
		{in: &PseudoElementSelector{Pos: pos}, pos: pos},
		{in: &NestingSelector{Pos: pos}, pos: pos},
		{in: &Combinator{Pos: pos}, pos: pos},
		{in: nil, pos: token.Pos{}},
	}

	for i, tt := range tests {
		assert.Equal(t, tt.pos, Position(tt.in), "%d. %T", i, tt.in)
	}
}
