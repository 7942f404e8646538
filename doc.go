/*
Package css implements a CSS3 compliant scanner and parser. This is meant to
be a low-level library for extracting a CSS3 abstract syntax tree from raw
CSS text.

This package can be used for building tools to validate, optimize and format
CSS text. The cssparse command in cmd/cssparse is one such tool.


Basics

CSS parsing occurs in two steps. First the scanner breaks up a stream of code
points (runes) into tokens. These tokens represent the most basic units of
the CSS syntax tree such as identifiers, whitespace, comments and strings. The
second step is to feed these tokens into the parser which creates the abstract
syntax tree (AST) based on the context of the tokens.

The scanner keeps comments as tokens. Each production of the parser decides
whether whitespace and comments are meaningful to it. Between two compound
selectors, for example, whitespace is the descendant combinator while comments
are skipped.

The token stream between the scanner and the parser is a scanner.Tokenizer. It
buffers tokens so that the parser can look any number of tokens ahead without
consuming them. The "/deep/" combinator is the main user of this: a "/" delim
is only a combinator if the next two tokens are the identifier "deep" and
another "/" delim.


Abstract Syntax Tree

The CSS3 syntax defines a syntax tree of several types. At the top-level there
is a StyleSheet. The style sheet is simply a collection of Rules. A Rule can be
either an AtRule or a QualifiedRule.

An AtRule is defined as a rule starting with an "@" symbol and an identifier,
then it's followed by zero or more component values and finally ends with either
a {-block or a semicolon. Well known at-rules have their block parsed as rules
(@media, @supports, ...) or as declarations (@font-face, @page, ...). The block
of any other at-rule is kept as a simple block of component values.

A QualifiedRule is a selector list followed by a {-block. Selectors are parsed
into compound selectors (type, id, class, attribute, pseudo-class and
pseudo-element selectors) separated by combinators.

Inside the {-blocks are a list of declarations. Despite the name, a list of
declarations can contain an AtRule, a Declaration or a nested QualifiedRule. A
Declaration is an identifier followed by a colon followed by one or more
component values. The declaration can also have its Important flag set if the
last two non-whitespace tokens are a case-insensitive "!important".

ComponentValues are the basic unit inside rules and declarations. A
ComponentValue can be either a SimpleBlock, a Function, or a Token. A simple
block starts with either a {, [, or (, has zero or more component values, and
then ends with the mirror of the starting token (}, ], or )). A Function is
an identifier immediately followed by a left parenthesis, then zero or more
component values, and then ending with a right parenthesis.


Errors

Parsing stops at the first syntax error. Errors are returned as *parser.Error
values which carry the position of the offending token and render as
"message at line:column".
*/
package css
