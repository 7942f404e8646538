package token

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind represents the kind of a lexical token.
type Kind int

const (
	// Special tokens
	Illegal Kind = iota
	EOF
	Whitespace
	Comment

	// CSS3 standard tokens
	Ident
	Function
	AtKeyword
	Hash
	String
	BadString
	URL
	BadURL
	Delim
	Number
	Percentage
	Dimension
	UnicodeRange
	IncludeMatch
	DashMatch
	PrefixMatch
	SuffixMatch
	SubstringMatch
	Column
	CDO
	CDC
	Colon
	Semicolon
	Comma
	LBrack
	RBrack
	LParen
	RParen
	LBrace
	RBrace
)

var kinds = [...]string{
	Illegal:        "ILLEGAL",
	EOF:            "EOF",
	Whitespace:     "whitespace",
	Comment:        "comment",
	Ident:          "ident",
	Function:       "function",
	AtKeyword:      "at-keyword",
	Hash:           "hash",
	String:         "string",
	BadString:      "bad-string",
	URL:            "url",
	BadURL:         "bad-url",
	Delim:          "delim",
	Number:         "number",
	Percentage:     "percentage",
	Dimension:      "dimension",
	UnicodeRange:   "unicode-range",
	IncludeMatch:   "include-match",
	DashMatch:      "dash-match",
	PrefixMatch:    "prefix-match",
	SuffixMatch:    "suffix-match",
	SubstringMatch: "substring-match",
	Column:         "column",
	CDO:            "CDO",
	CDC:            "CDC",
	Colon:          "colon",
	Semicolon:      "semicolon",
	Comma:          "comma",
	LBrack:         "[",
	RBrack:         "]",
	LParen:         "(",
	RParen:         ")",
	LBrace:         "{",
	RBrace:         "}",
}

// String returns the name of the token kind.
func (k Kind) String() string {
	if k >= 0 && k < Kind(len(kinds)) {
		return kinds[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Kinds returns every defined token kind in declaration order.
func Kinds() []Kind {
	a := make([]Kind, 0, len(kinds))
	for k := range kinds {
		a = append(a, Kind(k))
	}
	return a
}

// Token represents a single lexical token. Tokens are values and may be
// compared with ==.
type Token struct {
	Kind Kind

	// Value is the textual payload of the token: the name of an ident,
	// function, at-keyword or hash, the contents of a string or url, the
	// delimiter character, the representation of a numeric token, the
	// body of a comment or the literal run of whitespace.
	Value string

	// Type is set to "id" or "unrestricted" for hash tokens and to
	// "integer" or "number" for numeric tokens.
	Type string

	// Number and Unit are set for number, percentage and dimension tokens.
	Number float64
	Unit   string

	// Start and End are set for unicode-range tokens.
	Start int
	End   int

	// Ending is the quote code point that opened a string token.
	Ending rune

	Pos Pos
}

// IsDelim returns true if the token is a delim token for ch.
func (t Token) IsDelim(ch rune) bool {
	return t.Kind == Delim && t.Value == string(ch)
}

// IsIdent returns true if the token is an ident token named name.
func (t Token) IsIdent(name string) bool {
	return t.Kind == Ident && t.Value == name
}

// IsWhitespaceOrComment returns true for the tokens that separate, but do
// not themselves form, other productions.
func (t Token) IsWhitespaceOrComment() bool {
	return t.Kind == Whitespace || t.Kind == Comment
}

// String returns the CSS representation of the token.
func (t Token) String() string {
	switch t.Kind {
	case Illegal, EOF:
		return ""
	case Whitespace, Delim, Number, Percentage, Dimension:
		return t.Value
	case Comment:
		return "/*" + t.Value + "*/"
	case Ident:
		return EscapeIdent(t.Value)
	case Function:
		return EscapeIdent(t.Value) + "("
	case AtKeyword:
		return "@" + EscapeIdent(t.Value)
	case Hash:
		return "#" + escapeName(t.Value)
	case String:
		ending := t.Ending
		if ending == 0 {
			ending = '"'
		}
		return string(ending) + escapeString(t.Value, ending) + string(ending)
	case BadString:
		return "\"\n"
	case URL:
		return "url(" + escapeURL(t.Value) + ")"
	case BadURL:
		return "url()"
	case UnicodeRange:
		if t.Start == t.End {
			return fmt.Sprintf("U+%X", t.Start)
		}
		return fmt.Sprintf("U+%X-%X", t.Start, t.End)
	case IncludeMatch:
		return "~="
	case DashMatch:
		return "|="
	case PrefixMatch:
		return "^="
	case SuffixMatch:
		return "$="
	case SubstringMatch:
		return "*="
	case Column:
		return "||"
	case CDO:
		return "<!--"
	case CDC:
		return "-->"
	case Colon:
		return ":"
	case Semicolon:
		return ";"
	case Comma:
		return ","
	case LBrack:
		return "["
	case RBrack:
		return "]"
	case LParen:
		return "("
	case RParen:
		return ")"
	case LBrace:
		return "{"
	case RBrace:
		return "}"
	}
	return ""
}

// Describe returns a short human readable description of the token for use
// in diagnostics, e.g. `ident "deep"` or `EOF`.
func (t Token) Describe() string {
	switch t.Kind {
	case EOF:
		return "EOF"
	case Whitespace:
		return "whitespace"
	case LBrack, RBrack, LParen, RParen, LBrace, RBrace:
		return strconv.Quote(t.String())
	}
	return fmt.Sprintf("%s %q", t.Kind, t.String())
}

// escapeString escapes the ending quote and backslashes within a string.
func escapeString(s string, ending rune) string {
	if !strings.ContainsAny(s, string(ending)+"\\\n") {
		return s
	}
	var buf strings.Builder
	for _, ch := range s {
		switch ch {
		case ending, '\\':
			buf.WriteRune('\\')
			buf.WriteRune(ch)
		case '\n':
			buf.WriteString("\\a ")
		default:
			buf.WriteRune(ch)
		}
	}
	return buf.String()
}

// EscapeIdent returns s written as an identifier that scans back to s.
// Code points that cannot appear in a name are escaped, as are a leading
// digit, a digit after a leading "-" and a lone "-".
func EscapeIdent(s string) string {
	if s == "-" {
		return `\-`
	}
	var buf strings.Builder
	for i, ch := range s {
		switch {
		case isDigit(ch) && (i == 0 || (i == 1 && s[0] == '-')):
			fmt.Fprintf(&buf, "\\%x ", ch)
		default:
			writeNameRune(&buf, ch)
		}
	}
	return buf.String()
}

// escapeName escapes s for use after "#", where any name code point may
// come first.
func escapeName(s string) string {
	var buf strings.Builder
	for _, ch := range s {
		writeNameRune(&buf, ch)
	}
	return buf.String()
}

func writeNameRune(buf *strings.Builder, ch rune) {
	switch {
	case isNameRune(ch):
		buf.WriteRune(ch)
	case ch < 0x20 || ch == 0x7F:
		fmt.Fprintf(buf, "\\%x ", ch)
	default:
		buf.WriteRune('\\')
		buf.WriteRune(ch)
	}
}

// escapeURL escapes the code points that end or invalidate an unquoted url.
func escapeURL(s string) string {
	var buf strings.Builder
	for _, ch := range s {
		switch {
		case ch <= ' ' || ch == 0x7F:
			fmt.Fprintf(&buf, "\\%x ", ch)
		case ch == '"' || ch == '\'' || ch == '(' || ch == ')' || ch == '\\':
			buf.WriteRune('\\')
			buf.WriteRune(ch)
		default:
			buf.WriteRune(ch)
		}
	}
	return buf.String()
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isNameRune(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || isDigit(ch) ||
		ch == '-' || ch == '_' || ch >= 0x80
}

// Pos specifies the position of a token in the source text.
// Offset is a byte offset; Char and Line are both zero-based indexes.
type Pos struct {
	Offset int
	Line   int
	Char   int
}

// String returns the one-based "line:column" form of the position.
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Char+1)
}
