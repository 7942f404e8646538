package scanner

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/benbjohnson/css3/token"
)

// eof is returned by read once the reader is exhausted.
const eof rune = -1

// Scanner tokenizes CSS as described in CSS Syntax Level 3, section 4.
//
// Input must be UTF-8; @charset rules are not honored. Comments are
// returned as comment tokens so that the parser can decide per production
// whether they matter.
type Scanner struct {
	rd  io.RuneScanner
	pos token.Pos // position of the next code point read from rd
	err error

	// Recently read code points and where they started, so that up to
	// len(buf) of them can be pushed back with unread.
	buf    [8]rune
	bufpos [8]token.Pos
	bufi   int // index of the current code point
	bufn   int // number of pushed back code points
}

// New returns a Scanner reading from r.
func New(r io.Reader) *Scanner {
	return &Scanner{rd: bufio.NewReader(r)}
}

// Err returns the first non-EOF error returned by the underlying reader.
func (s *Scanner) Err() error {
	return s.err
}

// Scan returns the next token from the input. Once the input is exhausted
// it returns an EOF token on every call.
func (s *Scanner) Scan() token.Token {
	ch := s.read()
	pos := s.Pos()

	switch {
	case ch == eof:
		return token.Token{Kind: token.EOF, Pos: pos}
	case isWhitespace(ch):
		return s.scanWhitespace()
	case ch == '"' || ch == '\'':
		return s.scanString()
	case isDigit(ch):
		s.unread(1)
		return s.scanNumeric(pos)
	case ch == 'u' || ch == 'U':
		// u+ followed by a hex digit or "?" is a unicode-range.
		ch1, ch2 := s.read(), s.read()
		if ch1 == '+' && (isHexDigit(ch2) || ch2 == '?') {
			s.unread(1)
			return s.scanUnicodeRange(pos)
		}
		s.unread(2)
		return s.scanIdent()
	case isNameStart(ch):
		return s.scanIdent()
	}

	switch ch {
	case '#':
		return s.scanHash()
	case '$':
		return s.scanMatch(token.SuffixMatch)
	case '*':
		return s.scanMatch(token.SubstringMatch)
	case '^':
		return s.scanMatch(token.PrefixMatch)
	case '~':
		return s.scanMatch(token.IncludeMatch)
	case ',':
		return token.Token{Kind: token.Comma, Pos: pos}
	case ':':
		return token.Token{Kind: token.Colon, Pos: pos}
	case ';':
		return token.Token{Kind: token.Semicolon, Pos: pos}
	case '(':
		return token.Token{Kind: token.LParen, Pos: pos}
	case ')':
		return token.Token{Kind: token.RParen, Pos: pos}
	case '[':
		return token.Token{Kind: token.LBrack, Pos: pos}
	case ']':
		return token.Token{Kind: token.RBrack, Pos: pos}
	case '{':
		return token.Token{Kind: token.LBrace, Pos: pos}
	case '}':
		return token.Token{Kind: token.RBrace, Pos: pos}

	case '-':
		ch1, ch2 := s.read(), s.read()
		s.unread(2)
		switch {
		case isDigit(ch1) || (ch1 == '.' && isDigit(ch2)):
			s.unread(1)
			return s.scanNumeric(pos)
		case ch1 == '-' && ch2 == '>':
			s.read()
			s.read()
			return token.Token{Kind: token.CDC, Pos: pos}
		case s.peekIdent():
			return s.scanIdent()
		}

	case '+', '.':
		ch1, ch2 := s.read(), s.read()
		s.unread(2)
		if isDigit(ch1) || (ch == '+' && ch1 == '.' && isDigit(ch2)) {
			s.unread(1)
			return s.scanNumeric(pos)
		}

	case '/':
		if s.read() == '*' {
			return s.scanComment(pos)
		}
		s.unread(1)

	case '<':
		if s.peekString("!--") {
			return token.Token{Kind: token.CDO, Pos: pos}
		}

	case '@':
		if s.read(); s.peekIdent() {
			return token.Token{Kind: token.AtKeyword, Value: s.scanName(), Pos: pos}
		}
		s.unread(1)

	case '\\':
		// An invalid escape is a parse error; it is kept as a delim.
		if s.peekEscape() {
			return s.scanIdent()
		}

	case '|':
		switch s.read() {
		case '=':
			return token.Token{Kind: token.DashMatch, Pos: pos}
		case '|':
			return token.Token{Kind: token.Column, Pos: pos}
		}
		s.unread(1)
	}
	return token.Token{Kind: token.Delim, Value: string(ch), Pos: pos}
}

// peekString consumes lit if the input continues with it. Otherwise
// nothing is consumed.
func (s *Scanner) peekString(lit string) bool {
	for i, want := range lit {
		if s.read() != want {
			s.unread(utf8.RuneCountInString(lit[:i]) + 1)
			return false
		}
	}
	return true
}

// scanWhitespace returns the current code point and the whitespace
// following it as a single token.
func (s *Scanner) scanWhitespace() token.Token {
	pos := s.Pos()
	var sb strings.Builder
	sb.WriteRune(s.curr())
	for {
		ch := s.read()
		if !isWhitespace(ch) {
			if ch != eof {
				s.unread(1)
			}
			return token.Token{Kind: token.Whitespace, Value: sb.String(), Pos: pos}
		}
		sb.WriteRune(ch)
	}
}

// scanMatch returns a token of kind k for the current code point followed
// by "=", or a delim for the code point alone.
func (s *Scanner) scanMatch(k token.Kind) token.Token {
	pos, ch := s.Pos(), s.curr()
	if s.read() == '=' {
		return token.Token{Kind: k, Pos: pos}
	}
	s.unread(1)
	return token.Token{Kind: token.Delim, Value: string(ch), Pos: pos}
}

// scanString scans up to the quote matching the current code point. A raw
// newline ends the string as a bad-string and is left for the next token;
// EOF ends it normally.
func (s *Scanner) scanString() token.Token {
	pos, ending := s.Pos(), s.curr()
	var sb strings.Builder
	for {
		switch ch := s.read(); ch {
		case eof, ending:
			return token.Token{Kind: token.String, Value: sb.String(), Ending: ending, Pos: pos}
		case '\n':
			s.unread(1)
			return token.Token{Kind: token.BadString, Value: sb.String(), Pos: pos}
		case '\\':
			// Backslash-EOF is dropped; backslash-newline is a line continuation.
			switch next := s.read(); next {
			case eof:
			case '\n':
			default:
				s.unread(1)
				sb.WriteRune(s.scanEscape())
			}
		default:
			sb.WriteRune(ch)
		}
	}
}

// scanNumeric scans a number, percentage or dimension. The next code point
// must start a number.
func (s *Scanner) scanNumeric(pos token.Pos) token.Token {
	num, typ, repr := s.scanNumber()

	if s.read(); s.peekIdent() {
		unit := s.scanName()
		return token.Token{Kind: token.Dimension, Type: typ, Value: repr + unit, Number: num, Unit: unit, Pos: pos}
	}
	if s.curr() == '%' {
		return token.Token{Kind: token.Percentage, Type: typ, Value: repr + "%", Number: num, Pos: pos}
	}
	s.unread(1)
	return token.Token{Kind: token.Number, Type: typ, Value: repr, Number: num, Pos: pos}
}

// scanNumber returns the value, type flag and source text of a number.
func (s *Scanner) scanNumber() (num float64, typ, repr string) {
	var sb strings.Builder
	typ = "integer"

	if ch := s.read(); ch == '+' || ch == '-' {
		sb.WriteRune(ch)
	} else {
		s.unread(1)
	}
	sb.WriteString(s.scanDigits())

	// Fraction.
	if ch0 := s.read(); ch0 == '.' {
		if ch1 := s.read(); isDigit(ch1) {
			typ = "number"
			sb.WriteRune(ch0)
			sb.WriteRune(ch1)
			sb.WriteString(s.scanDigits())
		} else {
			s.unread(2)
		}
	} else {
		s.unread(1)
	}

	// Exponent, with an optional sign.
	if ch0 := s.read(); ch0 == 'e' || ch0 == 'E' {
		ch1 := s.read()
		sign := ch1 == '+' || ch1 == '-'
		digit := ch1
		if sign {
			digit = s.read()
		}

		switch {
		case isDigit(digit):
			typ = "number"
			sb.WriteRune(ch0)
			if sign {
				sb.WriteRune(ch1)
			}
			sb.WriteRune(digit)
			sb.WriteString(s.scanDigits())
		case sign:
			s.unread(3)
		default:
			s.unread(2)
		}
	} else {
		s.unread(1)
	}

	repr = sb.String()
	num, _ = strconv.ParseFloat(repr, 64)
	return num, typ, repr
}

func (s *Scanner) scanDigits() string {
	var sb strings.Builder
	for {
		ch := s.read()
		if !isDigit(ch) {
			s.unread(1)
			return sb.String()
		}
		sb.WriteRune(ch)
	}
}

// scanComment scans the body of a comment whose "/*" was just read. An
// unterminated comment runs to the end of the input.
func (s *Scanner) scanComment(pos token.Pos) token.Token {
	var sb strings.Builder
	for {
		ch := s.read()
		if ch == eof {
			break
		} else if ch == '*' {
			if s.read() == '/' {
				break
			}
			s.unread(1)
		}
		sb.WriteRune(ch)
	}
	return token.Token{Kind: token.Comment, Value: sb.String(), Pos: pos}
}

// scanHash scans the name after a "#". The type flag is "id" when the name
// would also be a valid identifier. A "#" with no name is a delim.
func (s *Scanner) scanHash() token.Token {
	pos := s.Pos()
	if ch := s.read(); isName(ch) || s.peekEscape() {
		typ := "unrestricted"
		if s.peekIdent() {
			typ = "id"
		}
		return token.Token{Kind: token.Hash, Value: s.scanName(), Type: typ, Pos: pos}
	}
	s.unread(1)
	return token.Token{Kind: token.Delim, Value: "#", Pos: pos}
}

// scanName returns the run of name code points and escapes starting at the
// current code point.
func (s *Scanner) scanName() string {
	var sb strings.Builder
	s.unread(1)
	for {
		if ch := s.read(); isName(ch) {
			sb.WriteRune(ch)
		} else if s.peekEscape() {
			sb.WriteRune(s.scanEscape())
		} else {
			s.unread(1)
			return sb.String()
		}
	}
}

// scanIdent returns an ident, function, url or bad-url token.
func (s *Scanner) scanIdent() token.Token {
	pos := s.Pos()
	v := s.scanName()

	if s.read() == '(' {
		if strings.EqualFold(v, "url") {
			return s.scanURL(pos)
		}
		return token.Token{Kind: token.Function, Value: v, Pos: pos}
	}
	s.unread(1)
	return token.Token{Kind: token.Ident, Value: v, Pos: pos}
}

// skipWhitespace consumes any whitespace that follows.
func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.read()) {
	}
	s.unread(1)
}

// scanURL scans the rest of a url token after "url(". A quoted url keeps
// the string's value.
func (s *Scanner) scanURL(pos token.Pos) token.Token {
	bad := func() token.Token {
		s.scanBadURL()
		return token.Token{Kind: token.BadURL, Pos: pos}
	}

	s.skipWhitespace()

	switch ch := s.read(); ch {
	case eof:
		return token.Token{Kind: token.URL, Pos: pos}
	case '"', '\'':
		str := s.scanString()
		if str.Kind == token.BadString {
			return bad()
		}
		s.skipWhitespace()
		if ch := s.read(); ch != ')' && ch != eof {
			return bad()
		}
		return token.Token{Kind: token.URL, Value: str.Value, Pos: pos}
	}
	s.unread(1)

	var sb strings.Builder
	for {
		ch := s.read()
		switch {
		case ch == ')' || ch == eof:
			return token.Token{Kind: token.URL, Value: sb.String(), Pos: pos}
		case isWhitespace(ch):
			s.skipWhitespace()
			if ch := s.read(); ch == ')' || ch == eof {
				return token.Token{Kind: token.URL, Value: sb.String(), Pos: pos}
			}
			return bad()
		case ch == '"' || ch == '\'' || ch == '(' || isNonPrintable(ch):
			return bad()
		case ch == '\\':
			if !s.peekEscape() {
				return bad()
			}
			sb.WriteRune(s.scanEscape())
		default:
			sb.WriteRune(ch)
		}
	}
}

// scanBadURL skips the remnants of a bad url up to and including ")".
func (s *Scanner) scanBadURL() {
	for {
		ch := s.read()
		if ch == ')' || ch == eof {
			return
		} else if s.peekEscape() {
			s.scanEscape()
		}
	}
}

// scanHexDigits reads up to max hex digits into sb.
func (s *Scanner) scanHexDigits(sb *strings.Builder, max int) {
	for i := 0; i < max; i++ {
		ch := s.read()
		if !isHexDigit(ch) {
			s.unread(1)
			return
		}
		sb.WriteRune(ch)
	}
}

// scanUnicodeRange scans a unicode-range after "u+". Wildcards ("?") fill
// up the six digits and span 0 to F.
func (s *Scanner) scanUnicodeRange(pos token.Pos) token.Token {
	var sb strings.Builder
	s.scanHexDigits(&sb, 6)

	n := sb.Len()
	for sb.Len() < 6 {
		if s.read() != '?' {
			s.unread(1)
			break
		}
		sb.WriteByte('?')
	}
	if sb.Len() > n {
		start, _ := strconv.ParseInt(strings.ReplaceAll(sb.String(), "?", "0"), 16, 0)
		end, _ := strconv.ParseInt(strings.ReplaceAll(sb.String(), "?", "F"), 16, 0)
		return token.Token{Kind: token.UnicodeRange, Start: int(start), End: int(end), Pos: pos}
	}

	start, _ := strconv.ParseInt(sb.String(), 16, 0)
	end := start
	if ch1, ch2 := s.read(), s.read(); ch1 == '-' && isHexDigit(ch2) {
		s.unread(1)
		sb.Reset()
		s.scanHexDigits(&sb, 6)
		end, _ = strconv.ParseInt(sb.String(), 16, 0)
	} else {
		s.unread(2)
	}
	return token.Token{Kind: token.UnicodeRange, Start: int(start), End: int(end), Pos: pos}
}

// scanEscape returns the code point escaped by the current backslash.
// Null, surrogate and out of range escapes become U+FFFD.
func (s *Scanner) scanEscape() rune {
	ch := s.read()
	switch {
	case ch == eof:
		return '\uFFFD'
	case !isHexDigit(ch):
		return ch
	}

	var sb strings.Builder
	sb.WriteRune(ch)
	s.scanHexDigits(&sb, 5)

	// A single whitespace after the hex digits belongs to the escape.
	if next := s.read(); !isWhitespace(next) && next != eof {
		s.unread(1)
	}

	v, _ := strconv.ParseInt(sb.String(), 16, 0)
	if v == 0 || v > utf8.MaxRune || (v >= 0xD800 && v <= 0xDFFF) {
		return '\uFFFD'
	}
	return rune(v)
}

// peekEscape reports whether the current code point starts a valid escape.
func (s *Scanner) peekEscape() bool {
	if s.curr() != '\\' {
		return false
	}
	next := s.read()
	s.unread(1)
	return next != '\n'
}

// peekIdent reports whether the current code point starts an identifier.
func (s *Scanner) peekIdent() bool {
	ch0 := s.curr()
	ch1, ch2 := s.read(), s.read()
	s.unread(2)

	switch {
	case ch0 == '-':
		return isNameStart(ch1) || ch1 == '-' || (ch1 == '\\' && ch2 != '\n')
	case ch0 == '\\':
		return ch1 != '\n'
	}
	return isNameStart(ch0)
}

// read returns the next code point, from the pushed back ones first.
// Newlines and NUL are normalized (§3.3) and the position is advanced.
// EOF and read errors are returned as eof.
func (s *Scanner) read() rune {
	if s.bufn > 0 {
		s.bufi = (s.bufi + 1) % len(s.buf)
		s.bufn--
		return s.buf[s.bufi]
	}

	pos := s.pos
	ch, size, err := s.rd.ReadRune()
	if err != nil {
		if err != io.EOF && s.err == nil {
			s.err = err
		}
		ch = eof
	} else {
		switch ch {
		case '\f':
			ch = '\n'
		case '\r':
			if next, n, err := s.rd.ReadRune(); err == nil {
				if next == '\n' {
					size += n
				} else {
					_ = s.rd.UnreadRune()
				}
			}
			ch = '\n'
		case '\000':
			ch = '\uFFFD'
		}

		s.pos.Offset += size
		if ch == '\n' {
			s.pos.Line++
			s.pos.Char = 0
		} else {
			s.pos.Char++
		}
	}

	s.bufi = (s.bufi + 1) % len(s.buf)
	s.buf[s.bufi] = ch
	s.bufpos[s.bufi] = pos
	return ch
}

// unread pushes back the last n code points.
func (s *Scanner) unread(n int) {
	s.bufi = (s.bufi + len(s.buf) - n%len(s.buf)) % len(s.buf)
	s.bufn += n
}

// curr returns the last code point read.
func (s *Scanner) curr() rune {
	return s.buf[s.bufi]
}

// Pos returns the position of the last code point read.
func (s *Scanner) Pos() token.Pos {
	return s.bufpos[s.bufi]
}

func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n'
}

func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isNameStart(ch rune) bool {
	return isLetter(ch) || ch >= '\u0080' || ch == '_'
}

func isName(ch rune) bool {
	return isNameStart(ch) || isDigit(ch) || ch == '-'
}

func isNonPrintable(ch rune) bool {
	return (ch >= '\u0000' && ch <= '\u0008') || ch == '\u000B' || (ch >= '\u000E' && ch <= '\u001F') || ch == '\u007F'
}
