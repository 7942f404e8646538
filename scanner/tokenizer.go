package scanner

import (
	"github.com/benbjohnson/css3/token"
)

// Tokenizer represents a cursor over the token stream of a single source.
// Tokens are scanned on demand and kept so that any token past the cursor
// can be inspected without consuming it.
type Tokenizer struct {
	s      *Scanner
	tokens []token.Token
	i      int // number of consumed tokens
}

// NewTokenizer returns a tokenizer reading tokens from s.
func NewTokenizer(s *Scanner) *Tokenizer {
	return &Tokenizer{s: s}
}

// NewTokenizerFromTokens returns a tokenizer over a fixed list of tokens.
// The stream ends with an EOF token positioned after the last token.
func NewTokenizerFromTokens(tokens []token.Token) *Tokenizer {
	a := make([]token.Token, len(tokens), len(tokens)+1)
	copy(a, tokens)

	var pos token.Pos
	if len(a) > 0 {
		pos = a[len(a)-1].Pos
	}
	if len(a) == 0 || a[len(a)-1].Kind != token.EOF {
		a = append(a, token.Token{Kind: token.EOF, Pos: pos})
	}
	return &Tokenizer{tokens: a}
}

// Consume advances the cursor by one and returns the consumed token.
// At the end of the input it returns an EOF token on every call.
func (t *Tokenizer) Consume() token.Token {
	tok := t.Lookahead(1)
	if t.i < len(t.tokens) {
		t.i++
	}
	return tok
}

// Lookahead returns the token n positions past the cursor without
// consuming it. Lookahead(1) is the token the next Consume returns and
// Lookahead(0) is the token most recently consumed. Positions past the
// end of the input return the EOF token.
func (t *Tokenizer) Lookahead(n int) token.Token {
	idx := t.i + n - 1
	if idx < 0 {
		panic("scanner: lookahead before start of token stream")
	}
	t.fill(idx + 1)
	if idx >= len(t.tokens) {
		return t.tokens[len(t.tokens)-1]
	}
	return t.tokens[idx]
}

// Current returns the token most recently consumed.
// Before the first Consume it returns the first token of the stream.
func (t *Tokenizer) Current() token.Token {
	if t.i == 0 {
		return t.Lookahead(1)
	}
	return t.Lookahead(0)
}

// Location returns the location of the token most recently consumed.
func (t *Tokenizer) Location() token.Pos {
	return t.Current().Pos
}

// Reconsume moves the cursor back by one token so that the next Consume
// returns the token most recently consumed again.
func (t *Tokenizer) Reconsume() {
	if t.i == 0 {
		panic("scanner: reconsume before start of token stream")
	}
	t.i--
}

// EOF returns true if the next token is the EOF token.
func (t *Tokenizer) EOF() bool {
	return t.Lookahead(1).Kind == token.EOF
}

// Err returns the error of the underlying reader, if any.
func (t *Tokenizer) Err() error {
	if t.s == nil {
		return nil
	}
	return t.s.Err()
}

// fill scans tokens until at least n are buffered or EOF has been reached.
func (t *Tokenizer) fill(n int) {
	for len(t.tokens) < n {
		if len(t.tokens) > 0 && t.tokens[len(t.tokens)-1].Kind == token.EOF {
			return
		}
		t.tokens = append(t.tokens, t.s.Scan())
	}
}
