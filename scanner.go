// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/creachadair/jvalue/internal/escape"

	"go4.org/mem"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Integer: "integer",
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// IsValue reports whether t can begin a JSON value.
func (t Token) IsValue() bool {
	switch t {
	case LBrace, LSquare, Integer, Number, String, True, False, Null:
		return true
	}
	return false
}

// A Scanner reads lexical tokens from an input string.  Each call to Next
// advances the scanner to the next token, or reports that no further token is
// available.
type Scanner struct {
	src string
	tok Token
	err error

	pos, end int // start and end offsets of current token
}

// NewScanner constructs a new lexical scanner that consumes input.
func NewScanner(input string) *Scanner { return &Scanner{src: input} }

// Next advances s to the next token of the input and reports whether one is
// available. At the end of input, or if a lexical error occurs, Next returns
// false; use Err to distinguish the two cases.
func (s *Scanner) Next() bool {
	s.err = nil
	s.tok = Invalid

	// Discard whitespace.
	s.pos = s.end
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}
	s.end = s.pos
	if s.pos == len(s.src) {
		return false
	}

	var err error
	switch ch := s.src[s.pos]; {
	case selfDelim(ch) != Invalid:
		s.tok = selfDelim(ch)
		s.end++
	case isNumStart(ch):
		err = s.scanNumber()
	case ch == '"':
		err = s.scanString()
	case ch == 't':
		err = s.scanName(True, mem.S("true"))
	case ch == 'f':
		err = s.scanName(False, mem.S("false"))
	case ch == 'n':
		err = s.scanName(Null, mem.S("null"))
	default:
		r, _ := utf8.DecodeRuneInString(s.src[s.pos:])
		err = fmt.Errorf("unexpected %q", r)
	}
	if err != nil {
		s.tok = Invalid
		s.err = &posError{pos: s.pos, err: err}
		return false
	}
	return true
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the lexical error reported by the last call to Next, or nil.
// The concrete type of a non-nil error has an Offset method reporting the
// start offset of the token that could not be scanned.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token. For a string token,
// the text includes the enclosing quotation marks.
func (s *Scanner) Text() string { return s.src[s.pos:s.end] }

// Unescape returns the decoded contents of the current string token.  It
// returns the same result as Text for a token of any other type.
func (s *Scanner) Unescape() (string, error) {
	if s.tok != String {
		return s.Text(), nil
	}
	return escape.Unquote(mem.S(s.src[s.pos+1 : s.end-1]))
}

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Offset returns the offset of the first input byte not yet consumed.
func (s *Scanner) Offset() int { return s.end }

func (s *Scanner) scanString() error {
	i := s.pos + 1
	for {
		if i >= len(s.src) {
			return fmt.Errorf("unterminated string")
		}
		switch ch := s.src[i]; {
		case ch == '"':
			s.end = i + 1
			s.tok = String
			return nil
		case ch == '\\':
			i++
			if i >= len(s.src) {
				return fmt.Errorf("incomplete escape")
			}
			switch esc := s.src[i]; esc {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				i++
			case 'u':
				if !isHex4(s.src[i+1:]) {
					return fmt.Errorf("invalid Unicode escape")
				}
				i += 5
			default:
				return fmt.Errorf("invalid %q after escape", esc)
			}
		case ch < ' ':
			return fmt.Errorf("unescaped control %q", ch)
		default:
			i++
		}
	}
}

func (s *Scanner) scanNumber() error {
	i := s.pos
	if s.src[i] == '-' {
		// If there is a leading sign, we need at least one digit.
		i++
		if i >= len(s.src) || !isDigit(s.src[i]) {
			return fmt.Errorf("want digit after sign")
		}
	}

	// Consume the integer part. A leading zero must be the only digit.
	// That is: 0.12 is OK, 01.2 is not.
	if s.src[i] == '0' {
		i++
		if i < len(s.src) && isDigit(s.src[i]) {
			return fmt.Errorf("extra leading zeroes")
		}
	} else {
		i = s.skipDigits(i)
	}
	s.tok = Integer

	// If a decimal point follows, consume a fractional part.
	if i < len(s.src) && s.src[i] == '.' {
		j := s.skipDigits(i + 1)
		if j == i+1 {
			return fmt.Errorf("no digits after decimal point")
		}
		i = j
		s.tok = Number
	}

	// If an exponent follows, consume it.
	if i < len(s.src) && (s.src[i] == 'e' || s.src[i] == 'E') {
		i++
		if i < len(s.src) && (s.src[i] == '+' || s.src[i] == '-') {
			i++
		}
		j := s.skipDigits(i)
		if j == i {
			return fmt.Errorf("missing exponent digits")
		}
		i = j
		s.tok = Number
	}
	s.end = i
	return nil
}

func (s *Scanner) scanName(tok Token, want mem.RO) error {
	i := s.pos
	for i < len(s.src) && isNameByte(s.src[i]) {
		i++
	}
	if got := mem.S(s.src[s.pos:i]); !got.Equal(want) {
		return fmt.Errorf("unknown constant %q", got.StringCopy())
	}
	s.end = i
	s.tok = tok
	return nil
}

func (s *Scanner) skipDigits(i int) int {
	for i < len(s.src) && isDigit(s.src[i]) {
		i++
	}
	return i
}

type posError struct {
	pos int
	err error
}

func (p *posError) Error() string {
	return fmt.Sprintf("%s (offset %d)", p.err.Error(), p.pos)
}

func (p *posError) Unwrap() error { return p.err }

// Offset reports the start offset of the token that failed to scan.
func (p *posError) Offset() int { return p.pos }

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch byte) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch byte) bool    { return '0' <= ch && ch <= '9' }
func isNameByte(ch byte) bool { return ch >= 'a' && ch <= 'z' }

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// isHex4 reports whether s begins with exactly 4 hexadecimal digits.
func isHex4(s string) bool {
	if len(s) < 4 {
		return false
	}
	for i := range 4 {
		if !isHexDigit(s[i]) {
			return false
		}
	}
	return true
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch byte) Token {
	i := strings.IndexByte("{}[],:", ch)
	if i >= 0 {
		return self[i]
	}
	return Invalid
}
