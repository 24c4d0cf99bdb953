// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jvalue"
	"github.com/google/go-cmp/cmp"
)

func TestScanner(t *testing.T) {
	tests := []struct {
		input string
		want  []jvalue.Token
	}{
		// Empty inputs
		{"", nil},
		{"  ", nil},
		{"\n\n  \n", nil},
		{"\t  \r\n \t  \r\n", nil},

		// Constants
		{"true false null", []jvalue.Token{jvalue.True, jvalue.False, jvalue.Null}},

		// Punctuation
		{"{ [ ] } , :", []jvalue.Token{
			jvalue.LBrace, jvalue.LSquare, jvalue.RSquare, jvalue.RBrace, jvalue.Comma, jvalue.Colon,
		}},

		// Strings
		{`"" "a b c" "a\nb\tc"`, []jvalue.Token{jvalue.String, jvalue.String, jvalue.String}},
		{`"\"\\\/\b\f\n\r\t"`, []jvalue.Token{jvalue.String}},
		{`"\u0000\u01fc\uAA9c"`, []jvalue.Token{jvalue.String}},

		// Numbers
		{`0 -1 5139 2.3 5e+9 3.6E+4 -0.001E-100`, []jvalue.Token{
			jvalue.Integer, jvalue.Integer, jvalue.Integer,
			jvalue.Number, jvalue.Number, jvalue.Number, jvalue.Number,
		}},

		// Mixed types
		{`{true,"false":-15 null[]}`, []jvalue.Token{
			jvalue.LBrace, jvalue.True, jvalue.Comma, jvalue.String, jvalue.Colon,
			jvalue.Integer, jvalue.Null, jvalue.LSquare, jvalue.RSquare, jvalue.RBrace,
		}},
		{`{"a": true, "b":[null, 1, 0.5]}`, []jvalue.Token{
			jvalue.LBrace,
			jvalue.String, jvalue.Colon, jvalue.True, jvalue.Comma,
			jvalue.String, jvalue.Colon,
			jvalue.LSquare,
			jvalue.Null, jvalue.Comma, jvalue.Integer, jvalue.Comma, jvalue.Number,
			jvalue.RSquare,
			jvalue.RBrace,
		}},
		{`"a",1,true
       false["b"]
       `, []jvalue.Token{
			jvalue.String, jvalue.Comma, jvalue.Integer, jvalue.Comma, jvalue.True,
			jvalue.False, jvalue.LSquare, jvalue.String, jvalue.RSquare,
		}},
	}

	for _, test := range tests {
		var got []jvalue.Token
		s := jvalue.NewScanner(test.input)
		for s.Next() {
			got = append(got, s.Token())
		}
		if s.Err() != nil {
			t.Errorf("Next failed: %v", s.Err())
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
		if s.Offset() != len(test.input) {
			t.Errorf("Input: %#q\nOffset: got %d, want %d", test.input, s.Offset(), len(test.input))
		}
	}
}

func TestScannerErrors(t *testing.T) {
	tests := []struct {
		input  string
		offset int // of the invalid token
		ntok   int // tokens scanned before the error
	}{
		{"@", 0, 0},
		{"[1, +2]", 4, 3},
		{"  tru", 2, 0},
		{"truex", 0, 0},
		{"nul null", 0, 0},
		{"[False]", 1, 1},
		{"-", 0, 0},
		{"-x", 0, 0},
		{"01", 0, 0},
		{"-01", 0, 0},
		{"1.", 0, 0},
		{"1.e5", 0, 0},
		{"1e", 0, 0},
		{"1e+", 0, 0},
		{`{"a":"b`, 5, 3},
		{`"a\`, 0, 0},
		{`"a\x"`, 0, 0},
		{`"\u12"`, 0, 0},
		{`"\u12g4"`, 0, 0},
		{"\"a\tb\"", 0, 0},
		{"\"\x00\"", 0, 0},
		{"[1]é", 3, 3},
	}
	for _, test := range tests {
		s := jvalue.NewScanner(test.input)
		var n int
		for s.Next() {
			n++
		}
		err := s.Err()
		if err == nil {
			t.Errorf("Input %#q: got no error, want one", test.input)
			continue
		}
		if s.Token() != jvalue.Invalid {
			t.Errorf("Input %#q: token is %v, want invalid", test.input, s.Token())
		}
		var oe interface{ Offset() int }
		if !errors.As(err, &oe) {
			t.Errorf("Input %#q: error %v has no offset", test.input, err)
		} else if oe.Offset() != test.offset {
			t.Errorf("Input %#q: error offset %d, want %d (%v)", test.input, oe.Offset(), test.offset, err)
		}
		if n != test.ntok {
			t.Errorf("Input %#q: scanned %d tokens, want %d", test.input, n, test.ntok)
		}
	}
}

func TestScannerText(t *testing.T) {
	type tokText struct {
		Tok  jvalue.Token
		Text string
		Dec  string
		Span jvalue.Span
	}
	const input = ` {"a\tb": [-1.5e3, "x\u0020y"], "c":false} `
	want := []tokText{
		{jvalue.LBrace, "{", "{", jvalue.Span{Pos: 1, End: 2}},
		{jvalue.String, `"a\tb"`, "a\tb", jvalue.Span{Pos: 2, End: 8}},
		{jvalue.Colon, ":", ":", jvalue.Span{Pos: 8, End: 9}},
		{jvalue.LSquare, "[", "[", jvalue.Span{Pos: 10, End: 11}},
		{jvalue.Number, "-1.5e3", "-1.5e3", jvalue.Span{Pos: 11, End: 17}},
		{jvalue.Comma, ",", ",", jvalue.Span{Pos: 17, End: 18}},
		{jvalue.String, `"x\u0020y"`, "x y", jvalue.Span{Pos: 19, End: 29}},
		{jvalue.RSquare, "]", "]", jvalue.Span{Pos: 29, End: 30}},
		{jvalue.Comma, ",", ",", jvalue.Span{Pos: 30, End: 31}},
		{jvalue.String, `"c"`, "c", jvalue.Span{Pos: 32, End: 35}},
		{jvalue.Colon, ":", ":", jvalue.Span{Pos: 35, End: 36}},
		{jvalue.False, "false", "false", jvalue.Span{Pos: 36, End: 41}},
		{jvalue.RBrace, "}", "}", jvalue.Span{Pos: 41, End: 42}},
	}

	var got []tokText
	s := jvalue.NewScanner(input)
	for s.Next() {
		dec, err := s.Unescape()
		if err != nil {
			t.Fatalf("Unescape %q: %v", s.Text(), err)
		}
		got = append(got, tokText{s.Token(), s.Text(), dec, s.Span()})
	}
	if s.Err() != nil {
		t.Fatalf("Next failed: %v", s.Err())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokens (-want, +got):\n%s", diff)
	}
	if s.Offset() != len(input) {
		t.Errorf("Offset: got %d, want %d", s.Offset(), len(input))
	}
}

func TestTokenString(t *testing.T) {
	for tok, want := range map[jvalue.Token]string{
		jvalue.Invalid: "invalid token",
		jvalue.LBrace:  `"{"`,
		jvalue.Colon:   `":"`,
		jvalue.Integer: "integer",
		jvalue.Null:    "null",
		99:             "invalid token",
	} {
		if got := tok.String(); got != want {
			t.Errorf("Token(%d).String(): got %q, want %q", tok, got, want)
		}
	}
	for _, tok := range []jvalue.Token{jvalue.LBrace, jvalue.LSquare, jvalue.String, jvalue.False} {
		if !tok.IsValue() {
			t.Errorf("%v.IsValue(): got false, want true", tok)
		}
	}
	for _, tok := range []jvalue.Token{jvalue.Invalid, jvalue.RBrace, jvalue.Comma, jvalue.Colon} {
		if tok.IsValue() {
			t.Errorf("%v.IsValue(): got true, want false", tok)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", `""`},
		{" ", `" "`},
		{"a\t\nb", `"a\t\nb"`},
		{"\x00\x01\x02", `"\u0000\u0001\u0002"`},
		{`a "b c\" d"`, `"a \"b c\\\" d\""`},
		{`\ufffd`, `"\\ufffd"`},
		{"\u2028 \u2029 \ufffd", `"\u2028 \u2029 \ufffd"`},
		{"a\xffb\xc0", `"a\ufffdb\ufffd"`},
		{"This is the end\v", `"This is the end\u000b"`},
		{"<\x1e>", `"<\u001e>"`},
	}
	for _, test := range tests {
		got := jvalue.Quote(test.input)
		if got != test.want {
			t.Errorf("Input: %#q\nGot:  %#q\nWant: %#q", test.input, got, test.want)
		}
		if app := string(jvalue.AppendQuote([]byte("x"), test.input)); app != "x"+test.want {
			t.Errorf("AppendQuote %#q: got %#q, want %#q", test.input, app, "x"+test.want)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
		fail  bool
	}{
		{``, ``, true},                            // missing quotes
		{`"missing quote`, ``, true},              // missing quotes
		{`missing quote"`, ``, true},              // missing quotes
		{`""`, ``, false},                         // ok
		{`"ok go"`, "ok go", false},               // ok
		{`"abc\ndef"`, "abc\ndef", false},         // C escapes
		{`"\tabc\n"`, "\tabc\n", false},           // C escapes
		{`"\b\f\n\r\t"`, "\b\f\n\r\t", false},     // C escapes
		{`"a \u0026 b"`, "a & b", false},          // short Unicode escape
		{`"\u"`, ``, true},                        // incomplete Unicode escape
		{`"\u00"`, ``, true},                      // incomplete Unicode escape
		{`"\u00x9"`, "\ufffd", false},             // invalid Unicode escape
		{`"\u019 "`, "\ufffd", false},             // invalid Unicode escape
		{`"\ud83d\ude00"`, "\U0001f600", false},   // surrogate pair
		{`"\ud83d x"`, "\ufffd x", false},         // unpaired high surrogate
		{`"\ude00\ud83d"`, "\ufffd\ufffd", false}, // reversed pair
		{`"\ud83d\u0041"`, "\ufffdA", false},      // high surrogate, non-surrogate
		{`"a\"b"`, `a"b`, false},                  // ok
		{`"a\\b\\cd"`, `a\b\cd`, false},           // ok
		{`"\q"`, "\ufffd", false},                 // unknown escape
	}

	for _, test := range tests {
		got, err := jvalue.Unquote(test.input)
		if err != nil {
			if !test.fail {
				t.Errorf("Unquote(%#q): got %v, want no error", test.input, err)
			} else {
				t.Logf("Unquote(%#q): got expected error: %v", test.input, err)
			}
		} else if test.fail {
			t.Errorf("Unquote(%#q): got nil, want error", test.input)
		}
		if got != test.want {
			t.Errorf("Unquote(%#q): got %#q, want %#q", test.input, got, test.want)
		}
	}
}
