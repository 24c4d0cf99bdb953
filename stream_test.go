// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/creachadair/jvalue"
	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "end 0"},
		{"   ", "end 3"},

		{"true false null", `
true@0 <true>
false@5 <false>
null@11 <null>
end 15`},

		{`0 5 -6.32 0.1e-2`, `
integer@0 <0>
integer@2 <5>
number@4 <-6.32>
number@10 <0.1e-2>
end 16`},

		{`"" "a b c" "a\tb" "a\u0020b"`, `
string@0 <>
string@3 <a b c>
string@11 <a	b>
string@18 <a b>
end 28`},

		{`{"a":15}`, `
"{"@0 <{>
string@1 <a>
":"@4 <:>
integer@5 <15>
"}"@7 <}>
end 8`},

		{` [true, {"x":[]}] `, `
"["@1 <[>
true@2 <true>
","@6 <,>
"{"@8 <{>
string@9 <x>
":"@12 <:>
"["@13 <[>
"]"@14 <]>
"}"@15 <}>
"]"@16 <]>
end 18`},

		// The tokenizer does not check the grammar.
		{`}:]{,`, `
"}"@0 <}>
":"@1 <:>
"]"@2 <]>
"{"@3 <{>
","@4 <,>
end 5`},
	}

	for _, test := range tests {
		th := new(testHandler)
		end, err := jvalue.Tokenize(test.input, th)
		if err != nil {
			t.Errorf("Tokenize %#q: unexpected error: %v", test.input, err)
		}
		th.pr("end %d", end)

		if diff := diffStrings(test.want, th.output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
		end   int
	}{
		{`1 2.0 forthright`, `
integer@0 <1>
number@2 <2.0>
unrecognized@6`, 6},
		{`"what did you`, `unrecognized@0`, 0},
		{`[1, 02]`, `
"["@0 <[>
integer@1 <1>
","@2 <,>
unrecognized@4`, 4},
		{`{"a"#}`, `
"{"@0 <{>
string@1 <a>
unrecognized@4`, 4},
	}

	for _, test := range tests {
		t.Run("Unhandled", func(t *testing.T) {
			th := new(testHandler)
			end, err := jvalue.Tokenize(test.input, th)
			var oe interface{ Offset() int }
			if !errors.As(err, &oe) {
				t.Fatalf("Tokenize %#q: got error %v, want lexical error", test.input, err)
			} else if oe.Offset() != test.end {
				t.Errorf("Tokenize %#q: error offset %d, want %d", test.input, oe.Offset(), test.end)
			}
			if end != test.end {
				t.Errorf("Tokenize %#q: end %d, want %d", test.input, end, test.end)
			}
			if diff := diffStrings(test.want, th.output()); diff != "" {
				t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
			}
		})

		t.Run("Handled", func(t *testing.T) {
			errBad := errors.New("bad input")
			th := &testHandler{onBad: errBad}
			end, err := jvalue.Tokenize(test.input, th)
			if !errors.Is(err, errBad) {
				t.Errorf("Tokenize %#q: got error %v, want %v", test.input, err, errBad)
			}
			if end != test.end {
				t.Errorf("Tokenize %#q: end %d, want %d", test.input, end, test.end)
			}
		})
	}
}

func TestTokenizeStop(t *testing.T) {
	errStop := errors.New("stop")
	th := &testHandler{stopAt: jvalue.Colon, stop: errStop}
	end, err := jvalue.Tokenize(`{"a" : 1, "b": 2}`, th)
	if !errors.Is(err, errStop) {
		t.Errorf("Tokenize: got error %v, want %v", err, errStop)
	}
	if end != 5 {
		t.Errorf("Tokenize: end %d, want 5", end)
	}
	if diff := diffStrings("\"{\"@0 <{>\nstring@1 <a>\n\":\"@5 <:>", th.output()); diff != "" {
		t.Errorf("Output: (-want, +got)\n%s", diff)
	}
}

func diffStrings(want, got string) string {
	return cmp.Diff(strings.Split(strings.TrimSpace(want), "\n"),
		strings.Split(strings.TrimSpace(got), "\n"))
}

type testHandler struct {
	buf strings.Builder

	onBad  error        // returned by Unrecognized
	stopAt jvalue.Token // if valid, Token returns stop for this token type
	stop   error
}

func (t *testHandler) pr(msg string, args ...any) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprintf(&t.buf, msg, args...)
}

func (t *testHandler) output() string { return t.buf.String() }

func (t *testHandler) Token(tok jvalue.Token, pos int, text string) error {
	t.pr("%s@%d <%s>", tok, pos, text)
	if t.stopAt != jvalue.Invalid && tok == t.stopAt {
		return t.stop
	}
	return nil
}

func (t *testHandler) Unrecognized(pos int, err error) error {
	t.pr("unrecognized@%d", pos)
	return t.onBad
}
