// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package jpath implements a minimal JSONPath expression parser.
package jpath

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

/*
Grammar:

  expr = root steps
  root = "$"
 steps = step [steps]
  step = "." name
  step = ".." name
  step = "[" value "]"
  step = "[" slice "]"
  name = WORD
  name = "'" QTEXT "'"
  name = "*"
 value = name
 value = INDEX ["," INDEX]...
 value = script
 value = filter
 slice = [INDEX] ":" [INDEX]
script = "(" TEXT ")"
filter = "?(" TEXT ")"

  WORD = RE `\w+`
 QTEXT = { text with \' and \\ escapes }
 INDEX = RE `-?\d+`
  TEXT = { all text with nested parentheses }

Source:
  https://www.ietf.org/archive/id/draft-goessner-dispatch-jsonpath-00.html
*/

// An Expr is a parsed JSONPath expression.
type Expr []Step

// A Step is a single step of a JSONPath expression.
type Step struct {
	Op Op

	// For Member, Recur, and Select steps, the name to match. The name is
	// "*" for a wildcard, and Quoted reports whether it was written in quotes.
	Name   string
	Quoted bool

	// For Index steps, the selected offsets in order.
	Index []int

	// For Slice steps, the bounds of the slice. A nil bound was omitted.
	Lo, Hi *int

	// For Filter and Script steps, the text of the expression without the
	// enclosing parentheses.
	Text string
}

// IsWildcard reports whether s matches all names.
func (s Step) IsWildcard() bool { return s.Name == "*" && !s.Quoted }

// An Error reports a syntax error in a JSONPath expression.
type Error struct {
	Offset int // byte offset in the expression where the error was found
	Err    error
}

func (e *Error) Error() string { return fmt.Sprintf("offset %d: %v", e.Offset, e.Err) }

// Unwrap supports error wrapping.
func (e *Error) Unwrap() error { return e.Err }

// Parse parses s as a JSONPath expression. In case of error, the concrete
// type of the error is *Error.
func Parse(s string) (Expr, error) {
	t, ok := strings.CutPrefix(s, "$")
	if !ok {
		return nil, &Error{Offset: 0, Err: errors.New("missing root marker")}
	}
	var out Expr
	for t != "" {
		step, rest, err := parseStep(t)
		if err != nil {
			return nil, &Error{Offset: len(s) - len(rest), Err: err}
		}
		out = append(out, step)
		t = rest
	}
	return out, nil
}

// MustParse parses s as a JSONPath expression, and panics if it is invalid.
func MustParse(s string) Expr {
	e, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return e
}

func (e Expr) String() string {
	var buf strings.Builder
	buf.WriteString("$")
	for _, s := range e {
		switch s.Op {
		case Member, Recur:
			buf.WriteString(s.Op.String())
			buf.WriteString(s.name())
		case Select:
			fmt.Fprintf(&buf, "[%s]", s.name())
		case Index:
			buf.WriteByte('[')
			for i, v := range s.Index {
				if i > 0 {
					buf.WriteByte(',')
				}
				buf.WriteString(strconv.Itoa(v))
			}
			buf.WriteByte(']')
		case Slice:
			fmt.Fprintf(&buf, "[%s:%s]", bound(s.Lo), bound(s.Hi))
		case Script:
			fmt.Fprintf(&buf, "[(%s)]", s.Text)
		case Filter:
			fmt.Fprintf(&buf, "[?(%s)]", s.Text)
		}
	}
	return buf.String()
}

func (s Step) name() string {
	if s.Quoted {
		return "'" + nameQuoter.Replace(s.Name) + "'"
	}
	return s.Name
}

var nameQuoter = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func bound(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func parseStep(s string) (_ Step, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, ".."); ok {
		step, u, err := parseName(t)
		if err != nil {
			return Step{}, u, fmt.Errorf("invalid ..name: %w", err)
		}
		step.Op = Recur
		return step, u, nil
	}
	if t, ok := strings.CutPrefix(s, "."); ok {
		step, u, err := parseName(t)
		if err != nil {
			return Step{}, u, fmt.Errorf("invalid .name: %w", err)
		}
		step.Op = Member
		return step, u, nil
	}
	if t, ok := strings.CutPrefix(s, "["); ok {
		step, u, err := parseValue(t)
		if err != nil {
			return Step{}, u, err
		}
		u, ok := strings.CutPrefix(u, "]")
		if !ok {
			return Step{}, u, errors.New("missing close bracket")
		}
		return step, u, nil
	}
	return Step{}, s, errors.New("invalid path step")
}

func parseName(s string) (_ Step, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "*"); ok {
		return Step{Op: Select, Name: "*"}, t, nil
	}
	if m := wordRE.FindStringSubmatch(s); m != nil {
		return Step{Op: Select, Name: m[1]}, s[len(m[0]):], nil
	}
	if t, ok := strings.CutPrefix(s, "'"); ok {
		name, rest, err := parseQuoted(t)
		if err != nil {
			return Step{}, rest, err
		}
		return Step{Op: Select, Name: name, Quoted: true}, rest, nil
	}
	return Step{}, s, errors.New("invalid name")
}

// parseQuoted parses the body of a quoted name, up to and including the
// closing quote. Within the name, \' denotes a quote and \\ a backslash.
func parseQuoted(s string) (name, rest string, _ error) {
	var buf strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'':
			return buf.String(), s[i+1:], nil
		case '\\':
			if i+1 < len(s) && (s[i+1] == '\'' || s[i+1] == '\\') {
				i++
			}
		}
		buf.WriteByte(s[i])
	}
	return "", s, errors.New("unterminated quoted name")
}

func parseValue(s string) (_ Step, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "?("); ok {
		text, rest, err := parseScript(t)
		return Step{Op: Filter, Text: text}, rest, err
	}
	if t, ok := strings.CutPrefix(s, "("); ok {
		text, rest, err := parseScript(t)
		return Step{Op: Script, Text: text}, rest, err
	}

	// A slice may omit either bound, but not both.
	lo, t, loErr := parseInt(s)
	if u, ok := strings.CutPrefix(t, ":"); ok {
		out := Step{Op: Slice}
		if loErr == nil {
			out.Lo = &lo
		}
		hi, u2, err := parseInt(u)
		if err == nil {
			out.Hi = &hi
			u = u2
		} else if out.Lo == nil {
			return Step{}, u, errors.New("invalid slice")
		}
		return out, u, nil
	}
	if loErr == nil {
		idx := []int{lo}
		for {
			u, ok := strings.CutPrefix(t, ",")
			if !ok {
				break
			}
			v, u2, err := parseInt(u)
			if err != nil {
				return Step{}, u, err
			}
			idx = append(idx, v)
			t = u2
		}
		return Step{Op: Index, Index: idx}, t, nil
	}
	if step, rest, err := parseName(s); err == nil {
		return step, rest, nil
	}
	return Step{}, s, fmt.Errorf("invalid value: %q", s)
}

func parseInt(s string) (int, string, error) {
	m := indexRE.FindString(s)
	if m == "" {
		return 0, s, errors.New("invalid index")
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return 0, s, fmt.Errorf("invalid index: %w", err)
	}
	return v, s[len(m):], nil
}

func parseScript(s string) (text, rest string, _ error) {
	i, np := 0, 1
	for i < len(s) {
		if s[i] == ')' {
			np--
			if np == 0 {
				break
			}
		} else if s[i] == '(' {
			np++
		}
		i++
	}
	if np > 0 {
		return "", s, errors.New("unbalanced parentheses")
	}
	return s[:i], s[i+1:], nil
}

var (
	wordRE  = regexp.MustCompile(`^(\w+)`)
	indexRE = regexp.MustCompile(`^-?\d+`)
)

// An Op is a path operator.
type Op byte

const (
	Invalid Op = iota // invalid operator
	Member            // member lookup (.name)
	Recur             // recursive descent (..name)
	Select            // bracketed name (['name'] or [*])
	Index             // array index lookup
	Slice             // array slice
	Filter            // filter operator
	Script            // script operator
)

var opText = [...]string{
	Invalid: "invalid",
	Member:  ".",
	Recur:   "..",
	Select:  "select",
	Index:   "index",
	Slice:   "slice",
	Filter:  "?(...)",
	Script:  "(...)",
}

func (o Op) String() string {
	if int(o) < len(opText) {
		return opText[o]
	}
	return opText[Invalid]
}
