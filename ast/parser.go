// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"github.com/creachadair/jvalue"
)

// Options control the behavior of Parse. A nil *Options is ready for use and
// provides default settings.
type Options struct {
	// If set, the parsed value is transformed by Revive with this function
	// before it is returned.
	Reviver Reviver

	// If set, this function converts integer literals to values.
	// If nil, ParseBigInt is used.
	Int IntFunc

	// If set, the parse state is checked out from this pool and released to
	// it when parsing ends. If nil, new parse state is allocated per call.
	Pool *Pool
}

func (o *Options) reviver() Reviver {
	if o == nil {
		return nil
	}
	return o.Reviver
}

func (o *Options) intFunc() IntFunc {
	if o == nil || o.Int == nil {
		return ParseBigInt
	}
	return o.Int
}

func (o *Options) pool() *Pool {
	if o == nil {
		return nil
	}
	return o.Pool
}

// Parse parses input as a single JSON value and returns it. The whole input
// must be consumed; only whitespace may follow the value.
//
// In case of error, the returned error has concrete type *jvalue.SyntaxError.
// If opts.Reviver deletes the root value, Parse returns nil, nil.
func Parse(input string, opts *Options) (Value, error) {
	var c *parseContext
	if p := opts.pool(); p != nil {
		c = p.get()
		defer p.put(c)
	} else {
		c = newParseContext()
	}
	c.toInt = opts.intFunc()

	root, err := c.parse(input)
	if err != nil {
		return nil, err
	}
	if r := opts.reviver(); r != nil {
		if v, ok := Revive(root, r); ok {
			return v, nil
		}
		return nil, nil
	}
	return root, nil
}

// MustParse parses input with default options and returns the resulting
// value. It panics if parsing fails.
func MustParse(input string) Value {
	v, err := Parse(input, nil)
	if err != nil {
		panic(err)
	}
	return v
}

// A mode records the grammatical position within one level of nesting.
type mode byte

const (
	streamStart mode = iota // before the top-level value
	streamEnd               // after the top-level value
	objectStart             // after "{"
	objectKey               // after a member key
	objectColon             // after a member colon
	objectPair              // after a member value
	objectComma             // after a member comma
	arrayStart              // after "["
	arrayItem               // after an array element
	arrayComma              // after an element comma
)

// A parseContext holds the state of a single parse. It implements the
// jvalue.Handler interface to build values from token events.
//
// The stack holds the open containers, each an *Object or *Array, and modes
// holds the corresponding grammatical position of each. The container being
// filled is at stack[cursor]; cursor is -1 when no container is open.
type parseContext struct {
	stack  []Value
	modes  []mode
	cursor int
	mode   mode   // cached modes[cursor], or the stream mode when cursor < 0
	key    string // pending key, valid when mode == objectColon
	result Value
	toInt  IntFunc
}

func newParseContext() *parseContext { return &parseContext{cursor: -1} }

// maxRetainedDepth bounds the stack capacity kept by a reset context, so
// that one deeply-nested input does not pin a large stack in a pool.
const maxRetainedDepth = 1024

// reset restores c to its initial state.
func (c *parseContext) reset() {
	if cap(c.stack) > maxRetainedDepth {
		c.stack, c.modes = nil, nil
	} else {
		clear(c.stack[:cap(c.stack)])
		c.stack, c.modes = c.stack[:0], c.modes[:0]
	}
	c.cursor = -1
	c.mode = streamStart
	c.key = ""
	c.result = nil
	c.toInt = nil
}

// parse tokenizes input into c and returns the completed value.
func (c *parseContext) parse(input string) (Value, error) {
	end, err := jvalue.Tokenize(input, c)
	if err != nil {
		if _, ok := jvalue.IsSyntaxError(err); ok {
			return nil, err
		}
		return nil, jvalue.LexicalError(end, err)
	} else if end != len(input) {
		return nil, jvalue.UnexpectedToken(end)
	} else if c.mode != streamEnd {
		return nil, jvalue.UnexpectedEnd()
	}
	return c.result, nil
}

// Token implements part of the jvalue.Handler interface.
func (c *parseContext) Token(tok jvalue.Token, pos int, text string) error {
	if tok == jvalue.String && (c.mode == objectStart || c.mode == objectComma) {
		c.key = text
		c.setMode(objectKey)
		return nil
	}
	if tok.IsValue() {
		if err := c.check(pos); err != nil {
			return err
		}
	}

	switch tok {
	case jvalue.LBrace:
		c.push(NewObject(), objectStart)

	case jvalue.LSquare:
		c.push(new(Array), arrayStart)

	case jvalue.RBrace:
		if c.mode != objectPair && c.mode != objectStart {
			return jvalue.UnexpectedToken(pos)
		}
		c.pop()

	case jvalue.RSquare:
		if c.mode != arrayItem && c.mode != arrayStart {
			return jvalue.UnexpectedToken(pos)
		}
		c.pop()

	case jvalue.String:
		c.insert(String(text))

	case jvalue.Number:
		n, err := parseNumber(text)
		if err != nil {
			return jvalue.LexicalError(pos, err)
		}
		c.insert(n)

	case jvalue.Integer:
		v, err := c.toInt(text)
		if err != nil {
			return jvalue.LexicalError(pos, err)
		}
		c.insert(v)

	case jvalue.True, jvalue.False:
		c.insert(Bool(tok == jvalue.True))

	case jvalue.Null:
		c.insert(Null{})

	case jvalue.Colon:
		if c.mode != objectKey {
			return jvalue.UnexpectedToken(pos)
		}
		c.setMode(objectColon)

	case jvalue.Comma:
		switch c.mode {
		case objectPair:
			c.setMode(objectComma)
		case arrayItem:
			c.setMode(arrayComma)
		default:
			return jvalue.UnexpectedToken(pos)
		}

	default:
		return jvalue.UnexpectedToken(pos)
	}
	return nil
}

// Unrecognized implements part of the jvalue.Handler interface.
func (c *parseContext) Unrecognized(pos int, err error) error {
	return jvalue.LexicalError(pos, err)
}

// check reports an error if a value may not begin at the current position.
func (c *parseContext) check(pos int) error {
	switch c.mode {
	case streamStart, objectColon, arrayStart, arrayComma:
		return nil
	case objectStart, objectComma:
		return jvalue.KeyExpected(pos)
	default:
		return jvalue.UnexpectedToken(pos)
	}
}

// insert stores v at the current position. The caller must have verified
// that a value is permitted there.
func (c *parseContext) insert(v Value) {
	switch c.mode {
	case streamStart:
		c.result = v
		c.mode = streamEnd
	case objectColon:
		c.stack[c.cursor].(*Object).Set(c.key, v)
		c.key = ""
		c.setMode(objectPair)
	default:
		a := c.stack[c.cursor].(*Array)
		a.Values = append(a.Values, v)
		c.setMode(arrayItem)
	}
}

// push attaches the empty container v at the current position, then makes it
// the current container with mode m.
func (c *parseContext) push(v Value, m mode) {
	c.insert(v)
	c.cursor++
	c.stack = append(c.stack, v)
	c.modes = append(c.modes, m)
	c.mode = m
}

// pop closes the current container and restores the mode of its parent.
func (c *parseContext) pop() {
	c.stack[c.cursor] = nil
	c.stack = c.stack[:c.cursor]
	c.modes = c.modes[:c.cursor]
	c.cursor--
	if c.cursor < 0 {
		c.mode = streamEnd
	} else {
		c.mode = c.modes[c.cursor]
	}
}

func (c *parseContext) setMode(m mode) {
	c.mode = m
	if c.cursor >= 0 {
		c.modes[c.cursor] = m
	}
}
