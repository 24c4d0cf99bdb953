// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a tree of JSON values, and a parser that constructs
// value trees from JSON source.
//
// The parser is driven by the token events of a jvalue tokenizer and
// maintains its nesting state on an explicit stack, so the depth of the input
// is limited only by available memory.
package ast

import (
	"math/big"
	"strconv"

	"github.com/creachadair/jvalue"
	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
)

// A Value is an arbitrary JSON value. The concrete type of a value produced
// by the parser is one of Null, Bool, Number, String, *Array, or *Object, or
// the type returned by the IntFunc used to convert integer literals (by
// default BigInt).
type Value interface {
	// JSON returns the compact JSON encoding of the value.
	JSON() string
}

// Null represents the null constant.
type Null struct{}

// JSON satisfies the Value interface.
func (Null) JSON() string { return "null" }

// Len returns zero.
func (Null) Len() int { return 0 }

// A Bool is a Boolean constant, true or false.
type Bool bool

// JSON satisfies the Value interface.
func (b Bool) JSON() string { return strconv.FormatBool(bool(b)) }

// A Number is a floating-point value.
type Number float64

// JSON satisfies the Value interface. Numbers are formatted as ECMAScript
// does. Values that have no JSON representation (NaN and infinities) are
// encoded as null.
func (n Number) JSON() string {
	s, err := jsoncanonicalizer.NumberToJSON(float64(n))
	if err != nil {
		return "null"
	}
	return s
}

// A BigInt is an arbitrary-precision integer value.
type BigInt struct{ *big.Int }

// Int constructs a BigInt with value z.
func Int(z int64) BigInt { return BigInt{big.NewInt(z)} }

// JSON satisfies the Value interface.
func (z BigInt) JSON() string {
	if z.Int == nil {
		return "0"
	}
	return z.Int.String()
}

// Equal reports whether z and w represent the same integer.
func (z BigInt) Equal(w BigInt) bool {
	if z.Int == nil || w.Int == nil {
		return z.Int == w.Int
	}
	return z.Int.Cmp(w.Int) == 0
}

// A RawInt is an integer value retained as its decimal text.
type RawInt string

// JSON satisfies the Value interface.
func (r RawInt) JSON() string { return string(r) }

// A String is a string value. Its contents are decoded text.
type String string

// JSON satisfies the Value interface.
func (s String) JSON() string { return jvalue.Quote(string(s)) }

// Len returns the length of s in bytes.
func (s String) Len() int { return len(s) }

// An Array is a sequence of values.
type Array struct {
	Values []Value
}

// NewArray constructs an array containing the given values.
func NewArray(vs ...Value) *Array { return &Array{Values: vs} }

// Len returns the number of elements in a.
func (a *Array) Len() int { return len(a.Values) }

// JSON satisfies the Value interface.
func (a *Array) JSON() string { return string(appendJSON(nil, a)) }

// Equal reports whether a and b have equal elements in the same order.
func (a *Array) Equal(b *Array) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Values) != len(b.Values) {
		return false
	}
	for i, v := range a.Values {
		if !Equal(v, b.Values[i]) {
			return false
		}
	}
	return true
}

// Equal reports whether a and b are structurally equal. Objects are equal if
// they have the same keys in the same order mapped to equal values.
// Values of types not defined by this package are compared by their JSON
// encodings.
func Equal(a, b Value) bool {
	switch t := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		u, ok := b.(Bool)
		return ok && t == u
	case Number:
		u, ok := b.(Number)
		return ok && t == u
	case String:
		u, ok := b.(String)
		return ok && t == u
	case BigInt:
		u, ok := b.(BigInt)
		return ok && t.Equal(u)
	case RawInt:
		u, ok := b.(RawInt)
		return ok && t == u
	case *Array:
		u, ok := b.(*Array)
		return ok && t.Equal(u)
	case *Object:
		u, ok := b.(*Object)
		return ok && t.Equal(u)
	case nil:
		return b == nil
	default:
		return b != nil && a.JSON() == b.JSON()
	}
}

// appendJSON appends the compact JSON encoding of v to buf.
func appendJSON(buf []byte, v Value) []byte {
	switch t := v.(type) {
	case *Array:
		buf = append(buf, '[')
		for i, elt := range t.Values {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendJSON(buf, elt)
		}
		return append(buf, ']')
	case *Object:
		buf = append(buf, '{')
		for i, m := range t.members {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = jvalue.AppendQuote(buf, m.Key)
			buf = append(buf, ':')
			buf = appendJSON(buf, m.Value)
		}
		return append(buf, '}')
	case String:
		return jvalue.AppendQuote(buf, string(t))
	case nil:
		return append(buf, "null"...)
	default:
		return append(buf, v.JSON()...)
	}
}
