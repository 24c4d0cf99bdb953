// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the syntax errors reported while building values.
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	Lexical    ErrorKind = iota + 1 // the tokenizer could not scan the input
	Grammar                         // a token is not valid at its position
	Incomplete                      // the input ended before a value was complete
)

var kindStr = [...]string{
	Lexical:    "lexical",
	Grammar:    "grammar",
	Incomplete: "incomplete",
}

func (k ErrorKind) String() string {
	if k == 0 || int(k) >= len(kindStr) {
		return "unknown"
	}
	return kindStr[k]
}

// SyntaxError is the concrete type of errors reported when input cannot be
// converted into a value.
type SyntaxError struct {
	Kind    ErrorKind
	Offset  int    // 0-based byte offset of the error, or -1 if not applicable
	Message string // e.g., "Unexpected token"

	err error
}

// Error satisfies the error interface. The result has the form
// "<message> at <offset>", or just "<message>" if Offset < 0.
func (s *SyntaxError) Error() string {
	if s.Offset < 0 {
		return s.Message
	}
	return fmt.Sprintf("%s at %d", s.Message, s.Offset)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// Standard error messages.
const (
	MsgUnexpectedToken = "Unexpected token"
	MsgUnexpectedEnd   = "Unexpected end"
	MsgKeyExpected     = "Object key expected"
)

// UnexpectedToken returns a grammar error for the token at offset pos.
func UnexpectedToken(pos int) *SyntaxError {
	return &SyntaxError{Kind: Grammar, Offset: pos, Message: MsgUnexpectedToken}
}

// KeyExpected returns a grammar error for a value at offset pos where an
// object key is required.
func KeyExpected(pos int) *SyntaxError {
	return &SyntaxError{Kind: Grammar, Offset: pos, Message: MsgKeyExpected}
}

// UnexpectedEnd returns an error for input that ended before the value it
// contains was complete.
func UnexpectedEnd() *SyntaxError {
	return &SyntaxError{Kind: Incomplete, Offset: -1, Message: MsgUnexpectedEnd}
}

// LexicalError returns an error for input at offset pos that could not be
// scanned or converted, wrapping the underlying cause.
func LexicalError(pos int, cause error) *SyntaxError {
	return &SyntaxError{Kind: Lexical, Offset: pos, Message: MsgUnexpectedToken, err: cause}
}

// IsSyntaxError reports whether err is or wraps a *SyntaxError, and if so
// returns it.
func IsSyntaxError(err error) (*SyntaxError, bool) {
	var serr *SyntaxError
	if errors.As(err, &serr) {
		return serr, true
	}
	return nil, false
}
