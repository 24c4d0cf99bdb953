// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jvalue implements a JSON tokenizer and the error types shared by
// the packages that build values from JSON text.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON. Construct a scanner
// from a string and call its Next method to iterate over the tokens of the
// input. Next reports false at the end of input or at a lexical error:
//
//	s := jvalue.NewScanner(input)
//	for s.Next() {
//	   log.Printf("Next token: %v %q", s.Token(), s.Text())
//	}
//	if err := s.Err(); err != nil {
//	   log.Fatalf("Scanning failed: %v", err)
//	}
//
// # Tokenizing
//
// Tokenize drives a Handler with one call per token of the input. String
// tokens are delivered decoded. The tokenizer does not check the grammar;
// that is the job of the handler. The ast package implements a handler that
// builds a tree of values from the token events:
//
//	v, err := ast.Parse(input, nil)
//
// # Errors
//
// Errors reported while building values have concrete type *SyntaxError.
// The message of a SyntaxError is one of
//
//	Unexpected token at <offset>
//	Object key expected at <offset>
//	Unexpected end
//
// where the offset is the 0-based byte offset of the offending token.
package jvalue
