// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue

// A Handler receives events from Tokenize. If a method reports an error,
// tokenization stops and that error is returned to the caller.
//
// Unlike a parser, the tokenizer does not check that tokens are arranged
// according to the JSON grammar; that is the responsibility of the handler.
type Handler interface {
	// Token reports a token of type tok starting at offset pos.
	//
	// For a String token, text is the decoded string value without quotation
	// marks. For all other tokens, text is the raw input text of the token.
	Token(tok Token, pos int, text string) error

	// Unrecognized reports that the input at offset pos could not be
	// scanned as a token. The err value describes the lexical problem.
	// Tokenization stops after Unrecognized returns.
	Unrecognized(pos int, err error) error
}

// Tokenize scans input and delivers one call to h for each token. It returns
// the offset of the first byte not consumed, which is len(input) if the
// whole input (including trailing whitespace) was consumed.
//
// If the input contains a lexical error, Tokenize calls h.Unrecognized with
// the offset of the invalid token and returns that offset along with the
// result of Unrecognized, or the lexical error if Unrecognized returns nil.
// If a method of h reports an error, Tokenize stops and returns it.
func Tokenize(input string, h Handler) (int, error) {
	s := NewScanner(input)
	for s.Next() {
		text, err := s.Unescape()
		if err == nil {
			err = h.Token(s.Token(), s.Span().Pos, text)
		}
		if err != nil {
			return s.Span().Pos, err
		}
	}
	if serr := s.Err(); serr != nil {
		pos := s.Offset()
		if err := h.Unrecognized(pos, serr); err != nil {
			return pos, err
		}
		return pos, serr
	}
	return s.Offset(), nil
}
