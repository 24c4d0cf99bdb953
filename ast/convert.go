// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
)

// An IntFunc converts the text of an integer literal into a value. The text
// is a well-formed JSON number with no fraction or exponent.
type IntFunc func(text string) (Value, error)

// ParseBigInt is an IntFunc that converts text to a BigInt.
// It is the default used by Parse.
func ParseBigInt(text string) (Value, error) {
	z, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", text)
	}
	return BigInt{z}, nil
}

// IntAsNumber is an IntFunc that converts text to a Number. Integers with
// magnitude above 2^53 may lose precision.
func IntAsNumber(text string) (Value, error) { return parseNumber(text) }

// IntAsRaw is an IntFunc that retains the text of an integer as a RawInt.
func IntAsRaw(text string) (Value, error) { return RawInt(text), nil }

// parseNumber converts the text of a number literal to the nearest Number.
// A magnitude too large to represent becomes an infinity of the same sign.
func parseNumber(text string) (Number, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("invalid number %q: %w", text, err)
	}
	return Number(f), nil
}
