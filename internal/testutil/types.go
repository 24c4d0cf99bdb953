// Package testutil defines support code for unit tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/jvalue/ast"
)

// Plain converts v into the plain Go representation produced by the standard
// library decoder (see Decode): objects become map[string]any, arrays []any,
// numbers float64, and integers json.Number.
func Plain(v ast.Value) any {
	switch t := v.(type) {
	case ast.Null, nil:
		return nil
	case ast.Bool:
		return bool(t)
	case ast.Number:
		return float64(t)
	case ast.BigInt:
		return json.Number(t.JSON())
	case ast.RawInt:
		return json.Number(t)
	case ast.String:
		return string(t)
	case *ast.Array:
		out := make([]any, len(t.Values))
		for i, elt := range t.Values {
			out[i] = Plain(elt)
		}
		return out
	case *ast.Object:
		out := make(map[string]any, t.Len())
		for key, val := range t.All() {
			out[key] = Plain(val)
		}
		return out
	default:
		panic(fmt.Sprintf("unexpected value type %T", v))
	}
}

// Decode decodes input with the standard library decoder. Integers are kept
// as json.Number, and other numbers are converted to float64. If intFloat is
// true, integers are also converted to float64.
func Decode(input string, intFloat bool) (any, error) {
	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return normalize(v, intFloat), nil
}

func normalize(v any, intFloat bool) any {
	switch t := v.(type) {
	case json.Number:
		if !intFloat && !strings.ContainsAny(string(t), ".eE") {
			return t
		}
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil {
			panic(err)
		}
		return f
	case []any:
		for i, elt := range t {
			t[i] = normalize(elt, intFloat)
		}
	case map[string]any:
		for key, val := range t {
			t[key] = normalize(val, intFloat)
		}
	}
	return v
}
