// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package query

import "github.com/creachadair/jvalue/ast"

// Exists returns a selection that keeps each value for which the query
// Path(keys...) evaluates without error.
func Exists(keys ...any) Selection {
	q := Path(keys...)
	return func(v ast.Value) bool {
		_, err := q.eval(v)
		return err == nil
	}
}

// Is returns a selection that keeps values whose concrete type is T.
// For example, Is[*ast.Object]() keeps only objects.
func Is[T ast.Value]() Selection {
	return func(v ast.Value) bool { _, ok := v.(T); return ok }
}

// IsNot returns a selection that keeps values whose concrete type is not T.
func IsNot[T ast.Value]() Selection {
	return func(v ast.Value) bool { _, ok := v.(T); return !ok }
}

// Equals returns a selection that keeps values structurally equal to want,
// as reported by ast.Equal.
func Equals(want ast.Value) Selection {
	return func(v ast.Value) bool { return ast.Equal(v, want) }
}

// Where returns a selection that keeps objects having a member named key
// whose value is structurally equal to want. Non-object values are dropped.
//
// Integers parsed with the default options are ast.BigInt values, so to match
// them want must be an ast.BigInt, e.g., ast.Int(2).
func Where(key string, want ast.Value) Selection {
	return Filter(func(o *ast.Object) bool {
		v, ok := o.Get(key)
		return ok && ast.Equal(v, want)
	})
}

// Map returns a mapping that applies f to each value of type T, and passes
// values of any other type through unchanged.
func Map[T, U ast.Value](f func(T) U) Mapping {
	return func(v ast.Value) ast.Value {
		if w, ok := v.(T); ok {
			return f(w)
		}
		return v
	}
}

// Filter returns a selection that keeps values of type T for which f reports
// true. Values of any other type are dropped.
func Filter[T ast.Value](f func(T) bool) Selection {
	return func(v ast.Value) bool {
		w, ok := v.(T)
		return ok && f(w)
	}
}
