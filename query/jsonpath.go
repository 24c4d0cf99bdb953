// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package query

import (
	"fmt"

	"github.com/creachadair/jvalue/ast"
	"github.com/creachadair/jvalue/jpath"
)

// JSONPath compiles a JSONPath expression into a query. The query yields an
// array of the values selected by the expression, in the order they were
// reached; the array is empty if nothing matches.
//
// Member, wildcard, recursive descent, index, and slice steps are supported.
// Filter and script steps are rejected.
func JSONPath(expr string) (Query, error) {
	e, err := jpath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", expr, err)
	}
	q := make(nodeQuery, len(e))
	for i, s := range e {
		ns, err := compileStep(s)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		q[i] = ns
	}
	return q, nil
}

// MustJSONPath is as JSONPath, but panics if expr is invalid.
func MustJSONPath(expr string) Query {
	q, err := JSONPath(expr)
	if err != nil {
		panic(err)
	}
	return q
}

// A nodeStep appends to out the values selected from v.
type nodeStep func(out []ast.Value, v ast.Value) []ast.Value

type nodeQuery []nodeStep

func (q nodeQuery) eval(v ast.Value) (ast.Value, error) {
	cur := []ast.Value{v}
	for _, step := range q {
		var next []ast.Value
		for _, w := range cur {
			next = step(next, w)
		}
		cur = next
	}
	return ast.NewArray(cur...), nil
}

func compileStep(s jpath.Step) (nodeStep, error) {
	switch s.Op {
	case jpath.Member, jpath.Select:
		return selectName(s.Name, s.IsWildcard()), nil

	case jpath.Recur:
		sel := selectName(s.Name, s.IsWildcard())
		return func(out []ast.Value, v ast.Value) []ast.Value {
			stk := []ast.Value{v}
			for len(stk) != 0 {
				next := stk[len(stk)-1]
				stk = stk[:len(stk)-1]
				out = sel(out, next)

				kids := children(next)
				for i := len(kids) - 1; i >= 0; i-- {
					stk = append(stk, kids[i])
				}
			}
			return out
		}, nil

	case jpath.Index:
		return func(out []ast.Value, v ast.Value) []ast.Value {
			arr, err := asArray(v)
			if err != nil {
				return out
			}
			for _, i := range s.Index {
				if j, ok := offset(i, len(arr)); ok {
					out = append(out, arr[j])
				}
			}
			return out
		}, nil

	case jpath.Slice:
		return func(out []ast.Value, v ast.Value) []ast.Value {
			arr, err := asArray(v)
			if err != nil {
				return out
			}
			start, end := 0, len(arr)
			if s.Lo != nil {
				start = clamp(*s.Lo, len(arr))
			}
			if s.Hi != nil {
				end = clamp(*s.Hi, len(arr))
			}
			if start < end {
				out = append(out, arr[start:end]...)
			}
			return out
		}, nil

	default:
		return nil, fmt.Errorf("unsupported %s step", s.Op)
	}
}

// selectName returns a step that selects the member of an object with the
// given name, or all the children of an object or array if wild is true.
func selectName(name string, wild bool) nodeStep {
	if wild {
		return func(out []ast.Value, v ast.Value) []ast.Value {
			return append(out, children(v)...)
		}
	}
	return func(out []ast.Value, v ast.Value) []ast.Value {
		if obj, ok := v.(*ast.Object); ok {
			if val, ok := obj.Get(name); ok {
				out = append(out, val)
			}
		}
		return out
	}
}

// clamp resolves i as a slice bound for a sequence of length n.
func clamp(i, n int) int {
	if i < 0 {
		i += n
	}
	return max(0, min(i, n))
}
