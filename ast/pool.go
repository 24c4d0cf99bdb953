// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package ast

import "github.com/creachadair/jvalue/internal/pool"

// A Pool holds reusable parse state for Parse. Using a pool reduces the
// allocation cost of parsing many independent inputs. A Pool is safe for
// concurrent use; each call to Parse has exclusive use of the state it
// checks out until the call returns.
type Pool struct {
	p *pool.Pool[*parseContext]
}

// NewPool constructs a new empty Pool.
func NewPool() *Pool {
	return &Pool{p: pool.New(newParseContext, (*parseContext).reset)}
}

func (p *Pool) get() *parseContext  { return p.p.Get() }
func (p *Pool) put(c *parseContext) { p.p.Put(c) }

// Stats reports the number of parses that have checked out state from p, and
// how many of those required a new allocation.
func (p *Pool) Stats() (gets, news int64) { return p.p.Stats() }
