// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package batch parses many independent JSON documents concurrently.
//
// A Parser runs each parse on a bounded pool of worker goroutines. The
// workers share a single ast.Pool, so the parse state allocated for one
// document is reused by later ones.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/creachadair/jvalue/ast"
	"github.com/panjf2000/ants/v2"
)

// A Result is the outcome of parsing one document.
type Result struct {
	Value ast.Value // the parsed value, if Err == nil
	Err   error     // the parse error, or the context error if not parsed
}

// A Parser parses batches of documents concurrently. A Parser is safe for
// concurrent use by multiple goroutines.
type Parser struct {
	workers *ants.Pool
	opts    ast.Options
}

// New constructs a Parser with the given number of workers. If size <= 0,
// the number of workers is runtime.GOMAXPROCS(0).
//
// Documents are parsed with the settings in opts, which may be nil. If
// opts.Pool is nil, the Parser allocates a pool shared by its workers.
// If opts.Reviver is set, it may be called concurrently from several workers.
func New(size int, opts *ast.Options) (*Parser, error) {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	wp, err := ants.NewPool(size, ants.WithPreAlloc(true))
	if err != nil {
		return nil, fmt.Errorf("batch: create workers: %w", err)
	}
	p := &Parser{workers: wp}
	if opts != nil {
		p.opts = *opts
	}
	if p.opts.Pool == nil {
		p.opts.Pool = ast.NewPool()
	}
	return p, nil
}

// ParseAll parses each of docs and returns a slice of results in which
// the ith entry is the outcome for docs[i]. ParseAll blocks until every
// submitted document has been parsed.
//
// If ctx ends before a document has begun parsing, its result reports the
// context error. An error from ParseAll itself means the documents could not
// be dispatched, for example because p has been closed.
func (p *Parser) ParseAll(ctx context.Context, docs []string) ([]Result, error) {
	out := make([]Result, len(docs))

	var wg sync.WaitGroup
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(docs); j++ {
				out[j].Err = err
			}
			break
		}
		wg.Add(1)
		err := p.workers.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				out[i].Err = err
				return
			}
			v, err := ast.Parse(doc, &p.opts)
			out[i] = Result{Value: v, Err: err}
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("batch: submit document %d: %w", i, err)
		}
	}
	wg.Wait()
	return out, nil
}

// Stats reports the parse state checkouts of the pool used by p. See
// ast.Pool.Stats.
func (p *Parser) Stats() (gets, news int64) { return p.opts.Pool.Stats() }

// Close releases the workers of p. After Close, ParseAll reports an error.
// Close does not wait for parses in progress.
func (p *Parser) Close() { p.workers.Release() }
