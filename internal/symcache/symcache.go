// Package symcache answers repeated symbol lookups for a loaded module image.
package symcache

import (
	"context"
	"fmt"
	"runtime"

	"github.com/apex/log"
	"github.com/blacktop/nidsym/pkg/nid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
)

// DefaultSize is the number of export resolutions kept when no size is given.
const DefaultSize = 4096

// Stats counts where lookups were answered from.
type Stats struct {
	IndexHits   uint64
	CacheHits   uint64
	Resolutions uint64
}

// Resolver resolves symbols of a single nid.Context. Imports are answered
// from the context's precomputed index, exports are memoized in an LRU.
// It is safe for concurrent use.
type Resolver struct {
	ctx     *nid.Context
	exports *lru.Cache[string, nid.SymbolInfo]
	stats   *counters
}

// New returns a Resolver for ctx keeping at most size export resolutions.
func New(ctx *nid.Context, size int) (*Resolver, error) {
	if ctx == nil {
		return nil, fmt.Errorf("symcache: context is required")
	}
	if size <= 0 {
		size = DefaultSize
	}
	cache, err := lru.New[string, nid.SymbolInfo](size)
	if err != nil {
		return nil, fmt.Errorf("symcache: failed to create export cache: %w", err)
	}
	return &Resolver{
		ctx:     ctx,
		exports: cache,
		stats:   new(counters),
	}, nil
}

// Import resolves an encoded import symbol, using the import index first.
func (r *Resolver) Import(text string) (nid.SymbolInfo, error) {
	if info, err := r.ctx.ImportSymbol(text); err == nil {
		r.stats.indexHits.Add(1)
		return info, nil
	}
	log.WithField("symbol", text).Debug("import symbol not indexed, resolving")
	r.stats.resolutions.Add(1)
	return nid.ResolveImport(r.ctx, text)
}

// Export resolves an encoded export symbol. Failures are not cached.
func (r *Resolver) Export(text string) (nid.SymbolInfo, error) {
	if info, ok := r.exports.Get(text); ok {
		r.stats.cacheHits.Add(1)
		return info, nil
	}
	r.stats.resolutions.Add(1)
	info, err := nid.ResolveExport(r.ctx, text)
	if err != nil {
		return nid.SymbolInfo{}, err
	}
	r.exports.Add(text, info)
	return info, nil
}

// Resolve dispatches to Import or Export.
func (r *Resolver) Resolve(dir nid.Direction, text string) (nid.SymbolInfo, error) {
	if dir == nid.Export {
		return r.Export(text)
	}
	return r.Import(text)
}

// Result is the outcome of resolving a single symbol.
type Result struct {
	Symbol string
	Info   nid.SymbolInfo
	Err    error
}

// ResolveAll resolves symbols on up to workers goroutines (NumCPU when <= 0)
// and returns the results in input order. It only fails if ctx is done.
func (r *Resolver) ResolveAll(ctx context.Context, dir nid.Direction, symbols []string, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	results := make([]Result, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, sym := range symbols {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			info, err := r.Resolve(dir, sym)
			results[i] = Result{Symbol: sym, Info: info, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Stats returns a snapshot of the lookup counters.
func (r *Resolver) Stats() Stats {
	return Stats{
		IndexHits:   r.stats.indexHits.Load(),
		CacheHits:   r.stats.cacheHits.Load(),
		Resolutions: r.stats.resolutions.Load(),
	}
}
