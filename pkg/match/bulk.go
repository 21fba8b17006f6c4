package match

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/utterbank/utterbank/pkg/corpus"
)

// BestAll evaluates queries concurrently against a shared index and returns
// one [Result] per query, in query order.
//
// The index is immutable, so the fan-out needs no locking; concurrency is
// capped at GOMAXPROCS. If any query fails (only possible on an empty
// index) or ctx is cancelled, the remaining work is abandoned and the first
// error is returned.
func (e *Engine) BestAll(ctx context.Context, queries []string, ix *corpus.Index) ([]Result, error) {
	results := make([]Result, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, q := range queries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := e.Best(q, ix)
			if err != nil {
				return fmt.Errorf("match: query %d (%q): %w", i, q, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
