// Package library owns the published corpus index and routes every corpus
// operation through observability.
//
// A [Library] holds the current [corpus.Index] behind an atomic pointer.
// [Library.Reload] builds a fresh index from the metadata file and publishes
// it with a single pointer swap, so readers never observe a partially built
// index; queries running against the previous index simply finish on it.
// The optional [Watcher] triggers reloads when the metadata file changes on
// disk.
package library

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/utterbank/utterbank/internal/loader"
	"github.com/utterbank/utterbank/internal/observe"
	"github.com/utterbank/utterbank/pkg/corpus"
	"github.com/utterbank/utterbank/pkg/match"
	"github.com/utterbank/utterbank/pkg/phoneme"
)

// ErrNotLoaded is returned by [Library.Ready] before the first successful
// [Library.Reload].
var ErrNotLoaded = errors.New("library: corpus not loaded")

// emptyIndex backs operations issued before the first reload.
var emptyIndex = corpus.NewIndex(nil)

// Library serves corpus operations against the most recently published
// index. All methods are safe for concurrent use.
type Library struct {
	path    string
	loader  *loader.Loader
	engine  *match.Engine
	metrics *observe.Metrics

	reloadMu sync.Mutex
	idx      atomic.Pointer[corpus.Index]
}

// New creates a [Library] reading its corpus from the metadata file at path.
// A nil metrics falls back to [observe.DefaultMetrics]. The corpus is not
// loaded until the first [Library.Reload].
func New(path string, ld *loader.Loader, eng *match.Engine, m *observe.Metrics) *Library {
	if ld == nil {
		ld = loader.New()
	}
	if eng == nil {
		eng = match.New()
	}
	if m == nil {
		m = observe.DefaultMetrics()
	}
	return &Library{path: path, loader: ld, engine: eng, metrics: m}
}

// Index returns the currently published index, or an empty index before the
// first successful reload.
func (l *Library) Index() *corpus.Index {
	if ix := l.idx.Load(); ix != nil {
		return ix
	}
	return emptyIndex
}

// Ready reports whether a corpus has been published. It satisfies the
// readiness [health.Checker] contract.
func (l *Library) Ready(context.Context) error {
	if l.idx.Load() == nil {
		return ErrNotLoaded
	}
	return nil
}

// Reload reads the metadata file, builds a fresh index, and publishes it.
// On failure the previously published index stays in place. Concurrent
// reloads are serialised.
func (l *Library) Reload(ctx context.Context) error {
	l.reloadMu.Lock()
	defer l.reloadMu.Unlock()

	ctx, span := observe.StartSpan(ctx, "library.reload")
	defer span.End()

	start := time.Now()
	samples, err := l.loader.Load(l.path)
	if err != nil {
		l.metrics.RecordIndexBuild(ctx, "error", time.Since(start).Seconds(), 0)
		return fmt.Errorf("library: reload: %w", err)
	}

	next := corpus.NewIndex(samples)
	old := l.idx.Swap(next)

	oldLen := 0
	if old != nil {
		oldLen = old.Len()
	}
	elapsed := time.Since(start)
	l.metrics.RecordIndexBuild(ctx, "ok", elapsed.Seconds(), int64(next.Len()-oldLen))

	log := observe.Logger(ctx)
	if old == nil {
		log.Info("library: corpus loaded",
			"path", l.path,
			"samples", next.Len(),
			"categories", len(next.Categories()),
			"duration", elapsed,
		)
	} else {
		d := DiffIndexes(old, next)
		log.Info("library: corpus reloaded",
			"path", l.path,
			"samples", next.Len(),
			"added", len(d.Added),
			"removed", len(d.Removed),
			"changed", len(d.Changed),
			"duration", elapsed,
		)
	}
	return nil
}

// Best returns the best match for query along with the winning sample.
func (l *Library) Best(ctx context.Context, query string) (match.Result, corpus.Sample, error) {
	ctx, span := observe.StartSpan(ctx, "library.best")
	defer span.End()

	ix := l.Index()
	start := time.Now()
	r, err := l.engine.Best(query, ix)
	if err != nil {
		l.metrics.RecordLookupError(ctx, "best")
		return match.Result{}, corpus.Sample{}, err
	}
	l.metrics.RecordMatch(ctx, r.Stage.String(), time.Since(start).Seconds())

	s, err := ix.ByID(r.SampleID)
	if err != nil {
		return match.Result{}, corpus.Sample{}, err
	}
	observe.Logger(ctx).Debug("library: best match",
		"query", query,
		"sample", r.SampleID,
		"stage", r.Stage.String(),
		"score", r.Score,
	)
	return r, s, nil
}

// BestAll evaluates queries concurrently, in query order.
func (l *Library) BestAll(ctx context.Context, queries []string) ([]match.Result, error) {
	ctx, span := observe.StartSpan(ctx, "library.best_all")
	defer span.End()

	results, err := l.engine.BestAll(ctx, queries, l.Index())
	if err != nil {
		l.metrics.RecordLookupError(ctx, "best")
		return nil, err
	}
	// Stage counters only: per-query latency is not observable in a batch.
	for _, r := range results {
		l.metrics.Matches.Add(ctx, 1,
			metric.WithAttributes(attribute.String("stage", r.Stage.String())))
	}
	return results, nil
}

// Search lists samples matching query, ranked by score.
func (l *Library) Search(ctx context.Context, query string) []corpus.Sample {
	ctx, span := observe.StartSpan(ctx, "library.search")
	defer span.End()

	start := time.Now()
	hits := l.engine.Search(query, l.Index())
	l.metrics.RecordSearch(ctx, time.Since(start).Seconds())

	observe.Logger(ctx).Debug("library: search", "query", query, "hits", len(hits))
	return hits
}

// Sample returns the sample with the given id.
func (l *Library) Sample(ctx context.Context, id string) (corpus.Sample, error) {
	s, err := l.Index().ByID(id)
	if err != nil {
		l.metrics.RecordLookupError(ctx, "by_id")
		return corpus.Sample{}, err
	}
	return s, nil
}

// Category lists the samples of one category in corpus order.
func (l *Library) Category(ctx context.Context, name string) ([]corpus.Sample, error) {
	samples, err := l.Index().Category(name)
	if err != nil {
		l.metrics.RecordLookupError(ctx, "category")
		return nil, err
	}
	return samples, nil
}

// Categories lists all category names in sorted order.
func (l *Library) Categories(context.Context) []string {
	return l.Index().Categories()
}

// Analyze tokenizes and analyzes the transcription of the given sample,
// returning the report alongside the sample itself.
func (l *Library) Analyze(ctx context.Context, id string) (*phoneme.Report, corpus.Sample, error) {
	ctx, span := observe.StartSpan(ctx, "library.analyze")
	defer span.End()

	ix := l.Index()
	s, err := ix.ByID(id)
	if err != nil {
		l.metrics.RecordLookupError(ctx, "analyze")
		return nil, corpus.Sample{}, err
	}
	report, err := ix.Analyze(id)
	if err != nil {
		l.metrics.RecordLookupError(ctx, "analyze")
		return nil, corpus.Sample{}, err
	}
	return report, s, nil
}

// Stats summarises the published corpus.
func (l *Library) Stats(context.Context) corpus.Stats {
	return l.Index().Stats()
}

// Samples returns a copy of every published sample in corpus order.
func (l *Library) Samples(context.Context) []corpus.Sample {
	return l.Index().Samples()
}
