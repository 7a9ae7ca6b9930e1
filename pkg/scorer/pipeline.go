// Package scorer runs registered metrics against a resource with failure
// isolation and latency accounting, and folds the outputs into a single
// weighted net score.
package scorer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mchmarny/trustmeter/pkg/gitrepo"
	"github.com/mchmarny/trustmeter/pkg/metric"
	"github.com/mchmarny/trustmeter/pkg/resource"
	"github.com/mchmarny/trustmeter/pkg/reviewedness"
	"github.com/mchmarny/trustmeter/pkg/treescore"
	"golang.org/x/sync/errgroup"
)

const (
	metricTimeoutDefault = 10 * time.Second
	cloneTimeoutDefault  = 60 * time.Second
	workersDefault       = 4
)

// Lineage declares the rated artifact's parents and whatever parent
// scores the caller already knows.
type Lineage struct {
	Parents []string
	Scores  map[string]float64
}

// Pipeline executes metrics against resources. Safe for concurrent use.
type Pipeline struct {
	registry     *metric.Registry
	providers    metric.Providers
	cloner       gitrepo.Cloner
	timeout      time.Duration
	cloneTimeout time.Duration
	workers      int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithTimeout bounds a single metric invocation.
func WithTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithWorkers caps the metric worker pool.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithCloneTimeout bounds the one-time repository clone per request.
func WithCloneTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.cloneTimeout = d
		}
	}
}

// WithCloner sets the repository materializer. Without one, file-based
// metrics fall back to their URL/API-only paths.
func WithCloner(c gitrepo.Cloner) Option {
	return func(p *Pipeline) {
		p.cloner = c
	}
}

// New creates a pipeline over the given registry and providers.
func New(registry *metric.Registry, providers metric.Providers, opts ...Option) *Pipeline {
	p := &Pipeline{
		registry:     registry,
		providers:    providers,
		timeout:      metricTimeoutDefault,
		cloneTimeout: cloneTimeoutDefault,
		workers:      workersDefault,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Execute runs every registered metric against the resource as-is and
// returns one result per metric name. Metrics run on a bounded worker
// pool; execution order carries no meaning. A metric that panics or
// times out yields a zero-score result without affecting its siblings.
func (p *Pipeline) Execute(ctx context.Context, res *resource.Resource) map[string]metric.Result {
	names := p.registry.Names()
	results := make(map[string]metric.Result, len(names))

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(p.poolSize())

	for _, name := range names {
		f, ok := p.registry.Get(name)
		if !ok {
			continue
		}
		g.Go(func() error {
			r := p.invoke(ctx, name, f, res)
			mu.Lock()
			results[name] = r
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// Rate scores the resource end to end: one repository clone shared by all
// file-based metrics, the metric fan-out, the history and lineage
// analyses, and the net score. The caller always gets a complete Rating;
// degraded data shows up as lower or neutral sub-scores, never an error.
func (p *Pipeline) Rate(ctx context.Context, res *resource.Resource, lineage *Lineage) *Rating {
	scoped := *res

	// Hub-hosted models and datasets are git repositories too, so the
	// clone is attempted for every URL, not just code forges.
	if !scoped.HasLocalPath() && scoped.HasURL() && p.cloner != nil {
		cctx, cancel := context.WithTimeout(ctx, p.cloneTimeout)
		dir, cleanup, err := p.cloner.Clone(cctx, scoped.URL)
		cancel()
		if err != nil {
			slog.Warn("clone failed, file-based metrics degrade to API paths",
				"url", scoped.URL, "error", err)
		} else {
			defer cleanup()
			scoped.LocalPath = dir
		}
	}

	results := p.Execute(ctx, &scoped)

	rev := reviewedness.Compute(scoped.LocalPath)

	var tree treescore.Result
	if lineage != nil {
		tree = treescore.Compute(scoped.Name, lineage.Parents, lineage.Scores)
	} else {
		tree = treescore.Compute(scoped.Name, nil, nil)
	}

	netStart := time.Now()
	net := NetScore(netInputs(results, rev, tree))
	netLatency := time.Since(netStart).Milliseconds()

	return assemble(res, results, rev, tree, net, netLatency)
}

func (p *Pipeline) poolSize() int {
	n := p.workers
	if reg := p.registry.Len(); n > reg {
		n = reg
	}
	if n < 1 {
		n = 1
	}
	return n
}

// invoke calls one metric with the pipeline's timeout and converts panics
// and timeouts into zero-score results. A timed-out call is left to run
// to completion and its result discarded.
func (p *Pipeline) invoke(ctx context.Context, name string, f metric.Func, res *resource.Resource) metric.Result {
	start := time.Now()

	tctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	done := make(chan metric.Result, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Warn("metric panicked", "metric", name, "panic", fmt.Sprint(rec))
				done <- metric.Scored(0, start)
			}
		}()
		done <- f(tctx, res, p.providers)
	}()

	select {
	case r := <-done:
		return r
	case <-tctx.Done():
		slog.Warn("metric timed out", "metric", name, "timeout", p.timeout.String())
		return metric.Scored(0, start)
	}
}
