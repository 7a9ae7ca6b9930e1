package scorer

import (
	"context"
	"testing"
	"time"

	"github.com/mchmarny/trustmeter/pkg/metric"
	"github.com/mchmarny/trustmeter/pkg/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResource() *resource.Resource {
	return &resource.Resource{
		Name:     "bert-base-uncased",
		Category: resource.CategoryModel,
	}
}

func TestExecuteCoversRegistry(t *testing.T) {
	reg := metric.NewRegistry()
	p := New(reg, metric.Providers{})

	results := p.Execute(context.Background(), testResource())

	require.Len(t, results, reg.Len())
	for name, r := range results {
		assert.GreaterOrEqual(t, r.Latency, int64(0), name)
		if r.Applicable {
			assert.GreaterOrEqual(t, r.Score, 0.0, name)
			assert.LessOrEqual(t, r.Score, 1.0, name)
		}
	}
}

func TestExecutePanicIsolation(t *testing.T) {
	reg := metric.NewRegistry()
	reg.Register("always_panics", func(_ context.Context, _ *resource.Resource, _ metric.Providers) metric.Result {
		panic("boom")
	})
	p := New(reg, metric.Providers{})

	results := p.Execute(context.Background(), testResource())

	require.Len(t, results, reg.Len())
	r, ok := results["always_panics"]
	require.True(t, ok)
	assert.Equal(t, 0.0, r.Score)
	assert.GreaterOrEqual(t, r.Latency, int64(0))

	// siblings were not taken down with it
	_, ok = results[metric.NameLicense]
	assert.True(t, ok)
}

func TestExecuteTimeout(t *testing.T) {
	reg := metric.NewRegistry()
	reg.Register("never_returns", func(ctx context.Context, _ *resource.Resource, _ metric.Providers) metric.Result {
		<-ctx.Done()
		time.Sleep(time.Second)
		return metric.Scored(1.0, time.Now())
	})
	p := New(reg, metric.Providers{}, WithTimeout(50*time.Millisecond))

	start := time.Now()
	results := p.Execute(context.Background(), testResource())
	elapsed := time.Since(start)

	r, ok := results["never_returns"]
	require.True(t, ok)
	assert.Equal(t, 0.0, r.Score)
	assert.GreaterOrEqual(t, r.Latency, int64(0))
	assert.Less(t, elapsed, 5*time.Second)
}

func TestExecuteWorkerCap(t *testing.T) {
	reg := metric.NewRegistry()
	p := New(reg, metric.Providers{}, WithWorkers(1))

	results := p.Execute(context.Background(), testResource())
	assert.Len(t, results, reg.Len())
}

type recordingCloner struct {
	dir      string
	err      error
	calls    []string
	cleanups int
}

func (c *recordingCloner) Clone(_ context.Context, url string) (string, func(), error) {
	c.calls = append(c.calls, url)
	if c.err != nil {
		return "", func() {}, c.err
	}
	return c.dir, func() { c.cleanups++ }, nil
}

func TestRateClonesAnyURL(t *testing.T) {
	// hub-hosted artifacts are git repos like code forges are
	urls := []string{
		"https://huggingface.co/google-bert/bert-base-uncased",
		"https://huggingface.co/datasets/rajpurkar/squad",
		"https://github.com/pytorch/pytorch",
	}

	for _, url := range urls {
		cloner := &recordingCloner{dir: t.TempDir()}
		p := New(metric.NewRegistry(), metric.Providers{}, WithCloner(cloner))

		res := testResource()
		res.URL = url

		r := p.Rate(context.Background(), res, nil)

		require.NotNil(t, r, url)
		require.Equal(t, []string{url}, cloner.calls, url)
		assert.Equal(t, 1, cloner.cleanups, url)
	}
}

func TestRateCloneFailureDegrades(t *testing.T) {
	cloner := &recordingCloner{err: assert.AnError}
	p := New(metric.NewRegistry(), metric.Providers{}, WithCloner(cloner))

	res := testResource()
	res.URL = "https://huggingface.co/google/gemma-2b"

	r := p.Rate(context.Background(), res, nil)

	require.NotNil(t, r)
	assert.Len(t, cloner.calls, 1)
	assert.Equal(t, metric.SentinelValue, r.Reviewedness)
}

func TestRateFixedShape(t *testing.T) {
	p := New(metric.NewRegistry(), metric.Providers{})

	r := p.Rate(context.Background(), testResource(), nil)

	require.NotNil(t, r)
	assert.Equal(t, "bert-base-uncased", r.Name)
	assert.Equal(t, resource.CategoryModel, r.Category)
	assert.GreaterOrEqual(t, r.NetScore, 0.0)
	assert.LessOrEqual(t, r.NetScore, 1.0)
	assert.GreaterOrEqual(t, r.NetScoreLatency, int64(0))

	// no repository and no lineage: sentinel values, excluded from the net
	assert.Equal(t, metric.SentinelValue, r.Reviewedness)
	assert.Equal(t, metric.SentinelValue, r.TreeScore)
}

func TestRateWithLineage(t *testing.T) {
	p := New(metric.NewRegistry(), metric.Providers{})

	r := p.Rate(context.Background(), testResource(), &Lineage{
		Parents: []string{"base-a", "base-b"},
		Scores:  map[string]float64{"base-a": 0.8, "base-b": 0.6},
	})

	require.NotNil(t, r)
	assert.InDelta(t, 0.7, r.TreeScore, 1e-9)
}

func TestRateUnknownParents(t *testing.T) {
	p := New(metric.NewRegistry(), metric.Providers{})

	r := p.Rate(context.Background(), testResource(), &Lineage{
		Parents: []string{"base-a", "base-b"},
	})

	require.NotNil(t, r)
	assert.Equal(t, metric.SentinelValue, r.TreeScore)
}
