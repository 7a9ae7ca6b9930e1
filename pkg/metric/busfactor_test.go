package metric

import (
	"context"
	"testing"

	"github.com/mchmarny/trustmeter/pkg/resource"
	"github.com/stretchr/testify/assert"
)

func TestEntropyScore(t *testing.T) {
	// no commits
	assert.Equal(t, 0.0, EntropyScore(nil))

	// single author is maximal risk
	assert.Equal(t, 0.0, EntropyScore([]string{"a", "a", "a"}))

	// perfectly even distribution maximizes entropy
	assert.InDelta(t, 1.0, EntropyScore([]string{"a", "b"}), 1e-9)
	assert.InDelta(t, 1.0, EntropyScore([]string{"a", "b", "c", "a", "b", "c"}), 1e-9)

	// any distribution with 2+ authors lands in (0,1]
	score := EntropyScore([]string{"a", "a", "a", "a", "a", "b"})
	assert.Greater(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)

	// skew lowers the score
	skewed := EntropyScore([]string{"a", "a", "a", "a", "b"})
	even := EntropyScore([]string{"a", "a", "b", "b"})
	assert.Less(t, skewed, even)
}

func TestBusFactor_FromContributors(t *testing.T) {
	r := &resource.Resource{
		URL:      "https://github.com/test/repo",
		Category: resource.CategoryCode,
	}
	p := Providers{VCS: &fakeVCS{contributors: []Contributor{
		{Login: "a", Contributions: 5},
		{Login: "b", Contributions: 5},
	}}}

	res := BusFactor(context.Background(), r, p)
	assert.True(t, res.Applicable)
	assert.InDelta(t, 1.0, res.Score, 1e-9)
	assert.GreaterOrEqual(t, res.Latency, int64(0))
}

func TestBusFactor_PopularityFallback(t *testing.T) {
	r := &resource.Resource{
		URL:      "https://huggingface.co/test/model",
		Name:     "test/model",
		Category: resource.CategoryModel,
	}

	tests := []struct {
		downloads int
		likes     int
		expected  float64
	}{
		{200000, 0, 0.8},
		{0, 150, 0.8},
		{50000, 0, 0.6},
		{5000, 0, 0.4},
		{10, 1, 0.3},
	}

	for _, tt := range tests {
		p := Providers{Hub: &fakeHub{info: &HubInfo{Downloads: tt.downloads, Likes: tt.likes}}}
		res := BusFactor(context.Background(), r, p)
		assert.Equal(t, tt.expected, res.Score, "downloads=%d likes=%d", tt.downloads, tt.likes)
	}
}

func TestBusFactor_NoData(t *testing.T) {
	r := &resource.Resource{
		URL:      "https://github.com/test/repo",
		Category: resource.CategoryCode,
	}

	res := BusFactor(context.Background(), r, Providers{})
	assert.True(t, res.Applicable)
	assert.Equal(t, 0.0, res.Score)
}
