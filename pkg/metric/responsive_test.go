package metric

import (
	"context"
	"testing"
	"time"

	"github.com/mchmarny/trustmeter/pkg/resource"
	"github.com/stretchr/testify/assert"
)

func TestCloseTimeScore(t *testing.T) {
	tests := []struct {
		mean     time.Duration
		expected float64
	}{
		{12 * time.Hour, 1.0},
		{2 * 24 * time.Hour, 0.8},
		{5 * 24 * time.Hour, 0.6},
		{20 * 24 * time.Hour, 0.4},
		{60 * 24 * time.Hour, 0.2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CloseTimeScore(tt.mean), tt.mean.String())
	}
}

func TestResponsiveMaintainer_Issues(t *testing.T) {
	now := time.Now()
	r := &resource.Resource{
		URL:      "https://github.com/test/repo",
		Category: resource.CategoryCode,
	}
	p := Providers{VCS: &fakeVCS{issues: []Issue{
		{CreatedAt: now.Add(-10 * time.Hour), ClosedAt: now},
		{CreatedAt: now.Add(-14 * time.Hour), ClosedAt: now},
		// pull requests are excluded
		{CreatedAt: now.Add(-100 * 24 * time.Hour), ClosedAt: now, PullRequest: true},
	}}}

	res := ResponsiveMaintainer(context.Background(), r, p)
	assert.Equal(t, 1.0, res.Score)
}

func TestResponsiveMaintainer_NoQualifyingIssues(t *testing.T) {
	r := &resource.Resource{
		URL:      "https://github.com/test/repo",
		Category: resource.CategoryCode,
	}
	p := Providers{VCS: &fakeVCS{issues: []Issue{
		{CreatedAt: time.Now(), ClosedAt: time.Now(), PullRequest: true},
	}}}

	res := ResponsiveMaintainer(context.Background(), r, p)
	assert.Equal(t, neutralResponsiveness, res.Score)
}

func TestResponsiveMaintainer_HubRecency(t *testing.T) {
	r := &resource.Resource{
		URL:      "https://huggingface.co/test/model",
		Category: resource.CategoryModel,
	}
	p := Providers{Hub: &fakeHub{info: &HubInfo{
		LastModified: time.Now().Add(-10 * 24 * time.Hour),
		Likes:        150,
	}}}

	res := ResponsiveMaintainer(context.Background(), r, p)
	assert.Equal(t, 1.0, res.Score) // 0.8 recency + 0.2 likes bonus
}

func TestHubActivityScore_Buckets(t *testing.T) {
	now := time.Now()
	day := 24 * time.Hour

	assert.Equal(t, 0.8, hubActivityScore(&HubInfo{LastModified: now.Add(-day)}, now))
	assert.Equal(t, 0.6, hubActivityScore(&HubInfo{LastModified: now.Add(-60 * day)}, now))
	assert.Equal(t, 0.4, hubActivityScore(&HubInfo{LastModified: now.Add(-200 * day)}, now))
	assert.Equal(t, 0.2, hubActivityScore(&HubInfo{LastModified: now.Add(-400 * day)}, now))
	assert.Equal(t, neutralResponsiveness, hubActivityScore(&HubInfo{}, now))
}
