package metric

import (
	"context"
	"strings"
	"time"

	"github.com/mchmarny/trustmeter/pkg/resource"
)

var benchmarkMarkers = []string{
	"benchmark",
	"accuracy",
	"f1",
	"bleu",
	"rouge",
	"leaderboard",
	"evaluation",
	"glue",
	"mmlu",
}

// PerformanceClaims scores the evidence behind a model's performance
// claims: adoption as a base signal, raised when the README documents
// benchmark results.
func PerformanceClaims(ctx context.Context, r *resource.Resource, p Providers) Result {
	start := time.Now()

	if r.Category != resource.CategoryModel {
		return Scored(0, start)
	}

	info := p.hubInfo(ctx, r)
	if info == nil {
		return Scored(0, start)
	}

	score := downloadsScore(info.Downloads)

	if readme, ok := p.readme(ctx, r); ok && BenchmarkMarkerCount(readme) >= 2 {
		score += 0.2
	}

	return Scored(score, start)
}

// BenchmarkMarkerCount counts distinct benchmark vocabulary hits in text.
func BenchmarkMarkerCount(text string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, marker := range benchmarkMarkers {
		if strings.Contains(lower, marker) {
			count++
		}
	}
	return count
}

func downloadsScore(downloads int) float64 {
	switch {
	case downloads >= 100000:
		return 0.8
	case downloads >= 10000:
		return 0.6
	case downloads >= 1000:
		return 0.4
	}
	return 0.2
}
