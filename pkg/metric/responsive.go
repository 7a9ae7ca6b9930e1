package metric

import (
	"context"
	"time"

	"github.com/mchmarny/trustmeter/pkg/resource"
)

const (
	closedIssueSample = 100

	// No qualifying closed issues is insufficient signal, not a penalty.
	neutralResponsiveness = 0.5
)

// ResponsiveMaintainer scores mean time-to-close over the most recent
// closed issues (pull requests excluded) through a monotonic step
// function. For hub-hosted models, where issue trackers do not apply,
// recency of last modification substitutes, with a small bonus for
// community engagement.
func ResponsiveMaintainer(ctx context.Context, r *resource.Resource, p Providers) Result {
	start := time.Now()

	owner, repo, ok := r.RepoOwner()
	if ok && p.VCS != nil {
		issues, err := p.VCS.ClosedIssues(ctx, owner, repo, closedIssueSample)
		if err != nil {
			return Scored(0, start)
		}
		return Scored(issueCloseScore(issues), start)
	}

	if r.Category != resource.CategoryCode {
		if info := p.hubInfo(ctx, r); info != nil {
			return Scored(hubActivityScore(info, time.Now()), start)
		}
	}

	return Scored(0, start)
}

func issueCloseScore(issues []Issue) float64 {
	var total time.Duration
	count := 0

	for _, i := range issues {
		if i.PullRequest || i.CreatedAt.IsZero() || i.ClosedAt.IsZero() {
			continue
		}
		total += i.ClosedAt.Sub(i.CreatedAt)
		count++
	}

	if count == 0 {
		return neutralResponsiveness
	}

	return CloseTimeScore(total / time.Duration(count))
}

// CloseTimeScore maps a mean issue close time to a score.
func CloseTimeScore(mean time.Duration) float64 {
	day := 24 * time.Hour
	switch {
	case mean < day:
		return 1.0
	case mean < 3*day:
		return 0.8
	case mean < 7*day:
		return 0.6
	case mean < 30*day:
		return 0.4
	}
	return 0.2
}

func hubActivityScore(info *HubInfo, now time.Time) float64 {
	if info.LastModified.IsZero() {
		return neutralResponsiveness
	}

	age := now.Sub(info.LastModified)
	day := 24 * time.Hour

	var score float64
	switch {
	case age < 30*day:
		score = 0.8
	case age < 90*day:
		score = 0.6
	case age < 365*day:
		score = 0.4
	default:
		score = 0.2
	}

	if info.Likes > 100 {
		score += 0.2
	} else if info.Likes > 20 {
		score += 0.1
	}

	return Clamp(score)
}
