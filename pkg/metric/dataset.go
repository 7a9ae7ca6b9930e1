package metric

import (
	"context"
	"strings"
	"time"

	"github.com/mchmarny/trustmeter/pkg/resource"
)

// DatasetQuality scores the quality signals of a hub-hosted dataset (or
// the dataset a model declares): adoption via downloads/likes plus the
// completeness of its documentation card, equally weighted.
func DatasetQuality(ctx context.Context, r *resource.Resource, p Providers) Result {
	start := time.Now()

	if r.Category == resource.CategoryCode {
		return Scored(0, start)
	}

	info := p.hubInfo(ctx, r)
	if info == nil {
		return Scored(0, start)
	}

	adoption := popularityBucket(info.Downloads, info.Likes)

	card := 0.0
	if len(info.CardFields) > 0 {
		card = 0.5
		if len(info.CardFields) >= 3 {
			card = 1.0
		}
	}

	return Scored((adoption+card)/2, start)
}

// DatasetAndCode scores whether a model documents both its training data
// and its training code, equally weighted sub-checks.
func DatasetAndCode(ctx context.Context, r *resource.Resource, p Providers) Result {
	start := time.Now()

	if r.Category != resource.CategoryModel {
		// Code and dataset artifacts trivially cover their own half.
		return Scored(0.5, start)
	}

	info := p.hubInfo(ctx, r)
	readme, hasReadme := p.readme(ctx, r)

	mentionsDataset := false
	if info != nil {
		if _, ok := info.CardFields["datasets"]; ok {
			mentionsDataset = true
		}
	}
	if !mentionsDataset && hasReadme {
		mentionsDataset = strings.Contains(strings.ToLower(readme), "dataset")
	}

	hasTrainingCode := false
	if info != nil {
		for _, name := range trainingFileNames {
			for _, f := range info.Files {
				if f == name {
					hasTrainingCode = true
					break
				}
			}
		}
	}
	if !hasTrainingCode && hasReadme {
		lower := strings.ToLower(readme)
		hasTrainingCode = strings.Contains(lower, "training code") ||
			strings.Contains(lower, "training script")
	}

	return Scored(checkRatio([]bool{mentionsDataset, hasTrainingCode}), start)
}
