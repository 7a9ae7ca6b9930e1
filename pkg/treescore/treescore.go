// Package treescore derives a lineage score for an artifact from the
// scores of its declared parent artifacts. Aggregation is single-level by
// design: callers wanting transitive lineage must pre-compute ancestor
// scores bottom-up and supply them in the parent-score mapping, so this
// package never traverses a graph and cannot loop on a cyclic one.
package treescore

import (
	"sort"
	"time"
)

// Result is the outcome of one lineage aggregation.
type Result struct {
	// Score is the arithmetic mean of the known parent scores.
	// Meaningful only when Applicable is true.
	Score float64 `json:"score" yaml:"score"`
	// Applicable is false when the artifact has no parents, or none of
	// its parents have a known score.
	Applicable bool   `json:"applicable" yaml:"applicable"`
	Reason     string `json:"reason,omitempty" yaml:"reason,omitempty"`
	// ScoredParents counts the parents that contributed to the mean.
	ScoredParents int `json:"num_scored_parents" yaml:"num_scored_parents"`
	// MissingParents lists parents without a known score; they are
	// excluded from the mean, never imputed as zero.
	MissingParents []string `json:"missing_parents" yaml:"missing_parents"`
	Latency        int64    `json:"latency" yaml:"latency"`
}

// Value returns the wire representation of the score: -1 when the
// lineage score is not applicable.
func (r Result) Value() float64 {
	if !r.Applicable {
		return -1.0
	}
	return r.Score
}

// Compute aggregates the known scores of the artifact's declared parents.
func Compute(id string, parents []string, known map[string]float64) Result {
	start := time.Now()

	if len(parents) == 0 {
		return Result{
			Applicable:     false,
			Reason:         "artifact " + id + " declares no parents",
			MissingParents: []string{},
			Latency:        sinceMS(start),
		}
	}

	sum := 0.0
	scored := 0
	missing := make([]string, 0)

	for _, parent := range parents {
		score, ok := known[parent]
		if !ok {
			missing = append(missing, parent)
			continue
		}
		sum += score
		scored++
	}
	sort.Strings(missing)

	if scored == 0 {
		return Result{
			Applicable:     false,
			Reason:         "no parent of " + id + " has a known score",
			MissingParents: missing,
			Latency:        sinceMS(start),
		}
	}

	return Result{
		Score:          sum / float64(scored),
		Applicable:     true,
		ScoredParents:  scored,
		MissingParents: missing,
		Latency:        sinceMS(start),
	}
}

func sinceMS(start time.Time) int64 {
	ms := time.Since(start).Milliseconds()
	if ms < 0 {
		return 0
	}
	return ms
}
