package metric

import (
	"context"
	"time"

	"github.com/mchmarny/trustmeter/pkg/resource"
)

// SentinelValue is emitted on the wire for results that are not applicable
// to the rated resource, distinct from a real low score of 0.
const SentinelValue = -1.0

// Func is the contract every metric satisfies: a pure function of the
// resource and read-only providers. A metric never panics past its own
// boundary for expected failures and always returns a Result, with latency
// measuring wall-clock time spent inside the metric.
type Func func(ctx context.Context, r *resource.Resource, p Providers) Result

// Result is the outcome of one metric invocation. The three-way outcome
// (scored / worst / not-applicable) is explicit: Applicable false means
// "no valid data, exclude from aggregation" and carries a reason.
type Result struct {
	Score      float64            `json:"score" yaml:"score"`
	Latency    int64              `json:"latency" yaml:"latency"`
	Applicable bool               `json:"applicable" yaml:"applicable"`
	Reason     string             `json:"reason,omitempty" yaml:"reason,omitempty"`
	Detail     map[string]float64 `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Scored returns an applicable result, clamped to [0,1].
func Scored(score float64, start time.Time) Result {
	return Result{
		Score:      Clamp(score),
		Latency:    millisecondsSince(start),
		Applicable: true,
	}
}

// NotApplicable returns a result excluded from aggregation.
func NotApplicable(reason string, start time.Time) Result {
	return Result{
		Latency:    millisecondsSince(start),
		Applicable: false,
		Reason:     reason,
	}
}

// Value returns the wire representation of the result score: the score for
// applicable results, the -1 sentinel otherwise.
func (r Result) Value() float64 {
	if !r.Applicable {
		return SentinelValue
	}
	return r.Score
}

// Clamp bounds v to [0,1].
func Clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func millisecondsSince(start time.Time) int64 {
	ms := time.Since(start).Milliseconds()
	if ms < 0 {
		return 0
	}
	return ms
}

// Contributor is one commit author identity with its contribution count.
type Contributor struct {
	Login         string
	Contributions int
}

// Issue is a closed issue-tracker entry. PullRequest distinguishes PRs,
// which the responsiveness metric excludes.
type Issue struct {
	CreatedAt   time.Time
	ClosedAt    time.Time
	PullRequest bool
}

// HubInfo is hub-hosted artifact metadata. Every field is optional;
// zero values mean the hub did not report the field.
type HubInfo struct {
	ID           string
	SizeBytes    int64
	Downloads    int
	Likes        int
	LastModified time.Time
	CardFields   map[string]any
	Files        []string
}

// VCSProvider is the read-only contract with the Git-hosting API client.
// All calls are best-effort: absence is representable distinctly from zero.
type VCSProvider interface {
	Contributors(ctx context.Context, owner, repo string) ([]Contributor, error)
	ClosedIssues(ctx context.Context, owner, repo string, limit int) ([]Issue, error)
	FileContent(ctx context.Context, owner, repo, path string) ([]byte, bool, error)
	License(ctx context.Context, owner, repo string) (string, bool, error)
}

// HubProvider is the read-only contract with the model-hub API client.
type HubProvider interface {
	ModelInfo(ctx context.Context, id string) (*HubInfo, error)
	DatasetInfo(ctx context.Context, id string) (*HubInfo, error)
	Readme(ctx context.Context, id string) (string, bool, error)
}

// Providers carries the external collaborators metrics read from.
// Either field may be nil; metrics degrade to their fallback paths.
type Providers struct {
	VCS VCSProvider
	Hub HubProvider
}

func (p Providers) hubInfo(ctx context.Context, r *resource.Resource) *HubInfo {
	if p.Hub == nil {
		return nil
	}

	var (
		info *HubInfo
		err  error
	)
	if r.Category == resource.CategoryDataset {
		info, err = p.Hub.DatasetInfo(ctx, r.HubID())
	} else {
		info, err = p.Hub.ModelInfo(ctx, r.HubID())
	}
	if err != nil {
		return nil
	}
	return info
}

func (p Providers) readme(ctx context.Context, r *resource.Resource) (string, bool) {
	if p.Hub == nil {
		return "", false
	}
	s, ok, err := p.Hub.Readme(ctx, r.HubID())
	if err != nil || !ok {
		return "", false
	}
	return s, true
}
