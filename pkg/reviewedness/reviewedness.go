// Package reviewedness scores the share of a repository's code churn that
// went through peer review, by walking commit history and matching commit
// messages against known review markers.
package reviewedness

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

const maxCommits = 500

// reviewMarkers match commit messages produced by code-review systems:
// merge-of-pull-request phrasing, sign-off trailers, Gerrit trailers, and
// squash-merge pull-request references.
var reviewMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^merge pull request`),
	regexp.MustCompile(`(?i)reviewed-by:`),
	regexp.MustCompile(`(?i)reviewed-on:`),
	regexp.MustCompile(`(?m)^Change-Id: I[0-9a-f]+`),
	regexp.MustCompile(`\(#\d+\)`),
}

// codeExtensions is the allow-list of file extensions counted as code.
// Data and weight formats (serialized tensors, archives) are deliberately
// not code.
var codeExtensions = map[string]bool{
	".go":    true,
	".py":    true,
	".js":    true,
	".ts":    true,
	".jsx":   true,
	".tsx":   true,
	".java":  true,
	".c":     true,
	".h":     true,
	".cc":    true,
	".cpp":   true,
	".hpp":   true,
	".rs":    true,
	".rb":    true,
	".php":   true,
	".cs":    true,
	".kt":    true,
	".swift": true,
	".scala": true,
	".sh":    true,
	".sql":   true,
}

// Result is the outcome of one reviewedness analysis.
type Result struct {
	// Score is reviewed code lines over all code lines. Meaningful only
	// when Applicable is true.
	Score      float64 `json:"score" yaml:"score"`
	Applicable bool    `json:"applicable" yaml:"applicable"`
	Reason     string  `json:"reason,omitempty" yaml:"reason,omitempty"`
	// ReviewedLines and TotalLines are the churn tallies behind the score.
	ReviewedLines int   `json:"reviewed_lines" yaml:"reviewed_lines"`
	TotalLines    int   `json:"total_lines" yaml:"total_lines"`
	Latency       int64 `json:"latency" yaml:"latency"`
}

// Value returns the wire representation of the score: -1 when the
// analysis is not applicable.
func (r Result) Value() float64 {
	if !r.Applicable {
		return -1.0
	}
	return r.Score
}

// Compute walks the commit history at path. A missing path or one lacking
// version-control metadata yields a not-applicable result, never an error.
func Compute(path string) Result {
	start := time.Now()

	if path == "" {
		return notApplicable("no repository path: version control history unavailable", start)
	}

	repo, err := git.PlainOpen(path)
	if err != nil {
		return notApplicable("path has no version control metadata: "+err.Error(), start)
	}

	iter, err := repo.Log(&git.LogOptions{})
	if err != nil {
		return notApplicable("no commit history: "+err.Error(), start)
	}
	defer iter.Close()

	var reviewed, total int
	count := 0
	_ = iter.ForEach(func(c *object.Commit) error {
		if count >= maxCommits {
			return storer.ErrStop
		}
		count++

		lines := codeLines(c)
		if lines == 0 {
			return nil
		}

		total += lines
		if IsReviewed(c.Message) {
			reviewed += lines
		}
		return nil
	})

	if total == 0 {
		return notApplicable("no code churn in history", start)
	}

	return Result{
		Score:         float64(reviewed) / float64(total),
		Applicable:    true,
		ReviewedLines: reviewed,
		TotalLines:    total,
		Latency:       sinceMS(start),
	}
}

// IsReviewed reports whether a commit message carries a review marker.
func IsReviewed(message string) bool {
	for _, marker := range reviewMarkers {
		if marker.MatchString(message) {
			return true
		}
	}
	return false
}

// IsCodeFile reports whether a path counts as code for churn purposes.
func IsCodeFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return codeExtensions[ext]
}

// codeLines sums added and removed lines across the commit's code files.
func codeLines(c *object.Commit) int {
	stats, err := c.Stats()
	if err != nil {
		return 0
	}

	lines := 0
	for _, s := range stats {
		if IsCodeFile(s.Name) {
			lines += s.Addition + s.Deletion
		}
	}
	return lines
}

func notApplicable(reason string, start time.Time) Result {
	return Result{
		Applicable: false,
		Reason:     reason,
		Latency:    sinceMS(start),
	}
}

func sinceMS(start time.Time) int64 {
	ms := time.Since(start).Milliseconds()
	if ms < 0 {
		return 0
	}
	return ms
}
