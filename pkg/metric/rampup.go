package metric

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mchmarny/trustmeter/pkg/resource"
)

const readmeLengthFloor = 500

var readmeFileNames = []string{"README.md", "README.rst", "readme.md", "README"}

// RampUpTime scores how quickly a new user can get going with the
// artifact, from README presence and content: length, setup instructions,
// and runnable examples, equally weighted.
func RampUpTime(ctx context.Context, r *resource.Resource, p Providers) Result {
	start := time.Now()

	readme, found := findReadme(ctx, r, p)
	if !found {
		return Scored(0, start)
	}

	return Scored(ReadmeScore(readme), start)
}

// ReadmeScore rates README content on equally weighted sub-checks.
func ReadmeScore(content string) float64 {
	lower := strings.ToLower(content)
	checks := []bool{
		len(strings.TrimSpace(content)) > 0,
		len(content) >= readmeLengthFloor,
		strings.Contains(lower, "install") ||
			strings.Contains(lower, "usage") ||
			strings.Contains(lower, "quickstart") ||
			strings.Contains(lower, "getting started"),
		strings.Contains(content, "```"),
	}
	return checkRatio(checks)
}

func findReadme(ctx context.Context, r *resource.Resource, p Providers) (string, bool) {
	if r.HasLocalPath() {
		for _, name := range readmeFileNames {
			if b, err := os.ReadFile(filepath.Join(r.LocalPath, name)); err == nil {
				return string(b), true
			}
		}
	}

	if r.Category != resource.CategoryCode {
		if s, ok := p.readme(ctx, r); ok {
			return s, true
		}
	}

	if p.VCS != nil {
		if owner, repo, ok := r.RepoOwner(); ok {
			if b, found, err := p.VCS.FileContent(ctx, owner, repo, "README.md"); err == nil && found {
				return string(b), true
			}
		}
	}

	return "", false
}
