package metric

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mchmarny/trustmeter/pkg/resource"
)

const hubPinningDefault = 0.7

// GoodPinningPractice scores the fraction of declared dependencies pinned
// to an exact version. An empty manifest is fully compliant (1.0), there
// is nothing unpinned to flag.
func GoodPinningPractice(ctx context.Context, r *resource.Resource, p Providers) Result {
	start := time.Now()

	if r.Category == resource.CategoryModel && !r.HasLocalPath() {
		return Scored(hubPinning(ctx, r, p), start)
	}

	var pinned, total int

	switch {
	case r.HasLocalPath():
		if b, err := os.ReadFile(filepath.Join(r.LocalPath, "requirements.txt")); err == nil {
			pc, tc := requirementsPinned(string(b))
			pinned += pc
			total += tc
		}
		if b, err := os.ReadFile(filepath.Join(r.LocalPath, "package.json")); err == nil {
			pc, tc := packageJSONPinned(b)
			pinned += pc
			total += tc
		}
	case p.VCS != nil:
		owner, repo, ok := r.RepoOwner()
		if !ok {
			break
		}
		if b, found, err := p.VCS.FileContent(ctx, owner, repo, "requirements.txt"); err == nil && found {
			pc, tc := requirementsPinned(string(b))
			pinned += pc
			total += tc
		}
		if b, found, err := p.VCS.FileContent(ctx, owner, repo, "package.json"); err == nil && found {
			pc, tc := packageJSONPinned(b)
			pinned += pc
			total += tc
		}
	}

	if total == 0 {
		return Scored(1.0, start)
	}

	return Scored(float64(pinned)/float64(total), start)
}

// requirementsPinned counts exact pins (== or ~=) in a pip manifest.
func requirementsPinned(content string) (pinned, total int) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		if strings.Contains(line, "==") || strings.Contains(line, "~=") {
			pinned++
		}
		total++
	}
	return pinned, total
}

// packageJSONPinned counts exact pins in an npm manifest: a specifier is
// pinned when it carries no range operator.
func packageJSONPinned(b []byte) (pinned, total int) {
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(b, &manifest); err != nil {
		return 0, 0
	}

	count := func(deps map[string]string) {
		for _, ver := range deps {
			if isExactNpmVersion(ver) {
				pinned++
			}
			total++
		}
	}
	count(manifest.Dependencies)
	count(manifest.DevDependencies)

	return pinned, total
}

func isExactNpmVersion(ver string) bool {
	ver = strings.TrimSpace(ver)
	if ver == "" || ver == "*" || ver == "latest" {
		return false
	}
	switch ver[0] {
	case '^', '~', '>', '<':
		return false
	}
	return !strings.Contains(ver, " - ") && !strings.Contains(ver, "||")
}

// hubPinning checks hub model metadata for pinned framework versions.
func hubPinning(ctx context.Context, r *resource.Resource, p Providers) float64 {
	info := p.hubInfo(ctx, r)
	if info == nil || len(info.CardFields) == 0 {
		return hubPinningDefault
	}

	checks, total := 0, 0
	for _, key := range []string{"transformers_version", "model_type"} {
		if _, ok := info.CardFields[key]; ok {
			checks++
		}
		total++
	}

	if total == 0 {
		return hubPinningDefault
	}
	return float64(checks) / float64(total)
}
