package metric

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mchmarny/trustmeter/pkg/resource"
)

const (
	hubQualityFallback   = 0.6
	noDataQualityDefault = 0.5
)

var trainingFileNames = []string{"train.py", "training.py", "fine_tune.py", "train.sh"}

// CodeQuality scores repository hygiene via equally weighted sub-checks:
// a dependency manifest, a test suite, CI configuration, and
// containerization for checkouts; quality indicator files for hub models.
func CodeQuality(ctx context.Context, r *resource.Resource, p Providers) Result {
	start := time.Now()

	if r.HasLocalPath() {
		return Scored(localQuality(r.LocalPath), start)
	}

	if r.Category == resource.CategoryModel {
		info := p.hubInfo(ctx, r)
		if info == nil || len(info.Files) == 0 {
			return Scored(hubQualityFallback, start)
		}
		return Scored(hubQuality(info.Files), start)
	}

	return Scored(noDataQualityDefault, start)
}

func localQuality(path string) float64 {
	checks := []bool{
		fileExists(filepath.Join(path, "requirements.txt")) ||
			fileExists(filepath.Join(path, "pyproject.toml")) ||
			fileExists(filepath.Join(path, "go.mod")) ||
			fileExists(filepath.Join(path, "package.json")),
		dirExists(filepath.Join(path, "tests")) || dirExists(filepath.Join(path, "test")),
		dirExists(filepath.Join(path, ".github")) || fileExists(filepath.Join(path, ".gitlab-ci.yml")),
		fileExists(filepath.Join(path, "Dockerfile")),
	}
	return checkRatio(checks)
}

func hubQuality(files []string) float64 {
	has := func(name string) bool {
		for _, f := range files {
			if f == name {
				return true
			}
		}
		return false
	}

	hasModelCard := false
	for _, f := range files {
		if strings.HasSuffix(f, ".md") && strings.Contains(strings.ToLower(f), "model") {
			hasModelCard = true
			break
		}
	}

	hasTraining := false
	for _, name := range trainingFileNames {
		if has(name) {
			hasTraining = true
			break
		}
	}

	checks := []bool{
		has("config.json"),
		has("README.md"),
		hasModelCard,
		hasTraining,
	}
	return checkRatio(checks)
}

func checkRatio(checks []bool) float64 {
	if len(checks) == 0 {
		return 0
	}
	passed := 0
	for _, ok := range checks {
		if ok {
			passed++
		}
	}
	return float64(passed) / float64(len(checks))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
