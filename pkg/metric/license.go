package metric

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mchmarny/trustmeter/pkg/resource"
)

const unknownLicenseScore = 0.5

// compatibleLicenses are SPDX identifiers (lowercased) acceptable for
// downstream use.
var compatibleLicenses = map[string]bool{
	"mit":               true,
	"apache-2.0":        true,
	"bsd-2-clause":      true,
	"bsd-3-clause":      true,
	"lgpl-2.1":          true,
	"lgpl-2.1-only":     true,
	"lgpl-2.1-or-later": true,
	"mpl-2.0":           true,
	"isc":               true,
	"unlicense":         true,
}

var licenseFileNames = []string{"LICENSE", "LICENSE.md", "LICENSE.txt", "COPYING"}

// License scores license clarity and compatibility: a recognized
// compatible license is 1.0, a declared but incompatible one is 0.2, an
// undetectable license is 0.
func License(ctx context.Context, r *resource.Resource, p Providers) Result {
	start := time.Now()

	if r.HasLocalPath() {
		for _, name := range licenseFileNames {
			b, err := os.ReadFile(filepath.Join(r.LocalPath, name))
			if err != nil {
				continue
			}
			return Scored(licenseTextScore(string(b)), start)
		}
	}

	if p.VCS != nil {
		if owner, repo, ok := r.RepoOwner(); ok {
			if id, found, err := p.VCS.License(ctx, owner, repo); err == nil && found {
				return Scored(ScoreLicenseID(id), start)
			}
		}
	}

	if r.Category != resource.CategoryCode {
		if info := p.hubInfo(ctx, r); info != nil {
			if lic, ok := info.CardFields["license"].(string); ok && lic != "" {
				return Scored(ScoreLicenseID(lic), start)
			}
		}
	}

	// Last resort: a license section in the README counts as declared
	// but unverified.
	if readme, ok := findReadme(ctx, r, p); ok {
		if strings.Contains(strings.ToLower(readme), "## license") {
			return Scored(unknownLicenseScore, start)
		}
	}

	return Scored(0, start)
}

// ScoreLicenseID scores a declared SPDX license identifier.
func ScoreLicenseID(id string) float64 {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return 0
	}
	if compatibleLicenses[id] {
		return 1.0
	}
	return 0.2
}

// licenseTextScore keyword-matches raw license file text.
func licenseTextScore(text string) float64 {
	lower := strings.ToLower(text)
	for keyword, id := range map[string]string{
		"mit license":              "mit",
		"apache license":           "apache-2.0",
		"bsd 2-clause":             "bsd-2-clause",
		"bsd 3-clause":             "bsd-3-clause",
		"gnu lesser general public": "lgpl-2.1",
		"mozilla public license":   "mpl-2.0",
	} {
		if strings.Contains(lower, keyword) {
			return ScoreLicenseID(id)
		}
	}
	if strings.Contains(lower, "gnu general public") {
		return 0.2
	}
	return unknownLicenseScore
}
