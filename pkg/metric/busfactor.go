package metric

import (
	"context"
	"math"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/mchmarny/trustmeter/pkg/resource"
)

const maxAuthorCommits = 500

// BusFactor scores contributor concentration: the Shannon entropy of the
// commit-author frequency distribution, normalized by log2 of the number
// of distinct authors. A single author scores 0 (maximal risk). When no
// commit data is available for a hub-hosted artifact, popularity stands in,
// because "no data" is not equivalent to "no bus factor".
func BusFactor(ctx context.Context, r *resource.Resource, p Providers) Result {
	start := time.Now()

	authors := commitAuthors(ctx, r, p)
	score := EntropyScore(authors)

	if score == 0 && r.Category != resource.CategoryCode {
		if info := p.hubInfo(ctx, r); info != nil {
			score = popularityBucket(info.Downloads, info.Likes)
		}
	}

	return Scored(score, start)
}

// EntropyScore computes the normalized author-frequency entropy for a list
// of author identifiers, one entry per commit.
func EntropyScore(authors []string) float64 {
	if len(authors) == 0 {
		return 0
	}

	counts := make(map[string]int)
	for _, a := range authors {
		counts[a]++
	}

	if len(counts) <= 1 {
		return 0
	}

	total := float64(len(authors))
	entropy := 0.0
	for _, c := range counts {
		p := float64(c) / total
		entropy -= p * math.Log2(p)
	}

	return entropy / math.Log2(float64(len(counts)))
}

// popularityBucket maps download/like counts to a coarse bus-factor
// estimate for artifacts without commit history.
func popularityBucket(downloads, likes int) float64 {
	switch {
	case downloads > 100000 || likes > 100:
		return 0.8
	case downloads > 10000 || likes > 20:
		return 0.6
	case downloads > 1000 || likes > 5:
		return 0.4
	}
	return 0.3
}

// commitAuthors collects one author identifier per commit, preferring the
// local checkout and degrading to the VCS API contributor counts.
func commitAuthors(ctx context.Context, r *resource.Resource, p Providers) []string {
	if r.HasLocalPath() {
		if authors := localAuthors(r.LocalPath); len(authors) > 0 {
			return authors
		}
	}

	if p.VCS == nil {
		return nil
	}

	owner, repo, ok := r.RepoOwner()
	if !ok {
		return nil
	}

	contributors, err := p.VCS.Contributors(ctx, owner, repo)
	if err != nil {
		return nil
	}

	authors := make([]string, 0, len(contributors))
	for _, c := range contributors {
		for i := 0; i < c.Contributions; i++ {
			authors = append(authors, c.Login)
		}
	}
	return authors
}

func localAuthors(path string) []string {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil
	}

	iter, err := repo.Log(&git.LogOptions{})
	if err != nil {
		return nil
	}
	defer iter.Close()

	authors := make([]string, 0, maxAuthorCommits)
	_ = iter.ForEach(func(c *object.Commit) error {
		if len(authors) >= maxAuthorCommits {
			return storer.ErrStop
		}
		if c.Author.Email != "" {
			authors = append(authors, c.Author.Email)
		} else if c.Author.Name != "" {
			authors = append(authors, c.Author.Name)
		}
		return nil
	})

	return authors
}
