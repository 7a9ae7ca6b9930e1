// Package gh implements the VCS data provider over the GitHub API.
// All calls are best-effort: a missing file or license is reported as
// absent, distinct from an error or a zero value.
package gh

import (
	"context"
	"net/http"

	"github.com/google/go-github/v83/github"
	"github.com/mchmarny/trustmeter/pkg/metric"
	"github.com/mchmarny/trustmeter/pkg/net"
	"github.com/pkg/errors"
)

const pageSizeDefault = 100

// Client is a read-only GitHub data provider satisfying
// metric.VCSProvider.
type Client struct {
	gh *github.Client
}

// New creates a provider. An empty token means anonymous access, which
// works for public data at a lower rate limit.
func New(ctx context.Context, token string) *Client {
	if token == "" {
		return &Client{gh: github.NewClient(nil)}
	}
	return &Client{gh: github.NewClient(net.GetOAuthClient(ctx, token))}
}

// Contributors lists commit authors with their contribution counts.
func (c *Client) Contributors(ctx context.Context, owner, repo string) ([]metric.Contributor, error) {
	opt := &github.ListContributorsOptions{
		ListOptions: github.ListOptions{PerPage: pageSizeDefault},
	}

	list, resp, err := c.gh.Repositories.ListContributors(ctx, owner, repo, opt)
	if err != nil {
		return nil, errors.Wrapf(err, "error listing contributors: %s/%s", owner, repo)
	}
	checkRateLimit(resp)

	contributors := make([]metric.Contributor, 0, len(list))
	for _, u := range list {
		if u == nil || u.GetLogin() == "" {
			continue
		}
		contributors = append(contributors, metric.Contributor{
			Login:         u.GetLogin(),
			Contributions: u.GetContributions(),
		})
	}

	return contributors, nil
}

// ClosedIssues lists the most recently closed issues, pull requests
// flagged so callers can exclude them.
func (c *Client) ClosedIssues(ctx context.Context, owner, repo string, limit int) ([]metric.Issue, error) {
	if limit < 1 || limit > pageSizeDefault {
		limit = pageSizeDefault
	}

	opt := &github.IssueListByRepoOptions{
		State:       "closed",
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: limit},
	}

	list, resp, err := c.gh.Issues.ListByRepo(ctx, owner, repo, opt)
	if err != nil {
		return nil, errors.Wrapf(err, "error listing closed issues: %s/%s", owner, repo)
	}
	checkRateLimit(resp)

	issues := make([]metric.Issue, 0, len(list))
	for _, i := range list {
		if i == nil {
			continue
		}
		issues = append(issues, metric.Issue{
			CreatedAt:   i.GetCreatedAt().Time,
			ClosedAt:    i.GetClosedAt().Time,
			PullRequest: i.IsPullRequest(),
		})
	}

	return issues, nil
}

// FileContent fetches one file from the default branch. A missing file is
// (nil, false, nil), not an error.
func (c *Client) FileContent(ctx context.Context, owner, repo, path string) ([]byte, bool, error) {
	file, _, resp, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "error getting file: %s/%s/%s", owner, repo, path)
	}
	checkRateLimit(resp)

	if file == nil {
		return nil, false, nil
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, false, errors.Wrapf(err, "error decoding file: %s/%s/%s", owner, repo, path)
	}

	return []byte(content), true, nil
}

// License returns the repository's declared SPDX license identifier.
// A repository without a detected license is ("", false, nil).
func (c *Client) License(ctx context.Context, owner, repo string) (string, bool, error) {
	lic, resp, err := c.gh.Repositories.License(ctx, owner, repo)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "error getting license: %s/%s", owner, repo)
	}
	checkRateLimit(resp)

	id := lic.GetLicense().GetSPDXID()
	return id, id != "", nil
}
