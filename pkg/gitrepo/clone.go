// Package gitrepo materializes remote repositories into request-scoped
// local checkouts so file-based metrics share a single clone.
package gitrepo

import (
	"context"
	"os"

	git "github.com/go-git/go-git/v5"
	"github.com/pkg/errors"
)

const (
	tempDirPattern = "trustmeter-clone-*"

	// cloneDepth bounds history transfer while keeping enough commits
	// for history-based analysis.
	cloneDepth = 500
)

// Cloner materializes a repository URL into a local path.
type Cloner interface {
	Clone(ctx context.Context, url string) (path string, cleanup func(), err error)
}

// Git clones over the network with go-git.
type Git struct{}

// Clone checks the repository out into an isolated temp directory. The
// returned cleanup removes the directory; it is safe to call even when
// err is non-nil. Concurrent scoring requests never share clone dirs.
func (Git) Clone(ctx context.Context, url string) (string, func(), error) {
	dir, err := os.MkdirTemp("", tempDirPattern)
	if err != nil {
		return "", func() {}, errors.Wrap(err, "failed to create clone dir")
	}
	cleanup := func() { os.RemoveAll(dir) }

	_, err = git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:          url,
		Depth:        cloneDepth,
		SingleBranch: true,
		Tags:         git.NoTags,
	})
	if err != nil {
		cleanup()
		return "", func() {}, errors.Wrapf(err, "failed to clone: %s", url)
	}

	return dir, cleanup, nil
}
