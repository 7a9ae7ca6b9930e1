package gitrepo

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClone_LocalSource(t *testing.T) {
	src := t.TempDir()
	repo, err := git.PlainInit(src, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(src, "main.go"), []byte("package main\n"), 0600))
	_, err = wt.Add("main.go")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "t@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	path, cleanup, err := Git{}.Clone(context.Background(), src)
	require.NoError(t, err)
	defer cleanup()

	assert.True(t, strings.Contains(path, "trustmeter-clone-"))
	_, err = os.Stat(filepath.Join(path, "main.go"))
	assert.NoError(t, err)

	cleanup()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestClone_BadURL(t *testing.T) {
	path, cleanup, err := Git{}.Clone(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
	assert.Empty(t, path)
	cleanup() // must be safe after failure
}
