package vcs_test

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	git "gopkg.in/src-d/go-git.v4"
	"gopkg.in/src-d/go-git.v4/plumbing/object"

	"github.com/fossas/mxsuite/vcs"
)

// commitFile writes name with content into the worktree and commits it at when.
func commitFile(t *testing.T, r *git.Repository, dir, name, content string, when time.Time) string {
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	wt, err := r.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(name)
	require.NoError(t, err)
	sig := &object.Signature{Name: "mx", Email: "mx@example.com", When: when}
	hash, err := wt.Commit("update "+name, &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(t, err)
	return hash.String()
}

func initRepo(t *testing.T) (string, *git.Repository) {
	dir, err := ioutil.TempDir("", "mxsuite-vcs")
	require.NoError(t, err)
	r, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir, r
}

func TestNearestFindsGitCheckout(t *testing.T) {
	dir, r := initRepo(t)
	defer os.RemoveAll(dir)
	commitFile(t, r, dir, "a.txt", "a", time.Unix(1500000000, 0))

	nested := filepath.Join(dir, "mx.irbuilder")
	require.NoError(t, os.MkdirAll(nested, 0755))

	kind, root, err := vcs.Nearest(nested)
	assert.NoError(t, err)
	assert.Equal(t, vcs.Git, kind)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestHeadRevision(t *testing.T) {
	dir, r := initRepo(t)
	defer os.RemoveAll(dir)
	head := commitFile(t, r, dir, "a.txt", "a", time.Unix(1500000000, 0))

	rev, err := vcs.HeadRevision(dir)
	assert.NoError(t, err)
	assert.Equal(t, head, rev)
}

func TestCheckoutAndVerify(t *testing.T) {
	dir, r := initRepo(t)
	defer os.RemoveAll(dir)
	first := commitFile(t, r, dir, "a.txt", "first", time.Unix(1500000000, 0))
	second := commitFile(t, r, dir, "a.txt", "second", time.Unix(1600000000, 0))

	repo, err := vcs.OpenGit(dir)
	require.NoError(t, err)
	require.NoError(t, repo.Checkout(first))

	data, err := ioutil.ReadFile(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	f := vcs.GitFetcher{}
	assert.NoError(t, f.Verify(context.Background(), dir, first))
	assert.Error(t, f.Verify(context.Background(), dir, second))
}

func TestCheckoutUnknownRevision(t *testing.T) {
	dir, r := initRepo(t)
	defer os.RemoveAll(dir)
	commitFile(t, r, dir, "a.txt", "a", time.Unix(1500000000, 0))

	repo, err := vcs.OpenGit(dir)
	require.NoError(t, err)
	err = repo.Checkout("0123456789abcdef0123456789abcdef01234567")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), vcs.ErrRevisionNotFound.Error())
}

func TestCommitTime(t *testing.T) {
	dir, r := initRepo(t)
	defer os.RemoveAll(dir)
	older := commitFile(t, r, dir, "a.txt", "first", time.Unix(1500000000, 0))
	newer := commitFile(t, r, dir, "a.txt", "second", time.Unix(1600000000, 0))

	f := vcs.GitFetcher{}
	a, err := f.CommitTime(context.Background(), dir, older)
	require.NoError(t, err)
	b, err := f.CommitTime(context.Background(), dir, newer)
	require.NoError(t, err)
	assert.True(t, b.After(a))
	assert.Equal(t, int64(1500000000), a.Unix())
}

func TestFetcherKinds(t *testing.T) {
	assert.Equal(t, "git", vcs.GitFetcher{}.Kind())
	assert.Equal(t, "hg", vcs.MercurialFetcher{}.Kind())
}
