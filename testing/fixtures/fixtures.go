// Package fixtures builds suite checkouts for tests.
package fixtures

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	git "gopkg.in/src-d/go-git.v4"
	"gopkg.in/src-d/go-git.v4/plumbing/object"

	"github.com/fossas/mxsuite/buildtools/mx"
	"github.com/fossas/mxsuite/suite"
)

// Signature is the author of fixture commits.
var Signature = object.Signature{Name: "mxsuite", Email: "mxsuite@example.com", When: time.Unix(1500000000, 0)}

// Repo creates a git repository in dir containing files and commits it. It
// returns the commit id.
func Repo(t *testing.T, dir string, files map[string]string) string {
	r, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := r.Worktree()
	require.NoError(t, err)

	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
		_, err := wt.Add(filepath.ToSlash(name))
		require.NoError(t, err)
	}

	sig := Signature
	hash, err := wt.Commit("fixture", &git.CommitOptions{Author: &sig, Committer: &sig})
	require.NoError(t, err)
	return hash.String()
}

// Manifest renders s as a `suite.py`.
func Manifest(t *testing.T, s *suite.Suite) string {
	tree := s.Tree()
	data, err := mx.Marshal(tree, mx.Python)
	require.NoError(t, err)
	return string(data)
}

// Cached places a git checkout of s into the cache rooted at cacheRoot, where
// a resolver finds it without fetching. It returns the pinned revision.
func Cached(t *testing.T, cacheRoot string, s *suite.Suite) string {
	staging, err := ioutil.TempDir("", "mxsuite-fixture")
	require.NoError(t, err)
	defer os.RemoveAll(staging)

	checkout := filepath.Join(staging, s.Name)
	manifest, err := filepath.Rel(checkout, mx.ManifestPath(checkout, s.Name))
	require.NoError(t, err)
	revision := Repo(t, checkout, map[string]string{manifest: Manifest(t, s)})

	dir := filepath.Join(cacheRoot, s.Name, revision)
	require.NoError(t, os.MkdirAll(filepath.Dir(dir), 0755))
	require.NoError(t, os.Rename(checkout, dir))
	return revision
}
