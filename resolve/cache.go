package resolve

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"

	"github.com/fossas/mxsuite/suite"
)

// DefaultCacheDir is the cache root used when none is configured.
const DefaultCacheDir = "~/.mxsuite/cache"

// A Cache stores checkouts of imported suites at `<root>/<name>/<revision>`.
// An entry is never modified once it has been moved into place.
type Cache struct {
	Root string
}

// NewCache returns a cache rooted at root, expanding a leading `~`. An empty
// root selects DefaultCacheDir.
func NewCache(root string) (Cache, error) {
	if root == "" {
		root = DefaultCacheDir
	}
	expanded, err := homedir.Expand(root)
	if err != nil {
		return Cache{}, errors.Wrapf(err, "could not expand cache directory %s", root)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return Cache{}, err
	}
	return Cache{Root: abs}, nil
}

// Dir returns the directory of the checkout of name at revision. It fails for
// names and revisions that would place the checkout outside of the root.
func (c Cache) Dir(name, revision string) (string, error) {
	if err := suite.CheckImportName(name); err != nil {
		return "", errors.Wrap(err, "invalid cache entry")
	}
	if err := suite.CheckImportName(revision); err != nil {
		return "", errors.Wrap(err, "invalid cache entry")
	}
	dir := filepath.Join(c.Root, name, revision)
	rel, err := filepath.Rel(c.Root, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Errorf("cache entry %s is outside of %s", dir, c.Root)
	}
	return dir, nil
}

// staging creates a scratch directory next to the entries of name, so that a
// finished checkout can be renamed into place.
func (c Cache) staging(name string) (string, error) {
	parent := filepath.Join(c.Root, name)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return "", errors.Wrapf(err, "could not create cache directory %s", parent)
	}
	return ioutil.TempDir(parent, ".fetch-")
}
