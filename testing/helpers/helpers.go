package helpers

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fossas/mxsuite/errors"
	"github.com/fossas/mxsuite/suite"
)

// TempDir creates a temporary directory and returns it with its cleanup.
func TempDir(t *testing.T) (string, func()) {
	dir, err := ioutil.TempDir("", "mxsuite-test")
	require.NoError(t, err)
	return dir, func() { os.RemoveAll(dir) }
}

// Problems extracts the validation problems from an error returned by
// suite.Validate.
func Problems(t *testing.T, err error) suite.Problems {
	require.Error(t, err)
	e, ok := err.(*errors.Error)
	require.True(t, ok, "expected *errors.Error, got %T", err)
	assert.Equal(t, errors.Config, e.Type)
	ps, ok := e.Cause.(suite.Problems)
	require.True(t, ok, "expected suite.Problems, got %T", e.Cause)
	return ps
}

// AssertProblem asserts that err reports a problem at path.
func AssertProblem(t *testing.T, err error, path string) {
	for _, p := range Problems(t, err) {
		if p.Path == path {
			return
		}
	}
	assert.Fail(t, "missing problem at "+path, "%s", err)
}

// Paths lists the paths of ps in order.
func Paths(ps suite.Problems) []string {
	var out []string
	for _, p := range ps {
		out = append(out, p.Path)
	}
	return out
}
