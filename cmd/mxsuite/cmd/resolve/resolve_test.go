package resolve_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fossas/mxsuite/cmd/mxsuite/cmd/resolve"
	"github.com/fossas/mxsuite/errors"
	mxresolve "github.com/fossas/mxsuite/resolve"
	"github.com/fossas/mxsuite/suite"
	"github.com/fossas/mxsuite/testing/fixtures"
	"github.com/fossas/mxsuite/testing/helpers"
)

const project = "at.pointhi.irbuilder.irwriter"

var sulong = &suite.Suite{
	MxVersion: "5.70.2",
	Name:      "sulong",
	Distributions: []*suite.Distribution{{
		Name: "SULONG",
		Path: "build/sulong.jar",
	}},
}

func irbuilder(revision, kind, dependency string) *suite.Suite {
	return &suite.Suite{
		MxVersion: "5.70.2",
		Name:      "java-llvm-ir-builder",
		Imports: suite.Imports{Suites: []suite.Import{{
			Name:    "sulong",
			Version: revision,
			URLs:    []suite.URL{{URL: "https://github.com/graalvm/sulong", Kind: kind}},
		}}},
		Projects: []*suite.Project{{
			Name:           project,
			SubDir:         "projects",
			SourceDirs:     []string{"src"},
			Dependencies:   []string{dependency},
			JavaCompliance: "1.8",
			License:        "BSD-new",
		}},
	}
}

// cachedResolver returns a resolver whose cache already holds sulong.
func cachedResolver(t *testing.T) (*mxresolve.Resolver, string) {
	dir, cleanup := helpers.TempDir(t)
	t.Cleanup(cleanup)

	cache, err := mxresolve.NewCache(dir)
	require.NoError(t, err)
	revision := fixtures.Cached(t, cache.Root, sulong)
	return mxresolve.New(cache), revision
}

func TestResolveFromCache(t *testing.T) {
	r, revision := cachedResolver(t)

	suites, err := resolve.Do(context.Background(), r, irbuilder(revision, suite.KindGit, "sulong:SULONG"))
	require.NoError(t, err)
	require.Len(t, suites, 1)
	assert.Equal(t, "sulong", suites[0].Name)
	assert.Equal(t, revision, suites[0].Revision)
	assert.Equal(t, "https://github.com/graalvm/sulong", suites[0].URL)
	dir, err := r.Cache.Dir("sulong", revision)
	require.NoError(t, err)
	assert.Equal(t, dir, suites[0].Dir)
	assert.Equal(t, "java-llvm-ir-builder", suites[0].ImportedBy)
	assert.Equal(t, []string{"SULONG"}, suites[0].Exports)

	var out bytes.Buffer
	require.NoError(t, resolve.Print(&out, suites))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "SUITE"))
	assert.Equal(t, []string{"sulong", revision, filepath.Join(r.Cache.Root, "sulong", revision)}, strings.Fields(lines[1]))
}

func TestResolveChecksExports(t *testing.T) {
	r, revision := cachedResolver(t)

	_, err := resolve.Do(context.Background(), r, irbuilder(revision, suite.KindGit, "sulong:SULONG_TEST"))
	helpers.AssertProblem(t, err, "projects."+project+".dependencies[0]")
}

func TestResolveUnsupportedKind(t *testing.T) {
	r, revision := cachedResolver(t)

	_, err := resolve.Do(context.Background(), r, irbuilder(revision, "svn", "sulong:SULONG"))
	assert.Error(t, err)
	assert.Equal(t, errors.Resolution, errors.TypeOf(err))

	e, ok := err.(*errors.Error)
	require.True(t, ok)
	assert.Contains(t, e.Troubleshooting, r.Cache.Root)
}
