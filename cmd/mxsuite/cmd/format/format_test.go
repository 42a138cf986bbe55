package format_test

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apex/log"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fossas/mxsuite/cmd/mxsuite/cmd/format"
	"github.com/fossas/mxsuite/cmd/mxsuite/display"
	"github.com/fossas/mxsuite/errors"
	"github.com/fossas/mxsuite/testing/helpers"
)

func init() {
	color.NoColor = true
}

func copyManifest(t *testing.T) string {
	data, err := ioutil.ReadFile(filepath.Join("testdata", "mx.irbuilder", "suite.py"))
	require.NoError(t, err)
	dir, cleanup := helpers.TempDir(t)
	t.Cleanup(cleanup)

	path := filepath.Join(dir, "mx.irbuilder", "suite.py")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, ioutil.WriteFile(path, data, 0644))
	return path
}

func TestFormatPrintsCanonicalManifest(t *testing.T) {
	path := copyManifest(t)

	var out bytes.Buffer
	canonical, err := format.Do(&out, path, format.Options{})
	assert.NoError(t, err)
	assert.False(t, canonical)
	assert.True(t, strings.HasPrefix(out.String(), "suite = {\n"))
	assert.Contains(t, out.String(), `"name" : "java-llvm-ir-builder",`)
	assert.Contains(t, out.String(), `"sourceDirs" : ["src"],`)
}

func TestFormatCheck(t *testing.T) {
	path := copyManifest(t)

	var out bytes.Buffer
	canonical, err := format.Do(&out, path, format.Options{Check: true})
	assert.NoError(t, err)
	assert.False(t, canonical)
	assert.True(t, strings.HasPrefix(out.String(), "--- "+path+"\n+++ "+path+" (formatted)\n"))
	assert.Contains(t, out.String(), "\n-\n")
}

func TestFormatWrite(t *testing.T) {
	path := copyManifest(t)

	canonical, err := format.Do(&bytes.Buffer{}, path, format.Options{Write: true})
	assert.NoError(t, err)
	assert.False(t, canonical)

	var out bytes.Buffer
	canonical, err = format.Do(&out, path, format.Options{Check: true})
	assert.NoError(t, err)
	assert.True(t, canonical)
	assert.Empty(t, out.String())
}

func TestDiff(t *testing.T) {
	diff := format.Diff("suite.py", "a\nb\nc\n", "a\nB\nc\n")
	assert.Equal(t, "--- suite.py\n+++ suite.py (formatted)\n a\n-b\n+B\n c\n", diff)
}

func TestFormatWriteKeepsCommentedManifest(t *testing.T) {
	path := copyManifest(t)
	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	commented := append([]byte("# Keep me.\n"), data...)
	require.NoError(t, ioutil.WriteFile(path, commented, 0644))

	_, err = format.Do(&bytes.Buffer{}, path, format.Options{Write: true})
	if assert.Error(t, err) {
		assert.Equal(t, errors.User, errors.TypeOf(err))
		assert.Contains(t, err.Error(), "line 1: comment")
	}
	after, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, commented, after)

	logs, restore := display.Capture()
	defer restore()
	_, err = format.Do(&bytes.Buffer{}, path, format.Options{Write: true, Force: true})
	assert.NoError(t, err)
	var warnings []string
	for _, e := range logs.Entries {
		if e.Level == log.WarnLevel {
			warnings = append(warnings, e.Message)
		}
	}
	assert.Equal(t, []string{"dropping line 1: comment"}, warnings)
	after, err = ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(after), "Keep me")
}
