package config_test

import (
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"

	"github.com/fossas/mxsuite/cmd/mxsuite/flags"
	"github.com/fossas/mxsuite/config"
	"github.com/fossas/mxsuite/resolve"
)

func context(t *testing.T, args ...string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range flags.WithGlobalFlags(flags.WithResolveFlags(nil)) {
		f.Apply(set)
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(cli.NewApp(), set, nil)
}

func writeConfig(t *testing.T, content string) (string, func()) {
	dir, err := ioutil.TempDir("", "mxsuite-config")
	require.NoError(t, err)
	path := filepath.Join(dir, ".mxsuite.yml")
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
	return path, func() { os.RemoveAll(dir) }
}

func TestTryStrings(t *testing.T) {
	assert.Equal(t, "b", config.TryStrings("", "b", "c"))
	assert.Equal(t, "", config.TryStrings("", ""))
	assert.Equal(t, 3, config.TryInts(0, 3, 4))
}

func TestSetContextWithoutConfigFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "mxsuite-config")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	require.NoError(t, config.SetContext(context(t)))
	assert.Equal(t, "", config.Filepath())
	assert.Equal(t, resolve.DefaultCacheDir, config.CacheDir())
	assert.False(t, config.Transitive())
	assert.Equal(t, 0, config.Concurrency())
}

func TestCacheDirPrecedence(t *testing.T) {
	path, cleanup := writeConfig(t, "cache: /from/file\n")
	defer cleanup()
	defer os.Unsetenv(config.EnvCache)
	require.NoError(t, os.Setenv(config.EnvCache, "/from/env"))

	require.NoError(t, config.SetContext(context(t, "--config", path, "--cache-dir", "/from/flag")))
	assert.Equal(t, path, config.Filepath())
	assert.Equal(t, "/from/flag", config.CacheDir())

	require.NoError(t, config.SetContext(context(t, "--config", path)))
	assert.Equal(t, "/from/file", config.CacheDir())

	other, cleanupOther := writeConfig(t, "transitive: true\n")
	defer cleanupOther()
	require.NoError(t, config.SetContext(context(t, "-c", other)))
	assert.Equal(t, "/from/env", config.CacheDir())
	assert.True(t, config.Transitive())
}

func TestFileKeys(t *testing.T) {
	path, cleanup := writeConfig(t, "manifest: mx.irbuilder/suite.py\nconcurrency: 8\n")
	defer cleanup()

	require.NoError(t, config.SetContext(context(t, "--config", path)))
	assert.Equal(t, "mx.irbuilder/suite.py", config.Manifest())
	assert.Equal(t, 8, config.Concurrency())

	require.NoError(t, config.SetContext(context(t, "--config", path, "-m", "other/suite.py", "--concurrency", "2")))
	assert.Equal(t, "other/suite.py", config.Manifest())
	assert.Equal(t, 2, config.Concurrency())
}

func TestReadFileRejectsUnknownKeys(t *testing.T) {
	path, cleanup := writeConfig(t, "api_key: abc\n")
	defer cleanup()

	_, _, err := config.ReadFile(path)
	assert.Error(t, err)
}

func TestReadFileMissingExplicitFile(t *testing.T) {
	_, _, err := config.ReadFile(filepath.Join(os.TempDir(), "does-not-exist.yml"))
	assert.Error(t, err)
}
