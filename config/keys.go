package config

import (
	"os"
	"strconv"

	isatty "github.com/mattn/go-isatty"

	"github.com/fossas/mxsuite/cmd/mxsuite/flags"
	"github.com/fossas/mxsuite/resolve"
)

// Environment variables.
const (
	EnvManifest    = "MXSUITE_MANIFEST"
	EnvCache       = "MXSUITE_CACHE"
	EnvConcurrency = "MXSUITE_CONCURRENCY"
)

/**** Global configuration keys ****/

// Interactive is true if the user desires interactive output.
func Interactive() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) && !BoolFlag(flags.NoAnsi)
}

// Debug is true if the user has requested debug-level logging.
func Debug() bool {
	return BoolFlag(flags.Debug)
}

// Filepath is the configuration file path.
func Filepath() string {
	return filename
}

/**** Manifest configuration keys ****/

// Manifest is the path of the suite manifest. An empty value means the
// nearest manifest above the working directory.
func Manifest() string {
	return TryStrings(StringFlag(flags.Manifest), file.Manifest, os.Getenv(EnvManifest))
}

/**** Resolution configuration keys ****/

// CacheDir is the root of the import checkout cache.
func CacheDir() string {
	return TryStrings(StringFlag(flags.CacheDir), file.Cache, os.Getenv(EnvCache), resolve.DefaultCacheDir)
}

// Transitive is true if imports of imported suites should be resolved.
func Transitive() bool {
	return BoolFlag(flags.Transitive) || file.Transitive
}

// Concurrency bounds simultaneous fetches. Zero selects the resolver default.
func Concurrency() int {
	env, _ := strconv.Atoi(os.Getenv(EnvConcurrency))
	return TryInts(IntFlag(flags.Concurrency), file.Concurrency, env)
}
