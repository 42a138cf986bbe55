// Package setup implements initialization for all application packages.
package setup

import (
	"github.com/apex/log"
	"github.com/urfave/cli"

	"github.com/fossas/mxsuite/buildtools/mx"
	"github.com/fossas/mxsuite/cmd/mxsuite/display"
	"github.com/fossas/mxsuite/config"
	"github.com/fossas/mxsuite/errors"
	"github.com/fossas/mxsuite/resolve"
	"github.com/fossas/mxsuite/suite"
)

// SetContext initializes all application-level packages.
func SetContext(ctx *cli.Context) error {
	// Set up configuration.
	err := config.SetContext(ctx)
	if err != nil {
		return &errors.Error{
			Cause:           err,
			Type:            errors.User,
			Troubleshooting: "Check the file passed with --config, or remove .mxsuite.yml to use the defaults.",
		}
	}

	// Set up logging.
	display.SetInteractive(config.Interactive())
	display.SetDebug(config.Debug())
	log.WithField("file", display.File()).Debug("writing debug log")
	return nil
}

// ManifestPath returns the configured manifest, or the nearest one above the
// working directory.
func ManifestPath() (string, error) {
	if path := config.Manifest(); path != "" {
		return path, nil
	}
	return mx.Find(".")
}

// Manifest reads the configured manifest.
func Manifest() (string, *suite.Suite, error) {
	path, err := ManifestPath()
	if err != nil {
		return "", nil, err
	}
	log.WithField("manifest", path).Debug("reading manifest")
	s, err := mx.Read(path)
	if err != nil {
		return "", nil, err
	}
	return path, s, nil
}

// Resolver returns a resolver configured from the application configuration.
func Resolver() (*resolve.Resolver, error) {
	cache, err := resolve.NewCache(config.CacheDir())
	if err != nil {
		return nil, &errors.Error{
			Cause:           err,
			Type:            errors.User,
			Troubleshooting: "Set the cache directory with --cache-dir or $" + config.EnvCache + ".",
		}
	}
	r := resolve.New(cache)
	r.Transitive = config.Transitive()
	if n := config.Concurrency(); n > 0 {
		r.Concurrency = n
	}
	return r, nil
}
