// Package config implements application-level configuration functionality.
//
// It works by loading configuration sources (CLI flags, an optional
// `.mxsuite.yml` file and environment variables) and providing functions
// which compute relevant configuration values from these sources.
//
// This design is intended to make how a particular value is computed very
// clear. All values can have their computation strategy modified independently
// of all other values. It should also be easy to determine which source set a
// particular configuration value.
package config

import (
	"github.com/apex/log"
	"github.com/urfave/cli"

	"github.com/fossas/mxsuite/cmd/mxsuite/flags"
)

var (
	ctx      *cli.Context
	file     = File{}
	filename string
)

// SetContext initializes application-level configuration.
func SetContext(c *cli.Context) error {
	// First, set the CLI flags.
	ctx = c

	// Second, try to load a configuration file.
	f, fname, err := ReadFile(StringFlag(flags.Config))
	if err != nil {
		return err
	}
	if fname != "" {
		log.WithField("filename", fname).Debug("loaded configuration file")
	}
	file = f
	filename = fname
	return nil
}
