package validate

import (
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli"

	"github.com/fossas/mxsuite/buildtools/mx"
	"github.com/fossas/mxsuite/cmd/mxsuite/flags"
	"github.com/fossas/mxsuite/cmd/mxsuite/setup"
	"github.com/fossas/mxsuite/suite"
)

var Cmd = cli.Command{
	Name:      "validate",
	Usage:     "Check a suite manifest for configuration errors",
	Action:    Run,
	ArgsUsage: "[MANIFEST]",
	Flags:     flags.WithGlobalFlags(nil),
}

var _ cli.ActionFunc = Run

func Run(ctx *cli.Context) error {
	err := setup.SetContext(ctx)
	if err != nil {
		return err
	}

	path := ctx.Args().First()
	if path == "" {
		path, err = setup.ManifestPath()
		if err != nil {
			return err
		}
	}
	return Do(os.Stdout, path)
}

// Do reads and validates the manifest at path, writing `OK <suite>` to w on
// success.
func Do(w io.Writer, path string) error {
	log.WithField("manifest", path).Debug("validating manifest")
	s, err := mx.Read(path)
	if err != nil {
		return err
	}
	if err := suite.Validate(s, suite.Options{}); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "OK %s\n", s.Identity())
	return err
}
