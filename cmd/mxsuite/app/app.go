package app

import (
	"github.com/urfave/cli"

	"github.com/fossas/mxsuite/cmd/mxsuite/cmd/deps"
	"github.com/fossas/mxsuite/cmd/mxsuite/cmd/format"
	"github.com/fossas/mxsuite/cmd/mxsuite/cmd/resolve"
	"github.com/fossas/mxsuite/cmd/mxsuite/cmd/show"
	"github.com/fossas/mxsuite/cmd/mxsuite/cmd/validate"
	"github.com/fossas/mxsuite/cmd/mxsuite/flags"
	"github.com/fossas/mxsuite/cmd/mxsuite/version"
)

func New() *cli.App {
	return &cli.App{
		Name:                 "mxsuite",
		Usage:                "Read, validate and resolve mx suite manifests",
		Version:              version.String(),
		Action:               validate.Run,
		EnableBashCompletion: true,
		Flags:                flags.WithGlobalFlags(nil),
		Commands: []cli.Command{
			validate.Cmd,
			show.Cmd,
			format.Cmd,
			resolve.Cmd,
			deps.Cmd,
		},
	}
}
