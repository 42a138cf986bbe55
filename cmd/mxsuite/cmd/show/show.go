package show

import (
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/fossas/mxsuite/buildtools/mx"
	"github.com/fossas/mxsuite/cmd/mxsuite/flags"
	"github.com/fossas/mxsuite/cmd/mxsuite/setup"
	"github.com/fossas/mxsuite/suite"
)

var Cmd = cli.Command{
	Name:   "show",
	Usage:  "Print the decoded suite manifest",
	Action: Run,
	Flags:  flags.WithGlobalFlags([]cli.Flag{flags.FormatF}),
}

var _ cli.ActionFunc = Run

func Run(ctx *cli.Context) error {
	err := setup.SetContext(ctx)
	if err != nil {
		return err
	}

	format, err := mx.ParseFormat(ctx.String(flags.Format))
	if err != nil {
		return err
	}
	_, s, err := setup.Manifest()
	if err != nil {
		return err
	}
	return Do(os.Stdout, s, format)
}

// Do writes s to w in format.
func Do(w io.Writer, s *suite.Suite, format mx.Format) error {
	return mx.Write(w, s, format)
}
