package deps

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/fossas/mxsuite/cmd/mxsuite/display"
	"github.com/fossas/mxsuite/cmd/mxsuite/flags"
	"github.com/fossas/mxsuite/cmd/mxsuite/setup"
	"github.com/fossas/mxsuite/errors"
	"github.com/fossas/mxsuite/suite"
)

var Cmd = cli.Command{
	Name:      "deps",
	Usage:     "Print dependencies in build order",
	Action:    Run,
	ArgsUsage: "[PROJECT]",
	Flags:     flags.WithGlobalFlags([]cli.Flag{flags.JSONF}),
}

var _ cli.ActionFunc = Run

// Dependencies are the entries a target needs, local ones in build order.
type Dependencies struct {
	Local    []string `json:"local"`
	External []string `json:"external"`
}

func Run(ctx *cli.Context) error {
	err := setup.SetContext(ctx)
	if err != nil {
		return err
	}

	_, s, err := setup.Manifest()
	if err != nil {
		return err
	}
	deps, err := Do(s, ctx.Args().First())
	if err != nil {
		return err
	}

	if ctx.Bool(flags.JSON) {
		return display.JSON(deps)
	}
	return Print(os.Stdout, deps)
}

// Do orders target and its local dependencies so that each entry follows
// what it depends on. With an empty target, every entry of s is ordered.
func Do(s *suite.Suite, target string) (Dependencies, error) {
	var roots []string
	if target != "" {
		if !s.Defines(target) {
			return Dependencies{}, &errors.Error{
				Type:            errors.User,
				Message:         fmt.Sprintf("suite %q has no project, library or distribution named %q", s.Name, target),
				Troubleshooting: "Run `mxsuite deps` without arguments to list every entry.",
			}
		}
		roots = []string{target}
	}

	order, err := suite.DependencyGraph(s).Order(roots...)
	if err != nil {
		return Dependencies{}, &errors.Error{Cause: err, Type: errors.Config}
	}

	deps := Dependencies{Local: order, External: []string{}}
	for _, ref := range suite.ExternalDependencies(s, order) {
		deps.External = append(deps.External, ref.String())
	}
	return deps, nil
}

// Print writes local entries then external references, one per line.
func Print(w io.Writer, deps Dependencies) error {
	for _, name := range deps.Local {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	for _, ref := range deps.External {
		if _, err := fmt.Fprintln(w, ref); err != nil {
			return err
		}
	}
	return nil
}
