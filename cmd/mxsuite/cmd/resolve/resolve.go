package resolve

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/fossas/mxsuite/cmd/mxsuite/display"
	"github.com/fossas/mxsuite/cmd/mxsuite/flags"
	"github.com/fossas/mxsuite/cmd/mxsuite/setup"
	"github.com/fossas/mxsuite/errors"
	mxresolve "github.com/fossas/mxsuite/resolve"
	"github.com/fossas/mxsuite/suite"
)

var Cmd = cli.Command{
	Name:   "resolve",
	Usage:  "Fetch the imports of a suite at their pinned revisions",
	Action: Run,
	Flags:  flags.WithGlobalFlags(flags.WithResolveFlags([]cli.Flag{flags.JSONF})),
}

var _ cli.ActionFunc = Run

// Suite is one line of output.
type Suite struct {
	Name       string   `json:"name"`
	Revision   string   `json:"revision"`
	URL        string   `json:"url"`
	Dir        string   `json:"dir"`
	ImportedBy string   `json:"importedBy"`
	Exports    []string `json:"exports"`
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
	r, err := setup.Resolver()
	if err != nil {
		return err
	}

	var suites []Suite
	err = display.Progress(fmt.Sprintf("Resolving imports of %s...", s.Identity()), func() error {
		var err error
		suites, err = Do(context.Background(), r, s)
		return err
	})
	if err != nil {
		return err
	}

	if ctx.Bool(flags.JSON) {
		return display.JSON(suites)
	}
	return Print(os.Stdout, suites)
}

// Do resolves the imports of s and validates s against their exports.
func Do(ctx context.Context, r *mxresolve.Resolver, s *suite.Suite) ([]Suite, error) {
	res, err := r.Resolve(ctx, s)
	if err != nil {
		if re, ok := err.(*mxresolve.ResolutionError); ok {
			return nil, &errors.Error{
				Cause:           re,
				Type:            errors.Resolution,
				Troubleshooting: fmt.Sprintf("Check that %s is reachable and contains revision %s. Cached checkouts live in %s.", re.URL, re.Revision, r.Cache.Root),
			}
		}
		return nil, errors.Wrap(err, errors.Resolution, "could not resolve imports of %s", s.Identity())
	}

	if err := suite.Validate(s, suite.Options{Exports: res.Exports()}); err != nil {
		return nil, err
	}

	var suites []Suite
	for _, name := range res.Names() {
		rs := res.Suites[name]
		suites = append(suites, Suite{
			Name:       rs.Name,
			Revision:   rs.Revision,
			URL:        rs.URL,
			Dir:        rs.SuiteDir,
			ImportedBy: rs.ImportedBy,
			Exports:    rs.Exports,
		})
	}
	return suites, nil
}

// Print writes suites as a borderless table.
func Print(w io.Writer, suites []Suite) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Suite", "Revision", "Directory"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	for _, s := range suites {
		table.Append([]string{s.Name, s.Revision, s.Dir})
	}
	table.Render()
	return nil
}
