package format

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/urfave/cli"

	"github.com/fossas/mxsuite/buildtools/mx"
	"github.com/fossas/mxsuite/cmd/mxsuite/flags"
	"github.com/fossas/mxsuite/cmd/mxsuite/setup"
	"github.com/fossas/mxsuite/errors"
	"github.com/fossas/mxsuite/files"
	"github.com/fossas/mxsuite/pylit"
)

var (
	Check  = "check"
	CheckF = cli.BoolFlag{Name: Check, Usage: "print a diff and fail if the manifest is not canonically formatted"}
	Write  = "write"
	WriteF = cli.BoolFlag{Name: "w, write", Usage: "rewrite the manifest in place"}
	Force  = "force"
	ForceF = cli.BoolFlag{Name: Force, Usage: "with --write, rewrite a suite.py even if its comments or other statements are lost"}
)

var Cmd = cli.Command{
	Name:   "format",
	Usage:  "Re-serialize a suite manifest in canonical form",
	Action: Run,
	Flags:  flags.WithGlobalFlags([]cli.Flag{CheckF, WriteF, ForceF}),
}

var _ cli.ActionFunc = Run

// Options select what Do does with the canonical manifest.
type Options struct {
	Check bool
	Write bool
	// Force lets Write drop the comments and extra statements of a suite.py.
	Force bool
}

func Run(ctx *cli.Context) error {
	err := setup.SetContext(ctx)
	if err != nil {
		return err
	}

	path, err := setup.ManifestPath()
	if err != nil {
		return err
	}
	canonical, err := Do(os.Stdout, path, Options{Check: ctx.Bool(Check), Write: ctx.Bool(Write), Force: ctx.Bool(Force)})
	if err != nil {
		return err
	}
	if ctx.Bool(Check) && !canonical {
		return &errors.Error{
			Type:            errors.User,
			Message:         fmt.Sprintf("%s is not canonically formatted", path),
			Troubleshooting: "Run `mxsuite format --write` to rewrite it.",
		}
	}
	return nil
}

// Do formats the manifest at path and reports whether it already was
// canonical. Without options, the canonical manifest is written to w.
func Do(w io.Writer, path string, opts Options) (bool, error) {
	format, err := mx.FormatOf(path)
	if err != nil {
		return false, err
	}
	original, err := files.Read(path)
	if err != nil {
		return false, errors.Wrap(err, errors.User, "could not read manifest %s", path)
	}
	s, err := mx.Decode(original, format)
	if err != nil {
		return false, errors.Wrap(err, errors.Parse, "could not parse manifest %s", path)
	}

	var buf bytes.Buffer
	if err := mx.Write(&buf, s, format); err != nil {
		return false, err
	}
	formatted := buf.Bytes()
	canonical := bytes.Equal(original, formatted)

	switch {
	case opts.Check:
		if !canonical {
			_, err = io.WriteString(w, Diff(path, string(original), string(formatted)))
		}
	case opts.Write:
		if canonical {
			log.WithField("manifest", path).Debug("manifest is already canonical")
			break
		}
		if format == mx.Python {
			if err := checkDropped(path, original, opts.Force); err != nil {
				return false, err
			}
		}
		info, statErr := os.Stat(path)
		if statErr != nil {
			return false, statErr
		}
		err = files.WriteAtomic(path, formatted, info.Mode())
		if err == nil {
			log.WithField("manifest", path).Info("rewrote manifest")
		}
	default:
		_, err = w.Write(formatted)
	}
	return canonical, err
}

// checkDropped refuses to rewrite a suite.py whose comments or extra
// statements would be lost, unless force is set.
func checkDropped(path string, src []byte, force bool) error {
	dropped, err := pylit.Dropped(src, pylit.SuiteVariable)
	if err != nil {
		return errors.Wrap(err, errors.Parse, "could not parse manifest %s", path)
	}
	if len(dropped) == 0 {
		return nil
	}
	if force {
		for _, d := range dropped {
			log.WithField("manifest", path).Warnf("dropping %s", d)
		}
		return nil
	}
	return &errors.Error{
		Type:            errors.User,
		Message:         fmt.Sprintf("rewriting %s would drop %s", path, strings.Join(dropped, ", ")),
		Troubleshooting: "Formatting only keeps the `suite` dict. Move the listed content elsewhere, or run `mxsuite format --write --force` to rewrite the manifest anyway.",
	}
}

// Diff renders a line diff from a to b.
func Diff(path, a, b string) string {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var out strings.Builder
	fmt.Fprintf(&out, "--- %s\n+++ %s (formatted)\n", path, path)
	for _, d := range diffs {
		var prefix string
		paint := fmt.Sprint
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
			paint = color.New(color.FgRed).Sprint
		case diffmatchpatch.DiffInsert:
			prefix = "+"
			paint = color.New(color.FgGreen).Sprint
		default:
			prefix = " "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			if !strings.HasSuffix(line, "\n") {
				line += "\n"
			}
			out.WriteString(paint(prefix + line))
		}
	}
	return out.String()
}
