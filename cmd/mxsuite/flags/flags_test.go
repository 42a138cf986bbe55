package flags_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli"

	"github.com/fossas/mxsuite/cmd/mxsuite/flags"
)

func TestCombine(t *testing.T) {
	fooFlag := cli.BoolFlag{Name: "foo", Usage: "bar"}
	helloFlag := cli.BoolFlag{Name: "hello", Usage: "world"}

	combined := flags.Combine(
		[]cli.Flag{fooFlag},
		[]cli.Flag{fooFlag, helloFlag},
	)
	assert.Equal(t, combined, []cli.Flag{fooFlag, helloFlag})

	assert.Panics(t, func() {
		flags.Combine(
			[]cli.Flag{fooFlag},
			[]cli.Flag{cli.BoolFlag{Name: "foo", Usage: "baz"}},
		)
	})
}

func TestGlobalFlagsAreAbbreviated(t *testing.T) {
	assert.Equal(t, "c, config", flags.ConfigF.Name)
	assert.Equal(t, "m, manifest", flags.ManifestF.Name)
	assert.Len(t, flags.WithGlobalFlags(flags.WithResolveFlags(nil)), len(flags.Global)+len(flags.Resolve))
}
