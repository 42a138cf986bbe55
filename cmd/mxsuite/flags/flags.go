package flags

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/urfave/cli"
)

func abbr(fullname string) string {
	return fmt.Sprintf("%c, %s", fullname[0], fullname)
}

// Combine concatenates flag lists, dropping repeated flags. Two different
// flags with the same name are a programming error.
func Combine(lists ...[]cli.Flag) []cli.Flag {
	var combined []cli.Flag
	seen := make(map[string]cli.Flag)
	for _, list := range lists {
		for _, f := range list {
			name := strings.Split(f.GetName(), ",")[0]
			if prev, ok := seen[name]; ok {
				if !reflect.DeepEqual(prev, f) {
					panic(fmt.Sprintf("conflicting definitions of flag %q", name))
				}
				continue
			}
			seen[name] = f
			combined = append(combined, f)
		}
	}
	return combined
}

func WithGlobalFlags(f []cli.Flag) []cli.Flag {
	return append(f, Global...)
}

var (
	Global    = []cli.Flag{ConfigF, ManifestF, NoAnsiF, DebugF}
	Config    = "config"
	ConfigF   = cli.StringFlag{Name: abbr(Config), Usage: "path to config file (default: '.mxsuite.{yml,yaml}')"}
	Manifest  = "manifest"
	ManifestF = cli.StringFlag{Name: abbr(Manifest), Usage: "path to the suite manifest (default: nearest 'mx.*/suite.py')"}
	NoAnsi    = "no-ansi"
	NoAnsiF   = cli.BoolFlag{Name: NoAnsi, Usage: "do not use interactive mode (ANSI codes)"}
	Debug     = "debug"
	DebugF    = cli.BoolFlag{Name: Debug, Usage: "print debug information to stderr"}
)

func WithResolveFlags(f []cli.Flag) []cli.Flag {
	return append(f, Resolve...)
}

var (
	Resolve      = []cli.Flag{CacheDirF, TransitiveF, ConcurrencyF}
	CacheDir     = "cache-dir"
	CacheDirF    = cli.StringFlag{Name: CacheDir, Usage: "directory imported suites are checked out into (default: '~/.mxsuite/cache')"}
	Transitive   = "transitive"
	TransitiveF  = cli.BoolFlag{Name: abbr(Transitive), Usage: "also resolve the imports of imported suites"}
	Concurrency  = "concurrency"
	ConcurrencyF = cli.IntFlag{Name: Concurrency, Usage: "maximum number of simultaneous fetches (default: 4)"}
)

var (
	Format  = "format"
	FormatF = cli.StringFlag{Name: abbr(Format), Value: "py", Usage: "manifest output format: py, yaml, json or toml"}
	JSON    = "json"
	JSONF   = cli.BoolFlag{Name: JSON, Usage: "print results as JSON"}
)
