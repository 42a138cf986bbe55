package exec

import (
	"context"
	"errors"

	"github.com/apex/log"
)

// ErrNoCommand is returned when none of the candidates of Which can be run.
var ErrNoCommand = errors.New("could not resolve command")

// Which picks the first of cmds that runs successfully with arg. Empty
// candidates, such as an unset environment override, are skipped.
func Which(ctx context.Context, arg string, cmds ...string) (cmd string, output string, err error) {
	return WhichWithResolver(cmds, func(cmd string) (string, bool, error) {
		stdout, stderr, err := Run(ctx, Cmd{
			Name: cmd,
			Argv: []string{arg},
		})
		if err != nil {
			return "", false, err
		}
		if stdout == "" {
			return stderr, true, nil
		}
		return stdout, true, nil
	})
}

// A WhichResolver takes a candidate command and returns whether to choose it.
type WhichResolver func(cmd string) (output string, ok bool, err error)

// WhichWithResolver is `Which` with a custom resolution strategy.
func WhichWithResolver(cmds []string, resolve WhichResolver) (string, string, error) {
	for _, cmd := range cmds {
		if cmd == "" {
			continue
		}
		version, ok, err := resolve(cmd)
		if ok {
			return cmd, version, nil
		}
		log.WithError(err).WithField("cmd", cmd).Debug("candidate command is not usable")
	}
	return "", "", ErrNoCommand
}
