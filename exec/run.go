// Package exec runs external commands on behalf of fetchers that delegate to
// a VCS binary.
package exec

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/apex/log"
)

// Cmd represents a single command.
type Cmd struct {
	Name string   // Executable name.
	Argv []string // Executable arguments.

	Dir string // The Cmd's working directory.

	// If neither Env nor WithEnv are set, the environment is inherited from os.Environ().
	Env     map[string]string // If set, the command's environment is _set_ to Env.
	WithEnv map[string]string // If set, the command's environment is _added_ to WithEnv.
}

// BuildExec turns a Cmd into an *exec.Cmd bound to ctx.
func BuildExec(ctx context.Context, cmd Cmd) *exec.Cmd {
	xc := exec.CommandContext(ctx, cmd.Name, cmd.Argv...)
	if cmd.Dir != "" {
		xc.Dir = cmd.Dir
	}

	switch {
	case cmd.Env != nil:
		xc.Env = toEnv(cmd.Env)
	case cmd.WithEnv != nil:
		xc.Env = append(toEnv(cmd.WithEnv), os.Environ()...)
	default:
		xc.Env = os.Environ()
	}
	return xc
}

// Run executes a Cmd and returns its output.
func Run(ctx context.Context, cmd Cmd) (stdout, stderr string, err error) {
	entry := log.WithFields(log.Fields{
		"cmd": strings.Join(append([]string{cmd.Name}, cmd.Argv...), " "),
		"dir": cmd.Dir,
	})
	entry.Debug("running command")

	var stderrBuffer bytes.Buffer
	xc := BuildExec(ctx, cmd)
	xc.Stderr = &stderrBuffer

	stdoutBuffer, err := xc.Output()
	stdout = string(stdoutBuffer)
	stderr = stderrBuffer.String()

	entry.WithFields(log.Fields{
		"stdout": stdout,
		"stderr": stderr,
	}).Debug("done running")

	return stdout, stderr, err
}

func toEnv(env map[string]string) []string {
	var out []string
	for key, val := range env {
		out = append(out, key+"="+val)
	}
	return out
}
