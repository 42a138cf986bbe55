package exec_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fossas/mxsuite/exec"
)

func TestSetEnv(t *testing.T) {
	c := exec.BuildExec(context.Background(), exec.Cmd{
		Name: "example",
		Env: map[string]string{
			"foo": "bar",
		},
	})

	assert.Equal(t, []string{"foo=bar"}, c.Env)
	assert.Len(t, c.Env, 1)
}

func TestAppendEnv(t *testing.T) {
	os.Setenv("alice", "bob")
	c := exec.BuildExec(context.Background(), exec.Cmd{
		Name: "example",
		WithEnv: map[string]string{
			"foo": "bar",
		},
	})

	assert.Contains(t, c.Env, "foo=bar")
	assert.Contains(t, c.Env, "alice=bob")
}

func TestDefaultEnv(t *testing.T) {
	os.Setenv("alice", "bob")
	c := exec.BuildExec(context.Background(), exec.Cmd{
		Name: "example",
		Dir:  "/tmp",
	})
	assert.Contains(t, c.Env, "alice=bob")
	assert.Equal(t, "/tmp", c.Dir)
}

func TestWhichWithResolverSkipsUnusable(t *testing.T) {
	cmd, out, err := exec.WhichWithResolver([]string{"", "missing", "hg"}, func(cmd string) (string, bool, error) {
		if cmd == "hg" {
			return "Mercurial 5.0", true, nil
		}
		return "", false, assert.AnError
	})
	assert.NoError(t, err)
	assert.Equal(t, "hg", cmd)
	assert.Equal(t, "Mercurial 5.0", out)

	_, _, err = exec.WhichWithResolver([]string{"missing"}, func(string) (string, bool, error) {
		return "", false, assert.AnError
	})
	assert.Equal(t, exec.ErrNoCommand, err)
}
