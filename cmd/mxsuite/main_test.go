package main_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	main "github.com/fossas/mxsuite/cmd/mxsuite"
	"github.com/fossas/mxsuite/cmd/mxsuite/flags"
)

func TestMainProvidesDebugFlag(t *testing.T) {
	assert.Contains(t, main.App.VisibleFlags(), flags.DebugF)
}

func TestMainProvidesCommands(t *testing.T) {
	for _, name := range []string{"validate", "show", "format", "resolve", "deps"} {
		assert.NotNil(t, main.App.Command(name), name)
	}
}
