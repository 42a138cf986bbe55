package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/fossas/mxsuite/errors"
)

func init() {
	color.NoColor = true
}

func TestErrorMessage(t *testing.T) {
	cause := stderrors.New("unexpected token")

	assert.Equal(t, "unexpected token", (&errors.Error{Cause: cause}).Error())
	assert.Equal(t, "could not parse", (&errors.Error{Message: "could not parse"}).Error())
	assert.Equal(t, "could not parse: unexpected token", (&errors.Error{Message: "could not parse", Cause: cause}).Error())
	assert.Equal(t, "an unknown error occurred", (&errors.Error{}).Error())
}

func TestWrapKeepsType(t *testing.T) {
	inner := errors.New(errors.Resolution, "revision %s is unreachable", "abc")
	inner.Troubleshooting = "check the URL"

	outer := errors.Wrap(inner, errors.Unknown, "resolving %s", "sulong")
	assert.Equal(t, errors.Resolution, outer.Type)
	assert.Equal(t, "check the URL", outer.Troubleshooting)
	assert.Equal(t, "resolving sulong: revision abc is unreachable", outer.Error())
	assert.Equal(t, errors.Resolution, errors.TypeOf(outer))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.Parse, "nothing"))
}

func TestTypeOfPlainError(t *testing.T) {
	assert.Equal(t, errors.Unknown, errors.TypeOf(stderrors.New("plain")))
}

func TestRenderIncludesTroubleshooting(t *testing.T) {
	err := &errors.Error{
		Type:            errors.Config,
		Message:         "suite has 2 configuration errors",
		Cause:           stderrors.New("first\nsecond"),
		Troubleshooting: "Fix the manifest.",
	}

	out := errors.Render(err)
	assert.Contains(t, out, "suite has 2 configuration errors")
	assert.Contains(t, out, "  - first\n  - second\n")
	assert.Contains(t, out, "TROUBLESHOOTING:")
	assert.NotContains(t, out, "REPORTING A BUG")
}

func TestRenderUnknownAsksForBugReport(t *testing.T) {
	out := errors.Render(errors.UnknownError(stderrors.New("boom"), ""))
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "REPORTING A BUG")
}
