package deps_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fossas/mxsuite/cmd/mxsuite/cmd/deps"
	"github.com/fossas/mxsuite/errors"
	"github.com/fossas/mxsuite/suite"
)

const (
	irwriter      = "at.pointhi.irbuilder.irwriter"
	testgenerator = "at.pointhi.irbuilder.testgenerator"
)

func irbuilder() *suite.Suite {
	return &suite.Suite{
		MxVersion: "5.70.2",
		Name:      "java-llvm-ir-builder",
		Libraries: []*suite.Library{{
			Name: "LLVM_TOOLCHAIN",
			Path: "lib/llvm.tar.gz",
		}},
		Projects: []*suite.Project{
			{Name: irwriter, SourceDirs: []string{"src"}, Dependencies: []string{"LLVM_TOOLCHAIN", "sulong:SULONG"}},
			{Name: testgenerator, SourceDirs: []string{"src"}, Dependencies: []string{irwriter, "truffle:TRUFFLE_API", "sulong:SULONG"}},
		},
		Distributions: []*suite.Distribution{{
			Name:         "IRBUILDER",
			Dependencies: []string{testgenerator},
		}},
	}
}

func TestDepsOfProject(t *testing.T) {
	d, err := deps.Do(irbuilder(), irwriter)
	require.NoError(t, err)
	assert.Equal(t, []string{"LLVM_TOOLCHAIN", irwriter}, d.Local)
	assert.Equal(t, []string{"sulong:SULONG"}, d.External)
}

func TestDepsOfSuite(t *testing.T) {
	d, err := deps.Do(irbuilder(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"LLVM_TOOLCHAIN", irwriter, testgenerator, "IRBUILDER"}, d.Local)
	assert.Equal(t, []string{"sulong:SULONG", "truffle:TRUFFLE_API"}, d.External)
}

func TestDepsWithoutExternals(t *testing.T) {
	d, err := deps.Do(irbuilder(), "LLVM_TOOLCHAIN")
	require.NoError(t, err)
	assert.Equal(t, []string{"LLVM_TOOLCHAIN"}, d.Local)
	assert.NotNil(t, d.External)
	assert.Empty(t, d.External)
}

func TestDepsUnknownTarget(t *testing.T) {
	_, err := deps.Do(irbuilder(), "com.oracle.truffle.llvm")
	assert.Error(t, err)
	assert.Equal(t, errors.User, errors.TypeOf(err))
}

func TestDepsCycle(t *testing.T) {
	s := irbuilder()
	s.Libraries[0].Dependencies = []string{testgenerator}

	_, err := deps.Do(s, "IRBUILDER")
	assert.Error(t, err)
	assert.Equal(t, errors.Config, errors.TypeOf(err))
}

func TestPrint(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, deps.Print(&out, deps.Dependencies{
		Local:    []string{"LLVM_TOOLCHAIN", irwriter},
		External: []string{"sulong:SULONG"},
	}))
	assert.Equal(t, "LLVM_TOOLCHAIN\n"+irwriter+"\nsulong:SULONG\n", out.String())
}
