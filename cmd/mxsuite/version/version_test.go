package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type versions struct {
	name string

	buildType string
	version   string
	commit    string
	goversion string
}

var noLdFlags = versions{
	name: "NoLdFlags",
}

var dev = versions{
	name: "Development",

	buildType: "development",
	version:   "some-branch-name",
	commit:    "12345abcdef",
	goversion: "go version go1.17 linux/amd64",
}

var prod = versions{
	name: "Release",

	buildType: "release",
	version:   "v1.2.3-validsemanticversion",
	commit:    "67890foobar",
	goversion: "go version go1.17 linux/amd64",
}

func set(v versions) {
	BuildType, Version, Commit, GoVersion = v.buildType, v.version, v.commit, v.goversion
}

func TestShortStringHasNoSpaces(t *testing.T) {
	defer set(noLdFlags)
	for _, tc := range []versions{noLdFlags, dev, prod} {
		t.Run(tc.name, func(t *testing.T) {
			set(tc)
			assert.True(t, len(strings.Fields(ShortString())) <= 1, ShortString())
		})
	}
}

func TestSemver(t *testing.T) {
	defer set(noLdFlags)

	set(dev)
	_, err := Semver()
	assert.Equal(t, ErrIsDevelopment, err)

	set(prod)
	v, err := Semver()
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), v.Major)
	assert.Equal(t, uint64(3), v.Patch)
	assert.Contains(t, String(), "67890foobar")
}

func TestString(t *testing.T) {
	defer set(noLdFlags)

	set(noLdFlags)
	assert.Equal(t, "development build (revision unknown)", String())
	assert.Equal(t, "dev", ShortString())

	set(dev)
	assert.Equal(t, "development build (revision 12345abcdef)", String())

	set(prod)
	assert.Equal(t, "v1.2.3-validsemanticversion (revision 67890foobar, go1.17 linux/amd64)", String())
	assert.Equal(t, "v1.2.3-validsemanticversion", ShortString())
}
