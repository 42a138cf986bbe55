// Package version reports how the mxsuite binary was built. The variables are
// set with `-ldflags "-X ..."` by release builds; a plain `go build` leaves
// them empty.
package version

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blang/semver"
)

var (
	BuildType string
	Version   string
	Commit    string
	GoVersion string
)

var ErrIsDevelopment = errors.New("this development binary has no semantic version")

// IsRelease reports whether the binary was built from a release tag.
func IsRelease() bool {
	return BuildType == "release" && Version != ""
}

// String is the text of `mxsuite --version`.
func String() string {
	commit := Commit
	if commit == "" {
		commit = "unknown"
	}
	if !IsRelease() {
		return "development build (revision " + commit + ")"
	}
	s := fmt.Sprintf("%s (revision %s", Version, commit)
	if GoVersion != "" {
		s += ", " + strings.TrimPrefix(GoVersion, "go version ")
	}
	return s + ")"
}

// ShortString is a single word naming the build: the release version or,
// for development builds, the commit.
func ShortString() string {
	if IsRelease() {
		return Version
	}
	if Commit == "" {
		return "dev"
	}
	return Commit
}

// Semver parses the release version, which may carry a leading `v`.
func Semver() (semver.Version, error) {
	if !IsRelease() {
		return semver.Version{}, ErrIsDevelopment
	}
	return semver.Parse(strings.TrimPrefix(Version, "v"))
}
