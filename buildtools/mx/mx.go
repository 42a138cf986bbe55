// Package mx implements discovery, reading and writing of mx suite manifests.
//
// A suite lives in a directory named `mx.<suite>` that contains its manifest.
// The canonical manifest is `suite.py`; YAML, JSON and TOML renditions of the
// same tree are also understood.
package mx

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/apex/log"

	"github.com/fossas/mxsuite/errors"
	"github.com/fossas/mxsuite/files"
	"github.com/fossas/mxsuite/pylit"
	"github.com/fossas/mxsuite/suite"
	"github.com/fossas/mxsuite/vcs"
)

// A Format is a manifest serialization.
type Format string

const (
	Python Format = "py"
	YAML   Format = "yaml"
	JSON   Format = "json"
	TOML   Format = "toml"
)

// Formats lists every supported format.
var Formats = []Format{Python, YAML, JSON, TOML}

// ManifestName is the base name of a manifest, without extension.
const ManifestName = "suite"

// DirPrefix prefixes the name of a directory holding a suite manifest.
const DirPrefix = "mx."

// ParseFormat returns the format named s. File extensions are accepted.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "py", "python":
		return Python, nil
	case "yml", "yaml":
		return YAML, nil
	case "json":
		return JSON, nil
	case "toml":
		return TOML, nil
	}
	return "", errors.New(errors.User, "unknown manifest format %q", s)
}

// FormatOf returns the format of the manifest at path from its extension.
func FormatOf(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Find walks upward from dir and returns the path of the first `mx.*/suite.py`
// found.
func Find(dir string) (string, error) {
	var found string
	_, err := files.WalkUp(dir, func(d string) error {
		matches, err := files.Glob(d, DirPrefix+"*/"+ManifestName+".py")
		if err != nil {
			return err
		}
		if len(matches) > 0 {
			if len(matches) > 1 {
				log.WithField("dir", d).Debugf("found %d suites, using %s", len(matches), matches[0])
			}
			found = matches[0]
			return files.ErrStopWalk
		}
		return nil
	})
	if err == files.ErrDirNotFound {
		return "", &errors.Error{
			Type:            errors.User,
			Message:         fmt.Sprintf("no suite manifest found in %s or its parents", dir),
			Troubleshooting: "Run mxsuite from inside a suite checkout, or pass the manifest with `--manifest`.",
		}
	}
	if err != nil {
		return "", err
	}
	return found, nil
}

// Discover lists every suite manifest below root.
func Discover(root string) ([]string, error) {
	return files.Glob(root, "**/"+DirPrefix+"*/"+ManifestName+".{py,yml,yaml,json,toml}")
}

// SuiteDir returns the suite name implied by the directory of the manifest at
// path, if the directory follows the `mx.<name>` convention.
func SuiteDir(path string) (string, bool) {
	base := filepath.Base(filepath.Dir(path))
	if !strings.HasPrefix(base, DirPrefix) || len(base) == len(DirPrefix) {
		return "", false
	}
	return strings.TrimPrefix(base, DirPrefix), true
}

// ManifestPath returns the path of the `suite.py` of the suite named name
// below root.
func ManifestPath(root, name string) string {
	return filepath.Join(root, DirPrefix+name, ManifestName+".py")
}

// Read reads and decodes the manifest at path.
func Read(path string) (*suite.Suite, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := files.Read(path)
	if err != nil {
		return nil, &errors.Error{
			Cause:           err,
			Type:            errors.User,
			Message:         fmt.Sprintf("could not read manifest %s", path),
			Troubleshooting: "Check that the manifest exists and is readable.",
		}
	}
	s, err := Decode(data, format)
	if err != nil {
		return nil, errors.Wrap(err, errors.Parse, "could not parse manifest %s", path)
	}

	if dir, ok := SuiteDir(path); ok {
		switch {
		case s.Name == "":
			s.Name = dir
		case s.Name != dir:
			log.WithFields(log.Fields{"manifest": path, "name": s.Name}).Warnf("suite name does not match its directory `%s%s`", DirPrefix, dir)
		}
	}

	rev, err := vcs.HeadRevision(filepath.Dir(path))
	if err != nil {
		log.WithError(err).WithField("manifest", path).Debug("could not determine checkout revision")
	} else {
		s.Revision = rev
	}
	return s, nil
}

// Decode decodes manifest data in format.
func Decode(data []byte, format Format) (*suite.Suite, error) {
	tree, err := Unmarshal(data, format)
	if err != nil {
		return nil, &errors.Error{
			Cause:           err,
			Type:            errors.Parse,
			Troubleshooting: fmt.Sprintf("The manifest must be a %s document describing a single suite.", format),
		}
	}
	s, err := suite.Decode(tree)
	if err != nil {
		return nil, &errors.Error{
			Cause:           err,
			Type:            errors.Parse,
			Troubleshooting: "A key of the manifest has a value of the wrong type.",
		}
	}
	return s, nil
}

// Unmarshal reads the generic manifest tree from data.
func Unmarshal(data []byte, format Format) (*pylit.Dict, error) {
	switch format {
	case Python:
		return pylit.Parse(data)
	case YAML:
		return unmarshalYAML(data)
	case JSON:
		return unmarshalJSON(data)
	case TOML:
		return unmarshalTOML(data)
	}
	return nil, fmt.Errorf("unknown manifest format %q", format)
}

// Marshal serializes a manifest tree in format.
func Marshal(tree *pylit.Dict, format Format) ([]byte, error) {
	switch format {
	case Python:
		return pylit.Format(pylit.SuiteVariable, tree)
	case YAML:
		return marshalYAML(tree)
	case JSON:
		return marshalJSON(tree)
	case TOML:
		return marshalTOML(tree)
	}
	return nil, fmt.Errorf("unknown manifest format %q", format)
}

// Write serializes s to w in format.
func Write(w io.Writer, s *suite.Suite, format Format) error {
	data, err := Marshal(s.Tree(), format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
