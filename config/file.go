package config

import (
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/fossas/mxsuite/files"
)

// DefaultFiles are the configuration files looked for when none is given.
var DefaultFiles = []string{".mxsuite.yml", ".mxsuite.yaml"}

// File is the contents of a configuration file.
type File struct {
	Manifest    string `yaml:"manifest,omitempty"`
	Cache       string `yaml:"cache,omitempty"`
	Transitive  bool   `yaml:"transitive,omitempty"`
	Concurrency int    `yaml:"concurrency,omitempty"`
}

// ReadFile reads the configuration file at path. When path is empty, the
// default files are tried and a missing file is not an error.
func ReadFile(path string) (File, string, error) {
	if path == "" {
		found, err := TryFiles(DefaultFiles...)
		if err == ErrFileNotFound {
			return File{}, "", nil
		}
		if err != nil {
			return File{}, "", err
		}
		path = found
	}

	var f File
	if err := files.ReadUnmarshal(&f, path, yaml.UnmarshalStrict); err != nil {
		return File{}, "", errors.Wrapf(err, "could not load configuration file %s", path)
	}
	return f, path, nil
}
