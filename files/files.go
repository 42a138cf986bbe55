// Package files implements utility routines for finding and reading files.
package files

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/apex/log"
)

func fileMode(elem ...string) (os.FileMode, error) {
	file, err := os.Stat(filepath.Join(elem...))
	if err != nil {
		return 0, err
	}

	return file.Mode(), nil
}

// Exists reports whether the path names a regular file.
func Exists(pathElems ...string) (bool, error) {
	mode, err := fileMode(pathElems...)
	if notExistErr(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return mode.IsRegular(), nil
}

// ExistsFolder reports whether the path names a directory.
func ExistsFolder(pathElems ...string) (bool, error) {
	mode, err := fileMode(pathElems...)
	if notExistErr(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return mode.IsDir(), nil
}

// Read returns the contents of the file at the joined path.
func Read(pathElems ...string) ([]byte, error) {
	name := filepath.Join(pathElems...)

	log.WithField("filename", name).Debug("reading file")
	contents, err := ioutil.ReadFile(name)
	if err != nil {
		log.WithError(err).WithField("filename", name).Debug("could not read file")
	}

	return contents, err
}

// WriteAtomic replaces the file at name with data. The data is written to a
// temporary file in the same directory first, so readers never observe a
// partially written file.
func WriteAtomic(name string, data []byte, perm os.FileMode) error {
	tmp, err := ioutil.TempFile(filepath.Dir(name), "."+filepath.Base(name)+".tmp-")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), name)
}

// os.IsNotExist doesn't handle non-existent parent directories e.g.
// stat /some/path/without/a/parent.json: not a directory
func notExistErr(err error) bool {
	if os.IsNotExist(err) {
		return true
	}
	if _, ok := err.(*os.PathError); ok {
		return true
	}
	return false
}
