package files

import (
	"github.com/apex/log"
)

// UnmarshalFunc decodes data into v, like yaml.Unmarshal.
type UnmarshalFunc func(data []byte, v interface{}) error

// ReadUnmarshal decodes the file at path into v.
func ReadUnmarshal(v interface{}, path string, unmarshal UnmarshalFunc) error {
	log.WithField("filename", path).Debug("parsing file")
	contents, err := Read(path)
	if err != nil {
		return err
	}
	err = unmarshal(contents, v)
	if err != nil {
		log.WithError(err).WithField("filename", path).Debug("could not parse file")
	}
	return err
}
