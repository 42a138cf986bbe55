// Package errors defines the application-level error primitive used to report
// failures to the user.
//
// Every failure in mxsuite is terminal for the invocation: a manifest either
// reads, validates and resolves or it does not. The Type of an Error tells the
// user which of those steps failed.
package errors

import (
	"fmt"
	"strings"
)

// Type classifies an Error by the step that produced it.
type Type string

const (
	Unknown    Type = "unknown"
	User       Type = "user"
	Parse      Type = "parse"
	Config     Type = "config"
	Resolution Type = "resolution"
	Exec       Type = "exec"
)

// An Error is a failure with enough context to be shown to a user verbatim.
type Error struct {
	Cause           error
	Type            Type
	Message         string
	Troubleshooting string
	Link            string
}

// Error implements error. It does not include troubleshooting text; use Render
// for that.
func (e *Error) Error() string {
	var msg string
	switch {
	case e.Message != "" && e.Cause != nil:
		msg = e.Message + ": " + e.Cause.Error()
	case e.Message != "":
		msg = e.Message
	case e.Cause != nil:
		msg = e.Cause.Error()
	default:
		msg = "an unknown error occurred"
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// UnknownError wraps an unexpected failure.
func UnknownError(err error, troubleshooting string) *Error {
	return &Error{
		Cause:           err,
		Type:            Unknown,
		Troubleshooting: troubleshooting,
	}
}

// New creates an Error of type t.
func New(t Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    t,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps err into an Error of type t. If err is already an *Error, its
// Type and Troubleshooting are kept and only the message is prefixed.
func Wrap(err error, t Type, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	if e, ok := err.(*Error); ok {
		return &Error{
			Cause:           e,
			Type:            e.Type,
			Message:         msg,
			Troubleshooting: e.Troubleshooting,
			Link:            e.Link,
		}
	}
	return &Error{
		Cause:   err,
		Type:    t,
		Message: msg,
	}
}

// TypeOf returns the Type of the outermost *Error in err's chain, or Unknown.
func TypeOf(err error) Type {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Type
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return Unknown
		}
		err = u.Unwrap()
	}
	return Unknown
}

// lines splits a multi-line cause into indented bullet lines.
func lines(s string) string {
	var b strings.Builder
	for _, l := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		b.WriteString("  - ")
		b.WriteString(l)
		b.WriteString("\n")
	}
	return b.String()
}
