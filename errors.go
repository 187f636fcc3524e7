// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwcomb

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies compilation failures. All of them are fatal.
//
type ErrorKind int

// Error kinds.
//
const (
	// Unsupported is returned when a netlist cell uses a feature that
	// cannot be synthesized.
	Unsupported ErrorKind = iota + 1
	// Unconnected is returned at emission time when a required endpoint
	// has no wire attached.
	Unconnected
	// InvariantViolation signals a compiler bug.
	InvariantViolation
)

func (k ErrorKind) String() string {
	switch k {
	case Unsupported:
		return "unsupported"
	case Unconnected:
		return "unconnected"
	case InvariantViolation:
		return "invariant violation"
	default:
		return "unknown error kind"
	}
}

// Error is the error type returned for all compilation failures.
// Subject names the offending parameter or entity.
//
type Error struct {
	Kind    ErrorKind
	Subject string
	Msg     string
}

func (e *Error) Error() string {
	if e.Subject == "" {
		return e.Kind.String() + ": " + e.Msg
	}
	return e.Kind.String() + ": " + e.Subject + ": " + e.Msg
}

func newError(k ErrorKind, subject, format string, args []interface{}) error {
	return errors.WithStack(&Error{Kind: k, Subject: subject, Msg: fmt.Sprintf(format, args...)})
}

// Unsupportedf returns an Unsupported error about subject.
//
func Unsupportedf(subject, format string, args ...interface{}) error {
	return newError(Unsupported, subject, format, args)
}

// Unconnectedf returns an Unconnected error about subject.
//
func Unconnectedf(subject, format string, args ...interface{}) error {
	return newError(Unconnected, subject, format, args)
}

// Invariantf returns an InvariantViolation error about subject.
//
func Invariantf(subject, format string, args ...interface{}) error {
	return newError(InvariantViolation, subject, format, args)
}

// IsKind returns true if err, or any error it wraps, is an *Error of kind k.
//
func IsKind(err error, k ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
