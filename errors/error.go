// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

// Package errors implements the error type used by all rustversion packages.
// Errors carry a Kind, which callers use to classify failures (eg.: a
// retryable wrong-tool banner versus an unrecognized version string), a
// description and an optional underlying error.
package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Error is the default error type.
type Error struct {
	// Kind is the kind of error.
	Kind Kind

	// FileRange holds the error source, when it comes from a file.
	FileRange hcl.Range

	// Description of the error.
	Description string

	// Err represents the underlying error.
	Err error
}

// Kind defines the kind of an error.
type Kind string

const (
	// ErrInternal indicates an internal bug.
	ErrInternal Kind = "internal error"
)

// Separator is the string used to separate the error parts when printed.
const Separator = ": "

// E builds an error value from its arguments.
// There must be at least one argument or E panics.
// The type of each argument determines its meaning. If more than one argument
// of a given type is presented, only the last one is recorded.
//
// The types are:
//
//	errors.Kind
//		The kind of error (eg.: ErrUnrecognized, ErrInvalidNumber, etc).
//	string
//		The first string argument is treated as the error description and it
//		may contain printf verbs. Any other string is a format argument.
//	hcl.Range
//		The file range where the error originated.
//	hcl.Diagnostics
//		The underlying HCL diagnostics. Each error diagnostic becomes an
//		*Error of an *errors.List set as the underlying error.
//	error
//		The underlying error that triggered this one.
//	other types
//		Treated as format arguments of the description.
//
// If the error is printed, only those items that have been
// set to non-zero values will appear in the result.
//
// Error promotions:
//
// If Kind is not specified, we set it to the Kind of the underlying error.
//
// Minimization:
//
// In order to avoid duplicated messages, we erase the fields present in the
// underlying error if already set with same value in this error.
func E(args ...any) error {
	if len(args) == 0 {
		panic("called with no args")
	}

	e := &Error{}
	var (
		format     *string
		formatArgs []any
	)
	for _, arg := range args {
		switch arg := arg.(type) {
		case Kind:
			e.Kind = arg
		case string:
			if format == nil {
				f := arg
				format = &f
			} else {
				formatArgs = append(formatArgs, arg)
			}
		case hcl.Range:
			e.FileRange = arg
		case hcl.Diagnostics:
			if list := fromDiags(arg); list != nil {
				e.Err = list
			}
		case *Error:
			if arg != nil {
				e.Err = arg
			}
		case error:
			e.Err = arg
		default:
			formatArgs = append(formatArgs, arg)
		}
	}

	if format != nil {
		if len(formatArgs) > 0 {
			e.Description = fmt.Sprintf(*format, formatArgs...)
		} else {
			e.Description = *format
		}
	} else if len(formatArgs) > 0 {
		panic(fmt.Errorf("called with format args but no format: %v", formatArgs))
	}

	if e.isEmpty() {
		panic(fmt.Errorf("empty error"))
	}

	prev, ok := e.Err.(*Error)
	if !ok {
		return e
	}

	if prev.Kind == e.Kind {
		prev.Kind = ""
	}
	if prev.Description == e.Description {
		prev.Description = ""
	}
	if prev.FileRange == e.FileRange {
		prev.FileRange = hcl.Range{}
	}
	if prev.isEmpty() {
		e.Err = prev.Err
	}
	if e.Kind == "" {
		e.Kind = prev.Kind
		prev.Kind = ""
	}
	return e
}

func (e *Error) isEmpty() bool {
	return e.Kind == "" && e.Description == "" && e.FileRange == (hcl.Range{})
}

func fromDiags(diags hcl.Diagnostics) error {
	list := L()
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		desc := diag.Summary
		if diag.Detail != "" {
			desc += Separator + diag.Detail
		}
		err := &Error{Description: desc}
		if diag.Subject != nil {
			err.FileRange = *diag.Subject
		}
		list.Append(err)
	}
	return list.AsError()
}

// Error returns the error message.
func (e *Error) Error() string {
	var errParts []string
	if e.FileRange != (hcl.Range{}) {
		errParts = append(errParts, e.FileRange.String())
	}
	if e.Kind != "" {
		errParts = append(errParts, string(e.Kind))
	}
	if e.Description != "" {
		errParts = append(errParts, e.Description)
	}
	if e.Err != nil {
		if msg := e.Err.Error(); msg != "" {
			errParts = append(errParts, msg)
		}
	}
	return strings.Join(errParts, Separator)
}

// Unwrap returns the wrapped error, if there is any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is tells if e matches the target error.
// The target error must be of type *Error and it will match if all the
// non-empty fields of target match the ones from e.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != "" && !IsKind(e, t.Kind) {
		return false
	}
	if t.Description != "" && e.Description != t.Description {
		return false
	}
	if t.Err != nil && !errors.Is(e.Err, t.Err) {
		return false
	}
	return true
}

// IsKind tells if err is of kind k.
// It returns false if err is nil or not an *errors.Error.
// It also recursively checks if any underlying error is of kind k.
func IsKind(err error, k Kind) bool {
	if err == nil {
		return false
	}
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	if e.Kind == k {
		return true
	}
	return IsKind(e.Err, k)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target, and if one is
// found, sets target to that error value and returns true. Otherwise, it
// returns false.
func As(err error, target any) bool {
	return errors.As(err, target)
}
