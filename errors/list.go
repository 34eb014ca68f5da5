// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

package errors

import (
	"errors"
	"fmt"
)

// List accumulates errors so they can be reported together, for example
// every invalid attribute of a configuration file or every invalid predicate
// given to the check command.
//
// A List matches a target with errors.Is when any of its items does.
type List struct {
	items []error
}

// L creates a List holding the non-nil errs.
func L(errs ...error) *List {
	l := &List{}
	for _, err := range errs {
		l.Append(err)
	}
	return l
}

// Append adds err to the list. Nil errors are ignored and the items of an
// appended List are added one by one, so lists never nest.
func (l *List) Append(err error) {
	if err == nil {
		return
	}
	var other *List
	if errors.As(err, &other) {
		l.items = append(l.items, other.items...)
		return
	}
	l.items = append(l.items, err)
}

// Error describes the first item and how many follow it.
func (l *List) Error() string {
	switch len(l.items) {
	case 0:
		return ""
	case 1:
		return l.items[0].Error()
	}
	return fmt.Sprintf("%s (and %d elided errors)", l.items[0], len(l.items)-1)
}

// Errors returns the items that are, or wrap, an *Error, in insertion order.
func (l *List) Errors() []*Error {
	var errs []*Error
	for _, item := range l.items {
		var e *Error
		if errors.As(item, &e) {
			errs = append(errs, e)
		}
	}
	return errs
}

// AsError returns nil for an empty list and the list itself otherwise.
func (l *List) AsError() error {
	if len(l.items) == 0 {
		return nil
	}
	return l
}

// Is tells if any item of the list matches target.
func (l *List) Is(target error) bool {
	for _, item := range l.items {
		if errors.Is(item, target) {
			return true
		}
	}
	return false
}
