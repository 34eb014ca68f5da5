// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

// Package errors provides useful assert functions for handling errors on tests
package errors

import (
	"fmt"
	"testing"

	"github.com/terramate-io/rustversion/errors"
)

// AssertKind asserts that got is of same error kind as want.
func AssertKind(t *testing.T, got, want error) {
	t.Helper()
	if (got == nil) != (want == nil) {
		t.Fatalf("got error[%v] differs from want[%v]", got, want)
	}
	if want == nil {
		return
	}
	var e1 *errors.Error
	if !errors.As(got, &e1) {
		t.Fatalf("got %v is not an *errors.Error", got)
	}

	e2, ok := want.(*errors.Error)
	if !ok {
		t.Fatalf("want %v is not an *errors.Error", want)
	}

	AssertIsKind(t, e1, e2.Kind)
}

// AssertIsKind asserts err is of kind k.
func AssertIsKind(t *testing.T, err error, k errors.Kind) {
	t.Helper()
	if !errors.IsKind(err, k) {
		t.Fatalf("error[%v] is not of kind %q", err, k)
	}
}

// Assert err is (contains, wraps, etc) target.
func Assert(t *testing.T, err, target error, args ...any) {
	t.Helper()
	fmtctx := ""

	if len(args) > 0 {
		fmtctx = fmt.Sprintf(": "+args[0].(string), args[1:]...)
	}

	if err == nil && target == nil {
		return
	}

	if !errors.Is(err, target) {
		t.Fatalf("error[%s] is not target[%s]%s", errstr(err), errstr(target), fmtctx)
	}
}

func errstr(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}
