// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

package date_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/madlambda/spells/assert"
	"github.com/terramate-io/rustversion/date"
	"github.com/terramate-io/rustversion/errors"
	"github.com/terramate-io/rustversion/internal/checks"
	errtest "github.com/terramate-io/rustversion/test/errors"
)

func TestDateOrdering(t *testing.T) {
	t.Parallel()

	type testcase struct {
		before date.Date
		after  date.Date
	}

	for _, tc := range []testcase{
		{before: date.New(2018, 12, 14), after: date.New(2022, 8, 16)},
		{before: date.New(2024, 11, 14), after: date.New(2024, 12, 7)},
		{before: date.New(2024, 11, 14), after: date.New(2024, 11, 17)},
		{before: date.New(2024, 1, 31), after: date.New(2024, 2, 1)},
	} {
		tc := tc
		t.Run(fmt.Sprintf("%s < %s", tc.before, tc.after), func(t *testing.T) {
			t.Parallel()

			assert.IsTrue(t, tc.before.IsBefore(tc.after), "%s is before %s", tc.before, tc.after)
			assert.IsTrue(t, tc.after.IsSince(tc.before), "%s is since %s", tc.after, tc.before)
			assert.IsTrue(t, !tc.before.IsSince(tc.after), "%s is not since %s", tc.before, tc.after)
			assert.IsTrue(t, !tc.after.IsBefore(tc.before), "%s is not before %s", tc.after, tc.before)
			assert.EqualInts(t, -1, tc.before.Compare(tc.after))
			assert.EqualInts(t, 1, tc.after.Compare(tc.before))

			for _, d := range []date.Date{tc.before, tc.after} {
				assert.IsTrue(t, d.IsSince(d), "%s is since itself", d)
				assert.IsTrue(t, !d.IsBefore(d), "%s is not before itself", d)
				assert.EqualInts(t, 0, d.Compare(d))
			}
		})
	}
}

func TestDateSinceIsNegationOfBefore(t *testing.T) {
	t.Parallel()

	dates := []date.Date{
		date.New(1, 1, 1),
		date.New(2015, 5, 15),
		date.New(2024, 7, 28),
		date.New(2024, 7, 29),
		date.New(2024, 8, 1),
		date.New(9999, 12, 31),
	}
	for _, a := range dates {
		for _, b := range dates {
			assert.IsTrue(t, a.IsSince(b) == !a.IsBefore(b), "%s vs %s", a, b)
		}
	}
}

func TestDateString(t *testing.T) {
	t.Parallel()

	assert.EqualStrings(t, "2024-07-28", date.New(2024, 7, 28).String())
	assert.EqualStrings(t, "0001-01-01", date.New(1, 1, 1).String())
	assert.EqualStrings(t, "2018-10-21", date.New(2018, 10, 21).String())
}

func TestDateNewValidation(t *testing.T) {
	t.Parallel()

	type testcase struct {
		name  string
		year  uint16
		month uint8
		day   uint8
		want  string
	}

	for _, tc := range []testcase{
		{name: "invalid year", year: 0, month: 7, day: 18, want: "invalid year"},
		{name: "month zero", year: 2014, month: 0, day: 18, want: "invalid month"},
		{name: "month 13", year: 2014, month: 13, day: 18, want: "invalid month"},
		{name: "day zero", year: 2014, month: 7, day: 0, want: "invalid day of month"},
		{name: "day 36", year: 2014, month: 7, day: 36, want: "invalid day of month"},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				r := recover()
				if !checks.Enabled {
					if r != nil {
						t.Fatalf("unexpected panic with checks disabled: %v", r)
					}
					return
				}
				if r == nil {
					t.Fatal("date.New() did not panic")
				}
				err, ok := r.(error)
				if !ok {
					t.Fatalf("panic value %v is not an error", r)
				}
				errtest.AssertIsKind(t, err, date.ErrInvalidDate)
				assert.IsTrue(t, strings.Contains(err.Error(), tc.want),
					"error %q does not mention %q", err, tc.want)
			}()

			got := date.New(tc.year, tc.month, tc.day)
			assert.EqualInts(t, int(tc.year), int(got.Year))
			assert.EqualInts(t, int(tc.month), int(got.Month))
			assert.EqualInts(t, int(tc.day), int(got.Day))
		})
	}
}

func TestDateParse(t *testing.T) {
	t.Parallel()

	type testcase struct {
		input string
		want  date.Date
		err   error
	}

	for _, tc := range []testcase{
		{input: "2024-07-28", want: date.New(2024, 7, 28)},
		{input: "2018-1-2", want: date.New(2018, 1, 2)},
		{input: "0001-01-01", want: date.New(1, 1, 1)},
		{input: "", err: errors.E(date.ErrInvalidDate)},
		{input: "2024-07", err: errors.E(date.ErrInvalidDate)},
		{input: "2024-07-28-01", err: errors.E(date.ErrInvalidDate)},
		{input: "2024-07-28)", err: errors.E(date.ErrInvalidDate)},
		{input: "abcd-07-28", err: errors.E(date.ErrInvalidDate)},
		{input: "0000-07-28", err: errors.E(date.ErrInvalidDate)},
		{input: "2024-13-28", err: errors.E(date.ErrInvalidDate)},
		{input: "2024-07-32", err: errors.E(date.ErrInvalidDate)},
		{input: "2024-07-300", err: errors.E(date.ErrInvalidDate)},
		{input: "70000-07-28", err: errors.E(date.ErrInvalidDate)},
	} {
		tc := tc
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			got, err := date.Parse(tc.input)
			errtest.Assert(t, err, tc.err)
			if err != nil {
				return
			}
			if got != tc.want {
				t.Fatalf("date.Parse(%q) = %s, want %s", tc.input, got, tc.want)
			}
			assert.EqualStrings(t, tc.want.String(), got.String())
		})
	}
}
