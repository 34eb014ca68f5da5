// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

// Package date provides the calendar date used to order nightly toolchains.
// Dates carry no timezone: they match whatever one the Rust project uses for
// its nightly releases.
package date

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/terramate-io/rustversion/errors"
	"github.com/terramate-io/rustversion/internal/checks"
)

// ErrInvalidDate indicates a malformed or out of range date.
const ErrInvalidDate errors.Kind = "invalid date"

// Date is a year/month/day triple ordered lexicographically.
type Date struct {
	Year  uint16
	Month uint8
	Day   uint8
}

// New creates a date from its YYYY-MM-DD components.
// It panics if any component is out of range, unless checks were disabled at
// build time.
func New(year uint16, month, day uint8) Date {
	if checks.Enabled {
		if err := validate(uint64(year), uint64(month), uint64(day)); err != nil {
			panic(err)
		}
	}
	return Date{Year: year, Month: month, Day: day}
}

// Parse parses a date in the YYYY-MM-DD format.
// Unlike New, it never panics: malformed and out of range dates are reported as
// an ErrInvalidDate error.
func Parse(s string) (Date, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return Date{}, errors.E(ErrInvalidDate, "%q is not in the YYYY-MM-DD format", s)
	}
	year, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil {
		return Date{}, errors.E(ErrInvalidDate, err, "parsing year of %q", s)
	}
	month, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil {
		return Date{}, errors.E(ErrInvalidDate, err, "parsing month of %q", s)
	}
	day, err := strconv.ParseUint(parts[2], 10, 8)
	if err != nil {
		return Date{}, errors.E(ErrInvalidDate, err, "parsing day of %q", s)
	}
	if err := validate(year, month, day); err != nil {
		return Date{}, errors.E(err, "parsing %q", s)
	}
	return Date{Year: uint16(year), Month: uint8(month), Day: uint8(day)}, nil
}

// IsSince tells if d is equal to or after start.
func (d Date) IsSince(start Date) bool {
	return d.Year > start.Year ||
		(d.Year == start.Year &&
			(d.Month > start.Month ||
				(d.Month == start.Month && d.Day >= start.Day)))
}

// IsBefore tells if d is strictly before end.
// It is always the negation of IsSince.
func (d Date) IsBefore(end Date) bool {
	return !d.IsSince(end)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after other.
func (d Date) Compare(other Date) int {
	switch {
	case d == other:
		return 0
	case d.IsBefore(other):
		return -1
	default:
		return 1
	}
}

// String renders the date as YYYY-MM-DD (ISO 8601).
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func validate(year, month, day uint64) error {
	if year < 1 {
		return errors.E(ErrInvalidDate, "invalid year %d", year)
	}
	if month < 1 || month > 12 {
		return errors.E(ErrInvalidDate, "invalid month %d", month)
	}
	if day < 1 || day > 31 {
		return errors.E(ErrInvalidDate, "invalid day of month %d", day)
	}
	return nil
}
