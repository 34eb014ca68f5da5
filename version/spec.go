// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/terramate-io/rustversion/errors"
	"github.com/terramate-io/rustversion/internal/checks"
)

// Errors returned when parsing a stable version specification.
const (
	ErrInvalidNumber       errors.Kind = "invalid version number"
	ErrBadNumberParts      errors.Kind = "expected 2 or 3 version number parts"
	ErrInvalidMajorVersion errors.Kind = "major version must be 1"
)

// Spec specifies a stable version threshold, like 1.48 or 1.32.4.
// It is used for comparisons only and never identifies a concrete release.
type Spec struct {
	Major uint32
	Minor uint32

	// Patch is only meaningful when HasPatch is true.
	// A spec without a patch matches any patch of its minor version.
	Patch    uint32
	HasPatch bool
}

// Minor specifies a minor version like 1.32.
func Minor(major, minor uint32) Spec {
	checkMajor(major)
	return Spec{Major: major, Minor: minor}
}

// Patch specifies a patch version like 1.32.4.
func Patch(major, minor, patch uint32) Spec {
	checkMajor(major)
	return Spec{Major: major, Minor: minor, Patch: patch, HasPatch: true}
}

// ParseSpec parses a spec in the MAJOR.MINOR[.PATCH] format.
func ParseSpec(s string) (Spec, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return Spec{}, errors.E(ErrBadNumberParts, "parsing %q", s)
	}
	var nums [3]uint32
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return Spec{}, errors.E(ErrInvalidNumber, err, "parsing %q", s)
		}
		nums[i] = uint32(n)
	}
	if nums[0] != 1 {
		return Spec{}, errors.E(ErrInvalidMajorVersion, "parsing %q", s)
	}
	spec := Spec{Major: nums[0], Minor: nums[1]}
	if len(parts) == 3 {
		spec.Patch = nums[2]
		spec.HasPatch = true
	}
	return spec, nil
}

// Version converts the spec into a concrete stable version.
// A missing patch is assumed to be zero.
func (s Spec) Version() Rust {
	var patch uint32
	if s.HasPatch {
		patch = s.Patch
	}
	return Rust{Major: s.Major, Minor: s.Minor, Patch: patch}
}

// String renders the spec in the same format accepted by ParseSpec.
func (s Spec) String() string {
	if s.HasPatch {
		return fmt.Sprintf("%d.%d.%d", s.Major, s.Minor, s.Patch)
	}
	return fmt.Sprintf("%d.%d", s.Major, s.Minor)
}

// UnmarshalText implements encoding.TextUnmarshaler, so specs can be used
// directly as command line flags.
func (s *Spec) UnmarshalText(text []byte) error {
	spec, err := ParseSpec(string(text))
	if err != nil {
		return err
	}
	*s = spec
	return nil
}

func checkMajor(major uint32) {
	if checks.Enabled && major != 1 {
		panic(errors.E(ErrInvalidMajorVersion, "got %d", major))
	}
}
