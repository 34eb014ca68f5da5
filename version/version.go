// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

// Package version defines the Rust toolchain version model: the concrete
// version of a toolchain, its release channel and the stable version specs
// used as thresholds when asking if a toolchain is recent enough.
//
// Comparisons against stable specs only look at the version numbers and
// ignore the channel. Comparisons against nightly dates only look at the
// channel: stable and beta toolchains are neither since nor before any
// nightly date, and development toolchains are both.
package version

import (
	"fmt"

	"github.com/terramate-io/rustversion/date"
)

// Rust is the version of a Rust toolchain.
// The zero Channel is stable.
type Rust struct {
	// Major should always be 1.
	Major   uint32
	Minor   uint32
	Patch   uint32
	Channel Channel
}

// NewStable creates a stable version.
// It panics if major is not 1, unless checks were disabled at build time.
func NewStable(major, minor, patch uint32) Rust {
	checkMajor(major)
	return Rust{Major: major, Minor: minor, Patch: patch, Channel: Stable()}
}

// IsSinceStable tells if v is the same as or newer than the spec.
// The channel is ignored. A spec without patch matches every patch.
func (v Rust) IsSinceStable(spec Spec) bool {
	return v.Major > spec.Major ||
		(v.Major == spec.Major &&
			(v.Minor > spec.Minor ||
				(v.Minor == spec.Minor && (!spec.HasPatch || v.Patch >= spec.Patch))))
}

// IsBeforeStable tells if v is older than the spec.
// It is always the negation of IsSinceStable.
func (v Rust) IsBeforeStable(spec Spec) bool {
	return !v.IsSinceStable(spec)
}

// IsSinceMinorVersion is a shorthand for v.IsSinceStable(Minor(major, minor)).
func (v Rust) IsSinceMinorVersion(major, minor uint32) bool {
	return v.IsSinceStable(Minor(major, minor))
}

// IsBeforeMinorVersion is a shorthand for v.IsBeforeStable(Minor(major, minor)).
func (v Rust) IsBeforeMinorVersion(major, minor uint32) bool {
	return v.IsBeforeStable(Minor(major, minor))
}

// IsSincePatchVersion is a shorthand for v.IsSinceStable(Patch(major, minor, patch)).
func (v Rust) IsSincePatchVersion(major, minor, patch uint32) bool {
	return v.IsSinceStable(Patch(major, minor, patch))
}

// IsBeforePatchVersion is a shorthand for v.IsBeforeStable(Patch(major, minor, patch)).
func (v Rust) IsBeforePatchVersion(major, minor, patch uint32) bool {
	return v.IsBeforeStable(Patch(major, minor, patch))
}

// IsSinceNightly tells if v is a nightly built at or after start.
// Stable and beta versions always report false and development versions
// always report true.
func (v Rust) IsSinceNightly(start date.Date) bool {
	switch v.Channel.kind {
	case nightlyChannel:
		return v.Channel.date.IsSince(start)
	case devChannel:
		return true
	default:
		return false
	}
}

// IsBeforeNightly tells if v is a nightly built before end.
// Stable and beta versions always report false and development versions
// always report true, so this is not the negation of IsSinceNightly.
func (v Rust) IsBeforeNightly(end date.Date) bool {
	switch v.Channel.kind {
	case nightlyChannel:
		return v.Channel.date.IsBefore(end)
	case devChannel:
		return true
	default:
		return false
	}
}

// IsNightly tells if v is a nightly toolchain.
func (v Rust) IsNightly() bool { return v.Channel.IsNightly() }

// IsStable tells if v is a stable toolchain.
func (v Rust) IsStable() bool { return v.Channel.IsStable() }

// IsBeta tells if v is a beta toolchain.
func (v Rust) IsBeta() bool { return v.Channel.IsBeta() }

// IsDevelopment tells if v is a development toolchain.
func (v Rust) IsDevelopment() bool { return v.Channel.IsDevelopment() }

// Compare compares the version numbers of v and other, ignoring channels.
// It returns -1, 0 or +1 depending on whether v is older, the same or newer.
func (v Rust) Compare(other Rust) int {
	for _, pair := range [3][2]uint32{
		{v.Major, other.Major},
		{v.Minor, other.Minor},
		{v.Patch, other.Patch},
	} {
		if pair[0] < pair[1] {
			return -1
		}
		if pair[0] > pair[1] {
			return 1
		}
	}
	return 0
}

// Spec returns the patch spec matching the version numbers of v.
func (v Rust) Spec() Spec {
	return Spec{Major: v.Major, Minor: v.Minor, Patch: v.Patch, HasPatch: true}
}

// String renders the version in a format similar to rustc --version, eg.:
// 1.81.0, 1.60.0-beta, 1.81.0-nightly (2024-07-28) or 1.83.0-dev.
// The format is informational and may change.
func (v Rust) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	switch v.Channel.kind {
	case betaChannel:
		s += "-beta"
	case nightlyChannel:
		s += fmt.Sprintf("-nightly (%s)", v.Channel.date)
	case devChannel:
		s += "-dev"
	}
	return s
}
