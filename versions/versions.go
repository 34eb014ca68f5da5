// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

// Package versions checks Rust toolchain versions against semver constraints.
package versions

import (
	"fmt"

	"github.com/apparentlymart/go-versions/versions"
	"github.com/apparentlymart/go-versions/versions/constraints"
	hclversion "github.com/hashicorp/go-version"
	"github.com/terramate-io/rustversion/errors"
	"github.com/terramate-io/rustversion/version"
)

// ErrCheck indicates an invalid constraint or an unsatisfied one.
const ErrCheck errors.Kind = "version check error"

// Semver renders v as a semantic version. Stable releases have no
// pre-release part, the other channels use their name as the pre-release
// and nightlies also carry the build date:
//
//	1.81.0, 1.81.0-beta, 1.81.0-nightly.20240728, 1.81.0-dev
func Semver(v version.Rust) string {
	base := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	switch {
	case v.IsStable():
		return base
	case v.IsNightly():
		d, _ := v.Channel.Date()
		return fmt.Sprintf("%s-nightly.%04d%02d%02d", base, d.Year, d.Month, d.Day)
	default:
		return base + "-" + v.Channel.Name()
	}
}

// Check checks if the toolchain version satisfies the constraint and fails
// otherwise. For just checking if they match, use the [Match] function.
func Check(v version.Rust, constraint string, allowPrereleases bool) error {
	match, err := Match(v, constraint, allowPrereleases)
	if err != nil {
		return err
	}

	if !match {
		return errors.E(
			ErrCheck,
			"version constraint %q not satisfied by rustc version %q",
			constraint,
			Semver(v),
		)
	}
	return nil
}

// Match checks if the toolchain version satisfies the constraint.
// It only returns an error in the case of an invalid constraint string.
func Match(v version.Rust, constraint string, allowPrereleases bool) (bool, error) {
	return MatchSemver(Semver(v), constraint, allowPrereleases)
}

// MatchSemver checks if the semantic version matches the given constraint.
// Without allowPrereleases the constraint follows the HashiCorp rules, where
// a pre-release only matches constraints naming a pre-release of the same
// version. With allowPrereleases the Ruby-style rules apply and pre-releases
// are ordered before their release.
func MatchSemver(semver, constraint string, allowPrereleases bool) (bool, error) {
	if allowPrereleases {
		ver, err := versions.ParseVersion(semver)
		if err != nil {
			return false, errors.E(ErrCheck, err, "invalid version %q", semver)
		}

		spec, err := constraints.ParseRubyStyleMulti(constraint)
		if err != nil {
			return false, errors.E(ErrCheck, err, "invalid constraint %q", constraint)
		}

		return versions.MeetingConstraintsExact(spec).Has(ver), nil
	}

	spec, err := hclversion.NewConstraint(constraint)
	if err != nil {
		return false, errors.E(ErrCheck, err, "invalid constraint %q", constraint)
	}

	ver, err := hclversion.NewSemver(semver)
	if err != nil {
		return false, errors.E(ErrCheck, err, "invalid version %q", semver)
	}

	return spec.Check(ver), nil
}
