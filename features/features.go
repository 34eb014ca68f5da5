// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

// Package features lists the capability flags enabled by the build step for
// each toolchain version.
package features

import "github.com/terramate-io/rustversion/version"

// Feature is a capability flag available since a stable release.
type Feature struct {
	// Name is the cfg name, like has_track_caller.
	Name string

	// Since is the first release supporting the feature.
	Since version.Spec
}

// Default is the list of known features, sorted by release.
var Default = []Feature{
	{Name: "supports_macro_literal", Since: version.Minor(1, 32)},
	{Name: "has_non_exhaustive", Since: version.Minor(1, 40)},
	{Name: "has_const_match", Since: version.Minor(1, 46)},
	{Name: "has_track_caller", Since: version.Minor(1, 46)},
	{Name: "has_const_panic", Since: version.Minor(1, 57)},
}

// Enabled returns the features of Default available on v.
// The channel of v is not considered.
func Enabled(v version.Rust) []Feature {
	return Filter(Default, v)
}

// Filter returns the features available on v, keeping their order.
func Filter(features []Feature, v version.Rust) []Feature {
	var enabled []Feature
	for _, f := range features {
		if v.IsSinceStable(f.Since) {
			enabled = append(enabled, f)
		}
	}
	return enabled
}

// Names returns the names of the given features.
func Names(features []Feature) []string {
	names := make([]string, len(features))
	for i, f := range features {
		names[i] = f.Name
	}
	return names
}
