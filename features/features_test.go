// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

package features_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/terramate-io/rustversion/date"
	"github.com/terramate-io/rustversion/features"
	"github.com/terramate-io/rustversion/version"
)

func TestEnabled(t *testing.T) {
	t.Parallel()

	type testcase struct {
		name    string
		version version.Rust
		want    []string
	}

	for _, tc := range []testcase{
		{
			name:    "older than every feature",
			version: version.NewStable(1, 31, 1),
			want:    []string{},
		},
		{
			name:    "macro literals",
			version: version.NewStable(1, 32, 0),
			want:    []string{"supports_macro_literal"},
		},
		{
			name:    "two features in the same release",
			version: version.NewStable(1, 46, 0),
			want: []string{
				"supports_macro_literal",
				"has_non_exhaustive",
				"has_const_match",
				"has_track_caller",
			},
		},
		{
			name:    "every feature",
			version: version.NewStable(1, 80, 1),
			want: []string{
				"supports_macro_literal",
				"has_non_exhaustive",
				"has_const_match",
				"has_track_caller",
				"has_const_panic",
			},
		},
		{
			name: "channel is ignored",
			version: version.Rust{
				Major:   1,
				Minor:   57,
				Channel: version.Nightly(date.New(2021, 10, 20)),
			},
			want: []string{
				"supports_macro_literal",
				"has_non_exhaustive",
				"has_const_match",
				"has_track_caller",
				"has_const_panic",
			},
		},
		{
			name:    "beta before const panic",
			version: version.Rust{Major: 1, Minor: 56, Channel: version.Beta()},
			want: []string{
				"supports_macro_literal",
				"has_non_exhaustive",
				"has_const_match",
				"has_track_caller",
			},
		},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := features.Names(features.Enabled(tc.version))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("enabled features mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterCustomFeatures(t *testing.T) {
	t.Parallel()

	custom := []features.Feature{
		{Name: "has_let_else", Since: version.Minor(1, 65)},
		{Name: "has_fixed_bug", Since: version.Patch(1, 65, 2)},
	}

	got := features.Names(features.Filter(custom, version.NewStable(1, 65, 1)))
	if diff := cmp.Diff([]string{"has_let_else"}, got); diff != "" {
		t.Fatalf("filtered features mismatch (-want +got):\n%s", diff)
	}
}
