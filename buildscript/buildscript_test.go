// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

package buildscript_test

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/madlambda/spells/assert"
	"github.com/rs/zerolog"
	"github.com/terramate-io/rustversion/buildscript"
	"github.com/terramate-io/rustversion/date"
	"github.com/terramate-io/rustversion/errors"
	"github.com/terramate-io/rustversion/rustc"
	errtest "github.com/terramate-io/rustversion/test/errors"
	"github.com/terramate-io/rustversion/version"
)

// staticRunner answers every command with the same output.
type staticRunner string

func (r staticRunner) Output(context.Context, string, ...string) ([]byte, error) {
	if r == "" {
		return nil, stderrors.New("executable file not found in $PATH")
	}
	return []byte(r), nil
}

func TestRun(t *testing.T) {
	t.Parallel()

	type testcase struct {
		name     string
		host     string
		output   string
		want     []string
		wantExpr string
	}

	for _, tc := range []testcase{
		{
			name:   "old stable on linux",
			host:   "x86_64-unknown-linux-gnu",
			output: "rustc 1.45.2 (d3fb005a3 2020-07-31)\n",
			want: []string{
				"cargo:rerun-if-env-changed=RUSTC",
				"cargo:rerun-if-env-changed=RUSTC_WRAPPER",
				"cargo:rustc-cfg=supports_macro_literal",
				"cargo:rustc-cfg=has_non_exhaustive",
			},
			wantExpr: `Version {
    major: 1,
    minor: 45,
    patch: 2,
    channel: Stable,
}
`,
		},
		{
			name:   "recent nightly on windows",
			host:   "x86_64-pc-windows-msvc",
			output: "rustc 1.81.0-nightly (64e0f2462 2024-07-28)\n",
			want: []string{
				"cargo:rerun-if-env-changed=RUSTC",
				"cargo:rerun-if-env-changed=RUSTC_WRAPPER",
				"cargo:rustc-cfg=supports_macro_literal",
				"cargo:rustc-cfg=has_non_exhaustive",
				"cargo:rustc-cfg=has_const_match",
				"cargo:rustc-cfg=has_track_caller",
				"cargo:rustc-cfg=has_const_panic",
				"cargo:rustc-check-cfg=cfg(supports_macro_literal)",
				"cargo:rustc-check-cfg=cfg(has_non_exhaustive)",
				"cargo:rustc-check-cfg=cfg(has_const_match)",
				"cargo:rustc-check-cfg=cfg(has_track_caller)",
				"cargo:rustc-check-cfg=cfg(has_const_panic)",
				`cargo:rustc-check-cfg=cfg(host_os, values("windows"))`,
				`cargo:rustc-cfg=host_os="windows"`,
			},
			wantExpr: `Version {
    major: 1,
    minor: 81,
    patch: 0,
    channel: Nightly(
        Date {
            year: 2024,
            month: 7,
            day: 28,
        },
    ),
}
`,
		},
		{
			name:   "host with windows outside the os position",
			host:   "windows-pc-linux-gnu",
			output: "rustc 1.31.0-beta.4 (04da282bb 2018-11-01)\n",
			want: []string{
				"cargo:rerun-if-env-changed=RUSTC",
				"cargo:rerun-if-env-changed=RUSTC_WRAPPER",
			},
			wantExpr: `Version {
    major: 1,
    minor: 31,
    patch: 0,
    channel: Beta,
}
`,
		},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			env := buildscript.Env{
				OutDir: t.TempDir(),
				Host:   tc.host,
			}
			stdout := new(strings.Builder)
			_, err := buildscript.Run(context.Background(), staticRunner(tc.output), env, stdout)
			assert.NoError(t, err)

			got := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("instructions mismatch (-want +got):\n%s", diff)
			}

			expr, err := os.ReadFile(filepath.Join(env.OutDir, buildscript.ExprFile))
			assert.NoError(t, err)
			assert.EqualStrings(t, tc.wantExpr, string(expr))
		})
	}
}

func TestRunMissingEnv(t *testing.T) {
	t.Parallel()

	stdout := new(strings.Builder)
	_, err := buildscript.Run(context.Background(), staticRunner("rustc 1.80.1\n"), buildscript.Env{}, stdout)
	errtest.Assert(t, err, errors.E(buildscript.ErrEnv))

	var list *errors.List
	assert.IsTrue(t, errors.As(err, &list), "want an error list, got %v", err)
	assert.EqualInts(t, 2, len(list.Errors()))
	assert.EqualStrings(t, "", stdout.String())
}

func TestRunDetectionFailure(t *testing.T) {
	t.Parallel()

	env := buildscript.Env{OutDir: t.TempDir(), Host: "x86_64-unknown-linux-gnu"}
	_, err := buildscript.Run(context.Background(), staticRunner(""), env, new(strings.Builder))
	errtest.Assert(t, err, errors.E(rustc.ErrExec))

	_, err = os.Stat(filepath.Join(env.OutDir, buildscript.ExprFile))
	assert.IsTrue(t, os.IsNotExist(err), "version.expr must not be written, got %v", err)
}

func TestRunUnwritableOutDir(t *testing.T) {
	t.Parallel()

	env := buildscript.Env{
		OutDir: filepath.Join(t.TempDir(), "missing"),
		Host:   "x86_64-unknown-linux-gnu",
	}
	_, err := buildscript.Run(context.Background(), staticRunner("rustc 1.80.1\n"), env, new(strings.Builder))
	errtest.Assert(t, err, errors.E(buildscript.ErrWrite))
}

func TestExprDev(t *testing.T) {
	t.Parallel()

	got := buildscript.Expr(version.Rust{Major: 1, Minor: 82, Channel: version.Dev()})
	assert.EqualStrings(t, "Version {\n    major: 1,\n    minor: 82,\n    patch: 0,\n    channel: Dev,\n}\n", got)

	got = buildscript.Expr(version.Rust{Major: 1, Minor: 9, Channel: version.Nightly(date.New(2016, 3, 2))})
	assert.IsTrue(t, strings.Contains(got, "            month: 3,\n"), "unexpected expr:\n%s", got)
}

func init() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}
