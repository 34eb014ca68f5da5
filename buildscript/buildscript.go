// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

// Package buildscript implements the cargo build step that detects the
// toolchain version, enables the capability flags it supports and writes the
// detected version where the crate can include it.
package buildscript

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/terramate-io/rustversion/errors"
	"github.com/terramate-io/rustversion/features"
	"github.com/terramate-io/rustversion/rustc"
	"github.com/terramate-io/rustversion/version"
)

// Errors returned by the build step.
const (
	// ErrEnv indicates a required cargo environment variable is missing.
	ErrEnv errors.Kind = "missing build environment"

	// ErrWrite indicates the detected version could not be written.
	ErrWrite errors.Kind = "writing build output"
)

// ExprFile is the name of the file written to OUT_DIR.
const ExprFile = "version.expr"

// Environment variables set by cargo for build scripts.
const (
	OutDirEnv = "OUT_DIR"
	HostEnv   = "HOST"
)

// checkCfgSince is the first release accepting rustc-check-cfg instructions.
var checkCfgSince = version.Minor(1, 80)

// Env is the build environment provided by cargo.
type Env struct {
	OutDir string
	Host   string
	Rustc  rustc.Options
}

// EnvFromOS reads the build environment of the current process.
func EnvFromOS() Env {
	return Env{
		OutDir: os.Getenv(OutDirEnv),
		Host:   os.Getenv(HostEnv),
		Rustc:  rustc.OptionsFromEnv(),
	}
}

// Validate checks that all required variables are set.
func (e Env) Validate() error {
	errs := errors.L()
	if e.OutDir == "" {
		errs.Append(errors.E(ErrEnv, "%s not set", OutDirEnv))
	}
	if e.Host == "" {
		errs.Append(errors.E(ErrEnv, "%s not set", HostEnv))
	}
	return errs.AsError()
}

// IsWindowsHost tells if the host triple targets windows, like
// x86_64-pc-windows-msvc.
func (e Env) IsWindowsHost() bool {
	parts := strings.Split(e.Host, "-")
	return len(parts) > 2 && parts[2] == "windows"
}

// Run executes the build step: it detects the toolchain with runner and
// writes cargo instructions to stdout.
func Run(ctx context.Context, runner rustc.Runner, env Env, stdout io.Writer) (version.Rust, error) {
	logger := log.With().
		Str("action", "buildscript.Run()").
		Str("out_dir", env.OutDir).
		Str("host", env.Host).
		Logger()

	if err := env.Validate(); err != nil {
		return version.Rust{}, err
	}

	v, err := rustc.Detect(ctx, runner, env.Rustc)
	if err != nil {
		return version.Rust{}, err
	}

	logger.Debug().
		Stringer("version", v).
		Msg("emitting cargo instructions")

	w := &instructions{w: stdout}
	w.emit("rerun-if-env-changed=%s", rustc.RustcEnv)
	w.emit("rerun-if-env-changed=%s", rustc.RustcWrapperEnv)

	for _, f := range features.Enabled(v) {
		w.emit("rustc-cfg=%s", f.Name)
	}

	if v.IsSinceStable(checkCfgSince) {
		for _, f := range features.Default {
			w.emit("rustc-check-cfg=cfg(%s)", f.Name)
		}
		w.emit(`rustc-check-cfg=cfg(host_os, values("windows"))`)
	}
	if w.err != nil {
		return version.Rust{}, errors.E(ErrWrite, w.err, "writing cargo instructions")
	}

	exprPath := filepath.Join(env.OutDir, ExprFile)
	logger.Trace().
		Str("path", exprPath).
		Msg("writing detected version")

	if err := os.WriteFile(exprPath, []byte(Expr(v)), 0644); err != nil {
		return version.Rust{}, errors.E(ErrWrite, err, "writing %s", exprPath)
	}

	if env.IsWindowsHost() {
		w.emit(`rustc-cfg=host_os="windows"`)
	}
	if w.err != nil {
		return version.Rust{}, errors.E(ErrWrite, w.err, "writing cargo instructions")
	}
	return v, nil
}

// instructions writes cargo instructions, keeping the first write error.
type instructions struct {
	w   io.Writer
	err error
}

func (i *instructions) emit(format string, args ...any) {
	if i.err != nil {
		return
	}
	_, i.err = fmt.Fprintf(i.w, "cargo:"+format+"\n", args...)
}
