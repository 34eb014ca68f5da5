// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

package rustc

import (
	"context"
	"os"
	"os/exec"
	"unicode/utf8"

	"github.com/cli/safeexec"
	"github.com/rs/zerolog/log"
	"github.com/terramate-io/rustversion/errors"
	"github.com/terramate-io/rustversion/version"
	"golang.org/x/sync/errgroup"
)

// Errors returned when detecting the toolchain version.
const (
	// ErrExec indicates the rustc command could not be executed or its output
	// could not be read.
	ErrExec errors.Kind = "failed to run rustc --version"

	// ErrUnsupportedMajor indicates a toolchain with a major version other than 1.
	ErrUnsupportedMajor errors.Kind = "only major version 1 is supported"
)

// Environment variables used by cargo to tell build scripts which compiler to use.
const (
	RustcEnv        = "RUSTC"
	RustcWrapperEnv = "RUSTC_WRAPPER"
)

// DefaultRustc is the compiler used when none is configured.
const DefaultRustc = "rustc"

// Options configures how the toolchain is invoked.
type Options struct {
	// Rustc is the compiler command. Defaults to DefaultRustc.
	Rustc string

	// Wrapper is an optional command wrapping the compiler, like
	// clippy-driver or sccache. The compiler is passed as its first argument.
	Wrapper string
}

// OptionsFromEnv returns the options configured by the RUSTC and
// RUSTC_WRAPPER environment variables. An empty wrapper is ignored.
func OptionsFromEnv() Options {
	return Options{
		Rustc:   os.Getenv(RustcEnv),
		Wrapper: os.Getenv(RustcWrapperEnv),
	}
}

// Command returns the program and arguments that print the version.
// When unwrap is true the wrapper is asked for the underlying rustc version.
func (o Options) Command(unwrap bool) (string, []string) {
	rustc := o.Rustc
	if rustc == "" {
		rustc = DefaultRustc
	}
	var cmd []string
	if o.Wrapper != "" {
		cmd = append(cmd, o.Wrapper)
	}
	cmd = append(cmd, rustc)
	if unwrap {
		cmd = append(cmd, "--rustc")
	}
	cmd = append(cmd, "--version")
	return cmd[0], cmd[1:]
}

// Runner runs a program and returns its standard output.
type Runner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs programs found in the PATH of the host.
type ExecRunner struct{}

// Output implements Runner.
func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	path, err := safeexec.LookPath(name)
	if err != nil {
		return nil, err
	}
	return exec.CommandContext(ctx, path, args...).Output()
}

// Detect runs the toolchain with the given runner and parses its version.
// If the wrapper answers with the clippy banner, the command is retried once
// asking for the rustc version instead.
func Detect(ctx context.Context, runner Runner, opts Options) (version.Rust, error) {
	logger := log.With().
		Str("action", "rustc.Detect()").
		Str("rustc", opts.Rustc).
		Str("wrapper", opts.Wrapper).
		Logger()

	unwrap := false
	for {
		name, args := opts.Command(unwrap)

		logger.Trace().
			Str("cmd", name).
			Strs("args", args).
			Msg("running toolchain")

		out, err := runner.Output(ctx, name, args...)
		if err != nil {
			return version.Rust{}, errors.E(ErrExec, err, "running %s %v", name, args)
		}
		if !utf8.Valid(out) {
			return version.Rust{}, errors.E(ErrExec, "output of %s %v is not valid UTF-8", name, args)
		}

		v, err := Parse(string(out))
		if errors.IsKind(err, ErrWrongTool) && !unwrap {
			logger.Debug().Msg("wrapper is clippy, asking for the rustc version")
			unwrap = true
			continue
		}
		if err != nil {
			return version.Rust{}, errors.E(ErrUnrecognized, err,
				"unexpected output from %s %v: %q", name, args, string(out))
		}
		if v.Major != 1 {
			return version.Rust{}, errors.E(ErrUnsupportedMajor, "got %s", v)
		}

		logger.Debug().
			Stringer("version", v).
			Msg("detected toolchain version")

		return v, nil
	}
}

// DetectAll detects the version of several toolchains concurrently.
// The versions are returned in the same order as opts.
func DetectAll(ctx context.Context, runner Runner, opts []Options) ([]version.Rust, error) {
	versions := make([]version.Rust, len(opts))
	g, ctx := errgroup.WithContext(ctx)
	for i, o := range opts {
		g.Go(func() error {
			v, err := Detect(ctx, runner, o)
			if err != nil {
				return err
			}
			versions[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return versions, nil
}
