// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

package rustversion

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/terramate-io/rustversion/errors"
	"github.com/terramate-io/rustversion/rustc"
	"github.com/terramate-io/rustversion/version"
)

// detectedVersion holds the rustc --version output captured at build time:
//
//	go build -ldflags "-X 'github.com/terramate-io/rustversion.detectedVersion=$(rustc --version)'"
//
// When empty, the toolchain is detected on the first call to Current.
var detectedVersion string

// detector computes the toolchain version once and keeps it.
type detector struct {
	once     sync.Once
	injected string
	runner   rustc.Runner
	options  func() rustc.Options

	v   version.Rust
	err error
}

var current = newDetector(detectedVersion, rustc.ExecRunner{})

func newDetector(injected string, runner rustc.Runner) *detector {
	return &detector{
		injected: injected,
		runner:   runner,
		options:  rustc.OptionsFromEnv,
	}
}

func (d *detector) version() (version.Rust, error) {
	d.once.Do(func() {
		d.v, d.err = detect(context.Background(), d.injected, d.runner, d.options())
	})
	return d.v, d.err
}

// Current returns the version of the Rust toolchain of this process.
// It is computed once and the same result is returned afterwards.
func Current() (version.Rust, error) {
	return current.version()
}

// MustCurrent is like Current but panics if the version can't be detected.
func MustCurrent() version.Rust {
	v, err := Current()
	if err != nil {
		panic(err)
	}
	return v
}

func detect(ctx context.Context, injected string, runner rustc.Runner, opts rustc.Options) (version.Rust, error) {
	if injected == "" {
		return rustc.Detect(ctx, runner, opts)
	}

	log.Trace().
		Str("action", "rustversion.detect()").
		Str("output", injected).
		Msg("using version captured at build time")

	v, err := rustc.Parse(injected)
	if err != nil {
		return version.Rust{}, errors.E(err, "parsing build time version %q", injected)
	}
	if v.Major != 1 {
		return version.Rust{}, errors.E(rustc.ErrUnsupportedMajor, "got %s", v)
	}
	return v, nil
}
