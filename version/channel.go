// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

package version

import "github.com/terramate-io/rustversion/date"

// Channel is the release channel of a Rust toolchain.
// The zero value is the stable channel.
// See https://rust-lang.github.io/rustup/concepts/channels.html
type Channel struct {
	kind channelKind
	date date.Date
}

type channelKind uint8

const (
	stableChannel channelKind = iota
	betaChannel
	nightlyChannel
	devChannel
)

// Stable is the stable channel.
func Stable() Channel { return Channel{kind: stableChannel} }

// Beta is the beta channel.
func Beta() Channel { return Channel{kind: betaChannel} }

// Nightly is the nightly channel built at the given date.
func Nightly(d date.Date) Channel { return Channel{kind: nightlyChannel, date: d} }

// Dev is the channel of toolchains built from source instead of being
// distributed through rustup.
func Dev() Channel { return Channel{kind: devChannel} }

// IsStable tells if c is the stable channel.
func (c Channel) IsStable() bool { return c.kind == stableChannel }

// IsBeta tells if c is the beta channel.
func (c Channel) IsBeta() bool { return c.kind == betaChannel }

// IsNightly tells if c is the nightly channel.
func (c Channel) IsNightly() bool { return c.kind == nightlyChannel }

// IsDevelopment tells if c is the development channel.
func (c Channel) IsDevelopment() bool { return c.kind == devChannel }

// Date returns the build date of a nightly channel.
// The boolean is false for any other channel.
func (c Channel) Date() (date.Date, bool) {
	if c.kind != nightlyChannel {
		return date.Date{}, false
	}
	return c.date, true
}

// Name returns the channel name: stable, beta, nightly or dev.
func (c Channel) Name() string {
	switch c.kind {
	case stableChannel:
		return "stable"
	case betaChannel:
		return "beta"
	case nightlyChannel:
		return "nightly"
	case devChannel:
		return "dev"
	}
	panic("unreachable")
}

// String returns the channel name, followed by the build date for nightly.
func (c Channel) String() string {
	if c.kind == nightlyChannel {
		return c.Name() + " (" + c.date.String() + ")"
	}
	return c.Name()
}
