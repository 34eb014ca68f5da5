// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

package rustc

import (
	"strconv"
	"strings"

	"github.com/terramate-io/rustversion/date"
	"github.com/terramate-io/rustversion/errors"
	"github.com/terramate-io/rustversion/version"
)

// Errors returned when parsing the output of rustc --version.
const (
	// ErrWrongTool indicates the output was produced by clippy-driver instead
	// of rustc. Callers may retry once asking the wrapper for the rustc version.
	ErrWrongTool errors.Kind = "version output is from clippy, not rustc"

	// ErrUnrecognized indicates the output is not a rustc version banner.
	ErrUnrecognized errors.Kind = "unrecognized rustc version output"
)

const (
	toolName      = "rustc"
	wrapperPrefix = "clippy"
)

// Parse parses the output of rustc --version, eg.:
//
//	rustc 1.81.0-nightly (64e0f2462 2024-07-28)
//
// Only the last non-empty line is considered, so banners printed by wrappers
// before the rustc line are ignored. The error is of kind ErrWrongTool when
// the output comes from clippy, and ErrUnrecognized for anything else that
// is not a complete rustc banner.
func Parse(output string) (version.Rust, error) {
	line := lastLine(output)
	words := strings.Split(line, " ")

	switch first := words[0]; {
	case first == toolName:
	case strings.HasPrefix(first, wrapperPrefix):
		return version.Rust{}, errors.E(ErrWrongTool, "got %q", line)
	default:
		return version.Rust{}, errors.E(ErrUnrecognized, "got %q", line)
	}

	v, ok := parseWords(words[1:])
	if !ok {
		return version.Rust{}, errors.E(ErrUnrecognized, "got %q", line)
	}
	return v, nil
}

func lastLine(output string) string {
	lines := strings.Split(output, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line != "" {
			return line
		}
	}
	return ""
}

// parseWords parses the words following the tool name:
//
//	MAJOR.MINOR[.PATCH][-CHANNEL] [(HASH [DATE)]]
func parseWords(words []string) (version.Rust, bool) {
	if len(words) == 0 {
		return version.Rust{}, false
	}

	numbers, channelName, hasChannel := strings.Cut(words[0], "-")
	digits := strings.Split(numbers, ".")
	if len(digits) < 2 || len(digits) > 3 {
		return version.Rust{}, false
	}

	var (
		v  version.Rust
		ok bool
	)
	if v.Major, ok = parseNumber(digits[0]); !ok {
		return version.Rust{}, false
	}
	if v.Minor, ok = parseNumber(digits[1]); !ok {
		return version.Rust{}, false
	}
	if len(digits) == 3 {
		if v.Patch, ok = parseNumber(digits[2]); !ok {
			return version.Rust{}, false
		}
	}

	rest := words[1:]
	switch {
	case !hasChannel:
		v.Channel = version.Stable()
	case channelName == "dev":
		v.Channel = version.Dev()
	case strings.HasPrefix(channelName, "beta"):
		v.Channel = version.Beta()
	case channelName == "nightly":
		v.Channel, ok = parseNightly(rest)
		if !ok {
			return version.Rust{}, false
		}
	default:
		return version.Rust{}, false
	}
	return v, true
}

// parseNightly parses the commit info of a nightly toolchain.
// Nightly toolchains without a build date are development builds.
func parseNightly(words []string) (version.Channel, bool) {
	if len(words) == 0 {
		return version.Dev(), true
	}
	hash := words[0]
	if !strings.HasPrefix(hash, "(") {
		return version.Channel{}, false
	}
	if len(words) == 1 {
		if !strings.HasSuffix(hash, ")") {
			return version.Channel{}, false
		}
		return version.Dev(), true
	}
	datestr, ok := strings.CutSuffix(words[1], ")")
	if !ok {
		return version.Channel{}, false
	}
	d, err := date.Parse(datestr)
	if err != nil {
		return version.Channel{}, false
	}
	return version.Nightly(d), true
}

func parseNumber(s string) (uint32, bool) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}
