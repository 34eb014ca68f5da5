// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

// Package report renders detected toolchain versions in machine readable
// formats.
package report

import (
	"encoding/json"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/terramate-io/rustversion/errors"
	"github.com/terramate-io/rustversion/features"
	"github.com/terramate-io/rustversion/version"
	"github.com/terramate-io/rustversion/versions"
)

// ErrEncode indicates the report could not be encoded.
const ErrEncode errors.Kind = "encoding report"

// Supported formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// Info describes a detected toolchain.
type Info struct {
	Major    uint32   `json:"major" toml:"major"`
	Minor    uint32   `json:"minor" toml:"minor"`
	Patch    uint32   `json:"patch" toml:"patch"`
	Channel  string   `json:"channel" toml:"channel"`
	Date     string   `json:"date,omitempty" toml:"date,omitempty"`
	Display  string   `json:"display" toml:"display"`
	Semver   string   `json:"semver" toml:"semver"`
	Features []string `json:"features" toml:"features"`
}

// Report is a list of detected toolchains.
type Report struct {
	Toolchains []Info `json:"toolchains" toml:"toolchain"`
}

// NewInfo describes v.
func NewInfo(v version.Rust) Info {
	info := Info{
		Major:    v.Major,
		Minor:    v.Minor,
		Patch:    v.Patch,
		Channel:  v.Channel.Name(),
		Display:  v.String(),
		Semver:   versions.Semver(v),
		Features: features.Names(features.Enabled(v)),
	}
	if d, ok := v.Channel.Date(); ok {
		info.Date = d.String()
	}
	return info
}

// New creates a report for the given toolchains.
func New(vs ...version.Rust) Report {
	r := Report{Toolchains: make([]Info, 0, len(vs))}
	for _, v := range vs {
		r.Toolchains = append(r.Toolchains, NewInfo(v))
	}
	return r
}

// Write encodes the report into w using the given format.
func (r Report) Write(w io.Writer, format string) error {
	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(r)
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(r)
	default:
		return errors.E(ErrEncode, "unsupported format %q", format)
	}
	if err != nil {
		return errors.E(ErrEncode, err, "format %s", format)
	}
	return nil
}
