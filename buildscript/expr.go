// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

package buildscript

import (
	"fmt"
	"strings"

	"github.com/terramate-io/rustversion/version"
)

// Expr renders v as a pretty printed Rust struct literal that crates
// include as their detected version constant. A trailing newline is always
// present.
func Expr(v version.Rust) string {
	var b strings.Builder
	b.WriteString("Version {\n")
	fmt.Fprintf(&b, "    major: %d,\n", v.Major)
	fmt.Fprintf(&b, "    minor: %d,\n", v.Minor)
	fmt.Fprintf(&b, "    patch: %d,\n", v.Patch)

	switch {
	case v.IsNightly():
		d, _ := v.Channel.Date()
		b.WriteString("    channel: Nightly(\n")
		b.WriteString("        Date {\n")
		fmt.Fprintf(&b, "            year: %d,\n", d.Year)
		fmt.Fprintf(&b, "            month: %d,\n", d.Month)
		fmt.Fprintf(&b, "            day: %d,\n", d.Day)
		b.WriteString("        },\n")
		b.WriteString("    ),\n")
	case v.IsBeta():
		b.WriteString("    channel: Beta,\n")
	case v.IsDevelopment():
		b.WriteString("    channel: Dev,\n")
	default:
		b.WriteString("    channel: Stable,\n")
	}

	b.WriteString("}\n")
	return b.String()
}
