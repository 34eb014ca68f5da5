// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

// rustversion detects the version of the Rust toolchain and checks it
// against version thresholds, nightly dates and semver constraints.
// It also implements the cargo build step emitting capability flags.
// For details on how to use it just run:
//
//	rustversion --help
package main

import (
	"os"

	"github.com/terramate-io/rustversion/cmd/rustversion/cli"
)

func main() {
	status := cli.Exec(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	os.Exit(int(status))
}
