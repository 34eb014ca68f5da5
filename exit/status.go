// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

// Package exit provides the exit codes of the rustversion CLI.
package exit

// Status represents the exit status of a command.
type Status int

// Exit codes of the rustversion CLI.
const (
	OK Status = iota
	Failed

	// Unsatisfied is returned by checks whose predicates do not hold.
	Unsatisfied
)
