// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

// Package printer writes the human readable output of the rustversion CLI
// to an io.Writer with a consistent style for results, warnings and errors.
package printer
