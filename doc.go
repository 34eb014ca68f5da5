// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

// Package rustversion detects the version of the Rust toolchain and answers
// questions about it, like "is this toolchain at least 1.46?" or "is this a
// nightly built since 2024-07-01?".
//
// The process-wide detected version is returned by [Current]. The types and
// comparisons live in the version and date packages, the parser of
// rustc --version output in the rustc package.
package rustversion
