// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

// Package rustc detects the version of a Rust toolchain from the output of
// rustc --version. Parse is the pure parser; Detect runs the compiler, taking
// care of RUSTC_WRAPPER and of clippy-driver masquerading as rustc.
package rustc
