// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

//go:build rustversion_nochecks

package checks

// Enabled tells if constructors validate their arguments.
const Enabled = false
